package internal

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// recordEntry is one field slot of a Record, kept in first-occurrence
// order.
type recordEntry struct {
	name  string
	value value
}

// Record is MITScript's only compound value (spec.md §3.3): an
// ordered collection of named fields with reference semantics. It is
// grounded on this codebase's grotskyDict, generalized from an
// unordered map to an ordered slice because spec.md requires
// insertion-order iteration and "last write wins" duplicate-field
// resolution, neither of which a bare map gives you.
type Record struct {
	fields []recordEntry
	id     uuid.UUID // diagnostic-only; never used in Eq or hashing
	marked bool       // heap.go's mark-and-sweep bit
}

func newRecord() *Record {
	return &Record{id: uuid.New()}
}

// Get returns the field's value and whether it was present. A record
// field that was never set reads as None per spec.md §4.4.4, but that
// substitution happens at the call site (interpreter), not here, so
// Get can distinguish "absent" from "explicitly set to None".
func (r *Record) Get(name string) (value, bool) {
	for _, e := range r.fields {
		if e.name == name {
			return e.value, true
		}
	}
	return nil, false
}

// Set updates the field in place if it already exists (preserving its
// original position), or appends a new field otherwise. This gives
// record literals with a repeated field name "last write wins"
// semantics while keeping the surviving position the first one the
// name appeared at.
func (r *Record) Set(name string, v value) {
	for i := range r.fields {
		if r.fields[i].name == name {
			r.fields[i].value = v
			return
		}
	}
	r.fields = append(r.fields, recordEntry{name: name, value: v})
}

// String renders a Record the way `print` does: field names sorted
// lexicographically ascending (not insertion order — that only governs
// Get/Set resolution), each rendered "name:value", entries separated
// by a single space and the whole thing wrapped in "{ " / " }". An
// empty record prints as "{}" with no interior space.
func (r *Record) String() string {
	if len(r.fields) == 0 {
		return "{}"
	}
	names := make([]string, len(r.fields))
	values := make(map[string]value, len(r.fields))
	for i, e := range r.fields {
		names[i] = e.name
		values[e.name] = e.value
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("{ ")
	for i, name := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(valueToDisplayString(values[name]))
	}
	b.WriteString(" }")
	return b.String()
}
