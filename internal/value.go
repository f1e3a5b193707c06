package internal

import "fmt"

// value is MITScript's runtime tagged union (spec.md §3.3), represented
// the way this codebase represents its own runtime values: a bare
// Go interface{} slot dispatched by type switch, with a small set of
// concrete defined types rather than a marker interface. None is the
// noneMarker value below; the other five variants are its siblings.
type value interface{}

// intValue, stringValue and boolValue are MITScript Int/String/Bool.
// They're plain defined types (not structs) so equality and printing
// fall out of Go's built-in comparison and formatting for free, same
// as this codebase's own grotskyNumber/grotskyString/grotskyBool.
type intValue int32
type stringValue string
type boolValue bool

// noneMarker is the unique type behind MITScript's None. A dedicated
// type (rather than untyped nil) keeps type-switch dispatch total: a
// value is always exactly one of intValue, stringValue, boolValue,
// noneMarker, *Record, or a callable.
type noneMarker struct{}

var none value = noneMarker{}

func typeName(v value) string {
	switch v.(type) {
	case intValue:
		return "Integer"
	case stringValue:
		return "String"
	case boolValue:
		return "Boolean"
	case noneMarker:
		return "None"
	case *Record:
		return "Record"
	case Callable:
		return "Function"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func truthy(v value) bool {
	b, ok := v.(boolValue)
	if !ok {
		panic(newRuntimeFault(illegalCastFault, 0, "expected Boolean in condition, got "+typeName(v)))
	}
	return bool(b)
}

// valueToDisplayString renders a value the way the `print` native
// does (spec.md §4.4.4): strings print bare (no quotes), everything
// else uses its natural literal form.
func valueToDisplayString(v value) string {
	switch t := v.(type) {
	case intValue:
		return fmt.Sprintf("%d", int32(t))
	case stringValue:
		return string(t)
	case boolValue:
		if t {
			return "true"
		}
		return "false"
	case noneMarker:
		return "None"
	case *Record:
		return t.String()
	case Callable:
		return "FUNCTION"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// valueEqual implements spec.md §4.4.4's `==` semantics: value
// equality for Int/String/Bool/None, reference (pointer) identity for
// Record and for Function (including native functions, which are
// singletons so pointer identity is stable and distinguishing).
func valueEqual(a, b value) bool {
	switch av := a.(type) {
	case intValue:
		bv, ok := b.(intValue)
		return ok && av == bv
	case stringValue:
		bv, ok := b.(stringValue)
		return ok && av == bv
	case boolValue:
		bv, ok := b.(boolValue)
		return ok && av == bv
	case noneMarker:
		_, ok := b.(noneMarker)
		return ok
	case *Record:
		bv, ok := b.(*Record)
		return ok && av == bv
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	case *NativeFunction:
		bv, ok := b.(*NativeFunction)
		return ok && av == bv
	default:
		return false
	}
}
