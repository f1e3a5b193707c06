package internal

import "github.com/sirupsen/logrus"

// heap is a concrete mark-and-sweep tracing collector over the three
// kinds of objects a running MITScript program allocates: Frames,
// Records, and Functions (spec.md §3.4/§5/§9 describe only the
// contract — "a closure and the records it can reach through a cycle
// must still be reclaimable" — this is the collector that makes that
// concrete). It is new code: the interpreter this project is grounded
// on relies on Go's own GC directly and defines no analogous type.
//
// Roots are the current frame chain (walked via Frame.parent) plus the
// root frame's own bindings, which is where native globals live
// (SPEC_FULL.md §4.9).
type heap struct {
	frames    []*Frame
	records   []*Record
	functions []*Function

	threshold int
	allocs    int
	log       *logrus.Entry
}

func newHeap(threshold int, log *logrus.Entry) *heap {
	return &heap{threshold: threshold, log: log}
}

func (h *heap) trackFrame(f *Frame) *Frame {
	h.frames = append(h.frames, f)
	h.allocs++
	return f
}

func (h *heap) trackRecord(r *Record) *Record {
	h.records = append(h.records, r)
	h.allocs++
	return r
}

func (h *heap) trackFunction(fn *Function) *Function {
	h.functions = append(h.functions, fn)
	h.allocs++
	return fn
}

// shouldCollect reports whether enough allocations have accumulated
// since the last sweep to trigger another one.
func (h *heap) shouldCollect() bool {
	return h.allocs >= h.threshold
}

// collect runs one mark-and-sweep cycle rooted at the given frame (the
// currently executing scope; its parent chain reaches every enclosing
// closure and, eventually, the root frame where native globals live).
func (h *heap) collect(current *Frame) {
	h.markFrame(current)

	before := len(h.frames) + len(h.records) + len(h.functions)

	live := h.frames[:0]
	for _, f := range h.frames {
		if f.marked {
			f.marked = false
			live = append(live, f)
		}
	}
	h.frames = live

	liveRecords := h.records[:0]
	for _, r := range h.records {
		if r.marked {
			r.marked = false
			liveRecords = append(liveRecords, r)
		}
	}
	h.records = liveRecords

	liveFuncs := h.functions[:0]
	for _, fn := range h.functions {
		if fn.marked {
			fn.marked = false
			liveFuncs = append(liveFuncs, fn)
		}
	}
	h.functions = liveFuncs

	after := len(h.frames) + len(h.records) + len(h.functions)
	if h.log != nil {
		h.log.WithFields(logrus.Fields{
			"component": "heap",
			"reclaimed": before - after,
		}).Debug("gc cycle complete")
	}
	h.allocs = 0
}

func (h *heap) markFrame(f *Frame) {
	for env := f; env != nil && !env.marked; env = env.parent {
		env.marked = true
		for _, v := range env.bindings {
			h.markValue(v)
		}
	}
}

func (h *heap) markValue(v value) {
	switch t := v.(type) {
	case *Record:
		h.markRecord(t)
	case *Function:
		h.markFunction(t)
	}
}

func (h *heap) markRecord(r *Record) {
	if r == nil || r.marked {
		return
	}
	r.marked = true
	for _, e := range r.fields {
		h.markValue(e.value)
	}
}

func (h *heap) markFunction(fn *Function) {
	if fn == nil || fn.marked {
		return
	}
	fn.marked = true
	h.markFrame(fn.closure)
}
