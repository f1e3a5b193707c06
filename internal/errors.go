package internal

import "fmt"

// faultKind enumerates the runtime fault taxonomy spec.md §7 defines.
// A fault is raised by panicking a *runtimeFault and caught exactly
// once, at the top of Interpret, mirroring the panic/recover
// control-transfer this codebase already uses for `return`.
type faultKind int

const (
	uninitializedVariableFault faultKind = iota
	illegalCastFault
	illegalArithmeticFault
	genericRuntimeFault
	configFault
)

var faultNames = map[faultKind]string{
	uninitializedVariableFault: "UninitializedVariableException",
	illegalCastFault:           "IllegalCastException",
	illegalArithmeticFault:     "IllegalArithmeticException",
	genericRuntimeFault:        "RuntimeException",
	configFault:                "ConfigError",
}

func (k faultKind) String() string {
	if name, ok := faultNames[k]; ok {
		return name
	}
	return fmt.Sprintf("faultKind(%d)", int(k))
}

// runtimeFault is the payload panicked for every runtime error a
// running program can trigger. line is the source line the fault was
// raised on; it is 0 for faults raised outside any particular
// statement (e.g. configuration errors surfaced before interpretation
// starts).
type runtimeFault struct {
	kind    faultKind
	line    int
	message string
}

// Error returns just the fault's exception name for the four MITScript
// runtime exception kinds, matching what a running program observes:
// an uncaught fault prints nothing but its class name (e.g.
// "IllegalArithmeticException"). configFault isn't part of that
// taxonomy — it's raised before any program runs, so its full detail
// is what an operator needs to fix their config file.
func (f *runtimeFault) Error() string {
	if f.kind == configFault {
		return f.detail()
	}
	return f.kind.String()
}

// detail renders the line and message a debug trace wants but a
// running program's own diagnostic output never shows.
func (f *runtimeFault) detail() string {
	if f.line > 0 {
		return fmt.Sprintf("%s at line %d: %s", f.kind, f.line, f.message)
	}
	return fmt.Sprintf("%s: %s", f.kind, f.message)
}

func newRuntimeFault(kind faultKind, line int, message string) *runtimeFault {
	return &runtimeFault{kind: kind, line: line, message: message}
}

// returnSignal is the panic payload used to unwind a function call
// back to the frame that invoked it, the same shape this codebase's
// own function.call/returnValue pair uses for MITScript's `return`.
type returnSignal struct {
	value value
}
