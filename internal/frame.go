package internal

import "github.com/google/uuid"

// Frame is a single lexical scope: a set of bindings plus a pointer to
// the enclosing scope a closure captured. It is the direct model for
// this codebase's env.go (parent pointer, get/define/assign), extended
// with globalInfo so a `global` declaration can route a name to the
// program's root frame regardless of how deep the current call chain
// is (spec.md §4.4.2 — the teacher this was grounded on has no such
// statement).
type Frame struct {
	parent   *Frame
	bindings map[string]value
	globals  *globalInfo
	// globalNames holds the names this function scope has declared
	// `global`. Blocks, ifs and whiles run in the call's own frame, so a
	// declaration made inside an `if` or `while` body still applies for
	// the rest of that call — only a fresh function invocation resets it
	// (see newCallFrame).
	globalNames map[string]bool
	id          uuid.UUID // diagnostic-only; heap.go's root set walks .parent, not .id
	marked      bool
}

// globalInfo is shared by every Frame in one interpreter run. root is
// the outermost Frame, where global reads/writes are serviced; which
// names are global is tracked per frame in Frame.globalNames.
type globalInfo struct {
	root *Frame
}

func newRootFrame() *Frame {
	f := &Frame{bindings: map[string]value{}, globalNames: map[string]bool{}, id: uuid.New()}
	f.globals = &globalInfo{root: f}
	return f
}

// newCallFrame opens a fresh function-call scope. A Block, If, or While
// never opens one of its own (spec.md §4.4 — "the interpreter walks
// the AST with a stack of Frames; stack.top() is the current scope",
// and only a Call pushes a new one): the whole body of a function runs
// in this single frame from start to finish. It starts with an empty
// globalNames map, since `global` declarations don't cross function
// boundaries (spec.md §4.4.2).
func newCallFrame(closure *Frame) *Frame {
	return &Frame{
		parent:      closure,
		bindings:    map[string]value{},
		globals:     closure.globals,
		globalNames: map[string]bool{},
		id:          uuid.New(),
	}
}

func (f *Frame) declareGlobal(name string) {
	f.globalNames[name] = true
}

func (f *Frame) isGlobal(name string) bool {
	return f.globalNames[name]
}

// define introduces or overwrites a binding in this frame specifically
// (used for parameter binding, Function.Call's None pre-binding,
// installing natives, and global writes into the root frame).
func (f *Frame) define(name string, v value) {
	f.bindings[name] = v
}

// get resolves a name by walking the parent chain, per spec.md
// §4.4.2's lexical scoping rule. An unresolved name is an
// UninitializedVariableException, not a Go zero value.
func (f *Frame) get(name string, line int) value {
	for env := f; env != nil; env = env.parent {
		if v, ok := env.bindings[name]; ok {
			return v
		}
	}
	panic(newRuntimeFault(uninitializedVariableFault, line, "uninitialized variable '"+name+"'"))
}

// assign binds name in f directly. Writes never walk the parent chain
// (spec.md §4.4.2: "Writes do not walk up the scope chain — unless
// declared global, an assignment is local to the current function's
// frame"), which is why Function.Call pre-binds every name the body
// ever assigns to None before running it — otherwise a read before the
// first assignment would fall through to a same-named binding further
// up the parent chain instead of seeing the function's own local.
func (f *Frame) assign(name string, v value) {
	f.bindings[name] = v
}

// assignGlobal writes to the interpreter's root frame directly instead
// of the current frame assign() writes to. Used for names a function
// has declared `global`.
func (f *Frame) assignGlobal(name string, v value) {
	f.globals.root.define(name, v)
}

// getGlobal reads from the root frame directly.
func (f *Frame) getGlobal(name string, line int) value {
	return f.globals.root.get(name, line)
}
