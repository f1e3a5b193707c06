package internal

import "github.com/google/uuid"

// Callable is implemented by both user-defined MITScript functions and
// natives, so the interpreter's call-expression handling doesn't need
// to type-switch on which kind of function it's invoking — the same
// role this codebase's own `callable` interface plays.
type Callable interface {
	Arity() int
	Call(interp *Interpreter, args []value, line int) value
}

// Function is a user-defined MITScript function value: its parameter
// list, its body, and the Frame it closed over at definition time.
// Capturing the frame (not a snapshot of values) is what gives
// MITScript closures shared, mutable upvalues (spec.md §3.3, §5).
type Function struct {
	params  []string
	body    *blockStmt
	closure *Frame
	name    string // "" for anonymous `fun (...) {...}` expressions
	id      uuid.UUID
	marked  bool
}

func newFunction(name string, params []string, body *blockStmt, closure *Frame) *Function {
	return &Function{name: name, params: params, body: body, closure: closure, id: uuid.New()}
}

func (fn *Function) Arity() int { return len(fn.params) }

// Call binds arguments into a fresh frame parented on the function's
// closure and executes its body, catching a returnSignal panic the
// same way this codebase's function.call catches its returnValue
// panic. A body that runs off the end without an explicit `return`
// yields None (spec.md §4.4.4).
//
// Before running the body, every name the body ever assigns (by plain
// identifier, anywhere in an if/while/nested block, but not inside a
// nested function's own body) is pre-bound to None in the new frame —
// except parameters and names the body declares `global`. This is
// what makes reading a local before its first assignment yield None
// instead of walking up to an outer binding of the same name or
// raising an uninitialized-variable fault: the local already exists,
// it's just None.
func (fn *Function) Call(interp *Interpreter, args []value, line int) (result value) {
	if len(args) != len(fn.params) {
		panic(newRuntimeFault(genericRuntimeFault, line, "wrong number of arguments"))
	}
	callFrame := interp.heap.trackFrame(newCallFrame(fn.closure))

	globals := extractGlobals(fn.body)
	for name := range globals {
		callFrame.declareGlobal(name)
	}

	isParam := make(map[string]bool, len(fn.params))
	for _, p := range fn.params {
		isParam[p] = true
	}
	for name := range extractAssigns(fn.body) {
		if isParam[name] || globals[name] {
			continue
		}
		callFrame.define(name, none)
	}

	for i, p := range fn.params {
		callFrame.define(p, args[i])
	}

	defer func() {
		if r := recover(); r != nil {
			if rs, ok := r.(*returnSignal); ok {
				result = rs.value
				return
			}
			panic(r)
		}
	}()

	interp.executeBlock(fn.body, callFrame)
	return none
}

// extractGlobals walks a function body collecting every name it
// declares `global`, recursing into if/while/nested blocks but not
// into a nested function declaration or expression's own body — those
// get their own extraction when they're called.
func extractGlobals(node stmt) map[string]bool {
	result := map[string]bool{}
	switch n := node.(type) {
	case *blockStmt:
		for _, s := range n.stmts {
			for name := range extractGlobals(s) {
				result[name] = true
			}
		}
	case *globalStmt:
		result[n.name] = true
	case *ifStmt:
		for name := range extractGlobals(n.then) {
			result[name] = true
		}
		if n.els != nil {
			for name := range extractGlobals(n.els) {
				result[name] = true
			}
		}
	case *whileStmt:
		for name := range extractGlobals(n.body) {
			result[name] = true
		}
	}
	return result
}

// extractAssigns walks a function body collecting every name a plain
// identifier assignment ever targets, with the same recursion rule as
// extractGlobals: it stops at nested function boundaries, and it
// ignores field/index assignment targets (those don't introduce a new
// local).
func extractAssigns(node stmt) map[string]bool {
	result := map[string]bool{}
	switch n := node.(type) {
	case *blockStmt:
		for _, s := range n.stmts {
			for name := range extractAssigns(s) {
				result[name] = true
			}
		}
	case *assignmentStmt:
		if n.name != nil {
			result[n.name.name] = true
		}
	case *ifStmt:
		for name := range extractAssigns(n.then) {
			result[name] = true
		}
		if n.els != nil {
			for name := range extractAssigns(n.els) {
				result[name] = true
			}
		}
	case *whileStmt:
		for name := range extractAssigns(n.body) {
			result[name] = true
		}
	}
	return result
}

// NativeFunction wraps a Go function as a MITScript callable. Natives
// are installed once into the root frame at interpreter start and are
// singletons for the lifetime of a run, so pointer identity — which
// valueEqual relies on for Callable equality — is stable and
// meaningful (spec.md §4.4.4: "each native function is a distinct
// value distinguishable by identity").
type NativeFunction struct {
	name  string
	arity int
	fn    func(interp *Interpreter, args []value, line int) value
}

func (nf *NativeFunction) Arity() int { return nf.arity }

func (nf *NativeFunction) Call(interp *Interpreter, args []value, line int) value {
	return nf.fn(interp, args, line)
}
