package internal

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Interpreter is the tree-walking evaluator (spec.md §4.4). It
// implements both stmtVisitor and exprVisitor, evaluating a program
// directly against the AST rather than compiling it — the same split
// this codebase's exec.go uses (visitBinaryExpr/visitIfStmt/
// executeBlock, save-and-restore of "the current frame" around each
// block).
type Interpreter struct {
	current *Frame
	root    *Frame
	heap    *heap
	log     *logrus.Entry

	out    io.Writer
	stdinR *bufio.Reader
}

// NewInterpreter builds an interpreter with its root frame populated
// with natives, ready to run a parsed program.
func NewInterpreter(out io.Writer, in io.Reader, gcThreshold int, log *logrus.Entry) *Interpreter {
	root := newRootFrame()
	interp := &Interpreter{
		current: root,
		root:    root,
		heap:    newHeap(gcThreshold, log),
		log:     log,
		out:     out,
	}
	if in != nil {
		interp.stdinR = bufio.NewReader(in)
	}
	interp.heap.trackFrame(root)
	installNatives(root, interp)
	return interp
}

func (interp *Interpreter) stdout(s string) {
	fmt.Fprintln(interp.out, s)
}

func (interp *Interpreter) readLine() (string, bool) {
	if interp.stdinR == nil {
		return "", false
	}
	line, err := interp.stdinR.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return line, true
}

// Interpret runs a parsed program to completion. It recovers exactly
// one runtime fault, mirroring exec.interpret()'s top-level
// defer/recover that turns a panic into a single reported error
// instead of a crash.
func (interp *Interpreter) Interpret(program *blockStmt) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rf, ok := r.(*runtimeFault); ok {
				if interp.log != nil {
					interp.log.WithField("component", "interp").Debug(rf.detail())
				}
				err = rf
				return
			}
			if _, ok := r.(*returnSignal); ok {
				// a top-level `return` outside any function; treat as
				// program termination with no reported value.
				return
			}
			panic(r)
		}
	}()
	interp.executeBlock(program, interp.root)
	return nil
}

// executeBlock runs a block's statements against the given frame,
// restoring the interpreter's previous "current" frame on the way
// out — grounded on exec.go's executeBlock, which does the same
// save/restore with a defer.
func (interp *Interpreter) executeBlock(block *blockStmt, frame *Frame) {
	previous := interp.current
	interp.current = frame
	defer func() { interp.current = previous }()

	for _, s := range block.stmts {
		s.accept(interp)
	}

	if interp.heap.shouldCollect() {
		interp.heap.collect(interp.current)
	}
}

// --- stmtVisitor ---

// visitBlock runs a Block in the current frame. Block, If, and While
// never open a scope of their own (spec.md §4.4.2) — only a function
// call does, in Function.Call.
func (interp *Interpreter) visitBlock(s *blockStmt) {
	interp.executeBlock(s, interp.current)
}

func (interp *Interpreter) visitAssignment(s *assignmentStmt) {
	v := s.value.accept(interp)
	switch {
	case s.name != nil:
		if interp.current.isGlobal(s.name.name) {
			interp.current.assignGlobal(s.name.name, v)
		} else {
			interp.current.assign(s.name.name, v)
		}
	case s.field != nil:
		base := s.field.base.accept(interp)
		rec, ok := base.(*Record)
		if !ok {
			panic(newRuntimeFault(illegalCastFault, s.line, "cannot assign field on "+typeName(base)))
		}
		rec.Set(s.field.name, v)
	case s.index != nil:
		base := s.index.base.accept(interp)
		rec, ok := base.(*Record)
		if !ok {
			panic(newRuntimeFault(illegalCastFault, s.line, "cannot index-assign on "+typeName(base)))
		}
		key := s.index.key.accept(interp)
		name, ok := key.(stringValue)
		if !ok {
			panic(newRuntimeFault(illegalCastFault, s.line, "record index must be a String"))
		}
		rec.Set(string(name), v)
	}
}

func (interp *Interpreter) visitGlobal(s *globalStmt) {
	interp.current.declareGlobal(s.name)
}

func (interp *Interpreter) visitIf(s *ifStmt) {
	if truthy(s.cond.accept(interp)) {
		interp.visitBlock(s.then)
	} else if s.els != nil {
		interp.visitBlock(s.els)
	}
}

func (interp *Interpreter) visitWhile(s *whileStmt) {
	for truthy(s.cond.accept(interp)) {
		interp.visitBlock(s.body)
	}
}

func (interp *Interpreter) visitReturn(s *returnStmt) {
	var v value = none
	if s.value != nil {
		v = s.value.accept(interp)
	}
	panic(&returnSignal{value: v})
}

func (interp *Interpreter) visitExprStmt(s *exprStmt) {
	s.expression.accept(interp)
}

// --- exprVisitor ---

func (interp *Interpreter) visitBinary(e *binaryExpr) value {
	if e.op == opAnd {
		left := e.left.accept(interp)
		if !truthy(left) {
			return boolValue(false)
		}
		return boolValue(truthy(e.right.accept(interp)))
	}
	if e.op == opOr {
		left := e.left.accept(interp)
		if truthy(left) {
			return boolValue(true)
		}
		return boolValue(truthy(e.right.accept(interp)))
	}

	left := e.left.accept(interp)
	right := e.right.accept(interp)

	if e.op == opEq {
		return boolValue(valueEqual(left, right))
	}

	if e.op == opAdd {
		if ls, ok := left.(stringValue); ok {
			rs, ok := right.(stringValue)
			if !ok {
				panic(newRuntimeFault(illegalCastFault, e.line, "cannot add String and "+typeName(right)))
			}
			return stringValue(string(ls) + string(rs))
		}
	}

	li, lok := left.(intValue)
	ri, rok := right.(intValue)
	if !lok || !rok {
		panic(newRuntimeFault(illegalCastFault, e.line, "arithmetic operator requires Integer operands"))
	}

	switch e.op {
	case opAdd:
		return intValue(int32(li) + int32(ri))
	case opSub:
		return intValue(int32(li) - int32(ri))
	case opMul:
		return intValue(int32(li) * int32(ri))
	case opDiv:
		if ri == 0 {
			panic(newRuntimeFault(illegalArithmeticFault, e.line, "division by zero"))
		}
		return intValue(int32(li) / int32(ri))
	case opLt:
		return boolValue(li < ri)
	case opGt:
		return boolValue(li > ri)
	case opLeq:
		return boolValue(li <= ri)
	case opGeq:
		return boolValue(li >= ri)
	default:
		panic(fmt.Sprintf("visitBinary: unhandled op %v", e.op))
	}
}

func (interp *Interpreter) visitUnary(e *unaryExpr) value {
	v := e.expr.accept(interp)
	switch e.op {
	case opNeg:
		i, ok := v.(intValue)
		if !ok {
			panic(newRuntimeFault(illegalCastFault, e.line, "unary '-' requires an Integer operand"))
		}
		return intValue(-int32(i))
	case opNot:
		return boolValue(!truthy(v))
	default:
		panic(fmt.Sprintf("visitUnary: unhandled op %v", e.op))
	}
}

func (interp *Interpreter) visitFieldDeref(e *fieldDerefExpr) value {
	base := e.base.accept(interp)
	rec, ok := base.(*Record)
	if !ok {
		panic(newRuntimeFault(illegalCastFault, e.line, "cannot dereference field on "+typeName(base)))
	}
	if v, ok := rec.Get(e.name); ok {
		return v
	}
	return none
}

func (interp *Interpreter) visitIndex(e *indexExpr) value {
	base := e.base.accept(interp)
	rec, ok := base.(*Record)
	if !ok {
		panic(newRuntimeFault(illegalCastFault, e.line, "cannot index "+typeName(base)))
	}
	key := e.key.accept(interp)
	name, ok := key.(stringValue)
	if !ok {
		panic(newRuntimeFault(illegalCastFault, e.line, "record index must be a String"))
	}
	if v, ok := rec.Get(string(name)); ok {
		return v
	}
	return none
}

func (interp *Interpreter) visitCall(e *callExpr) value {
	target := e.target.accept(interp)
	callable, ok := target.(Callable)
	if !ok {
		panic(newRuntimeFault(illegalCastFault, e.line, "cannot call "+typeName(target)))
	}
	args := make([]value, len(e.args))
	for i, a := range e.args {
		args[i] = a.accept(interp)
	}
	if callable.Arity() != len(args) {
		panic(newRuntimeFault(genericRuntimeFault, e.line, "wrong number of arguments"))
	}
	return callable.Call(interp, args, e.line)
}

func (interp *Interpreter) visitRecord(e *recordExpr) value {
	rec := interp.heap.trackRecord(newRecord())
	for _, f := range e.fields {
		rec.Set(f.name, f.value.accept(interp))
	}
	return rec
}

func (interp *Interpreter) visitIntegerConstant(e *integerConstantExpr) value {
	return intValue(e.value)
}

func (interp *Interpreter) visitStringConstant(e *stringConstantExpr) value {
	return stringValue(e.value)
}

func (interp *Interpreter) visitBooleanConstant(e *booleanConstantExpr) value {
	return boolValue(e.value)
}

func (interp *Interpreter) visitNoneConstant(e *noneConstantExpr) value {
	return none
}

func (interp *Interpreter) visitIdentifier(e *identifierExpr) value {
	if interp.current.isGlobal(e.name) {
		return interp.current.getGlobal(e.name, e.line)
	}
	return interp.current.get(e.name, e.line)
}

func (interp *Interpreter) visitFunctionExpr(e *functionExpr) value {
	return interp.heap.trackFunction(newFunction("", e.params, e.body, interp.current))
}
