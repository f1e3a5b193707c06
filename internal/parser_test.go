package internal

import "testing"

func mustParse(t *testing.T, source string) *blockStmt {
	t.Helper()
	tokens := ScanTokens(source, nil)
	if AnyErrorToken(tokens) {
		t.Fatalf("unexpected lex error in %q", source)
	}
	program, err := ParseTokens(tokens, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return program
}

func TestParseAssignment(t *testing.T) {
	program := mustParse(t, "x = 1;")
	if len(program.stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.stmts))
	}
	assign, ok := program.stmts[0].(*assignmentStmt)
	if !ok {
		t.Fatalf("expected *assignmentStmt, got %T", program.stmts[0])
	}
	if assign.name == nil || assign.name.name != "x" {
		t.Errorf("expected assignment target 'x', got %+v", assign.name)
	}
}

func TestParseIfElse(t *testing.T) {
	program := mustParse(t, "if (x) { y = 1; } else { y = 2; }")
	ifs, ok := program.stmts[0].(*ifStmt)
	if !ok {
		t.Fatalf("expected *ifStmt, got %T", program.stmts[0])
	}
	if ifs.els == nil {
		t.Error("expected an else branch")
	}
}

func TestParseWhileLoop(t *testing.T) {
	program := mustParse(t, "while (x) { x = x - 1; }")
	if _, ok := program.stmts[0].(*whileStmt); !ok {
		t.Fatalf("expected *whileStmt, got %T", program.stmts[0])
	}
}

func TestParseFunctionExpressionAssignment(t *testing.T) {
	program := mustParse(t, "add = fun(a, b) { return a + b; };")
	assign, ok := program.stmts[0].(*assignmentStmt)
	if !ok || assign.name == nil || assign.name.name != "add" {
		t.Fatalf("expected assignment to 'add', got %T", program.stmts[0])
	}
	fn, ok := assign.value.(*functionExpr)
	if !ok || len(fn.params) != 2 {
		t.Errorf("unexpected function shape: %+v", assign.value)
	}
}

func TestParseBareCallStatement(t *testing.T) {
	program := mustParse(t, "print(1);")
	exprS, ok := program.stmts[0].(*exprStmt)
	if !ok {
		t.Fatalf("expected *exprStmt, got %T", program.stmts[0])
	}
	if _, ok := exprS.expression.(*callExpr); !ok {
		t.Fatalf("expected a call expression, got %#v", exprS.expression)
	}
}

func TestParseBareNonCallExpressionStatementIsRejected(t *testing.T) {
	tokens := ScanTokens("1 + 2;", nil)
	if _, err := ParseTokens(tokens, nil); err == nil {
		t.Fatal("expected a parse error: a bare non-call expression is not a valid statement")
	}
}

func TestParsePrecedence(t *testing.T) {
	program := mustParse(t, "x = 1 + 2 * 3;")
	assign := program.stmts[0].(*assignmentStmt)
	bin, ok := assign.value.(*binaryExpr)
	if !ok || bin.op != opAdd {
		t.Fatalf("expected top-level '+' , got %#v", assign.value)
	}
	right, ok := bin.right.(*binaryExpr)
	if !ok || right.op != opMul {
		t.Fatalf("expected right operand to be '*', got %#v", bin.right)
	}
}

func TestParseRecordLiteralAndFieldAccess(t *testing.T) {
	program := mustParse(t, `r = {a: 1, b: 2}; x = r.a;`)
	assign := program.stmts[0].(*assignmentStmt)
	rec, ok := assign.value.(*recordExpr)
	if !ok || len(rec.fields) != 2 {
		t.Fatalf("expected a 2-field record literal, got %#v", assign.value)
	}
	second := program.stmts[1].(*assignmentStmt)
	if _, ok := second.value.(*fieldDerefExpr); !ok {
		t.Fatalf("expected field dereference, got %#v", second.value)
	}
}

func TestParseIndexAssignment(t *testing.T) {
	program := mustParse(t, `r["k"] = 1;`)
	assign, ok := program.stmts[0].(*assignmentStmt)
	if !ok || assign.index == nil {
		t.Fatalf("expected an index assignment, got %#v", program.stmts[0])
	}
}

func TestParseGlobalStatement(t *testing.T) {
	program := mustParse(t, "f = fun() { global x; x = 1; };")
	assign := program.stmts[0].(*assignmentStmt)
	fn := assign.value.(*functionExpr)
	if _, ok := fn.body.stmts[0].(*globalStmt); !ok {
		t.Fatalf("expected a global statement, got %#v", fn.body.stmts[0])
	}
}

func TestParseSyntaxErrorAbortsWholeParse(t *testing.T) {
	tokens := ScanTokens("x = ;", nil)
	if _, err := ParseTokens(tokens, nil); err == nil {
		t.Fatal("expected a parse error for a missing expression")
	}
}

func TestParseFunctionExpression(t *testing.T) {
	program := mustParse(t, "f = fun (x) { return x; };")
	assign := program.stmts[0].(*assignmentStmt)
	if _, ok := assign.value.(*functionExpr); !ok {
		t.Fatalf("expected a function expression, got %#v", assign.value)
	}
}
