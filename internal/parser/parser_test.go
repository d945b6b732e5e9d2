package parser

import (
	"testing"

	"glint-lang/internal/ast"
	"glint-lang/internal/lexer"
)

func parseOK(t *testing.T, source string) *ast.File {
	t.Helper()
	l := lexer.New(source, "test.glint")
	tokens, lexDiags := l.Tokenize()
	if len(lexDiags) > 0 {
		t.Fatalf("lex errors: %v", lexDiags)
	}
	p := New(tokens)
	file, parseDiags := p.ParseFile()
	if len(parseDiags) > 0 {
		t.Fatalf("parse errors: %v", parseDiags)
	}
	return file
}

func singleExpr(t *testing.T, file *ast.File) ast.Expr {
	t.Helper()
	if len(file.Body.Exprs) != 1 {
		t.Fatalf("expected 1 top-level expression, got %d", len(file.Body.Exprs))
	}
	return file.Body.Exprs[0]
}

func TestParseAssignmentDeclaresWithMut(t *testing.T) {
	file := parseOK(t, `mut x = 42`)
	a, ok := singleExpr(t, file).(*ast.AssignmentNode)
	if !ok {
		t.Fatalf("expected AssignmentNode, got %T", singleExpr(t, file))
	}
	if !a.Mut || a.Name != "x" {
		t.Errorf("expected mut x, got mut=%v name=%q", a.Mut, a.Name)
	}
	n, ok := a.Value.(*ast.NumberNode)
	if !ok || n.Value != 42 {
		t.Errorf("expected NumberNode(42), got %#v", a.Value)
	}
}

func TestParseAssignmentWithoutMut(t *testing.T) {
	file := parseOK(t, `x = 1`)
	a, ok := singleExpr(t, file).(*ast.AssignmentNode)
	if !ok {
		t.Fatalf("expected AssignmentNode, got %T", singleExpr(t, file))
	}
	if a.Mut {
		t.Error("expected Mut=false")
	}
}

func TestParseUnaryMinusBindsLooserThanMultiplicative(t *testing.T) {
	// "-2 * 3" must parse as "-(2 * 3)": UnaryMinus's operand descends
	// through UNARY_NOT into MULTIPLICATIVE, not into itself.
	file := parseOK(t, `-2 * 3`)
	um, ok := singleExpr(t, file).(*ast.UnaryMinusNode)
	if !ok {
		t.Fatalf("expected UnaryMinusNode at top level, got %T", singleExpr(t, file))
	}
	mul, ok := um.Operand.(*ast.MultiplicativeNode)
	if !ok {
		t.Fatalf("expected the unary minus's operand to be Multiplicative, got %T", um.Operand)
	}
	if len(mul.Operands) != 2 || mul.Ops[0] != "*" {
		t.Errorf("expected 2*3 fold, got %#v", mul)
	}
}

func TestParseAdditiveFold(t *testing.T) {
	file := parseOK(t, `1 + 2 - 3`)
	add, ok := singleExpr(t, file).(*ast.AdditiveNode)
	if !ok {
		t.Fatalf("expected AdditiveNode, got %T", singleExpr(t, file))
	}
	if len(add.Operands) != 3 || len(add.Ops) != 2 {
		t.Fatalf("expected 3 operands/2 ops, got %d/%d", len(add.Operands), len(add.Ops))
	}
	if add.Ops[0] != "+" || add.Ops[1] != "-" {
		t.Errorf("expected [+, -], got %v", add.Ops)
	}
}

func TestParseSingleOperandHoistsAwayAdditiveNode(t *testing.T) {
	file := parseOK(t, `42`)
	if _, ok := singleExpr(t, file).(*ast.NumberNode); !ok {
		t.Fatalf("expected a bare NumberNode (hoisted), got %T", singleExpr(t, file))
	}
}

func TestParseConditionSingleComparison(t *testing.T) {
	file := parseOK(t, `1 < 2`)
	cond, ok := singleExpr(t, file).(*ast.ConditionNode)
	if !ok {
		t.Fatalf("expected ConditionNode, got %T", singleExpr(t, file))
	}
	if cond.Op != "<" {
		t.Errorf("expected op '<', got %q", cond.Op)
	}
}

func TestParseLogicalAndOr(t *testing.T) {
	file := parseOK(t, `true && false || true`)
	or, ok := singleExpr(t, file).(*ast.LogicalOrNode)
	if !ok {
		t.Fatalf("expected LogicalOrNode, got %T", singleExpr(t, file))
	}
	if len(or.Operands) != 2 {
		t.Fatalf("expected 2 operands, got %d", len(or.Operands))
	}
	if _, ok := or.Operands[0].(*ast.LogicalAndNode); !ok {
		t.Errorf("expected first operand to be a LogicalAndNode, got %T", or.Operands[0])
	}
}

func TestParseIfElseIfElse(t *testing.T) {
	file := parseOK(t, `if true { 1 } else if false { 2 } else { 3 }`)
	ifNode, ok := singleExpr(t, file).(*ast.IfNode)
	if !ok {
		t.Fatalf("expected IfNode, got %T", singleExpr(t, file))
	}
	if len(ifNode.Conds) != 2 || len(ifNode.Blocks) != 2 {
		t.Fatalf("expected 2 conds/blocks, got %d/%d", len(ifNode.Conds), len(ifNode.Blocks))
	}
	if ifNode.ElseBlock == nil {
		t.Fatal("expected a trailing else block")
	}
}

func TestParseWhile(t *testing.T) {
	file := parseOK(t, `while true { 1 }`)
	if _, ok := singleExpr(t, file).(*ast.WhileNode); !ok {
		t.Fatalf("expected WhileNode, got %T", singleExpr(t, file))
	}
}

func TestParseFunctionParameters(t *testing.T) {
	file := parseOK(t, `fn(x, mut y) { x }`)
	fn, ok := singleExpr(t, file).(*ast.FunctionNode)
	if !ok {
		t.Fatalf("expected FunctionNode, got %T", singleExpr(t, file))
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Mut || fn.Params[0].Name != "x" {
		t.Errorf("param 0: expected immutable x, got %#v", fn.Params[0])
	}
	if !fn.Params[1].Mut || fn.Params[1].Name != "y" {
		t.Errorf("param 1: expected mutable y, got %#v", fn.Params[1])
	}
}

func TestParseCallIndexDotChain(t *testing.T) {
	file := parseOK(t, `a.b[0](1, 2)`)
	call, ok := singleExpr(t, file).(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr at top, got %T", singleExpr(t, file))
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
	idx, ok := call.Callee.(*ast.IndexExpr)
	if !ok {
		t.Fatalf("expected callee to be IndexExpr, got %T", call.Callee)
	}
	dot, ok := idx.Object.(*ast.DotExpr)
	if !ok {
		t.Fatalf("expected index object to be DotExpr, got %T", idx.Object)
	}
	if dot.Property != "b" {
		t.Errorf("expected property 'b', got %q", dot.Property)
	}
}

func TestParseObjectLiteral(t *testing.T) {
	file := parseOK(t, `{x: 1, y: 2}`)
	obj, ok := singleExpr(t, file).(*ast.ObjectNode)
	if !ok {
		t.Fatalf("expected ObjectNode, got %T", singleExpr(t, file))
	}
	if len(obj.Keys) != 2 || obj.Keys[0] != "x" || obj.Keys[1] != "y" {
		t.Errorf("unexpected keys: %v", obj.Keys)
	}
}

func TestParseArrayLiteral(t *testing.T) {
	file := parseOK(t, `[1, 2, 3]`)
	arr, ok := singleExpr(t, file).(*ast.ArrayNode)
	if !ok {
		t.Fatalf("expected ArrayNode, got %T", singleExpr(t, file))
	}
	if len(arr.Elements) != 3 {
		t.Errorf("expected 3 elements, got %d", len(arr.Elements))
	}
}

func TestParseInterpolatedString(t *testing.T) {
	file := parseOK(t, `"sum is {1 + 2}!"`)
	istr, ok := singleExpr(t, file).(*ast.InterpolatedStringNode)
	if !ok {
		t.Fatalf("expected InterpolatedStringNode, got %T", singleExpr(t, file))
	}
	if len(istr.Parts) != 2 || len(istr.Exprs) != 1 {
		t.Fatalf("expected 2 parts/1 expr, got %d/%d", len(istr.Parts), len(istr.Exprs))
	}
	if istr.Parts[0] != "sum is " || istr.Parts[1] != "!" {
		t.Errorf("unexpected parts: %#v", istr.Parts)
	}
}

func TestParseBraceAsExpressionIsAlwaysObject(t *testing.T) {
	// a leading '{' in expression position is never a bare block.
	file := parseOK(t, `{}`)
	if _, ok := singleExpr(t, file).(*ast.ObjectNode); !ok {
		t.Fatalf("expected ObjectNode for a leading '{', got %T", singleExpr(t, file))
	}
}

func TestParseUnexpectedTokenRecordsDiagnosticAndAdvances(t *testing.T) {
	l := lexer.New(`)`, "test.glint")
	tokens, _ := l.Tokenize()
	p := New(tokens)
	_, diags := p.ParseFile()
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
}
