package parser

import (
	"testing"

	"plc/ast"
	"plc/lexer"
	"plc/token"
)

func parse(t *testing.T, src string) *ast.Source {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	source, err := Make(tokens).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return source
}

func TestParseMinimalProgram(t *testing.T) {
	src := parse(t, `FUN main(): Integer DO RETURN 0; END`)
	if len(src.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(src.Functions))
	}
	fn := src.Functions[0]
	if fn.Name != "main" || fn.ReturnTypeName != "Integer" {
		t.Fatalf("unexpected function: %+v", fn)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body))
	}
	ret, ok := fn.Body[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected *ast.Return, got %T", fn.Body[0])
	}
	lit, ok := ret.Value.(*ast.Literal)
	if !ok || lit.Kind != ast.LitInteger || lit.Int.String() != "0" {
		t.Fatalf("unexpected return value: %+v", ret.Value)
	}
}

func TestParseGlobalVariants(t *testing.T) {
	src := parse(t, `
LIST xs: Integer = [1, 2, 3];
VAR counter: Integer = 0;
VAL answer: Integer = 42;
FUN main(): Integer DO RETURN 0; END
`)
	if len(src.Globals) != 3 {
		t.Fatalf("expected 3 globals, got %d", len(src.Globals))
	}
	list := src.Globals[0]
	if !list.Mutable || list.TypeName != "Integer" {
		t.Fatalf("unexpected list global: %+v", list)
	}
	listInit, ok := list.Init.(*ast.List)
	if !ok || len(listInit.Elements) != 3 {
		t.Fatalf("expected a 3-element list initializer, got %+v", list.Init)
	}

	counter := src.Globals[1]
	if !counter.Mutable {
		t.Error("VAR global should be mutable")
	}
	answer := src.Globals[2]
	if answer.Mutable {
		t.Error("VAL global should be immutable")
	}
}

func TestParsePrecedenceIsLeftAssociativeIncludingCaret(t *testing.T) {
	// 2 ^ 3 ^ 2 must parse as (2 ^ 3) ^ 2, not 2 ^ (3 ^ 2).
	src := parse(t, `FUN main(): Integer DO RETURN 2 ^ 3 ^ 2; END`)
	ret := src.Functions[0].Body[0].(*ast.Return)
	top, ok := ret.Value.(*ast.Binary)
	if !ok || top.Operator != "^" {
		t.Fatalf("expected top-level ^, got %+v", ret.Value)
	}
	left, ok := top.Left.(*ast.Binary)
	if !ok || left.Operator != "^" {
		t.Fatalf("expected left-associative nesting on the left operand, got %+v", top.Left)
	}
	if _, ok := top.Right.(*ast.Literal); !ok {
		t.Fatalf("expected a literal right operand, got %+v", top.Right)
	}
}

func TestParseIfSwitchWhile(t *testing.T) {
	src := parse(t, `
FUN main(): Integer DO
  LET x: Integer = 2;
  IF x == 2 DO RETURN 1; ELSE RETURN 0; END
  SWITCH x CASE 1: RETURN 10; DEFAULT RETURN 30; END
  WHILE x == 2 DO RETURN 0; END
  RETURN 0;
END
`)
	body := src.Functions[0].Body
	if len(body) != 5 {
		t.Fatalf("expected 5 statements, got %d: %+v", len(body), body)
	}
	if _, ok := body[1].(*ast.If); !ok {
		t.Errorf("expected *ast.If at index 1, got %T", body[1])
	}
	sw, ok := body[2].(*ast.Switch)
	if !ok {
		t.Fatalf("expected *ast.Switch at index 2, got %T", body[2])
	}
	if len(sw.Cases) != 2 || sw.Cases[1].Value != nil {
		t.Fatalf("expected 2 cases with the default last, got %+v", sw.Cases)
	}
	if _, ok := body[3].(*ast.While); !ok {
		t.Errorf("expected *ast.While at index 3, got %T", body[3])
	}
}

func TestParseCallAccessAndIndex(t *testing.T) {
	src := parse(t, `
LIST xs: Integer = [1, 2, 3];
FUN main(): Integer DO
  xs[1] = 9;
  print(xs[1]);
  RETURN xs[1];
END
`)
	body := src.Functions[0].Body
	assign, ok := body[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", body[0])
	}
	access, ok := assign.Receiver.(*ast.Access)
	if !ok || access.Name != "xs" || access.Index == nil {
		t.Fatalf("expected indexed access to xs, got %+v", assign.Receiver)
	}

	exprStmt, ok := body[1].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected *ast.ExpressionStmt, got %T", body[1])
	}
	call, ok := exprStmt.Expr.(*ast.Call)
	if !ok || call.Name != "print" || len(call.Args) != 1 {
		t.Fatalf("expected a 1-arg call to print, got %+v", exprStmt.Expr)
	}
}

func TestParseRejectsUnexpectedToken(t *testing.T) {
	_, err := Make(mustScan(t, `FUN main(): Integer DO RETURN ; END`)).Parse()
	if err == nil {
		t.Fatal("expected a ParseError for a missing return value")
	}
	if _, ok := err.(ParseError); !ok {
		t.Fatalf("expected a ParseError, got %T", err)
	}
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	_, err := Make(mustScan(t, `FUN main(): Integer DO RETURN 0; END FUN`)).Parse()
	if err == nil {
		t.Fatal("expected a ParseError for a dangling FUN keyword")
	}
}

func mustScan(t *testing.T, src string) []token.Token {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	return tokens
}
