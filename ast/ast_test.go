package ast_test

import (
	"testing"

	"github.com/golox-lang/golox/ast"
	"github.com/golox-lang/golox/token"
)

func TestExprIDsAreUnique(t *testing.T) {
	a := ast.NewLiteralExpr(1.0, 1)
	b := ast.NewLiteralExpr(1.0, 1)
	if a.ID() == b.ID() {
		t.Errorf("two distinct expression nodes got the same ID %d", a.ID())
	}
}

func TestExprIDSurvivesCopy(t *testing.T) {
	a := ast.NewVariableExpr(token.Token{Type: token.Ident, Lexeme: "x"})
	cp := *a
	if cp.ID() != a.ID() {
		t.Errorf("copy's ID = %d, want %d (ID must survive copying the node)", cp.ID(), a.ID())
	}
}

func TestSprint(t *testing.T) {
	name := token.Token{Type: token.Ident, Lexeme: "a", Line: 1}
	stmts := []ast.Stmt{
		ast.NewVarStmt(name, ast.NewLiteralExpr(1.0, 1)),
		ast.NewPrintStmt(ast.NewVariableExpr(name), 2),
	}
	want := "(var a 1)\n(print a)\n"
	if got := ast.Sprint(stmts); got != want {
		t.Errorf("Sprint() = %q, want %q", got, want)
	}
}
