package ast

import (
	"fmt"
	"strings"
)

// Sprint formats each statement as a single-line s-expression followed by a newline, in the style
// of the book's AST printer.
// It's used by tests and by the -ast debugging flag rather than by the interpreter itself.
func Sprint(stmts []Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(sprintStmt(s))
		b.WriteString("\n")
	}
	return b.String()
}

func sprintStmt(s Stmt) string {
	switch s := s.(type) {
	case *BlockStmt:
		return parenthesize("block", stmtsToNodes(s.Stmts)...)
	case *ClassStmt:
		nodes := make([]node, len(s.Methods))
		for i, m := range s.Methods {
			nodes[i] = node(sprintStmt(m))
		}
		return parenthesize("class "+s.Name.Lexeme, nodes...)
	case *ExpressionStmt:
		return parenthesize("expr", node(sprintExpr(s.Expr)))
	case *FunctionStmt:
		return parenthesize("fun "+s.Name.Lexeme, stmtsToNodes(s.Body)...)
	case *IfStmt:
		nodes := []node{node(sprintExpr(s.Cond)), node(sprintStmt(s.Then))}
		if s.Else != nil {
			nodes = append(nodes, node(sprintStmt(s.Else)))
		}
		return parenthesize("if", nodes...)
	case *PrintStmt:
		return parenthesize("print", node(sprintExpr(s.Expr)))
	case *ReturnStmt:
		if s.Value == nil {
			return "(return)"
		}
		return parenthesize("return", node(sprintExpr(s.Value)))
	case *VarStmt:
		if s.Initialiser == nil {
			return parenthesize("var " + s.Name.Lexeme)
		}
		return parenthesize("var "+s.Name.Lexeme, node(sprintExpr(s.Initialiser)))
	case *WhileStmt:
		return parenthesize("while", node(sprintExpr(s.Cond)), node(sprintStmt(s.Body)))
	default:
		return fmt.Sprintf("<unknown stmt %T>", s)
	}
}

func sprintExpr(e Expr) string {
	switch e := e.(type) {
	case *AssignExpr:
		return parenthesize("= "+e.Name.Lexeme, node(sprintExpr(e.Value)))
	case *BinaryExpr:
		return parenthesize(e.Op.Lexeme, node(sprintExpr(e.Left)), node(sprintExpr(e.Right)))
	case *CallExpr:
		nodes := []node{node(sprintExpr(e.Callee))}
		for _, arg := range e.Args {
			nodes = append(nodes, node(sprintExpr(arg)))
		}
		return parenthesize("call", nodes...)
	case *GetExpr:
		return parenthesize("get "+e.Name.Lexeme, node(sprintExpr(e.Object)))
	case *GroupingExpr:
		return parenthesize("group", node(sprintExpr(e.Inner)))
	case *LiteralExpr:
		if e.Value == nil {
			return "nil"
		}
		return fmt.Sprintf("%v", e.Value)
	case *LogicalExpr:
		return parenthesize(e.Op.Lexeme, node(sprintExpr(e.Left)), node(sprintExpr(e.Right)))
	case *SetExpr:
		return parenthesize("set "+e.Name.Lexeme, node(sprintExpr(e.Object)), node(sprintExpr(e.Value)))
	case *SuperExpr:
		return "(super " + e.Method.Lexeme + ")"
	case *ThisExpr:
		return "this"
	case *UnaryExpr:
		return parenthesize(e.Op.Lexeme, node(sprintExpr(e.Right)))
	case *VariableExpr:
		return e.Name.Lexeme
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

// node is a pre-rendered s-expression fragment.
type node string

func stmtsToNodes(stmts []Stmt) []node {
	nodes := make([]node, len(stmts))
	for i, s := range stmts {
		nodes[i] = node(sprintStmt(s))
	}
	return nodes
}

func parenthesize(name string, parts ...node) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, p := range parts {
		b.WriteString(" ")
		b.WriteString(string(p))
	}
	b.WriteString(")")
	return b.String()
}
