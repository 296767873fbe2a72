// Package ast defines the types used to represent the abstract syntax tree of a Lox program.
package ast

import "github.com/golox-lang/golox/token"

// Node is the interface which all AST nodes implement.
type Node interface {
	// Line returns the source line that best represents this node for diagnostics.
	Line() int
}

// Stmt is the interface which all statement nodes implement.
type Stmt interface {
	Node
	isStmt()
}

type stmt struct{}

func (stmt) isStmt() {}

// Expr is the interface which all expression nodes implement.
//
// Every Expr value carries a process-unique identity assigned when it was constructed. The
// resolver keys its side-table by this identity, so that two textually identical expressions at
// different source positions are resolved independently. The identity survives copying: it's an
// ordinary field, so copying an *Expr value copies its ID along with it.
type Expr interface {
	Node
	// ID returns this expression node's process-unique identity.
	ID() int64
	isExpr()
}

var nextExprID int64

func newExprID() int64 {
	nextExprID++
	return nextExprID
}

type expr struct {
	id int64
}

func newExpr() expr {
	return expr{id: newExprID()}
}

func (e expr) ID() int64 { return e.id }
func (expr) isExpr()     {}

// Expressions.

// AssignExpr is an assignment expression, such as a = 1.
type AssignExpr struct {
	expr
	Name  token.Token
	Value Expr
}

func NewAssignExpr(name token.Token, value Expr) *AssignExpr {
	return &AssignExpr{expr: newExpr(), Name: name, Value: value}
}

func (a *AssignExpr) Line() int { return a.Name.Line }

// BinaryExpr is a binary operator expression, such as a + b.
type BinaryExpr struct {
	expr
	Left  Expr
	Op    token.Token
	Right Expr
}

func NewBinaryExpr(left Expr, op token.Token, right Expr) *BinaryExpr {
	return &BinaryExpr{expr: newExpr(), Left: left, Op: op, Right: right}
}

func (b *BinaryExpr) Line() int { return b.Op.Line }

// CallExpr is a function or class call, such as f(1, 2).
type CallExpr struct {
	expr
	Callee Expr
	Paren  token.Token // the closing ')', used to report the line of a call-site error
	Args   []Expr
}

func NewCallExpr(callee Expr, paren token.Token, args []Expr) *CallExpr {
	return &CallExpr{expr: newExpr(), Callee: callee, Paren: paren, Args: args}
}

func (c *CallExpr) Line() int { return c.Paren.Line }

// GetExpr is a property access expression, such as a.b.
type GetExpr struct {
	expr
	Object Expr
	Name   token.Token
}

func NewGetExpr(object Expr, name token.Token) *GetExpr {
	return &GetExpr{expr: newExpr(), Object: object, Name: name}
}

func (g *GetExpr) Line() int { return g.Name.Line }

// GroupingExpr is a parenthesised expression, such as (a + b).
type GroupingExpr struct {
	expr
	Inner Expr
}

func NewGroupingExpr(inner Expr) *GroupingExpr {
	return &GroupingExpr{expr: newExpr(), Inner: inner}
}

func (g *GroupingExpr) Line() int { return g.Inner.Line() }

// LiteralExpr is a literal expression, such as 123, "abc", true, or nil.
// Value holds a float64, string, bool, or nil.
type LiteralExpr struct {
	expr
	Value any
	line  int
}

func NewLiteralExpr(value any, line int) *LiteralExpr {
	return &LiteralExpr{expr: newExpr(), Value: value, line: line}
}

func (l *LiteralExpr) Line() int { return l.line }

// LogicalExpr is a short-circuiting 'and'/'or' expression.
type LogicalExpr struct {
	expr
	Left  Expr
	Op    token.Token
	Right Expr
}

func NewLogicalExpr(left Expr, op token.Token, right Expr) *LogicalExpr {
	return &LogicalExpr{expr: newExpr(), Left: left, Op: op, Right: right}
}

func (l *LogicalExpr) Line() int { return l.Op.Line }

// SetExpr is a property assignment expression, such as a.b = 1.
type SetExpr struct {
	expr
	Object Expr
	Name   token.Token
	Value  Expr
}

func NewSetExpr(object Expr, name token.Token, value Expr) *SetExpr {
	return &SetExpr{expr: newExpr(), Object: object, Name: name, Value: value}
}

func (s *SetExpr) Line() int { return s.Name.Line }

// SuperExpr is a super-method reference, such as super.method. It parses but has no executable
// semantics in this interpreter: evaluating one is a runtime error.
type SuperExpr struct {
	expr
	Keyword token.Token
	Method  token.Token
}

func NewSuperExpr(keyword, method token.Token) *SuperExpr {
	return &SuperExpr{expr: newExpr(), Keyword: keyword, Method: method}
}

func (s *SuperExpr) Line() int { return s.Keyword.Line }

// ThisExpr is a use of the 'this' keyword.
type ThisExpr struct {
	expr
	Keyword token.Token
}

func NewThisExpr(keyword token.Token) *ThisExpr {
	return &ThisExpr{expr: newExpr(), Keyword: keyword}
}

func (t *ThisExpr) Line() int { return t.Keyword.Line }

// UnaryExpr is a unary operator expression, such as -a or !a.
type UnaryExpr struct {
	expr
	Op    token.Token
	Right Expr
}

func NewUnaryExpr(op token.Token, right Expr) *UnaryExpr {
	return &UnaryExpr{expr: newExpr(), Op: op, Right: right}
}

func (u *UnaryExpr) Line() int { return u.Op.Line }

// VariableExpr is a variable reference, such as a.
type VariableExpr struct {
	expr
	Name token.Token
}

func NewVariableExpr(name token.Token) *VariableExpr {
	return &VariableExpr{expr: newExpr(), Name: name}
}

func (v *VariableExpr) Line() int { return v.Name.Line }

// Statements.

// BlockStmt is a brace-delimited sequence of statements introducing a new lexical scope.
type BlockStmt struct {
	stmt
	Stmts []Stmt
	line  int
}

func NewBlockStmt(stmts []Stmt, line int) *BlockStmt {
	return &BlockStmt{Stmts: stmts, line: line}
}

func (b *BlockStmt) Line() int { return b.line }

// ClassStmt is a class declaration.
type ClassStmt struct {
	stmt
	Name    token.Token
	Methods []*FunctionStmt
}

func NewClassStmt(name token.Token, methods []*FunctionStmt) *ClassStmt {
	return &ClassStmt{Name: name, Methods: methods}
}

func (c *ClassStmt) Line() int { return c.Name.Line }

// ExpressionStmt is an expression evaluated for its side effects.
type ExpressionStmt struct {
	stmt
	Expr Expr
}

func NewExpressionStmt(expr Expr) *ExpressionStmt {
	return &ExpressionStmt{Expr: expr}
}

func (e *ExpressionStmt) Line() int { return e.Expr.Line() }

// FunctionStmt is a function or method declaration.
type FunctionStmt struct {
	stmt
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func NewFunctionStmt(name token.Token, params []token.Token, body []Stmt) *FunctionStmt {
	return &FunctionStmt{Name: name, Params: params, Body: body}
}

func (f *FunctionStmt) Line() int { return f.Name.Line }

// IfStmt is a conditional statement, with an optional else branch.
type IfStmt struct {
	stmt
	Cond Expr
	Then Stmt
	Else Stmt
	line int
}

func NewIfStmt(cond Expr, then, els Stmt, line int) *IfStmt {
	return &IfStmt{Cond: cond, Then: then, Else: els, line: line}
}

func (i *IfStmt) Line() int { return i.line }

// PrintStmt is a print statement.
type PrintStmt struct {
	stmt
	Expr Expr
	line int
}

func NewPrintStmt(expr Expr, line int) *PrintStmt {
	return &PrintStmt{Expr: expr, line: line}
}

func (p *PrintStmt) Line() int { return p.line }

// ReturnStmt is a return statement with an optional value.
type ReturnStmt struct {
	stmt
	Keyword token.Token
	Value   Expr
}

func NewReturnStmt(keyword token.Token, value Expr) *ReturnStmt {
	return &ReturnStmt{Keyword: keyword, Value: value}
}

func (r *ReturnStmt) Line() int { return r.Keyword.Line }

// VarStmt is a variable declaration with an optional initialiser.
type VarStmt struct {
	stmt
	Name        token.Token
	Initialiser Expr
}

func NewVarStmt(name token.Token, initialiser Expr) *VarStmt {
	return &VarStmt{Name: name, Initialiser: initialiser}
}

func (v *VarStmt) Line() int { return v.Name.Line }

// WhileStmt is a while loop.
type WhileStmt struct {
	stmt
	Cond Expr
	Body Stmt
	line int
}

func NewWhileStmt(cond Expr, body Stmt, line int) *WhileStmt {
	return &WhileStmt{Cond: cond, Body: body, line: line}
}

func (w *WhileStmt) Line() int { return w.line }
