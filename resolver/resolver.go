// Package resolver performs a single static pass over a parsed program, annotating every local
// variable and 'this' reference with the number of enclosing lexical scopes to walk at runtime to
// reach its defining scope. The interpreter consults the resulting table instead of searching the
// environment chain by name.
package resolver

import (
	"github.com/golox-lang/golox/ast"
	"github.com/golox-lang/golox/loxerr"
	"github.com/golox-lang/golox/token"
)

// Distances maps an expression's identity (ast.Expr.ID()) to the number of enclosing environments
// to walk from the environment active at evaluation time to reach the scope that defines it. A
// missing entry means the reference should be looked up in globals.
type Distances map[int64]int

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionInitializer
	functionMethod
)

type classType int

const (
	classNone classType = iota
	classClass
)

// scope maps a name to whether it has finished being defined in this scope.
type scope map[string]bool

// Resolver performs the static scope-resolution pass described in the package doc.
type Resolver struct {
	sink            *loxerr.Sink
	scopes          []scope
	currentFunction functionType
	currentClass    classType
	distances       Distances
}

// New constructs a Resolver which reports static errors through sink.
func New(sink *loxerr.Sink) *Resolver {
	return &Resolver{sink: sink, distances: Distances{}}
}

// Resolve walks stmts and returns the resulting distance table. Static errors are reported
// through the sink; Resolve itself never panics on them.
func Resolve(stmts []ast.Stmt, sink *loxerr.Sink) Distances {
	r := New(sink)
	r.resolveStmts(stmts)
	return r.distances
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ast.ClassStmt:
		r.resolveClassStmt(s)
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionFunction)
	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)
	case *ast.ReturnStmt:
		r.resolveReturnStmt(s)
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initialiser != nil {
			r.resolveExpr(s.Initialiser)
		}
		r.define(s.Name)
	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	default:
		panic(unreachableStmt(s))
	}
}

func (r *Resolver) resolveClassStmt(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	r.beginScope()
	defer r.endScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method, kind)
	}
}

func (r *Resolver) resolveReturnStmt(s *ast.ReturnStmt) {
	if r.currentFunction == functionNone {
		r.sink.TokenError(s.Keyword, "Can't return from top-level code.")
	}
	if s.Value != nil {
		if r.currentFunction == functionInitializer {
			r.sink.TokenError(s.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(s.Value)
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosingFunction }()

	r.beginScope()
	defer r.endScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}
	case *ast.GetExpr:
		r.resolveExpr(e.Object)
	case *ast.GroupingExpr:
		r.resolveExpr(e.Inner)
	case *ast.LiteralExpr:
		// nothing to resolve
	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.SuperExpr:
		// super parses but evaluating it is a runtime error; nothing to resolve.
	case *ast.ThisExpr:
		if r.currentClass == classNone {
			r.sink.TokenError(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)
	case *ast.VariableExpr:
		r.resolveVariableExpr(e)
	default:
		panic(unreachableExpr(e))
	}
}

func (r *Resolver) resolveVariableExpr(e *ast.VariableExpr) {
	if len(r.scopes) > 0 {
		if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !defined {
			r.sink.TokenError(e.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e, e.Name)
}

func (r *Resolver) resolveLocal(e ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.distances[e.ID()] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any scope: treated as a global at runtime.
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare marks name as declared but not yet defined in the innermost scope. At the top level
// (no scopes on the stack) this is a no-op: top-level declarations resolve as globals.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.sink.TokenError(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

// define marks name as fully defined in the innermost scope, making it visible to references.
func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func unreachableStmt(s ast.Stmt) string {
	return "resolver: unexpected statement type"
}

func unreachableExpr(e ast.Expr) string {
	return "resolver: unexpected expression type"
}
