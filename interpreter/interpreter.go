// Package interpreter tree-walks a resolved Lox program, evaluating it directly against a chain
// of environments rather than compiling it to any intermediate form.
package interpreter

import (
	"fmt"
	"io"

	"github.com/golox-lang/golox/ast"
	"github.com/golox-lang/golox/loxerr"
	"github.com/golox-lang/golox/resolver"
	"github.com/golox-lang/golox/token"
)

// returnSignal unwinds the Go call stack back to the enclosing Function.call when a 'return'
// statement executes. It's carried by panic/recover like a runtime error, but tagged with its own
// type so it's never mistaken for one and never reaches the diagnostics sink.
type returnSignal struct {
	value any
}

// Interpreter executes a resolved Lox program against a chain of environments rooted at globals.
type Interpreter struct {
	sink      *loxerr.Sink
	out       io.Writer
	globals   *environment
	env       *environment
	distances resolver.Distances
}

// New constructs an Interpreter which writes 'print' output to out and reports runtime errors
// through sink.
func New(out io.Writer, sink *loxerr.Sink) *Interpreter {
	globals := newEnvironment(nil)
	return &Interpreter{sink: sink, out: out, globals: globals, env: globals, distances: resolver.Distances{}}
}

// Run resolves and executes a freshly parsed program. Static errors found while resolving are
// reported through the sink and prevent execution, matching the scanner/parser's own behaviour of
// never running a program that failed an earlier stage.
func (in *Interpreter) Run(stmts []ast.Stmt) {
	for id, distance := range resolver.Resolve(stmts, in.sink) {
		in.distances[id] = distance
	}
	if in.sink.HadParseError() {
		return
	}
	in.Exec(stmts)
}

// Exec executes an already-resolved program, reporting a runtime error through the sink if one
// occurs rather than letting it propagate as a Go panic.
func (in *Interpreter) Exec(stmts []ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			rtErr, ok := r.(*loxerr.RuntimeError)
			if !ok {
				panic(r)
			}
			in.sink.RuntimeError(rtErr)
		}
	}()
	for _, s := range stmts {
		in.execStmt(s)
	}
}

func (in *Interpreter) execStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.BlockStmt:
		in.executeBlock(s.Stmts, newEnvironment(in.env))
	case *ast.ClassStmt:
		in.execClassStmt(s)
	case *ast.ExpressionStmt:
		in.eval(s.Expr)
	case *ast.FunctionStmt:
		fn := newFunction(s, in.env, false)
		in.env.define(s.Name.Lexeme, fn)
	case *ast.IfStmt:
		if isTruthy(in.eval(s.Cond)) {
			in.execStmt(s.Then)
		} else if s.Else != nil {
			in.execStmt(s.Else)
		}
	case *ast.PrintStmt:
		fmt.Fprintln(in.out, stringify(in.eval(s.Expr)))
	case *ast.ReturnStmt:
		var value any
		if s.Value != nil {
			value = in.eval(s.Value)
		}
		panic(returnSignal{value: value})
	case *ast.VarStmt:
		var value any
		if s.Initialiser != nil {
			value = in.eval(s.Initialiser)
		}
		in.env.define(s.Name.Lexeme, value)
	case *ast.WhileStmt:
		for isTruthy(in.eval(s.Cond)) {
			in.execStmt(s.Body)
		}
	default:
		panic(fmt.Sprintf("interpreter: unexpected statement type %T", s))
	}
}

func (in *Interpreter) execClassStmt(s *ast.ClassStmt) {
	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = newFunction(m, in.env, m.Name.Lexeme == "init")
	}
	class := newClass(s.Name.Lexeme, methods)
	in.env.define(s.Name.Lexeme, class)
}

// executeBlock runs stmts against env, restoring the interpreter's previous environment before
// returning even if a statement panics (a return unwind or a runtime error).
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *environment) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()
	for _, s := range stmts {
		in.execStmt(s)
	}
}

func (in *Interpreter) eval(e ast.Expr) any {
	switch e := e.(type) {
	case *ast.AssignExpr:
		return in.evalAssignExpr(e)
	case *ast.BinaryExpr:
		return in.evalBinaryExpr(e)
	case *ast.CallExpr:
		return in.evalCallExpr(e)
	case *ast.GetExpr:
		return in.evalGetExpr(e)
	case *ast.GroupingExpr:
		return in.eval(e.Inner)
	case *ast.LiteralExpr:
		return e.Value
	case *ast.LogicalExpr:
		return in.evalLogicalExpr(e)
	case *ast.SetExpr:
		return in.evalSetExpr(e)
	case *ast.SuperExpr:
		panic(loxerr.NewRuntimeError(e.Keyword, "super is not implemented"))
	case *ast.ThisExpr:
		return in.lookUpVariable(e.Keyword, e)
	case *ast.UnaryExpr:
		return in.evalUnaryExpr(e)
	case *ast.VariableExpr:
		return in.lookUpVariable(e.Name, e)
	default:
		panic(fmt.Sprintf("interpreter: unexpected expression type %T", e))
	}
}

func (in *Interpreter) evalAssignExpr(e *ast.AssignExpr) any {
	value := in.eval(e.Value)
	if distance, ok := in.distances[e.ID()]; ok {
		in.env.assignAt(distance, e.Name.Lexeme, value)
	} else if !in.globals.assign(e.Name.Lexeme, value) {
		panic(loxerr.NewRuntimeError(e.Name, "Undefined variable '%s'.", e.Name.Lexeme))
	}
	return value
}

func (in *Interpreter) evalLogicalExpr(e *ast.LogicalExpr) any {
	left := in.eval(e.Left)
	if e.Op.Type == token.Or {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}
	return in.eval(e.Right)
}

func (in *Interpreter) evalCallExpr(e *ast.CallExpr) any {
	callee := in.eval(e.Callee)
	args := make([]any, len(e.Args))
	for i, a := range e.Args {
		args[i] = in.eval(a)
	}
	fn, ok := callee.(callable)
	if !ok {
		panic(loxerr.NewRuntimeError(e.Paren, "Can only call functions and classes."))
	}
	if len(args) != fn.arity() {
		panic(loxerr.NewRuntimeError(e.Paren, "Expected %d arguments but got %d.", fn.arity(), len(args)))
	}
	return fn.call(in, args)
}

func (in *Interpreter) evalGetExpr(e *ast.GetExpr) any {
	object := in.eval(e.Object)
	instance, ok := object.(*Instance)
	if !ok {
		panic(loxerr.NewRuntimeError(e.Name, "Only instances have properties."))
	}
	v, ok := instance.get(e.Name.Lexeme)
	if !ok {
		panic(loxerr.NewRuntimeError(e.Name, "Undefined property '%s'.", e.Name.Lexeme))
	}
	return v
}

func (in *Interpreter) evalSetExpr(e *ast.SetExpr) any {
	object := in.eval(e.Object)
	instance, ok := object.(*Instance)
	if !ok {
		panic(loxerr.NewRuntimeError(e.Name, "Only instances have fields."))
	}
	value := in.eval(e.Value)
	instance.set(e.Name.Lexeme, value)
	return value
}

func (in *Interpreter) evalUnaryExpr(e *ast.UnaryExpr) any {
	right := in.eval(e.Right)
	switch e.Op.Type {
	case token.Minus:
		n, ok := right.(float64)
		if !ok {
			panic(loxerr.NewRuntimeError(e.Op, "Operand must be a number."))
		}
		return -n
	case token.Bang:
		return !isTruthy(right)
	default:
		panic(fmt.Sprintf("interpreter: unexpected unary operator %s", e.Op.Type))
	}
}

func (in *Interpreter) evalBinaryExpr(e *ast.BinaryExpr) any {
	left := in.eval(e.Left)
	right := in.eval(e.Right)
	switch e.Op.Type {
	case token.Plus:
		return in.evalPlus(e.Op, left, right)
	case token.Minus:
		l, r := in.numberOperands(e.Op, left, right)
		return l - r
	case token.Slash:
		l, r := in.numberOperands(e.Op, left, right)
		return l / r
	case token.Asterisk:
		l, r := in.numberOperands(e.Op, left, right)
		return l * r
	case token.Greater:
		l, r := in.numberOperands(e.Op, left, right)
		return l > r
	case token.GreaterEqual:
		l, r := in.numberOperands(e.Op, left, right)
		return l >= r
	case token.Less:
		l, r := in.numberOperands(e.Op, left, right)
		return l < r
	case token.LessEqual:
		l, r := in.numberOperands(e.Op, left, right)
		return l <= r
	case token.Equal:
		return isEqual(left, right)
	case token.BangEqual:
		return !isEqual(left, right)
	default:
		panic(fmt.Sprintf("interpreter: unexpected binary operator %s", e.Op.Type))
	}
}

func (in *Interpreter) evalPlus(op token.Token, left, right any) any {
	if l, ok := left.(float64); ok {
		if r, ok := right.(float64); ok {
			return l + r
		}
	}
	if l, ok := left.(string); ok {
		if r, ok := right.(string); ok {
			return l + r
		}
	}
	panic(loxerr.NewRuntimeError(op, "Operands must be two numbers or two strings."))
}

func (in *Interpreter) numberOperands(op token.Token, left, right any) (float64, float64) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		panic(loxerr.NewRuntimeError(op, "Operands must be numbers."))
	}
	return l, r
}

func (in *Interpreter) lookUpVariable(name token.Token, e ast.Expr) any {
	if distance, ok := in.distances[e.ID()]; ok {
		return in.env.getAt(distance, name.Lexeme)
	}
	v, ok := in.globals.get(name.Lexeme)
	if !ok {
		panic(loxerr.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme))
	}
	return v
}
