package interpreter

import (
	"fmt"
	"strconv"

	"github.com/golox-lang/golox/ast"
)

// Runtime values are represented using plain Go types wherever possible: nil for Lox's nil,
// bool for Lox's booleans, float64 for numbers, and string for strings. Callables and
// object-system values get their own types below.

// callable is implemented by any runtime value that can appear on the left of a call expression.
type callable interface {
	arity() int
	call(in *Interpreter, args []any) any
}

// Function is a user-defined Lox function or method: the declaration it was created from, the
// environment it closed over at definition time, and whether it's a class initialiser (which
// always implicitly returns 'this' regardless of its body's return statements).
type Function struct {
	decl          *ast.FunctionStmt
	closure       *environment
	isInitialiser bool
}

func newFunction(decl *ast.FunctionStmt, closure *environment, isInitialiser bool) *Function {
	return &Function{decl: decl, closure: closure, isInitialiser: isInitialiser}
}

func (f *Function) arity() int { return len(f.decl.Params) }

func (f *Function) call(in *Interpreter, args []any) (result any) {
	env := newEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.define(param.Lexeme, args[i])
	}

	defer func() {
		r := recover()
		if r != nil {
			if _, ok := r.(returnSignal); !ok {
				panic(r)
			}
		}
		if f.isInitialiser {
			result = f.closure.getAt(0, "this")
			return
		}
		if ret, ok := r.(returnSignal); ok {
			result = ret.value
		}
	}()
	in.executeBlock(f.decl.Body, env)
	return nil
}

func (f *Function) String() string {
	return "<fn " + f.decl.Name.Lexeme + ">"
}

// bind produces a copy of f whose closure has 'this' bound to instance, used when a method is
// looked up on an instance so that later calls to it see the right receiver.
func (f *Function) bind(instance *Instance) *Function {
	env := newEnvironment(f.closure)
	env.define("this", instance)
	return newFunction(f.decl, env, f.isInitialiser)
}

// Class is a Lox class: a name and its directly-declared methods, keyed by name.
type Class struct {
	name    string
	methods map[string]*Function
}

func newClass(name string, methods map[string]*Function) *Class {
	return &Class{name: name, methods: methods}
}

func (c *Class) findMethod(name string) (*Function, bool) {
	m, ok := c.methods[name]
	return m, ok
}

func (c *Class) arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.arity()
	}
	return 0
}

func (c *Class) call(in *Interpreter, args []any) any {
	instance := newInstance(c)
	if init, ok := c.findMethod("init"); ok {
		init.bind(instance).call(in, args)
	}
	return instance
}

func (c *Class) String() string {
	return c.name
}

// Instance is a runtime instance of a Lox class: a mutable bag of fields plus a reference to the
// class that methods and the instance's display name are looked up on.
type Instance struct {
	class  *Class
	fields map[string]any
}

func newInstance(class *Class) *Instance {
	return &Instance{class: class, fields: map[string]any{}}
}

func (i *Instance) get(name string) (any, bool) {
	if v, ok := i.fields[name]; ok {
		return v, true
	}
	if m, ok := i.class.findMethod(name); ok {
		return m.bind(i), true
	}
	return nil, false
}

func (i *Instance) set(name string, value any) {
	i.fields[name] = value
}

func (i *Instance) String() string {
	return i.class.name + " instance"
}

// isTruthy reports whether v is truthy: everything is truthy except nil and the boolean false.
func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual reports Lox's notion of equality: only a Number compared with a Number, or a String
// compared with a String, can ever be true. Every other pairing of types - including nil with
// nil, and bool with bool - is always false. This matches the reference interpreter this was
// ported from exactly, odd as it looks.
func isEqual(a, b any) bool {
	an, aIsNum := a.(float64)
	bn, bIsNum := b.(float64)
	if aIsNum && bIsNum {
		return an == bn
	}
	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	if aIsStr && bIsStr {
		return as == bs
	}
	return false
}

// stringify renders v the way 'print' and the REPL display a value.
func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return "Nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
