package parser_test

import (
	"bytes"
	"testing"

	"github.com/golox-lang/golox/ast"
	"github.com/golox-lang/golox/loxerr"
	"github.com/golox-lang/golox/parser"
	"github.com/golox-lang/golox/scanner"
)

func parse(t *testing.T, src string) ([]ast.Stmt, *loxerr.Sink) {
	t.Helper()
	sink := loxerr.New(&bytes.Buffer{})
	tokens := scanner.New(src, sink).Scan()
	return parser.New(tokens, sink).Parse(), sink
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"literal number", "1;", "(expr 1)\n"},
		{"literal string", `"hi";`, "(expr hi)\n"},
		{"literal true", "true;", "(expr true)\n"},
		{"literal false", "false;", "(expr false)\n"},
		{"literal nil", "nil;", "(expr nil)\n"},
		{"grouping", "(1);", "(expr (group 1))\n"},
		{"unary", "-1;", "(expr (- 1))\n"},
		{"binary precedence", "1 + 2 * 3;", "(expr (+ 1 (* 2 3)))\n"},
		{"comparison", "1 < 2;", "(expr (< 1 2))\n"},
		{"logical and/or", "true and false or true;", "(expr (or (and true false) true))\n"},
		{"assignment", "a = 1;", "(expr (= a 1))\n"},
		{"call", "f(1, 2);", "(expr (call f 1 2))\n"},
		{"property get", "a.b;", "(expr (get b a))\n"},
		{"property set", "a.b = 1;", "(expr (set b a 1))\n"},
		{"this", "this;", "(expr this)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, sink := parse(t, tt.src)
			if sink.HadParseError() {
				t.Fatal("unexpected parse error")
			}
			if got := ast.Sprint(stmts); got != tt.want {
				t.Errorf("Sprint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"var no init", "var a;", "(var a)\n"},
		{"var with init", "var a = 1;", "(var a 1)\n"},
		{"print", "print 1;", "(print 1)\n"},
		{"block", "{ 1; 2; }", "(block (expr 1) (expr 2))\n"},
		{"if no else", "if (true) 1;", "(if true (expr 1))\n"},
		{"if else", "if (true) 1; else 2;", "(if true (expr 1) (expr 2))\n"},
		{"while", "while (true) 1;", "(while true (expr 1))\n"},
		{"function", "fun f() { return 1; }", "(fun f (return 1))\n"},
		{"return no value", "fun f() { return; }", "(fun f (return))\n"},
		{"class", "class C { f() { return 1; } }", "(class C (fun f (return 1)))\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, sink := parse(t, tt.src)
			if sink.HadParseError() {
				t.Fatal("unexpected parse error")
			}
			if got := ast.Sprint(stmts); got != tt.want {
				t.Errorf("Sprint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestForDesugaring(t *testing.T) {
	stmts, sink := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	if sink.HadParseError() {
		t.Fatal("unexpected parse error")
	}
	want := "(block (var i 0) (while (< i 3) (block (print i) (expr (= i (+ i 1))))))\n"
	if got := ast.Sprint(stmts); got != want {
		t.Errorf("Sprint() = %q, want %q", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing semicolon", "1"},
		{"missing closing paren", "(1;"},
		{"invalid assignment target", "1 = 2;"},
		{"unexpected token", "var;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, sink := parse(t, tt.src)
			if !sink.HadParseError() {
				t.Error("expected a parse error to be reported, got none")
			}
		})
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	stmts, sink := parse(t, "var; var a = 1; print a;")
	if !sink.HadParseError() {
		t.Fatal("expected a parse error")
	}
	want := "(var a 1)\n(print a)\n"
	if got := ast.Sprint(stmts); got != want {
		t.Errorf("Sprint() = %q, want %q (parser should recover and still parse the remaining statements)", got, want)
	}
}

func TestTooManyParameters(t *testing.T) {
	src := "fun f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "a" + string(rune('0'+i%10))
	}
	src += ") {}"
	_, sink := parse(t, src)
	if !sink.HadParseError() {
		t.Error("expected a parse error for more than 255 parameters")
	}
}
