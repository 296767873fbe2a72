package resolver_test

import (
	"bytes"
	"testing"

	"github.com/golox-lang/golox/loxerr"
	"github.com/golox-lang/golox/parser"
	"github.com/golox-lang/golox/resolver"
	"github.com/golox-lang/golox/scanner"
)

func resolve(t *testing.T, src string) (resolver.Distances, *loxerr.Sink) {
	t.Helper()
	sink := loxerr.New(&bytes.Buffer{})
	tokens := scanner.New(src, sink).Scan()
	stmts := parser.New(tokens, sink).Parse()
	if sink.HadParseError() {
		t.Fatalf("unexpected parse error for %q", src)
	}
	return resolver.Resolve(stmts, sink), sink
}

func TestResolveLocalDistance(t *testing.T) {
	src := `
var a = "global";
{
  var a = "outer";
  {
    var a = "inner";
    print a;
  }
  print a;
}
print a;
`
	distances, sink := resolve(t, src)
	if sink.HadParseError() {
		t.Fatal("unexpected resolver error")
	}
	// 3 print statements each referencing a VariableExpr; expect distances 0, 0, and a global
	// (no entry) respectively, one block apart each.
	if len(distances) != 2 {
		t.Errorf("len(distances) = %d, want 2 (the two local prints; the global print has no entry)", len(distances))
	}
}

func TestReadLocalVariableInOwnInitialiser(t *testing.T) {
	_, sink := resolve(t, `
{
  var a = a;
}
`)
	if !sink.HadParseError() {
		t.Error("expected an error for reading a local variable in its own initialiser")
	}
}

func TestReturnFromTopLevel(t *testing.T) {
	_, sink := resolve(t, "return 1;")
	if !sink.HadParseError() {
		t.Error("expected an error for returning from top-level code")
	}
}

func TestReturnValueFromInitialiser(t *testing.T) {
	_, sink := resolve(t, `
class C {
  init() {
    return 1;
  }
}
`)
	if !sink.HadParseError() {
		t.Error("expected an error for returning a value from an initialiser")
	}
}

func TestReturnFromInitialiserWithoutValue(t *testing.T) {
	_, sink := resolve(t, `
class C {
  init() {
    return;
  }
}
`)
	if sink.HadParseError() {
		t.Error("returning without a value from an initialiser should be allowed")
	}
}

func TestThisOutsideClass(t *testing.T) {
	_, sink := resolve(t, "print this;")
	if !sink.HadParseError() {
		t.Error("expected an error for using 'this' outside of a class")
	}
}

func TestThisInsideMethod(t *testing.T) {
	_, sink := resolve(t, `
class C {
  f() {
    print this;
  }
}
`)
	if sink.HadParseError() {
		t.Error("using 'this' inside a method should be allowed")
	}
}

func TestFunctionParamsResolveLocally(t *testing.T) {
	distances, sink := resolve(t, `
fun f(a) {
  print a;
}
`)
	if sink.HadParseError() {
		t.Fatal("unexpected resolver error")
	}
	if len(distances) != 1 {
		t.Errorf("len(distances) = %d, want 1", len(distances))
	}
}
