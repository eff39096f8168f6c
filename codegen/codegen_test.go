package codegen

import (
	"testing"

	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/ops"
	"github.com/bcsgh/tbd/semantic"
)

func node(line int) ast.Node {
	return &ast.Literal{Loc: ast.Loc{File: "t.tbd", LineBegin: line, LineEnd: line, ColBegin: 1, ColEnd: 2}}
}

func named(name string) *semantic.Exp { return &semantic.Exp{Name: name, Node: node(1)} }
func literal(v float64) *semantic.Exp { return &semantic.Exp{IsLiteral: true, Value: v, Node: node(1)} }
func anon() *semantic.Exp             { return &semantic.Exp{Node: node(1)} }

func TestGenerateRendersNamedBinaryOp(t *testing.T) {
	a, b, r := named("a"), named("b"), named("s")
	sink := &semantic.Sink{}
	out, ok := Generate([]ops.Op{ops.NewAdd(r, a, b)}, sink)
	if !ok {
		t.Fatalf("generate failed: %v", sink.Diagnostics)
	}
	if out != "s = (a + b);\n" {
		t.Fatalf("got %q", out)
	}
}

func TestGenerateInlinesAnonymousIntermediates(t *testing.T) {
	a, b, c := named("a"), named("b"), named("c")
	mid := anon()
	r := named("r")
	program := []ops.Op{
		ops.NewMul(mid, a, b), // mid = a * b, unnamed: cached, not emitted
		ops.NewAdd(r, mid, c), // r = (a * b) + c
	}
	sink := &semantic.Sink{}
	out, ok := Generate(program, sink)
	if !ok {
		t.Fatalf("generate failed: %v", sink.Diagnostics)
	}
	want := "r = ((a · b) + c);\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestGenerateLiteralFallback(t *testing.T) {
	r := named("two_x")
	program := []ops.Op{ops.NewMul(r, named("x"), literal(2))}
	sink := &semantic.Sink{}
	out, ok := Generate(program, sink)
	if !ok {
		t.Fatalf("generate failed: %v", sink.Diagnostics)
	}
	if out != "two_x = (x · 2);\n" {
		t.Fatalf("got %q", out)
	}
}

func TestGenerateNegAndPow(t *testing.T) {
	x := named("x")
	negR := named("neg_x")
	powR := named("x2")
	program := []ops.Op{
		&ops.Neg{R: negR, A: x},
		&ops.Pow{R: powR, B: x, E: 2},
	}
	sink := &semantic.Sink{}
	out, ok := Generate(program, sink)
	if !ok {
		t.Fatalf("generate failed: %v", sink.Diagnostics)
	}
	want := "neg_x = (−x);\nx2 = pow(x, 2);\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestGenerateAssignPassesThrough(t *testing.T) {
	s := named("s")
	d := named("d")
	sink := &semantic.Sink{}
	out, ok := Generate([]ops.Op{&ops.Assign{D: d, S: s}}, sink)
	if !ok {
		t.Fatalf("generate failed: %v", sink.Diagnostics)
	}
	if out != "d = s;\n" {
		t.Fatalf("got %q", out)
	}
}

func TestGenerateLoadAndCheck(t *testing.T) {
	n := named("f")
	a, b := named("a"), named("b")
	program := []ops.Op{
		&ops.Load{N: n, I: 0},
		&ops.Check{I: 1, A: a, B: b, Loc: node(1).Location()},
	}
	sink := &semantic.Sink{}
	out, ok := Generate(program, sink)
	if !ok {
		t.Fatalf("generate failed: %v", sink.Diagnostics)
	}
	want := "f = input[0];\noutput[1] = (a − b);\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestGenerateCheckToleratesUnrenderedOperand(t *testing.T) {
	// b was never produced by any prior op: Check still emits, using "?".
	a := named("a")
	b := anon()
	sink := &semantic.Sink{}
	out, ok := Generate([]ops.Op{&ops.Check{I: 0, A: a, B: b, Loc: node(1).Location()}}, sink)
	if !ok {
		t.Fatalf("generate failed: %v", sink.Diagnostics)
	}
	if out != "output[0] = (a − ?);\n" {
		t.Fatalf("got %q", out)
	}
}

func TestGenerateFailsOnUnresolvableSource(t *testing.T) {
	// Neither named nor literal, and never produced by a prior op.
	r, bad, b := named("r"), anon(), named("b")
	sink := &semantic.Sink{}
	_, ok := Generate([]ops.Op{ops.NewAdd(r, bad, b)}, sink)
	if ok {
		t.Fatal("expected generate to fail on an unrenderable operand")
	}
	if !sink.HasWarnings() {
		t.Fatalf("expected a warning diagnostic, got %v", sink.Diagnostics)
	}
}
