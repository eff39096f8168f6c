package tbd

import (
	"context"
	"math"
	"testing"
)

func defaultOptions() Options {
	return Options{IterationLimit: 64, NewtonIterations: 10, NewtonTolerance: 1e-4}
}

func TestCompileDirectSum(t *testing.T) {
	result, ok := Compile(context.Background(), "t.tbd", "define a = 3;\ndefine b = 4;\nc == a + b;\n", defaultOptions())
	if !ok {
		t.Fatalf("Compile failed: %v", result.Diagnostics)
	}
	values := Values(result)
	if got := values["c"]; got != 7 {
		t.Errorf("c = %v, want 7", got)
	}
	if _, ok := values["N"]; ok {
		t.Error("preamble unit N should not appear as a named value")
	}
}

func TestCompileResolvesAFreeVariableByDirectBackSubstitution(t *testing.T) {
	// x is never defined, but 2 * x == a inverts directly once a is
	// known (product resolved from the equality, then x from the
	// product), so this never reaches the residual solve: Count == 0.
	// This exercises DirectOps alone, regardless of whether any residual
	// system exists in the document.
	result, ok := Compile(context.Background(), "t.tbd", "define a = 6;\n2 * x == a;\n", defaultOptions())
	if !ok {
		t.Fatalf("Compile failed: %v", result.Diagnostics)
	}
	if result.Stage.Count != 0 {
		t.Fatalf("expected x to resolve directly, got a residual system of size %d", result.Stage.Count)
	}
	values := Values(result)
	if got := values["x"]; math.Abs(got-3) > 1e-3 {
		t.Errorf("x = %v, want ~3", got)
	}
}

func TestCompileDrivesNewtonSolveForATrueResidualSystem(t *testing.T) {
	// Neither equality is directly invertible in isolation: each ties
	// together two still-unknown variables. Only the pair together pins
	// x and y, so this is the genuine residual-solve path.
	result, ok := Compile(context.Background(), "t.tbd", "x + y == 10;\nx - y == 2;\n", defaultOptions())
	if !ok {
		t.Fatalf("Compile failed: %v", result.Diagnostics)
	}
	if result.Stage.Count == 0 {
		t.Fatal("expected a non-empty residual system")
	}
	values := Values(result)
	if got := values["x"]; math.Abs(got-6) > 1e-3 {
		t.Errorf("x = %v, want ~6", got)
	}
	if got := values["y"]; math.Abs(got-4) > 1e-3 {
		t.Errorf("y = %v, want ~4", got)
	}
}

func TestCompileReportsParseError(t *testing.T) {
	_, ok := Compile(context.Background(), "t.tbd", "define a = ;\n", defaultOptions())
	if ok {
		t.Fatal("expected Compile to fail on malformed source")
	}
}

func TestCompileReportsUnknownUnit(t *testing.T) {
	result, ok := Compile(context.Background(), "t.tbd", "define a = 3 bogusunit;\n", defaultOptions())
	if ok {
		t.Fatal("expected Compile to fail on an undeclared unit")
	}
	if len(result.Diagnostics) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
}
