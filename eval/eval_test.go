package eval

import (
	"math"
	"testing"

	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/ops"
	"github.com/bcsgh/tbd/resolve"
	"github.com/bcsgh/tbd/semantic"
	"github.com/bcsgh/tbd/validate"
)

func loc(line int) ast.Loc {
	return ast.Loc{File: "t.tbd", LineBegin: line, LineEnd: line, ColBegin: 1, ColEnd: 2}
}

func lit(v float64, line int) *ast.Literal { return &ast.Literal{Value: v, Loc: loc(line)} }
func named(name string, line int) *ast.Named { return &ast.Named{Name: name, Loc: loc(line)} }

// pipeline runs validate -> resolve -> eval over doc the way the driver
// would, and fails the test outright if either of the first two stages
// reports an error (only eval's own diagnostics are returned to the
// caller, since that's what these tests are about).
func pipeline(t *testing.T, doc *ast.Document) (*semantic.Table, *semantic.Sink, *Stage, bool) {
	t.Helper()
	table := semantic.NewTable()
	sink := &semantic.Sink{}

	if !validate.New(table, sink, false).Process(doc) {
		t.Fatalf("validate failed: %v", sink.Diagnostics)
	}
	if !resolve.New(table, sink, 64).Process(doc) {
		t.Fatalf("resolve failed: %v", sink.Diagnostics)
	}

	stage, ok := New(table, sink).Process(doc)
	return table, sink, stage, ok
}

func TestDirectEvaluationOfSum(t *testing.T) {
	aDef := &ast.Define{Name: "a", Value: lit(3, 1), Loc: loc(1)}
	bDef := &ast.Define{Name: "b", Value: lit(4, 2), Loc: loc(2)}
	sum := ast.NewSum(named("a", 3), named("b", 3))
	eq := &ast.Equality{Left: named("s", 3), Right: sum, Loc: loc(3)}

	doc := &ast.Document{
		Defines:    []*ast.Define{aDef, bDef},
		Equalities: []*ast.Equality{eq},
		Loc:        loc(0),
	}

	table, sink, stage, ok := pipeline(t, doc)
	if !ok {
		t.Fatalf("eval failed: %v", sink.Diagnostics)
	}
	if len(stage.SolveOps) != 0 || stage.Count != 0 {
		t.Fatalf("expected no residual stage, got %d solve ops, count %d", len(stage.SolveOps), stage.Count)
	}

	d := &ops.DirectEvaluate{}
	ranAll, stoppedAt := ops.Run(d, stage.DirectOps)
	if !ranAll {
		t.Fatalf("direct ops stalled at %d: %v", stoppedAt, stage.DirectOps)
	}

	s, ok := table.TryGetNamedNode("s")
	if !ok || !s.Resolved || s.Value != 7 {
		t.Fatalf("s = %v (resolved=%v), want 7", s, ok && s.Resolved)
	}
}

func TestConflictDetectionOnEquality(t *testing.T) {
	aDef := &ast.Define{Name: "a", Value: lit(2, 1), Loc: loc(1)}
	bDef := &ast.Define{Name: "b", Value: lit(3, 2), Loc: loc(2)}
	cDef := &ast.Define{Name: "c", Value: lit(6, 3), Loc: loc(3)}
	sum := ast.NewSum(named("a", 4), named("b", 4))
	eq := &ast.Equality{Left: named("c", 4), Right: sum, Loc: loc(4)}

	doc := &ast.Document{
		Defines:    []*ast.Define{aDef, bDef, cDef},
		Equalities: []*ast.Equality{eq},
		Loc:        loc(0),
	}

	_, sink, _, ok := pipeline(t, doc)
	if ok {
		t.Fatal("expected eval to fail on a value conflict")
	}

	found := false
	for _, d := range sink.Diagnostics {
		if d.Kind == semantic.ValueConflict {
			found = true
			if d.Loc != loc(4) {
				t.Errorf("conflict reported at %v, want the equality's location %v", d.Loc, loc(4))
			}
		}
	}
	if !found {
		t.Fatalf("expected a ValueConflict diagnostic, got %v", sink.Diagnostics)
	}
}

func TestResidualStageForASingleFreeVariable(t *testing.T) {
	aDef := &ast.Define{Name: "a", Value: lit(2, 1), Loc: loc(1)}
	// x is never defined: x * x == a, so x is the sole degree of freedom.
	product := ast.NewProduct(named("x", 2), named("x", 2))
	eq := &ast.Equality{Left: product, Right: named("a", 2), Loc: loc(2)}

	doc := &ast.Document{
		Defines:    []*ast.Define{aDef},
		Equalities: []*ast.Equality{eq},
		Loc:        loc(0),
	}

	_, sink, stage, ok := pipeline(t, doc)
	if !ok {
		t.Fatalf("eval failed: %v", sink.Diagnostics)
	}
	if stage.Count != 1 {
		t.Fatalf("expected 1 degree of freedom, got %d", stage.Count)
	}
	if len(stage.SolveOps) == 0 {
		t.Fatal("expected a non-empty residual op sequence")
	}

	d := &ops.DirectEvaluate{In: []float64{math.Sqrt(2)}, Out: make([]float64, 1)}
	program := append(append([]ops.Op{}, stage.DirectOps...), stage.SolveOps...)
	ranAll, stoppedAt := ops.Run(d, program)
	if !ranAll {
		t.Fatalf("residual ops stalled at %d", stoppedAt)
	}
	if math.Abs(d.Out[0]) > 1e-9 {
		t.Fatalf("residual = %v, want ~0 at the exact root", d.Out[0])
	}
}
