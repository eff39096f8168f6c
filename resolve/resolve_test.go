package resolve

import (
	"testing"

	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/dimension"
	"github.com/bcsgh/tbd/semantic"
)

func loc(line int) ast.Loc {
	return ast.Loc{File: "t.tbd", LineBegin: line, LineEnd: line, ColBegin: 1, ColEnd: 2}
}

func unitExp(factors ...ast.UnitFactor) *ast.UnitExp {
	return &ast.UnitExp{Factors: factors, Loc: loc(1)}
}

// TestUnitDefChain replicates: unit w = 3; unit x = 5*w; unit y = 7*w^2;
// expecting scales w=3, x=15, y=63, all dimensionless.
func TestUnitDefChain(t *testing.T) {
	table := semantic.NewTable()
	sink := &semantic.Sink{}
	r := New(table, sink, 64)

	w := &ast.UnitDef{Name: "w", Value: 3, Loc: loc(1)}
	x := &ast.UnitDef{Name: "x", Value: 5, Unit: unitExp(ast.UnitFactor{ID: "w", Exp: 1, Loc: loc(2)}), Loc: loc(2)}
	y := &ast.UnitDef{Name: "y", Value: 7, Unit: unitExp(ast.UnitFactor{ID: "w", Exp: 2, Loc: loc(3)}), Loc: loc(3)}
	doc := &ast.Document{UnitDefs: []*ast.UnitDef{w, x, y}, Loc: loc(1)}

	if !r.Process(doc) {
		t.Fatalf("resolve failed: %v", sink.Diagnostics)
	}

	wantScale := map[string]float64{"w": 3, "x": 15, "y": 63}
	for name, want := range wantScale {
		u, found := table.Units.Lookup(name)
		if !found {
			t.Fatalf("unit %q not registered", name)
		}
		if u.Scale != want {
			t.Errorf("unit %q scale = %v, want %v", name, u.Scale, want)
		}
		if !u.Dim.IsDimensionless() {
			t.Errorf("unit %q dim = %v, want dimensionless", name, u.Dim.String())
		}
	}
}

func TestUnitDefRedefinitionErrors(t *testing.T) {
	table := semantic.NewTable()
	sink := &semantic.Sink{}
	r := New(table, sink, 64)

	w1 := &ast.UnitDef{Name: "w", Value: 3, Loc: loc(1)}
	w2 := &ast.UnitDef{Name: "w", Value: 4, Loc: loc(2)}
	doc := &ast.Document{UnitDefs: []*ast.UnitDef{w1, w2}, Loc: loc(1)}

	if r.Process(doc) {
		t.Fatal("expected redefinition of unit to fail")
	}
	if sink.Diagnostics[0].Kind != semantic.DuplicateDefinition {
		t.Errorf("Kind = %v, want DuplicateDefinition", sink.Diagnostics[0].Kind)
	}
}

func TestUnknownUnitErrors(t *testing.T) {
	table := semantic.NewTable()
	sink := &semantic.Sink{}
	r := New(table, sink, 64)

	d := &ast.Define{
		Name:  "x",
		Value: &ast.Literal{Value: 1, Loc: loc(1)},
		Unit:  unitExp(ast.UnitFactor{ID: "bogus", Exp: 1, Loc: loc(1)}),
		Loc:   loc(1),
	}
	doc := &ast.Document{Defines: []*ast.Define{d}, Loc: loc(1)}

	if r.Process(doc) {
		t.Fatal("expected unknown unit to fail")
	}
	if sink.Diagnostics[0].Kind != semantic.UnknownUnit {
		t.Errorf("Kind = %v, want UnknownUnit", sink.Diagnostics[0].Kind)
	}
}

// TestEqualityPropagation checks that a dimension known on one side of an
// equality is propagated down onto a Specification-only name on the other.
func TestEqualityPropagation(t *testing.T) {
	table := semantic.NewTable()
	sink := &semantic.Sink{}
	r := New(table, sink, 64)

	d := &ast.Define{
		Name:  "v",
		Value: &ast.Literal{Value: 1, Loc: loc(1)},
		Unit:  unitExp(ast.UnitFactor{ID: "m", Exp: 1, Loc: loc(1)}),
		Loc:   loc(1),
	}
	s := &ast.Specification{Name: "u", Loc: loc(2)}
	named := &ast.Named{Name: "v", Loc: loc(3)}
	other := &ast.Named{Name: "u", Loc: loc(3)}
	eq := &ast.Equality{Left: named, Right: other, Loc: loc(3)}
	doc := &ast.Document{
		Defines:        []*ast.Define{d},
		Specifications: []*ast.Specification{s},
		Equalities:     []*ast.Equality{eq},
		Loc:            loc(1),
	}

	if !r.Process(doc) {
		t.Fatalf("resolve failed: %v", sink.Diagnostics)
	}
	e, ok := table.TryGetNamedNode("u")
	if !ok || !e.HasDim {
		t.Fatal("expected u's dimension to be inferred")
	}
	if !e.Dim.Equal(dimension.Meter().Dim) {
		t.Errorf("u dim = %v, want meter", e.Dim.String())
	}
}

func TestDimensionMismatchOnEquality(t *testing.T) {
	table := semantic.NewTable()
	sink := &semantic.Sink{}
	r := New(table, sink, 64)

	a := &ast.Define{
		Name:  "a",
		Value: &ast.Literal{Value: 1, Loc: loc(1)},
		Unit:  unitExp(ast.UnitFactor{ID: "m", Exp: 1, Loc: loc(1)}),
		Loc:   loc(1),
	}
	b := &ast.Define{
		Name:  "b",
		Value: &ast.Literal{Value: 1, Loc: loc(2)},
		Unit:  unitExp(ast.UnitFactor{ID: "s", Exp: 1, Loc: loc(2)}),
		Loc:   loc(2),
	}
	eq := &ast.Equality{
		Left:  &ast.Named{Name: "a", Loc: loc(3)},
		Right: &ast.Named{Name: "b", Loc: loc(3)},
		Loc:   loc(3),
	}
	doc := &ast.Document{Defines: []*ast.Define{a, b}, Equalities: []*ast.Equality{eq}, Loc: loc(1)}

	if r.Process(doc) {
		t.Fatal("expected dimension mismatch between meters and seconds")
	}
	if sink.Diagnostics[0].Kind != semantic.DimensionMismatch {
		t.Errorf("Kind = %v, want DimensionMismatch", sink.Diagnostics[0].Kind)
	}
}
