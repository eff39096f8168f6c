package graphviz

import (
	"strings"
	"testing"

	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/semantic"
)

func loc(line int) ast.Loc {
	return ast.Loc{File: "t.tbd", LineBegin: line, LineEnd: line, ColBegin: 1, ColEnd: 2}
}

func TestRenderEmitsNamedAndLiteralNodes(t *testing.T) {
	aDef := &ast.Define{Name: "a", Value: &ast.Literal{Value: 3, Loc: loc(1)}, Loc: loc(1)}
	eq := &ast.Equality{
		Left:  &ast.Named{Name: "a", Loc: loc(2)},
		Right: &ast.Literal{Value: 3, Loc: loc(2)},
		Loc:   loc(2),
	}
	doc := &ast.Document{Defines: []*ast.Define{aDef}, Equalities: []*ast.Equality{eq}, Loc: loc(0)}

	out, ok := Render(doc, semantic.NewTable())
	if !ok {
		t.Fatalf("render failed")
	}
	if !strings.HasPrefix(out, "digraph {\n") || !strings.HasSuffix(out, "}\n") {
		t.Fatalf("not a well-formed digraph: %q", out)
	}
	if !strings.Contains(out, `label="a"`) {
		t.Errorf("expected a label=\"a\" node, got %q", out)
	}
	if !strings.Contains(out, `label="#[3]"`) {
		t.Errorf("expected a literal node, got %q", out)
	}
	if !strings.Contains(out, `color="black:black"`) {
		t.Errorf("expected the equality edge to be highlighted, got %q", out)
	}
}

func TestRenderSharesOneNodePerName(t *testing.T) {
	// Two occurrences of "x" in one equality must resolve to the same
	// node id, so the product gets a single deduplicated edge to it.
	product := ast.NewProduct(&ast.Named{Name: "x", Loc: loc(1)}, &ast.Named{Name: "x", Loc: loc(1)})
	eq := &ast.Equality{Left: product, Right: &ast.Literal{Value: 4, Loc: loc(1)}, Loc: loc(1)}
	doc := &ast.Document{Equalities: []*ast.Equality{eq}, Loc: loc(0)}

	out, ok := Render(doc, semantic.NewTable())
	if !ok {
		t.Fatalf("render failed")
	}
	if strings.Count(out, `label="x"`) != 1 {
		t.Errorf("expected exactly one node labeled x, got %q", out)
	}
}

func TestRenderMarksUnreferencedDefineUnknown(t *testing.T) {
	// b is defined but never used in any equality: it should still get a
	// pinned node of its own, with a negative (synthetic) id.
	bDef := &ast.Define{Name: "b", Value: &ast.Literal{Value: 1, Loc: loc(1)}, Loc: loc(1)}
	doc := &ast.Document{Defines: []*ast.Define{bDef}, Loc: loc(0)}

	out, ok := Render(doc, semantic.NewTable())
	if !ok {
		t.Fatalf("render failed")
	}
	if !strings.Contains(out, `-1 [label="b"`) {
		t.Errorf("expected an unreferenced define to render as node -1, got %q", out)
	}
	if !strings.Contains(out, `fillcolor=cyan`) {
		t.Errorf("expected the pinned node to be cyan, got %q", out)
	}
}

func TestRenderSkipsPreambleDefines(t *testing.T) {
	preambleDef := &ast.Define{
		Name: "meter", Value: &ast.Literal{Value: 1},
		Loc: ast.Loc{File: ast.PreambleFile},
	}
	doc := &ast.Document{Defines: []*ast.Define{preambleDef}, Loc: loc(0)}

	out, ok := Render(doc, semantic.NewTable())
	if !ok {
		t.Fatalf("render failed")
	}
	if strings.Contains(out, "meter") {
		t.Errorf("preamble define leaked into the graph: %q", out)
	}
}
