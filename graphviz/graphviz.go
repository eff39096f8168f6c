// Package graphviz renders a document's expression graph as DOT text:
// one node per expression (and one per named quantity), one edge per
// operand relationship, with a second, highlighted edge for each
// equality linking its two sides. Unresolved nodes render dashed; nodes
// carrying a known dimension render red; defined quantities render filled
// cyan and other named quantities filled yellow.
package graphviz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/semantic"
)

type edgeKey struct{ a, b int }

type node struct {
	label     string
	pinned    bool
	hasDim    bool
	dimLabel  string
	hasValue  bool
}

type edge struct{ equality bool }

// Render walks doc and returns its DOT-language rendering. table supplies
// each node's resolved dimension/value state; ok is false if the walk
// aborted partway (a visitor method returned false, which none of these
// do today, but the shape mirrors every other Accept-driven pass in this
// module).
func Render(doc *ast.Document, table *semantic.Table) (string, bool) {
	r := &renderer{
		table: table,
		id:    map[ast.Node]int{},
		named: map[string]int{},
		nodes: map[int]*node{},
		edges: map[edgeKey]*edge{},
	}
	ok := doc.Accept(r)
	return r.dump(), ok
}

type renderer struct {
	table *semantic.Table

	id    map[ast.Node]int
	named map[string]int
	nodes map[int]*node
	edges map[edgeKey]*edge

	unknown int
}

func (r *renderer) nextID() int { return len(r.id) }

// addDefault allocates an id for an anonymous expression node, seeding
// its dimension/resolved state from the semantic table if the node was
// ever recorded there.
func (r *renderer) addDefault(n ast.Node) int {
	id := r.nextID()
	nd := &node{}
	if sem, ok := r.table.TryGetNode(n); ok {
		if sem.HasDim {
			nd.hasDim = true
			nd.dimLabel = sem.Dim.String()
		}
		nd.hasValue = sem.Resolved
	}
	r.nodes[id] = nd
	r.id[n] = id
	return id
}

func (r *renderer) edgeTo(from, to int) {
	k := edgeKey{from, to}
	if _, ok := r.edges[k]; !ok {
		r.edges[k] = &edge{}
	}
}

func (r *renderer) visitBinary(self ast.Node, left, right ast.Expression) bool {
	if !left.Accept(r) || !right.Accept(r) {
		return false
	}
	id := r.addDefault(self)
	r.edgeTo(id, r.id[left])
	r.edgeTo(id, r.id[right])
	return true
}

// VisitLiteral implements ast.Visitor.
func (r *renderer) VisitLiteral(n *ast.Literal) bool {
	id := r.addDefault(n)
	r.nodes[id].label = fmt.Sprintf("#[%g]", n.Value)
	return true
}

// VisitNamed implements ast.Visitor. Every occurrence of the same name
// shares one node; the label is set the first time the name is seen.
func (r *renderer) VisitNamed(n *ast.Named) bool {
	id, seen := r.named[n.Name]
	if !seen {
		id = r.nextID()
		r.named[n.Name] = id
		r.nodes[id] = &node{label: n.Name}
	}
	if sem, ok := r.table.TryGetNamedNode(n.Name); ok {
		nd := r.nodes[id]
		if sem.HasDim {
			nd.hasDim = true
			nd.dimLabel = sem.Dim.String()
		}
		nd.hasValue = sem.Resolved
	}
	r.id[n] = id
	return true
}

// VisitPower implements ast.Visitor.
func (r *renderer) VisitPower(n *ast.Power) bool {
	if !n.Base.Accept(r) {
		return false
	}
	id := r.addDefault(n)
	r.edgeTo(id, r.id[n.Base])
	return true
}

// VisitProduct implements ast.Visitor.
func (r *renderer) VisitProduct(n *ast.Product) bool { return r.visitBinary(n, n.Left, n.Right) }

// VisitQuotient implements ast.Visitor.
func (r *renderer) VisitQuotient(n *ast.Quotient) bool { return r.visitBinary(n, n.Left, n.Right) }

// VisitSum implements ast.Visitor.
func (r *renderer) VisitSum(n *ast.Sum) bool { return r.visitBinary(n, n.Left, n.Right) }

// VisitDifference implements ast.Visitor.
func (r *renderer) VisitDifference(n *ast.Difference) bool { return r.visitBinary(n, n.Left, n.Right) }

// VisitNegative implements ast.Visitor.
func (r *renderer) VisitNegative(n *ast.Negative) bool {
	if !n.Operand.Accept(r) {
		return false
	}
	id := r.addDefault(n)
	r.edgeTo(id, r.id[n.Operand])
	return true
}

// VisitEquality implements ast.Visitor.
func (r *renderer) VisitEquality(n *ast.Equality) bool {
	if !n.Left.Accept(r) || !n.Right.Accept(r) {
		return false
	}
	k := edgeKey{r.id[n.Left], r.id[n.Right]}
	e, ok := r.edges[k]
	if !ok {
		e = &edge{}
		r.edges[k] = e
	}
	e.equality = true
	return true
}

// VisitDefine implements ast.Visitor. A define pins its name's node; one
// never referenced elsewhere in the document still gets an (unlabeled
// positive id would collide, so negative) id of its own. Preamble
// defines are skipped entirely: they're builtin units, not part of the
// user's graph.
func (r *renderer) VisitDefine(n *ast.Define) bool {
	if id, ok := r.named[n.Name]; ok {
		r.nodes[id].pinned = true
		return true
	}
	if n.Loc.File == ast.PreambleFile {
		return true
	}
	r.unknown++
	id := -r.unknown
	r.nodes[id] = &node{label: n.Name, pinned: true}
	return true
}

// VisitSpecification implements ast.Visitor; specifications don't appear
// in the rendered graph (they carry no expression).
func (r *renderer) VisitSpecification(*ast.Specification) bool { return true }

// VisitUnitExp implements ast.Visitor; unit expressions never appear in
// the rendered graph.
func (r *renderer) VisitUnitExp(*ast.UnitExp) bool { return true }

// VisitUnitDef implements ast.Visitor; unit definitions never appear in
// the rendered graph.
func (r *renderer) VisitUnitDef(*ast.UnitDef) bool { return true }

// VisitDocument implements ast.Visitor: equalities first (so every
// expression node gets allocated), then defines (to pin the named ones).
func (r *renderer) VisitDocument(n *ast.Document) bool {
	for _, e := range n.Equalities {
		if !e.Accept(r) {
			return false
		}
	}
	for _, d := range n.Defines {
		if !d.Accept(r) {
			return false
		}
	}
	return true
}

func (r *renderer) dump() string {
	var b strings.Builder
	b.WriteString("digraph {\n")

	keys := make([]edgeKey, 0, len(r.edges))
	for k := range r.edges {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})
	for _, k := range keys {
		fmt.Fprintf(&b, "  %d->%d [dir=none", k.a, k.b)
		if r.edges[k].equality {
			b.WriteString(` color="black:black"`)
		}
		b.WriteString("];\n")
	}

	ids := make([]int, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		n := r.nodes[id]
		label := n.label
		if label == "" {
			label = fmt.Sprintf("@%d", id)
		}
		var color, style, fillcolor string
		if n.hasDim {
			label = label + " " + n.dimLabel
			color = "red"
		}
		switch {
		case n.pinned:
			style, fillcolor = "filled", "cyan"
		case len(label) > 0 && label[0] != '@' && label[0] != '#':
			style, fillcolor = "filled", "yellow"
		}
		if !n.hasValue {
			if style != "" {
				style += ",dashed"
			} else {
				style = "dashed"
			}
		}

		fmt.Fprintf(&b, "  %d [label=%q", id, label)
		if color != "" {
			fmt.Fprintf(&b, " color=%s", color)
		}
		if style != "" {
			fmt.Fprintf(&b, " style=%q", style)
		}
		if fillcolor != "" {
			fmt.Fprintf(&b, " fillcolor=%s", fillcolor)
		}
		b.WriteString("];\n")
	}

	b.WriteString("}\n")
	return b.String()
}
