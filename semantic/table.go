// Package semantic holds the mutable state that parallels the immutable
// AST: one Exp record per expression node and per named variable, plus the
// unit registry. The AST is never annotated directly — all resolved
// dimension/value/flag state lives here, indexed by node identity and by
// variable name, so it can be iterated in a stable order independent of
// allocator behavior.
package semantic

import (
	"math"
	"sort"

	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/dimension"
)

// Exp is the semantic record attached to one expression node or one named
// variable.
type Exp struct {
	Name string // empty for anonymous intermediates

	HasDim bool
	Dim    dimension.Dimension

	HasUnit  bool
	Unit     dimension.Unit
	UnitName string

	Resolved     bool
	Value        float64 // NaN until Resolved
	EquProcessed bool

	IsLiteral  bool
	Referenced bool

	// Back-pointers for diagnostics only.
	Def  *ast.Define
	Spec *ast.Specification
	Node ast.Node
}

// newExp returns a fresh, unresolved record with Value defaulted to NaN.
func newExp() *Exp {
	return &Exp{Value: math.NaN()}
}

// Table is the semantic side table: a unit registry plus the node-identity
// and variable-name indices into the owned record list.
type Table struct {
	Units *dimension.Registry

	nodes     []*Exp
	byNode    map[ast.Node]*Exp
	byName    map[string]*Exp
}

// NewTable returns an empty table with the seven SI base units registered.
func NewTable() *Table {
	return &Table{
		Units:  dimension.NewRegistry(),
		byNode: make(map[ast.Node]*Exp),
		byName: make(map[string]*Exp),
	}
}

// Nodes returns every owned record, in allocation order.
func (t *Table) Nodes() []*Exp {
	out := make([]*Exp, len(t.nodes))
	copy(out, t.nodes)
	return out
}

func (t *Table) alloc() *Exp {
	e := newExp()
	t.nodes = append(t.nodes, e)
	return e
}

// GetNode returns the record for an anonymous node, creating one the first
// time the node is seen.
func (t *Table) GetNode(n ast.Node) *Exp {
	if e, ok := t.byNode[n]; ok {
		return e
	}
	e := t.alloc()
	e.Node = n
	t.byNode[n] = e
	return e
}

// NewAnon returns a fresh record with no owning node: scratch storage for
// an intermediate value computed only to compare against a residual
// Check, never referenced by name or by any AST node.
func (t *Table) NewAnon() *Exp { return t.alloc() }

// TryGetNode returns the record for node n without creating one.
func (t *Table) TryGetNode(n ast.Node) (*Exp, bool) {
	e, ok := t.byNode[n]
	return e, ok
}

// GetNamedNode returns the record bound to name, creating (and indexing by
// node) it the first time the name is seen, always indexing n to the
// record, and making n the record's own node if it has none yet.
func (t *Table) GetNamedNode(name string, n ast.Node) *Exp {
	e, ok := t.byName[name]
	if !ok {
		e = t.alloc()
		e.Name = name
		t.byName[name] = e
	}
	if e.Node == nil {
		e.Node = n
	}
	t.byNode[n] = e
	return e
}

// GetNodeForName returns the record bound to name, creating one (with no
// owning node) the first time the name is referenced.
func (t *Table) GetNodeForName(name string) *Exp {
	e, ok := t.byName[name]
	if !ok {
		e = t.alloc()
		e.Name = name
		t.byName[name] = e
	}
	return e
}

// TryGetNamedNode returns the record bound to name without creating one.
func (t *Table) TryGetNamedNode(name string) (*Exp, bool) {
	e, ok := t.byName[name]
	return e, ok
}

// ReferenceNamedNode marks name's record Referenced, creating it if needed,
// and returns it.
func (t *Table) ReferenceNamedNode(name string, n ast.Node) *Exp {
	e := t.GetNamedNode(name, n)
	e.Referenced = true
	return e
}

// StableNodes returns every record whose Node is set, ordered by the
// node's source location with node identity (allocation order) as the
// final tie-break — the order required for deterministic diagnostics and
// deterministic propagation.
func (t *Table) StableNodes() []*Exp {
	var out []*Exp
	for _, e := range t.nodes {
		if e.Node != nil {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Node.Location().Less(out[j].Node.Location())
	})
	return out
}
