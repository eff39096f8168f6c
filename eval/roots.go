package eval

import (
	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/semantic"
)

// FindUnsolvedRoots partitions an equality forest into maximal
// not-yet-checked subexpressions ("roots") and, for each, the set of
// still-unresolved variable names referenced anywhere beneath it. The
// outermost unprocessed node along any path claims its whole subtree as
// one root; traversal does not descend further once a root is claimed.
type FindUnsolvedRoots struct {
	Table    *semantic.Table
	Unsolved map[ast.Node]map[string]bool
}

// NewFindUnsolvedRoots returns a fresh root finder over table.
func NewFindUnsolvedRoots(table *semantic.Table) *FindUnsolvedRoots {
	return &FindUnsolvedRoots{Table: table, Unsolved: map[ast.Node]map[string]bool{}}
}

func (f *FindUnsolvedRoots) resolved(n ast.Node) bool {
	e := f.Table.GetNode(n)
	if e.EquProcessed {
		return false
	}
	vars := map[string]bool{}
	for _, named := range namedIn(n) {
		ne := f.Table.GetNodeForName(named.Name)
		if !ne.Resolved {
			vars[named.Name] = true
		}
	}
	f.Unsolved[n] = vars
	return true
}

func (f *FindUnsolvedRoots) VisitLiteral(n *ast.Literal) bool               { return false }
func (f *FindUnsolvedRoots) VisitNamed(n *ast.Named) bool                   { return false }
func (f *FindUnsolvedRoots) VisitDefine(n *ast.Define) bool                 { return false }
func (f *FindUnsolvedRoots) VisitSpecification(n *ast.Specification) bool  { return false }
func (f *FindUnsolvedRoots) VisitUnitExp(n *ast.UnitExp) bool               { return false }
func (f *FindUnsolvedRoots) VisitUnitDef(n *ast.UnitDef) bool               { return false }
func (f *FindUnsolvedRoots) VisitDocument(n *ast.Document) bool             { return false }

func (f *FindUnsolvedRoots) VisitEquality(n *ast.Equality) bool {
	if f.resolved(n) {
		return true
	}
	return n.Left.Accept(f) || n.Right.Accept(f)
}

func (f *FindUnsolvedRoots) VisitPower(n *ast.Power) bool {
	if f.resolved(n) {
		return true
	}
	return n.Base.Accept(f)
}

func (f *FindUnsolvedRoots) VisitProduct(n *ast.Product) bool {
	if f.resolved(n) {
		return true
	}
	return n.Left.Accept(f) || n.Right.Accept(f)
}

func (f *FindUnsolvedRoots) VisitQuotient(n *ast.Quotient) bool {
	if f.resolved(n) {
		return true
	}
	return n.Left.Accept(f) || n.Right.Accept(f)
}

func (f *FindUnsolvedRoots) VisitSum(n *ast.Sum) bool {
	if f.resolved(n) {
		return true
	}
	return n.Left.Accept(f) || n.Right.Accept(f)
}

func (f *FindUnsolvedRoots) VisitDifference(n *ast.Difference) bool {
	if f.resolved(n) {
		return true
	}
	return n.Left.Accept(f) || n.Right.Accept(f)
}

func (f *FindUnsolvedRoots) VisitNegative(n *ast.Negative) bool {
	if f.resolved(n) {
		return true
	}
	return n.Operand.Accept(f)
}
