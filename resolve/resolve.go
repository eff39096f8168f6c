// Package resolve implements the two-mode (upward/downward) fixed-point
// dimensional inference pass: the unit resolver.
package resolve

import (
	"fmt"
	"strings"

	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/dimension"
	"github.com/bcsgh/tbd/semantic"
)

// Resolver assigns a dimension.Dimension to every semantic record reachable
// from a Document by alternating upward (children-to-parent) and downward
// (parent-to-children) per-operator inference until a fixed point or the
// iteration cap is reached. It implements ast.Visitor.
type Resolver struct {
	Table *semantic.Table
	Sink  *semantic.Sink

	iterationLimit int
	down           bool
	progress       bool

	// working state populated by VisitUnitExp, consumed by the UnitDef,
	// Define and Specification visitors that own the unit expression.
	curUnit     dimension.Unit
	curUnitName string
}

// New returns a Resolver with the given iteration cap (the spec default is
// 64; at least two passes always run regardless of the cap).
func New(table *semantic.Table, sink *semantic.Sink, iterationLimit int) *Resolver {
	if iterationLimit < 2 {
		iterationLimit = 2
	}
	return &Resolver{Table: table, Sink: sink, iterationLimit: iterationLimit}
}

func (r *Resolver) assign(e *semantic.Exp, dim dimension.Dimension, loc ast.Loc) bool {
	if !e.HasDim {
		e.HasDim = true
		e.Dim = dim
		r.progress = true
		return true
	}
	if !e.Dim.Equal(dim) {
		r.Sink.Report(semantic.DimensionMismatch, semantic.Error, loc,
			"dimension mismatch: have %s, want %s", e.Dim.String(), dim.String())
		return false
	}
	return true
}

// VisitLiteral assigns the dimensionless dimension.
func (r *Resolver) VisitLiteral(n *ast.Literal) bool {
	return r.assign(r.Table.GetNode(n), dimension.Dimensionless(), n.Loc)
}

// VisitNamed binds the Named node to the record of the variable it names,
// so dimension assignment happens through Define/Specification.
func (r *Resolver) VisitNamed(n *ast.Named) bool {
	r.Table.GetNamedNode(n.Name, n)
	return true
}

// VisitUnitExp evaluates a unit expression against the registry, leaving
// the result in curUnit/curUnitName for the caller (Define, Specification
// or UnitDef) to pick up.
func (r *Resolver) VisitUnitExp(n *ast.UnitExp) bool {
	result := dimension.Value()
	var name strings.Builder
	ok := true
	for _, f := range n.Factors {
		u, found := r.Table.Units.Lookup(f.ID)
		if !found {
			r.Sink.Report(semantic.UnknownUnit, semantic.Error, f.Loc, "unknown unit %q", f.ID)
			ok = false
			continue
		}
		result = dimension.MulUnit(result, dimension.PowUnit(u, f.Exp))
		name.WriteString(formatFactor(f))
	}
	r.curUnit = result
	r.curUnitName = normalizeUnitName(name.String())
	return ok
}

func formatFactor(f ast.UnitFactor) string {
	switch {
	case f.Exp == 1:
		return "*" + f.ID
	case f.Exp == -1:
		return "/" + f.ID
	case f.Exp > 0:
		return fmt.Sprintf("*%s^%d", f.ID, f.Exp)
	default:
		return fmt.Sprintf("/%s^%d", f.ID, -f.Exp)
	}
}

func normalizeUnitName(name string) string {
	switch {
	case strings.HasPrefix(name, "/"):
		return "1" + name
	case strings.HasPrefix(name, "*"):
		return name[1:]
	default:
		return name
	}
}

// VisitUnitDef registers a derived unit. Redefinition is an error.
func (r *Resolver) VisitUnitDef(n *ast.UnitDef) bool {
	r.curUnit, r.curUnitName = dimension.Value(), ""
	if n.Unit != nil && !n.Unit.Accept(r) {
		return false
	}
	scaled := dimension.Unit{Scale: r.curUnit.Scale * n.Value, Dim: r.curUnit.Dim}
	if !r.Table.Units.Add(n.Name, scaled) {
		r.Sink.Report(semantic.DuplicateDefinition, semantic.Error, n.Loc,
			"redefinition of unit %q", n.Name)
		return false
	}
	return true
}

// VisitDefine evaluates the unit expression and assigns both dim and unit
// to the name's record.
func (r *Resolver) VisitDefine(n *ast.Define) bool {
	r.curUnit, r.curUnitName = dimension.Value(), ""
	ok := true
	if n.Unit != nil {
		ok = n.Unit.Accept(r)
	}
	e := r.Table.GetNamedNode(n.Name, n)
	if !ok {
		return false
	}
	if !r.assign(e, r.curUnit.Dim, n.Loc) {
		return false
	}
	e.HasUnit, e.Unit, e.UnitName = true, r.curUnit, r.curUnitName
	return true
}

// VisitSpecification evaluates the unit expression and assigns both dim
// and unit to the name's record. A Specification without a unit
// expression leaves the dimension to be inferred from the equalities.
func (r *Resolver) VisitSpecification(n *ast.Specification) bool {
	r.curUnit, r.curUnitName = dimension.Value(), ""
	ok := true
	if n.Unit != nil {
		ok = n.Unit.Accept(r)
	}
	e := r.Table.GetNodeForName(n.Name)
	if !ok {
		return false
	}
	if n.Unit == nil {
		return true
	}
	if !r.assign(e, r.curUnit.Dim, n.Loc) {
		return false
	}
	e.HasUnit, e.Unit, e.UnitName = true, r.curUnit, r.curUnitName
	return true
}

// VisitEquality: upward, both sides known must match; downward, copy the
// known side onto the unknown side.
func (r *Resolver) VisitEquality(n *ast.Equality) bool {
	if !n.Left.Accept(r) || !n.Right.Accept(r) {
		return false
	}
	le, re := r.Table.GetNode(n.Left), r.Table.GetNode(n.Right)
	if le.HasDim && re.HasDim && !le.Dim.Equal(re.Dim) {
		r.Sink.Report(semantic.DimensionMismatch, semantic.Error, n.Loc,
			"equality sides have different dimensions: %s vs %s", le.Dim.String(), re.Dim.String())
		return false
	}
	ok := true
	if r.down {
		if le.HasDim && !re.HasDim {
			ok = r.assign(re, le.Dim, n.Right.Location()) && ok
		}
		if re.HasDim && !le.HasDim {
			ok = r.assign(le, re.Dim, n.Left.Location()) && ok
		}
	}
	return ok
}

// VisitPower: upward, result = pow(base, n); downward, base = root(result, n).
func (r *Resolver) VisitPower(n *ast.Power) bool {
	if !n.Base.Accept(r) {
		return false
	}
	e, be := r.Table.GetNode(n), r.Table.GetNode(n.Base)
	ok := true
	if be.HasDim {
		ok = r.assign(e, dimension.Pow(be.Dim, n.Exp), n.Loc) && ok
	}
	if r.down && e.HasDim && !be.HasDim {
		ok = r.assign(be, dimension.Root(e.Dim, n.Exp), n.Base.Location()) && ok
	}
	return ok
}

// VisitProduct: upward, result = L*R; downward, the other child = result/known.
func (r *Resolver) VisitProduct(n *ast.Product) bool {
	return r.visitMultiplicative(n, n.Left, n.Right, false)
}

// VisitQuotient: upward, result = L/R; downward mirrors the division.
func (r *Resolver) VisitQuotient(n *ast.Quotient) bool {
	return r.visitMultiplicative(n, n.Left, n.Right, true)
}

func (r *Resolver) visitMultiplicative(n ast.Node, left, right ast.Expression, isQuotient bool) bool {
	if !left.Accept(r) || !right.Accept(r) {
		return false
	}
	e, le, re := r.Table.GetNode(n), r.Table.GetNode(left), r.Table.GetNode(right)
	ok := true
	if le.HasDim && re.HasDim {
		if isQuotient {
			ok = r.assign(e, dimension.Div(le.Dim, re.Dim), n.Location()) && ok
		} else {
			ok = r.assign(e, dimension.Mul(le.Dim, re.Dim), n.Location()) && ok
		}
	}
	if r.down && e.HasDim {
		if isQuotient {
			if re.HasDim && !le.HasDim {
				ok = r.assign(le, dimension.Mul(e.Dim, re.Dim), left.Location()) && ok
			}
			if le.HasDim && !re.HasDim {
				ok = r.assign(re, dimension.Div(le.Dim, e.Dim), right.Location()) && ok
			}
		} else {
			if le.HasDim && !re.HasDim {
				ok = r.assign(re, dimension.Div(e.Dim, le.Dim), right.Location()) && ok
			}
			if re.HasDim && !le.HasDim {
				ok = r.assign(le, dimension.Div(e.Dim, re.Dim), left.Location()) && ok
			}
		}
	}
	return ok
}

// VisitSum: upward, both children known must match, result = same;
// downward, propagate a known parent dim down to any unknown child.
func (r *Resolver) VisitSum(n *ast.Sum) bool {
	return r.visitAdditive(n, n.Left, n.Right)
}

// VisitDifference behaves identically to VisitSum: dimension algebra
// doesn't distinguish addition from subtraction.
func (r *Resolver) VisitDifference(n *ast.Difference) bool {
	return r.visitAdditive(n, n.Left, n.Right)
}

func (r *Resolver) visitAdditive(n ast.Node, left, right ast.Expression) bool {
	if !left.Accept(r) || !right.Accept(r) {
		return false
	}
	e, le, re := r.Table.GetNode(n), r.Table.GetNode(left), r.Table.GetNode(right)
	ok := true
	if le.HasDim && re.HasDim {
		if !le.Dim.Equal(re.Dim) {
			r.Sink.Report(semantic.DimensionMismatch, semantic.Error, n.Location(),
				"operands have different dimensions: %s vs %s", le.Dim.String(), re.Dim.String())
			return false
		}
		ok = r.assign(e, le.Dim, n.Location()) && ok
	}
	if r.down && e.HasDim {
		if !le.HasDim {
			ok = r.assign(le, e.Dim, left.Location()) && ok
		}
		if !re.HasDim {
			ok = r.assign(re, e.Dim, right.Location()) && ok
		}
	}
	return ok
}

// VisitNegative propagates the dimension in either direction since
// negation preserves it exactly.
func (r *Resolver) VisitNegative(n *ast.Negative) bool {
	if !n.Operand.Accept(r) {
		return false
	}
	e, oe := r.Table.GetNode(n), r.Table.GetNode(n.Operand)
	ok := true
	if oe.HasDim {
		ok = r.assign(e, oe.Dim, n.Loc) && ok
	}
	if r.down && e.HasDim && !oe.HasDim {
		ok = r.assign(oe, e.Dim, n.Operand.Location()) && ok
	}
	return ok
}

// VisitDocument processes unit definitions, then named dimensions, then
// alternates upward/downward equation propagation until a fixed point or
// the iteration cap. At least two passes always run.
func (r *Resolver) VisitDocument(n *ast.Document) bool {
	for _, u := range n.UnitDefs {
		if !u.Accept(r) {
			return false
		}
	}
	for _, d := range n.Defines {
		if !d.Accept(r) {
			return false
		}
	}
	for _, s := range n.Specifications {
		if !s.Accept(r) {
			return false
		}
	}

	r.progress = true
	for pass := 0; pass < r.iterationLimit && r.progress; pass++ {
		r.down = pass > 0
		r.progress = pass <= 1
		for _, e := range n.Equalities {
			if !e.Accept(r) {
				return false
			}
		}
	}
	return true
}

// Process runs the resolver over doc.
func (r *Resolver) Process(doc *ast.Document) bool {
	return doc.Accept(r)
}
