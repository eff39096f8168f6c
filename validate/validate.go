// Package validate builds the semantic table from a parsed Document and
// diagnoses structural errors: duplicate definitions, a Specification
// colliding with a Define, and unused definitions.
package validate

import (
	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/semantic"
)

// Validator walks a Document, populating a semantic.Table and collecting
// diagnostics into a semantic.Sink. It implements ast.Visitor.
type Validator struct {
	Table *semantic.Table
	Sink  *semantic.Sink

	warningsAsErrors bool
	failed           bool
}

// New returns a Validator writing into table and sink. warningsAsErrors
// promotes unused-definition warnings into errors.
func New(table *semantic.Table, sink *semantic.Sink, warningsAsErrors bool) *Validator {
	return &Validator{Table: table, Sink: sink, warningsAsErrors: warningsAsErrors}
}

// Process runs validation over doc. Returns false if any error-severity
// diagnostic was recorded.
func (v *Validator) Process(doc *ast.Document) bool {
	ok := doc.Accept(v)
	if v.warningsAsErrors {
		v.Sink.PromoteWarnings()
	}
	return ok && !v.Sink.HasErrors()
}

func (v *Validator) visitBinary(left, right ast.Expression) bool {
	return v.visitChild(left) && v.visitChild(right)
}

func (v *Validator) visitChild(e ast.Expression) bool {
	return e.Accept(v)
}

// VisitLiteral marks the node's anonymous record as a literal.
func (v *Validator) VisitLiteral(n *ast.Literal) bool {
	e := v.Table.GetNode(n)
	e.IsLiteral = true
	return true
}

// VisitNamed fetches-or-creates the named record and marks it referenced.
func (v *Validator) VisitNamed(n *ast.Named) bool {
	v.Table.ReferenceNamedNode(n.Name, n)
	return true
}

// VisitDefine creates the name's record; fails if a different Define
// already owns the name.
func (v *Validator) VisitDefine(n *ast.Define) bool {
	e := v.Table.GetNamedNode(n.Name, n)
	if e.Def != nil && e.Def != n {
		v.Sink.Report(semantic.DuplicateDefinition, semantic.Error, n.Loc,
			"duplicate definition of %q, first defined at %s", n.Name, e.Def.Loc.String())
		return false
	}
	e.Def = n
	ok := n.Value.Accept(v)
	if n.Unit != nil {
		ok = n.Unit.Accept(v) && ok
	}
	return ok
}

// VisitSpecification attaches the spec pointer; fails if a Define or a
// prior Specification already owns the name.
func (v *Validator) VisitSpecification(n *ast.Specification) bool {
	e := v.Table.GetNodeForName(n.Name)
	if e.Def != nil {
		v.Sink.Report(semantic.DuplicateDefinition, semantic.Error, n.Loc,
			"%q is already defined at %s", n.Name, e.Def.Loc.String())
		return false
	}
	if e.Spec != nil && e.Spec != n {
		v.Sink.Report(semantic.DuplicateDefinition, semantic.Error, n.Loc,
			"%q is already specified at %s", n.Name, e.Spec.Loc.String())
		return false
	}
	e.Spec = n
	e.Name = n.Name
	ok := true
	if n.Unit != nil {
		ok = n.Unit.Accept(v)
	}
	return ok
}

// VisitEquality allocates an anonymous record and validates both sides.
func (v *Validator) VisitEquality(n *ast.Equality) bool {
	v.Table.GetNode(n)
	return v.visitBinary(n.Left, n.Right)
}

// VisitPower allocates an anonymous record and validates the base.
func (v *Validator) VisitPower(n *ast.Power) bool {
	v.Table.GetNode(n)
	return v.visitChild(n.Base)
}

// VisitProduct allocates an anonymous record and validates both operands.
func (v *Validator) VisitProduct(n *ast.Product) bool {
	v.Table.GetNode(n)
	return v.visitBinary(n.Left, n.Right)
}

// VisitQuotient allocates an anonymous record and validates both operands.
func (v *Validator) VisitQuotient(n *ast.Quotient) bool {
	v.Table.GetNode(n)
	return v.visitBinary(n.Left, n.Right)
}

// VisitSum allocates an anonymous record and validates both operands.
func (v *Validator) VisitSum(n *ast.Sum) bool {
	v.Table.GetNode(n)
	return v.visitBinary(n.Left, n.Right)
}

// VisitDifference allocates an anonymous record and validates both operands.
func (v *Validator) VisitDifference(n *ast.Difference) bool {
	v.Table.GetNode(n)
	return v.visitBinary(n.Left, n.Right)
}

// VisitNegative allocates an anonymous record and validates the operand.
func (v *Validator) VisitNegative(n *ast.Negative) bool {
	v.Table.GetNode(n)
	return v.visitChild(n.Operand)
}

// VisitUnitExp is a no-op: unit expressions are resolved against the
// registry in the unit-resolver pass, not validated here.
func (v *Validator) VisitUnitExp(n *ast.UnitExp) bool { return true }

// VisitUnitDef is a no-op here: unit-name collisions are detected when the
// unit resolver registers the name.
func (v *Validator) VisitUnitDef(n *ast.UnitDef) bool { return true }

// VisitDocument validates every statement, then warns about every Define
// whose location is not the preamble and which was never referenced.
func (v *Validator) VisitDocument(n *ast.Document) bool {
	ok := true
	for _, u := range n.UnitDefs {
		ok = u.Accept(v) && ok
	}
	for _, d := range n.Defines {
		ok = d.Accept(v) && ok
	}
	for _, s := range n.Specifications {
		ok = s.Accept(v) && ok
	}
	for _, e := range n.Equalities {
		ok = e.Accept(v) && ok
	}

	for _, e := range v.Table.Nodes() {
		if e.Def == nil || e.Def.Loc.File == ast.PreambleFile || e.Referenced {
			continue
		}
		v.Sink.Report(semantic.UnusedDefinition, semantic.Warning, e.Def.Loc,
			"unused definition of %q", e.Name)
	}
	return ok
}
