package ast

// Node is the closed sum type of every expression-tree node. The
// unexported node() method closes the variant set: no type outside this
// package can satisfy Node, so a Visitor only ever needs to handle the
// fourteen variants declared below.
type Node interface {
	Location() Loc
	Accept(v Visitor) bool
	node()
}

// Expression is the subset of Node that can appear as an operand: every
// variant except Define, UnitDef, Specification, UnitExp and Document.
type Expression interface {
	Node
	expression()
}

// Visitor dispatches on the closed Node variant set. Every method returns
// true on success, false to abort the current pass. Implementations must
// handle all fourteen variants — there is no default/catch-all case.
type Visitor interface {
	VisitLiteral(*Literal) bool
	VisitNamed(*Named) bool
	VisitDefine(*Define) bool
	VisitEquality(*Equality) bool
	VisitPower(*Power) bool
	VisitProduct(*Product) bool
	VisitQuotient(*Quotient) bool
	VisitSum(*Sum) bool
	VisitDifference(*Difference) bool
	VisitNegative(*Negative) bool
	VisitUnitExp(*UnitExp) bool
	VisitUnitDef(*UnitDef) bool
	VisitSpecification(*Specification) bool
	VisitDocument(*Document) bool
}

// Literal is a bare numeric constant.
type Literal struct {
	Value float64
	Loc   Loc
}

func (n *Literal) Location() Loc         { return n.Loc }
func (n *Literal) Accept(v Visitor) bool { return v.VisitLiteral(n) }
func (*Literal) node()                   {}
func (*Literal) expression()             {}

// Named references a variable by name.
type Named struct {
	Name string
	Loc  Loc
}

func (n *Named) Location() Loc         { return n.Loc }
func (n *Named) Accept(v Visitor) bool { return v.VisitNamed(n) }
func (*Named) node()                   {}
func (*Named) expression()             {}

// Define introduces a named quantity with a literal value and a unit.
type Define struct {
	Name  string
	Value *Literal
	Unit  *UnitExp
	Loc   Loc
}

func (n *Define) Location() Loc         { return n.Loc }
func (n *Define) Accept(v Visitor) bool { return v.VisitDefine(n) }
func (*Define) node()                   {}

// Equality asserts Left == Right.
type Equality struct {
	Left, Right Expression
	Loc         Loc
}

func (n *Equality) Location() Loc         { return n.Loc }
func (n *Equality) Accept(v Visitor) bool { return v.VisitEquality(n) }
func (*Equality) node()                   {}
func (*Equality) expression()             {}

// Power raises Base to an integer exponent.
type Power struct {
	Base Expression
	Exp  int
	Loc  Loc
}

func (n *Power) Location() Loc         { return n.Loc }
func (n *Power) Accept(v Visitor) bool { return v.VisitPower(n) }
func (*Power) node()                   {}
func (*Power) expression()             {}

// binaryExpression is the shared shape of Product, Quotient, Sum and
// Difference: embedding it gives each its Left/Right/Loc fields for free.
type binaryExpression struct {
	Left, Right Expression
	Loc         Loc
}

func (n binaryExpression) Location() Loc { return n.Loc }

// Product is Left * Right.
type Product struct{ binaryExpression }

func (n *Product) Accept(v Visitor) bool { return v.VisitProduct(n) }
func (*Product) node()                   {}
func (*Product) expression()             {}

// Quotient is Left / Right.
type Quotient struct{ binaryExpression }

func (n *Quotient) Accept(v Visitor) bool { return v.VisitQuotient(n) }
func (*Quotient) node()                   {}
func (*Quotient) expression()             {}

// Sum is Left + Right.
type Sum struct{ binaryExpression }

func (n *Sum) Accept(v Visitor) bool { return v.VisitSum(n) }
func (*Sum) node()                   {}
func (*Sum) expression()             {}

// Difference is Left - Right.
type Difference struct{ binaryExpression }

func (n *Difference) Accept(v Visitor) bool { return v.VisitDifference(n) }
func (*Difference) node()                   {}
func (*Difference) expression()             {}

// Negative is -Operand.
type Negative struct {
	Operand Expression
	Loc     Loc
}

func (n *Negative) Location() Loc         { return n.Loc }
func (n *Negative) Accept(v Visitor) bool { return v.VisitNegative(n) }
func (*Negative) node()                   {}
func (*Negative) expression()             {}

// UnitFactor is one (identifier, exponent) term of a unit expression.
type UnitFactor struct {
	ID  string
	Exp int
	Loc Loc
}

// UnitExp is an ordered product of unit factors, e.g. "kg*m/s^2".
type UnitExp struct {
	Factors []UnitFactor
	Loc     Loc
}

func (n *UnitExp) Location() Loc         { return n.Loc }
func (n *UnitExp) Accept(v Visitor) bool { return v.VisitUnitExp(n) }
func (*UnitExp) node()                   {}

// Mul appends a factor with the given (positive-sense) exponent.
func (n *UnitExp) Mul(id string, exp int, loc Loc) {
	n.Factors = append(n.Factors, UnitFactor{ID: id, Exp: exp, Loc: loc})
}

// Div appends a factor with a negated exponent.
func (n *UnitExp) Div(id string, exp int, loc Loc) {
	n.Factors = append(n.Factors, UnitFactor{ID: id, Exp: -exp, Loc: loc})
}

// UnitDef declares a derived unit: "unit name = literal unit-expression".
type UnitDef struct {
	Name  string
	Value float64
	Unit  *UnitExp
	Loc   Loc
}

func (n *UnitDef) Location() Loc         { return n.Loc }
func (n *UnitDef) Accept(v Visitor) bool { return v.VisitUnitDef(n) }
func (*UnitDef) node()                   {}

// Specification declares an unknown named quantity's unit without a value.
type Specification struct {
	Name string
	Unit *UnitExp
	Loc  Loc
}

func (n *Specification) Location() Loc         { return n.Loc }
func (n *Specification) Accept(v Visitor) bool { return v.VisitSpecification(n) }
func (*Specification) node()                   {}

// Document is the root node: every top-level statement, grouped by kind.
type Document struct {
	Defines        []*Define
	Specifications []*Specification
	Equalities     []*Equality
	UnitDefs       []*UnitDef
	Loc            Loc
}

func (n *Document) Location() Loc         { return n.Loc }
func (n *Document) Accept(v Visitor) bool { return v.VisitDocument(n) }
func (*Document) node()                   {}

// AddDefine appends a Define statement.
func (n *Document) AddDefine(d *Define) { n.Defines = append(n.Defines, d) }

// AddSpecification appends a Specification statement.
func (n *Document) AddSpecification(s *Specification) {
	n.Specifications = append(n.Specifications, s)
}

// AddEquality appends an Equality statement.
func (n *Document) AddEquality(e *Equality) { n.Equalities = append(n.Equalities, e) }

// AddUnitDef appends a UnitDef statement.
func (n *Document) AddUnitDef(u *UnitDef) { n.UnitDefs = append(n.UnitDefs, u) }
