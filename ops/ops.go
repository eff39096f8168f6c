// Package ops defines a small virtual-machine instruction set for encoding
// a sequence of scalar arithmetic steps over semantic.Exp records, and a
// direct (single-pass, NaN-propagating) executor for it.
package ops

import (
	"math"

	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/semantic"
)

// Op is the closed sum type of every instruction. The unexported op()
// method closes the variant set the same way ast.Node closes its own.
type Op interface {
	Location() ast.Loc
	Accept(v Visitor) bool
	op()
}

// Visitor dispatches on the closed Op variant set. Every method reports
// whether the instruction could be evaluated — false means an operand was
// still unresolved (NaN), not that an error occurred.
type Visitor interface {
	VisitAdd(*Add) bool
	VisitSub(*Sub) bool
	VisitMul(*Mul) bool
	VisitDiv(*Div) bool
	VisitNeg(*Neg) bool
	VisitPow(*Pow) bool
	VisitAssign(*Assign) bool
	VisitLoad(*Load) bool
	VisitCheck(*Check) bool
}

// binary is the shared R = A op B shape of Add, Sub, Mul and Div.
type binary struct{ R, A, B *semantic.Exp }

func (o binary) Location() ast.Loc { return o.R.Node.Location() }

// Add computes R = A + B.
type Add struct{ binary }

func (o *Add) Accept(v Visitor) bool { return v.VisitAdd(o) }
func (*Add) op()                     {}

// NewAdd returns an Add op computing r = a + b.
func NewAdd(r, a, b *semantic.Exp) *Add { return &Add{binary{r, a, b}} }

// Sub computes R = A - B.
type Sub struct{ binary }

func (o *Sub) Accept(v Visitor) bool { return v.VisitSub(o) }
func (*Sub) op()                     {}

// NewSub returns a Sub op computing r = a - b.
func NewSub(r, a, b *semantic.Exp) *Sub { return &Sub{binary{r, a, b}} }

// Mul computes R = A * B.
type Mul struct{ binary }

func (o *Mul) Accept(v Visitor) bool { return v.VisitMul(o) }
func (*Mul) op()                     {}

// NewMul returns a Mul op computing r = a * b.
func NewMul(r, a, b *semantic.Exp) *Mul { return &Mul{binary{r, a, b}} }

// Div computes R = A / B.
type Div struct{ binary }

func (o *Div) Accept(v Visitor) bool { return v.VisitDiv(o) }
func (*Div) op()                     {}

// NewDiv returns a Div op computing r = a / b.
func NewDiv(r, a, b *semantic.Exp) *Div { return &Div{binary{r, a, b}} }

// Neg computes R = -A.
type Neg struct{ R, A *semantic.Exp }

func (o *Neg) Location() ast.Loc { return o.R.Node.Location() }
func (o *Neg) Accept(v Visitor) bool { return v.VisitNeg(o) }
func (*Neg) op()                     {}

// Pow computes R = B^E for a constant (possibly non-integer, possibly
// negative) exponent E.
type Pow struct {
	R, B *semantic.Exp
	E    float64
}

func (o *Pow) Location() ast.Loc     { return o.R.Node.Location() }
func (o *Pow) Accept(v Visitor) bool { return v.VisitPow(o) }
func (*Pow) op()                     {}

// Assign copies D = S, the op form of an equality used once one side is
// chosen as the solved root and the other as known input.
type Assign struct{ D, S *semantic.Exp }

func (o *Assign) Location() ast.Loc     { return o.D.Node.Location() }
func (o *Assign) Accept(v Visitor) bool { return v.VisitAssign(o) }
func (*Assign) op()                     {}

// Load reads input vector component I into N — how an unsolved root's
// current Newton-Raphson iterate enters the op sequence.
type Load struct {
	N *semantic.Exp
	I int
}

func (o *Load) Location() ast.Loc     { return o.N.Node.Location() }
func (o *Load) Accept(v Visitor) bool { return v.VisitLoad(o) }
func (*Load) op()                     {}

// Check writes residual component I = A - B, the op form of an equality
// whose sides are both already determined some other way and must now
// agree (directly, or compared as part of a Newton-Raphson residual).
type Check struct {
	I    int
	A, B *semantic.Exp
	Loc  ast.Loc
}

func (o *Check) Location() ast.Loc     { return o.Loc }
func (o *Check) Accept(v Visitor) bool { return v.VisitCheck(o) }
func (*Check) op()                     {}

// DirectEvaluate runs each op exactly once, propagating NaN: any op whose
// operands are unresolved leaves its result unresolved and reports false.
type DirectEvaluate struct {
	In  []float64
	Out []float64
}

func resolve(e *semantic.Exp, value float64) {
	e.Value = value
	e.Resolved = true
}

// VisitAdd implements Visitor.
func (d *DirectEvaluate) VisitAdd(o *Add) bool {
	if math.IsNaN(o.A.Value) || math.IsNaN(o.B.Value) {
		return false
	}
	resolve(o.R, o.A.Value+o.B.Value)
	return true
}

// VisitSub implements Visitor.
func (d *DirectEvaluate) VisitSub(o *Sub) bool {
	if math.IsNaN(o.A.Value) || math.IsNaN(o.B.Value) {
		return false
	}
	resolve(o.R, o.A.Value-o.B.Value)
	return true
}

// VisitMul implements Visitor.
func (d *DirectEvaluate) VisitMul(o *Mul) bool {
	if math.IsNaN(o.A.Value) || math.IsNaN(o.B.Value) {
		return false
	}
	resolve(o.R, o.A.Value*o.B.Value)
	return true
}

// VisitDiv implements Visitor.
func (d *DirectEvaluate) VisitDiv(o *Div) bool {
	if math.IsNaN(o.A.Value) || math.IsNaN(o.B.Value) {
		return false
	}
	resolve(o.R, o.A.Value/o.B.Value)
	return true
}

// VisitNeg implements Visitor.
func (d *DirectEvaluate) VisitNeg(o *Neg) bool {
	if math.IsNaN(o.A.Value) {
		return false
	}
	resolve(o.R, -o.A.Value)
	return true
}

// VisitPow implements Visitor.
func (d *DirectEvaluate) VisitPow(o *Pow) bool {
	if math.IsNaN(o.B.Value) {
		return false
	}
	resolve(o.R, math.Pow(o.B.Value, o.E))
	return true
}

// VisitAssign implements Visitor.
func (d *DirectEvaluate) VisitAssign(o *Assign) bool {
	if math.IsNaN(o.S.Value) {
		return false
	}
	resolve(o.D, o.S.Value)
	return true
}

// VisitLoad implements Visitor.
func (d *DirectEvaluate) VisitLoad(o *Load) bool {
	resolve(o.N, d.In[o.I])
	return true
}

// VisitCheck implements Visitor.
func (d *DirectEvaluate) VisitCheck(o *Check) bool {
	if math.IsNaN(o.A.Value) || math.IsNaN(o.B.Value) {
		return false
	}
	d.Out[o.I] = o.A.Value - o.B.Value
	return true
}

// Run executes every op in program, in order, regardless of whether any
// individual op reports false: a later op may still be evaluable even
// when an earlier one's operands were unresolved (e.g. two independent
// Check residuals in the same program). ranAll reports whether every op
// succeeded; stoppedAt is the index of the first one that didn't (or
// len(program) if all succeeded), for callers that want to report where
// evaluation first stalled.
func Run(v Visitor, program []Op) (ranAll bool, stoppedAt int) {
	ranAll, stoppedAt = true, len(program)
	for i, o := range program {
		if !o.Accept(v) && ranAll {
			ranAll, stoppedAt = false, i
		}
	}
	return ranAll, stoppedAt
}
