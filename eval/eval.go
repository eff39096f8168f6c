// Package eval turns a fully dimension-resolved Document into an
// evaluation plan: a sequence of ops that compute every directly
// derivable value, followed — if some values remain circularly
// dependent — by a second sequence that turns a guess vector into a
// residual vector for a numeric solver.
package eval

import (
	"sort"

	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/ops"
	"github.com/bcsgh/tbd/selectsys"
	"github.com/bcsgh/tbd/semantic"
)

// Stage is one phase of the evaluation plan.
type Stage struct {
	// DirectOps always succeed: every value they need is already known
	// by the time they run.
	DirectOps []ops.Op
	// SolveOps turns an input vector of variable guesses (length Count)
	// into a residual vector (also length Count) via a run of
	// ops.DirectEvaluate; a numeric solver drives this to zero.
	SolveOps []ops.Op
	Count    int
}

// Evaluator assembles a Stage from a Document. It implements ast.Visitor;
// each Visit method reports whether the node's value is now fully
// determined (true), or could not be determined this call (false).
type Evaluator struct {
	Table *semantic.Table
	Sink  *semantic.Sink

	error         bool
	progress      bool
	allowConflict bool

	ops    []ops.Op
	inIdx  int
	outIdx int
}

// New returns an Evaluator writing diagnostics into sink.
func New(table *semantic.Table, sink *semantic.Sink) *Evaluator {
	return &Evaluator{Table: table, Sink: sink}
}

func (e *Evaluator) emit(o ops.Op) { e.ops = append(e.ops, o) }

func (e *Evaluator) conflict(loc ast.Loc, msg string) bool {
	e.Sink.Report(semantic.ValueConflict, semantic.Error, loc, "%s", msg)
	e.error = true
	return false
}

// VisitLiteral resolves a bare numeric constant to its own value.
func (e *Evaluator) VisitLiteral(n *ast.Literal) bool {
	node := e.Table.GetNode(n)
	node.Value = n.Value
	node.EquProcessed = true
	node.Resolved = true
	e.progress = true
	return true
}

// VisitNamed reports whether the named variable is already resolved.
func (e *Evaluator) VisitNamed(n *ast.Named) bool {
	node := e.Table.GetNodeForName(n.Name)
	node.EquProcessed = node.Resolved
	return node.Resolved
}

// VisitDefine resolves a defined quantity to its literal value scaled by
// its declared unit.
func (e *Evaluator) VisitDefine(n *ast.Define) bool {
	node := e.Table.GetNodeForName(n.Name)
	node.Value = n.Value.Value * node.Unit.Scale
	node.EquProcessed = true
	node.Resolved = true
	e.progress = true
	return true
}

// VisitSpecification never resolves directly: a specified quantity only
// gets a value through an equality elsewhere in the document.
func (e *Evaluator) VisitSpecification(n *ast.Specification) bool { return false }

// VisitUnitExp and VisitUnitDef are never reached during evaluation —
// unit expressions are fully consumed by the resolve pass.
func (e *Evaluator) VisitUnitExp(n *ast.UnitExp) bool {
	panic("eval: UnitExp visited during evaluation")
}
func (e *Evaluator) VisitUnitDef(n *ast.UnitDef) bool {
	panic("eval: UnitDef visited during evaluation")
}

// VisitEquality: if both sides are known, check (or, in direct mode,
// error on) a conflict; if exactly one side is known, propagate it to
// both the equality's own record and the unknown side.
func (e *Evaluator) VisitEquality(n *ast.Equality) bool {
	i := e.Table.GetNode(n)
	l := e.Table.GetNode(n.Left)
	r := e.Table.GetNode(n.Right)

	if l.Resolved && r.Resolved {
		if !i.EquProcessed {
			if !e.allowConflict {
				return e.conflict(n.Loc, "conflicting result")
			}
			e.emit(&ops.Check{I: e.outIdx, A: l, B: r, Loc: n.Loc})
			e.outIdx++
			i.EquProcessed = true
			e.progress = true
		}
		return true
	}
	if l.Resolved {
		e.emit(&ops.Assign{D: i, S: l})
		e.emit(&ops.Assign{D: r, S: l})
		i.EquProcessed, i.Resolved, r.Resolved = true, true, true
		e.progress = true
		return true
	}
	if r.Resolved {
		e.emit(&ops.Assign{D: i, S: r})
		e.emit(&ops.Assign{D: l, S: r})
		i.EquProcessed, i.Resolved, l.Resolved = true, true, true
		e.progress = true
		return true
	}
	return false
}

// VisitPower: forward when the base is known; invert an odd integer
// power back onto the base when only the result is known (an even power
// has two real roots and is not invertible without a sign choice).
func (e *Evaluator) VisitPower(n *ast.Power) bool {
	b := e.Table.GetNode(n.Base)
	exp := e.Table.GetNode(n)

	if b.Resolved && exp.Resolved {
		if !exp.EquProcessed {
			if !e.allowConflict {
				return e.conflict(n.Loc, "conflicting result")
			}
			anon := e.Table.NewAnon()
			e.emit(&ops.Pow{R: anon, B: b, E: float64(n.Exp)})
			e.emit(&ops.Check{I: e.outIdx, A: exp, B: anon, Loc: n.Loc})
			e.outIdx++
			exp.EquProcessed, anon.EquProcessed, anon.Resolved = true, true, true
			e.progress = true
		}
		return true
	}
	if b.Resolved {
		e.emit(&ops.Pow{R: exp, B: b, E: float64(n.Exp)})
		exp.EquProcessed, exp.Resolved = true, true
		e.progress = true
		return true
	}
	if exp.Resolved && n.Exp%2 != 0 {
		e.emit(&ops.Pow{R: b, B: exp, E: 1.0 / float64(n.Exp)})
		exp.EquProcessed, b.Resolved = true, true
		e.progress = true
		return true
	}
	return false
}

// VisitProduct: forward when both operands are known; otherwise divide
// the result by whichever operand is known to solve for the other.
func (e *Evaluator) VisitProduct(n *ast.Product) bool {
	l := e.Table.GetNode(n.Left)
	r := e.Table.GetNode(n.Right)
	p := e.Table.GetNode(n)

	if p.Resolved && l.Resolved && r.Resolved {
		if !p.EquProcessed {
			if !e.allowConflict {
				return e.conflict(n.Loc, "conflicting result")
			}
			anon := e.Table.NewAnon()
			e.emit(ops.NewMul(anon, l, r))
			e.emit(&ops.Check{I: e.outIdx, A: p, B: anon, Loc: n.Loc})
			e.outIdx++
			p.EquProcessed, anon.EquProcessed, anon.Resolved = true, true, true
			e.progress = true
		}
		return true
	}
	if l.Resolved && r.Resolved {
		e.emit(ops.NewMul(p, l, r))
		p.EquProcessed, p.Resolved = true, true
		e.progress = true
		return true
	}
	if p.Resolved && l.Resolved {
		e.emit(ops.NewDiv(r, p, l))
		p.EquProcessed, r.Resolved = true, true
		e.progress = true
		return true
	}
	if p.Resolved && r.Resolved {
		e.emit(ops.NewDiv(l, p, r))
		p.EquProcessed, l.Resolved = true, true
		e.progress = true
		return true
	}
	return false
}

// VisitQuotient mirrors VisitProduct for division: l/r = n.
func (e *Evaluator) VisitQuotient(n *ast.Quotient) bool {
	l := e.Table.GetNode(n.Left)
	r := e.Table.GetNode(n.Right)
	q := e.Table.GetNode(n)

	if q.Resolved && l.Resolved && r.Resolved {
		if !q.EquProcessed {
			if !e.allowConflict {
				return e.conflict(n.Loc, "conflicting result")
			}
			anon := e.Table.NewAnon()
			e.emit(ops.NewDiv(anon, l, r))
			e.emit(&ops.Check{I: e.outIdx, A: q, B: anon, Loc: n.Loc})
			e.outIdx++
			q.EquProcessed, anon.EquProcessed, anon.Resolved = true, true, true
			e.progress = true
		}
		return true
	}
	if l.Resolved && r.Resolved {
		e.emit(ops.NewDiv(q, l, r))
		q.EquProcessed, q.Resolved = true, true
		e.progress = true
		return true
	}
	if q.Resolved && r.Resolved {
		e.emit(ops.NewMul(l, q, r))
		q.EquProcessed, l.Resolved = true, true
		e.progress = true
		return true
	}
	if q.Resolved && l.Resolved {
		e.emit(ops.NewDiv(r, l, q))
		q.EquProcessed, r.Resolved = true, true
		e.progress = true
		return true
	}
	return false
}

// VisitSum mirrors VisitProduct for addition: l+r = n.
func (e *Evaluator) VisitSum(n *ast.Sum) bool {
	l := e.Table.GetNode(n.Left)
	r := e.Table.GetNode(n.Right)
	s := e.Table.GetNode(n)

	if s.Resolved && l.Resolved && r.Resolved {
		if !s.EquProcessed {
			if !e.allowConflict {
				return e.conflict(n.Loc, "conflicting result")
			}
			anon := e.Table.NewAnon()
			e.emit(ops.NewAdd(anon, l, r))
			e.emit(&ops.Check{I: e.outIdx, A: s, B: anon, Loc: n.Loc})
			e.outIdx++
			s.EquProcessed, anon.EquProcessed, anon.Resolved = true, true, true
			e.progress = true
		}
		return true
	}
	if l.Resolved && r.Resolved {
		e.emit(ops.NewAdd(s, l, r))
		s.EquProcessed, s.Resolved = true, true
		e.progress = true
		return true
	}
	if s.Resolved && l.Resolved {
		e.emit(ops.NewSub(r, s, l))
		s.EquProcessed, r.Resolved = true, true
		e.progress = true
		return true
	}
	if s.Resolved && r.Resolved {
		e.emit(ops.NewSub(l, s, r))
		s.EquProcessed, l.Resolved = true, true
		e.progress = true
		return true
	}
	return false
}

// VisitDifference mirrors VisitSum for subtraction: l-r = n.
func (e *Evaluator) VisitDifference(n *ast.Difference) bool {
	l := e.Table.GetNode(n.Left)
	r := e.Table.GetNode(n.Right)
	d := e.Table.GetNode(n)

	if d.Resolved && l.Resolved && r.Resolved {
		if !d.EquProcessed {
			if !e.allowConflict {
				return e.conflict(n.Loc, "conflicting result")
			}
			anon := e.Table.NewAnon()
			e.emit(ops.NewSub(anon, l, r))
			e.emit(&ops.Check{I: e.outIdx, A: d, B: anon, Loc: n.Loc})
			e.outIdx++
			d.EquProcessed, anon.EquProcessed, anon.Resolved = true, true, true
			e.progress = true
		}
		return true
	}
	if l.Resolved && r.Resolved {
		e.emit(ops.NewSub(d, l, r))
		d.EquProcessed, d.Resolved = true, true
		e.progress = true
		return true
	}
	if d.Resolved && l.Resolved {
		e.emit(ops.NewSub(r, l, d))
		d.EquProcessed, r.Resolved = true, true
		e.progress = true
		return true
	}
	if d.Resolved && r.Resolved {
		e.emit(ops.NewAdd(l, r, d))
		d.EquProcessed, l.Resolved = true, true
		e.progress = true
		return true
	}
	return false
}

// VisitNegative: forward or invert, negation is its own inverse.
func (e *Evaluator) VisitNegative(n *ast.Negative) bool {
	b := e.Table.GetNode(n.Operand)
	exp := e.Table.GetNode(n)

	if b.Resolved && exp.Resolved {
		if !exp.EquProcessed {
			if !e.allowConflict {
				return e.conflict(n.Loc, "conflicting result")
			}
			anon := e.Table.NewAnon()
			e.emit(&ops.Neg{R: anon, A: b})
			e.emit(&ops.Check{I: e.outIdx, A: exp, B: anon, Loc: n.Loc})
			e.outIdx++
			exp.EquProcessed, anon.EquProcessed, anon.Resolved = true, true, true
			e.progress = true
		}
		return true
	}
	if b.Resolved {
		e.emit(&ops.Neg{R: exp, A: b})
		exp.EquProcessed, exp.Resolved = true, true
		e.progress = true
		return true
	}
	if exp.Resolved {
		e.emit(&ops.Neg{R: b, A: exp})
		exp.EquProcessed, b.Resolved = true, true
		e.progress = true
		return true
	}
	return false
}

// VisitDocument is unused: Process drives the document-level loop
// directly so it can interleave stage-building with node-set bookkeeping
// that doesn't fit the single-bool Visitor contract.
func (e *Evaluator) VisitDocument(n *ast.Document) bool { return false }

func orderedFrom(all []*semantic.Exp, set map[ast.Node]bool) []ast.Node {
	var out []ast.Node
	for _, exp := range all {
		if exp.Node != nil && set[exp.Node] {
			out = append(out, exp.Node)
		}
	}
	return out
}

func toSet(nodes []ast.Node) map[ast.Node]bool {
	out := make(map[ast.Node]bool, len(nodes))
	for _, n := range nodes {
		out[n] = true
	}
	return out
}

// directEvaluateNodes repeatedly visits pending (in its given, already
// stable, order), dropping any node that resolves, until a pass makes no
// further progress. The surviving order is a subsequence of the input
// order, so no re-sort is needed between passes.
func (e *Evaluator) directEvaluateNodes(pending []ast.Node) []ast.Node {
	e.progress = true
	for e.progress && len(pending) > 0 {
		e.progress = false
		var next []ast.Node
		for _, n := range pending {
			if n.Accept(e) {
				e.progress = true
			} else {
				next = append(next, n)
			}
		}
		pending = next
	}
	return pending
}

// Process assembles the evaluation plan for doc: first every directly
// resolvable value (literals, then everything else that falls out from
// them and from Defines), then — if any value remains circularly
// dependent on others — a minimum subset of equations to drive with a
// numeric solver.
func (e *Evaluator) Process(doc *ast.Document) (*Stage, bool) {
	all := e.Table.StableNodes()
	pending := map[ast.Node]bool{}
	for _, exp := range all {
		pending[exp.Node] = true
	}

	for _, d := range doc.Defines {
		if !d.Accept(e) {
			return nil, false
		}
		delete(pending, d)
	}
	if e.error {
		return nil, false
	}

	stage := &Stage{}
	e.ops = nil
	e.allowConflict = false

	literals := map[ast.Node]bool{}
	for n := range pending {
		if _, ok := n.(*ast.Literal); ok {
			literals[n] = true
		}
	}
	for n := range literals {
		delete(pending, n)
	}
	if left := e.directEvaluateNodes(orderedFrom(all, literals)); len(left) != 0 {
		panic("eval: a literal failed to resolve on its own")
	}

	remaining := toSet(e.directEvaluateNodes(orderedFrom(all, pending)))
	stage.DirectOps = e.ops

	if e.error {
		return nil, false
	}

	if len(remaining) > 0 {
		roots := NewFindUnsolvedRoots(e.Table)
		for _, eq := range doc.Equalities {
			eq.Accept(roots)
		}

		expResult, varResult, ok := selectsys.FindSolution(roots.Unsolved)
		if !ok {
			e.Sink.ReportGlobal(semantic.Unsolvable, semantic.Error,
				"failed to select a solvable subset of equations")
			return nil, false
		}

		reach := map[ast.Node]bool{}
		for n := range expResult {
			for _, child := range expressionsIn(n) {
				reach[child] = true
			}
		}
		solveSet := map[ast.Node]bool{}
		for n := range reach {
			if exp, ok2 := e.Table.TryGetNode(n); ok2 && (!exp.Resolved || !exp.EquProcessed) {
				solveSet[n] = true
			}
		}

		e.ops = nil
		e.allowConflict = true
		e.inIdx, e.outIdx = 0, 0

		vars := make([]string, 0, len(varResult))
		for v := range varResult {
			vars = append(vars, v)
		}
		sort.Strings(vars)

		for len(vars) > 0 {
			name := vars[0]
			vars = vars[1:]
			node, found := e.Table.TryGetNamedNode(name)
			if !found || node.EquProcessed {
				continue
			}
			node.Resolved = true
			node.EquProcessed = true
			e.emit(&ops.Load{N: node, I: e.inIdx})
			e.inIdx++

			solveSet = toSet(e.directEvaluateNodes(orderedFrom(all, solveSet)))
		}
		if e.inIdx != e.outIdx {
			panic("eval: input and output op counts disagree")
		}
		stage.Count = e.inIdx
		stage.SolveOps = e.ops
	}

	return stage, !e.error
}
