// Package codegen renders an op sequence as target-language assignment
// text instead of executing it: the same ops.Visitor dispatch the direct
// evaluator uses, but each Visit method writes a line of text rather
// than computing a float64. Intermediate (unnamed) results are cached
// and substituted inline at their next use, so only named quantities and
// load/check boundary ops ever produce a line of output.
package codegen

import (
	"fmt"
	"strings"

	"github.com/bcsgh/tbd/ops"
	"github.com/bcsgh/tbd/semantic"
)

// Generate renders program as a newline-terminated sequence of
// assignment statements and returns it along with whether every op could
// be rendered (false means some operand had neither a name nor a
// literal value to fall back on — a defect in the op sequence the
// generator can't paper over, reported through sink rather than
// halting).
func Generate(program []ops.Op, sink *semantic.Sink) (string, bool) {
	g := &Generator{sink: sink, text: map[*semantic.Exp]string{}}
	ranAll, stoppedAt := ops.Run(g, program)
	if !ranAll {
		g.sink.ReportGlobal(semantic.Unsolvable, semantic.Warning,
			"codegen: op %d could not be rendered", stoppedAt)
	}
	return g.out.String(), ranAll
}

// Generator is an ops.Visitor that renders each op as text instead of
// evaluating it.
type Generator struct {
	sink *semantic.Sink
	out  strings.Builder
	text map[*semantic.Exp]string
}

// source returns e's already-rendered text, seeding the cache from its
// name or literal value the first time e is seen. ok is false if e has
// neither and hasn't been rendered yet.
func (g *Generator) source(e *semantic.Exp) (string, bool) {
	if v, ok := g.text[e]; ok {
		return v, true
	}
	switch {
	case e.Name != "":
		g.text[e] = e.Name
	case e.IsLiteral:
		g.text[e] = formatLiteral(e.Value)
	default:
		return "", false
	}
	return g.text[e], true
}

func formatLiteral(v float64) string { return fmt.Sprintf("%g", v) }

// emit records r's rendered form: an anonymous r caches v for later
// inline substitution; a named r writes "name = v;\n" and caches the
// name itself, so subsequent references render as the name, not the
// full expression.
func (g *Generator) emit(r *semantic.Exp, v string) bool {
	if r.Name == "" {
		g.text[r] = v
		return true
	}
	fmt.Fprintf(&g.out, "%s = %s;\n", r.Name, v)
	g.text[r] = r.Name
	return true
}

func (g *Generator) binaryOp(r, a, b *semantic.Exp, op string) bool {
	aText, ok := g.source(a)
	if !ok {
		g.sink.Report(semantic.Unsolvable, semantic.Warning, a.Node.Location(),
			"codegen: %q has neither a name nor a literal value", a.Name)
		return false
	}
	bText, ok := g.source(b)
	if !ok {
		g.sink.Report(semantic.Unsolvable, semantic.Warning, b.Node.Location(),
			"codegen: %q has neither a name nor a literal value", b.Name)
		return false
	}
	return g.emit(r, fmt.Sprintf("(%s %s %s)", aText, op, bText))
}

// VisitAdd implements ops.Visitor.
func (g *Generator) VisitAdd(o *ops.Add) bool { return g.binaryOp(o.R, o.A, o.B, "+") }

// VisitSub implements ops.Visitor.
func (g *Generator) VisitSub(o *ops.Sub) bool { return g.binaryOp(o.R, o.A, o.B, "−") }

// VisitMul implements ops.Visitor.
func (g *Generator) VisitMul(o *ops.Mul) bool { return g.binaryOp(o.R, o.A, o.B, "·") }

// VisitDiv implements ops.Visitor.
func (g *Generator) VisitDiv(o *ops.Div) bool { return g.binaryOp(o.R, o.A, o.B, "/") }

// VisitNeg implements ops.Visitor.
func (g *Generator) VisitNeg(o *ops.Neg) bool {
	aText, ok := g.source(o.A)
	if !ok {
		g.sink.Report(semantic.Unsolvable, semantic.Warning, o.A.Node.Location(),
			"codegen: %q has neither a name nor a literal value", o.A.Name)
		return false
	}
	return g.emit(o.R, fmt.Sprintf("(−%s)", aText))
}

// VisitPow implements ops.Visitor.
func (g *Generator) VisitPow(o *ops.Pow) bool {
	bText, ok := g.source(o.B)
	if !ok {
		g.sink.Report(semantic.Unsolvable, semantic.Warning, o.B.Node.Location(),
			"codegen: %q has neither a name nor a literal value", o.B.Name)
		return false
	}
	return g.emit(o.R, fmt.Sprintf("pow(%s, %s)", bText, formatLiteral(o.E)))
}

// VisitAssign implements ops.Visitor.
func (g *Generator) VisitAssign(o *ops.Assign) bool {
	sText, ok := g.source(o.S)
	if !ok {
		g.sink.Report(semantic.Unsolvable, semantic.Warning, o.S.Node.Location(),
			"codegen: %q has neither a name nor a literal value", o.S.Name)
		return false
	}
	return g.emit(o.D, sText)
}

// VisitLoad implements ops.Visitor.
func (g *Generator) VisitLoad(o *ops.Load) bool {
	if o.N.Name == "" {
		g.sink.Report(semantic.Unsolvable, semantic.Warning, o.N.Node.Location(),
			"codegen: load target has no name")
		return false
	}
	if _, already := g.text[o.N]; already {
		g.sink.Report(semantic.Unsolvable, semantic.Warning, o.N.Node.Location(),
			"codegen: %q is already loaded", o.N.Name)
		return false
	}
	g.text[o.N] = o.N.Name
	fmt.Fprintf(&g.out, "%s = input[%d];\n", o.N.Name, o.I)
	return true
}

// VisitCheck implements ops.Visitor. Unlike every other op, a Check
// tolerates an unrendered operand: the residual line is emitted with a
// "?" placeholder rather than failing outright, since a Check is the
// terminal consumer of a value and has nothing downstream to poison.
func (g *Generator) VisitCheck(o *ops.Check) bool {
	a, b := "?", "?"
	if o.A != nil {
		if v, ok := g.source(o.A); ok {
			a = v
		}
	}
	if o.B != nil {
		if v, ok := g.source(o.B); ok {
			b = v
		}
	}
	fmt.Fprintf(&g.out, "output[%d] = (%s − %s);\n", o.I, a, b)
	return true
}
