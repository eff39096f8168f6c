// Package tbd orchestrates the full pipeline — parse, validate, resolve
// units, evaluate, and (if a degree of freedom survives) drive a
// numeric solve — over one document, the way the original tool's single
// Process() entry point did.
package tbd

import (
	"context"

	"github.com/google/uuid"

	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/eval"
	"github.com/bcsgh/tbd/newton"
	"github.com/bcsgh/tbd/ops"
	"github.com/bcsgh/tbd/parser"
	"github.com/bcsgh/tbd/preamble"
	"github.com/bcsgh/tbd/resolve"
	"github.com/bcsgh/tbd/semantic"
	"github.com/bcsgh/tbd/validate"
)

// Options configures one Compile call.
type Options struct {
	IterationLimit   int     // unit-resolver fixed-point pass cap
	WarningsAsErrors bool    // promote UnusedDefinition to an error
	DumpUnits        bool    // populate Result.Units
	NewtonIterations int     // residual-solve iteration cap
	NewtonTolerance  float64 // residual-solve convergence tolerance
}

// Result is everything a caller (CLI, renderer) needs after a compile.
type Result struct {
	RunID       uuid.UUID
	Document    *ast.Document
	Table       *semantic.Table
	Stage       *eval.Stage
	Solution    []float64 // length Stage.Count; nil if no residual system
	Units       []string  // registered unit names, set only if DumpUnits
	Diagnostics []*semantic.Diagnostic
}

// Compile parses, validates, resolves and evaluates src (attributed to
// filename), ahead of which the built-in preamble is always parsed and
// merged in first. ok is false if any stage reported an Error-severity
// diagnostic; Result is still returned (partially filled) so the caller
// can report every diagnostic collected up to the point of failure.
func Compile(ctx context.Context, filename, src string, opts Options) (*Result, bool) {
	runID := uuid.New()

	preambleDoc, err := preamble.Parse()
	if err != nil {
		sink := &semantic.Sink{}
		sink.ReportGlobal(semantic.ParseError, semantic.Error, "preamble: %v", err)
		return &Result{RunID: runID, Diagnostics: sink.Diagnostics}, false
	}

	userDoc, err := parser.Parse(filename, src)
	if err != nil {
		sink := &semantic.Sink{}
		sink.ReportGlobal(semantic.ParseError, semantic.Error, "%v", err)
		return &Result{RunID: runID, Diagnostics: sink.Diagnostics}, false
	}

	doc := merge(preambleDoc, userDoc)

	table := semantic.NewTable()
	sink := &semantic.Sink{}
	result := &Result{RunID: runID, Document: doc, Table: table}

	if !validate.New(table, sink, opts.WarningsAsErrors).Process(doc) {
		result.Diagnostics = sink.Diagnostics
		return result, false
	}

	if !resolve.New(table, sink, opts.IterationLimit).Process(doc) {
		result.Diagnostics = sink.Diagnostics
		return result, false
	}

	if opts.DumpUnits {
		result.Units = table.Units.Names()
	}

	stage, ok := eval.New(table, sink).Process(doc)
	if !ok {
		result.Diagnostics = sink.Diagnostics
		return result, false
	}
	result.Stage = stage

	direct := &ops.DirectEvaluate{}
	ops.Run(direct, stage.DirectOps)

	if stage.Count > 0 {
		fn := func(x []float64) []float64 {
			d := &ops.DirectEvaluate{In: x, Out: make([]float64, stage.Count)}
			ops.Run(d, stage.SolveOps)
			return d.Out
		}
		solution, _ := newton.Solve(ctx, fn, stage.Count, opts.NewtonIterations, opts.NewtonTolerance, sink)
		result.Solution = solution
	}

	result.Diagnostics = sink.Diagnostics
	return result, !sink.HasErrors()
}

// merge combines base and extra into one Document, base's statements
// first — the same effect as the original tool parsing the preamble and
// the user's source into one shared Document, one after the other.
func merge(base, extra *ast.Document) *ast.Document {
	out := &ast.Document{Loc: base.Loc}
	out.UnitDefs = append(append([]*ast.UnitDef{}, base.UnitDefs...), extra.UnitDefs...)
	out.Defines = append(append([]*ast.Define{}, base.Defines...), extra.Defines...)
	out.Specifications = append(append([]*ast.Specification{}, base.Specifications...), extra.Specifications...)
	out.Equalities = append(append([]*ast.Equality{}, base.Equalities...), extra.Equalities...)
	return out
}

// Values returns every named, resolved quantity in the document (skipping
// preamble-only names and anonymous intermediates), keyed by name.
func Values(r *Result) map[string]float64 {
	out := map[string]float64{}
	for _, exp := range r.Table.StableNodes() {
		if exp.Name == "" || !exp.Resolved {
			continue
		}
		if exp.Node != nil && exp.Node.Location().File == ast.PreambleFile {
			continue
		}
		out[exp.Name] = exp.Value
	}
	return out
}
