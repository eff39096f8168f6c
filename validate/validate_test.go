package validate

import (
	"testing"

	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/semantic"
)

func loc(line int) ast.Loc {
	return ast.Loc{File: "t.tbd", LineBegin: line, LineEnd: line, ColBegin: 1, ColEnd: 2}
}

func TestDuplicateDefine(t *testing.T) {
	table := semantic.NewTable()
	sink := &semantic.Sink{}
	v := New(table, sink, false)

	d1 := &ast.Define{Name: "a", Value: &ast.Literal{Value: 1, Loc: loc(1)}, Loc: loc(1)}
	d2 := &ast.Define{Name: "a", Value: &ast.Literal{Value: 2, Loc: loc(2)}, Loc: loc(2)}
	doc := &ast.Document{Defines: []*ast.Define{d1, d2}, Loc: loc(1)}

	if v.Process(doc) {
		t.Fatal("expected validation to fail on duplicate define")
	}
	if !sink.HasErrors() {
		t.Fatal("expected a DuplicateDefinition error")
	}
	if sink.Diagnostics[0].Kind != semantic.DuplicateDefinition {
		t.Errorf("Kind = %v, want DuplicateDefinition", sink.Diagnostics[0].Kind)
	}
}

func TestSpecificationCollidesWithDefine(t *testing.T) {
	table := semantic.NewTable()
	sink := &semantic.Sink{}
	v := New(table, sink, false)

	d := &ast.Define{Name: "a", Value: &ast.Literal{Value: 1, Loc: loc(1)}, Loc: loc(1)}
	s := &ast.Specification{Name: "a", Loc: loc(2)}
	doc := &ast.Document{Defines: []*ast.Define{d}, Specifications: []*ast.Specification{s}, Loc: loc(1)}

	if v.Process(doc) {
		t.Fatal("expected validation to fail: spec collides with define")
	}
}

func TestUnusedDefinitionWarns(t *testing.T) {
	table := semantic.NewTable()
	sink := &semantic.Sink{}
	v := New(table, sink, false)

	d := &ast.Define{Name: "a", Value: &ast.Literal{Value: 1, Loc: loc(1)}, Loc: loc(1)}
	doc := &ast.Document{Defines: []*ast.Define{d}, Loc: loc(1)}

	if !v.Process(doc) {
		t.Fatal("unused definition alone should not fail validation")
	}
	if !sink.HasWarnings() {
		t.Fatal("expected an UnusedDefinition warning")
	}
}

func TestUnusedDefinitionAsError(t *testing.T) {
	table := semantic.NewTable()
	sink := &semantic.Sink{}
	v := New(table, sink, true)

	d := &ast.Define{Name: "a", Value: &ast.Literal{Value: 1, Loc: loc(1)}, Loc: loc(1)}
	doc := &ast.Document{Defines: []*ast.Define{d}, Loc: loc(1)}

	if v.Process(doc) {
		t.Fatal("unused definition should fail validation under warnings_as_errors")
	}
}

func TestReferencedDefineNoWarning(t *testing.T) {
	table := semantic.NewTable()
	sink := &semantic.Sink{}
	v := New(table, sink, false)

	d := &ast.Define{Name: "a", Value: &ast.Literal{Value: 1, Loc: loc(1)}, Loc: loc(1)}
	named := &ast.Named{Name: "a", Loc: loc(2)}
	eq := &ast.Equality{Left: named, Right: &ast.Literal{Value: 1, Loc: loc(2)}, Loc: loc(2)}
	doc := &ast.Document{Defines: []*ast.Define{d}, Equalities: []*ast.Equality{eq}, Loc: loc(1)}

	if !v.Process(doc) {
		t.Fatal("expected validation to succeed")
	}
	if sink.HasWarnings() {
		t.Fatal("referenced define should not warn")
	}
}
