// Package preamble supplies the built-in derived-unit definitions parsed
// ahead of every user document, the way the original tool always parsed
// its compiled-in preamble fragment into the same Document before the
// user's own source.
package preamble

import (
	_ "embed"

	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/parser"
)

//go:embed preamble.tbd
var source string

// Source returns the embedded preamble text.
func Source() string { return source }

// Parse parses the preamble under its sentinel filename, exactly as a
// user document would be parsed, but tagged so later passes (validation's
// unused-definition check, graphviz's node labeling) can recognize and
// skip its statements.
func Parse() (*ast.Document, error) {
	return parser.Parse(ast.PreambleFile, source)
}
