// Package ast defines the closed expression-node sum type that the parser
// produces and every later pass (validation, unit resolution, evaluation)
// traverses through the Visitor contract.
package ast

import "fmt"

// PreambleFile is the sentinel filename used for the compiled-in preamble
// source. Diagnostics naming a node whose location carries this filename
// suppress the location and the unused-definition warning ignores it.
const PreambleFile = "<<preamble>>"

// Loc is a source location: a file name plus a begin/end line and column.
// Locations are joinable — Join takes the minimum begin and maximum end of
// a set of locations that must share one file.
type Loc struct {
	File                           string
	LineBegin, ColBegin            int
	LineEnd, ColEnd                int
}

// Join returns the smallest location spanning all of locs. Panics if locs
// is empty or locs span more than one file — a parser/construction bug.
func Join(locs ...Loc) Loc {
	if len(locs) == 0 {
		panic("ast: Join of zero locations")
	}
	out := locs[0]
	for _, l := range locs[1:] {
		if l.File != out.File {
			panic("ast: Join across different files: " + out.File + " vs " + l.File)
		}
		if before(l.LineBegin, l.ColBegin, out.LineBegin, out.ColBegin) {
			out.LineBegin, out.ColBegin = l.LineBegin, l.ColBegin
		}
		if before(out.LineEnd, out.ColEnd, l.LineEnd, l.ColEnd) {
			out.LineEnd, out.ColEnd = l.LineEnd, l.ColEnd
		}
	}
	return out
}

func before(l1, c1, l2, c2 int) bool {
	if l1 != l2 {
		return l1 < l2
	}
	return c1 < c2
}

// String renders a single-line location as "file:line:[colBegin,colEnd]"
// and a multi-line location as a range form.
func (l Loc) String() string {
	if l.LineBegin == l.LineEnd {
		return fmt.Sprintf("%s:%d:[%d,%d]", l.File, l.LineBegin, l.ColBegin, l.ColEnd)
	}
	return fmt.Sprintf("%s:%d:[%d,?]-%d:[?,%d]", l.File, l.LineBegin, l.ColBegin, l.LineEnd, l.ColEnd)
}

// Less implements the stable (file, line_begin, col_begin, line_end,
// col_end) ordering used to iterate unresolved nodes deterministically.
func (l Loc) Less(o Loc) bool {
	if l.File != o.File {
		return l.File < o.File
	}
	if l.LineBegin != o.LineBegin {
		return l.LineBegin < o.LineBegin
	}
	if l.ColBegin != o.ColBegin {
		return l.ColBegin < o.ColBegin
	}
	if l.LineEnd != o.LineEnd {
		return l.LineEnd < o.LineEnd
	}
	return l.ColEnd < o.ColEnd
}
