package semantic

import (
	"fmt"

	"github.com/bcsgh/tbd/ast"
)

// Severity is the severity of a Diagnostic.
type Severity int

// Severity levels, ordered from most to least blocking.
const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Kind names one of the nine error categories the pipeline can raise.
type Kind int

// The nine error kinds.
const (
	ParseError Kind = iota
	DuplicateDefinition
	UnusedDefinition
	UnknownUnit
	DimensionMismatch
	ValueConflict
	Unsolvable
	NonConvergence
	ShapeError
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case DuplicateDefinition:
		return "DuplicateDefinition"
	case UnusedDefinition:
		return "UnusedDefinition"
	case UnknownUnit:
		return "UnknownUnit"
	case DimensionMismatch:
		return "DimensionMismatch"
	case ValueConflict:
		return "ValueConflict"
	case Unsolvable:
		return "Unsolvable"
	case NonConvergence:
		return "NonConvergence"
	case ShapeError:
		return "ShapeError"
	default:
		return "Unknown"
	}
}

// Diagnostic is one user-visible error or warning.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Loc      ast.Loc
	HasLoc   bool
	Message  string
}

// Error satisfies the error interface in the format
// "<file>:<line>:[<col_begin>,<col_end>]: <message>".
func (d *Diagnostic) Error() string {
	if !d.HasLoc || d.Loc.File == ast.PreambleFile {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Loc.String(), d.Message)
}

// Sink collects diagnostics emitted during a pass.
type Sink struct {
	Diagnostics []*Diagnostic
}

// Report appends a diagnostic located at loc.
func (s *Sink) Report(kind Kind, sev Severity, loc ast.Loc, format string, args ...interface{}) {
	s.Diagnostics = append(s.Diagnostics, &Diagnostic{
		Kind: kind, Severity: sev, Loc: loc, HasLoc: true,
		Message: fmt.Sprintf(format, args...),
	})
}

// ReportGlobal appends a diagnostic with no associated location.
func (s *Sink) ReportGlobal(kind Kind, sev Severity, format string, args ...interface{}) {
	s.Diagnostics = append(s.Diagnostics, &Diagnostic{
		Kind: kind, Severity: sev, Message: fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any Warning-severity diagnostic was recorded.
func (s *Sink) HasWarnings() bool {
	for _, d := range s.Diagnostics {
		if d.Severity == Warning {
			return true
		}
	}
	return false
}

// PromoteWarnings turns every Warning into an Error, in place — used when
// warnings_as_errors is set.
func (s *Sink) PromoteWarnings() {
	for _, d := range s.Diagnostics {
		if d.Severity == Warning {
			d.Severity = Error
		}
	}
}
