// Package display formats resolved quantity values for human output at
// the CLI boundary. The solver core stays in float64 throughout — this
// is the one place a NaN-free, cleanly-trimmed decimal rendering matters.
package display

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Value renders v as a trimmed decimal: no exponent notation, no
// trailing zeros, no dangling decimal point. NaN and +/-Inf render as
// their literal names since a solved quantity should never reach the
// display boundary carrying one — seeing the name in output is the
// signal something upstream left a record unresolved.
func Value(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 0) {
		if v < 0 {
			return "-Inf"
		}
		return "Inf"
	}
	return trim(decimal.NewFromFloat(v).String())
}

func trim(s string) string {
	if !contains(s, '.') {
		return s
	}
	i := len(s)
	for i > 0 && s[i-1] == '0' {
		i--
	}
	if i > 0 && s[i-1] == '.' {
		i--
	}
	return s[:i]
}

func contains(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

// Quantity renders a value alongside its unit name, e.g. "9.8 m/s^2". A
// dimensionless or nameless unit ("") renders the bare value.
func Quantity(v float64, unitName string) string {
	if unitName == "" {
		return Value(v)
	}
	return fmt.Sprintf("%s %s", Value(v), unitName)
}
