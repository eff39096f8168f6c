// Package pretty formats a resolved quantity's dimension for the CLI's
// --pretty mode: the same fixed-order exponent list dimension.Dimension's
// own String renders, but with each rational exponent's numerator and
// denominator grouped the way a reader's locale would expect, the way the
// teacher's format package separated exact model values from the
// locale-aware view layer shown to a user.
package pretty

import (
	"strings"

	"github.com/bcsgh/tbd/dimension"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var names = [7]string{"m", "kg", "s", "A", "K", "mol", "cd"}

// Dimension renders d the way dimension.Dimension.String does, except
// every exponent's numerator and denominator are grouped via p (e.g.
// thousands separators) instead of plain decimal digits. Exponents on a
// physical dimension are rarely more than single digits, but a unit
// built from a long chain of products/quotients can still carry one
// large enough that grouping is visible.
func Dimension(p *message.Printer, d dimension.Dimension) string {
	exps := d.Exps()
	var parts []string
	for idx, e := range exps {
		if e.IsZero() {
			continue
		}
		part := names[idx]
		if !e.Equal(dimension.One()) {
			part += "^" + ratio(p, e)
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return "[]"
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func ratio(p *message.Printer, r dimension.Rat) string {
	if r.Denominator() <= 1 {
		return p.Sprint(number.Decimal(r.Numerator()))
	}
	return "(" + p.Sprint(number.Decimal(r.Numerator())) + "/" + p.Sprint(number.Decimal(r.Denominator())) + ")"
}

// Printer returns the message.Printer for the user's locale, defaulting
// to a neutral tag (plain grouped decimal, no language-specific digit
// forms) when none is given.
func Printer(locale string) *message.Printer {
	tag := language.Und
	if locale != "" {
		if t, err := language.Parse(locale); err == nil {
			tag = t
		}
	}
	return message.NewPrinter(tag)
}
