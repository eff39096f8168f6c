// Package dimension implements the SI dimension-vector algebra: a seven
// component rational exponent vector (L, M, T, I, K, N, J) plus the scaled
// Unit type built on top of it.
package dimension

import "math/big"

// Rat is a reduced rational number. Unlike math/big.Rat it tolerates a
// zero denominator, treating it as the identity of reduction rather than
// panicking — this mirrors the source algebra's own D type, which is used
// to represent "not yet divided" intermediate exponents during root/pow.
type Rat struct {
	n, d int64
}

// Zero returns the rational 0.
func Zero() Rat { return Rat{0, 1} }

// One returns the rational 1.
func One() Rat { return Rat{1, 1} }

// RatFromInt builds a whole-number rational.
func RatFromInt(n int64) Rat { return reduce(n, 1) }

// NewRat builds n/d, reducing by the GCD. A zero denominator is preserved
// as-is rather than reduced (it signals the caller divided by zero).
func NewRat(n, d int64) Rat {
	if d == 0 {
		return Rat{n, 0}
	}
	return reduce(n, d)
}

func reduce(n, d int64) Rat {
	if n == 0 {
		return Rat{0, 1}
	}
	g := gcd(n, d)
	return Rat{n / g, d / g}
}

func gcd(a, b int64) int64 {
	sign := int64(1)
	if b < 0 {
		sign = -1
	}
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for a != 0 {
		a, b = b%a, a
	}
	if b == 0 {
		return sign
	}
	return b * sign
}

// Add returns l + r.
func (l Rat) Add(r Rat) Rat {
	if l.d == 0 || r.d == 0 {
		return reduce(l.n*orOne(r.d)+r.n*orOne(l.d), orOne(l.d)*orOne(r.d))
	}
	return reduce(l.n*r.d+r.n*l.d, l.d*r.d)
}

// Sub returns l - r.
func (l Rat) Sub(r Rat) Rat { return l.Add(r.Neg()) }

// Neg returns -l.
func (l Rat) Neg() Rat { return Rat{-l.n, orOne(l.d)} }

// MulInt returns l * r for an integer r.
func (l Rat) MulInt(r int64) Rat { return reduce(l.n*r, orOne(l.d)) }

// DivInt returns l / r for an integer r. Division by zero yields l
// unchanged, matching the source's "denominator zero is the identity of
// reduction" convention.
func (l Rat) DivInt(r int64) Rat {
	if r == 0 {
		return l
	}
	return reduce(l.n, orOne(l.d)*r)
}

func orOne(d int64) int64 {
	if d == 0 {
		return 1
	}
	return d
}

// Equal reports structural equality after reduction.
func (l Rat) Equal(r Rat) bool { return l.n == r.n && orOne(l.d) == orOne(r.d) }

// IsZero reports whether the rational reduces to zero.
func (l Rat) IsZero() bool { return l.n == 0 }

// Numerator and Denominator expose the reduced fraction's parts, for
// callers (e.g. the CLI's locale-aware pretty-printer) that need to
// format the two halves separately rather than through String.
func (l Rat) Numerator() int64   { return l.n }
func (l Rat) Denominator() int64 { return orOne(l.d) }

// Float64 returns the rational as a float64.
func (l Rat) Float64() float64 {
	f := new(big.Rat).SetFrac64(l.n, orOne(l.d))
	v, _ := f.Float64()
	return v
}

// String renders "n" when the denominator is <= 1, else "(n/d)".
func (l Rat) String() string {
	d := orOne(l.d)
	if d <= 1 {
		return itoa(l.n)
	}
	return "(" + itoa(l.n) + "/" + itoa(d) + ")"
}

func itoa(v int64) string {
	return big.NewInt(v).String()
}
