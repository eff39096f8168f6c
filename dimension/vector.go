package dimension

// Dimension is the ordered 7-tuple (L, M, T, I, K, N, J) of rational
// exponents over the SI base dimensions: length, mass, time, current,
// temperature, amount, and luminous intensity.
type Dimension struct {
	l, m, t, i, k, n, j Rat
}

// Dimensionless is the all-zero dimension.
func Dimensionless() Dimension { return Dimension{} }

// L returns the one-hot "length" dimension.
func L() Dimension { return Dimension{l: One()} }

// M returns the one-hot "mass" dimension.
func M() Dimension { return Dimension{m: One()} }

// T returns the one-hot "time" dimension.
func T() Dimension { return Dimension{t: One()} }

// I returns the one-hot "current" dimension.
func I() Dimension { return Dimension{i: One()} }

// K returns the one-hot "temperature" dimension.
func K() Dimension { return Dimension{k: One()} }

// N returns the one-hot "amount" dimension.
func N() Dimension { return Dimension{n: One()} }

// J returns the one-hot "luminous intensity" dimension.
func J() Dimension { return Dimension{j: One()} }

// Exps returns the component accessors in fixed print order.
func (d Dimension) Exps() [7]Rat {
	return [7]Rat{d.l, d.m, d.t, d.i, d.k, d.n, d.j}
}

// Equal reports component-wise structural equality.
func (d Dimension) Equal(o Dimension) bool {
	return d.l.Equal(o.l) && d.m.Equal(o.m) && d.t.Equal(o.t) &&
		d.i.Equal(o.i) && d.k.Equal(o.k) && d.n.Equal(o.n) && d.j.Equal(o.j)
}

// IsDimensionless reports whether all components reduce to zero.
func (d Dimension) IsDimensionless() bool {
	return d.l.IsZero() && d.m.IsZero() && d.t.IsZero() &&
		d.i.IsZero() && d.k.IsZero() && d.n.IsZero() && d.j.IsZero()
}

// Mul returns the dimension product l*r (component-wise sum of exponents).
func Mul(l, r Dimension) Dimension {
	return Dimension{
		l: l.l.Add(r.l), m: l.m.Add(r.m), t: l.t.Add(r.t), i: l.i.Add(r.i),
		k: l.k.Add(r.k), n: l.n.Add(r.n), j: l.j.Add(r.j),
	}
}

// Div returns the dimension quotient l/r (component-wise difference).
func Div(l, r Dimension) Dimension {
	return Dimension{
		l: l.l.Sub(r.l), m: l.m.Sub(r.m), t: l.t.Sub(r.t), i: l.i.Sub(r.i),
		k: l.k.Sub(r.k), n: l.n.Sub(r.n), j: l.j.Sub(r.j),
	}
}

// Pow raises d to the integer power n (multiplies every exponent by n).
func Pow(d Dimension, n int) Dimension {
	nn := int64(n)
	return Dimension{
		l: d.l.MulInt(nn), m: d.m.MulInt(nn), t: d.t.MulInt(nn), i: d.i.MulInt(nn),
		k: d.k.MulInt(nn), n: d.n.MulInt(nn), j: d.j.MulInt(nn),
	}
}

// Root takes the integer n-th root of d (divides every exponent by n; no
// rounding occurs, since exponents are rationals).
func Root(d Dimension, n int) Dimension {
	nn := int64(n)
	return Dimension{
		l: d.l.DivInt(nn), m: d.m.DivInt(nn), t: d.t.DivInt(nn), i: d.i.DivInt(nn),
		k: d.k.DivInt(nn), n: d.n.DivInt(nn), j: d.j.DivInt(nn),
	}
}

// String renders the dimension in the fixed order m,kg,s,A,K,mol,cd,
// omitting zero components, e.g. "[m,s^-1]". An all-zero dimension prints
// as "[]".
func (d Dimension) String() string {
	names := [7]string{"m", "kg", "s", "A", "K", "mol", "cd"}
	exps := d.Exps()
	s := "["
	first := true
	for idx, e := range exps {
		if e.IsZero() {
			continue
		}
		if !first {
			s += ","
		}
		first = false
		s += names[idx]
		if !e.Equal(One()) {
			s += "^" + e.String()
		}
	}
	return s + "]"
}
