// Package newton solves the small, dense, nonlinear residual systems the
// rest of this module can't resolve by direct substitution: a handful of
// equations left over once every directly determinable value has been
// computed, with one free variable per remaining degree of freedom.
package newton

import (
	"context"

	"github.com/bcsgh/tbd/semantic"
)

// SystemFunction maps a guess vector to the residual each equation in the
// selected set evaluates to at that guess — zero everywhere means the
// guess is an exact solution.
type SystemFunction func(x []float64) []float64

// step is the finite-difference displacement used to build the Jacobian.
const step = 1e-6

// Solve runs multidimensional Newton-Raphson starting from the zero
// vector, stopping once every residual component is within tolerance or
// iterationLimit is exhausted. ok is false if dim < 1 (reported as a
// ShapeError), or if ctx is cancelled, the Jacobian is singular, or the
// loop exhausts its iteration cap without converging (each reported as a
// NonConvergence warning) — in those latter cases the last iterate is
// still returned, since it's the best guess found.
func Solve(ctx context.Context, fn SystemFunction, dim, iterationLimit int, tolerance float64, sink *semantic.Sink) (x []float64, ok bool) {
	if dim < 1 {
		sink.ReportGlobal(semantic.ShapeError, semantic.Error,
			"Newton-Raphson: residual system has dimension %d, want >= 1", dim)
		return nil, false
	}

	x = make([]float64, dim)
	y := fn(x)

	for iter := 0; iter < iterationLimit; iter++ {
		if maxAbs(y) < tolerance {
			return x, true
		}
		select {
		case <-ctx.Done():
			sink.ReportGlobal(semantic.NonConvergence, semantic.Warning,
				"Newton-Raphson: cancelled after %d iterations, residual %g", iter, maxAbs(y))
			return x, false
		default:
		}

		jac := jacobian(fn, x, y)
		delta, singular := gaussJordanSolve(jac, y)
		if singular {
			sink.ReportGlobal(semantic.NonConvergence, semantic.Warning,
				"Newton-Raphson: singular Jacobian at iteration %d", iter)
			return x, false
		}
		for i := range x {
			x[i] -= delta[i]
		}
		y = fn(x)
	}

	sink.ReportGlobal(semantic.NonConvergence, semantic.Warning,
		"Newton-Raphson: did not converge within %d iterations, residual %g", iterationLimit, maxAbs(y))
	return x, false
}

// jacobian builds the finite-difference Jacobian of fn at x, where y is
// fn(x) (passed in so the base evaluation isn't repeated).
func jacobian(fn SystemFunction, x, y []float64) [][]float64 {
	n := len(x)
	jac := make([][]float64, n)
	for i := range jac {
		jac[i] = make([]float64, n)
	}

	probe := make([]float64, n)
	for col := 0; col < n; col++ {
		copy(probe, x)
		probe[col] += step
		yCol := fn(probe)
		for row := 0; row < n; row++ {
			jac[row][col] = (yCol[row] - y[row]) / step
		}
	}
	return jac
}

func maxAbs(v []float64) float64 {
	var m float64
	for _, x := range v {
		if a := abs(x); a > m {
			m = a
		}
	}
	return m
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// gaussJordanSolve solves a·delta = b via Gauss-Jordan elimination with
// partial pivoting, returning singular=true if a is not invertible to
// working precision.
func gaussJordanSolve(a [][]float64, b []float64) (delta []float64, singular bool) {
	n := len(b)

	aug := make([][]float64, n)
	for i := range aug {
		aug[i] = make([]float64, n+1)
		copy(aug[i], a[i])
		aug[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if abs(aug[r][col]) > abs(aug[pivot][col]) {
				pivot = r
			}
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		if abs(aug[col][col]) < 1e-12 {
			return nil, true
		}

		pv := aug[col][col]
		for k := col; k <= n; k++ {
			aug[col][k] /= pv
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			for k := col; k <= n; k++ {
				aug[r][k] -= factor * aug[col][k]
			}
		}
	}

	delta = make([]float64, n)
	for i := range delta {
		delta[i] = aug[i][n]
	}
	return delta, false
}
