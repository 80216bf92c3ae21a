// Package mathx provides numerically stable log-domain transforms used
// by the samplers. Both functions keep full double precision across
// argument ranges where the naive formulas overflow or cancel.
package mathx

import "math"

// Log1mexpm returns log(1 - exp(-x)) for x >= 0. The expression is
// split at ln 2: below it 1-exp(-x) is small and expm1 keeps the
// leading digits, above it exp(-x) is small and log1p is exact.
func Log1mexpm(x float64) float64 {
	if x <= math.Ln2 {
		return math.Log(-math.Expm1(-x))
	}
	return math.Log1p(-math.Exp(-x))
}

// Log1pexp returns log(1 + exp(x)) for any real x without overflow.
// Regime cutoffs follow Machler's log1pexp recommendations: below -37
// the answer is exp(x) to machine precision, above 33.3 it is x.
func Log1pexp(x float64) float64 {
	switch {
	case x <= -37:
		return math.Exp(x)
	case x <= 18:
		return math.Log1p(math.Exp(x))
	case x <= 33.3:
		return x + math.Exp(-x)
	default:
		return x
	}
}

// Log1mexpmVec applies Log1mexpm element-wise.
func Log1mexpmVec(x []float64) []float64 {
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = Log1mexpm(v)
	}
	return y
}

// Log1pexpVec applies Log1pexp element-wise.
func Log1pexpVec(x []float64) []float64 {
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = Log1pexp(v)
	}
	return y
}

// Sigmoid returns 1/(1+exp(-x)) computed through Log1pexp so that
// extreme arguments neither overflow nor round to garbage.
func Sigmoid(x float64) float64 {
	return math.Exp(-Log1pexp(-x))
}
