package sampler

import (
	"gonum.org/v1/gonum/mathext"
)

// GammaDist is the gamma CDF/quantile capability the horseshoe slice
// sampler needs for its truncated inverse-CDF step. It is resolved at
// kernel construction, never looked up per call.
type GammaDist interface {
	CDF(x, shape, rate float64) float64
	Quantile(p, shape, rate float64) float64
}

// NewGammaDist returns the default implementation backed by gonum's
// regularized incomplete gamma function and its inverse.
func NewGammaDist() GammaDist {
	return gonumGamma{}
}

type gonumGamma struct{}

func (gonumGamma) CDF(x, shape, rate float64) float64 {
	if x <= 0 {
		return 0
	}
	return mathext.GammaIncReg(shape, rate*x)
}

func (gonumGamma) Quantile(p, shape, rate float64) float64 {
	if p <= 0 {
		return 0
	}
	return mathext.GammaIncRegInv(shape, p) / rate
}
