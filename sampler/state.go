package sampler

import (
	"github.com/pkg/errors"
)

// Config carries the MCMC schedule and prior hyperparameters shared by
// every fitting entry point.
type Config struct {
	MCMCSample int // retained draws
	Burnin     int // discarded warm-up iterations
	Thinning   int // inner iterations per retained draw

	ASigma  float64 // inverse-gamma shape for the noise variance
	BSigma  float64 // inverse-gamma rate for the noise variance
	ATau    float64 // half-Cauchy scale for the global shrinkage
	ALambda float64 // half-Cauchy scale for the local shrinkage
}

// DefaultConfig mirrors the conventional defaults: 500 kept draws
// after 500 burn-in sweeps, no thinning, weak priors.
func DefaultConfig() Config {
	return Config{
		MCMCSample: 500,
		Burnin:     500,
		Thinning:   1,
		ASigma:     0.01,
		BSigma:     0.01,
		ATau:       1.0,
		ALambda:    1.0,
	}
}

// Validate fails fast on malformed schedules or hyperparameters.
// ASigma/BSigma may be zero (improper flat prior on the noise
// variance); the half-Cauchy scales must be strictly positive.
func (c Config) Validate() error {
	if c.MCMCSample < 1 {
		return errors.Wrapf(ErrHyperparameter, "mcmc sample count %d < 1", c.MCMCSample)
	}
	if c.Burnin < 0 {
		return errors.Wrapf(ErrHyperparameter, "burnin %d < 0", c.Burnin)
	}
	if c.Thinning < 1 {
		return errors.Wrapf(ErrHyperparameter, "thinning %d < 1", c.Thinning)
	}
	if c.ASigma < 0 || c.BSigma < 0 {
		return errors.Wrapf(ErrHyperparameter, "negative inverse-gamma parameters a=%v b=%v", c.ASigma, c.BSigma)
	}
	if c.ATau <= 0 {
		return errors.Wrapf(ErrHyperparameter, "half-Cauchy scale A_tau=%v must be positive", c.ATau)
	}
	if c.ALambda <= 0 {
		return errors.Wrapf(ErrHyperparameter, "half-Cauchy scale A_lambda=%v must be positive", c.ALambda)
	}
	return nil
}

// State is one snapshot of a kernel's evolving state. Snapshots are
// value copies: collecting a draw never aliases the kernel's working
// buffers. Lambda is nil for normal-prior kernels; Sigma2Eps is
// identically 1 for logistic kernels, where the Polya-Gamma
// augmentation fixes the conditional scale.
type State struct {
	Beta      []float64
	Sigma2Eps float64
	Tau2      float64
	Lambda    []float64
}

func copyVec(x []float64) []float64 {
	if x == nil {
		return nil
	}
	y := make([]float64, len(x))
	copy(y, x)
	return y
}
