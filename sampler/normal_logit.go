package sampler

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/fastbayes/regress/model"
	"github.com/fastbayes/regress/rand"
)

// NormalLogit is the Polya-Gamma augmented Gibbs kernel for logistic
// regression under the normal prior. Given the latent weights omega
// the likelihood is conditionally Gaussian with unit scale, so beta
// has an exact Gaussian conditional; omega is redrawn from PG(1, mu_i)
// each sweep.
type NormalLogit struct {
	ds     *model.Dataset
	cfg    Config
	pg     PolyaGammaSampler
	regime Regime
	n, p   int
	a2Tau  float64

	ys   []float64 // recentered response y - 1/2
	xtYS []float64 // Xᵗ ys, observation-major precompute
	xxT  *mat.SymDense // X Xᵗ, predictor-major precompute

	beta  []float64
	mu    []float64
	omega []float64
	tau2  float64
	bTau  float64
}

// NewNormalLogit validates the binary response and fixes the regime.
// The Polya-Gamma capability is injected here; pass
// NewDevroyeSampler() for the default exact sampler.
func NewNormalLogit(ds *model.Dataset, cfg Config, pg PolyaGammaSampler) (*NormalLogit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ds.CheckBinary(); err != nil {
		return nil, err
	}
	if pg == nil {
		return nil, errors.Wrap(ErrHyperparameter, "no Polya-Gamma sampler supplied")
	}

	n, p := ds.Dims()
	k := &NormalLogit{
		ds:     ds,
		cfg:    cfg,
		pg:     pg,
		regime: RegimeFor(n, p),
		n:      n,
		p:      p,
		a2Tau:  cfg.ATau * cfg.ATau,
		beta:   make([]float64, p),
		mu:     make([]float64, n),
	}
	k.bTau = k.a2Tau
	k.tau2 = k.bTau

	k.ys = make([]float64, n)
	for i, y := range ds.Y {
		k.ys[i] = y - 0.5
	}

	if k.regime == ObservationMajor {
		k.xtYS = matTVec(ds.X, k.ys)
	} else {
		k.xxT = gramT(ds.X, nil)
	}
	return k, nil
}

// Name identifies the kernel in error context and CLI output.
func (k *NormalLogit) Name() string { return "normal-logit" }

// Regime reports the route fixed at construction.
func (k *NormalLogit) Regime() Regime { return k.regime }

// Init draws the initial Polya-Gamma weights at tilt zero.
func (k *NormalLogit) Init(gen *rand.Generator) error {
	omega, err := k.pg.Draw(gen, make([]float64, k.n))
	if err != nil {
		return errors.Wrap(err, "initial Polya-Gamma draw failed")
	}
	k.omega = omega
	return nil
}

// Step advances the chain by one full Gibbs sweep.
func (k *NormalLogit) Step(gen *rand.Generator) error {
	var err error
	if k.regime == ObservationMajor {
		err = k.stepObsMajor(gen)
	} else {
		err = k.stepPredMajor(gen)
	}
	if err != nil {
		return err
	}
	return k.updateTau(gen)
}

// stepObsMajor factors the p x p precision XᵗΩX + I/tau2.
func (k *NormalLogit) stepObsMajor(gen *rand.Generator) error {
	sqrtW := make([]float64, k.n)
	for i, w := range k.omega {
		sqrtW[i] = math.Sqrt(w)
	}
	wx := rowScaled(k.ds.X, sqrtW)
	prec := gram(wx, constDiag(k.p, 1.0/k.tau2))

	beta, err := drawGaussianPrec(gen, prec, k.xtYS)
	if err != nil {
		return err
	}
	k.beta = beta
	return k.updateOmega(gen)
}

// stepPredMajor applies the inversion lemma: solve the n x n system
// tau2*XXᵗ + diag(1/omega) instead of forming a p x p matrix.
func (k *NormalLogit) stepPredMajor(gen *rand.Generator) error {
	invOmega := make([]float64, k.n)
	for i, w := range k.omega {
		invOmega[i] = 1.0 / w
	}

	alpha1 := gen.NormVec(k.p)
	st := math.Sqrt(k.tau2)
	for j := range alpha1 {
		alpha1[j] *= st
	}

	xa := matVec(k.ds.X, alpha1)
	rhs := make([]float64, k.n)
	for i := 0; i < k.n; i++ {
		alpha2 := math.Sqrt(invOmega[i]) * gen.NormFloat64()
		rhs[i] = k.ys[i]*invOmega[i] - xa[i] - alpha2
	}

	m := mat.NewSymDense(k.n, nil)
	for i := 0; i < k.n; i++ {
		for j := i; j < k.n; j++ {
			v := k.tau2 * k.xxT.At(i, j)
			if i == j {
				v += invOmega[i]
			}
			m.SetSym(i, j, v)
		}
	}

	betaS, err := spdSolve(m, rhs)
	if err != nil {
		return err
	}

	corr := matTVec(k.ds.X, betaS)
	for j := 0; j < k.p; j++ {
		k.beta[j] = alpha1[j] + k.tau2*corr[j]
	}
	return k.updateOmega(gen)
}

// updateOmega recomputes the linear predictor and redraws the latent
// weights conditional on it.
func (k *NormalLogit) updateOmega(gen *rand.Generator) error {
	k.mu = matVec(k.ds.X, k.beta)
	omega, err := k.pg.Draw(gen, k.mu)
	if err != nil {
		return errors.Wrap(err, "Polya-Gamma weight update failed")
	}
	k.omega = omega
	return nil
}

// updateTau redraws the global shrinkage scale; no noise-variance term
// appears since the augmented likelihood has unit scale.
func (k *NormalLogit) updateTau(gen *rand.Generator) error {
	sumBeta2 := 0.0
	for _, b := range k.beta {
		sumBeta2 += b * b
	}
	invTau2 := gen.Gamma((1.0+float64(k.p))/2.0, k.bTau+0.5*sumBeta2)
	k.bTau = gen.Gamma(1.0, 1.0/k.a2Tau+invTau2)
	k.tau2 = 1.0 / invTau2
	return nil
}

// Snapshot copies the current state for the draw sequence.
func (k *NormalLogit) Snapshot() State {
	return State{
		Beta:      copyVec(k.beta),
		Sigma2Eps: 1.0,
		Tau2:      k.tau2,
	}
}

// Omega exposes the latent weights, which must all be positive.
func (k *NormalLogit) Omega() []float64 { return copyVec(k.omega) }

var _ Kernel = (*NormalLogit)(nil)
