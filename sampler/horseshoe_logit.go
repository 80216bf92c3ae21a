package sampler

import (
	"math"

	"github.com/pkg/errors"

	"github.com/fastbayes/regress/model"
	"github.com/fastbayes/regress/rand"
)

// HorseshoeLogit is the Polya-Gamma augmented Gibbs kernel for
// logistic regression under the horseshoe prior. The augmented
// likelihood has unit conditional scale, so the shrinkage updates drop
// the noise-variance factor that their Gaussian counterparts carry.
type HorseshoeLogit struct {
	ds     *model.Dataset
	cfg    Config
	pg     PolyaGammaSampler
	regime Regime
	n, p   int
	a2Tau  float64
	a2Lam  float64

	ys   []float64 // recentered response y - 1/2
	xtYS []float64 // Xᵗ ys, observation-major precompute

	beta   []float64
	lambda []float64
	bLam   []float64
	mu     []float64
	omega  []float64
	tau2   float64
	bTau   float64
}

// NewHorseshoeLogit validates the binary response and fixes the
// regime. The Polya-Gamma capability is injected; pass
// NewDevroyeSampler() for the default exact sampler.
func NewHorseshoeLogit(ds *model.Dataset, cfg Config, pg PolyaGammaSampler) (*HorseshoeLogit, error) {
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
	k := &HorseshoeLogit{
		ds:     ds,
		cfg:    cfg,
		pg:     pg,
		regime: RegimeFor(n, p),
		n:      n,
		p:      p,
		a2Tau:  cfg.ATau * cfg.ATau,
		a2Lam:  cfg.ALambda * cfg.ALambda,
		beta:   make([]float64, p),
		lambda: constDiag(p, 1.0),
		bLam:   constDiag(p, 1.0),
		mu:     make([]float64, n),
	}
	k.bTau = k.a2Tau
	k.tau2 = k.bTau
	if k.regime == PredictorMajor {
		k.tau2 = 1.0 / float64(p)
	}

	k.ys = make([]float64, n)
	for i, y := range ds.Y {
		k.ys[i] = y - 0.5
	}
	if k.regime == ObservationMajor {
		k.xtYS = matTVec(ds.X, k.ys)
	}
	return k, nil
}

// Name identifies the kernel in error context and CLI output.
func (k *HorseshoeLogit) Name() string { return "horseshoe-logit" }

// Regime reports the route fixed at construction.
func (k *HorseshoeLogit) Regime() Regime { return k.regime }

// Init draws the initial Polya-Gamma weights at tilt zero.
func (k *HorseshoeLogit) Init(gen *rand.Generator) error {
	omega, err := k.pg.Draw(gen, make([]float64, k.n))
	if err != nil {
		return errors.Wrap(err, "initial Polya-Gamma draw failed")
	}
	k.omega = omega
	return nil
}

// Step advances the chain by one full Gibbs sweep.
func (k *HorseshoeLogit) Step(gen *rand.Generator) error {
	if k.regime == ObservationMajor {
		return k.stepObsMajor(gen)
	}
	return k.stepPredMajor(gen)
}

// stepObsMajor factors XᵗΩX + diag(1/(tau2 lambda2)). The global
// scale is then refreshed against the local scales that shaped this
// draw, and the local scales last.
func (k *HorseshoeLogit) stepObsMajor(gen *rand.Generator) error {
	invTau2 := 1.0 / k.tau2
	invLambda2 := make([]float64, k.p)
	for j, l := range k.lambda {
		invLambda2[j] = 1.0 / (l * l)
	}

	sqrtW := make([]float64, k.n)
	for i, w := range k.omega {
		sqrtW[i] = math.Sqrt(w)
	}
	prior := make([]float64, k.p)
	for j := range prior {
		prior[j] = invTau2 * invLambda2[j]
	}
	prec := gram(rowScaled(k.ds.X, sqrtW), prior)

	beta, err := drawGaussianPrec(gen, prec, k.xtYS)
	if err != nil {
		return err
	}
	k.beta = beta

	if err := k.updateOmega(gen); err != nil {
		return err
	}
	k.updateTau(gen, invLambda2)
	k.updateLambda(gen)
	return nil
}

// stepPredMajor solves the n x n system (X Lambda)(X Lambda)ᵗ +
// diag(1/(omega tau2)) so the sweep cost is governed by n.
func (k *HorseshoeLogit) stepPredMajor(gen *rand.Generator) error {
	tau := math.Sqrt(k.tau2)

	alpha1 := gen.NormVec(k.p)
	for j := range alpha1 {
		alpha1[j] *= tau * k.lambda[j]
	}

	invOmega := make([]float64, k.n)
	for i, w := range k.omega {
		invOmega[i] = 1.0 / w
	}

	xl := colScaled(k.ds.X, k.lambda)
	z := gramT(xl, nil)
	for i := 0; i < k.n; i++ {
		z.SetSym(i, i, z.At(i, i)+invOmega[i]/k.tau2)
	}

	xa := matVec(k.ds.X, alpha1)
	rhs := make([]float64, k.n)
	for i := 0; i < k.n; i++ {
		alpha2 := math.Sqrt(invOmega[i]) * gen.NormFloat64()
		rhs[i] = k.ys[i]*invOmega[i] - xa[i] - alpha2
	}
	betaS, err := spdSolve(z, rhs)
	if err != nil {
		return err
	}

	corr := matTVec(xl, betaS)
	for j := 0; j < k.p; j++ {
		k.beta[j] = alpha1[j] + k.lambda[j]*corr[j]
	}

	if err := k.updateOmega(gen); err != nil {
		return err
	}
	invLambda2 := make([]float64, k.p)
	for j, l := range k.lambda {
		invLambda2[j] = 1.0 / (l * l)
	}
	k.updateTau(gen, invLambda2)
	k.updateLambda(gen)
	return nil
}

func (k *HorseshoeLogit) updateOmega(gen *rand.Generator) error {
	k.mu = matVec(k.ds.X, k.beta)
	omega, err := k.pg.Draw(gen, k.mu)
	if err != nil {
		return errors.Wrap(err, "Polya-Gamma weight update failed")
	}
	k.omega = omega
	return nil
}

// updateTau conditions on the local scales as they stood for the
// coefficient draw.
func (k *HorseshoeLogit) updateTau(gen *rand.Generator, invLambda2 []float64) {
	s := 0.0
	for j, b := range k.beta {
		s += b * b * invLambda2[j]
	}
	invTau2 := gen.Gamma((1.0+float64(k.p))/2.0, k.bTau+0.5*s)
	k.bTau = gen.Gamma(1.0, 1.0/k.a2Tau+invTau2)
	k.tau2 = 1.0 / invTau2
}

func (k *HorseshoeLogit) updateLambda(gen *rand.Generator) {
	for j := 0; j < k.p; j++ {
		b2 := k.beta[j] * k.beta[j]
		il2 := gen.Gamma(1.0, k.bLam[j]+0.5*b2/k.tau2)
		k.bLam[j] = gen.Gamma(1.0, 1.0/k.a2Lam+il2)
		k.lambda[j] = math.Sqrt(1.0 / il2)
	}
}

// Snapshot copies the current state for the draw sequence.
func (k *HorseshoeLogit) Snapshot() State {
	return State{
		Beta:      copyVec(k.beta),
		Sigma2Eps: 1.0,
		Tau2:      k.tau2,
		Lambda:    copyVec(k.lambda),
	}
}

// Omega exposes the latent weights, which must all be positive.
func (k *HorseshoeLogit) Omega() []float64 { return copyVec(k.omega) }

var _ Kernel = (*HorseshoeLogit)(nil)
