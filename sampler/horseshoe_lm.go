package sampler

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/fastbayes/regress/mathx"
	"github.com/fastbayes/regress/model"
	"github.com/fastbayes/regress/rand"
)

// HyperSampler selects how the horseshoe shrinkage scales are updated
// each sweep.
type HyperSampler int

const (
	// HyperGamma uses the two-stage gamma auxiliary representation of
	// the half-Cauchy prior.
	HyperGamma HyperSampler = iota
	// HyperSlice updates the scales by slice sampling on the
	// auxiliary variables, inverting the gamma CDF for the global
	// scale. Only the direct high-dimensional route supports it.
	HyperSlice
)

func (h HyperSampler) String() string {
	if h == HyperGamma {
		return "gamma"
	}
	return "slice"
}

// hsRoute is the concrete computational path, a refinement of Regime:
// the predictor-major regime splits into an SVD-basis route and a
// direct route that skips the factorization entirely.
type hsRoute int

const (
	hsObsSVD hsRoute = iota
	hsPredSVD
	hsDirect
)

// HorseshoeLM is the Gibbs kernel for Gaussian-likelihood regression
// under the horseshoe prior beta_j ~ N(0, sigma2*tau2*lambda2_j) with
// half-Cauchy priors on both the global scale tau and the local
// scales lambda_j.
type HorseshoeLM struct {
	ds    *model.Dataset
	cfg   Config
	route hsRoute
	hyper HyperSampler
	gd    GammaDist
	n, p  int
	a2Tau float64
	a2Lam float64

	svd *SVD      // SVD routes only
	vd  *mat.Dense // V diag(d), predictor-major SVD route only

	beta   []float64
	lambda []float64
	bLam   []float64
	sigma2 float64
	tau2   float64
	bTau   float64
}

// NewHorseshoeLM builds the standard kernel: both regimes work in the
// SVD basis and the shrinkage scales follow the gamma auxiliary
// updates.
func NewHorseshoeLM(ds *model.Dataset, cfg Config) (*HorseshoeLM, error) {
	return newHorseshoeLM(ds, cfg, true, HyperGamma, nil)
}

// NewHorseshoeHDLM builds the high-dimensional variant: when p >= n
// the coefficient draw solves the n x n woodbury system on the raw
// design, with no SVD. For p < n it falls back to the
// observation-major SVD route, which is strictly cheaper there.
func NewHorseshoeHDLM(ds *model.Dataset, cfg Config) (*HorseshoeLM, error) {
	return newHorseshoeLM(ds, cfg, false, HyperGamma, nil)
}

// NewHorseshoeSliceLM is NewHorseshoeHDLM with slice-sampled
// shrinkage scales on the direct route. The gamma CDF/quantile
// capability defaults to NewGammaDist when gd is nil.
func NewHorseshoeSliceLM(ds *model.Dataset, cfg Config, gd GammaDist) (*HorseshoeLM, error) {
	if gd == nil {
		gd = NewGammaDist()
	}
	return newHorseshoeLM(ds, cfg, false, HyperSlice, gd)
}

func newHorseshoeLM(ds *model.Dataset, cfg Config, svdBoth bool, hyper HyperSampler, gd GammaDist) (*HorseshoeLM, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n, p := ds.Dims()
	k := &HorseshoeLM{
		ds:     ds,
		cfg:    cfg,
		hyper:  hyper,
		gd:     gd,
		n:      n,
		p:      p,
		a2Tau:  cfg.ATau * cfg.ATau,
		a2Lam:  cfg.ALambda * cfg.ALambda,
		beta:   make([]float64, p),
		lambda: constDiag(p, 1.0),
		bLam:   constDiag(p, 1.0),
		sigma2: 1.0,
		bTau:   1.0,
		tau2:   1.0 / float64(p),
	}
	if cfg.ASigma > 0 {
		k.sigma2 = cfg.BSigma / cfg.ASigma
	}

	switch {
	case RegimeFor(n, p) == ObservationMajor:
		k.route = hsObsSVD
		// The local scales make the rotated conditional non-diagonal,
		// so the slice route's CDF inversion buys nothing here.
		k.hyper = HyperGamma
	case svdBoth:
		k.route = hsPredSVD
	default:
		k.route = hsDirect
	}

	if k.route != hsDirect {
		svd, err := NewSVD(ds)
		if err != nil {
			return nil, err
		}
		k.svd = svd
		if k.route == hsPredSVD {
			k.vd = svd.VD()
		}
	}
	return k, nil
}

// Name identifies the kernel in error context and CLI output.
func (k *HorseshoeLM) Name() string { return "horseshoe-lm" }

// Regime reports the route fixed at construction.
func (k *HorseshoeLM) Regime() Regime {
	if k.route == hsObsSVD {
		return ObservationMajor
	}
	return PredictorMajor
}

// Hyper reports which shrinkage update is in effect.
func (k *HorseshoeLM) Hyper() HyperSampler { return k.hyper }

// Init is a no-op: all state is deterministic at construction.
func (k *HorseshoeLM) Init(gen *rand.Generator) error { return nil }

// Step advances the chain by one full Gibbs sweep.
func (k *HorseshoeLM) Step(gen *rand.Generator) error {
	switch k.route {
	case hsObsSVD:
		return k.stepObsSVD(gen)
	case hsPredSVD:
		return k.stepPredSVD(gen)
	default:
		return k.stepDirect(gen)
	}
}

// stepObsSVD factors the r x r system Vᵗ diag(1/(tau2 lambda2)) V +
// diag(d2) in the rotated basis, then maps the draw back through V.
func (k *HorseshoeLM) stepObsSVD(gen *rand.Generator) error {
	sigmaEps := math.Sqrt(k.sigma2)
	st := math.Sqrt(k.tau2)
	w := make([]float64, k.p)
	for j, l := range k.lambda {
		w[j] = 1.0 / (l * st)
	}
	prec := gram(rowScaled(k.svd.V, w), k.svd.D2)

	c := make([]float64, k.svd.Rank())
	for i, dy := range k.svd.DYS {
		c[i] = dy / sigmaEps
	}
	theta, err := drawGaussianPrec(gen, prec, c)
	if err != nil {
		return err
	}
	k.beta = matVec(k.svd.V, theta)
	for j := range k.beta {
		k.beta[j] *= sigmaEps
	}

	invLambda2 := k.updateLambdaGamma(gen)
	sumEps2 := k.residualSS()
	return k.updateTauSigma(gen, invLambda2, sumEps2)
}

// stepPredSVD draws beta as a prior sample plus a correction solved
// against the r x r system (Lambda V D)ᵗ (Lambda V D) + I/tau2, so the
// per-sweep cost is governed by n rather than p.
func (k *HorseshoeLM) stepPredSVD(gen *rand.Generator) error {
	sigmaEps := math.Sqrt(k.sigma2)
	tau := math.Sqrt(k.tau2)
	r := k.svd.Rank()

	alpha1 := gen.NormVec(k.p)
	for j := range alpha1 {
		alpha1[j] *= k.lambda[j] * sigmaEps * tau
	}

	lvd := rowScaled(k.vd, k.lambda)
	z := gram(lvd, constDiag(r, 1.0/k.tau2))

	vda := matTVec(k.vd, alpha1)
	rhs := make([]float64, r)
	for i := 0; i < r; i++ {
		alpha2 := sigmaEps * gen.NormFloat64()
		rhs[i] = k.svd.YS[i] - vda[i] - alpha2
	}
	betaS, err := spdSolve(z, rhs)
	if err != nil {
		return err
	}

	corr := matVec(k.vd, betaS)
	for j := 0; j < k.p; j++ {
		l2 := k.lambda[j] * k.lambda[j]
		k.beta[j] = alpha1[j] + l2*corr[j]
	}

	invLambda2 := k.updateLambdaGamma(gen)
	sumEps2 := k.residualSS()
	return k.updateTauSigma(gen, invLambda2, sumEps2)
}

// stepDirect solves the n x n system (X Lambda)(X Lambda)ᵗ + I/tau2 on
// the raw design, skipping the SVD altogether. The hyperparameter
// block then follows either the gamma auxiliary or the slice scheme.
func (k *HorseshoeLM) stepDirect(gen *rand.Generator) error {
	sigmaEps := math.Sqrt(k.sigma2)
	tau := math.Sqrt(k.tau2)
	invTau2 := 1.0 / k.tau2

	alpha1 := gen.NormVec(k.p)
	for j := range alpha1 {
		alpha1[j] *= k.lambda[j] * sigmaEps * tau
	}

	xl := colScaled(k.ds.X, k.lambda)
	z := gramT(xl, constDiag(k.n, invTau2))

	xa := matVec(k.ds.X, alpha1)
	rhs := make([]float64, k.n)
	for i := 0; i < k.n; i++ {
		alpha2 := sigmaEps * gen.NormFloat64()
		rhs[i] = k.ds.Y[i] - xa[i] - alpha2
	}
	betaS, err := spdSolve(z, rhs)
	if err != nil {
		return err
	}

	corr := matTVec(xl, betaS)
	for j := 0; j < k.p; j++ {
		k.beta[j] = alpha1[j] + k.lambda[j]*corr[j]
	}

	if k.hyper == HyperSlice {
		return k.updateHyperSlice(gen)
	}

	invLambda2 := k.updateLambdaGamma(gen)
	sumEps2 := k.residualSS()

	// Direct route draws the noise variance against the pre-update
	// global scale, then the global scale against the fresh noise
	// variance.
	s := 0.0
	for j, b := range k.beta {
		s += b * b * invLambda2[j]
	}
	invSigma2 := gen.Gamma(k.cfg.ASigma+float64(k.p+k.n)/2.0, k.cfg.BSigma+0.5*s*invTau2+0.5*sumEps2)
	k.sigma2 = 1.0 / invSigma2

	newInvTau2 := gen.Gamma((1.0+float64(k.p))/2.0, k.bTau+0.5*s*invSigma2)
	k.bTau = gen.Gamma(1.0, 1.0/k.a2Tau+newInvTau2)
	k.tau2 = 1.0 / newInvTau2
	return nil
}

// updateLambdaGamma redraws the local scales through the gamma
// auxiliary pair and returns the fresh 1/lambda2 for the global
// updates that follow.
func (k *HorseshoeLM) updateLambdaGamma(gen *rand.Generator) []float64 {
	invLambda2 := make([]float64, k.p)
	denom := k.tau2 * k.sigma2
	for j := 0; j < k.p; j++ {
		b2 := k.beta[j] * k.beta[j]
		invLambda2[j] = gen.Gamma(1.0, k.bLam[j]+0.5*b2/denom)
		k.lambda[j] = math.Sqrt(1.0 / invLambda2[j])
		k.bLam[j] = gen.Gamma(1.0, 1.0/k.a2Lam+invLambda2[j])
	}
	return invLambda2
}

// updateTauSigma is the SVD routes' shared tail: global scale against
// the current noise variance, then noise variance against the fresh
// global scale.
func (k *HorseshoeLM) updateTauSigma(gen *rand.Generator, invLambda2 []float64, sumEps2 float64) error {
	s := 0.0
	for j, b := range k.beta {
		s += b * b * invLambda2[j]
	}

	invTau2 := gen.Gamma((1.0+float64(k.p))/2.0, k.bTau+0.5*s/k.sigma2)
	k.bTau = gen.Gamma(1.0, 1.0/k.a2Tau+invTau2)
	k.tau2 = 1.0 / invTau2

	invSigma2 := gen.Gamma(k.cfg.ASigma+float64(k.p+k.n)/2.0, k.cfg.BSigma+0.5*s*invTau2+0.5*sumEps2)
	k.sigma2 = 1.0 / invSigma2
	return nil
}

// updateHyperSlice replaces both gamma auxiliary blocks with slice
// moves: the local scales by inverting a truncated exponential in
// closed form, the global scale by inverting the gamma CDF on the
// slice interval.
func (k *HorseshoeLM) updateHyperSlice(gen *rand.Generator) error {
	denom := k.tau2 * k.sigma2
	invLambda2 := make([]float64, k.p)
	for j := 0; j < k.p; j++ {
		b := 0.5 * k.beta[j] * k.beta[j] / denom
		old := 1.0 / (k.lambda[j] * k.lambda[j])
		u := gen.Float64() * (k.a2Lam / (1.0 + k.a2Lam*old))
		c := 1.0/u - 1.0/k.a2Lam
		il2 := -math.Log1p(-gen.Float64()*math.Exp(mathx.Log1mexpm(b*c))) / b
		if math.IsNaN(il2) || math.IsInf(il2, 0) || il2 <= 0 {
			return errors.Wrapf(ErrNumerical, "slice update degenerate for local scale %d", j)
		}
		invLambda2[j] = il2
		k.lambda[j] = math.Sqrt(1.0 / il2)
	}

	s := 0.0
	for j, b := range k.beta {
		s += b * b * invLambda2[j]
	}
	bTau := 0.5 * s / k.sigma2
	oldInvTau2 := 1.0 / k.tau2
	uTau := gen.Float64() * (k.a2Tau / (1.0 + k.a2Tau*oldInvTau2))
	cTau := 1.0/uTau - 1.0/k.a2Tau
	shape := (float64(k.p) + 1.0) / 2.0
	f := k.gd.CDF(cTau, shape, bTau)
	invTau2 := k.gd.Quantile(gen.Float64()*f, shape, bTau)
	if math.IsNaN(invTau2) || math.IsInf(invTau2, 0) || invTau2 <= 0 {
		return errors.Wrap(ErrNumerical, "slice update degenerate for global scale")
	}
	k.tau2 = 1.0 / invTau2

	sumEps2 := k.residualSS()
	invSigma2 := gen.Gamma(k.cfg.ASigma+float64(k.p+k.n)/2.0, k.cfg.BSigma+0.5*s*invTau2+0.5*sumEps2)
	k.sigma2 = 1.0 / invSigma2
	return nil
}

func (k *HorseshoeLM) residualSS() float64 {
	mu := matVec(k.ds.X, k.beta)
	sum := 0.0
	for i, m := range mu {
		eps := k.ds.Y[i] - m
		sum += eps * eps
	}
	return sum
}

// Snapshot copies the current state for the draw sequence.
func (k *HorseshoeLM) Snapshot() State {
	return State{
		Beta:      copyVec(k.beta),
		Sigma2Eps: k.sigma2,
		Tau2:      k.tau2,
		Lambda:    copyVec(k.lambda),
	}
}

// Mu returns the current linear predictor X*beta.
func (k *HorseshoeLM) Mu() []float64 {
	return matVec(k.ds.X, k.beta)
}

var _ Kernel = (*HorseshoeLM)(nil)
