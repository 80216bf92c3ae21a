package sampler

import (
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/fastbayes/regress/mathx"
	"github.com/fastbayes/regress/model"
	"github.com/fastbayes/regress/rand"
)

// PostMean holds posterior mean summaries of a fitted model. Lambda
// is nil for normal-prior fits; Prob is nil for Gaussian-likelihood
// fits. Mu is always the training linear predictor at the posterior
// mean coefficients.
type PostMean struct {
	Mu        []float64
	Betacoef  []float64
	Sigma2Eps float64
	Tau2      float64
	Lambda    []float64
	Prob      []float64
}

// MCMC holds the retained draw sequences. Coefficient-like parameters
// are stored one draw per column, so Betacoef is p x S.
type MCMC struct {
	Betacoef  *mat.Dense
	Lambda    *mat.Dense
	Sigma2Eps []float64
	Tau2      []float64
}

// Result is the full output of one fit: posterior means, the raw draw
// sequences they were reduced from, the chain's split-half trace
// diagnostics, and the wall time spent.
type Result struct {
	PostMean        PostMean
	MCMC            MCMC
	Sigma2SplitDiff float64
	Tau2SplitDiff   float64
	Elapsed         time.Duration
}

// FitNormalLM fits Gaussian-likelihood regression with the normal
// prior.
func FitNormalLM(ds *model.Dataset, cfg Config, gen *rand.Generator) (*Result, error) {
	k, err := NewNormalLM(ds, cfg)
	if err != nil {
		return nil, err
	}
	return runFit(ds, cfg, gen, k, false)
}

// FitNormalLogit fits logistic regression with the normal prior using
// Polya-Gamma augmentation.
func FitNormalLogit(ds *model.Dataset, cfg Config, gen *rand.Generator) (*Result, error) {
	k, err := NewNormalLogit(ds, cfg, NewDevroyeSampler())
	if err != nil {
		return nil, err
	}
	return runFit(ds, cfg, gen, k, true)
}

// FitHorseshoeLM fits Gaussian-likelihood regression with the
// horseshoe prior, working in the SVD basis in both regimes.
func FitHorseshoeLM(ds *model.Dataset, cfg Config, gen *rand.Generator) (*Result, error) {
	k, err := NewHorseshoeLM(ds, cfg)
	if err != nil {
		return nil, err
	}
	return runFit(ds, cfg, gen, k, false)
}

// FitHorseshoeHDLM is FitHorseshoeLM with the direct high-dimensional
// coefficient draw when p >= n.
func FitHorseshoeHDLM(ds *model.Dataset, cfg Config, gen *rand.Generator) (*Result, error) {
	k, err := NewHorseshoeHDLM(ds, cfg)
	if err != nil {
		return nil, err
	}
	return runFit(ds, cfg, gen, k, false)
}

// FitHorseshoeSliceLM is FitHorseshoeHDLM with slice-sampled
// shrinkage scales on the direct route.
func FitHorseshoeSliceLM(ds *model.Dataset, cfg Config, gen *rand.Generator) (*Result, error) {
	k, err := NewHorseshoeSliceLM(ds, cfg, nil)
	if err != nil {
		return nil, err
	}
	return runFit(ds, cfg, gen, k, false)
}

// FitHorseshoeLogit fits logistic regression with the horseshoe prior
// using Polya-Gamma augmentation.
func FitHorseshoeLogit(ds *model.Dataset, cfg Config, gen *rand.Generator) (*Result, error) {
	k, err := NewHorseshoeLogit(ds, cfg, NewDevroyeSampler())
	if err != nil {
		return nil, err
	}
	return runFit(ds, cfg, gen, k, true)
}

func runFit(ds *model.Dataset, cfg Config, gen *rand.Generator, k Kernel, logit bool) (*Result, error) {
	start := time.Now()

	ch, err := NewChain(k, cfg)
	if err != nil {
		return nil, err
	}
	draws, err := ch.Run(gen)
	if err != nil {
		return nil, err
	}

	res := reduce(ds, draws, logit)
	res.Sigma2SplitDiff, res.Tau2SplitDiff = ch.SplitHalfDiffs()
	res.Elapsed = time.Since(start)
	return res, nil
}

// reduce collapses the draw sequence into posterior means and packs
// the draws column-per-sample for downstream prediction.
func reduce(ds *model.Dataset, draws []State, logit bool) *Result {
	s := len(draws)
	_, p := ds.Dims()
	hasLambda := draws[0].Lambda != nil

	res := &Result{
		MCMC: MCMC{
			Betacoef:  mat.NewDense(p, s, nil),
			Sigma2Eps: make([]float64, s),
			Tau2:      make([]float64, s),
		},
	}
	if hasLambda {
		res.MCMC.Lambda = mat.NewDense(p, s, nil)
	}

	for i, st := range draws {
		for j := 0; j < p; j++ {
			res.MCMC.Betacoef.Set(j, i, st.Beta[j])
		}
		if hasLambda {
			for j := 0; j < p; j++ {
				res.MCMC.Lambda.Set(j, i, st.Lambda[j])
			}
		}
		res.MCMC.Sigma2Eps[i] = st.Sigma2Eps
		res.MCMC.Tau2[i] = st.Tau2
	}

	pm := PostMean{
		Betacoef:  make([]float64, p),
		Sigma2Eps: stat.Mean(res.MCMC.Sigma2Eps, nil),
		Tau2:      stat.Mean(res.MCMC.Tau2, nil),
	}
	for j := 0; j < p; j++ {
		pm.Betacoef[j] = stat.Mean(res.MCMC.Betacoef.RawRowView(j), nil)
	}
	if hasLambda {
		pm.Lambda = make([]float64, p)
		for j := 0; j < p; j++ {
			pm.Lambda[j] = stat.Mean(res.MCMC.Lambda.RawRowView(j), nil)
		}
	}

	pm.Mu = matVec(ds.X, pm.Betacoef)
	if logit {
		pm.Prob = make([]float64, len(pm.Mu))
		for i, m := range pm.Mu {
			pm.Prob[i] = mathx.Sigmoid(m)
		}
	}
	res.PostMean = pm
	return res
}
