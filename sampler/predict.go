package sampler

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/fastbayes/regress/mathx"
)

// Prediction holds per-row posterior predictive summaries for a test
// design: mean, median, standard deviation, and the credible limits
// at the level requested.
type Prediction struct {
	Mean   []float64
	Median []float64
	SD     []float64
	Upper  []float64
	Lower  []float64
}

// LogitPrediction adds hard class labels from thresholding the mean
// predictive probability.
type LogitPrediction struct {
	Prediction
	Class []float64
}

// PredictLM computes posterior predictive summaries of the linear
// predictor for each test row, using every retained draw. alpha is
// the credible level, e.g. 0.95.
func PredictLM(res *Result, xTest *mat.Dense, alpha float64) (*Prediction, error) {
	draws, err := predictiveDraws(res, xTest, alpha)
	if err != nil {
		return nil, err
	}
	return summarize(draws, alpha), nil
}

// PredictLogit maps each draw through the logistic function before
// summarizing, and thresholds the mean probability at cutoff for the
// class labels.
func PredictLogit(res *Result, xTest *mat.Dense, alpha, cutoff float64) (*LogitPrediction, error) {
	draws, err := predictiveDraws(res, xTest, alpha)
	if err != nil {
		return nil, err
	}
	r, s := draws.Dims()
	for i := 0; i < r; i++ {
		row := draws.RawRowView(i)
		for k := 0; k < s; k++ {
			row[k] = mathx.Sigmoid(row[k])
		}
	}

	out := &LogitPrediction{Prediction: *summarize(draws, alpha)}
	out.Class = make([]float64, len(out.Mean))
	for i, m := range out.Mean {
		if m > cutoff {
			out.Class[i] = 1
		}
	}
	return out, nil
}

// predictiveDraws returns the ntest x S matrix X_test * Betacoef.
func predictiveDraws(res *Result, xTest *mat.Dense, alpha float64) (*mat.Dense, error) {
	if xTest == nil {
		return nil, errors.Wrap(ErrHyperparameter, "test design matrix is nil")
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, errors.Wrapf(ErrHyperparameter, "credible level %v outside (0,1)", alpha)
	}
	p, s := res.MCMC.Betacoef.Dims()
	_, pt := xTest.Dims()
	if pt != p {
		return nil, errors.Wrapf(ErrHyperparameter, "test design has %d predictors, fit has %d", pt, p)
	}

	r, _ := xTest.Dims()
	out := mat.NewDense(r, s, nil)
	out.Mul(xTest, res.MCMC.Betacoef)
	return out, nil
}

func summarize(draws *mat.Dense, alpha float64) *Prediction {
	r, s := draws.Dims()
	tail := (1.0 - alpha) / 2.0

	pred := &Prediction{
		Mean:   make([]float64, r),
		Median: make([]float64, r),
		SD:     make([]float64, r),
		Upper:  make([]float64, r),
		Lower:  make([]float64, r),
	}
	buf := make([]float64, s)
	for i := 0; i < r; i++ {
		row := draws.RawRowView(i)
		pred.Mean[i] = stat.Mean(row, nil)
		pred.SD[i] = stat.StdDev(row, nil)

		copy(buf, row)
		sort.Float64s(buf)
		pred.Median[i] = stat.Quantile(0.5, stat.Empirical, buf, nil)
		pred.Upper[i] = stat.Quantile(1.0-tail, stat.Empirical, buf, nil)
		pred.Lower[i] = stat.Quantile(tail, stat.Empirical, buf, nil)
	}
	return pred
}
