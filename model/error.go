package model

import (
	"math"

	"github.com/pkg/errors"
)

// SparseSSE splits the squared estimation error of a coefficient
// vector over the true support and its complement. Shrinkage priors
// are judged mostly by ZeroSSE: how hard they pull the noise
// coefficients toward zero without destroying the signal ones.
type SparseSSE struct {
	NonzeroSSE float64 // error over truly nonzero coefficients
	ZeroSSE    float64 // error over truly zero coefficients
	TotalSSE   float64
}

// NewSparseSSE scores an estimated coefficient vector against the
// truth, splitting by the true support.
func NewSparseSSE(trueBeta, estBeta []float64) (*SparseSSE, error) {
	if len(trueBeta) != len(estBeta) {
		return nil, errors.Wrapf(ErrDimension, "coefficient count mismatch %d != %d", len(trueBeta), len(estBeta))
	}
	if len(trueBeta) < 1 {
		return nil, errors.Wrap(ErrDimension, "no coefficients to score")
	}

	s := SparseSSE{}
	for i, b := range trueBeta {
		d := estBeta[i] - b
		d2 := d * d
		if b != 0.0 {
			s.NonzeroSSE += d2
		} else {
			s.ZeroSSE += d2
		}
		s.TotalSSE += d2
	}
	return &s, nil
}

// ClassAccuracy returns the share of predicted class labels matching
// the observed binary outcomes.
func ClassAccuracy(pred, obs []float64) (float64, error) {
	if len(pred) != len(obs) {
		return 0, errors.Wrapf(ErrDimension, "label count mismatch %d != %d", len(pred), len(obs))
	}
	if len(pred) < 1 {
		return 0, errors.Wrap(ErrDimension, "no labels to score")
	}

	hits := 0
	for i, p := range pred {
		if p == obs[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(pred)), nil
}

// PearsonR returns the Pearson correlation between two equal-length
// vectors. Used to check predicted probabilities against simulation
// truth.
func PearsonR(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.Wrapf(ErrDimension, "length mismatch %d != %d", len(a), len(b))
	}
	n := float64(len(a))
	if n < 2 {
		return 0, errors.Wrap(ErrDimension, "need at least 2 points")
	}

	ma, mb := 0.0, 0.0
	for i := range a {
		ma += a[i]
		mb += b[i]
	}
	ma /= n
	mb /= n

	var sab, saa, sbb float64
	for i := range a {
		da := a[i] - ma
		db := b[i] - mb
		sab += da * db
		saa += da * da
		sbb += db * db
	}
	if saa == 0 || sbb == 0 {
		return 0, errors.New("zero variance input")
	}
	return sab / math.Sqrt(saa*sbb), nil
}
