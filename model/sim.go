package model

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/fastbayes/regress/mathx"
	"github.com/fastbayes/regress/rand"
)

// LinearSim is a simulated linear regression problem with known truth.
type LinearSim struct {
	Data     *Dataset
	Betacoef []float64 // true coefficients, length p
	R2       float64
	Sigma2   float64 // noise variance implied by R2
	XCor     float64
}

// LogitSim is a simulated logistic regression problem with known truth.
type LogitSim struct {
	Data     *Dataset
	Betacoef []float64
	Prob     []float64 // true success probabilities
	R2       float64
	XCor     float64
	XVar     float64
}

// nonzeroPattern builds the first q true coefficients, alternating
// +betaSize, -betaSize with a trailing +betaSize when q is odd.
func nonzeroPattern(q int, betaSize float64) []float64 {
	b := make([]float64, q)
	for i := 0; i < q; i++ {
		if i%2 == 0 {
			b[i] = betaSize
		} else {
			b[i] = -betaSize
		}
	}
	return b
}

// correlatedDesign fills an n x p matrix whose columns share a common
// factor: col_j = sqrt(1-xCor)*z_j + sqrt(xCor)*z, giving pairwise
// correlation xCor between predictors.
func correlatedDesign(gen *rand.Generator, n, p int, xCor float64) *mat.Dense {
	x := mat.NewDense(n, p, nil)
	shared := make([]float64, n)
	sc := math.Sqrt(xCor)
	si := math.Sqrt(1.0 - xCor)
	for i := 0; i < n; i++ {
		shared[i] = sc * gen.NormFloat64()
	}
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			x.Set(i, j, si*gen.NormFloat64()+shared[i])
		}
	}
	return x
}

// SimLinearReg simulates y = X beta + eps with q nonzero coefficients
// of size betaSize and noise variance chosen so the predictors explain
// an R2 share of the response variance.
func SimLinearReg(gen *rand.Generator, n, p, q int, r2, xCor, betaSize float64) (*LinearSim, error) {
	if q < 1 || q > p {
		return nil, errors.Errorf("nonzero count %d out of range [1, %d]", q, p)
	}
	if r2 <= 0 || r2 >= 1 {
		return nil, errors.Errorf("R2 must lie in (0,1), got %v", r2)
	}

	x := correlatedDesign(gen, n, p, xCor)
	betaNonzero := nonzeroPattern(q, betaSize)

	y := make([]float64, n)
	for i := 0; i < n; i++ {
		s := 0.0
		for j := 0; j < q; j++ {
			s += x.At(i, j) * betaNonzero[j]
		}
		y[i] = s
	}

	varY := stat.Variance(y, nil)
	sigma2 := varY * (1.0 - r2) / r2
	sd := math.Sqrt(sigma2)
	for i := range y {
		y[i] += sd * gen.NormFloat64()
	}

	beta := make([]float64, p)
	copy(beta, betaNonzero)

	ds, err := NewDataset(y, x)
	if err != nil {
		return nil, err
	}
	return &LinearSim{
		Data:     ds,
		Betacoef: beta,
		R2:       r2,
		Sigma2:   sigma2,
		XCor:     xCor,
	}, nil
}

// SimLogitReg simulates binary y with P(y=1) = sigmoid(X beta), with
// the same sparse coefficient pattern as SimLinearReg. XVar scales the
// design so effect sizes translate to well-separated probabilities.
func SimLogitReg(gen *rand.Generator, n, p, q int, xCor, xVar, betaSize float64) (*LogitSim, error) {
	if q < 1 || q > p {
		return nil, errors.Errorf("nonzero count %d out of range [1, %d]", q, p)
	}

	x := correlatedDesign(gen, n, p, xCor)
	sv := math.Sqrt(xVar)
	x.Scale(sv, x)
	betaNonzero := nonzeroPattern(q, betaSize)

	y := make([]float64, n)
	prob := make([]float64, n)
	for i := 0; i < n; i++ {
		mu := 0.0
		for j := 0; j < q; j++ {
			mu += x.At(i, j) * betaNonzero[j]
		}
		prob[i] = mathx.Sigmoid(mu)
		if gen.Float64() < prob[i] {
			y[i] = 1.0
		}
	}

	varY := stat.Variance(y, nil)
	r2 := 0.0
	if varY > 0 {
		r2 = stat.Variance(prob, nil) / varY
	}

	beta := make([]float64, p)
	copy(beta, betaNonzero)

	ds, err := NewDataset(y, x)
	if err != nil {
		return nil, err
	}
	return &LogitSim{
		Data:     ds,
		Betacoef: beta,
		Prob:     prob,
		R2:       r2,
		XCor:     xCor,
		XVar:     xVar,
	}, nil
}
