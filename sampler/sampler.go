// Package sampler implements the Gibbs update kernels for Bayesian
// linear and logistic regression under normal and horseshoe priors,
// and the chain driver that runs them. Every kernel draws from exact
// conjugate full conditionals; the observation-major and
// predictor-major routes are algebraically equivalent re-derivations
// that differ only in which matrix gets factored.
package sampler

import (
	"github.com/pkg/errors"

	"github.com/fastbayes/regress/rand"
)

// ErrHyperparameter indicates a non-positive prior scale or a
// malformed iteration count. Reported before any sampling runs.
var ErrHyperparameter = errors.New("invalid hyperparameter")

// ErrNumerical indicates a failed Cholesky factorization or linear
// solve. It is fatal for the run: a Gibbs chain cannot recover from a
// degenerate precision matrix mid-stream.
var ErrNumerical = errors.New("numerical failure")

// A Kernel is one Markov transition of a Gibbs sampler. Init performs
// any state setup that itself requires random draws; Step advances the
// full state by one sweep; Snapshot copies the current state for the
// draw sequence.
type Kernel interface {
	Name() string
	Init(gen *rand.Generator) error
	Step(gen *rand.Generator) error
	Snapshot() State
}

// Regime selects which of the two equivalent computational routes a
// kernel uses. It is fixed at construction from the problem shape and
// never re-evaluated mid-chain.
type Regime int

const (
	// ObservationMajor (p < n) factors p-dimensional systems.
	ObservationMajor Regime = iota
	// PredictorMajor (p >= n) solves n-dimensional systems and never
	// forms a p x p matrix.
	PredictorMajor
)

func (r Regime) String() string {
	if r == ObservationMajor {
		return "observation-major"
	}
	return "predictor-major"
}

// RegimeFor picks the route from the problem shape.
func RegimeFor(n, p int) Regime {
	if p < n {
		return ObservationMajor
	}
	return PredictorMajor
}
