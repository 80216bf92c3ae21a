package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/fastbayes/regress/model"
	"github.com/fastbayes/regress/rand"
)

// The two routes are algebraic rearrangements of the same conditional.
// Padding the design with null predictors flips the regime without
// changing the statistical problem for the original coefficients, so
// the posterior means must agree up to Monte Carlo error.
func TestRegimeEquivalence(t *testing.T) {
	assert := assert.New(t)

	sim := simLinear(t, 1234, 80, 40, 5)
	n, p := sim.Data.Dims()

	k, err := NewNormalLM(sim.Data, DefaultConfig())
	assert.NoError(err)
	assert.Equal(ObservationMajor, k.Regime())

	// Pad with zero columns until p exceeds n.
	padded := mat.NewDense(n, n+1, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			padded.Set(i, j, sim.Data.X.At(i, j))
		}
	}
	wide, err := model.NewDataset(sim.Data.Y, padded)
	assert.NoError(err)

	kw, err := NewNormalLM(wide, DefaultConfig())
	assert.NoError(err)
	assert.Equal(PredictorMajor, kw.Regime())

	cfg := shortConfig()
	gen, err := rand.NewGenerator(17)
	assert.NoError(err)
	resObs, err := FitNormalLM(sim.Data, cfg, gen)
	assert.NoError(err)

	gen, err = rand.NewGenerator(18)
	assert.NoError(err)
	resPred, err := FitNormalLM(wide, cfg, gen)
	assert.NoError(err)

	for j := 0; j < p; j++ {
		assert.InDelta(resObs.PostMean.Betacoef[j], resPred.PostMean.Betacoef[j], 0.2,
			"coefficient %d disagrees across routes", j)
	}
	// The padded null coefficients carry no signal.
	for j := p; j < n+1; j++ {
		assert.InDelta(0.0, resPred.PostMean.Betacoef[j], 0.2)
	}

	r, err := model.PearsonR(resObs.PostMean.Betacoef, resPred.PostMean.Betacoef[:p])
	assert.NoError(err)
	assert.True(r > 0.95, "route posterior means correlate at only %v", r)
}

func TestNormalLMInitialState(t *testing.T) {
	assert := assert.New(t)

	sim := simLinear(t, 9, 50, 10, 3)
	cfg := DefaultConfig()
	cfg.ASigma = 4.0
	cfg.BSigma = 2.0
	cfg.ATau = 3.0

	k, err := NewNormalLM(sim.Data, cfg)
	assert.NoError(err)
	assert.Equal(0.5, k.sigma2)
	assert.Equal(9.0, k.bTau)
	assert.Equal(9.0, k.tau2)
	assert.Equal("normal-lm", k.Name())
}
