package sampler

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(DefaultConfig().Validate())

	bad := []Config{
		{MCMCSample: 0, Burnin: 10, Thinning: 1, ATau: 1, ALambda: 1},
		{MCMCSample: 10, Burnin: -1, Thinning: 1, ATau: 1, ALambda: 1},
		{MCMCSample: 10, Burnin: 10, Thinning: 0, ATau: 1, ALambda: 1},
		{MCMCSample: 10, Burnin: 10, Thinning: 1, ASigma: -0.1, ATau: 1, ALambda: 1},
		{MCMCSample: 10, Burnin: 10, Thinning: 1, ATau: 0, ALambda: 1},
		{MCMCSample: 10, Burnin: 10, Thinning: 1, ATau: 1, ALambda: -1},
	}
	for i, cfg := range bad {
		err := cfg.Validate()
		assert.Error(err, "config %d should fail", i)
		assert.Equal(ErrHyperparameter, errors.Cause(err))
	}

	// Improper flat prior on the noise variance is allowed.
	ok := DefaultConfig()
	ok.ASigma = 0
	ok.BSigma = 0
	assert.NoError(ok.Validate())
}

func TestRegimeFor(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(ObservationMajor, RegimeFor(100, 10))
	assert.Equal(PredictorMajor, RegimeFor(10, 100))
	assert.Equal(PredictorMajor, RegimeFor(10, 10))

	assert.Equal("observation-major", ObservationMajor.String())
	assert.Equal("predictor-major", PredictorMajor.String())
}

func TestStateSnapshotIsCopy(t *testing.T) {
	assert := assert.New(t)

	beta := []float64{1, 2, 3}
	st := State{Beta: copyVec(beta), Sigma2Eps: 1, Tau2: 1}
	beta[0] = 99
	assert.Equal(1.0, st.Beta[0])

	assert.Nil(copyVec(nil))
}
