package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastbayes/regress/model"
	"github.com/fastbayes/regress/rand"
)

func simLinear(t *testing.T, seed int64, n, p, q int) *model.LinearSim {
	t.Helper()
	gen, err := rand.NewGenerator(seed)
	assert.NoError(t, err)
	sim, err := model.SimLinearReg(gen, n, p, q, 0.95, 0.5, 1.0)
	assert.NoError(t, err)
	return sim
}

func TestChainBookkeeping(t *testing.T) {
	assert := assert.New(t)

	sim := simLinear(t, 4242, 120, 8, 4)
	cfg := Config{
		MCMCSample: 50,
		Burnin:     25,
		Thinning:   2,
		ASigma:     0.01,
		BSigma:     0.01,
		ATau:       1,
		ALambda:    1,
	}

	k, err := NewNormalLM(sim.Data, cfg)
	assert.NoError(err)
	ch, err := NewChain(k, cfg)
	assert.NoError(err)

	gen, err := rand.NewGenerator(7)
	assert.NoError(err)
	draws, err := ch.Run(gen)
	assert.NoError(err)

	assert.Len(draws, cfg.MCMCSample)
	assert.Equal(int64(cfg.Burnin+cfg.MCMCSample*cfg.Thinning), ch.TotalSteps)

	for _, st := range draws {
		assert.Len(st.Beta, 8)
		assert.True(st.Sigma2Eps > 0)
		assert.True(st.Tau2 > 0)
		assert.Nil(st.Lambda)
	}

	// The convergence window equals MCMCSample here, so both traces
	// are full and the split-half diffs are real values.
	s2, t2 := ch.SplitHalfDiffs()
	assert.True(s2 >= 0)
	assert.True(t2 >= 0)
}

func TestChainWindowCap(t *testing.T) {
	assert := assert.New(t)

	sim := simLinear(t, 11, 60, 5, 2)
	cfg := DefaultConfig()
	cfg.MCMCSample = 1000
	cfg.Burnin = 0

	k, err := NewNormalLM(sim.Data, cfg)
	assert.NoError(err)
	ch, err := NewChain(k, cfg)
	assert.NoError(err)

	// Window is capped, so the traces fill long before the run ends.
	gen, err := rand.NewGenerator(3)
	assert.NoError(err)
	_, err = ch.Run(gen)
	assert.NoError(err)

	s2, t2 := ch.SplitHalfDiffs()
	assert.True(s2 >= 0)
	assert.True(t2 >= 0)
}

func TestChainSingleDraw(t *testing.T) {
	assert := assert.New(t)

	sim := simLinear(t, 13, 50, 4, 2)
	cfg := DefaultConfig()
	cfg.MCMCSample = 1
	cfg.Burnin = 5

	k, err := NewNormalLM(sim.Data, cfg)
	assert.NoError(err)
	ch, err := NewChain(k, cfg)
	assert.NoError(err)

	gen, err := rand.NewGenerator(9)
	assert.NoError(err)
	draws, err := ch.Run(gen)
	assert.NoError(err)
	assert.Len(draws, 1)

	// A single retained draw cannot fill the window.
	s2, t2 := ch.SplitHalfDiffs()
	assert.Equal(-1.0, s2)
	assert.Equal(-1.0, t2)
}

func TestChainRejectsBadConfig(t *testing.T) {
	assert := assert.New(t)

	sim := simLinear(t, 12, 40, 4, 2)
	good := DefaultConfig()
	k, err := NewNormalLM(sim.Data, good)
	assert.NoError(err)

	bad := good
	bad.MCMCSample = 0
	ch, err := NewChain(k, bad)
	assert.Nil(ch)
	assert.Error(err)
}
