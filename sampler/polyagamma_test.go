package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"

	"github.com/fastbayes/regress/rand"
)

// PG(1, z) has mean tanh(z/2)/(2z), which limits to 1/4 at z = 0.
func pgMean(z float64) float64 {
	if z == 0 {
		return 0.25
	}
	return math.Tanh(z/2.0) / (2.0 * z)
}

func TestPolyaGammaMoments(t *testing.T) {
	assert := assert.New(t)

	gen, err := rand.NewGenerator(8675309)
	assert.NoError(err)

	pg := NewDevroyeSampler()
	const draws = 50000

	for _, z := range []float64{0, 0.5, 2.0, -2.0, 8.0} {
		tilt := make([]float64, draws)
		for i := range tilt {
			tilt[i] = z
		}
		x, err := pg.Draw(gen, tilt)
		assert.NoError(err)
		assert.Len(x, draws)

		for _, v := range x {
			assert.True(v > 0, "PG draw must be positive, got %v at z=%v", v, z)
		}
		assert.InDelta(pgMean(z), stat.Mean(x, nil), 0.005, "mean mismatch at z=%v", z)
	}

	// PG(1,0) variance is 1/24.
	tilt := make([]float64, draws)
	x, err := pg.Draw(gen, tilt)
	assert.NoError(err)
	assert.InDelta(1.0/24.0, stat.Variance(x, nil), 0.005)
}

func TestPolyaGammaDeterministic(t *testing.T) {
	assert := assert.New(t)

	pg := NewDevroyeSampler()
	tilt := []float64{0, 1, -1, 3}

	gen1, err := rand.NewGenerator(13)
	assert.NoError(err)
	a, err := pg.Draw(gen1, tilt)
	assert.NoError(err)

	gen2, err := rand.NewGenerator(13)
	assert.NoError(err)
	b, err := pg.Draw(gen2, tilt)
	assert.NoError(err)

	assert.Equal(a, b)
}
