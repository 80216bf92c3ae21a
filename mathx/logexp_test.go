package mathx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog1mexpmAgainstNaive(t *testing.T) {
	assert := assert.New(t)

	for x := 0.05; x <= 20.0; x += 0.05 {
		naive := math.Log(1.0 - math.Exp(-x))
		assert.InDelta(naive, Log1mexpm(x), 1e-10, "x=%v", x)
	}
}

func TestLog1mexpmTinyArg(t *testing.T) {
	assert := assert.New(t)

	y := Log1mexpm(1e-12)
	assert.False(math.IsNaN(y))
	assert.False(math.IsInf(y, -1))
	// 1-exp(-x) ~ x for tiny x, so the answer should be near log(x)
	assert.InDelta(math.Log(1e-12), y, 1e-6)
}

func TestLog1pexpExtremes(t *testing.T) {
	assert := assert.New(t)

	assert.False(math.IsInf(Log1pexp(1e4), 1))
	assert.Equal(1e4, Log1pexp(1e4))
	assert.InDelta(0.0, Log1pexp(-1e4), 1e-300)

	for x := 40.5; x < 100; x += 1.0 {
		assert.InDelta(x, Log1pexp(x), 1e-6)
	}
}

func TestLog1pexpMidRange(t *testing.T) {
	assert := assert.New(t)

	for x := -30.0; x <= 30.0; x += 0.25 {
		naive := math.Log(1.0 + math.Exp(x))
		assert.InDelta(naive, Log1pexp(x), 1e-12, "x=%v", x)
	}
}

func TestLog1pexpRegimeBoundaries(t *testing.T) {
	assert := assert.New(t)

	// Values on either side of each cutoff must agree closely.
	for _, c := range []float64{-37, 18, 33.3} {
		lo := Log1pexp(c - 1e-9)
		hi := Log1pexp(c + 1e-9)
		assert.InDelta(lo, hi, 1e-8, "cutoff=%v", c)
	}
}

func TestVecForms(t *testing.T) {
	assert := assert.New(t)

	xs := []float64{0.5, 1, 2, 5}
	ys := Log1mexpmVec(xs)
	assert.Len(ys, len(xs))
	for i, x := range xs {
		assert.Equal(Log1mexpm(x), ys[i])
	}

	zs := Log1pexpVec([]float64{-1, 0, 1})
	assert.Len(zs, 3)
	assert.InDelta(math.Log(2), zs[1], 1e-12)
}

func TestSigmoid(t *testing.T) {
	assert := assert.New(t)

	assert.InDelta(0.5, Sigmoid(0), 1e-12)
	assert.InDelta(1.0, Sigmoid(800), 1e-12)
	assert.InDelta(0.0, Sigmoid(-800), 1e-12)
	assert.InDelta(1.0/(1.0+math.Exp(-2)), Sigmoid(2), 1e-12)
}
