package rand

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncNormLeft0AtZero(t *testing.T) {
	assert := assert.New(t)

	gen, err := NewGenerator(2022)
	assert.NoError(err)

	const n = 100000
	y := TruncNormLeft0(gen, n, 0.0, 1.0)
	assert.Len(y, n)

	sum := 0.0
	for _, v := range y {
		assert.True(v > 0.0)
		sum += v
	}

	// Half-normal mean is sqrt(2/pi)
	assert.InDelta(math.Sqrt(2.0/math.Pi), sum/float64(n), 0.01)
}

func TestTruncNormLeft0DeepTail(t *testing.T) {
	assert := assert.New(t)

	gen, err := NewGenerator(2022)
	assert.NoError(err)

	const lower = 6.0
	y := TruncNormLeft0(gen, 20000, lower, 1.0)
	assert.Len(y, 20000)
	for _, v := range y {
		assert.True(v > lower)
	}

	// N(0,1) conditioned on exceeding 6 concentrates just above 6
	sum := 0.0
	for _, v := range y {
		sum += v
	}
	mean := sum / float64(len(y))
	assert.True(mean > lower && mean < lower+0.5, "mean=%v", mean)
}

func TestTruncNormLeft0NegativeBound(t *testing.T) {
	assert := assert.New(t)

	gen, err := NewGenerator(5)
	assert.NoError(err)

	y := TruncNormLeft0(gen, 50000, -1.5, 2.0)
	assert.Len(y, 50000)
	for _, v := range y {
		assert.True(v > -1.5)
	}
}

func TestTruncNormAffine(t *testing.T) {
	assert := assert.New(t)

	gen, err := NewGenerator(99)
	assert.NoError(err)

	y := TruncNormLeft(gen, 10000, 100.0, 0.1, 200.0, 1.0)
	assert.Len(y, 10000)
	for _, v := range y {
		assert.True(v > 200.0)
	}

	z := TruncNormRight(gen, 10000, 100.0, 0.1, 90.0, 1.0)
	assert.Len(z, 10000)
	for _, v := range z {
		assert.True(v < 90.0)
	}
}
