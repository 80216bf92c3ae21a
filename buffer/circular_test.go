package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircularFloat(t *testing.T) {
	assert := assert.New(t)

	ci := NewCircularFloat(6)
	assert.Equal(6, ci.BufSize)
	assert.Equal(0, ci.Count)

	ci.Add(1)
	ci.Add(2)
	ci.Add(3)
	ci.Add(4)
	ci.Add(5)
	assert.Equal(6, ci.BufSize)
	assert.Equal(5, ci.Count)
	assert.Nil(ci.FirstHalf())
	assert.Nil(ci.SecondHalf())
	assert.Equal(-1.0, ci.SplitHalfDiff())

	ci.Add(6)
	assert.Equal(6, ci.BufSize)
	assert.Equal(6, ci.Count)

	exp := 0.0
	for iter := ci.FirstHalf(); iter.Next(); {
		val := iter.Value()
		exp++
		assert.Equal(exp, val)
	}
	for iter := ci.SecondHalf(); iter.Next(); {
		val := iter.Value()
		exp++
		assert.Equal(exp, val)
	}

	// 1 2 3 4 5 6 add 8 add 8 => 8 8 3 4 5 6
	// So first=3,4,5 second=6,8,8
	ci.Add(8)
	ci.Add(8)
	expVals := []float64{3, 4, 5, 6, 8, 8}
	idx := 0
	for iter := ci.FirstHalf(); iter.Next(); {
		val := iter.Value()
		assert.Equal(expVals[idx], val)
		idx++
	}
	for iter := ci.SecondHalf(); iter.Next(); {
		val := iter.Value()
		assert.Equal(expVals[idx], val)
		idx++
	}
}

func TestSplitHalfDiff(t *testing.T) {
	assert := assert.New(t)

	ci := NewCircularFloat(4)
	ci.Add(1)
	ci.Add(1)
	ci.Add(3)
	ci.Add(3)
	// halves are {1,1} and {3,3}
	assert.InDelta(2.0, ci.SplitHalfDiff(), 1e-12)

	ci.Add(3)
	ci.Add(3)
	// window now {3,3,3,3}
	assert.InDelta(0.0, ci.SplitHalfDiff(), 1e-12)
}

func TestOddSizeAdjusted(t *testing.T) {
	assert := assert.New(t)

	ci := NewCircularFloat(7)
	assert.Equal(6, ci.BufSize)
}
