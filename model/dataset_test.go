package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewDatasetValidation(t *testing.T) {
	assert := assert.New(t)

	x := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})

	ds, err := NewDataset([]float64{1, 2, 3}, x)
	assert.NoError(err)
	n, p := ds.Dims()
	assert.Equal(3, n)
	assert.Equal(2, p)

	ds, err = NewDataset([]float64{1, 2}, x)
	assert.Nil(ds)
	assert.Error(err)
	assert.Equal(ErrDimension, errors.Cause(err))

	ds, err = NewDataset([]float64{1, 2, 3}, nil)
	assert.Nil(ds)
	assert.Error(err)

	ds, err = NewDataset(nil, mat.NewDense(1, 1, []float64{1}))
	assert.Nil(ds)
	assert.Error(err)
}

func TestCheckBinary(t *testing.T) {
	assert := assert.New(t)

	x := mat.NewDense(3, 1, []float64{1, 2, 3})

	ds, err := NewDataset([]float64{0, 1, 1}, x)
	assert.NoError(err)
	assert.NoError(ds.CheckBinary())

	ds, err = NewDataset([]float64{0, 0.5, 1}, x)
	assert.NoError(err)
	assert.Error(ds.CheckBinary())
}
