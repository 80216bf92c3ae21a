// Package model holds the regression data model: the response/design
// pair handed to the samplers, simulation generators for testing, and
// the error metrics used to score fitted coefficient vectors.
package model

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrDimension indicates a response/design shape mismatch. It is
// always reported before any sampling work begins.
var ErrDimension = errors.New("dimension mismatch")

// Dataset is a fixed (y, X) regression problem. Y has one entry per
// row of X; for logistic models Y entries must be 0 or 1. Both are
// immutable for the lifetime of a sampling run.
type Dataset struct {
	Y []float64
	X *mat.Dense
}

// NewDataset validates shapes and wraps the inputs. The data is not
// copied; callers must not mutate it while a chain is running.
func NewDataset(y []float64, x *mat.Dense) (*Dataset, error) {
	if x == nil {
		return nil, errors.Wrap(ErrDimension, "design matrix is nil")
	}
	n, _ := x.Dims()
	if len(y) != n {
		return nil, errors.Wrapf(ErrDimension, "response length %d != design rows %d", len(y), n)
	}
	if len(y) < 1 {
		return nil, errors.Wrap(ErrDimension, "empty dataset")
	}

	return &Dataset{Y: y, X: x}, nil
}

// Dims returns (n, p): observation and predictor counts.
func (d *Dataset) Dims() (int, int) {
	return d.X.Dims()
}

// CheckBinary verifies every response value is 0 or 1, which the
// logistic samplers require.
func (d *Dataset) CheckBinary() error {
	for i, v := range d.Y {
		if v != 0.0 && v != 1.0 {
			return errors.Wrapf(ErrDimension, "response %d is %v, want 0 or 1", i, v)
		}
	}
	return nil
}
