package sampler

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/fastbayes/regress/model"
)

// SVD caches the one-time economy singular value decomposition
// X = U diag(d) Vt shared by the Gaussian-likelihood kernels, plus the
// rotated response Uᵗy. All fields are immutable for the run.
type SVD struct {
	U   *mat.Dense // n x r
	V   *mat.Dense // p x r
	D   []float64  // r singular values, descending
	D2  []float64  // elementwise squares
	YS  []float64  // Uᵗ y, length r
	DYS []float64  // d .* Uᵗ y, length r
}

// NewSVD factors the design once. Fails only if the underlying
// bidiagonalization does not converge, which signals a degenerate
// input rather than a transient condition.
func NewSVD(ds *model.Dataset) (*SVD, error) {
	var svd mat.SVD
	if ok := svd.Factorize(ds.X, mat.SVDThin); !ok {
		return nil, errors.Wrap(ErrNumerical, "SVD of design matrix failed to converge")
	}

	s := &SVD{
		U: &mat.Dense{},
		V: &mat.Dense{},
	}
	svd.UTo(s.U)
	svd.VTo(s.V)
	s.D = svd.Values(nil)

	r := len(s.D)
	s.D2 = make([]float64, r)
	for i, d := range s.D {
		s.D2[i] = d * d
	}

	n := len(ds.Y)
	ys := mat.NewVecDense(r, nil)
	ys.MulVec(s.U.T(), mat.NewVecDense(n, ds.Y))
	s.YS = make([]float64, r)
	s.DYS = make([]float64, r)
	for i := 0; i < r; i++ {
		s.YS[i] = ys.AtVec(i)
		s.DYS[i] = s.D[i] * s.YS[i]
	}

	return s, nil
}

// Rank returns min(n, p), the number of retained singular values.
func (s *SVD) Rank() int {
	return len(s.D)
}

// VD returns V diag(d), the p x r map from the rotated basis back to
// coefficient space scaled by the singular values. Used by the
// predictor-major horseshoe route.
func (s *SVD) VD() *mat.Dense {
	p, r := s.V.Dims()
	vd := mat.NewDense(p, r, nil)
	for i := 0; i < p; i++ {
		for j := 0; j < r; j++ {
			vd.Set(i, j, s.V.At(i, j)*s.D[j])
		}
	}
	return vd
}
