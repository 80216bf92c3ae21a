package sampler

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/fastbayes/regress/rand"
)

// matVec returns a*x as a plain slice.
func matVec(a mat.Matrix, x []float64) []float64 {
	r, c := a.Dims()
	out := mat.NewVecDense(r, nil)
	out.MulVec(a, mat.NewVecDense(c, x))
	return out.RawVector().Data
}

// matTVec returns aᵗ*x as a plain slice.
func matTVec(a mat.Matrix, x []float64) []float64 {
	return matVec(a.T(), x)
}

// rowScaled returns diag(w) * a: row i multiplied by w[i].
func rowScaled(a mat.Matrix, w []float64) *mat.Dense {
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		wi := w[i]
		for j := 0; j < c; j++ {
			out.Set(i, j, a.At(i, j)*wi)
		}
	}
	return out
}

// colScaled returns a * diag(w): column j multiplied by w[j].
func colScaled(a mat.Matrix, w []float64) *mat.Dense {
	r, c := a.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, a.At(i, j)*w[j])
		}
	}
	return out
}

// gram returns aᵗa plus addDiag on the diagonal as a symmetric matrix.
// addDiag may be nil (no shift) or length equal to the column count.
func gram(a mat.Matrix, addDiag []float64) *mat.SymDense {
	_, c := a.Dims()
	s := mat.NewSymDense(c, nil)
	s.SymOuterK(1.0, a.T())
	if addDiag != nil {
		for j := 0; j < c; j++ {
			s.SetSym(j, j, s.At(j, j)+addDiag[j])
		}
	}
	return s
}

// gramT returns a aᵗ plus addDiag on the diagonal.
func gramT(a mat.Matrix, addDiag []float64) *mat.SymDense {
	r, _ := a.Dims()
	s := mat.NewSymDense(r, nil)
	s.SymOuterK(1.0, a)
	if addDiag != nil {
		for i := 0; i < r; i++ {
			s.SetSym(i, i, s.At(i, i)+addDiag[i])
		}
	}
	return s
}

// constDiag returns a slice of length n filled with v.
func constDiag(n int, v float64) []float64 {
	d := make([]float64, n)
	for i := range d {
		d[i] = v
	}
	return d
}

// spdSolve solves prec * x = b for symmetric positive definite prec
// through its Cholesky factorization.
func spdSolve(prec *mat.SymDense, b []float64) ([]float64, error) {
	var ch mat.Cholesky
	if ok := ch.Factorize(prec); !ok {
		return nil, errors.Wrap(ErrNumerical, "Cholesky factorization failed: precision matrix not positive definite")
	}
	n, _ := prec.Dims()
	x := mat.NewVecDense(n, nil)
	if err := ch.SolveVecTo(x, mat.NewVecDense(n, b)); err != nil {
		return nil, errors.Wrap(ErrNumerical, "Cholesky solve failed")
	}
	return x.RawVector().Data, nil
}

// drawGaussianPrec draws from N(prec⁻¹ c, prec⁻¹): the conjugate
// coefficient conditional parameterized by its precision matrix and
// linear term. One factorization serves both the mean solve and the
// correlated noise (Lᵗ w = z).
func drawGaussianPrec(gen *rand.Generator, prec *mat.SymDense, c []float64) ([]float64, error) {
	var ch mat.Cholesky
	if ok := ch.Factorize(prec); !ok {
		return nil, errors.Wrap(ErrNumerical, "Cholesky factorization failed: precision matrix not positive definite")
	}

	p := len(c)
	mean := mat.NewVecDense(p, nil)
	if err := ch.SolveVecTo(mean, mat.NewVecDense(p, c)); err != nil {
		return nil, errors.Wrap(ErrNumerical, "Cholesky solve failed for conditional mean")
	}

	var l mat.TriDense
	ch.LTo(&l)
	z := mat.NewVecDense(p, gen.NormVec(p))
	w := mat.NewVecDense(p, nil)
	if err := w.SolveVec(l.T(), z); err != nil {
		return nil, errors.Wrap(ErrNumerical, "triangular solve failed for noise draw")
	}

	out := make([]float64, p)
	for i := 0; i < p; i++ {
		out[i] = mean.AtVec(i) + w.AtVec(i)
	}
	return out, nil
}
