package rand

import "math"

// TruncNormLeft0 returns n draws from a standard normal truncated to
// (lower, inf). Two regimes: when the truncation point sits at or
// below the mode, plain rejection against the untruncated normal is
// cheap; deep in the right tail it would almost always reject, so a
// shifted exponential envelope with the optimal tilt rate
// alpha* = (lower + sqrt(lower^2+4))/2 is used instead, with the
// acceptance test done in log space. ratio scales the proposal batch
// size relative to the number of slots still unfilled; every returned
// slot holds an accepted value.
func TruncNormLeft0(gen *Generator, n int, lower float64, ratio float64) []float64 {
	if ratio < 1.0 {
		ratio = 1.0
	}
	y := make([]float64, 0, n)

	if lower <= 0 {
		for len(y) < n {
			batch := int(math.Ceil(ratio * float64(n-len(y))))
			for i := 0; i < batch; i++ {
				z := gen.NormFloat64()
				if z > lower {
					y = append(y, z)
					if len(y) == n {
						break
					}
				}
			}
		}
		return y
	}

	alphaStar := 0.5 * (lower + math.Sqrt(lower*lower+4.0))
	for len(y) < n {
		batch := int(math.Ceil(ratio * float64(n-len(y))))
		for i := 0; i < batch; i++ {
			// Shifted exponential proposal with rate alpha*.
			z := lower - math.Log(gen.Float64())/alphaStar
			diff := z - alphaStar
			logRho := -0.5 * diff * diff
			if math.Log(gen.Float64()) < logRho {
				y = append(y, z)
				if len(y) == n {
					break
				}
			}
		}
	}
	return y
}

// TruncNormLeft returns n draws from N(mu, sigma^2) truncated to
// (lower, inf), by affine transform of the standardized generator.
func TruncNormLeft(gen *Generator, n int, mu, sigma, lower float64, ratio float64) []float64 {
	lower0 := (lower - mu) / sigma
	y := TruncNormLeft0(gen, n, lower0, ratio)
	for i := range y {
		y[i] = y[i]*sigma + mu
	}
	return y
}

// TruncNormRight returns n draws from N(mu, sigma^2) truncated to
// (-inf, upper), by sign-flipping the left-truncated result.
func TruncNormRight(gen *Generator, n int, mu, sigma, upper float64, ratio float64) []float64 {
	y := TruncNormLeft(gen, n, -mu, sigma, -upper, ratio)
	for i := range y {
		y[i] = -y[i]
	}
	return y
}
