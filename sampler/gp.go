package sampler

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// KernelKind selects one of the three kernel families the CoBO sampler
// may be configured with (§4.4): DotProduct (linear), Matern, or RBF, each
// summed with a white-noise term.
type KernelKind int

const (
	KernelLinear KernelKind = iota
	KernelMatern
	KernelRBF
)

// gpKernel computes the prior covariance between two feature vectors,
// excluding the white-noise term (added separately on the training
// diagonal and omitted at prediction time, matching scikit-learn's
// WhiteKernel convention).
func gpKernel(kind KernelKind, a, b []float64, lengthScale float64) float64 {
	switch kind {
	case KernelLinear:
		var dot float64
		for i := range a {
			dot += a[i] * b[i]
		}
		return dot
	case KernelMatern:
		// Matern 3/2, a common default smoothness for BO surrogates.
		d := euclidean(a, b) / lengthScale
		root3 := math.Sqrt(3) * d
		return (1 + root3) * math.Exp(-root3)
	case KernelRBF:
		d := euclidean(a, b)
		return math.Exp(-(d * d) / (2 * lengthScale * lengthScale))
	default:
		return 0
	}
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// GP is a minimal Gaussian-process regressor: a kernel, a fitted
// Cholesky factorization of the training covariance, and the
// standardization statistics applied to both X and y before fitting
// (§4.4: "Features are standardized (zero-mean, unit-variance) on both X
// and y before fitting").
type GP struct {
	Kind        KernelKind
	Noise       float64
	LengthScale float64

	xTrain   [][]float64
	xMean    []float64
	xStd     []float64
	yMean    float64
	yStd     float64
	alpha    *mat.VecDense
	chol     *mat.Cholesky
	fitted   bool
}

// NewGP constructs an unfitted GP with the given kernel.
func NewGP(kind KernelKind, noise, lengthScale float64) *GP {
	return &GP{Kind: kind, Noise: noise, LengthScale: lengthScale}
}

// Fit standardizes X and y and solves for the GP's posterior weights via
// a Cholesky factorization of the (kernel + noise) covariance matrix.
func (g *GP) Fit(x [][]float64, y []float64) {
	n := len(x)
	dim := len(x[0])

	g.xMean = make([]float64, dim)
	g.xStd = make([]float64, dim)
	for d := 0; d < dim; d++ {
		col := make([]float64, n)
		for i := range x {
			col[i] = x[i][d]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		g.xMean[d] = mean
		g.xStd[d] = std
	}

	g.yMean, g.yStd = stat.MeanStdDev(y, nil)
	if g.yStd == 0 {
		g.yStd = 1
	}

	g.xTrain = make([][]float64, n)
	yStd := make([]float64, n)
	for i := range x {
		g.xTrain[i] = g.standardizeX(x[i])
		yStd[i] = (y[i] - g.yMean) / g.yStd
	}

	k := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := gpKernel(g.Kind, g.xTrain[i], g.xTrain[j], g.LengthScale)
			if i == j {
				v += g.Noise
			}
			k.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(k); !ok {
		// Fall back to a slightly larger noise term for numerical
		// stability rather than failing the fit.
		for i := 0; i < n; i++ {
			k.SetSym(i, i, k.At(i, i)+1e-6)
		}
		chol.Factorize(k)
	}
	g.chol = &chol

	yVec := mat.NewVecDense(n, yStd)
	alpha := mat.NewVecDense(n, nil)
	g.chol.SolveVecTo(alpha, yVec)
	g.alpha = alpha
	g.fitted = true
}

func (g *GP) standardizeX(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - g.xMean[i]) / g.xStd[i]
	}
	return out
}

// Predict returns the posterior mean and standard deviation at x, both in
// the original (unstandardized) y-scale.
func (g *GP) Predict(x []float64) (mean, std float64) {
	if !g.fitted {
		return 0, 1
	}

	xs := g.standardizeX(x)
	n := len(g.xTrain)
	kStar := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		kStar.SetVec(i, gpKernel(g.Kind, xs, g.xTrain[i], g.LengthScale))
	}

	meanStd := mat.Dot(kStar, g.alpha)

	v := mat.NewVecDense(n, nil)
	g.chol.SolveVecTo(v, kStar)
	variance := gpKernel(g.Kind, xs, xs, g.LengthScale) - mat.Dot(kStar, v)
	if variance < 0 {
		variance = 0
	}

	return meanStd*g.yStd + g.yMean, math.Sqrt(variance) * g.yStd
}
