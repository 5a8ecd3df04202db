package hyperdual

import "math"

// Spherical Bessel functions of the first kind. The closed forms cancel
// catastrophically as x approaches zero, and each derivative loses another
// power of x, so below sphCutoff the Maclaurin series
//
//	j_n(x) = x^n Σ a_k x^(2k),  a_k = (-1/2)^k / (k! (2n+2k+1)!!)
//
// takes over. sphTerms terms keep every derivative through third order at
// machine precision on the whole series range.

const (
	sphCutoff = 1.0
	sphTerms  = 12
)

var sphCoeffs = [3][sphTerms]float64{sphSeriesCoeffs(0), sphSeriesCoeffs(1), sphSeriesCoeffs(2)}

func sphSeriesCoeffs(n int) [sphTerms]float64 {
	var a [sphTerms]float64
	a[0] = 1
	for i := 3; i <= 2*n+1; i += 2 {
		a[0] /= float64(i)
	}
	for k := 0; k+1 < sphTerms; k++ {
		a[k+1] = -a[k] / float64(2*(k+1)*(2*n+2*k+3))
	}
	return a
}

func sphSeries[T Number[T]](x T, n int) T {
	a := &sphCoeffs[n]
	x2 := x.Mul(x)
	p := x2.Scale(a[sphTerms-1]).AddScalar(a[sphTerms-2])
	for k := sphTerms - 3; k >= 0; k-- {
		p = p.Mul(x2).AddScalar(a[k])
	}
	for i := 0; i < n; i++ {
		p = p.Mul(x)
	}
	return p
}

func sphJ0[T Number[T]](x T) T {
	if math.Abs(x.Float64()) < sphCutoff {
		return sphSeries(x, 0)
	}
	return x.Sin().Div(x)
}

func sphJ1[T Number[T]](x T) T {
	if math.Abs(x.Float64()) < sphCutoff {
		return sphSeries(x, 1)
	}
	s, c := x.SinCos()
	return s.Sub(x.Mul(c)).Div(x.Mul(x))
}

func sphJ2[T Number[T]](x T) T {
	if math.Abs(x.Float64()) < sphCutoff {
		return sphSeries(x, 2)
	}
	x2 := x.Mul(x)
	s, c := x.SinCos()
	return s.Sub(x.Mul(c)).Scale(3).Sub(x2.Mul(s)).Div(x2.Mul(x))
}
