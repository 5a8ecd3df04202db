package hyperdual

import "math"

// ============================================================
// Derivative tuples
// ============================================================

// derivs holds the value and first three derivatives of one elementary
// function, evaluated at a jet's real part. Every jet type feeds these through its own
// chain rule and ignores the orders it truncates.
type derivs[F any] [4]F

func recipRule[F Number[F]](x F) derivs[F] {
	r := x.Recip()
	r2 := r.Mul(r)
	r3 := r2.Mul(r)
	return derivs[F]{r, r2.Neg(), r3.Scale(2), r3.Mul(r).Scale(-6)}
}

func powiRule[F Number[F]](x F, n int) derivs[F] {
	fn := float64(n)
	return derivs[F]{
		x.Powi(n),
		x.Powi(n - 1).Scale(fn),
		x.Powi(n - 2).Scale(fn * (fn - 1)),
		x.Powi(n - 3).Scale(fn * (fn - 1) * (fn - 2)),
	}
}

func powfRule[F Number[F]](x F, n float64) derivs[F] {
	n1 := n - 1
	n2 := n1 - 1
	return derivs[F]{
		x.Powf(n),
		x.Powf(n1).Scale(n),
		x.Powf(n2).Scale(n * n1),
		x.Powf(n2 - 1).Scale(n * n1 * n2),
	}
}

func sqrtRule[F Number[F]](x F) derivs[F] {
	s := x.Sqrt()
	r := x.Recip()
	f1 := s.Mul(r).Scale(0.5)
	f2 := f1.Mul(r).Scale(-0.5)
	return derivs[F]{s, f1, f2, f2.Mul(r).Scale(-1.5)}
}

func cbrtRule[F Number[F]](x F) derivs[F] {
	c := x.Cbrt()
	r := x.Recip()
	f1 := c.Mul(r).DivScalar(3)
	f2 := f1.Mul(r).Scale(-2.0 / 3)
	return derivs[F]{c, f1, f2, f2.Mul(r).Scale(-5.0 / 3)}
}

func expRule[F Number[F]](x F) derivs[F] {
	e := x.Exp()
	return derivs[F]{e, e, e, e}
}

func exp2Rule[F Number[F]](x F) derivs[F] {
	e := x.Exp2()
	f1 := e.Scale(math.Ln2)
	f2 := f1.Scale(math.Ln2)
	return derivs[F]{e, f1, f2, f2.Scale(math.Ln2)}
}

func expm1Rule[F Number[F]](x F) derivs[F] {
	e := x.Exp()
	return derivs[F]{x.Expm1(), e, e, e}
}

// logRule shares the 1/x tower of every logarithm; lnBase scales it.
func logRule[F Number[F]](f0, x F, lnBase float64) derivs[F] {
	r := x.Recip()
	f1 := r.DivScalar(lnBase)
	f2 := f1.Mul(r).Neg()
	return derivs[F]{f0, f1, f2, f2.Mul(r).Scale(-2)}
}

func lnRule[F Number[F]](x F) derivs[F] { return logRule(x.Ln(), x, 1) }

func logBaseRule[F Number[F]](x F, base float64) derivs[F] {
	return logRule(x.LogBase(base), x, math.Log(base))
}

func log2Rule[F Number[F]](x F) derivs[F]  { return logRule(x.Log2(), x, math.Ln2) }
func log10Rule[F Number[F]](x F) derivs[F] { return logRule(x.Log10(), x, math.Ln10) }

func ln1pRule[F Number[F]](x F) derivs[F] {
	r := x.AddScalar(1).Recip()
	r2 := r.Mul(r)
	return derivs[F]{x.Ln1p(), r, r2.Neg(), r2.Mul(r).Scale(2)}
}

func sinRule[F Number[F]](s, c F) derivs[F] { return derivs[F]{s, c, s.Neg(), c.Neg()} }
func cosRule[F Number[F]](s, c F) derivs[F] { return derivs[F]{c, s.Neg(), c.Neg(), s} }

func tanRule[F Number[F]](x F) derivs[F] {
	t := x.Tan()
	t2 := t.Mul(t)
	sec2 := t2.AddScalar(1)
	return derivs[F]{
		t,
		sec2,
		t.Mul(sec2).Scale(2),
		sec2.Mul(t2.Scale(3).AddScalar(1)).Scale(2),
	}
}

func asinRule[F Number[F]](x F) derivs[F] {
	x2 := x.Mul(x)
	r := x2.Neg().AddScalar(1).Recip()
	s := r.Sqrt()
	return derivs[F]{
		x.Asin(),
		s,
		x.Mul(s).Mul(r),
		x2.Scale(2).AddScalar(1).Mul(s).Mul(r).Mul(r),
	}
}

func acosRule[F Number[F]](x F) derivs[F] {
	d := asinRule(x)
	return derivs[F]{x.Acos(), d[1].Neg(), d[2].Neg(), d[3].Neg()}
}

func atanRule[F Number[F]](x F) derivs[F] {
	x2 := x.Mul(x)
	r := x2.AddScalar(1).Recip()
	r2 := r.Mul(r)
	return derivs[F]{
		x.Atan(),
		r,
		x.Mul(r2).Scale(-2),
		x2.Scale(6).SubScalar(2).Mul(r2).Mul(r),
	}
}

func sinhRule[F Number[F]](x F) derivs[F] {
	sh, ch := x.Sinh(), x.Cosh()
	return derivs[F]{sh, ch, sh, ch}
}

func coshRule[F Number[F]](x F) derivs[F] {
	sh, ch := x.Sinh(), x.Cosh()
	return derivs[F]{ch, sh, ch, sh}
}

func tanhRule[F Number[F]](x F) derivs[F] {
	t := x.Tanh()
	t2 := t.Mul(t)
	sech2 := t2.Neg().AddScalar(1)
	return derivs[F]{
		t,
		sech2,
		t.Mul(sech2).Scale(-2),
		sech2.Mul(t2.Scale(6).SubScalar(2)),
	}
}

func asinhRule[F Number[F]](x F) derivs[F] {
	x2 := x.Mul(x)
	r := x2.AddScalar(1).Recip()
	s := r.Sqrt()
	return derivs[F]{
		x.Asinh(),
		s,
		x.Mul(s).Mul(r).Neg(),
		x2.Scale(2).SubScalar(1).Mul(s).Mul(r).Mul(r),
	}
}

func acoshRule[F Number[F]](x F) derivs[F] {
	x2 := x.Mul(x)
	r := x2.SubScalar(1).Recip()
	s := r.Sqrt()
	return derivs[F]{
		x.Acosh(),
		s,
		x.Mul(s).Mul(r).Neg(),
		x2.Scale(2).AddScalar(1).Mul(s).Mul(r).Mul(r),
	}
}

func atanhRule[F Number[F]](x F) derivs[F] {
	x2 := x.Mul(x)
	r := x2.Neg().AddScalar(1).Recip()
	r2 := r.Mul(r)
	return derivs[F]{
		x.Atanh(),
		r,
		x.Mul(r2).Scale(2),
		x2.Scale(6).AddScalar(2).Mul(r2).Mul(r),
	}
}

// ============================================================
// Shared power dispatch
// ============================================================

// pow handles the exponents whose chain-rule form would multiply 0 by Inf at
// a zero base.
func pow[T Number[T]](x T, n float64, rule func() T) T {
	switch n {
	case 0:
		return one[T]()
	case 1:
		return x
	case 2:
		return x.Mul(x)
	}
	return rule()
}

func powd[T Number[T]](x, n T) T { return n.Mul(x.Ln()).Exp() }
