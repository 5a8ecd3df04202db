package hyperdual

// ============================================================
// DualVec: value and gradient
// ============================================================

// DualVec is re + Σ eps_i·ε_i over len(A) independent directions. eps is the
// gradient with respect to those directions.
type DualVec[F Number[F], A Array[F]] struct {
	re  F
	eps Vec[F, A]
}

var _ Number[DualVec[Real, [3]Real]] = DualVec[Real, [3]Real]{}

func NewDualVec[F Number[F], A Array[F]](re F, eps Vec[F, A]) DualVec[F, A] {
	return DualVec[F, A]{re: re, eps: eps}
}

// DualVecFromRe returns re with a zero gradient. The direction count comes
// from A, which cannot be inferred: DualVecFromRe[[3]Real](x).
func DualVecFromRe[A Array[F], F Number[F]](re F) DualVec[F, A] {
	return DualVec[F, A]{re: re}
}

func (x DualVec[F, A]) Re() F            { return x.re }
func (x DualVec[F, A]) Eps() Vec[F, A]   { return x.eps }
func (x DualVec[F, A]) Float64() float64 { return x.re.Float64() }
func (x DualVec[F, A]) String() string {
	return formatCoeff(x.re) + " + " + x.eps.String() + "ε"
}

func (x DualVec[F, A]) chain(d derivs[F]) DualVec[F, A] {
	return DualVec[F, A]{re: d[0], eps: vecScale(x.eps, d[1])}
}

func (x DualVec[F, A]) Add(y DualVec[F, A]) DualVec[F, A] {
	return DualVec[F, A]{x.re.Add(y.re), vecAdd(x.eps, y.eps)}
}

func (x DualVec[F, A]) Sub(y DualVec[F, A]) DualVec[F, A] {
	return DualVec[F, A]{x.re.Sub(y.re), vecSub(x.eps, y.eps)}
}

func (x DualVec[F, A]) Neg() DualVec[F, A] {
	return DualVec[F, A]{x.re.Neg(), vecMap(x.eps, neg[F])}
}

func (x DualVec[F, A]) Mul(y DualVec[F, A]) DualVec[F, A] {
	return DualVec[F, A]{x.re.Mul(y.re), vecLinear(y.eps, x.re, x.eps, y.re)}
}

func (x DualVec[F, A]) Div(y DualVec[F, A]) DualVec[F, A] { return x.Mul(y.Recip()) }

func (x DualVec[F, A]) AddScalar(c float64) DualVec[F, A] {
	x.re = x.re.AddScalar(c)
	return x
}

func (x DualVec[F, A]) SubScalar(c float64) DualVec[F, A] {
	x.re = x.re.SubScalar(c)
	return x
}

func (x DualVec[F, A]) Scale(c float64) DualVec[F, A] {
	return DualVec[F, A]{x.re.Scale(c), vecMap(x.eps, func(e F) F { return e.Scale(c) })}
}

func (x DualVec[F, A]) DivScalar(c float64) DualVec[F, A] {
	return DualVec[F, A]{x.re.DivScalar(c), vecMap(x.eps, func(e F) F { return e.DivScalar(c) })}
}

func (x DualVec[F, A]) Recip() DualVec[F, A] { return x.chain(recipRule(x.re)) }
func (x DualVec[F, A]) Powi(n int) DualVec[F, A] {
	return pow(x, float64(n), func() DualVec[F, A] { return x.chain(powiRule(x.re, n)) })
}
func (x DualVec[F, A]) Powf(n float64) DualVec[F, A] {
	return pow(x, n, func() DualVec[F, A] { return x.chain(powfRule(x.re, n)) })
}
func (x DualVec[F, A]) Powd(n DualVec[F, A]) DualVec[F, A] { return powd(x, n) }
func (x DualVec[F, A]) Sqrt() DualVec[F, A]                { return x.chain(sqrtRule(x.re)) }
func (x DualVec[F, A]) Cbrt() DualVec[F, A]                { return x.chain(cbrtRule(x.re)) }

func (x DualVec[F, A]) Exp() DualVec[F, A]   { return x.chain(expRule(x.re)) }
func (x DualVec[F, A]) Exp2() DualVec[F, A]  { return x.chain(exp2Rule(x.re)) }
func (x DualVec[F, A]) Expm1() DualVec[F, A] { return x.chain(expm1Rule(x.re)) }
func (x DualVec[F, A]) Ln() DualVec[F, A]    { return x.chain(lnRule(x.re)) }
func (x DualVec[F, A]) LogBase(base float64) DualVec[F, A] {
	return x.chain(logBaseRule(x.re, base))
}
func (x DualVec[F, A]) Log2() DualVec[F, A]  { return x.chain(log2Rule(x.re)) }
func (x DualVec[F, A]) Log10() DualVec[F, A] { return x.chain(log10Rule(x.re)) }
func (x DualVec[F, A]) Ln1p() DualVec[F, A]  { return x.chain(ln1pRule(x.re)) }

func (x DualVec[F, A]) Sin() DualVec[F, A] {
	s, c := x.re.SinCos()
	return x.chain(sinRule(s, c))
}
func (x DualVec[F, A]) Cos() DualVec[F, A] {
	s, c := x.re.SinCos()
	return x.chain(cosRule(s, c))
}
func (x DualVec[F, A]) Tan() DualVec[F, A] { return x.chain(tanRule(x.re)) }
func (x DualVec[F, A]) SinCos() (DualVec[F, A], DualVec[F, A]) {
	s, c := x.re.SinCos()
	return x.chain(sinRule(s, c)), x.chain(cosRule(s, c))
}
func (x DualVec[F, A]) Asin() DualVec[F, A] { return x.chain(asinRule(x.re)) }
func (x DualVec[F, A]) Acos() DualVec[F, A] { return x.chain(acosRule(x.re)) }
func (x DualVec[F, A]) Atan() DualVec[F, A] { return x.chain(atanRule(x.re)) }

func (x DualVec[F, A]) Sinh() DualVec[F, A]  { return x.chain(sinhRule(x.re)) }
func (x DualVec[F, A]) Cosh() DualVec[F, A]  { return x.chain(coshRule(x.re)) }
func (x DualVec[F, A]) Tanh() DualVec[F, A]  { return x.chain(tanhRule(x.re)) }
func (x DualVec[F, A]) Asinh() DualVec[F, A] { return x.chain(asinhRule(x.re)) }
func (x DualVec[F, A]) Acosh() DualVec[F, A] { return x.chain(acoshRule(x.re)) }
func (x DualVec[F, A]) Atanh() DualVec[F, A] { return x.chain(atanhRule(x.re)) }

func (x DualVec[F, A]) SphJ0() DualVec[F, A] { return sphJ0(x) }
func (x DualVec[F, A]) SphJ1() DualVec[F, A] { return sphJ1(x) }
func (x DualVec[F, A]) SphJ2() DualVec[F, A] { return sphJ2(x) }

func (x DualVec[F, A]) MulAdd(a, b DualVec[F, A]) DualVec[F, A] {
	r := x.Mul(a).Add(b)
	r.re = x.re.MulAdd(a.re, b.re)
	return r
}
