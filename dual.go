package hyperdual

// ============================================================
// Dual: value and first derivative
// ============================================================

// Dual is a dual number re + eps·ε with ε² = 0.
type Dual[F Number[F]] struct{ re, eps F }

type (
	Dual64     = Dual[Real]
	DualDual64 = Dual[Dual64]
)

func NewDual[F Number[F]](re, eps F) Dual[F] { return Dual[F]{re: re, eps: eps} }

// DualFromRe returns re with a zero derivative part.
func DualFromRe[F Number[F]](re F) Dual[F] { return Dual[F]{re: re} }

func NewDual64(re, eps float64) Dual64 { return Dual64{re: Real(re), eps: Real(eps)} }

func (x Dual[F]) Re() F            { return x.re }
func (x Dual[F]) Eps() F           { return x.eps }
func (x Dual[F]) Float64() float64 { return x.re.Float64() }
func (x Dual[F]) String() string {
	return formatCoeff(x.re) + " + " + formatCoeff(x.eps) + "ε"
}

func (x Dual[F]) chain(d derivs[F]) Dual[F] {
	return Dual[F]{re: d[0], eps: d[1].Mul(x.eps)}
}

func (x Dual[F]) Add(y Dual[F]) Dual[F] { return Dual[F]{x.re.Add(y.re), x.eps.Add(y.eps)} }
func (x Dual[F]) Sub(y Dual[F]) Dual[F] { return Dual[F]{x.re.Sub(y.re), x.eps.Sub(y.eps)} }
func (x Dual[F]) Neg() Dual[F]          { return Dual[F]{x.re.Neg(), x.eps.Neg()} }
func (x Dual[F]) Mul(y Dual[F]) Dual[F] {
	return Dual[F]{x.re.Mul(y.re), x.re.Mul(y.eps).Add(x.eps.Mul(y.re))}
}
func (x Dual[F]) Div(y Dual[F]) Dual[F] { return x.Mul(y.Recip()) }

func (x Dual[F]) AddScalar(c float64) Dual[F] { return Dual[F]{x.re.AddScalar(c), x.eps} }
func (x Dual[F]) SubScalar(c float64) Dual[F] { return Dual[F]{x.re.SubScalar(c), x.eps} }
func (x Dual[F]) Scale(c float64) Dual[F]     { return Dual[F]{x.re.Scale(c), x.eps.Scale(c)} }
func (x Dual[F]) DivScalar(c float64) Dual[F] {
	return Dual[F]{x.re.DivScalar(c), x.eps.DivScalar(c)}
}

func (x Dual[F]) Recip() Dual[F] { return x.chain(recipRule(x.re)) }
func (x Dual[F]) Powi(n int) Dual[F] {
	return pow(x, float64(n), func() Dual[F] { return x.chain(powiRule(x.re, n)) })
}
func (x Dual[F]) Powf(n float64) Dual[F] {
	return pow(x, n, func() Dual[F] { return x.chain(powfRule(x.re, n)) })
}
func (x Dual[F]) Powd(n Dual[F]) Dual[F] { return powd(x, n) }
func (x Dual[F]) Sqrt() Dual[F]          { return x.chain(sqrtRule(x.re)) }
func (x Dual[F]) Cbrt() Dual[F]          { return x.chain(cbrtRule(x.re)) }

func (x Dual[F]) Exp() Dual[F]                 { return x.chain(expRule(x.re)) }
func (x Dual[F]) Exp2() Dual[F]                { return x.chain(exp2Rule(x.re)) }
func (x Dual[F]) Expm1() Dual[F]               { return x.chain(expm1Rule(x.re)) }
func (x Dual[F]) Ln() Dual[F]                  { return x.chain(lnRule(x.re)) }
func (x Dual[F]) LogBase(base float64) Dual[F] { return x.chain(logBaseRule(x.re, base)) }
func (x Dual[F]) Log2() Dual[F]                { return x.chain(log2Rule(x.re)) }
func (x Dual[F]) Log10() Dual[F]               { return x.chain(log10Rule(x.re)) }
func (x Dual[F]) Ln1p() Dual[F]                { return x.chain(ln1pRule(x.re)) }

func (x Dual[F]) Sin() Dual[F] {
	s, c := x.re.SinCos()
	return x.chain(sinRule(s, c))
}
func (x Dual[F]) Cos() Dual[F] {
	s, c := x.re.SinCos()
	return x.chain(cosRule(s, c))
}
func (x Dual[F]) Tan() Dual[F] { return x.chain(tanRule(x.re)) }
func (x Dual[F]) SinCos() (Dual[F], Dual[F]) {
	s, c := x.re.SinCos()
	return x.chain(sinRule(s, c)), x.chain(cosRule(s, c))
}
func (x Dual[F]) Asin() Dual[F] { return x.chain(asinRule(x.re)) }
func (x Dual[F]) Acos() Dual[F] { return x.chain(acosRule(x.re)) }
func (x Dual[F]) Atan() Dual[F] { return x.chain(atanRule(x.re)) }

func (x Dual[F]) Sinh() Dual[F]  { return x.chain(sinhRule(x.re)) }
func (x Dual[F]) Cosh() Dual[F]  { return x.chain(coshRule(x.re)) }
func (x Dual[F]) Tanh() Dual[F]  { return x.chain(tanhRule(x.re)) }
func (x Dual[F]) Asinh() Dual[F] { return x.chain(asinhRule(x.re)) }
func (x Dual[F]) Acosh() Dual[F] { return x.chain(acoshRule(x.re)) }
func (x Dual[F]) Atanh() Dual[F] { return x.chain(atanhRule(x.re)) }

func (x Dual[F]) SphJ0() Dual[F] { return sphJ0(x) }
func (x Dual[F]) SphJ1() Dual[F] { return sphJ1(x) }
func (x Dual[F]) SphJ2() Dual[F] { return sphJ2(x) }

// MulAdd returns x*a + b, rounding the real part once.
func (x Dual[F]) MulAdd(a, b Dual[F]) Dual[F] {
	r := x.Mul(a).Add(b)
	r.re = x.re.MulAdd(a.re, b.re)
	return r
}
