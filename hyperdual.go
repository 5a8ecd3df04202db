package hyperdual

// ============================================================
// HyperDual: two directions and their cross term
// ============================================================

// HyperDual is re + eps1·ε1 + eps2·ε2 + eps1eps2·ε1ε2 with ε1² = ε2² = 0.
// eps1eps2 holds the mixed second partial between the two directions.
type HyperDual[F Number[F]] struct{ re, eps1, eps2, eps1eps2 F }

type (
	HyperDual64     = HyperDual[Real]
	HyperDualDual64 = HyperDual[Dual64]
)

func NewHyperDual[F Number[F]](re, eps1, eps2, eps1eps2 F) HyperDual[F] {
	return HyperDual[F]{re, eps1, eps2, eps1eps2}
}

// HyperDualFromRe returns re with every derivative part zero.
func HyperDualFromRe[F Number[F]](re F) HyperDual[F] { return HyperDual[F]{re: re} }

func NewHyperDual64(re, eps1, eps2, eps1eps2 float64) HyperDual64 {
	return HyperDual64{Real(re), Real(eps1), Real(eps2), Real(eps1eps2)}
}

func (x HyperDual[F]) Re() F            { return x.re }
func (x HyperDual[F]) Eps1() F          { return x.eps1 }
func (x HyperDual[F]) Eps2() F          { return x.eps2 }
func (x HyperDual[F]) Eps1Eps2() F      { return x.eps1eps2 }
func (x HyperDual[F]) Float64() float64 { return x.re.Float64() }

func (x HyperDual[F]) String() string {
	return formatCoeff(x.re) + " + " + formatCoeff(x.eps1) + "ε1 + " +
		formatCoeff(x.eps2) + "ε2 + " + formatCoeff(x.eps1eps2) + "ε1ε2"
}

func (x HyperDual[F]) chain(d derivs[F]) HyperDual[F] {
	return HyperDual[F]{
		re:       d[0],
		eps1:     d[1].Mul(x.eps1),
		eps2:     d[1].Mul(x.eps2),
		eps1eps2: d[1].Mul(x.eps1eps2).Add(d[2].Mul(x.eps1).Mul(x.eps2)),
	}
}

func (x HyperDual[F]) Add(y HyperDual[F]) HyperDual[F] {
	return HyperDual[F]{x.re.Add(y.re), x.eps1.Add(y.eps1), x.eps2.Add(y.eps2), x.eps1eps2.Add(y.eps1eps2)}
}

func (x HyperDual[F]) Sub(y HyperDual[F]) HyperDual[F] {
	return HyperDual[F]{x.re.Sub(y.re), x.eps1.Sub(y.eps1), x.eps2.Sub(y.eps2), x.eps1eps2.Sub(y.eps1eps2)}
}

func (x HyperDual[F]) Neg() HyperDual[F] {
	return HyperDual[F]{x.re.Neg(), x.eps1.Neg(), x.eps2.Neg(), x.eps1eps2.Neg()}
}

func (x HyperDual[F]) Mul(y HyperDual[F]) HyperDual[F] {
	return HyperDual[F]{
		re:   x.re.Mul(y.re),
		eps1: x.re.Mul(y.eps1).Add(x.eps1.Mul(y.re)),
		eps2: x.re.Mul(y.eps2).Add(x.eps2.Mul(y.re)),
		eps1eps2: x.re.Mul(y.eps1eps2).
			Add(x.eps1.Mul(y.eps2)).
			Add(x.eps2.Mul(y.eps1)).
			Add(x.eps1eps2.Mul(y.re)),
	}
}

func (x HyperDual[F]) Div(y HyperDual[F]) HyperDual[F] { return x.Mul(y.Recip()) }

func (x HyperDual[F]) AddScalar(c float64) HyperDual[F] {
	x.re = x.re.AddScalar(c)
	return x
}

func (x HyperDual[F]) SubScalar(c float64) HyperDual[F] {
	x.re = x.re.SubScalar(c)
	return x
}

func (x HyperDual[F]) Scale(c float64) HyperDual[F] {
	return HyperDual[F]{x.re.Scale(c), x.eps1.Scale(c), x.eps2.Scale(c), x.eps1eps2.Scale(c)}
}

func (x HyperDual[F]) DivScalar(c float64) HyperDual[F] {
	return HyperDual[F]{x.re.DivScalar(c), x.eps1.DivScalar(c), x.eps2.DivScalar(c), x.eps1eps2.DivScalar(c)}
}

func (x HyperDual[F]) Recip() HyperDual[F] { return x.chain(recipRule(x.re)) }
func (x HyperDual[F]) Powi(n int) HyperDual[F] {
	return pow(x, float64(n), func() HyperDual[F] { return x.chain(powiRule(x.re, n)) })
}
func (x HyperDual[F]) Powf(n float64) HyperDual[F] {
	return pow(x, n, func() HyperDual[F] { return x.chain(powfRule(x.re, n)) })
}
func (x HyperDual[F]) Powd(n HyperDual[F]) HyperDual[F] { return powd(x, n) }
func (x HyperDual[F]) Sqrt() HyperDual[F]               { return x.chain(sqrtRule(x.re)) }
func (x HyperDual[F]) Cbrt() HyperDual[F]               { return x.chain(cbrtRule(x.re)) }

func (x HyperDual[F]) Exp() HyperDual[F]   { return x.chain(expRule(x.re)) }
func (x HyperDual[F]) Exp2() HyperDual[F]  { return x.chain(exp2Rule(x.re)) }
func (x HyperDual[F]) Expm1() HyperDual[F] { return x.chain(expm1Rule(x.re)) }
func (x HyperDual[F]) Ln() HyperDual[F]    { return x.chain(lnRule(x.re)) }
func (x HyperDual[F]) LogBase(base float64) HyperDual[F] {
	return x.chain(logBaseRule(x.re, base))
}
func (x HyperDual[F]) Log2() HyperDual[F]  { return x.chain(log2Rule(x.re)) }
func (x HyperDual[F]) Log10() HyperDual[F] { return x.chain(log10Rule(x.re)) }
func (x HyperDual[F]) Ln1p() HyperDual[F]  { return x.chain(ln1pRule(x.re)) }

func (x HyperDual[F]) Sin() HyperDual[F] {
	s, c := x.re.SinCos()
	return x.chain(sinRule(s, c))
}
func (x HyperDual[F]) Cos() HyperDual[F] {
	s, c := x.re.SinCos()
	return x.chain(cosRule(s, c))
}
func (x HyperDual[F]) Tan() HyperDual[F] { return x.chain(tanRule(x.re)) }
func (x HyperDual[F]) SinCos() (HyperDual[F], HyperDual[F]) {
	s, c := x.re.SinCos()
	return x.chain(sinRule(s, c)), x.chain(cosRule(s, c))
}
func (x HyperDual[F]) Asin() HyperDual[F] { return x.chain(asinRule(x.re)) }
func (x HyperDual[F]) Acos() HyperDual[F] { return x.chain(acosRule(x.re)) }
func (x HyperDual[F]) Atan() HyperDual[F] { return x.chain(atanRule(x.re)) }

func (x HyperDual[F]) Sinh() HyperDual[F]  { return x.chain(sinhRule(x.re)) }
func (x HyperDual[F]) Cosh() HyperDual[F]  { return x.chain(coshRule(x.re)) }
func (x HyperDual[F]) Tanh() HyperDual[F]  { return x.chain(tanhRule(x.re)) }
func (x HyperDual[F]) Asinh() HyperDual[F] { return x.chain(asinhRule(x.re)) }
func (x HyperDual[F]) Acosh() HyperDual[F] { return x.chain(acoshRule(x.re)) }
func (x HyperDual[F]) Atanh() HyperDual[F] { return x.chain(atanhRule(x.re)) }

func (x HyperDual[F]) SphJ0() HyperDual[F] { return sphJ0(x) }
func (x HyperDual[F]) SphJ1() HyperDual[F] { return sphJ1(x) }
func (x HyperDual[F]) SphJ2() HyperDual[F] { return sphJ2(x) }

func (x HyperDual[F]) MulAdd(a, b HyperDual[F]) HyperDual[F] {
	r := x.Mul(a).Add(b)
	r.re = x.re.MulAdd(a.re, b.re)
	return r
}
