package hyperdual

// ============================================================
// ThirdOrderJet: first three derivatives of one variable
// ============================================================

// ThirdOrderJet carries f and its first three derivatives with respect to a
// single variable. v1, v2 and v3 are derivatives, not Taylor coefficients.
type ThirdOrderJet[F Number[F]] struct{ v0, v1, v2, v3 F }

type (
	ThirdOrderJet64     = ThirdOrderJet[Real]
	ThirdOrderJetDual64 = ThirdOrderJet[Dual64]
)

func NewThirdOrderJet[F Number[F]](v0, v1, v2, v3 F) ThirdOrderJet[F] {
	return ThirdOrderJet[F]{v0, v1, v2, v3}
}

// ThirdOrderJetFromRe returns v0 with every derivative zero.
func ThirdOrderJetFromRe[F Number[F]](v0 F) ThirdOrderJet[F] { return ThirdOrderJet[F]{v0: v0} }

func NewThirdOrderJet64(v0, v1, v2, v3 float64) ThirdOrderJet64 {
	return ThirdOrderJet64{Real(v0), Real(v1), Real(v2), Real(v3)}
}

func (x ThirdOrderJet[F]) Re() F            { return x.v0 }
func (x ThirdOrderJet[F]) V1() F            { return x.v1 }
func (x ThirdOrderJet[F]) V2() F            { return x.v2 }
func (x ThirdOrderJet[F]) V3() F            { return x.v3 }
func (x ThirdOrderJet[F]) Float64() float64 { return x.v0.Float64() }

func (x ThirdOrderJet[F]) String() string {
	return formatCoeff(x.v0) + " + " + formatCoeff(x.v1) + "ε1 + " +
		formatCoeff(x.v2) + "ε2 + " + formatCoeff(x.v3) + "ε3"
}

// chain applies Faà di Bruno's formula through third order.
func (x ThirdOrderJet[F]) chain(d derivs[F]) ThirdOrderJet[F] {
	x1sq := x.v1.Mul(x.v1)
	return ThirdOrderJet[F]{
		v0: d[0],
		v1: d[1].Mul(x.v1),
		v2: d[2].Mul(x1sq).Add(d[1].Mul(x.v2)),
		v3: d[3].Mul(x1sq).Mul(x.v1).
			Add(d[2].Mul(x.v1).Mul(x.v2).Scale(3)).
			Add(d[1].Mul(x.v3)),
	}
}

func (x ThirdOrderJet[F]) Add(y ThirdOrderJet[F]) ThirdOrderJet[F] {
	return ThirdOrderJet[F]{x.v0.Add(y.v0), x.v1.Add(y.v1), x.v2.Add(y.v2), x.v3.Add(y.v3)}
}

func (x ThirdOrderJet[F]) Sub(y ThirdOrderJet[F]) ThirdOrderJet[F] {
	return ThirdOrderJet[F]{x.v0.Sub(y.v0), x.v1.Sub(y.v1), x.v2.Sub(y.v2), x.v3.Sub(y.v3)}
}

func (x ThirdOrderJet[F]) Neg() ThirdOrderJet[F] {
	return ThirdOrderJet[F]{x.v0.Neg(), x.v1.Neg(), x.v2.Neg(), x.v3.Neg()}
}

// Mul applies the Leibniz rule.
func (x ThirdOrderJet[F]) Mul(y ThirdOrderJet[F]) ThirdOrderJet[F] {
	return ThirdOrderJet[F]{
		v0: x.v0.Mul(y.v0),
		v1: x.v0.Mul(y.v1).Add(x.v1.Mul(y.v0)),
		v2: x.v0.Mul(y.v2).Add(x.v1.Mul(y.v1).Scale(2)).Add(x.v2.Mul(y.v0)),
		v3: x.v0.Mul(y.v3).
			Add(x.v1.Mul(y.v2).Scale(3)).
			Add(x.v2.Mul(y.v1).Scale(3)).
			Add(x.v3.Mul(y.v0)),
	}
}

func (x ThirdOrderJet[F]) Div(y ThirdOrderJet[F]) ThirdOrderJet[F] { return x.Mul(y.Recip()) }

func (x ThirdOrderJet[F]) AddScalar(c float64) ThirdOrderJet[F] {
	x.v0 = x.v0.AddScalar(c)
	return x
}

func (x ThirdOrderJet[F]) SubScalar(c float64) ThirdOrderJet[F] {
	x.v0 = x.v0.SubScalar(c)
	return x
}

func (x ThirdOrderJet[F]) Scale(c float64) ThirdOrderJet[F] {
	return ThirdOrderJet[F]{x.v0.Scale(c), x.v1.Scale(c), x.v2.Scale(c), x.v3.Scale(c)}
}

func (x ThirdOrderJet[F]) DivScalar(c float64) ThirdOrderJet[F] {
	return ThirdOrderJet[F]{x.v0.DivScalar(c), x.v1.DivScalar(c), x.v2.DivScalar(c), x.v3.DivScalar(c)}
}

func (x ThirdOrderJet[F]) Recip() ThirdOrderJet[F] { return x.chain(recipRule(x.v0)) }
func (x ThirdOrderJet[F]) Powi(n int) ThirdOrderJet[F] {
	return pow(x, float64(n), func() ThirdOrderJet[F] { return x.chain(powiRule(x.v0, n)) })
}
func (x ThirdOrderJet[F]) Powf(n float64) ThirdOrderJet[F] {
	return pow(x, n, func() ThirdOrderJet[F] { return x.chain(powfRule(x.v0, n)) })
}
func (x ThirdOrderJet[F]) Powd(n ThirdOrderJet[F]) ThirdOrderJet[F] { return powd(x, n) }
func (x ThirdOrderJet[F]) Sqrt() ThirdOrderJet[F]                   { return x.chain(sqrtRule(x.v0)) }
func (x ThirdOrderJet[F]) Cbrt() ThirdOrderJet[F]                   { return x.chain(cbrtRule(x.v0)) }

func (x ThirdOrderJet[F]) Exp() ThirdOrderJet[F]   { return x.chain(expRule(x.v0)) }
func (x ThirdOrderJet[F]) Exp2() ThirdOrderJet[F]  { return x.chain(exp2Rule(x.v0)) }
func (x ThirdOrderJet[F]) Expm1() ThirdOrderJet[F] { return x.chain(expm1Rule(x.v0)) }
func (x ThirdOrderJet[F]) Ln() ThirdOrderJet[F]    { return x.chain(lnRule(x.v0)) }
func (x ThirdOrderJet[F]) LogBase(base float64) ThirdOrderJet[F] {
	return x.chain(logBaseRule(x.v0, base))
}
func (x ThirdOrderJet[F]) Log2() ThirdOrderJet[F]  { return x.chain(log2Rule(x.v0)) }
func (x ThirdOrderJet[F]) Log10() ThirdOrderJet[F] { return x.chain(log10Rule(x.v0)) }
func (x ThirdOrderJet[F]) Ln1p() ThirdOrderJet[F]  { return x.chain(ln1pRule(x.v0)) }

func (x ThirdOrderJet[F]) Sin() ThirdOrderJet[F] {
	s, c := x.v0.SinCos()
	return x.chain(sinRule(s, c))
}
func (x ThirdOrderJet[F]) Cos() ThirdOrderJet[F] {
	s, c := x.v0.SinCos()
	return x.chain(cosRule(s, c))
}
func (x ThirdOrderJet[F]) Tan() ThirdOrderJet[F] { return x.chain(tanRule(x.v0)) }
func (x ThirdOrderJet[F]) SinCos() (ThirdOrderJet[F], ThirdOrderJet[F]) {
	s, c := x.v0.SinCos()
	return x.chain(sinRule(s, c)), x.chain(cosRule(s, c))
}
func (x ThirdOrderJet[F]) Asin() ThirdOrderJet[F] { return x.chain(asinRule(x.v0)) }
func (x ThirdOrderJet[F]) Acos() ThirdOrderJet[F] { return x.chain(acosRule(x.v0)) }
func (x ThirdOrderJet[F]) Atan() ThirdOrderJet[F] { return x.chain(atanRule(x.v0)) }

func (x ThirdOrderJet[F]) Sinh() ThirdOrderJet[F]  { return x.chain(sinhRule(x.v0)) }
func (x ThirdOrderJet[F]) Cosh() ThirdOrderJet[F]  { return x.chain(coshRule(x.v0)) }
func (x ThirdOrderJet[F]) Tanh() ThirdOrderJet[F]  { return x.chain(tanhRule(x.v0)) }
func (x ThirdOrderJet[F]) Asinh() ThirdOrderJet[F] { return x.chain(asinhRule(x.v0)) }
func (x ThirdOrderJet[F]) Acosh() ThirdOrderJet[F] { return x.chain(acoshRule(x.v0)) }
func (x ThirdOrderJet[F]) Atanh() ThirdOrderJet[F] { return x.chain(atanhRule(x.v0)) }

func (x ThirdOrderJet[F]) SphJ0() ThirdOrderJet[F] { return sphJ0(x) }
func (x ThirdOrderJet[F]) SphJ1() ThirdOrderJet[F] { return sphJ1(x) }
func (x ThirdOrderJet[F]) SphJ2() ThirdOrderJet[F] { return sphJ2(x) }

func (x ThirdOrderJet[F]) MulAdd(a, b ThirdOrderJet[F]) ThirdOrderJet[F] {
	r := x.Mul(a).Add(b)
	r.v0 = x.v0.MulAdd(a.v0, b.v0)
	return r
}
