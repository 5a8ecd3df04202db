package hyperdual

import "fmt"

// ============================================================
// HyperDualVec: two direction groups and their mixed block
// ============================================================

// HyperDualVec carries a value, a gradient over len(A1) directions of the
// first group, a gradient over len(A2) directions of the second group, and the
// len(A1)×len(A2) block of mixed second partials between them.
//
// B holds the block rows; it must have len(A1) rows. Go cannot tie the two
// lengths in the type, so the constructors check it.
type HyperDualVec[F Number[F], A1 Array[F], A2 Array[F], B Block[A2]] struct {
	re       F
	eps1     Vec[F, A1]
	eps2     Vec[F, A2]
	eps1eps2 Mat[F, A2, B]
}

var _ Number[HyperDualVec[Real, [2]Real, [3]Real, [2][3]Real]] = HyperDualVec[Real, [2]Real, [3]Real, [2][3]Real]{}

func checkBlock(rows, dirs int) {
	if rows != dirs {
		panic(fmt.Sprintf("hyperdual: mixed block has %d rows, first group has %d directions", rows, dirs))
	}
}

func NewHyperDualVec[F Number[F], A1 Array[F], A2 Array[F], B Block[A2]](re F, eps1 Vec[F, A1], eps2 Vec[F, A2], eps1eps2 Mat[F, A2, B]) HyperDualVec[F, A1, A2, B] {
	checkBlock(eps1eps2.Rows(), eps1.Len())
	return HyperDualVec[F, A1, A2, B]{re, eps1, eps2, eps1eps2}
}

// HyperDualVecFromRe returns re with every derivative part zero. The shapes
// cannot be inferred: HyperDualVecFromRe[[2]Real, [3]Real, [2][3]Real](x).
func HyperDualVecFromRe[A1 Array[F], A2 Array[F], B Block[A2], F Number[F]](re F) HyperDualVec[F, A1, A2, B] {
	var (
		a A1
		b B
	)
	checkBlock(len(b), len(a))
	return HyperDualVec[F, A1, A2, B]{re: re}
}

func (x HyperDualVec[F, A1, A2, B]) Re() F                   { return x.re }
func (x HyperDualVec[F, A1, A2, B]) Eps1() Vec[F, A1]        { return x.eps1 }
func (x HyperDualVec[F, A1, A2, B]) Eps2() Vec[F, A2]        { return x.eps2 }
func (x HyperDualVec[F, A1, A2, B]) Eps1Eps2() Mat[F, A2, B] { return x.eps1eps2 }
func (x HyperDualVec[F, A1, A2, B]) Float64() float64        { return x.re.Float64() }

func (x HyperDualVec[F, A1, A2, B]) String() string {
	return formatCoeff(x.re) + " + " + x.eps1.String() + "ε1 + " +
		x.eps2.String() + "ε2 + " + x.eps1eps2.String() + "ε1ε2"
}

func (x HyperDualVec[F, A1, A2, B]) chain(d derivs[F]) HyperDualVec[F, A1, A2, B] {
	cross := outer[F, A1, A2, B](x.eps1, x.eps2)
	return HyperDualVec[F, A1, A2, B]{
		re:   d[0],
		eps1: vecScale(x.eps1, d[1]),
		eps2: vecScale(x.eps2, d[1]),
		eps1eps2: matZip(x.eps1eps2, cross, func(e12, e1e2 F) F {
			return d[1].Mul(e12).Add(d[2].Mul(e1e2))
		}),
	}
}

func (x HyperDualVec[F, A1, A2, B]) Add(y HyperDualVec[F, A1, A2, B]) HyperDualVec[F, A1, A2, B] {
	return HyperDualVec[F, A1, A2, B]{
		x.re.Add(y.re), vecAdd(x.eps1, y.eps1), vecAdd(x.eps2, y.eps2), matAdd(x.eps1eps2, y.eps1eps2),
	}
}

func (x HyperDualVec[F, A1, A2, B]) Sub(y HyperDualVec[F, A1, A2, B]) HyperDualVec[F, A1, A2, B] {
	return HyperDualVec[F, A1, A2, B]{
		x.re.Sub(y.re), vecSub(x.eps1, y.eps1), vecSub(x.eps2, y.eps2), matSub(x.eps1eps2, y.eps1eps2),
	}
}

func (x HyperDualVec[F, A1, A2, B]) Neg() HyperDualVec[F, A1, A2, B] {
	return HyperDualVec[F, A1, A2, B]{
		x.re.Neg(), vecMap(x.eps1, neg[F]), vecMap(x.eps2, neg[F]), matMap(x.eps1eps2, neg[F]),
	}
}

func (x HyperDualVec[F, A1, A2, B]) Mul(y HyperDualVec[F, A1, A2, B]) HyperDualVec[F, A1, A2, B] {
	ab := outer[F, A1, A2, B](x.eps1, y.eps2)
	ba := outer[F, A1, A2, B](y.eps1, x.eps2)
	e12 := matZip(x.eps1eps2, y.eps1eps2, func(xe, ye F) F {
		return x.re.Mul(ye).Add(xe.Mul(y.re))
	})
	return HyperDualVec[F, A1, A2, B]{
		re:       x.re.Mul(y.re),
		eps1:     vecLinear(y.eps1, x.re, x.eps1, y.re),
		eps2:     vecLinear(y.eps2, x.re, x.eps2, y.re),
		eps1eps2: matAdd(e12, matAdd(ab, ba)),
	}
}

func (x HyperDualVec[F, A1, A2, B]) Div(y HyperDualVec[F, A1, A2, B]) HyperDualVec[F, A1, A2, B] {
	return x.Mul(y.Recip())
}

func (x HyperDualVec[F, A1, A2, B]) AddScalar(c float64) HyperDualVec[F, A1, A2, B] {
	x.re = x.re.AddScalar(c)
	return x
}

func (x HyperDualVec[F, A1, A2, B]) SubScalar(c float64) HyperDualVec[F, A1, A2, B] {
	x.re = x.re.SubScalar(c)
	return x
}

func (x HyperDualVec[F, A1, A2, B]) Scale(c float64) HyperDualVec[F, A1, A2, B] {
	s := func(e F) F { return e.Scale(c) }
	return HyperDualVec[F, A1, A2, B]{x.re.Scale(c), vecMap(x.eps1, s), vecMap(x.eps2, s), matMap(x.eps1eps2, s)}
}

func (x HyperDualVec[F, A1, A2, B]) DivScalar(c float64) HyperDualVec[F, A1, A2, B] {
	s := func(e F) F { return e.DivScalar(c) }
	return HyperDualVec[F, A1, A2, B]{x.re.DivScalar(c), vecMap(x.eps1, s), vecMap(x.eps2, s), matMap(x.eps1eps2, s)}
}

func (x HyperDualVec[F, A1, A2, B]) Recip() HyperDualVec[F, A1, A2, B] {
	return x.chain(recipRule(x.re))
}

func (x HyperDualVec[F, A1, A2, B]) Powi(n int) HyperDualVec[F, A1, A2, B] {
	return pow(x, float64(n), func() HyperDualVec[F, A1, A2, B] { return x.chain(powiRule(x.re, n)) })
}

func (x HyperDualVec[F, A1, A2, B]) Powf(n float64) HyperDualVec[F, A1, A2, B] {
	return pow(x, n, func() HyperDualVec[F, A1, A2, B] { return x.chain(powfRule(x.re, n)) })
}

func (x HyperDualVec[F, A1, A2, B]) Powd(n HyperDualVec[F, A1, A2, B]) HyperDualVec[F, A1, A2, B] {
	return powd(x, n)
}

func (x HyperDualVec[F, A1, A2, B]) Sqrt() HyperDualVec[F, A1, A2, B] { return x.chain(sqrtRule(x.re)) }
func (x HyperDualVec[F, A1, A2, B]) Cbrt() HyperDualVec[F, A1, A2, B] { return x.chain(cbrtRule(x.re)) }

func (x HyperDualVec[F, A1, A2, B]) Exp() HyperDualVec[F, A1, A2, B]  { return x.chain(expRule(x.re)) }
func (x HyperDualVec[F, A1, A2, B]) Exp2() HyperDualVec[F, A1, A2, B] { return x.chain(exp2Rule(x.re)) }
func (x HyperDualVec[F, A1, A2, B]) Expm1() HyperDualVec[F, A1, A2, B] {
	return x.chain(expm1Rule(x.re))
}
func (x HyperDualVec[F, A1, A2, B]) Ln() HyperDualVec[F, A1, A2, B] { return x.chain(lnRule(x.re)) }
func (x HyperDualVec[F, A1, A2, B]) LogBase(base float64) HyperDualVec[F, A1, A2, B] {
	return x.chain(logBaseRule(x.re, base))
}
func (x HyperDualVec[F, A1, A2, B]) Log2() HyperDualVec[F, A1, A2, B] { return x.chain(log2Rule(x.re)) }
func (x HyperDualVec[F, A1, A2, B]) Log10() HyperDualVec[F, A1, A2, B] {
	return x.chain(log10Rule(x.re))
}
func (x HyperDualVec[F, A1, A2, B]) Ln1p() HyperDualVec[F, A1, A2, B] { return x.chain(ln1pRule(x.re)) }

func (x HyperDualVec[F, A1, A2, B]) Sin() HyperDualVec[F, A1, A2, B] {
	s, c := x.re.SinCos()
	return x.chain(sinRule(s, c))
}

func (x HyperDualVec[F, A1, A2, B]) Cos() HyperDualVec[F, A1, A2, B] {
	s, c := x.re.SinCos()
	return x.chain(cosRule(s, c))
}

func (x HyperDualVec[F, A1, A2, B]) Tan() HyperDualVec[F, A1, A2, B] { return x.chain(tanRule(x.re)) }

func (x HyperDualVec[F, A1, A2, B]) SinCos() (HyperDualVec[F, A1, A2, B], HyperDualVec[F, A1, A2, B]) {
	s, c := x.re.SinCos()
	return x.chain(sinRule(s, c)), x.chain(cosRule(s, c))
}

func (x HyperDualVec[F, A1, A2, B]) Asin() HyperDualVec[F, A1, A2, B] { return x.chain(asinRule(x.re)) }
func (x HyperDualVec[F, A1, A2, B]) Acos() HyperDualVec[F, A1, A2, B] { return x.chain(acosRule(x.re)) }
func (x HyperDualVec[F, A1, A2, B]) Atan() HyperDualVec[F, A1, A2, B] { return x.chain(atanRule(x.re)) }

func (x HyperDualVec[F, A1, A2, B]) Sinh() HyperDualVec[F, A1, A2, B] { return x.chain(sinhRule(x.re)) }
func (x HyperDualVec[F, A1, A2, B]) Cosh() HyperDualVec[F, A1, A2, B] { return x.chain(coshRule(x.re)) }
func (x HyperDualVec[F, A1, A2, B]) Tanh() HyperDualVec[F, A1, A2, B] { return x.chain(tanhRule(x.re)) }
func (x HyperDualVec[F, A1, A2, B]) Asinh() HyperDualVec[F, A1, A2, B] {
	return x.chain(asinhRule(x.re))
}
func (x HyperDualVec[F, A1, A2, B]) Acosh() HyperDualVec[F, A1, A2, B] {
	return x.chain(acoshRule(x.re))
}
func (x HyperDualVec[F, A1, A2, B]) Atanh() HyperDualVec[F, A1, A2, B] {
	return x.chain(atanhRule(x.re))
}

func (x HyperDualVec[F, A1, A2, B]) SphJ0() HyperDualVec[F, A1, A2, B] { return sphJ0(x) }
func (x HyperDualVec[F, A1, A2, B]) SphJ1() HyperDualVec[F, A1, A2, B] { return sphJ1(x) }
func (x HyperDualVec[F, A1, A2, B]) SphJ2() HyperDualVec[F, A1, A2, B] { return sphJ2(x) }

func (x HyperDualVec[F, A1, A2, B]) MulAdd(a, b HyperDualVec[F, A1, A2, B]) HyperDualVec[F, A1, A2, B] {
	r := x.Mul(a).Add(b)
	r.re = x.re.MulAdd(a.re, b.re)
	return r
}
