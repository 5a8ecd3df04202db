// Package hyperdual provides forward-mode automatic differentiation for Go.
//
// Design goals:
//   - Exact derivatives to machine precision, no finite differencing
//   - First, second and third order jets, scalar and fixed-size vector
//   - Jets of jets through a generic coefficient field
//   - Allocation-free value types with a stable text rendering
//
// A jet carries a function value together with its truncated Taylor structure.
// Seed the inputs (see SeedDual, SeedHyperDual, Derive1, ...), evaluate an
// ordinary expression over them, and read the derivatives off the result:
//
//	x := hyperdual.SeedDual(hyperdual.Real(2))
//	y := x.Powi(3)           // 8 + 12ε
//	fmt.Println(y.Eps())     // 12
package hyperdual

import (
	"fmt"
	"math"
)

// ============================================================
// Capability set
// ============================================================

// Number is the numeric capability set every jet type and the Real leaf
// implement. All arithmetic and elementary rules are written against it, which
// is what lets a jet use another jet as its coefficient field.
type Number[T any] interface {
	fmt.Stringer

	// Float64 returns the innermost real part.
	Float64() float64

	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	AddScalar(float64) T
	SubScalar(float64) T
	Scale(float64) T
	DivScalar(float64) T

	Recip() T
	Powi(n int) T
	Powf(n float64) T
	Powd(n T) T
	Sqrt() T
	Cbrt() T

	Exp() T
	Exp2() T
	Expm1() T
	Ln() T
	LogBase(base float64) T
	Log2() T
	Log10() T
	Ln1p() T

	Sin() T
	Cos() T
	Tan() T
	SinCos() (T, T)
	Asin() T
	Acos() T
	Atan() T

	Sinh() T
	Cosh() T
	Tanh() T
	Asinh() T
	Acosh() T
	Atanh() T

	SphJ0() T
	SphJ1() T
	SphJ2() T

	MulAdd(a, b T) T
}

// Jet is the type-erased view of any value produced by this package. The
// dynamic seeding functions return it; callers type-assert to the concrete
// instantiation documented on each function.
type Jet interface {
	fmt.Stringer
	Float64() float64
}

func zero[F any]() F {
	var z F
	return z
}

func one[F Number[F]]() F { return zero[F]().AddScalar(1) }

// ============================================================
// Real: float64 leaf of every jet
// ============================================================

// Real is a float64 that implements Number. It is the coefficient field at the
// bottom of every jet.
type Real float64

var (
	_ Number[Real]                = Real(0)
	_ Number[Dual64]              = Dual64{}
	_ Number[HyperDual64]         = HyperDual64{}
	_ Number[ThirdOrderJet64]     = ThirdOrderJet64{}
	_ Number[HyperDualDual64]     = HyperDualDual64{}
	_ Number[ThirdOrderJetDual64] = ThirdOrderJetDual64{}
)

func (x Real) Float64() float64 { return float64(x) }
func (x Real) String() string   { return formatFloat(float64(x)) }

func (x Real) Add(y Real) Real          { return x + y }
func (x Real) Sub(y Real) Real          { return x - y }
func (x Real) Mul(y Real) Real          { return x * y }
func (x Real) Div(y Real) Real          { return x / y }
func (x Real) Neg() Real                { return -x }
func (x Real) AddScalar(c float64) Real { return x + Real(c) }
func (x Real) SubScalar(c float64) Real { return x - Real(c) }
func (x Real) Scale(c float64) Real     { return x * Real(c) }
func (x Real) DivScalar(c float64) Real { return x / Real(c) }

func (x Real) Recip() Real         { return 1 / x }
func (x Real) Powi(n int) Real     { return Real(math.Pow(float64(x), float64(n))) }
func (x Real) Powf(n float64) Real { return Real(math.Pow(float64(x), n)) }
func (x Real) Powd(n Real) Real    { return Real(math.Pow(float64(x), float64(n))) }
func (x Real) Sqrt() Real          { return Real(math.Sqrt(float64(x))) }
func (x Real) Cbrt() Real          { return Real(math.Cbrt(float64(x))) }

func (x Real) Exp() Real   { return Real(math.Exp(float64(x))) }
func (x Real) Exp2() Real  { return Real(math.Exp2(float64(x))) }
func (x Real) Expm1() Real { return Real(math.Expm1(float64(x))) }
func (x Real) Ln() Real    { return Real(math.Log(float64(x))) }
func (x Real) Log2() Real  { return Real(math.Log2(float64(x))) }
func (x Real) Log10() Real { return Real(math.Log10(float64(x))) }
func (x Real) Ln1p() Real  { return Real(math.Log1p(float64(x))) }
func (x Real) LogBase(base float64) Real {
	return Real(math.Log(float64(x)) / math.Log(base))
}

func (x Real) Sin() Real { return Real(math.Sin(float64(x))) }
func (x Real) Cos() Real { return Real(math.Cos(float64(x))) }
func (x Real) Tan() Real { return Real(math.Tan(float64(x))) }
func (x Real) SinCos() (Real, Real) {
	s, c := math.Sincos(float64(x))
	return Real(s), Real(c)
}
func (x Real) Asin() Real { return Real(math.Asin(float64(x))) }
func (x Real) Acos() Real { return Real(math.Acos(float64(x))) }
func (x Real) Atan() Real { return Real(math.Atan(float64(x))) }

func (x Real) Sinh() Real  { return Real(math.Sinh(float64(x))) }
func (x Real) Cosh() Real  { return Real(math.Cosh(float64(x))) }
func (x Real) Tanh() Real  { return Real(math.Tanh(float64(x))) }
func (x Real) Asinh() Real { return Real(math.Asinh(float64(x))) }
func (x Real) Acosh() Real { return Real(math.Acosh(float64(x))) }
func (x Real) Atanh() Real { return Real(math.Atanh(float64(x))) }

func (x Real) SphJ0() Real { return sphJ0(x) }
func (x Real) SphJ1() Real { return sphJ1(x) }
func (x Real) SphJ2() Real { return sphJ2(x) }

// MulAdd returns x*a + b with a single rounding.
func (x Real) MulAdd(a, b Real) Real {
	return Real(math.FMA(float64(x), float64(a), float64(b)))
}
