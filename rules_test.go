package hyperdual_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/njchilds90/hyperdual"
)

// ============================================================
// Elementary rules against finite differences
// ============================================================

// elem applies one named elementary function to any Number.
func elem[T hyperdual.Number[T]](name string, x T) T {
	switch name {
	case "recip":
		return x.Recip()
	case "powi3":
		return x.Powi(3)
	case "powi-2":
		return x.Powi(-2)
	case "powf":
		return x.Powf(2.5)
	case "powd":
		return x.Powd(x)
	case "sqrt":
		return x.Sqrt()
	case "cbrt":
		return x.Cbrt()
	case "exp":
		return x.Exp()
	case "exp2":
		return x.Exp2()
	case "expm1":
		return x.Expm1()
	case "ln":
		return x.Ln()
	case "log_base":
		return x.LogBase(3)
	case "log2":
		return x.Log2()
	case "log10":
		return x.Log10()
	case "ln_1p":
		return x.Ln1p()
	case "sin":
		return x.Sin()
	case "cos":
		return x.Cos()
	case "tan":
		return x.Tan()
	case "asin":
		return x.Asin()
	case "acos":
		return x.Acos()
	case "atan":
		return x.Atan()
	case "sinh":
		return x.Sinh()
	case "cosh":
		return x.Cosh()
	case "tanh":
		return x.Tanh()
	case "asinh":
		return x.Asinh()
	case "acosh":
		return x.Acosh()
	case "atanh":
		return x.Atanh()
	case "sph_j0":
		return x.SphJ0()
	case "sph_j1":
		return x.SphJ1()
	case "sph_j2":
		return x.SphJ2()
	case "mul_add":
		return x.MulAdd(x, x.Sin())
	}
	panic("unknown function " + name)
}

var elemCases = []struct {
	name string
	at   float64
}{
	{"recip", 1.7},
	{"powi3", 1.3},
	{"powi-2", 0.8},
	{"powf", 1.4},
	{"powd", 1.3},
	{"sqrt", 2.1},
	{"cbrt", 1.9},
	{"cbrt", -1.9},
	{"exp", 0.7},
	{"exp2", 0.7},
	{"expm1", 0.3},
	{"ln", 2.3},
	{"log_base", 2.3},
	{"log2", 2.3},
	{"log10", 2.3},
	{"ln_1p", 0.4},
	{"sin", 0.9},
	{"cos", 0.9},
	{"tan", 0.6},
	{"asin", 0.3},
	{"acos", 0.3},
	{"atan", 0.8},
	{"sinh", 0.7},
	{"cosh", 0.7},
	{"tanh", 0.5},
	{"asinh", 0.9},
	{"acosh", 1.8},
	{"atanh", 0.4},
	{"sph_j0", 1.1},
	{"sph_j1", 1.1},
	{"sph_j2", 1.1},
	{"sph_j0", 0.6},
	{"sph_j1", 0.6},
	{"sph_j2", 0.6},
	{"mul_add", 0.6},
}

func plain(name string) func(float64) float64 {
	return func(x float64) float64 { return float64(elem(name, hyperdual.Real(x))) }
}

func second(name string) func(float64) float64 {
	return func(x float64) float64 {
		return float64(elem(name, hyperdual.SeedHyperDual(hyperdual.Real(x))).Eps1Eps2())
	}
}

// assertNear accepts got when it is within tol of want, absolutely or
// relative to the larger magnitude.
func assertNear(t *testing.T, want, got, tol float64, what string) {
	t.Helper()
	assert.Truef(t, scalar.EqualWithinAbsOrRel(got, want, tol, tol), "%s: want %v, got %v (tol %g)", what, want, got, tol)
}

func TestRules_FirstDerivative(t *testing.T) {
	for _, tc := range elemCases {
		got := elem(tc.name, hyperdual.SeedDual(hyperdual.Real(tc.at)))
		v := plain(tc.name)(tc.at)
		assertNear(t, v, got.Float64(), 1e-14, tc.name+" value")
		want := fd.Derivative(plain(tc.name), tc.at, &fd.Settings{Formula: fd.Central})
		assertNear(t, want, float64(got.Eps()), 1e-6, fmt.Sprintf("%s at %v", tc.name, tc.at))
	}
}

func TestRules_SecondDerivative(t *testing.T) {
	for _, tc := range elemCases {
		got := elem(tc.name, hyperdual.SeedHyperDual(hyperdual.Real(tc.at)))
		want := fd.Derivative(plain(tc.name), tc.at, &fd.Settings{Formula: fd.Central2nd})
		assertNear(t, want, float64(got.Eps1Eps2()), 1e-4, fmt.Sprintf("%s at %v", tc.name, tc.at))
	}
}

func TestRules_ThirdDerivative(t *testing.T) {
	for _, tc := range elemCases {
		got := elem(tc.name, hyperdual.SeedThirdOrderJet(hyperdual.Real(tc.at)))
		want := fd.Derivative(second(tc.name), tc.at, &fd.Settings{Formula: fd.Central})
		assertNear(t, want, float64(got.V3()), 1e-5, fmt.Sprintf("%s at %v", tc.name, tc.at))
	}
}

func TestRules_JetsAgree(t *testing.T) {
	for _, tc := range elemCases {
		x := hyperdual.Real(tc.at)
		d := elem(tc.name, hyperdual.SeedDual(x))
		h := elem(tc.name, hyperdual.SeedHyperDual(x))
		j := elem(tc.name, hyperdual.SeedThirdOrderJet(x))
		dd := elem(tc.name, hyperdual.NewDual(hyperdual.NewDual64(tc.at, 1), hyperdual.NewDual64(1, 0)))

		assertNear(t, float64(d.Eps()), float64(h.Eps1()), 1e-14, tc.name)
		assertNear(t, float64(d.Eps()), float64(j.V1()), 1e-14, tc.name)
		assertNear(t, float64(h.Eps1Eps2()), float64(j.V2()), 1e-13, tc.name)
		assertNear(t, float64(h.Eps1Eps2()), float64(dd.Eps().Eps()), 1e-13, tc.name)
	}
}

func TestRules_PowiAtZero(t *testing.T) {
	x := hyperdual.SeedThirdOrderJet(hyperdual.Real(0))
	assert.Equal(t, hyperdual.NewThirdOrderJet64(0, 0, 0, 6), x.Powi(3))
	assert.Equal(t, hyperdual.NewThirdOrderJet64(0, 0, 2, 0), x.Powi(2))
	assert.Equal(t, hyperdual.NewThirdOrderJet64(1, 0, 0, 0), x.Powi(0))
}
