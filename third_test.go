package hyperdual_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/hyperdual"
)

// ============================================================
// ThirdOrderJet tests
// ============================================================

func TestThirdOrderJet_Cube(t *testing.T) {
	j, err := hyperdual.Derive3(hyperdual.Scalar(2))
	require.NoError(t, err)
	x := j.(hyperdual.ThirdOrderJet64)
	assert.Equal(t, hyperdual.NewThirdOrderJet64(8, 12, 12, 6), x.Powi(3))
}

func TestThirdOrderJet_FromRe_HasZeroDerivatives(t *testing.T) {
	x := hyperdual.ThirdOrderJetFromRe(hyperdual.Real(4))
	assert.Equal(t, hyperdual.NewThirdOrderJet64(4, 0, 0, 0), x)
}

func TestThirdOrderJet_Leibniz(t *testing.T) {
	// x^2 * x = x^3 through the product rule
	x := hyperdual.SeedThirdOrderJet(hyperdual.Real(2))
	assert.Equal(t, hyperdual.NewThirdOrderJet64(8, 12, 12, 6), x.Mul(x).Mul(x))
}

func TestThirdOrderJet_Exp(t *testing.T) {
	x := hyperdual.SeedThirdOrderJet(hyperdual.Real(1))
	y := x.Scale(2).Exp() // e^{2x}: 8 e^2 at third order
	e2 := math.Exp(2)
	assert.InDelta(t, e2, float64(y.Re()), 1e-13)
	assert.InDelta(t, 2*e2, float64(y.V1()), 1e-13)
	assert.InDelta(t, 4*e2, float64(y.V2()), 1e-12)
	assert.InDelta(t, 8*e2, float64(y.V3()), 1e-12)
}

func TestThirdOrderJet_Nested(t *testing.T) {
	// x^4 at 1 with an inner dual carries the fourth derivative in V3().Eps().
	j, err := hyperdual.Derive3(hyperdual.Nested(hyperdual.NewDual64(1, 1)))
	require.NoError(t, err)
	x := j.(hyperdual.ThirdOrderJetDual64)
	y := x.Powi(4)
	assert.Equal(t, hyperdual.NewDual64(1, 4), y.Re())
	assert.Equal(t, hyperdual.NewDual64(24, 24), y.V3())
}

func TestThirdOrderJet_SinCos_MatchesSinAndCos(t *testing.T) {
	x := hyperdual.SeedThirdOrderJet(hyperdual.Real(2.2))
	s, c := x.SinCos()
	assert.Equal(t, x.Sin(), s)
	assert.Equal(t, x.Cos(), c)
}
