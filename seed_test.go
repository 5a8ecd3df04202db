package hyperdual_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/hyperdual"
)

func TestSeedDual(t *testing.T) {
	assert.Equal(t, hyperdual.NewDual64(3, 1), hyperdual.SeedDual(hyperdual.Real(3)))
}

func TestSeedHyperDual(t *testing.T) {
	assert.Equal(t, hyperdual.NewHyperDual64(3, 1, 1, 0), hyperdual.SeedHyperDual(hyperdual.Real(3)))
}

func TestSeedThirdOrderJet(t *testing.T) {
	assert.Equal(t, hyperdual.NewThirdOrderJet64(3, 1, 0, 0), hyperdual.SeedThirdOrderJet(hyperdual.Real(3)))
}

func TestSeedHessian_Basis(t *testing.T) {
	xs := hyperdual.SeedHessian[[3][3]hyperdual.Real]([3]hyperdual.Real{4, 5, 6})
	for i, x := range xs {
		assert.Equal(t, x.Eps1(), x.Eps2())
		assert.Equal(t, hyperdual.Real(1), x.Eps1().At(i))
		assert.Equal(t, [3][3]hyperdual.Real{}, x.Eps1Eps2().Array())
	}
}

func TestSeedHessian_BadBlockPanics(t *testing.T) {
	assert.Panics(t, func() {
		hyperdual.SeedHessian[[2][3]hyperdual.Real]([3]hyperdual.Real{4, 5, 6})
	})
}
