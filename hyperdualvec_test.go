package hyperdual_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/hyperdual"
)

// ============================================================
// HyperDualVec tests
// ============================================================

type (
	r2      = [2]hyperdual.Real
	r3      = [3]hyperdual.Real
	mixed23 = hyperdual.HyperDualVec[hyperdual.Real, r2, r3, [2]r3]
)

func TestHyperDualVec_Hessian(t *testing.T) {
	// f = x^2 y + y^3 at (1, 2): H = [[2y, 2x], [2x, 6y]]
	xs := hyperdual.SeedHessian[[2]r2](r2{1, 2})
	x, y := xs[0], xs[1]
	f := x.Powi(2).Mul(y).Add(y.Powi(3))

	assert.Equal(t, hyperdual.Real(10), f.Re())
	assert.Equal(t, r2{4, 13}, f.Eps1().Array())
	assert.Equal(t, r2{4, 13}, f.Eps2().Array())
	assert.Equal(t, [2]r2{{4, 2}, {2, 12}}, f.Eps1Eps2().Array())
}

func TestHyperDualVec_MixedBlock(t *testing.T) {
	// f = a*b*c + a*d at a, b = (1, 2) and c, d, e = (3, 4, 5)
	g1, g2 := hyperdual.SeedHyperDualVec[[2]r3](r2{1, 2}, r3{3, 4, 5})
	a, b := g1[0], g1[1]
	c, d := g2[0], g2[1]
	f := a.Mul(b).Mul(c).Add(a.Mul(d))

	assert.Equal(t, hyperdual.Real(10), f.Re())
	assert.Equal(t, r2{10, 3}, f.Eps1().Array())
	assert.Equal(t, r3{2, 1, 0}, f.Eps2().Array())
	assert.Equal(t, [2]r3{{2, 1, 0}, {1, 0, 0}}, f.Eps1Eps2().Array())
}

func TestHyperDualVec_FromRe(t *testing.T) {
	x := hyperdual.HyperDualVecFromRe[r2, r3, [2]r3](hyperdual.Real(3))
	var want mixed23
	want = want.AddScalar(3)
	assert.Equal(t, want, x)
	assert.Equal(t, 2, x.Eps1Eps2().Rows())
	assert.Equal(t, 3, x.Eps1Eps2().Cols())
}

func TestHyperDualVec_BlockMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		hyperdual.HyperDualVecFromRe[r2, r3, [3]r3](hyperdual.Real(0))
	})
	assert.Panics(t, func() {
		hyperdual.SeedHyperDualVec[[3]r3](r2{1, 2}, r3{3, 4, 5})
	})
}

func TestHyperDualVec_NewChecksShape(t *testing.T) {
	e1 := hyperdual.NewVec[hyperdual.Real](r2{1, 0})
	e2 := hyperdual.NewVec[hyperdual.Real](r3{0, 1, 0})
	block := hyperdual.NewMat[hyperdual.Real, r3]([2]r3{})
	x := hyperdual.NewHyperDualVec(hyperdual.Real(1), e1, e2, block)
	assert.Equal(t, hyperdual.Real(1), x.Re())

	bad := hyperdual.NewMat[hyperdual.Real, r3]([1]r3{})
	assert.Panics(t, func() {
		hyperdual.NewHyperDualVec(hyperdual.Real(1), e1, e2, bad)
	})
}

func TestHyperDualVec_MatchesScalarHyperDual(t *testing.T) {
	// The diagonal of the Hessian of sin(x) e^y equals the scalar second
	// derivatives taken one variable at a time.
	xs := hyperdual.SeedHessian[[2]r2](r2{0.3, -0.4})
	f := xs[0].Sin().Mul(xs[1].Exp())
	h := f.Eps1Eps2()

	sx := hyperdual.SeedHyperDual(hyperdual.Real(0.3)).Sin()
	ey := hyperdual.SeedHyperDual(hyperdual.Real(-0.4)).Exp()
	assert.InDelta(t, float64(sx.Eps1Eps2()*ey.Re()), float64(h.At(0, 0)), 1e-15)
	assert.InDelta(t, float64(sx.Re()*ey.Eps1Eps2()), float64(h.At(1, 1)), 1e-15)
	require.InDelta(t, float64(h.At(0, 1)), float64(h.At(1, 0)), 1e-15)
}
