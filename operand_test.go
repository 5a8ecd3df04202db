package hyperdual_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/hyperdual"
)

// ============================================================
// Operands and mixed scalar/jet arithmetic
// ============================================================

type d64 = hyperdual.Dual64

func TestOperandOf(t *testing.T) {
	o, err := hyperdual.OperandOf[d64](hyperdual.NewDual64(1, 1))
	require.NoError(t, err)
	assert.True(t, o.IsJet())

	for _, v := range []any{2, int32(2), int64(2), float32(2), 2.0, hyperdual.Real(2)} {
		o, err := hyperdual.OperandOf[d64](v)
		require.NoError(t, err, "%T", v)
		assert.False(t, o.IsJet(), "%T", v)
		assert.Equal(t, 2.0, o.Float64(), "%T", v)
	}
}

func TestOperandOf_Invalid(t *testing.T) {
	_, err := hyperdual.OperandOf[d64]("x")
	assert.ErrorIs(t, err, hyperdual.ErrInvalidOperand)
	assert.EqualError(t, err, "hyperdual: invalid operand: string")

	_, err = hyperdual.OperandOf[d64](hyperdual.NewHyperDual64(1, 0, 0, 0))
	assert.ErrorIs(t, err, hyperdual.ErrInvalidOperand)
}

func TestOperand_LiftAndRender(t *testing.T) {
	s := hyperdual.ScalarOperand[d64](4)
	assert.Equal(t, hyperdual.NewDual64(4, 0), s.Jet())
	assert.Equal(t, "4", s.String())

	j := hyperdual.JetOperand(hyperdual.NewDual64(3, 1))
	assert.Equal(t, "3 + 1ε", j.String())
	assert.Equal(t, 3.0, j.Float64())
}

func TestApply_ScalarLeft(t *testing.T) {
	x := hyperdual.JetOperand(hyperdual.SeedDual(hyperdual.Real(3)))
	two := hyperdual.ScalarOperand[d64](2)

	assert.Equal(t, hyperdual.NewDual64(5, 1), hyperdual.Apply(hyperdual.OpAdd, two, x).Jet())
	assert.Equal(t, hyperdual.NewDual64(-1, -1), hyperdual.Apply(hyperdual.OpSub, two, x).Jet())
	assert.Equal(t, hyperdual.NewDual64(6, 2), hyperdual.Apply(hyperdual.OpMul, two, x).Jet())

	q := hyperdual.Apply(hyperdual.OpDiv, two, x).Jet()
	assert.InDelta(t, 2.0/3, float64(q.Re()), 1e-15)
	assert.InDelta(t, -2.0/9, float64(q.Eps()), 1e-15)

	p := hyperdual.Apply(hyperdual.OpPow, two, x).Jet()
	assert.InDelta(t, 8, float64(p.Re()), 1e-14)
	assert.InDelta(t, 8*math.Ln2, float64(p.Eps()), 1e-14)
}

func TestApply_ScalarRight(t *testing.T) {
	x := hyperdual.JetOperand(hyperdual.SeedDual(hyperdual.Real(4)))
	op := func(o hyperdual.Op, c float64) d64 {
		return hyperdual.Apply(o, x, hyperdual.ScalarOperand[d64](c)).Jet()
	}

	assert.Equal(t, hyperdual.NewDual64(6, 1), op(hyperdual.OpAdd, 2))
	assert.Equal(t, hyperdual.NewDual64(2, 1), op(hyperdual.OpSub, 2))
	assert.Equal(t, hyperdual.NewDual64(8, 2), op(hyperdual.OpMul, 2))
	assert.Equal(t, hyperdual.NewDual64(2, 0.5), op(hyperdual.OpDiv, 2))
	assert.Equal(t, hyperdual.NewDual64(64, 48), op(hyperdual.OpPow, 3))
	assert.Equal(t, hyperdual.NewDual64(2, 0.25), op(hyperdual.OpPow, 0.5))
}

func TestApply_Jets(t *testing.T) {
	x := hyperdual.JetOperand(hyperdual.NewDual64(2, 1))
	y := hyperdual.JetOperand(hyperdual.NewDual64(5, 0))
	assert.Equal(t, hyperdual.NewDual64(10, 5), hyperdual.Apply(hyperdual.OpMul, x, y).Jet())
	assert.Equal(t, hyperdual.NewDual64(-3, 1), hyperdual.Apply(hyperdual.OpSub, x, y).Jet())

	p := hyperdual.Apply(hyperdual.OpPow, x, y).Jet()
	assert.InDelta(t, 32, float64(p.Re()), 1e-12)
	assert.InDelta(t, 80, float64(p.Eps()), 1e-12)
}

func TestApply_Scalars(t *testing.T) {
	a := hyperdual.ScalarOperand[d64](2)
	b := hyperdual.ScalarOperand[d64](3)
	got := hyperdual.Apply(hyperdual.OpPow, a, b)
	assert.False(t, got.IsJet())
	assert.Equal(t, 8.0, got.Float64())
	assert.Equal(t, -1.0, hyperdual.Apply(hyperdual.OpSub, a, b).Float64())
}

func TestOp_String(t *testing.T) {
	assert.Equal(t, "add", hyperdual.OpAdd.String())
	assert.Equal(t, "pow", hyperdual.OpPow.String())
	assert.Equal(t, "Op(9)", hyperdual.Op(9).String())
}
