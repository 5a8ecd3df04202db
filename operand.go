package hyperdual

import (
	"fmt"
	"math"
)

// ============================================================
// Operands: a plain number or a jet, on either side
// ============================================================

// Operand is one side of a binary operation over jets of type T: either a
// plain scalar or a T. Scalars stay scalars until they meet a jet, so
// constants never grow derivative parts.
type Operand[T Number[T]] struct {
	scalar float64
	jet    T
	isJet  bool
}

func ScalarOperand[T Number[T]](c float64) Operand[T] { return Operand[T]{scalar: c} }
func JetOperand[T Number[T]](x T) Operand[T]          { return Operand[T]{jet: x, isJet: true} }

// OperandOf recognises v as a T or as a Go number. Anything else is
// ErrInvalidOperand.
func OperandOf[T Number[T]](v any) (Operand[T], error) {
	switch x := v.(type) {
	case T:
		return JetOperand(x), nil
	case Real:
		return ScalarOperand[T](float64(x)), nil
	case float64:
		return ScalarOperand[T](x), nil
	case float32:
		return ScalarOperand[T](float64(x)), nil
	case int:
		return ScalarOperand[T](float64(x)), nil
	case int32:
		return ScalarOperand[T](float64(x)), nil
	case int64:
		return ScalarOperand[T](float64(x)), nil
	}
	return Operand[T]{}, fmt.Errorf("%w: %T", ErrInvalidOperand, v)
}

func (o Operand[T]) IsJet() bool { return o.isJet }

// Jet returns the operand as a T, lifting a scalar to a jet with zero
// derivative parts.
func (o Operand[T]) Jet() T {
	if o.isJet {
		return o.jet
	}
	return zero[T]().AddScalar(o.scalar)
}

// Float64 returns the scalar value, or the innermost real part of a jet.
func (o Operand[T]) Float64() float64 {
	if o.isJet {
		return o.jet.Float64()
	}
	return o.scalar
}

func (o Operand[T]) String() string {
	if o.isJet {
		return o.jet.String()
	}
	return formatFloat(o.scalar)
}

// Op is a binary arithmetic operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpPow:
		return "pow"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Apply evaluates a op b. Every pairing of scalar and jet is handled; a
// scalar on the left uses the reflected rule (c - x, c / x, c ** x).
func Apply[T Number[T]](op Op, a, b Operand[T]) Operand[T] {
	switch {
	case a.isJet && b.isJet:
		return JetOperand(applyJets(op, a.jet, b.jet))
	case a.isJet:
		return JetOperand(applyRight(op, a.jet, b.scalar))
	case b.isJet:
		return JetOperand(applyLeft(op, a.scalar, b.jet))
	}
	return ScalarOperand[T](applyScalars(op, a.scalar, b.scalar))
}

func applyJets[T Number[T]](op Op, x, y T) T {
	switch op {
	case OpAdd:
		return x.Add(y)
	case OpSub:
		return x.Sub(y)
	case OpMul:
		return x.Mul(y)
	case OpDiv:
		return x.Div(y)
	case OpPow:
		return x.Powd(y)
	}
	panic("hyperdual: unknown operator " + op.String())
}

// applyRight evaluates x op c.
func applyRight[T Number[T]](op Op, x T, c float64) T {
	switch op {
	case OpAdd:
		return x.AddScalar(c)
	case OpSub:
		return x.SubScalar(c)
	case OpMul:
		return x.Scale(c)
	case OpDiv:
		return x.DivScalar(c)
	case OpPow:
		if c == math.Trunc(c) && math.Abs(c) <= math.MaxInt32 {
			return x.Powi(int(c))
		}
		return x.Powf(c)
	}
	panic("hyperdual: unknown operator " + op.String())
}

// applyLeft evaluates c op x.
func applyLeft[T Number[T]](op Op, c float64, x T) T {
	switch op {
	case OpAdd:
		return x.AddScalar(c)
	case OpSub:
		return x.Neg().AddScalar(c)
	case OpMul:
		return x.Scale(c)
	case OpDiv:
		return x.Recip().Scale(c)
	case OpPow:
		return x.Scale(math.Log(c)).Exp()
	}
	panic("hyperdual: unknown operator " + op.String())
}

func applyScalars(op Op, a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	case OpPow:
		return math.Pow(a, b)
	}
	panic("hyperdual: unknown operator " + op.String())
}
