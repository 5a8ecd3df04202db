package hyperdual

import "errors"

var (
	// ErrUnsupportedInput reports a seeding input whose shape has no jet type.
	ErrUnsupportedInput = errors.New("hyperdual: unsupported input")
	// ErrInvalidOperand reports an operand that is neither a number nor the
	// jet type of the other side.
	ErrInvalidOperand = errors.New("hyperdual: invalid operand")
)

// ShapeError names the seeding function and the input shape it rejected.
type ShapeError struct {
	Func  string
	Shape string
}

func (e *ShapeError) Error() string {
	return "hyperdual: " + e.Func + ": unsupported input " + e.Shape
}

func (e *ShapeError) Unwrap() error { return ErrUnsupportedInput }
