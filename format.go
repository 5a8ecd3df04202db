package hyperdual

import (
	"fmt"
	"math"
	"strconv"
)

// formatFloat renders the shortest decimal that round-trips, never in
// exponent form.
func formatFloat(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// formatCoeff renders one coefficient; nested jets are parenthesised.
func formatCoeff(x any) string {
	switch v := x.(type) {
	case Real:
		return v.String()
	case float64:
		return formatFloat(v)
	case fmt.Stringer:
		return "(" + v.String() + ")"
	}
	return fmt.Sprint(x)
}
