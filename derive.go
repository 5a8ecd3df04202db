package hyperdual

import (
	"fmt"
	"strconv"
)

// ============================================================
// Dynamic seeding
// ============================================================

type inputKind int

const (
	scalarInput inputKind = iota
	arrayInput
	nestedInput
)

// Input is a seeding argument whose shape is only known at run time: a
// scalar, an array of scalars, or a dual number for nested jets.
type Input struct {
	kind inputKind
	x    float64
	xs   []float64
	d    Dual64
}

func Scalar(x float64) Input     { return Input{kind: scalarInput, x: x} }
func Vector(xs ...float64) Input { return Input{kind: arrayInput, xs: append([]float64(nil), xs...)} }
func Nested(d Dual64) Input      { return Input{kind: nestedInput, d: d} }
func (in Input) Values() []float64 {
	switch in.kind {
	case scalarInput:
		return []float64{in.x}
	case arrayInput:
		return append([]float64(nil), in.xs...)
	}
	return []float64{in.d.Float64()}
}

// Shape renders the input shape as it appears in errors: "scalar",
// "array[n]" or "dual".
func (in Input) Shape() string {
	switch in.kind {
	case scalarInput:
		return "scalar"
	case arrayInput:
		return "array[" + strconv.Itoa(len(in.xs)) + "]"
	}
	return "dual"
}

// Derive1 seeds first derivatives. A scalar yields a single Dual64; an array
// of n values, 2 <= n <= 10, yields n DualVec[Real, [n]Real] jets whose
// gradients are the rows of the identity.
func Derive1(x Input) ([]Jet, error) {
	switch x.kind {
	case scalarInput:
		return []Jet{SeedDual(Real(x.x))}, nil
	case arrayInput:
		if seed, ok := derive1Arrays[len(x.xs)]; ok {
			return seed(x.xs), nil
		}
	}
	return nil, &ShapeError{Func: "derive1", Shape: x.Shape()}
}

// Derive2 seeds second derivatives of one variable group. A scalar yields a
// HyperDual64 and a dual yields a HyperDualDual64, both with eps1 = eps2 = 1.
// An array of n values, 2 <= n <= 5, yields n HyperDualVec[Real, [n]Real,
// [n]Real, [n][n]Real] jets; the mixed block of a result is the Hessian.
func Derive2(x Input) ([]Jet, error) {
	switch x.kind {
	case scalarInput:
		return []Jet{SeedHyperDual(Real(x.x))}, nil
	case nestedInput:
		return []Jet{SeedHyperDual(x.d)}, nil
	case arrayInput:
		if seed, ok := derive2Arrays[len(x.xs)]; ok {
			return seed(x.xs), nil
		}
	}
	return nil, &ShapeError{Func: "derive2", Shape: x.Shape()}
}

// Derive2Pair seeds x1 along the first direction group and x2 along the
// second. Two scalars yield two HyperDual64. Otherwise each side is a scalar
// (one direction) or an array of 2 to 5 values, and both results hold
// HyperDualVec[Real, [m]Real, [n]Real, [m][n]Real] jets.
func Derive2Pair(x1, x2 Input) ([]Jet, []Jet, error) {
	if x1.kind == scalarInput && x2.kind == scalarInput {
		a, b := SeedHyperDualPair(Real(x1.x), Real(x2.x))
		return []Jet{a}, []Jet{b}, nil
	}
	m, ok1 := pairArity(x1)
	n, ok2 := pairArity(x2)
	if ok1 && ok2 {
		if seed, ok := derive2Pairs[[2]int{m, n}]; ok {
			j1, j2 := seed(x1.Values(), x2.Values())
			return j1, j2, nil
		}
	}
	return nil, nil, &ShapeError{Func: "derive2", Shape: "(" + x1.Shape() + ", " + x2.Shape() + ")"}
}

// Derive3 seeds up to third derivatives of one variable. A scalar yields a
// ThirdOrderJet64 and a dual yields a ThirdOrderJetDual64, both with v1 = 1.
func Derive3(x Input) (Jet, error) {
	switch x.kind {
	case scalarInput:
		return SeedThirdOrderJet(Real(x.x)), nil
	case nestedInput:
		return SeedThirdOrderJet(x.d), nil
	}
	return nil, &ShapeError{Func: "derive3", Shape: x.Shape()}
}

func pairArity(x Input) (int, bool) {
	switch x.kind {
	case scalarInput:
		return 1, true
	case arrayInput:
		n := len(x.xs)
		return n, n >= 2 && n <= 5
	}
	return 0, false
}

// ============================================================
// Dispatch tables
// ============================================================

var derive1Arrays = map[int]func([]float64) []Jet{
	2:  seedDualVecJets[[2]Real],
	3:  seedDualVecJets[[3]Real],
	4:  seedDualVecJets[[4]Real],
	5:  seedDualVecJets[[5]Real],
	6:  seedDualVecJets[[6]Real],
	7:  seedDualVecJets[[7]Real],
	8:  seedDualVecJets[[8]Real],
	9:  seedDualVecJets[[9]Real],
	10: seedDualVecJets[[10]Real],
}

var derive2Arrays = map[int]func([]float64) []Jet{
	2: seedHessianJets[[2]Real, [2][2]Real],
	3: seedHessianJets[[3]Real, [3][3]Real],
	4: seedHessianJets[[4]Real, [4][4]Real],
	5: seedHessianJets[[5]Real, [5][5]Real],
}

var derive2Pairs = map[[2]int]func(x1, x2 []float64) ([]Jet, []Jet){
	{1, 2}: seedPairJets[[1]Real, [2]Real, [1][2]Real],
	{1, 3}: seedPairJets[[1]Real, [3]Real, [1][3]Real],
	{1, 4}: seedPairJets[[1]Real, [4]Real, [1][4]Real],
	{1, 5}: seedPairJets[[1]Real, [5]Real, [1][5]Real],
	{2, 1}: seedPairJets[[2]Real, [1]Real, [2][1]Real],
	{2, 2}: seedPairJets[[2]Real, [2]Real, [2][2]Real],
	{2, 3}: seedPairJets[[2]Real, [3]Real, [2][3]Real],
	{2, 4}: seedPairJets[[2]Real, [4]Real, [2][4]Real],
	{2, 5}: seedPairJets[[2]Real, [5]Real, [2][5]Real],
	{3, 1}: seedPairJets[[3]Real, [1]Real, [3][1]Real],
	{3, 2}: seedPairJets[[3]Real, [2]Real, [3][2]Real],
	{3, 3}: seedPairJets[[3]Real, [3]Real, [3][3]Real],
	{3, 4}: seedPairJets[[3]Real, [4]Real, [3][4]Real],
	{3, 5}: seedPairJets[[3]Real, [5]Real, [3][5]Real],
	{4, 1}: seedPairJets[[4]Real, [1]Real, [4][1]Real],
	{4, 2}: seedPairJets[[4]Real, [2]Real, [4][2]Real],
	{4, 3}: seedPairJets[[4]Real, [3]Real, [4][3]Real],
	{4, 4}: seedPairJets[[4]Real, [4]Real, [4][4]Real],
	{4, 5}: seedPairJets[[4]Real, [5]Real, [4][5]Real],
	{5, 1}: seedPairJets[[5]Real, [1]Real, [5][1]Real],
	{5, 2}: seedPairJets[[5]Real, [2]Real, [5][2]Real],
	{5, 3}: seedPairJets[[5]Real, [3]Real, [5][3]Real],
	{5, 4}: seedPairJets[[5]Real, [4]Real, [5][4]Real],
	{5, 5}: seedPairJets[[5]Real, [5]Real, [5][5]Real],
}

func realArray[A Array[Real]](xs []float64) A {
	var a A
	if len(xs) != len(a) {
		panic(fmt.Sprintf("hyperdual: need %d values, got %d", len(a), len(xs)))
	}
	for i := 0; i < len(a); i++ {
		a[i] = Real(xs[i])
	}
	return a
}

func jets[T Jet](xs []T) []Jet {
	out := make([]Jet, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

func seedDualVecJets[A Array[Real]](xs []float64) []Jet {
	return jets(SeedDualVec(realArray[A](xs)))
}

func seedHessianJets[A Array[Real], B Block[A]](xs []float64) []Jet {
	return jets(SeedHessian[B](realArray[A](xs)))
}

func seedPairJets[A1 Array[Real], A2 Array[Real], B Block[A2]](x1, x2 []float64) ([]Jet, []Jet) {
	j1, j2 := SeedHyperDualVec[B](realArray[A1](x1), realArray[A2](x2))
	return jets(j1), jets(j2)
}
