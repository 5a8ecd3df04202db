package hyperdual

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ============================================================
// Fixed-size containers
// ============================================================

// Array is the set of fixed-size coefficient arrays a Vec can hold.
type Array[F any] interface {
	~[1]F | ~[2]F | ~[3]F | ~[4]F | ~[5]F | ~[6]F | ~[7]F | ~[8]F | ~[9]F | ~[10]F
}

// Block is the set of row arrays backing a Mat whose rows have type R.
type Block[R any] interface {
	~[1]R | ~[2]R | ~[3]R | ~[4]R | ~[5]R | ~[6]R | ~[7]R | ~[8]R | ~[9]R | ~[10]R
}

// Vec is an immutable vector whose length is fixed by its array type A.
type Vec[F any, A Array[F]] struct{ data A }

// NewVec wraps a fixed-size array.
func NewVec[F any, A Array[F]](data A) Vec[F, A] { return Vec[F, A]{data: data} }

// VecFromSlice copies s into a Vec. It panics if len(s) does not match the
// length of A.
func VecFromSlice[A Array[F], F any](s []F) Vec[F, A] {
	var data A
	if len(s) != len(data) {
		panic(fmt.Sprintf("hyperdual: VecFromSlice needs %d entries, got %d", len(data), len(s)))
	}
	for i := 0; i < len(data); i++ {
		data[i] = s[i]
	}
	return Vec[F, A]{data: data}
}

func (v Vec[F, A]) Len() int   { return len(v.data) }
func (v Vec[F, A]) At(i int) F { return v.data[i] }
func (v Vec[F, A]) Array() A   { return v.data }
func (v Vec[F, A]) Slice() []F { return v.appendTo(make([]F, 0, len(v.data))) }
func (v Vec[F, A]) String() string {
	parts := make([]string, len(v.data))
	for i := 0; i < len(v.data); i++ {
		parts[i] = formatCoeff(v.data[i])
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v Vec[F, A]) appendTo(dst []F) []F {
	for i := 0; i < len(v.data); i++ {
		dst = append(dst, v.data[i])
	}
	return dst
}

// MapVec applies fn to every element of v. B must have the same length as A.
func MapVec[B Array[G], F, G any, A Array[F]](v Vec[F, A], fn func(F) G) Vec[G, B] {
	var out B
	if len(out) != len(v.data) {
		panic(fmt.Sprintf("hyperdual: MapVec length mismatch %d != %d", len(out), len(v.data)))
	}
	for i := 0; i < len(out); i++ {
		out[i] = fn(v.data[i])
	}
	return Vec[G, B]{data: out}
}

// Mat is an immutable row-major matrix with len(B) rows of type R.
type Mat[F any, R Array[F], B Block[R]] struct{ data B }

// NewMat wraps a fixed-size array of rows.
func NewMat[F any, R Array[F], B Block[R]](data B) Mat[F, R, B] { return Mat[F, R, B]{data: data} }

// MatFromSlice copies the row-major entries s into a Mat. It panics if len(s)
// does not match rows*cols.
func MatFromSlice[R Array[F], B Block[R], F any](s []F) Mat[F, R, B] {
	var data B
	var row R
	rows, cols := len(data), len(row)
	if len(s) != rows*cols {
		panic(fmt.Sprintf("hyperdual: MatFromSlice needs %d entries, got %d", rows*cols, len(s)))
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i][j] = s[i*cols+j]
		}
	}
	return Mat[F, R, B]{data: data}
}

func (m Mat[F, R, B]) Rows() int { return len(m.data) }
func (m Mat[F, R, B]) Cols() int {
	var row R
	return len(row)
}
func (m Mat[F, R, B]) At(i, j int) F { return m.data[i][j] }
func (m Mat[F, R, B]) Row(i int) Vec[F, R] {
	return Vec[F, R]{data: m.data[i]}
}
func (m Mat[F, R, B]) Array() B { return m.data }

func (m Mat[F, R, B]) String() string {
	rows := make([]string, len(m.data))
	for i := 0; i < len(m.data); i++ {
		rows[i] = m.Row(i).String()
	}
	return "[" + strings.Join(rows, ", ") + "]"
}

// MapMat applies fn to every entry of m. The result must have the same shape.
func MapMat[R2 Array[G], B2 Block[R2], F, G any, R Array[F], B Block[R]](m Mat[F, R, B], fn func(F) G) Mat[G, R2, B2] {
	var out B2
	var row R2
	if len(out) != m.Rows() || len(row) != m.Cols() {
		panic(fmt.Sprintf("hyperdual: MapMat shape mismatch %dx%d != %dx%d", len(out), len(row), m.Rows(), m.Cols()))
	}
	for i := 0; i < len(out); i++ {
		for j := 0; j < len(row); j++ {
			out[i][j] = fn(m.data[i][j])
		}
	}
	return Mat[G, R2, B2]{data: out}
}

// VecDenseOf returns the innermost real parts of v as a gonum vector.
func VecDenseOf[F Number[F], A Array[F]](v Vec[F, A]) *mat.VecDense {
	data := make([]float64, v.Len())
	for i := range data {
		data[i] = v.At(i).Float64()
	}
	return mat.NewVecDense(len(data), data)
}

// DenseOf returns the innermost real parts of m as a gonum matrix.
func DenseOf[F Number[F], R Array[F], B Block[R]](m Mat[F, R, B]) *mat.Dense {
	r, c := m.Rows(), m.Cols()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, m.At(i, j).Float64())
		}
	}
	return mat.NewDense(r, c, data)
}

// ============================================================
// Container arithmetic used by the vector jets
// ============================================================

func vecAdd[F Number[F], A Array[F]](a, b Vec[F, A]) Vec[F, A] {
	var out A
	for i := 0; i < len(out); i++ {
		out[i] = a.data[i].Add(b.data[i])
	}
	return Vec[F, A]{data: out}
}

func vecSub[F Number[F], A Array[F]](a, b Vec[F, A]) Vec[F, A] {
	var out A
	for i := 0; i < len(out); i++ {
		out[i] = a.data[i].Sub(b.data[i])
	}
	return Vec[F, A]{data: out}
}

func vecMap[F Number[F], A Array[F]](a Vec[F, A], fn func(F) F) Vec[F, A] {
	var out A
	for i := 0; i < len(out); i++ {
		out[i] = fn(a.data[i])
	}
	return Vec[F, A]{data: out}
}

func neg[F Number[F]](x F) F { return x.Neg() }

// vecScale returns a*s.
func vecScale[F Number[F], A Array[F]](a Vec[F, A], s F) Vec[F, A] {
	return vecMap(a, func(x F) F { return x.Mul(s) })
}

// vecLinear returns a*s + b*t.
func vecLinear[F Number[F], A Array[F]](a Vec[F, A], s F, b Vec[F, A], t F) Vec[F, A] {
	var out A
	for i := 0; i < len(out); i++ {
		out[i] = a.data[i].Mul(s).Add(b.data[i].Mul(t))
	}
	return Vec[F, A]{data: out}
}

func basis[F Number[F], A Array[F]](i int) Vec[F, A] {
	var out A
	out[i] = one[F]()
	return Vec[F, A]{data: out}
}

func matAdd[F Number[F], R Array[F], B Block[R]](a, b Mat[F, R, B]) Mat[F, R, B] {
	return matZip(a, b, func(x, y F) F { return x.Add(y) })
}

func matSub[F Number[F], R Array[F], B Block[R]](a, b Mat[F, R, B]) Mat[F, R, B] {
	return matZip(a, b, func(x, y F) F { return x.Sub(y) })
}

func matZip[F Number[F], R Array[F], B Block[R]](a, b Mat[F, R, B], fn func(x, y F) F) Mat[F, R, B] {
	var out B
	var row R
	for i := 0; i < len(out); i++ {
		for j := 0; j < len(row); j++ {
			out[i][j] = fn(a.data[i][j], b.data[i][j])
		}
	}
	return Mat[F, R, B]{data: out}
}

func matMap[F Number[F], R Array[F], B Block[R]](a Mat[F, R, B], fn func(F) F) Mat[F, R, B] {
	var out B
	var row R
	for i := 0; i < len(out); i++ {
		for j := 0; j < len(row); j++ {
			out[i][j] = fn(a.data[i][j])
		}
	}
	return Mat[F, R, B]{data: out}
}

// outer returns the matrix u_i*v_j. U must have one entry per row of B.
func outer[F Number[F], U Array[F], R Array[F], B Block[R]](u Vec[F, U], v Vec[F, R]) Mat[F, R, B] {
	var out B
	var row R
	for i := 0; i < len(out); i++ {
		for j := 0; j < len(row); j++ {
			out[i][j] = u.data[i].Mul(v.data[j])
		}
	}
	return Mat[F, R, B]{data: out}
}
