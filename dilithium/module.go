package dilithium

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when two module values of incompatible
// shapes meet. It flags a caller bug and is never worth retrying.
var ErrShapeMismatch = errors.New("dilithium: shape mismatch")

// Mat is a fixed-shape matrix of NTT-domain ring elements backed by a
// flat row-major arena. The shape is set at construction and never
// changes; entries are owned exclusively and handed out by value.
type Mat struct {
	rows, cols int
	elems      []NTTPoly
}

// NewMat returns a zero matrix of the given shape.
func NewMat(rows, cols int) Mat {
	if rows <= 0 || cols <= 0 {
		panic("dilithium: NewMat: shape must be positive")
	}
	return Mat{rows: rows, cols: cols, elems: make([]NTTPoly, rows*cols)}
}

// Rows returns the number of rows.
func (m Mat) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m Mat) Cols() int { return m.cols }

// At returns a copy of the entry at (i, j).
func (m Mat) At(i, j int) NTTPoly {
	return m.elems[i*m.cols+j]
}

// Set stores p at (i, j).
func (m *Mat) Set(i, j int, p NTTPoly) {
	m.elems[i*m.cols+j] = p
}

// Add returns m + o entrywise.
func (m Mat) Add(o Mat) (Mat, error) {
	if m.rows != o.rows || m.cols != o.cols {
		return Mat{}, fmt.Errorf("%w: add %dx%d and %dx%d", ErrShapeMismatch, m.rows, m.cols, o.rows, o.cols)
	}
	out := NewMat(m.rows, m.cols)
	for i := range m.elems {
		out.elems[i] = m.elems[i].Add(o.elems[i])
	}
	return out, nil
}

// Sub returns m - o entrywise.
func (m Mat) Sub(o Mat) (Mat, error) {
	if m.rows != o.rows || m.cols != o.cols {
		return Mat{}, fmt.Errorf("%w: sub %dx%d and %dx%d", ErrShapeMismatch, m.rows, m.cols, o.rows, o.cols)
	}
	out := NewMat(m.rows, m.cols)
	for i := range m.elems {
		out.elems[i] = m.elems[i].Sub(o.elems[i])
	}
	return out, nil
}

// ScalarMul returns m with every entry multiplied by p.
func (m Mat) ScalarMul(p NTTPoly) Mat {
	out := NewMat(m.rows, m.cols)
	for i := range m.elems {
		out.elems[i] = m.elems[i].Mul(p)
	}
	return out
}

// MulVec returns the matrix-vector product m * v, accumulated with
// pointwise NTT products.
func (m Mat) MulVec(v NTTVec) (NTTVec, error) {
	if m.cols != v.Len() {
		return NTTVec{}, fmt.Errorf("%w: mulvec %dx%d and %d", ErrShapeMismatch, m.rows, m.cols, v.Len())
	}
	out := NewNTTVec(m.rows)
	for i := 0; i < m.rows; i++ {
		var acc NTTPoly
		for j := 0; j < m.cols; j++ {
			acc = acc.Add(m.elems[i*m.cols+j].Mul(v.elems[j]))
		}
		out.elems[i] = acc
	}
	return out, nil
}

// MulMat returns the matrix product m * o.
func (m Mat) MulMat(o Mat) (Mat, error) {
	if m.cols != o.rows {
		return Mat{}, fmt.Errorf("%w: mulmat %dx%d and %dx%d", ErrShapeMismatch, m.rows, m.cols, o.rows, o.cols)
	}
	out := NewMat(m.rows, o.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < o.cols; j++ {
			var acc NTTPoly
			for t := 0; t < m.cols; t++ {
				acc = acc.Add(m.elems[i*m.cols+t].Mul(o.elems[t*o.cols+j]))
			}
			out.elems[i*o.cols+j] = acc
		}
	}
	return out, nil
}

// Transpose returns a new transposed matrix; m is left untouched.
func (m Mat) Transpose() Mat {
	out := NewMat(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.elems[j*m.rows+i] = m.elems[i*m.cols+j]
		}
	}
	return out
}

// TransposeInPlace transposes m through its own arena. It mutates the
// receiver: any other reference to the same matrix value observes the
// new layout and must be considered invalidated.
func (m *Mat) TransposeInPlace() {
	t := m.Transpose()
	*m = t
}

// NTTVec is a fixed-length vector of NTT-domain ring elements.
type NTTVec struct {
	elems []NTTPoly
}

// NewNTTVec returns a zero vector of length n.
func NewNTTVec(n int) NTTVec {
	if n <= 0 {
		panic("dilithium: NewNTTVec: length must be positive")
	}
	return NTTVec{elems: make([]NTTPoly, n)}
}

// Len returns the vector length.
func (v NTTVec) Len() int { return len(v.elems) }

// At returns a copy of element i.
func (v NTTVec) At(i int) NTTPoly { return v.elems[i] }

// Set stores p at index i.
func (v *NTTVec) Set(i int, p NTTPoly) { v.elems[i] = p }

// Add returns v + o.
func (v NTTVec) Add(o NTTVec) (NTTVec, error) {
	if v.Len() != o.Len() {
		return NTTVec{}, fmt.Errorf("%w: add vectors of length %d and %d", ErrShapeMismatch, v.Len(), o.Len())
	}
	out := NewNTTVec(v.Len())
	for i := range v.elems {
		out.elems[i] = v.elems[i].Add(o.elems[i])
	}
	return out, nil
}

// Sub returns v - o.
func (v NTTVec) Sub(o NTTVec) (NTTVec, error) {
	if v.Len() != o.Len() {
		return NTTVec{}, fmt.Errorf("%w: sub vectors of length %d and %d", ErrShapeMismatch, v.Len(), o.Len())
	}
	out := NewNTTVec(v.Len())
	for i := range v.elems {
		out.elems[i] = v.elems[i].Sub(o.elems[i])
	}
	return out, nil
}

// ScalarMul returns v with every element multiplied by p.
func (v NTTVec) ScalarMul(p NTTPoly) NTTVec {
	out := NewNTTVec(v.Len())
	for i := range v.elems {
		out.elems[i] = v.elems[i].Mul(p)
	}
	return out
}

// InvNTT maps every element back to the standard domain.
func (v NTTVec) InvNTT() Vec {
	out := NewVec(v.Len())
	for i := range v.elems {
		out.elems[i] = v.elems[i].InvNTT()
	}
	return out
}

// Vec is a fixed-length vector of standard-domain ring elements.
type Vec struct {
	elems []Poly
}

// NewVec returns a zero vector of length n.
func NewVec(n int) Vec {
	if n <= 0 {
		panic("dilithium: NewVec: length must be positive")
	}
	return Vec{elems: make([]Poly, n)}
}

// Len returns the vector length.
func (v Vec) Len() int { return len(v.elems) }

// At returns a copy of element i.
func (v Vec) At(i int) Poly { return v.elems[i] }

// Set stores p at index i.
func (v *Vec) Set(i int, p Poly) { v.elems[i] = p }

// Add returns v + o.
func (v Vec) Add(o Vec) (Vec, error) {
	if v.Len() != o.Len() {
		return Vec{}, fmt.Errorf("%w: add vectors of length %d and %d", ErrShapeMismatch, v.Len(), o.Len())
	}
	out := NewVec(v.Len())
	for i := range v.elems {
		out.elems[i] = v.elems[i].Add(o.elems[i])
	}
	return out, nil
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) (Vec, error) {
	if v.Len() != o.Len() {
		return Vec{}, fmt.Errorf("%w: sub vectors of length %d and %d", ErrShapeMismatch, v.Len(), o.Len())
	}
	out := NewVec(v.Len())
	for i := range v.elems {
		out.elems[i] = v.elems[i].Sub(o.elems[i])
	}
	return out, nil
}

// NTT maps every element to the transform domain.
func (v Vec) NTT() NTTVec {
	out := NewNTTVec(v.Len())
	for i := range v.elems {
		out.elems[i] = v.elems[i].NTT()
	}
	return out
}

// InfNorm returns the largest centered coefficient magnitude across
// the vector.
func (v Vec) InfNorm() uint32 {
	var max uint32
	for i := range v.elems {
		if n := v.elems[i].InfNorm(); n > max {
			max = n
		}
	}
	return max
}

// Power2Round splits every element at the 2^D radix.
func (v Vec) Power2Round() (hi, lo Vec) {
	hi, lo = NewVec(v.Len()), NewVec(v.Len())
	for i := range v.elems {
		hi.elems[i], lo.elems[i] = v.elems[i].Power2Round()
	}
	return hi, lo
}

// HighBits returns the Decompose high part of every element.
func (v Vec) HighBits() Vec {
	out := NewVec(v.Len())
	for i := range v.elems {
		out.elems[i] = v.elems[i].HighBits()
	}
	return out
}

// LowBits returns the Decompose low part of every element.
func (v Vec) LowBits() Vec {
	out := NewVec(v.Len())
	for i := range v.elems {
		out.elems[i] = v.elems[i].LowBits()
	}
	return out
}
