// SPDX-License-Identifier: MIT

// Package linalg provides dense, bounds-checked matrix and vector types over
// any num.Number. Dense stores elements row-major in a flat slice for cache
// friendliness; Vector is a plain slice type with checked accessors.
//
// These are leaf utilities: no algorithmic content beyond arithmetic closure
// over T. Factorizations live in package factor.
package linalg

import (
	"strings"

	"github.com/gambitproject/gambit-sub018/num"
)

// Dense is a row-major matrix of T.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense[T num.Number[T]] struct {
	r, c int // number of rows and columns
	data []T // flat backing storage, len == r*c
}

// NewDense creates an r×c matrix initialized to zero.
// Stage 1 (Validate): rows and cols > 0.
// Stage 2 (Prepare): allocate and zero-fill the flat slice.
// Complexity: O(r*c) time and memory.
func NewDense[T num.Number[T]](rows, cols int) (*Dense[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	data := make([]T, rows*cols)
	zero := num.Zero[T]()
	for i := range data {
		data[i] = zero
	}

	return &Dense[T]{r: rows, c: cols, data: data}, nil
}

// NewDenseFrom copies a rectangular [][]T into a new matrix.
// Errors: ErrInvalidDimensions for empty input, ErrDimensionMismatch for ragged rows.
func NewDenseFrom[T num.Number[T]](rows [][]T) (*Dense[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, linalgErrorf(opFromRows, ErrInvalidDimensions)
	}
	r, c := len(rows), len(rows[0])
	m := &Dense[T]{r: r, c: c, data: make([]T, 0, r*c)}
	for _, row := range rows {
		if len(row) != c {
			return nil, linalgErrorf(opFromRows, ErrDimensionMismatch)
		}
		m.data = append(m.data, row...)
	}

	return m, nil
}

// Ints builds a matrix from integer rows; handy for payoff tables.
func Ints[T num.Number[T]](rows [][]int64) (*Dense[T], error) {
	conv := make([][]T, len(rows))
	for i, row := range rows {
		conv[i] = make([]T, len(row))
		for j, v := range row {
			conv[i][j] = num.Int[T](v)
		}
	}

	return NewDenseFrom(conv)
}

// Identity returns the n×n identity matrix.
func Identity[T num.Number[T]](n int) (*Dense[T], error) {
	m, err := NewDense[T](n, n)
	if err != nil {
		return nil, err
	}
	one := num.One[T]()
	for i := 0; i < n; i++ {
		m.data[i*n+i] = one
	}

	return m, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense[T]) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense[T]) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Dense[T]) indexOf(tag string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, indexErrorf(tag, row, col)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense[T]) At(row, col int) (T, error) {
	idx, err := m.indexOf(opAt, row, col)
	if err != nil {
		var zero T
		return zero, err
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col).
// Complexity: O(1).
func (m *Dense[T]) Set(row, col int, v T) error {
	idx, err := m.indexOf(opSet, row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Row returns a copy of row i.
func (m *Dense[T]) Row(i int) (Vector[T], error) {
	if i < 0 || i >= m.r {
		return nil, indexErrorf(opRow, i, 0)
	}
	out := make(Vector[T], m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// Col returns a copy of column j.
func (m *Dense[T]) Col(j int) (Vector[T], error) {
	if j < 0 || j >= m.c {
		return nil, indexErrorf(opCol, 0, j)
	}
	out := make(Vector[T], m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// SetCol overwrites column j with v (len(v) must equal Rows()).
func (m *Dense[T]) SetCol(j int, v Vector[T]) error {
	if j < 0 || j >= m.c {
		return indexErrorf(opSetCol, 0, j)
	}
	if len(v) != m.r {
		return linalgErrorf(opSetCol, ErrDimensionMismatch)
	}
	for i := 0; i < m.r; i++ {
		m.data[i*m.c+j] = v[i]
	}

	return nil
}

// MulVec returns m·x.
// Complexity: O(r*c).
func (m *Dense[T]) MulVec(x Vector[T]) (Vector[T], error) {
	if err := ValidateVecLen(x, m.c); err != nil {
		return nil, linalgErrorf(opMulVec, err)
	}
	out := make(Vector[T], m.r)
	var i, j int
	for i = 0; i < m.r; i++ {
		sum := num.Zero[T]()
		base := i * m.c
		for j = 0; j < m.c; j++ {
			if x[j].IsZero() {
				continue // skip zero for performance
			}
			sum = sum.Add(m.data[base+j].Mul(x[j]))
		}
		out[i] = sum
	}

	return out, nil
}

// Transpose returns a new c×r matrix.
func (m *Dense[T]) Transpose() *Dense[T] {
	out := &Dense[T]{r: m.c, c: m.r, data: make([]T, len(m.data))}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out
}

// Map returns a new matrix with f applied to every element.
func (m *Dense[T]) Map(f func(T) T) *Dense[T] {
	out := &Dense[T]{r: m.r, c: m.c, data: make([]T, len(m.data))}
	for i, v := range m.data {
		out.data[i] = f(v)
	}

	return out
}

// MinEntry returns the smallest element.
func (m *Dense[T]) MinEntry() T {
	best := m.data[0]
	for _, v := range m.data[1:] {
		if v.Cmp(best) < 0 {
			best = v
		}
	}

	return best
}

// Clone returns a deep copy. Element values are immutable, so copying the
// slice is enough.
func (m *Dense[T]) Clone() *Dense[T] {
	data := make([]T, len(m.data))
	copy(data, m.data)

	return &Dense[T]{r: m.r, c: m.c, data: data}
}

// String renders the matrix one bracketed row per line.
func (m *Dense[T]) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.data[i*m.c+j].String())
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
