package linalg

import (
	"fmt"
	"sort"
)

// Builder collects (row, col, value) triplets. Entries that share a
// position are summed when the builder is compressed.
type Builder struct {
	rows, cols int
	ri, ci     []int
	v          []float64
}

func NewBuilder(rows, cols int) *Builder {
	return &Builder{rows: rows, cols: cols}
}

// Grow reserves room for n more triplets.
func (b *Builder) Grow(n int) {
	if cap(b.v)-len(b.v) >= n {
		return
	}
	ri := make([]int, len(b.ri), len(b.ri)+n)
	ci := make([]int, len(b.ci), len(b.ci)+n)
	v := make([]float64, len(b.v), len(b.v)+n)
	copy(ri, b.ri)
	copy(ci, b.ci)
	copy(v, b.v)
	b.ri, b.ci, b.v = ri, ci, v
}

// Add records a triplet. It panics if (i, j) is outside the matrix.
func (b *Builder) Add(i, j int, v float64) {
	if i < 0 || i >= b.rows || j < 0 || j >= b.cols {
		panic(fmt.Sprintf("linalg: index (%d,%d) out of range %dx%d", i, j, b.rows, b.cols))
	}
	b.ri = append(b.ri, i)
	b.ci = append(b.ci, j)
	b.v = append(b.v, v)
}

func (b *Builder) Len() int { return len(b.v) }

// CSR compresses the triplets into a row-major sparse matrix with sorted
// column indices and no duplicate positions.
func (b *Builder) CSR() *CSR {
	counts := make([]int, b.rows+1)
	for _, i := range b.ri {
		counts[i+1]++
	}
	for i := 0; i < b.rows; i++ {
		counts[i+1] += counts[i]
	}

	cols := make([]int, len(b.v))
	vals := make([]float64, len(b.v))
	next := make([]int, b.rows)
	copy(next, counts[:b.rows])
	for k, i := range b.ri {
		cols[next[i]] = b.ci[k]
		vals[next[i]] = b.v[k]
		next[i]++
	}

	m := &CSR{rows: b.rows, cols: b.cols, rowPtr: make([]int, b.rows+1)}
	m.colIdx = make([]int, 0, len(cols))
	m.values = make([]float64, 0, len(vals))
	for i := 0; i < b.rows; i++ {
		lo, hi := counts[i], counts[i+1]
		row := entries{cols[lo:hi], vals[lo:hi]}
		sort.Stable(row)
		for k := lo; k < hi; k++ {
			n := len(m.colIdx)
			if n > m.rowPtr[i] && m.colIdx[n-1] == cols[k] {
				m.values[n-1] += vals[k]
				continue
			}
			m.colIdx = append(m.colIdx, cols[k])
			m.values = append(m.values, vals[k])
		}
		m.rowPtr[i+1] = len(m.colIdx)
	}
	return m
}

type entries struct {
	cols []int
	vals []float64
}

func (e entries) Len() int           { return len(e.cols) }
func (e entries) Less(a, b int) bool { return e.cols[a] < e.cols[b] }
func (e entries) Swap(a, b int) {
	e.cols[a], e.cols[b] = e.cols[b], e.cols[a]
	e.vals[a], e.vals[b] = e.vals[b], e.vals[a]
}

// CSR is a compressed sparse row matrix. It is immutable once built.
type CSR struct {
	rows, cols int
	rowPtr     []int
	colIdx     []int
	values     []float64
}

func (m *CSR) Dims() (int, int) { return m.rows, m.cols }

func (m *CSR) NNZ() int { return len(m.values) }

// At returns the stored value at (i, j), or zero.
func (m *CSR) At(i, j int) float64 {
	lo, hi := m.rowPtr[i], m.rowPtr[i+1]
	k := lo + sort.SearchInts(m.colIdx[lo:hi], j)
	if k < hi && m.colIdx[k] == j {
		return m.values[k]
	}
	return 0
}

// Row returns the column indices and values stored in row i. The slices
// alias the matrix and must not be modified.
func (m *CSR) Row(i int) ([]int, []float64) {
	lo, hi := m.rowPtr[i], m.rowPtr[i+1]
	return m.colIdx[lo:hi], m.values[lo:hi]
}

func (m *CSR) MulVec(x []float64) []float64 {
	y := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		var s float64
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			s += m.values[k] * x[m.colIdx[k]]
		}
		y[i] = s
	}
	return y
}
