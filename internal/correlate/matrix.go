package correlate

import (
	"math"

	"github.com/KaramelBytes/corrlens-cli/internal/dataset"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Matrix is a symmetric Pearson correlation matrix over numeric columns.
// Undefined coefficients are NaN.
type Matrix struct {
	Columns []string
	sym     *mat.SymDense
}

// ComputeMatrix correlates every pair of numeric columns using the rows where
// both values are present.
func ComputeMatrix(nd *dataset.NumericDataset) *Matrix {
	m := &Matrix{Columns: nd.Names()}
	n := len(m.Columns)
	if n == 0 {
		return m
	}
	m.sym = mat.NewSymDense(n, nil)
	for a := 0; a < n; a++ {
		if nd.Columns[a].Observations() > 0 {
			m.sym.SetSym(a, a, 1)
		} else {
			m.sym.SetSym(a, a, math.NaN())
		}
		for b := 0; b < a; b++ {
			xs, ys := nd.Pairwise(a, b)
			m.sym.SetSym(a, b, Pearson(xs, ys))
		}
	}
	return m
}

// Pearson returns the linear correlation of xs and ys, or NaN when fewer than
// two pairs exist or either side is constant.
func Pearson(xs, ys []float64) float64 {
	if len(xs) < 2 || len(xs) != len(ys) || constant(xs) || constant(ys) {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	switch {
	case math.IsNaN(r) || math.IsInf(r, 0):
		return math.NaN()
	case r > 1:
		return 1
	case r < -1:
		return -1
	}
	return r
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// Size is the number of columns.
func (m *Matrix) Size() int { return len(m.Columns) }

// Index returns the position of the named column, or -1.
func (m *Matrix) Index(name string) int {
	for i, c := range m.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// AtIndex returns the coefficient at row i, column j.
func (m *Matrix) AtIndex(i, j int) float64 { return m.sym.At(i, j) }

// At returns the coefficient between columns a and b. ok is false when either
// name is unknown.
func (m *Matrix) At(a, b string) (r float64, ok bool) {
	i, j := m.Index(a), m.Index(b)
	if i < 0 || j < 0 {
		return math.NaN(), false
	}
	return m.sym.At(i, j), true
}

// Values copies the matrix into row-major slices.
func (m *Matrix) Values() [][]float64 {
	n := m.Size()
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		for j := range out[i] {
			out[i][j] = m.sym.At(i, j)
		}
	}
	return out
}

// IsUndefined reports whether r marks a coefficient that could not be computed.
func IsUndefined(r float64) bool { return math.IsNaN(r) }
