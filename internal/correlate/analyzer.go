// Package correlate ranks the numeric attributes of a dataset by how strongly
// they linearly correlate with a chosen target attribute.
package correlate

import (
	"github.com/KaramelBytes/corrlens-cli/internal/dataset"
)

// DefaultTopK is the number of related attributes selected for charting.
const DefaultTopK = 5

// Options controls ranking.
type Options struct {
	// TopK bounds the selection; <= 0 uses DefaultTopK.
	TopK int
	// DropUndefined removes undefined coefficients from the selection instead
	// of ranking them after every defined one. Off by default, so a short
	// vector can still fill K slots with attributes whose r is undefined.
	DropUndefined bool
}

// DefaultOptions returns the standard ranking options.
func DefaultOptions() Options { return Options{TopK: DefaultTopK} }

// Result is the outcome of one analysis run.
type Result struct {
	Target string
	// Vector holds every other numeric attribute's coefficient against Target.
	Vector Vector
	// Matrix is the full pairwise correlation matrix.
	Matrix *Matrix
	// TopK lists the most strongly related attributes by |r|.
	TopK []string
	// Positive and Negative are the max and min signed relations; HasSummary
	// is false when no coefficient is defined.
	Positive   Relation
	Negative   Relation
	HasSummary bool
}

// Analyze computes the correlation matrix of nd, the target's correlation
// vector and the top-K related attributes. It returns ErrNoNumericColumns or a
// *MissingTargetError when the analysis cannot run; both are recoverable.
func Analyze(nd *dataset.NumericDataset, target string, opt Options) (*Result, error) {
	if nd.Empty() {
		return nil, ErrNoNumericColumns
	}
	if !nd.Has(target) {
		return nil, &MissingTargetError{Target: target, Available: nd.Names()}
	}
	k := opt.TopK
	if k <= 0 {
		k = DefaultTopK
	}
	m := ComputeMatrix(nd)
	res := &Result{Target: target, Matrix: m}
	res.Vector = buildVector(m, target)
	res.TopK = rankTopK(res.Vector, k, opt.DropUndefined)
	res.Positive, res.Negative, res.HasSummary = strongest(res.Vector)
	return res, nil
}

// Coefficient returns the target's coefficient against attribute.
func (r *Result) Coefficient(attribute string) (float64, bool) {
	return r.Vector.Get(attribute)
}
