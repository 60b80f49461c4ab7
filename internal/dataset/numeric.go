package dataset

import "math"

// NumericColumn holds the parsed values of a numeric column. Missing cells are NaN.
type NumericColumn struct {
	Name   string
	Unit   string
	Values []float64
}

// Observations counts the non-missing values.
func (c NumericColumn) Observations() int {
	n := 0
	for _, v := range c.Values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// NumericDataset is the numeric-only view of a Dataset. Column and row order
// follow the source.
type NumericDataset struct {
	Rows    int
	Columns []NumericColumn
}

// ExtractNumeric keeps the columns classified as numeric (or empty) and drops
// the rest. A dataset without numeric columns yields an empty result.
func ExtractNumeric(ds *Dataset) *NumericDataset {
	nd := &NumericDataset{}
	if ds == nil {
		return nd
	}
	nd.Rows = ds.Rows
	for _, c := range ds.Columns {
		if !c.Kind.IsNumeric() {
			continue
		}
		vals := make([]float64, len(c.Values))
		for i, v := range c.Values {
			if v.Numeric {
				vals[i] = v.Num
			} else {
				vals[i] = math.NaN()
			}
		}
		nd.Columns = append(nd.Columns, NumericColumn{Name: c.Name, Unit: c.Unit, Values: vals})
	}
	return nd
}

// Empty reports whether no numeric column survived extraction.
func (n *NumericDataset) Empty() bool { return n == nil || len(n.Columns) == 0 }

// Names lists the numeric column names in order.
func (n *NumericDataset) Names() []string {
	if n == nil {
		return nil
	}
	out := make([]string, len(n.Columns))
	for i, c := range n.Columns {
		out[i] = c.Name
	}
	return out
}

// Index returns the position of the named column, or -1.
func (n *NumericDataset) Index(name string) int {
	if n == nil {
		return -1
	}
	for i, c := range n.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether name is a numeric column.
func (n *NumericDataset) Has(name string) bool { return n.Index(name) >= 0 }

// Column returns the named numeric column.
func (n *NumericDataset) Column(name string) (NumericColumn, bool) {
	i := n.Index(name)
	if i < 0 {
		return NumericColumn{}, false
	}
	return n.Columns[i], true
}

// Pairwise returns the values of columns a and b on rows where both are present.
func (n *NumericDataset) Pairwise(a, b int) (xs, ys []float64) {
	ca, cb := n.Columns[a].Values, n.Columns[b].Values
	for i := range ca {
		if i >= len(cb) {
			break
		}
		if math.IsNaN(ca[i]) || math.IsNaN(cb[i]) {
			continue
		}
		xs = append(xs, ca[i])
		ys = append(ys, cb[i])
	}
	return xs, ys
}

// DefaultTarget picks the first preferred name present among the numeric
// columns, else the first numeric column. ok is false for an empty dataset.
func DefaultTarget(n *NumericDataset, preferred ...string) (string, bool) {
	if n.Empty() {
		return "", false
	}
	for _, p := range preferred {
		if n.Has(p) {
			return p, true
		}
	}
	return n.Columns[0].Name, true
}
