package correlate

import (
	"math"

	"github.com/KaramelBytes/corrlens-cli/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// Point is one scatter observation: X is the attribute, Y the target.
type Point struct {
	X float64
	Y float64
}

// TrendLine is the ordinary least squares fit Y = Intercept + Slope*X.
type TrendLine struct {
	Intercept float64
	Slope     float64
	Defined   bool
}

// At evaluates the line at x.
func (t TrendLine) At(x float64) float64 { return t.Intercept + t.Slope*x }

// ScatterSeries is the data behind one attribute-vs-target chart.
type ScatterSeries struct {
	Attribute string
	Target    string
	R         float64
	Points    []Point
	Trend     TrendLine
	MinX      float64
	MaxX      float64
}

// Scatter collects the rows where both attribute and target are present and
// fits a trend line through them.
func Scatter(nd *dataset.NumericDataset, target, attribute string) (ScatterSeries, error) {
	ti, ai := nd.Index(target), nd.Index(attribute)
	if ti < 0 {
		return ScatterSeries{}, &MissingTargetError{Target: target, Available: nd.Names()}
	}
	if ai < 0 {
		return ScatterSeries{}, &MissingTargetError{Target: attribute, Available: nd.Names()}
	}
	xs, ys := nd.Pairwise(ai, ti)
	s := ScatterSeries{Attribute: attribute, Target: target, R: Pearson(xs, ys), Points: make([]Point, len(xs))}
	s.MinX, s.MaxX = math.Inf(1), math.Inf(-1)
	for i := range xs {
		s.Points[i] = Point{X: xs[i], Y: ys[i]}
		s.MinX = math.Min(s.MinX, xs[i])
		s.MaxX = math.Max(s.MaxX, xs[i])
	}
	if len(xs) == 0 {
		s.MinX, s.MaxX = 0, 0
	}
	if len(xs) >= 2 && !constant(xs) {
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		if !math.IsNaN(alpha) && !math.IsNaN(beta) && !math.IsInf(alpha, 0) && !math.IsInf(beta, 0) {
			s.Trend = TrendLine{Intercept: alpha, Slope: beta, Defined: true}
		}
	}
	return s, nil
}

// ScatterTopK builds one series per selected attribute of res.
func ScatterTopK(nd *dataset.NumericDataset, res *Result) ([]ScatterSeries, error) {
	out := make([]ScatterSeries, 0, len(res.TopK))
	for _, a := range res.TopK {
		s, err := Scatter(nd, res.Target, a)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
