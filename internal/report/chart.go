package report

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/corrlens-cli/internal/correlate"
	"github.com/KaramelBytes/corrlens-cli/internal/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveCharts writes one scatter PNG per series plus a heat map of the matrix
// into dir and returns the written paths in that order.
func (r *Report) SaveCharts(dir string) ([]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	var written []string
	for i, s := range r.Scatter {
		if len(s.Points) == 0 {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%02d_%s_vs_%s.png", i+1, fileSafe(s.Attribute), fileSafe(s.Target)))
		if err := saveScatter(s, path); err != nil {
			return written, fmt.Errorf("scatter %s: %w", s.Attribute, err)
		}
		written = append(written, path)
	}
	if r.Result.Matrix.Size() > 0 {
		path := filepath.Join(dir, "heatmap.png")
		if err := saveHeatMap(r.Result.Matrix, path); err != nil {
			return written, fmt.Errorf("heat map: %w", err)
		}
		written = append(written, path)
	}
	return written, nil
}

func saveScatter(s correlate.ScatterSeries, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s (r=%s)", s.Target, s.Attribute, FormatR(s.R))
	p.X.Label.Text = s.Attribute
	p.Y.Label.Text = s.Target

	pts := make(plotter.XYs, len(s.Points))
	for i, pt := range s.Points {
		pts[i].X = pt.X
		pts[i].Y = pt.Y
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.Color = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	p.Add(sc)

	if s.Trend.Defined {
		line, err := plotter.NewLine(plotter.XYs{
			{X: s.MinX, Y: s.Trend.At(s.MinX)},
			{X: s.MaxX, Y: s.Trend.At(s.MaxX)},
		})
		if err != nil {
			return err
		}
		line.Color = color.RGBA{R: 255, A: 255}
		line.LineStyle.Width = vg.Points(2)
		p.Add(line)
	}
	return p.Save(5*vg.Inch, 4*vg.Inch, path)
}

// matrixGrid adapts a correlation matrix to plotter.GridXYZ; row 0 is drawn at the top.
type matrixGrid struct{ m *correlate.Matrix }

func (g matrixGrid) Dims() (c, r int)   { return g.m.Size(), g.m.Size() }
func (g matrixGrid) Z(c, r int) float64 { return g.m.AtIndex(g.m.Size()-1-r, c) }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }

func saveHeatMap(m *correlate.Matrix, path string) error {
	pal := moreland.SmoothBlueRed()
	pal.SetMin(-1)
	pal.SetMax(1)
	h := plotter.NewHeatMap(matrixGrid{m: m}, pal.Palette(64))
	h.Min, h.Max = -1, 1
	h.NaN = color.Gray{Y: 200}

	p := plot.New()
	p.Title.Text = "Correlation matrix"
	p.Add(h)
	names := make([]plot.Tick, m.Size())
	rows := make([]plot.Tick, m.Size())
	for i, c := range m.Columns {
		names[i] = plot.Tick{Value: float64(i), Label: c}
		rows[i] = plot.Tick{Value: float64(m.Size() - 1 - i), Label: c}
	}
	p.X.Tick.Marker = plot.ConstantTicks(names)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = -1
	p.Y.Tick.Marker = plot.ConstantTicks(rows)

	size := vg.Length(m.Size())*0.6*vg.Inch + 2*vg.Inch
	return p.Save(size, size, path)
}

func fileSafe(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "column"
	}
	return b.String()
}
