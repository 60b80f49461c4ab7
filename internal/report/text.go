package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/corrlens-cli/internal/correlate"
	"github.com/olekukonko/tablewriter"
)

// WriteText renders the report as terminal tables followed by a shaded
// heat map of the correlation matrix.
func (r *Report) WriteText(w io.Writer) error {
	res := r.Result
	var b strings.Builder
	fmt.Fprintf(&b, "Dataset: %s\n", r.Dataset)
	if r.TotalRows > r.Rows {
		fmt.Fprintf(&b, "Rows: %d (processed %d)\n", r.TotalRows, r.Rows)
	} else {
		fmt.Fprintf(&b, "Rows: %d\n", r.Rows)
	}
	fmt.Fprintf(&b, "Target: %s\n", res.Target)
	fmt.Fprintf(&b, "Numeric columns: %d\n\n", len(r.Numeric))
	if res.HasSummary {
		fmt.Fprintf(&b, "Strongest positive: %s\n", res.Positive)
		fmt.Fprintf(&b, "Strongest negative: %s\n\n", res.Negative)
	} else {
		b.WriteString("No defined correlations with the target.\n\n")
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	fmt.Fprintf(w, "Correlation with %s\n", res.Target)
	vt := newTable(w, []string{"#", "Attribute", "r"})
	for i, e := range res.Vector {
		vt.Append([]string{strconv.Itoa(i + 1), e.Attribute, FormatR(e.R)})
	}
	vt.Render()

	fmt.Fprintf(w, "\nTop %d by |r|\n", len(res.TopK))
	tt := newTable(w, []string{"#", "Attribute", "r", "Trend"})
	for i, name := range res.TopK {
		rv, _ := res.Coefficient(name)
		tt.Append([]string{strconv.Itoa(i + 1), name, FormatR(rv), r.trendFor(name)})
	}
	tt.Render()

	fmt.Fprintln(w, "\nCorrelation matrix")
	m := res.Matrix
	mt := newTable(w, append([]string{""}, m.Columns...))
	for i, name := range m.Columns {
		row := []string{name}
		for j := range m.Columns {
			row = append(row, FormatR(m.AtIndex(i, j)))
		}
		mt.Append(row)
	}
	mt.Render()

	fmt.Fprintln(w, "\nHeat map")
	if _, err := io.WriteString(w, HeatMap(m)); err != nil {
		return err
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "\nNotes:")
		for _, n := range r.Warnings {
			fmt.Fprintf(w, "  - %s\n", n)
		}
	}
	return nil
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	return t
}

func (r *Report) trendFor(attribute string) string {
	for _, s := range r.Scatter {
		if s.Attribute == attribute {
			return trendString(s)
		}
	}
	return "-"
}

func trendString(s correlate.ScatterSeries) string {
	if !s.Trend.Defined {
		return "N/A"
	}
	return fmt.Sprintf("y = %.4g %+.4g·x (n=%d)", s.Trend.Intercept, s.Trend.Slope, len(s.Points))
}

// shade maps |r| onto increasingly dense blocks.
var shade = []string{"·", "░", "▒", "▓", "█"}

// Cell returns the two-rune heat map glyph for r: a sign and a density block.
func Cell(r float64) string {
	if correlate.IsUndefined(r) {
		return " ?"
	}
	idx := int(math.Abs(r) * float64(len(shade)))
	if idx >= len(shade) {
		idx = len(shade) - 1
	}
	sign := "+"
	if r < 0 {
		sign = "-"
	}
	return sign + shade[idx]
}

// HeatMap draws the matrix as a grid of shaded cells with a numbered legend.
func HeatMap(m *correlate.Matrix) string {
	var b strings.Builder
	n := m.Size()
	width := len(strconv.Itoa(n))
	b.WriteString(strings.Repeat(" ", width+1))
	for j := 0; j < n; j++ {
		fmt.Fprintf(&b, " %*d", width+1, j+1)
	}
	b.WriteString("\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%*d ", width, i+1)
		for j := 0; j < n; j++ {
			fmt.Fprintf(&b, " %*s", width+1, Cell(m.AtIndex(i, j)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for i, name := range m.Columns {
		fmt.Fprintf(&b, "%*d = %s\n", width, i+1, name)
	}
	fmt.Fprintf(&b, "scale: %s (0 to 1 by |r|), sign +/-, ? undefined\n", strings.Join(shade, " "))
	return b.String()
}
