// Package report turns an analysis result into text, Markdown, JSON or YAML.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/corrlens-cli/internal/correlate"
	"github.com/KaramelBytes/corrlens-cli/internal/dataset"
	"github.com/google/uuid"
)

// Format selects an output rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat accepts the format names and a few common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use text|markdown|json|yaml)", s)
	}
}

// Options controls what New includes beyond the core result.
type Options struct {
	// Scatter adds one point series with a trend line per top-K attribute.
	Scatter bool
	// OutlierThreshold is passed to the column profiler.
	OutlierThreshold float64
}

// Report is the envelope handed to renderers for one analysis run.
type Report struct {
	RunID     string
	Dataset   string
	Rows      int
	TotalRows int
	Columns   []dataset.ColumnProfile
	Numeric   []string
	Result    *correlate.Result
	Scatter   []correlate.ScatterSeries
	Warnings  []string
}

// New assembles a report for res computed from nd, itself extracted from ds.
func New(ds *dataset.Dataset, nd *dataset.NumericDataset, res *correlate.Result, opt Options) (*Report, error) {
	if ds == nil || nd == nil || res == nil {
		return nil, fmt.Errorf("report: dataset and result are required")
	}
	r := &Report{
		RunID:     uuid.NewString(),
		Dataset:   ds.Name,
		Rows:      ds.Rows,
		TotalRows: ds.Total,
		Columns:   dataset.Profile(ds, opt.OutlierThreshold),
		Numeric:   nd.Names(),
		Result:    res,
		Warnings:  append([]string(nil), ds.Warnings...),
	}
	if opt.Scatter {
		series, err := correlate.ScatterTopK(nd, res)
		if err != nil {
			return nil, fmt.Errorf("scatter series: %w", err)
		}
		r.Scatter = series
	}
	for _, p := range r.Columns {
		if p.Constant() {
			r.Warnings = append(r.Warnings, fmt.Sprintf("column '%s' is constant; its correlations are undefined", p.Name))
		}
	}
	return r, nil
}

// Render writes the report in the requested format.
func (r *Report) Render(w io.Writer, f Format) error {
	switch f {
	case FormatText, "":
		return r.WriteText(w)
	case FormatMarkdown:
		_, err := io.WriteString(w, r.Markdown())
		return err
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatYAML:
		return r.WriteYAML(w)
	default:
		return fmt.Errorf("unsupported format: %s", f)
	}
}

// FormatR renders a coefficient to three decimals, or N/A when undefined.
func FormatR(r float64) string {
	if correlate.IsUndefined(r) {
		return "N/A"
	}
	return fmt.Sprintf("%.3f", r)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
