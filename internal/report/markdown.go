package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/corrlens-cli/internal/dataset"
)

// Markdown renders the report as sectioned Markdown suitable for standalone docs.
func (r *Report) Markdown() string {
	res := r.Result
	var b strings.Builder
	b.WriteString("[CORRELATION SUMMARY]\n")
	b.WriteString(fmt.Sprintf("File: %s\n", r.Dataset))
	if r.TotalRows > r.Rows {
		b.WriteString(fmt.Sprintf("Rows: ~%d (processed %d)\n", r.TotalRows, r.Rows))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	}
	b.WriteString(fmt.Sprintf("Target: %s\n", res.Target))
	b.WriteString(fmt.Sprintf("Numeric columns: %d (%s)\n", len(r.Numeric), strings.Join(r.Numeric, ", ")))
	b.WriteString(fmt.Sprintf("Run: %s\n\n", r.RunID))

	b.WriteString("[STRONGEST RELATIONS]\n")
	if res.HasSummary {
		b.WriteString(fmt.Sprintf("- Positive: %s\n", res.Positive))
		b.WriteString(fmt.Sprintf("- Negative: %s\n", res.Negative))
	} else {
		b.WriteString("- none: every coefficient with the target is undefined\n")
	}

	b.WriteString(fmt.Sprintf("\n[CORRELATION WITH %s]\n", res.Target))
	for _, e := range res.Vector {
		b.WriteString(fmt.Sprintf("- %s: r=%s\n", safeVal(e.Attribute), FormatR(e.R)))
	}

	b.WriteString(fmt.Sprintf("\n[TOP %d BY |r|]\n", len(res.TopK)))
	for i, name := range res.TopK {
		rv, _ := res.Coefficient(name)
		b.WriteString(fmt.Sprintf("%d. %s (r=%s)", i+1, safeVal(name), FormatR(rv)))
		if t := r.trendFor(name); t != "-" {
			b.WriteString(" — trend: ")
			b.WriteString(t)
		}
		b.WriteString("\n")
	}

	m := res.Matrix
	if m.Size() > 0 {
		b.WriteString("\n[CORRELATION MATRIX]\n")
		b.WriteString("| |")
		for _, c := range m.Columns {
			b.WriteString(" ")
			b.WriteString(safeVal(c))
			b.WriteString(" |")
		}
		b.WriteString("\n|---|")
		b.WriteString(strings.Repeat("---:|", m.Size()))
		b.WriteString("\n")
		for i, c := range m.Columns {
			b.WriteString("| ")
			b.WriteString(safeVal(c))
			b.WriteString(" |")
			for j := range m.Columns {
				b.WriteString(" ")
				b.WriteString(FormatR(m.AtIndex(i, j)))
				b.WriteString(" |")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n```\n")
		b.WriteString(HeatMap(m))
		b.WriteString("```\n")
	}

	if len(r.Columns) > 0 {
		b.WriteString("\n[SCHEMA]\n")
		for _, c := range r.Columns {
			writeSchemaLine(&b, c)
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeSchemaLine(b *strings.Builder, c dataset.ColumnProfile) {
	missPct := 0.0
	if total := c.NonNull + c.Missing; total > 0 {
		missPct = float64(c.Missing) * 100.0 / float64(total)
	}
	name := safeVal(c.Name)
	if c.Unit != "" {
		name = fmt.Sprintf("%s [%s]", name, c.Unit)
	}
	b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", name, c.Kind, c.NonNull, missPct))
	switch c.Kind {
	case dataset.KindNumeric:
		if c.NonNull > 0 {
			b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
		}
		if c.OutlierThreshold > 0 {
			b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.OutliersCount, c.OutlierThreshold))
		}
	case dataset.KindCategorical:
		if len(c.TopValues) > 0 {
			b.WriteString(" — top: ")
			for i, kv := range c.TopValues {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
			}
		}
	}
	b.WriteString("\n")
}
