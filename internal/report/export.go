package report

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/corrlens-cli/internal/correlate"
	"github.com/KaramelBytes/corrlens-cli/internal/dataset"
	"github.com/KaramelBytes/corrlens-cli/internal/utils"
	"gopkg.in/yaml.v3"
)

// Document is the machine-readable form of a report. Undefined coefficients
// are nil so they encode as null.
type Document struct {
	RunID     string                  `json:"run_id" yaml:"run_id"`
	Dataset   string                  `json:"dataset" yaml:"dataset"`
	Rows      int                     `json:"rows" yaml:"rows"`
	TotalRows int                     `json:"total_rows" yaml:"total_rows"`
	Target    string                  `json:"target" yaml:"target"`
	Vector    []EntryDoc              `json:"vector" yaml:"vector"`
	TopK      []EntryDoc              `json:"top_k" yaml:"top_k"`
	Strongest *StrongestDoc           `json:"strongest" yaml:"strongest"`
	Matrix    MatrixDoc               `json:"matrix" yaml:"matrix"`
	Scatter   []SeriesDoc             `json:"scatter,omitempty" yaml:"scatter,omitempty"`
	Columns   []dataset.ColumnProfile `json:"columns" yaml:"columns"`
	Warnings  []string                `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type EntryDoc struct {
	Attribute string   `json:"attribute" yaml:"attribute"`
	R         *float64 `json:"r" yaml:"r"`
}

type StrongestDoc struct {
	Positive EntryDoc `json:"positive" yaml:"positive"`
	Negative EntryDoc `json:"negative" yaml:"negative"`
}

type MatrixDoc struct {
	Columns []string     `json:"columns" yaml:"columns"`
	Values  [][]*float64 `json:"values" yaml:"values"`
}

type SeriesDoc struct {
	Attribute string       `json:"attribute" yaml:"attribute"`
	R         *float64     `json:"r" yaml:"r"`
	Points    [][2]float64 `json:"points" yaml:"points"`
	Intercept *float64     `json:"intercept" yaml:"intercept"`
	Slope     *float64     `json:"slope" yaml:"slope"`
}

func coef(r float64) *float64 {
	if correlate.IsUndefined(r) {
		return nil
	}
	return &r
}

// Document converts the report for JSON or YAML encoding.
func (r *Report) Document() Document {
	res := r.Result
	d := Document{
		RunID:     r.RunID,
		Dataset:   r.Dataset,
		Rows:      r.Rows,
		TotalRows: r.TotalRows,
		Target:    res.Target,
		Vector:    make([]EntryDoc, 0, len(res.Vector)),
		TopK:      make([]EntryDoc, 0, len(res.TopK)),
		Columns:   r.Columns,
		Warnings:  r.Warnings,
	}
	for _, e := range res.Vector {
		d.Vector = append(d.Vector, EntryDoc{Attribute: e.Attribute, R: coef(e.R)})
	}
	for _, name := range res.TopK {
		rv, _ := res.Coefficient(name)
		d.TopK = append(d.TopK, EntryDoc{Attribute: name, R: coef(rv)})
	}
	if res.HasSummary {
		d.Strongest = &StrongestDoc{
			Positive: EntryDoc{Attribute: res.Positive.Attribute, R: coef(res.Positive.R)},
			Negative: EntryDoc{Attribute: res.Negative.Attribute, R: coef(res.Negative.R)},
		}
	}
	m := res.Matrix
	d.Matrix = MatrixDoc{Columns: append([]string(nil), m.Columns...), Values: make([][]*float64, m.Size())}
	for i := range m.Columns {
		row := make([]*float64, m.Size())
		for j := range m.Columns {
			row[j] = coef(m.AtIndex(i, j))
		}
		d.Matrix.Values[i] = row
	}
	for _, s := range r.Scatter {
		sd := SeriesDoc{Attribute: s.Attribute, R: coef(s.R), Points: make([][2]float64, len(s.Points))}
		for i, p := range s.Points {
			sd.Points[i] = [2]float64{p.X, p.Y}
		}
		if s.Trend.Defined {
			sd.Intercept, sd.Slope = coef(s.Trend.Intercept), coef(s.Trend.Slope)
		}
		d.Scatter = append(d.Scatter, sd)
	}
	return d
}

// WriteJSON encodes the report document as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	b, err := utils.PrettyJSON(r.Document())
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// WriteYAML encodes the report document as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.Document()); err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	return enc.Close()
}
