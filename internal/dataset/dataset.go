package dataset

import (
	"fmt"
	"strings"
)

// Kind is the inferred semantic type of a column.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumeric
	KindDatetime
	KindCategorical
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNumeric:
		return "numeric"
	case KindDatetime:
		return "datetime"
	case KindCategorical:
		return "categorical"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// MarshalText lets Kind render as its name in JSON and YAML.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	for c := KindEmpty; c <= KindText; c++ {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown column kind %q", b)
}

// IsNumeric reports whether columns of this kind feed the correlation analysis.
// Empty columns count as numeric with zero observations.
func (k Kind) IsNumeric() bool { return k == KindNumeric || k == KindEmpty }

// Value is one parsed cell.
type Value struct {
	Raw     string
	Num     float64
	Numeric bool
}

// Missing reports whether the cell is blank or an NA marker.
func (v Value) Missing() bool { return isNA(v.Raw) }

// Column is a named, typed sequence of cells.
type Column struct {
	Name   string
	Unit   string
	Kind   Kind
	Values []Value
}

// Dataset is an in-memory table. All columns have Rows values.
type Dataset struct {
	Name     string
	Rows     int
	Total    int // rows seen in the source before MaxRows truncation
	Columns  []Column
	Warnings []string
}

// Column looks a column up by exact name.
func (d *Dataset) Column(name string) (*Column, bool) {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i], true
		}
	}
	return nil, false
}

// Names lists column names in source order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Name
	}
	return out
}

// Row returns the raw cells of row i in column order.
func (d *Dataset) Row(i int) []string {
	out := make([]string, len(d.Columns))
	for j, c := range d.Columns {
		if i < len(c.Values) {
			out[j] = c.Values[i].Raw
		}
	}
	return out
}

// FromRecords builds a Dataset from a header row and data rows, parsing every
// cell and classifying each column. Short rows are padded with missing cells.
func FromRecords(name string, header []string, rows [][]string, opt LoadOptions) *Dataset {
	ds := &Dataset{Name: name, Total: len(rows)}
	if len(header) == 0 {
		return ds
	}
	limit := len(rows)
	if opt.MaxRows > 0 && opt.MaxRows < limit {
		limit = opt.MaxRows
		ds.Warnings = append(ds.Warnings, fmt.Sprintf("processed only %d/%d rows due to MaxRows", limit, len(rows)))
	}
	ds.Rows = limit

	ds.Columns = make([]Column, len(header))
	seen := map[string]int{}
	for j, h := range header {
		clean, unit := splitUnits(strings.TrimSpace(h))
		if clean == "" {
			clean = fmt.Sprintf("column_%d", j+1)
		}
		if n := seen[clean]; n > 0 {
			ds.Warnings = append(ds.Warnings, fmt.Sprintf("duplicate column name %q renamed to %q", clean, fmt.Sprintf("%s.%d", clean, n)))
			seen[clean] = n + 1
			clean = fmt.Sprintf("%s.%d", clean, n)
		} else {
			seen[clean] = 1
		}
		ds.Columns[j] = Column{Name: clean, Unit: unit, Values: make([]Value, limit)}
	}

	for i := 0; i < limit; i++ {
		rec := rows[i]
		for j := range ds.Columns {
			raw := ""
			if j < len(rec) {
				raw = strings.TrimSpace(rec[j])
			}
			ds.Columns[j].Values[i] = Value{Raw: raw}
		}
	}
	for j := range ds.Columns {
		classify(&ds.Columns[j], opt)
	}
	return ds
}

// classify parses numeric cells and assigns the column Kind. A column is numeric
// only when every non-missing cell parses as a number under one shared pair of
// decimal and thousands separators.
func classify(c *Column, opt LoadOptions) {
	unit := c.Unit
	for _, v := range c.Values {
		if !v.Missing() && strings.Contains(v.Raw, "%") && unit == "" {
			unit = "%"
			break
		}
	}
	var present []string
	for _, v := range c.Values {
		if !v.Missing() {
			present = append(present, v.Raw)
		}
	}
	nonNil := len(present)
	nf, numeric := detectFormat(present, opt)
	var dtCnt int
	cats := map[string]int{}
	for i := range c.Values {
		v := &c.Values[i]
		if v.Missing() {
			continue
		}
		if numeric {
			v.Num, v.Numeric = nf.parse(v.Raw)
			continue
		}
		if _, ok := parseTimeMaybe(v.Raw); ok {
			dtCnt++
			continue
		}
		if len(v.Raw) <= 64 {
			cats[v.Raw]++
		}
	}
	switch {
	case nonNil == 0:
		c.Kind = KindEmpty
	case numeric:
		c.Kind = KindNumeric
		c.Unit = unit
		if opt.UnitNormalize && unit != "" {
			if _, nu, ok := normalizeUnit(0, unit, opt.UnitTargets); ok {
				for i := range c.Values {
					if c.Values[i].Numeric {
						c.Values[i].Num, _, _ = normalizeUnit(c.Values[i].Num, unit, opt.UnitTargets)
					}
				}
				c.Unit = nu
			}
		}
	case dtCnt == nonNil:
		c.Kind = KindDatetime
	case len(cats) > 0 && len(cats) < nonNil:
		c.Kind = KindCategorical
	default:
		c.Kind = KindText
	}
	if c.Kind != KindNumeric {
		for i := range c.Values {
			c.Values[i].Numeric = false
			c.Values[i].Num = 0
		}
	}
}
