package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/corrlens-cli/internal/dataset"
	"github.com/spf13/cobra"
)

// loaderFlags holds the dataset loading flags shared by analyze, analyze-batch and columns.
type loaderFlags struct {
	delimiter       string
	encoding        string
	decimal         string
	thousands       string
	maxRows         int
	sheetName       string
	sheetIndex      int
	noUnitNormalize bool
}

func (l *loaderFlags) register(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&l.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed if omitted)")
	f.StringVar(&l.encoding, "encoding", "", "text encoding: auto|utf-8|cp949|euc-kr|latin1 (overrides config)")
	f.StringVar(&l.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	f.StringVar(&l.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	f.IntVar(&l.maxRows, "max-rows", 100000, "maximum rows to process (0 = unlimited)")
	f.StringVar(&l.sheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	f.IntVar(&l.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	f.BoolVar(&l.noUnitNormalize, "no-unit-normalize", false, "keep values in their original units")
}

// apply overrides opt with every flag the user set explicitly.
func (l *loaderFlags) apply(c *cobra.Command, opt *dataset.LoadOptions) error {
	f := c.Flags()
	if l.delimiter != "" {
		switch l.delimiter {
		case ",":
			opt.Delimiter = ','
		case "\t", `\t`, "tab":
			opt.Delimiter = '\t'
		case ";":
			opt.Delimiter = ';'
		case "|":
			opt.Delimiter = '|'
		default:
			return fmt.Errorf("unsupported --delimiter: %s", l.delimiter)
		}
	}
	if l.encoding != "" {
		opt.Encoding = l.encoding
	}
	// Locale separators
	switch strings.ToLower(strings.TrimSpace(l.decimal)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", l.decimal)
	}
	switch strings.ToLower(strings.TrimSpace(l.thousands)) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", l.thousands)
	}
	if opt.DecimalSeparator != 0 && opt.DecimalSeparator == opt.ThousandsSeparator {
		return fmt.Errorf("--decimal and --thousands must differ")
	}
	if f.Changed("max-rows") {
		if l.maxRows < 0 {
			return fmt.Errorf("--max-rows must be >= 0")
		}
		opt.MaxRows = l.maxRows
	}
	opt.SheetName = l.sheetName
	if l.sheetIndex > 0 {
		opt.SheetIndex = l.sheetIndex
	}
	if l.noUnitNormalize {
		opt.UnitNormalize = false
	}
	return nil
}
