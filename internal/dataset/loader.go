package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOptions controls how source files are decoded and parsed.
type LoadOptions struct {
	// Delimiter for CSV. If 0, sniffed from the extension and header line.
	Delimiter rune
	// Encoding label ("auto", "utf-8", "cp949", "euc-kr", "latin1", or any WHATWG label).
	Encoding string
	// Numeric parsing locale. A zero separator is auto-detected per column.
	DecimalSeparator   rune
	ThousandsSeparator rune
	// MaxRows limits rows processed; 0 means unlimited.
	MaxRows int
	// XLSX sheet selection: by name, else 1-based index.
	SheetName  string
	SheetIndex int
	// Unit normalization: convert values to target units using simple mappings.
	UnitNormalize bool
	UnitTargets   map[string]string
}

// DefaultLoadOptions returns reasonable defaults for dataset loading.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Encoding:      "auto",
		MaxRows:       100000,
		SheetIndex:    1,
		UnitNormalize: true,
		UnitTargets: map[string]string{
			"g/L":  "mg/L",
			"ug/L": "mg/L",
			"°F":   "°C",
		},
	}
}

var (
	// ErrUnsupported indicates a file format no registered reader handles.
	ErrUnsupported = errors.New("unsupported dataset format")
	// ErrEmpty indicates a source without a header row.
	ErrEmpty = errors.New("dataset has no header row")
)

// LoadError reports a dataset that could not be located, decoded or parsed.
type LoadError struct {
	Path string
	Op   string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "load failed"
	}
	return fmt.Sprintf("load %s: %s: %v", filepath.Base(e.Path), e.Op, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Reader loads one family of file formats into a Dataset.
type Reader interface {
	CanRead(path string) bool
	Read(path string, opt LoadOptions) (*Dataset, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// Load selects a reader by file name and returns the parsed dataset.
func Load(path string, opt LoadOptions) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Op: "stat", Err: err}
	}
	for _, r := range registry {
		if r.CanRead(path) {
			return r.Read(path, opt)
		}
	}
	return nil, &LoadError{Path: path, Op: "detect format", Err: fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))}
}

// Supported reports whether some registered reader handles path.
func Supported(path string) bool {
	for _, r := range registry {
		if r.CanRead(path) {
			return true
		}
	}
	return false
}

func hasSuffix(path string, exts ...string) bool {
	name := strings.ToLower(path)
	for _, e := range exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}
