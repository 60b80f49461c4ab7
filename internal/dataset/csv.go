package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type csvReader struct{}

func (csvReader) CanRead(path string) bool {
	return hasSuffix(path, ".csv", ".tsv", ".txt")
}

func (csvReader) Read(path string, opt LoadOptions) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "read", Err: err}
	}
	return parseCSV(path, b, opt)
}

// LoadReader reads CSV content from r. name is used for the dataset name and
// for delimiter sniffing by extension.
func LoadReader(name string, r io.Reader, opt LoadOptions) (*Dataset, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Path: name, Op: "read", Err: err}
	}
	return parseCSV(name, b, opt)
}

func parseCSV(path string, raw []byte, opt LoadOptions) (*Dataset, error) {
	text, encName, err := decodeText(raw, opt.Encoding)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "decode", Err: err}
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path, text)
	}
	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Path: path, Op: "read header", Err: ErrEmpty}
		}
		return nil, &LoadError{Path: path, Op: "read header", Err: err}
	}
	if len(header) == 0 {
		return nil, &LoadError{Path: path, Op: "read header", Err: ErrEmpty}
	}
	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &LoadError{Path: path, Op: fmt.Sprintf("read row %d", len(rows)+1), Err: err}
		}
		rows = append(rows, rec)
	}
	ds := FromRecords(filepath.Base(path), header, rows, opt)
	if encName != "utf-8" {
		ds.Warnings = append(ds.Warnings, fmt.Sprintf("decoded from %s", encName))
	}
	return ds, nil
}

// sniffDelimiter picks tab for .tsv files, otherwise the most frequent of
// ',', ';' and tab on the header line, defaulting to comma.
func sniffDelimiter(path string, text []byte) rune {
	if hasSuffix(path, ".tsv") {
		return '\t'
	}
	line := string(text)
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	best, bestN := ',', strings.Count(line, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}
