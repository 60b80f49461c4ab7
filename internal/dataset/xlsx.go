package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(path string) bool {
	return hasSuffix(path, ".xlsx", ".xlsm")
}

// Read loads the selected sheet. SheetName wins over SheetIndex; the index is
// 1-based and defaults to the first sheet.
func (xlsxReader) Read(path string, opt LoadOptions) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "open xlsx", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Path: path, Op: "select sheet", Err: ErrEmpty}
	}
	sheet := ""
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, &LoadError{Path: path, Op: "select sheet", Err: fmt.Errorf("sheet '%s' not found; available sheets: %s",
				opt.SheetName, strings.Join(sheets, ", "))}
		}
	} else {
		idx := opt.SheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return nil, &LoadError{Path: path, Op: "select sheet", Err: fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets))}
		}
		sheet = sheets[idx-1]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &LoadError{Path: path, Op: "read sheet " + sheet, Err: err}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &LoadError{Path: path, Op: "read header", Err: ErrEmpty}
	}
	name := filepath.Base(path)
	if len(sheets) > 1 {
		name = fmt.Sprintf("%s (sheet: %s)", name, sheet)
	}
	return FromRecords(name, rows[0], rows[1:], opt), nil
}
