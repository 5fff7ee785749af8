package table

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads one sheet of a workbook. An empty sheet name selects the
// first sheet. The first row is the header.
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	return New(rows[0], rows[1:]), nil
}

// WriteXLSX writes t to a single-sheet workbook. An empty sheet name keeps
// the workbook's default sheet.
func WriteXLSX(w io.Writer, t *Table, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	name := f.GetSheetName(0)
	if sheet != "" && sheet != name {
		if err := f.SetSheetName(name, sheet); err != nil {
			return fmt.Errorf("naming sheet: %w", err)
		}
		name = sheet
	}

	set := func(col, row int, value string) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(name, cell, value)
	}

	for i, h := range t.Header {
		if err := set(i+1, 1, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for r, row := range t.Rows {
		for c, v := range row {
			if v == "" {
				continue
			}
			if err := set(c+1, r+2, v); err != nil {
				return fmt.Errorf("writing row %d: %w", r+1, err)
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}
