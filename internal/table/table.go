package table

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrColumnNotFound is returned when a named column is absent from the header.
var ErrColumnNotFound = errors.New("column not found")

// Table is a flat table of string cells. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// New builds a table from a header and rows, padding or truncating rows
// to the header width.
func New(header []string, rows [][]string) *Table {
	t := &Table{
		Header: append([]string(nil), header...),
		Rows:   make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, fit(row, len(header)))
	}
	return t
}

func fit(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, err := t.Column(name)
	return err == nil
}

// Values returns a copy of every cell in the named column.
func (t *Table) Values(name string) ([]string, error) {
	idx, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Canonicalizer maps a raw cell value to its standardized form.
type Canonicalizer interface {
	Canonicalize(raw string) string
}

// CanonicalizeColumn replaces every value in the named column with its
// canonical form and returns the same table.
func CanonicalizeColumn(t *Table, column string, c Canonicalizer) (*Table, error) {
	idx, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		row[idx] = c.Canonicalize(row[idx])
	}
	return t, nil
}

// Format identifies an on-disk table encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

// FormatFor picks a format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported table format: %q", path)
	}
}

// Options tune Load and Save.
type Options struct {
	// Sheet selects the xlsx sheet; empty means the first sheet.
	Sheet string
	// TableIndex selects which <table> to read from an HTML file.
	TableIndex int
}

// Load reads a table from path, choosing the decoder from its extension.
func Load(path string, opts Options) (*Table, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table: %w", err)
	}
	defer f.Close()

	var t *Table
	switch format {
	case FormatCSV:
		t, err = ReadCSV(f)
	case FormatXLSX:
		t, err = ReadXLSX(f, opts.Sheet)
	case FormatHTML:
		t, err = ReadHTML(f, opts.TableIndex)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// Save writes t to path as CSV or XLSX, creating parent directories.
func Save(path string, t *Table, opts Options) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if format == FormatHTML {
		return fmt.Errorf("writing html tables is not supported: %q", path)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating table file: %w", err)
	}

	switch format {
	case FormatCSV:
		err = WriteCSV(f, t)
	case FormatXLSX:
		err = WriteXLSX(f, t, opts.Sheet)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
