package table

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type upper struct{}

func (upper) Canonicalize(raw string) string { return strings.ToUpper(raw) }

func TestNewFitsRows(t *testing.T) {
	tbl := New([]string{"a", "b", "c"}, [][]string{{"1"}, {"1", "2", "3", "4"}})

	want := [][]string{{"1", "", ""}, {"1", "2", "3"}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Errorf("Rows = %v, want %v", tbl.Rows, want)
	}
}

func TestCanonicalizeColumn(t *testing.T) {
	tbl := New([]string{"School", "W"}, [][]string{{"neb.", "9"}, {"iowa", "7"}})

	got, err := CanonicalizeColumn(tbl, "School", upper{})
	if err != nil {
		t.Fatalf("CanonicalizeColumn: %v", err)
	}
	if got != tbl {
		t.Error("expected the same table to be returned")
	}

	values, _ := tbl.Values("School")
	if !reflect.DeepEqual(values, []string{"NEB.", "IOWA"}) {
		t.Errorf("School = %v", values)
	}
	wins, _ := tbl.Values("W")
	if !reflect.DeepEqual(wins, []string{"9", "7"}) {
		t.Errorf("other columns changed: %v", wins)
	}
}

func TestCanonicalizeColumnUnknown(t *testing.T) {
	tbl := New([]string{"School"}, nil)

	_, err := CanonicalizeColumn(tbl, "Team", upper{})
	if !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestReadCSV(t *testing.T) {
	in := "\ufeffTeam,Nickname,AltName1\nNebraska,Huskers,Neb.\nIowa,Hawkeyes\n"

	tbl, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	if !reflect.DeepEqual(tbl.Header, []string{"Team", "Nickname", "AltName1"}) {
		t.Errorf("Header = %v", tbl.Header)
	}
	want := [][]string{{"Nebraska", "Huskers", "Neb."}, {"Iowa", "Hawkeyes", ""}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Errorf("Rows = %v, want %v", tbl.Rows, want)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"too many fields", "a,b\n1,2,3\n"},
		{"bad quote", "a,b\n\"1,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	tbl := New([]string{"School", "Note"}, [][]string{{"Texas A&M", "has, comma"}})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, tbl); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "School,Note\nTexas A&M,\"has, comma\"\n"
	if buf.String() != want {
		t.Errorf("WriteCSV = %q, want %q", buf.String(), want)
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	tbl := New([]string{"Team", "Nickname", "AltName1"}, [][]string{
		{"Nebraska", "Huskers", "Neb."},
		{"Iowa", "Hawkeyes", ""},
	})

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, tbl, "Schools"); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	got, err := ReadXLSX(bytes.NewReader(buf.Bytes()), "")
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if !reflect.DeepEqual(got, tbl) {
		t.Errorf("ReadXLSX = %+v, want %+v", got, tbl)
	}

	if _, err := ReadXLSX(bytes.NewReader(buf.Bytes()), "Missing"); err == nil {
		t.Error("expected error for unknown sheet")
	}
}

func TestReadHTML(t *testing.T) {
	page := `<html><body>
<table id="other"><tr><td>ignore</td></tr></table>
<table id="standings">
  <thead>
    <tr class="over_header"><th colspan="2"></th><th colspan="2">Overall</th></tr>
    <tr><th>Rk</th><th>School</th><th>W</th><th>L</th></tr>
  </thead>
  <tbody>
    <tr><th>1</th><td><a href="/cfb/schools/nebraska/">Nebraska</a></td><td>9</td><td>3</td></tr>
    <tr class="thead"><th>Rk</th><th>School</th><th>W</th><th>L</th></tr>
    <tr><th>2</th><td>Iowa
        State</td><td>7</td><td>5</td></tr>
    <tr><th>Rk</th><th>School</th><th>W</th><th>L</th></tr>
  </tbody>
</table>
</body></html>`

	tbl, err := ReadHTML(strings.NewReader(page), 1)
	if err != nil {
		t.Fatalf("ReadHTML: %v", err)
	}

	if !reflect.DeepEqual(tbl.Header, []string{"Rk", "School", "W", "L"}) {
		t.Errorf("Header = %v", tbl.Header)
	}
	want := [][]string{{"1", "Nebraska", "9", "3"}, {"2", "Iowa State", "7", "5"}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Errorf("Rows = %v, want %v", tbl.Rows, want)
	}
}

func TestReadHTMLWithoutThead(t *testing.T) {
	page := `<table><tr><th>Team</th><th>Nickname</th></tr><tr><td>Purdue</td><td>Boilermakers</td></tr></table>`

	tbl, err := ReadHTML(strings.NewReader(page), 0)
	if err != nil {
		t.Fatalf("ReadHTML: %v", err)
	}
	if !reflect.DeepEqual(tbl.Header, []string{"Team", "Nickname"}) {
		t.Errorf("Header = %v", tbl.Header)
	}
	if !reflect.DeepEqual(tbl.Rows, [][]string{{"Purdue", "Boilermakers"}}) {
		t.Errorf("Rows = %v", tbl.Rows)
	}

	if _, err := ReadHTML(strings.NewReader(page), 3); err == nil {
		t.Error("expected out of range error")
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	tbl := New([]string{"School", "W"}, [][]string{{"Nebraska", "9"}})

	for _, name := range []string{"out/records.csv", "out/records.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, filepath.FromSlash(name))
			if err := Save(path, tbl, Options{}); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path, Options{})
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(got, tbl) {
				t.Errorf("Load = %+v, want %+v", got, tbl)
			}
		})
	}

	if err := Save(filepath.Join(dir, "records.html"), tbl, Options{}); err == nil {
		t.Error("expected error saving html")
	}
	if _, err := Load(filepath.Join(dir, "records.json"), Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
