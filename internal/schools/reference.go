package schools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pfrederiksen/school-names/internal/table"
)

// Reference table column headers.
const (
	ColumnTeam             = "Team"
	ColumnNickname         = "Nickname"
	ColumnConferenceAbbrev = "ConferenceAbbrev"

	// altNameMarker selects alternate-spelling columns: any header containing it.
	altNameMarker = "Name"
)

var (
	// ErrMissingColumn is returned when the reference table lacks a required column.
	ErrMissingColumn = errors.New("reference table missing required column")
	// ErrEmptyTeam is returned when a reference row has no canonical name.
	ErrEmptyTeam = errors.New("reference row has empty Team")
)

// Reference is one recognized school.
type Reference struct {
	Team             string   `json:"team"`
	Nickname         string   `json:"nickname"`
	AltNames         []string `json:"alt_names,omitempty"`
	ConferenceAbbrev string   `json:"conference_abbrev,omitempty"`
}

// ParseReference converts a reference table into rows, in table order.
// The table needs a Team column, a Nickname column and at least one column
// whose header contains "Name". ConferenceAbbrev is read when present.
// Blank and not-a-value alternate cells are dropped.
func ParseReference(t *table.Table) ([]Reference, error) {
	teamIdx, err := t.Column(ColumnTeam)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnTeam)
	}
	nickIdx, err := t.Column(ColumnNickname)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnNickname)
	}
	confIdx, _ := t.Column(ColumnConferenceAbbrev)

	var altIdx []int
	for i, h := range t.Header {
		if strings.Contains(h, altNameMarker) {
			altIdx = append(altIdx, i)
		}
	}
	if len(altIdx) == 0 {
		return nil, fmt.Errorf("%w: no header containing %q", ErrMissingColumn, altNameMarker)
	}

	refs := make([]Reference, 0, len(t.Rows))
	for i, row := range t.Rows {
		team := row[teamIdx]
		if IsMissing(team) {
			// +2: header is line 1
			return nil, fmt.Errorf("%w: row %d", ErrEmptyTeam, i+2)
		}

		ref := Reference{
			Team:     team,
			Nickname: cell(row[nickIdx]),
		}
		if confIdx >= 0 {
			ref.ConferenceAbbrev = cell(row[confIdx])
		}
		for _, idx := range altIdx {
			if alt := cell(row[idx]); alt != "" {
				ref.AltNames = append(ref.AltNames, alt)
			}
		}
		refs = append(refs, ref)
	}

	return refs, nil
}

// LoadReference reads and parses a reference file (.csv, .xlsx or .html).
func LoadReference(path string, opts table.Options) ([]Reference, error) {
	t, err := table.Load(path, opts)
	if err != nil {
		return nil, fmt.Errorf("loading reference: %w", err)
	}
	refs, err := ParseReference(t)
	if err != nil {
		return nil, fmt.Errorf("parsing reference %s: %w", path, err)
	}
	return refs, nil
}

// cell returns v, or "" when v is a missing value.
func cell(v string) string {
	if IsMissing(v) {
		return ""
	}
	return v
}

// missingMarkers mirrors the not-a-value spellings that spreadsheet and
// dataframe exports write for empty cells.
var missingMarkers = map[string]bool{
	"nan":  true,
	"NaN":  true,
	"NA":   true,
	"N/A":  true,
	"#N/A": true,
	"null": true,
	"NULL": true,
	"None": true,
}

// IsMissing reports whether v stands for an absent value: empty, whitespace
// only, or a not-a-value marker such as "nan".
func IsMissing(v string) bool {
	s := strings.TrimSpace(v)
	return s == "" || missingMarkers[s]
}
