package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/school-names/internal/schools"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// UnmatchedName is a value that did not resolve, with how often it occurred.
type UnmatchedName struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CheckReport is the result of the check command.
type CheckReport struct {
	Input     string          `json:"input"`
	Columns   []string        `json:"columns"`
	Checked   int             `json:"checked"`
	Missing   int             `json:"missing"`
	Unmatched []UnmatchedName `json:"unmatched"`
}

// KeysReport is the result of the keys command.
type KeysReport struct {
	Entries    []schools.Entry     `json:"entries"`
	Collisions []schools.Collision `json:"collisions"`
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeLookup(w io.Writer, results []schools.Result, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, results)
	}

	for _, res := range results {
		switch res.Outcome {
		case schools.OutcomeMissing:
			fmt.Fprintf(w, "%q: (blank)\n", res.Input)
		case schools.OutcomePassthrough:
			fmt.Fprintf(w, "%s: NOT FOUND\n", res.Input)
		default:
			fmt.Fprintf(w, "%s: %s\n", res.Input, res.Name)
		}
	}
	return nil
}

func writeCheck(w io.Writer, report *CheckReport, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, report)
	}

	if len(report.Unmatched) == 0 {
		fmt.Fprintf(w, "All %d names recognized (%d blank).\n", report.Checked, report.Missing)
		return nil
	}

	for _, u := range report.Unmatched {
		fmt.Fprintf(w, "%5d  %s\n", u.Count, u.Name)
	}
	fmt.Fprintf(w, "\nTotal: %d unrecognized names in %d values\n", len(report.Unmatched), report.Checked)
	return nil
}

func writeKeys(w io.Writer, report *KeysReport, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, report)
	}

	for _, e := range report.Entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Key, e.Name)
	}
	if len(report.Collisions) > 0 {
		fmt.Fprintf(w, "\nOverwritten keys (%d):\n", len(report.Collisions))
		for _, col := range report.Collisions {
			fmt.Fprintf(w, "  %s: %s -> %s\n", col.Key, col.Previous, col.Winner)
		}
	}
	return nil
}
