package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/school-names/internal/logger"
	"github.com/pfrederiksen/school-names/internal/schools"
	"github.com/pfrederiksen/school-names/internal/table"
)

var (
	flagInput      string
	flagOutput     string
	flagColumns    []string
	flagTableIndex int
)

func newCanonicalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canonicalize",
		Short: "Replace school names in table columns with canonical names",
		Long: `Read a table, replace every value in the given columns with its canonical
school name, and write the result. Without --output the table is written to
stdout as CSV. Unrecognized names are kept as they are and logged.`,
		Args: cobra.NoArgs,
		RunE: runCanonicalize,
	}

	addInputFlags(cmd)
	cmd.Flags().StringVar(&flagOutput, "output", "", "Output file (.csv or .xlsx); default: CSV on stdout")

	return cmd
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagInput, "input", "", "Table to read (.csv, .xlsx or .html) (required)")
	cmd.Flags().StringSliceVar(&flagColumns, "column", nil, "Column holding school names; repeatable (required)")
	cmd.Flags().IntVar(&flagTableIndex, "table-index", 0, "Which <table> to read from an HTML input")

	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("column")
}

func loadInput() (*table.Table, error) {
	opts := tableOptions()
	opts.TableIndex = flagTableIndex
	return table.Load(flagInput, opts)
}

func runCanonicalize(cmd *cobra.Command, args []string) error {
	c, err := loadCanonicalizer()
	if err != nil {
		return err
	}

	t, err := loadInput()
	if err != nil {
		return err
	}

	for _, column := range flagColumns {
		if _, err := table.CanonicalizeColumn(t, column, c); err != nil {
			return fmt.Errorf("canonicalizing %s: %w", column, err)
		}
	}

	if flagOutput == "" {
		return table.WriteCSV(cmd.OutOrStdout(), t)
	}
	if err := table.Save(flagOutput, t, tableOptions()); err != nil {
		return err
	}

	logger.Info("table written", logger.Fields{
		"input":   flagInput,
		"output":  flagOutput,
		"rows":    len(t.Rows),
		"columns": flagColumns,
	})
	return nil
}

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup NAME...",
		Short: "Print the canonical name for each argument",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLookup,
	}

	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	format, err := parseFormat()
	if err != nil {
		return err
	}

	c, err := loadCanonicalizer()
	if err != nil {
		return err
	}

	results := make([]schools.Result, 0, len(args))
	for _, name := range args {
		results = append(results, c.Resolve(name))
	}

	return writeLookup(cmd.OutOrStdout(), results, format)
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "List names in table columns that the reference does not recognize",
		Long: `Report every distinct value in the given columns that is neither blank nor a
known spelling. Exits with status 2 when any such value is found, so the
reference table can be extended before running an analysis.`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}

	addInputFlags(cmd)
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := parseFormat()
	if err != nil {
		return err
	}

	c, err := loadCanonicalizer()
	if err != nil {
		return err
	}

	t, err := loadInput()
	if err != nil {
		return err
	}

	report := &CheckReport{Input: flagInput, Columns: flagColumns}
	counts := make(map[string]int)
	for _, column := range flagColumns {
		values, err := t.Values(column)
		if err != nil {
			return fmt.Errorf("checking %s: %w", column, err)
		}
		for _, v := range values {
			report.Checked++
			switch c.Resolve(v).Outcome {
			case schools.OutcomeMissing:
				report.Missing++
			case schools.OutcomePassthrough:
				counts[v]++
			}
		}
	}

	for name, count := range counts {
		report.Unmatched = append(report.Unmatched, UnmatchedName{Name: name, Count: count})
	}
	sortUnmatched(report.Unmatched)

	if err := writeCheck(cmd.OutOrStdout(), report, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if len(report.Unmatched) > 0 {
		return errUnmatched
	}
	return nil
}

// sortUnmatched orders by descending count, then name
func sortUnmatched(names []UnmatchedName) {
	sort.Slice(names, func(i, j int) bool {
		if names[i].Count != names[j].Count {
			return names[i].Count > names[j].Count
		}
		return names[i].Name < names[j].Name
	})
}

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Dump every lookup key and the keys overwritten by later rows",
		Args:  cobra.NoArgs,
		RunE:  runKeys,
	}

	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	return cmd
}

func runKeys(cmd *cobra.Command, args []string) error {
	format, err := parseFormat()
	if err != nil {
		return err
	}

	c, err := loadCanonicalizer()
	if err != nil {
		return err
	}

	return writeKeys(cmd.OutOrStdout(), &KeysReport{
		Entries:    c.Entries(),
		Collisions: c.Collisions(),
	}, format)
}
