package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/school-names/internal/config"
	"github.com/pfrederiksen/school-names/internal/logger"
	"github.com/pfrederiksen/school-names/internal/schools"
	"github.com/pfrederiksen/school-names/internal/table"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitUnmatched = 2
)

// errUnmatched signals that check found names missing from the reference.
var errUnmatched = errors.New("unmatched school names")

var (
	flagReference string
	flagSheet     string
	flagVerbose   bool
	flagFormat    string
)

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:   "school-names",
		Short: "Standardize school names in sports statistics tables",
		Long: `Map the many spellings of a school's name found across stats providers
to one canonical name, using a reference table of schools, nicknames and
alternate spellings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := cfg.LogLevel
			if flagVerbose {
				level = logger.LevelDebug
			}
			logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flagReference, "reference", cfg.ReferencePath, "Reference table of schools (.csv, .xlsx or .html)")
	cmd.PersistentFlags().StringVar(&flagSheet, "sheet", cfg.Sheet, "Sheet to read from .xlsx files (default: first sheet)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(
		newCanonicalizeCmd(),
		newLookupCmd(),
		newCheckCmd(),
		newKeysCmd(),
	)

	return cmd
}

// loadCanonicalizer reads the reference table named by --reference and builds the lookup.
func loadCanonicalizer() (*schools.Canonicalizer, error) {
	refs, err := schools.LoadReference(flagReference, tableOptions())
	if err != nil {
		return nil, err
	}

	c, err := schools.New(refs)
	if err != nil {
		return nil, fmt.Errorf("building lookup: %w", err)
	}

	logger.Debug("reference loaded", logger.Fields{
		"path":       flagReference,
		"schools":    len(refs),
		"keys":       c.Len(),
		"collisions": len(c.Collisions()),
	})
	return c, nil
}

func tableOptions() table.Options {
	return table.Options{Sheet: flagSheet}
}

func parseFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(flagFormat)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

// run executes the root command and maps the result to an exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errUnmatched):
		return ExitUnmatched
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
}

// Execute runs the CLI
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
