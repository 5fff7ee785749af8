// Package cli implements the command-line interface for school-names.
//
// The cli package provides the Cobra-based commands: canonicalize rewrites a
// column of a CSV/XLSX/HTML table in place, lookup resolves names given on
// the command line, check reports names that the reference table does not
// recognize, and keys dumps the generated lookup with any colliding keys.
// It coordinates the config, table and schools packages.
package cli
