// Package schools standardizes school names across sports data sources.
//
// A reference table lists each school's canonical name, its nickname and the
// alternate spellings seen in different providers. New builds an immutable
// Canonicalizer from those rows; callers build it once and reuse it for every
// table they clean. Lookups never fail: a blank input maps to "", an unknown
// name is logged and passed through unchanged so that downstream joins simply
// miss instead of aborting the batch.
package schools
