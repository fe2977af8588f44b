package output

import (
	"io"

	"github.com/agentstation/termsync"
	"github.com/agentstation/termsync/internal/cmd/table"
)

// Report writes a sync result. JSON and YAML encode the whole result; table
// formats print a summary followed by one table per non-empty bucket.
func Report(w io.Writer, format Format, result *termsync.Result) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, result)
	default:
		return NewFormatter(format).Format(w, ReportTables(result, format == FormatWide))
	}
}

// ReportTables converts a sync result into the tables printed by Report.
func ReportTables(result *termsync.Result, wide bool) []Data {
	cmp := result.Comparison

	missingLabel := "Only in sheet (added to QuickBooks)"
	missingTitle := "Added to QuickBooks"
	if result.DryRun {
		missingLabel = "Only in sheet (dry run, not added)"
		missingTitle = "Would be added to QuickBooks"
	}

	tables := []Data{table.SummaryToTableData(cmp, missingLabel)}
	if renamed := cmp.Renamed(); len(renamed) > 0 {
		tables = append(tables, table.RenamesToTableData(renamed))
	}
	if onlyRemote := cmp.MissingInSource(); len(onlyRemote) > 0 {
		tables = append(tables, table.TermsToTableData("Only in QuickBooks", onlyRemote))
	}
	if missing := cmp.MissingInRemote(); len(missing) > 0 {
		tables = append(tables, table.TermsToTableData(missingTitle, missing))
	}
	if len(result.Outcomes) > 0 {
		tables = append(tables, table.OutcomesToTableData(result.Outcomes, wide))
	}
	return tables
}
