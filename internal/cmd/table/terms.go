// Package table converts sync results into rows for tabular CLI output.
package table

import (
	"strconv"

	"github.com/agentstation/termsync/pkg/qbxml"
	"github.com/agentstation/termsync/pkg/reconcile"
	"github.com/agentstation/termsync/pkg/terms"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Title           string
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// Empty reports whether the table has no rows.
func (d Data) Empty() bool {
	return len(d.Rows) == 0
}

// SummaryToTableData lists the bucket sizes of a comparison. missingLabel is
// the label of the missing-in-remote row, which depends on whether terms
// were actually created.
func SummaryToTableData(r reconcile.Result, missingLabel string) Data {
	return Data{
		Title:   "Summary",
		Headers: []string{"Check", "Terms"},
		Rows: [][]string{
			{"Matching terms (same ID and name)", strconv.Itoa(r.Matched())},
			{"Same ID but different names", strconv.Itoa(len(r.Renamed()))},
			{missingLabel, strconv.Itoa(len(r.MissingInRemote()))},
			{"Only in QuickBooks", strconv.Itoa(len(r.MissingInSource()))},
		},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// RenamesToTableData lists ids whose names differ between sheet and QuickBooks.
func RenamesToTableData(renames []terms.Rename) Data {
	rows := make([][]string, 0, len(renames))
	for _, r := range renames {
		rows = append(rows, []string{strconv.Itoa(r.ID), r.SourceName, r.RemoteName})
	}
	return Data{
		Title:           "Same ID, different names",
		Headers:         []string{"ID", "Sheet", "QuickBooks"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft},
	}
}

// TermsToTableData lists terms under title.
func TermsToTableData(title string, list []terms.Term) Data {
	rows := make([][]string, 0, len(list))
	for _, t := range list {
		rows = append(rows, []string{strconv.Itoa(t.ID), t.Name})
	}
	return Data{
		Title:           title,
		Headers:         []string{"ID", "Name"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft},
	}
}

// OutcomesToTableData lists create outcomes. Wide output adds the status
// code and request id.
func OutcomesToTableData(outcomes []qbxml.Outcome, wide bool) Data {
	headers := []string{"Name", "Result", "Message"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft}
	if wide {
		headers = append(headers, "Code", "Request")
		align = append(align, AlignRight, AlignRight)
	}

	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		row := []string{dash(o.Name), statusLabel(o.Status), dash(o.Message)}
		if wide {
			row = append(row, strconv.Itoa(o.Code), dash(o.RequestID))
		}
		rows = append(rows, row)
	}
	return Data{
		Title:           "Create results",
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: align,
	}
}

func statusLabel(s qbxml.Status) string {
	switch s {
	case qbxml.StatusCreated:
		return "created"
	case qbxml.StatusAlreadyExists:
		return "already exists"
	case qbxml.StatusFailed:
		return "failed"
	default:
		return "-"
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
