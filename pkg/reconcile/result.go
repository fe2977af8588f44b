package reconcile

import (
	"encoding/json"
	"fmt"

	"github.com/agentstation/termsync/pkg/terms"
)

// Result is the immutable outcome of a reconciliation. Accessors return
// copies so callers cannot alter a result after it was produced.
type Result struct {
	matched         int
	renamed         []terms.Rename
	missingInRemote []terms.Term
	missingInSource []terms.Term
}

// Matched returns how many source terms have the same id and name remotely.
func (r Result) Matched() int {
	return r.matched
}

// Renamed returns the terms whose id exists on both sides with different names.
func (r Result) Renamed() []terms.Rename {
	return append([]terms.Rename(nil), r.renamed...)
}

// MissingInRemote returns source terms whose id is absent remotely.
func (r Result) MissingInRemote() []terms.Term {
	return append([]terms.Term(nil), r.missingInRemote...)
}

// MissingInSource returns remote terms whose id is absent from the source.
func (r Result) MissingInSource() []terms.Term {
	return append([]terms.Term(nil), r.missingInSource...)
}

// HasDifferences reports whether anything other than exact matches was found.
func (r Result) HasDifferences() bool {
	return len(r.renamed) > 0 || len(r.missingInRemote) > 0 || len(r.missingInSource) > 0
}

// Summary returns a one-line description of the bucket sizes.
func (r Result) Summary() string {
	return fmt.Sprintf("%d matching, %d renamed, %d missing in remote, %d missing in source",
		r.matched, len(r.renamed), len(r.missingInRemote), len(r.missingInSource))
}

// Snapshot is the exported, serializable form of a Result.
type Snapshot struct {
	Matched         int            `json:"matched" yaml:"matched"`
	Renamed         []terms.Rename `json:"renamed" yaml:"renamed"`
	MissingInRemote []terms.Term   `json:"missing_in_remote" yaml:"missing_in_remote"`
	MissingInSource []terms.Term   `json:"missing_in_source" yaml:"missing_in_source"`
}

// Snapshot returns a copy of the result with exported fields, suitable for
// encoders and table output.
func (r Result) Snapshot() Snapshot {
	view := Snapshot{
		Matched:         r.matched,
		Renamed:         r.Renamed(),
		MissingInRemote: r.MissingInRemote(),
		MissingInSource: r.MissingInSource(),
	}
	if view.Renamed == nil {
		view.Renamed = []terms.Rename{}
	}
	if view.MissingInRemote == nil {
		view.MissingInRemote = []terms.Term{}
	}
	if view.MissingInSource == nil {
		view.MissingInSource = []terms.Term{}
	}
	return view
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Snapshot())
}

// MarshalYAML implements the goccy/go-yaml InterfaceMarshaler.
func (r Result) MarshalYAML() (any, error) {
	return r.Snapshot(), nil
}
