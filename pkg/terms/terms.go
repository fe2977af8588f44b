// Package terms defines the payment term record shared by the sheet reader,
// the reconciler and the qbXML codec.
package terms

import "fmt"

// Term is a named payment term carrying an integer reconciliation id.
//
// The id is an externally agreed matching key. QuickBooks stores it in the
// StdDiscountDays field of a standard term; it is not the QuickBooks ListID.
type Term struct {
	Name string `json:"name" yaml:"name"`
	ID   int    `json:"id" yaml:"id"`
}

// String returns a short human-readable form of the term.
func (t Term) String() string {
	return fmt.Sprintf("%s (ID: %d)", t.Name, t.ID)
}

// Rename records a term whose id exists on both sides under different names.
type Rename struct {
	SourceName string `json:"source_name" yaml:"source_name"`
	RemoteName string `json:"remote_name" yaml:"remote_name"`
	ID         int    `json:"id" yaml:"id"`
}

// Names returns the names of the given terms in order.
func Names(list []Term) []string {
	names := make([]string, 0, len(list))
	for _, t := range list {
		names = append(names, t.Name)
	}
	return names
}

// Index maps id to name. When an id appears more than once the last
// occurrence wins.
func Index(list []Term) map[int]string {
	index := make(map[int]string, len(list))
	for _, t := range list {
		index[t.ID] = t.Name
	}
	return index
}
