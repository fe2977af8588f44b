// Package reconcile compares payment terms read from a spreadsheet with the
// terms already present in QuickBooks.
//
// Terms are matched by id only. A term whose id exists on both sides is either
// a match (same name) or a rename (different name). Terms whose id exists on
// one side only are reported as missing from the other side.
//
// Example usage:
//
//	result := reconcile.Reconcile(sheetTerms, remoteTerms)
//	for _, t := range result.MissingInRemote() {
//	    fmt.Println("needs to be created:", t.Name)
//	}
package reconcile

import "github.com/agentstation/termsync/pkg/terms"

// Reconcile classifies source and remote terms by id.
//
// When an id occurs more than once in a collection, the last occurrence
// determines the name used for comparison against the other collection.
// Every source entry is still classified on its own, so a duplicated source
// id can produce one match and one rename in the same result.
func Reconcile(source, remote []terms.Term) Result {
	remoteIndex := terms.Index(remote)
	sourceIndex := terms.Index(source)

	var r Result
	for _, t := range source {
		remoteName, ok := remoteIndex[t.ID]
		switch {
		case !ok:
			r.missingInRemote = append(r.missingInRemote, t)
		case remoteName != t.Name:
			r.renamed = append(r.renamed, terms.Rename{
				SourceName: t.Name,
				RemoteName: remoteName,
				ID:         t.ID,
			})
		default:
			r.matched++
		}
	}

	for _, t := range remote {
		if _, ok := sourceIndex[t.ID]; !ok {
			r.missingInSource = append(r.missingInSource, t)
		}
	}

	return r
}
