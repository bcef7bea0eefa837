// Package search combines prefix-index lookups, full-text search, and
// federated remote search into a single ranked result list. The
// Searcher orchestrator is the only entry point other subsystems call.
package search

import (
	"github.com/finderlab/pfsearch/internal/store"
)

// Result is a ranked search hit. Results are query-scoped values,
// created during a single search call and never persisted.
type Result struct {
	// Person is the canonical record.
	Person *store.Person

	// IsAddressMatch marks a federated hit where the query matched the
	// person's address rather than their name.
	IsAddressMatch bool
}

// Results wraps persons as name-match results.
func Results(persons []*store.Person) []Result {
	out := make([]Result, len(persons))
	for i, p := range persons {
		out[i] = Result{Person: p}
	}
	return out
}
