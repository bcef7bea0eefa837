package store

import (
	"context"
)

// Iterator is a finite, forward-only, non-restartable stream of person
// records produced by a query. Next returns false once the stream is
// exhausted or an error occurred; Err distinguishes the two.
type Iterator interface {
	// Next returns the next record, or nil/false when the stream ends.
	Next() (*Person, bool)

	// Err returns the first error encountered while iterating.
	Err() error

	// Close releases the underlying cursor. Safe to call twice.
	Close() error
}

// Query is a record query under construction. Implementations support
// equality filters on indexed fields and a result limit; this mirrors
// what datastore backends of this class can serve without native
// starts-with predicates.
type Query interface {
	// Filter adds an equality filter. Multiple filters are ANDed.
	// Filterable fields are the canonical name fields and their
	// derived prefix fields.
	Filter(field, value string) Query

	// Limit caps the number of records the iterator yields.
	Limit(n int) Query

	// Run executes the query. Records come back ordered by record id
	// so batch iteration is deterministic.
	Run(ctx context.Context) Iterator
}

// RecordStore is the persistence abstraction the search core consumes.
// Implementations must support equality filters on indexed fields and
// ordering by record id.
type RecordStore interface {
	// GetByKeys fetches records by id in the given repository. The
	// result has one slot per requested id, nil where the record does
	// not exist. Order matches ids.
	GetByKeys(ctx context.Context, repo string, ids []string) ([]*Person, error)

	// Put writes records, replacing any existing record with the same
	// (repo, record id). The caller is responsible for having
	// reindexed prefix entries in the same logical write.
	Put(ctx context.Context, persons ...*Person) error

	// Query starts a query over the given repository.
	Query(repo string) Query

	// Close releases the store.
	Close() error
}

// sliceIterator adapts an in-memory slice to the Iterator interface.
type sliceIterator struct {
	records []*Person
	pos     int
}

func (it *sliceIterator) Next() (*Person, bool) {
	if it.pos >= len(it.records) {
		return nil, false
	}
	p := it.records[it.pos]
	it.pos++
	return p, true
}

func (it *sliceIterator) Err() error   { return nil }
func (it *sliceIterator) Close() error { return nil }
