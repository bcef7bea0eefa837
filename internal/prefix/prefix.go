// Package prefix implements approximate string prefix queries over the
// record store. Datastore backends of this class support only equality
// filters, not native starts-with predicates, so each indexed property
// carries three derived fields (full normalized value, first character,
// first two characters): queries filter on the 1- or 2-character bucket
// and then verify the true prefix relation against the full value.
package prefix

import (
	"context"
	"fmt"
	"sort"

	"github.com/finderlab/pfsearch/internal/store"
	"github.com/finderlab/pfsearch/internal/text"
)

// Indexer maintains the derived prefix fields for a fixed, statically
// registered set of record properties. Registration happens once at
// schema-definition time; there is no runtime property discovery.
type Indexer struct {
	fields map[string]struct{}
}

// NewIndexer creates an Indexer over the given property names. Each name
// must be a canonical person field.
func NewIndexer(fields ...string) *Indexer {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return &Indexer{fields: set}
}

// DefaultIndexer registers the name fields that person search queries.
func DefaultIndexer() *Indexer {
	return NewIndexer(
		store.FieldGivenName,
		store.FieldFamilyName,
		store.FieldFullName,
		store.FieldAlternateNames,
	)
}

// Fields returns the registered property names, sorted.
func (ix *Indexer) Fields() []string {
	out := make([]string, 0, len(ix.fields))
	for f := range ix.fields {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Registered reports whether field has prefix support.
func (ix *Indexer) Registered(field string) bool {
	_, ok := ix.fields[field]
	return ok
}

// Reindex recomputes every derived prefix entry from the record's
// current property values. Callers must invoke it on every create or
// update of a registered property, in the same logical write; skipping
// it leaves the index stale, which this package does not detect.
func (ix *Indexer) Reindex(p *store.Person) {
	if p.Prefix == nil {
		p.Prefix = make(map[string]store.PrefixEntry, len(ix.fields))
	}
	for field := range ix.fields {
		value, _ := p.Field(field)
		normalized := text.Normalize(value)
		p.Prefix[field] = store.PrefixEntry{
			N:  normalized,
			N1: firstChars(normalized, 1),
			N2: firstChars(normalized, 2),
		}
	}
}

// FilterByPrefix narrows q with equality filters on the 2-character (or
// 1-character, for shorter prefixes) bucket field of every given
// property. Multiple properties are ANDed. Empty prefixes add no filter.
func (ix *Indexer) FilterByPrefix(q store.Query, prefixes map[string]string) (store.Query, error) {
	// Deterministic filter order for stable query plans and tests.
	fields := make([]string, 0, len(prefixes))
	for f := range prefixes {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if !ix.Registered(field) {
			return nil, fmt.Errorf("prefix: field %q not registered", field)
		}
		normalized := text.Normalize(prefixes[field])
		switch {
		case len([]rune(normalized)) >= 2:
			q = q.Filter(field+store.SuffixFirst2, firstChars(normalized, 2))
		case len(normalized) > 0:
			q = q.Filter(field+store.SuffixFirst1, firstChars(normalized, 1))
		}
	}
	return q, nil
}

// MatchesExactly verifies the true prefix relation: for every property,
// the record's actual normalized value must start with the normalized
// prefix. Required after FilterByPrefix because the 2-character bucket
// is only approximate once the prefix is longer than the bucket.
func (ix *Indexer) MatchesExactly(p *store.Person, prefixes map[string]string) bool {
	for field, prefix := range prefixes {
		value, _ := p.Field(field)
		if !hasPrefix(text.Normalize(value), text.Normalize(prefix)) {
			return false
		}
	}
	return true
}

// StreamPrefixMatches runs q narrowed by FilterByPrefix and yields only
// records that MatchesExactly, stopping after limit true matches. The
// returned iterator is finite, forward-only, and not restartable: it
// consumes the underlying query cursor.
func (ix *Indexer) StreamPrefixMatches(ctx context.Context, q store.Query, limit int, prefixes map[string]string) (store.Iterator, error) {
	filtered, err := ix.FilterByPrefix(q, prefixes)
	if err != nil {
		return nil, err
	}
	inner := filtered.Run(ctx)
	verified := &filterIterator{
		inner: inner,
		keep:  func(p *store.Person) bool { return ix.MatchesExactly(p, prefixes) },
	}
	return Take(verified, limit), nil
}

// Take caps it at n records. A negative n means no cap.
func Take(it store.Iterator, n int) store.Iterator {
	if n < 0 {
		return it
	}
	return &takeIterator{inner: it, remaining: n}
}

type filterIterator struct {
	inner store.Iterator
	keep  func(*store.Person) bool
}

func (it *filterIterator) Next() (*store.Person, bool) {
	for {
		p, ok := it.inner.Next()
		if !ok {
			return nil, false
		}
		if it.keep(p) {
			return p, true
		}
	}
}

func (it *filterIterator) Err() error   { return it.inner.Err() }
func (it *filterIterator) Close() error { return it.inner.Close() }

type takeIterator struct {
	inner     store.Iterator
	remaining int
}

func (it *takeIterator) Next() (*store.Person, bool) {
	if it.remaining <= 0 {
		return nil, false
	}
	p, ok := it.inner.Next()
	if !ok {
		return nil, false
	}
	it.remaining--
	return p, true
}

func (it *takeIterator) Err() error   { return it.inner.Err() }
func (it *takeIterator) Close() error { return it.inner.Close() }

// Collect drains it into a slice, closing it afterwards.
func Collect(it store.Iterator) ([]*store.Person, error) {
	defer it.Close()
	var out []*store.Person
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, p)
	}
	return out, it.Err()
}

func firstChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func hasPrefix(value, prefix string) bool {
	return len(prefix) <= len(value) && value[:len(prefix)] == prefix
}
