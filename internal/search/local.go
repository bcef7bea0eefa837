package search

import (
	"context"
	"log/slog"

	"github.com/finderlab/pfsearch/internal/prefix"
	"github.com/finderlab/pfsearch/internal/store"
	"github.com/finderlab/pfsearch/internal/text"
)

// defaultCandidateFetchLimit bounds how many bucket matches a single
// word lookup may verify. Keeps worst-case work proportional to bucket
// size even for one-character queries that hit huge buckets.
const defaultCandidateFetchLimit = 400

// lookupFields are the record properties each query word is matched
// against.
var lookupFields = []string{
	store.FieldGivenName,
	store.FieldFamilyName,
	store.FieldAlternateNames,
}

// LocalSearcher matches queries against the prefix-indexed record store.
type LocalSearcher struct {
	store          store.RecordStore
	indexer        *prefix.Indexer
	candidateLimit int
}

// NewLocalSearcher creates a LocalSearcher.
func NewLocalSearcher(st store.RecordStore, ix *prefix.Indexer) *LocalSearcher {
	return &LocalSearcher{
		store:          st,
		indexer:        ix,
		candidateLimit: defaultCandidateFetchLimit,
	}
}

// WithCandidateLimit overrides how many bucket matches each word lookup
// may verify (search.candidate_limit). Non-positive values keep the
// default.
func (s *LocalSearcher) WithCandidateLimit(n int) *LocalSearcher {
	if n > 0 {
		s.candidateLimit = n
	}
	return s
}

// Search returns up to max ranked results for q in repo. Words combine
// with OR semantics so partial-name queries still hit; a record matched
// by several words appears once. Expired records are excluded
// unconditionally. An empty query yields no results and no error.
func (s *LocalSearcher) Search(ctx context.Context, repo string, q text.Query, max int) ([]Result, error) {
	if q.IsEmpty() || max == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{})
	var candidates []*store.Person
	for _, word := range q.Words {
		for _, field := range lookupFields {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			it, err := s.indexer.StreamPrefixMatches(
				ctx, s.store.Query(repo), s.candidateLimit,
				map[string]string{field: word})
			if err != nil {
				return nil, err
			}
			matches, err := prefix.Collect(it)
			if err != nil {
				return nil, err
			}
			for _, p := range matches {
				if _, dup := seen[p.RecordID]; dup {
					continue
				}
				seen[p.RecordID] = struct{}{}
				if p.IsExpired() {
					continue
				}
				candidates = append(candidates, p)
			}
		}
	}

	slog.Debug("local search candidates",
		"repo", repo, "words", len(q.Words), "candidates", len(candidates))

	ranker := NewRanker(q)
	return Results(ranker.RankAndOrder(candidates, max)), nil
}
