package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/finderlab/pfsearch/internal/text"
)

// FullTextBackend is the external full-text index abstraction. Search
// returns canonical records for name (and optional location) queries.
type FullTextBackend interface {
	Search(ctx context.Context, repo, name, location string, max int) ([]Result, error)
}

// FederatedBackend fans a query out to remote deployments. A nil result
// with a nil error means the federation was unavailable or timed out:
// degraded, not zero results.
type FederatedBackend interface {
	Search(ctx context.Context, repo string, q text.Query, max int) ([]Result, error)
}

// Searcher is the single entry point for person search in one
// repository. It chooses between federated, full-text, and local prefix
// search per repository configuration without leaking which backend
// served the request.
type Searcher struct {
	repo           string
	local          *LocalSearcher
	fulltext       FullTextBackend
	federated      FederatedBackend
	enableFulltext bool
	maxResults     int
}

// SearcherOption configures a Searcher.
type SearcherOption func(*Searcher)

// WithFullText enables the full-text backend for this repository.
func WithFullText(backend FullTextBackend) SearcherOption {
	return func(s *Searcher) {
		s.fulltext = backend
		s.enableFulltext = backend != nil
	}
}

// WithFederation enables federated search for this repository.
func WithFederation(backend FederatedBackend) SearcherOption {
	return func(s *Searcher) {
		s.federated = backend
	}
}

// NewSearcher creates a Searcher for one repository. maxResults bounds
// every result list it returns.
func NewSearcher(repo string, local *LocalSearcher, maxResults int, opts ...SearcherOption) *Searcher {
	s := &Searcher{
		repo:       repo,
		local:      local,
		maxResults: maxResults,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns ranked results for a name and an optional location.
// Callers always get a (possibly empty) list; errors are reserved for
// programming and store failures, never for degraded backends.
func (s *Searcher) Search(ctx context.Context, name, location string) ([]Result, error) {
	q := text.NewQuery(joinQueryParts(name, location))
	if q.IsEmpty() {
		return nil, nil
	}

	// Federated backends are not always complete or reachable. Fall
	// back to the local repository when they fail or return nothing.
	if s.federated != nil {
		results, err := s.federated.Search(ctx, s.repo, q, s.maxResults)
		if err != nil {
			return nil, err
		}
		if len(results) > 0 {
			return results, nil
		}
		slog.Debug("federated search degraded or empty, falling back",
			"repo", s.repo)
	}

	if s.enableFulltext {
		return s.fulltext.Search(ctx, s.repo, name, location, s.maxResults)
	}
	return s.local.Search(ctx, s.repo, q, s.maxResults)
}

func joinQueryParts(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}
