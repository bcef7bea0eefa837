package fulltext

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	pferrors "github.com/finderlab/pfsearch/internal/errors"
	"github.com/finderlab/pfsearch/internal/script"
	"github.com/finderlab/pfsearch/internal/search"
	"github.com/finderlab/pfsearch/internal/store"
	"github.com/finderlab/pfsearch/internal/text"
)

// Index wraps a bleve index over person documents and implements
// search.FullTextBackend.
type Index struct {
	mu       sync.RWMutex
	index    bleve.Index
	store    store.RecordStore
	expander *script.Expander
	closed   bool
}

// buildMapping defines the document mapping: identifier fields use the
// keyword analyzer (exact match), text fields the simple analyzer
// (letter runs, lowercased) which matches our pre-normalized tokens.
func buildMapping() *mapping.IndexMappingImpl {
	m := bleve.NewIndexMapping()

	doc := bleve.NewDocumentMapping()

	id := bleve.NewTextFieldMapping()
	id.Analyzer = keyword.Name
	id.Store = true
	doc.AddFieldMappingsAt("record_id", id)

	repo := bleve.NewTextFieldMapping()
	repo.Analyzer = keyword.Name
	doc.AddFieldMappingsAt("repo", repo)

	for _, field := range []string{
		"given_name", "family_name", "full_name", "alternate_names",
		"names", "location",
	} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = simple.Name
		fm.Store = false
		doc.AddFieldMappingsAt(field, fm)
	}

	m.DefaultMapping = doc
	m.DefaultAnalyzer = simple.Name
	return m
}

// Open opens (creating if needed) the bleve index at path.
func Open(path string, st store.RecordStore, expander *script.Expander) (*Index, error) {
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, buildMapping())
	}
	if err != nil {
		return nil, pferrors.ErrIndexIO.WithCause(fmt.Errorf("open fulltext index: %w", err))
	}
	return &Index{index: idx, store: st, expander: expander}, nil
}

// OpenInMemory creates a transient index, used by tests and by
// deployments without a persistent index directory.
func OpenInMemory(st store.RecordStore, expander *script.Expander) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, pferrors.ErrIndexIO.WithCause(fmt.Errorf("open fulltext index: %w", err))
	}
	return &Index{index: idx, store: st, expander: expander}, nil
}

// Add indexes (or reindexes) the document for p. Callers trigger this
// on every record create or update; the index itself does not hook
// record mutation.
func (ix *Index) Add(p *store.Person) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.closed {
		return pferrors.ErrIndexClosed
	}
	doc := CreateDocument(p, ix.expander)
	if err := ix.index.Index(docID(p.Repo, p.RecordID), doc); err != nil {
		return pferrors.ErrIndexIO.WithCause(err)
	}
	return nil
}

// Delete removes the document for a record.
func (ix *Index) Delete(repo, recordID string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.closed {
		return pferrors.ErrIndexClosed
	}
	if err := ix.index.Delete(docID(repo, recordID)); err != nil {
		return pferrors.ErrIndexIO.WithCause(err)
	}
	return nil
}

// Search implements search.FullTextBackend. Every name word must match;
// location words, when given, must match the location field. An empty
// name returns nothing without touching the index: search by location
// alone is not allowed, and blank input must not trigger a full scan.
func (ix *Index) Search(ctx context.Context, repo, name, location string, max int) ([]search.Result, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.closed {
		return nil, pferrors.ErrIndexClosed
	}

	nameQuery := text.NewQuery(name)
	if nameQuery.IsEmpty() || max == 0 {
		return nil, nil
	}

	conjuncts := []query.Query{termQuery("repo", repo)}
	for _, word := range nameQuery.Words {
		conjuncts = append(conjuncts, wordQuery("names", word, ix.expander))
	}
	for _, word := range text.NewQuery(location).Words {
		conjuncts = append(conjuncts, wordQuery("location", word, ix.expander))
	}

	req := bleve.NewSearchRequestOptions(query.NewConjunctionQuery(conjuncts), max, 0, false)
	req.Fields = []string{"record_id"}

	res, err := ix.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, pferrors.ErrIndexIO.WithCause(fmt.Errorf("fulltext search: %w", err))
	}

	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if id, ok := hit.Fields["record_id"].(string); ok {
			ids = append(ids, id)
		}
	}
	persons, err := ix.store.GetByKeys(ctx, repo, ids)
	if err != nil {
		return nil, err
	}

	var live []*store.Person
	for _, p := range persons {
		// The index may lag the canonical store; drop stale hits.
		if p != nil && !p.IsExpired() {
			live = append(live, p)
		}
	}
	slog.Debug("fulltext search",
		"repo", repo, "hits", len(res.Hits), "live", len(live))
	return search.Results(live), nil
}

// Close releases the index.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.closed {
		return nil
	}
	ix.closed = true
	return ix.index.Close()
}

// wordQuery matches word or its romanized variant in field. Matching
// either side lets a romaji query find a kana record and vice versa.
func wordQuery(field, word string, expander *script.Expander) query.Query {
	variants := []string{word}
	if romaji := expander.Romanize(word); romaji != "" && !strings.EqualFold(romaji, word) {
		variants = append(variants, romaji)
	}
	if len(variants) == 1 {
		return termQuery(field, strings.ToLower(word))
	}
	disjuncts := make([]query.Query, len(variants))
	for i, v := range variants {
		disjuncts[i] = termQuery(field, strings.ToLower(v))
	}
	return query.NewDisjunctionQuery(disjuncts)
}

func termQuery(field, term string) query.Query {
	q := query.NewTermQuery(term)
	q.SetField(field)
	return q
}
