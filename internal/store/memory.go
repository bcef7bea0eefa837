package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory RecordStore. It backs tests and small
// single-process deployments; semantics match the SQLite store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string]*Person // repo -> record id -> person
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]map[string]*Person)}
}

// GetByKeys implements RecordStore.
func (s *MemoryStore) GetByKeys(ctx context.Context, repo string, ids []string) ([]*Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Person, len(ids))
	for i, id := range ids {
		if p, ok := s.records[repo][id]; ok {
			out[i] = clonePerson(p)
		}
	}
	return out, nil
}

// Put implements RecordStore.
func (s *MemoryStore) Put(ctx context.Context, persons ...*Person) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range persons {
		byID, ok := s.records[p.Repo]
		if !ok {
			byID = make(map[string]*Person)
			s.records[p.Repo] = byID
		}
		byID[p.RecordID] = clonePerson(p)
	}
	return nil
}

// Query implements RecordStore.
func (s *MemoryStore) Query(repo string) Query {
	return &memoryQuery{store: s, repo: repo, limit: -1}
}

// Close implements RecordStore.
func (s *MemoryStore) Close() error { return nil }

type filterClause struct {
	field string
	value string
}

type memoryQuery struct {
	store   *MemoryStore
	repo    string
	filters []filterClause
	limit   int
}

func (q *memoryQuery) Filter(field, value string) Query {
	q.filters = append(q.filters, filterClause{field: field, value: value})
	return q
}

func (q *memoryQuery) Limit(n int) Query {
	q.limit = n
	return q
}

func (q *memoryQuery) Run(ctx context.Context) Iterator {
	q.store.mu.RLock()
	defer q.store.mu.RUnlock()

	ids := make([]string, 0, len(q.store.records[q.repo]))
	for id := range q.store.records[q.repo] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var matched []*Person
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			break
		}
		p := q.store.records[q.repo][id]
		if !q.matches(p) {
			continue
		}
		matched = append(matched, clonePerson(p))
		if q.limit >= 0 && len(matched) >= q.limit {
			break
		}
	}
	return &sliceIterator{records: matched}
}

func (q *memoryQuery) matches(p *Person) bool {
	for _, f := range q.filters {
		value, ok := p.DerivedField(f.field)
		if !ok {
			value, ok = p.Field(f.field)
		}
		if !ok || value != f.value {
			return false
		}
	}
	return true
}

func clonePerson(p *Person) *Person {
	cp := *p
	if p.Prefix != nil {
		cp.Prefix = make(map[string]PrefixEntry, len(p.Prefix))
		for k, v := range p.Prefix {
			cp.Prefix[k] = v
		}
	}
	return &cp
}
