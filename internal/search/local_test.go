package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finderlab/pfsearch/internal/prefix"
	"github.com/finderlab/pfsearch/internal/store"
	"github.com/finderlab/pfsearch/internal/text"
)

func newLocal(t *testing.T, persons ...*store.Person) *LocalSearcher {
	t.Helper()
	st := store.NewMemoryStore()
	ix := prefix.DefaultIndexer()
	for _, p := range persons {
		ix.Reindex(p)
	}
	require.NoError(t, st.Put(context.Background(), persons...))
	return NewLocalSearcher(st, ix)
}

func TestLocalSearcher_PrefixMatch(t *testing.T) {
	s := newLocal(t,
		person("1", "David", "Smith"),
		person("2", "Davide", "Rossi"),
		person("3", "Anna", "Lee"),
	)

	results, err := s.Search(context.Background(), "haiti", text.NewQuery("dav"), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(results))
}

func TestLocalSearcher_WordsCombineWithOR(t *testing.T) {
	s := newLocal(t,
		person("1", "David", "Smith"),
		person("2", "Anna", "Lee"),
	)

	results, err := s.Search(context.Background(), "haiti", text.NewQuery("david anna"), 10)
	require.NoError(t, err)
	// Both hit; ranked by overlap, then name.
	assert.Len(t, results, 2)
}

func TestLocalSearcher_DeduplicatesAcrossWordsAndFields(t *testing.T) {
	s := newLocal(t, person("1", "David", "David"))

	results, err := s.Search(context.Background(), "haiti", text.NewQuery("david"), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(results))
}

func TestLocalSearcher_ExcludesExpired(t *testing.T) {
	expired := person("1", "David", "Smith")
	expired.Expiry = time.Now().Add(-time.Hour)
	s := newLocal(t, expired, person("2", "David", "Jones"))

	results, err := s.Search(context.Background(), "haiti", text.NewQuery("david"), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(results))
}

func TestLocalSearcher_EmptyQueryAndZeroMax(t *testing.T) {
	s := newLocal(t, person("1", "David", "Smith"))

	results, err := s.Search(context.Background(), "haiti", text.NewQuery("…"), 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = s.Search(context.Background(), "haiti", text.NewQuery("david"), 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLocalSearcher_MaxTruncatesAfterRanking(t *testing.T) {
	s := newLocal(t,
		person("1", "David", "Jones"),
		person("2", "David", "Smith"),
		person("3", "Davide", "Rossi"),
	)

	results, err := s.Search(context.Background(), "haiti", text.NewQuery("david smith"), 1)
	require.NoError(t, err)
	// The exact match must survive truncation regardless of fetch order.
	assert.Equal(t, []string{"2"}, ids(results))
}

func TestLocalSearcher_CandidateLimit(t *testing.T) {
	s := newLocal(t,
		person("1", "David", "Smith"),
		person("2", "David", "Jones"),
		person("3", "David", "Rossi"),
	)
	s.WithCandidateLimit(1)

	// Each word lookup may verify at most one bucket match, so only the
	// first given-name candidate survives.
	results, err := s.Search(context.Background(), "haiti", text.NewQuery("david"), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(results))

	// A non-positive override is ignored.
	s.WithCandidateLimit(-1)
	assert.Equal(t, 1, s.candidateLimit)
}

func TestLocalSearcher_Hiragana(t *testing.T) {
	s := newLocal(t, person("1", "はなこ", "やまだ"))

	results, err := s.Search(context.Background(), "haiti", text.NewQuery("はなこ"), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(results))
}

func TestLocalSearcher_CJKSingleIdeographWords(t *testing.T) {
	s := newLocal(t, person("1", "太郎", "山田"))

	// "山田太郎" tokenizes to single ideographs; the first ones prefix
	// the family and given fields.
	results, err := s.Search(context.Background(), "haiti", text.NewQuery("山田太郎"), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(results))
}

func TestLocalSearcher_RepoIsolation(t *testing.T) {
	s := newLocal(t, person("1", "David", "Smith"))

	results, err := s.Search(context.Background(), "tohoku", text.NewQuery("david"), 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Person.RecordID
	}
	return out
}
