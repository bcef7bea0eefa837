package prefix

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finderlab/pfsearch/internal/store"
)

func seedStore(t *testing.T, persons ...*store.Person) store.RecordStore {
	t.Helper()
	st := store.NewMemoryStore()
	ix := DefaultIndexer()
	for _, p := range persons {
		ix.Reindex(p)
	}
	require.NoError(t, st.Put(context.Background(), persons...))
	return st
}

func TestIndexer_Reindex(t *testing.T) {
	ix := DefaultIndexer()
	p := &store.Person{GivenName: "José", FamilyName: "García"}
	ix.Reindex(p)

	assert.Equal(t, store.PrefixEntry{N: "JOSE", N1: "J", N2: "JO"},
		p.Prefix[store.FieldGivenName])
	assert.Equal(t, store.PrefixEntry{N: "GARCIA", N1: "G", N2: "GA"},
		p.Prefix[store.FieldFamilyName])
	// Unset fields still get (empty) entries.
	assert.Equal(t, store.PrefixEntry{}, p.Prefix[store.FieldFullName])
}

func TestIndexer_Reindex_CJK(t *testing.T) {
	ix := DefaultIndexer()
	p := &store.Person{FamilyName: "山田"}
	ix.Reindex(p)

	entry := p.Prefix[store.FieldFamilyName]
	assert.Equal(t, "山田", entry.N)
	assert.Equal(t, "山", entry.N1)
	assert.Equal(t, "山田", entry.N2)
}

func TestIndexer_Reindex_ReplacesStaleEntries(t *testing.T) {
	ix := DefaultIndexer()
	p := &store.Person{GivenName: "John"}
	ix.Reindex(p)
	p.GivenName = "Anna"
	ix.Reindex(p)

	assert.Equal(t, "ANNA", p.Prefix[store.FieldGivenName].N)
}

func TestIndexer_FilterByPrefix_UnregisteredField(t *testing.T) {
	ix := NewIndexer(store.FieldGivenName)
	st := store.NewMemoryStore()
	_, err := ix.FilterByPrefix(st.Query("haiti"), map[string]string{"home_city": "PA"})
	assert.Error(t, err)
}

func TestStreamPrefixMatches(t *testing.T) {
	ctx := context.Background()
	ix := DefaultIndexer()
	st := seedStore(t,
		&store.Person{Repo: "haiti", RecordID: "1", GivenName: "John"},
		&store.Person{Repo: "haiti", RecordID: "2", GivenName: "Johann"},
		&store.Person{Repo: "haiti", RecordID: "3", GivenName: "Joan"},
		&store.Person{Repo: "haiti", RecordID: "4", GivenName: "Anna"},
	)

	t.Run("bucket narrowed then verified", func(t *testing.T) {
		// "JOH" shares the JO bucket with "JOAN"; verification must
		// drop the bucket-only match.
		it, err := ix.StreamPrefixMatches(ctx, st.Query("haiti"), -1,
			map[string]string{store.FieldGivenName: "joh"})
		require.NoError(t, err)
		got, err := Collect(it)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, recordIDs(got))
	})

	t.Run("single character prefix uses 1-char bucket", func(t *testing.T) {
		it, err := ix.StreamPrefixMatches(ctx, st.Query("haiti"), -1,
			map[string]string{store.FieldGivenName: "j"})
		require.NoError(t, err)
		got, err := Collect(it)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3"}, recordIDs(got))
	})

	t.Run("limit stops after n true matches", func(t *testing.T) {
		it, err := ix.StreamPrefixMatches(ctx, st.Query("haiti"), 1,
			map[string]string{store.FieldGivenName: "jo"})
		require.NoError(t, err)
		got, err := Collect(it)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("empty prefix matches everything", func(t *testing.T) {
		it, err := ix.StreamPrefixMatches(ctx, st.Query("haiti"), -1,
			map[string]string{store.FieldGivenName: ""})
		require.NoError(t, err)
		got, err := Collect(it)
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})

	t.Run("normalization applies to the prefix", func(t *testing.T) {
		it, err := ix.StreamPrefixMatches(ctx, st.Query("haiti"), -1,
			map[string]string{store.FieldGivenName: "JÓH"})
		require.NoError(t, err)
		got, err := Collect(it)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, recordIDs(got))
	})
}

func TestStreamPrefixMatches_MultipleFieldsAnded(t *testing.T) {
	ctx := context.Background()
	ix := DefaultIndexer()
	st := seedStore(t,
		&store.Person{Repo: "haiti", RecordID: "1", GivenName: "John", FamilyName: "Smith"},
		&store.Person{Repo: "haiti", RecordID: "2", GivenName: "John", FamilyName: "Doe"},
	)

	it, err := ix.StreamPrefixMatches(ctx, st.Query("haiti"), -1, map[string]string{
		store.FieldGivenName:  "jo",
		store.FieldFamilyName: "sm",
	})
	require.NoError(t, err)
	got, err := Collect(it)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, recordIDs(got))
}

func TestTake(t *testing.T) {
	st := seedStore(t,
		&store.Person{Repo: "haiti", RecordID: "1", GivenName: "A"},
		&store.Person{Repo: "haiti", RecordID: "2", GivenName: "B"},
	)
	it := Take(st.Query("haiti").Run(context.Background()), 0)
	_, ok := it.Next()
	assert.False(t, ok)
	require.NoError(t, it.Close())
}

func recordIDs(persons []*store.Person) []string {
	out := make([]string, len(persons))
	for i, p := range persons {
		out[i] = p.RecordID
	}
	return out
}
