package external

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finderlab/pfsearch/internal/prefix"
	"github.com/finderlab/pfsearch/internal/search"
	"github.com/finderlab/pfsearch/internal/store"
	"github.com/finderlab/pfsearch/internal/text"
)

func newTestServer(t *testing.T, persons ...*store.Person) *httptest.Server {
	t.Helper()
	st := store.NewMemoryStore()
	ix := prefix.DefaultIndexer()
	for _, p := range persons {
		ix.Reindex(p)
	}
	require.NoError(t, st.Put(context.Background(), persons...))

	srv := httptest.NewServer(NewServer(st, search.NewLocalSearcher(st, ix), 100).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func fetchPayload(t *testing.T, srv *httptest.Server, repo, query string) (wirePayload, int) {
	t.Helper()
	resp, err := http.Get(srv.URL + searchPath + "?repo=" + repo + "&query=" + query)
	require.NoError(t, err)
	defer resp.Body.Close()

	var p wirePayload
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	}
	return p, resp.StatusCode
}

func entryIDs(entries []wireEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.PersonRecordID)
	}
	return ids
}

func TestServer_NameMatches(t *testing.T) {
	srv := newTestServer(t,
		&store.Person{Repo: "haiti", RecordID: "1", GivenName: "David", FamilyName: "Smith"},
		&store.Person{Repo: "haiti", RecordID: "2", GivenName: "Marie", FamilyName: "Joseph"},
	)

	p, code := fetchPayload(t, srv, "haiti", "david")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"1"}, entryIDs(p.NameEntries))
	assert.Empty(t, p.AllEntries)
}

func TestServer_AddressMatches(t *testing.T) {
	srv := newTestServer(t,
		&store.Person{Repo: "haiti", RecordID: "1", GivenName: "Marie", HomeCity: "Jacmel"},
		&store.Person{Repo: "haiti", RecordID: "2", GivenName: "David", HomeCity: "Léogâne"},
	)

	p, code := fetchPayload(t, srv, "haiti", "jacmel")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, p.NameEntries)
	assert.Equal(t, []string{"1"}, entryIDs(p.AllEntries))
}

func TestServer_ListsStayDisjoint(t *testing.T) {
	// Record 1 matches both by name and by address token prefix.
	srv := newTestServer(t,
		&store.Person{Repo: "haiti", RecordID: "1", GivenName: "Jacmel", HomeCity: "Jacmel"},
	)

	p, _ := fetchPayload(t, srv, "haiti", "jacmel")
	assert.Equal(t, []string{"1"}, entryIDs(p.NameEntries))
	assert.Empty(t, p.AllEntries)
}

func TestServer_AddressMatchNeedsEveryWord(t *testing.T) {
	srv := newTestServer(t,
		&store.Person{Repo: "haiti", RecordID: "1", GivenName: "Marie", HomeCity: "Jacmel"},
	)

	p, _ := fetchPayload(t, srv, "haiti", "jacmel+gonaives")
	assert.Empty(t, p.NameEntries)
	assert.Empty(t, p.AllEntries)
}

func TestServer_MissingRepo(t *testing.T) {
	srv := newTestServer(t)
	_, code := fetchPayload(t, srv, "", "david")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestServer_EmptyQuery(t *testing.T) {
	srv := newTestServer(t,
		&store.Person{Repo: "haiti", RecordID: "1", GivenName: "David"},
	)

	// Blank queries get an empty payload, never a full dump. The lists
	// must still be present (not null) for lenient client parsers.
	p, code := fetchPayload(t, srv, "haiti", "+++")
	assert.Equal(t, http.StatusOK, code)
	assert.NotNil(t, p.NameEntries)
	assert.NotNil(t, p.AllEntries)
	assert.Empty(t, p.NameEntries)
	assert.Empty(t, p.AllEntries)
}

func TestServer_ExpiredExcluded(t *testing.T) {
	srv := newTestServer(t,
		&store.Person{Repo: "haiti", RecordID: "1", GivenName: "David", Expired: true},
		&store.Person{Repo: "haiti", RecordID: "2", GivenName: "Marie", HomeCity: "Jacmel", Expired: true},
	)

	p, _ := fetchPayload(t, srv, "haiti", "david")
	assert.Empty(t, p.NameEntries)

	p, _ = fetchPayload(t, srv, "haiti", "jacmel")
	assert.Empty(t, p.AllEntries)
}

func TestServer_Healthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_RoundTripWithClient(t *testing.T) {
	person := &store.Person{Repo: "haiti", RecordID: "1", GivenName: "David", FamilyName: "Smith"}
	srv := newTestServer(t, person)

	// The querying deployment holds its own copy of the record.
	local := store.NewMemoryStore()
	require.NoError(t, local.Put(context.Background(), person))

	c := newTestClient(local, srv.URL)
	results, err := c.Search(context.Background(), "haiti", text.NewQuery("david"), 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].Person.RecordID)
}
