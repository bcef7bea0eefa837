package external

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	pferrors "github.com/finderlab/pfsearch/internal/errors"
	"github.com/finderlab/pfsearch/internal/search"
	"github.com/finderlab/pfsearch/internal/store"
	"github.com/finderlab/pfsearch/internal/text"
)

// addressScanLimit bounds the records one address scan may examine.
// Address fields carry no prefix index, so the scan is linear over the
// repository; the cap keeps a federation request from walking an entire
// large repository.
const addressScanLimit = 1000

// wireEntry is the object form of a response entry. The server always
// emits objects; the client accepts both forms.
type wireEntry struct {
	PersonRecordID string `json:"person_record_id"`
}

type wirePayload struct {
	NameEntries []wireEntry `json:"name_entries"`
	AllEntries  []wireEntry `json:"all_entries"`
}

// Server answers federated queries from other deployments.
type Server struct {
	store      store.RecordStore
	local      *search.LocalSearcher
	maxResults int
}

// NewServer creates a federation server over the local record store.
func NewServer(st store.RecordStore, local *search.LocalSearcher, maxResults int) *Server {
	return &Server{store: st, local: local, maxResults: maxResults}
}

// Handler returns the HTTP handler serving the federation protocol.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+searchPath, s.handleSearch)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	repo := r.URL.Query().Get("repo")
	rawQuery := r.URL.Query().Get("query")
	if repo == "" {
		http.Error(w, pferrors.ErrInvalidRepo.Message, http.StatusBadRequest)
		return
	}

	q := text.NewQuery(rawQuery)
	resp := wirePayload{
		NameEntries: []wireEntry{},
		AllEntries:  []wireEntry{},
	}
	if q.IsEmpty() {
		writeJSON(w, resp)
		return
	}

	ctx := r.Context()
	var nameResults []search.Result
	var addressMatches []*store.Person

	// Name and address matching touch disjoint data; run them
	// concurrently under the request context.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		nameResults, err = s.local.Search(gctx, repo, q, s.maxResults)
		return err
	})
	g.Go(func() error {
		var err error
		addressMatches, err = s.scanAddresses(gctx, repo, q)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("federation search failed", "repo", repo, "error", err)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}

	inNames := make(map[string]struct{}, len(nameResults))
	for _, res := range nameResults {
		inNames[res.Person.RecordID] = struct{}{}
		resp.NameEntries = append(resp.NameEntries, wireEntry{PersonRecordID: res.Person.RecordID})
	}
	for _, p := range addressMatches {
		// The two lists must stay disjoint: a record that already
		// matched by name never appears again as an address match.
		if _, dup := inNames[p.RecordID]; dup {
			continue
		}
		resp.AllEntries = append(resp.AllEntries, wireEntry{PersonRecordID: p.RecordID})
		if len(resp.AllEntries) >= s.maxResults {
			break
		}
	}
	writeJSON(w, resp)
}

// scanAddresses returns records where every query word prefixes some
// normalized address token. Address fields have no prefix index, so
// this is a bounded linear scan; see addressScanLimit.
func (s *Server) scanAddresses(ctx context.Context, repo string, q text.Query) ([]*store.Person, error) {
	it := s.store.Query(repo).Limit(addressScanLimit).Run(ctx)
	defer it.Close()

	var matched []*store.Person
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		if p.IsExpired() || !addressMatches(p, q) {
			continue
		}
		matched = append(matched, p)
		if len(matched) >= s.maxResults {
			break
		}
	}
	return matched, it.Err()
}

func addressMatches(p *store.Person, q text.Query) bool {
	var tokens []string
	for _, value := range p.AddressValues() {
		tokens = append(tokens, text.NewQuery(value).Words...)
	}
	if len(tokens) == 0 {
		return false
	}
	for _, word := range q.Words {
		found := false
		for _, token := range tokens {
			if len(word) <= len(token) && token[:len(word)] == word {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("federation response write failed", "error", err)
	}
}
