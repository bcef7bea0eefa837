// Package external fans person queries out to remote person-finder
// deployments and serves this deployment's side of the same protocol.
// Remote backends are independently operated and may be slow, stale, or
// down; the client tolerates all three and the canonical record store
// always wins on record state.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	pferrors "github.com/finderlab/pfsearch/internal/errors"
	"github.com/finderlab/pfsearch/internal/search"
	"github.com/finderlab/pfsearch/internal/store"
	"github.com/finderlab/pfsearch/internal/text"
)

// State tracks one federated search call.
type State int

const (
	// StatePending means the call has not issued a request yet.
	StatePending State = iota
	// StateFetching means a backend request is in flight.
	StateFetching
	// StateSucceeded means a backend answered with a usable payload.
	StateSucceeded
	// StateTimedOut means the total deadline elapsed first.
	StateTimedOut
	// StateFailed means every backend errored before the deadline.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateFetching:
		return "FETCHING"
	case StateSucceeded:
		return "SUCCEEDED"
	case StateTimedOut:
		return "TIMED_OUT"
	default:
		return "FAILED"
	}
}

// Config tunes the federated client.
type Config struct {
	// Backends are base URLs of remote deployments.
	Backends []string

	// FetchTimeout bounds one backend attempt.
	FetchTimeout time.Duration

	// TotalTimeout bounds the whole fan-out, across all attempts.
	TotalTimeout time.Duration
}

// DefaultFetchTimeout and DefaultTotalTimeout mirror the deployed
// person-finder settings: fast individual attempts under a short
// overall budget, because federated results decorate, not gate, the
// local response.
const (
	DefaultFetchTimeout = 900 * time.Millisecond
	DefaultTotalTimeout = 5 * time.Second
)

// Client implements search.FederatedBackend over HTTP.
type Client struct {
	cfg    Config
	client *http.Client
	store  store.RecordStore

	// now and shuffle are swappable for tests.
	now     func() time.Time
	shuffle func([]string)

	// lastState is read and written atomically: Search may run
	// concurrently for different requests on one shared Client.
	lastState atomic.Int32
}

// NewClient creates a federated search client.
func NewClient(cfg Config, st store.RecordStore) *Client {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.TotalTimeout <= 0 {
		cfg.TotalTimeout = DefaultTotalTimeout
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{},
		store:  st,
		now:    time.Now,
		shuffle: func(backends []string) {
			rand.Shuffle(len(backends), func(i, j int) {
				backends[i], backends[j] = backends[j], backends[i]
			})
		},
	}
}

// LastState reports the outcome of the most recent Search call. For
// logging and tests only; Search itself is the contract.
func (c *Client) LastState() State {
	return State(c.lastState.Load())
}

func (c *Client) setState(s State) {
	c.lastState.Store(int32(s))
}

// Search implements search.FederatedBackend. A nil result with nil
// error means the federation was unavailable within the time budget:
// degraded, not zero results. Callers must not present it as a
// definitive empty state.
func (c *Client) Search(ctx context.Context, repo string, q text.Query, max int) ([]search.Result, error) {
	c.setState(StatePending)
	if len(c.cfg.Backends) == 0 || q.IsEmpty() || max == 0 {
		return nil, nil
	}

	payload := c.fetchWithLoadBalancing(ctx, repo, q.Raw)
	if payload == nil {
		return nil, nil
	}
	c.setState(StateSucceeded)
	return c.merge(ctx, repo, q, max, payload)
}

// fetchWithLoadBalancing tries each backend in shuffled order until one
// returns a parseable 200 within FetchTimeout, giving up entirely when
// TotalTimeout has elapsed. Shuffling spreads load across backends;
// attempts are sequential so one total budget covers them all.
func (c *Client) fetchWithLoadBalancing(ctx context.Context, repo, rawQuery string) *payload {
	deadline := c.now().Add(c.cfg.TotalTimeout)

	backends := append([]string(nil), c.cfg.Backends...)
	c.shuffle(backends)

	for _, backend := range backends {
		remaining := deadline.Sub(c.now())
		if remaining <= 0 {
			c.setState(StateTimedOut)
			slog.Warn("federated search timed out",
				"error", pferrors.ErrBackendUnavailable)
			return nil
		}
		if err := ctx.Err(); err != nil {
			c.setState(StateFailed)
			return nil
		}

		attemptTimeout := c.cfg.FetchTimeout
		if remaining < attemptTimeout {
			attemptTimeout = remaining
		}

		c.setState(StateFetching)
		p, err := c.fetchOne(ctx, backend, repo, rawQuery, attemptTimeout)
		if err != nil {
			// Malformed payloads and transport errors are the same
			// condition here: this backend has nothing for us now.
			slog.Info("federated backend failed",
				"backend", backend, "error", err)
			continue
		}
		return p
	}
	c.setState(StateFailed)
	slog.Warn("all federated backends failed",
		"error", pferrors.ErrBackendUnavailable)
	return nil
}

func (c *Client) fetchOne(ctx context.Context, backend, repo, rawQuery string, timeout time.Duration) (*payload, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u, err := url.Parse(backend)
	if err != nil {
		return nil, fmt.Errorf("bad backend url: %w", err)
	}
	u.Path = searchPath
	u.RawQuery = url.Values{
		"repo":  {repo},
		"query": {rawQuery},
	}.Encode()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		if attemptCtx.Err() == context.DeadlineExceeded {
			return nil, pferrors.ErrBackendTimeout.WithCause(err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, pferrors.ErrMalformedPayload.WithCause(err)
	}
	return &p, nil
}

// merge turns a backend payload into ranked results backed by canonical
// records. The remote index may be stale, so expired and deleted
// records are silently dropped; the two entry lists stay disjoint and
// name matches always rank before address matches.
func (c *Client) merge(ctx context.Context, repo string, q text.Query, max int, p *payload) ([]search.Result, error) {
	nameIDs := p.NameEntries.ids()
	allIDs := p.AllEntries.ids()

	inNames := make(map[string]struct{}, len(nameIDs))
	for _, id := range nameIDs {
		inNames[id] = struct{}{}
	}
	// The protocol promises disjoint lists; enforce it anyway so a
	// buggy backend cannot produce duplicate results.
	dedupedAll := allIDs[:0]
	for _, id := range allIDs {
		if _, dup := inNames[id]; !dup {
			dedupedAll = append(dedupedAll, id)
		}
	}
	allIDs = dedupedAll

	fetched, err := c.store.GetByKeys(ctx, repo, append(append([]string(nil), nameIDs...), allIDs...))
	if err != nil {
		return nil, err
	}

	var nameMatches, addressMatches []*store.Person
	for i, person := range fetched {
		if person == nil || person.IsExpired() {
			continue
		}
		if i < len(nameIDs) {
			nameMatches = append(nameMatches, person)
			continue
		}
		// An all-entries member with no name overlap with the query
		// matched by address alone; it must not surface as a name
		// result.
		if nameOverlap(person, q) {
			addressMatches = append(addressMatches, person)
		}
	}

	ranker := search.NewRanker(q)
	results := search.Results(ranker.RankAndOrder(nameMatches, -1))
	for _, p := range ranker.RankAndOrder(addressMatches, -1) {
		results = append(results, search.Result{Person: p, IsAddressMatch: true})
	}
	if len(results) > max {
		results = results[:max]
	}
	return results, nil
}

// nameOverlap reports whether any normalized name word of p and any
// query word stand in a prefix relation (either direction).
func nameOverlap(p *store.Person, q text.Query) bool {
	for _, raw := range []string{p.GivenName, p.FamilyName, p.FullName, p.AlternateNames} {
		if raw == "" {
			continue
		}
		for _, nameWord := range text.NewQuery(raw).Words {
			for _, queryWord := range q.Words {
				if hasPrefixEither(nameWord, queryWord) {
					return true
				}
			}
		}
	}
	return false
}

func hasPrefixEither(a, b string) bool {
	if len(a) >= len(b) {
		return a[:len(b)] == b
	}
	return b[:len(a)] == a
}
