package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/finderlab/pfsearch/internal/config"
	"github.com/finderlab/pfsearch/internal/dict"
	pferrors "github.com/finderlab/pfsearch/internal/errors"
	"github.com/finderlab/pfsearch/internal/external"
	"github.com/finderlab/pfsearch/internal/fulltext"
	"github.com/finderlab/pfsearch/internal/prefix"
	"github.com/finderlab/pfsearch/internal/script"
	"github.com/finderlab/pfsearch/internal/search"
	"github.com/finderlab/pfsearch/internal/store"
)

// runtime bundles the long-lived components a command needs. Commands
// build only what they use via the open* helpers and must call close.
type runtime struct {
	cfg      *config.Config
	store    *store.SQLiteStore
	dict     *dict.Dictionary
	expander *script.Expander
	indexer  *prefix.Indexer
	fulltext *fulltext.Index
}

// openRuntime opens the record store, dictionary, and romanizer. The
// full-text index is opened separately because only some commands and
// repositories use it.
func openRuntime(cfg *config.Config) (*runtime, error) {
	if err := os.MkdirAll(cfg.Paths.DataDir, 0o755); err != nil {
		return nil, err
	}
	st, err := store.OpenSQLite(cfg.StorePath())
	if err != nil {
		return nil, err
	}

	d := dict.New(cfg.Dictionary.Shards...)
	if len(cfg.Dictionary.Shards) > 0 {
		if err := d.Load(); err != nil {
			// A broken dictionary degrades romanization quality but
			// must not take search down.
			slog.Warn("dictionary load failed",
				"error", pferrors.ErrDictionaryLoad.WithCause(err))
		}
	}

	return &runtime{
		cfg:      cfg,
		store:    st,
		dict:     d,
		expander: script.NewExpanderSize(d, cfg.Search.RomanizeCacheSize),
		indexer:  prefix.DefaultIndexer(),
	}, nil
}

// openFulltext opens the on-disk full-text index, creating it if absent.
func (r *runtime) openFulltext() error {
	if r.fulltext != nil {
		return nil
	}
	ix, err := fulltext.Open(r.cfg.IndexPath(), r.store, r.expander)
	if err != nil {
		return err
	}
	r.fulltext = ix
	return nil
}

// searcher builds the per-repository search orchestrator.
func (r *runtime) searcher(repo string) (*search.Searcher, error) {
	repoCfg := r.cfg.Repo(repo)
	local := search.NewLocalSearcher(r.store, r.indexer).
		WithCandidateLimit(r.cfg.Search.CandidateLimit)

	var opts []search.SearcherOption
	if repoCfg.EnableFulltextSearch {
		if err := r.openFulltext(); err != nil {
			return nil, err
		}
		opts = append(opts, search.WithFullText(r.fulltext))
	}
	if len(repoCfg.ExternalBackends) > 0 {
		client := external.NewClient(external.Config{
			Backends:     repoCfg.ExternalBackends,
			FetchTimeout: repoCfg.ParsedFetchTimeout(),
			TotalTimeout: repoCfg.ParsedTotalTimeout(),
		}, r.store)
		opts = append(opts, search.WithFederation(client))
	}
	return search.NewSearcher(repo, local, r.cfg.RepoMaxResults(repo), opts...), nil
}

// watchDictionary starts dictionary shard watching when configured.
func (r *runtime) watchDictionary(ctx context.Context) {
	if !r.cfg.Dictionary.Watch || len(r.cfg.Dictionary.Shards) == 0 {
		return
	}
	go func() {
		if err := r.dict.Watch(ctx); err != nil && ctx.Err() == nil {
			slog.Warn("dictionary watch stopped", "error", err)
		}
	}()
}

func (r *runtime) close() {
	if r.fulltext != nil {
		if err := r.fulltext.Close(); err != nil {
			slog.Warn("close fulltext index", "error", err)
		}
	}
	if err := r.store.Close(); err != nil {
		slog.Warn("close record store", "error", err)
	}
}
