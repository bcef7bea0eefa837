package cmd

import (
	goruntime "runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/finderlab/pfsearch/internal/output"
	"github.com/finderlab/pfsearch/internal/store"
)

func newReindexCmd() *cobra.Command {
	var repo string
	var batchSize int

	cmd := &cobra.Command{
		Use:   "reindex --repo <repo>",
		Short: "Recompute prefix entries and full-text documents",
		Long: `Recompute derived search data for every record in a repository.

Run after changing the name dictionary or upgrading across a release
that changed normalization, so stored prefix entries and full-text
documents match what queries compute.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReindex(cmd, repo, batchSize)
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Repository to reindex (required)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 200, "Records per store write")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

func runReindex(cmd *cobra.Command, repo string, batchSize int) error {
	start := time.Now()
	if batchSize <= 0 {
		batchSize = 200
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := output.New(cmd.OutOrStdout())

	lock := store.NewFileLock(cfg.Paths.DataDir)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	rt, err := openRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.close()

	useFulltext := cfg.Repo(repo).EnableFulltextSearch
	if useFulltext {
		if err := rt.openFulltext(); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	it := rt.store.Query(repo).Run(ctx)
	defer it.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(goruntime.NumCPU())

	total := 0
	batch := make([]*store.Person, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := rt.store.Put(ctx, batch...); err != nil {
			return err
		}
		if useFulltext {
			for _, p := range batch {
				g.Go(func() error {
					return rt.fulltext.Add(p)
				})
			}
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		if gctx.Err() != nil {
			break
		}
		rt.indexer.Reindex(p)
		batch = append(batch, p)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := it.Err(); err != nil {
		return err
	}
	if err := flush(); err != nil {
		return err
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out.Successf("reindexed %d records in %q in %s",
		total, repo, time.Since(start).Round(time.Millisecond))
	return nil
}
