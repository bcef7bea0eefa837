package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	goruntime "runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/finderlab/pfsearch/internal/output"
	"github.com/finderlab/pfsearch/internal/store"
)

// personRecord is the JSON wire shape accepted by `pfsearch load`.
// Field names follow the person-record interchange convention.
type personRecord struct {
	RecordID         string `json:"person_record_id"`
	GivenName        string `json:"given_name"`
	FamilyName       string `json:"family_name"`
	FullName         string `json:"full_name"`
	AlternateNames   string `json:"alternate_names"`
	HomeStreet       string `json:"home_street"`
	HomeNeighborhood string `json:"home_neighborhood"`
	HomeCity         string `json:"home_city"`
	HomeState        string `json:"home_state"`
	HomePostalCode   string `json:"home_postal_code"`
	HomeCountry      string `json:"home_country"`
	EntryDate        string `json:"entry_date"`
	ExpiryDate       string `json:"expiry_date"`
	Expired          bool   `json:"expired"`
}

func newLoadCmd() *cobra.Command {
	var repo string
	var batchSize int

	cmd := &cobra.Command{
		Use:   "load --repo <repo> <file.json>",
		Short: "Bulk-load person records from a JSON file",
		Long: `Load person records into a repository.

The file must contain a JSON array of person records. Records without a
person_record_id are assigned a generated one. Prefix entries are
computed on write; full-text documents are added when the repository
has full-text search enabled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, repo, args[0], batchSize)
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Target repository (required)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 200, "Records per store write")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

func runLoad(cmd *cobra.Command, repo, path string, batchSize int) error {
	start := time.Now()
	if batchSize <= 0 {
		batchSize = 200
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := output.New(cmd.OutOrStdout())

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var records []personRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	// One writer at a time across processes.
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

	persons := make([]*store.Person, 0, len(records))
	generated := 0
	for i, rec := range records {
		p, err := rec.toPerson(repo)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if p.RecordID == "" {
			p.RecordID = uuid.NewString()
			generated++
		}
		rt.indexer.Reindex(p)
		persons = append(persons, p)
	}

	ctx := cmd.Context()
	for i := 0; i < len(persons); i += batchSize {
		end := min(i+batchSize, len(persons))
		if err := rt.store.Put(ctx, persons[i:end]...); err != nil {
			return err
		}
	}

	if useFulltext {
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(goruntime.NumCPU())
		for _, p := range persons {
			g.Go(func() error {
				return rt.fulltext.Add(p)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	out.Successf("loaded %d records into %q (%d ids generated) in %s",
		len(persons), repo, generated, time.Since(start).Round(time.Millisecond))
	return nil
}

func (r personRecord) toPerson(repo string) (*store.Person, error) {
	p := &store.Person{
		Repo:             repo,
		RecordID:         r.RecordID,
		GivenName:        r.GivenName,
		FamilyName:       r.FamilyName,
		FullName:         r.FullName,
		AlternateNames:   r.AlternateNames,
		HomeStreet:       r.HomeStreet,
		HomeNeighborhood: r.HomeNeighborhood,
		HomeCity:         r.HomeCity,
		HomeState:        r.HomeState,
		HomePostalCode:   r.HomePostalCode,
		HomeCountry:      r.HomeCountry,
		Expired:          r.Expired,
	}
	var err error
	if p.EntryDate, err = parseDate(r.EntryDate); err != nil {
		return nil, fmt.Errorf("entry_date: %w", err)
	}
	if p.Expiry, err = parseDate(r.ExpiryDate); err != nil {
		return nil, fmt.Errorf("expiry_date: %w", err)
	}
	if p.EntryDate.IsZero() {
		p.EntryDate = time.Now().UTC()
	}
	return p, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
