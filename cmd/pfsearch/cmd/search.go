package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	pferrors "github.com/finderlab/pfsearch/internal/errors"
	"github.com/finderlab/pfsearch/internal/output"
	"github.com/finderlab/pfsearch/internal/search"
	"github.com/finderlab/pfsearch/internal/text"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	repo     string
	location string
	format   string // "text", "json"
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Search person records by name",
		Long: `Search person records in a repository.

The query is normalized (case, accents, scripts) before matching, so
"de Havilland", "DEHAVILLAND" and kana spellings all find each other.

Examples:
  pfsearch search --repo haiti "john smith"
  pfsearch search --repo tohoku "山田 はなこ" --location sendai
  pfsearch search --repo haiti "smith" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return runSearch(cmd, name, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.repo, "repo", "r", "", "Repository to search (required)")
	cmd.Flags().StringVarP(&opts.location, "location", "l", "", "Location hint (city, region)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

// searchResultJSON is the stable JSON shape for --format json.
type searchResultJSON struct {
	RecordID       string `json:"person_record_id"`
	GivenName      string `json:"given_name,omitempty"`
	FamilyName     string `json:"family_name,omitempty"`
	FullName       string `json:"full_name,omitempty"`
	AlternateNames string `json:"alternate_names,omitempty"`
	City           string `json:"home_city,omitempty"`
	State          string `json:"home_state,omitempty"`
	IsAddressMatch bool   `json:"is_address_match,omitempty"`
}

func runSearch(cmd *cobra.Command, name string, opts searchOptions) error {
	if text.NewQuery(name).IsEmpty() {
		return pferrors.ErrEmptyQuery
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rt, err := openRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.close()

	searcher, err := rt.searcher(opts.repo)
	if err != nil {
		return err
	}
	results, err := searcher.Search(cmd.Context(), name, opts.location)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		return writeJSONResults(cmd, results)
	}
	return writeTextResults(cmd, results)
}

func writeJSONResults(cmd *cobra.Command, results []search.Result) error {
	out := make([]searchResultJSON, 0, len(results))
	for _, r := range results {
		out = append(out, searchResultJSON{
			RecordID:       r.Person.RecordID,
			GivenName:      r.Person.GivenName,
			FamilyName:     r.Person.FamilyName,
			FullName:       r.Person.FullName,
			AlternateNames: r.Person.AlternateNames,
			City:           r.Person.HomeCity,
			State:          r.Person.HomeState,
			IsAddressMatch: r.IsAddressMatch,
		})
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeTextResults(cmd *cobra.Command, results []search.Result) error {
	out := output.New(cmd.OutOrStdout())
	if len(results) == 0 {
		out.Dim("no results")
		return nil
	}
	for i, r := range results {
		name := r.Person.FullName
		if name == "" {
			name = strings.TrimSpace(r.Person.GivenName + " " + r.Person.FamilyName)
		}
		line := fmt.Sprintf("%2d. %s  [%s]", i+1, name, r.Person.RecordID)
		if r.Person.HomeCity != "" {
			line += "  " + r.Person.HomeCity
		}
		if r.IsAddressMatch {
			line += "  (address match)"
		}
		out.Println(line)
	}
	return nil
}
