package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pferrors "github.com/finderlab/pfsearch/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pfsearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, 100, cfg.Search.MaxResults)
	assert.Equal(t, 400, cfg.Search.CandidateLimit)
	assert.Equal(t, 4096, cfg.Search.RomanizeCacheSize)
	assert.Equal(t, ":8100", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Paths.DataDir)
	assert.NotNil(t, cfg.Repositories)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
paths:
  data_dir: /var/lib/pfsearch
search:
  max_results: 50
repositories:
  haiti:
    enable_fulltext_search: true
    external_backends:
      - https://peer.example.org
    fetch_timeout: 750ms
    max_results: 20
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/pfsearch", cfg.Paths.DataDir)
	assert.Equal(t, 50, cfg.Search.MaxResults)
	// Unset values keep their defaults.
	assert.Equal(t, 400, cfg.Search.CandidateLimit)
	assert.Equal(t, ":8100", cfg.Server.Addr)

	repo := cfg.Repo("haiti")
	assert.True(t, repo.EnableFulltextSearch)
	assert.Equal(t, []string{"https://peer.example.org"}, repo.ExternalBackends)
	assert.Equal(t, 750*time.Millisecond, repo.ParsedFetchTimeout())
	assert.Zero(t, repo.ParsedTotalTimeout())
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, pferrors.ErrConfigLoad)
}

func TestLoad_DefaultPathMissingIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Search.MaxResults)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "search: [not a map")
	_, err := Load(path)
	assert.ErrorIs(t, err, pferrors.ErrConfigLoad)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
search:
  max_results: 50
`)
	t.Setenv("PFSEARCH_DATA_DIR", "/srv/pfsearch")
	t.Setenv("PFSEARCH_MAX_RESULTS", "25")
	t.Setenv("PFSEARCH_DICTIONARY_SHARDS", "a.tsv, b.tsv,,")
	t.Setenv("PFSEARCH_SERVER_ADDR", ":9000")
	t.Setenv("PFSEARCH_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/pfsearch", cfg.Paths.DataDir)
	assert.Equal(t, 25, cfg.Search.MaxResults)
	assert.Equal(t, []string{"a.tsv", "b.tsv"}, cfg.Dictionary.Shards)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_IgnoresUnparseableEnvNumbers(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PFSEARCH_MAX_RESULTS", "lots")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Search.MaxResults)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "negative max results",
			mutate:  func(c *Config) { c.Search.MaxResults = -1 },
			wantErr: "max_results",
		},
		{
			name:    "candidate limit below max results",
			mutate:  func(c *Config) { c.Search.CandidateLimit = 10 },
			wantErr: "candidate_limit",
		},
		{
			name:    "zero romanize cache",
			mutate:  func(c *Config) { c.Search.RomanizeCacheSize = 0 },
			wantErr: "romanize_cache_size",
		},
		{
			name:    "bad server timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = "fast" },
			wantErr: "read_timeout",
		},
		{
			name: "bad repo timeout",
			mutate: func(c *Config) {
				c.Repositories["haiti"] = RepoConfig{TotalTimeout: "soon"}
			},
			wantErr: "total_timeout",
		},
		{
			name: "negative repo max results",
			mutate: func(c *Config) {
				c.Repositories["haiti"] = RepoConfig{MaxResults: -5}
			},
			wantErr: "max_results",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRepoMaxResults(t *testing.T) {
	cfg := NewConfig()
	cfg.Search.MaxResults = 100
	cfg.Repositories["haiti"] = RepoConfig{MaxResults: 20}
	cfg.Repositories["tohoku"] = RepoConfig{}

	assert.Equal(t, 20, cfg.RepoMaxResults("haiti"))
	assert.Equal(t, 100, cfg.RepoMaxResults("tohoku"))
	assert.Equal(t, 100, cfg.RepoMaxResults("unknown"))
}

func TestPathResolution(t *testing.T) {
	cfg := NewConfig()
	cfg.Paths.DataDir = "/data"
	cfg.Paths.StoreFile = "persons.db"
	cfg.Paths.IndexDir = "/elsewhere/fulltext.bleve"

	assert.Equal(t, filepath.Join("/data", "persons.db"), cfg.StorePath())
	assert.Equal(t, "/elsewhere/fulltext.bleve", cfg.IndexPath())
}

func TestDefaultConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "pfsearch", "pfsearch.yaml"), DefaultConfigPath())
}
