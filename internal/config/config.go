// Package config loads and validates pfsearch configuration.
//
// Configuration is applied in order of increasing precedence:
//  1. Embedded defaults
//  2. Config file (pfsearch.yaml)
//  3. Environment variables (PFSEARCH_*)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	pferrors "github.com/finderlab/pfsearch/internal/errors"
)

// Config is the complete pfsearch configuration.
type Config struct {
	Version      int                   `yaml:"version" json:"version"`
	Paths        PathsConfig           `yaml:"paths" json:"paths"`
	Search       SearchConfig          `yaml:"search" json:"search"`
	Dictionary   DictionaryConfig      `yaml:"dictionary" json:"dictionary"`
	Server       ServerConfig          `yaml:"server" json:"server"`
	Logging      LoggingConfig         `yaml:"logging" json:"logging"`
	Repositories map[string]RepoConfig `yaml:"repositories" json:"repositories"`
}

// PathsConfig configures on-disk locations for the store and indexes.
type PathsConfig struct {
	// DataDir is the root directory for the record store and full-text
	// index. Per-repo files live underneath it.
	DataDir string `yaml:"data_dir" json:"data_dir"`
	// StoreFile is the SQLite database file, relative to DataDir unless
	// absolute.
	StoreFile string `yaml:"store_file" json:"store_file"`
	// IndexDir is the full-text index directory, relative to DataDir
	// unless absolute.
	IndexDir string `yaml:"index_dir" json:"index_dir"`
}

// SearchConfig configures search-wide parameters.
type SearchConfig struct {
	// MaxResults caps the number of results a search returns.
	MaxResults int `yaml:"max_results" json:"max_results"`
	// CandidateLimit caps how many prefix-bucket candidates are fetched
	// per query word before ranking.
	CandidateLimit int `yaml:"candidate_limit" json:"candidate_limit"`
	// RomanizeCacheSize is the LRU size for romanization results.
	RomanizeCacheSize int `yaml:"romanize_cache_size" json:"romanize_cache_size"`
}

// DictionaryConfig configures the Japanese name dictionary.
type DictionaryConfig struct {
	// Shards are TSV files mapping kanji names to readings.
	Shards []string `yaml:"shards" json:"shards"`
	// Watch reloads shards automatically when the files change.
	Watch bool `yaml:"watch" json:"watch"`
}

// ServerConfig configures the federation HTTP endpoint.
type ServerConfig struct {
	Addr            string `yaml:"addr" json:"addr"`
	ReadTimeout     string `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level         string `yaml:"level" json:"level"`
	FilePath      string `yaml:"file_path" json:"file_path"`
	MaxSizeMB     int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles      int    `yaml:"max_files" json:"max_files"`
	WriteToStderr bool   `yaml:"write_to_stderr" json:"write_to_stderr"`
}

// RepoConfig holds per-repository search settings.
type RepoConfig struct {
	// EnableFulltextSearch routes queries through the full-text index
	// instead of the prefix-bucket path.
	EnableFulltextSearch bool `yaml:"enable_fulltext_search" json:"enable_fulltext_search"`
	// ExternalBackends are base URLs of peer federation endpoints.
	ExternalBackends []string `yaml:"external_backends" json:"external_backends"`
	// FetchTimeout bounds a single backend fetch attempt.
	FetchTimeout string `yaml:"fetch_timeout" json:"fetch_timeout"`
	// TotalTimeout bounds the whole federated fetch across attempts.
	TotalTimeout string `yaml:"total_timeout" json:"total_timeout"`
	// MaxResults overrides Search.MaxResults for this repository when
	// non-zero.
	MaxResults int `yaml:"max_results" json:"max_results"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Paths: PathsConfig{
			DataDir:   defaultDataDir(),
			StoreFile: "persons.db",
			IndexDir:  "fulltext.bleve",
		},
		Search: SearchConfig{
			MaxResults:        100,
			CandidateLimit:    400,
			RomanizeCacheSize: 4096,
		},
		Dictionary: DictionaryConfig{
			Watch: false,
		},
		Server: ServerConfig{
			Addr:            ":8100",
			ReadTimeout:     "10s",
			WriteTimeout:    "15s",
			ShutdownTimeout: "5s",
		},
		Logging: LoggingConfig{
			Level:         "info",
			MaxSizeMB:     10,
			MaxFiles:      5,
			WriteToStderr: true,
		},
		Repositories: map[string]RepoConfig{},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "pfsearch")
	}
	return filepath.Join(home, ".local", "share", "pfsearch")
}

// DefaultConfigPath returns the config file location, honoring
// XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pfsearch", "pfsearch.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "pfsearch", "pfsearch.yaml")
	}
	return filepath.Join(home, ".config", "pfsearch", "pfsearch.yaml")
}

// Load loads configuration. path may be empty, in which case the
// default location is tried; a missing file there is not an error.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := cfg.loadYAML(path); err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, pferrors.ErrConfigLoad.WithCause(err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, pferrors.ErrConfigLoad.WithCause(err)
	}
	return cfg, nil
}

// loadYAML reads and merges a YAML file into c.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}
	if other.Paths.DataDir != "" {
		c.Paths.DataDir = other.Paths.DataDir
	}
	if other.Paths.StoreFile != "" {
		c.Paths.StoreFile = other.Paths.StoreFile
	}
	if other.Paths.IndexDir != "" {
		c.Paths.IndexDir = other.Paths.IndexDir
	}
	if other.Search.MaxResults != 0 {
		c.Search.MaxResults = other.Search.MaxResults
	}
	if other.Search.CandidateLimit != 0 {
		c.Search.CandidateLimit = other.Search.CandidateLimit
	}
	if other.Search.RomanizeCacheSize != 0 {
		c.Search.RomanizeCacheSize = other.Search.RomanizeCacheSize
	}
	if len(other.Dictionary.Shards) > 0 {
		c.Dictionary.Shards = other.Dictionary.Shards
	}
	if other.Dictionary.Watch {
		c.Dictionary.Watch = true
	}
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.ReadTimeout != "" {
		c.Server.ReadTimeout = other.Server.ReadTimeout
	}
	if other.Server.WriteTimeout != "" {
		c.Server.WriteTimeout = other.Server.WriteTimeout
	}
	if other.Server.ShutdownTimeout != "" {
		c.Server.ShutdownTimeout = other.Server.ShutdownTimeout
	}
	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.FilePath != "" {
		c.Logging.FilePath = other.Logging.FilePath
	}
	if other.Logging.MaxSizeMB != 0 {
		c.Logging.MaxSizeMB = other.Logging.MaxSizeMB
	}
	if other.Logging.MaxFiles != 0 {
		c.Logging.MaxFiles = other.Logging.MaxFiles
	}
	for name, repo := range other.Repositories {
		c.Repositories[name] = repo
	}
}

// applyEnvOverrides applies PFSEARCH_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PFSEARCH_DATA_DIR"); v != "" {
		c.Paths.DataDir = v
	}
	if v := os.Getenv("PFSEARCH_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.MaxResults = n
		}
	}
	if v := os.Getenv("PFSEARCH_CANDIDATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.CandidateLimit = n
		}
	}
	if v := os.Getenv("PFSEARCH_DICTIONARY_SHARDS"); v != "" {
		c.Dictionary.Shards = splitList(v)
	}
	if v := os.Getenv("PFSEARCH_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PFSEARCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PFSEARCH_LOG_FILE"); v != "" {
		c.Logging.FilePath = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the configuration for programming and operator errors.
func (c *Config) Validate() error {
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive, got %d", c.Search.MaxResults)
	}
	if c.Search.CandidateLimit < c.Search.MaxResults {
		return fmt.Errorf("search.candidate_limit (%d) must be at least search.max_results (%d)",
			c.Search.CandidateLimit, c.Search.MaxResults)
	}
	if c.Search.RomanizeCacheSize <= 0 {
		return fmt.Errorf("search.romanize_cache_size must be positive, got %d", c.Search.RomanizeCacheSize)
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"server.read_timeout", c.Server.ReadTimeout},
		{"server.write_timeout", c.Server.WriteTimeout},
		{"server.shutdown_timeout", c.Server.ShutdownTimeout},
	} {
		if field.value == "" {
			continue
		}
		if _, err := time.ParseDuration(field.value); err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
	}
	for name, repo := range c.Repositories {
		if name == "" {
			return fmt.Errorf("repository with empty name")
		}
		for _, field := range []struct {
			name  string
			value string
		}{
			{"fetch_timeout", repo.FetchTimeout},
			{"total_timeout", repo.TotalTimeout},
		} {
			if field.value == "" {
				continue
			}
			if _, err := time.ParseDuration(field.value); err != nil {
				return fmt.Errorf("repositories.%s.%s: %w", name, field.name, err)
			}
		}
		if repo.MaxResults < 0 {
			return fmt.Errorf("repositories.%s.max_results must not be negative", name)
		}
	}
	return nil
}

// Repo returns the settings for a repository, falling back to zero
// values for unknown repositories.
func (c *Config) Repo(name string) RepoConfig {
	return c.Repositories[name]
}

// RepoMaxResults returns the effective result cap for a repository.
func (c *Config) RepoMaxResults(name string) int {
	if repo, ok := c.Repositories[name]; ok && repo.MaxResults > 0 {
		return repo.MaxResults
	}
	return c.Search.MaxResults
}

// StorePath returns the absolute SQLite database path.
func (c *Config) StorePath() string {
	return c.resolve(c.Paths.StoreFile)
}

// IndexPath returns the absolute full-text index path.
func (c *Config) IndexPath() string {
	return c.resolve(c.Paths.IndexDir)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Paths.DataDir, p)
}

// ParsedFetchTimeout parses a repo's fetch timeout, or 0 if unset.
func (r RepoConfig) ParsedFetchTimeout() time.Duration {
	d, _ := time.ParseDuration(r.FetchTimeout)
	return d
}

// ParsedTotalTimeout parses a repo's total timeout, or 0 if unset.
func (r RepoConfig) ParsedTotalTimeout() time.Duration {
	d, _ := time.ParseDuration(r.TotalTimeout)
	return d
}
