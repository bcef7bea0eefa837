// Package dict provides the kanji reading dictionary consumed by
// script-variant expansion. Shards are TSV files of "kanji<TAB>reading"
// lines produced by an offline batch job; the package merges them into a
// read-only lookup with an explicit load lifecycle so tests can inject
// fakes.
package dict

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Lookup is the read-only dictionary interface the search core depends
// on. Get returns every known reading for key, or ok=false when the key
// is absent.
type Lookup interface {
	Get(key string) (readings []string, ok bool)
}

// Empty is a Lookup with no entries.
var Empty Lookup = mapLookup(nil)

type mapLookup map[string][]string

func (m mapLookup) Get(key string) ([]string, bool) {
	r, ok := m[key]
	return r, ok
}

// FromMap builds a Lookup from an in-memory map. Intended for tests.
func FromMap(entries map[string][]string) Lookup {
	m := make(mapLookup, len(entries))
	for k, v := range entries {
		m[k] = append([]string(nil), v...)
	}
	return m
}

// Dictionary merges one or more TSV shards into a single lookup.
// Load must be called before Get; Reload swaps in a fresh copy
// atomically, so concurrent readers never observe a partial state.
type Dictionary struct {
	shards []string

	mu      sync.RWMutex
	entries map[string][]string
	loaded  bool
}

// New creates a Dictionary over the given shard paths. The person-finder
// deployment ships two shards, a name dictionary and a location
// dictionary, merged here.
func New(shards ...string) *Dictionary {
	return &Dictionary{shards: shards}
}

// Load reads and merges every shard. A missing shard is an error; a
// malformed line is an error naming the shard and line number.
func (d *Dictionary) Load() error {
	entries, err := readShards(d.shards)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.entries = entries
	d.loaded = true
	d.mu.Unlock()
	return nil
}

// Reload re-reads the shards, replacing the current entries wholesale.
// On error the previous entries stay in place.
func (d *Dictionary) Reload() error {
	return d.Load()
}

// Get returns the readings recorded for key. Calling Get before Load
// reports every key as absent.
func (d *Dictionary) Get(key string) ([]string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	readings, ok := d.entries[key]
	return readings, ok
}

// Len returns the number of distinct keys currently loaded.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Loaded reports whether Load has completed successfully at least once.
func (d *Dictionary) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

func readShards(paths []string) (map[string][]string, error) {
	entries := make(map[string][]string)
	for _, path := range paths {
		if err := readShard(path, entries); err != nil {
			return nil, err
		}
	}
	// Multiple shards may contribute readings for the same key in any
	// order; sort for deterministic Get results.
	for key, readings := range entries {
		sort.Strings(readings)
		entries[key] = dedupeSorted(readings)
	}
	return entries, nil
}

func readShard(path string, entries map[string][]string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dictionary shard: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\n")
		if line == "" {
			continue
		}
		key, reading, found := strings.Cut(line, "\t")
		if !found || key == "" || reading == "" {
			return fmt.Errorf("%s:%d: malformed dictionary line", path, lineNo)
		}
		entries[key] = append(entries[key], reading)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read dictionary shard %s: %w", path, err)
	}
	return nil
}

func dedupeSorted(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
