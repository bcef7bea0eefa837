// Package script widens search recall across writing systems by
// producing romanized variants of query and index tokens. Kana is
// converted through the kana tables; everything else falls back to a
// generic Unicode-to-ASCII transliteration.
package script

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mozillazg/go-unidecode"

	"github.com/finderlab/pfsearch/internal/dict"
	"github.com/finderlab/pfsearch/internal/kana"
)

// defaultRomanizeCacheSize bounds the memoized romanizations. Name
// vocabulary in a single repository is small, so a few thousand entries
// covers the working set.
const defaultRomanizeCacheSize = 4096

// Expander converts words between scripts. It is safe for concurrent use.
type Expander struct {
	dictionary dict.Lookup
	cache      *lru.Cache[string, string]
}

// NewExpander creates an Expander backed by the given reading
// dictionary, with the default cache size. Pass dict.Empty when no
// dictionary is deployed.
func NewExpander(dictionary dict.Lookup) *Expander {
	return NewExpanderSize(dictionary, defaultRomanizeCacheSize)
}

// NewExpanderSize creates an Expander whose romanization cache holds up
// to size entries (search.romanize_cache_size). Non-positive sizes fall
// back to the default.
func NewExpanderSize(dictionary dict.Lookup, size int) *Expander {
	if size <= 0 {
		size = defaultRomanizeCacheSize
	}
	cache, _ := lru.New[string, string](size)
	return &Expander{dictionary: dictionary, cache: cache}
}

// Romanize converts word to a Latin-script form. Hiragana and katakana
// go through the kana tables; other scripts are transliterated
// best-effort. Words already in ASCII come back unchanged.
func (e *Expander) Romanize(word string) string {
	if word == "" {
		return ""
	}
	if cached, ok := e.cache.Get(word); ok {
		return cached
	}
	var out string
	if kana.ShouldNormalize(word) {
		out = kana.HiraganaToRomaji(kana.NormalizeJapanese(word))
	} else {
		out = strings.TrimSpace(unidecode.Unidecode(word))
	}
	e.cache.Add(word, out)
	return out
}

// RomanizeByNameDictionary looks word up in the reading dictionary and
// romanizes every known reading. A word with no dictionary entry comes
// back unchanged as the sole element. Kanji names commonly have several
// readings, so the result may contain multiple variants.
func (e *Expander) RomanizeByNameDictionary(word string) []string {
	if word == "" {
		return []string{""}
	}
	readings, ok := e.dictionary.Get(word)
	if !ok {
		return []string{word}
	}
	out := make([]string, 0, len(readings))
	seen := make(map[string]struct{}, len(readings))
	for _, reading := range readings {
		romaji := kana.HiraganaToRomaji(reading)
		if _, dup := seen[romaji]; !dup {
			seen[romaji] = struct{}{}
			out = append(out, romaji)
		}
	}
	return out
}

// ApplyScriptVariant romanizes each space-separated word of query
// independently and rejoins them. Kanji words are left alone here; the
// dictionary path is a separate opt-in because a dictionary reading of a
// name is a guess, not a normalization. Pure-kanji and pure-Latin input
// therefore pass through unchanged.
func (e *Expander) ApplyScriptVariant(query string) string {
	words := strings.Split(query, " ")
	for i, word := range words {
		if !kana.ShouldNormalize(word) && ContainsKanji(word) {
			continue
		}
		words[i] = e.Romanize(word)
	}
	return strings.Join(words, " ")
}

// ContainsKanji reports whether word has at least one CJK ideograph.
func ContainsKanji(word string) bool {
	for _, r := range word {
		if r >= 0x3400 && r <= 0x9FFF {
			return true
		}
	}
	return false
}
