// Package kana implements the Japanese-script handling used by search:
// detection of kana input, Japanese-specific normalization, katakana to
// hiragana folding, and hiragana to romaji conversion.
package kana

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ShouldNormalize reports whether s should go through NormalizeJapanese
// instead of the generic text.Normalize path. True when s contains any
// hiragana, full/half-width katakana, or full-width Latin character.
func ShouldNormalize(s string) bool {
	for _, r := range s {
		if (r >= 0x3040 && r <= 0x30FF) || (r >= 0xFF00 && r <= 0xFF9F) {
			return true
		}
	}
	return false
}

// NormalizeJapanese normalizes s with Japanese-specific rules. NFKC
// compatibility decomposition folds full-width Latin to ASCII and
// half-width katakana to full width; non-letters become spaces,
// combining marks and apostrophes are dropped, and the result is
// trimmed, uppercased, and folded from katakana to hiragana.
func NormalizeJapanese(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, ch := range norm.NFKC.String(s) {
		switch {
		case unicode.IsLetter(ch):
			b.WriteRune(ch)
		case unicode.Is(unicode.Mn, ch):
		case ch == '\'':
		default:
			b.WriteRune(' ')
		}
	}
	normalized := strings.ToUpper(strings.TrimSpace(b.String()))
	return KatakanaToHiragana(normalized)
}

// IsHiragana reports whether s is a non-empty string of only hiragana.
func IsHiragana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 0x3040 || r > 0x309F {
			return false
		}
	}
	return true
}

// KatakanaToHiragana replaces each katakana rune with its hiragana
// counterpart, leaving all other runes untouched.
func KatakanaToHiragana(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if h, ok := katakanaToHiragana[r]; ok {
			b.WriteRune(h)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// longVowelCollapse rewrites doubled vowels (and OU) produced by the rule
// table to single vowels, matching how romanized Japanese names are
// conventionally spelled (OOTA -> OTA, YUUKI -> YUKI).
var longVowelCollapse = []struct{ pattern, replacement string }{
	{"AA", "A"}, {"II", "I"}, {"UU", "U"}, {"EE", "E"}, {"OO", "O"}, {"OU", "O"},
}

// HiraganaToRomaji converts every hiragana sequence in s to romaji using
// longest-prefix matching over the rule table. Runes with no applicable
// rule pass through unchanged.
func HiraganaToRomaji(s string) string {
	var b strings.Builder
	remaining := s
	for remaining != "" {
		longest := 0
		var matched romajiRule
		for _, rule := range romajiRules {
			if len(rule.kana) > longest && strings.HasPrefix(remaining, rule.kana) {
				matched = rule
				longest = len(rule.kana)
			}
		}
		if longest == 0 {
			_, size := utf8.DecodeRuneInString(remaining)
			b.WriteString(remaining[:size])
			remaining = remaining[size:]
			continue
		}
		b.WriteString(matched.romaji)
		remaining = matched.rest + remaining[longest:]
	}
	result := b.String()
	for _, p := range longVowelCollapse {
		result = strings.ReplaceAll(result, p.pattern, p.replacement)
	}
	return result
}

// AdditionalTokens generates extra index tokens from name tokens: romaji
// variants of hiragana tokens, and for exactly two all-hiragana tokens
// their two concatenations. Japanese queries often join a family and
// given name without a space, and a hiragana run is not segmented at
// query time, so the concatenated forms must exist in the index to be
// findable.
func AdditionalTokens(tokens []string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(t string) {
		if _, dup := seen[t]; !dup && t != "" {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}

	allHiragana := true
	for _, token := range tokens {
		if IsHiragana(token) {
			add(HiraganaToRomaji(token))
		} else {
			allHiragana = false
		}
	}

	if allHiragana && len(tokens) == 2 {
		add(tokens[0] + tokens[1])
		add(tokens[1] + tokens[0])
	}
	return out
}
