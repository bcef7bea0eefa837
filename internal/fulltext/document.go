// Package fulltext delegates person search to a bleve document index.
// The index stores only name text and a back-reference record id; the
// canonical record is always re-fetched from the record store, which
// stays authoritative for expiry and deletion.
package fulltext

import (
	"strings"

	"github.com/finderlab/pfsearch/internal/kana"
	"github.com/finderlab/pfsearch/internal/script"
	"github.com/finderlab/pfsearch/internal/store"
	"github.com/finderlab/pfsearch/internal/text"
)

// Document is the indexed shape of a person record. Name fields carry
// the normalized value; Names additionally carries romanized and
// dictionary-reading variants so queries in a different script still
// match. Empty source fields are omitted.
type Document struct {
	RecordID       string `json:"record_id"`
	Repo           string `json:"repo"`
	GivenName      string `json:"given_name,omitempty"`
	FamilyName     string `json:"family_name,omitempty"`
	FullName       string `json:"full_name,omitempty"`
	AlternateNames string `json:"alternate_names,omitempty"`

	// Names is the searchable catch-all: every normalized name token
	// plus its script variants.
	Names string `json:"names,omitempty"`

	// Location carries normalized and romanized address tokens.
	Location string `json:"location,omitempty"`
}

// docID is the bleve document identifier, unique across repositories.
func docID(repo, recordID string) string {
	return repo + "|" + recordID
}

// CreateDocument derives the indexed document for p. The expander
// supplies romanized variants; dictionary readings of kanji tokens are
// applied here (index time) rather than at query time, so queries typed
// in romaji find records recorded in kanji.
func CreateDocument(p *store.Person, expander *script.Expander) Document {
	doc := Document{
		RecordID:       p.RecordID,
		Repo:           p.Repo,
		GivenName:      text.Normalize(p.GivenName),
		FamilyName:     text.Normalize(p.FamilyName),
		FullName:       text.Normalize(p.FullName),
		AlternateNames: text.Normalize(p.AlternateNames),
	}
	doc.Names = strings.Join(nameTokens(p, expander), " ")
	doc.Location = strings.Join(locationTokens(p, expander), " ")
	return doc
}

func nameTokens(p *store.Person, expander *script.Expander) []string {
	seen := make(map[string]struct{})
	var tokens []string
	add := func(t string) {
		if t == "" {
			return
		}
		if _, dup := seen[t]; dup {
			return
		}
		seen[t] = struct{}{}
		tokens = append(tokens, t)
	}

	var kanaTokens []string
	for _, raw := range []string{p.GivenName, p.FamilyName, p.FullName, p.AlternateNames} {
		if raw == "" {
			continue
		}
		q := text.NewQuery(raw)
		for _, word := range q.Words {
			add(word)
			add(expander.Romanize(word))
			for _, reading := range expander.RomanizeByNameDictionary(word) {
				add(reading)
			}
		}
		if kana.ShouldNormalize(raw) {
			kanaTokens = append(kanaTokens, strings.Fields(kana.NormalizeJapanese(raw))...)
		}
	}
	for _, t := range kana.AdditionalTokens(kanaTokens) {
		add(t)
	}
	return tokens
}

func locationTokens(p *store.Person, expander *script.Expander) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, value := range p.AddressValues() {
		q := text.NewQuery(value)
		for _, word := range q.Words {
			for _, t := range []string{word, expander.Romanize(word)} {
				if t == "" {
					continue
				}
				if _, dup := seen[t]; dup {
					continue
				}
				seen[t] = struct{}{}
				tokens = append(tokens, t)
			}
		}
	}
	return tokens
}
