package text

import "strings"

// Query encapsulates the processing applied to both indexed name fields
// and incoming query strings: normalization plus splitting into words.
// A Query is immutable once constructed, and two Queries built from the
// same input always carry identical word sequences.
type Query struct {
	// Raw is the original query string as entered.
	Raw string

	// Normalized is Normalize(Raw).
	Normalized string

	// Words holds the normalized tokens in left-to-right order of
	// appearance. CJK ideographs each form their own single-character
	// word. Never contains an empty string.
	Words []string
}

// NewQuery builds a Query from a raw query string. An input that
// normalizes to nothing yields an empty word list, never an error.
func NewQuery(raw string) Query {
	normalized := Normalize(raw)
	return Query{
		Raw:        raw,
		Normalized: normalized,
		Words:      strings.Fields(IsolateCJK(normalized)),
	}
}

// IsEmpty reports whether the query has no searchable words.
func (q Query) IsEmpty() bool {
	return len(q.Words) == 0
}
