// Package store defines the person record model and the record store
// abstraction the search core runs against, with SQLite-backed and
// in-memory implementations.
package store

import (
	"strings"
	"time"
)

// Canonical person record fields that searches run against. Derived
// prefix columns are named by appending the suffixes below.
const (
	FieldGivenName      = "given_name"
	FieldFamilyName     = "family_name"
	FieldFullName       = "full_name"
	FieldAlternateNames = "alternate_names"
)

// Suffixes for the denormalized prefix-lookup fields attached to each
// indexed property: the full normalized value, its first character, and
// its first two characters.
const (
	SuffixNormalized = "_n_"
	SuffixFirst1     = "_n1_"
	SuffixFirst2     = "_n2_"
)

// PrefixEntry holds the derived prefix-lookup values for one indexed
// string property. After any write the invariant
// N2 == Normalize(source)[:2] must hold (likewise N1 and N).
type PrefixEntry struct {
	// N is the full normalized value of the source property.
	N string
	// N1 is the first normalized character.
	N1 string
	// N2 is the first two normalized characters.
	N2 string
}

// Person is a person record as consumed by the search core. The record
// is owned by the wider application; search only reads the canonical
// fields and keeps the prefix entries consistent via reindexing.
type Person struct {
	// Repo is the repository (disaster instance) the record belongs to.
	Repo string

	// RecordID identifies the record within its repository.
	RecordID string

	GivenName      string
	FamilyName     string
	FullName       string
	AlternateNames string

	// Location fields. Only these participate in federated address
	// matching.
	HomeStreet       string
	HomeNeighborhood string
	HomeCity         string
	HomeState        string
	HomePostalCode   string
	HomeCountry      string

	// Expiry is when the record expires; zero means never.
	Expiry time.Time

	// Expired marks a record withdrawn before its expiry date.
	Expired bool

	// EntryDate is when the record entered this repository.
	EntryDate time.Time

	// Prefix holds the derived lookup entries keyed by canonical field
	// name. Maintained by prefix.Reindex; stale entries are a
	// data-quality defect the caller must prevent by reindexing on
	// every mutation.
	Prefix map[string]PrefixEntry
}

// IsExpired reports whether the record should be excluded from all
// search results.
func (p *Person) IsExpired() bool {
	if p.Expired {
		return true
	}
	return !p.Expiry.IsZero() && !p.Expiry.After(time.Now())
}

// Field returns the value of a canonical field by name.
func (p *Person) Field(name string) (string, bool) {
	switch name {
	case FieldGivenName:
		return p.GivenName, true
	case FieldFamilyName:
		return p.FamilyName, true
	case FieldFullName:
		return p.FullName, true
	case FieldAlternateNames:
		return p.AlternateNames, true
	}
	return "", false
}

// DerivedField returns the value of a derived prefix field such as
// "given_name_n2_", or ok=false if name is not a derived field.
func (p *Person) DerivedField(name string) (string, bool) {
	for _, suffix := range []string{SuffixNormalized, SuffixFirst1, SuffixFirst2} {
		base, found := strings.CutSuffix(name, suffix)
		if !found {
			continue
		}
		entry, ok := p.Prefix[base]
		if !ok {
			return "", true
		}
		switch suffix {
		case SuffixNormalized:
			return entry.N, true
		case SuffixFirst1:
			return entry.N1, true
		default:
			return entry.N2, true
		}
	}
	return "", false
}

// AddressValues returns the non-empty location field values.
func (p *Person) AddressValues() []string {
	var out []string
	for _, v := range []string{
		p.HomeStreet, p.HomeNeighborhood, p.HomeCity,
		p.HomeState, p.HomePostalCode, p.HomeCountry,
	} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
