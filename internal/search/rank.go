package search

import (
	"sort"
	"strings"

	"github.com/finderlab/pfsearch/internal/store"
	"github.com/finderlab/pfsearch/internal/text"
)

// Ranking works on plain whitespace tokens of the normalized strings,
// without CJK isolation: the exact-name rungs compare a CJK surname and
// given name both joined ("田中太郎") and space-separated, which isolation
// would make unreachable. Isolated tokens are for candidate retrieval
// only.

// Ranker scores candidate records against one query. Per-record ranking
// attributes are memoized, so a Ranker is cheap to apply across a whole
// candidate set but must not be shared between queries.
type Ranker struct {
	query        text.Query
	orderedWords []string
	queryWordSet map[string]struct{}
	attrs        map[*store.Person]*rankAttrs
}

type rankAttrs struct {
	givenWords  []string
	familyWords []string
	nameWords   map[string]struct{}
	fullName    string // normalized "given family"
	rank        float64
}

// NewRanker creates a Ranker for the given query.
func NewRanker(q text.Query) *Ranker {
	ordered := strings.Fields(q.Normalized)
	set := make(map[string]struct{}, len(ordered))
	for _, w := range ordered {
		set[w] = struct{}{}
	}
	return &Ranker{
		query:        q,
		orderedWords: ordered,
		queryWordSet: set,
		attrs:        make(map[*store.Person]*rankAttrs),
	}
}

func (r *Ranker) attrsFor(p *store.Person) *rankAttrs {
	if a, ok := r.attrs[p]; ok {
		return a
	}
	givenNorm := text.Normalize(p.GivenName)
	familyNorm := text.Normalize(p.FamilyName)
	a := &rankAttrs{
		givenWords:  strings.Fields(givenNorm),
		familyWords: strings.Fields(familyNorm),
		fullName:    givenNorm + " " + familyNorm,
	}
	a.nameWords = make(map[string]struct{}, len(a.givenWords)+len(a.familyWords))
	for _, w := range a.givenWords {
		a.nameWords[w] = struct{}{}
	}
	for _, w := range a.familyWords {
		a.nameWords[w] = struct{}{}
	}
	a.rank = r.rank(p, a)
	r.attrs[p] = a
	return a
}

// rank implements the scoring ladder. Higher is better.
func (r *Ranker) rank(p *store.Person, a *rankAttrs) float64 {
	ordered := r.orderedWords

	if equalWords(ordered, concatWords(a.givenWords, a.familyWords)) {
		// Matches a Latin name exactly (given name followed by surname).
		return 10
	}

	if isCJKString(p.FamilyName) && matchesJoinedOrSplit(ordered, p.FamilyName, p.GivenName) {
		// Matches a CJK name exactly (surname followed by given name).
		// A multi-character surname is uncommon, so it ranks a bit lower.
		if isSingleCJK(p.FamilyName) {
			return 10
		}
		return 9.5
	}

	if equalWords(ordered, concatWords(a.familyWords, a.givenWords)) {
		// Matches a Latin name with given and family name switched.
		return 9
	}

	if isCJKString(p.GivenName) && matchesJoinedOrSplit(ordered, p.GivenName, p.FamilyName) {
		// Matches a CJK name with surname and given name switched.
		if isSingleCJK(p.GivenName) {
			return 9
		}
		return 8.5
	}

	if setsEqual(a.nameWords, r.queryWordSet) {
		// Matches all the words in the name, out of order.
		return 8
	}

	if r.query.Normalized == strings.Join(a.givenWords, " ") ||
		r.query.Normalized == strings.Join(a.familyWords, " ") {
		// Matches the given name exactly or the family name exactly.
		return 7
	}

	if isSuperset(a.nameWords, r.queryWordSet) {
		// Every query word appears somewhere in the name.
		return 6
	}

	// Count the query words that appear in the name.
	matched := 0
	for w := range r.queryWordSet {
		if _, ok := a.nameWords[w]; ok {
			matched++
		}
	}
	if matched > 4 {
		matched = 4
	}
	return float64(1 + matched)
}

// Less reports whether a should rank before b. After the ladder, ties
// break by normalized full name (keeps identical names adjacent) and
// then record id, so the ordering is fully deterministic.
func (r *Ranker) Less(a, b *store.Person) bool {
	aa, ba := r.attrsFor(a), r.attrsFor(b)
	if aa.rank != ba.rank {
		return aa.rank > ba.rank
	}
	if aa.fullName != ba.fullName {
		return aa.fullName < ba.fullName
	}
	return a.RecordID < b.RecordID
}

// RankAndOrder sorts persons best-first and truncates to max. A negative
// max leaves the list unbounded.
func (r *Ranker) RankAndOrder(persons []*store.Person, max int) []*store.Person {
	sort.SliceStable(persons, func(i, j int) bool {
		return r.Less(persons[i], persons[j])
	})
	if max >= 0 && len(persons) > max {
		persons = persons[:max]
	}
	return persons
}

// matchesJoinedOrSplit reports whether ordered equals [first+second] or
// [first, second] in normalized form.
func matchesJoinedOrSplit(ordered []string, first, second string) bool {
	fn := text.Normalize(first)
	sn := text.Normalize(second)
	if len(ordered) == 1 && ordered[0] == fn+sn {
		return true
	}
	return len(ordered) == 2 && ordered[0] == fn && ordered[1] == sn
}

func isCJKString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 0x3400 || r > 0x9FFF {
			return false
		}
	}
	return true
}

func isSingleCJK(s string) bool {
	return isCJKString(s) && len([]rune(s)) == 1
}

func equalWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func concatWords(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func setsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	return isSuperset(a, b)
}

func isSuperset(super, sub map[string]struct{}) bool {
	for w := range sub {
		if _, ok := super[w]; !ok {
			return false
		}
	}
	return true
}
