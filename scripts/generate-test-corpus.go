//go:build ignore

// Package main generates a synthetic person-record corpus for load and
// benchmark testing.
// Usage: go run scripts/generate-test-corpus.go -records 10000 -output testdata/bench.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

var (
	numRecords = flag.Int("records", 10000, "Number of person records to generate")
	outputFile = flag.String("output", "testdata/bench.json", "Output JSON file")
	repo       = flag.String("repo", "bench", "Repository name stamped on each record")
	seed       = flag.Int64("seed", 42, "Random seed for reproducibility")
)

// Name pools. Latin names dominate, with a Japanese slice mixing kana
// and kanji so romanization and dictionary lookups are exercised too.
var (
	latinGiven = []string{
		"David", "Marie", "Jean", "Anna", "John", "Sophie", "Pierre",
		"Rose", "Michel", "Claire", "Paul", "Lucie", "Jacques", "Emma",
		"Louis", "Julie", "Andre", "Nadia", "Carlos", "Fabiola",
	}
	latinFamily = []string{
		"Smith", "Joseph", "Pierre", "Jean", "Baptiste", "Charles",
		"Etienne", "Francois", "Augustin", "Michel", "Laurent",
		"Registre", "Delva", "Alexis", "Cadet", "Desir",
	}
	kanaGiven  = []string{"はなこ", "たろう", "あずさ", "ゆうき", "さくら", "けんじ"}
	kanjiGiven = []string{"太郎", "花子", "健二", "梓", "優希"}
	kanaFamily = []string{"やまだ", "さとう", "すずき", "たなか", "みうら"}
	kanjiFamily = []string{"山田", "佐藤", "鈴木", "田中", "三浦", "東"}

	cities = []string{
		"Port-au-Prince", "Jacmel", "Léogâne", "Gonaïves", "Cap-Haïtien",
		"仙台", "石巻", "気仙沼", "Santiago", "La Paz",
	}
	states = []string{"Ouest", "Sud-Est", "Artibonite", "宮城県", "岩手県"}
)

// personRecord mirrors the pfsearch load input format.
type personRecord struct {
	PersonRecordID string `json:"person_record_id,omitempty"`
	GivenName      string `json:"given_name,omitempty"`
	FamilyName     string `json:"family_name,omitempty"`
	FullName       string `json:"full_name,omitempty"`
	AlternateNames string `json:"alternate_names,omitempty"`
	HomeCity       string `json:"home_city,omitempty"`
	HomeState      string `json:"home_state,omitempty"`
	EntryDate      string `json:"entry_date,omitempty"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
	Expired        bool   `json:"expired,omitempty"`
}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(filepath.Dir(*outputFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	records := make([]personRecord, 0, *numRecords)
	for i := 0; i < *numRecords; i++ {
		records = append(records, generateRecord(rng, i))
	}

	f, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing records: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d records for repo %q in %s\n", len(records), *repo, *outputFile)
}

func generateRecord(rng *rand.Rand, index int) personRecord {
	rec := personRecord{
		PersonRecordID: fmt.Sprintf("%s.example.org/person.%d", *repo, index+1),
		HomeCity:       pick(rng, cities),
		HomeState:      pick(rng, states),
		EntryDate:      randomDate(rng).Format(time.RFC3339),
	}

	// 70% Latin, 15% kana, 15% kanji with a kana alternate reading.
	switch n := rng.Intn(100); {
	case n < 70:
		rec.GivenName = pick(rng, latinGiven)
		rec.FamilyName = pick(rng, latinFamily)
		rec.FullName = rec.GivenName + " " + rec.FamilyName
	case n < 85:
		rec.GivenName = pick(rng, kanaGiven)
		rec.FamilyName = pick(rng, kanaFamily)
	default:
		rec.GivenName = pick(rng, kanjiGiven)
		rec.FamilyName = pick(rng, kanjiFamily)
		rec.AlternateNames = pick(rng, kanaFamily) + " " + pick(rng, kanaGiven)
	}

	// A small slice of the corpus is expired, so expiry filtering shows
	// up in benchmarks the way it does in production data.
	if rng.Intn(100) < 5 {
		rec.Expired = true
		rec.ExpiryDate = randomDate(rng).Format(time.RFC3339)
	}
	return rec
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

func randomDate(rng *rand.Rand) time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(rng.Intn(365*24)) * time.Hour)
}
