package external

import (
	"encoding/json"
)

// searchPath is the query endpoint path, shared by client and server.
const searchPath = "/api/search"

// maxResponseBytes caps how much of a backend response is read.
const maxResponseBytes = 1 << 20

// payload is the wire shape of a backend response: two disjoint entry
// lists, one for records whose name matched and one for records whose
// name and/or address matched.
type payload struct {
	NameEntries entryList `json:"name_entries"`
	AllEntries  entryList `json:"all_entries"`
}

// entryList accepts both historical encodings of an entry array:
// plain record-id strings and {"person_record_id": ...} objects.
type entryList []entry

type entry struct {
	PersonRecordID string `json:"person_record_id"`
}

func (e *entry) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		e.PersonRecordID = id
		return nil
	}
	type wire entry
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = entry(w)
	return nil
}

func (l entryList) ids() []string {
	out := make([]string, 0, len(l))
	for _, e := range l {
		if e.PersonRecordID != "" {
			out = append(out, e.PersonRecordID)
		}
	}
	return out
}
