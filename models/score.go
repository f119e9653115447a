package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ScoreValue keeps the raw score text as entered ("21", ""). Older rows were
// persisted as JSON numbers, so unmarshalling accepts both forms.
type ScoreValue string

func (v *ScoreValue) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*v = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*v = ScoreValue(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*v = ScoreValue(num.String())
	return nil
}

// Points coerces the raw text to an integer point total. Anything that does
// not parse counts as zero.
func (v ScoreValue) Points() int {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

const (
	WinnerT1 = "t1"
	WinnerT2 = "t2"
)

// ScoreEntry is one match row's result inside a fixture. All fields are
// optional; the zero value is a legal "nothing entered yet" entry.
type ScoreEntry struct {
	T1Player1 string     `json:"t1Player1"`
	T1Player2 string     `json:"t1Player2"`
	T2Player1 string     `json:"t2Player1"`
	T2Player2 string     `json:"t2Player2"`
	T1        ScoreValue `json:"t1"`
	T2        ScoreValue `json:"t2"`
	Winner    string     `json:"winner"`
}

// WinnerSide returns "t1" or "t2" when a valid winner is recorded, otherwise
// the empty string. Any other stored value means "no result".
func (e ScoreEntry) WinnerSide() string {
	if e.Winner == WinnerT1 || e.Winner == WinnerT2 {
		return e.Winner
	}
	return ""
}

// Score entry field names as they appear on the wire.
const (
	FieldT1Player1 = "t1Player1"
	FieldT1Player2 = "t1Player2"
	FieldT2Player1 = "t2Player1"
	FieldT2Player2 = "t2Player2"
	FieldT1        = "t1"
	FieldT2        = "t2"
	FieldWinner    = "winner"
)

// SetField applies a single-field update, leaving siblings untouched.
// Unknown field names report false.
func (e *ScoreEntry) SetField(field, value string) bool {
	switch field {
	case FieldT1Player1:
		e.T1Player1 = value
	case FieldT1Player2:
		e.T1Player2 = value
	case FieldT2Player1:
		e.T2Player1 = value
	case FieldT2Player2:
		e.T2Player2 = value
	case FieldT1:
		e.T1 = ScoreValue(value)
	case FieldT2:
		e.T2 = ScoreValue(value)
	case FieldWinner:
		e.Winner = value
	default:
		return false
	}
	return true
}

// ScoreLedger is the two-level fixtureKey → rowID → entry map. Row IDs are
// decimal strings because they round-trip through JSON object keys.
type ScoreLedger map[string]map[string]ScoreEntry

// Entry reads without allocating: missing fixture or row keys come back as
// an all-empty entry.
func (l ScoreLedger) Entry(fixtureKey, rowID string) ScoreEntry {
	if l == nil {
		return ScoreEntry{}
	}
	rows, ok := l[fixtureKey]
	if !ok {
		return ScoreEntry{}
	}
	return rows[rowID]
}

// Merge upserts a single field, creating intermediate maps as needed.
func (l ScoreLedger) Merge(fixtureKey, rowID, field, value string) bool {
	rows, ok := l[fixtureKey]
	if !ok {
		rows = make(map[string]ScoreEntry)
		l[fixtureKey] = rows
	}
	entry := rows[rowID]
	if !entry.SetField(field, value) {
		return false
	}
	rows[rowID] = entry
	return true
}
