package models

import "time"

// TournamentType определяет режим турнира.
type TournamentType string

const (
	TypeTeam    TournamentType = "team"
	TypeDoubles TournamentType = "doubles"
	TypeSingles TournamentType = "singles"
)

func (t TournamentType) Valid() bool {
	switch t {
	case TypeTeam, TypeDoubles, TypeSingles:
		return true
	}
	return false
}

// Category is a skill bracket (e.g. "A", "B") with the number of player
// slots each team gets for it. Keys are stored already slugged.
type Category struct {
	Key   string `json:"key" db:"key"`
	Count int    `json:"count" db:"count"`
}

// PlayerSlot is one roster position inside a team. Rank ("A1", "B3") is the
// stable identifier; Name is assigned later and may stay empty.
type PlayerSlot struct {
	Category string `json:"category" db:"category"`
	Rank     string `json:"rank" db:"rank"`
	Name     string `json:"name" db:"name"`
}

type Team struct {
	Name    string       `json:"name" db:"name"`
	Owner   string       `json:"owner" db:"owner"`
	Players []PlayerSlot `json:"players"`
}

// MatchTypeOption is the derived unordered pairing of two category keys.
// It is never stored on its own; the config below references it by key.
type MatchTypeOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	A     string `json:"a"`
	B     string `json:"b"`
}

// MatchTypeConfig maps option keys ("A__B") to the number of match rows of
// that type each fixture carries.
type MatchTypeConfig map[string]int

// MatchRow is one concrete match slot within every fixture. IDs are
// sequential and positional: rebuilding from the same ordered options and
// config yields the same IDs.
type MatchRow struct {
	ID         int       `json:"id" db:"row_no"`
	TypeKey    string    `json:"typeKey" db:"type_key"`
	Label      string    `json:"label" db:"type_label"`
	Categories [2]string `json:"categories"`
}

// Fixture pairs two teams. Keys are unique within a tournament; manual
// fixtures for repeated pairings get a numeric suffix at creation time.
type Fixture struct {
	Key string `json:"key" db:"key"`
	T1  string `json:"t1" db:"t1"`
	T2  string `json:"t2" db:"t2"`
}

type Tournament struct {
	ID              string          `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Type            TournamentType  `json:"type" db:"type"`
	CreatedBy       string          `json:"createdBy,omitempty" db:"created_by"`
	UpdatedBy       string          `json:"updatedBy,omitempty" db:"updated_by"`
	Categories      []Category      `json:"categories"`
	MatchTypeConfig MatchTypeConfig `json:"matchTypeConfig"`
	Teams           []Team          `json:"teams"`
	Fixtures        []Fixture       `json:"fixtures"`
	Scores          ScoreLedger     `json:"scores"`
	LogoURL         *string         `json:"logoUrl,omitempty" db:"-"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`

	LogoKey *string `json:"-" db:"logo_key"`
}

// TournamentSummary is the list-view projection: no rosters, fixtures or
// scores attached.
type TournamentSummary struct {
	ID        string         `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Type      TournamentType `json:"type" db:"type"`
	CreatedBy string         `json:"createdBy,omitempty" db:"created_by"`
	UpdatedBy string         `json:"updatedBy,omitempty" db:"updated_by"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
}
