package models

import "time"

// LiveMatch marks a match row as currently being played so clients can
// surface it above the standings table.
type LiveMatch struct {
	TournamentID string    `json:"tournamentId" db:"tournament_id"`
	FixtureKey   string    `json:"fixtureKey" db:"fixture_key"`
	RowID        string    `json:"rowId" db:"row_id"`
	RowLabel     string    `json:"rowLabel" db:"row_label"`
	RowIndex     int       `json:"rowIndex" db:"row_index"`
	StartedBy    string    `json:"startedBy" db:"started_by"`
	StartedAt    time.Time `json:"startedAt" db:"started_at"`
}
