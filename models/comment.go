package models

import "time"

// The standings page hosts tournament-wide discussion under a pseudo
// fixture/row pair instead of a real match.
const (
	StandingsFixtureKey = "standings"
	CommonRowID         = "common"
)

// Comment is append-only; likes only ever increment.
type Comment struct {
	ID           string    `json:"id" db:"id"`
	TournamentID string    `json:"tournamentId" db:"tournament_id"`
	FixtureKey   string    `json:"fixtureKey" db:"fixture_key"`
	RowID        string    `json:"rowId" db:"row_id"`
	Text         string    `json:"text" db:"text"`
	Author       string    `json:"author" db:"author"`
	Likes        int       `json:"likes" db:"likes"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// MatchLike counts likes against one match row (or the standings sentinel).
type MatchLike struct {
	TournamentID string    `json:"tournamentId" db:"tournament_id"`
	FixtureKey   string    `json:"fixtureKey" db:"fixture_key"`
	RowID        string    `json:"rowId" db:"row_id"`
	Likes        int       `json:"likes" db:"likes"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
