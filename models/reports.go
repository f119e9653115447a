package models

// StandingRow is one line of the points table. Recomputed on every read,
// never persisted.
type StandingRow struct {
	Team   string `json:"team"`
	Owner  string `json:"owner"`
	Points int    `json:"points"`
}

// TeamTotal accumulates raw point sums unconditionally; played/wins/losses
// move only for rows with a recorded winner.
type TeamTotal struct {
	Team          string `json:"team"`
	Played        int    `json:"played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	PointsFor     int    `json:"pointsFor"`
	PointsAgainst int    `json:"pointsAgainst"`
}

// HeadToHeadTally is the win split between a canonical team pair, overall or
// within one match-type bucket.
type HeadToHeadTally struct {
	Played int `json:"played"`
	T1Wins int `json:"t1Wins"`
	T2Wins int `json:"t2Wins"`
}

// HeadToHeadMatch keeps the literal drill-down line for one scored row.
type HeadToHeadMatch struct {
	FixtureKey string `json:"fixtureKey"`
	RowID      string `json:"rowId"`
	Category   string `json:"category"`
	T1Players  string `json:"t1Players"`
	T2Players  string `json:"t2Players"`
	ScoreText  string `json:"scoreText"`
	ResultText string `json:"resultText"`
}

// HeadToHead aggregates all meetings of one unordered team pair. T1/T2 are
// the lexicographically sorted pair, so "A vs B" and "B vs A" fixtures land
// in the same record with their sides remapped.
type HeadToHead struct {
	Key        string                     `json:"key"`
	T1         string                     `json:"t1"`
	T2         string                     `json:"t2"`
	Played     int                        `json:"played"`
	T1Wins     int                        `json:"t1Wins"`
	T2Wins     int                        `json:"t2Wins"`
	ByCategory map[string]HeadToHeadTally `json:"byCategory"`
	Matches    []HeadToHeadMatch          `json:"matches"`
}

// PlayerStat is keyed "team:rank". Name falls back to the rank string when
// the roster has no name for it.
type PlayerStat struct {
	Key       string `json:"key"`
	Team      string `json:"team"`
	Name      string `json:"name"`
	Played    int    `json:"played"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
	PointsFor int    `json:"pointsFor"`
}

type Reports struct {
	TeamTotals  []TeamTotal  `json:"teamTotals"`
	HeadToHead  []HeadToHead `json:"headToHead"`
	PlayerStats []PlayerStat `json:"playerStats"`
}
