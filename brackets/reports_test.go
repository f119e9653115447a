package brackets

import (
	"encoding/json"
	"testing"

	"github.com/courtside/badminton-league/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoTeams() []models.Team {
	return []models.Team{
		{Name: "Smashers", Owner: "Arun", Players: []models.PlayerSlot{
			{Category: "A", Rank: "A1", Name: "Rajesh"},
			{Category: "B", Rank: "B1", Name: "Vijay"},
		}},
		{Name: "Strikers", Owner: "Meera", Players: []models.PlayerSlot{
			{Category: "A", Rank: "A1", Name: "Asha"},
			{Category: "B", Rank: "B1", Name: "Pooja"},
		}},
	}
}

func demoMatchRows() []models.MatchRow {
	opts := BuildMatchTypeOptions([]models.Category{{Key: "A", Count: 1}, {Key: "B", Count: 1}})
	return BuildMatchRows(opts, models.MatchTypeConfig{"A__A": 1, "A__B": 1, "B__B": 1})
}

func TestComputeReportsTeamTotals(t *testing.T) {
	teams := demoTeams()
	fixtures := BuildFixtures(teams)
	scores := models.ScoreLedger{
		"Smashers vs Strikers": {
			"1": {Winner: "t1", T1: "21", T2: "15", T1Player1: "A1", T2Player1: "A1"},
		},
	}

	reports := ComputeReports(fixtures, scores, teams, demoMatchRows())

	require.Len(t, reports.TeamTotals, 2)
	smashers := reports.TeamTotals[0]
	strikers := reports.TeamTotals[1]
	assert.Equal(t, "Smashers", smashers.Team)
	assert.Equal(t, 21, smashers.PointsFor)
	assert.Equal(t, 15, smashers.PointsAgainst)
	assert.Equal(t, 1, smashers.Played)
	assert.Equal(t, 1, smashers.Wins)
	assert.Equal(t, 0, smashers.Losses)
	assert.Equal(t, 15, strikers.PointsFor)
	assert.Equal(t, 21, strikers.PointsAgainst)
	assert.Equal(t, 1, strikers.Losses)
}

func TestComputeReportsRawPointsWithoutWinner(t *testing.T) {
	teams := demoTeams()
	fixtures := BuildFixtures(teams)
	scores := models.ScoreLedger{
		"Smashers vs Strikers": {
			"1": {T1: "21", T2: "15"}, // no winner recorded
		},
	}

	reports := ComputeReports(fixtures, scores, teams, demoMatchRows())

	require.Len(t, reports.TeamTotals, 2)
	for _, total := range reports.TeamTotals {
		assert.Zero(t, total.Played)
		assert.Zero(t, total.Wins)
		assert.Zero(t, total.Losses)
	}
	assert.Equal(t, 21, reports.TeamTotals[0].PointsFor)
	assert.Equal(t, 15, reports.TeamTotals[0].PointsAgainst)
	assert.Equal(t, 15, reports.TeamTotals[1].PointsFor)
	assert.Empty(t, reports.HeadToHead, "undecided rows never reach head-to-head")
}

func TestComputeReportsMalformedEntries(t *testing.T) {
	teams := demoTeams()
	fixtures := BuildFixtures(teams)
	scores := models.ScoreLedger{
		"Smashers vs Strikers": {
			"1":   {Winner: "t1", T1: "not a number", T2: ""},
			"2":   {Winner: "nonsense"},
			"abc": {T1: "3"},
		},
	}

	require.NotPanics(t, func() {
		reports := ComputeReports(fixtures, scores, teams, demoMatchRows())
		require.Len(t, reports.TeamTotals, 2)
		assert.Equal(t, 3, reports.TeamTotals[0].PointsFor)
		assert.Equal(t, 1, reports.TeamTotals[0].Played)
	})
}

func TestComputeReportsHeadToHeadCanonicalOrder(t *testing.T) {
	teams := demoTeams()

	// Same match recorded twice: once with the fixture in sorted order and
	// once reversed. Both must aggregate into the identical canonical
	// record, with players, scores and winner remapped together.
	direct := ComputeReports(
		[]models.Fixture{{Key: "Smashers vs Strikers", T1: "Smashers", T2: "Strikers"}},
		models.ScoreLedger{"Smashers vs Strikers": {
			"1": {Winner: "t2", T1: "15", T2: "21", T1Player1: "A1", T2Player1: "A1"},
		}},
		teams, demoMatchRows(),
	)
	reversed := ComputeReports(
		[]models.Fixture{{Key: "Strikers vs Smashers", T1: "Strikers", T2: "Smashers"}},
		models.ScoreLedger{"Strikers vs Smashers": {
			"1": {Winner: "t1", T1: "21", T2: "15", T1Player1: "A1", T2Player1: "A1"},
		}},
		teams, demoMatchRows(),
	)

	require.Len(t, direct.HeadToHead, 1)
	require.Len(t, reversed.HeadToHead, 1)

	d, r := direct.HeadToHead[0], reversed.HeadToHead[0]
	assert.Equal(t, "Smashers__Strikers", d.Key)
	assert.Equal(t, d.Key, r.Key)
	assert.Equal(t, "Smashers", d.T1)
	assert.Equal(t, "Strikers", d.T2)
	assert.Equal(t, d.T1Wins, r.T1Wins)
	assert.Equal(t, d.T2Wins, r.T2Wins)
	assert.Equal(t, 0, d.T1Wins)
	assert.Equal(t, 1, d.T2Wins)

	require.Len(t, d.Matches, 1)
	require.Len(t, r.Matches, 1)
	assert.Equal(t, d.Matches[0].ScoreText, r.Matches[0].ScoreText)
	assert.Equal(t, "15 : 21", d.Matches[0].ScoreText)
	assert.Equal(t, "Winner: Strikers", d.Matches[0].ResultText)
	assert.Equal(t, d.Matches[0].T1Players, r.Matches[0].T1Players)
	assert.Equal(t, "A1 - Rajesh", d.Matches[0].T1Players)
	assert.Equal(t, "A1 - Asha", d.Matches[0].T2Players)
}

func TestComputeReportsHeadToHeadCategoryBuckets(t *testing.T) {
	teams := demoTeams()
	fixtures := BuildFixtures(teams)
	scores := models.ScoreLedger{
		"Smashers vs Strikers": {
			"1": {Winner: "t1", T1: "21", T2: "10"}, // row 1 = AA
			"2": {Winner: "t2", T1: "18", T2: "21"}, // row 2 = AB
		},
	}

	reports := ComputeReports(fixtures, scores, teams, demoMatchRows())

	require.Len(t, reports.HeadToHead, 1)
	h := reports.HeadToHead[0]
	assert.Equal(t, 2, h.Played)
	assert.Equal(t, models.HeadToHeadTally{Played: 1, T1Wins: 1}, h.ByCategory["AA"])
	assert.Equal(t, models.HeadToHeadTally{Played: 1, T2Wins: 1}, h.ByCategory["AB"])
}

func TestComputeReportsPlayerStats(t *testing.T) {
	teams := demoTeams()
	fixtures := BuildFixtures(teams)
	scores := models.ScoreLedger{
		"Smashers vs Strikers": {
			"2": { // AB row: two players per side
				Winner:    "t1",
				T1:        "21",
				T2:        "15",
				T1Player1: "A1",
				T1Player2: "B1",
				T2Player1: "A1",
				// T2Player2 left empty: that slot must not appear at all
			},
		},
	}

	reports := ComputeReports(fixtures, scores, teams, demoMatchRows())

	require.Len(t, reports.PlayerStats, 3)
	byKey := make(map[string]models.PlayerStat)
	for _, p := range reports.PlayerStats {
		byKey[p.Key] = p
	}

	rajesh := byKey["Smashers:A1"]
	assert.Equal(t, "Rajesh", rajesh.Name)
	assert.Equal(t, 1, rajesh.Played)
	assert.Equal(t, 1, rajesh.Wins)
	assert.Equal(t, 21, rajesh.PointsFor)

	vijay := byKey["Smashers:B1"]
	assert.Equal(t, "Vijay", vijay.Name)
	assert.Equal(t, 21, vijay.PointsFor)

	asha := byKey["Strikers:A1"]
	assert.Equal(t, "Asha", asha.Name)
	assert.Equal(t, 1, asha.Losses)
	assert.Equal(t, 15, asha.PointsFor)
}

func TestComputeReportsPlayerNameFallsBackToRank(t *testing.T) {
	teams := teamsNamed("Smashers", "Strikers") // empty rosters
	fixtures := BuildFixtures(teams)
	scores := models.ScoreLedger{
		"Smashers vs Strikers": {
			"1": {Winner: "t1", T1Player1: "A1"},
		},
	}

	reports := ComputeReports(fixtures, scores, teams, nil)

	require.Len(t, reports.PlayerStats, 1)
	assert.Equal(t, "A1", reports.PlayerStats[0].Name)
}

func TestComputeReportsCategoryFallbackLadder(t *testing.T) {
	fixtures := []models.Fixture{{Key: "Smashers vs Strikers", T1: "Smashers", T2: "Strikers"}}

	entry := func(rank string) models.ScoreLedger {
		return models.ScoreLedger{"Smashers vs Strikers": {
			"9": {Winner: "t1", T1Player1: rank},
		}}
	}

	// (b) roster scan: rank known to a roster resolves to its category.
	withRoster := ComputeReports(fixtures, entry("B1"), demoTeams(), nil)
	require.Len(t, withRoster.HeadToHead, 1)
	assert.Contains(t, withRoster.HeadToHead[0].ByCategory, "B")

	// (c) alphabetic prefix of the rank string.
	prefixOnly := ComputeReports(fixtures, entry("C2"), teamsNamed("Smashers", "Strikers"), nil)
	require.Len(t, prefixOnly.HeadToHead, 1)
	assert.Contains(t, prefixOnly.HeadToHead[0].ByCategory, "C")

	// (d) nothing to go on.
	bare := ComputeReports(fixtures, entry(""), teamsNamed("Smashers", "Strikers"), nil)
	require.Len(t, bare.HeadToHead, 1)
	assert.Contains(t, bare.HeadToHead[0].ByCategory, CategoryOther)
}

func TestComputeReportsIdempotent(t *testing.T) {
	teams := demoTeams()
	fixtures := BuildFixtures(teams)
	scores := models.ScoreLedger{
		"Smashers vs Strikers": {
			"1": {Winner: "t1", T1: "21", T2: "15", T1Player1: "A1", T2Player1: "A1"},
			"2": {Winner: "t2", T1: "19", T2: "21", T1Player1: "A1", T1Player2: "B1", T2Player1: "A1", T2Player2: "B1"},
		},
	}

	first := ComputeReports(fixtures, scores, teams, demoMatchRows())
	second := ComputeReports(fixtures, scores, teams, demoMatchRows())
	assert.Equal(t, first, second)
}

func TestComputeReportsJSONRoundTrip(t *testing.T) {
	teams := demoTeams()
	fixtures := BuildFixtures(teams)
	scores := models.ScoreLedger{
		"Smashers vs Strikers": {
			"1": {Winner: "t1", T1: "21", T2: "15", T1Player1: "A1", T2Player1: "A1"},
		},
	}

	type snapshot struct {
		Fixtures []models.Fixture   `json:"fixtures"`
		Scores   models.ScoreLedger `json:"scores"`
	}
	data, err := json.Marshal(snapshot{Fixtures: fixtures, Scores: scores})
	require.NoError(t, err)

	var decoded snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	direct := ComputeReports(fixtures, scores, teams, demoMatchRows())
	roundTripped := ComputeReports(decoded.Fixtures, decoded.Scores, teams, demoMatchRows())
	assert.Equal(t, direct.TeamTotals, roundTripped.TeamTotals)
	assert.Equal(t, direct.HeadToHead, roundTripped.HeadToHead)
}

func TestScoreValueAcceptsNumericJSON(t *testing.T) {
	// Rows persisted by the old schema carried numbers, not strings.
	var entry models.ScoreEntry
	require.NoError(t, json.Unmarshal([]byte(`{"t1":21,"t2":15.0,"winner":"t1"}`), &entry))
	assert.Equal(t, 21, entry.T1.Points())
	assert.Equal(t, 15, entry.T2.Points())
}
