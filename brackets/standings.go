package brackets

import (
	"sort"

	"github.com/courtside/badminton-league/models"
)

// ComputeStandings reduces fixtures and the score ledger into the points
// table: every team starts at zero and each match row with a recorded
// winner is worth one point. Teams keep their input order among equal
// point totals, so repeated computation over the same snapshot is
// byte-identical.
//
// Fixtures that reference a team no longer in the roster (renamed or
// deleted after generation) contribute nothing; data hygiene belongs to
// the write path, not here.
func ComputeStandings(teams []models.Team, fixtures []models.Fixture, scores models.ScoreLedger) []models.StandingRow {
	rows := make([]models.StandingRow, len(teams))
	index := make(map[string]int, len(teams))
	for i, t := range teams {
		rows[i] = models.StandingRow{Team: t.Name, Owner: t.Owner}
		index[t.Name] = i
	}

	for _, fx := range fixtures {
		for _, entry := range scores[fx.Key] {
			var winnerTeam string
			switch entry.WinnerSide() {
			case models.WinnerT1:
				winnerTeam = fx.T1
			case models.WinnerT2:
				winnerTeam = fx.T2
			default:
				continue
			}
			if i, ok := index[winnerTeam]; ok {
				rows[i].Points++
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Points > rows[j].Points
	})
	return rows
}
