package brackets

import (
	"fmt"

	"github.com/courtside/badminton-league/models"
)

// BuildFixtures generates the round-robin schedule for a team tournament:
// C(n,2) fixtures, outer index i against every later index j, keyed
// "T1 vs T2". Team-mode fixtures are strictly one per pair; repeated
// meetings exist only in manual (singles/doubles) mode.
func BuildFixtures(teams []models.Team) []models.Fixture {
	n := len(teams)
	fixtures := make([]models.Fixture, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			fixtures = append(fixtures, models.Fixture{
				Key: teams[i].Name + " vs " + teams[j].Name,
				T1:  teams[i].Name,
				T2:  teams[j].Name,
			})
		}
	}
	return fixtures
}

// NextFixtureKey picks the key for a manually added fixture. The first
// meeting of an unordered pair keeps the plain "T1 vs T2" form; rematches
// get "(2)", "(3)" and so on, counted over both orderings.
func NextFixtureKey(existing []models.Fixture, t1, t2 string) string {
	prior := 0
	for _, f := range existing {
		if (f.T1 == t1 && f.T2 == t2) || (f.T1 == t2 && f.T2 == t1) {
			prior++
		}
	}
	if prior == 0 {
		return t1 + " vs " + t2
	}
	return fmt.Sprintf("%s vs %s (%d)", t1, t2, prior+1)
}
