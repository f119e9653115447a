package brackets

import (
	"fmt"

	"github.com/courtside/badminton-league/models"
)

// BuildPlayerSlots expands the category configuration into an empty roster:
// for each category, in input order, count slots ranked KEY1..KEYn.
// Non-positive counts contribute nothing. The output order (category input
// order, then ascending rank index) is what every roster view displays.
func BuildPlayerSlots(categories []models.Category) []models.PlayerSlot {
	slots := make([]models.PlayerSlot, 0)
	for _, c := range categories {
		key := Slug(c.Key)
		for i := 1; i <= c.Count; i++ {
			slots = append(slots, models.PlayerSlot{
				Category: key,
				Rank:     fmt.Sprintf("%s%d", key, i),
			})
		}
	}
	return slots
}

// NonTeamPlayerSlots is the fixed roster of a singles entry or a doubles
// pair: P1, and P2 for doubles.
func NonTeamPlayerSlots(tournamentType models.TournamentType) []models.PlayerSlot {
	slots := []models.PlayerSlot{{Category: "P", Rank: "P1"}}
	if tournamentType != models.TypeSingles {
		slots = append(slots, models.PlayerSlot{Category: "P", Rank: "P2"})
	}
	return slots
}
