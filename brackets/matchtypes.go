package brackets

import (
	"sort"

	"github.com/courtside/badminton-league/models"
)

// BuildMatchTypeOptions derives every unordered category pairing, including
// same-category pairs ("AA"). Keys are slugged, deduplicated and sorted
// first, so A__B and B__A can never both appear; the i ≤ j iteration over
// the sorted keys is the canonical option order.
func BuildMatchTypeOptions(categories []models.Category) []models.MatchTypeOption {
	seen := make(map[string]struct{}, len(categories))
	unique := make([]string, 0, len(categories))
	for _, c := range categories {
		key := Slug(c.Key)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}
	sort.Strings(unique)

	opts := make([]models.MatchTypeOption, 0, len(unique)*(len(unique)+1)/2)
	for i := 0; i < len(unique); i++ {
		for j := i; j < len(unique); j++ {
			a, b := unique[i], unique[j]
			opts = append(opts, models.MatchTypeOption{
				Key:   a + "__" + b,
				Label: a + b,
				A:     a,
				B:     b,
			})
		}
	}
	return opts
}

// BuildMatchRows expands per-type counts into concrete rows. IDs are a
// single 1-based sequence across the whole option list, so row identity is
// positional: reordering options or changing counts renumbers everything
// after the change. Same inputs always give the same rows.
func BuildMatchRows(options []models.MatchTypeOption, config models.MatchTypeConfig) []models.MatchRow {
	rows := make([]models.MatchRow, 0)
	id := 1
	for _, opt := range options {
		count := config[opt.Key]
		for i := 0; i < count; i++ {
			rows = append(rows, models.MatchRow{
				ID:         id,
				TypeKey:    opt.Key,
				Label:      opt.Label,
				Categories: [2]string{opt.A, opt.B},
			})
			id++
		}
	}
	return rows
}

// NonTeamMatchRows is the implicit single row of a singles or doubles
// tournament: no category grid, just "S" or "D".
func NonTeamMatchRows(tournamentType models.TournamentType) []models.MatchRow {
	label := "D"
	if tournamentType == models.TypeSingles {
		label = "S"
	}
	return []models.MatchRow{{
		ID:         1,
		TypeKey:    "P__P",
		Label:      label,
		Categories: [2]string{"P", "P"},
	}}
}
