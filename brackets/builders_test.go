package brackets

import (
	"fmt"
	"testing"

	"github.com/courtside/badminton-league/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A", "A"},
		{"  a  ", "A"},
		{"a b c d", "ABC"},
		{"premier", "PRE"},
		{"", "X"},
		{"   ", "X"},
		{"ab", "AB"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Slug(tc.in), "Slug(%q)", tc.in)
	}
}

func TestSlugIdempotent(t *testing.T) {
	for _, in := range []string{"A", "premier league", "", " b ", "xyz"} {
		once := Slug(in)
		assert.Equal(t, once, Slug(once))
	}
}

func TestBuildPlayerSlots(t *testing.T) {
	categories := []models.Category{
		{Key: "A", Count: 3},
		{Key: "B", Count: 2},
	}
	slots := BuildPlayerSlots(categories)

	require.Len(t, slots, 5)
	assert.Equal(t, models.PlayerSlot{Category: "A", Rank: "A1"}, slots[0])
	assert.Equal(t, models.PlayerSlot{Category: "A", Rank: "A3"}, slots[2])
	assert.Equal(t, models.PlayerSlot{Category: "B", Rank: "B1"}, slots[3])
	assert.Equal(t, models.PlayerSlot{Category: "B", Rank: "B2"}, slots[4])
}

func TestBuildPlayerSlotsLengthAndUniqueRanks(t *testing.T) {
	categories := []models.Category{
		{Key: "A", Count: 2},
		{Key: "B", Count: 0},
		{Key: "C", Count: -3},
		{Key: "D", Count: 4},
	}
	slots := BuildPlayerSlots(categories)

	want := 0
	for _, c := range categories {
		if c.Count > 0 {
			want += c.Count
		}
	}
	require.Len(t, slots, want)

	seen := make(map[string]bool)
	for _, s := range slots {
		assert.False(t, seen[s.Rank], "duplicate rank %s", s.Rank)
		seen[s.Rank] = true
		assert.Empty(t, s.Name)
	}
}

func TestNonTeamPlayerSlots(t *testing.T) {
	assert.Len(t, NonTeamPlayerSlots(models.TypeSingles), 1)

	pairs := NonTeamPlayerSlots(models.TypeDoubles)
	require.Len(t, pairs, 2)
	assert.Equal(t, "P1", pairs[0].Rank)
	assert.Equal(t, "P2", pairs[1].Rank)
}

func TestBuildMatchTypeOptions(t *testing.T) {
	opts := BuildMatchTypeOptions([]models.Category{
		{Key: "A", Count: 1},
		{Key: "B", Count: 1},
	})

	require.Len(t, opts, 3)
	assert.Equal(t, models.MatchTypeOption{Key: "A__A", Label: "AA", A: "A", B: "A"}, opts[0])
	assert.Equal(t, models.MatchTypeOption{Key: "A__B", Label: "AB", A: "A", B: "B"}, opts[1])
	assert.Equal(t, models.MatchTypeOption{Key: "B__B", Label: "BB", A: "B", B: "B"}, opts[2])
}

func TestBuildMatchTypeOptionsDeduplicatesAndSorts(t *testing.T) {
	opts := BuildMatchTypeOptions([]models.Category{
		{Key: "b"},
		{Key: " B "},
		{Key: "a"},
	})

	// 2 distinct keys -> 2*(2+1)/2 options, sorted.
	require.Len(t, opts, 3)
	assert.Equal(t, "A__A", opts[0].Key)
	assert.Equal(t, "A__B", opts[1].Key)
	assert.Equal(t, "B__B", opts[2].Key)
}

func TestBuildMatchTypeOptionsCount(t *testing.T) {
	for n := 0; n <= 6; n++ {
		categories := make([]models.Category, n)
		for i := range categories {
			categories[i] = models.Category{Key: fmt.Sprintf("C%d", i)}
		}
		opts := BuildMatchTypeOptions(categories)
		assert.Len(t, opts, n*(n+1)/2, "n=%d", n)
	}
}

func TestBuildMatchRows(t *testing.T) {
	opts := BuildMatchTypeOptions([]models.Category{
		{Key: "A", Count: 1},
		{Key: "B", Count: 1},
	})
	rows := BuildMatchRows(opts, models.MatchTypeConfig{"A__A": 1, "A__B": 1, "B__B": 1})

	require.Len(t, rows, 3)
	for i, label := range []string{"AA", "AB", "BB"} {
		assert.Equal(t, i+1, rows[i].ID)
		assert.Equal(t, label, rows[i].Label)
	}
}

func TestBuildMatchRowsSequentialIDs(t *testing.T) {
	opts := BuildMatchTypeOptions([]models.Category{
		{Key: "A"}, {Key: "B"}, {Key: "C"},
	})
	config := models.MatchTypeConfig{
		"A__A": 2,
		"A__B": 0,
		"A__C": -1, // clamped to zero
		"B__B": 3,
		// B__C absent
		"C__C": 1,
	}
	rows := BuildMatchRows(opts, config)

	require.Len(t, rows, 6)
	for i, r := range rows {
		assert.Equal(t, i+1, r.ID, "IDs must be gapless and 1-based")
	}
}

func TestBuildMatchRowsDeterministic(t *testing.T) {
	opts := BuildMatchTypeOptions([]models.Category{{Key: "A"}, {Key: "B"}})
	config := models.MatchTypeConfig{"A__A": 2, "A__B": 1, "B__B": 2}

	first := BuildMatchRows(opts, config)
	second := BuildMatchRows(opts, config)
	assert.Equal(t, first, second)
}

func TestNonTeamMatchRows(t *testing.T) {
	singles := NonTeamMatchRows(models.TypeSingles)
	require.Len(t, singles, 1)
	assert.Equal(t, models.MatchRow{ID: 1, TypeKey: "P__P", Label: "S", Categories: [2]string{"P", "P"}}, singles[0])

	doubles := NonTeamMatchRows(models.TypeDoubles)
	require.Len(t, doubles, 1)
	assert.Equal(t, "D", doubles[0].Label)
}

func teamsNamed(names ...string) []models.Team {
	teams := make([]models.Team, len(names))
	for i, n := range names {
		teams[i] = models.Team{Name: n}
	}
	return teams
}

func TestBuildFixtures(t *testing.T) {
	fixtures := BuildFixtures(teamsNamed("Smashers", "Strikers"))

	require.Len(t, fixtures, 1)
	assert.Equal(t, models.Fixture{Key: "Smashers vs Strikers", T1: "Smashers", T2: "Strikers"}, fixtures[0])
}

func TestBuildFixturesRoundRobin(t *testing.T) {
	names := []string{"One", "Two", "Three", "Four", "Five"}
	fixtures := BuildFixtures(teamsNamed(names...))

	n := len(names)
	require.Len(t, fixtures, n*(n-1)/2)

	appearances := make(map[string]int)
	keys := make(map[string]bool)
	for _, f := range fixtures {
		assert.NotEqual(t, f.T1, f.T2, "no self-pairing")
		assert.False(t, keys[f.Key], "duplicate fixture key %s", f.Key)
		keys[f.Key] = true
		appearances[f.T1]++
		appearances[f.T2]++
	}
	for _, name := range names {
		assert.Equal(t, n-1, appearances[name], "team %s", name)
	}
}

func TestNextFixtureKeySuffixing(t *testing.T) {
	var fixtures []models.Fixture

	key := NextFixtureKey(fixtures, "Asha", "Pooja")
	assert.Equal(t, "Asha vs Pooja", key)
	fixtures = append(fixtures, models.Fixture{Key: key, T1: "Asha", T2: "Pooja"})

	key = NextFixtureKey(fixtures, "Asha", "Pooja")
	assert.Equal(t, "Asha vs Pooja (2)", key)
	fixtures = append(fixtures, models.Fixture{Key: key, T1: "Asha", T2: "Pooja"})

	// The reversed ordering counts against the same unordered pair.
	key = NextFixtureKey(fixtures, "Pooja", "Asha")
	assert.Equal(t, "Pooja vs Asha (3)", key)
}
