package brackets

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/courtside/badminton-league/models"
)

// CategoryOther is the terminal fallback when a row's category cannot be
// resolved from metadata, rosters or rank prefixes.
const CategoryOther = "Other"

// ComputeReports reduces the whole score ledger into the three report
// views. Like the standings it is a pure recomputation: no caching, no
// state between calls, malformed entries tolerated by defaulting.
//
// Accumulation rules per scored row:
//   - team totals: raw pointsFor/pointsAgainst always; played/wins/losses
//     only when a winner is recorded
//   - head-to-head: only rows with a winner, keyed by the sorted team pair
//   - player stats: any slot with a non-empty rank counts as played
func ComputeReports(fixtures []models.Fixture, scores models.ScoreLedger, teams []models.Team, matchRows []models.MatchRow) *models.Reports {
	agg := &reportAccumulator{
		teamTotals:  make(map[string]*models.TeamTotal),
		teamOrder:   make([]string, 0),
		headToHead:  make(map[string]*models.HeadToHead),
		headOrder:   make([]string, 0),
		playerStats: make(map[string]*models.PlayerStat),
		playerOrder: make([]string, 0),
		teams:       teams,
		rosters:     make(map[string][]models.PlayerSlot, len(teams)),
		rowsByID:    make(map[string]models.MatchRow, len(matchRows)),
	}
	for _, t := range teams {
		agg.rosters[t.Name] = t.Players
	}
	for _, r := range matchRows {
		agg.rowsByID[strconv.Itoa(r.ID)] = r
	}

	for _, fx := range fixtures {
		rows := scores[fx.Key]
		for _, rowID := range sortedRowIDs(rows) {
			agg.addRow(fx, rowID, rows[rowID])
		}
	}

	return agg.build()
}

type reportAccumulator struct {
	teamTotals  map[string]*models.TeamTotal
	teamOrder   []string
	headToHead  map[string]*models.HeadToHead
	headOrder   []string
	playerStats map[string]*models.PlayerStat
	playerOrder []string
	teams       []models.Team
	rosters     map[string][]models.PlayerSlot
	rowsByID    map[string]models.MatchRow
}

// sortedRowIDs orders a fixture's row IDs numerically so repeated
// computation walks the ledger identically.
func sortedRowIDs(rows map[string]models.ScoreEntry) []string {
	ids := make([]string, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA != nil || errB != nil {
			return ids[i] < ids[j]
		}
		return a < b
	})
	return ids
}

func (a *reportAccumulator) addRow(fx models.Fixture, rowID string, entry models.ScoreEntry) {
	t1Score := entry.T1.Points()
	t2Score := entry.T2.Points()
	winner := entry.WinnerSide()

	team1 := a.team(fx.T1)
	team2 := a.team(fx.T2)
	team1.PointsFor += t1Score
	team1.PointsAgainst += t2Score
	team2.PointsFor += t2Score
	team2.PointsAgainst += t1Score

	if winner != "" {
		team1.Played++
		team2.Played++
		if winner == models.WinnerT1 {
			team1.Wins++
			team2.Losses++
		} else {
			team2.Wins++
			team1.Losses++
		}
		a.addHeadToHead(fx, rowID, entry, t1Score, t2Score, winner)
	}

	a.addPlayer(fx.T1, entry.T1Player1, t1Score, winner, models.WinnerT1)
	a.addPlayer(fx.T1, entry.T1Player2, t1Score, winner, models.WinnerT1)
	a.addPlayer(fx.T2, entry.T2Player1, t2Score, winner, models.WinnerT2)
	a.addPlayer(fx.T2, entry.T2Player2, t2Score, winner, models.WinnerT2)
}

func (a *reportAccumulator) team(name string) *models.TeamTotal {
	if t, ok := a.teamTotals[name]; ok {
		return t
	}
	t := &models.TeamTotal{Team: name}
	a.teamTotals[name] = t
	a.teamOrder = append(a.teamOrder, name)
	return t
}

// addHeadToHead files one decided row under the canonical (sorted) pair.
// When the fixture lists the teams in the opposite order, players, scores
// and the winner label are swapped together before anything increments;
// swapping only the winner would corrupt the drill-down lines.
func (a *reportAccumulator) addHeadToHead(fx models.Fixture, rowID string, entry models.ScoreEntry, t1Score, t2Score int, winner string) {
	c1, c2 := fx.T1, fx.T2
	p1a, p1b := entry.T1Player1, entry.T1Player2
	p2a, p2b := entry.T2Player1, entry.T2Player2
	s1, s2 := t1Score, t2Score
	if c2 < c1 {
		c1, c2 = c2, c1
		p1a, p2a = p2a, p1a
		p1b, p2b = p2b, p1b
		s1, s2 = s2, s1
		if winner == models.WinnerT1 {
			winner = models.WinnerT2
		} else {
			winner = models.WinnerT1
		}
	}

	key := c1 + "__" + c2
	h, ok := a.headToHead[key]
	if !ok {
		h = &models.HeadToHead{
			Key:        key,
			T1:         c1,
			T2:         c2,
			ByCategory: make(map[string]models.HeadToHeadTally),
		}
		a.headToHead[key] = h
		a.headOrder = append(a.headOrder, key)
	}

	h.Played++
	winnerTeam := c2
	if winner == models.WinnerT1 {
		h.T1Wins++
		winnerTeam = c1
	} else {
		h.T2Wins++
	}

	category := a.resolveCategory(rowID, entry)
	tally := h.ByCategory[category]
	tally.Played++
	if winner == models.WinnerT1 {
		tally.T1Wins++
	} else {
		tally.T2Wins++
	}
	h.ByCategory[category] = tally

	h.Matches = append(h.Matches, models.HeadToHeadMatch{
		FixtureKey: fx.Key,
		RowID:      rowID,
		Category:   category,
		T1Players:  a.playerLine(c1, p1a, p1b),
		T2Players:  a.playerLine(c2, p2a, p2b),
		ScoreText:  fmt.Sprintf("%d : %d", s1, s2),
		ResultText: "Winner: " + winnerTeam,
	})
}

func (a *reportAccumulator) addPlayer(teamName, rank string, score int, winner, side string) {
	if rank == "" {
		return
	}
	key := teamName + ":" + rank
	p, ok := a.playerStats[key]
	if !ok {
		name := a.rosterName(teamName, rank)
		if name == "" {
			name = rank
		}
		p = &models.PlayerStat{Key: key, Team: teamName, Name: name}
		a.playerStats[key] = p
		a.playerOrder = append(a.playerOrder, key)
	}
	p.Played++
	p.PointsFor += score
	if winner == side {
		p.Wins++
	} else if winner != "" {
		p.Losses++
	}
}

func (a *reportAccumulator) rosterName(teamName, rank string) string {
	for _, slot := range a.rosters[teamName] {
		if slot.Rank == rank {
			return slot.Name
		}
	}
	return ""
}

// playerLine renders "A1 - Rajesh, B1 - Vijay" style labels for drill-down
// display, falling back to bare ranks.
func (a *reportAccumulator) playerLine(teamName string, ranks ...string) string {
	parts := make([]string, 0, len(ranks))
	for _, rank := range ranks {
		if rank == "" {
			continue
		}
		if name := a.rosterName(teamName, rank); name != "" {
			parts = append(parts, rank+" - "+name)
		} else {
			parts = append(parts, rank)
		}
	}
	return strings.Join(parts, ", ")
}

// resolveCategory walks the fallback ladder: match-row metadata, then a
// roster scan over the entry's rank fields, then the alphabetic prefix of
// any rank, then "Other".
func (a *reportAccumulator) resolveCategory(rowID string, entry models.ScoreEntry) string {
	if row, ok := a.rowsByID[rowID]; ok && row.Categories[0] != "" {
		return row.Categories[0] + row.Categories[1]
	}

	ranks := []string{entry.T1Player1, entry.T1Player2, entry.T2Player1, entry.T2Player2}
	for _, team := range a.teams {
		for _, slot := range team.Players {
			for _, rank := range ranks {
				if rank != "" && slot.Rank == rank {
					return slot.Category
				}
			}
		}
	}

	for _, rank := range ranks {
		if prefix := alphaPrefix(rank); prefix != "" {
			return prefix
		}
	}
	return CategoryOther
}

func alphaPrefix(s string) string {
	for i, r := range s {
		if !unicode.IsLetter(r) {
			return s[:i]
		}
	}
	return s
}

func (a *reportAccumulator) build() *models.Reports {
	out := &models.Reports{
		TeamTotals:  make([]models.TeamTotal, 0, len(a.teamOrder)),
		HeadToHead:  make([]models.HeadToHead, 0, len(a.headOrder)),
		PlayerStats: make([]models.PlayerStat, 0, len(a.playerOrder)),
	}
	for _, name := range a.teamOrder {
		out.TeamTotals = append(out.TeamTotals, *a.teamTotals[name])
	}
	for _, key := range a.headOrder {
		out.HeadToHead = append(out.HeadToHead, *a.headToHead[key])
	}
	for _, key := range a.playerOrder {
		out.PlayerStats = append(out.PlayerStats, *a.playerStats[key])
	}

	sort.SliceStable(out.TeamTotals, func(i, j int) bool {
		if out.TeamTotals[i].Wins != out.TeamTotals[j].Wins {
			return out.TeamTotals[i].Wins > out.TeamTotals[j].Wins
		}
		return out.TeamTotals[i].PointsFor > out.TeamTotals[j].PointsFor
	})
	sort.SliceStable(out.HeadToHead, func(i, j int) bool {
		return out.HeadToHead[i].Played > out.HeadToHead[j].Played
	})
	sort.SliceStable(out.PlayerStats, func(i, j int) bool {
		if out.PlayerStats[i].Wins != out.PlayerStats[j].Wins {
			return out.PlayerStats[i].Wins > out.PlayerStats[j].Wins
		}
		return out.PlayerStats[i].PointsFor > out.PlayerStats[j].PointsFor
	})
	return out
}
