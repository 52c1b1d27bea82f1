package standings

import (
	"sort"

	"github.com/torneoveteranos/tournament-system/models"
)

// Calculate derives the ranked table for the given teams from the given
// matches. The caller scopes the match list to the relevant phase/group
// beforehand; the calculator does not filter by phase.
//
// The result is a fresh slice: input teams are not mutated, and the match
// set is the single source of truth. Statistics are recomputed from scratch
// rather than maintained incrementally.
func Calculate(teams []models.Team, matches []models.Match) []models.Team {
	table := make([]models.Team, len(teams))
	index := make(map[int]*models.Team, len(teams))
	for i, team := range teams {
		team.PJ, team.PG, team.PE, team.PP = 0, 0, 0, 0
		team.GF, team.GC, team.GD, team.Pts = 0, 0, 0, 0
		table[i] = team
		index[team.ID] = &table[i]
	}

	for _, match := range matches {
		if !match.Played() {
			continue
		}
		home := index[match.HomeTeamID]
		away := index[match.AwayTeamID]
		if home == nil || away == nil {
			// One side falls outside the requested team list, e.g. a
			// group-scoped recompute over a partial universe. Skip.
			continue
		}

		homeScore, awayScore := *match.HomeScore, *match.AwayScore

		home.PJ++
		away.PJ++
		home.GF += homeScore
		home.GC += awayScore
		away.GF += awayScore
		away.GC += homeScore
		home.GD = home.GF - home.GC
		away.GD = away.GF - away.GC

		switch {
		case homeScore > awayScore:
			home.PG++
			away.PP++
			home.Pts += 3
		case homeScore < awayScore:
			away.PG++
			home.PP++
			away.Pts += 3
		default:
			home.PE++
			away.PE++
			home.Pts++
			away.Pts++
		}
	}

	// Stable sort: teams still tied after pts/gd/gf keep their input order.
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Pts != table[j].Pts {
			return table[i].Pts > table[j].Pts
		}
		if table[i].GD != table[j].GD {
			return table[i].GD > table[j].GD
		}
		return table[i].GF > table[j].GF
	})

	return table
}
