package brackets

import (
	"errors"
	"fmt"

	"github.com/torneoveteranos/tournament-system/models"
	"github.com/torneoveteranos/tournament-system/standings"
)

const (
	GroupA = "A"
	GroupB = "B"

	// DefaultCohortSize is how many top-ranked teams advance to phase 2.
	DefaultCohortSize = 8

	// minCohortSize keeps both groups playable (2 teams each).
	minCohortSize = 4
)

var ErrNotEnoughTeams = errors.New("not enough teams for phase 2")

// Phase2Bracket is the season-transition output: the fixed group assignment,
// the generated round-robin fixtures (all unplayed) and the zero-played
// group tables the standings engine starts phase 2 from.
type Phase2Bracket struct {
	Groups    map[string][]models.Team
	Matches   []models.Match
	Standings map[string][]models.Team
}

// GroupNames returns the group labels in a stable order.
func (b *Phase2Bracket) GroupNames() []string {
	return []string{GroupA, GroupB}
}

// BuildPhase2 partitions the top of the final regular-season table into two
// groups and generates a single round-robin per group.
//
// The input must already be ranked (see standings.Calculate). Seeding
// interleaves by rank: positions 1,3,5,7 go to group A, positions 2,4,6,8 to
// group B, so strength spreads evenly instead of clustering consecutive ranks.
//
// BuildPhase2 is not idempotent: running it twice yields duplicate fixtures.
// The caller owns the "already initialized" guard.
func BuildPhase2(finalStandings []models.Team, cohortSize int) (*Phase2Bracket, error) {
	if cohortSize <= 0 {
		cohortSize = DefaultCohortSize
	}
	if len(finalStandings) < minCohortSize {
		return nil, fmt.Errorf("%w: have %d, need at least %d", ErrNotEnoughTeams, len(finalStandings), minCohortSize)
	}

	cohort := finalStandings
	if len(cohort) > cohortSize {
		cohort = cohort[:cohortSize]
	}

	groups := map[string][]models.Team{GroupA: nil, GroupB: nil}
	for i, team := range cohort {
		if i%2 == 0 {
			groups[GroupA] = append(groups[GroupA], team)
		} else {
			groups[GroupB] = append(groups[GroupB], team)
		}
	}

	bracket := &Phase2Bracket{
		Groups:    groups,
		Standings: make(map[string][]models.Team, len(groups)),
	}

	for _, name := range bracket.GroupNames() {
		teams := groups[name]
		groupName := name
		// Every unordered pair exactly once; the fixed-i/ascending-j order is
		// the published fixture order, with team i as nominal home side.
		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				bracket.Matches = append(bracket.Matches, models.Match{
					Phase:      models.PhaseTwo,
					GroupName:  &groupName,
					HomeTeamID: teams[i].ID,
					AwayTeamID: teams[j].ID,
				})
			}
		}
		bracket.Standings[name] = standings.Calculate(teams, nil)
	}

	return bracket, nil
}
