package models

type MatchPhase string

const (
	PhaseRegular MatchPhase = "regular"
	PhaseTwo     MatchPhase = "phase2"
)

type Match struct {
	ID         int        `json:"id" db:"id"`
	Phase      MatchPhase `json:"phase" db:"phase"`
	GroupName  *string    `json:"group,omitempty" db:"group_name"`
	Round      *int       `json:"round,omitempty" db:"round"`
	HomeTeamID int        `json:"home_team" db:"home_team_id"`
	AwayTeamID int        `json:"away_team" db:"away_team_id"`
	HomeScore  *int       `json:"home_score" db:"home_score"`
	AwayScore  *int       `json:"away_score" db:"away_score"`
}

// Played reports whether both scores have been recorded.
func (m Match) Played() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}
