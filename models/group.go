package models

// Phase2Group is one seat of the phase-2 group assignment. Assignments are
// written once at season transition and held fixed until the next reset.
type Phase2Group struct {
	ID        int    `json:"-" db:"id"`
	GroupName string `json:"group" db:"group_name"`
	Position  int    `json:"position" db:"position"`
	TeamID    int    `json:"team_id" db:"team_id"`
}
