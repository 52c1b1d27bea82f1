package models

import "time"

// GroupStanding is the persisted snapshot of a phase-2 group table row.
// The standings engine rewrites the whole group on every result submission;
// reads recompute from the match set, the snapshot exists for inspection and
// as the season-transition record.
type GroupStanding struct {
	ID        int       `json:"-" db:"id"`
	GroupName string    `json:"group" db:"group_name"`
	TeamID    int       `json:"team_id" db:"team_id"`
	Position  int       `json:"position" db:"position"`
	PJ        int       `json:"pj" db:"pj"`
	PG        int       `json:"pg" db:"pg"`
	PE        int       `json:"pe" db:"pe"`
	PP        int       `json:"pp" db:"pp"`
	GF        int       `json:"gf" db:"gf"`
	GC        int       `json:"gc" db:"gc"`
	GD        int       `json:"gd" db:"gd"`
	Pts       int       `json:"pts" db:"pts"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
