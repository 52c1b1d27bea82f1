package models

// Team carries the eight derived league statistics alongside its identity.
// The stat columns are a snapshot of the last standings computation; they are
// never authored directly, only rewritten wholesale by the standings engine.
type Team struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	PJ  int `json:"pj" db:"pj"`
	PG  int `json:"pg" db:"pg"`
	PE  int `json:"pe" db:"pe"`
	PP  int `json:"pp" db:"pp"`
	GF  int `json:"gf" db:"gf"`
	GC  int `json:"gc" db:"gc"`
	GD  int `json:"gd" db:"gd"`
	Pts int `json:"pts" db:"pts"`

	CrestKey *string `json:"-" db:"crest_key"`
	CrestURL *string `json:"crest_url,omitempty" db:"-"`

	Players []Player `json:"players,omitempty" db:"-"`
}
