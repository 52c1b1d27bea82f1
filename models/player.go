package models

// Player counters are cumulative: result submissions only ever add to them.
type Player struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	TeamID      int    `json:"team_id" db:"team_id"`
	Goals       int    `json:"goals" db:"goals"`
	YellowCards int    `json:"yellowCards" db:"yellow_cards"`
	RedCards    int    `json:"redCards" db:"red_cards"`
	BlueCards   int    `json:"blueCards" db:"blue_cards"`
}
