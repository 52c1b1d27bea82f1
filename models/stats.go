package models

// Read models for the statistics endpoints.

type ScorerRow struct {
	PlayerID int    `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Goals    int    `json:"goals"`
}

type CardRow struct {
	PlayerID    int    `json:"id"`
	Name        string `json:"name"`
	Team        string `json:"team"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
	BlueCards   int    `json:"blue_cards"`
}

type OffenseRow struct {
	TeamID int    `json:"id"`
	Name   string `json:"name"`
	GF     int    `json:"gf"`
}

type DefenseRow struct {
	TeamID int    `json:"id"`
	Name   string `json:"name"`
	GC     int    `json:"gc"`
}

type StatsSummary struct {
	Scorers []ScorerRow  `json:"scorers"`
	Cards   []CardRow    `json:"cards"`
	Offense []OffenseRow `json:"offense"`
	Defense []DefenseRow `json:"defense"`
}
