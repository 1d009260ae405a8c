package postgres

import "time"

type weeklyResultTableModel struct {
	ID              int64     `db:"id"`
	LeagueID        string    `db:"league_id"`
	Season          string    `db:"season"`
	Week            int       `db:"week"`
	TeamID          string    `db:"team_id"`
	OpponentID      string    `db:"opponent_id"`
	PointsFor       float64   `db:"points_for"`
	PointsAgainst   float64   `db:"points_against"`
	Result          string    `db:"result"`
	IsPlayoff       bool      `db:"is_playoff"`
	IsChampionship  bool      `db:"is_championship"`
	MarginOfVictory float64   `db:"margin_of_victory"`
	CreatedAt       time.Time `db:"created_at"`
}
