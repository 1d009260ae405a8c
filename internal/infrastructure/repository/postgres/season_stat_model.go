package postgres

import "time"

type seasonStatTableModel struct {
	ID                 int64     `db:"id"`
	LeagueID           string    `db:"league_id"`
	Season             string    `db:"season"`
	TeamID             string    `db:"team_id"`
	Wins               int       `db:"wins"`
	Losses             int       `db:"losses"`
	Ties               int       `db:"ties"`
	PointsFor          float64   `db:"points_for"`
	PointsAgainst      float64   `db:"points_against"`
	LongestWinStreak   int       `db:"longest_win_streak"`
	CurrentStreakType  string    `db:"current_streak_type"`
	CurrentStreakCount int       `db:"current_streak_count"`
	TotalMargin        float64   `db:"total_margin"`
	AverageMargin      float64   `db:"average_margin"`
	LargestMargin      float64   `db:"largest_margin"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

type seasonStatInsertModel struct {
	LeagueID           string  `db:"league_id"`
	Season             string  `db:"season"`
	TeamID             string  `db:"team_id"`
	Wins               int     `db:"wins"`
	Losses             int     `db:"losses"`
	Ties               int     `db:"ties"`
	PointsFor          float64 `db:"points_for"`
	PointsAgainst      float64 `db:"points_against"`
	LongestWinStreak   int     `db:"longest_win_streak"`
	CurrentStreakType  string  `db:"current_streak_type"`
	CurrentStreakCount int     `db:"current_streak_count"`
	TotalMargin        float64 `db:"total_margin"`
	AverageMargin      float64 `db:"average_margin"`
	LargestMargin      float64 `db:"largest_margin"`
}
