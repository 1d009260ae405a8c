package weeklyresult

import "time"

type Result string

const (
	ResultWin  Result = "WIN"
	ResultLoss Result = "LOSS"
	ResultTie  Result = "TIE"
)

// WeeklyResult is one team's recorded outcome for one week of one season.
// Rows are written by the ingestion pipeline and never mutated here; a
// completed matchup is expected to appear twice, once per participant,
// with team/opponent swapped and the result inverted.
type WeeklyResult struct {
	LeagueID        string
	Season          string
	Week            int
	TeamID          string
	OpponentID      string
	PointsFor       float64
	PointsAgainst   float64
	Result          Result
	IsPlayoff       bool
	IsChampionship  bool
	MarginOfVictory float64
	CreatedAt       time.Time
}
