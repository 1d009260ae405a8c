package seasonstat

import "github.com/statcrunch/leaguestats/internal/domain/weeklyresult"

// Statistic is the season aggregate for one team. It is fully replaced on
// every recomputation rather than patched incrementally.
type Statistic struct {
	LeagueID           string
	Season             string
	TeamID             string
	Wins               int
	Losses             int
	Ties               int
	PointsFor          float64
	PointsAgainst      float64
	LongestWinStreak   int
	CurrentStreakType  weeklyresult.Result
	CurrentStreakCount int
	TotalMargin        float64
	AverageMargin      float64
	LargestMargin      float64
}
