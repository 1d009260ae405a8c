package memory

import (
	"time"

	"github.com/statcrunch/leaguestats/internal/domain/weeklyresult"
)

// SeedWeeklyResults returns a small two-season demo league, mirrored rows
// included, for local runs without a database.
func SeedWeeklyResults() []weeklyresult.WeeklyResult {
	created := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	games := []struct {
		season   string
		week     int
		home     string
		away     string
		homePts  float64
		awayPts  float64
		playoff  bool
		champGme bool
	}{
		{"2023", 1, "team-ants", "team-bears", 112.4, 98.2, false, false},
		{"2023", 2, "team-ants", "team-cobras", 104.9, 121.3, false, false},
		{"2023", 2, "team-bears", "team-drakes", 99.0, 99.0, false, false},
		{"2023", 3, "team-cobras", "team-bears", 130.5, 88.7, false, false},
		{"2023", 4, "team-ants", "team-drakes", 125.1, 96.6, true, false},
		{"2023", 5, "team-ants", "team-cobras", 140.2, 130.8, true, true},
		{"2024", 1, "team-bears", "team-cobras", 101.7, 95.5, false, false},
		{"2024", 2, "team-ants", "team-bears", 118.3, 109.9, false, false},
		{"2024", 3, "team-drakes", "team-cobras", 122.6, 115.4, false, false},
	}

	out := make([]weeklyresult.WeeklyResult, 0, len(games)*2)
	for _, g := range games {
		homeResult, awayResult := weeklyresult.ResultWin, weeklyresult.ResultLoss
		if g.homePts < g.awayPts {
			homeResult, awayResult = weeklyresult.ResultLoss, weeklyresult.ResultWin
		} else if g.homePts == g.awayPts {
			homeResult, awayResult = weeklyresult.ResultTie, weeklyresult.ResultTie
		}
		margin := g.homePts - g.awayPts
		if margin < 0 {
			margin = -margin
		}

		out = append(out,
			weeklyresult.WeeklyResult{
				LeagueID:        "league-demo",
				Season:          g.season,
				Week:            g.week,
				TeamID:          g.home,
				OpponentID:      g.away,
				PointsFor:       g.homePts,
				PointsAgainst:   g.awayPts,
				Result:          homeResult,
				IsPlayoff:       g.playoff,
				IsChampionship:  g.champGme,
				MarginOfVictory: margin,
				CreatedAt:       created,
			},
			weeklyresult.WeeklyResult{
				LeagueID:        "league-demo",
				Season:          g.season,
				Week:            g.week,
				TeamID:          g.away,
				OpponentID:      g.home,
				PointsFor:       g.awayPts,
				PointsAgainst:   g.homePts,
				Result:          awayResult,
				IsPlayoff:       g.playoff,
				IsChampionship:  g.champGme,
				MarginOfVictory: margin,
				CreatedAt:       created,
			},
		)
	}

	return out
}
