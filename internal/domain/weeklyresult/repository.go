package weeklyresult

import "context"

// Repository is read-only: the engine never writes weekly results.
// No row ordering is guaranteed; callers sort in memory when order matters.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]WeeklyResult, error)
	ListByLeagueSeason(ctx context.Context, leagueID, season string) ([]WeeklyResult, error)
}
