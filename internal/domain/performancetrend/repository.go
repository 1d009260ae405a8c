package performancetrend

import "context"

type Repository interface {
	UpsertByLeague(ctx context.Context, leagueID string, items []Trend) error
	ListByLeague(ctx context.Context, leagueID string) ([]Trend, error)
}
