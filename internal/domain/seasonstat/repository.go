package seasonstat

import "context"

type Repository interface {
	UpsertBySeason(ctx context.Context, leagueID, season string, items []Statistic) error
	ListByLeague(ctx context.Context, leagueID string) ([]Statistic, error)
}
