package championship

import "context"

type Repository interface {
	UpsertByLeague(ctx context.Context, leagueID string, items []Record) error
	ListByLeague(ctx context.Context, leagueID string) ([]Record, error)
}
