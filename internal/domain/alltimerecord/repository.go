package alltimerecord

import "context"

type Repository interface {
	Upsert(ctx context.Context, item Record) error
	ListByLeague(ctx context.Context, leagueID string) ([]Record, error)
}
