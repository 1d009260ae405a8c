package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/statcrunch/leaguestats/internal/domain/weeklyresult"
	qb "github.com/statcrunch/leaguestats/internal/platform/querybuilder"
)

// WeeklyResultRepository reads the source-of-truth results table. The engine
// never writes it.
type WeeklyResultRepository struct {
	db *sqlx.DB
}

func NewWeeklyResultRepository(db *sqlx.DB) *WeeklyResultRepository {
	return &WeeklyResultRepository{db: db}
}

func (r *WeeklyResultRepository) ListByLeague(ctx context.Context, leagueID string) ([]weeklyresult.WeeklyResult, error) {
	query, args, err := qb.Select("*").From("weekly_results").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weekly results query: %w", err)
	}

	var rows []weeklyResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weekly results: %w", err)
	}

	return mapWeeklyResults(rows), nil
}

func (r *WeeklyResultRepository) ListByLeagueSeason(ctx context.Context, leagueID, season string) ([]weeklyresult.WeeklyResult, error) {
	query, args, err := qb.Select("*").From("weekly_results").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("season", season),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weekly results by season query: %w", err)
	}

	var rows []weeklyResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weekly results by season: %w", err)
	}

	return mapWeeklyResults(rows), nil
}

func mapWeeklyResults(rows []weeklyResultTableModel) []weeklyresult.WeeklyResult {
	out := make([]weeklyresult.WeeklyResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, weeklyresult.WeeklyResult{
			LeagueID:        row.LeagueID,
			Season:          row.Season,
			Week:            row.Week,
			TeamID:          row.TeamID,
			OpponentID:      row.OpponentID,
			PointsFor:       row.PointsFor,
			PointsAgainst:   row.PointsAgainst,
			Result:          weeklyresult.Result(row.Result),
			IsPlayoff:       row.IsPlayoff,
			IsChampionship:  row.IsChampionship,
			MarginOfVictory: row.MarginOfVictory,
			CreatedAt:       row.CreatedAt,
		})
	}
	return out
}
