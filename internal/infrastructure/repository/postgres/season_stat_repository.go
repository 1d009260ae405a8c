package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/statcrunch/leaguestats/internal/domain/seasonstat"
	"github.com/statcrunch/leaguestats/internal/domain/weeklyresult"
	qb "github.com/statcrunch/leaguestats/internal/platform/querybuilder"
)

type SeasonStatRepository struct {
	db *sqlx.DB
}

func NewSeasonStatRepository(db *sqlx.DB) *SeasonStatRepository {
	return &SeasonStatRepository{db: db}
}

func (r *SeasonStatRepository) UpsertBySeason(ctx context.Context, leagueID, season string, items []seasonstat.Statistic) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert season statistics: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := seasonStatInsertModel{
			LeagueID:           leagueID,
			Season:             season,
			TeamID:             item.TeamID,
			Wins:               item.Wins,
			Losses:             item.Losses,
			Ties:               item.Ties,
			PointsFor:          item.PointsFor,
			PointsAgainst:      item.PointsAgainst,
			LongestWinStreak:   item.LongestWinStreak,
			CurrentStreakType:  string(item.CurrentStreakType),
			CurrentStreakCount: item.CurrentStreakCount,
			TotalMargin:        item.TotalMargin,
			AverageMargin:      item.AverageMargin,
			LargestMargin:      item.LargestMargin,
		}
		query, args, err := qb.InsertModel("season_statistics", insertModel, `ON CONFLICT (league_id, season, team_id)
DO UPDATE SET
    wins = EXCLUDED.wins,
    losses = EXCLUDED.losses,
    ties = EXCLUDED.ties,
    points_for = EXCLUDED.points_for,
    points_against = EXCLUDED.points_against,
    longest_win_streak = EXCLUDED.longest_win_streak,
    current_streak_type = EXCLUDED.current_streak_type,
    current_streak_count = EXCLUDED.current_streak_count,
    total_margin = EXCLUDED.total_margin,
    average_margin = EXCLUDED.average_margin,
    largest_margin = EXCLUDED.largest_margin,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert season statistic query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert season statistic team=%s: %w", item.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert season statistics tx: %w", err)
	}
	return nil
}

func (r *SeasonStatRepository) ListByLeague(ctx context.Context, leagueID string) ([]seasonstat.Statistic, error) {
	query, args, err := qb.Select("*").From("season_statistics").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("season", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season statistics query: %w", err)
	}

	var rows []seasonStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season statistics: %w", err)
	}

	out := make([]seasonstat.Statistic, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonstat.Statistic{
			LeagueID:           row.LeagueID,
			Season:             row.Season,
			TeamID:             row.TeamID,
			Wins:               row.Wins,
			Losses:             row.Losses,
			Ties:               row.Ties,
			PointsFor:          row.PointsFor,
			PointsAgainst:      row.PointsAgainst,
			LongestWinStreak:   row.LongestWinStreak,
			CurrentStreakType:  weeklyresult.Result(row.CurrentStreakType),
			CurrentStreakCount: row.CurrentStreakCount,
			TotalMargin:        row.TotalMargin,
			AverageMargin:      row.AverageMargin,
			LargestMargin:      row.LargestMargin,
		})
	}

	return out, nil
}
