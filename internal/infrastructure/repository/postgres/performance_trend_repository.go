package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/statcrunch/leaguestats/internal/domain/performancetrend"
	qb "github.com/statcrunch/leaguestats/internal/platform/querybuilder"
)

type performanceTrendTableModel struct {
	ID              int64     `db:"id"`
	LeagueID        string    `db:"league_id"`
	TeamID          string    `db:"team_id"`
	Direction       string    `db:"trend_direction"`
	Strength        float64   `db:"trend_strength"`
	SampleSize      int       `db:"sample_size"`
	RecentAvgPoints float64   `db:"recent_avg_points"`
	PriorAvgPoints  float64   `db:"prior_avg_points"`
	RecentWinRatio  float64   `db:"recent_win_ratio"`
	PriorWinRatio   float64   `db:"prior_win_ratio"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type performanceTrendInsertModel struct {
	LeagueID        string  `db:"league_id"`
	TeamID          string  `db:"team_id"`
	Direction       string  `db:"trend_direction"`
	Strength        float64 `db:"trend_strength"`
	SampleSize      int     `db:"sample_size"`
	RecentAvgPoints float64 `db:"recent_avg_points"`
	PriorAvgPoints  float64 `db:"prior_avg_points"`
	RecentWinRatio  float64 `db:"recent_win_ratio"`
	PriorWinRatio   float64 `db:"prior_win_ratio"`
}

type PerformanceTrendRepository struct {
	db *sqlx.DB
}

func NewPerformanceTrendRepository(db *sqlx.DB) *PerformanceTrendRepository {
	return &PerformanceTrendRepository{db: db}
}

func (r *PerformanceTrendRepository) UpsertByLeague(ctx context.Context, leagueID string, items []performancetrend.Trend) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert performance trends: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := performanceTrendInsertModel{
			LeagueID:        leagueID,
			TeamID:          item.TeamID,
			Direction:       string(item.Direction),
			Strength:        item.Strength,
			SampleSize:      item.SampleSize,
			RecentAvgPoints: item.RecentAvgPoints,
			PriorAvgPoints:  item.PriorAvgPoints,
			RecentWinRatio:  item.RecentWinRatio,
			PriorWinRatio:   item.PriorWinRatio,
		}
		query, args, err := qb.InsertModel("performance_trends", insertModel, `ON CONFLICT (league_id, team_id)
DO UPDATE SET
    trend_direction = EXCLUDED.trend_direction,
    trend_strength = EXCLUDED.trend_strength,
    sample_size = EXCLUDED.sample_size,
    recent_avg_points = EXCLUDED.recent_avg_points,
    prior_avg_points = EXCLUDED.prior_avg_points,
    recent_win_ratio = EXCLUDED.recent_win_ratio,
    prior_win_ratio = EXCLUDED.prior_win_ratio,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert performance trend query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert performance trend team=%s: %w", item.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert performance trends tx: %w", err)
	}
	return nil
}

func (r *PerformanceTrendRepository) ListByLeague(ctx context.Context, leagueID string) ([]performancetrend.Trend, error) {
	query, args, err := qb.Select("*").From("performance_trends").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list performance trends query: %w", err)
	}

	var rows []performanceTrendTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list performance trends: %w", err)
	}

	out := make([]performancetrend.Trend, 0, len(rows))
	for _, row := range rows {
		out = append(out, performancetrend.Trend{
			LeagueID:        row.LeagueID,
			TeamID:          row.TeamID,
			Direction:       performancetrend.Direction(row.Direction),
			Strength:        row.Strength,
			SampleSize:      row.SampleSize,
			RecentAvgPoints: row.RecentAvgPoints,
			PriorAvgPoints:  row.PriorAvgPoints,
			RecentWinRatio:  row.RecentWinRatio,
			PriorWinRatio:   row.PriorWinRatio,
		})
	}

	return out, nil
}
