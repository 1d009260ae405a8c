package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/statcrunch/leaguestats/internal/domain/championship"
	qb "github.com/statcrunch/leaguestats/internal/platform/querybuilder"
)

type championshipTableModel struct {
	ID                int64     `db:"id"`
	LeagueID          string    `db:"league_id"`
	Season            string    `db:"season"`
	ChampionID        string    `db:"champion_id"`
	RunnerUpID        string    `db:"runner_up_id"`
	ChampionshipScore float64   `db:"championship_score"`
	RunnerUpScore     float64   `db:"runner_up_score"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

type championshipInsertModel struct {
	LeagueID          string  `db:"league_id"`
	Season            string  `db:"season"`
	ChampionID        string  `db:"champion_id"`
	RunnerUpID        string  `db:"runner_up_id"`
	ChampionshipScore float64 `db:"championship_score"`
	RunnerUpScore     float64 `db:"runner_up_score"`
}

type ChampionshipRepository struct {
	db *sqlx.DB
}

func NewChampionshipRepository(db *sqlx.DB) *ChampionshipRepository {
	return &ChampionshipRepository{db: db}
}

func (r *ChampionshipRepository) UpsertByLeague(ctx context.Context, leagueID string, items []championship.Record) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert championship records: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := championshipInsertModel{
			LeagueID:          leagueID,
			Season:            item.Season,
			ChampionID:        item.ChampionID,
			RunnerUpID:        item.RunnerUpID,
			ChampionshipScore: item.ChampionshipScore,
			RunnerUpScore:     item.RunnerUpScore,
		}
		query, args, err := qb.InsertModel("championship_records", insertModel, `ON CONFLICT (league_id, season)
DO UPDATE SET
    champion_id = EXCLUDED.champion_id,
    runner_up_id = EXCLUDED.runner_up_id,
    championship_score = EXCLUDED.championship_score,
    runner_up_score = EXCLUDED.runner_up_score,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert championship record query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert championship record season=%s: %w", item.Season, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert championship records tx: %w", err)
	}
	return nil
}

func (r *ChampionshipRepository) ListByLeague(ctx context.Context, leagueID string) ([]championship.Record, error) {
	query, args, err := qb.Select("*").From("championship_records").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("season").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list championship records query: %w", err)
	}

	var rows []championshipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list championship records: %w", err)
	}

	out := make([]championship.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, championship.Record{
			LeagueID:          row.LeagueID,
			Season:            row.Season,
			ChampionID:        row.ChampionID,
			RunnerUpID:        row.RunnerUpID,
			ChampionshipScore: row.ChampionshipScore,
			RunnerUpScore:     row.RunnerUpScore,
		})
	}

	return out, nil
}
