package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/statcrunch/leaguestats/internal/domain/headtohead"
	qb "github.com/statcrunch/leaguestats/internal/platform/querybuilder"
)

type headToHeadTableModel struct {
	ID                int64     `db:"id"`
	LeagueID          string    `db:"league_id"`
	Team1ID           string    `db:"team1_id"`
	Team2ID           string    `db:"team2_id"`
	Team1Wins         int       `db:"team1_wins"`
	Team2Wins         int       `db:"team2_wins"`
	Ties              int       `db:"ties"`
	Team1Points       float64   `db:"team1_points"`
	Team2Points       float64   `db:"team2_points"`
	PlayoffGames      int       `db:"playoff_games"`
	ChampionshipGames int       `db:"championship_games"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

type headToHeadInsertModel struct {
	LeagueID          string  `db:"league_id"`
	Team1ID           string  `db:"team1_id"`
	Team2ID           string  `db:"team2_id"`
	Team1Wins         int     `db:"team1_wins"`
	Team2Wins         int     `db:"team2_wins"`
	Ties              int     `db:"ties"`
	Team1Points       float64 `db:"team1_points"`
	Team2Points       float64 `db:"team2_points"`
	PlayoffGames      int     `db:"playoff_games"`
	ChampionshipGames int     `db:"championship_games"`
}

type HeadToHeadRepository struct {
	db *sqlx.DB
}

func NewHeadToHeadRepository(db *sqlx.DB) *HeadToHeadRepository {
	return &HeadToHeadRepository{db: db}
}

func (r *HeadToHeadRepository) UpsertByLeague(ctx context.Context, leagueID string, items []headtohead.Record) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert head-to-head records: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := headToHeadInsertModel{
			LeagueID:          leagueID,
			Team1ID:           item.Team1ID,
			Team2ID:           item.Team2ID,
			Team1Wins:         item.Team1Wins,
			Team2Wins:         item.Team2Wins,
			Ties:              item.Ties,
			Team1Points:       item.Team1Points,
			Team2Points:       item.Team2Points,
			PlayoffGames:      item.PlayoffGames,
			ChampionshipGames: item.ChampionshipGames,
		}
		query, args, err := qb.InsertModel("head_to_head_records", insertModel, `ON CONFLICT (league_id, team1_id, team2_id)
DO UPDATE SET
    team1_wins = EXCLUDED.team1_wins,
    team2_wins = EXCLUDED.team2_wins,
    ties = EXCLUDED.ties,
    team1_points = EXCLUDED.team1_points,
    team2_points = EXCLUDED.team2_points,
    playoff_games = EXCLUDED.playoff_games,
    championship_games = EXCLUDED.championship_games,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert head-to-head query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert head-to-head pair=%s/%s: %w", item.Team1ID, item.Team2ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert head-to-head tx: %w", err)
	}
	return nil
}

func (r *HeadToHeadRepository) ListByLeague(ctx context.Context, leagueID string) ([]headtohead.Record, error) {
	query, args, err := qb.Select("*").From("head_to_head_records").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("team1_id", "team2_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list head-to-head query: %w", err)
	}

	var rows []headToHeadTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list head-to-head records: %w", err)
	}

	out := make([]headtohead.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, headtohead.Record{
			LeagueID:          row.LeagueID,
			Team1ID:           row.Team1ID,
			Team2ID:           row.Team2ID,
			Team1Wins:         row.Team1Wins,
			Team2Wins:         row.Team2Wins,
			Ties:              row.Ties,
			Team1Points:       row.Team1Points,
			Team2Points:       row.Team2Points,
			PlayoffGames:      row.PlayoffGames,
			ChampionshipGames: row.ChampionshipGames,
		})
	}

	return out, nil
}
