package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/statcrunch/leaguestats/internal/domain/alltimerecord"
	qb "github.com/statcrunch/leaguestats/internal/platform/querybuilder"
)

type allTimeRecordTableModel struct {
	ID               int64     `db:"id"`
	LeagueID         string    `db:"league_id"`
	RecordType       string    `db:"record_type"`
	RecordHolderType string    `db:"record_holder_type"`
	HolderID         string    `db:"holder_id"`
	Value            float64   `db:"value"`
	Season           string    `db:"season"`
	Week             int       `db:"week"`
	Description      string    `db:"description"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type allTimeRecordInsertModel struct {
	LeagueID         string  `db:"league_id"`
	RecordType       string  `db:"record_type"`
	RecordHolderType string  `db:"record_holder_type"`
	HolderID         string  `db:"holder_id"`
	Value            float64 `db:"value"`
	Season           string  `db:"season"`
	Week             int     `db:"week"`
	Description      string  `db:"description"`
}

type AllTimeRecordRepository struct {
	db *sqlx.DB
}

func NewAllTimeRecordRepository(db *sqlx.DB) *AllTimeRecordRepository {
	return &AllTimeRecordRepository{db: db}
}

func (r *AllTimeRecordRepository) Upsert(ctx context.Context, item alltimerecord.Record) error {
	insertModel := allTimeRecordInsertModel{
		LeagueID:         item.LeagueID,
		RecordType:       string(item.RecordType),
		RecordHolderType: string(item.HolderType),
		HolderID:         item.HolderID,
		Value:            item.Value,
		Season:           item.Season,
		Week:             item.Week,
		Description:      item.Description,
	}
	query, args, err := qb.InsertModel("all_time_records", insertModel, `ON CONFLICT (league_id, record_type, record_holder_type)
DO UPDATE SET
    holder_id = EXCLUDED.holder_id,
    value = EXCLUDED.value,
    season = EXCLUDED.season,
    week = EXCLUDED.week,
    description = EXCLUDED.description,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert all-time record query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert all-time record type=%s: %w", item.RecordType, err)
	}
	return nil
}

func (r *AllTimeRecordRepository) ListByLeague(ctx context.Context, leagueID string) ([]alltimerecord.Record, error) {
	query, args, err := qb.Select("*").From("all_time_records").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("record_type").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list all-time records query: %w", err)
	}

	var rows []allTimeRecordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list all-time records: %w", err)
	}

	out := make([]alltimerecord.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, alltimerecord.Record{
			LeagueID:    row.LeagueID,
			RecordType:  alltimerecord.Type(row.RecordType),
			HolderType:  alltimerecord.HolderType(row.RecordHolderType),
			HolderID:    row.HolderID,
			Value:       row.Value,
			Season:      row.Season,
			Week:        row.Week,
			Description: row.Description,
		})
	}

	return out, nil
}
