package memory

import (
	"context"
	"sync"

	"github.com/statcrunch/leaguestats/internal/domain/weeklyresult"
)

type WeeklyResultRepository struct {
	mu   sync.RWMutex
	rows []weeklyresult.WeeklyResult
}

func NewWeeklyResultRepository(rows []weeklyresult.WeeklyResult) *WeeklyResultRepository {
	return &WeeklyResultRepository{rows: append([]weeklyresult.WeeklyResult(nil), rows...)}
}

func (r *WeeklyResultRepository) ListByLeague(_ context.Context, leagueID string) ([]weeklyresult.WeeklyResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]weeklyresult.WeeklyResult, 0, len(r.rows))
	for _, row := range r.rows {
		if row.LeagueID == leagueID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *WeeklyResultRepository) ListByLeagueSeason(_ context.Context, leagueID, season string) ([]weeklyresult.WeeklyResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]weeklyresult.WeeklyResult, 0, len(r.rows))
	for _, row := range r.rows {
		if row.LeagueID == leagueID && row.Season == season {
			out = append(out, row)
		}
	}
	return out, nil
}
