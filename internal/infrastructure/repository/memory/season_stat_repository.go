package memory

import (
	"context"
	"sync"

	"github.com/statcrunch/leaguestats/internal/domain/seasonstat"
)

type SeasonStatRepository struct {
	mu    sync.RWMutex
	stats map[string][]seasonstat.Statistic
}

func NewSeasonStatRepository() *SeasonStatRepository {
	return &SeasonStatRepository{stats: make(map[string][]seasonstat.Statistic)}
}

func (r *SeasonStatRepository) UpsertBySeason(_ context.Context, leagueID, season string, items []seasonstat.Statistic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]seasonstat.Statistic, 0, len(r.stats[leagueID]))
	for _, st := range r.stats[leagueID] {
		if st.Season != season {
			kept = append(kept, st)
		}
	}
	r.stats[leagueID] = append(kept, items...)
	return nil
}

func (r *SeasonStatRepository) ListByLeague(_ context.Context, leagueID string) ([]seasonstat.Statistic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]seasonstat.Statistic(nil), r.stats[leagueID]...), nil
}
