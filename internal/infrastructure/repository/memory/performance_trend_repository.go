package memory

import (
	"context"
	"sync"

	"github.com/statcrunch/leaguestats/internal/domain/performancetrend"
)

type PerformanceTrendRepository struct {
	mu     sync.RWMutex
	trends map[string]map[string]performancetrend.Trend
}

func NewPerformanceTrendRepository() *PerformanceTrendRepository {
	return &PerformanceTrendRepository{trends: make(map[string]map[string]performancetrend.Trend)}
}

func (r *PerformanceTrendRepository) UpsertByLeague(_ context.Context, leagueID string, items []performancetrend.Trend) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byTeam, ok := r.trends[leagueID]
	if !ok {
		byTeam = make(map[string]performancetrend.Trend, len(items))
		r.trends[leagueID] = byTeam
	}
	for _, item := range items {
		byTeam[item.TeamID] = item
	}
	return nil
}

func (r *PerformanceTrendRepository) ListByLeague(_ context.Context, leagueID string) ([]performancetrend.Trend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]performancetrend.Trend, 0, len(r.trends[leagueID]))
	for _, item := range r.trends[leagueID] {
		out = append(out, item)
	}
	return out, nil
}
