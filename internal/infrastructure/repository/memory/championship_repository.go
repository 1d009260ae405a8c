package memory

import (
	"context"
	"sync"

	"github.com/statcrunch/leaguestats/internal/domain/championship"
)

type ChampionshipRepository struct {
	mu      sync.RWMutex
	records map[string]map[string]championship.Record
}

func NewChampionshipRepository() *ChampionshipRepository {
	return &ChampionshipRepository{records: make(map[string]map[string]championship.Record)}
}

func (r *ChampionshipRepository) UpsertByLeague(_ context.Context, leagueID string, items []championship.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bySeason, ok := r.records[leagueID]
	if !ok {
		bySeason = make(map[string]championship.Record, len(items))
		r.records[leagueID] = bySeason
	}
	for _, item := range items {
		bySeason[item.Season] = item
	}
	return nil
}

func (r *ChampionshipRepository) ListByLeague(_ context.Context, leagueID string) ([]championship.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]championship.Record, 0, len(r.records[leagueID]))
	for _, item := range r.records[leagueID] {
		out = append(out, item)
	}
	return out, nil
}
