package memory

import (
	"context"
	"sync"

	"github.com/statcrunch/leaguestats/internal/domain/headtohead"
)

type HeadToHeadRepository struct {
	mu      sync.RWMutex
	records map[string]map[string]headtohead.Record
}

func NewHeadToHeadRepository() *HeadToHeadRepository {
	return &HeadToHeadRepository{records: make(map[string]map[string]headtohead.Record)}
}

func (r *HeadToHeadRepository) UpsertByLeague(_ context.Context, leagueID string, items []headtohead.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byPair, ok := r.records[leagueID]
	if !ok {
		byPair = make(map[string]headtohead.Record, len(items))
		r.records[leagueID] = byPair
	}
	for _, item := range items {
		byPair[item.Team1ID+"|"+item.Team2ID] = item
	}
	return nil
}

func (r *HeadToHeadRepository) ListByLeague(_ context.Context, leagueID string) ([]headtohead.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]headtohead.Record, 0, len(r.records[leagueID]))
	for _, item := range r.records[leagueID] {
		out = append(out, item)
	}
	return out, nil
}
