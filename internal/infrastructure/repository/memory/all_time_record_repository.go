package memory

import (
	"context"
	"sync"

	"github.com/statcrunch/leaguestats/internal/domain/alltimerecord"
)

type AllTimeRecordRepository struct {
	mu      sync.RWMutex
	records map[string]map[string]alltimerecord.Record
}

func NewAllTimeRecordRepository() *AllTimeRecordRepository {
	return &AllTimeRecordRepository{records: make(map[string]map[string]alltimerecord.Record)}
}

func (r *AllTimeRecordRepository) Upsert(_ context.Context, item alltimerecord.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byKey, ok := r.records[item.LeagueID]
	if !ok {
		byKey = make(map[string]alltimerecord.Record, 4)
		r.records[item.LeagueID] = byKey
	}
	byKey[string(item.RecordType)+"|"+string(item.HolderType)] = item
	return nil
}

func (r *AllTimeRecordRepository) ListByLeague(_ context.Context, leagueID string) ([]alltimerecord.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]alltimerecord.Record, 0, len(r.records[leagueID]))
	for _, item := range r.records[leagueID] {
		out = append(out, item)
	}
	return out, nil
}
