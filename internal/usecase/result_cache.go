package usecase

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/statcrunch/leaguestats/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
)

// ResultCache receives serialized aggregate snapshots for other readers
// (the API layer, chat agents). The calculation functions never read from
// it; writes are best-effort and a failure must not fail a calculation.
type ResultCache interface {
	SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error
}

const DefaultCacheTTL = 3600 * time.Second

func seasonStatsCacheKey(leagueID, season string) string {
	return fmt.Sprintf("stats:%s:season:%s", leagueID, season)
}

func headToHeadCacheKey(leagueID string) string {
	return "h2h:" + leagueID
}

func allTimeRecordsCacheKey(leagueID string) string {
	return "records:" + leagueID
}

func trendsCacheKey(leagueID string) string {
	return "trends:" + leagueID
}

func championshipsCacheKey(leagueID string) string {
	return "championships:" + leagueID
}

// refreshCache serializes payload and stores it under key. Errors are logged
// and swallowed: the cache is an optimization, not a correctness dependency.
func refreshCache(ctx context.Context, cache ResultCache, logger *logging.Logger, key string, ttl time.Duration, payload any) {
	if cache == nil {
		return
	}
	if logger == nil {
		logger = logging.Default()
	}

	snapshot, err := encodeSnapshot(payload)
	if err == nil {
		err = cache.SetWithTTL(ctx, key, snapshot, ttl)
	}
	if err != nil {
		logger.WarnContext(ctx, "cache refresh failed", "key", key, "error", err)
	}
}

func encodeSnapshot(payload any) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return "", fmt.Errorf("encode cache snapshot: %w", err)
	}
	return buf.String(), nil
}
