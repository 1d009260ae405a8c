package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/statcrunch/leaguestats/internal/domain/alltimerecord"
	"github.com/statcrunch/leaguestats/internal/domain/calculation"
	"github.com/statcrunch/leaguestats/internal/domain/seasonstat"
	"github.com/statcrunch/leaguestats/internal/domain/weeklyresult"
	"github.com/statcrunch/leaguestats/internal/platform/logging"
)

// AllTimeRecordsService scans the league's full history for extremal values,
// one independent scan per record type. Rows are walked in chronological
// order with a strict comparison so ties keep the earliest instance, which
// also makes re-runs over unchanged data idempotent.
type AllTimeRecordsService struct {
	resultRepo weeklyresult.Repository
	statRepo   seasonstat.Repository
	recordRepo alltimerecord.Repository
	cache      ResultCache
	cacheTTL   time.Duration
	logger     *logging.Logger
}

func NewAllTimeRecordsService(
	resultRepo weeklyresult.Repository,
	statRepo seasonstat.Repository,
	recordRepo alltimerecord.Repository,
	cache ResultCache,
	cacheTTL time.Duration,
	logger *logging.Logger,
) *AllTimeRecordsService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AllTimeRecordsService{
		resultRepo: resultRepo,
		statRepo:   statRepo,
		recordRepo: recordRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

func (s *AllTimeRecordsService) Calculate(ctx context.Context, leagueID string) (calculation.Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AllTimeRecordsService.Calculate")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return calculation.Outcome{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	rows, err := s.resultRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return calculation.Outcome{}, fmt.Errorf("list weekly results league=%s: %w", leagueID, err)
	}
	if len(rows) == 0 {
		return calculation.Outcome{Success: true}, nil
	}

	stats, err := s.statRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return calculation.Outcome{}, fmt.Errorf("list season statistics league=%s: %w", leagueID, err)
	}
	if len(stats) == 0 {
		// Season statistics have not been materialized yet; derive them
		// in memory from the same result set.
		for _, season := range distinctSeasons(rows) {
			seasonRows := make([]weeklyresult.WeeklyResult, 0, len(rows))
			for _, row := range rows {
				if row.Season == season {
					seasonRows = append(seasonRows, row)
				}
			}
			stats = append(stats, reduceSeasonStatistics(leagueID, season, seasonRows)...)
		}
	}

	records := make([]alltimerecord.Record, 0, 3)
	if rec, ok := scanHighestSingleGameScore(leagueID, rows); ok {
		records = append(records, rec)
	}
	if rec, ok := scanLongestWinStreak(leagueID, stats); ok {
		records = append(records, rec)
	}
	if rec, ok := scanMostPointsSeason(leagueID, stats); ok {
		records = append(records, rec)
	}

	for _, rec := range records {
		if err := s.recordRepo.Upsert(ctx, rec); err != nil {
			return calculation.Outcome{}, fmt.Errorf("upsert all-time record league=%s type=%s: %w", leagueID, rec.RecordType, err)
		}
	}

	refreshCache(ctx, s.cache, s.logger, allTimeRecordsCacheKey(leagueID), s.cacheTTL, records)

	return calculation.Outcome{Success: true, RecordsProcessed: len(records)}, nil
}

func scanHighestSingleGameScore(leagueID string, rows []weeklyresult.WeeklyResult) (alltimerecord.Record, bool) {
	sorted := append([]weeklyresult.WeeklyResult(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Season != sorted[j].Season {
			return sorted[i].Season < sorted[j].Season
		}
		if sorted[i].Week != sorted[j].Week {
			return sorted[i].Week < sorted[j].Week
		}
		return sorted[i].TeamID < sorted[j].TeamID
	})

	var best weeklyresult.WeeklyResult
	found := false
	for _, row := range sorted {
		if !found || row.PointsFor > best.PointsFor {
			best = row
			found = true
		}
	}
	if !found {
		return alltimerecord.Record{}, false
	}

	return alltimerecord.Record{
		LeagueID:    leagueID,
		RecordType:  alltimerecord.TypeHighestSingleGameScore,
		HolderType:  alltimerecord.HolderTeam,
		HolderID:    best.TeamID,
		Value:       best.PointsFor,
		Season:      best.Season,
		Week:        best.Week,
		Description: fmt.Sprintf("%.2f points in week %d of %s", best.PointsFor, best.Week, best.Season),
	}, true
}

func scanLongestWinStreak(leagueID string, stats []seasonstat.Statistic) (alltimerecord.Record, bool) {
	sorted := sortedStats(stats)

	var best seasonstat.Statistic
	found := false
	for _, st := range sorted {
		if st.LongestWinStreak <= 0 {
			continue
		}
		if !found || st.LongestWinStreak > best.LongestWinStreak {
			best = st
			found = true
		}
	}
	if !found {
		return alltimerecord.Record{}, false
	}

	return alltimerecord.Record{
		LeagueID:    leagueID,
		RecordType:  alltimerecord.TypeLongestWinStreak,
		HolderType:  alltimerecord.HolderTeam,
		HolderID:    best.TeamID,
		Value:       float64(best.LongestWinStreak),
		Season:      best.Season,
		Description: fmt.Sprintf("%d straight wins in %s", best.LongestWinStreak, best.Season),
	}, true
}

func scanMostPointsSeason(leagueID string, stats []seasonstat.Statistic) (alltimerecord.Record, bool) {
	sorted := sortedStats(stats)

	var best seasonstat.Statistic
	found := false
	for _, st := range sorted {
		if !found || st.PointsFor > best.PointsFor {
			best = st
			found = true
		}
	}
	if !found {
		return alltimerecord.Record{}, false
	}

	return alltimerecord.Record{
		LeagueID:    leagueID,
		RecordType:  alltimerecord.TypeMostPointsSeason,
		HolderType:  alltimerecord.HolderTeam,
		HolderID:    best.TeamID,
		Value:       best.PointsFor,
		Season:      best.Season,
		Description: fmt.Sprintf("%.2f points scored in %s", best.PointsFor, best.Season),
	}, true
}

func sortedStats(stats []seasonstat.Statistic) []seasonstat.Statistic {
	sorted := append([]seasonstat.Statistic(nil), stats...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Season != sorted[j].Season {
			return sorted[i].Season < sorted[j].Season
		}
		return sorted[i].TeamID < sorted[j].TeamID
	})
	return sorted
}
