package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/statcrunch/leaguestats/internal/domain/calculation"
	"github.com/statcrunch/leaguestats/internal/domain/performancetrend"
	"github.com/statcrunch/leaguestats/internal/domain/weeklyresult"
	"github.com/statcrunch/leaguestats/internal/platform/logging"
)

const (
	trendSampleSize = 6
	trendHalfSize   = trendSampleSize / 2

	// DefaultTrendMinDelta is the average-points swing required before a
	// team is classified UP or DOWN instead of STABLE.
	DefaultTrendMinDelta = 5.0
)

// PerformanceTrendService classifies each team's short-term form by
// comparing the three most recent results against the three before them.
// Teams with fewer than six recorded games are excluded from the run rather
// than defaulted to STABLE.
type PerformanceTrendService struct {
	resultRepo weeklyresult.Repository
	trendRepo  performancetrend.Repository
	cache      ResultCache
	cacheTTL   time.Duration
	minDelta   float64
	logger     *logging.Logger
}

func NewPerformanceTrendService(
	resultRepo weeklyresult.Repository,
	trendRepo performancetrend.Repository,
	cache ResultCache,
	cacheTTL time.Duration,
	minDelta float64,
	logger *logging.Logger,
) *PerformanceTrendService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	if minDelta <= 0 {
		minDelta = DefaultTrendMinDelta
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PerformanceTrendService{
		resultRepo: resultRepo,
		trendRepo:  trendRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		minDelta:   minDelta,
		logger:     logger,
	}
}

func (s *PerformanceTrendService) Calculate(ctx context.Context, leagueID string) (calculation.Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PerformanceTrendService.Calculate")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return calculation.Outcome{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	rows, err := s.resultRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return calculation.Outcome{}, fmt.Errorf("list weekly results league=%s: %w", leagueID, err)
	}

	byTeam := make(map[string][]weeklyresult.WeeklyResult)
	for _, row := range rows {
		byTeam[row.TeamID] = append(byTeam[row.TeamID], row)
	}

	teamIDs := make([]string, 0, len(byTeam))
	for teamID := range byTeam {
		teamIDs = append(teamIDs, teamID)
	}
	sort.Strings(teamIDs)

	trends := make([]performancetrend.Trend, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		teamRows := byTeam[teamID]
		if len(teamRows) < trendSampleSize {
			// Too small a sample to produce a meaningful signal.
			continue
		}

		sort.SliceStable(teamRows, func(i, j int) bool {
			if teamRows[i].Season != teamRows[j].Season {
				return teamRows[i].Season > teamRows[j].Season
			}
			return teamRows[i].Week > teamRows[j].Week
		})

		recent := teamRows[:trendHalfSize]
		prior := teamRows[trendHalfSize:trendSampleSize]
		trends = append(trends, s.classify(leagueID, teamID, recent, prior))
	}

	if len(trends) == 0 {
		return calculation.Outcome{Success: true}, nil
	}

	if err := s.trendRepo.UpsertByLeague(ctx, leagueID, trends); err != nil {
		return calculation.Outcome{}, fmt.Errorf("upsert performance trends league=%s: %w", leagueID, err)
	}

	refreshCache(ctx, s.cache, s.logger, trendsCacheKey(leagueID), s.cacheTTL, trends)

	return calculation.Outcome{Success: true, RecordsProcessed: len(trends)}, nil
}

func (s *PerformanceTrendService) classify(leagueID, teamID string, recent, prior []weeklyresult.WeeklyResult) performancetrend.Trend {
	recentAvg, recentWins := halfAverages(recent)
	priorAvg, priorWins := halfAverages(prior)

	delta := recentAvg - priorAvg
	direction := performancetrend.DirectionStable
	switch {
	case delta > s.minDelta:
		direction = performancetrend.DirectionUp
	case delta < -s.minDelta:
		direction = performancetrend.DirectionDown
	case delta == s.minDelta && recentWins > priorWins:
		direction = performancetrend.DirectionUp
	case delta == -s.minDelta && recentWins < priorWins:
		direction = performancetrend.DirectionDown
	}

	strength := 0.0
	if priorAvg > 0 {
		strength = math.Abs(delta / priorAvg)
	}

	return performancetrend.Trend{
		LeagueID:        leagueID,
		TeamID:          teamID,
		Direction:       direction,
		Strength:        strength,
		SampleSize:      trendSampleSize,
		RecentAvgPoints: recentAvg,
		PriorAvgPoints:  priorAvg,
		RecentWinRatio:  recentWins,
		PriorWinRatio:   priorWins,
	}
}

func halfAverages(rows []weeklyresult.WeeklyResult) (avgPoints, winRatio float64) {
	if len(rows) == 0 {
		return 0, 0
	}

	points := 0.0
	wins := 0
	for _, row := range rows {
		points += row.PointsFor
		if row.Result == weeklyresult.ResultWin {
			wins++
		}
	}

	return points / float64(len(rows)), float64(wins) / float64(len(rows))
}
