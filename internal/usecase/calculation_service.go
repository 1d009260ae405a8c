package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"
	"github.com/statcrunch/leaguestats/internal/domain/calculation"
	"github.com/statcrunch/leaguestats/internal/platform/logging"
)

// CalculationService dispatches a calculation request to the matching
// function. ALL runs every aggregate: season statistics first because the
// all-time scan reads its output, then the independent aggregates in
// parallel.
type CalculationService struct {
	seasonStats   *SeasonStatsService
	headToHead    *HeadToHeadService
	allTime       *AllTimeRecordsService
	trends        *PerformanceTrendService
	championships *ChampionshipService
	logger        *logging.Logger
}

func NewCalculationService(
	seasonStats *SeasonStatsService,
	headToHead *HeadToHeadService,
	allTime *AllTimeRecordsService,
	trends *PerformanceTrendService,
	championships *ChampionshipService,
	logger *logging.Logger,
) *CalculationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CalculationService{
		seasonStats:   seasonStats,
		headToHead:    headToHead,
		allTime:       allTime,
		trends:        trends,
		championships: championships,
		logger:        logger,
	}
}

func (s *CalculationService) Run(ctx context.Context, req calculation.Request) (calculation.Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalculationService.Run")
	defer span.End()

	leagueID := strings.TrimSpace(req.LeagueID)
	if leagueID == "" {
		return calculation.Outcome{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	switch req.Type {
	case calculation.TypeSeason:
		if season := strings.TrimSpace(req.Season); season != "" {
			return s.seasonStats.Calculate(ctx, leagueID, season)
		}
		return s.seasonStats.CalculateAllSeasons(ctx, leagueID)
	case calculation.TypeHeadToHead:
		return s.headToHead.Calculate(ctx, leagueID)
	case calculation.TypeAllTime:
		return s.allTime.Calculate(ctx, leagueID)
	case calculation.TypeTrends:
		return s.trends.Calculate(ctx, leagueID)
	case calculation.TypeChampionship:
		return s.championships.Calculate(ctx, leagueID)
	case calculation.TypeAll:
		return s.runAll(ctx, leagueID)
	default:
		return calculation.Outcome{}, fmt.Errorf("%w: unknown calculation type %q", ErrInvalidInput, req.Type)
	}
}

func (s *CalculationService) runAll(ctx context.Context, leagueID string) (calculation.Outcome, error) {
	seasonOutcome, err := s.seasonStats.CalculateAllSeasons(ctx, leagueID)
	if err != nil {
		return calculation.Outcome{}, err
	}

	var processed atomic.Int64
	processed.Add(int64(seasonOutcome.RecordsProcessed))

	steps := []func(context.Context, string) (calculation.Outcome, error){
		s.headToHead.Calculate,
		s.allTime.Calculate,
		s.trends.Calculate,
		s.championships.Calculate,
	}

	workers := pool.New().WithErrors().WithContext(ctx)
	for _, step := range steps {
		step := step
		workers.Go(func(ctx context.Context) error {
			outcome, err := step(ctx, leagueID)
			if err != nil {
				return err
			}
			processed.Add(int64(outcome.RecordsProcessed))
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return calculation.Outcome{}, err
	}

	return calculation.Outcome{Success: true, RecordsProcessed: int(processed.Load())}, nil
}
