package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/statcrunch/leaguestats/internal/domain/calculation"
	"github.com/statcrunch/leaguestats/internal/domain/championship"
	"github.com/statcrunch/leaguestats/internal/domain/weeklyresult"
	"github.com/statcrunch/leaguestats/internal/platform/logging"
)

// ChampionshipService resolves each season's championship game from the two
// championship-flagged rows. Seasons with any other number of flagged rows
// are malformed upstream data and are skipped, not failed.
type ChampionshipService struct {
	resultRepo weeklyresult.Repository
	champRepo  championship.Repository
	cache      ResultCache
	cacheTTL   time.Duration
	logger     *logging.Logger
}

func NewChampionshipService(
	resultRepo weeklyresult.Repository,
	champRepo championship.Repository,
	cache ResultCache,
	cacheTTL time.Duration,
	logger *logging.Logger,
) *ChampionshipService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ChampionshipService{
		resultRepo: resultRepo,
		champRepo:  champRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

func (s *ChampionshipService) Calculate(ctx context.Context, leagueID string) (calculation.Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.Calculate")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return calculation.Outcome{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	rows, err := s.resultRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return calculation.Outcome{}, fmt.Errorf("list weekly results league=%s: %w", leagueID, err)
	}

	bySeason := make(map[string][]weeklyresult.WeeklyResult)
	for _, row := range rows {
		if !row.IsChampionship {
			continue
		}
		bySeason[row.Season] = append(bySeason[row.Season], row)
	}

	seasons := make([]string, 0, len(bySeason))
	for season := range bySeason {
		seasons = append(seasons, season)
	}
	sort.Strings(seasons)

	records := make([]championship.Record, 0, len(seasons))
	for _, season := range seasons {
		game := bySeason[season]
		if len(game) != 2 {
			s.logger.WarnContext(ctx, "championship game malformed, skipping season",
				"league_id", leagueID,
				"season", season,
				"flagged_rows", len(game),
			)
			continue
		}

		champ, runnerUp := game[0], game[1]
		if runnerUp.PointsFor > champ.PointsFor {
			champ, runnerUp = runnerUp, champ
		}
		if champ.PointsFor == runnerUp.PointsFor {
			s.logger.WarnContext(ctx, "championship game tied, skipping season",
				"league_id", leagueID,
				"season", season,
			)
			continue
		}

		records = append(records, championship.Record{
			LeagueID:          leagueID,
			Season:            season,
			ChampionID:        champ.TeamID,
			RunnerUpID:        runnerUp.TeamID,
			ChampionshipScore: champ.PointsFor,
			RunnerUpScore:     runnerUp.PointsFor,
		})
	}

	if len(records) == 0 {
		return calculation.Outcome{Success: true}, nil
	}

	if err := s.champRepo.UpsertByLeague(ctx, leagueID, records); err != nil {
		return calculation.Outcome{}, fmt.Errorf("upsert championship records league=%s: %w", leagueID, err)
	}

	refreshCache(ctx, s.cache, s.logger, championshipsCacheKey(leagueID), s.cacheTTL, records)

	return calculation.Outcome{Success: true, RecordsProcessed: len(records)}, nil
}
