package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/statcrunch/leaguestats/internal/domain/calculation"
	"github.com/statcrunch/leaguestats/internal/domain/headtohead"
	"github.com/statcrunch/leaguestats/internal/domain/weeklyresult"
	"github.com/statcrunch/leaguestats/internal/platform/logging"
)

// HeadToHeadService aggregates the all-time record between every pair of
// teams that have met. A completed game appears as two mirrored rows; the
// pair key is canonicalized so both rows land on one aggregate, and each
// physical game is counted exactly once.
type HeadToHeadService struct {
	resultRepo weeklyresult.Repository
	h2hRepo    headtohead.Repository
	cache      ResultCache
	cacheTTL   time.Duration
	logger     *logging.Logger
}

func NewHeadToHeadService(
	resultRepo weeklyresult.Repository,
	h2hRepo headtohead.Repository,
	cache ResultCache,
	cacheTTL time.Duration,
	logger *logging.Logger,
) *HeadToHeadService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &HeadToHeadService{
		resultRepo: resultRepo,
		h2hRepo:    h2hRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

func (s *HeadToHeadService) Calculate(ctx context.Context, leagueID string) (calculation.Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HeadToHeadService.Calculate")
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

	records := reduceHeadToHead(leagueID, rows)
	if err := s.h2hRepo.UpsertByLeague(ctx, leagueID, records); err != nil {
		return calculation.Outcome{}, fmt.Errorf("upsert head-to-head records league=%s: %w", leagueID, err)
	}

	refreshCache(ctx, s.cache, s.logger, headToHeadCacheKey(leagueID), s.cacheTTL, records)

	return calculation.Outcome{Success: true, RecordsProcessed: len(records)}, nil
}

func reduceHeadToHead(leagueID string, rows []weeklyresult.WeeklyResult) []headtohead.Record {
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

	byPair := make(map[string]*headtohead.Record)
	seenGames := make(map[string]struct{}, len(sorted)/2+1)

	for _, row := range sorted {
		if row.OpponentID == "" || row.TeamID == row.OpponentID {
			continue
		}

		team1, team2, swapped := headtohead.CanonicalPair(row.TeamID, row.OpponentID)
		gameKey := fmt.Sprintf("%s|%s|%s|%d", team1, team2, row.Season, row.Week)
		if _, ok := seenGames[gameKey]; ok {
			// Mirror of a game already counted.
			continue
		}
		seenGames[gameKey] = struct{}{}

		pairKey := team1 + "|" + team2
		rec, ok := byPair[pairKey]
		if !ok {
			rec = &headtohead.Record{
				LeagueID: leagueID,
				Team1ID:  team1,
				Team2ID:  team2,
			}
			byPair[pairKey] = rec
		}

		// Attribute the row from team1's perspective regardless of which
		// side recorded it.
		team1Points, team2Points := row.PointsFor, row.PointsAgainst
		result := row.Result
		if swapped {
			team1Points, team2Points = team2Points, team1Points
			result = invertResult(result)
		}

		rec.Team1Points += team1Points
		rec.Team2Points += team2Points
		switch result {
		case weeklyresult.ResultWin:
			rec.Team1Wins++
		case weeklyresult.ResultLoss:
			rec.Team2Wins++
		case weeklyresult.ResultTie:
			rec.Ties++
		}
		if row.IsPlayoff {
			rec.PlayoffGames++
		}
		if row.IsChampionship {
			rec.ChampionshipGames++
		}
	}

	pairKeys := make([]string, 0, len(byPair))
	for key := range byPair {
		pairKeys = append(pairKeys, key)
	}
	sort.Strings(pairKeys)

	out := make([]headtohead.Record, 0, len(pairKeys))
	for _, key := range pairKeys {
		out = append(out, *byPair[key])
	}
	return out
}

func invertResult(r weeklyresult.Result) weeklyresult.Result {
	switch r {
	case weeklyresult.ResultWin:
		return weeklyresult.ResultLoss
	case weeklyresult.ResultLoss:
		return weeklyresult.ResultWin
	default:
		return r
	}
}
