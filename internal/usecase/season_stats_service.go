package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/statcrunch/leaguestats/internal/domain/calculation"
	"github.com/statcrunch/leaguestats/internal/domain/seasonstat"
	"github.com/statcrunch/leaguestats/internal/domain/weeklyresult"
	"github.com/statcrunch/leaguestats/internal/platform/logging"
)

// SeasonStatsService derives per-team season aggregates, including the
// win-streak state machine, from the season's weekly results.
type SeasonStatsService struct {
	resultRepo weeklyresult.Repository
	statRepo   seasonstat.Repository
	cache      ResultCache
	cacheTTL   time.Duration
	logger     *logging.Logger
}

func NewSeasonStatsService(
	resultRepo weeklyresult.Repository,
	statRepo seasonstat.Repository,
	cache ResultCache,
	cacheTTL time.Duration,
	logger *logging.Logger,
) *SeasonStatsService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonStatsService{
		resultRepo: resultRepo,
		statRepo:   statRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

func (s *SeasonStatsService) Calculate(ctx context.Context, leagueID, season string) (calculation.Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonStatsService.Calculate")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	season = strings.TrimSpace(season)
	if leagueID == "" {
		return calculation.Outcome{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if season == "" {
		return calculation.Outcome{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	rows, err := s.resultRepo.ListByLeagueSeason(ctx, leagueID, season)
	if err != nil {
		return calculation.Outcome{}, fmt.Errorf("list weekly results league=%s season=%s: %w", leagueID, season, err)
	}
	if len(rows) == 0 {
		return calculation.Outcome{Success: true}, nil
	}

	stats := reduceSeasonStatistics(leagueID, season, rows)
	if err := s.statRepo.UpsertBySeason(ctx, leagueID, season, stats); err != nil {
		return calculation.Outcome{}, fmt.Errorf("upsert season statistics league=%s season=%s: %w", leagueID, season, err)
	}

	refreshCache(ctx, s.cache, s.logger, seasonStatsCacheKey(leagueID, season), s.cacheTTL, stats)

	return calculation.Outcome{Success: true, RecordsProcessed: len(stats)}, nil
}

// CalculateAllSeasons runs Calculate for every season the league has results
// in, oldest first.
func (s *SeasonStatsService) CalculateAllSeasons(ctx context.Context, leagueID string) (calculation.Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonStatsService.CalculateAllSeasons")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return calculation.Outcome{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	rows, err := s.resultRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return calculation.Outcome{}, fmt.Errorf("list weekly results league=%s: %w", leagueID, err)
	}

	total := 0
	for _, season := range distinctSeasons(rows) {
		outcome, err := s.Calculate(ctx, leagueID, season)
		if err != nil {
			return calculation.Outcome{}, err
		}
		total += outcome.RecordsProcessed
	}

	return calculation.Outcome{Success: true, RecordsProcessed: total}, nil
}

// reduceSeasonStatistics groups rows by team and folds each team's rows in
// ascending week order. Storage order is never trusted: streak detection is
// order-dependent.
func reduceSeasonStatistics(leagueID, season string, rows []weeklyresult.WeeklyResult) []seasonstat.Statistic {
	byTeam := make(map[string][]weeklyresult.WeeklyResult)
	for _, row := range rows {
		byTeam[row.TeamID] = append(byTeam[row.TeamID], row)
	}

	teamIDs := make([]string, 0, len(byTeam))
	for teamID := range byTeam {
		teamIDs = append(teamIDs, teamID)
	}
	sort.Strings(teamIDs)

	out := make([]seasonstat.Statistic, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		teamRows := byTeam[teamID]
		sort.SliceStable(teamRows, func(i, j int) bool {
			return teamRows[i].Week < teamRows[j].Week
		})
		out = append(out, reduceTeamSeason(leagueID, season, teamID, teamRows))
	}

	return out
}

func reduceTeamSeason(leagueID, season, teamID string, rows []weeklyresult.WeeklyResult) seasonstat.Statistic {
	st := seasonstat.Statistic{
		LeagueID: leagueID,
		Season:   season,
		TeamID:   teamID,
	}

	for _, row := range rows {
		st.PointsFor += row.PointsFor
		st.PointsAgainst += row.PointsAgainst
		st.TotalMargin += row.MarginOfVictory
		if row.MarginOfVictory > st.LargestMargin {
			st.LargestMargin = row.MarginOfVictory
		}

		switch row.Result {
		case weeklyresult.ResultWin:
			st.Wins++
			if st.CurrentStreakType == weeklyresult.ResultWin {
				st.CurrentStreakCount++
			} else {
				st.CurrentStreakType = weeklyresult.ResultWin
				st.CurrentStreakCount = 1
			}
			if st.CurrentStreakCount > st.LongestWinStreak {
				st.LongestWinStreak = st.CurrentStreakCount
			}
		case weeklyresult.ResultLoss:
			st.Losses++
			st.CurrentStreakType = weeklyresult.ResultLoss
			st.CurrentStreakCount = 1
		case weeklyresult.ResultTie:
			// A tie breaks a win streak without counting toward it.
			st.Ties++
			st.CurrentStreakType = weeklyresult.ResultTie
			st.CurrentStreakCount = 1
		}
	}

	if len(rows) > 0 {
		st.AverageMargin = st.TotalMargin / float64(len(rows))
	}

	return st
}

func distinctSeasons(rows []weeklyresult.WeeklyResult) []string {
	seen := make(map[string]struct{}, 4)
	out := make([]string, 0, 4)
	for _, row := range rows {
		if _, ok := seen[row.Season]; ok {
			continue
		}
		seen[row.Season] = struct{}{}
		out = append(out, row.Season)
	}
	sort.Strings(out)
	return out
}
