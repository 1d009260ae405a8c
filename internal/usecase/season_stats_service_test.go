package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/statcrunch/leaguestats/internal/domain/seasonstat"
	"github.com/statcrunch/leaguestats/internal/domain/weeklyresult"
	"github.com/statcrunch/leaguestats/internal/platform/logging"
)

func newSeasonStatsService(resultRepo *stubResultRepo, statRepo *stubStatRepo, cache ResultCache) *SeasonStatsService {
	return NewSeasonStatsService(resultRepo, statRepo, cache, 0, logging.NewNop())
}

func findStat(t *testing.T, stats []seasonstat.Statistic, teamID string) seasonstat.Statistic {
	t.Helper()
	for _, st := range stats {
		if st.TeamID == teamID {
			return st
		}
	}
	t.Fatalf("no statistic for team %s", teamID)
	return seasonstat.Statistic{}
}

func TestSeasonStatsCalculate_StreakMachine(t *testing.T) {
	t.Parallel()

	resultRepo := &stubResultRepo{rows: []weeklyresult.WeeklyResult{
		gameRow("lg", "2024", 1, "ants", "bears", 100, 90),
		gameRow("lg", "2024", 2, "ants", "cobras", 110, 80),
		gameRow("lg", "2024", 3, "ants", "drakes", 95, 94),
		gameRow("lg", "2024", 4, "ants", "bears", 70, 120),
	}}
	statRepo := &stubStatRepo{}

	svc := newSeasonStatsService(resultRepo, statRepo, nil)
	outcome, err := svc.Calculate(context.Background(), "lg", "2024")
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if !outcome.Success || outcome.RecordsProcessed != 1 {
		t.Fatalf("outcome = %+v, want success with 1 record", outcome)
	}

	st := findStat(t, statRepo.upserts["lg|2024"], "ants")
	if st.Wins != 3 || st.Losses != 1 || st.Ties != 0 {
		t.Errorf("W-L-T = %d-%d-%d, want 3-1-0", st.Wins, st.Losses, st.Ties)
	}
	if st.LongestWinStreak != 3 {
		t.Errorf("LongestWinStreak = %d, want 3", st.LongestWinStreak)
	}
	if st.CurrentStreakType != weeklyresult.ResultLoss || st.CurrentStreakCount != 1 {
		t.Errorf("current streak = %s x%d, want LOSS x1", st.CurrentStreakType, st.CurrentStreakCount)
	}
	if st.PointsFor != 375 || st.PointsAgainst != 384 {
		t.Errorf("points = %.1f/%.1f, want 375/384", st.PointsFor, st.PointsAgainst)
	}
}

func TestSeasonStatsCalculate_TieBreaksWinStreakWithoutExtending(t *testing.T) {
	t.Parallel()

	resultRepo := &stubResultRepo{rows: []weeklyresult.WeeklyResult{
		gameRow("lg", "2024", 1, "ants", "bears", 100, 90),
		gameRow("lg", "2024", 2, "ants", "cobras", 100, 90),
		gameRow("lg", "2024", 3, "ants", "drakes", 95, 95),
		gameRow("lg", "2024", 4, "ants", "bears", 100, 90),
		gameRow("lg", "2024", 5, "ants", "cobras", 100, 90),
		gameRow("lg", "2024", 6, "ants", "drakes", 100, 90),
	}}
	statRepo := &stubStatRepo{}

	svc := newSeasonStatsService(resultRepo, statRepo, nil)
	if _, err := svc.Calculate(context.Background(), "lg", "2024"); err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	st := findStat(t, statRepo.upserts["lg|2024"], "ants")
	if st.Ties != 1 {
		t.Errorf("Ties = %d, want 1", st.Ties)
	}
	if st.LongestWinStreak != 3 {
		t.Errorf("LongestWinStreak = %d, want 3 (tie must reset, not extend)", st.LongestWinStreak)
	}
	if st.CurrentStreakType != weeklyresult.ResultWin || st.CurrentStreakCount != 3 {
		t.Errorf("current streak = %s x%d, want WIN x3", st.CurrentStreakType, st.CurrentStreakCount)
	}
}

func TestSeasonStatsCalculate_MarginAggregates(t *testing.T) {
	t.Parallel()

	resultRepo := &stubResultRepo{rows: []weeklyresult.WeeklyResult{
		gameRow("lg", "2024", 1, "ants", "bears", 110, 90),
		gameRow("lg", "2024", 2, "ants", "cobras", 105, 100),
	}}
	statRepo := &stubStatRepo{}

	svc := newSeasonStatsService(resultRepo, statRepo, nil)
	if _, err := svc.Calculate(context.Background(), "lg", "2024"); err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	st := findStat(t, statRepo.upserts["lg|2024"], "ants")
	if st.TotalMargin != 25 {
		t.Errorf("TotalMargin = %.1f, want 25", st.TotalMargin)
	}
	if st.AverageMargin != 12.5 {
		t.Errorf("AverageMargin = %.1f, want 12.5", st.AverageMargin)
	}
	if st.LargestMargin != 20 {
		t.Errorf("LargestMargin = %.1f, want 20", st.LargestMargin)
	}
}

func TestSeasonStatsCalculate_EmptySeasonSucceedsWithoutUpsert(t *testing.T) {
	t.Parallel()

	statRepo := &stubStatRepo{}
	svc := newSeasonStatsService(&stubResultRepo{}, statRepo, nil)

	outcome, err := svc.Calculate(context.Background(), "lg", "1999")
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if !outcome.Success || outcome.RecordsProcessed != 0 {
		t.Fatalf("outcome = %+v, want success with 0 records", outcome)
	}
	if len(statRepo.upserts) != 0 {
		t.Fatalf("upserts = %d, want none for empty season", len(statRepo.upserts))
	}
}

func TestSeasonStatsCalculate_ValidatesInput(t *testing.T) {
	t.Parallel()

	svc := newSeasonStatsService(&stubResultRepo{}, &stubStatRepo{}, nil)

	if _, err := svc.Calculate(context.Background(), " ", "2024"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing league id: err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Calculate(context.Background(), "lg", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing season: err = %v, want ErrInvalidInput", err)
	}
}

func TestSeasonStatsCalculate_StoreFailurePropagates(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection reset")
	resultRepo := &stubResultRepo{rows: []weeklyresult.WeeklyResult{
		gameRow("lg", "2024", 1, "ants", "bears", 100, 90),
	}}
	svc := newSeasonStatsService(resultRepo, &stubStatRepo{err: storeErr}, nil)

	if _, err := svc.Calculate(context.Background(), "lg", "2024"); !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}
}

func TestSeasonStatsCalculate_CacheFailureDoesNotFailCalculation(t *testing.T) {
	t.Parallel()

	resultRepo := &stubResultRepo{rows: []weeklyresult.WeeklyResult{
		gameRow("lg", "2024", 1, "ants", "bears", 100, 90),
	}}
	cache := &stubCache{err: errors.New("cache down")}

	svc := newSeasonStatsService(resultRepo, &stubStatRepo{}, cache)
	outcome, err := svc.Calculate(context.Background(), "lg", "2024")
	if err != nil {
		t.Fatalf("Calculate() error = %v, cache failures must be swallowed", err)
	}
	if !outcome.Success {
		t.Fatalf("outcome = %+v, want success despite cache failure", outcome)
	}
}

func TestSeasonStatsCalculate_RefreshesCacheKey(t *testing.T) {
	t.Parallel()

	resultRepo := &stubResultRepo{rows: []weeklyresult.WeeklyResult{
		gameRow("lg", "2024", 1, "ants", "bears", 100, 90),
	}}
	cache := &stubCache{}

	svc := newSeasonStatsService(resultRepo, &stubStatRepo{}, cache)
	if _, err := svc.Calculate(context.Background(), "lg", "2024"); err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if !cache.has("stats:lg:season:2024") {
		t.Fatal("expected cache entry under stats:lg:season:2024")
	}
}

func TestSeasonStatsCalculateAllSeasons(t *testing.T) {
	t.Parallel()

	resultRepo := &stubResultRepo{rows: []weeklyresult.WeeklyResult{
		gameRow("lg", "2023", 1, "ants", "bears", 100, 90),
		gameRow("lg", "2023", 1, "bears", "ants", 90, 100),
		gameRow("lg", "2024", 1, "ants", "bears", 80, 95),
	}}
	statRepo := &stubStatRepo{}

	svc := newSeasonStatsService(resultRepo, statRepo, nil)
	outcome, err := svc.CalculateAllSeasons(context.Background(), "lg")
	if err != nil {
		t.Fatalf("CalculateAllSeasons() error = %v", err)
	}
	// 2023 has two teams, 2024 only one row.
	if outcome.RecordsProcessed != 3 {
		t.Fatalf("RecordsProcessed = %d, want 3", outcome.RecordsProcessed)
	}
	if len(statRepo.upserts) != 2 {
		t.Fatalf("seasons upserted = %d, want 2", len(statRepo.upserts))
	}
}
