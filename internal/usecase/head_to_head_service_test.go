package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/statcrunch/leaguestats/internal/domain/headtohead"
	"github.com/statcrunch/leaguestats/internal/domain/weeklyresult"
	"github.com/statcrunch/leaguestats/internal/platform/logging"
)

func newHeadToHeadService(resultRepo *stubResultRepo, h2hRepo *stubH2HRepo, cache ResultCache) *HeadToHeadService {
	return NewHeadToHeadService(resultRepo, h2hRepo, cache, 0, logging.NewNop())
}

func singleUpsert(t *testing.T, h2hRepo *stubH2HRepo) []headtohead.Record {
	t.Helper()
	if len(h2hRepo.upserts) != 1 {
		t.Fatalf("upsert calls = %d, want 1", len(h2hRepo.upserts))
	}
	return h2hRepo.upserts[0]
}

func TestHeadToHeadCalculate_MirroredRowsProduceOneRecord(t *testing.T) {
	t.Parallel()

	resultRepo := &stubResultRepo{rows: mirroredGame("lg", "2024", 1, "bravo", "alpha", 90, 100)}
	h2hRepo := &stubH2HRepo{}

	svc := newHeadToHeadService(resultRepo, h2hRepo, nil)
	outcome, err := svc.Calculate(context.Background(), "lg")
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if outcome.RecordsProcessed != 1 {
		t.Fatalf("RecordsProcessed = %d, want 1", outcome.RecordsProcessed)
	}

	records := singleUpsert(t, h2hRepo)
	if len(records) != 1 {
		t.Fatalf("records = %d, want exactly 1 for a mirrored pair", len(records))
	}

	rec := records[0]
	if rec.Team1ID != "alpha" || rec.Team2ID != "bravo" {
		t.Errorf("pair = %s/%s, want canonical alpha/bravo", rec.Team1ID, rec.Team2ID)
	}
	if rec.Team1Wins != 1 || rec.Team2Wins != 0 || rec.Ties != 0 {
		t.Errorf("tally = %d-%d-%d, want 1-0-0 from team1's perspective", rec.Team1Wins, rec.Team2Wins, rec.Ties)
	}
	if rec.Team1Points != 100 || rec.Team2Points != 90 {
		t.Errorf("points = %.1f/%.1f, want 100/90", rec.Team1Points, rec.Team2Points)
	}
}

func TestHeadToHeadCalculate_MirroredTieCountsOnce(t *testing.T) {
	t.Parallel()

	resultRepo := &stubResultRepo{rows: mirroredGame("lg", "2024", 3, "alpha", "bravo", 95, 95)}
	h2hRepo := &stubH2HRepo{}

	svc := newHeadToHeadService(resultRepo, h2hRepo, nil)
	if _, err := svc.Calculate(context.Background(), "lg"); err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	records := singleUpsert(t, h2hRepo)
	if len(records) != 1 || records[0].Ties != 1 {
		t.Fatalf("records = %+v, want one record with Ties=1", records)
	}
}

func TestHeadToHeadCalculate_LoneRowFromSecondTeamIsInverted(t *testing.T) {
	t.Parallel()

	// Only bravo's side of the game was recorded; the aggregate must still
	// be attributed from alpha's (team1's) perspective.
	resultRepo := &stubResultRepo{rows: []weeklyresult.WeeklyResult{
		gameRow("lg", "2024", 1, "bravo", "alpha", 90, 100),
	}}
	h2hRepo := &stubH2HRepo{}

	svc := newHeadToHeadService(resultRepo, h2hRepo, nil)
	if _, err := svc.Calculate(context.Background(), "lg"); err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	rec := singleUpsert(t, h2hRepo)[0]
	if rec.Team1Wins != 1 || rec.Team2Wins != 0 {
		t.Errorf("tally = %d-%d, want 1-0 (bravo's loss is alpha's win)", rec.Team1Wins, rec.Team2Wins)
	}
	if rec.Team1Points != 100 || rec.Team2Points != 90 {
		t.Errorf("points = %.1f/%.1f, want 100/90", rec.Team1Points, rec.Team2Points)
	}
}

func TestHeadToHeadCalculate_CountsPlayoffAndChampionshipGames(t *testing.T) {
	t.Parallel()

	rows := mirroredGame("lg", "2024", 14, "alpha", "bravo", 120, 100)
	for i := range rows {
		rows[i].IsPlayoff = true
	}
	final := mirroredGame("lg", "2024", 16, "alpha", "bravo", 130, 110)
	for i := range final {
		final[i].IsPlayoff = true
		final[i].IsChampionship = true
	}
	resultRepo := &stubResultRepo{rows: append(rows, final...)}
	h2hRepo := &stubH2HRepo{}

	svc := newHeadToHeadService(resultRepo, h2hRepo, nil)
	if _, err := svc.Calculate(context.Background(), "lg"); err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	rec := singleUpsert(t, h2hRepo)[0]
	if rec.PlayoffGames != 2 {
		t.Errorf("PlayoffGames = %d, want 2", rec.PlayoffGames)
	}
	if rec.ChampionshipGames != 1 {
		t.Errorf("ChampionshipGames = %d, want 1", rec.ChampionshipGames)
	}
	if rec.Team1Wins != 2 {
		t.Errorf("Team1Wins = %d, want 2", rec.Team1Wins)
	}
}

func TestHeadToHeadCalculate_SkipsSelfAndOpponentlessRows(t *testing.T) {
	t.Parallel()

	resultRepo := &stubResultRepo{rows: []weeklyresult.WeeklyResult{
		gameRow("lg", "2024", 1, "alpha", "alpha", 100, 100),
		gameRow("lg", "2024", 2, "alpha", "", 100, 90),
	}}
	h2hRepo := &stubH2HRepo{}

	svc := newHeadToHeadService(resultRepo, h2hRepo, nil)
	outcome, err := svc.Calculate(context.Background(), "lg")
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if outcome.RecordsProcessed != 0 {
		t.Fatalf("RecordsProcessed = %d, want 0", outcome.RecordsProcessed)
	}
}

func TestHeadToHeadCalculate_StoreFailurePropagates(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("deadlock detected")
	resultRepo := &stubResultRepo{rows: mirroredGame("lg", "2024", 1, "alpha", "bravo", 100, 90)}

	svc := newHeadToHeadService(resultRepo, &stubH2HRepo{err: storeErr}, nil)
	if _, err := svc.Calculate(context.Background(), "lg"); !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}
}
