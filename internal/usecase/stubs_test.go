package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/statcrunch/leaguestats/internal/domain/alltimerecord"
	"github.com/statcrunch/leaguestats/internal/domain/championship"
	"github.com/statcrunch/leaguestats/internal/domain/headtohead"
	"github.com/statcrunch/leaguestats/internal/domain/performancetrend"
	"github.com/statcrunch/leaguestats/internal/domain/seasonstat"
	"github.com/statcrunch/leaguestats/internal/domain/weeklyresult"
)

type stubResultRepo struct {
	rows []weeklyresult.WeeklyResult
	err  error
}

func (s *stubResultRepo) ListByLeague(_ context.Context, leagueID string) ([]weeklyresult.WeeklyResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]weeklyresult.WeeklyResult, 0, len(s.rows))
	for _, row := range s.rows {
		if row.LeagueID == leagueID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *stubResultRepo) ListByLeagueSeason(ctx context.Context, leagueID, season string) ([]weeklyresult.WeeklyResult, error) {
	rows, err := s.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	out := rows[:0:0]
	for _, row := range rows {
		if row.Season == season {
			out = append(out, row)
		}
	}
	return out, nil
}

type stubStatRepo struct {
	err      error
	existing []seasonstat.Statistic

	upserts map[string][]seasonstat.Statistic
}

func (s *stubStatRepo) UpsertBySeason(_ context.Context, leagueID, season string, items []seasonstat.Statistic) error {
	if s.err != nil {
		return s.err
	}
	if s.upserts == nil {
		s.upserts = make(map[string][]seasonstat.Statistic)
	}
	s.upserts[leagueID+"|"+season] = items
	return nil
}

func (s *stubStatRepo) ListByLeague(_ context.Context, leagueID string) ([]seasonstat.Statistic, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]seasonstat.Statistic, 0, len(s.existing))
	for _, st := range s.existing {
		if st.LeagueID == leagueID {
			out = append(out, st)
		}
	}
	return out, nil
}

type stubH2HRepo struct {
	err     error
	upserts [][]headtohead.Record
}

func (s *stubH2HRepo) UpsertByLeague(_ context.Context, _ string, items []headtohead.Record) error {
	if s.err != nil {
		return s.err
	}
	s.upserts = append(s.upserts, items)
	return nil
}

func (s *stubH2HRepo) ListByLeague(context.Context, string) ([]headtohead.Record, error) {
	return nil, nil
}

type stubRecordRepo struct {
	err     error
	upserts []alltimerecord.Record
}

func (s *stubRecordRepo) Upsert(_ context.Context, item alltimerecord.Record) error {
	if s.err != nil {
		return s.err
	}
	s.upserts = append(s.upserts, item)
	return nil
}

func (s *stubRecordRepo) ListByLeague(context.Context, string) ([]alltimerecord.Record, error) {
	return nil, nil
}

type stubTrendRepo struct {
	err     error
	upserts [][]performancetrend.Trend
}

func (s *stubTrendRepo) UpsertByLeague(_ context.Context, _ string, items []performancetrend.Trend) error {
	if s.err != nil {
		return s.err
	}
	s.upserts = append(s.upserts, items)
	return nil
}

func (s *stubTrendRepo) ListByLeague(context.Context, string) ([]performancetrend.Trend, error) {
	return nil, nil
}

type stubChampRepo struct {
	err     error
	upserts [][]championship.Record
}

func (s *stubChampRepo) UpsertByLeague(_ context.Context, _ string, items []championship.Record) error {
	if s.err != nil {
		return s.err
	}
	s.upserts = append(s.upserts, items)
	return nil
}

func (s *stubChampRepo) ListByLeague(context.Context, string) ([]championship.Record, error) {
	return nil, nil
}

type stubCache struct {
	err error

	mu      sync.Mutex
	entries map[string]any
}

func (s *stubCache) SetWithTTL(_ context.Context, key string, value any, _ time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[string]any)
	}
	s.entries[key] = value
	return nil
}

func (s *stubCache) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	return ok
}

func gameRow(leagueID, season string, week int, teamID, opponentID string, pf, pa float64) weeklyresult.WeeklyResult {
	result := weeklyresult.ResultTie
	switch {
	case pf > pa:
		result = weeklyresult.ResultWin
	case pf < pa:
		result = weeklyresult.ResultLoss
	}
	margin := pf - pa
	if margin < 0 {
		margin = -margin
	}
	return weeklyresult.WeeklyResult{
		LeagueID:        leagueID,
		Season:          season,
		Week:            week,
		TeamID:          teamID,
		OpponentID:      opponentID,
		PointsFor:       pf,
		PointsAgainst:   pa,
		Result:          result,
		MarginOfVictory: margin,
	}
}

// mirroredGame returns both rows of one completed matchup.
func mirroredGame(leagueID, season string, week int, home, away string, homePts, awayPts float64) []weeklyresult.WeeklyResult {
	return []weeklyresult.WeeklyResult{
		gameRow(leagueID, season, week, home, away, homePts, awayPts),
		gameRow(leagueID, season, week, away, home, awayPts, homePts),
	}
}
