package calculation

import "time"

type Type string

const (
	TypeAll          Type = "ALL"
	TypeSeason       Type = "SEASON"
	TypeHeadToHead   Type = "HEAD_TO_HEAD"
	TypeAllTime      Type = "ALL_TIME"
	TypeTrends       Type = "TRENDS"
	TypeChampionship Type = "CHAMPIONSHIP"
)

const (
	// PriorityFull preempts single-type jobs because a full recompute
	// unblocks every dependent aggregate.
	PriorityFull   = 1
	PrioritySingle = 10
)

// Request describes one calculation to run for one league. Season narrows
// SEASON-type requests; other types ignore it.
type Request struct {
	LeagueID string `json:"league_id" validate:"required"`
	Type     Type   `json:"calculation_type" validate:"required,oneof=ALL SEASON HEAD_TO_HEAD ALL_TIME TRENDS CHAMPIONSHIP"`
	Season   string `json:"season_id,omitempty"`
}

func (r Request) Priority() int {
	if r.Type == TypeAll {
		return PriorityFull
	}
	return PrioritySingle
}

// Outcome is the uniform result of every calculation function.
type Outcome struct {
	Success          bool `json:"success"`
	RecordsProcessed int  `json:"records_processed"`
}

type State string

const (
	StateQueued    State = "queued"
	StateActive    State = "active"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Job is the queue-managed lifecycle record for one request.
type Job struct {
	ID           string
	LeagueID     string
	Type         Type
	Season       string
	Priority     int
	State        State
	Progress     int
	ReturnValue  *Outcome
	FailedReason string
	EnqueuedAt   time.Time
	StartedAt    time.Time
	FinishedAt   time.Time
}
