package workqueue

import (
	"container/heap"
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"github.com/statcrunch/leaguestats/internal/domain/calculation"
	"github.com/statcrunch/leaguestats/internal/platform/id"
	"github.com/statcrunch/leaguestats/internal/platform/logging"
)

const defaultWorkerCount = 4

var ErrClosed = crerr.New("work queue is closed")

// Runner executes one calculation request; the queue stays ignorant of what
// a calculation actually does.
type Runner interface {
	Run(ctx context.Context, req calculation.Request) (calculation.Outcome, error)
}

// Queue accepts calculation requests, orders them by priority, and hands
// them to a bounded worker pool. Enqueue never blocks on worker
// availability: a dispatcher goroutine absorbs the blocking submit.
//
// There is no cancellation once a worker has begun executing; closing the
// queue abandons still-queued jobs and waits for in-flight ones.
type Queue struct {
	runner   Runner
	pool     *ants.Pool
	logger   *logging.Logger
	idGen    id.Generator
	validate *validator.Validate
	now      func() time.Time

	mu      sync.Mutex
	pending pendingHeap
	jobs    map[string]*calculation.Job
	seq     uint64
	closed  bool

	wake     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	inflight sync.WaitGroup
}

func New(runner Runner, workers int, logger *logging.Logger) (*Queue, error) {
	if runner == nil {
		return nil, crerr.New("runner is required")
	}
	if workers <= 0 {
		workers = defaultWorkerCount
	}
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, crerr.Wrap(err, "create worker pool")
	}

	q := &Queue{
		runner:   runner,
		pool:     pool,
		logger:   logger,
		idGen:    id.NewRandomGenerator(),
		validate: validator.New(),
		now:      time.Now,
		jobs:     make(map[string]*calculation.Job),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	go q.dispatch()

	return q, nil
}

// Enqueue registers the request and returns its job id without waiting for
// a worker. ALL requests outrank single-type requests.
func (q *Queue) Enqueue(_ context.Context, req calculation.Request) (string, error) {
	if err := q.validate.Struct(req); err != nil {
		return "", crerr.Wrap(err, "validate calculation request")
	}

	jobID, err := q.idGen.NewID()
	if err != nil {
		return "", crerr.Wrap(err, "generate job id")
	}

	job := &calculation.Job{
		ID:         jobID,
		LeagueID:   req.LeagueID,
		Type:       req.Type,
		Season:     req.Season,
		Priority:   req.Priority(),
		State:      calculation.StateQueued,
		EnqueuedAt: q.now().UTC(),
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return "", ErrClosed
	}
	q.jobs[jobID] = job
	q.seq++
	heap.Push(&q.pending, pendingJob{job: job, seq: q.seq})
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}

	return jobID, nil
}

// Progress returns a snapshot of the job, or nil for an unknown id.
func (q *Queue) Progress(jobID string) *calculation.Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	job, ok := q.jobs[jobID]
	if !ok {
		return nil
	}
	snapshot := *job
	return &snapshot
}

// Close stops accepting and dispatching jobs, waits for in-flight jobs
// until ctx expires, then releases the worker pool. Safe to call more than
// once.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.stopOnce.Do(func() { close(q.stop) })

	drained := make(chan struct{})
	go func() {
		q.inflight.Wait()
		close(drained)
	}()

	var err error
	select {
	case <-drained:
	case <-ctx.Done():
		err = crerr.Wrap(ctx.Err(), "wait for in-flight jobs")
	}

	q.pool.Release()
	return err
}

func (q *Queue) dispatch() {
	for {
		q.mu.Lock()
		for q.pending.Len() == 0 {
			q.mu.Unlock()
			select {
			case <-q.wake:
			case <-q.stop:
				return
			}
			q.mu.Lock()
		}
		item := heap.Pop(&q.pending).(pendingJob)
		q.mu.Unlock()

		select {
		case <-q.stop:
			return
		default:
		}

		job := item.job
		q.inflight.Add(1)
		// Submit blocks when every worker is busy; only the dispatcher
		// waits, callers of Enqueue never do.
		if err := q.pool.Submit(func() {
			defer q.inflight.Done()
			q.execute(job)
		}); err != nil {
			q.inflight.Done()
			q.finishFailed(job, crerr.Wrap(err, "submit job to worker pool"))
		}
	}
}

func (q *Queue) execute(job *calculation.Job) {
	q.mu.Lock()
	job.State = calculation.StateActive
	job.StartedAt = q.now().UTC()
	req := calculation.Request{
		LeagueID: job.LeagueID,
		Type:     job.Type,
		Season:   job.Season,
	}
	q.mu.Unlock()

	// Jobs run to completion even during shutdown; cancellation only ever
	// removes still-queued work.
	ctx := context.Background()
	outcome, err := q.runner.Run(ctx, req)
	if err != nil {
		q.finishFailed(job, err)
		return
	}

	q.mu.Lock()
	job.State = calculation.StateCompleted
	job.Progress = 100
	job.ReturnValue = &outcome
	job.FinishedAt = q.now().UTC()
	q.mu.Unlock()

	q.logger.Info("calculation job completed",
		"job_id", job.ID,
		"league_id", job.LeagueID,
		"calculation_type", job.Type,
		"records_processed", outcome.RecordsProcessed,
	)
}

func (q *Queue) finishFailed(job *calculation.Job, err error) {
	q.mu.Lock()
	job.State = calculation.StateFailed
	job.FailedReason = err.Error()
	job.FinishedAt = q.now().UTC()
	q.mu.Unlock()

	q.logger.Error("calculation job failed",
		"job_id", job.ID,
		"league_id", job.LeagueID,
		"calculation_type", job.Type,
		"error", err,
	)
}

type pendingJob struct {
	job *calculation.Job
	seq uint64
}

// pendingHeap orders by priority (lower first), then FIFO within a
// priority.
type pendingHeap []pendingJob

func (h pendingHeap) Len() int { return len(h) }

func (h pendingHeap) Less(i, j int) bool {
	if h[i].job.Priority != h[j].job.Priority {
		return h[i].job.Priority < h[j].job.Priority
	}
	return h[i].seq < h[j].seq
}

func (h pendingHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *pendingHeap) Push(x any) { *h = append(*h, x.(pendingJob)) }

func (h *pendingHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
