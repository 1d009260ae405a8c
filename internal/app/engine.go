package app

import (
	"context"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/statcrunch/leaguestats/internal/config"
	"github.com/statcrunch/leaguestats/internal/domain/alltimerecord"
	"github.com/statcrunch/leaguestats/internal/domain/calculation"
	"github.com/statcrunch/leaguestats/internal/domain/championship"
	"github.com/statcrunch/leaguestats/internal/domain/headtohead"
	"github.com/statcrunch/leaguestats/internal/domain/performancetrend"
	"github.com/statcrunch/leaguestats/internal/domain/seasonstat"
	"github.com/statcrunch/leaguestats/internal/domain/weeklyresult"
	"github.com/statcrunch/leaguestats/internal/infrastructure/repository/memory"
	"github.com/statcrunch/leaguestats/internal/infrastructure/repository/postgres"
	"github.com/statcrunch/leaguestats/internal/infrastructure/workqueue"
	"github.com/statcrunch/leaguestats/internal/platform/cache"
	"github.com/statcrunch/leaguestats/internal/platform/logging"
	"github.com/statcrunch/leaguestats/internal/usecase"
)

// Engine ties the repositories, calculation services, result cache and the
// work queue together behind a small facade. All dependencies are owned by
// the engine and released exactly once during Shutdown, in reverse order of
// acquisition: queue first (so no job runs against closed resources), then
// cache, then the database pool.
type Engine struct {
	logger *logging.Logger
	queue  *workqueue.Queue
	cache  *cache.Store
	db     *sqlx.DB

	shutdownOnce sync.Once
	shutdownErr  error
}

type repositories struct {
	results       weeklyresult.Repository
	seasonStats   seasonstat.Repository
	headToHead    headtohead.Repository
	allTime       alltimerecord.Repository
	trends        performancetrend.Repository
	championships championship.Repository
}

func NewEngine(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Engine, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		db    *sqlx.DB
		repos repositories
		err   error
	)
	if cfg.DBURL != "" {
		db, err = openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repos = repositories{
			results:       postgres.NewWeeklyResultRepository(db),
			seasonStats:   postgres.NewSeasonStatRepository(db),
			headToHead:    postgres.NewHeadToHeadRepository(db),
			allTime:       postgres.NewAllTimeRecordRepository(db),
			trends:        postgres.NewPerformanceTrendRepository(db),
			championships: postgres.NewChampionshipRepository(db),
		}
		logger.Info("storage ready", "driver", "postgres", "database", dbNameFromURL(cfg.DBURL))
	} else {
		repos = repositories{
			results:       memory.NewWeeklyResultRepository(memory.SeedWeeklyResults()),
			seasonStats:   memory.NewSeasonStatRepository(),
			headToHead:    memory.NewHeadToHeadRepository(),
			allTime:       memory.NewAllTimeRecordRepository(),
			trends:        memory.NewPerformanceTrendRepository(),
			championships: memory.NewChampionshipRepository(),
		}
		logger.Info("storage ready", "driver", "memory", "reason", "DB_URL empty")
	}

	var store *cache.Store
	var resultCache usecase.ResultCache
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
		resultCache = store
	} else {
		logger.Info("result cache disabled", "reason", "CACHE_ENABLED=false")
	}

	seasonSvc := usecase.NewSeasonStatsService(repos.results, repos.seasonStats, resultCache, cfg.CacheTTL, logger)
	h2hSvc := usecase.NewHeadToHeadService(repos.results, repos.headToHead, resultCache, cfg.CacheTTL, logger)
	allTimeSvc := usecase.NewAllTimeRecordsService(repos.results, repos.seasonStats, repos.allTime, resultCache, cfg.CacheTTL, logger)
	trendSvc := usecase.NewPerformanceTrendService(repos.results, repos.trends, resultCache, cfg.CacheTTL, cfg.TrendMinDelta, logger)
	champSvc := usecase.NewChampionshipService(repos.results, repos.championships, resultCache, cfg.CacheTTL, logger)

	calcSvc := usecase.NewCalculationService(seasonSvc, h2hSvc, allTimeSvc, trendSvc, champSvc, logger)

	queue, err := workqueue.New(calcSvc, cfg.WorkerCount, logger)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	return &Engine{
		logger: logger,
		queue:  queue,
		cache:  store,
		db:     db,
	}, nil
}

// QueueCalculation submits a calculation request and returns its job id.
func (e *Engine) QueueCalculation(ctx context.Context, req calculation.Request) (string, error) {
	return e.queue.Enqueue(ctx, req)
}

// GetProgress reports the current state of a job, or nil when the id is
// not known.
func (e *Engine) GetProgress(jobID string) *calculation.Job {
	return e.queue.Progress(jobID)
}

// Shutdown drains the queue and releases every owned resource. It is safe
// to call more than once; later calls return the first result.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.shutdownOnce.Do(func() {
		var errs []error

		if err := e.queue.Close(ctx); err != nil {
			errs = append(errs, crerr.Wrap(err, "close work queue"))
		}
		if e.cache != nil {
			if err := e.cache.Close(); err != nil {
				errs = append(errs, crerr.Wrap(err, "close result cache"))
			}
		}
		if e.db != nil {
			if err := e.db.Close(); err != nil {
				errs = append(errs, crerr.Wrap(err, "close database"))
			}
		}

		for _, err := range errs {
			e.shutdownErr = crerr.CombineErrors(e.shutdownErr, err)
		}
		if e.shutdownErr == nil {
			e.logger.Info("engine shut down cleanly")
		}
	})
	return e.shutdownErr
}
