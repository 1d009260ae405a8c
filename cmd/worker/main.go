package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/statcrunch/leaguestats/internal/app"
	"github.com/statcrunch/leaguestats/internal/config"
	"github.com/statcrunch/leaguestats/internal/domain/calculation"
	"github.com/statcrunch/leaguestats/internal/observability"
	"github.com/statcrunch/leaguestats/internal/platform/logging"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)

	uptraceShutdown, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	pyroscopeStop, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := app.NewEngine(ctx, cfg, logger)
	if err != nil {
		logger.Error("build engine", "error", err)
		os.Exit(1)
	}

	enqueueBootLeagues(ctx, engine, logger)

	logger.Info("worker running",
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"workers", cfg.WorkerCount,
	)
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	exitCode := 0
	if err := engine.Shutdown(shutdownCtx); err != nil {
		logger.Error("engine shutdown failed", "error", err)
		exitCode = 1
	}
	if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
		logger.Error("pprof shutdown failed", "error", err)
	}
	if err := pyroscopeStop(); err != nil {
		logger.Error("pyroscope shutdown failed", "error", err)
	}
	if err := uptraceShutdown(shutdownCtx); err != nil {
		logger.Error("uptrace shutdown failed", "error", err)
	}

	logger.Info("worker stopped")
	os.Exit(exitCode)
}

// enqueueBootLeagues schedules a full recalculation for every league named
// in RECALC_LEAGUES (comma separated). Useful for cron-style deployments
// where the worker is started, does its passes, and is signalled away.
func enqueueBootLeagues(ctx context.Context, engine *app.Engine, logger *logging.Logger) {
	raw := strings.TrimSpace(os.Getenv("RECALC_LEAGUES"))
	if raw == "" {
		return
	}

	for _, leagueID := range strings.Split(raw, ",") {
		leagueID = strings.TrimSpace(leagueID)
		if leagueID == "" {
			continue
		}
		jobID, err := engine.QueueCalculation(ctx, calculation.Request{
			LeagueID: leagueID,
			Type:     calculation.TypeAll,
		})
		if err != nil {
			logger.Error("enqueue boot recalculation", "league_id", leagueID, "error", err)
			continue
		}
		logger.Info("boot recalculation queued", "league_id", leagueID, "job_id", jobID)
	}
}
