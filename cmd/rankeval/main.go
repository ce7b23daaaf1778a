package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/qrels/pg"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/report"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/spec"
	"github.com/DjordjeVuckovic/rankeval/internal/tracking"
	"github.com/DjordjeVuckovic/rankeval/pkg/config/env"
)

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("Invalid arguments", "error", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := env.LoadDotEnv(os.Getenv("APP_ENV"), "cmd/rankeval/.env"); err != nil {
		slog.Debug("Skipping .env ...", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Evaluation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliConfig) error {
	runCfg, err := cfg.runnerConfig()
	if err != nil {
		return err
	}

	var evalSpec *spec.EvalSpec
	if cfg.SpecPath != "" {
		if evalSpec, err = spec.LoadFromFile(cfg.SpecPath); err != nil {
			return err
		}
	}

	trackCfg := tracking.LoadConfig()
	if evalSpec != nil {
		trackCfg = evalSpec.ApplyTracking(trackCfg)
	}

	e := &evaluator{newTracker: singleRun(trackCfg), now: time.Now}
	if evalSpec != nil {
		e.newTracker = tracking.PerRun(trackCfg)
	}

	pgConn := cfg.PgConnStr
	if pgConn == "" && evalSpec != nil && evalSpec.Postgres != nil {
		pgConn = evalSpec.Postgres.URL
	}
	if pgConn != "" {
		pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: pgConn})
		if err != nil {
			return err
		}
		defer pool.Close()
		e.pg = pg.NewSource(pool)
	}

	if evalSpec != nil {
		reports, err := e.evaluateSpec(ctx, evalSpec, runCfg, cfg.Output)
		if err != nil {
			return err
		}
		for _, r := range reports {
			present(r, cfg.Plot)
		}
		report.Compare(reports, os.Stdout)
		return nil
	}

	name := cfg.RunName
	if name == "" {
		name = "default"
	}
	r, err := e.evaluate(ctx, runInput{
		name:        name,
		results:     cfg.ResultsPath,
		groundTruth: cfg.GroundTruthPath,
		pgRun:       pgRunName(cfg),
		collection:  cfg.Collection,
	}, runCfg)
	if err != nil {
		return err
	}

	present(r, cfg.Plot)
	if cfg.Output != "" {
		if err := report.Write(r, cfg.Output); err != nil {
			return err
		}
		slog.Info("Report written", "path", cfg.Output)
	}
	return nil
}

// singleRun builds the tracker of a lone evaluation, which may log into a fixed MLFLOW_RUN_ID.
func singleRun(cfg tracking.Config) tracking.Factory {
	return func(ctx context.Context, name string) (tracking.Tracker, error) {
		c := cfg
		c.RunName = name
		return tracking.New(ctx, c)
	}
}

func pgRunName(cfg cliConfig) string {
	if cfg.PgConnStr == "" {
		return ""
	}
	return cfg.RunName
}

func present(r *report.Report, plot bool) {
	report.WriteTable(r, os.Stdout)
	if plot {
		report.PlotCurves(r, os.Stdout)
	}
}
