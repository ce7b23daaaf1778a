package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/qrels"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/qrels/pg"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/report"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/runner"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/spec"
	"github.com/DjordjeVuckovic/rankeval/internal/tracking"
	"github.com/google/uuid"
)

// evaluator loads one run's inputs, scores them and stamps the report.
// newTracker is called once per recorded run.
type evaluator struct {
	newTracker tracking.Factory
	pg         *pg.Source
	now        func() time.Time
}

type runInput struct {
	name        string
	results     string
	groundTruth string
	pgRun       string
	collection  string
}

func (e *evaluator) load(ctx context.Context, in runInput) (qrels.Mapping, qrels.Mapping, error) {
	if in.pgRun != "" {
		if e.pg == nil {
			return nil, nil, fmt.Errorf("run %q needs a postgres connection", in.name)
		}
		results, err := e.pg.LoadResults(ctx, in.pgRun)
		if err != nil {
			return nil, nil, err
		}
		gt, err := e.pg.LoadGroundTruth(ctx, in.collection)
		if err != nil {
			return nil, nil, err
		}
		return results, gt, nil
	}

	results, err := qrels.LoadResults(in.results)
	if err != nil {
		return nil, nil, err
	}
	gt, err := qrels.LoadGroundTruth(in.groundTruth)
	if err != nil {
		return nil, nil, err
	}
	return results, gt, nil
}

func (e *evaluator) evaluate(ctx context.Context, in runInput, cfg runner.Config) (*report.Report, error) {
	results, gt, err := e.load(ctx, in)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded run", "name", in.name, "results", results.Len(), "groundtruth", gt.Len())

	var tracker tracking.Tracker = tracking.Nop{}
	if cfg.Record && e.newTracker != nil {
		if tracker, err = e.newTracker(ctx, in.name); err != nil {
			return nil, fmt.Errorf("tracker for %q: %w", in.name, err)
		}
	}
	runID := tracking.RunIDOf(tracker)
	if runID == "" {
		runID = uuid.NewString()
	}

	res, err := runner.New(cfg, runner.WithTracker(tracker)).Run(ctx, results, gt)
	if err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", in.name, err)
	}
	if res.Skipped > 0 {
		slog.Warn("Skipped queries without ground truth", "name", in.name, "count", res.Skipped)
	}

	return report.Generate(res).Stamp(in.name, runID, e.now()), nil
}

// evaluateSpec scores every run of the spec in order and writes one report per run to outDir.
func (e *evaluator) evaluateSpec(ctx context.Context, s *spec.EvalSpec, base runner.Config, outDir string) ([]*report.Report, error) {
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	reports := make([]*report.Report, 0, len(s.Runs))
	for _, run := range s.Runs {
		cfg := base
		cfg.MaxK, cfg.KRange = run.Cutoffs(s.Metrics)
		cfg.Record = base.Record || s.Tracking.Record

		in := runInput{name: run.Name, results: run.Results, groundTruth: run.GroundTruth}
		if run.Postgres != nil {
			in.pgRun = run.Postgres.Run
			in.collection = run.Postgres.Collection
		}

		r, err := e.evaluate(ctx, in, cfg)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)

		if outDir != "" {
			path := filepath.Join(outDir, run.Name+".json")
			if err := report.Write(r, path); err != nil {
				return nil, err
			}
			slog.Info("Report written", "run", run.Name, "path", path)
		}
	}
	return reports, nil
}
