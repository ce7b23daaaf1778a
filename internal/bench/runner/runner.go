package runner

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rankeval/internal/tracking"
	"golang.org/x/sync/errgroup"
)

// Scalar names reported to the tracker at the final cutoff.
const (
	MetricMAP       = "mean_avg_precision"
	MetricPrecision = "prec_k"
	MetricRecall    = "recall_k"
	MetricF1        = "f1_k"
)

type Runner struct {
	config  Config
	tracker tracking.Tracker
}

type Option func(*Runner)

func WithTracker(t tracking.Tracker) Option {
	return func(r *Runner) {
		r.tracker = t
	}
}

func New(cfg Config, opts ...Option) *Runner {
	r := &Runner{config: cfg, tracker: tracking.Nop{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run scores every query present in both results and groundtruth and aggregates the
// system-wide series. Queries missing from groundtruth are skipped.
//
// Per-query scoring runs on up to Config.Workers goroutines. The reduction always walks
// queries in id order, so the output does not depend on the worker count.
func (r *Runner) Run(ctx context.Context, results, groundtruth map[string][]string) (*Result, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(results))
	for _, qID := range slices.Sorted(maps.Keys(results)) {
		if _, ok := groundtruth[qID]; ok {
			ids = append(ids, qID)
		}
	}

	scores := make([]metrics.QueryScore, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	if r.config.Workers > 0 {
		g.SetLimit(r.config.Workers)
	}

	for i, qID := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[i] = metrics.ScoreQuery(qID, results[qID], groundtruth[qID], r.config.MaxK)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score queries: %w", err)
	}

	res := &Result{
		Config:  r.config,
		Queries: scores,
		System:  metrics.Aggregate(scores, r.config.MaxK),
		UsedK:   metrics.ReportingPoints(r.config.MaxK, r.config.KRange),
		Skipped: len(results) - len(ids),
	}

	if res.Skipped > 0 {
		slog.Debug("Queries without ground truth skipped", "count", res.Skipped)
	}

	if r.config.Verbose {
		for _, k := range res.UsedK {
			snap := res.System.At(k)
			slog.Info("Metrics at k",
				"k", k,
				"precision", snap.Precision,
				"recall", snap.Recall,
				"map", snap.MAP,
				"f1", snap.F1,
			)
		}
	}

	if r.config.Record {
		r.record(ctx, res.System.Final())
	}

	return res, nil
}

func (r *Runner) record(ctx context.Context, final metrics.Snapshot) {
	scalars := []struct {
		name  string
		value float64
	}{
		{MetricMAP, final.MAP},
		{MetricPrecision, final.Precision},
		{MetricRecall, final.Recall},
		{MetricF1, final.F1},
	}

	for _, s := range scalars {
		if err := r.tracker.LogScalar(ctx, s.name, s.value); err != nil {
			slog.Warn("Failed to record metric", "name", s.name, "error", err)
		}
	}
}
