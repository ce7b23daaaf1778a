package report

import (
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/runner"
)

// Generate converts a runner result into a report. The output depends only on the result.
func Generate(res *runner.Result) *Report {
	r := &Report{
		Meta: Meta{
			MaxK:           res.Config.MaxK,
			KRange:         res.Config.KRange,
			ScoredQueries:  len(res.Queries),
			SkippedQueries: res.Skipped,
		},
		SystemMetrics: SystemMetrics{
			Precision:  res.System.Precision,
			Recall:     res.System.Recall,
			MAP:        res.System.MAP,
			F1:         res.System.F1,
			UsedK:      res.UsedK,
			MetricsAtK: res.MetricsAtK(),
		},
		PerQueryMetrics: make(map[string]PerQueryMetrics, len(res.Queries)),
	}

	for _, q := range res.Queries {
		r.PerQueryMetrics[q.QueryID] = PerQueryMetrics{
			Candidates:  q.Candidates,
			GroundTruth: q.GroundTruth,
			Precision:   q.Precision,
			Recall:      q.Recall,
			AP:          q.AP,
		}
	}

	return r
}

// Stamp attaches run identity and environment details.
func (r *Report) Stamp(name, runID string, at time.Time) *Report {
	r.Meta.Name = name
	r.Meta.RunID = runID
	ts := at.UTC()
	r.Meta.Timestamp = &ts
	r.Meta.Environment = NewEnvironmentInfo()
	return r
}
