package runner

import "github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"

type Result struct {
	Config Config
	// Queries holds every scored query ordered by query id.
	Queries []metrics.QueryScore
	System  metrics.System
	UsedK   []int
	Skipped int
}

func (r *Result) MetricsAtK() map[int]metrics.Snapshot {
	out := make(map[int]metrics.Snapshot, len(r.UsedK))
	for _, k := range r.UsedK {
		out[k] = r.System.At(k)
	}
	return out
}
