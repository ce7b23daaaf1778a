package report

import (
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
)

// Report is the serialized evaluation output.
type Report struct {
	Meta            Meta                       `json:"meta" yaml:"meta"`
	SystemMetrics   SystemMetrics              `json:"system_metrics" yaml:"system_metrics"`
	PerQueryMetrics map[string]PerQueryMetrics `json:"per_query_metrics" yaml:"per_query_metrics"`
}

type Meta struct {
	Name           string           `json:"name,omitempty" yaml:"name,omitempty"`
	RunID          string           `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Timestamp      *time.Time       `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	MaxK           int              `json:"max_k" yaml:"max_k"`
	KRange         int              `json:"k_range" yaml:"k_range"`
	ScoredQueries  int              `json:"scored_queries" yaml:"scored_queries"`
	SkippedQueries int              `json:"skipped_queries" yaml:"skipped_queries"`
	Environment    *EnvironmentInfo `json:"environment,omitempty" yaml:"environment,omitempty"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version" yaml:"go_version"`
	OS        string `json:"os" yaml:"os"`
	Arch      string `json:"arch" yaml:"arch"`
	NumCPU    int    `json:"num_cpu" yaml:"num_cpu"`
}

func NewEnvironmentInfo() *EnvironmentInfo {
	return &EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

// SystemMetrics holds series indexed by k-1 plus snapshots at the reporting points.
type SystemMetrics struct {
	Precision  []float64                `json:"precision" yaml:"precision"`
	Recall     []float64                `json:"recall" yaml:"recall"`
	MAP        []float64                `json:"map" yaml:"map"`
	F1         []float64                `json:"f1" yaml:"f1"`
	UsedK      []int                    `json:"used_k" yaml:"used_k"`
	MetricsAtK map[int]metrics.Snapshot `json:"metrics_at_k" yaml:"metrics_at_k"`
}

type PerQueryMetrics struct {
	Candidates  []string  `json:"candidates" yaml:"candidates"`
	GroundTruth []string  `json:"ground_truth" yaml:"ground_truth"`
	Precision   []float64 `json:"precision" yaml:"precision"`
	Recall      []float64 `json:"recall" yaml:"recall"`
	AP          []float64 `json:"ap" yaml:"ap"`
}
