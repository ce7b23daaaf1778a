package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult(t *testing.T) *runner.Result {
	t.Helper()

	results := map[string][]string{
		"q1":    {"a", "x", "b"},
		"q2":    {"c", "d"},
		"extra": {"a"},
	}
	groundtruth := map[string][]string{
		"q1": {"a", "b", "c"},
		"q2": {"d"},
	}

	res, err := runner.New(runner.Config{MaxK: 4, KRange: 2, Workers: 2}).
		Run(context.Background(), results, groundtruth)
	require.NoError(t, err)
	return res
}

func TestGenerate(t *testing.T) {
	res := sampleResult(t)
	r := Generate(res)

	assert.Equal(t, 4, r.Meta.MaxK)
	assert.Equal(t, 2, r.Meta.KRange)
	assert.Equal(t, 2, r.Meta.ScoredQueries)
	assert.Equal(t, 1, r.Meta.SkippedQueries)
	assert.Empty(t, r.Meta.RunID)
	assert.Nil(t, r.Meta.Timestamp)

	assert.Equal(t, []int{2, 4}, r.SystemMetrics.UsedK)
	assert.Len(t, r.SystemMetrics.MetricsAtK, 2)
	assert.Equal(t, res.System.At(4), r.SystemMetrics.MetricsAtK[4])
	assert.Len(t, r.SystemMetrics.MAP, 4)

	require.Contains(t, r.PerQueryMetrics, "q1")
	assert.NotContains(t, r.PerQueryMetrics, "extra")
	q1 := r.PerQueryMetrics["q1"]
	assert.Equal(t, []string{"a", "x", "b"}, q1.Candidates)
	assert.Equal(t, []string{"a", "b", "c"}, q1.GroundTruth)
	assert.InDelta(t, 0.5556, q1.AP[2], 1e-4)

	assert.Equal(t, r, Generate(res))
}

func TestStamp(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	r := Generate(sampleResult(t)).Stamp("bm25", "run-1", at)

	assert.Equal(t, "bm25", r.Meta.Name)
	assert.Equal(t, "run-1", r.Meta.RunID)
	require.NotNil(t, r.Meta.Timestamp)
	assert.Equal(t, time.UTC, r.Meta.Timestamp.Location())
	require.NotNil(t, r.Meta.Environment)
	assert.NotEmpty(t, r.Meta.Environment.GoVersion)
}

func TestWriteAndReadJSON(t *testing.T) {
	r := Generate(sampleResult(t))
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, Write(r, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, key := range []string{`"system_metrics"`, `"per_query_metrics"`, `"used_k"`, `"metrics_at_k"`, `"ground_truth"`, `"ap"`} {
		assert.Contains(t, string(raw), key)
	}

	loaded, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, r.SystemMetrics, loaded.SystemMetrics)
	assert.Equal(t, r.PerQueryMetrics, loaded.PerQueryMetrics)
}

func TestWriteYAML(t *testing.T) {
	r := Generate(sampleResult(t))
	path := filepath.Join(t.TempDir(), "report.yml")

	require.NoError(t, Write(r, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, yaml.Unmarshal(raw, &decoded))
	assert.Equal(t, r.Meta.ScoredQueries, decoded.Meta.ScoredQueries)
	assert.Equal(t, r.SystemMetrics.UsedK, decoded.SystemMetrics.UsedK)
	assert.Equal(t, r.SystemMetrics.MetricsAtK, decoded.SystemMetrics.MetricsAtK)
}

func TestReadJSON_Errors(t *testing.T) {
	_, err := ReadJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err = ReadJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse report")
}

func TestWriteTable(t *testing.T) {
	r := Generate(sampleResult(t))
	r.Meta.Name = "bm25"

	var sb strings.Builder
	WriteTable(r, &sb)
	out := sb.String()

	assert.Contains(t, out, "Ranking Evaluation: bm25")
	assert.Contains(t, out, "System Metrics (mean across 2 queries)")
	assert.Contains(t, out, "Per-Query Results @4")
	assert.Contains(t, out, "AP@4")
	assert.Less(t, strings.Index(out, "q1"), strings.Index(out, "q2"))
}

func TestCompare(t *testing.T) {
	a := Generate(sampleResult(t))
	a.Meta.Name = "bm25"
	b := Generate(sampleResult(t))

	var sb strings.Builder
	Compare([]*Report{a, b}, &sb)
	out := sb.String()

	assert.Contains(t, out, "Run Comparison")
	assert.Contains(t, out, "bm25")
	assert.Contains(t, out, "run-2")
}

func TestPlotCurves(t *testing.T) {
	r := &Report{SystemMetrics: SystemMetrics{
		Precision: []float64{1, 0.5},
		Recall:    []float64{0, 0.25},
		MAP:       []float64{2, 0},
		F1:        []float64{0.5, 0.5},
	}}

	var sb strings.Builder
	PlotCurves(r, &sb)
	out := sb.String()

	for _, name := range []string{"Precision@k", "Recall@k", "MAP@k", "F1@k"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, strings.Repeat("█", maxBarWidth))
	assert.NotContains(t, out, strings.Repeat("█", maxBarWidth+1))
	assert.Contains(t, out, "▏")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short ascii", "q1", 10, "q1"},
		{"long ascii", "abcdefghij", 8, "abcde..."},
		{"multibyte fits", "запрос", 6, "запрос"},
		{"multibyte cut on rune boundary", "таблица-поиск", 8, "табли..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
