package runner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_WorkedExample(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxK = 3
	cfg.KRange = 1

	results := map[string][]string{"q1": {"a", "x", "b"}}
	groundtruth := map[string][]string{"q1": {"a", "b", "c"}}

	res, err := New(cfg).Run(context.Background(), results, groundtruth)
	require.NoError(t, err)
	require.Len(t, res.Queries, 1)

	q := res.Queries[0]
	assert.Equal(t, "q1", q.QueryID)
	assert.Equal(t, []string{"a", "x", "b"}, q.Candidates)
	assert.Equal(t, []string{"a", "b", "c"}, q.GroundTruth)
	assert.InDelta(t, 1.0, q.AP[0], 1e-9)
	assert.InDelta(t, 0.5556, q.AP[2], 1e-4)

	assert.Equal(t, []int{1, 2, 3}, res.UsedK)
	assert.InDelta(t, 2.0/3.0, res.MetricsAtK()[3].Precision, 1e-9)
	assert.Zero(t, res.Skipped)
}

func TestRun_SkipsQueriesWithoutGroundTruth(t *testing.T) {
	cfg := DefaultConfig()

	results := map[string][]string{
		"q1":      {"a"},
		"unknown": {"a", "b"},
	}
	groundtruth := map[string][]string{
		"q1": {"a"},
		"q9": {"z"},
	}

	res, err := New(cfg).Run(context.Background(), results, groundtruth)
	require.NoError(t, err)
	require.Len(t, res.Queries, 1)
	assert.Equal(t, "q1", res.Queries[0].QueryID)
	assert.Equal(t, 1, res.Skipped)
	assert.InDelta(t, 1.0, res.System.Precision[0], 1e-9)
}

func TestRun_NoScoredQueries(t *testing.T) {
	cfg := DefaultConfig()

	res, err := New(cfg).Run(context.Background(), map[string][]string{"q1": {"a"}}, map[string][]string{})
	require.NoError(t, err)
	assert.Empty(t, res.Queries)
	assert.Equal(t, make([]float64, cfg.MaxK), res.System.MAP)
	assert.Equal(t, make([]float64, cfg.MaxK), res.System.F1)
	assert.Equal(t, []int{5, 10}, res.UsedK)
}

func randomInputs(n, maxK int, seed int64) (map[string][]string, map[string][]string) {
	rng := rand.New(rand.NewSource(seed))
	results := make(map[string][]string, n)
	groundtruth := make(map[string][]string, n)

	for i := 0; i < n; i++ {
		qID := fmt.Sprintf("q%03d", i)
		cands := make([]string, rng.Intn(maxK+5))
		for j := range cands {
			cands[j] = fmt.Sprintf("t%d", rng.Intn(40))
		}
		results[qID] = cands

		if i%7 == 0 {
			continue
		}
		gt := make([]string, rng.Intn(12))
		for j := range gt {
			gt[j] = fmt.Sprintf("t%d", rng.Intn(40))
		}
		groundtruth[qID] = gt
	}
	return results, groundtruth
}

func TestRun_DeterministicAcrossWorkers(t *testing.T) {
	results, groundtruth := randomInputs(200, 60, 42)

	var baseline *Result
	for _, workers := range []int{1, 3, 16, 0} {
		cfg := Config{MaxK: 60, KRange: 10, Workers: workers}

		res, err := New(cfg).Run(context.Background(), results, groundtruth)
		require.NoError(t, err)

		if baseline == nil {
			baseline = res
			continue
		}
		assert.Equal(t, baseline.System, res.System, "workers=%d", workers)
		assert.Equal(t, baseline.Queries, res.Queries, "workers=%d", workers)
	}

	again, err := New(Config{MaxK: 60, KRange: 10, Workers: 1}).Run(context.Background(), results, groundtruth)
	require.NoError(t, err)
	assert.Equal(t, baseline.System, again.System)
}

func TestRun_RecordsFinalScalars(t *testing.T) {
	results := map[string][]string{"q1": {"a", "x", "b"}}
	groundtruth := map[string][]string{"q1": {"a", "b", "c"}}

	t.Run("record enabled", func(t *testing.T) {
		mem := tracking.NewMemory()
		cfg := Config{MaxK: 3, KRange: 3, Record: true}

		res, err := New(cfg, WithTracker(mem)).Run(context.Background(), results, groundtruth)
		require.NoError(t, err)

		final := res.System.Final()
		assert.Equal(t, []tracking.Scalar{
			{Name: MetricMAP, Value: final.MAP},
			{Name: MetricPrecision, Value: final.Precision},
			{Name: MetricRecall, Value: final.Recall},
			{Name: MetricF1, Value: final.F1},
		}, mem.Scalars())
	})

	t.Run("record disabled", func(t *testing.T) {
		mem := tracking.NewMemory()
		cfg := Config{MaxK: 3, KRange: 3}

		_, err := New(cfg, WithTracker(mem)).Run(context.Background(), results, groundtruth)
		require.NoError(t, err)
		assert.Empty(t, mem.Scalars())
	})

	t.Run("tracker failure does not fail the run", func(t *testing.T) {
		cfg := Config{MaxK: 3, KRange: 3, Record: true}

		res, err := New(cfg, WithTracker(failingTracker{})).Run(context.Background(), results, groundtruth)
		require.NoError(t, err)
		assert.NotNil(t, res)
	})
}

type failingTracker struct{}

func (failingTracker) LogScalar(context.Context, string, float64) error {
	return errors.New("tracker unavailable")
}

func TestRun_InvalidConfig(t *testing.T) {
	for _, cfg := range []Config{
		{MaxK: 10, KRange: 20},
		{MaxK: 0, KRange: 1},
		{MaxK: 10, KRange: 0},
		{MaxK: 10, KRange: 5, Workers: -1},
	} {
		_, err := New(cfg).Run(context.Background(), nil, nil)
		require.Error(t, err)

		var ve *apperr.ValidationError
		assert.True(t, errors.As(err, &ve), "config %+v", cfg)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(DefaultConfig()).Run(ctx, map[string][]string{"q": {"a"}}, map[string][]string{"q": {"a"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPresetConfig(t *testing.T) {
	santos, err := PresetConfig("santos")
	require.NoError(t, err)
	assert.Equal(t, 10, santos.MaxK)
	assert.Equal(t, 5, santos.KRange)

	tus, err := PresetConfig("tus")
	require.NoError(t, err)
	assert.Equal(t, 60, tus.MaxK)
	assert.Equal(t, 10, tus.KRange)

	_, err = PresetConfig("wdc")
	assert.Error(t, err)
}
