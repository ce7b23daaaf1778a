package main

import (
	"io"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{"-results", "r.json", "-groundtruth", "gt.json", "-max-k", "20", "-record"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "r.json", cfg.ResultsPath)
	assert.True(t, cfg.Record)

	rc, err := cfg.runnerConfig()
	require.NoError(t, err)
	assert.Equal(t, 20, rc.MaxK)
	assert.Equal(t, 5, rc.KRange)
	assert.Equal(t, runtime.GOMAXPROCS(0), rc.Workers)
	assert.True(t, rc.Record)
}

func TestParseFlags_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no inputs", nil},
		{"results without groundtruth", []string{"-results", "r.json"}},
		{"pg without run", []string{"-pg", "postgres://localhost/x", "-collection", "santos"}},
		{"unknown flag", []string{"-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, io.Discard)
			assert.Error(t, err)
		})
	}

	_, err := parseFlags([]string{"-spec", "eval.yaml"}, io.Discard)
	assert.NoError(t, err)

	_, err = parseFlags([]string{"-pg", "postgres://localhost/x", "-run", "bm25", "-collection", "santos"}, io.Discard)
	assert.NoError(t, err)
}

func TestRunnerConfig_Preset(t *testing.T) {
	base := []string{"-results", "r.json", "-groundtruth", "gt.json"}

	t.Run("preset cutoffs", func(t *testing.T) {
		cfg, err := parseFlags(append(base, "-preset", "tus"), io.Discard)
		require.NoError(t, err)
		rc, err := cfg.runnerConfig()
		require.NoError(t, err)
		assert.Equal(t, 60, rc.MaxK)
		assert.Equal(t, 10, rc.KRange)
	})

	t.Run("explicit flag overrides preset", func(t *testing.T) {
		cfg, err := parseFlags(append(base, "-preset", "tus", "-k-range", "20"), io.Discard)
		require.NoError(t, err)
		rc, err := cfg.runnerConfig()
		require.NoError(t, err)
		assert.Equal(t, 60, rc.MaxK)
		assert.Equal(t, 20, rc.KRange)
	})

	t.Run("unknown preset", func(t *testing.T) {
		cfg, err := parseFlags(append(base, "-preset", "wdc"), io.Discard)
		require.NoError(t, err)
		_, err = cfg.runnerConfig()
		assert.Error(t, err)
	})
}
