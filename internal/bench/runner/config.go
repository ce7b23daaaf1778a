package runner

import (
	"fmt"
	"runtime"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
)

const (
	DefaultMaxK   = 10
	DefaultKRange = 5
)

type Config struct {
	MaxK    int
	KRange  int
	Workers int
	// Record forwards the final-k scalars to the tracker.
	Record  bool
	Verbose bool
}

func DefaultConfig() Config {
	return Config{
		MaxK:    DefaultMaxK,
		KRange:  DefaultKRange,
		Workers: runtime.GOMAXPROCS(0),
	}
}

var presets = map[string]Config{
	"santos": {MaxK: 10, KRange: 5},
	"tus":    {MaxK: 60, KRange: 10},
}

// PresetConfig returns the cutoffs used for a known table-search benchmark.
func PresetConfig(name string) (Config, error) {
	p, ok := presets[name]
	if !ok {
		return Config{}, apperr.NewValidation(fmt.Sprintf("unknown preset %q", name))
	}
	cfg := DefaultConfig()
	cfg.MaxK = p.MaxK
	cfg.KRange = p.KRange
	return cfg, nil
}

func (c Config) Validate() error {
	if err := metrics.ValidateCutoffs(c.MaxK, c.KRange); err != nil {
		return err
	}
	if c.Workers < 0 {
		return apperr.NewValidation(fmt.Sprintf("workers must not be negative, got %d", c.Workers))
	}
	return nil
}
