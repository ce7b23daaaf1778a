package main

import (
	"errors"
	"flag"
	"io"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/runner"
)

type cliConfig struct {
	SpecPath        string
	ResultsPath     string
	GroundTruthPath string
	PgConnStr       string
	RunName         string
	Collection      string
	Preset          string
	MaxK            int
	KRange          int
	Workers         int
	Record          bool
	Verbose         bool
	Output          string
	Plot            bool

	set map[string]bool
}

func parseFlags(args []string, output io.Writer) (cliConfig, error) {
	cfg := cliConfig{set: make(map[string]bool)}

	fs := flag.NewFlagSet("rankeval", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.SpecPath, "spec", "", "Path to eval spec YAML (multi-run mode)")
	fs.StringVar(&cfg.ResultsPath, "results", "", "Path to results file (.json, .yaml, .csv, .tsv)")
	fs.StringVar(&cfg.GroundTruthPath, "groundtruth", "", "Path to ground truth file (.json, .yaml, .csv, .tsv)")
	fs.StringVar(&cfg.PgConnStr, "pg", "", "PostgreSQL connection string; loads -run and -collection from the database")
	fs.StringVar(&cfg.RunName, "run", "", "Run name in run_results (with -pg), also used as report name")
	fs.StringVar(&cfg.Collection, "collection", "", "Ground truth collection in groundtruth (with -pg)")
	fs.StringVar(&cfg.Preset, "preset", "", "Benchmark cutoff preset: santos or tus")
	fs.IntVar(&cfg.MaxK, "max-k", runner.DefaultMaxK, "Largest cutoff to evaluate")
	fs.IntVar(&cfg.KRange, "k-range", runner.DefaultKRange, "Step between reported cutoffs")
	fs.IntVar(&cfg.Workers, "workers", 0, "Concurrent query scorers (0 = GOMAXPROCS)")
	fs.BoolVar(&cfg.Record, "record", false, "Send final-k metrics to the tracking backend")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Log metrics at every reported cutoff")
	fs.StringVar(&cfg.Output, "output", "", "Report path (.json or .yaml); a directory in -spec mode")
	fs.BoolVar(&cfg.Plot, "plot", false, "Print terminal plots of the system curves")

	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}
	fs.Visit(func(f *flag.Flag) { cfg.set[f.Name] = true })

	if err := cfg.validate(); err != nil {
		return cliConfig{}, err
	}
	return cfg, nil
}

func (c cliConfig) validate() error {
	if c.SpecPath != "" {
		return nil
	}
	if c.PgConnStr != "" {
		if c.RunName == "" || c.Collection == "" {
			return errors.New("-pg requires -run and -collection")
		}
		return nil
	}
	if c.ResultsPath == "" || c.GroundTruthPath == "" {
		return errors.New("either -spec, -pg or both -results and -groundtruth are required")
	}
	return nil
}

// runnerConfig resolves cutoffs: explicit -max-k/-k-range win over -preset, which wins over defaults.
func (c cliConfig) runnerConfig() (runner.Config, error) {
	cfg := runner.DefaultConfig()
	if c.Preset != "" {
		p, err := runner.PresetConfig(c.Preset)
		if err != nil {
			return runner.Config{}, err
		}
		cfg = p
	}
	if c.set["max-k"] || c.Preset == "" {
		cfg.MaxK = c.MaxK
	}
	if c.set["k-range"] || c.Preset == "" {
		cfg.KRange = c.KRange
	}
	if c.Workers != 0 {
		cfg.Workers = c.Workers
	}
	cfg.Record = c.Record
	cfg.Verbose = c.Verbose
	return cfg, nil
}
