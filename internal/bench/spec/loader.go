package spec

import (
	"fmt"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/runner"
	"github.com/DjordjeVuckovic/rankeval/internal/tracking"
	"gopkg.in/yaml.v3"
)

func LoadFromFile(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*EvalSpec, error) {
	var s EvalSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse spec YAML: %w", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func validate(s *EvalSpec) error {
	if s.Metrics.MaxK <= 0 {
		s.Metrics.MaxK = runner.DefaultMaxK
	}
	if s.Metrics.KRange <= 0 {
		s.Metrics.KRange = runner.DefaultKRange
	}

	if len(s.Runs) == 0 {
		return apperr.NewValidation("spec has no runs")
	}

	seen := make(map[string]bool, len(s.Runs))
	for i, r := range s.Runs {
		if r.Name == "" {
			return apperr.NewValidation(fmt.Sprintf("run at index %d has no name", i))
		}
		if !validRunName(r.Name) {
			return apperr.NewValidation(fmt.Sprintf("run name %q must not contain path separators or be a relative path element", r.Name))
		}
		if seen[r.Name] {
			return apperr.NewValidation(fmt.Sprintf("duplicate run name %q", r.Name))
		}
		seen[r.Name] = true

		if err := validateSource(s, r); err != nil {
			return err
		}

		maxK, kRange := r.Cutoffs(s.Metrics)
		if err := metrics.ValidateCutoffs(maxK, kRange); err != nil {
			return apperr.NewValidationWrap(fmt.Sprintf("run %q", r.Name), err)
		}
	}

	switch s.Tracking.Backend {
	case "", tracking.BackendNone, tracking.BackendLog, tracking.BackendMLflow, tracking.BackendElastic:
	default:
		return apperr.NewValidation(fmt.Sprintf("unknown tracking backend %q", s.Tracking.Backend))
	}
	return nil
}

// validRunName reports whether name is safe to use as a report file name.
func validRunName(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}

func validateSource(s *EvalSpec, r Run) error {
	if r.Postgres != nil {
		if r.Results != "" || r.GroundTruth != "" {
			return apperr.NewValidation(fmt.Sprintf("run %q mixes file paths and a postgres source", r.Name))
		}
		if s.Postgres == nil || s.Postgres.URL == "" {
			return apperr.NewValidation(fmt.Sprintf("run %q uses postgres but the spec has no postgres url", r.Name))
		}
		if r.Postgres.Run == "" || r.Postgres.Collection == "" {
			return apperr.NewValidation(fmt.Sprintf("run %q postgres source needs run and collection", r.Name))
		}
		return nil
	}

	if r.Results == "" {
		return apperr.NewValidation(fmt.Sprintf("run %q has no results path", r.Name))
	}
	if r.GroundTruth == "" {
		return apperr.NewValidation(fmt.Sprintf("run %q has no groundtruth path", r.Name))
	}
	return nil
}

// ApplyTracking overlays the non-empty tracking settings of the spec on base.
func (s *EvalSpec) ApplyTracking(base tracking.Config) tracking.Config {
	t := s.Tracking
	if t.Backend != "" {
		base.Backend = t.Backend
	}
	if t.RunID != "" {
		base.RunID = t.RunID
	}
	if t.MLflowURI != "" {
		base.MLflow.TrackingURI = t.MLflowURI
	}
	if t.MLflowExperiment != "" {
		base.MLflow.ExperimentID = t.MLflowExperiment
	}
	if len(t.ElasticAddresses) > 0 {
		base.Elastic.Addresses = t.ElasticAddresses
	}
	if t.ElasticIndex != "" {
		base.Elastic.Index = t.ElasticIndex
	}
	return base
}
