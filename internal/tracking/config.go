package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/rankeval/pkg/config/env"
	"github.com/DjordjeVuckovic/rankeval/pkg/utils"
	"github.com/google/uuid"
)

const (
	BackendNone    = "none"
	BackendLog     = "log"
	BackendMLflow  = "mlflow"
	BackendElastic = "elasticsearch"
)

type Config struct {
	Backend string
	RunID   string
	RunName string
	MLflow  MLflowConfig
	Elastic ElasticConfig
}

// LoadConfig reads tracker settings from the environment.
func LoadConfig() Config {
	cfg := Config{
		Backend: strings.ToLower(env.String("TRACKING_BACKEND", BackendLog)),
		RunID:   os.Getenv("TRACKING_RUN_ID"),
		MLflow: MLflowConfig{
			TrackingURI:  os.Getenv("MLFLOW_TRACKING_URI"),
			RunID:        os.Getenv("MLFLOW_RUN_ID"),
			ExperimentID: os.Getenv("MLFLOW_EXPERIMENT_ID"),
			Token:        os.Getenv("MLFLOW_TRACKING_TOKEN"),
		},
		Elastic: ElasticConfig{
			Index:    os.Getenv("ES_METRICS_INDEX"),
			Username: os.Getenv("ES_USERNAME"),
			Password: os.Getenv("ES_PASSWORD"),
		},
	}

	timeout, err := env.Duration("MLFLOW_TIMEOUT", 0)
	if err != nil {
		slog.Warn("Ignoring invalid MLFLOW_TIMEOUT", "error", err)
	}
	cfg.MLflow.Timeout = timeout

	if addrs := os.Getenv("ES_ADDRESSES"); addrs != "" {
		cfg.Elastic.Addresses = utils.SplitNonEmpty(addrs, ",")
	}

	return cfg
}

// New builds the tracker selected by cfg.Backend. Log and Elasticsearch trackers use
// cfg.RunID or a fresh uuid. MLflow only logs into MLflow runs: the configured MLflow run
// id or a run created in MLFLOW_EXPERIMENT_ID.
func New(ctx context.Context, cfg Config) (Tracker, error) {
	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	switch cfg.Backend {
	case BackendNone:
		return Nop{}, nil
	case BackendLog, "":
		return NewSlog(slog.Default(), runID), nil
	case BackendMLflow:
		mcfg := cfg.MLflow
		if mcfg.RunName == "" {
			mcfg.RunName = cfg.RunName
		}
		return NewMLflow(ctx, mcfg)
	case BackendElastic:
		return NewElastic(cfg.Elastic, runID)
	default:
		return nil, fmt.Errorf("unknown tracking backend %q", cfg.Backend)
	}
}

// ForRun derives the settings of one named run out of several. A configured run id is
// suffixed with the run name, otherwise each run gets a fresh uuid. MLflow creates a run per
// call, so a fixed MLflow run id is rejected.
func (c Config) ForRun(name string) (Config, error) {
	if c.Backend == BackendMLflow && c.MLflow.RunID != "" {
		return Config{}, fmt.Errorf("MLFLOW_RUN_ID names a single MLflow run; set MLFLOW_EXPERIMENT_ID so each run %q gets its own", name)
	}

	out := c
	out.RunName = name
	out.MLflow.RunName = name
	if c.RunID != "" {
		out.RunID = c.RunID + "/" + name
	}
	return out, nil
}

// Factory builds the tracker of one named evaluation run.
type Factory func(ctx context.Context, runName string) (Tracker, error)

// PerRun returns a Factory that gives every run its own run id (see Config.ForRun).
func PerRun(base Config) Factory {
	return func(ctx context.Context, runName string) (Tracker, error) {
		cfg, err := base.ForRun(runName)
		if err != nil {
			return nil, err
		}
		return New(ctx, cfg)
	}
}

// Static returns a Factory that always hands out t.
func Static(t Tracker) Factory {
	return func(context.Context, string) (Tracker, error) {
		return t, nil
	}
}
