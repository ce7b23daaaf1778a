package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	mlflowLogMetricPath = "/api/2.0/mlflow/runs/log-metric"
	mlflowCreateRunPath = "/api/2.0/mlflow/runs/create"
)

type MLflowConfig struct {
	TrackingURI string
	// RunID logs into an existing run. When empty a run is created in ExperimentID.
	RunID        string
	ExperimentID string
	RunName      string
	Token        string
	Timeout      time.Duration
}

// MLflow logs scalars through the MLflow tracking server REST API.
type MLflow struct {
	client *resty.Client
	runID  string
	now    func() time.Time
}

type mlflowMetric struct {
	RunID     string  `json:"run_id"`
	Key       string  `json:"key"`
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp"`
	Step      int64   `json:"step"`
}

type mlflowCreateRun struct {
	ExperimentID string `json:"experiment_id"`
	RunName      string `json:"run_name,omitempty"`
	StartTime    int64  `json:"start_time"`
}

type mlflowCreateRunResponse struct {
	Run struct {
		Info struct {
			RunID string `json:"run_id"`
		} `json:"info"`
	} `json:"run"`
}

type mlflowError struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// NewMLflow connects to the tracking server. Without a run id it creates a run in the
// configured experiment; with neither it fails.
func NewMLflow(ctx context.Context, cfg MLflowConfig) (*MLflow, error) {
	if cfg.TrackingURI == "" {
		return nil, fmt.Errorf("mlflow tracking uri is required")
	}
	if cfg.RunID == "" && cfg.ExperimentID == "" {
		return nil, fmt.Errorf("mlflow needs MLFLOW_RUN_ID or MLFLOW_EXPERIMENT_ID")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.TrackingURI).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	m := &MLflow{client: client, runID: cfg.RunID, now: time.Now}
	if m.runID == "" {
		runID, err := m.createRun(ctx, cfg.ExperimentID, cfg.RunName)
		if err != nil {
			return nil, err
		}
		m.runID = runID
	}
	return m, nil
}

func (m *MLflow) createRun(ctx context.Context, experimentID, runName string) (string, error) {
	var (
		out    mlflowCreateRunResponse
		apiErr mlflowError
	)
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(mlflowCreateRun{
			ExperimentID: experimentID,
			RunName:      runName,
			StartTime:    m.now().UnixMilli(),
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post(mlflowCreateRunPath)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", mlflowCreateRunPath, err)
	}
	if resp.IsError() {
		return "", mlflowFailure("create run", resp, apiErr)
	}
	if out.Run.Info.RunID == "" {
		return "", fmt.Errorf("mlflow create run: response has no run id")
	}
	return out.Run.Info.RunID, nil
}

func (m *MLflow) RunID() string {
	return m.runID
}

func (m *MLflow) LogScalar(ctx context.Context, name string, value float64) error {
	var apiErr mlflowError
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(mlflowMetric{
			RunID:     m.runID,
			Key:       name,
			Value:     value,
			Timestamp: m.now().UnixMilli(),
		}).
		SetError(&apiErr).
		Post(mlflowLogMetricPath)
	if err != nil {
		return fmt.Errorf("post %s: %w", mlflowLogMetricPath, err)
	}
	if resp.IsError() {
		return mlflowFailure(fmt.Sprintf("log metric %q", name), resp, apiErr)
	}
	return nil
}

func mlflowFailure(op string, resp *resty.Response, apiErr mlflowError) error {
	if apiErr.ErrorCode != "" {
		return fmt.Errorf("mlflow %s: %s: %s", op, apiErr.ErrorCode, apiErr.Message)
	}
	return fmt.Errorf("mlflow %s: status %d: %s", op, resp.StatusCode(), resp.String())
}
