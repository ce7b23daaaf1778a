package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/qrels"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/report"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/runner"
	"github.com/DjordjeVuckovic/rankeval/internal/dto"
	"github.com/DjordjeVuckovic/rankeval/internal/tracking"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type MetricsRouter struct {
	e          *echo.Echo
	newTracker tracking.Factory
	workers    int
}

type MetricsRouterOption func(*MetricsRouter)

// WithTracker records every request into the same tracker.
func WithTracker(t tracking.Tracker) MetricsRouterOption {
	return WithTrackerFactory(tracking.Static(t))
}

// WithTrackerFactory builds a tracker, and so a run, per recorded request.
func WithTrackerFactory(f tracking.Factory) MetricsRouterOption {
	return func(r *MetricsRouter) {
		r.newTracker = f
	}
}

func WithWorkers(n int) MetricsRouterOption {
	return func(r *MetricsRouter) {
		r.workers = n
	}
}

func NewMetricsRouter(e *echo.Echo, opts ...MetricsRouterOption) *MetricsRouter {
	r := &MetricsRouter{
		e:          e,
		newTracker: tracking.Static(tracking.Nop{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *MetricsRouter) Bind() {
	r.e.POST("/v1/metrics", r.metricsHandler)
}

// metricsHandler godoc
// @Summary Evaluate a ranking run
// @Description Scores ranked candidate lists against ground truth and returns precision, recall, MAP and F1 curves up to max_k
// @Tags metrics
// @Accept json
// @Produce json
// @Param request body dto.MetricsRequest true "Results and ground truth to score"
// @Success 200 {object} report.Report
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /v1/metrics [post]
func (r *MetricsRouter) metricsHandler(c echo.Context) error {
	var req dto.MetricsRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	cfg, err := r.runnerConfig(req)
	if err != nil {
		return err
	}

	if len(req.Results) == 0 {
		return apperr.NewValidation("results is required")
	}
	if len(req.GroundTruth) == 0 {
		return apperr.NewValidation("groundtruth is required")
	}

	results, err := qrels.DecodeResults(req.Results, qrels.FormatJSON)
	if err != nil {
		return apperr.NewValidationWrap("invalid results", err)
	}
	groundtruth, err := qrels.DecodeGroundTruth(req.GroundTruth, qrels.FormatJSON)
	if err != nil {
		return apperr.NewValidationWrap("invalid groundtruth", err)
	}

	ctx := c.Request().Context()
	var tracker tracking.Tracker = tracking.Nop{}
	if cfg.Record {
		if tracker, err = r.newTracker(ctx, runName(req)); err != nil {
			return fmt.Errorf("create tracker: %w", err)
		}
	}

	res, err := runner.New(cfg, runner.WithTracker(tracker)).Run(ctx, results, groundtruth)
	if err != nil {
		return fmt.Errorf("run evaluation: %w", err)
	}

	runID := tracking.RunIDOf(tracker)
	if runID == "" {
		runID = uuid.NewString()
	}
	rep := report.Generate(res).Stamp(req.Name, runID, time.Now())

	return c.JSON(http.StatusOK, rep)
}

func runName(req dto.MetricsRequest) string {
	if req.Name != "" {
		return req.Name
	}
	return "api"
}

func (r *MetricsRouter) runnerConfig(req dto.MetricsRequest) (runner.Config, error) {
	cfg := runner.DefaultConfig()
	if r.workers > 0 {
		cfg.Workers = r.workers
	}
	if req.MaxK != nil {
		cfg.MaxK = *req.MaxK
	}
	if req.KRange != nil {
		cfg.KRange = *req.KRange
	}
	cfg.Record = req.Record

	if err := cfg.Validate(); err != nil {
		return runner.Config{}, err
	}
	return cfg, nil
}
