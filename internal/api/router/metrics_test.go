package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/report"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/runner"
	"github.com/DjordjeVuckovic/rankeval/internal/tracking"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(opts ...MetricsRouterOption) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	NewMetricsRouter(e, opts...).Bind()
	return e
}

func post(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/metrics", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMetricsHandler(t *testing.T) {
	e := newTestEcho(WithWorkers(2))

	rec := post(e, `{
		"name": "bm25",
		"max_k": 3,
		"k_range": 1,
		"results": {"1": ["a", "x", "b"], "2": ["z"]},
		"groundtruth": {"1": ["a", "b", "c"]}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rep report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, "bm25", rep.Meta.Name)
	assert.Equal(t, 1, rep.Meta.ScoredQueries)
	assert.Equal(t, 1, rep.Meta.SkippedQueries)
	assert.Equal(t, []int{1, 2, 3}, rep.SystemMetrics.UsedK)
	assert.InDelta(t, 0.5556, rep.PerQueryMetrics["1"].AP[2], 1e-4)
	assert.InDelta(t, 2.0/3.0, rep.SystemMetrics.MetricsAtK[3].Precision, 1e-9)
}

func TestMetricsHandler_Defaults(t *testing.T) {
	rec := post(newTestEcho(), `{"results": {"q": [1, 2]}, "groundtruth": {"q": [2]}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rep report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, runner.DefaultMaxK, rep.Meta.MaxK)
	assert.Equal(t, []int{5, 10}, rep.SystemMetrics.UsedK)
	assert.Equal(t, []string{"1", "2"}, rep.PerQueryMetrics["q"].Candidates)
}

func TestMetricsHandler_Record(t *testing.T) {
	mem := tracking.NewMemory()
	e := newTestEcho(WithTracker(mem))

	rec := post(e, `{"max_k": 2, "k_range": 2, "record": true,
		"results": {"q": ["a", "b"]}, "groundtruth": {"q": ["a"]}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	names := make([]string, 0, 4)
	for _, s := range mem.Scalars() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{runner.MetricMAP, runner.MetricPrecision, runner.MetricRecall, runner.MetricF1}, names)
}

func TestMetricsHandler_RunPerRequest(t *testing.T) {
	var (
		mu       sync.Mutex
		trackers []*tracking.Memory
	)
	e := newTestEcho(WithTrackerFactory(func(_ context.Context, name string) (tracking.Tracker, error) {
		mu.Lock()
		defer mu.Unlock()
		mem := tracking.NewMemoryForRun(fmt.Sprintf("%s-%d", name, len(trackers)))
		trackers = append(trackers, mem)
		return mem, nil
	}))

	body := `{"name": "bm25", "max_k": 2, "k_range": 2, "record": true,
		"results": {"q": ["a", "b"]}, "groundtruth": {"q": ["a"]}}`
	runIDs := make([]string, 0, 2)
	for range 2 {
		rec := post(e, body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var rep report.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
		runIDs = append(runIDs, rep.Meta.RunID)
	}

	assert.Equal(t, []string{"bm25-0", "bm25-1"}, runIDs)
	require.Len(t, trackers, 2)
	assert.Len(t, trackers[0].Scalars(), 4)
	assert.Len(t, trackers[1].Scalars(), 4)
}

func TestMetricsHandler_UnrecordedRunID(t *testing.T) {
	e := newTestEcho(WithTrackerFactory(func(context.Context, string) (tracking.Tracker, error) {
		return nil, errors.New("unexpected tracker")
	}))

	rec := post(e, `{"results": {"q": ["a"]}, "groundtruth": {"q": ["a"]}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rep report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.NotEmpty(t, rep.Meta.RunID)
	assert.NotNil(t, rep.Meta.Timestamp)
}

func TestMetricsHandler_TrackerFailure(t *testing.T) {
	e := newTestEcho(WithTrackerFactory(func(context.Context, string) (tracking.Tracker, error) {
		return nil, errors.New("mlflow unavailable")
	}))

	rec := post(e, `{"record": true, "results": {"q": ["a"]}, "groundtruth": {"q": ["a"]}}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetricsHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{"malformed body", `{"results":`, "invalid request body"},
		{"k_range above max_k", `{"max_k": 5, "k_range": 10, "results": {}, "groundtruth": {}}`, "exceeds"},
		{"zero max_k", `{"max_k": 0, "results": {}, "groundtruth": {}}`, "max_k must be positive"},
		{"missing results", `{"groundtruth": {"q": ["a"]}}`, "results is required"},
		{"missing groundtruth", `{"results": {"q": ["a"]}}`, "groundtruth is required"},
		{"invalid ids", `{"results": {"q": [{"id": 1}]}, "groundtruth": {}}`, "invalid results"},
	}

	e := newTestEcho()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(e, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.errMsg)
		})
	}
}
