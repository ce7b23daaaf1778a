// Package tracking forwards named scalar metrics to an experiment tracker.
package tracking

import (
	"context"
	"log/slog"
	"sync"
)

// Tracker records a named scalar for the current experiment run.
type Tracker interface {
	LogScalar(ctx context.Context, name string, value float64) error
}

// RunIDOf returns the run id a tracker logs under, or "" when it has none.
func RunIDOf(t Tracker) string {
	if r, ok := t.(interface{ RunID() string }); ok {
		return r.RunID()
	}
	return ""
}

type Nop struct{}

func (Nop) LogScalar(context.Context, string, float64) error { return nil }

// Slog writes scalars to the structured logger.
type Slog struct {
	logger *slog.Logger
	runID  string
}

func NewSlog(logger *slog.Logger, runID string) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{logger: logger, runID: runID}
}

func (s *Slog) RunID() string {
	return s.runID
}

func (s *Slog) LogScalar(ctx context.Context, name string, value float64) error {
	s.logger.LogAttrs(ctx, slog.LevelInfo, "METRIC",
		slog.String("run_id", s.runID),
		slog.String("name", name),
		slog.Float64("value", value),
	)
	return nil
}

type Scalar struct {
	Name  string
	Value float64
}

// Memory keeps scalars in call order. Safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	runID   string
	scalars []Scalar
}

func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryForRun returns a Memory that reports runID as its run id.
func NewMemoryForRun(runID string) *Memory {
	return &Memory{runID: runID}
}

func (m *Memory) RunID() string {
	return m.runID
}

func (m *Memory) LogScalar(_ context.Context, name string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scalars = append(m.scalars, Scalar{Name: name, Value: value})
	return nil
}

func (m *Memory) Scalars() []Scalar {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Scalar, len(m.scalars))
	copy(out, m.scalars)
	return out
}
