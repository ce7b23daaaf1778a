package metrics

import (
	"fmt"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"gonum.org/v1/gonum/floats"
)

// QueryScore is the scored form of one query present in both the results and the ground truth.
type QueryScore struct {
	QueryID     string
	Candidates  []string
	GroundTruth []string
	Curves
}

func ScoreQuery(queryID string, candidates, groundTruth []string, maxK int) QueryScore {
	return QueryScore{
		QueryID:     queryID,
		Candidates:  candidates,
		GroundTruth: groundTruth,
		Curves:      ComputeCurves(candidates, NewSet(groundTruth), maxK),
	}
}

// System holds the system-wide series. Index i stores the value at k = i+1.
type System struct {
	Precision []float64
	Recall    []float64
	MAP       []float64
	F1        []float64
}

// Aggregate averages the query curves in slice order. With no scores every series stays zero.
func Aggregate(scores []QueryScore, maxK int) System {
	s := System{
		Precision: make([]float64, maxK),
		Recall:    make([]float64, maxK),
		MAP:       make([]float64, maxK),
		F1:        make([]float64, maxK),
	}

	if len(scores) == 0 {
		return s
	}

	for i := range scores {
		floats.Add(s.Precision, scores[i].Precision)
		floats.Add(s.Recall, scores[i].Recall)
		floats.Add(s.MAP, scores[i].AP)
	}

	n := float64(len(scores))
	divide(s.Precision, n)
	divide(s.Recall, n)
	divide(s.MAP, n)

	for i := range s.F1 {
		s.F1[i] = F1(s.Precision[i], s.Recall[i])
	}

	return s
}

func divide(dst []float64, n float64) {
	for i := range dst {
		dst[i] /= n
	}
}

// Snapshot is the system state at a single cutoff.
type Snapshot struct {
	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	MAP       float64 `json:"map" yaml:"map"`
	F1        float64 `json:"f1" yaml:"f1"`
}

// At returns the snapshot for cutoff k (1-based).
func (s System) At(k int) Snapshot {
	return Snapshot{
		Precision: s.Precision[k-1],
		Recall:    s.Recall[k-1],
		MAP:       s.MAP[k-1],
		F1:        s.F1[k-1],
	}
}

// Final returns the snapshot at the deepest computed cutoff.
func (s System) Final() Snapshot {
	return s.At(len(s.Precision))
}

// ReportingPoints lists kRange, 2*kRange, ... up to and including maxK.
func ReportingPoints(maxK, kRange int) []int {
	points := []int{kRange}
	for k := 2 * kRange; k <= maxK; k += kRange {
		points = append(points, k)
	}
	return points
}

// ValidateCutoffs rejects depths that would leave a reporting point outside the computed series.
func ValidateCutoffs(maxK, kRange int) error {
	if maxK < 1 {
		return apperr.NewValidation(fmt.Sprintf("max_k must be positive, got %d", maxK))
	}
	if kRange < 1 {
		return apperr.NewValidation(fmt.Sprintf("k_range must be positive, got %d", kRange))
	}
	if kRange > maxK {
		return apperr.NewValidation(fmt.Sprintf("k_range %d exceeds max_k %d", kRange, maxK))
	}
	return nil
}
