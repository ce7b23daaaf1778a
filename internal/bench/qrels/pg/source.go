// Package pg loads evaluation inputs stored in Postgres (see db/migrations).
package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/qrels"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	resultsSQL = `
		SELECT query_id, candidate_id
		FROM run_results
		WHERE run_name = $1
		ORDER BY query_id, rank
	`
	// Queries whose rows are all non-relevant still appear, with no candidates.
	groundTruthSQL = `
		SELECT query_id, CASE WHEN relevance > 0 THEN candidate_id END
		FROM groundtruth
		WHERE collection = $1
		ORDER BY query_id, candidate_id
	`
)

type Source struct {
	db *pgxpool.Pool
}

func NewSource(pool *ConnectionPool) *Source {
	return &Source{db: pool.conn}
}

// LoadResults returns the ranked candidates of a stored retrieval run.
func (s *Source) LoadResults(ctx context.Context, runName string) (qrels.Mapping, error) {
	slog.Info("Loading results from postgres", "run", runName)

	m, err := s.collect(ctx, resultsSQL, runName)
	if err != nil {
		return nil, apperr.NewDataLoad("postgres:run_results/"+runName, err)
	}
	return m, nil
}

// LoadGroundTruth returns the relevant candidates of a judged collection.
func (s *Source) LoadGroundTruth(ctx context.Context, collection string) (qrels.Mapping, error) {
	slog.Info("Loading ground truth from postgres", "collection", collection)

	m, err := s.collect(ctx, groundTruthSQL, collection)
	if err != nil {
		return nil, apperr.NewDataLoad("postgres:groundtruth/"+collection, err)
	}
	return m, nil
}

func (s *Source) collect(ctx context.Context, sql string, arg string) (qrels.Mapping, error) {
	rows, err := s.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	m := make(qrels.Mapping)
	var queryID string
	var candidateID *string
	_, err = pgx.ForEachRow(rows, []any{&queryID, &candidateID}, func() error {
		ids := m[queryID]
		if ids == nil {
			ids = []string{}
		}
		if candidateID != nil {
			ids = append(ids, *candidateID)
		}
		m[queryID] = ids
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan rows: %w", err)
	}

	if len(m) == 0 {
		return nil, fmt.Errorf("no rows for %q", arg)
	}
	return m, nil
}
