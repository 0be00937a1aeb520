package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/types"
)

// CreateRankRun records the start of a batch ranking and returns its ID.
func (db *DB) CreateRankRun(ctx context.Context, jobText string, total int, weights map[string]float64) (uuid.UUID, error) {
	weightsJSON, err := json.Marshal(weights)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal weights: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO rank_runs (job_hash, job_text, total, status, weights)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		ingestion.ContentHash(jobText), jobText, total, RunStatusRunning, weightsJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create rank run: %w", err)
	}
	return id, nil
}

// CompleteRankRun sets the final status of a run.
func (db *DB) CompleteRankRun(ctx context.Context, runID uuid.UUID, status string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE rank_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete rank run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rank run %s: %w", runID, ErrNotFound)
	}
	return nil
}

// GetRankRun retrieves a run by ID. Returns nil if not found.
func (db *DB) GetRankRun(ctx context.Context, runID uuid.UUID) (*RankRun, error) {
	var run RankRun
	var weightsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_hash, job_text, total, status, weights, created_at, completed_at
		 FROM rank_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.JobHash, &run.JobText, &run.Total, &run.Status, &weightsJSON, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rank run: %w", err)
	}
	if len(weightsJSON) > 0 {
		if err := json.Unmarshal(weightsJSON, &run.Weights); err != nil {
			return nil, fmt.Errorf("failed to decode run weights: %w", err)
		}
	}
	return &run, nil
}

// resultRow flattens a batch record into column values.
func resultRow(r types.BatchResult) (score *float64, payload []byte, err error) {
	if r.Result == nil {
		return nil, nil, nil
	}
	payload, err = json.Marshal(r.Result)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal result for %s: %w", r.Identifier, err)
	}
	total := r.Result.TotalScore
	return &total, payload, nil
}

// SaveRankResults stores every record of a run in one transaction.
func (db *DB) SaveRankResults(ctx context.Context, runID uuid.UUID, results []types.BatchResult) error {
	batch := &pgx.Batch{}
	for _, r := range results {
		score, payload, err := resultRow(r)
		if err != nil {
			return err
		}
		batch.Queue(
			`INSERT INTO rank_results (run_id, identifier, status, total_score, result, error)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (run_id, identifier) DO UPDATE
			 SET status = $3, total_score = $4, result = $5, error = $6`,
			runID, r.Identifier, string(r.Status), score, payload, r.Error,
		)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save rank results: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rank results: %w", err)
	}
	return nil
}

// ListRankResults returns a run's records, highest score first and failures last.
func (db *DB) ListRankResults(ctx context.Context, runID uuid.UUID) ([]types.BatchResult, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT identifier, status, result, error
		 FROM rank_results WHERE run_id = $1
		 ORDER BY total_score DESC NULLS LAST, identifier`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rank results: %w", err)
	}
	defer rows.Close()

	var results []types.BatchResult
	for rows.Next() {
		var (
			r       types.BatchResult
			status  string
			payload []byte
		)
		if err := rows.Scan(&r.Identifier, &status, &payload, &r.Error); err != nil {
			return nil, fmt.Errorf("failed to scan rank result: %w", err)
		}
		r.Status = types.TaskStatus(status)
		if len(payload) > 0 {
			r.Result = &types.MatchScoreResult{}
			if err := json.Unmarshal(payload, r.Result); err != nil {
				return nil, fmt.Errorf("failed to decode result for %s: %w", r.Identifier, err)
			}
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
