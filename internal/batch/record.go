package batch

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/types"
)

// RunStore persists rank runs. *db.DB satisfies it.
type RunStore interface {
	CreateRankRun(ctx context.Context, jobText string, total int, weights map[string]float64) (uuid.UUID, error)
	SaveRankResults(ctx context.Context, runID uuid.UUID, results []types.BatchResult) error
	CompleteRankRun(ctx context.Context, runID uuid.UUID, status string) error
}

// RunStatus maps the error returned by Rank to a stored run status.
func RunStatus(err error) string {
	var timeout *BatchTimeoutError
	switch {
	case err == nil:
		return db.RunStatusCompleted
	case errors.As(err, &timeout):
		return db.RunStatusTimedOut
	default:
		return db.RunStatusFailed
	}
}

// RankAndRecord ranks like Rank and, when store is non-nil, records the run and
// its results. Persistence problems are logged and yield uuid.Nil; they never
// fail the ranking itself. Results are stored even if ctx is cancelled mid-run.
func (r *Ranker) RankAndRecord(ctx context.Context, store RunStore, identifiers []string, jobText string, weights map[string]float64) (uuid.UUID, []types.BatchResult, error) {
	if err := validateBatch(identifiers, jobText); err != nil {
		return uuid.Nil, nil, err
	}
	if store == nil {
		results, err := r.Rank(ctx, identifiers, jobText)
		return uuid.Nil, results, err
	}

	runID, err := store.CreateRankRun(ctx, jobText, len(identifiers), weights)
	if err != nil {
		r.logger.Warn("could not record rank run", zap.Error(err))
		results, err := r.Rank(ctx, identifiers, jobText)
		return uuid.Nil, results, err
	}

	results, rankErr := r.Rank(ctx, identifiers, jobText)

	saveCtx := context.WithoutCancel(ctx)
	status := RunStatus(rankErr)
	if rankErr == nil {
		if err := store.SaveRankResults(saveCtx, runID, results); err != nil {
			r.logger.Warn("could not save rank results", zap.Stringer("run_id", runID), zap.Error(err))
			status = db.RunStatusFailed
		}
	}
	if err := store.CompleteRankRun(saveCtx, runID, status); err != nil {
		r.logger.Warn("could not complete rank run", zap.Stringer("run_id", runID), zap.Error(err))
	}
	return runID, results, rankErr
}
