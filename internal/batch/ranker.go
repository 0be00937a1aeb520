// Package batch scores many resumes against one job description concurrently,
// isolating per-item failures.
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Defaults for Options
const (
	DefaultMaxWorkers   = 32
	DefaultTaskTimeout  = 60 * time.Second
	DefaultBatchTimeout = 300 * time.Second
)

// TextResolver turns an opaque resume identifier into plain text.
type TextResolver interface {
	ResolveText(ctx context.Context, identifier string) (string, error)
}

// ResolverFunc adapts a function to TextResolver.
type ResolverFunc func(ctx context.Context, identifier string) (string, error)

// ResolveText calls f.
func (f ResolverFunc) ResolveText(ctx context.Context, identifier string) (string, error) {
	return f(ctx, identifier)
}

// Scorer scores one resume text against a job description.
type Scorer interface {
	Score(ctx context.Context, resumeText, jobText string) (*types.MatchScoreResult, error)
}

// Options configures concurrency and deadlines.
type Options struct {
	MaxWorkers   int
	TaskTimeout  time.Duration
	BatchTimeout time.Duration
	Logger       *zap.Logger
	// OnResult, if set, observes each finished item. Calls are serialized.
	OnResult func(types.BatchResult)
}

// DefaultOptions returns 32 workers, 60s per task and 300s per batch.
func DefaultOptions() Options {
	return Options{
		MaxWorkers:   DefaultMaxWorkers,
		TaskTimeout:  DefaultTaskTimeout,
		BatchTimeout: DefaultBatchTimeout,
	}
}

// Ranker fans scoring out over a bounded worker pool.
type Ranker struct {
	scorer   Scorer
	resolver TextResolver
	opts     Options
	logger   *zap.Logger
}

// NewRanker creates a ranker. Zero-valued options fall back to defaults.
func NewRanker(scorer Scorer, resolver TextResolver, opts Options) *Ranker {
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = DefaultMaxWorkers
	}
	if opts.TaskTimeout <= 0 {
		opts.TaskTimeout = DefaultTaskTimeout
	}
	if opts.BatchTimeout <= 0 {
		opts.BatchTimeout = DefaultBatchTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{scorer: scorer, resolver: resolver, opts: opts, logger: logger}
}

// task tracks one item through pending -> running -> terminal.
type task struct {
	identifier string
	status     types.TaskStatus
}

// Rank scores every identifier against jobText with at most min(MaxWorkers, n)
// tasks in flight. Per-item failures and per-task timeouts become result records
// and never abort siblings. Results arrive in completion order.
//
// Empty identifiers or job text fail with *matching.InvalidInputError before any
// work starts. If the batch deadline passes first, Rank fails with
// *BatchTimeoutError and returns no results.
func (r *Ranker) Rank(ctx context.Context, identifiers []string, jobText string) ([]types.BatchResult, error) {
	if err := validateBatch(identifiers, jobText); err != nil {
		return nil, err
	}

	batchCtx, cancel := context.WithTimeout(ctx, r.opts.BatchTimeout)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(min(r.opts.MaxWorkers, len(identifiers)))

	var mu sync.Mutex
	results := make([]types.BatchResult, 0, len(identifiers))
	onTime := 0

	for _, id := range identifiers {
		if batchCtx.Err() != nil {
			break
		}
		t := &task{identifier: id, status: types.TaskPending}
		g.Go(func() error {
			res := r.runTask(batchCtx, t, jobText)
			mu.Lock()
			results = append(results, res)
			if batchCtx.Err() == nil {
				onTime++
			}
			if r.opts.OnResult != nil {
				r.opts.OnResult(res)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if onTime == len(identifiers) {
		return results, nil
	}
	if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, ctx.Err()
	}

	r.logger.Error("batch deadline exceeded",
		zap.Duration("timeout", r.opts.BatchTimeout),
		zap.Int("completed", onTime),
		zap.Int("total", len(identifiers)),
	)
	return nil, &BatchTimeoutError{Timeout: r.opts.BatchTimeout, Completed: onTime, Total: len(identifiers)}
}

func validateBatch(identifiers []string, jobText string) error {
	if len(identifiers) == 0 {
		return &matching.InvalidInputError{Field: "resume_sources", Message: "no resumes supplied"}
	}
	if strings.TrimSpace(jobText) == "" {
		return &matching.InvalidInputError{Field: "job_description", Message: "text is empty"}
	}
	return nil
}

type outcome struct {
	result *types.MatchScoreResult
	err    error
}

// runTask resolves and scores one resume under its own deadline. Work left
// running after a timeout observes the cancelled context and stops early.
func (r *Ranker) runTask(ctx context.Context, t *task, jobText string) types.BatchResult {
	t.status = types.TaskRunning
	r.logger.Debug("task started", zap.String("identifier", t.identifier))

	taskCtx, cancel := context.WithTimeout(ctx, r.opts.TaskTimeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{err: fmt.Errorf("task panicked: %v", p)}
			}
		}()
		text, err := r.resolver.ResolveText(taskCtx, t.identifier)
		if err != nil {
			done <- outcome{err: &ExtractionError{Identifier: t.identifier, Cause: err}}
			return
		}
		result, err := r.scorer.Score(taskCtx, text, jobText)
		done <- outcome{result: result, err: err}
	}()

	var o outcome
	select {
	case o = <-done:
	case <-taskCtx.Done():
		o = outcome{err: taskCtx.Err()}
	}

	res := types.BatchResult{Identifier: t.identifier}
	switch {
	case o.err == nil:
		t.status = types.TaskSucceeded
		res.Result = o.result
	case errors.Is(o.err, context.DeadlineExceeded):
		t.status = types.TaskTimedOut
		res.Error = fmt.Sprintf("task timed out: %v", o.err)
	default:
		t.status = types.TaskFailed
		res.Error = o.err.Error()
	}
	res.Status = t.status

	if t.status != types.TaskSucceeded {
		r.logger.Warn("task failed",
			zap.String("identifier", t.identifier),
			zap.String("status", string(t.status)),
			zap.String("error", res.Error),
		)
	}
	return res
}
