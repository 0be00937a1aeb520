package batch

import (
	"fmt"
	"time"
)

// ExtractionError indicates the resume text could not be resolved for one item
type ExtractionError struct {
	Identifier string
	Cause      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Identifier, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// BatchTimeoutError indicates the whole-batch deadline elapsed before every task finished.
//
//nolint:revive // BatchTimeoutError reads better at call sites than TimeoutError
type BatchTimeoutError struct {
	Timeout   time.Duration
	Completed int
	Total     int
}

func (e *BatchTimeoutError) Error() string {
	return fmt.Sprintf("batch timed out after %s: %d of %d tasks completed", e.Timeout, e.Completed, e.Total)
}
