package db

import (
	"time"

	"github.com/google/uuid"
)

// Rank run statuses
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusTimedOut  = "timed_out"
	RunStatusFailed    = "failed"
)

// RankRun is one batch ranking of resumes against a job description.
type RankRun struct {
	ID          uuid.UUID          `json:"id"`
	JobHash     string             `json:"job_hash"`
	JobText     string             `json:"job_text"`
	Total       int                `json:"total"`
	Status      string             `json:"status"`
	Weights     map[string]float64 `json:"weights,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
}

// Resume is a stored resume text.
type Resume struct {
	ID          uuid.UUID `json:"id"`
	Label       string    `json:"label"`
	ContentHash string    `json:"content_hash"`
	Text        string    `json:"text,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
