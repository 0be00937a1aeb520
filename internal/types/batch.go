package types

import "sort"

// TaskStatus is the lifecycle state of a single batch item.
type TaskStatus string

// Task lifecycle: pending -> running -> {succeeded, failed, timed_out}
const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskSucceeded TaskStatus = "succeeded"
	TaskFailed    TaskStatus = "failed"
	TaskTimedOut  TaskStatus = "timed_out"
)

// Terminal reports whether no further transition is possible.
func (s TaskStatus) Terminal() bool {
	return s == TaskSucceeded || s == TaskFailed || s == TaskTimedOut
}

// BatchResult is the per-resume record returned by batch ranking.
// Exactly one of Result or Error is set.
type BatchResult struct {
	Identifier string            `json:"identifier"`
	Status     TaskStatus        `json:"status"`
	Result     *MatchScoreResult `json:"result,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// RankResults is the envelope written by the rank command and API.
type RankResults struct {
	RunID   string        `json:"run_id,omitempty"`
	Results []BatchResult `json:"results"`
}

// SortByIdentifier orders results by identifier, restoring a stable input-independent order.
func SortByIdentifier(results []BatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Identifier < results[j].Identifier
	})
}

// SortByScore orders successful results by total score (descending), followed by failures.
// Ties fall back to identifier order.
func SortByScore(results []BatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if (a.Result != nil) != (b.Result != nil) {
			return a.Result != nil
		}
		if a.Result != nil && a.Result.TotalScore != b.Result.TotalScore {
			return a.Result.TotalScore > b.Result.TotalScore
		}
		return a.Identifier < b.Identifier
	})
}

// CountByStatus tallies results per status.
func CountByStatus(results []BatchResult) map[TaskStatus]int {
	counts := make(map[TaskStatus]int)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}
