package relevance

import "fmt"

// EmptyInputError indicates one side produced no context windows.
// It is distinct from a legitimate zero relevance.
type EmptyInputError struct {
	Side string // "resume" or "job"
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("empty input: %s text produced no context windows", e.Side)
}
