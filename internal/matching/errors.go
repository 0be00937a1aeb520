package matching

import "fmt"

// ConfigurationError indicates invalid scorer configuration, such as weights
// that do not sum to ~1.0. It is fatal at construction.
type ConfigurationError struct {
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// InvalidInputError indicates input rejected before any computation started
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// ScoringError indicates an internal scoring step failed
type ScoringError struct {
	Stage string
	Cause error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring failed at %s: %v", e.Stage, e.Cause)
}

func (e *ScoringError) Unwrap() error {
	return e.Cause
}
