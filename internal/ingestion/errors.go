package ingestion

import "fmt"

// UnsupportedSourceError indicates an identifier whose format cannot be turned into text.
type UnsupportedSourceError struct {
	Identifier string
	Reason     string
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("unsupported resume source %q: %s", e.Identifier, e.Reason)
}
