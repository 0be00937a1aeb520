// Package relevance localizes resume-to-job similarity with overlapping context windows.
package relevance

import (
	"iter"
	"strings"
)

// DefaultWindowSize is the target number of words per window.
const DefaultWindowSize = 100

// ContextWindow is an immutable chunk of source text.
type ContextWindow struct {
	Index     int    // Position in the window sequence
	StartWord int    // Offset of the first word in the source
	Text      string // Space-joined words of the window
}

// Windows yields overlapping windows of size words with a stride of size/2.
// The final partial window is included when non-empty. The sequence is lazy
// and may be ranged over any number of times.
func Windows(text string, size int) iter.Seq[ContextWindow] {
	if size <= 0 {
		size = DefaultWindowSize
	}
	stride := max(size/2, 1)

	return func(yield func(ContextWindow) bool) {
		words := strings.Fields(text)
		for i, start := 0, 0; start < len(words); i, start = i+1, start+stride {
			end := min(start+size, len(words))
			w := ContextWindow{
				Index:     i,
				StartWord: start,
				Text:      strings.Join(words[start:end], " "),
			}
			if !yield(w) {
				return
			}
		}
	}
}
