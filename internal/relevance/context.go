package relevance

import (
	"slices"

	"github.com/jonathan/resume-matcher/internal/similarity"
)

// Keys of the map returned by Analyzer.Relevance
const (
	KeyRelevance = "relevance"
	KeyPeak      = "peak"
)

// Similarer scores two texts in [0,1].
type Similarer interface {
	Similarity(a, b string) float64
}

// Analyzer compares every job window against every resume window.
type Analyzer struct {
	sim        Similarer
	windowSize int
}

// NewAnalyzer creates an analyzer. A nil similarer selects the default
// TF-IDF engine; a non-positive size selects DefaultWindowSize.
func NewAnalyzer(sim Similarer, windowSize int) *Analyzer {
	if sim == nil {
		sim = similarity.New(similarity.DefaultOptions())
	}
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &Analyzer{sim: sim, windowSize: windowSize}
}

// Relevance averages, over job windows, the best similarity against any resume window.
// The result holds "relevance" (the mean) and "peak" (the largest best-window score).
// An empty side fails with *EmptyInputError.
func (a *Analyzer) Relevance(resumeText, jobText string) (map[string]float64, error) {
	resumeWindows := slices.Collect(Windows(resumeText, a.windowSize))
	if len(resumeWindows) == 0 {
		return nil, &EmptyInputError{Side: "resume"}
	}
	jobWindows := slices.Collect(Windows(jobText, a.windowSize))
	if len(jobWindows) == 0 {
		return nil, &EmptyInputError{Side: "job"}
	}

	sum, peak := 0.0, 0.0
	for _, jw := range jobWindows {
		best := 0.0
		for _, rw := range resumeWindows {
			if s := a.sim.Similarity(jw.Text, rw.Text); s > best {
				best = s
			}
		}
		sum += best
		peak = max(peak, best)
	}

	return map[string]float64{
		KeyRelevance: sum / float64(len(jobWindows)),
		KeyPeak:      peak,
	}, nil
}
