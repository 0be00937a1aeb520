// Package similarity scores how alike two texts are with TF-IDF cosine similarity.
//
// The vector space is built from exactly the two texts being compared; nothing
// is cached between calls, so every call is independent and safe to run concurrently.
package similarity

import (
	"math"
	"sort"
)

// Defaults for the pairwise vector space
const (
	DefaultMinN        = 1
	DefaultMaxN        = 3
	DefaultMaxFeatures = 5000
)

// Options configures term extraction for the vector space.
type Options struct {
	MinN        int // Smallest n-gram span
	MaxN        int // Largest n-gram span
	MaxFeatures int // Vocabulary cap; most frequent terms are kept
}

// DefaultOptions returns the 1-3 gram, 5000-term configuration.
func DefaultOptions() Options {
	return Options{MinN: DefaultMinN, MaxN: DefaultMaxN, MaxFeatures: DefaultMaxFeatures}
}

// Engine computes pairwise similarity under fixed options.
type Engine struct {
	opts Options
}

// New creates an engine. Zero-valued option fields fall back to defaults.
func New(opts Options) *Engine {
	if opts.MinN <= 0 {
		opts.MinN = DefaultMinN
	}
	if opts.MaxN < opts.MinN {
		opts.MaxN = max(DefaultMaxN, opts.MinN)
	}
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = DefaultMaxFeatures
	}
	return &Engine{opts: opts}
}

// Similarity returns the cosine similarity in [0,1] of the TF-IDF vectors of a and b.
// Empty texts and texts with no shared vocabulary yield 0.
func (e *Engine) Similarity(a, b string) float64 {
	countsA := e.termCounts(a)
	countsB := e.termCounts(b)
	if len(countsA) == 0 || len(countsB) == 0 {
		return 0.0
	}

	vocab := e.vocabulary(countsA, countsB)

	// Smoothed idf over the two-document corpus: ln((1+n)/(1+df)) + 1
	const docs = 2.0
	var dot, normA, normB float64
	for _, term := range vocab {
		tfA, tfB := float64(countsA[term]), float64(countsB[term])
		df := 0.0
		if tfA > 0 {
			df++
		}
		if tfB > 0 {
			df++
		}
		idf := math.Log((1+docs)/(1+df)) + 1
		wA, wB := tfA*idf, tfB*idf
		dot += wA * wB
		normA += wA * wA
		normB += wB * wB
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return clamp01(dot / math.Sqrt(normA*normB))
}

// termCounts returns raw n-gram frequencies for one text.
func (e *Engine) termCounts(text string) map[string]int {
	grams := NGrams(Tokenize(text), e.opts.MinN, e.opts.MaxN)
	counts := make(map[string]int, len(grams))
	for _, g := range grams {
		counts[g]++
	}
	return counts
}

// vocabulary returns the capped joint vocabulary in lexical order so that
// summation order, and therefore the result, is deterministic.
func (e *Engine) vocabulary(countsA, countsB map[string]int) []string {
	total := make(map[string]int, len(countsA)+len(countsB))
	for t, c := range countsA {
		total[t] += c
	}
	for t, c := range countsB {
		total[t] += c
	}

	terms := make([]string, 0, len(total))
	for t := range total {
		terms = append(terms, t)
	}

	if len(terms) > e.opts.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if total[terms[i]] != total[terms[j]] {
				return total[terms[i]] > total[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:e.opts.MaxFeatures]
	}

	sort.Strings(terms)
	return terms
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var defaultEngine = New(DefaultOptions())

// Similarity compares two texts with the default engine.
func Similarity(a, b string) float64 {
	return defaultEngine.Similarity(a, b)
}
