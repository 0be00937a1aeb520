// Package matching combines skill, experience, education, similarity, context and
// role sub-scores into one weighted resume-to-job match score.
package matching

import (
	"fmt"
	"math"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// WeightSumTolerance is the allowed distance of the weight sum from 1.0.
const WeightSumTolerance = 0.01

// MatchWeights holds the seven component weights of the total score.
type MatchWeights struct {
	RequiredSkills    float64 `mapstructure:"required_skills" json:"required_skills"`
	PreferredSkills   float64 `mapstructure:"preferred_skills" json:"preferred_skills"`
	Experience        float64 `mapstructure:"experience" json:"experience"`
	Education         float64 `mapstructure:"education" json:"education"`
	KeywordSimilarity float64 `mapstructure:"keyword_similarity" json:"keyword_similarity"`
	ContextRelevance  float64 `mapstructure:"context_relevance" json:"context_relevance"`
	RoleAlignment     float64 `mapstructure:"role_alignment" json:"role_alignment"`
}

// DefaultWeights returns the reference configuration (sums to 1.00).
func DefaultWeights() MatchWeights {
	return MatchWeights{
		RequiredSkills:    0.25,
		PreferredSkills:   0.15,
		Experience:        0.20,
		Education:         0.15,
		KeywordSimilarity: 0.10,
		ContextRelevance:  0.05,
		RoleAlignment:     0.10,
	}
}

// Sum returns the total of all weights.
func (w MatchWeights) Sum() float64 {
	return w.RequiredSkills + w.PreferredSkills + w.Experience + w.Education +
		w.KeywordSimilarity + w.ContextRelevance + w.RoleAlignment
}

// Validate checks that no weight is negative and the sum lies in [0.99, 1.01].
func (w MatchWeights) Validate() error {
	m := w.AsMap()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if v := m[name]; v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return &ConfigurationError{Message: fmt.Sprintf("weight %s must be a non-negative number, got %v", name, v)}
		}
	}
	sum := w.Sum()
	if math.Abs(sum-1.0) > WeightSumTolerance {
		return &ConfigurationError{Message: fmt.Sprintf("weights must sum to 1.0 (±%.2f), got %.4f", WeightSumTolerance, sum)}
	}
	return nil
}

// AsMap returns the weights keyed by their configuration names.
func (w MatchWeights) AsMap() map[string]float64 {
	return map[string]float64{
		"required_skills":    w.RequiredSkills,
		"preferred_skills":   w.PreferredSkills,
		"experience":         w.Experience,
		"education":          w.Education,
		"keyword_similarity": w.KeywordSimilarity,
		"context_relevance":  w.ContextRelevance,
		"role_alignment":     w.RoleAlignment,
	}
}

// NewWeights validates w and returns it unchanged on success.
func NewWeights(w MatchWeights) (MatchWeights, error) {
	if err := w.Validate(); err != nil {
		return MatchWeights{}, err
	}
	return w, nil
}

// WeightsFromMap decodes a key-to-float mapping into validated weights.
// Every one of the seven keys is required and unknown keys are rejected.
func WeightsFromMap(m map[string]float64) (MatchWeights, error) {
	var w MatchWeights
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &w,
		Metadata:    &md,
		ErrorUnused: true,
	})
	if err != nil {
		return MatchWeights{}, &ConfigurationError{Message: "failed to build weights decoder", Cause: err}
	}
	if err := decoder.Decode(m); err != nil {
		return MatchWeights{}, &ConfigurationError{Message: "failed to decode weights", Cause: err}
	}
	if len(md.Unset) > 0 {
		sort.Strings(md.Unset)
		return MatchWeights{}, &ConfigurationError{Message: fmt.Sprintf("missing weights: %v", md.Unset)}
	}
	return NewWeights(w)
}
