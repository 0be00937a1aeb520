package skills

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Extractor applies a fixed set of skill categories to free text.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	categories []SkillCategory
}

// NewExtractor creates an extractor over the given categories.
// A nil or empty slice selects the built-in catalog.
func NewExtractor(categories []SkillCategory) *Extractor {
	if len(categories) == 0 {
		categories = catalog
	}
	return &Extractor{categories: categories}
}

// Categories returns the categories the extractor applies, in order.
func (e *Extractor) Categories() []SkillCategory {
	out := make([]SkillCategory, len(e.categories))
	copy(out, e.categories)
	return out
}

// Extract collects every distinct match per category. Entity mentions that
// satisfy a category rule are added to that category as well. No weighting is
// applied here; categories with no match yield an empty set.
func (e *Extractor) Extract(text string) types.SkillExtractionResult {
	result := make(types.SkillExtractionResult, len(e.categories))
	lower := strings.ToLower(text)

	for _, c := range e.categories {
		set := types.NewTermSet()
		for _, m := range c.FindAll(lower) {
			if term := NormalizeTerm(m); term != "" {
				set.Add(term)
			}
		}
		result[c.name] = set
	}

	for _, entity := range ExtractEntities(text) {
		for _, c := range e.categories {
			if c.Matches(entity) {
				result[c.name].Add(NormalizeTerm(entity))
			}
		}
	}

	return result
}

// ExtractSkills runs the built-in catalog over text.
func ExtractSkills(text string) types.SkillExtractionResult {
	return defaultExtractor.Extract(text)
}

var defaultExtractor = NewExtractor(nil)
