package experience

import (
	"strconv"

	"github.com/jonathan/resume-matcher/internal/types"
)

// YearsOfExperience returns the largest "<n> years experience" figure in text, or 0.
func YearsOfExperience(text string) float64 {
	best := 0.0
	for _, m := range yearsPattern.FindAllStringSubmatch(text, -1) {
		years, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if years > best {
			best = years
		}
	}
	return best
}

// Level returns the first matching experience level (senior, mid, junior) or "unspecified".
func Level(text string) string {
	for _, p := range levelPatterns {
		if p.Rule.MatchString(text) {
			return p.Label
		}
	}
	return types.ExperienceUnspecified
}

// EducationLevels reports, for every education label, whether it occurs in text.
func EducationLevels(text string) map[string]bool {
	levels := make(map[string]bool, len(educationPatterns))
	for _, p := range educationPatterns {
		levels[p.Label] = p.Rule.MatchString(text)
	}
	return levels
}
