// Package experience derives years of experience, seniority and education levels from free text.
package experience

import (
	"regexp"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Pattern is an immutable label-to-rule pairing.
type Pattern struct {
	Label string
	Rule  *regexp.Regexp
}

// yearsPattern matches "<number> (+)? years (of)? experience", tolerating one
// qualifier word such as "relevant" or "professional".
var yearsPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\.?\s+(?:of\s+)?(?:[a-z-]+\s+)?experience`)

// levelPatterns are tested in priority order; the first match wins.
var levelPatterns = []Pattern{
	{Label: types.ExperienceSenior, Rule: regexp.MustCompile(`(?i)\b(?:senior|sr|lead|principal|staff engineer|architect)\b`)},
	{Label: types.ExperienceMid, Rule: regexp.MustCompile(`(?i)\b(?:mid[- ]level|mid[- ]senior|intermediate|experienced)\b`)},
	{Label: types.ExperienceJunior, Rule: regexp.MustCompile(`(?i)\b(?:junior|jr|entry[- ]level|graduate|intern(?:ship)?|trainee)\b`)},
}

// educationPatterns are tested independently; several may hold at once.
var educationPatterns = []Pattern{
	{Label: types.EducationPhD, Rule: regexp.MustCompile(`(?i)\b(?:ph\.?\s?d\b\.?|doctorate|doctoral)`)},
	{Label: types.EducationMasters, Rule: regexp.MustCompile(`(?i)\b(?:master'?s?\b|m\.s\.|m\.sc\.?|msc\b|mba\b|m\.eng\b)`)},
	{Label: types.EducationBachelors, Rule: regexp.MustCompile(`(?i)\b(?:bachelor'?s?\b|b\.s\.|b\.a\.|b\.sc\.?|bsc\b|b\.eng\b|undergraduate degree)`)},
	{Label: types.EducationAssociate, Rule: regexp.MustCompile(`(?i)\bassociate'?s?\s+(?:degree|of)\b`)},
	{Label: types.EducationCertifications, Rule: regexp.MustCompile(`(?i)\b(?:certified|certifications?|certificates?)\b`)},
}

// EducationLabels returns the education labels in their fixed order.
func EducationLabels() []string {
	labels := make([]string, len(educationPatterns))
	for i, p := range educationPatterns {
		labels[i] = p.Label
	}
	return labels
}
