// Package roles compares the seniority and role context of a resume and a job description.
package roles

import "regexp"

// Role labels
const (
	RoleManagement = "management"
	RoleSenior     = "senior"
	RoleMid        = "mid"
	RoleJunior     = "junior"
	RoleUnknown    = "unknown"
)

// RolePattern pairs a role label with its matching rule.
type RolePattern struct {
	Label string
	Rule  *regexp.Regexp
}

// rolePatterns are scanned in priority order when assigning a label.
var rolePatterns = []RolePattern{
	{Label: RoleManagement, Rule: regexp.MustCompile(`(?i)\b(?:manager|management|director|head of|vp|vice president|team lead|managed a team|people leadership)\b`)},
	{Label: RoleSenior, Rule: regexp.MustCompile(`(?i)\b(?:senior|sr|lead|principal|staff|architect)\b`)},
	{Label: RoleMid, Rule: regexp.MustCompile(`(?i)\b(?:mid[- ]level|intermediate|engineer ii|developer ii)\b`)},
	{Label: RoleJunior, Rule: regexp.MustCompile(`(?i)\b(?:junior|jr|entry[- ]level|graduate|intern|internship|associate engineer)\b`)},
}

// Patterns returns the role patterns in priority order.
func Patterns() []RolePattern {
	out := make([]RolePattern, len(rolePatterns))
	copy(out, rolePatterns)
	return out
}
