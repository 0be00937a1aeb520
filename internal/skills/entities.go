package skills

import (
	"regexp"
	"strings"
)

// maxEntityTokens bounds how long a capitalized run may be before it stops
// looking like an organization or product name.
const maxEntityTokens = 3

// entityPattern finds runs of capitalized or acronym tokens such as
// "Google Cloud Platform", "PostgreSQL" or "AWS".
var entityPattern = regexp.MustCompile(`\b[A-Z](?:[A-Za-z0-9+#\-]|\.[A-Za-z0-9])*(?:[ \t]+[A-Z](?:[A-Za-z0-9+#\-]|\.[A-Za-z0-9])*)*`)

// sentenceWords are capitalized words that begin sentences or headings far more
// often than they name anything.
var sentenceWords = map[string]bool{
	"a": true, "an": true, "the": true, "we": true, "our": true, "you": true, "your": true,
	"i": true, "this": true, "in": true, "at": true, "for": true, "with": true, "and": true,
	"experience": true, "requirements": true, "responsibilities": true, "skills": true,
	"education": true, "summary": true, "about": true,
}

// ExtractEntities returns distinct organization/product-like mentions, lower-cased,
// in order of first appearance.
func ExtractEntities(text string) []string {
	matches := entityPattern.FindAllString(text, -1)
	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, len(matches))

	for _, m := range matches {
		m = strings.TrimRight(m, "-")
		tokens := strings.Fields(m)
		for len(tokens) > 0 && sentenceWords[strings.ToLower(tokens[0])] {
			tokens = tokens[1:]
		}
		if len(tokens) == 0 || len(tokens) > maxEntityTokens {
			continue
		}
		entity := strings.ToLower(strings.Join(tokens, " "))
		if len(entity) < 2 || seen[entity] {
			continue
		}
		seen[entity] = true
		out = append(out, entity)
	}
	return out
}
