package skills

import (
	"regexp"
	"strings"
)

// termNormalizations maps common term variants to canonical names
var termNormalizations = map[string]string{
	"golang":                      "go",
	"reactjs":                     "react",
	"react.js":                    "react",
	"vue.js":                      "vue",
	"nodejs":                      "node.js",
	"k8s":                         "kubernetes",
	"postgres":                    "postgresql",
	"amazon web services":         "aws",
	"google cloud platform":       "gcp",
	"google cloud":                "gcp",
	"front-end":                   "frontend",
	"back-end":                    "backend",
	"problem-solving":             "problem solving",
	"mentorship":                  "mentoring",
	"test-driven development":     "tdd",
	"natural language processing": "nlp",
	"data pipelines":              "data pipeline",
	"restful":                     "rest api",
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeTerm collapses whitespace and maps a matched term to its canonical form
func NormalizeTerm(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return ""
	}
	term = whitespaceRun.ReplaceAllString(term, " ")
	if canonical, ok := termNormalizations[term]; ok {
		return canonical
	}
	return term
}
