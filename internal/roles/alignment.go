package roles

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/similarity"
)

const (
	// contextRadius is the number of bytes kept on each side of a role match.
	contextRadius = 200
	// summaryLength is the number of runes used when no role pattern matches.
	summaryLength = 500
	// contextSeparator joins role context snippets.
	contextSeparator = " | "
)

// Similarer scores two texts in [0,1].
type Similarer interface {
	Similarity(a, b string) float64
}

// Analyzer computes role alignment between resume and job texts.
type Analyzer struct {
	sim      Similarer
	patterns []RolePattern
}

// NewAnalyzer creates an analyzer over the built-in role patterns.
// A nil similarer selects the default TF-IDF engine.
func NewAnalyzer(sim Similarer) *Analyzer {
	if sim == nil {
		sim = similarity.New(similarity.DefaultOptions())
	}
	return &Analyzer{sim: sim, patterns: rolePatterns}
}

// Label returns the first role label whose pattern matches text, or "unknown".
func (a *Analyzer) Label(text string) string {
	for _, p := range a.patterns {
		if p.Rule.MatchString(text) {
			return p.Label
		}
	}
	return RoleUnknown
}

// Context builds the role-context string for text: the assigned label followed
// by every role match (for all patterns) with its surrounding context. With no
// match at all it is "unknown" plus the opening of the text.
func (a *Analyzer) Context(text string) string {
	label := a.Label(text)
	if label == RoleUnknown {
		return RoleUnknown + ": " + truncateRunes(text, summaryLength)
	}

	snippets := make([]string, 0, 4)
	for _, p := range a.patterns {
		for _, loc := range p.Rule.FindAllStringIndex(text, -1) {
			snippets = append(snippets, surrounding(text, loc[0], loc[1], contextRadius))
		}
	}
	return label + ": " + strings.Join(snippets, contextSeparator)
}

// Alignment returns the similarity between the role contexts of both texts.
func (a *Analyzer) Alignment(resumeText, jobText string) float64 {
	return a.sim.Similarity(a.Context(resumeText), a.Context(jobText))
}

// surrounding returns text[start-radius : end+radius], widened to rune boundaries.
func surrounding(text string, start, end, radius int) string {
	lo := max(start-radius, 0)
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	hi := min(end+radius, len(text))
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}

func truncateRunes(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n])
}
