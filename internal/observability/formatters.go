// Package observability renders human-readable summaries for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	barWidth       = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for line := range strings.SplitSeq(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		return string([]rune(s)[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// bar renders v in [0,1] as a fixed-width gauge.
func bar(v float64) string {
	filled := int(v*barWidth + 0.5)
	filled = max(0, min(barWidth, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintMatchResult outputs the component scores and matched skills of one comparison.
func (p *Printer) PrintMatchResult(identifier string, r *types.MatchScoreResult) {
	if r == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total      %s %.3f\n", bar(r.TotalScore), r.TotalScore)
	sb.WriteString("\n")
	rows := []struct {
		label string
		value float64
	}{
		{"Experience", r.ExperienceScore},
		{"Education", r.EducationScore},
		{"Keywords", r.KeywordScore},
		{"Semantic", r.SemanticSimilarity},
		{"Context", r.ContextScores["relevance"]},
		{"Role", r.RoleAlignment},
	}
	for _, row := range rows {
		fmt.Fprintf(&sb, "%-10s %s %.3f\n", row.label, bar(row.value), row.value)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Level: %s   Years: %.1f\n", r.ExperienceLevel, r.YearsOfExperience)

	categories := make([]string, 0, len(r.MatchedSkills))
	for category, terms := range r.MatchedSkills {
		if terms.Len() > 0 {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		si, sj := r.SkillScores[categories[i]], r.SkillScores[categories[j]]
		if si != sj {
			return si > sj
		}
		return categories[i] < categories[j]
	})
	if len(categories) > 0 {
		sb.WriteString("\nMatched skills:\n")
		for i, category := range categories {
			if i == maxItemsToShow {
				fmt.Fprintf(&sb, "  ... and %d more categories\n", len(categories)-maxItemsToShow)
				break
			}
			fmt.Fprintf(&sb, "  • %s: %s\n", category, strings.Join(r.MatchedSkills[category].Sorted(), ", "))
		}
	}

	p.printBox("MATCH: "+identifier, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankResults outputs a leaderboard of a batch run with status counts.
func (p *Printer) PrintRankResults(rr *types.RankResults) {
	if rr == nil || len(rr.Results) == 0 {
		return
	}

	counts := types.CountByStatus(rr.Results)
	var sb strings.Builder
	if rr.RunID != "" {
		fmt.Fprintf(&sb, "Run: %s\n", rr.RunID)
	}
	fmt.Fprintf(&sb, "Resumes: %d  succeeded: %d  failed: %d  timed out: %d\n\n",
		len(rr.Results), counts[types.TaskSucceeded], counts[types.TaskFailed], counts[types.TaskTimedOut])

	for i, res := range rr.Results {
		switch {
		case res.Status == types.TaskSucceeded && res.Result != nil:
			fmt.Fprintf(&sb, "#%-2d %.3f  %s\n", i+1, res.Result.TotalScore, res.Identifier)
		default:
			fmt.Fprintf(&sb, "    %-9s %s\n", res.Status, res.Identifier)
			if res.Error != "" {
				fmt.Fprintf(&sb, "      %s\n", res.Error)
			}
		}
	}

	p.printBox("RANKED RESUMES", strings.TrimSuffix(sb.String(), "\n"))
}
