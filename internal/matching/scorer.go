package matching

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/experience"
	"github.com/jonathan/resume-matcher/internal/relevance"
	"github.com/jonathan/resume-matcher/internal/roles"
	"github.com/jonathan/resume-matcher/internal/similarity"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultMaxTextLength is the largest accepted resume or job text, in characters.
const DefaultMaxTextLength = 100000

// Scorer computes MatchScoreResults under a fixed, validated weight configuration.
// It holds no per-request state and is safe for concurrent use.
type Scorer struct {
	weights       MatchWeights
	maxTextLength int
	skills        *skills.Extractor
	keyword       *similarity.Engine
	semantic      *similarity.Engine
	context       *relevance.Analyzer
	roles         *roles.Analyzer
	logger        *zap.Logger
}

// Option customizes a Scorer.
type Option func(*Scorer)

// WithLogger sets the logger used for clamp anomalies.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxTextLength overrides DefaultMaxTextLength.
func WithMaxTextLength(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.maxTextLength = n
		}
	}
}

// WithSkillExtractor replaces the built-in skill catalog.
func WithSkillExtractor(e *skills.Extractor) Option {
	return func(s *Scorer) {
		if e != nil {
			s.skills = e
		}
	}
}

// WithSimilarityOptions configures the keyword and semantic engines separately.
func WithSimilarityOptions(keyword, semantic similarity.Options) Option {
	return func(s *Scorer) {
		s.keyword = similarity.New(keyword)
		s.semantic = similarity.New(semantic)
	}
}

// NewScorer validates weights and builds a scorer. Invalid weights fail with
// *ConfigurationError and no scorer is returned.
func NewScorer(weights MatchWeights, opts ...Option) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	s := &Scorer{
		weights:       weights,
		maxTextLength: DefaultMaxTextLength,
		skills:        skills.NewExtractor(nil),
		keyword:       similarity.New(similarity.DefaultOptions()),
		semantic:      similarity.New(similarity.DefaultOptions()),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.context = relevance.NewAnalyzer(s.keyword, relevance.DefaultWindowSize)
	s.roles = roles.NewAnalyzer(s.keyword)

	return s, nil
}

// Weights returns the scorer's weight configuration.
func (s *Scorer) Weights() MatchWeights {
	return s.weights
}

// ValidateInputs checks the resume and job texts without scoring them.
func (s *Scorer) ValidateInputs(resumeText, jobText string) error {
	if err := s.validateText("resume_text", resumeText); err != nil {
		return err
	}
	return s.validateText("job_description", jobText)
}

func (s *Scorer) validateText(field, text string) error {
	if strings.TrimSpace(text) == "" {
		return &InvalidInputError{Field: field, Message: "text is empty"}
	}
	if n := utf8.RuneCountInString(text); n > s.maxTextLength {
		return &InvalidInputError{Field: field, Message: fmt.Sprintf("text length %d exceeds maximum %d", n, s.maxTextLength)}
	}
	return nil
}

// Score compares a resume against a job description. Invalid input fails with
// *InvalidInputError; a failing sub-analysis fails with *ScoringError. The
// context is checked between stages so abandoned work stops early.
func (s *Scorer) Score(ctx context.Context, resumeText, jobText string) (result *types.MatchScoreResult, err error) {
	if err := s.ValidateInputs(resumeText, jobText); err != nil {
		return nil, err
	}

	stage := "skills"
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ScoringError{Stage: stage, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	// 1-2. Skills
	resumeSkills := s.skills.Extract(resumeText)
	jobSkills := s.skills.Extract(jobText)
	skill := s.scoreSkills(resumeSkills, jobSkills)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3. Experience
	stage = "experience"
	requiredYears := experience.YearsOfExperience(jobText)
	actualYears := experience.YearsOfExperience(resumeText)
	experienceScore := 1.0
	if requiredYears > 0 {
		experienceScore = min(actualYears/requiredYears, 1.0)
	}

	// 4. Education
	stage = "education"
	resumeEducation := experience.EducationLevels(resumeText)
	jobEducation := experience.EducationLevels(jobText)
	educationScore := scoreEducation(resumeEducation, jobEducation)

	// 5-6. Keyword and semantic similarity
	stage = "keyword_similarity"
	keywordScore := s.keyword.Similarity(resumeText, jobText)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stage = "semantic_similarity"
	semanticScore := s.semantic.Similarity(resumeText, jobText)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 7. Context relevance and role alignment
	stage = "context_relevance"
	contextScores, err := s.context.Relevance(resumeText, jobText)
	if err != nil {
		return nil, &ScoringError{Stage: stage, Cause: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stage = "role_alignment"
	roleScore := s.roles.Alignment(resumeText, jobText)

	// 8. Weighted total
	stage = "total"
	w := s.weights
	total := w.RequiredSkills*skill.required +
		w.PreferredSkills*skill.preferred +
		w.Experience*experienceScore +
		w.Education*educationScore +
		w.KeywordSimilarity*keywordScore +
		w.ContextRelevance*contextScores[relevance.KeyRelevance] +
		w.RoleAlignment*roleScore

	return &types.MatchScoreResult{
		TotalScore:         s.clamp("total_score", total),
		SkillScores:        skill.scores,
		ExperienceScore:    experienceScore,
		EducationScore:     educationScore,
		KeywordScore:       keywordScore,
		SemanticSimilarity: semanticScore,
		ContextScores:      contextScores,
		RoleAlignment:      roleScore,
		MatchedSkills:      skill.matched,
		YearsOfExperience:  actualYears,
		EducationLevel:     resumeEducation,
		ExperienceLevel:    experience.Level(resumeText),
	}, nil
}

// skillBreakdown is the per-category and aggregate outcome of skill matching.
type skillBreakdown struct {
	scores    map[string]float64
	matched   map[string]types.TermSet
	required  float64 // weighted coverage over job categories
	preferred float64 // share of job categories with any match
}

// scoreSkills compares category sets. Categories the job does not mention are
// skipped rather than penalized. Categories are visited in catalog order so the
// floating-point sums are reproducible.
func (s *Scorer) scoreSkills(resume, job types.SkillExtractionResult) skillBreakdown {
	out := skillBreakdown{
		scores:  make(map[string]float64),
		matched: make(map[string]types.TermSet),
	}

	var totalScore, totalWeight float64
	considered, covered := 0, 0
	for _, c := range s.skills.Categories() {
		jobTerms := job[c.Name()]
		if jobTerms.Len() == 0 {
			continue
		}
		matched := resume[c.Name()].Intersect(jobTerms)
		ratio := float64(matched.Len()) / float64(jobTerms.Len())
		score := s.clamp("skill_scores."+c.Name(), ratio*c.Weight())

		out.scores[c.Name()] = score
		out.matched[c.Name()] = matched
		totalScore += score
		totalWeight += c.Weight()
		considered++
		if matched.Len() > 0 {
			covered++
		}
	}

	if considered > 0 {
		out.required = s.clamp("required_skills", totalScore/totalWeight)
		out.preferred = float64(covered) / float64(considered)
	}
	return out
}

// scoreEducation is the share of the job's education labels the resume also holds.
func scoreEducation(resume, job map[string]bool) float64 {
	required, met := 0, 0
	for _, label := range experience.EducationLabels() {
		if !job[label] {
			continue
		}
		required++
		if resume[label] {
			met++
		}
	}
	return float64(met) / float64(max(required, 1))
}

// clamp forces v into [0,1], logging any value that needed it.
func (s *Scorer) clamp(field string, v float64) float64 {
	if v >= 0 && v <= 1 {
		return v
	}
	s.logger.Warn("score out of range, clamping",
		zap.String("field", field),
		zap.Float64("value", v),
	)
	if v > 1 {
		return 1
	}
	return 0
}
