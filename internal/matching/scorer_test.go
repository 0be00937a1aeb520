package matching

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/resume-matcher/internal/skills"
)

const sampleJob = `Senior Backend Engineer
We are looking for a senior engineer with 5+ years experience building microservices
in python and java. Experience with docker, kubernetes and aws is required.
Bachelor's degree in Computer Science or related field.`

const sampleResume = `Jane Doe - Senior Software Engineer
7 years of experience designing microservices with python, django and postgresql.
Deployed services using docker and kubernetes on aws. Mentored junior engineers.
B.S. in Computer Science.`

func newTestScorer(t *testing.T, opts ...Option) *Scorer {
	t.Helper()
	s, err := NewScorer(DefaultWeights(), opts...)
	require.NoError(t, err)
	return s
}

func TestNewScorer_RejectsBadWeights(t *testing.T) {
	w := DefaultWeights()
	w.Experience = 0.9

	s, err := NewScorer(w)
	assert.Nil(t, s)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

func TestScore_BoundsHold(t *testing.T) {
	s := newTestScorer(t)
	result, err := s.Score(context.Background(), sampleResume, sampleJob)
	require.NoError(t, err)

	ratios := []float64{
		result.TotalScore, result.ExperienceScore, result.EducationScore,
		result.KeywordScore, result.SemanticSimilarity, result.RoleAlignment,
	}
	for _, v := range result.SkillScores {
		ratios = append(ratios, v)
	}
	for _, v := range result.ContextScores {
		ratios = append(ratios, v)
	}
	for _, v := range ratios {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.GreaterOrEqual(t, result.YearsOfExperience, 0.0)
	assert.Contains(t, result.ContextScores, "relevance")
}

func TestScore_SampleBreakdown(t *testing.T) {
	s := newTestScorer(t)
	result, err := s.Score(context.Background(), sampleResume, sampleJob)
	require.NoError(t, err)

	assert.Equal(t, 7.0, result.YearsOfExperience)
	assert.Equal(t, 1.0, result.ExperienceScore)
	assert.Equal(t, 1.0, result.EducationScore)
	assert.Equal(t, "senior", result.ExperienceLevel)
	assert.True(t, result.EducationLevel["bachelors"])
	assert.ElementsMatch(t, []string{"docker", "kubernetes"}, result.MatchedSkills[skills.CategoryDevOps].Sorted())
	assert.Greater(t, result.TotalScore, 0.5)
}

func TestScore_PerfectKeywordOverlap(t *testing.T) {
	s := newTestScorer(t)
	result, err := s.Score(context.Background(), sampleJob, sampleJob)
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.KeywordScore)
	assert.Equal(t, 1.0, result.SemanticSimilarity)
	assert.InDelta(t, 1.0, result.RoleAlignment, 1e-9)
	assert.InDelta(t, 1.0, result.ContextScores["relevance"], 1e-9)
}

func TestScore_NoExperienceRequirementIsSatisfied(t *testing.T) {
	s := newTestScorer(t)
	job := "Backend developer working with python and postgresql."

	for _, resume := range []string{"No experience listed.", "1 year experience", "12 years of experience"} {
		result, err := s.Score(context.Background(), resume, job)
		require.NoError(t, err)
		assert.Equal(t, 1.0, result.ExperienceScore, resume)
	}
}

func TestScore_ExperienceShortfall(t *testing.T) {
	s := newTestScorer(t)
	result, err := s.Score(context.Background(),
		"Developer with 2 years experience in python.",
		"Looking for 5+ years experience in python.")
	require.NoError(t, err)

	assert.InDelta(t, 0.4, result.ExperienceScore, 1e-12)
	assert.Equal(t, 2.0, result.YearsOfExperience)
}

func TestScore_SkillIntersectionOnlyCreditsJobCategories(t *testing.T) {
	s := newTestScorer(t)
	job := "must know python and java"
	resume := "python and java expert, also docker and kubernetes and terraform"

	result, err := s.Score(context.Background(), resume, job)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"java", "python"}, result.MatchedSkills[skills.CategorySoftwareEngineering].Sorted())
	assert.NotContains(t, result.MatchedSkills, skills.CategoryDevOps)
	assert.NotContains(t, result.SkillScores, skills.CategoryDevOps)
	assert.InDelta(t, 1.0, result.SkillScores[skills.CategorySoftwareEngineering], 1e-12)
}

func TestScore_AbsentJobCategoryIsSkipped(t *testing.T) {
	s := newTestScorer(t)
	result, err := s.Score(context.Background(), "docker kubernetes terraform", "python developer with react")
	require.NoError(t, err)

	assert.NotContains(t, result.SkillScores, skills.CategoryDevOps)
	assert.Contains(t, result.SkillScores, skills.CategorySoftwareEngineering)
	assert.Equal(t, 0.0, result.SkillScores[skills.CategorySoftwareEngineering])
}

func TestScore_PartialCategoryRatio(t *testing.T) {
	s := newTestScorer(t)
	result, err := s.Score(context.Background(), "docker", "docker and kubernetes")
	require.NoError(t, err)

	devops, _ := skills.Lookup(skills.CategoryDevOps)
	assert.InDelta(t, 0.5*devops.Weight(), result.SkillScores[skills.CategoryDevOps], 1e-12)
}

func TestScore_Deterministic(t *testing.T) {
	s := newTestScorer(t)
	first, err := s.Score(context.Background(), sampleResume, sampleJob)
	require.NoError(t, err)
	second, err := s.Score(context.Background(), sampleResume, sampleJob)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScore_EducationScore(t *testing.T) {
	s := newTestScorer(t)

	result, err := s.Score(context.Background(), "BSc in physics", "Master's or Bachelor's degree")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, result.EducationScore, 1e-12)

	result, err = s.Score(context.Background(), "PhD in physics", "engineer wanted")
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.EducationScore)
}

func TestScore_InvalidInput(t *testing.T) {
	s := newTestScorer(t, WithMaxTextLength(50))

	tests := []struct {
		name   string
		resume string
		job    string
		field  string
	}{
		{"empty resume", "", "job", "resume_text"},
		{"whitespace job", "resume", " \n\t", "job_description"},
		{"oversized resume", strings.Repeat("x", 51), "job", "resume_text"},
		{"oversized job", "resume", strings.Repeat("y", 51), "job_description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Score(context.Background(), tt.resume, tt.job)
			var inputErr *InvalidInputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestScore_DefaultMaxLength(t *testing.T) {
	s := newTestScorer(t)
	_, err := s.Score(context.Background(), strings.Repeat("a ", DefaultMaxTextLength), "job")
	var inputErr *InvalidInputError
	require.True(t, errors.As(err, &inputErr))
}

func TestScore_CancelledContext(t *testing.T) {
	s := newTestScorer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Score(ctx, sampleResume, sampleJob)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClamp_LogsAnomalies(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := newTestScorer(t, WithLogger(zap.New(core)))

	assert.Equal(t, 1.0, s.clamp("skill_scores.backend", 1.3))
	assert.Equal(t, 0.0, s.clamp("skill_scores.backend", -0.2))
	assert.Equal(t, 0.5, s.clamp("skill_scores.backend", 0.5))

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "skill_scores.backend", entry.ContextMap()["field"])
	assert.Equal(t, 1.3, entry.ContextMap()["value"])
}

func TestScoringError_Unwraps(t *testing.T) {
	root := errors.New("root")
	err := &ScoringError{Stage: "context_relevance", Cause: root}
	assert.ErrorIs(t, err, root)
	assert.Contains(t, err.Error(), "context_relevance")
}
