package experience

import (
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestYearsOfExperience(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"plus sign", "Requires 5+ years experience with Go", 5},
		{"of", "I have 3 years of experience", 3},
		{"qualifier", "7 years of professional experience", 7},
		{"maximum wins", "2 years experience in QA, 6 years experience in backend", 6},
		{"decimal", "2.5 years experience", 2.5},
		{"case insensitive", "10 YEARS OF EXPERIENCE", 10},
		{"abbreviated", "4 yrs experience", 4},
		{"none", "Passionate engineer", 0},
		{"empty", "", 0},
		{"years without experience", "Worked there for 8 years", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YearsOfExperience(tt.text))
		})
	}
}

func TestLevel_PriorityOrder(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Senior Backend Engineer", types.ExperienceSenior},
		{"Lead developer, previously junior analyst", types.ExperienceSenior},
		{"Mid-level developer or junior", types.ExperienceMid},
		{"Junior developer", types.ExperienceJunior},
		{"Entry level role", types.ExperienceJunior},
		{"Sr. engineer", types.ExperienceSenior},
		{"Software developer", types.ExperienceUnspecified},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Level(tt.text))
		})
	}
}

func TestEducationLevels_IndependentMembership(t *testing.T) {
	levels := EducationLevels("B.S. in Computer Science, Master's in Statistics, AWS Certified")

	assert.True(t, levels[types.EducationBachelors])
	assert.True(t, levels[types.EducationMasters])
	assert.True(t, levels[types.EducationCertifications])
	assert.False(t, levels[types.EducationPhD])
	assert.False(t, levels[types.EducationAssociate])
	assert.Len(t, levels, 5)
}

func TestEducationLevels_Variants(t *testing.T) {
	assert.True(t, EducationLevels("PhD in physics")[types.EducationPhD])
	assert.True(t, EducationLevels("Ph.D. candidate")[types.EducationPhD])
	assert.True(t, EducationLevels("MBA preferred")[types.EducationMasters])
	assert.True(t, EducationLevels("Bachelor's degree required")[types.EducationBachelors])
	assert.True(t, EducationLevels("Associate degree in networking")[types.EducationAssociate])
	assert.False(t, EducationLevels("associate engineer")[types.EducationAssociate])
}

func TestEducationLevels_Empty(t *testing.T) {
	levels := EducationLevels("")
	for _, label := range EducationLabels() {
		assert.False(t, levels[label], label)
	}
}

func TestExtractors_Deterministic(t *testing.T) {
	text := "Senior engineer, 6 years of experience, MSc"
	assert.Equal(t, YearsOfExperience(text), YearsOfExperience(text))
	assert.Equal(t, Level(text), Level(text))
	assert.Equal(t, EducationLevels(text), EducationLevels(text))
}
