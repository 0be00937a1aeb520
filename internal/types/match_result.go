package types

// Experience level labels
const (
	ExperienceSenior      = "senior"
	ExperienceMid         = "mid"
	ExperienceJunior      = "junior"
	ExperienceUnspecified = "unspecified"
)

// Education level labels
const (
	EducationPhD            = "phd"
	EducationMasters        = "masters"
	EducationBachelors      = "bachelors"
	EducationAssociate      = "associate"
	EducationCertifications = "certifications"
)

// ContextRelevanceKey is the required key of MatchScoreResult.ContextScores.
const ContextRelevanceKey = "relevance"

// MatchScoreResult is the full outcome of comparing one resume against one job description.
// Every ratio field lies in [0,1].
type MatchScoreResult struct {
	TotalScore         float64            `json:"total_score"`
	SkillScores        map[string]float64 `json:"skill_scores"`
	ExperienceScore    float64            `json:"experience_score"`
	EducationScore     float64            `json:"education_score"`
	KeywordScore       float64            `json:"keyword_score"`
	SemanticSimilarity float64            `json:"semantic_similarity"`
	ContextScores      map[string]float64 `json:"context_scores"`
	RoleAlignment      float64            `json:"role_alignment"`
	MatchedSkills      map[string]TermSet `json:"matched_skills"`
	YearsOfExperience  float64            `json:"years_of_experience"`
	EducationLevel     map[string]bool    `json:"education_level"`
	ExperienceLevel    string             `json:"experience_level"`
}
