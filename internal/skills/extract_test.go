package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSkills_CollectsDistinctTermsPerCategory(t *testing.T) {
	text := "Built services in python and Django; python again, deployed with docker and k8s on aws."

	result := ExtractSkills(text)

	assert.ElementsMatch(t, []string{"python"}, result[CategorySoftwareEngineering].Sorted())
	assert.ElementsMatch(t, []string{"django"}, result[CategoryBackend].Sorted())
	assert.ElementsMatch(t, []string{"docker", "kubernetes"}, result[CategoryDevOps].Sorted())
	assert.ElementsMatch(t, []string{"aws"}, result[CategoryCloud].Sorted())
}

func TestExtractSkills_UnmatchedCategoriesAreEmpty(t *testing.T) {
	result := ExtractSkills("figma wireframing")

	require.Contains(t, result, CategoryDevOps)
	assert.Equal(t, 0, result[CategoryDevOps].Len())
	assert.True(t, result.NonEmpty(CategoryDesign))
}

func TestExtractSkills_EmptyText(t *testing.T) {
	result := ExtractSkills("")

	for _, c := range Catalog() {
		assert.Equal(t, 0, result[c.Name()].Len(), c.Name())
	}
}

func TestExtractSkills_PrefersLongestTerm(t *testing.T) {
	result := ExtractSkills("shipped apps with react native")

	assert.ElementsMatch(t, []string{"react native"}, result[CategoryMobile].Sorted())
}

func TestExtractSkills_SymbolTerms(t *testing.T) {
	result := ExtractSkills("Wrote C++ and C# tooling, set up CI/CD.")

	assert.True(t, result[CategorySoftwareEngineering].Has("c++"))
	assert.True(t, result[CategorySoftwareEngineering].Has("c#"))
	assert.True(t, result[CategoryDevOps].Has("ci/cd"))
}

func TestExtractSkills_WordBoundaries(t *testing.T) {
	result := ExtractSkills("expressed interest in sparkling water")

	assert.False(t, result[CategoryBackend].Has("express"))
	assert.False(t, result[CategoryDataEngineering].Has("spark"))
}

func TestExtractSkills_EntityPassAddsProductNames(t *testing.T) {
	result := ExtractSkills("Migrated workloads to Google Cloud Platform.")

	assert.True(t, result[CategoryCloud].Has("gcp"))
}

func TestExtractSkills_Deterministic(t *testing.T) {
	text := "Senior engineer with Python, Kafka, Terraform and Snowflake."
	assert.Equal(t, ExtractSkills(text), ExtractSkills(text))
}

func TestExtractEntities(t *testing.T) {
	entities := ExtractEntities("We use Amazon Web Services and PostgreSQL. The team ships daily.")

	assert.Contains(t, entities, "amazon web services")
	assert.Contains(t, entities, "postgresql")
	assert.NotContains(t, entities, "the")
}

func TestExtractEntities_DropsLongRuns(t *testing.T) {
	entities := ExtractEntities("Alpha Beta Gamma Delta Epsilon")
	assert.Empty(t, entities)
}

func TestNewCategory_Validation(t *testing.T) {
	_, err := NewCategory("", 0.5, "x")
	assert.Error(t, err)

	_, err = NewCategory("x", 0, "y")
	assert.Error(t, err)

	_, err = NewCategory("x", 1.5, "y")
	assert.Error(t, err)

	_, err = NewCategory("x", 0.5)
	assert.Error(t, err)

	c, err := NewCategory("custom", 0.5, "foo bar")
	require.NoError(t, err)
	assert.True(t, c.Matches("the foo   bar thing"))
	assert.Equal(t, 0.5, c.Weight())
}

func TestCatalog_FixedAndWeighted(t *testing.T) {
	cats := Catalog()
	require.Len(t, cats, 16)

	names := make(map[string]bool)
	for _, c := range cats {
		assert.Greater(t, c.Weight(), 0.0)
		assert.LessOrEqual(t, c.Weight(), 1.0)
		names[c.Name()] = true
	}
	assert.Len(t, names, 16)

	// Mutating the returned slice must not affect the catalog.
	cats[0] = SkillCategory{}
	assert.Equal(t, CategorySoftwareEngineering, Catalog()[0].Name())
}

func TestNewExtractor_CustomCategories(t *testing.T) {
	c, err := NewCategory("tools", 1.0, "vim", "emacs")
	require.NoError(t, err)

	e := NewExtractor([]SkillCategory{c})
	result := e.Extract("vim and emacs and python")

	assert.Len(t, result, 1)
	assert.ElementsMatch(t, []string{"emacs", "vim"}, result["tools"].Sorted())
}

func TestNormalizeTerm(t *testing.T) {
	assert.Equal(t, "go", NormalizeTerm("Golang"))
	assert.Equal(t, "kubernetes", NormalizeTerm(" k8s "))
	assert.Equal(t, "aws", NormalizeTerm("amazon   web\nservices"))
	assert.Equal(t, "", NormalizeTerm("   "))
	assert.Equal(t, "terraform", NormalizeTerm("Terraform"))
}
