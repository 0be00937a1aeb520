// Package skills classifies free text into weighted skill categories.
package skills

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Category names
const (
	CategorySoftwareEngineering = "software_engineering"
	CategoryFrontend            = "frontend"
	CategoryBackend             = "backend"
	CategoryMobile              = "mobile"
	CategoryDevOps              = "devops"
	CategoryCloud               = "cloud"
	CategoryDatabases           = "databases"
	CategoryDataScience         = "data_science"
	CategoryMachineLearning     = "machine_learning"
	CategoryDataEngineering     = "data_engineering"
	CategorySecurity            = "security"
	CategoryQA                  = "qa_testing"
	CategoryDesign              = "design"
	CategoryProduct             = "product"
	CategoryProjectManagement   = "project_management"
	CategorySoftSkills          = "soft_skills"
)

// SkillCategory is an immutable named group of related competencies.
type SkillCategory struct {
	name    string
	weight  float64
	matcher *regexp.Regexp
}

// Name returns the category name.
func (c SkillCategory) Name() string { return c.name }

// Weight returns the category weight in (0,1].
func (c SkillCategory) Weight() float64 { return c.weight }

// FindAll returns every match of the category rule in already lower-cased text.
func (c SkillCategory) FindAll(lower string) []string {
	return c.matcher.FindAllString(lower, -1)
}

// Matches reports whether the category rule matches anywhere in lower-cased text.
func (c SkillCategory) Matches(lower string) bool {
	return c.matcher.MatchString(lower)
}

// NewCategory compiles a category from a list of literal terms.
// Terms are matched on word boundaries, longest first, so "react native" wins over "react".
func NewCategory(name string, weight float64, terms ...string) (SkillCategory, error) {
	if name == "" {
		return SkillCategory{}, fmt.Errorf("category name is empty")
	}
	if weight <= 0 || weight > 1 {
		return SkillCategory{}, fmt.Errorf("category %s: weight %.3f outside (0,1]", name, weight)
	}
	if len(terms) == 0 {
		return SkillCategory{}, fmt.Errorf("category %s: no terms", name)
	}

	re, err := compileTerms(terms)
	if err != nil {
		return SkillCategory{}, fmt.Errorf("category %s: %w", name, err)
	}
	return SkillCategory{name: name, weight: weight, matcher: re}, nil
}

// compileTerms builds one alternation with word boundaries applied only where
// the term edge is a word character (so "c++" and ".net" still match).
func compileTerms(terms []string) (*regexp.Regexp, error) {
	sorted := make([]string, len(terms))
	copy(sorted, terms)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	parts := make([]string, 0, len(sorted))
	for _, term := range sorted {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		p := regexp.QuoteMeta(term)
		p = strings.ReplaceAll(p, " ", `\s+`)
		if isWordByte(term[0]) {
			p = `\b` + p
		}
		if isWordByte(term[len(term)-1]) {
			p += `\b`
		}
		parts = append(parts, p)
	}
	return regexp.Compile("(?:" + strings.Join(parts, "|") + ")")
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func mustCategory(name string, weight float64, terms ...string) SkillCategory {
	c, err := NewCategory(name, weight, terms...)
	if err != nil {
		panic(err)
	}
	return c
}

// catalog is built once at start-up and never mutated.
var catalog = []SkillCategory{
	mustCategory(CategorySoftwareEngineering, 1.0,
		"python", "java", "golang", "rust", "c++", "c#", "scala", "kotlin", "ruby", "typescript",
		"javascript", "object-oriented", "data structures", "algorithms", "design patterns",
		"software development", "software engineering", "clean code", "code review"),
	mustCategory(CategoryFrontend, 0.8,
		"react", "reactjs", "react.js", "angular", "vue", "vue.js", "svelte", "next.js", "html", "css",
		"sass", "tailwind", "redux", "webpack", "frontend", "front-end", "responsive design"),
	mustCategory(CategoryBackend, 0.9,
		"node.js", "nodejs", "django", "flask", "fastapi", "spring boot", "spring", "express",
		"rest api", "restful", "graphql", "grpc", "microservices", "backend", "back-end",
		"distributed systems", "api design", "message queue", "kafka", "rabbitmq"),
	mustCategory(CategoryMobile, 0.8,
		"ios", "android", "swift", "swiftui", "objective-c", "react native", "flutter", "dart",
		"mobile development", "xcode", "jetpack compose"),
	mustCategory(CategoryDevOps, 0.8,
		"docker", "kubernetes", "k8s", "terraform", "ansible", "jenkins", "ci/cd", "github actions",
		"gitlab ci", "helm", "prometheus", "grafana", "devops", "infrastructure as code",
		"site reliability", "sre", "linux", "bash"),
	mustCategory(CategoryCloud, 0.8,
		"aws", "amazon web services", "azure", "gcp", "google cloud", "google cloud platform",
		"ec2", "s3", "lambda", "cloudformation", "serverless", "cloud computing", "cloud native"),
	mustCategory(CategoryDatabases, 0.7,
		"sql", "postgresql", "postgres", "mysql", "mongodb", "redis", "cassandra", "dynamodb",
		"elasticsearch", "sqlite", "oracle", "nosql", "database design", "query optimization"),
	mustCategory(CategoryDataScience, 0.8,
		"data science", "statistics", "statistical analysis", "pandas", "numpy", "r programming",
		"tableau", "power bi", "data analysis", "data visualization", "a/b testing", "jupyter",
		"hypothesis testing", "regression"),
	mustCategory(CategoryMachineLearning, 0.9,
		"machine learning", "deep learning", "tensorflow", "pytorch", "keras", "scikit-learn",
		"nlp", "natural language processing", "computer vision", "llm", "neural networks",
		"reinforcement learning", "mlops", "feature engineering"),
	mustCategory(CategoryDataEngineering, 0.8,
		"spark", "hadoop", "airflow", "dbt", "etl", "elt", "data pipeline", "data pipelines",
		"data warehouse", "snowflake", "bigquery", "redshift", "databricks", "flink", "data lake"),
	mustCategory(CategorySecurity, 0.8,
		"security", "cybersecurity", "penetration testing", "owasp", "encryption", "iam",
		"oauth", "soc 2", "vulnerability", "threat modeling", "siem", "zero trust", "firewall"),
	mustCategory(CategoryQA, 0.6,
		"unit testing", "integration testing", "test automation", "selenium", "cypress", "jest",
		"pytest", "junit", "tdd", "test-driven development", "qa", "quality assurance"),
	mustCategory(CategoryDesign, 0.6,
		"figma", "sketch", "adobe xd", "photoshop", "illustrator", "ui design", "ux design",
		"user experience", "user interface", "wireframing", "prototyping", "user research",
		"design systems"),
	mustCategory(CategoryProduct, 0.6,
		"product management", "product roadmap", "roadmap", "product strategy", "user stories",
		"market research", "go-to-market", "stakeholder management", "okrs", "kpis",
		"product requirements"),
	mustCategory(CategoryProjectManagement, 0.5,
		"agile", "scrum", "kanban", "jira", "confluence", "project management", "sprint planning",
		"pmp", "waterfall", "risk management", "resource planning"),
	mustCategory(CategorySoftSkills, 0.4,
		"communication", "leadership", "teamwork", "collaboration", "problem solving",
		"problem-solving", "mentoring", "mentorship", "critical thinking", "time management",
		"adaptability", "presentation"),
}

// Catalog returns the static skill taxonomy in its fixed order.
// The returned slice is a copy; categories themselves are immutable.
func Catalog() []SkillCategory {
	out := make([]SkillCategory, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog category with the given name.
func Lookup(name string) (SkillCategory, bool) {
	for _, c := range catalog {
		if c.name == name {
			return c, true
		}
	}
	return SkillCategory{}, false
}
