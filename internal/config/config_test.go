package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/matching"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	w, err := cfg.MatchWeights()
	require.NoError(t, err)
	assert.Equal(t, matching.DefaultWeights(), w)

	assert.Equal(t, 32, cfg.Batch.MaxWorkers)
	assert.Equal(t, 60*time.Second, cfg.Batch.TaskTimeout)
	assert.Equal(t, 300*time.Second, cfg.Batch.BatchTimeout)
	assert.Equal(t, 100000, cfg.Scoring.MaxTextLength)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 500, cfg.Server.MaxBatchSize)
	assert.False(t, cfg.Fetch.UseBrowser)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "matcher.yaml", `
weights:
  required_skills: 0.4
  preferred_skills: 0.1
  experience: 0.15
  education: 0.1
  keyword_similarity: 0.1
  context_relevance: 0.05
  role_alignment: 0.1
batch:
  max_workers: 8
  task_timeout: 5s
fetch:
  use_browser: true
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Batch.MaxWorkers)
	assert.Equal(t, 5*time.Second, cfg.Batch.TaskTimeout)
	assert.Equal(t, 300*time.Second, cfg.Batch.BatchTimeout)
	assert.True(t, cfg.Fetch.UseBrowser)

	w, err := cfg.MatchWeights()
	require.NoError(t, err)
	assert.InDelta(t, 0.4, w.RequiredSkills, 1e-9)

	opts := cfg.BatchOptions()
	assert.Equal(t, 8, opts.MaxWorkers)
	assert.True(t, cfg.FetchOptions().UseBrowser)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeConfig(t, "matcher.json", `{"server": {"port": 9090}, "log": {"json": true}}`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("RESUME_MATCHER_BATCH_MAX_WORKERS", "4")
	t.Setenv("RESUME_MATCHER_DATABASE_URL", "postgres://localhost:5432/matcher")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Batch.MaxWorkers)
	assert.Equal(t, "postgres://localhost:5432/matcher", cfg.DatabaseURL)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("RESUME_MATCHER_SERVER_PORT", "7000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 8080, "")
	flags.Bool("debug", false, "")
	require.NoError(t, flags.Parse([]string{"--port", "9999", "--debug"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.True(t, cfg.Log.Debug)
}

func TestLoad_UnsetFlagDoesNotOverride(t *testing.T) {
	t.Setenv("RESUME_MATCHER_SERVER_PORT", "7000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 8080, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoad_WeightSumOutOfBand(t *testing.T) {
	path := writeConfig(t, "bad.yaml", "weights:\n  required_skills: 0.9\n")

	_, err := Load(path, nil)
	var cfgErr *matching.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "sum")
}

func TestLoad_UnknownWeight(t *testing.T) {
	path := writeConfig(t, "bad.yaml", "weights:\n  charisma: 0.0\n")

	_, err := Load(path, nil)
	var cfgErr *matching.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"too many workers", "batch:\n  max_workers: 1000\n", "batch.max_workers"},
		{"zero workers", "batch:\n  max_workers: 0\n", "batch.max_workers"},
		{"negative weight", "weights:\n  context_relevance: -0.1\n", "weights[context_relevance]"},
		{"bad port", "server:\n  port: 70000\n", "server.port"},
		{"bad database url", "database_url: not a url\n", "database_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "c.yaml", tt.content), nil)
			var cfgErr *matching.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	var cfgErr *matching.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "reading config file")
}
