// Package config loads and validates engine configuration from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-matcher/internal/batch"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/matching"
)

// EnvPrefix prefixes every environment override, e.g. RESUME_MATCHER_BATCH_MAX_WORKERS.
const EnvPrefix = "RESUME_MATCHER"

// Config is the complete runtime configuration.
type Config struct {
	Weights     map[string]float64 `mapstructure:"weights" validate:"required,dive,gte=0"`
	Batch       BatchConfig        `mapstructure:"batch"`
	Scoring     ScoringConfig      `mapstructure:"scoring"`
	Fetch       FetchConfig        `mapstructure:"fetch"`
	Storage     StorageConfig      `mapstructure:"storage"`
	DatabaseURL string             `mapstructure:"database_url" validate:"omitempty,url"`
	Server      ServerConfig       `mapstructure:"server"`
	Log         LogConfig          `mapstructure:"log"`
}

// BatchConfig bounds the batch ranker.
type BatchConfig struct {
	MaxWorkers   int           `mapstructure:"max_workers" validate:"gte=1,lte=256"`
	TaskTimeout  time.Duration `mapstructure:"task_timeout" validate:"gt=0"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout" validate:"gt=0"`
}

// ScoringConfig tunes the composite scorer.
type ScoringConfig struct {
	MaxTextLength int `mapstructure:"max_text_length" validate:"gte=1"`
}

// FetchConfig controls URL resolution.
type FetchConfig struct {
	Timeout           time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UseBrowser        bool          `mapstructure:"use_browser"`
	BrowserTimeout    time.Duration `mapstructure:"browser_timeout" validate:"gt=0"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" validate:"gte=0"`
}

// StorageConfig enables bucket-hosted resumes.
type StorageConfig struct {
	S3         bool   `mapstructure:"s3"`
	AWSProfile string `mapstructure:"aws_profile"`
	AWSRegion  string `mapstructure:"aws_region"`
	GCS        bool   `mapstructure:"gcs"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxBatchSize    int           `mapstructure:"max_batch_size" validate:"gte=1"`
}

// LogConfig selects log encoding and level.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// flagBindings maps config keys to CLI flag names.
var flagBindings = map[string]string{
	"log.json":          "json",
	"log.debug":         "debug",
	"fetch.use_browser": "use-browser",
	"database_url":      "database-url",
	"server.port":       "port",
}

func setDefaults(v *viper.Viper) {
	for name, w := range matching.DefaultWeights().AsMap() {
		v.SetDefault("weights."+name, w)
	}
	v.SetDefault("batch.max_workers", batch.DefaultMaxWorkers)
	v.SetDefault("batch.task_timeout", batch.DefaultTaskTimeout)
	v.SetDefault("batch.batch_timeout", batch.DefaultBatchTimeout)
	v.SetDefault("scoring.max_text_length", matching.DefaultMaxTextLength)
	v.SetDefault("fetch.timeout", fetch.DefaultTimeout)
	v.SetDefault("fetch.use_browser", false)
	v.SetDefault("fetch.browser_timeout", fetch.DefaultBrowserTimeout)
	v.SetDefault("fetch.requests_per_second", fetch.DefaultRequestsPerSecond)
	v.SetDefault("storage.s3", false)
	v.SetDefault("storage.aws_profile", "")
	v.SetDefault("storage.aws_region", "")
	v.SetDefault("storage.gcs", false)
	v.SetDefault("database_url", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_batch_size", 500)
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Load reads defaults, then the optional config file at path, then
// RESUME_MATCHER_* environment variables, then any bound flags that were set.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, &matching.ConfigurationError{Message: "binding flag " + name, Cause: err}
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &matching.ConfigurationError{Message: "reading config file " + path, Cause: err}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &matching.ConfigurationError{Message: "decoding config", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report config keys rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks field constraints, then that weights are complete and sum to 1.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &matching.ConfigurationError{Message: describe(err), Cause: err}
	}
	if _, err := c.MatchWeights(); err != nil {
		return err
	}
	return nil
}

// MatchWeights decodes the weights table.
func (c *Config) MatchWeights() (matching.MatchWeights, error) {
	return matching.WeightsFromMap(c.Weights)
}

// BatchOptions converts the batch section for the ranker. Logger is left unset.
func (c *Config) BatchOptions() batch.Options {
	return batch.Options{
		MaxWorkers:   c.Batch.MaxWorkers,
		TaskTimeout:  c.Batch.TaskTimeout,
		BatchTimeout: c.Batch.BatchTimeout,
	}
}

// FetchOptions converts the fetch section for the fetcher.
func (c *Config) FetchOptions() fetch.Options {
	opts := fetch.DefaultOptions()
	opts.Timeout = c.Fetch.Timeout
	opts.UseBrowser = c.Fetch.UseBrowser
	opts.BrowserTimeout = c.Fetch.BrowserTimeout
	opts.RequestsPerSecond = c.Fetch.RequestsPerSecond
	return opts
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if _, rest, ok := strings.Cut(ns, "."); ok {
			ns = rest
		}
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", ns, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", ns, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
