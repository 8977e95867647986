// Package config loads service and CLI configuration from an optional YAML
// file, ATS_-prefixed environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/ats-scorer/internal/embedding"
	"github.com/jonathan/ats-scorer/internal/fetch"
	"github.com/jonathan/ats-scorer/internal/keyphrase"
	"github.com/jonathan/ats-scorer/internal/lexical"
	"github.com/jonathan/ats-scorer/internal/scoring"
)

const (
	// AppName is the config file base name and env prefix source.
	AppName   = "ats-scorer"
	envPrefix = "ATS"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Lexical   LexicalConfig   `mapstructure:"lexical"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Keyphrase KeyphraseConfig `mapstructure:"keyphrase"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	RateLimit RateLimitConfig `mapstructure:"rate-limit"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	GeminiAPIKey string `mapstructure:"gemini-api-key"`
	OpenAIAPIKey string `mapstructure:"openai-api-key"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	RequestTimeout  time.Duration `mapstructure:"request-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

type EmbeddingConfig struct {
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	Dimension int    `mapstructure:"dimension"`
}

type LexicalConfig struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
}

type ScoringConfig struct {
	Weights      WeightsConfig `mapstructure:"weights"`
	Prestige     []string      `mapstructure:"prestige"`
	MissingLimit int           `mapstructure:"missing-limit"`
}

type WeightsConfig struct {
	Experience float64 `mapstructure:"experience"`
	Skills     float64 `mapstructure:"skills"`
	Education  float64 `mapstructure:"education"`
}

type KeyphraseConfig struct {
	TopN int `mapstructure:"top-n"`
}

// IngestConfig controls fetching job descriptions by URL.
type IngestConfig struct {
	Timeout        time.Duration `mapstructure:"timeout"`
	UserAgent      string        `mapstructure:"user-agent"`
	MaxBytes       int64         `mapstructure:"max-bytes"`
	UseBrowser     bool          `mapstructure:"use-browser"`
	BrowserTimeout time.Duration `mapstructure:"browser-timeout"`
}

type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default-limit"`
	DefaultWindow   time.Duration `mapstructure:"default-window"`
	ScoreLimit      int           `mapstructure:"score-limit"`
	ScoreWindow     time.Duration `mapstructure:"score-window"`
	ScoreBurst      int           `mapstructure:"score-burst"`
	CleanupInterval time.Duration `mapstructure:"cleanup-interval"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// TelemetryConfig configures OTLP trace export. Headers is a comma-separated
// list of key=value pairs. Export is off when Endpoint is empty.
type TelemetryConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service-name"`
	Headers     string `mapstructure:"headers"`
}

// Enabled reports whether traces should be exported.
func (t TelemetryConfig) Enabled() bool {
	return t.Endpoint != ""
}

// NewViper returns a viper instance with defaults and environment bindings.
// Nested keys map to env vars by upper-casing and replacing "." and "-" with
// "_", e.g. ATS_SERVER_PORT or ATS_SCORING_MISSING_LIMIT.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("gemini-api-key", envPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("openai-api-key", envPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY")
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read-timeout", 30*time.Second)
	v.SetDefault("server.write-timeout", 2*time.Minute)
	v.SetDefault("server.request-timeout", 90*time.Second)
	v.SetDefault("server.shutdown-timeout", 10*time.Second)

	v.SetDefault("embedding.provider", embedding.ProviderHashing)
	v.SetDefault("embedding.model", "")
	v.SetDefault("embedding.dimension", 0)

	v.SetDefault("lexical.provider", lexical.ProviderLocal)
	v.SetDefault("lexical.model", "")

	v.SetDefault("scoring.weights.experience", scoring.DefaultWeights.Experience)
	v.SetDefault("scoring.weights.skills", scoring.DefaultWeights.Skills)
	v.SetDefault("scoring.weights.education", scoring.DefaultWeights.Education)
	v.SetDefault("scoring.prestige", scoring.DefaultPrestige)
	v.SetDefault("scoring.missing-limit", scoring.DefaultMissingLimit)

	v.SetDefault("keyphrase.top-n", keyphrase.DefaultTopN)

	v.SetDefault("ingest.timeout", fetch.DefaultTimeout)
	v.SetDefault("ingest.user-agent", fetch.DefaultUserAgent)
	v.SetDefault("ingest.max-bytes", fetch.DefaultMaxBytes)
	v.SetDefault("ingest.use-browser", false)
	v.SetDefault("ingest.browser-timeout", 45*time.Second)

	v.SetDefault("rate-limit.enabled", true)
	v.SetDefault("rate-limit.default-limit", 1000)
	v.SetDefault("rate-limit.default-window", time.Minute)
	v.SetDefault("rate-limit.score-limit", 60)
	v.SetDefault("rate-limit.score-window", time.Minute)
	v.SetDefault("rate-limit.score-burst", 10)
	v.SetDefault("rate-limit.cleanup-interval", 5*time.Minute)
	v.SetDefault("rate-limit.whitelist", []string{})
	v.SetDefault("rate-limit.blacklist", []string{})

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.service-name", AppName)
	v.SetDefault("telemetry.headers", "")

	v.SetDefault("gemini-api-key", "")
	v.SetDefault("openai-api-key", "")
}

// Load reads the config file at path into v and decodes the result.
// With an empty path, ats-scorer.yaml in the working directory is used if it
// exists. The returned Config is validated.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges, provider names and required API keys.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535")
	}

	switch c.Embedding.Provider {
	case embedding.ProviderHashing:
	case embedding.ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config error: embedding provider %q requires GEMINI_API_KEY", c.Embedding.Provider)
		}
	case embedding.ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("config error: embedding provider %q requires OPENAI_API_KEY", c.Embedding.Provider)
		}
	default:
		return fmt.Errorf("config error: unknown embedding provider %q", c.Embedding.Provider)
	}
	if c.Embedding.Dimension < 0 {
		return fmt.Errorf("config error: 'embedding.dimension' must be non-negative")
	}

	switch c.Lexical.Provider {
	case lexical.ProviderLocal:
	case lexical.ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config error: lexical provider %q requires GEMINI_API_KEY", c.Lexical.Provider)
		}
	default:
		return fmt.Errorf("config error: unknown lexical provider %q", c.Lexical.Provider)
	}

	if err := c.Weights().Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Scoring.MissingLimit <= 0 {
		return fmt.Errorf("config error: 'scoring.missing-limit' must be positive")
	}
	if c.Keyphrase.TopN <= 0 {
		return fmt.Errorf("config error: 'keyphrase.top-n' must be positive")
	}

	if c.Ingest.Timeout <= 0 || c.Ingest.MaxBytes <= 0 {
		return fmt.Errorf("config error: 'ingest.timeout' and 'ingest.max-bytes' must be positive")
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.DefaultLimit <= 0 || c.RateLimit.ScoreLimit <= 0 {
			return fmt.Errorf("config error: rate limits must be positive")
		}
		if c.RateLimit.DefaultWindow <= 0 || c.RateLimit.ScoreWindow <= 0 {
			return fmt.Errorf("config error: rate limit windows must be positive")
		}
	}
	return nil
}

// Weights returns the scoring weights.
func (c *Config) Weights() scoring.Weights {
	return scoring.Weights{
		Experience: c.Scoring.Weights.Experience,
		Skills:     c.Scoring.Weights.Skills,
		Education:  c.Scoring.Weights.Education,
	}
}

// EmbeddingProvider returns the embedding factory config with the matching API key.
func (c *Config) EmbeddingProvider() embedding.Config {
	cfg := embedding.Config{
		Provider:  c.Embedding.Provider,
		Model:     c.Embedding.Model,
		Dimension: c.Embedding.Dimension,
	}
	switch c.Embedding.Provider {
	case embedding.ProviderGemini:
		cfg.APIKey = c.GeminiAPIKey
	case embedding.ProviderOpenAI:
		cfg.APIKey = c.OpenAIAPIKey
	}
	return cfg
}

// LexicalExtractor returns the keyword extractor factory config.
func (c *Config) LexicalExtractor() lexical.Config {
	return lexical.Config{
		Provider: c.Lexical.Provider,
		Model:    c.Lexical.Model,
		APIKey:   c.GeminiAPIKey,
	}
}

// FetchOptions returns the HTTP options for JD URL ingestion.
func (c *Config) FetchOptions() fetch.Options {
	return fetch.Options{
		Timeout:   c.Ingest.Timeout,
		UserAgent: c.Ingest.UserAgent,
		MaxBytes:  c.Ingest.MaxBytes,
	}
}
