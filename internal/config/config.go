// Package config provides application configuration management using Viper.
// Configuration is loaded from YAML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"social-content-service/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	App        AppConfig               `mapstructure:"app"`
	Logger     LoggerConfig            `mapstructure:"logger"`
	Sentry     SentryConfig            `mapstructure:"sentry"`
	Redis      RedisConfig             `mapstructure:"redis"`
	Cache      CacheConfig             `mapstructure:"cache"`
	Producer   ProducerConfig          `mapstructure:"producer"`
	Generation GenerationConfig        `mapstructure:"generation"`
	Validation ValidationConfig        `mapstructure:"validation"`
	Health     HealthConfig            `mapstructure:"health"`
	RateLimit  RateLimitConfig         `mapstructure:"rate_limit"`
	Rules      map[string]RuleOverride `mapstructure:"rules"`
	Heuristics HeuristicsConfig        `mapstructure:"heuristics"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name  string `mapstructure:"name"`
	Env   string `mapstructure:"env"` // development, staging, production
	Port  int    `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, file path
}

// SentryConfig holds Sentry error tracking settings.
type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	Release     string  `mapstructure:"release"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// RedisConfig holds Redis connection settings for the validation cache and
// generation locks.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Addr returns host:port.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig holds caching settings.
type CacheConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	ValidationTTL time.Duration `mapstructure:"validation_ttl"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
}

// ProducerConfig holds the content producer endpoint settings.
type ProducerConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retry   RetryConfig   `mapstructure:"retry"`
	CB      CBConfig      `mapstructure:"circuit_breaker"`
}

// RetryConfig holds transport retry settings.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	WaitTime    time.Duration `mapstructure:"wait_time"`
	MaxWaitTime time.Duration `mapstructure:"max_wait_time"`
}

// CBConfig holds circuit breaker settings.
type CBConfig struct {
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
}

// GenerationConfig holds orchestration settings.
type GenerationConfig struct {
	MaxRetries        int           `mapstructure:"max_retries"`
	BackoffBase       time.Duration `mapstructure:"backoff_base"`
	BackoffMax        time.Duration `mapstructure:"backoff_max"`
	Concurrency       int           `mapstructure:"concurrency"`
	FallbackOnFailure bool          `mapstructure:"fallback_on_failure"`
	LockTTL           time.Duration `mapstructure:"lock_ttl"`
	LockPrefix        string        `mapstructure:"lock_prefix"`
}

// ValidationConfig holds validation settings.
type ValidationConfig struct {
	DefaultMode string `mapstructure:"default_mode"` // strict, lenient
}

// HealthConfig holds producer health monitor settings.
type HealthConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig holds per-client request limits for the API.
type RateLimitConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	Requests           int           `mapstructure:"requests"`
	Window             time.Duration `mapstructure:"window"`
	GenerationRequests int           `mapstructure:"generation_requests"`
	GenerationWindow   time.Duration `mapstructure:"generation_window"`
}

// RuleOverride adjusts one platform's built-in limits. Unset values keep
// the defaults.
type RuleOverride struct {
	TitleMaxLength int            `mapstructure:"title_max_length"`
	TagMinCount    *int           `mapstructure:"tag_min_count"`
	TagMaxCount    int            `mapstructure:"tag_max_count"`
	MaxLengths     map[string]int `mapstructure:"max_lengths"`
	OptimalLengths map[string]int `mapstructure:"optimal_lengths"`
}

// HeuristicsConfig tunes the advisory checks. Empty values keep the
// defaults.
type HeuristicsConfig struct {
	CasualWords                 []string `mapstructure:"casual_words"`
	TrendingTags                []string `mapstructure:"trending_tags"`
	SEOKeywords                 []string `mapstructure:"seo_keywords"`
	InteractionCues             []string `mapstructure:"interaction_cues"`
	TimelinessCues              []string `mapstructure:"timeliness_cues"`
	LinkedInMinPostLength       int      `mapstructure:"linkedin_min_post_length"`
	TikTokMaxCaptionLength      int      `mapstructure:"tiktok_max_caption_length"`
	InstagramMinHashtags        int      `mapstructure:"instagram_min_hashtags"`
	YouTubeMinDescriptionLength int      `mapstructure:"youtube_min_description_length"`
}

// Load reads configuration from file and environment variables.
// Priority: env vars > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No file: defaults + env vars
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Registry builds the platform rule registry with configured overrides
// applied on top of the built-in rules.
func (c *Config) Registry() (*domain.Registry, error) {
	overrides := make(map[domain.Platform]domain.RuleOverride, len(c.Rules))
	for name, o := range c.Rules {
		platform, err := domain.ParsePlatform(name)
		if err != nil {
			return nil, fmt.Errorf("rules: %w", err)
		}

		maxLengths, err := toFieldLengths(o.MaxLengths, false)
		if err != nil {
			return nil, fmt.Errorf("rules.%s.max_lengths: %w", name, err)
		}
		optimal, err := toFieldLengths(o.OptimalLengths, true)
		if err != nil {
			return nil, fmt.Errorf("rules.%s.optimal_lengths: %w", name, err)
		}

		overrides[platform] = domain.RuleOverride{
			TitleMaxLength: o.TitleMaxLength,
			TagMinCount:    o.TagMinCount,
			TagMaxCount:    o.TagMaxCount,
			MaxLengths:     maxLengths,
			OptimalLengths: optimal,
		}
	}

	rules, err := domain.ApplyOverrides(domain.DefaultRules(), overrides)
	if err != nil {
		return nil, err
	}

	return domain.NewRegistry(rules...)
}

// DomainHeuristics converts the heuristics section. Zero values are filled
// in by the validator.
func (c *Config) DomainHeuristics() domain.Heuristics {
	h := c.Heuristics
	return domain.Heuristics{
		CasualWords:                 h.CasualWords,
		TrendingTags:                h.TrendingTags,
		SEOKeywords:                 h.SEOKeywords,
		InteractionCues:             h.InteractionCues,
		TimelinessCues:              h.TimelinessCues,
		LinkedInMinPostLength:       h.LinkedInMinPostLength,
		TikTokMaxCaptionLength:      h.TikTokMaxCaptionLength,
		InstagramMinHashtags:        h.InstagramMinHashtags,
		YouTubeMinDescriptionLength: h.YouTubeMinDescriptionLength,
	}
}

// toFieldLengths converts field names. The title limit has its own
// setting, so only optimal lengths may name it.
func toFieldLengths(in map[string]int, allowTitle bool) (map[domain.Field]int, error) {
	if len(in) == 0 {
		return nil, nil
	}

	out := make(map[domain.Field]int, len(in))
	for name, n := range in {
		f := domain.Field(name)
		if (f == domain.FieldTitle && !allowTitle) || (!f.IsTextField() && f != domain.FieldComments) {
			return nil, fmt.Errorf("unsupported field %q", name)
		}
		if n < 0 {
			return nil, fmt.Errorf("field %q: negative length %d", name, n)
		}
		out[f] = n
	}

	return out, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "social-content-service")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.debug", true)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stdout")

	// Sentry defaults
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.release", "")
	v.SetDefault("sentry.sample_rate", 1.0)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.validation_ttl", "10m")
	v.SetDefault("cache.key_prefix", "social-content")

	// Producer defaults
	v.SetDefault("producer.base_url", "http://localhost:8081")
	v.SetDefault("producer.timeout", "30s")
	v.SetDefault("producer.retry.max_attempts", 2)
	v.SetDefault("producer.retry.wait_time", "500ms")
	v.SetDefault("producer.retry.max_wait_time", "3s")
	v.SetDefault("producer.circuit_breaker.max_requests", 3)
	v.SetDefault("producer.circuit_breaker.interval", "60s")
	v.SetDefault("producer.circuit_breaker.timeout", "30s")
	v.SetDefault("producer.circuit_breaker.failure_ratio", 0.5)

	// Generation defaults
	v.SetDefault("generation.max_retries", 3)
	v.SetDefault("generation.backoff_base", "2s")
	v.SetDefault("generation.backoff_max", "10s")
	v.SetDefault("generation.concurrency", 4)
	v.SetDefault("generation.fallback_on_failure", true)
	v.SetDefault("generation.lock_ttl", "2m")
	v.SetDefault("generation.lock_prefix", "social-content:lock")

	// Validation defaults
	v.SetDefault("validation.default_mode", "strict")

	// Health defaults
	v.SetDefault("health.interval", "30s")
	v.SetDefault("health.timeout", "5s")

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("rate_limit.generation_requests", 10)
	v.SetDefault("rate_limit.generation_window", "1m")
}
