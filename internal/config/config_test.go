package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-content-service/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "social-content-service", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 10*time.Minute, cfg.Cache.ValidationTTL)
	assert.Equal(t, 30*time.Second, cfg.Producer.Timeout)
	assert.Equal(t, uint32(3), cfg.Producer.CB.MaxRequests)
	assert.Equal(t, 3, cfg.Generation.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Generation.BackoffBase)
	assert.Equal(t, 10*time.Second, cfg.Generation.BackoffMax)
	assert.Equal(t, 4, cfg.Generation.Concurrency)
	assert.True(t, cfg.Generation.FallbackOnFailure)
	assert.Equal(t, "strict", cfg.Validation.DefaultMode)
	assert.Equal(t, 30*time.Second, cfg.Health.Interval)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 10, cfg.RateLimit.GenerationRequests)
	assert.Equal(t, time.Minute, cfg.RateLimit.GenerationWindow)
	assert.Empty(t, cfg.Rules)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 9090
producer:
  base_url: http://producer:8000
  retry:
    max_attempts: 5
generation:
  max_retries: 1
  fallback_on_failure: false
rate_limit:
  generation_requests: 3
  generation_window: 30s
rules:
  youtube:
    title_max_length: 120
    optimal_lengths:
      title: 80
  twitch:
    tag_min_count: 0
    max_lengths:
      stream_category: 0
heuristics:
  casual_words: [dude, bro]
  linkedin_min_post_length: 200
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "http://producer:8000", cfg.Producer.BaseURL)
	assert.Equal(t, 5, cfg.Producer.Retry.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Producer.Timeout, "unset keys keep defaults")
	assert.Equal(t, 1, cfg.Generation.MaxRetries)
	assert.False(t, cfg.Generation.FallbackOnFailure)
	assert.Equal(t, 3, cfg.RateLimit.GenerationRequests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.GenerationWindow)
	assert.Equal(t, 100, cfg.RateLimit.Requests)

	require.Contains(t, cfg.Rules, "twitch")
	require.NotNil(t, cfg.Rules["twitch"].TagMinCount)
	assert.Equal(t, 0, *cfg.Rules["twitch"].TagMinCount)

	registry, err := cfg.Registry()
	require.NoError(t, err)

	yt, err := registry.Get(domain.PlatformYouTube)
	require.NoError(t, err)
	assert.Equal(t, 120, yt.TitleMaxLength)
	optimal, ok := yt.OptimalLength(domain.FieldTitle)
	assert.True(t, ok)
	assert.Equal(t, 80, optimal)

	twitch, err := registry.Get(domain.PlatformTwitch)
	require.NoError(t, err)
	assert.Equal(t, 0, twitch.TagMinCount)
	_, limited := twitch.MaxLength(domain.FieldStreamCategory)
	assert.False(t, limited)

	h := cfg.DomainHeuristics()
	assert.Equal(t, []string{"dude", "bro"}, h.CasualWords)
	assert.Equal(t, 200, h.LinkedInMinPostLength)
	assert.Empty(t, h.TrendingTags)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_PRODUCER_BASE_URL", "http://env-producer:7000")
	t.Setenv("APP_GENERATION_MAX_RETRIES", "7")
	t.Setenv("APP_REDIS_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://env-producer:7000", cfg.Producer.BaseURL)
	assert.Equal(t, 7, cfg.Generation.MaxRetries)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "app: [unclosed")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_Registry_Errors(t *testing.T) {
	negative := -1

	tests := []struct {
		name  string
		rules map[string]RuleOverride
	}{
		{
			name:  "unknown platform",
			rules: map[string]RuleOverride{"myspace": {TitleMaxLength: 50}},
		},
		{
			name:  "unknown field",
			rules: map[string]RuleOverride{"youtube": {MaxLengths: map[string]int{"signature": 10}}},
		},
		{
			name:  "title in max lengths",
			rules: map[string]RuleOverride{"youtube": {MaxLengths: map[string]int{"title": 10}}},
		},
		{
			name:  "negative length",
			rules: map[string]RuleOverride{"youtube": {OptimalLengths: map[string]int{"description": -5}}},
		},
		{
			name:  "negative tag minimum",
			rules: map[string]RuleOverride{"x_twitter": {TagMinCount: &negative, TagMaxCount: 0}},
		},
		{
			name:  "title too short",
			rules: map[string]RuleOverride{"tiktok": {TitleMaxLength: 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Rules: tt.rules}
			_, err := cfg.Registry()
			assert.Error(t, err)
		})
	}
}

func TestConfig_Registry_UnknownPlatformIsTyped(t *testing.T) {
	cfg := &Config{Rules: map[string]RuleOverride{"myspace": {}}}

	_, err := cfg.Registry()
	assert.ErrorIs(t, err, domain.ErrUnknownPlatform)
}
