package domain

import (
	"context"
	"time"
)

// Transcript is the source material content is generated from.
type Transcript struct {
	Content  string        `json:"content"`
	Language string        `json:"language,omitempty"`
	Title    string        `json:"title,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Category string        `json:"category,omitempty"`
}

// Constraints summarizes the limits a producer should aim for.
type Constraints struct {
	TitleMaxLength int     `json:"title_max_length"`
	TagMinCount    int     `json:"tag_min_count"`
	TagMaxCount    int     `json:"tag_max_count"`
	Fields         []Field `json:"fields,omitempty"`
}

// ConstraintsFor derives producer constraints from a rule set.
func ConstraintsFor(rules PlatformRules) Constraints {
	return Constraints{
		TitleMaxLength: rules.TitleMaxLength,
		TagMinCount:    rules.TagMinCount,
		TagMaxCount:    rules.TagMaxCount,
		Fields:         rules.AvailableFields(),
	}
}

// GenerationOptions tunes a single produce call.
type GenerationOptions struct {
	Tone           string      `json:"tone,omitempty"`
	TargetAudience string      `json:"target_audience,omitempty"`
	IncludeEmojis  bool        `json:"include_emojis"`
	Keywords       []string    `json:"keywords,omitempty"`
	Constraints    Constraints `json:"constraints"`
}

// Producer generates a post for a platform from a transcript.
// Implementations: internal/infra/producer/client.go
type Producer interface {
	// Name returns the unique identifier for this producer.
	Name() string

	// Produce generates one record. Failures are retried by the caller.
	Produce(ctx context.Context, platform Platform, transcript Transcript, opts GenerationOptions) (*Record, error)

	// HealthCheck verifies the producer is reachable.
	HealthCheck(ctx context.Context) error
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}
