// Package service provides application use cases.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"social-content-service/internal/domain"
	"social-content-service/internal/metrics"
)

const validationKeyPrefix = "validation"

// ValidationService validates records, optionally caching results.
type ValidationService struct {
	validator *domain.Validator
	cache     domain.Cache
	cacheTTL  time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewValidationService creates a new ValidationService. cache may be nil to
// disable result caching.
func NewValidationService(validator *domain.Validator, cache domain.Cache, cacheTTL time.Duration, m *metrics.Metrics, logger *zap.Logger) *ValidationService {
	return &ValidationService{
		validator: validator,
		cache:     cache,
		cacheTTL:  cacheTTL,
		metrics:   m,
		logger:    logger,
	}
}

// Validate runs the full validation pipeline. Cache failures are logged and
// never fail the call.
func (s *ValidationService) Validate(ctx context.Context, record *domain.Record, mode domain.Mode) (*domain.Result, error) {
	if record == nil {
		return nil, domain.ErrNilRecord
	}

	key := ""
	if s.cache != nil {
		key = cacheKey(record, mode)
		if result := s.cached(ctx, key); result != nil {
			result.Record = record
			return result, nil
		}
	}

	result, err := s.validator.Validate(record, mode)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveValidation(string(record.Platform), result.IsValid, result.Score)
	s.logger.Debug("record validated",
		zap.String("platform", string(record.Platform)),
		zap.String("mode", mode.String()),
		zap.Bool("valid", result.IsValid),
		zap.Float64("score", result.Score),
		zap.Int("issues", len(result.Issues)),
	)

	if key != "" {
		s.store(ctx, key, result)
	}

	return result, nil
}

// Suggest validates record and derives improvement suggestions.
func (s *ValidationService) Suggest(ctx context.Context, record *domain.Record, mode domain.Mode) (*domain.Result, []string, error) {
	result, err := s.Validate(ctx, record, mode)
	if err != nil {
		return nil, nil, err
	}

	return result, domain.SuggestImprovements(result), nil
}

// Fallback synthesizes replacement content for platform. When original is
// given it is validated first so title length problems shape the fallback.
// The returned result is the lenient validation of the fallback record.
func (s *ValidationService) Fallback(ctx context.Context, platform domain.Platform, transcript, titleHint string, original *domain.Record) (*domain.Result, error) {
	var originalResult *domain.Result
	if original != nil {
		r, err := s.Validate(ctx, original, domain.ModeStrict)
		if err != nil {
			return nil, err
		}
		originalResult = r
	}

	record, err := s.validator.CreateFallbackContent(platform, transcript, titleHint, originalResult)
	if err != nil {
		return nil, err
	}

	s.logger.Info("fallback content created",
		zap.String("platform", string(platform)),
		zap.Float64("confidence", record.ConfidenceScore),
		zap.Int("tags", len(record.Tags)),
	)

	return s.validator.Validate(record, domain.ModeLenient)
}

// Rules returns the rule set for platform.
func (s *ValidationService) Rules(platform domain.Platform) (domain.PlatformRules, error) {
	return s.validator.Registry().Get(platform)
}

// Platforms lists supported platforms in canonical order.
func (s *ValidationService) Platforms() []domain.Platform {
	return s.validator.Registry().Platforms()
}

// ClearCache drops every cached validation result.
func (s *ValidationService) ClearCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	return s.cache.Clear(ctx)
}

// CacheStatus reports whether a cache is configured and, if so, whether it
// answers a ping.
func (s *ValidationService) CacheStatus(ctx context.Context) (bool, error) {
	if s.cache == nil {
		return false, nil
	}

	p, ok := s.cache.(interface{ Ping(context.Context) error })
	if !ok {
		return true, nil
	}

	return true, p.Ping(ctx)
}

func (s *ValidationService) cached(ctx context.Context, key string) *domain.Result {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("validation cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if data == nil {
		s.metrics.ObserveCache(false)
		return nil
	}

	var result domain.Result
	if err := json.Unmarshal(data, &result); err != nil {
		s.logger.Warn("dropping corrupt cache entry", zap.String("key", key), zap.Error(err))
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn("validation cache delete failed", zap.String("key", key), zap.Error(err))
		}
		s.metrics.ObserveCache(false)
		return nil
	}

	s.metrics.ObserveCache(true)
	return &result
}

func (s *ValidationService) store(ctx context.Context, key string, result *domain.Result) {
	data, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("validation result not cacheable", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("validation cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// cacheKey hashes the content-bearing part of a record. Generation time and
// quick-check output do not affect validation and are excluded.
func cacheKey(record *domain.Record, mode domain.Mode) string {
	canonical := *record
	canonical.GeneratedAt = time.Time{}
	canonical.MeetsRequirements = false
	canonical.ValidationNotes = nil

	data, _ := json.Marshal(&canonical)
	sum := sha256.Sum256(data)

	return validationKeyPrefix + ":" + mode.String() + ":" + hex.EncodeToString(sum[:])
}
