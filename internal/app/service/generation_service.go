package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"social-content-service/internal/domain"
	"social-content-service/internal/metrics"
	"social-content-service/internal/transcript"
	"social-content-service/pkg/locker"
)

var (
	// ErrGenerationInProgress is returned when an identical request is
	// already being generated, possibly on another instance.
	ErrGenerationInProgress = errors.New("generation already in progress")

	// ErrGenerationFailed is returned when every attempt failed and
	// fallback synthesis is disabled.
	ErrGenerationFailed = errors.New("content generation failed")

	// ErrNoPlatforms is returned for a batch without platforms.
	ErrNoPlatforms = errors.New("no platforms requested")

	// errQuickCheck marks a produced record that failed the quick check.
	errQuickCheck = errors.New("record failed platform requirements")
)

// GenerationConfig tunes retries, fan-out and fallback behavior.
type GenerationConfig struct {
	MaxRetries        int
	BackoffBase       time.Duration
	BackoffMax        time.Duration
	Concurrency       int
	FallbackOnFailure bool
	LockTTL           time.Duration
}

func (c GenerationConfig) withDefaults() GenerationConfig {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = time.Second
	}
	if c.BackoffMax < c.BackoffBase {
		c.BackoffMax = c.BackoffBase
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.LockTTL <= 0 {
		c.LockTTL = 2 * time.Minute
	}
	return c
}

// GenerationResult is the outcome of generating one platform's content.
type GenerationResult struct {
	RequestID      string          `json:"request_id"`
	Platform       domain.Platform `json:"platform"`
	Record         *domain.Record  `json:"record,omitempty"`
	Validation     *domain.Result  `json:"validation,omitempty"`
	Suggestions    []string        `json:"suggestions,omitempty"`
	IsFallback     bool            `json:"is_fallback"`
	Attempts       int             `json:"attempts"`
	ProcessingTime time.Duration   `json:"processing_time"`
	Error          string          `json:"error,omitempty"`
	Outcome        Outcome         `json:"outcome"`
}

// BatchRequest asks for content on several platforms from one transcript.
type BatchRequest struct {
	Platforms  []domain.Platform
	Transcript domain.Transcript
	Options    domain.GenerationOptions
}

// BatchResult holds results in request order with duplicates removed.
type BatchResult struct {
	RequestID      string             `json:"request_id"`
	Results        []GenerationResult `json:"results"`
	SuccessCount   int                `json:"success_count"`
	FallbackCount  int                `json:"fallback_count"`
	ErrorCount     int                `json:"error_count"`
	ProcessingTime time.Duration      `json:"processing_time"`
}

// GenerationService drives the producer, validates its output and falls
// back to synthesized content.
type GenerationService struct {
	producer   domain.Producer
	validation *ValidationService
	validator  *domain.Validator
	locker     locker.DistributedLocker
	stats      *Stats
	metrics    *metrics.Metrics
	cfg        GenerationConfig
	logger     *zap.Logger
}

// NewGenerationService creates a new GenerationService. A nil locker
// disables request deduplication.
func NewGenerationService(
	producer domain.Producer,
	validation *ValidationService,
	validator *domain.Validator,
	l locker.DistributedLocker,
	stats *Stats,
	m *metrics.Metrics,
	cfg GenerationConfig,
	logger *zap.Logger,
) *GenerationService {
	if l == nil {
		l = locker.NopLocker{}
	}

	return &GenerationService{
		producer:   producer,
		validation: validation,
		validator:  validator,
		locker:     l,
		stats:      stats,
		metrics:    m,
		cfg:        cfg.withDefaults(),
		logger:     logger,
	}
}

// Stats returns the service's counters.
func (s *GenerationService) Stats() *Stats {
	return s.stats
}

// prepared is the per-request input shared by every platform.
type prepared struct {
	transcript domain.Transcript
	analysis   transcript.Analysis
	options    domain.GenerationOptions
}

func prepare(t domain.Transcript, opts domain.GenerationOptions) prepared {
	analysis := transcript.Analyze(t)

	if len(opts.Keywords) == 0 {
		opts.Keywords = analysis.Keywords
	}
	if opts.Tone == "" {
		opts.Tone = string(analysis.Tone)
	}
	if analysis.CleanedContent != "" {
		t.Content = analysis.CleanedContent
	}
	t.Category = analysis.Category

	return prepared{transcript: t, analysis: analysis, options: opts}
}

// Generate produces validated content for one platform.
func (s *GenerationService) Generate(ctx context.Context, platform domain.Platform, t domain.Transcript, opts domain.GenerationOptions) (*GenerationResult, error) {
	if _, err := s.validator.Registry().Get(platform); err != nil {
		return nil, err
	}

	start := time.Now()
	requestID := uuid.NewString()
	result, err := s.generateLocked(ctx, requestID, platform, prepare(t, opts))
	if errors.Is(err, ErrGenerationInProgress) {
		return nil, err
	}

	s.stats.RecordRequest(time.Since(start))
	if err != nil {
		s.stats.RecordOutcome(platform, OutcomeFailed)
		return nil, err
	}
	s.stats.RecordOutcome(platform, result.Outcome)

	return result, nil
}

// GenerateBatch produces content for each requested platform concurrently.
// One platform failing does not fail the batch; its error is reported in
// its result.
func (s *GenerationService) GenerateBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	platforms := dedupePlatforms(req.Platforms)
	if len(platforms) == 0 {
		return nil, ErrNoPlatforms
	}
	for _, p := range platforms {
		if _, err := s.validator.Registry().Get(p); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	batch := &BatchResult{
		RequestID: uuid.NewString(),
		Results:   make([]GenerationResult, len(platforms)),
	}
	in := prepare(req.Transcript, req.Options)

	s.logger.Info("starting batch generation",
		zap.String("request_id", batch.RequestID),
		zap.Int("platforms", len(platforms)),
		zap.Int("words", in.analysis.WordCount),
		zap.String("tone", string(in.analysis.Tone)),
	)

	// Platforms already being generated elsewhere are reported as failed
	// but left out of the statistics, as in Generate.
	inProgress := make([]bool, len(platforms))

	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for i, p := range platforms {
		i, p := i, p
		g.Go(func() error {
			res, err := s.generateLocked(ctx, batch.RequestID, p, in)
			if err != nil {
				inProgress[i] = errors.Is(err, ErrGenerationInProgress)
				res = &GenerationResult{
					RequestID: batch.RequestID,
					Platform:  p,
					Error:     err.Error(),
					Outcome:   OutcomeFailed,
				}
			}
			batch.Results[i] = *res
			return nil
		})
	}
	_ = g.Wait()

	counted := 0
	for i, r := range batch.Results {
		switch r.Outcome {
		case OutcomeSuccess:
			batch.SuccessCount++
		case OutcomeFallback:
			batch.FallbackCount++
		default:
			batch.ErrorCount++
		}
		if inProgress[i] {
			continue
		}
		s.stats.RecordOutcome(r.Platform, r.Outcome)
		counted++
	}
	batch.ProcessingTime = time.Since(start)
	if counted > 0 {
		s.stats.RecordRequest(batch.ProcessingTime)
	}

	s.logger.Info("batch generation completed",
		zap.String("request_id", batch.RequestID),
		zap.Int("successful", batch.SuccessCount),
		zap.Int("fallbacks", batch.FallbackCount),
		zap.Int("failed", batch.ErrorCount),
		zap.Duration("duration", batch.ProcessingTime),
	)

	return batch, nil
}

func (s *GenerationService) generateLocked(ctx context.Context, requestID string, platform domain.Platform, in prepared) (*GenerationResult, error) {
	var result *GenerationResult
	err := locker.WithLock(ctx, s.locker, lockKey(platform, in), s.cfg.LockTTL, func(ctx context.Context) error {
		var err error
		result, err = s.generate(ctx, requestID, platform, in)
		return err
	})
	if errors.Is(err, locker.ErrLockHeld) {
		s.logger.Info("duplicate generation request rejected",
			zap.String("request_id", requestID),
			zap.String("platform", string(platform)),
		)
		return nil, ErrGenerationInProgress
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *GenerationService) generate(ctx context.Context, requestID string, platform domain.Platform, in prepared) (*GenerationResult, error) {
	start := time.Now()
	rules, err := s.validator.Registry().Get(platform)
	if err != nil {
		return nil, err
	}

	opts := in.options
	opts.Constraints = domain.ConstraintsFor(rules)

	log := s.logger.With(
		zap.String("request_id", requestID),
		zap.String("platform", string(platform)),
	)

	var (
		attempts   int
		lastRecord *domain.Record
		lastErr    error
	)

	policy := retrypolicy.NewBuilder[*domain.Record]().
		WithBackoff(s.cfg.BackoffBase, s.cfg.BackoffMax).
		WithMaxRetries(s.cfg.MaxRetries).
		WithJitterFactor(0.1).
		HandleIf(func(_ *domain.Record, err error) bool {
			return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}).
		Build()

	record, err := failsafe.With(policy).WithContext(ctx).Get(func() (*domain.Record, error) {
		attempts++
		log.Debug("producing content", zap.Int("attempt", attempts))

		record, err := s.producer.Produce(ctx, platform, in.transcript, opts)
		s.metrics.ObserveProducerAttempt(string(platform), err)
		if err != nil {
			lastErr = err
			log.Warn("producer attempt failed", zap.Int("attempt", attempts), zap.Error(err))
			return nil, err
		}

		lastRecord = record
		if !record.ValidateAgainstRules(rules) {
			lastErr = fmt.Errorf("%w: %s", errQuickCheck, strings.Join(record.ValidationNotes, "; "))
			log.Warn("produced content failed requirements",
				zap.Int("attempt", attempts),
				zap.Strings("notes", record.ValidationNotes),
			)
			return nil, lastErr
		}

		return record, nil
	})

	if err == nil {
		validation, err := s.validation.Validate(ctx, record, domain.ModeStrict)
		if err != nil {
			return nil, err
		}

		elapsed := time.Since(start)
		s.metrics.ObserveGeneration(string(platform), metrics.OutcomeSuccess, elapsed)
		log.Info("content generated",
			zap.Int("attempts", attempts),
			zap.Float64("score", validation.Score),
			zap.Duration("duration", elapsed),
		)

		return &GenerationResult{
			RequestID:      requestID,
			Platform:       platform,
			Record:         record,
			Validation:     validation,
			Suggestions:    domain.SuggestImprovements(validation),
			Attempts:       attempts,
			ProcessingTime: elapsed,
			Outcome:        OutcomeSuccess,
		}, nil
	}

	if ctx.Err() != nil {
		s.metrics.ObserveGeneration(string(platform), metrics.OutcomeFailed, time.Since(start))
		return nil, fmt.Errorf("generating %s content: %w", platform, ctx.Err())
	}
	if lastErr == nil {
		lastErr = err
	}

	if !s.cfg.FallbackOnFailure {
		s.metrics.ObserveGeneration(string(platform), metrics.OutcomeFailed, time.Since(start))
		log.Error("content generation failed", zap.Int("attempts", attempts), zap.Error(lastErr))
		return nil, fmt.Errorf("%w for %s after %d attempts: %w", ErrGenerationFailed, platform, attempts, lastErr)
	}

	return s.fallback(ctx, log, requestID, platform, in, lastRecord, attempts, start, lastErr)
}

func (s *GenerationService) fallback(
	ctx context.Context,
	log *zap.Logger,
	requestID string,
	platform domain.Platform,
	in prepared,
	lastRecord *domain.Record,
	attempts int,
	start time.Time,
	cause error,
) (*GenerationResult, error) {
	titleHint := in.transcript.Title
	if titleHint == "" && lastRecord != nil {
		titleHint = lastRecord.Title
	}

	validation, err := s.validation.Fallback(ctx, platform, in.analysis.CleanedContent, titleHint, lastRecord)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	s.metrics.ObserveGeneration(string(platform), metrics.OutcomeFallback, elapsed)
	log.Warn("using fallback content",
		zap.Int("attempts", attempts),
		zap.Error(cause),
		zap.Float64("score", validation.Score),
	)

	return &GenerationResult{
		RequestID:      requestID,
		Platform:       platform,
		Record:         validation.Record,
		Validation:     validation,
		Suggestions:    domain.SuggestImprovements(validation),
		IsFallback:     true,
		Attempts:       attempts,
		ProcessingTime: elapsed,
		Error:          cause.Error(),
		Outcome:        OutcomeFallback,
	}, nil
}

// lockKey identifies identical requests: same platform, transcript and
// options.
func lockKey(platform domain.Platform, in prepared) string {
	h := sha256.New()
	h.Write([]byte(in.transcript.Content))
	h.Write([]byte{0})
	h.Write([]byte(in.transcript.Title))
	h.Write([]byte{0})
	h.Write([]byte(in.options.Tone))
	h.Write([]byte{0})
	h.Write([]byte(in.options.TargetAudience))

	return "generate:" + string(platform) + ":" + hex.EncodeToString(h.Sum(nil))[:16]
}

func dedupePlatforms(in []domain.Platform) []domain.Platform {
	seen := make(map[domain.Platform]bool, len(in))
	out := make([]domain.Platform, 0, len(in))
	for _, p := range in {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
