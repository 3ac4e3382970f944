package producer

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"social-content-service/internal/domain"
)

// API paths exposed by the producer.
const (
	GenerateEndpoint = "/api/generate"
	HealthEndpoint   = "/health"
)

// ErrUnexpectedStatus wraps non-2xx producer responses.
var ErrUnexpectedStatus = errors.New("producer returned status")

// Client implements domain.Producer over HTTP.
type Client struct {
	name   string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[[]byte]
	logger *zap.Logger
}

// New creates a new producer client.
func New(cfg ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		name:   "http_producer",
		client: NewRestyClient(cfg),
		cb:     NewCircuitBreaker[[]byte]("producer", cfg.CB, logger),
		logger: logger,
	}
}

// Name returns the producer identifier.
func (c *Client) Name() string {
	return c.name
}

// Produce asks the producer for one record and parses its output.
// Output that cannot be parsed yields ErrMalformedOutput; it does not count
// against the circuit breaker.
func (c *Client) Produce(ctx context.Context, platform domain.Platform, transcript domain.Transcript, opts domain.GenerationOptions) (*domain.Record, error) {
	body, err := c.cb.Execute(func() ([]byte, error) {
		r, err := c.client.R().
			SetContext(ctx).
			SetBody(newGenerateRequest(platform, transcript, opts)).
			Post(GenerateEndpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("%w %d", ErrUnexpectedStatus, r.StatusCode())
		}

		return r.Body(), nil
	})

	if err != nil {
		c.logger.Warn("producer request failed",
			zap.String("platform", string(platform)),
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("producing %s content: %w", platform, err)
	}

	switch out := ParseOutput(platform, body).(type) {
	case Parsed:
		c.logger.Debug("producer output parsed",
			zap.String("platform", string(platform)),
			zap.String("extractor", out.Extractor),
		)

		return out.Record, nil
	case Malformed:
		c.logger.Warn("producer output malformed",
			zap.String("platform", string(platform)),
			zap.String("reason", out.Reason),
			zap.String("raw", out.Raw),
		)

		return nil, fmt.Errorf("%w: %s", ErrMalformedOutput, out.Reason)
	default:
		return nil, ErrMalformedOutput
	}
}

// HealthCheck verifies the producer is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(HealthEndpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
