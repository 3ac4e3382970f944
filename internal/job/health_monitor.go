// Package job provides background jobs.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"social-content-service/internal/metrics"
)

// Checker is a dependency that can report its health.
type Checker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

// HealthConfig holds health monitor configuration.
type HealthConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// HealthStatus is the last observed state of the checked dependency.
type HealthStatus struct {
	Name      string    `json:"name"`
	Healthy   bool      `json:"healthy"`
	CheckedAt time.Time `json:"checked_at"`
	Error     string    `json:"error,omitempty"`
}

// HealthMonitor periodically checks a dependency and caches the result for
// readiness probes. Every instance runs its own checks; no lock is taken.
type HealthMonitor struct {
	checker  Checker
	interval time.Duration
	timeout  time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger

	mu     sync.RWMutex
	status HealthStatus

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHealthMonitor creates a new HealthMonitor. The dependency is reported
// unhealthy until the first check completes.
func NewHealthMonitor(checker Checker, cfg HealthConfig, m *metrics.Metrics, logger *zap.Logger) *HealthMonitor {
	return &HealthMonitor{
		checker:  checker,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		metrics:  m,
		logger:   logger,
		status:   HealthStatus{Name: checker.Name()},
	}
}

// Start runs a first check immediately and then one per interval.
func (h *HealthMonitor) Start() {
	h.ctx, h.cancel = context.WithCancel(context.Background())

	h.logger.Info("starting health monitor",
		zap.String("dependency", h.checker.Name()),
		zap.Duration("interval", h.interval),
	)

	h.wg.Add(1)
	go h.run()
}

// Stop gracefully stops the monitor.
func (h *HealthMonitor) Stop() {
	h.logger.Info("stopping health monitor")
	h.cancel()
	h.wg.Wait()
	h.logger.Info("health monitor stopped")
}

// Healthy reports the result of the last check.
func (h *HealthMonitor) Healthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status.Healthy
}

// Status returns a copy of the last observed status.
func (h *HealthMonitor) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

func (h *HealthMonitor) run() {
	defer h.wg.Done()

	h.Check(h.ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.Check(h.ctx)
		}
	}
}

// Check performs one health check and records the outcome.
func (h *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	err := h.checker.HealthCheck(ctx)
	next := HealthStatus{
		Name:      h.checker.Name(),
		Healthy:   err == nil,
		CheckedAt: time.Now().UTC(),
	}
	if err != nil {
		next.Error = err.Error()
	}

	h.mu.Lock()
	prev := h.status
	h.status = next
	h.mu.Unlock()

	h.metrics.SetProducerUp(next.Healthy)

	switch {
	case prev.Healthy && !next.Healthy:
		h.logger.Warn("dependency became unhealthy",
			zap.String("dependency", next.Name),
			zap.Error(err),
		)
	case !prev.Healthy && next.Healthy:
		h.logger.Info("dependency is healthy", zap.String("dependency", next.Name))
	case !next.Healthy:
		h.logger.Debug("dependency still unhealthy",
			zap.String("dependency", next.Name),
			zap.Error(err),
		)
	}

	return next
}
