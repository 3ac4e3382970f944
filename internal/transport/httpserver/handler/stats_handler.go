package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"social-content-service/internal/app/service"
	"social-content-service/internal/job"
	"social-content-service/internal/transport/httpserver/dto"
)

const cachePingTimeout = 2 * time.Second

// HealthReporter exposes the last known dependency status.
type HealthReporter interface {
	Status() job.HealthStatus
}

// CacheReporter reports whether the validation cache is configured and
// reachable.
type CacheReporter interface {
	CacheStatus(ctx context.Context) (bool, error)
}

// StatsHandler serves orchestration statistics and dependency health.
type StatsHandler struct {
	stats  *service.Stats
	health HealthReporter
	cache  CacheReporter
}

// NewStatsHandler creates a new StatsHandler. health and cache may be nil.
func NewStatsHandler(stats *service.Stats, health HealthReporter, cache CacheReporter) *StatsHandler {
	return &StatsHandler{
		stats:  stats,
		health: health,
		cache:  cache,
	}
}

// Stats handles GET /api/v1/stats
func (h *StatsHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.stats.Snapshot())
}

// Health handles GET /api/v1/health
// The service stays usable without the producer because fallback content
// needs no dependency, so a failed check reports degraded with 200.
func (h *StatsHandler) Health(c *fiber.Ctx) error {
	var checks []dto.HealthCheck

	if h.health != nil {
		s := h.health.Status()
		checks = append(checks, dto.HealthCheck{
			Name:    s.Name,
			Healthy: s.Healthy,
			Error:   s.Error,
		})
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), cachePingTimeout)
		defer cancel()

		if enabled, err := h.cache.CacheStatus(ctx); enabled {
			check := dto.HealthCheck{Name: "cache", Healthy: err == nil}
			if err != nil {
				check.Error = err.Error()
			}
			checks = append(checks, check)
		}
	}

	return c.JSON(dto.NewHealthResponse(checks...))
}
