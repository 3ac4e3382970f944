package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"

	"social-content-service/internal/transport/httpserver/dto"
)

// RateLimit returns a per-client limiter allowing limit requests per window.
// A non-positive limit or window disables it.
func RateLimit(name string, limit int, window time.Duration, logger *zap.Logger) fiber.Handler {
	if limit <= 0 || window <= 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			logger.Warn("rate limit exceeded",
				zap.String("limiter", name),
				zap.String("ip", c.IP()),
				zap.String("path", c.Path()),
				zap.String("request_id", requestID(c)),
			)

			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: "rate limit exceeded: " + strconv.Itoa(limit) + " requests per " + window.String(),
				Code:  "RATE_LIMITED",
			})
		},
	})
}
