package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"social-content-service/internal/app/service"
	"social-content-service/internal/transport/httpserver/dto"
)

// PlatformHandler serves the platform rule registry.
type PlatformHandler struct {
	service *service.ValidationService
	logger  *zap.Logger
}

// NewPlatformHandler creates a new PlatformHandler.
func NewPlatformHandler(svc *service.ValidationService, logger *zap.Logger) *PlatformHandler {
	return &PlatformHandler{
		service: svc,
		logger:  logger,
	}
}

// List handles GET /api/v1/platforms
func (h *PlatformHandler) List(c *fiber.Ctx) error {
	platforms := h.service.Platforms()

	resp := dto.PlatformsResponse{
		Platforms: make([]dto.PlatformInfo, 0, len(platforms)),
		Count:     len(platforms),
	}
	for _, p := range platforms {
		rules, err := h.service.Rules(p)
		if err != nil {
			h.logger.Error("registry missing platform", zap.String("platform", string(p)), zap.Error(err))
			return writeError(c, err)
		}
		resp.Platforms = append(resp.Platforms, dto.PlatformInfo{
			ID:           string(p),
			DisplayName:  p.DisplayName(),
			ContentStyle: string(rules.ContentStyle),
		})
	}

	return c.JSON(resp)
}

// Rules handles GET /api/v1/platforms/:platform/rules
func (h *PlatformHandler) Rules(c *fiber.Ctx) error {
	platform, err := parsePlatform(c.Params("platform"))
	if err != nil {
		return writeError(c, err)
	}

	rules, err := h.service.Rules(platform)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(dto.FromRules(rules))
}
