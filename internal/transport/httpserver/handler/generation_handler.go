package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"social-content-service/internal/app/service"
	"social-content-service/internal/domain"
	"social-content-service/internal/transport/httpserver/dto"
	"social-content-service/internal/validator"
)

// GenerationHandler handles content generation requests.
type GenerationHandler struct {
	service   *service.GenerationService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(svc *service.GenerationService, v *validator.Validator, logger *zap.Logger) *GenerationHandler {
	return &GenerationHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Generate handles POST /api/v1/generate/:platform
func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	platform, err := parsePlatform(c.Params("platform"))
	if err != nil {
		return writeError(c, err)
	}

	var req dto.GenerateRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return writeError(c, err)
	}

	result, err := h.service.Generate(c.Context(), platform, req.Transcript.ToTranscript(), req.Options.ToOptions())
	if err != nil {
		return h.generationError(c, platform, err)
	}

	return c.JSON(dto.FromGenerationResult(result))
}

// GenerateBatch handles POST /api/v1/generate
func (h *GenerationHandler) GenerateBatch(c *fiber.Ctx) error {
	var req dto.BatchGenerateRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return writeError(c, err)
	}

	result, err := h.service.GenerateBatch(c.Context(), service.BatchRequest{
		Platforms:  req.ToPlatforms(),
		Transcript: req.Transcript.ToTranscript(),
		Options:    req.Options.ToOptions(),
	})
	if err != nil {
		return h.generationError(c, "", err)
	}

	return c.JSON(dto.FromBatchResult(result))
}

// generationError maps service errors onto HTTP statuses.
func (h *GenerationHandler) generationError(c *fiber.Ctx, platform domain.Platform, err error) error {
	status, code := fiber.StatusInternalServerError, codeInternal

	switch {
	case errors.Is(err, domain.ErrUnknownPlatform):
		status, code = fiber.StatusNotFound, codeUnknownPlatform
	case errors.Is(err, service.ErrNoPlatforms):
		status, code = fiber.StatusBadRequest, codeValidationError
	case errors.Is(err, service.ErrGenerationInProgress):
		status, code = fiber.StatusConflict, codeInProgress
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		status, code = fiber.StatusGatewayTimeout, codeTimeout
	case errors.Is(err, service.ErrGenerationFailed):
		status, code = fiber.StatusBadGateway, codeGenerationFailed
	}

	fields := []zap.Field{zap.String("platform", string(platform)), zap.Int("status", status), zap.Error(err)}
	if status >= fiber.StatusInternalServerError {
		h.logger.Error("generation request failed", fields...)
	} else {
		h.logger.Warn("generation request rejected", fields...)
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}
