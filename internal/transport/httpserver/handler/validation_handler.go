package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"social-content-service/internal/app/service"
	"social-content-service/internal/domain"
	"social-content-service/internal/transport/httpserver/dto"
	"social-content-service/internal/validator"
)

// ValidationHandler handles record validation, suggestions and fallback
// synthesis.
type ValidationHandler struct {
	service     *service.ValidationService
	validator   *validator.Validator
	defaultMode domain.Mode
	logger      *zap.Logger
}

// NewValidationHandler creates a new ValidationHandler. defaultMode applies
// when a request has no mode query parameter.
func NewValidationHandler(svc *service.ValidationService, v *validator.Validator, defaultMode domain.Mode, logger *zap.Logger) *ValidationHandler {
	return &ValidationHandler{
		service:     svc,
		validator:   v,
		defaultMode: defaultMode,
		logger:      logger,
	}
}

// Validate handles POST /api/v1/validate/:platform
func (h *ValidationHandler) Validate(c *fiber.Ctx) error {
	record, mode, err := h.parseRecord(c)
	if err != nil {
		return writeError(c, err)
	}

	result, err := h.service.Validate(c.Context(), record, mode)
	if err != nil {
		h.logger.Error("validation failed", zap.String("platform", string(record.Platform)), zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(result)
}

// Suggest handles POST /api/v1/suggest/:platform
func (h *ValidationHandler) Suggest(c *fiber.Ctx) error {
	record, mode, err := h.parseRecord(c)
	if err != nil {
		return writeError(c, err)
	}

	result, suggestions, err := h.service.Suggest(c.Context(), record, mode)
	if err != nil {
		h.logger.Error("suggestion failed", zap.String("platform", string(record.Platform)), zap.Error(err))
		return writeError(c, err)
	}

	if suggestions == nil {
		suggestions = []string{}
	}

	return c.JSON(dto.SuggestResponse{Validation: result, Suggestions: suggestions})
}

// Fallback handles POST /api/v1/fallback/:platform
func (h *ValidationHandler) Fallback(c *fiber.Ctx) error {
	platform, err := parsePlatform(c.Params("platform"))
	if err != nil {
		return writeError(c, err)
	}

	var req dto.FallbackRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return writeError(c, err)
	}

	var original *domain.Record
	if req.Original != nil {
		if original, err = recordFor(platform, req.Original); err != nil {
			return writeError(c, err)
		}
	}

	result, err := h.service.Fallback(c.Context(), platform, req.Transcript, req.TitleHint, original)
	if err != nil {
		h.logger.Error("fallback failed", zap.String("platform", string(platform)), zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(result)
}

// ClearCache handles DELETE /api/v1/cache
func (h *ValidationHandler) ClearCache(c *fiber.Ctx) error {
	if err := h.service.ClearCache(c.Context()); err != nil {
		h.logger.Error("cache clear failed", zap.Error(err))
		return writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ValidationHandler) parseRecord(c *fiber.Ctx) (*domain.Record, domain.Mode, error) {
	platform, err := parsePlatform(c.Params("platform"))
	if err != nil {
		return nil, 0, err
	}

	mode, err := h.parseMode(c.Query("mode"))
	if err != nil {
		return nil, 0, err
	}

	var req dto.RecordRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return nil, 0, err
	}

	record, err := recordFor(platform, &req)
	if err != nil {
		return nil, 0, err
	}

	return record, mode, nil
}

func (h *ValidationHandler) parseMode(raw string) (domain.Mode, error) {
	switch raw {
	case "":
		return h.defaultMode, nil
	case "strict":
		return domain.ModeStrict, nil
	case "lenient":
		return domain.ModeLenient, nil
	default:
		return 0, badRequest(codeInvalidParams, "mode must be one of: strict lenient", nil)
	}
}

// recordFor converts req for platform. A platform named in the body must
// match the path.
func recordFor(platform domain.Platform, req *dto.RecordRequest) (*domain.Record, error) {
	if req.Platform != "" {
		bodyPlatform, err := domain.ParsePlatform(req.Platform)
		if err != nil || bodyPlatform != platform {
			return nil, badRequest(codePlatformMismatch, "record platform does not match path", fiber.Map{
				"path": platform,
				"body": req.Platform,
			})
		}
	}

	return req.ToRecord(platform), nil
}
