// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"social-content-service/internal/domain"
	"social-content-service/internal/transport/httpserver/dto"
	"social-content-service/internal/validator"
)

// Error codes returned in dto.ErrorResponse.
const (
	codeInvalidBody      = "INVALID_BODY"
	codeInvalidParams    = "INVALID_PARAMS"
	codeValidationError  = "VALIDATION_ERROR"
	codeUnknownPlatform  = "UNKNOWN_PLATFORM"
	codePlatformMismatch = "PLATFORM_MISMATCH"
	codeInProgress       = "GENERATION_IN_PROGRESS"
	codeGenerationFailed = "GENERATION_FAILED"
	codeTimeout          = "TIMEOUT"
	codeInternal         = "INTERNAL_ERROR"
)

// requestError is a client error with its response already decided.
type requestError struct {
	status int
	body   dto.ErrorResponse
}

func (e *requestError) Error() string { return e.body.Error }

func badRequest(code, msg string, details interface{}) *requestError {
	return &requestError{
		status: fiber.StatusBadRequest,
		body:   dto.ErrorResponse{Error: msg, Code: code, Details: details},
	}
}

// writeError renders requestError values and falls back to a generic 500.
func writeError(c *fiber.Ctx, err error) error {
	var re *requestError
	if errors.As(err, &re) {
		return c.Status(re.status).JSON(re.body)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: "internal server error",
		Code:  codeInternal,
	})
}

// parsePlatform resolves a path parameter into a supported platform.
func parsePlatform(raw string) (domain.Platform, error) {
	p, err := domain.ParsePlatform(raw)
	if err != nil {
		return "", &requestError{
			status: fiber.StatusNotFound,
			body: dto.ErrorResponse{
				Error:   err.Error(),
				Code:    codeUnknownPlatform,
				Details: fiber.Map{"supported": domain.AllPlatforms},
			},
		}
	}
	return p, nil
}

// parseBody decodes and validates the request body into req.
func parseBody(c *fiber.Ctx, v *validator.Validator, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return badRequest(codeInvalidBody, "invalid request body", nil)
	}

	if err := v.Validate(req); err != nil {
		return badRequest(codeValidationError, "validation failed", err)
	}

	return nil
}
