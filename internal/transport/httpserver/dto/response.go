package dto

import (
	"time"

	"social-content-service/internal/app/service"
	"social-content-service/internal/domain"
)

// PlatformInfo describes one supported platform.
type PlatformInfo struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	ContentStyle string `json:"content_style"`
}

// PlatformsResponse lists the supported platforms.
type PlatformsResponse struct {
	Platforms []PlatformInfo `json:"platforms"`
	Count     int            `json:"count"`
}

// RulesResponse is a platform's rule set plus the fields it accepts.
type RulesResponse struct {
	domain.PlatformRules
	DisplayName     string         `json:"display_name"`
	AvailableFields []domain.Field `json:"available_fields"`
}

// FromRules converts domain rules to RulesResponse.
func FromRules(rules domain.PlatformRules) RulesResponse {
	return RulesResponse{
		PlatformRules:   rules,
		DisplayName:     rules.Platform.DisplayName(),
		AvailableFields: rules.AvailableFields(),
	}
}

// SuggestResponse pairs a validation result with improvement suggestions.
type SuggestResponse struct {
	Validation  *domain.Result `json:"validation"`
	Suggestions []string       `json:"suggestions"`
}

// GenerationResponse is one platform's generation outcome.
type GenerationResponse struct {
	RequestID         string         `json:"request_id"`
	Platform          string         `json:"platform"`
	Outcome           string         `json:"outcome"`
	IsFallback        bool           `json:"is_fallback"`
	Attempts          int            `json:"attempts"`
	ProcessingSeconds float64        `json:"processing_seconds"`
	Record            *domain.Record `json:"record,omitempty"`
	Validation        *domain.Result `json:"validation,omitempty"`
	Suggestions       []string       `json:"suggestions,omitempty"`
	Error             string         `json:"error,omitempty"`
}

// FromGenerationResult converts service.GenerationResult to GenerationResponse.
func FromGenerationResult(r *service.GenerationResult) GenerationResponse {
	return GenerationResponse{
		RequestID:         r.RequestID,
		Platform:          string(r.Platform),
		Outcome:           string(r.Outcome),
		IsFallback:        r.IsFallback,
		Attempts:          r.Attempts,
		ProcessingSeconds: r.ProcessingTime.Seconds(),
		Record:            r.Record,
		Validation:        r.Validation,
		Suggestions:       r.Suggestions,
		Error:             r.Error,
	}
}

// BatchResponse holds every platform's outcome for one batch request.
type BatchResponse struct {
	RequestID         string               `json:"request_id"`
	Results           []GenerationResponse `json:"results"`
	Summary           BatchSummary         `json:"summary"`
	ProcessingSeconds float64              `json:"processing_seconds"`
}

// BatchSummary counts batch outcomes.
type BatchSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Fallbacks int `json:"fallbacks"`
	Failed    int `json:"failed"`
}

// FromBatchResult converts service.BatchResult to BatchResponse.
func FromBatchResult(r *service.BatchResult) BatchResponse {
	resp := BatchResponse{
		RequestID:         r.RequestID,
		Results:           make([]GenerationResponse, len(r.Results)),
		ProcessingSeconds: r.ProcessingTime.Seconds(),
		Summary: BatchSummary{
			Total:     len(r.Results),
			Succeeded: r.SuccessCount,
			Fallbacks: r.FallbackCount,
			Failed:    r.ErrorCount,
		},
	}

	for i := range r.Results {
		resp.Results[i] = FromGenerationResult(&r.Results[i])
	}

	return resp
}

// HealthResponse represents health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// NewHealthResponse builds the health body from dependency statuses.
func NewHealthResponse(statuses ...HealthCheck) HealthResponse {
	resp := HealthResponse{
		Status:    "healthy",
		Checks:    make(map[string]string, len(statuses)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	for _, s := range statuses {
		if s.Healthy {
			resp.Checks[s.Name] = "ok"
			continue
		}
		resp.Status = "degraded"
		resp.Checks[s.Name] = s.Error
		if s.Error == "" {
			resp.Checks[s.Name] = "unavailable"
		}
	}

	return resp
}

// HealthCheck is one dependency status fed into NewHealthResponse.
type HealthCheck struct {
	Name    string
	Healthy bool
	Error   string
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
