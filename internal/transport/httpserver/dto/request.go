// Package dto defines the HTTP request and response bodies.
package dto

import (
	"time"

	"social-content-service/internal/domain"
)

// RecordRequest is a post submitted for validation.
type RecordRequest struct {
	Platform        string   `json:"platform,omitempty" validate:"omitempty,platform"`
	Title           string   `json:"title"`
	Tags            []string `json:"tags"`
	ConfidenceScore float64  `json:"confidence_score"`

	Description       string `json:"description,omitempty"`
	Caption           string `json:"caption,omitempty"`
	PostBody          string `json:"post_body,omitempty"`
	Bio               string `json:"bio,omitempty"`
	Username          string `json:"username,omitempty"`
	ProfileName       string `json:"profile_name,omitempty"`
	Headline          string `json:"headline,omitempty"`
	AboutSection      string `json:"about_section,omitempty"`
	ConnectionMessage string `json:"connection_message,omitempty"`
	StreamCategory    string `json:"stream_category,omitempty"`
}

// ToRecord converts the request into a domain record for platform.
func (r *RecordRequest) ToRecord(platform domain.Platform) *domain.Record {
	record := &domain.Record{
		Platform:          platform,
		Title:             r.Title,
		Tags:              r.Tags,
		ConfidenceScore:   r.ConfidenceScore,
		Description:       r.Description,
		Caption:           r.Caption,
		PostBody:          r.PostBody,
		Bio:               r.Bio,
		Username:          r.Username,
		ProfileName:       r.ProfileName,
		Headline:          r.Headline,
		AboutSection:      r.AboutSection,
		ConnectionMessage: r.ConnectionMessage,
		StreamCategory:    r.StreamCategory,
	}
	record.Normalize()

	return record
}

// TranscriptRequest is the source material for generation.
type TranscriptRequest struct {
	Content         string `json:"content" validate:"required,min=10,max=50000"`
	Language        string `json:"language,omitempty" validate:"omitempty,len=2|len=5"`
	Title           string `json:"title,omitempty" validate:"omitempty,max=300"`
	DurationSeconds int    `json:"duration_seconds,omitempty" validate:"omitempty,min=0,max=86400"`
	Category        string `json:"category,omitempty" validate:"omitempty,max=100"`
}

// ToTranscript converts the request into a domain transcript.
func (r *TranscriptRequest) ToTranscript() domain.Transcript {
	return domain.Transcript{
		Content:  r.Content,
		Language: r.Language,
		Title:    r.Title,
		Duration: time.Duration(r.DurationSeconds) * time.Second,
		Category: r.Category,
	}
}

// OptionsRequest tunes generation.
type OptionsRequest struct {
	Tone           string   `json:"tone,omitempty" validate:"omitempty,max=50"`
	TargetAudience string   `json:"target_audience,omitempty" validate:"omitempty,max=200"`
	IncludeEmojis  bool     `json:"include_emojis"`
	Keywords       []string `json:"keywords,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// ToOptions converts the request into domain generation options.
func (r *OptionsRequest) ToOptions() domain.GenerationOptions {
	return domain.GenerationOptions{
		Tone:           r.Tone,
		TargetAudience: r.TargetAudience,
		IncludeEmojis:  r.IncludeEmojis,
		Keywords:       r.Keywords,
	}
}

// GenerateRequest asks for a post on the platform named in the path.
type GenerateRequest struct {
	Transcript TranscriptRequest `json:"transcript"`
	Options    OptionsRequest    `json:"options"`
}

// BatchGenerateRequest asks for posts on several platforms at once.
type BatchGenerateRequest struct {
	Platforms  []string          `json:"platforms" validate:"required,min=1,max=7,dive,platform"`
	Transcript TranscriptRequest `json:"transcript"`
	Options    OptionsRequest    `json:"options"`
}

// ToPlatforms parses the requested platforms. Entries have already passed
// validation.
func (r *BatchGenerateRequest) ToPlatforms() []domain.Platform {
	out := make([]domain.Platform, 0, len(r.Platforms))
	for _, name := range r.Platforms {
		if p, err := domain.ParsePlatform(name); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// FallbackRequest asks for guaranteed-valid content when generation failed.
type FallbackRequest struct {
	Transcript string         `json:"transcript" validate:"required,min=10,max=50000"`
	TitleHint  string         `json:"title_hint,omitempty" validate:"omitempty,max=300"`
	Original   *RecordRequest `json:"original,omitempty"`
}
