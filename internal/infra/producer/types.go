package producer

import (
	"social-content-service/internal/domain"
)

// GenerateRequest is the body sent to the producer's generate endpoint.
type GenerateRequest struct {
	Platform   domain.Platform          `json:"platform"`
	Transcript TranscriptPayload        `json:"transcript"`
	Options    domain.GenerationOptions `json:"options"`
}

// TranscriptPayload is the wire form of domain.Transcript.
type TranscriptPayload struct {
	Content         string `json:"content"`
	Language        string `json:"language,omitempty"`
	Title           string `json:"title,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	Category        string `json:"category,omitempty"`
}

func newGenerateRequest(platform domain.Platform, t domain.Transcript, opts domain.GenerationOptions) GenerateRequest {
	return GenerateRequest{
		Platform: platform,
		Transcript: TranscriptPayload{
			Content:         t.Content,
			Language:        t.Language,
			Title:           t.Title,
			DurationSeconds: int(t.Duration.Seconds()),
			Category:        t.Category,
		},
		Options: opts,
	}
}

// Payload is the structured content a producer is asked to return.
type Payload struct {
	Title             string   `json:"title"`
	Tags              []string `json:"tags"`
	Confidence        *float64 `json:"confidence"`
	Description       string   `json:"description"`
	Caption           string   `json:"caption"`
	PostBody          string   `json:"post_body"`
	Bio               string   `json:"bio"`
	Username          string   `json:"username"`
	ProfileName       string   `json:"profile_name"`
	Headline          string   `json:"headline"`
	AboutSection      string   `json:"about_section"`
	ConnectionMessage string   `json:"connection_message"`
	StreamCategory    string   `json:"stream_category"`
}

// DefaultConfidence is assumed when the producer omits a confidence.
const DefaultConfidence = 0.7

// ToDomain converts the payload into a record for platform. Tags are
// normalized to unique hashtags.
func (p *Payload) ToDomain(platform domain.Platform) *domain.Record {
	confidence := DefaultConfidence
	if p.Confidence != nil {
		confidence = *p.Confidence
	}

	r := domain.NewRecord(platform, p.Title, domain.NormalizeTags(p.Tags), confidence)
	r.Description = p.Description
	r.Caption = p.Caption
	r.PostBody = p.PostBody
	r.Bio = p.Bio
	r.Username = p.Username
	r.ProfileName = p.ProfileName
	r.Headline = p.Headline
	r.AboutSection = p.AboutSection
	r.ConnectionMessage = p.ConnectionMessage
	r.StreamCategory = p.StreamCategory

	return r
}
