package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Field names a record field, or a synthetic aspect of the content that an
// issue can refer to.
type Field string

const (
	FieldTitle             Field = "title"
	FieldTags              Field = "tags"
	FieldDescription       Field = "description"
	FieldCaption           Field = "caption"
	FieldPostBody          Field = "post_body"
	FieldBio               Field = "bio"
	FieldUsername          Field = "username"
	FieldProfileName       Field = "profile_name"
	FieldComments          Field = "comments"
	FieldHeadline          Field = "headline"
	FieldAboutSection      Field = "about_section"
	FieldConnectionMessage Field = "connection_message"
	FieldStreamCategory    Field = "stream_category"

	// Synthetic fields.
	FieldTotalContent Field = "total_content"
	FieldTone         Field = "tone"
	FieldTiming       Field = "timing"
	FieldVisualAppeal Field = "visual_appeal"
	FieldConfidence   Field = "confidence"
)

// OptionalFields are the platform-specific text fields a Record may carry,
// in canonical order.
var OptionalFields = []Field{
	FieldDescription,
	FieldCaption,
	FieldPostBody,
	FieldBio,
	FieldUsername,
	FieldProfileName,
	FieldHeadline,
	FieldAboutSection,
	FieldConnectionMessage,
	FieldStreamCategory,
}

// IsTextField reports whether f is the title or an optional text field.
func (f Field) IsTextField() bool {
	if f == FieldTitle {
		return true
	}
	for _, o := range OptionalFields {
		if f == o {
			return true
		}
	}
	return false
}

// Label returns the field name as a sentence-case label ("Post body").
func (f Field) Label() string {
	s := strings.ReplaceAll(string(f), "_", " ")
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Record is one generated post for one platform. It is created per
// generation attempt and is not persisted.
type Record struct {
	Platform        Platform `json:"platform" yaml:"platform"`
	Title           string   `json:"title" yaml:"title"`
	Tags            []string `json:"tags" yaml:"tags"`
	ConfidenceScore float64  `json:"confidence_score" yaml:"confidence_score"`

	Description       string `json:"description,omitempty" yaml:"description,omitempty"`
	Caption           string `json:"caption,omitempty" yaml:"caption,omitempty"`
	PostBody          string `json:"post_body,omitempty" yaml:"post_body,omitempty"`
	Bio               string `json:"bio,omitempty" yaml:"bio,omitempty"`
	Username          string `json:"username,omitempty" yaml:"username,omitempty"`
	ProfileName       string `json:"profile_name,omitempty" yaml:"profile_name,omitempty"`
	Headline          string `json:"headline,omitempty" yaml:"headline,omitempty"`
	AboutSection      string `json:"about_section,omitempty" yaml:"about_section,omitempty"`
	ConnectionMessage string `json:"connection_message,omitempty" yaml:"connection_message,omitempty"`
	StreamCategory    string `json:"stream_category,omitempty" yaml:"stream_category,omitempty"`

	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at,omitempty"`

	// Set by ValidateAgainstRules; overwritten on every call.
	MeetsRequirements bool     `json:"meets_requirements" yaml:"meets_requirements,omitempty"`
	ValidationNotes   []string `json:"validation_notes,omitempty" yaml:"validation_notes,omitempty"`
}

// NewRecord creates a Record with a clamped confidence score.
func NewRecord(platform Platform, title string, tags []string, confidence float64) *Record {
	if tags == nil {
		tags = []string{}
	}
	return &Record{
		Platform:        platform,
		Title:           title,
		Tags:            tags,
		ConfidenceScore: ClampConfidence(confidence),
		GeneratedAt:     time.Now().UTC(),
	}
}

// Normalize applies construction invariants to a decoded record.
func (r *Record) Normalize() {
	r.ConfidenceScore = ClampConfidence(r.ConfidenceScore)
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now().UTC()
	}
}

// ClampConfidence limits c to [0, 1].
func ClampConfidence(c float64) float64 {
	switch {
	case c != c: // NaN
		return 0
	case c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}

// Text returns the value of a text field. Unknown fields read as empty.
func (r *Record) Text(f Field) string {
	switch f {
	case FieldTitle:
		return r.Title
	case FieldDescription:
		return r.Description
	case FieldCaption:
		return r.Caption
	case FieldPostBody:
		return r.PostBody
	case FieldBio:
		return r.Bio
	case FieldUsername:
		return r.Username
	case FieldProfileName:
		return r.ProfileName
	case FieldHeadline:
		return r.Headline
	case FieldAboutSection:
		return r.AboutSection
	case FieldConnectionMessage:
		return r.ConnectionMessage
	case FieldStreamCategory:
		return r.StreamCategory
	default:
		return ""
	}
}

// Has reports whether the text field is populated.
func (r *Record) Has(f Field) bool {
	return r.Text(f) != ""
}

// FieldLength returns the character count of a text field.
func (r *Record) FieldLength(f Field) int {
	return utf8.RuneCountInString(r.Text(f))
}

// CharacterCount returns the title length in characters.
func (r *Record) CharacterCount() int {
	return r.FieldLength(FieldTitle)
}

// TagCount returns the number of tags.
func (r *Record) TagCount() int {
	return len(r.Tags)
}

// MainTextField is the field carrying the post's main text: the post body
// when present, otherwise the title.
func (r *Record) MainTextField() Field {
	if r.Has(FieldPostBody) {
		return FieldPostBody
	}
	return FieldTitle
}

// MainText returns the value of MainTextField.
func (r *Record) MainText() string {
	return r.Text(r.MainTextField())
}

// TotalContentLength is the main text length plus every tag and the space
// separating it from the text.
func (r *Record) TotalContentLength() int {
	total := utf8.RuneCountInString(r.MainText())
	for _, tag := range r.Tags {
		total += utf8.RuneCountInString(tag) + 1
	}
	return total
}

// exceedsMax reports the length and limit of f and whether the limit is
// exceeded. Unpopulated optional fields and fields without a limit never
// exceed.
func exceedsMax(r *Record, rules PlatformRules, f Field) (length, limit int, exceeded bool) {
	limit, ok := rules.MaxLength(f)
	if !ok || (f != FieldTitle && !r.Has(f)) {
		return 0, 0, false
	}
	length = r.FieldLength(f)
	return length, limit, length > limit
}

// exceedsTotal applies the X/Twitter combined text and hashtag limit.
func exceedsTotal(r *Record, rules PlatformRules) (total, limit int, exceeded bool) {
	if rules.Platform != PlatformXTwitter {
		return 0, 0, false
	}
	total = r.TotalContentLength()
	limit = rules.TotalContentLimit()
	return total, limit, total > limit
}

// ValidateAgainstRules is a quick compliance check of the record alone.
// It sets MeetsRequirements and replaces ValidationNotes.
func (r *Record) ValidateAgainstRules(rules PlatformRules) bool {
	var notes []string

	for _, f := range append([]Field{FieldTitle}, OptionalFields...) {
		if length, limit, exceeded := exceedsMax(r, rules, f); exceeded {
			notes = append(notes, fmt.Sprintf("%s exceeds maximum length (%d/%d characters)", f.Label(), length, limit))
		}
	}

	if n := r.TagCount(); n < rules.TagMinCount {
		notes = append(notes, fmt.Sprintf("Too few tags (%d/%d minimum)", n, rules.TagMinCount))
	} else if n > rules.TagMaxCount {
		notes = append(notes, fmt.Sprintf("Too many tags (%d/%d maximum)", n, rules.TagMaxCount))
	}

	if total, limit, exceeded := exceedsTotal(r, rules); exceeded {
		notes = append(notes, fmt.Sprintf("Total content exceeds %d characters including hashtags (%d)", limit, total))
	}

	r.ValidationNotes = notes
	r.MeetsRequirements = len(notes) == 0
	return r.MeetsRequirements
}

// NormalizeTags turns free-form tag strings into unique "#word" hashtags,
// preserving first-occurrence order. An empty result becomes ["#content"].
func NormalizeTags(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	tags := make([]string, 0, len(raw))

	for _, item := range raw {
		for _, token := range strings.FieldsFunc(item, func(r rune) bool {
			return unicode.IsSpace(r) || r == ',' || r == '#'
		}) {
			cleaned := strings.Map(func(r rune) rune {
				if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
					return r
				}
				return -1
			}, token)
			if cleaned == "" {
				continue
			}
			key := strings.ToLower(cleaned)
			if seen[key] {
				continue
			}
			seen[key] = true
			tags = append(tags, "#"+cleaned)
		}
	}

	if len(tags) == 0 {
		return []string{"#content"}
	}
	return tags
}
