// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Platform identifies a supported social media target.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTikTok    Platform = "tiktok"
	PlatformXTwitter  Platform = "x_twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitch    Platform = "twitch"
)

// AllPlatforms lists every supported platform in registry order.
var AllPlatforms = []Platform{
	PlatformYouTube,
	PlatformInstagram,
	PlatformFacebook,
	PlatformTikTok,
	PlatformXTwitter,
	PlatformLinkedIn,
	PlatformTwitch,
}

// IsValid reports whether p is one of the supported platforms.
func (p Platform) IsValid() bool {
	for _, known := range AllPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

// DisplayName returns a human-readable platform name.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformYouTube:
		return "YouTube"
	case PlatformInstagram:
		return "Instagram"
	case PlatformFacebook:
		return "Facebook"
	case PlatformTikTok:
		return "TikTok"
	case PlatformXTwitter:
		return "X (Twitter)"
	case PlatformLinkedIn:
		return "LinkedIn"
	case PlatformTwitch:
		return "Twitch"
	default:
		return string(p)
	}
}

// ParsePlatform converts a case-insensitive identifier into a Platform.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", &UnknownPlatformError{Platform: s}
	}
	return p, nil
}

// ErrUnknownPlatform is matched by every UnknownPlatformError via errors.Is.
var ErrUnknownPlatform = errors.New("unknown platform")

// UnknownPlatformError is returned when rules are requested for a platform
// outside the supported set.
type UnknownPlatformError struct {
	Platform string
}

func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("unknown platform %q", e.Platform)
}

// Is makes errors.Is(err, ErrUnknownPlatform) succeed.
func (e *UnknownPlatformError) Is(target error) bool {
	return target == ErrUnknownPlatform
}

// ContentStyle is a descriptive tag for a platform's tone. It is only used
// for reporting.
type ContentStyle string

const (
	StyleEducationalEntertainment ContentStyle = "educational_entertainment"
	StyleVisualLifestyle          ContentStyle = "visual_lifestyle"
	StyleCommunityBuilding        ContentStyle = "community_building"
	StyleTrendFocused             ContentStyle = "trend_focused"
	StyleConciseTimely            ContentStyle = "concise_timely"
	StyleProfessional             ContentStyle = "professional"
	StyleGamingCommunity          ContentStyle = "gaming_community"
)

// PlatformRules holds the limits and guidelines for one platform.
//
// Per-field limits live in MaxLengths and OptimalLengths. A field missing
// from a map has no enforced limit on that platform.
type PlatformRules struct {
	Platform            Platform      `json:"platform" yaml:"platform"`
	TitleMaxLength      int           `json:"title_max_length" yaml:"title_max_length"`
	TagMinCount         int           `json:"tag_min_count" yaml:"tag_min_count"`
	TagMaxCount         int           `json:"tag_max_count" yaml:"tag_max_count"`
	ContentStyle        ContentStyle  `json:"content_style" yaml:"content_style"`
	StyleGuidelines     []string      `json:"style_guidelines" yaml:"style_guidelines"`
	SpecialRequirements []string      `json:"special_requirements" yaml:"special_requirements"`
	MaxLengths          map[Field]int `json:"max_lengths,omitempty" yaml:"max_lengths,omitempty"`
	OptimalLengths      map[Field]int `json:"optimal_lengths,omitempty" yaml:"optimal_lengths,omitempty"`
}

// MaxLength returns the hard limit for field. Title is always limited.
func (r PlatformRules) MaxLength(f Field) (int, bool) {
	if f == FieldTitle {
		return r.TitleMaxLength, true
	}
	n, ok := r.MaxLengths[f]
	return n, ok && n > 0
}

// OptimalLength returns the engagement threshold for field, if any.
func (r PlatformRules) OptimalLength(f Field) (int, bool) {
	n, ok := r.OptimalLengths[f]
	return n, ok && n > 0
}

// TotalContentLimit is the cap for main text plus hashtags on X/Twitter.
// It follows the title limit, so overriding one overrides the other.
func (r PlatformRules) TotalContentLimit() int {
	return r.TitleMaxLength
}

// AvailableFields lists the optional text fields this platform limits,
// in canonical field order.
func (r PlatformRules) AvailableFields() []Field {
	fields := make([]Field, 0, len(r.MaxLengths))
	for _, f := range OptionalFields {
		if _, ok := r.MaxLength(f); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Clone returns a deep copy so callers cannot mutate registry state.
func (r PlatformRules) Clone() PlatformRules {
	out := r
	out.StyleGuidelines = append([]string(nil), r.StyleGuidelines...)
	out.SpecialRequirements = append([]string(nil), r.SpecialRequirements...)
	out.MaxLengths = cloneLengths(r.MaxLengths)
	out.OptimalLengths = cloneLengths(r.OptimalLengths)
	return out
}

func (r PlatformRules) validate() error {
	if !r.Platform.IsValid() {
		return &UnknownPlatformError{Platform: string(r.Platform)}
	}
	if r.TitleMaxLength < MinTitleLength {
		return fmt.Errorf("%s: title_max_length %d below minimum %d", r.Platform, r.TitleMaxLength, MinTitleLength)
	}
	if r.TagMinCount < 0 || r.TagMaxCount <= r.TagMinCount {
		return fmt.Errorf("%s: invalid tag range %d-%d", r.Platform, r.TagMinCount, r.TagMaxCount)
	}
	for f, n := range r.MaxLengths {
		if n < 0 {
			return fmt.Errorf("%s: negative max length for %s", r.Platform, f)
		}
	}
	return nil
}

func cloneLengths(m map[Field]int) map[Field]int {
	if m == nil {
		return nil
	}
	out := make(map[Field]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Registry is an immutable platform-keyed table of rules.
// It is safe for concurrent use.
type Registry struct {
	rules map[Platform]PlatformRules
}

// NewRegistry builds a registry from exactly one rule set per platform.
func NewRegistry(rules ...PlatformRules) (*Registry, error) {
	table := make(map[Platform]PlatformRules, len(rules))
	for _, r := range rules {
		if err := r.validate(); err != nil {
			return nil, err
		}
		if _, dup := table[r.Platform]; dup {
			return nil, fmt.Errorf("duplicate rules for platform %s", r.Platform)
		}
		table[r.Platform] = r.Clone()
	}
	for _, p := range AllPlatforms {
		if _, ok := table[p]; !ok {
			return nil, fmt.Errorf("missing rules for platform %s", p)
		}
	}
	return &Registry{rules: table}, nil
}

// NewDefaultRegistry returns a registry populated with DefaultRules.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultRules()...)
	if err != nil {
		panic("default platform rules are invalid: " + err.Error())
	}
	return r
}

// Get returns a copy of the rules for platform.
func (r *Registry) Get(p Platform) (PlatformRules, error) {
	rules, ok := r.rules[p]
	if !ok {
		return PlatformRules{}, &UnknownPlatformError{Platform: string(p)}
	}
	return rules.Clone(), nil
}

// Platforms returns all platform identifiers in registry order.
func (r *Registry) Platforms() []Platform {
	return append([]Platform(nil), AllPlatforms...)
}

// RuleOverride adjusts numeric limits of a default rule set.
// Zero values leave the default untouched.
type RuleOverride struct {
	TitleMaxLength int
	TagMinCount    *int
	TagMaxCount    int
	MaxLengths     map[Field]int
	OptimalLengths map[Field]int
}

// ApplyOverrides returns a copy of rules with overrides merged in.
// Unknown platforms in overrides are rejected.
func ApplyOverrides(rules []PlatformRules, overrides map[Platform]RuleOverride) ([]PlatformRules, error) {
	for p := range overrides {
		if !p.IsValid() {
			return nil, &UnknownPlatformError{Platform: string(p)}
		}
	}

	out := make([]PlatformRules, len(rules))
	for i, r := range rules {
		r = r.Clone()
		if o, ok := overrides[r.Platform]; ok {
			if o.TitleMaxLength > 0 {
				r.TitleMaxLength = o.TitleMaxLength
			}
			if o.TagMinCount != nil {
				r.TagMinCount = *o.TagMinCount
			}
			if o.TagMaxCount > 0 {
				r.TagMaxCount = o.TagMaxCount
			}
			r.MaxLengths = mergeLengths(r.MaxLengths, o.MaxLengths)
			r.OptimalLengths = mergeLengths(r.OptimalLengths, o.OptimalLengths)
		}
		out[i] = r
	}
	return out, nil
}

func mergeLengths(base, extra map[Field]int) map[Field]int {
	if len(extra) == 0 {
		return base
	}
	if base == nil {
		base = make(map[Field]int, len(extra))
	}
	for f, n := range extra {
		base[f] = n
	}
	return base
}
