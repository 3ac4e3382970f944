package domain

import (
	"errors"
	"testing"
)

func TestRegistry_Get_DefaultLimits(t *testing.T) {
	registry := NewDefaultRegistry()

	tests := []struct {
		platform Platform
		titleMax int
		tagMin   int
		tagMax   int
		style    ContentStyle
	}{
		{PlatformYouTube, 100, 10, 15, StyleEducationalEntertainment},
		{PlatformInstagram, 150, 20, 30, StyleVisualLifestyle},
		{PlatformFacebook, 255, 3, 5, StyleCommunityBuilding},
		{PlatformTikTok, 150, 3, 5, StyleTrendFocused},
		{PlatformXTwitter, 280, 2, 3, StyleConciseTimely},
		{PlatformLinkedIn, 210, 3, 5, StyleProfessional},
		{PlatformTwitch, 140, 3, 8, StyleGamingCommunity},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			rules, err := registry.Get(tt.platform)
			if err != nil {
				t.Fatalf("Get(%s) error = %v", tt.platform, err)
			}
			if rules.TitleMaxLength != tt.titleMax {
				t.Errorf("TitleMaxLength = %d, want %d", rules.TitleMaxLength, tt.titleMax)
			}
			if rules.TagMinCount != tt.tagMin || rules.TagMaxCount != tt.tagMax {
				t.Errorf("tag range = %d-%d, want %d-%d", rules.TagMinCount, rules.TagMaxCount, tt.tagMin, tt.tagMax)
			}
			if rules.ContentStyle != tt.style {
				t.Errorf("ContentStyle = %s, want %s", rules.ContentStyle, tt.style)
			}
			if len(rules.StyleGuidelines) == 0 || len(rules.SpecialRequirements) == 0 {
				t.Error("expected guidelines and special requirements")
			}
		})
	}
}

func TestRegistry_FieldLimits(t *testing.T) {
	registry := NewDefaultRegistry()

	tests := []struct {
		platform Platform
		field    Field
		max      int
		optimal  int
	}{
		{PlatformYouTube, FieldDescription, 5000, 157},
		{PlatformYouTube, FieldTitle, 100, 70},
		{PlatformInstagram, FieldCaption, 2200, 125},
		{PlatformFacebook, FieldPostBody, 63206, 80},
		{PlatformFacebook, FieldHeadline, 40, 0},
		{PlatformXTwitter, FieldPostBody, 280, 100},
		{PlatformXTwitter, FieldUsername, 15, 0},
		{PlatformLinkedIn, FieldPostBody, 3000, 200},
		{PlatformLinkedIn, FieldConnectionMessage, 300, 0},
		{PlatformTwitch, FieldStreamCategory, 50, 0},
		{PlatformTikTok, FieldComments, 150, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform)+"/"+string(tt.field), func(t *testing.T) {
			rules, _ := registry.Get(tt.platform)

			max, ok := rules.MaxLength(tt.field)
			if !ok || max != tt.max {
				t.Errorf("MaxLength = %d (%v), want %d", max, ok, tt.max)
			}

			optimal, ok := rules.OptimalLength(tt.field)
			if tt.optimal == 0 {
				if ok {
					t.Errorf("OptimalLength = %d, want none", optimal)
				}
				return
			}
			if optimal != tt.optimal {
				t.Errorf("OptimalLength = %d, want %d", optimal, tt.optimal)
			}
		})
	}
}

func TestRegistry_NoLimitForUnsupportedField(t *testing.T) {
	rules, _ := NewDefaultRegistry().Get(PlatformTwitch)

	if _, ok := rules.MaxLength(FieldCaption); ok {
		t.Error("Twitch should not limit captions")
	}
}

func TestRegistry_Get_UnknownPlatform(t *testing.T) {
	_, err := NewDefaultRegistry().Get(Platform("myspace"))
	if err == nil {
		t.Fatal("expected error for unknown platform")
	}
	if !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("errors.Is(err, ErrUnknownPlatform) = false, err = %v", err)
	}

	var unknown *UnknownPlatformError
	if !errors.As(err, &unknown) || unknown.Platform != "myspace" {
		t.Errorf("expected UnknownPlatformError for myspace, got %v", err)
	}
}

func TestRegistry_Get_ReturnsCopy(t *testing.T) {
	registry := NewDefaultRegistry()

	rules, _ := registry.Get(PlatformYouTube)
	rules.MaxLengths[FieldDescription] = 1
	rules.StyleGuidelines[0] = "mutated"

	again, _ := registry.Get(PlatformYouTube)
	if again.MaxLengths[FieldDescription] != 5000 {
		t.Errorf("registry was mutated: description max = %d", again.MaxLengths[FieldDescription])
	}
	if again.StyleGuidelines[0] == "mutated" {
		t.Error("registry guidelines were mutated")
	}
}

func TestRegistry_Platforms(t *testing.T) {
	platforms := NewDefaultRegistry().Platforms()

	if len(platforms) != 7 {
		t.Fatalf("len(Platforms()) = %d, want 7", len(platforms))
	}
	if platforms[0] != PlatformYouTube || platforms[6] != PlatformTwitch {
		t.Errorf("unexpected order: %v", platforms)
	}
}

func TestNewRegistry_RejectsInvalidRules(t *testing.T) {
	withRules := func(mutate func(rules []PlatformRules) []PlatformRules) []PlatformRules {
		return mutate(DefaultRules())
	}

	tests := []struct {
		name  string
		rules []PlatformRules
	}{
		{
			name: "missing platform",
			rules: withRules(func(r []PlatformRules) []PlatformRules {
				return r[:6]
			}),
		},
		{
			name: "duplicate platform",
			rules: withRules(func(r []PlatformRules) []PlatformRules {
				return append(r, r[0])
			}),
		},
		{
			name: "inverted tag range",
			rules: withRules(func(r []PlatformRules) []PlatformRules {
				r[2].TagMinCount, r[2].TagMaxCount = 5, 3
				return r
			}),
		},
		{
			name: "equal tag bounds",
			rules: withRules(func(r []PlatformRules) []PlatformRules {
				r[2].TagMinCount, r[2].TagMaxCount = 4, 4
				return r
			}),
		},
		{
			name: "title limit below minimum title length",
			rules: withRules(func(r []PlatformRules) []PlatformRules {
				r[0].TitleMaxLength = 5
				return r
			}),
		},
		{
			name: "unknown platform",
			rules: withRules(func(r []PlatformRules) []PlatformRules {
				r[0].Platform = "myspace"
				return r
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.rules...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	zero := 0
	rules, err := ApplyOverrides(DefaultRules(), map[Platform]RuleOverride{
		PlatformYouTube: {
			TitleMaxLength: 120,
			OptimalLengths: map[Field]int{FieldDescription: 200},
		},
		PlatformTwitch: {
			TagMinCount: &zero,
			MaxLengths:  map[Field]int{FieldStreamCategory: 0},
		},
	})
	if err != nil {
		t.Fatalf("ApplyOverrides() error = %v", err)
	}

	registry, err := NewRegistry(rules...)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	yt, _ := registry.Get(PlatformYouTube)
	if yt.TitleMaxLength != 120 {
		t.Errorf("TitleMaxLength = %d, want 120", yt.TitleMaxLength)
	}
	if n, _ := yt.OptimalLength(FieldDescription); n != 200 {
		t.Errorf("description optimal = %d, want 200", n)
	}
	if n, _ := yt.OptimalLength(FieldTitle); n != 70 {
		t.Errorf("title optimal = %d, want untouched 70", n)
	}

	twitch, _ := registry.Get(PlatformTwitch)
	if twitch.TagMinCount != 0 {
		t.Errorf("TagMinCount = %d, want 0", twitch.TagMinCount)
	}
	if _, ok := twitch.MaxLength(FieldStreamCategory); ok {
		t.Error("stream category limit should be disabled")
	}

	defaults, _ := NewDefaultRegistry().Get(PlatformYouTube)
	if defaults.TitleMaxLength != 100 {
		t.Error("ApplyOverrides mutated the default rules")
	}
}

func TestApplyOverrides_UnknownPlatform(t *testing.T) {
	_, err := ApplyOverrides(DefaultRules(), map[Platform]RuleOverride{
		"myspace": {TitleMaxLength: 10},
	})
	if !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("error = %v, want ErrUnknownPlatform", err)
	}
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		input   string
		want    Platform
		wantErr bool
	}{
		{"youtube", PlatformYouTube, false},
		{"YouTube", PlatformYouTube, false},
		{" x_twitter ", PlatformXTwitter, false},
		{"LINKEDIN", PlatformLinkedIn, false},
		{"twitter", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePlatform(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePlatform(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePlatform(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlatformRules_AvailableFields(t *testing.T) {
	rules, _ := NewDefaultRegistry().Get(PlatformLinkedIn)

	got := rules.AvailableFields()
	want := []Field{FieldPostBody, FieldHeadline, FieldAboutSection, FieldConnectionMessage}

	if len(got) != len(want) {
		t.Fatalf("AvailableFields() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AvailableFields()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
