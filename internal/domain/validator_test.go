package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func newTestValidator() *Validator {
	return NewValidator(NewDefaultRegistry(), Heuristics{})
}

func findIssue(result *Result, field Field, substr string) (Issue, bool) {
	for _, issue := range result.Issues {
		if issue.Field == field && strings.Contains(issue.Message, substr) {
			return issue, true
		}
	}
	return Issue{}, false
}

func mustValidate(t *testing.T, v *Validator, r *Record, mode Mode) *Result {
	t.Helper()
	result, err := v.Validate(r, mode)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return result
}

func TestValidator_Validate_Scenarios(t *testing.T) {
	v := newTestValidator()

	t.Run("youtube title over limit", func(t *testing.T) {
		r := NewRecord(PlatformYouTube, strings.Repeat("x", 107), testTags(12), 0.9)
		result := mustValidate(t, v, r, ModeStrict)

		if result.IsValid {
			t.Error("expected invalid result")
		}
		issue, ok := findIssue(result, FieldTitle, "exceeds maximum length")
		if !ok {
			t.Fatalf("missing title length issue: %+v", result.Issues)
		}
		if issue.Severity != SeverityError {
			t.Errorf("Severity = %s, want error", issue.Severity)
		}
		if issue.Message != "Title exceeds maximum length (107/100 characters)" {
			t.Errorf("Message = %q", issue.Message)
		}
	})

	t.Run("valid youtube record", func(t *testing.T) {
		r := NewRecord(PlatformYouTube, "Great AI Tutorial for Beginners", testTags(10), 0.9)
		result := mustValidate(t, v, r, ModeStrict)

		if !result.IsValid {
			t.Errorf("expected valid result, issues: %+v", result.Issues)
		}
		if result.Count(SeverityError) != 0 {
			t.Errorf("errors = %+v", result.Errors())
		}
		if result.Score <= 70 {
			t.Errorf("Score = %v, want > 70", result.Score)
		}
		if math.Abs(result.Score-95.47) > 0.001 {
			t.Errorf("Score = %v, want 95.47", result.Score)
		}
		if result.Platform != PlatformYouTube || result.Mode != "strict" || result.Record != r {
			t.Errorf("unexpected result metadata: %+v", result)
		}
	})

	t.Run("instagram too few tags", func(t *testing.T) {
		r := NewRecord(PlatformInstagram, "Golden hour at the beach 🌅", []string{"#sunset", "#beach"}, 0.9)
		result := mustValidate(t, v, r, ModeStrict)

		if result.IsValid {
			t.Error("expected invalid result")
		}
		issue, ok := findIssue(result, FieldTags, "Too few tags")
		if !ok {
			t.Fatalf("missing tag count issue: %+v", result.Issues)
		}
		if issue.Severity != SeverityError {
			t.Errorf("Severity = %s, want error", issue.Severity)
		}
		if issue.Message != "Too few tags: 18 more needed (have 2, minimum 20)" {
			t.Errorf("Message = %q", issue.Message)
		}
	})

	t.Run("x total content over limit", func(t *testing.T) {
		r := NewRecord(PlatformXTwitter, strings.Repeat("a", 260), []string{
			"#" + strings.Repeat("b", 17),
			"#" + strings.Repeat("c", 17),
			"#" + strings.Repeat("d", 17),
		}, 0.9)
		result := mustValidate(t, v, r, ModeStrict)

		issue, ok := findIssue(result, FieldTotalContent, "Total content exceeds maximum length")
		if !ok {
			t.Fatalf("missing total content issue: %+v", result.Issues)
		}
		if issue.Severity != SeverityError {
			t.Errorf("Severity = %s, want error", issue.Severity)
		}
		if result.IsValid {
			t.Error("expected invalid result")
		}
	})

	t.Run("linkedin casual tone", func(t *testing.T) {
		r := NewRecord(PlatformLinkedIn, "hey guys lol check this out", testTags(3), 0.9)
		result := mustValidate(t, v, r, ModeStrict)

		issue, ok := findIssue(result, FieldTone, "casual")
		if !ok {
			t.Fatalf("missing tone issue: %+v", result.Issues)
		}
		if issue.Severity != SeverityWarning {
			t.Errorf("Severity = %s, want warning", issue.Severity)
		}
	})
}

func TestValidator_Validate_Heuristics(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		record    func() *Record
		field     Field
		substr    string
		severity  Severity
		wantFound bool
	}{
		{
			name: "youtube short description",
			record: func() *Record {
				r := NewRecord(PlatformYouTube, "Great AI Tutorial for Beginners", testTags(10), 0.9)
				r.Description = "Short description"
				return r
			},
			field: FieldDescription, substr: "too short for good SEO", severity: SeverityWarning, wantFound: true,
		},
		{
			name: "youtube missing description",
			record: func() *Record {
				return NewRecord(PlatformYouTube, "Great AI Tutorial for Beginners", testTags(10), 0.9)
			},
			field: FieldDescription, substr: "Add a description", severity: SeverityInfo, wantFound: true,
		},
		{
			name: "youtube title lacks keywords",
			record: func() *Record {
				return NewRecord(PlatformYouTube, "My weekend in the mountains", testTags(10), 0.9)
			},
			field: FieldTitle, substr: "search keywords", severity: SeverityInfo, wantFound: true,
		},
		{
			name: "youtube title truncated in search",
			record: func() *Record {
				return NewRecord(PlatformYouTube, strings.TrimSpace(strings.Repeat("guide ", 13)), testTags(10), 0.9)
			},
			field: FieldTitle, substr: "truncated in search results after 70", severity: SeverityWarning, wantFound: true,
		},
		{
			name: "youtube description preview without title keywords",
			record: func() *Record {
				r := NewRecord(PlatformYouTube, "Kubernetes Tutorial for Beginners", testTags(10), 0.9)
				r.Description = strings.Repeat("lorem ipsum dolor sit amet ", 8)
				return r
			},
			field: FieldDescription, substr: "preview shows only the first 157", severity: SeverityInfo, wantFound: true,
		},
		{
			name: "youtube description preview with title keywords",
			record: func() *Record {
				r := NewRecord(PlatformYouTube, "Kubernetes Tutorial for Beginners", testTags(10), 0.9)
				r.Description = "Kubernetes basics. " + strings.Repeat("lorem ipsum dolor sit amet ", 8)
				return r
			},
			field: FieldDescription, substr: "preview", wantFound: false,
		},
		{
			name: "instagram caption truncated",
			record: func() *Record {
				r := NewRecord(PlatformInstagram, "Golden hour 🌅", testTags(20), 0.9)
				r.Caption = strings.Repeat("c", 130)
				return r
			},
			field: FieldCaption, substr: "truncated after 125", severity: SeverityWarning, wantFound: true,
		},
		{
			name: "instagram few hashtags",
			record: func() *Record {
				return NewRecord(PlatformInstagram, "Golden hour 🌅", testTags(5), 0.9)
			},
			field: FieldTags, substr: "10+ hashtags", severity: SeverityInfo, wantFound: true,
		},
		{
			name: "instagram no emojis",
			record: func() *Record {
				return NewRecord(PlatformInstagram, "Golden hour at the beach", testTags(20), 0.9)
			},
			field: FieldVisualAppeal, substr: "emojis", severity: SeverityInfo, wantFound: true,
		},
		{
			name: "instagram emoji present",
			record: func() *Record {
				return NewRecord(PlatformInstagram, "Golden hour at the beach 🌅", testTags(20), 0.9)
			},
			field: FieldVisualAppeal, substr: "emojis", wantFound: false,
		},
		{
			name: "linkedin missing post body",
			record: func() *Record {
				return NewRecord(PlatformLinkedIn, "Quarterly engineering review", testTags(3), 0.9)
			},
			field: FieldPostBody, substr: "substantial content (at least 50", severity: SeverityWarning, wantFound: true,
		},
		{
			name: "linkedin headline without separators",
			record: func() *Record {
				r := NewRecord(PlatformLinkedIn, "Quarterly engineering review", testTags(3), 0.9)
				r.Headline = "AI Strategy Consultant"
				return r
			},
			field: FieldHeadline, substr: "separators", severity: SeverityInfo, wantFound: true,
		},
		{
			name: "linkedin headline with separators",
			record: func() *Record {
				r := NewRecord(PlatformLinkedIn, "Quarterly engineering review", testTags(3), 0.9)
				r.Headline = "AI Strategist | Speaker"
				return r
			},
			field: FieldHeadline, substr: "separators", wantFound: false,
		},
		{
			name: "linkedin casual word inside a longer word",
			record: func() *Record {
				return NewRecord(PlatformLinkedIn, "They gave an epically detailed talk", testTags(3), 0.9)
			},
			field: FieldTone, substr: "casual", wantFound: false,
		},
		{
			name: "facebook no interaction prompt",
			record: func() *Record {
				r := NewRecord(PlatformFacebook, "Community garden opening", testTags(3), 0.9)
				r.PostBody = "Big news from our team this week."
				return r
			},
			field: FieldPostBody, substr: "encourage interaction", severity: SeverityInfo, wantFound: true,
		},
		{
			name: "facebook question present",
			record: func() *Record {
				r := NewRecord(PlatformFacebook, "Community garden opening", testTags(3), 0.9)
				r.PostBody = "Who is joining us on Saturday?"
				return r
			},
			field: FieldPostBody, substr: "encourage interaction", wantFound: false,
		},
		{
			name: "facebook long post",
			record: func() *Record {
				r := NewRecord(PlatformFacebook, "Community garden opening", testTags(3), 0.9)
				r.PostBody = strings.Repeat("b", 89) + "?"
				return r
			},
			field: FieldPostBody, substr: "66% higher engagement", severity: SeverityInfo, wantFound: true,
		},
		{
			name: "x long main text",
			record: func() *Record {
				r := NewRecord(PlatformXTwitter, "Breaking update", []string{"#go", "#dev"}, 0.9)
				r.PostBody = "Breaking: " + strings.Repeat("x", 110)
				return r
			},
			field: FieldPostBody, substr: "17% higher engagement", severity: SeverityInfo, wantFound: true,
		},
		{
			name: "x without timely context",
			record: func() *Record {
				return NewRecord(PlatformXTwitter, "Thoughts on distributed systems design", []string{"#go", "#dev"}, 0.9)
			},
			field: FieldTiming, substr: "timely context", severity: SeverityInfo, wantFound: true,
		},
		{
			name: "x with timely context",
			record: func() *Record {
				return NewRecord(PlatformXTwitter, "Breaking: Go 1.25 released today", []string{"#go", "#dev"}, 0.9)
			},
			field: FieldTiming, substr: "timely context", wantFound: false,
		},
		{
			name: "tiktok long caption",
			record: func() *Record {
				r := NewRecord(PlatformTikTok, "Three pasta hacks you need", []string{"#fyp", "#pasta", "#food"}, 0.9)
				r.Caption = strings.Repeat("c", 200)
				return r
			},
			field: FieldCaption, substr: "perform better when short", severity: SeverityInfo, wantFound: true,
		},
		{
			name: "tiktok no trending tags",
			record: func() *Record {
				return NewRecord(PlatformTikTok, "Three pasta hacks you need", []string{"#pasta", "#food", "#cooking"}, 0.9)
			},
			field: FieldTags, substr: "trending TikTok hashtags", severity: SeverityInfo, wantFound: true,
		},
		{
			name: "tiktok trending tag present",
			record: func() *Record {
				return NewRecord(PlatformTikTok, "Three pasta hacks you need", []string{"#FYP", "#food", "#cooking"}, 0.9)
			},
			field: FieldTags, substr: "trending", wantFound: false,
		},
		{
			name: "twitch title ignores category",
			record: func() *Record {
				r := NewRecord(PlatformTwitch, "Building a castle with viewers", testTags(3), 0.9)
				r.StreamCategory = "Minecraft"
				return r
			},
			field: FieldTitle, substr: "stream category", severity: SeverityWarning, wantFound: true,
		},
		{
			name: "twitch title mentions category",
			record: func() *Record {
				r := NewRecord(PlatformTwitch, "Minecraft castle build with viewers", testTags(3), 0.9)
				r.StreamCategory = "Minecraft"
				return r
			},
			field: FieldTitle, substr: "stream category", wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := mustValidate(t, v, tt.record(), ModeStrict)

			issue, found := findIssue(result, tt.field, tt.substr)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v (issues: %+v)", found, tt.wantFound, result.Issues)
			}
			if found && issue.Severity != tt.severity {
				t.Errorf("Severity = %s, want %s", issue.Severity, tt.severity)
			}
		})
	}
}

func TestValidator_Validate_InstagramCaptionSuggestion(t *testing.T) {
	r := NewRecord(PlatformInstagram, "Golden hour 🌅", testTags(20), 0.9)
	r.Caption = strings.Repeat("c", 130)

	result := mustValidate(t, newTestValidator(), r, ModeStrict)
	issue, ok := findIssue(result, FieldCaption, "truncated")
	if !ok {
		t.Fatal("missing caption issue")
	}
	if !strings.Contains(issue.Suggestion, "first 125 characters") {
		t.Errorf("Suggestion = %q", issue.Suggestion)
	}
}

func TestValidator_Validate_ContentQuality(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name     string
		record   *Record
		field    Field
		substr   string
		severity Severity
	}{
		{
			name:   "short title",
			record: NewRecord(PlatformFacebook, "  Hi there ", testTags(3), 0.9),
			field:  FieldTitle, substr: "Title too short to be engaging (8 characters)", severity: SeverityError,
		},
		{
			name:   "duplicate tags",
			record: NewRecord(PlatformFacebook, "Community garden opening", []string{"#garden", "#Garden", "#city"}, 0.9),
			field:  FieldTags, substr: "Duplicate tags found", severity: SeverityWarning,
		},
		{
			name:   "tag without hash",
			record: NewRecord(PlatformFacebook, "Community garden opening", []string{"garden", "#city", "#green"}, 0.9),
			field:  FieldTags, substr: "Malformed tags: garden", severity: SeverityError,
		},
		{
			name:   "bare hash tag",
			record: NewRecord(PlatformFacebook, "Community garden opening", []string{"#", "#city", "#green"}, 0.9),
			field:  FieldTags, substr: "Malformed tags: #", severity: SeverityError,
		},
		{
			name:   "low confidence",
			record: NewRecord(PlatformFacebook, "Community garden opening", testTags(3), 0.42),
			field:  FieldConfidence, substr: "Low confidence score (0.42)", severity: SeverityWarning,
		},
		{
			name:   "title near limit",
			record: NewRecord(PlatformYouTube, strings.Repeat("t", 90), testTags(10), 0.9),
			field:  FieldTitle, substr: "Title is very close to limit (90/100 characters)", severity: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := mustValidate(t, v, tt.record, ModeStrict)

			issue, ok := findIssue(result, tt.field, tt.substr)
			if !ok {
				t.Fatalf("missing issue %q: %+v", tt.substr, result.Issues)
			}
			if issue.Severity != tt.severity {
				t.Errorf("Severity = %s, want %s", issue.Severity, tt.severity)
			}
		})
	}
}

func TestValidator_Validate_TitleBelowNearLimit(t *testing.T) {
	r := NewRecord(PlatformYouTube, strings.Repeat("t", 89), testTags(10), 0.9)
	result := mustValidate(t, newTestValidator(), r, ModeStrict)

	if _, ok := findIssue(result, FieldTitle, "close to limit"); ok {
		t.Error("89/100 should not warn")
	}
}

func TestValidator_Validate_TagRange(t *testing.T) {
	v := newTestValidator()

	for _, p := range AllPlatforms {
		rules := mustRules(t, p)
		for n := 0; n <= rules.TagMaxCount+2; n++ {
			r := NewRecord(p, "A perfectly reasonable title", testTags(n), 0.9)
			result := mustValidate(t, v, r, ModeStrict)

			_, tooFew := findIssue(result, FieldTags, "Too few tags")
			_, tooMany := findIssue(result, FieldTags, "Too many tags")

			if got, want := tooFew, n < rules.TagMinCount; got != want {
				t.Errorf("%s with %d tags: too-few issue = %v, want %v", p, n, got, want)
			}
			if got, want := tooMany, n > rules.TagMaxCount; got != want {
				t.Errorf("%s with %d tags: too-many issue = %v, want %v", p, n, got, want)
			}
		}
	}
}

func TestValidator_Validate_CharacterLimits(t *testing.T) {
	v := newTestValidator()

	for _, p := range AllPlatforms {
		rules := mustRules(t, p)
		for _, f := range append([]Field{FieldTitle}, OptionalFields...) {
			limit, ok := rules.MaxLength(f)
			if !ok {
				continue
			}
			for _, length := range []int{limit, limit + 1} {
				r := NewRecord(p, "A perfectly reasonable title", testTags(rules.TagMinCount), 0.9)
				setText(r, f, strings.Repeat("a", length))

				result := mustValidate(t, v, r, ModeStrict)
				_, found := findIssue(result, f, "exceeds maximum length")
				if want := length > limit; found != want {
					t.Errorf("%s %s length %d/%d: error = %v, want %v", p, f, length, limit, found, want)
				}
			}
		}
	}
}

func TestValidator_Validate_TotalContentAgreesWithQuickCheck(t *testing.T) {
	v := newTestValidator()
	rules := mustRules(t, PlatformXTwitter)

	tests := []struct {
		titleLen int
		want     bool
	}{
		{272, false},
		{273, true},
	}

	for _, tt := range tests {
		r := NewRecord(PlatformXTwitter, strings.Repeat("a", tt.titleLen), []string{"#ab", "#cd"}, 0.9)

		result := mustValidate(t, v, r, ModeStrict)
		_, found := findIssue(result, FieldTotalContent, "Total content")
		if found != tt.want {
			t.Errorf("title %d: total content error = %v, want %v", tt.titleLen, found, tt.want)
		}

		if quick := r.ValidateAgainstRules(rules); quick == tt.want {
			t.Errorf("title %d: quick check = %v, full check error = %v", tt.titleLen, quick, found)
		}
	}
}

func TestValidator_Validate_TotalContentFollowsTitleOverride(t *testing.T) {
	rules, err := ApplyOverrides(DefaultRules(), map[Platform]RuleOverride{
		PlatformXTwitter: {TitleMaxLength: 40},
	})
	if err != nil {
		t.Fatalf("ApplyOverrides() error = %v", err)
	}
	registry, err := NewRegistry(rules...)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	v := NewValidator(registry, Heuristics{})

	xRules, err := registry.Get(PlatformXTwitter)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := xRules.TotalContentLimit(); got != 40 {
		t.Errorf("TotalContentLimit() = %d, want 40", got)
	}

	// 39 + len("#b")+1 + len("#c")+1 = 45
	r := NewRecord(PlatformXTwitter, strings.Repeat("a", 39), []string{"#b", "#c"}, 0.9)

	result := mustValidate(t, v, r, ModeStrict)
	issue, found := findIssue(result, FieldTotalContent, "Total content")
	if !found {
		t.Fatalf("missing total content issue: %+v", result.Issues)
	}
	if issue.Severity != SeverityError {
		t.Errorf("Severity = %s, want error", issue.Severity)
	}
	if result.IsValid {
		t.Error("expected invalid result")
	}

	if r.ValidateAgainstRules(xRules) {
		t.Errorf("quick check passed, notes = %v", r.ValidationNotes)
	}
}

func TestValidator_Validate_Modes(t *testing.T) {
	v := newTestValidator()

	oneError := NewRecord(PlatformYouTube, "Too short", testTags(10), 0.9)
	twoErrors := NewRecord(PlatformYouTube, "Too short", testTags(2), 0.9)
	clean := NewRecord(PlatformYouTube, "Great AI Tutorial for Beginners", testTags(10), 0.9)

	tests := []struct {
		name        string
		record      *Record
		wantStrict  bool
		wantLenient bool
	}{
		{"no errors", clean, true, true},
		{"one error", oneError, false, true},
		{"two errors", twoErrors, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strict := mustValidate(t, v, tt.record, ModeStrict)
			lenient := mustValidate(t, v, tt.record, ModeLenient)

			if strict.IsValid != tt.wantStrict {
				t.Errorf("strict IsValid = %v, want %v", strict.IsValid, tt.wantStrict)
			}
			if lenient.IsValid != tt.wantLenient {
				t.Errorf("lenient IsValid = %v, want %v", lenient.IsValid, tt.wantLenient)
			}
			if strict.IsValid && !lenient.IsValid {
				t.Error("strict-valid record must be lenient-valid")
			}
			if strict.Score != lenient.Score {
				t.Errorf("mode changed score: %v vs %v", strict.Score, lenient.Score)
			}
			if lenient.Mode != "lenient" {
				t.Errorf("Mode = %q, want lenient", lenient.Mode)
			}
		})
	}
}

func TestValidator_Validate_ScoreBounds(t *testing.T) {
	v := newTestValidator()

	bad := make([]string, 100)
	for i := range bad {
		bad[i] = "bad"
	}

	records := []*Record{
		NewRecord(PlatformLinkedIn, "", bad, 0),
		NewRecord(PlatformXTwitter, strings.Repeat("lol ", 200), bad, 0),
		NewRecord(PlatformInstagram, "", nil, 0),
		func() *Record {
			r := NewRecord(PlatformLinkedIn, "Leadership lessons | From the field", testTags(4), 1)
			r.PostBody = strings.Repeat("Measured, concrete insight about teams. ", 5)
			r.Headline = "Engineering Director | Speaker"
			return r
		}(),
	}

	for _, r := range records {
		result := mustValidate(t, v, r, ModeStrict)
		if result.Score < 0 || result.Score > 100 {
			t.Errorf("%s score %v out of bounds", r.Platform, result.Score)
		}
		b := result.Breakdown
		for _, s := range []float64{b.CharacterLimits, b.TagOptimization, b.ContentCompleteness, b.PlatformOptimization, b.EngagementPotential, b.OptimalLengths} {
			if s < 0 || s > 100 {
				t.Errorf("%s sub-score %v out of bounds", r.Platform, s)
			}
		}
	}
}

func TestValidator_Validate_Errors(t *testing.T) {
	v := newTestValidator()

	if _, err := v.Validate(nil, ModeStrict); !errors.Is(err, ErrNilRecord) {
		t.Errorf("nil record error = %v, want ErrNilRecord", err)
	}

	r := NewRecord(Platform("myspace"), "Some title here", testTags(3), 0.9)
	if _, err := v.Validate(r, ModeStrict); !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("unknown platform error = %v, want ErrUnknownPlatform", err)
	}
}

func TestValidator_Validate_DoesNotMutateRecord(t *testing.T) {
	r := NewRecord(PlatformXTwitter, "Breaking: new release today", []string{"#go", "#go"}, 0.5)
	before := *r
	beforeTags := append([]string(nil), r.Tags...)

	mustValidate(t, newTestValidator(), r, ModeStrict)

	if r.Title != before.Title || r.ConfidenceScore != before.ConfidenceScore || r.MeetsRequirements != before.MeetsRequirements {
		t.Error("Validate mutated the record")
	}
	if strings.Join(r.Tags, ",") != strings.Join(beforeTags, ",") {
		t.Error("Validate mutated the tags")
	}
}

func setText(r *Record, f Field, value string) {
	switch f {
	case FieldTitle:
		r.Title = value
	case FieldDescription:
		r.Description = value
	case FieldCaption:
		r.Caption = value
	case FieldPostBody:
		r.PostBody = value
	case FieldBio:
		r.Bio = value
	case FieldUsername:
		r.Username = value
	case FieldProfileName:
		r.ProfileName = value
	case FieldHeadline:
		r.Headline = value
	case FieldAboutSection:
		r.AboutSection = value
	case FieldConnectionMessage:
		r.ConnectionMessage = value
	case FieldStreamCategory:
		r.StreamCategory = value
	}
}
