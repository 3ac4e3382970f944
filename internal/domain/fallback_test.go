package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCreateFallbackContent_AlwaysLenientValid(t *testing.T) {
	v := newTestValidator()

	transcripts := []string{
		"",
		"Short clip.",
		"Machine learning models transform messy data into useful predictions. " +
			"Today we explore gradient descent, regularization, evaluation metrics, " +
			"feature engineering, deployment pipelines and monitoring strategies for production systems.",
	}
	hints := []string{
		"",
		"Hi",
		"Intro to Machine Learning",
		strings.Repeat("verylongtitle ", 30),
		strings.Repeat("x", 400),
	}
	titleIssue := &Result{Issues: []Issue{{
		Field:    FieldTitle,
		Severity: SeverityError,
		Message:  "Title exceeds maximum length (400/100 characters)",
	}}}

	for _, p := range AllPlatforms {
		for ti, transcript := range transcripts {
			for hi, hint := range hints {
				for _, original := range []*Result{nil, titleIssue} {
					name := fmt.Sprintf("%s/transcript%d/hint%d/original=%v", p, ti, hi, original != nil)

					record, err := v.CreateFallbackContent(p, transcript, hint, original)
					if err != nil {
						t.Fatalf("%s: error = %v", name, err)
					}
					if record.Platform != p {
						t.Errorf("%s: Platform = %s", name, record.Platform)
					}

					result := mustValidate(t, v, record, ModeLenient)
					if !result.IsValid {
						t.Errorf("%s: fallback not lenient-valid: %+v", name, result.Errors())
					}
				}
			}
		}
	}
}

func TestCreateFallbackContent_KeywordTags(t *testing.T) {
	v := newTestValidator()

	record, err := v.CreateFallbackContent(
		PlatformYouTube,
		"Machine learning models transform machine data with Python",
		"",
		nil,
	)
	if err != nil {
		t.Fatalf("CreateFallbackContent() error = %v", err)
	}

	want := []string{
		"#machine", "#learning", "#models", "#transform", "#data", "#python",
		"#content", "#video", "#social", "#media",
	}
	if strings.Join(record.Tags, " ") != strings.Join(want, " ") {
		t.Errorf("Tags = %v, want %v", record.Tags, want)
	}
	if record.Title != PlaceholderTitle {
		t.Errorf("Title = %q, want %q", record.Title, PlaceholderTitle)
	}
	if record.ConfidenceScore != FallbackConfidence {
		t.Errorf("ConfidenceScore = %v, want %v", record.ConfidenceScore, FallbackConfidence)
	}

	result := mustValidate(t, v, record, ModeStrict)
	if !result.IsValid {
		t.Errorf("expected strict-valid fallback, errors: %+v", result.Errors())
	}
}

func TestCreateFallbackContent_TagsCappedAtMaximum(t *testing.T) {
	v := newTestValidator()

	record, err := v.CreateFallbackContent(
		PlatformXTwitter,
		"Kubernetes operators automate cluster upgrades safely",
		"Operators in practice",
		nil,
	)
	if err != nil {
		t.Fatalf("CreateFallbackContent() error = %v", err)
	}

	want := []string{"#kubernetes", "#operators", "#automate"}
	if strings.Join(record.Tags, " ") != strings.Join(want, " ") {
		t.Errorf("Tags = %v, want %v", record.Tags, want)
	}
}

func TestCreateFallbackContent_TitleShortening(t *testing.T) {
	v := newTestValidator()
	hint := strings.Repeat("lorem ", 30)

	t.Run("title length failure shortens at a word boundary", func(t *testing.T) {
		original := &Result{Issues: []Issue{{
			Field:    FieldTitle,
			Severity: SeverityError,
			Message:  "Title exceeds maximum length (180/100 characters)",
		}}}

		record, err := v.CreateFallbackContent(PlatformYouTube, "", hint, original)
		if err != nil {
			t.Fatalf("CreateFallbackContent() error = %v", err)
		}
		if !strings.HasSuffix(record.Title, "...") {
			t.Errorf("Title = %q, want ellipsis suffix", record.Title)
		}
		if n := utf8.RuneCountInString(record.Title); n != 98 {
			t.Errorf("len(Title) = %d, want 98", n)
		}
		if strings.Contains(record.Title, "lore...") {
			t.Errorf("Title cut mid-word: %q", record.Title)
		}
	})

	t.Run("other failures cut hard at the limit", func(t *testing.T) {
		record, err := v.CreateFallbackContent(PlatformYouTube, "", hint, nil)
		if err != nil {
			t.Fatalf("CreateFallbackContent() error = %v", err)
		}
		if strings.HasSuffix(record.Title, "...") {
			t.Errorf("Title = %q, want no ellipsis", record.Title)
		}
		if n := utf8.RuneCountInString(record.Title); n != 100 {
			t.Errorf("len(Title) = %d, want 100", n)
		}
	})
}

func TestCreateFallbackContent_MinimalTier(t *testing.T) {
	v := newTestValidator()

	record, err := v.CreateFallbackContent(PlatformYouTube, "", "Hi", nil)
	if err != nil {
		t.Fatalf("CreateFallbackContent() error = %v", err)
	}

	if record.Title != PlaceholderTitle {
		t.Errorf("Title = %q, want %q", record.Title, PlaceholderTitle)
	}
	if record.ConfidenceScore != MinimalConfidence {
		t.Errorf("ConfidenceScore = %v, want %v", record.ConfidenceScore, MinimalConfidence)
	}

	want := []string{"#content", "#tag0", "#tag1", "#tag2", "#tag3", "#tag4", "#tag5", "#tag6", "#tag7", "#tag8"}
	if strings.Join(record.Tags, " ") != strings.Join(want, " ") {
		t.Errorf("Tags = %v, want %v", record.Tags, want)
	}
}

func TestCreateFallbackContent_Deterministic(t *testing.T) {
	v := newTestValidator()
	transcript := "Sourdough baking needs patience, flour, water and wild yeast"

	a, _ := v.CreateFallbackContent(PlatformInstagram, transcript, "Sourdough at home", nil)
	b, _ := v.CreateFallbackContent(PlatformInstagram, transcript, "Sourdough at home", nil)

	if a.Title != b.Title || strings.Join(a.Tags, ",") != strings.Join(b.Tags, ",") || a.ConfidenceScore != b.ConfidenceScore {
		t.Errorf("fallback not deterministic: %+v vs %+v", a, b)
	}
}

func TestCreateFallbackContent_UnknownPlatform(t *testing.T) {
	_, err := newTestValidator().CreateFallbackContent(Platform("myspace"), "", "", nil)
	if !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("error = %v, want ErrUnknownPlatform", err)
	}
}

func TestMinimalRecord_StrictValid(t *testing.T) {
	v := newTestValidator()

	for _, p := range AllPlatforms {
		t.Run(string(p), func(t *testing.T) {
			rules := mustRules(t, p)
			record := MinimalRecord(rules)

			if record.TagCount() != rules.TagMinCount {
				t.Errorf("TagCount() = %d, want %d", record.TagCount(), rules.TagMinCount)
			}

			result := mustValidate(t, v, record, ModeStrict)
			if !result.IsValid {
				t.Errorf("minimal record not strict-valid: %+v", result.Errors())
			}
		})
	}
}
