package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// OptimalLengthCheck describes one engagement heuristic driven by a rule
// set's optimal length. Message and Suggestion are format strings that
// receive the threshold.
type OptimalLengthCheck struct {
	// Field selects the optimal-length threshold and the field being measured.
	Field Field
	// MainText measures the record's main text instead of Field.
	MainText bool
	// RequireMissingKeywords only flags the field when none of the title's
	// keywords appear within the threshold.
	RequireMissingKeywords bool
	Severity               Severity
	Message                string
	Suggestion             string
}

// Heuristics holds the tunable word lists and thresholds used by the
// advisory validation stages. Zero values fall back to DefaultHeuristics.
type Heuristics struct {
	OptimalLength map[Platform][]OptimalLengthCheck

	CasualWords     []string
	TrendingTags    []string
	SEOKeywords     []string
	InteractionCues []string
	TimelinessCues  []string

	LinkedInMinPostLength       int
	TikTokMaxCaptionLength      int
	InstagramMinHashtags        int
	YouTubeMinDescriptionLength int
}

// DefaultHeuristics returns the baseline heuristics.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		OptimalLength: map[Platform][]OptimalLengthCheck{
			PlatformYouTube: {
				{
					Field:      FieldTitle,
					Severity:   SeverityWarning,
					Message:    "Title will be truncated in search results after %d characters",
					Suggestion: "Keep the key message within the first %d characters",
				},
				{
					Field:                  FieldDescription,
					RequireMissingKeywords: true,
					Severity:               SeverityInfo,
					Message:                "Description preview shows only the first %d characters",
					Suggestion:             "Front-load title keywords within the first %d characters",
				},
			},
			PlatformInstagram: {
				{
					Field:      FieldCaption,
					Severity:   SeverityWarning,
					Message:    "Caption will be truncated after %d characters with a 'more' button",
					Suggestion: "Put the hook within the first %d characters",
				},
			},
			PlatformFacebook: {
				{
					Field:      FieldPostBody,
					Severity:   SeverityInfo,
					Message:    "Posts of %d characters or fewer get 66%% higher engagement",
					Suggestion: "Shorten the post to %d characters or fewer",
				},
			},
			PlatformXTwitter: {
				{
					Field:      FieldPostBody,
					MainText:   true,
					Severity:   SeverityInfo,
					Message:    "Posts under %d characters get 17%% higher engagement",
					Suggestion: "Trim the main text below %d characters",
				},
			},
			PlatformLinkedIn: {
				{
					Field:      FieldPostBody,
					Severity:   SeverityWarning,
					Message:    "Post will be truncated after ~%d characters with 'See more'",
					Suggestion: "Put the key insight within the first %d characters",
				},
			},
		},
		CasualWords:  []string{"hey", "guys", "lol", "omg", "awesome", "epic"},
		TrendingTags: []string{"#fyp", "#viral", "#trending"},
		SEOKeywords: []string{
			"how to", "tutorial", "guide", "tips", "review",
			"explained", "beginners", "learn", "best", "step by step",
		},
		InteractionCues: []string{
			"what do you think", "let us know", "let me know", "tell us",
			"comment", "share", "thoughts", "agree", "your favorite", "who else",
		},
		TimelinessCues: []string{
			"today", "now", "breaking", "just", "this week", "tonight",
			"live", "new", "update", "latest", "happening",
		},
		LinkedInMinPostLength:       50,
		TikTokMaxCaptionLength:      150,
		InstagramMinHashtags:        10,
		YouTubeMinDescriptionLength: 100,
	}
}

// withDefaults fills unset values from DefaultHeuristics.
func (h Heuristics) withDefaults() Heuristics {
	d := DefaultHeuristics()
	if h.OptimalLength == nil {
		h.OptimalLength = d.OptimalLength
	}
	if len(h.CasualWords) == 0 {
		h.CasualWords = d.CasualWords
	}
	if len(h.TrendingTags) == 0 {
		h.TrendingTags = d.TrendingTags
	}
	if len(h.SEOKeywords) == 0 {
		h.SEOKeywords = d.SEOKeywords
	}
	if len(h.InteractionCues) == 0 {
		h.InteractionCues = d.InteractionCues
	}
	if len(h.TimelinessCues) == 0 {
		h.TimelinessCues = d.TimelinessCues
	}
	if h.LinkedInMinPostLength <= 0 {
		h.LinkedInMinPostLength = d.LinkedInMinPostLength
	}
	if h.TikTokMaxCaptionLength <= 0 {
		h.TikTokMaxCaptionLength = d.TikTokMaxCaptionLength
	}
	if h.InstagramMinHashtags <= 0 {
		h.InstagramMinHashtags = d.InstagramMinHashtags
	}
	if h.YouTubeMinDescriptionLength <= 0 {
		h.YouTubeMinDescriptionLength = d.YouTubeMinDescriptionLength
	}
	return h
}

// checkOptimalLengths runs the engagement heuristics configured for the
// record's platform. It never produces errors.
func (h Heuristics) checkOptimalLengths(r *Record, rules PlatformRules) []Issue {
	var issues []Issue

	for _, check := range h.OptimalLength[rules.Platform] {
		threshold, ok := rules.OptimalLength(check.Field)
		if !ok {
			continue
		}

		field := check.Field
		if check.MainText {
			field = r.MainTextField()
		}
		if !r.Has(field) {
			continue
		}

		length := r.FieldLength(field)
		if length <= threshold {
			continue
		}
		if check.RequireMissingKeywords && previewHasKeywords(r.Text(field), r.Title, threshold) {
			continue
		}

		severity := check.Severity
		if severity == SeverityError {
			severity = SeverityWarning
		}

		issues = append(issues, Issue{
			Field:         field,
			Severity:      severity,
			Message:       fmt.Sprintf(check.Message, threshold),
			CurrentValue:  fmt.Sprintf("%d characters", length),
			ExpectedValue: fmt.Sprintf("%d characters or fewer", threshold),
			Suggestion:    fmt.Sprintf(check.Suggestion, threshold),
		})
	}

	return issues
}

// checkPlatform runs the platform-specific advisory checks.
func (h Heuristics) checkPlatform(r *Record, rules PlatformRules) []Issue {
	switch rules.Platform {
	case PlatformLinkedIn:
		return h.checkLinkedIn(r)
	case PlatformTikTok:
		return h.checkTikTok(r)
	case PlatformInstagram:
		return h.checkInstagram(r)
	case PlatformYouTube:
		return h.checkYouTube(r)
	case PlatformFacebook:
		return h.checkFacebook(r)
	case PlatformXTwitter:
		return h.checkXTwitter(r)
	case PlatformTwitch:
		return h.checkTwitch(r)
	default:
		return nil
	}
}

func (h Heuristics) checkLinkedIn(r *Record) []Issue {
	var issues []Issue

	text := strings.Join([]string{r.Title, r.PostBody, r.Headline}, " ")
	if found := matchedTerms(text, h.CasualWords); len(found) > 0 {
		issues = append(issues, Issue{
			Field:         FieldTone,
			Severity:      SeverityWarning,
			Message:       "Content may be too casual for LinkedIn's professional audience",
			CurrentValue:  strings.Join(found, ", "),
			ExpectedValue: "professional tone",
			Suggestion:    fmt.Sprintf("Replace casual wording such as %q with professional language", found[0]),
		})
	}

	if n := r.FieldLength(FieldPostBody); n < h.LinkedInMinPostLength {
		issues = append(issues, Issue{
			Field:         FieldPostBody,
			Severity:      SeverityWarning,
			Message:       fmt.Sprintf("LinkedIn posts perform better with substantial content (at least %d characters)", h.LinkedInMinPostLength),
			CurrentValue:  fmt.Sprintf("%d characters", n),
			ExpectedValue: fmt.Sprintf("%d characters or more", h.LinkedInMinPostLength),
			Suggestion:    "Expand the post with a concrete insight or takeaway",
		})
	}

	if r.Has(FieldHeadline) && !strings.ContainsAny(r.Headline, "|•-") {
		issues = append(issues, Issue{
			Field:        FieldHeadline,
			Severity:     SeverityInfo,
			Message:      "Consider using separators (| or •) to structure the headline",
			CurrentValue: r.Headline,
			Suggestion:   "Separate role and value proposition with | or •",
		})
	}

	return issues
}

func (h Heuristics) checkTikTok(r *Record) []Issue {
	var issues []Issue

	if !hasAnyTag(r.Tags, h.TrendingTags) {
		issues = append(issues, Issue{
			Field:         FieldTags,
			Severity:      SeverityInfo,
			Message:       "Consider adding trending TikTok hashtags",
			CurrentValue:  strings.Join(r.Tags, " "),
			ExpectedValue: strings.Join(h.TrendingTags, ", "),
			Suggestion:    fmt.Sprintf("Add a trending hashtag such as %s", h.TrendingTags[0]),
		})
	}

	if n := r.FieldLength(FieldCaption); n > h.TikTokMaxCaptionLength {
		issues = append(issues, Issue{
			Field:         FieldCaption,
			Severity:      SeverityInfo,
			Message:       fmt.Sprintf("TikTok captions perform better when short (%d characters or fewer)", h.TikTokMaxCaptionLength),
			CurrentValue:  fmt.Sprintf("%d characters", n),
			ExpectedValue: fmt.Sprintf("%d characters or fewer", h.TikTokMaxCaptionLength),
			Suggestion:    "Cut the caption down to a punchy hook",
		})
	}

	return issues
}

func (h Heuristics) checkInstagram(r *Record) []Issue {
	var issues []Issue

	if !containsEmoji(r.Title) && !containsEmoji(r.Caption) {
		issues = append(issues, Issue{
			Field:        FieldVisualAppeal,
			Severity:     SeverityInfo,
			Message:      "Consider adding emojis for visual appeal",
			CurrentValue: "no emojis",
			Suggestion:   "Add one or two relevant emojis to the title or caption",
		})
	}

	if n := r.TagCount(); n < h.InstagramMinHashtags {
		issues = append(issues, Issue{
			Field:         FieldTags,
			Severity:      SeverityInfo,
			Message:       fmt.Sprintf("Instagram posts perform better with %d+ hashtags", h.InstagramMinHashtags),
			CurrentValue:  fmt.Sprintf("%d tags", n),
			ExpectedValue: fmt.Sprintf("%d+ tags", h.InstagramMinHashtags),
			Suggestion:    "Mix popular and niche hashtags",
		})
	}

	return issues
}

func (h Heuristics) checkYouTube(r *Record) []Issue {
	var issues []Issue

	switch n := r.FieldLength(FieldDescription); {
	case n == 0:
		issues = append(issues, Issue{
			Field:         FieldDescription,
			Severity:      SeverityInfo,
			Message:       "Add a description to improve SEO and discoverability",
			CurrentValue:  "missing",
			ExpectedValue: fmt.Sprintf("%d characters or more", h.YouTubeMinDescriptionLength),
			Suggestion:    "Write a description that summarizes the video with relevant keywords",
		})
	case n < h.YouTubeMinDescriptionLength:
		issues = append(issues, Issue{
			Field:         FieldDescription,
			Severity:      SeverityWarning,
			Message:       fmt.Sprintf("Description too short for good SEO (%d characters)", n),
			CurrentValue:  fmt.Sprintf("%d characters", n),
			ExpectedValue: fmt.Sprintf("%d characters or more", h.YouTubeMinDescriptionLength),
			Suggestion:    fmt.Sprintf("Expand the description to at least %d characters", h.YouTubeMinDescriptionLength),
		})
	}

	if len(matchedTerms(r.Title, h.SEOKeywords)) == 0 {
		issues = append(issues, Issue{
			Field:        FieldTitle,
			Severity:     SeverityInfo,
			Message:      "Title lacks common search keywords",
			CurrentValue: r.Title,
			Suggestion:   fmt.Sprintf("Include a searchable phrase such as %q", h.SEOKeywords[0]),
		})
	}

	return issues
}

func (h Heuristics) checkFacebook(r *Record) []Issue {
	if !r.Has(FieldPostBody) {
		return nil
	}
	if strings.Contains(r.PostBody, "?") || len(matchedTerms(r.PostBody, h.InteractionCues)) > 0 {
		return nil
	}

	return []Issue{{
		Field:        FieldPostBody,
		Severity:     SeverityInfo,
		Message:      "Consider adding a question or prompt to encourage interaction",
		CurrentValue: "no question or call to action",
		Suggestion:   "Ask followers for their opinion or experience",
	}}
}

func (h Heuristics) checkXTwitter(r *Record) []Issue {
	if len(matchedTerms(r.MainText(), h.TimelinessCues)) > 0 {
		return nil
	}

	return []Issue{{
		Field:        FieldTiming,
		Severity:     SeverityInfo,
		Message:      "Consider adding timely context to spark conversation",
		CurrentValue: "no timely reference",
		Suggestion:   "Tie the post to something happening now",
	}}
}

func (h Heuristics) checkTwitch(r *Record) []Issue {
	if !r.Has(FieldStreamCategory) {
		return nil
	}

	var keywords []string
	for _, w := range words(r.StreamCategory) {
		if len([]rune(w)) >= 3 {
			keywords = append(keywords, w)
		}
	}
	if len(keywords) == 0 || len(matchedTerms(r.Title, keywords)) > 0 {
		return nil
	}

	return []Issue{{
		Field:         FieldTitle,
		Severity:      SeverityWarning,
		Message:       "Title does not mention the stream category",
		CurrentValue:  r.Title,
		ExpectedValue: r.StreamCategory,
		Suggestion:    fmt.Sprintf("Mention %q in the stream title", r.StreamCategory),
	}}
}

// words splits text into lowercase letter/digit runs.
func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// matchedTerms returns the terms (single words or phrases) that appear in
// text as whole words, in term order.
func matchedTerms(text string, terms []string) []string {
	padded := " " + strings.Join(words(text), " ") + " "

	var found []string
	for _, term := range terms {
		needle := strings.Join(words(term), " ")
		if needle == "" {
			continue
		}
		if strings.Contains(padded, " "+needle+" ") {
			found = append(found, term)
		}
	}
	return found
}

// previewHasKeywords reports whether the first limit characters of text
// contain any significant word of title.
func previewHasKeywords(text, title string, limit int) bool {
	runes := []rune(text)
	if len(runes) > limit {
		runes = runes[:limit]
	}

	var keywords []string
	for _, w := range words(title) {
		if len([]rune(w)) > 3 && !stopWords[w] {
			keywords = append(keywords, w)
		}
	}
	if len(keywords) == 0 {
		return true
	}
	return len(matchedTerms(string(runes), keywords)) > 0
}

func hasAnyTag(tags, wanted []string) bool {
	for _, tag := range tags {
		for _, w := range wanted {
			if strings.EqualFold(tag, w) {
				return true
			}
		}
	}
	return false
}

func containsEmoji(s string) bool {
	for _, r := range s {
		switch {
		case r >= 0x1F000 && r <= 0x1FAFF,
			r >= 0x2600 && r <= 0x27BF,
			r >= 0x2B00 && r <= 0x2BFF:
			return true
		}
	}
	return false
}
