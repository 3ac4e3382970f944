package domain

import (
	"strings"
	"unicode"
)

// Generic suggestions appended after the per-issue lines.
const (
	SuggestionRegenerate    = "Consider regenerating content for higher quality"
	SuggestionLowConfidence = "Low AI confidence - try different tone or keywords"
)

// Thresholds for the generic suggestions.
const (
	regenerateBelowScore      = 80
	lowConfidenceSuggestBelow = 0.7
)

// SuggestImprovements turns a result into human-readable suggestions, one
// per issue that carries a suggestion, in issue order, followed by the
// generic score and confidence hints.
func SuggestImprovements(result *Result) []string {
	if result == nil {
		return nil
	}

	suggestions := make([]string, 0, len(result.Issues)+2)
	for _, issue := range result.Issues {
		if issue.Suggestion == "" {
			continue
		}
		suggestions = append(suggestions, titleCase(string(issue.Field))+": "+issue.Suggestion)
	}

	if result.Score < regenerateBelowScore {
		suggestions = append(suggestions, SuggestionRegenerate)
	}
	if result.Record != nil && result.Record.ConfidenceScore < lowConfidenceSuggestBelow {
		suggestions = append(suggestions, SuggestionLowConfidence)
	}

	return suggestions
}

// titleCase upper-cases the first letter of every letter run and
// lower-cases the rest ("post_body" -> "Post_Body").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
