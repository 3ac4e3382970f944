package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// PlaceholderTitle is used when no title hint is available.
	PlaceholderTitle = "Video Content"
	// FallbackConfidence marks keyword-derived fallback content.
	FallbackConfidence = 0.6
	// MinimalConfidence marks the last-resort minimal record.
	MinimalConfidence = 0.3
)

// genericTagPool pads fallback tags when the transcript yields too few.
var genericTagPool = []string{"#content", "#video", "#social", "#media", "#digital"}

// stopWords are excluded from fallback keyword tags.
var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "with": true, "by": true,
}

// CreateFallbackContent synthesizes a record that passes lenient
// validation, for use when produced content was rejected.
//
// The first tier derives a title from titleHint and tags from transcript
// keywords. If that still fails lenient validation, a minimal placeholder
// record sized exactly to the platform's limits is returned instead.
// original may be nil; when it reports a title length problem the hint is
// shortened at a word boundary.
func (v *Validator) CreateFallbackContent(platform Platform, transcript, titleHint string, original *Result) (*Record, error) {
	rules, err := v.registry.Get(platform)
	if err != nil {
		return nil, err
	}

	record := NewRecord(
		platform,
		fallbackTitle(titleHint, rules, failedOnTitleLength(original)),
		fallbackTags(transcript, rules),
		FallbackConfidence,
	)

	result, err := v.Validate(record, ModeLenient)
	if err == nil && result.IsValid {
		return record, nil
	}

	return MinimalRecord(rules), nil
}

// MinimalRecord builds the last-resort record: a placeholder title clamped
// to the title limit and exactly the minimum number of tags.
func MinimalRecord(rules PlatformRules) *Record {
	tags := []string{"#content"}
	for i := 0; len(tags) < rules.TagMinCount; i++ {
		tags = append(tags, fmt.Sprintf("#tag%d", i))
	}

	return NewRecord(
		rules.Platform,
		truncateRunes(PlaceholderTitle, rules.TitleMaxLength),
		tags,
		MinimalConfidence,
	)
}

func failedOnTitleLength(original *Result) bool {
	if original == nil {
		return false
	}
	for _, issue := range original.Issues {
		if issue.Field != FieldTitle {
			continue
		}
		msg := strings.ToLower(issue.Message)
		if strings.Contains(msg, "maximum length") || strings.Contains(msg, "close to limit") {
			return true
		}
	}
	return false
}

func fallbackTitle(hint string, rules PlatformRules, shorten bool) string {
	title := strings.Join(strings.Fields(hint), " ")
	if title == "" {
		title = PlaceholderTitle
	}

	limit := rules.TitleMaxLength
	if shorten && utf8.RuneCountInString(title) > limit-3 {
		title = truncateAtWord(title, limit-3) + "..."
	}

	return truncateRunes(title, limit)
}

// truncateAtWord keeps whole words while the result fits in limit
// characters. A first word longer than limit is cut hard.
func truncateAtWord(s string, limit int) string {
	var b strings.Builder
	n := 0
	for _, w := range strings.Fields(s) {
		wl := utf8.RuneCountInString(w)
		sep := 0
		if n > 0 {
			sep = 1
		}
		if n+sep+wl > limit {
			break
		}
		if sep == 1 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
		n += sep + wl
	}
	if n == 0 {
		return truncateRunes(s, limit)
	}
	return b.String()
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// fallbackTags collects keyword tags from the transcript in first-seen
// order and pads them from the generic pool up to the minimum.
func fallbackTags(transcript string, rules PlatformRules) []string {
	seen := make(map[string]bool)
	tags := make([]string, 0, rules.TagMaxCount)

	for _, w := range asciiWords(transcript) {
		if len(tags) >= rules.TagMaxCount {
			break
		}
		if len(w) <= 3 || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		tags = append(tags, "#"+w)
	}

	for _, tag := range genericTagPool {
		if len(tags) >= rules.TagMinCount {
			break
		}
		if !seen[strings.TrimPrefix(tag, "#")] {
			seen[strings.TrimPrefix(tag, "#")] = true
			tags = append(tags, tag)
		}
	}

	return tags
}

// asciiWords lower-cases text and splits it into runs of a-z.
func asciiWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
}
