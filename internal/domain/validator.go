package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinTitleLength is the shortest trimmed title considered engaging.
	MinTitleLength = 10
	// LowConfidenceThreshold flags producer output it was unsure about.
	LowConfidenceThreshold = 0.6
	// TitleNearLimitRatio is the title utilization that triggers a warning.
	TitleNearLimitRatio = 0.9
)

// ErrNilRecord is returned when validation is asked to check nothing.
var ErrNilRecord = errors.New("record is nil")

// Validator checks records against platform rules and scores them.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	registry   *Registry
	heuristics Heuristics
}

// NewValidator creates a Validator. Unset heuristics fall back to defaults.
func NewValidator(registry *Registry, heuristics Heuristics) *Validator {
	return &Validator{
		registry:   registry,
		heuristics: heuristics.withDefaults(),
	}
}

// Registry returns the rule registry the validator reads from.
func (v *Validator) Registry() *Registry {
	return v.registry
}

// Validate runs the full check pipeline on record.
//
// Stages run in a fixed order and their issues are concatenated:
//
//  1. character limits (hard maxima, title near-limit, X/Twitter total)
//  2. optimal lengths (engagement thresholds, never errors)
//  3. tag count
//  4. content quality (title length, duplicate or malformed tags, confidence)
//  5. platform heuristics
//
// The record is valid when it has no errors (ModeStrict) or at most one
// (ModeLenient). Only a nil record or an unknown platform return an error.
func (v *Validator) Validate(record *Record, mode Mode) (*Result, error) {
	if record == nil {
		return nil, ErrNilRecord
	}

	rules, err := v.registry.Get(record.Platform)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	issues = append(issues, checkCharacterLimits(record, rules)...)
	issues = append(issues, v.heuristics.checkOptimalLengths(record, rules)...)
	issues = append(issues, checkTagCount(record, rules)...)
	issues = append(issues, checkContentQuality(record)...)
	issues = append(issues, v.heuristics.checkPlatform(record, rules)...)

	errorCount := 0
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			errorCount++
		}
	}

	breakdown := CalculateBreakdown(record, rules, issues)

	return &Result{
		IsValid:   mode.allows(errorCount),
		Score:     breakdown.Total(),
		Breakdown: breakdown,
		Issues:    issues,
		Platform:  record.Platform,
		Mode:      mode.String(),
		Record:    record,
	}, nil
}

func checkCharacterLimits(r *Record, rules PlatformRules) []Issue {
	var issues []Issue

	for _, f := range append([]Field{FieldTitle}, OptionalFields...) {
		length, limit, exceeded := exceedsMax(r, rules, f)
		switch {
		case exceeded:
			issues = append(issues, Issue{
				Field:         f,
				Severity:      SeverityError,
				Message:       fmt.Sprintf("%s exceeds maximum length (%d/%d characters)", f.Label(), length, limit),
				CurrentValue:  fmt.Sprintf("%d characters", length),
				ExpectedValue: fmt.Sprintf("%d characters or fewer", limit),
				Suggestion:    fmt.Sprintf("Shorten to %d characters or fewer", limit),
			})
		case f == FieldTitle && float64(length) >= TitleNearLimitRatio*float64(limit):
			issues = append(issues, Issue{
				Field:         f,
				Severity:      SeverityWarning,
				Message:       fmt.Sprintf("Title is very close to limit (%d/%d characters)", length, limit),
				CurrentValue:  fmt.Sprintf("%d characters", length),
				ExpectedValue: fmt.Sprintf("under %d characters", int(TitleNearLimitRatio*float64(limit))),
				Suggestion:    "Leave some headroom below the platform limit",
			})
		}
	}

	if total, limit, exceeded := exceedsTotal(r, rules); exceeded {
		issues = append(issues, Issue{
			Field:         FieldTotalContent,
			Severity:      SeverityError,
			Message:       fmt.Sprintf("Total content exceeds maximum length including hashtags (%d/%d characters)", total, limit),
			CurrentValue:  fmt.Sprintf("%d characters", total),
			ExpectedValue: fmt.Sprintf("%d characters or fewer", limit),
			Suggestion:    "Shorten the text or drop a hashtag",
		})
	}

	return issues
}

func checkTagCount(r *Record, rules PlatformRules) []Issue {
	n := r.TagCount()
	expected := fmt.Sprintf("%d-%d tags", rules.TagMinCount, rules.TagMaxCount)

	switch {
	case n < rules.TagMinCount:
		short := rules.TagMinCount - n
		return []Issue{{
			Field:         FieldTags,
			Severity:      SeverityError,
			Message:       fmt.Sprintf("Too few tags: %d more needed (have %d, minimum %d)", short, n, rules.TagMinCount),
			CurrentValue:  fmt.Sprintf("%d tags", n),
			ExpectedValue: expected,
			Suggestion:    fmt.Sprintf("Add %d more relevant tags", short),
		}}
	case n > rules.TagMaxCount:
		excess := n - rules.TagMaxCount
		return []Issue{{
			Field:         FieldTags,
			Severity:      SeverityError,
			Message:       fmt.Sprintf("Too many tags: %d over the limit (have %d, maximum %d)", excess, n, rules.TagMaxCount),
			CurrentValue:  fmt.Sprintf("%d tags", n),
			ExpectedValue: expected,
			Suggestion:    fmt.Sprintf("Remove %d of the least relevant tags", excess),
		}}
	default:
		return nil
	}
}

func checkContentQuality(r *Record) []Issue {
	var issues []Issue

	if n := utf8.RuneCountInString(strings.TrimSpace(r.Title)); n < MinTitleLength {
		issues = append(issues, Issue{
			Field:         FieldTitle,
			Severity:      SeverityError,
			Message:       fmt.Sprintf("Title too short to be engaging (%d characters)", n),
			CurrentValue:  r.Title,
			ExpectedValue: fmt.Sprintf("at least %d characters", MinTitleLength),
			Suggestion:    "Write a more descriptive title",
		})
	}

	if dups := duplicateTags(r.Tags); len(dups) > 0 {
		issues = append(issues, Issue{
			Field:        FieldTags,
			Severity:     SeverityWarning,
			Message:      "Duplicate tags found",
			CurrentValue: strings.Join(dups, ", "),
			Suggestion:   "Remove duplicate tags",
		})
	}

	if bad := malformedTags(r.Tags); len(bad) > 0 {
		issues = append(issues, Issue{
			Field:         FieldTags,
			Severity:      SeverityError,
			Message:       fmt.Sprintf("Malformed tags: %s", strings.Join(bad, ", ")),
			CurrentValue:  strings.Join(bad, ", "),
			ExpectedValue: "#word",
			Suggestion:    "Start every tag with # followed by at least one character",
		})
	}

	if r.ConfidenceScore < LowConfidenceThreshold {
		issues = append(issues, Issue{
			Field:         FieldConfidence,
			Severity:      SeverityWarning,
			Message:       fmt.Sprintf("Low confidence score (%.2f)", r.ConfidenceScore),
			CurrentValue:  fmt.Sprintf("%.2f", r.ConfidenceScore),
			ExpectedValue: fmt.Sprintf("%.2f or higher", LowConfidenceThreshold),
			Suggestion:    "Regenerate with more specific keywords",
		})
	}

	return issues
}

// duplicateTags returns each tag that repeats an earlier one, ignoring case.
func duplicateTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var dups []string
	for _, tag := range tags {
		key := strings.ToLower(tag)
		if seen[key] {
			dups = append(dups, tag)
			continue
		}
		seen[key] = true
	}
	return dups
}

// malformedTags returns tags that do not start with # or are a bare #.
func malformedTags(tags []string) []string {
	var bad []string
	for _, tag := range tags {
		if !strings.HasPrefix(tag, "#") || utf8.RuneCountInString(tag) <= 1 {
			bad = append(bad, tag)
		}
	}
	return bad
}
