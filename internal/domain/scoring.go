package domain

import (
	"math"
	"strings"
)

// Dimension names one component of the quality score.
type Dimension string

const (
	DimensionCharacterLimits      Dimension = "character_limits"
	DimensionTagOptimization      Dimension = "tag_optimization"
	DimensionContentCompleteness  Dimension = "content_completeness"
	DimensionPlatformOptimization Dimension = "platform_optimization"
	DimensionEngagementPotential  Dimension = "engagement_potential"
	DimensionOptimalLengths       Dimension = "optimal_lengths"
)

// Dimension weights. They sum to 1.0.
const (
	WeightCharacterLimits      = 0.25
	WeightTagOptimization      = 0.20
	WeightContentCompleteness  = 0.20
	WeightPlatformOptimization = 0.15
	WeightEngagementPotential  = 0.10
	WeightOptimalLengths       = 0.10
)

// Per-issue deductions.
const (
	PenaltyError   = 30.0
	PenaltyWarning = 15.0
	PenaltyInfo    = 8.0
)

// Excellence triggers for the platform_optimization bonus.
const (
	instagramExcellentTagCount     = 15
	youTubeExcellentDescriptionLen = 200
)

// relevantFields lists, per platform, the fields that make a post complete.
var relevantFields = map[Platform][]Field{
	PlatformYouTube:   {FieldTitle, FieldTags, FieldDescription},
	PlatformInstagram: {FieldTitle, FieldTags, FieldCaption},
	PlatformFacebook:  {FieldTitle, FieldTags, FieldPostBody},
	PlatformTikTok:    {FieldTitle, FieldTags, FieldCaption},
	PlatformXTwitter:  {FieldTitle, FieldTags, FieldPostBody},
	PlatformLinkedIn:  {FieldTitle, FieldTags, FieldPostBody, FieldHeadline},
	PlatformTwitch:    {FieldTitle, FieldTags, FieldStreamCategory},
}

// ScoreBreakdown holds the six sub-scores, each in [0, 100].
type ScoreBreakdown struct {
	CharacterLimits      float64 `json:"character_limits" yaml:"character_limits"`
	TagOptimization      float64 `json:"tag_optimization" yaml:"tag_optimization"`
	ContentCompleteness  float64 `json:"content_completeness" yaml:"content_completeness"`
	PlatformOptimization float64 `json:"platform_optimization" yaml:"platform_optimization"`
	EngagementPotential  float64 `json:"engagement_potential" yaml:"engagement_potential"`
	OptimalLengths       float64 `json:"optimal_lengths" yaml:"optimal_lengths"`
}

// Total returns the weighted score clamped to [0, 100] and rounded to two
// decimals.
func (b ScoreBreakdown) Total() float64 {
	total := b.CharacterLimits*WeightCharacterLimits +
		b.TagOptimization*WeightTagOptimization +
		b.ContentCompleteness*WeightContentCompleteness +
		b.PlatformOptimization*WeightPlatformOptimization +
		b.EngagementPotential*WeightEngagementPotential +
		b.OptimalLengths*WeightOptimalLengths

	return roundTo2Decimals(clampScore(total))
}

func (b *ScoreBreakdown) at(d Dimension) *float64 {
	switch d {
	case DimensionCharacterLimits:
		return &b.CharacterLimits
	case DimensionTagOptimization:
		return &b.TagOptimization
	case DimensionContentCompleteness:
		return &b.ContentCompleteness
	case DimensionEngagementPotential:
		return &b.EngagementPotential
	case DimensionOptimalLengths:
		return &b.OptimalLengths
	default:
		return &b.PlatformOptimization
	}
}

// CalculateBreakdown computes the sub-scores from a record, its rules and the
// issues found for it.
//
// Formula:
//
//	Score = Σ(sub-score × weight), clamped to [0, 100]
//
// Every sub-score starts at 100. Each issue deducts from one dimension:
//   - ERROR -30, WARNING -15, INFO -8
//   - tags -> tag_optimization
//   - tone, visual_appeal, timing -> engagement_potential
//   - text fields and total_content -> character_limits for limit messages,
//     optimal_lengths for truncation/engagement messages, else
//     platform_optimization
//   - anything else -> platform_optimization
//
// Then:
//   - content_completeness = 50 + 50 × populated/relevant fields
//   - tag_optimization +10 when the tag count is within 2 of min + 70% of the range
//   - character_limits +5 when title utilization is 70–90%
//   - engagement_potential +5/+10/+15 for confidence ≥ 0.7/0.8/0.9
//   - platform_optimization +10 for Instagram ≥ 15 tags, LinkedIn with a
//     headline, YouTube description ≥ 200 characters
//
// Each sub-score is clamped to [0, 100].
//
// Weights: character_limits 0.25, tag_optimization 0.20,
// content_completeness 0.20, platform_optimization 0.15,
// engagement_potential 0.10, optimal_lengths 0.10.
func CalculateBreakdown(r *Record, rules PlatformRules, issues []Issue) ScoreBreakdown {
	b := ScoreBreakdown{
		CharacterLimits:      100,
		TagOptimization:      100,
		ContentCompleteness:  100,
		PlatformOptimization: 100,
		EngagementPotential:  100,
		OptimalLengths:       100,
	}

	for _, issue := range issues {
		*b.at(dimensionFor(issue)) -= penaltyFor(issue.Severity)
	}

	b.ContentCompleteness = completeness(r, rules.Platform)

	optimalTags := float64(rules.TagMinCount) + 0.7*float64(rules.TagMaxCount-rules.TagMinCount)
	if math.Abs(float64(r.TagCount())-optimalTags) <= 2 {
		b.TagOptimization += 10
	}

	if rules.TitleMaxLength > 0 {
		utilization := float64(r.CharacterCount()) / float64(rules.TitleMaxLength)
		if utilization >= 0.7 && utilization <= 0.9 {
			b.CharacterLimits += 5
		}
	}

	b.EngagementPotential += confidenceBonus(r.ConfidenceScore)

	if hasPlatformExcellence(r, rules.Platform) {
		b.PlatformOptimization += 10
	}

	b.CharacterLimits = clampScore(b.CharacterLimits)
	b.TagOptimization = clampScore(b.TagOptimization)
	b.ContentCompleteness = clampScore(b.ContentCompleteness)
	b.PlatformOptimization = clampScore(b.PlatformOptimization)
	b.EngagementPotential = clampScore(b.EngagementPotential)
	b.OptimalLengths = clampScore(b.OptimalLengths)

	return b
}

// dimensionFor routes an issue to the sub-score it deducts from.
func dimensionFor(issue Issue) Dimension {
	switch {
	case issue.Field == FieldTags:
		return DimensionTagOptimization
	case issue.Field == FieldTone, issue.Field == FieldVisualAppeal, issue.Field == FieldTiming:
		return DimensionEngagementPotential
	case issue.Field.IsTextField(), issue.Field == FieldTotalContent:
		msg := strings.ToLower(issue.Message)
		switch {
		case strings.Contains(msg, "maximum length"), strings.Contains(msg, "close to limit"):
			return DimensionCharacterLimits
		case strings.Contains(msg, "truncat"), strings.Contains(msg, "engagement"),
			strings.Contains(msg, "preview"), strings.Contains(msg, "optimal"):
			return DimensionOptimalLengths
		default:
			return DimensionPlatformOptimization
		}
	default:
		return DimensionPlatformOptimization
	}
}

func penaltyFor(s Severity) float64 {
	switch s {
	case SeverityError:
		return PenaltyError
	case SeverityWarning:
		return PenaltyWarning
	default:
		return PenaltyInfo
	}
}

func completeness(r *Record, p Platform) float64 {
	fields := relevantFields[p]
	if len(fields) == 0 {
		return 100
	}

	populated := 0
	for _, f := range fields {
		switch f {
		case FieldTitle:
			if strings.TrimSpace(r.Title) != "" {
				populated++
			}
		case FieldTags:
			if r.TagCount() > 0 {
				populated++
			}
		default:
			if r.Has(f) {
				populated++
			}
		}
	}

	return 50 + 50*float64(populated)/float64(len(fields))
}

func confidenceBonus(c float64) float64 {
	switch {
	case c >= 0.9:
		return 15
	case c >= 0.8:
		return 10
	case c >= 0.7:
		return 5
	default:
		return 0
	}
}

func hasPlatformExcellence(r *Record, p Platform) bool {
	switch p {
	case PlatformInstagram:
		return r.TagCount() >= instagramExcellentTagCount
	case PlatformLinkedIn:
		return r.Has(FieldHeadline)
	case PlatformYouTube:
		return r.FieldLength(FieldDescription) >= youTubeExcellentDescriptionLen
	default:
		return false
	}
}

func clampScore(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// roundTo2Decimals rounds a float to 2 decimal places.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}
