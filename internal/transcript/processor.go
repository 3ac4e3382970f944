// Package transcript cleans raw video transcripts and derives the signals
// content generation is seeded with: keywords, tone, word count and an
// estimated reading time.
package transcript

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"social-content-service/internal/domain"
)

// WordsPerMinute is the reading speed used for ReadingTime.
const WordsPerMinute = 200

// DefaultMaxKeywords caps ExtractKeywords when Analyze calls it.
const DefaultMaxKeywords = 10

// Tone is a coarse classification of how a transcript sounds.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	TonePositive     Tone = "positive"
	ToneSerious      Tone = "serious"
	ToneNeutral      Tone = "neutral"
)

// Analysis is the result of processing one transcript.
type Analysis struct {
	CleanedContent string        `json:"cleaned_content"`
	Keywords       []string      `json:"keywords"`
	KeyThemes      []string      `json:"key_themes"`
	Summary        string        `json:"summary"`
	Tone           Tone          `json:"tone"`
	Category       string        `json:"category"`
	WordCount      int           `json:"word_count"`
	ReadingTime    time.Duration `json:"reading_time"`
}

var (
	bracketedRe   = regexp.MustCompile(`\[[^\]]*\]`)
	parentheticRe = regexp.MustCompile(`\([^)]*\)`)
	timestampRe   = regexp.MustCompile(`\b\d{1,2}:\d{2}(?::\d{2})?\b`)
	speakerRe     = regexp.MustCompile(`(?m)(^|[\s.!?])[A-Z][A-Za-z]*(?: [A-Z0-9][A-Za-z0-9]*)?:\s`)
	fillerRe      = regexp.MustCompile(`(?i)\b(?:um+|uh+|hmm+|er|ah|you know)\b`)
	spaceRe       = regexp.MustCompile(`\s+`)
	spacePunctRe  = regexp.MustCompile(`\s+([,.!?;:])`)
	commaRunRe    = regexp.MustCompile(`[,;](?:\s*[,;])+`)
	periodRunRe   = regexp.MustCompile(`\.(?:\s*\.)+`)
	leadPunctRe   = regexp.MustCompile(`^[\s,;.]+`)
	wordRe        = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
	sentenceRe    = regexp.MustCompile(`[.!?]+`)
)

var stopWords = toSet(
	"the", "be", "to", "of", "and", "a", "in", "that", "have",
	"i", "it", "for", "not", "on", "with", "he", "as", "you",
	"do", "at", "this", "but", "his", "by", "from", "they",
	"we", "say", "her", "she", "or", "an", "will", "my",
	"one", "all", "would", "there", "their", "what", "so",
	"up", "out", "if", "about", "who", "get", "which", "go",
	"me", "when", "make", "can", "like", "time", "no", "just",
	"him", "know", "take", "people", "into", "year", "your",
	"good", "some", "could", "them", "see", "other", "than",
	"then", "now", "look", "only", "come", "its", "over",
	"think", "also", "back", "after", "use", "two", "how",
	"our", "work", "first", "well", "way", "even", "new",
	"want", "because", "any", "these", "give", "day", "most", "us",
	"are", "was", "were", "been", "has", "had", "did", "does",
)

var (
	positiveWords     = []string{"great", "amazing", "excellent", "fantastic", "wonderful", "awesome", "brilliant", "perfect", "love", "best"}
	negativeWords     = []string{"terrible", "awful", "horrible", "worst", "hate", "bad", "problem", "issue", "difficult", "challenging"}
	professionalWords = []string{"research", "analysis", "strategy", "methodology", "framework", "implementation", "optimization"}
	casualWords       = []string{"hey", "guys", "folks", "cool", "fun", "awesome", "epic"}
)

// Clean strips transcript artifacts: bracketed and parenthesized notes,
// timestamps, speaker labels and filler words. Whitespace is collapsed and
// repeated punctuation squeezed.
func Clean(raw string) string {
	content := strings.TrimSpace(raw)
	if content == "" {
		return ""
	}

	content = bracketedRe.ReplaceAllString(content, " ")
	content = parentheticRe.ReplaceAllString(content, " ")
	content = timestampRe.ReplaceAllString(content, " ")
	content = speakerRe.ReplaceAllString(content, "$1 ")
	content = fillerRe.ReplaceAllString(content, " ")

	content = spaceRe.ReplaceAllString(content, " ")
	content = spacePunctRe.ReplaceAllString(content, "$1")
	content = commaRunRe.ReplaceAllString(content, ",")
	content = periodRunRe.ReplaceAllString(content, ".")
	content = leadPunctRe.ReplaceAllString(content, "")

	return strings.TrimSpace(content)
}

// ExtractKeywords returns up to max words of three or more letters, most
// frequent first, ties in order of first appearance. Stop words are skipped.
// Once the text has 50 or more candidate words, single mentions are dropped.
func ExtractKeywords(content string, max int) []string {
	if max <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	total := 0
	for _, w := range wordRe.FindAllString(strings.ToLower(content), -1) {
		if stopWords[w] {
			continue
		}
		total++
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	minFreq := 1
	if total >= 50 {
		minFreq = 2
	}

	keywords := make([]string, 0, max)
	for _, w := range order {
		if len(keywords) == max || counts[w] < minFreq {
			break
		}
		keywords = append(keywords, w)
	}
	return keywords
}

// WordCount counts whitespace-separated words.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// ReadingTime estimates reading time at WordsPerMinute, truncated to whole
// seconds.
func ReadingTime(content string) time.Duration {
	return time.Duration(WordCount(content)*60/WordsPerMinute) * time.Second
}

// DetectTone classifies content by counting indicator words. Professional
// versus casual is decided first, then positive versus negative.
func DetectTone(content string) Tone {
	words := make(map[string]bool)
	for _, w := range wordRe.FindAllString(strings.ToLower(content), -1) {
		words[w] = true
	}

	professional := countPresent(words, professionalWords)
	casual := countPresent(words, casualWords)
	positive := countPresent(words, positiveWords)
	negative := countPresent(words, negativeWords)

	switch {
	case professional > casual:
		return ToneProfessional
	case casual > professional:
		return ToneCasual
	case positive > negative:
		return TonePositive
	case negative > positive:
		return ToneSerious
	default:
		return ToneNeutral
	}
}

// Summarize returns the first two sentences of content.
func Summarize(content string) string {
	var sentences []string
	for _, s := range sentenceRe.Split(content, -1) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
		if len(sentences) == 2 {
			break
		}
	}
	if len(sentences) == 0 {
		return ""
	}
	return strings.Join(sentences, ". ") + "."
}

// Analyze cleans t and derives every signal from the cleaned text.
func Analyze(t domain.Transcript) Analysis {
	cleaned := Clean(t.Content)
	keywords := ExtractKeywords(cleaned, DefaultMaxKeywords)

	themes := []string{"content"}
	if len(keywords) > 0 {
		themes = keywords[:min(3, len(keywords))]
	}

	category := t.Category
	if category == "" {
		category = "general"
	}

	return Analysis{
		CleanedContent: cleaned,
		Keywords:       keywords,
		KeyThemes:      themes,
		Summary:        Summarize(cleaned),
		Tone:           DetectTone(cleaned),
		Category:       category,
		WordCount:      WordCount(cleaned),
		ReadingTime:    ReadingTime(cleaned),
	}
}

func countPresent(words map[string]bool, indicators []string) int {
	n := 0
	for _, w := range indicators {
		if words[w] {
			n++
		}
	}
	return n
}

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
