package producer

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"social-content-service/internal/domain"
)

// ErrMalformedOutput is returned when no extractor can read producer output.
var ErrMalformedOutput = errors.New("malformed producer output")

// Output is the result of parsing raw producer output: either Parsed or
// Malformed.
type Output interface {
	isOutput()
}

// Parsed carries a record read from producer output.
type Parsed struct {
	Record *domain.Record
	// Extractor names the strategy that succeeded.
	Extractor string
}

// Malformed describes output no extractor could read.
type Malformed struct {
	Raw    string
	Reason string
}

func (Parsed) isOutput()    {}
func (Malformed) isOutput() {}

// Extractor names.
const (
	ExtractorJSON          = "json"
	ExtractorEmbeddedJSON  = "embedded_json"
	ExtractorFieldPatterns = "field_patterns"
)

const malformedPreviewLength = 200

type extractor struct {
	name    string
	extract func(raw string) (*Payload, bool)
}

var extractors = []extractor{
	{ExtractorJSON, extractJSON},
	{ExtractorEmbeddedJSON, extractEmbeddedJSON},
	{ExtractorFieldPatterns, extractFieldPatterns},
}

var (
	titleFieldRe      = regexp.MustCompile(`"title"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	tagsFieldRe       = regexp.MustCompile(`(?s)"tags"\s*:\s*\[(.*?)\]`)
	confidenceFieldRe = regexp.MustCompile(`"confidence"\s*:\s*([0-9]*\.?[0-9]+)`)
)

// ParseOutput reads producer output for platform. Extractors are tried in
// order: the whole body as JSON, the outermost JSON object embedded in
// prose, then individual field patterns. A payload needs a title to count.
func ParseOutput(platform domain.Platform, raw []byte) Output {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return Malformed{Reason: "empty output"}
	}

	for _, e := range extractors {
		if p, ok := e.extract(text); ok {
			return Parsed{Record: p.ToDomain(platform), Extractor: e.name}
		}
	}

	return Malformed{Raw: preview(text), Reason: "no title found in output"}
}

func extractJSON(raw string) (*Payload, bool) {
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, false
	}
	return &p, strings.TrimSpace(p.Title) != ""
}

func extractEmbeddedJSON(raw string) (*Payload, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	return extractJSON(raw[start : end+1])
}

func extractFieldPatterns(raw string) (*Payload, bool) {
	m := titleFieldRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, false
	}

	title, err := strconv.Unquote(`"` + m[1] + `"`)
	if err != nil {
		title = m[1]
	}
	if strings.TrimSpace(title) == "" {
		return nil, false
	}

	p := &Payload{Title: title}

	if m := tagsFieldRe.FindStringSubmatch(raw); m != nil {
		for _, tag := range strings.Split(m[1], ",") {
			if tag = strings.Trim(tag, " \t\r\n\""); tag != "" {
				p.Tags = append(p.Tags, tag)
			}
		}
	}

	if m := confidenceFieldRe.FindStringSubmatch(raw); m != nil {
		if c, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.Confidence = &c
		}
	}

	return p, true
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= malformedPreviewLength {
		return s
	}
	return string([]rune(s)[:malformedPreviewLength]) + "..."
}
