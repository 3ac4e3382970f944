package domain

// Severity grades a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"   // content unusable for the platform
	SeverityWarning Severity = "warning" // usable, likely to underperform
	SeverityInfo    Severity = "info"    // optimization hint
)

// Issue is a single finding produced by the validator.
type Issue struct {
	Field         Field    `json:"field" yaml:"field"`
	Severity      Severity `json:"severity" yaml:"severity"`
	Message       string   `json:"message" yaml:"message"`
	CurrentValue  string   `json:"current_value" yaml:"current_value"`
	ExpectedValue string   `json:"expected_value,omitempty" yaml:"expected_value,omitempty"`
	Suggestion    string   `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Mode selects how many errors a record may carry and still be valid.
type Mode int

const (
	// ModeStrict accepts no errors.
	ModeStrict Mode = iota
	// ModeLenient accepts at most one error.
	ModeLenient
)

func (m Mode) String() string {
	if m == ModeLenient {
		return "lenient"
	}
	return "strict"
}

// ParseMode maps "lenient" to ModeLenient and everything else to ModeStrict.
func ParseMode(s string) Mode {
	if s == "lenient" {
		return ModeLenient
	}
	return ModeStrict
}

// allows reports whether errorCount passes the mode.
func (m Mode) allows(errorCount int) bool {
	if m == ModeLenient {
		return errorCount <= 1
	}
	return errorCount == 0
}

// Result is the outcome of one validation call.
type Result struct {
	IsValid   bool           `json:"is_valid" yaml:"is_valid"`
	Score     float64        `json:"score" yaml:"score"`
	Breakdown ScoreBreakdown `json:"breakdown" yaml:"breakdown"`
	Issues    []Issue        `json:"issues" yaml:"issues"`
	Platform  Platform       `json:"platform" yaml:"platform"`
	Mode      string         `json:"mode" yaml:"mode"`
	Record    *Record        `json:"record" yaml:"record"`
}

// Count returns the number of issues with severity s.
func (r *Result) Count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// Errors returns the issues with severity error.
func (r *Result) Errors() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}
