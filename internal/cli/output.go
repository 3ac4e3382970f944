package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"social-content-service/internal/domain"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeReport prints a validation result for humans.
func writeReport(w io.Writer, result *domain.Result, suggestions []string) {
	verdict := "INVALID"
	if result.IsValid {
		verdict = "VALID"
	}

	fmt.Fprintf(w, "%s (%s): %s, score %.2f/100\n", result.Platform.DisplayName(), result.Mode, verdict, result.Score)

	b := result.Breakdown
	fmt.Fprintln(w, "\nScore breakdown:")
	for _, row := range []struct {
		name  string
		value float64
	}{
		{"character limits", b.CharacterLimits},
		{"tag optimization", b.TagOptimization},
		{"content completeness", b.ContentCompleteness},
		{"platform optimization", b.PlatformOptimization},
		{"engagement potential", b.EngagementPotential},
		{"optimal lengths", b.OptimalLengths},
	} {
		fmt.Fprintf(w, "  %-22s %6.2f\n", row.name, row.value)
	}

	if len(result.Issues) > 0 {
		fmt.Fprintf(w, "\nIssues (%d errors, %d warnings, %d info):\n",
			result.Count(domain.SeverityError),
			result.Count(domain.SeverityWarning),
			result.Count(domain.SeverityInfo),
		)
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "  [%s] %s: %s\n", strings.ToUpper(string(issue.Severity)), issue.Field, issue.Message)
			if issue.Suggestion != "" {
				fmt.Fprintf(w, "      -> %s\n", issue.Suggestion)
			}
		}
	}

	if len(suggestions) > 0 {
		fmt.Fprintln(w, "\nSuggestions:")
		for _, s := range suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
}
