package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"social-content-service/internal/domain"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	var (
		platform string
		mode     string
		suggest  bool
	)

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate and score a post record (YAML or JSON, - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != "strict" && mode != "lenient" {
				return fmt.Errorf("unsupported mode %q (strict, lenient)", mode)
			}

			data, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			record, err := decodeRecord(data)
			if err != nil {
				return err
			}
			record.Platform, err = resolvePlatform(platform, record)
			if err != nil {
				return err
			}

			v, err := root.validator()
			if err != nil {
				return err
			}
			result, err := v.Validate(record, domain.ParseMode(mode))
			if err != nil {
				return err
			}

			var suggestions []string
			if suggest {
				suggestions = domain.SuggestImprovements(result)
			}

			out := cmd.OutOrStdout()
			switch root.output {
			case formatJSON:
				err = writeJSON(out, validateOutput{Result: result, Suggestions: suggestions})
			case formatYAML:
				err = writeYAML(out, validateOutput{Result: result, Suggestions: suggestions})
			default:
				writeReport(out, result, suggestions)
			}
			if err != nil {
				return err
			}

			if !result.IsValid {
				return ErrInvalidRecord
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "", "target platform (defaults to the record's platform field)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "strict", "validation mode: strict|lenient")
	cmd.Flags().BoolVarP(&suggest, "suggest", "s", false, "include improvement suggestions")

	return cmd
}

type validateOutput struct {
	Result      *domain.Result `json:"result" yaml:"result"`
	Suggestions []string       `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}
