package cli

import (
	"github.com/spf13/cobra"

	"social-content-service/internal/domain"
)

func newFallbackCmd(root *rootOptions) *cobra.Command {
	var (
		transcriptFile string
		titleHint      string
		originalFile   string
	)

	cmd := &cobra.Command{
		Use:   "fallback PLATFORM",
		Short: "Synthesize guaranteed-valid fallback content from a transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, err := domain.ParsePlatform(args[0])
			if err != nil {
				return err
			}

			transcript, err := readInput(transcriptFile, cmd.InOrStdin())
			if err != nil {
				return err
			}

			v, err := root.validator()
			if err != nil {
				return err
			}

			var original *domain.Result
			if originalFile != "" {
				data, err := readInput(originalFile, cmd.InOrStdin())
				if err != nil {
					return err
				}
				record, err := decodeRecord(data)
				if err != nil {
					return err
				}
				record.Platform = platform
				if original, err = v.Validate(record, domain.ModeStrict); err != nil {
					return err
				}
			}

			record, err := v.CreateFallbackContent(platform, string(transcript), titleHint, original)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if root.output == formatJSON {
				return writeJSON(out, record)
			}
			return writeYAML(out, record)
		},
	}

	cmd.Flags().StringVarP(&transcriptFile, "transcript", "t", "-", "transcript file (- for stdin)")
	cmd.Flags().StringVar(&titleHint, "title", "", "title hint for the fallback")
	cmd.Flags().StringVar(&originalFile, "original", "", "the rejected record, used to shorten over-long titles")

	return cmd
}
