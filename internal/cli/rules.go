package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"social-content-service/internal/domain"
)

func newRulesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules [PLATFORM]",
		Short: "Show platform rules after config overrides",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := root.validator()
			if err != nil {
				return err
			}
			registry := v.Registry()

			platforms := registry.Platforms()
			if len(args) == 1 {
				p, err := domain.ParsePlatform(args[0])
				if err != nil {
					return err
				}
				platforms = []domain.Platform{p}
			}

			rules := make([]domain.PlatformRules, 0, len(platforms))
			for _, p := range platforms {
				r, err := registry.Get(p)
				if err != nil {
					return err
				}
				rules = append(rules, r)
			}

			out := cmd.OutOrStdout()
			switch root.output {
			case formatJSON:
				return writeJSON(out, rules)
			case formatYAML:
				return writeYAML(out, rules)
			}

			for i, r := range rules {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s (%s)\n", r.Platform.DisplayName(), r.Platform)
				fmt.Fprintf(out, "  title:  max %d characters\n", r.TitleMaxLength)
				fmt.Fprintf(out, "  tags:   %d to %d\n", r.TagMinCount, r.TagMaxCount)
				fmt.Fprintf(out, "  style:  %s\n", r.ContentStyle)
				for _, f := range r.AvailableFields() {
					if f == domain.FieldTitle || f == domain.FieldTags {
						continue
					}
					if limit, ok := r.MaxLength(f); ok {
						fmt.Fprintf(out, "  %-18s max %d\n", f.Label()+":", limit)
					}
				}
				if len(r.SpecialRequirements) > 0 {
					fmt.Fprintf(out, "  notes:  %s\n", strings.Join(r.SpecialRequirements, "; "))
				}
			}
			return nil
		},
	}
}
