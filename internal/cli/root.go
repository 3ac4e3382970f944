// Package cli implements the postcheck command, an offline front end to the
// validation engine.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"social-content-service/internal/config"
	"social-content-service/internal/domain"
)

// ErrInvalidRecord is returned by validate when the record fails the
// selected mode, so the process can exit non-zero.
var ErrInvalidRecord = errors.New("record is not valid")

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type rootOptions struct {
	configFile string
	output     string
}

// NewRootCmd returns the root postcheck command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "postcheck",
		Short:         "Validate and score social media posts",
		Long:          "postcheck validates post records against platform rules, scores them and synthesizes fallback content without a running service.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case formatText, formatJSON, formatYAML:
				return nil
			default:
				return fmt.Errorf("unsupported output %q (text, json, yaml)", opts.output)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "service config file with rule overrides (default ./config/config.yaml if present)")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", formatText, "output format: text|json|yaml")

	rootCmd.AddCommand(newValidateCmd(opts))
	rootCmd.AddCommand(newRulesCmd(opts))
	rootCmd.AddCommand(newFallbackCmd(opts))

	return rootCmd
}

// validator builds the domain validator from the configured rules.
func (o *rootOptions) validator() (*domain.Validator, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}

	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}

	return domain.NewValidator(registry, cfg.DomainHeuristics()), nil
}
