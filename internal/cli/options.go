package cli

import (
	"strings"

	"github.com/ariel-frischer/taskmanager/internal/assistant"
	"github.com/ariel-frischer/taskmanager/internal/config"
	"github.com/ariel-frischer/taskmanager/internal/errors"
	"github.com/ariel-frischer/taskmanager/internal/install"
	"github.com/spf13/cobra"
)

// installFlags are the install-related flags shared by init and
// commands install. Unset flags fall back to the loaded configuration.
type installFlags struct {
	assistants []string
	format     string
	overwrite  bool
	noValidate bool
}

func (f *installFlags) register(cmd *cobra.Command, withOverwrite bool) {
	cmd.Flags().StringSliceVar(&f.assistants, "assistants", nil, "Comma-separated assistant ids (e.g. claude,gemini)")
	cmd.Flags().StringVar(&f.format, "format", "", "Command format: md, toml or native")
	cmd.Flags().BoolVar(&f.noValidate, "no-validate", false, "Install command files without a description")
	if withOverwrite {
		cmd.Flags().BoolVar(&f.overwrite, "overwrite", false, "Replace existing command files")
	}
}

// resolve merges the flags over cfg and validates the result.
func (f *installFlags) resolve(cmd *cobra.Command, cfg *config.Configuration) ([]string, install.Options, error) {
	assistants := cfg.Assistants
	if cmd.Flags().Changed("assistants") {
		assistants = assistant.SplitList(f.assistants)
	}
	if len(assistants) == 0 {
		return nil, install.Options{}, errors.NewArgumentErrorWithUsage(
			"no assistants selected",
			"--assistants <id>[,<id>...]",
			"Supported assistants: "+strings.Join(assistant.Names(), ", "),
		)
	}
	for _, id := range assistants {
		if err := assistant.Validate(id); err != nil {
			return nil, install.Options{}, errors.InvalidAssistant(err, assistant.Names())
		}
	}

	formatValue := cfg.Format
	if cmd.Flags().Changed("format") {
		formatValue = f.format
	}
	format, err := install.ParseFormat(formatValue)
	if err != nil {
		return nil, install.Options{}, errors.InvalidFormat(formatValue)
	}

	opts := install.Options{
		Overwrite: cfg.Overwrite,
		Validate:  cfg.Validate && !f.noValidate,
		Format:    format,
	}
	if cmd.Flags().Changed("overwrite") {
		opts.Overwrite = f.overwrite
	}
	return assistants, opts, nil
}
