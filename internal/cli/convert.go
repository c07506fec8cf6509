package cli

import (
	"fmt"

	"github.com/ariel-frischer/taskmanager/internal/convert"
	"github.com/ariel-frischer/taskmanager/internal/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Convert a markdown command template to TOML",
	Long: `Convert a markdown command template to the TOML prompt format.

Frontmatter keys become entries of the [metadata] section and the body
becomes the content of the [prompt] section. $ARGUMENTS is rewritten to
{{args}}, $1 to {{plan_id}} and $2..$9 to {{param2}}..{{param9}}.

The result is written to stdout unless -o is given.`,
	Example: `  taskmanager convert create-plan.md
  taskmanager convert create-plan.md -o create-plan.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

var convertOutput string

// convertFs is the filesystem convert reads and writes. Tests swap it.
var convertFs afero.Fs = afero.NewOsFs()

func init() {
	convertCmd.GroupID = GroupCommands
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Write the TOML to this file")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	data, err := afero.ReadFile(convertFs, args[0])
	if err != nil {
		return errors.WrapWithMessage(err, errors.Filesystem,
			fmt.Sprintf("cannot read %s", args[0]),
			"Check that the file exists and is readable",
		)
	}

	out := convert.MarkdownToTOML(string(data))
	if convertOutput == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}

	if err := afero.WriteFile(convertFs, convertOutput, []byte(out), 0o644); err != nil {
		return errors.WrapWithMessage(err, errors.Filesystem,
			fmt.Sprintf("cannot write %s", convertOutput),
			"Check that the directory exists and is writable",
		)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", convertOutput)
	return nil
}

