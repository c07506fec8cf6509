package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/ariel-frischer/taskmanager/internal/build"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for taskmanager",
	Example: `  # Show version info
  taskmanager version

  # Plain output (for scripts)
  taskmanager version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlain {
			printPlainVersion(cmd.OutOrStdout())
			return
		}
		printPrettyVersion(cmd.OutOrStdout())
	},
}

func init() {
	versionCmd.GroupID = GroupGettingStarted
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
	rootCmd.AddCommand(versionCmd)
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "taskmanager %s\n", build.Version)
	fmt.Fprintf(w, "commit: %s\n", build.Commit)
	fmt.Fprintf(w, "built: %s\n", build.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func printPrettyVersion(w io.Writer) {
	label := color.New(color.FgCyan)
	name := color.New(color.Bold)

	name.Fprintf(w, "taskmanager %s", build.Version)
	if build.IsDevBuild() {
		fmt.Fprint(w, " (development build)")
	}
	fmt.Fprintln(w)
	label.Fprint(w, "  Commit:   ")
	fmt.Fprintln(w, build.Commit)
	label.Fprint(w, "  Built:    ")
	fmt.Fprintln(w, build.BuildDate)
	label.Fprint(w, "  Go:       ")
	fmt.Fprintln(w, runtime.Version())
	label.Fprint(w, "  Platform: ")
	fmt.Fprintf(w, "%s/%s\n", runtime.GOOS, runtime.GOARCH)
}
