package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	Version   string
	BuildTime string
)

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "print the scribe build",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "scribe", versionString())
		fmt.Fprintln(out, "built:", BuildTime)
		fmt.Fprintln(out, "go:", runtime.Version())
	},
}

func versionString() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

func init() {
	rootCmd.AddCommand(versionCommand)
}
