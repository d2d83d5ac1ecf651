package cmd

import (
	"fmt"

	"github.com/metal-toolbox/afsync/internal/version"
	"github.com/spf13/cobra"
)

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Print afsync version along with dependency information.",
	Run: func(_ *cobra.Command, args []string) {
		fmt.Printf(
			"commit: %s\nbranch: %s\ngit summary: %s\nbuildDate: %s\nversion: %s\nGo version: %s\nretryablehttp version: %s\n",
			version.GitCommit, version.GitBranch, version.GitSummary, version.BuildDate, version.AppVersion, version.GoVersion, version.RetryableHTTPVersion)
	},
}

func init() {
	rootCmd.AddCommand(cmdVersion)
}
