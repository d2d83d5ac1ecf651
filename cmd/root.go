package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	trace   bool
)

var rootCmd = &cobra.Command{
	Use:   "afsync",
	Short: "Sync AppFirst server nicknames with their BOSH job/index name",
	Long: `afsync looks up the BOSH deployments running the AppFirst collector, maps each VM to its
job/index name and sets it as the nickname of the matching AppFirst server under the sync tag.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSync(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file (default is $HOME/.af_sync.yml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "", false, "set logging level to debug")
	rootCmd.PersistentFlags().BoolVarP(&trace, "trace", "", false, "set logging level to trace")
}
