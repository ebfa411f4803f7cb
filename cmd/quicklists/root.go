package main

import (
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quicklists",
	Short: "Checklist service with a cached request pipeline",
	Long: `quicklists serves checklists and their items over HTTP.

Reads go through a caching pipeline; writes evict the cached reads they
affect. Cache counters are exposed at /api/cache/stats and /metrics.`,
	SilenceUsage: true,
	Version:      versionString(),
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $QUICKLISTS_CONFIG)")
}
