package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dialysis",
	Short: "Track dialysis treatment sessions",
	Long: `Dialysis records pre-treatment measurements, derives the fluid-removal
goal and ultrafiltration rate, then records the post-treatment weight and
reports how much of the goal was achieved.

The in-progress session survives restarts. The last 15 completed sessions
are kept in a circular history; an optional journal archives every one.

Examples:
  dialysis status
  dialysis set pre 75.3
  dialysis post 72.4
  dialysis finish
  dialysis history list`,
	SilenceUsage: true,
}

var (
	cfgFile     string
	dbOverride  string
	logOverride string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON); defaults are used when empty")
	rootCmd.PersistentFlags().StringVar(&dbOverride, "db", "", "SQLite store path (overrides storage config)")
	rootCmd.PersistentFlags().StringVar(&logOverride, "log-level", "", "debug, info, warn or error")
}
