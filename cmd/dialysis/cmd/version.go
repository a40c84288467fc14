package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the dialysis CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "dialysis version %s\n", version)
		fmt.Fprintln(out, "Dialysis treatment session tracker")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
