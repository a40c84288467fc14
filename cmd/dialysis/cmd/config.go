package cmd

import (
	"fmt"

	"github.com/rustyeddy/dialysis/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage configuration files for the tracker.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  dialysis config init -o dialysis.yaml
  dialysis config validate -f dialysis.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "dialysis.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the file and run with:")
	fmt.Fprintf(out, "  dialysis --config %s status\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", configValidatePath)
	switch cfg.Storage.Type {
	case "sqlite":
		fmt.Fprintf(out, "  Storage: sqlite (%s)\n", cfg.Storage.DBPath)
	case "redis":
		fmt.Fprintf(out, "  Storage: redis (%s db %d)\n", cfg.Storage.RedisAddr, cfg.Storage.RedisDB)
	default:
		fmt.Fprintf(out, "  Storage: %s\n", cfg.Storage.Type)
	}
	fmt.Fprintf(out, "  Journal: %s\n", journalType(cfg.Journal.Type))
	fmt.Fprintf(out, "  Log: %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
	return nil
}

func journalType(t string) string {
	if t == "" {
		return "none"
	}
	return t
}
