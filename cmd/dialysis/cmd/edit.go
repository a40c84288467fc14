package cmd

import (
	"fmt"
	"strconv"

	"github.com/rustyeddy/dialysis/display"
	"github.com/rustyeddy/dialysis/session"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <pre|dry|time|delta> <value>",
	Short: "Set a pre-treatment value",
	Long: `Set one pre-treatment value of the in-progress session.

Weights are kilograms with one decimal, time is H:MM or minutes and delta
is 0.2 or 0.4. Values outside the allowed range are clamped.

Examples:
  dialysis set pre 75.3
  dialysis set time 4:15
  dialysis set delta 0.4`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

var adjustCmd = &cobra.Command{
	Use:   "adjust <pre|dry|time|delta> <steps>",
	Short: "Step a pre-treatment value up or down",
	Long: `Move a value by whole steps: 0.1 kg for weights and 15 minutes for
time. Delta toggles once per call.

Examples:
  dialysis adjust pre 3
  dialysis adjust time -- -2`,
	Args: cobra.ExactArgs(2),
	RunE: runAdjust,
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(adjustCmd)
}

func parseFieldValue(f session.Field, s string) (int64, error) {
	switch f {
	case session.FieldTime:
		return display.ParseTime(s)
	case session.FieldDelta:
		d, err := display.ParseDelta(s)
		return int64(d), err
	}
	return display.ParseWeight(s)
}

func runSet(cmd *cobra.Command, args []string) error {
	f, ok := session.ParseField(args[0])
	if !ok {
		return fmt.Errorf("unknown field %q (pre, dry, time, delta)", args[0])
	}
	v, err := parseFieldValue(f, args[1])
	if err != nil {
		return fmt.Errorf("%s: %w", f, err)
	}

	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.session(ctx)
	s.Set(ctx, f, v)
	printSession(cmd.OutOrStdout(), s)
	return s.Shutdown(ctx)
}

func runAdjust(cmd *cobra.Command, args []string) error {
	f, ok := session.ParseField(args[0])
	if !ok {
		return fmt.Errorf("unknown field %q (pre, dry, time, delta)", args[0])
	}
	steps, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("steps: %w", err)
	}

	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.session(ctx)
	s.Adjust(ctx, f, steps)
	printSession(cmd.OutOrStdout(), s)
	return s.Shutdown(ctx)
}
