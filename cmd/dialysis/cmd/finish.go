package cmd

import (
	"fmt"

	"github.com/rustyeddy/dialysis/display"
	"github.com/rustyeddy/dialysis/storage"
	"github.com/spf13/cobra"
)

var postCmd = &cobra.Command{
	Use:   "post <weight>",
	Short: "Record the post-treatment weight",
	Long: `Set the post-treatment weight in kilograms and show the achieved removal.

Example:
  dialysis post 72.4`,
	Args: cobra.ExactArgs(1),
	RunE: runPost,
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Complete the session and move it to history",
	Long: `Mark the in-progress session complete, append it to the history,
archive it to the journal when one is configured and start a new session.

If no post weight has been recorded it defaults to the dry weight.`,
	Args: cobra.NoArgs,
	RunE: runFinish,
}

func init() {
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(finishCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	v, err := display.ParseWeight(args[0])
	if err != nil {
		return fmt.Errorf("post weight: %w", err)
	}

	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.session(ctx)
	s.SetPost(ctx, v)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Post weight: %s kg\n", display.Weight(s.Record().PostWeight))
	printRows(out, display.PostRows(s.Post()))
	return s.Shutdown(ctx)
}

func runFinish(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.session(ctx)
	s.BeginPost(ctx)

	entry, err := s.Finish(ctx)
	if err != nil {
		return fmt.Errorf("finish: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Session %s complete\n", entry.SessionID)
	printRows(out, display.PostRows(entry.Metrics()))

	if n, err := e.store.Available(ctx); err == nil {
		fmt.Fprintf(out, "\nHistory: %d of %d slots used\n", n, storage.MaxHistoryEntries)
	}
	return nil
}
