package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/rustyeddy/dialysis/display"
	"github.com/rustyeddy/dialysis/journal"
	"github.com/rustyeddy/dialysis/storage"
	"github.com/rustyeddy/dialysis/treatment"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the completed-session history",
	Long: `The history keeps the last 15 completed sessions; older ones are
overwritten. Index 0 is the oldest session still held.

Subcommands:
  list    - One line per stored session
  show    - Full results of one session
  clear   - Delete every stored session
  export  - Write the history as CSV, XLSX or Org

Examples:
  dialysis history list
  dialysis history show 3
  dialysis history export --format org`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions, oldest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <index>",
	Short: "Show one stored session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored sessions",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history as CSV, XLSX or Org",
	Args:  cobra.NoArgs,
	RunE:  runHistoryExport,
}

var (
	historyExportFormat string
	historyExportOutput string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)

	historyExportCmd.Flags().StringVarP(&historyExportFormat, "format", "F", "csv", "output format (csv, xlsx, org)")
	historyExportCmd.Flags().StringVarP(&historyExportOutput, "output", "o", "", "output file (default stdout)")
}

func withStore(ctx context.Context, fn func(*storage.Store) error) error {
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e.store)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withStore(ctx, func(st *storage.Store) error {
		recs, err := st.History(ctx)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No completed sessions.")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tSTARTED\tPRE\tPOST\tGOAL\tREMOVED\tACHIEVED")
		for i, r := range recs {
			m := treatment.ComputePost(r)
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				i,
				r.Started().Format("2006-01-02 15:04"),
				display.Weight(r.PreWeight),
				display.Weight(r.PostWeight),
				display.Weight(m.KGoal),
				display.Weight(m.ActualRemoval),
				display.Percentage(m.Percentage),
			)
		}
		return tw.Flush()
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}

	ctx := cmd.Context()
	return withStore(ctx, func(st *storage.Store) error {
		r, err := st.LoadFromHistory(ctx, i)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), journal.FormatTreatmentOrg(journal.Entry{Record: r}))
		return nil
	})
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withStore(ctx, func(st *storage.Store) error {
		if err := st.ClearAllHistory(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ History cleared")
		return nil
	})
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	switch historyExportFormat {
	case "csv", "xlsx", "org":
	default:
		return fmt.Errorf("unknown format %q (csv, xlsx, org)", historyExportFormat)
	}

	ctx := cmd.Context()
	return withStore(ctx, func(st *storage.Store) error {
		recs, err := st.History(ctx)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		entries := make([]journal.Entry, len(recs))
		for i, r := range recs {
			entries[i] = journal.Entry{Record: r}
		}

		var out io.Writer = cmd.OutOrStdout()
		if historyExportOutput != "" {
			f, err := os.Create(historyExportOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		switch historyExportFormat {
		case "csv":
			return journal.WriteCSV(out, entries)
		case "xlsx":
			return journal.WriteXLSX(out, entries)
		default:
			_, err := io.WriteString(out, journal.FormatTreatmentsOrg(entries))
			return err
		}
	})
}
