package cmd

import (
	"fmt"
	"io"

	"github.com/rustyeddy/dialysis/display"
	"github.com/rustyeddy/dialysis/session"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the in-progress session",
	Long: `Print the in-progress record with its pre-treatment results and,
once a post weight is set, the achieved removal.

A new session with default values is started when none is stored.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.session(ctx)
	printSession(cmd.OutOrStdout(), s)
	return s.Shutdown(ctx)
}

func printSession(w io.Writer, s *session.Session) {
	r := s.Record()

	state := "new"
	if s.Resumed() {
		state = "resumed"
	}
	fmt.Fprintf(w, "Session %s (%s)\n", s.ID(), state)
	fmt.Fprintf(w, "  Started: %s\n", r.Started().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "  Pre:   %s kg\n", display.Weight(r.PreWeight))
	fmt.Fprintf(w, "  Dry:   %s kg\n", display.Weight(r.DryWeight))
	fmt.Fprintf(w, "  Post:  %s kg\n", display.Weight(r.PostWeight))
	fmt.Fprintf(w, "  Time:  %s\n", display.Time(r.TreatmentTime))
	fmt.Fprintf(w, "  Delta: %s kg\n", display.Delta(r.DeltaSelection))

	fmt.Fprintln(w, "\nPre-treatment:")
	printRows(w, display.PreRows(s.Pre()))

	fmt.Fprintln(w, "\nPost-treatment:")
	printRows(w, display.PostRows(s.Post()))
}

func printRows(w io.Writer, rows []string) {
	for _, row := range rows {
		fmt.Fprintf(w, "  %s\n", row)
	}
}
