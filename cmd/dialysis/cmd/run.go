package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rustyeddy/dialysis/session"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive the session with button events from stdin",
	Long: `Run the button-driven editor. Each input line is one event:

  u, up, +      up
  d, down, -    down
  s, select     select (an empty line also selects)
  l, long       long select (go to the post-treatment screen)
  b, back, q    back

The screen is printed after every event. The session is saved after every
change and once more when input ends.

Example:
  printf 'd\ns\nu\ns\nl\ns\n' | dialysis run`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.session(ctx)
	ed := session.NewEditor(s)
	out := cmd.OutOrStdout()

	printView(out, ed)

	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		word := strings.ToLower(strings.TrimSpace(sc.Text()))
		ev, ok := session.ParseEvent(word)
		if !ok {
			fmt.Fprintf(out, "? unknown event %q\n", word)
			continue
		}

		ed.Handle(ctx, ev)
		switch {
		case ed.LastErr != nil:
			fmt.Fprintf(out, "! finish failed: %v\n", ed.LastErr)
		case ed.Last != nil:
			fmt.Fprintf(out, "✓ Session %s complete\n", ed.Last.SessionID)
			printRows(out, ed.Last.Rows)
		}
		printView(out, ed)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read events: %w", err)
	}

	return s.Shutdown(ctx)
}

func printView(w io.Writer, ed *session.Editor) {
	fmt.Fprintln(w, "----")
	for _, line := range ed.View() {
		fmt.Fprintln(w, line)
	}
}
