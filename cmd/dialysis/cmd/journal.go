package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/dialysis/journal"
	"github.com/rustyeddy/dialysis/pkg/id"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the session journal",
	Long: `Query archived sessions from a SQLite or Postgres journal.

Subcommands:
  session - Details of one session by ID
  today   - Sessions completed today
  day     - Sessions completed on a given day
  list    - Every archived session

Examples:
  dialysis journal session <session-id>
  dialysis journal day 2026-02-03`,
}

var journalSessionCmd = &cobra.Command{
	Use:   "session <session-id>",
	Short: "Get details of a specific session",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalSession,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List sessions completed today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List sessions completed on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every archived session",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalSessionCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalListCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "journal-db", "j", "", "SQLite journal path (default from config)")
}

func openJournal() (journal.Reader, error) {
	if journalDBPath != "" {
		return journal.NewSQLite(journalDBPath)
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	j, err := journal.OpenReader(cfg.Journal)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return j, nil
}

func runJournalSession(cmd *cobra.Command, args []string) error {
	opened, err := id.Time(args[0])
	if err != nil {
		return fmt.Errorf("session id %q: %w", args[0], err)
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	e, err := j.GetTreatment(args[0])
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Session opened %s\n", opened.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, journal.FormatTreatmentOrg(e))
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	return listDay(cmd, time.Now().In(time.Local).Format("2006-01-02"))
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	return listDay(cmd, args[0])
}

func listDay(cmd *cobra.Command, day string) error {
	start, end, err := dayBounds(time.Local, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.ListCompletedBetween(start, end)
	if err != nil {
		return fmt.Errorf("query sessions: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTreatmentsOrg(entries))
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.List()
	if err != nil {
		return fmt.Errorf("query sessions: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTreatmentsOrg(entries))
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)
	return start, end, nil
}
