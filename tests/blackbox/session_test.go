//go:build blackbox

package blackbox

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "dialysis.yaml")
	body := fmt.Sprintf(`storage:
  type: sqlite
  db_path: %s
journal:
  type: sqlite
  db_path: %s
log:
  level: error
  format: console
`, filepath.Join(dir, "store.sqlite"), filepath.Join(dir, "journal.sqlite"))

	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSession_SurvivesRestart(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())

	out := run(t, "--config", cfg, "set", "pre", "78.4")
	expect(t, out, "Pre:   78.4 kg", "Goal: 6.4 kg")

	// a new process picks the record back up
	out = run(t, "--config", cfg, "status")
	expect(t, out, "(resumed)", "Pre:   78.4 kg", "Pess: 6.6 kg")
}

func TestSession_FinishArchives(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	run(t, "--config", cfg, "set", "dry", "71.0")
	run(t, "--config", cfg, "post", "71.5")
	out := run(t, "--config", cfg, "finish")
	expect(t, out, "Removed: 3.5 kg", "Goal:    4.0 kg", "Achieved: 87.5%")

	db, err := sql.Open("sqlite3", filepath.Join(dir, "journal.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM treatments`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 journaled session, got %d", n)
	}
}

func TestHistory_WrapsAfterFifteen(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())

	// twenty sessions, each with a distinct pre weight 70.1 .. 72.0
	for i := 1; i <= 20; i++ {
		run(t, "--config", cfg, "set", "pre", fmt.Sprintf("%d.%d", 70+i/10, i%10))
		run(t, "--config", cfg, "finish")
	}

	out := run(t, "--config", cfg, "history", "show", "0")
	expect(t, out, ":PRE_WEIGHT: 70.6")

	out = run(t, "--config", cfg, "history", "show", "14")
	expect(t, out, ":PRE_WEIGHT: 72.0")

	runFail(t, "--config", cfg, "history", "show", "15")
}

func TestRun_ButtonEvents(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())

	out := runInput(t, "s\nu\nu\nu\ns\nl\nd\ns\n", "--config", cfg, "run")
	expect(t, out, "* Pre:   75.3 kg", "POST TREATMENT", "* Post: 71.9 kg", "complete")

	out = run(t, "--config", cfg, "history", "list")
	expect(t, out, "75.3", "71.9")
}
