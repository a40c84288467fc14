package journal

import (
	"fmt"

	"github.com/rustyeddy/dialysis/config"
)

// Open returns the journal selected by cfg. An empty or "none" type gives
// a Nop journal.
func Open(cfg config.JournalConfig) (Journal, error) {
	switch cfg.Type {
	case "", "none":
		return Nop{}, nil
	case "csv":
		return NewCSV(cfg.CSV)
	case "sqlite", "postgres":
		return OpenReader(cfg)
	}
	return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
}

// OpenReader opens a queryable journal. Only the database types qualify.
func OpenReader(cfg config.JournalConfig) (Reader, error) {
	switch cfg.Type {
	case "sqlite":
		return NewSQLite(cfg.DBPath)
	case "postgres":
		return NewPostgres(cfg.DSN)
	}
	return nil, fmt.Errorf("journal type %q cannot be queried (sqlite, postgres)", journalType(cfg.Type))
}

func journalType(t string) string {
	if t == "" {
		return "none"
	}
	return t
}
