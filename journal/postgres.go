package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Postgres archives sessions to a shared clinic database.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.Exec(PostgresSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Postgres{db: db}, nil
}

// NewPostgresDB wraps a connection whose schema is already in place.
func NewPostgresDB(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (j *Postgres) RecordTreatment(e Entry) error {
	r := e.Record
	_, err := j.db.Exec(`
		INSERT INTO treatments
		(session_id, started, completed, pre_weight, dry_weight, post_weight, treatment_time, delta_selection)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.SessionID, r.Timestamp, e.Completed.UTC(),
		r.PreWeight, r.DryWeight, r.PostWeight, r.TreatmentTime, int16(r.DeltaSelection),
	)
	if err != nil {
		return fmt.Errorf("insert treatment: %w", err)
	}
	return nil
}

func (j *Postgres) GetTreatment(sessionID string) (Entry, error) {
	return getEntry(j.db.QueryRow(selectTreatments+` WHERE session_id = $1`, sessionID), sessionID)
}

// ListCompletedBetween returns sessions finished within [start, end).
func (j *Postgres) ListCompletedBetween(start, end time.Time) ([]Entry, error) {
	return queryEntries(j.db, selectTreatments+`
		WHERE completed >= $1 AND completed < $2
		ORDER BY completed ASC`, start.UTC(), end.UTC())
}

func (j *Postgres) List() ([]Entry, error) {
	return queryEntries(j.db, selectTreatments+` ORDER BY completed ASC`)
}

func (j *Postgres) Close() error {
	return j.db.Close()
}
