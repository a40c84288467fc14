package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/dialysis/treatment"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTreatment(e Entry) error {
	r := e.Record
	_, err := j.db.Exec(`
		INSERT INTO treatments
		(session_id, started, completed, pre_weight, dry_weight, post_weight, treatment_time, delta_selection)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, r.Timestamp, e.Completed.UTC(),
		r.PreWeight, r.DryWeight, r.PostWeight, r.TreatmentTime, int16(r.DeltaSelection),
	)
	return err
}

const selectTreatments = `
	SELECT session_id, started, completed, pre_weight, dry_weight, post_weight, treatment_time, delta_selection
	FROM treatments`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e     Entry
		delta int16
	)
	err := s.Scan(
		&e.SessionID,
		&e.Record.Timestamp,
		&e.Completed,
		&e.Record.PreWeight,
		&e.Record.DryWeight,
		&e.Record.PostWeight,
		&e.Record.TreatmentTime,
		&delta,
	)
	e.Record.DeltaSelection = treatment.Delta(delta)
	e.Record.IsComplete = true
	return e, err
}

// GetTreatment returns a single session by ID.
func (j *SQLite) GetTreatment(sessionID string) (Entry, error) {
	return getEntry(j.db.QueryRow(selectTreatments+` WHERE session_id = ?`, sessionID), sessionID)
}

func getEntry(row scanner, sessionID string) (Entry, error) {
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, fmt.Errorf("session %q not found", sessionID)
		}
		return Entry{}, err
	}
	return e, nil
}

// ListCompletedBetween returns sessions finished within [start, end).
func (j *SQLite) ListCompletedBetween(start, end time.Time) ([]Entry, error) {
	return queryEntries(j.db, selectTreatments+`
		WHERE completed >= ? AND completed < ?
		ORDER BY completed ASC`, start.UTC(), end.UTC())
}

// List returns every archived session, oldest first.
func (j *SQLite) List() ([]Entry, error) {
	return queryEntries(j.db, selectTreatments+` ORDER BY completed ASC`)
}

func queryEntries(db *sql.DB, query string, args ...any) ([]Entry, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
