// Package journal archives finished sessions outside the device's
// circular history, which only ever holds the last fifteen.
package journal

import (
	"time"

	"github.com/rustyeddy/dialysis/treatment"
)

// Entry is one finished session.
type Entry struct {
	SessionID string
	Record    treatment.Record
	Completed time.Time
}

// Metrics recomputes the post-treatment results for the entry.
func (e Entry) Metrics() treatment.Metrics {
	return treatment.ComputePost(e.Record)
}

type Journal interface {
	RecordTreatment(Entry) error
	Close() error
}

// Reader is a journal that can also be queried. The SQLite and Postgres
// journals implement it.
type Reader interface {
	Journal
	GetTreatment(sessionID string) (Entry, error)
	ListCompletedBetween(start, end time.Time) ([]Entry, error)
	List() ([]Entry, error)
}

// Nop discards every entry.
type Nop struct{}

func (Nop) RecordTreatment(Entry) error { return nil }
func (Nop) Close() error                { return nil }
