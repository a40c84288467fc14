package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

var csvHeader = []string{
	"session_id", "started", "completed",
	"pre_weight_kg", "dry_weight_kg", "post_weight_kg",
	"treatment_min", "delta_kg",
	"goal_kg", "removed_kg", "variance_kg", "achieved_pct", "ufr_kg_h",
}

// CSVJournal appends one row per finished session. The header is written
// only when the file is new.
type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			_ = f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) RecordTreatment(e Entry) error {
	if err := j.w.Write(csvRow(e)); err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}

// WriteCSV writes entries with a header row.
func WriteCSV(out io.Writer, entries []Entry) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := w.Write(csvRow(e)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func csvRow(e Entry) []string {
	r := e.Record
	m := e.Metrics()

	completed := ""
	if !e.Completed.IsZero() {
		completed = e.Completed.UTC().Format(time.RFC3339)
	}

	return []string{
		e.SessionID,
		r.Started().UTC().Format(time.RFC3339),
		completed,
		tenths(r.PreWeight),
		tenths(r.DryWeight),
		tenths(r.PostWeight),
		fmt.Sprint(r.TreatmentTime),
		r.DeltaSelection.String(),
		tenths(m.KGoal),
		tenths(m.ActualRemoval),
		tenths(m.Variance),
		tenths(m.Percentage),
		hundredths(m.UFR),
	}
}

// tenths renders an x10 value with its sign intact, unlike the on-screen
// format.
func tenths(v int32) string {
	return decimal.New(int64(v), -1).StringFixed(1)
}

func hundredths(v int32) string {
	return decimal.New(int64(v), -2).StringFixed(2)
}
