// Package session owns the in-progress treatment on behalf of the user
// interface. A Session is the only holder of the live record; the store
// is a durability mirror that is written after every change.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/dialysis/journal"
	"github.com/rustyeddy/dialysis/pkg/id"
	"github.com/rustyeddy/dialysis/storage"
	"github.com/rustyeddy/dialysis/treatment"
	"go.uber.org/zap"
)

// Field names an editable pre-treatment value, in screen order.
type Field int

const (
	FieldPreWeight Field = iota
	FieldDryWeight
	FieldTime
	FieldDelta
	NumFields
)

func (f Field) String() string {
	switch f {
	case FieldPreWeight:
		return "pre"
	case FieldDryWeight:
		return "dry"
	case FieldTime:
		return "time"
	case FieldDelta:
		return "delta"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// ParseField accepts the names printed by Field.String.
func ParseField(s string) (Field, bool) {
	switch s {
	case "pre":
		return FieldPreWeight, true
	case "dry":
		return FieldDryWeight, true
	case "time":
		return FieldTime, true
	case "delta":
		return FieldDelta, true
	}
	return 0, false
}

type Session struct {
	id      string
	rec     treatment.Record
	resumed bool

	store   *storage.Store
	journal journal.Journal
	log     *zap.Logger
	now     func() time.Time
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

func WithJournal(j journal.Journal) Option {
	return func(s *Session) { s.journal = j }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Start resumes the stored in-progress record when one loads cleanly and
// otherwise begins a fresh default record. Either way the record is
// written back once so the slot exists from here on.
func Start(ctx context.Context, store *storage.Store, opts ...Option) *Session {
	s := &Session{
		store:   store,
		journal: journal.Nop{},
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}

	if store.HasInProgress(ctx) {
		rec, err := store.LoadInProgress(ctx)
		switch {
		case err == nil:
			s.rec = rec
			s.resumed = true
		case errors.Is(err, storage.ErrCorrupt):
			s.log.Warn("discarding corrupt in-progress record", zap.Error(err))
		default:
			s.log.Warn("in-progress record unreadable", zap.Error(err))
		}
	}
	if !s.resumed {
		s.rec.Init(s.now())
	}

	s.id = id.At(s.rec.Started())
	s.log = s.log.With(zap.String("session_id", s.id))
	if s.resumed {
		s.log.Info("resuming in-progress treatment", zap.Time("started", s.rec.Started()))
	} else {
		s.log.Info("starting new treatment")
	}

	s.persist(ctx)
	return s
}

func (s *Session) ID() string { return s.id }

// Resumed reports whether Start picked up a stored record.
func (s *Session) Resumed() bool { return s.resumed }

// Record returns a copy of the live record.
func (s *Session) Record() treatment.Record { return s.rec }

func (s *Session) Pre() treatment.Metrics  { return treatment.ComputePre(s.rec) }
func (s *Session) Post() treatment.Metrics { return treatment.ComputePost(s.rec) }

// Adjust moves a pre-treatment field by dir steps. Delta toggles once
// per call regardless of dir.
func (s *Session) Adjust(ctx context.Context, f Field, dir int) {
	switch f {
	case FieldPreWeight:
		s.rec.AdjustPreWeight(dir)
	case FieldDryWeight:
		s.rec.AdjustDryWeight(dir)
	case FieldTime:
		s.rec.AdjustTime(dir)
	case FieldDelta:
		s.rec.ToggleDelta()
	default:
		return
	}
	s.persist(ctx)
}

// Set assigns a pre-treatment field. Weights are x10, time in minutes,
// delta 0 or 1. Out-of-range values are clamped.
func (s *Session) Set(ctx context.Context, f Field, v int64) {
	switch f {
	case FieldPreWeight:
		s.rec.SetPreWeight(v)
	case FieldDryWeight:
		s.rec.SetDryWeight(v)
	case FieldTime:
		s.rec.SetTime(v)
	case FieldDelta:
		s.rec.SetDelta(treatment.Delta(v))
	default:
		return
	}
	s.persist(ctx)
}

// BeginPost prepares the post-treatment entry: a missing post weight
// starts at the dry weight.
func (s *Session) BeginPost(ctx context.Context) {
	if s.rec.PostWeight == 0 {
		s.rec.PostWeight = s.rec.DryWeight
		s.persist(ctx)
	}
}

func (s *Session) AdjustPost(ctx context.Context, dir int) {
	s.rec.AdjustPostWeight(dir)
	s.persist(ctx)
}

func (s *Session) SetPost(ctx context.Context, v int64) {
	s.rec.SetPostWeight(v)
	s.persist(ctx)
}

// Finish completes the session: the record is appended to history,
// archived to the journal, the in-progress slot is cleared and a new
// default record takes its place. If the history write fails the record
// stays in progress and the error is returned.
func (s *Session) Finish(ctx context.Context) (journal.Entry, error) {
	done := s.rec
	done.IsComplete = true

	if err := s.store.SaveToHistory(ctx, done); err != nil {
		s.log.Error("history save failed, treatment kept in progress", zap.Error(err))
		return journal.Entry{}, err
	}

	entry := journal.Entry{SessionID: s.id, Record: done, Completed: s.now()}
	if err := s.journal.RecordTreatment(entry); err != nil {
		s.log.Warn("journal write failed", zap.Error(err))
	}

	if err := s.store.ClearInProgress(ctx); err != nil {
		s.log.Warn("clear in-progress failed", zap.Error(err))
	}

	m := entry.Metrics()
	s.log.Info("treatment complete",
		zap.Int32("goal_x10", m.KGoal),
		zap.Int32("removed_x10", m.ActualRemoval),
		zap.Int32("achieved_x10", m.Percentage),
	)

	s.rec.Init(s.now())
	s.resumed = false
	s.id = id.At(s.rec.Started())
	s.log = s.log.With(zap.String("next_session_id", s.id))
	return entry, nil
}

// Shutdown writes the record one last time unless it has been completed.
func (s *Session) Shutdown(ctx context.Context) error {
	if s.rec.IsComplete {
		return nil
	}
	if err := s.store.SaveInProgress(ctx, s.rec); err != nil {
		s.log.Error("final save failed", zap.Error(err))
		return err
	}
	return nil
}

// persist mirrors the record to the store. Failures are logged and the
// session carries on from memory.
func (s *Session) persist(ctx context.Context) {
	if err := s.store.SaveInProgress(ctx, s.rec); err != nil {
		s.log.Warn("in-progress save failed", zap.Error(err))
	}
}
