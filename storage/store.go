package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rustyeddy/dialysis/treatment"
	"go.uber.org/zap"
)

var (
	// ErrNotFound means the requested record is absent or out of range.
	ErrNotFound = errors.New("storage: record not found")
	// ErrCorrupt means a stored payload has the wrong size. It matches
	// ErrNotFound so callers that only care about "nothing usable" can
	// test for that alone.
	ErrCorrupt = fmt.Errorf("%w: payload size mismatch", ErrNotFound)
	// ErrShortWrite means the medium stored fewer bytes than a record.
	ErrShortWrite = errors.New("storage: short write")
)

// Store holds one in-progress record and a circular history of
// MaxHistoryEntries completed records. The history counter counts every
// append ever made; slot = count % MaxHistoryEntries.
type Store struct {
	kv  Persist
	log *zap.Logger
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(kv Persist, opts ...Option) *Store {
	s := &Store{kv: kv, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Close releases the underlying medium.
func (s *Store) Close() error {
	return s.kv.Close()
}

// HasInProgress reports whether an in-progress slot exists.
func (s *Store) HasInProgress(ctx context.Context) bool {
	ok, err := s.kv.Exists(ctx, KeyInProgress)
	if err != nil {
		s.log.Warn("in-progress existence check failed", zap.Error(err))
		return false
	}
	return ok
}

func (s *Store) SaveInProgress(ctx context.Context, r treatment.Record) error {
	if err := s.writeRecord(ctx, KeyInProgress, r); err != nil {
		return fmt.Errorf("save in-progress: %w", err)
	}
	return nil
}

func (s *Store) LoadInProgress(ctx context.Context) (treatment.Record, error) {
	r, err := s.readRecord(ctx, KeyInProgress)
	if err != nil {
		return treatment.Record{}, fmt.Errorf("load in-progress: %w", err)
	}
	return r, nil
}

// ClearInProgress deletes the in-progress slot. Deleting an absent slot
// is not an error.
func (s *Store) ClearInProgress(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyInProgress); err != nil {
		return fmt.Errorf("clear in-progress: %w", err)
	}
	return nil
}

// HistoryCount returns the number of records ever appended to history.
func (s *Store) HistoryCount(ctx context.Context) (int, error) {
	data, err := s.kv.ReadData(ctx, KeyHistoryCount)
	if errors.Is(err, ErrNoKey) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("history count: %w", err)
	}
	if len(data) != 4 {
		return 0, fmt.Errorf("history count: %w", ErrCorrupt)
	}
	count := int(int32(binary.LittleEndian.Uint32(data)))
	if count < 0 {
		return 0, fmt.Errorf("history count %d: %w", count, ErrCorrupt)
	}
	return count, nil
}

// Available returns how many history records can be loaded.
func (s *Store) Available(ctx context.Context) (int, error) {
	count, err := s.HistoryCount(ctx)
	if err != nil {
		return 0, err
	}
	return min(count, MaxHistoryEntries), nil
}

// SaveToHistory writes r into the next circular slot. The counter only
// advances after the record write is verified.
func (s *Store) SaveToHistory(ctx context.Context, r treatment.Record) error {
	count, err := s.HistoryCount(ctx)
	if err != nil {
		return fmt.Errorf("save to history: %w", err)
	}

	slot := count % MaxHistoryEntries
	if err := s.writeRecord(ctx, historyKey(slot), r); err != nil {
		return fmt.Errorf("save to history slot %d: %w", slot, err)
	}

	if err := s.writeCount(ctx, count+1); err != nil {
		return fmt.Errorf("save to history: %w", err)
	}

	s.log.Debug("history append", zap.Int("slot", slot), zap.Int("count", count+1))
	return nil
}

// LoadFromHistory returns the record at logical index i, 0 being the
// oldest record still held.
func (s *Store) LoadFromHistory(ctx context.Context, i int) (treatment.Record, error) {
	count, err := s.HistoryCount(ctx)
	if err != nil {
		return treatment.Record{}, fmt.Errorf("load history %d: %w", i, err)
	}

	slot, ok := physicalSlot(count, i)
	if !ok {
		return treatment.Record{}, fmt.Errorf("load history %d of %d: %w", i, count, ErrNotFound)
	}

	r, err := s.readRecord(ctx, historyKey(slot))
	if err != nil {
		return treatment.Record{}, fmt.Errorf("load history %d (slot %d): %w", i, slot, err)
	}
	return r, nil
}

// History returns every available record, oldest first. Corrupt slots
// are logged and left out.
func (s *Store) History(ctx context.Context) ([]treatment.Record, error) {
	n, err := s.Available(ctx)
	if err != nil {
		return nil, err
	}

	recs := make([]treatment.Record, 0, n)
	for i := 0; i < n; i++ {
		r, err := s.LoadFromHistory(ctx, i)
		if errors.Is(err, ErrCorrupt) {
			s.log.Warn("skipping corrupt history entry", zap.Int("index", i), zap.Error(err))
			continue
		}
		if err != nil {
			return recs, err
		}
		recs = append(recs, r)
	}
	return recs, nil
}

// ClearAllHistory deletes every occupied slot and resets the counter.
func (s *Store) ClearAllHistory(ctx context.Context) error {
	n, err := s.Available(ctx)
	if err != nil {
		// an unreadable counter still leaves slots behind
		s.log.Warn("history count unreadable, clearing every slot", zap.Error(err))
		n = MaxHistoryEntries
	}

	for slot := 0; slot < n; slot++ {
		if err := s.kv.Delete(ctx, historyKey(slot)); err != nil {
			return fmt.Errorf("clear history slot %d: %w", slot, err)
		}
	}
	if err := s.kv.Delete(ctx, KeyHistoryCount); err != nil {
		return fmt.Errorf("clear history count: %w", err)
	}
	return nil
}

// physicalSlot maps a logical history index to its slot. Until the buffer
// wraps the two are equal; afterwards the oldest survivor sits at
// count % MaxHistoryEntries.
func physicalSlot(count, i int) (int, bool) {
	if i < 0 || i >= count || i >= MaxHistoryEntries {
		return 0, false
	}
	if count <= MaxHistoryEntries {
		return i, true
	}
	return (count + i) % MaxHistoryEntries, true
}

func (s *Store) writeRecord(ctx context.Context, key uint32, r treatment.Record) error {
	data, err := r.MarshalBinary()
	if err != nil {
		return err
	}

	n, err := s.kv.WriteData(ctx, key, data)
	if err != nil {
		return err
	}
	if n != treatment.RecordSize {
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrShortWrite, n, treatment.RecordSize)
	}
	return nil
}

func (s *Store) readRecord(ctx context.Context, key uint32) (treatment.Record, error) {
	data, err := s.kv.ReadData(ctx, key)
	if errors.Is(err, ErrNoKey) {
		return treatment.Record{}, ErrNotFound
	}
	if err != nil {
		return treatment.Record{}, err
	}

	var r treatment.Record
	if err := r.UnmarshalBinary(data); err != nil {
		return treatment.Record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if !r.Validate() {
		s.log.Warn("stored record outside clamped domain", zap.Uint32("key", key))
	}
	return r, nil
}

func (s *Store) writeCount(ctx context.Context, count int) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(int32(count)))

	n, err := s.kv.WriteData(ctx, KeyHistoryCount, buf[:])
	if err != nil {
		return fmt.Errorf("write history count: %w", err)
	}
	if n != len(buf) {
		return fmt.Errorf("write history count: %w", ErrShortWrite)
	}
	return nil
}
