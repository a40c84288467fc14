package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rustyeddy/dialysis/treatment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numbered returns a distinct record for append number n.
func numbered(n int) treatment.Record {
	r := treatment.NewRecord(time.Unix(int64(1_700_000_000+n*86400), 0))
	r.SetPreWeight(int64(800 + n))
	r.IsComplete = true
	return r
}

func newTestStore(t *testing.T, opts ...MemoryOption) (*Store, *Memory) {
	t.Helper()
	m := NewMemory(opts...)
	return New(m), m
}

func TestInProgressRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	assert.False(t, s.HasInProgress(ctx))

	r := treatment.Record{PreWeight: 812, DryWeight: 779, PostWeight: 781, TreatmentTime: 225, DeltaSelection: treatment.Delta04, Timestamp: 1_760_000_000}
	require.NoError(t, s.SaveInProgress(ctx, r))
	assert.True(t, s.HasInProgress(ctx))

	got, err := s.LoadInProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, r, got)

	// overwrite
	r.PostWeight = 790
	require.NoError(t, s.SaveInProgress(ctx, r))
	got, err = s.LoadInProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestClearInProgress(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.SaveInProgress(ctx, numbered(0)))
	require.NoError(t, s.ClearInProgress(ctx))

	assert.False(t, s.HasInProgress(ctx))
	_, err := s.LoadInProgress(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, errors.Is(err, ErrCorrupt))

	// idempotent
	assert.NoError(t, s.ClearInProgress(ctx))
}

func TestLoadInProgressCorrupt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, m := newTestStore(t)

	m.Put(KeyInProgress, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	assert.True(t, s.HasInProgress(ctx))
	_, err := s.LoadInProgress(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveInProgressShortWrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, WithMaxValueSize(16))

	err := s.SaveInProgress(ctx, numbered(1))
	assert.ErrorIs(t, err, ErrShortWrite)

	// the truncated payload is still there and must read as corrupt
	_, err = s.LoadInProgress(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestHistoryCountAbsent(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)

	n, err := s.HistoryCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestHistoryCountLaw(t *testing.T) {
	t.Parallel()

	for _, total := range []int{0, 1, 14, 15, 16, 20, 30, 31, 45} {
		total := total
		t.Run(fmt.Sprintf("N=%d", total), func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s, _ := newTestStore(t)

			for n := 0; n < total; n++ {
				require.NoError(t, s.SaveToHistory(ctx, numbered(n)))
			}

			count, err := s.HistoryCount(ctx)
			require.NoError(t, err)
			assert.Equal(t, total, count)

			avail := min(total, MaxHistoryEntries)
			for i := 0; i < avail; i++ {
				got, err := s.LoadFromHistory(ctx, i)
				require.NoError(t, err, "N=%d i=%d", total, i)
				assert.Equal(t, numbered(total-avail+i), got, "N=%d i=%d", total, i)
			}

			_, err = s.LoadFromHistory(ctx, avail)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestHistoryWraparound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, m := newTestStore(t)

	for n := 0; n < 20; n++ {
		require.NoError(t, s.SaveToHistory(ctx, numbered(n)))
	}

	oldest, err := s.LoadFromHistory(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, numbered(5), oldest)

	newest, err := s.LoadFromHistory(ctx, 14)
	require.NoError(t, err)
	assert.Equal(t, numbered(19), newest)

	// 15 slots plus the counter
	assert.Equal(t, MaxHistoryEntries+1, m.Len())

	all, err := s.History(ctx)
	require.NoError(t, err)
	require.Len(t, all, MaxHistoryEntries)
	for i, r := range all {
		assert.Equal(t, numbered(5+i), r)
	}
}

func TestLoadFromHistoryOutOfRange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	for n := 0; n < 3; n++ {
		require.NoError(t, s.SaveToHistory(ctx, numbered(n)))
	}

	for _, i := range []int{-1, 3, 14, 15, 100} {
		_, err := s.LoadFromHistory(ctx, i)
		assert.ErrorIs(t, err, ErrNotFound, "index %d", i)
	}
}

func TestSaveToHistoryShortWriteKeepsCount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := NewMemory()
	s := New(m)
	require.NoError(t, s.SaveToHistory(ctx, numbered(0)))

	// shrink the medium after a good write
	m.maxSize = 8
	err := s.SaveToHistory(ctx, numbered(1))
	assert.ErrorIs(t, err, ErrShortWrite)

	count, err := s.HistoryCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := s.LoadFromHistory(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, numbered(0), got)
}

type failingWrites struct {
	*Memory
	err error
}

func (f failingWrites) WriteData(context.Context, uint32, []byte) (int, error) {
	return 0, f.err
}

func TestSaveToHistoryBackendError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	boom := errors.New("flash worn out")
	s := New(failingWrites{Memory: NewMemory(), err: boom})

	err := s.SaveToHistory(ctx, numbered(0))
	assert.ErrorIs(t, err, boom)

	count, err := s.HistoryCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	assert.ErrorIs(t, s.SaveInProgress(ctx, numbered(0)), boom)
}

func TestClearAllHistory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, m := newTestStore(t)

	for n := 0; n < 20; n++ {
		require.NoError(t, s.SaveToHistory(ctx, numbered(n)))
	}
	require.NoError(t, s.SaveInProgress(ctx, numbered(99)))

	require.NoError(t, s.ClearAllHistory(ctx))

	count, err := s.HistoryCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 1, m.Len(), "only the in-progress slot remains")

	_, err = s.LoadFromHistory(ctx, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	// appending starts over at slot 0
	require.NoError(t, s.SaveToHistory(ctx, numbered(100)))
	got, err := s.LoadFromHistory(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, numbered(100), got)
}

func TestClearAllHistoryPartial(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, m := newTestStore(t)

	for n := 0; n < 4; n++ {
		require.NoError(t, s.SaveToHistory(ctx, numbered(n)))
	}
	require.NoError(t, s.ClearAllHistory(ctx))
	assert.Equal(t, 0, m.Len())

	// clearing an empty history is fine
	require.NoError(t, s.ClearAllHistory(ctx))
}

func TestHistoryCorruptCounter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, m := newTestStore(t)

	m.Put(KeyHistoryCount, []byte{1, 2})
	_, err := s.HistoryCount(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)

	err = s.SaveToHistory(ctx, numbered(0))
	assert.ErrorIs(t, err, ErrCorrupt)

	// clearing recovers
	require.NoError(t, s.ClearAllHistory(ctx))
	n, err := s.HistoryCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestHistoryNegativeCounter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, m := newTestStore(t)

	m.Put(KeyHistoryCount, []byte{0xFF, 0xFF, 0xFF, 0xFF})
	_, err := s.HistoryCount(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = s.History(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)

	err = s.SaveToHistory(ctx, numbered(0))
	assert.ErrorIs(t, err, ErrCorrupt)

	// nothing lands below the history keys
	_, err = m.ReadData(ctx, KeyHistoryBase-1)
	assert.ErrorIs(t, err, ErrNoKey)
	assert.Equal(t, 1, m.Len())
}

func TestHistorySkipsCorruptSlot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, m := newTestStore(t)

	for n := 0; n < 3; n++ {
		require.NoError(t, s.SaveToHistory(ctx, numbered(n)))
	}
	m.Put(historyKey(1), []byte{1, 2, 3})

	_, err := s.LoadFromHistory(ctx, 1)
	assert.ErrorIs(t, err, ErrCorrupt)

	recs, err := s.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, []treatment.Record{numbered(0), numbered(2)}, recs)
}

func TestPhysicalSlot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		count, i int
		slot     int
		ok       bool
	}{
		{0, 0, 0, false},
		{1, 0, 0, true},
		{15, 14, 14, true},
		{16, 0, 1, true},
		{16, 14, 0, true},
		{20, 0, 5, true},
		{20, 14, 4, true},
		{30, 0, 0, true},
		{20, 15, 0, false},
		{20, -1, 0, false},
	}
	for _, tt := range tests {
		slot, ok := physicalSlot(tt.count, tt.i)
		assert.Equal(t, tt.ok, ok, "count=%d i=%d", tt.count, tt.i)
		if tt.ok {
			assert.Equal(t, tt.slot, slot, "count=%d i=%d", tt.count, tt.i)
		}
	}
}
