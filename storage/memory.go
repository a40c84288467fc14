package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Persist. It is the default for tests and for
// the "memory" storage type.
type Memory struct {
	mu      sync.Mutex
	data    map[uint32][]byte
	maxSize int
}

type MemoryOption func(*Memory)

// WithMaxValueSize truncates stored values to n bytes, mirroring the
// per-key limit of a watch persist API. WriteData then reports the
// truncated length.
func WithMaxValueSize(n int) MemoryOption {
	return func(m *Memory) { m.maxSize = n }
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{data: make(map[uint32][]byte)}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Memory) Exists(_ context.Context, key uint32) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *Memory) ReadData(_ context.Context, key uint32) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNoKey
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) WriteData(_ context.Context, key uint32, data []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(data)
	if m.maxSize > 0 && n > m.maxSize {
		n = m.maxSize
	}
	v := make([]byte, n)
	copy(v, data[:n])
	m.data[key] = v
	return n, nil
}

func (m *Memory) Delete(_ context.Context, key uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Put stores raw bytes without any size cap.
func (m *Memory) Put(key uint32, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
}

// Len reports how many keys are stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (m *Memory) Close() error { return nil }
