// Package storage keeps the in-progress treatment and a fixed-size circular
// history on top of a small key-value medium.
package storage

import (
	"context"
	"errors"
)

// Key space shared by every backend.
const (
	KeyInProgress   uint32 = 0x0001
	KeyHistoryCount uint32 = 0x0002
	KeyHistoryBase  uint32 = 0x0100
)

// MaxHistoryEntries is the number of physical history slots.
const MaxHistoryEntries = 15

// ErrNoKey is returned by a Persist backend for a key that was never written.
var ErrNoKey = errors.New("storage: no such key")

// Persist is the durable key-value medium. WriteData reports how many
// bytes were actually stored; a backend may store fewer than requested.
type Persist interface {
	Exists(ctx context.Context, key uint32) (bool, error)
	ReadData(ctx context.Context, key uint32) ([]byte, error)
	WriteData(ctx context.Context, key uint32, data []byte) (int, error)
	Delete(ctx context.Context, key uint32) error
	Close() error
}

func historyKey(slot int) uint32 {
	return KeyHistoryBase + uint32(slot)
}
