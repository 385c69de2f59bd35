package store

import (
	"context"
	"errors"

	"debt-ledger-go/internal/models"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrCorruptSnapshot  = errors.New("corrupt snapshot")
	ErrStoreClosed      = errors.New("store closed")
)

// Snapshot keys, mirroring the two entries a browser keeps in local storage.
const (
	KeyUsers          = "users"
	KeyLastActiveUser = "lastActiveUser"
)

// SnapshotStore defines the contract that every snapshot backend (SQLite, memory, ...) must satisfy.
//
// LoadSnapshot returns ErrSnapshotNotFound when nothing has been saved yet and
// an error wrapping ErrCorruptSnapshot when the stored users cannot be decoded;
// in that case the returned snapshot still carries the last active user.
// SaveSnapshot always overwrites both keys.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context) (models.Snapshot, error)
	SaveSnapshot(ctx context.Context, snapshot models.Snapshot) error
}

// Journal receives one entry per successful ledger mutation.
type Journal interface {
	RecordEntry(ctx context.Context, entry models.JournalEntry) error
	GetJournal(ctx context.Context, limit, offset int) ([]models.JournalEntry, error)
}

// LedgerBackend is implemented by backends that persist both snapshots and the journal.
type LedgerBackend interface {
	SnapshotStore
	Journal

	// --- Lifecycle ---
	Close()
}
