package store

import (
	"context"
	"sync"

	"debt-ledger-go/internal/models"
)

// Compile-time check: *MemoryStore must satisfy LedgerBackend.
var _ LedgerBackend = (*MemoryStore)(nil)

// MemoryStore keeps the encoded snapshot and journal in process memory.
// It goes through the same codec as persistent backends, so a round trip is exercised.
type MemoryStore struct {
	mu      sync.Mutex
	values  map[string]string
	journal []models.JournalEntry
	closed  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Set writes a raw key, bypassing the codec. Useful to seed legacy or corrupt data.
func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Get returns a raw key as last written.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) LoadSnapshot(_ context.Context) (models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return models.Snapshot{}, ErrStoreClosed
	}
	return DecodeSnapshot(m.values)
}

func (m *MemoryStore) SaveSnapshot(_ context.Context, snapshot models.Snapshot) error {
	encoded, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}
	for k, v := range encoded {
		m.values[k] = v
	}
	return nil
}

func (m *MemoryStore) RecordEntry(_ context.Context, entry models.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}
	m.journal = append(m.journal, entry)
	return nil
}

// GetJournal returns entries newest first.
func (m *MemoryStore) GetJournal(_ context.Context, limit, offset int) ([]models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrStoreClosed
	}

	out := make([]models.JournalEntry, 0, len(m.journal))
	for i := len(m.journal) - 1; i >= 0; i-- {
		out = append(out, m.journal[i])
	}

	if offset >= len(out) {
		return []models.JournalEntry{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}
