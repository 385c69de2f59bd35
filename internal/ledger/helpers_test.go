package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"debt-ledger-go/internal/models"
	"debt-ledger-go/internal/store"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// failingStore loads nothing and refuses every save.
type failingStore struct{}

func (failingStore) LoadSnapshot(context.Context) (models.Snapshot, error) {
	return models.Snapshot{}, store.ErrSnapshotNotFound
}

func (failingStore) SaveSnapshot(context.Context, models.Snapshot) error {
	return errors.New("disk full")
}

func setupTestStore(t *testing.T) (*Store, *store.MemoryStore, *fakeClock) {
	t.Helper()
	backend := store.NewMemoryStore()
	clock := newFakeClock()
	s, err := Open(context.Background(), Config{
		Snapshots: backend,
		Journal:   backend,
		Clock:     clock.Now,
	})
	require.NoError(t, err)
	return s, backend, clock
}

func seed(t *testing.T, s *Store, pairs ...string) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i+1 < len(pairs); i += 2 {
		_, err := s.AddRecord(ctx, pairs[i], pairs[i+1])
		require.NoError(t, err)
	}
}

func names(records []models.UserRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

// requireSameRecords compares records by value; decimals are compared numerically.
func requireSameRecords(t *testing.T, want, got []models.UserRecord) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].Name, got[i].Name, "name at %d", i)
		require.True(t, want[i].Debt.Equal(got[i].Debt), "debt at %d: want %s, got %s", i, want[i].Debt, got[i].Debt)
		require.Equal(t, want[i].LastUpdated, got[i].LastUpdated, "lastUpdated at %d", i)
	}
}
