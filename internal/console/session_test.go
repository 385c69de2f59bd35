package console

import (
	"context"
	"testing"
	"time"

	"debt-ledger-go/internal/ledger"
	"debt-ledger-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, pairs ...string) *Session {
	t.Helper()
	store := ledger.New(ledger.Config{Clock: func() time.Time { return testNow }})
	for i := 0; i+1 < len(pairs); i += 2 {
		_, err := store.AddRecord(context.Background(), pairs[i], pairs[i+1])
		require.NoError(t, err)
	}
	return NewSession(store)
}

func rowNames(records []models.UserRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestSession_ResolveUnfiltered(t *testing.T) {
	s := newTestSession(t, "Ann", "1", "Bob", "2")

	index, err := s.Resolve(2)
	require.NoError(t, err)
	assert.Equal(t, 1, index)

	for _, row := range []int{0, 3, -1} {
		_, err := s.Resolve(row)
		assert.ErrorIs(t, err, ErrNoSuchRow, "row %d", row)
	}
}

func TestSession_FilteredRowsResolveByFirstName(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, "Ann", "1", "Bob", "2", "Ann", "3")

	s.SetFilter("ANN")
	assert.Equal(t, []string{"Ann", "Ann"}, rowNames(s.Rows()))

	// Both filtered rows name "Ann", so both resolve to the first one.
	first, err := s.Resolve(1)
	require.NoError(t, err)
	second, err := s.Resolve(2)
	require.NoError(t, err)
	assert.Equal(t, 0, first)
	assert.Equal(t, 0, second)

	_, err = s.Edit(ctx, 2, "Ann", "10")
	require.NoError(t, err)
	records := s.Store().Records()
	assert.Equal(t, "10", records[0].Debt.String())
	assert.Equal(t, "3", records[2].Debt.String())

	s.SetFilter("")
	assert.Len(t, s.Rows(), 3)
}

func TestSession_IncreaseDecrease(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, "Ann", "0.5", "Bob", "2")

	s.SetFilter("bob")
	record, changed, err := s.Increase(ctx, 1)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "3", record.Debt.String())

	s.SetFilter("")
	record, changed, err = s.Decrease(ctx, 1)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, record.Debt.IsZero())

	_, changed, err = s.Decrease(ctx, 1)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSession_DeleteNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, "Ann", "1", "Bob", "2")

	_, err := s.ConfirmDelete(ctx)
	require.ErrorIs(t, err, ErrNoPendingDelete)

	question, err := s.RequestDelete(1)
	require.NoError(t, err)
	assert.Equal(t, "Are you sure you want to delete Bob and their debt of 2.00 euros?", question)
	assert.True(t, s.DeletePending())
	assert.Equal(t, 2, s.Store().Len(), "nothing removed before confirmation")

	assert.True(t, s.CancelDelete())
	assert.False(t, s.DeletePending())
	assert.Equal(t, 2, s.Store().Len())

	_, err = s.RequestDelete(1)
	require.NoError(t, err)
	removed, err := s.ConfirmDelete(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bob", removed.Name)
	assert.Equal(t, []string{"Ann"}, rowNames(s.Rows()))

	_, err = s.RequestDelete(5)
	require.ErrorIs(t, err, ledger.ErrIndexOutOfRange)
}

func TestSession_ResolveName(t *testing.T) {
	s := newTestSession(t, "Ann", "1", "Bob", "2", "Bob", "3")

	index, err := s.ResolveName("Bob")
	require.NoError(t, err)
	assert.Equal(t, 1, index)

	_, err = s.ResolveName("Zed")
	assert.ErrorIs(t, err, ErrNoSuchRow)
}

func TestSession_ResolveTarget(t *testing.T) {
	s := newTestSession(t, "Ann", "1", "Bob", "2")

	index, err := s.ResolveTarget(2, "Ann")
	require.NoError(t, err)
	assert.Equal(t, 1, index, "row wins over name")

	index, err = s.ResolveTarget(0, "Ann")
	require.NoError(t, err)
	assert.Equal(t, 0, index)

	_, err = s.ResolveTarget(0, "")
	assert.ErrorIs(t, err, ErrNoSuchRow)
}
