package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"debt-ledger-go/internal/models"
	"debt-ledger-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func setupTestDb(t *testing.T) (*Service, func()) {
	service, err := NewService(context.Background(), models.DatabaseConfig{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	cleanup := func() {
		service.Close()
	}

	return service, cleanup
}

func TestNewService_InvalidConfig(t *testing.T) {
	ctx := context.Background()
	configs := []models.DatabaseConfig{
		{Path: "", MaxOpenConns: 1, PingTimeout: time.Second},
		{Path: ":memory:", MaxOpenConns: 0, PingTimeout: time.Second},
		{Path: ":memory:", MaxOpenConns: 1, MaxIdleConns: -1, PingTimeout: time.Second},
		{Path: ":memory:", MaxOpenConns: 1, PingTimeout: 0},
	}

	for i, cfg := range configs {
		if _, err := NewService(ctx, cfg); err == nil {
			t.Errorf("config %d: expected validation error, got nil", i)
		}
	}
}

func TestLoadSnapshot_Empty(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	_, err := service.LoadSnapshot(context.Background())
	if !errors.Is(err, store.ErrSnapshotNotFound) {
		t.Fatalf("Expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestSaveSnapshot_RoundTrip(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	ts := int64(1710504000000)
	snapshot := models.Snapshot{
		Users: []models.UserRecord{
			{Name: "Ann", Debt: decimal.RequireFromString("12.34"), LastUpdated: &ts},
			{Name: "Bob", Debt: decimal.RequireFromString("-2")},
		},
		LastActiveUser: "Ann",
	}

	if err := service.SaveSnapshot(ctx, snapshot); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	loaded, err := service.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if len(loaded.Users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(loaded.Users))
	}
	if loaded.Users[0].Name != "Ann" || !loaded.Users[0].Debt.Equal(snapshot.Users[0].Debt) {
		t.Errorf("Expected Ann 12.34, got %s %s", loaded.Users[0].Name, loaded.Users[0].Debt)
	}
	if loaded.Users[0].LastUpdated == nil || *loaded.Users[0].LastUpdated != ts {
		t.Errorf("Expected timestamp %d, got %v", ts, loaded.Users[0].LastUpdated)
	}
	if loaded.Users[1].LastUpdated != nil {
		t.Errorf("Expected no timestamp for Bob")
	}
	if loaded.LastActiveUser != "Ann" {
		t.Errorf("Expected last active Ann, got %q", loaded.LastActiveUser)
	}

	// Full overwrite: saving an empty ledger clears both keys.
	if err := service.SaveSnapshot(ctx, models.Snapshot{}); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	loaded, err = service.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(loaded.Users) != 0 || loaded.LastActiveUser != "" {
		t.Errorf("Expected empty snapshot, got %+v", loaded)
	}
}

func TestLoadSnapshot_Corrupt(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	if err := service.SetRaw(ctx, store.KeyUsers, "not json"); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}

	_, err := service.LoadSnapshot(ctx)
	if !errors.Is(err, store.ErrCorruptSnapshot) {
		t.Fatalf("Expected ErrCorruptSnapshot, got %v", err)
	}
}

func TestLoadSnapshot_LastActiveUserWithoutUsers(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	if err := service.SetRaw(ctx, store.KeyLastActiveUser, `"Ann"`); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}

	loaded, err := service.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.LastActiveUser != "Ann" || len(loaded.Users) != 0 {
		t.Errorf("Expected last active Ann and no users, got %+v", loaded)
	}
}

func TestJournal(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	entries := []models.JournalEntry{
		{Id: "e1", Action: models.ActionAdd, Name: "Ann", Debt: decimal.NewFromInt(5), Delta: decimal.Zero, Index: 0, CreatedAt: base},
		{Id: "e2", Action: models.ActionDecrease, Name: "Ann", Debt: decimal.NewFromInt(4), Delta: decimal.NewFromInt(-1), Index: 0, CreatedAt: base.Add(time.Minute)},
		{Id: "e3", Action: models.ActionDelete, Name: "Ann", Debt: decimal.NewFromInt(4), Delta: decimal.NewFromInt(-4), Index: 0, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		if err := service.RecordEntry(ctx, e); err != nil {
			t.Fatalf("RecordEntry failed: %v", err)
		}
	}

	// Duplicate ids are rejected by the primary key.
	if err := service.RecordEntry(ctx, entries[0]); err == nil {
		t.Errorf("Expected duplicate journal entry to fail")
	}

	got, err := service.GetJournal(ctx, 2, 0)
	if err != nil {
		t.Fatalf("GetJournal failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(got))
	}
	if got[0].Id != "e3" || got[1].Id != "e2" {
		t.Errorf("Expected newest first (e3, e2), got %s, %s", got[0].Id, got[1].Id)
	}
	if !got[1].Delta.Equal(decimal.NewFromInt(-1)) {
		t.Errorf("Expected delta -1, got %s", got[1].Delta)
	}
	if !got[0].CreatedAt.Equal(entries[2].CreatedAt) {
		t.Errorf("Expected created_at %v, got %v", entries[2].CreatedAt, got[0].CreatedAt)
	}

	all, err := service.GetJournal(ctx, 0, 0)
	if err != nil {
		t.Fatalf("GetJournal failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 entries without limit, got %d", len(all))
	}
}
