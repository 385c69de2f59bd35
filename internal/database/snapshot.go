package database

import (
	"context"
	"database/sql"
	"fmt"

	"debt-ledger-go/internal/models"
	"debt-ledger-go/internal/store"

	"go.uber.org/zap"
)

// LoadSnapshot reads both snapshot keys. Decoding rules live in store.DecodeSnapshot.
func (s *Service) LoadSnapshot(ctx context.Context) (models.Snapshot, error) {
	zap.L().Debug("Loading ledger snapshot")

	rows, err := s.db.QueryContext(ctx, queryGetSnapshotValues, store.KeyUsers, store.KeyLastActiveUser)
	if err != nil {
		zap.L().Error("Failed to query snapshot", zap.Error(err))
		return models.Snapshot{}, fmt.Errorf("unable to query snapshot: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	values := make(map[string]string, 2)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			zap.L().Error("Failed to scan snapshot row", zap.Error(err))
			return models.Snapshot{}, fmt.Errorf("unable to scan snapshot row: %w", err)
		}
		values[key] = value
	}

	// Check for errors during iteration
	if err := rows.Err(); err != nil {
		zap.L().Error("Error during snapshot row iteration", zap.Error(err))
		return models.Snapshot{}, fmt.Errorf("error iterating snapshot rows: %w", err)
	}

	return store.DecodeSnapshot(values)
}

// SaveSnapshot overwrites both snapshot keys in a single transaction.
func (s *Service) SaveSnapshot(ctx context.Context, snapshot models.Snapshot) error {
	encoded, err := store.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("unable to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			zap.L().Warn("Failed to rollback snapshot transaction", zap.Error(err))
		}
	}()

	for _, key := range []string{store.KeyUsers, store.KeyLastActiveUser} {
		if _, err := tx.ExecContext(ctx, queryUpsertSnapshotValue, key, encoded[key]); err != nil {
			zap.L().Error("Failed to write snapshot key", zap.String("key", key), zap.Error(err))
			return fmt.Errorf("unable to write snapshot key %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("unable to commit snapshot: %w", err)
	}

	zap.L().Debug("Ledger snapshot saved",
		zap.Int("records", len(snapshot.Users)),
		zap.String("last_active_user", snapshot.LastActiveUser))
	return nil
}

// SetRaw writes a raw snapshot value, bypassing the codec.
// Used to import data exported from another copy of the ledger.
func (s *Service) SetRaw(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, queryUpsertSnapshotValue, key, value); err != nil {
		return fmt.Errorf("unable to write snapshot key %s: %w", key, err)
	}
	return nil
}
