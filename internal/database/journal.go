package database

import (
	"context"
	"database/sql"
	"fmt"

	"debt-ledger-go/internal/models"

	"go.uber.org/zap"
)

func (s *Service) RecordEntry(ctx context.Context, entry models.JournalEntry) error {
	_, err := s.db.ExecContext(ctx, queryInsertJournalEntry,
		entry.Id,
		entry.Action,
		entry.Name,
		entry.Debt.String(),
		entry.Delta.String(),
		entry.Index,
		entry.CreatedAt.UTC(),
	)
	if err != nil {
		zap.L().Error("Failed to insert journal entry",
			zap.String("id", entry.Id),
			zap.String("action", entry.Action),
			zap.Error(err))
		return fmt.Errorf("unable to insert journal entry: %w", err)
	}
	return nil
}

// GetJournal returns journal entries newest first. A non-positive limit returns everything.
func (s *Service) GetJournal(ctx context.Context, limit, offset int) ([]models.JournalEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, queryGetJournal, limit, offset)
	if err != nil {
		zap.L().Error("Failed to query journal", zap.Error(err))
		return nil, fmt.Errorf("unable to query journal: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.Id, &e.Action, &e.Name, &e.Debt, &e.Delta, &e.Index, &e.CreatedAt); err != nil {
			zap.L().Error("Failed to scan journal row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan journal row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}

	zap.L().Debug("Retrieved journal", zap.Int("count", len(entries)))
	return entries, nil
}
