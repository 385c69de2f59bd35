/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

const (
	schemaLedger = `
	-- Key/value snapshot table, one row per persisted key (users, lastActiveUser)
	CREATE TABLE IF NOT EXISTS ledger_snapshot (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Journal Table (Audit Trail - one row per mutation)
	CREATE TABLE IF NOT EXISTS ledger_journal (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		name TEXT NOT NULL,
		debt TEXT NOT NULL,
		delta TEXT NOT NULL,
		record_index INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ledger_journal_created_at ON ledger_journal(created_at);
	CREATE INDEX IF NOT EXISTS idx_ledger_journal_name ON ledger_journal(name);
	`

	// Snapshot queries
	queryGetSnapshotValues = `
		SELECT key, value
		FROM ledger_snapshot
		WHERE key IN (?, ?)`

	queryUpsertSnapshotValue = `
		INSERT INTO ledger_snapshot (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`

	// Journal queries
	queryInsertJournalEntry = `
		INSERT INTO ledger_journal (id, action, name, debt, delta, record_index, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	queryGetJournal = `
		SELECT id, action, name, debt, delta, record_index, created_at
		FROM ledger_journal
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?`
)
