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

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRecord is one tracked person and the amount they owe
type UserRecord struct {
	Name        string          `json:"name"`
	Debt        decimal.Decimal `json:"debt"`
	LastUpdated *int64          `json:"lastUpdated,omitempty"` // epoch milliseconds, nil for legacy records
}

// Clone returns a copy that shares no pointers with r
func (r UserRecord) Clone() UserRecord {
	out := r
	if r.LastUpdated != nil {
		ts := *r.LastUpdated
		out.LastUpdated = &ts
	}
	return out
}

// Snapshot is the persisted form of a ledger: every record plus the last active user name
type Snapshot struct {
	Users          []UserRecord
	LastActiveUser string
}

// Journal actions recorded for every successful mutation
const (
	ActionAdd      = "add"
	ActionEdit     = "edit"
	ActionIncrease = "increase"
	ActionDecrease = "decrease"
	ActionDelete   = "delete"
)

// JournalEntry represents one immutable ledger mutation (audit trail)
type JournalEntry struct {
	Id        string          `db:"id"`
	Action    string          `db:"action"`
	Name      string          `db:"name"`
	Debt      decimal.Decimal `db:"debt"`
	Delta     decimal.Decimal `db:"delta"`
	Index     int             `db:"record_index"`
	CreatedAt time.Time       `db:"created_at"`
}

// SortColumn names a sortable table column
type SortColumn string

const (
	SortByName SortColumn = "name"
	SortByDebt SortColumn = "debt"
)
