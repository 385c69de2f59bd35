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

// Package ledger owns the in-memory list of debtors and every mutation applied to it.
//
// A Store is not safe for concurrent use: callers run it from a single event
// loop, the same way a page handles one click at a time.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"debt-ledger-go/internal/models"
	"debt-ledger-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrIndexOutOfRange is returned when a caller passes an index that no record occupies.
var ErrIndexOutOfRange = errors.New("record index out of range")

// Config wires a Store to its collaborators. Every field is optional.
type Config struct {
	Snapshots store.SnapshotStore // persisted after every mutation
	Journal   store.Journal       // receives one entry per mutation
	Clock     func() time.Time    // defaults to time.Now
	OnChange  func()              // called after every mutation, persisted or not
	Language  language.Tag        // collation for name sorting, defaults to language.Und
}

// sortState remembers which direction the next sort on each column uses.
type sortState struct {
	nameAscending  bool
	debtDescending bool
}

// Store is the ordered list of debt records together with its view state
// (sort directions, last active user) and the backends it persists to.
type Store struct {
	records    []models.UserRecord
	lastActive string
	sort       sortState

	snapshots store.SnapshotStore
	journal   store.Journal
	clock     func() time.Time
	onChange  func()
	collator  *collate.Collator
	folder    cases.Caser
	lastStamp int64
}

// New returns an empty store. Use Open to also hydrate it from the snapshot store.
func New(cfg Config) *Store {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		records:   []models.UserRecord{},
		sort:      sortState{nameAscending: true, debtDescending: true},
		snapshots: cfg.Snapshots,
		journal:   cfg.Journal,
		clock:     clock,
		onChange:  cfg.OnChange,
		collator:  collate.New(cfg.Language),
		folder:    cases.Fold(),
	}
}

// Open creates a store and hydrates it from cfg.Snapshots.
// A missing or corrupt snapshot leaves the store empty; only backend failures are returned.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	s := New(cfg)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the store contents with the persisted snapshot.
func (s *Store) Load(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	snapshot, err := s.snapshots.LoadSnapshot(ctx)
	switch {
	case errors.Is(err, store.ErrSnapshotNotFound):
		zap.L().Info("No persisted ledger found, starting empty")
		return nil
	case errors.Is(err, store.ErrCorruptSnapshot):
		zap.L().Warn("Persisted ledger is unreadable, starting empty", zap.Error(err))
		s.Restore(models.Snapshot{LastActiveUser: snapshot.LastActiveUser})
		return nil
	case err != nil:
		return fmt.Errorf("unable to load snapshot: %w", err)
	}

	s.Restore(snapshot)
	zap.L().Info("Ledger loaded",
		zap.Int("records", len(s.records)),
		zap.String("last_active_user", s.lastActive))
	return nil
}

// Restore replaces the store contents with a snapshot without persisting.
func (s *Store) Restore(snapshot models.Snapshot) {
	s.records = make([]models.UserRecord, 0, len(snapshot.Users))
	for _, r := range snapshot.Users {
		s.records = append(s.records, r.Clone())
		if r.LastUpdated != nil && *r.LastUpdated > s.lastStamp {
			s.lastStamp = *r.LastUpdated
		}
	}
	s.lastActive = snapshot.LastActiveUser
}

// Snapshot returns a deep copy of the current state in its persisted shape.
func (s *Store) Snapshot() models.Snapshot {
	return models.Snapshot{
		Users:          s.Records(),
		LastActiveUser: s.lastActive,
	}
}

// AddRecord appends a new record. Unparsable debt input is stored as zero.
func (s *Store) AddRecord(ctx context.Context, name, rawDebt string) (models.UserRecord, error) {
	debt := ParseAmount(rawDebt)
	ts := s.now()
	record := models.UserRecord{Name: name, Debt: debt, LastUpdated: &ts}

	s.records = append(s.records, record)
	s.lastActive = name

	zap.L().Info("Record added",
		zap.String("name", name),
		zap.String("debt", debt.String()),
		zap.Int("index", len(s.records)-1))

	err := s.commit(ctx, models.ActionAdd, len(s.records)-1, record, decimal.Zero)
	return record.Clone(), err
}

// EditRecord overwrites name and debt of the record at index.
func (s *Store) EditRecord(ctx context.Context, index int, name, rawDebt string) (models.UserRecord, error) {
	if err := s.checkIndex(index); err != nil {
		return models.UserRecord{}, err
	}

	debt := ParseAmount(rawDebt)
	ts := s.now()
	record := &s.records[index]
	record.Name = name
	record.Debt = debt
	record.LastUpdated = &ts
	s.lastActive = name

	zap.L().Info("Record edited",
		zap.Int("index", index),
		zap.String("name", name),
		zap.String("debt", debt.String()))

	err := s.commit(ctx, models.ActionEdit, index, *record, decimal.Zero)
	return record.Clone(), err
}

// AdjustDebt adds delta to the debt of the record at index and reports whether anything changed.
//
// Increases are unbounded. A decrease on a debt that is already zero or below is
// skipped entirely. A decrease that would cross zero is not skipped: it is applied
// and clamped at zero, so 0.5 minus 1 becomes 0 and reports a change. Repeated
// decreases therefore always settle on exactly zero.
func (s *Store) AdjustDebt(ctx context.Context, index int, delta decimal.Decimal) (models.UserRecord, bool, error) {
	if err := s.checkIndex(index); err != nil {
		return models.UserRecord{}, false, err
	}

	record := &s.records[index]
	if delta.IsZero() || (delta.IsNegative() && !record.Debt.IsPositive()) {
		zap.L().Debug("Debt adjustment skipped",
			zap.Int("index", index),
			zap.String("debt", record.Debt.String()),
			zap.String("delta", delta.String()))
		return record.Clone(), false, nil
	}

	next := record.Debt.Add(delta)
	if delta.IsNegative() && next.IsNegative() {
		next = decimal.Zero
	}
	applied := next.Sub(record.Debt)

	ts := s.now()
	record.Debt = next
	record.LastUpdated = &ts
	s.lastActive = record.Name

	action := models.ActionIncrease
	if delta.IsNegative() {
		action = models.ActionDecrease
	}
	zap.L().Info("Debt adjusted",
		zap.Int("index", index),
		zap.String("name", record.Name),
		zap.String("delta", applied.String()),
		zap.String("debt", next.String()))

	err := s.commit(ctx, action, index, *record, applied)
	return record.Clone(), true, err
}

// IncreaseDebt adds one to the record at index.
func (s *Store) IncreaseDebt(ctx context.Context, index int) (models.UserRecord, bool, error) {
	return s.AdjustDebt(ctx, index, decimal.NewFromInt(1))
}

// DecreaseDebt subtracts one from the record at index, never going below zero.
func (s *Store) DecreaseDebt(ctx context.Context, index int) (models.UserRecord, bool, error) {
	return s.AdjustDebt(ctx, index, decimal.NewFromInt(-1))
}

// DeleteRecord removes the record at index. The last active user name is left as is,
// even when it referred to the deleted record.
func (s *Store) DeleteRecord(ctx context.Context, index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}

	removed := s.records[index]
	s.records = slices.Delete(s.records, index, index+1)

	zap.L().Info("Record deleted",
		zap.Int("index", index),
		zap.String("name", removed.Name),
		zap.String("debt", removed.Debt.String()))

	return s.commit(ctx, models.ActionDelete, index, removed, removed.Debt.Neg())
}

// TotalDebt sums every record's debt. It is recomputed on each call.
func (s *Store) TotalDebt() decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.records {
		total = total.Add(r.Debt)
	}
	return total
}

// SortBy reorders records in place. Name sorts start ascending, debt sorts start
// descending, and each call on the same column flips the direction.
func (s *Store) SortBy(column models.SortColumn) error {
	switch column {
	case models.SortByName:
		ascending := s.sort.nameAscending
		slices.SortFunc(s.records, func(a, b models.UserRecord) int {
			if ascending {
				return s.collator.CompareString(a.Name, b.Name)
			}
			return s.collator.CompareString(b.Name, a.Name)
		})
		s.sort.nameAscending = !ascending
	case models.SortByDebt:
		descending := s.sort.debtDescending
		slices.SortFunc(s.records, func(a, b models.UserRecord) int {
			if descending {
				return b.Debt.Cmp(a.Debt)
			}
			return a.Debt.Cmp(b.Debt)
		})
		s.sort.debtDescending = !descending
	default:
		return fmt.Errorf("unknown sort column: %q", column)
	}

	zap.L().Debug("Records sorted", zap.String("column", string(column)))
	s.notify()
	return nil
}

// Filter returns copies of the records whose name contains term, ignoring case.
// Relative order is preserved and the store itself is not modified.
func (s *Store) Filter(term string) []models.UserRecord {
	needle := s.folder.String(term)
	out := make([]models.UserRecord, 0, len(s.records))
	for _, r := range s.records {
		if strings.Contains(s.folder.String(r.Name), needle) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// IndexOfName returns the index of the first record called name, or -1.
// Rows of a filtered view are mapped back to the list this way, so records sharing
// a name always resolve to the first of them.
func (s *Store) IndexOfName(name string) int {
	return slices.IndexFunc(s.records, func(r models.UserRecord) bool {
		return r.Name == name
	})
}

// Records returns a copy of all records in their current order.
func (s *Store) Records() []models.UserRecord {
	out := make([]models.UserRecord, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// Record returns a copy of the record at index.
func (s *Store) Record(index int) (models.UserRecord, error) {
	if err := s.checkIndex(index); err != nil {
		return models.UserRecord{}, err
	}
	return s.records[index].Clone(), nil
}

// Len is the number of records, ignoring any filter.
func (s *Store) Len() int {
	return len(s.records)
}

// LastActiveUserName is the name of the most recently added or changed record.
// It may name a record that has since been deleted.
func (s *Store) LastActiveUserName() string {
	return s.lastActive
}

// Elapsed formats how long ago r was last updated, using the store clock.
func (s *Store) Elapsed(r models.UserRecord) string {
	return FormatElapsed(r.LastUpdated, s.clock())
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("%w: %d (have %d records)", ErrIndexOutOfRange, index, len(s.records))
	}
	return nil
}

// now returns the current time in epoch milliseconds, never earlier than a stamp already issued.
func (s *Store) now() int64 {
	ts := s.clock().UnixMilli()
	if ts < s.lastStamp {
		ts = s.lastStamp
	}
	s.lastStamp = ts
	return ts
}

// commit persists the full snapshot, appends a journal entry and notifies the listener.
// The in-memory mutation stays applied even when persistence fails.
func (s *Store) commit(ctx context.Context, action string, index int, record models.UserRecord, delta decimal.Decimal) error {
	defer s.notify()

	var err error
	if s.snapshots != nil {
		if saveErr := s.snapshots.SaveSnapshot(ctx, s.Snapshot()); saveErr != nil {
			zap.L().Error("Failed to persist snapshot", zap.String("action", action), zap.Error(saveErr))
			err = multierr.Append(err, fmt.Errorf("unable to persist snapshot: %w", saveErr))
		}
	}

	if s.journal != nil {
		entry := models.JournalEntry{
			Id:        uuid.New().String(),
			Action:    action,
			Name:      record.Name,
			Debt:      record.Debt,
			Delta:     delta,
			Index:     index,
			CreatedAt: s.clock().UTC(),
		}
		if journalErr := s.journal.RecordEntry(ctx, entry); journalErr != nil {
			zap.L().Error("Failed to record journal entry", zap.String("action", action), zap.Error(journalErr))
			err = multierr.Append(err, fmt.Errorf("unable to record journal entry: %w", journalErr))
		}
	}

	return err
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
