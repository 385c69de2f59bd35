// Package console is the terminal presentation layer over a ledger.Store.
//
// It owns what the user currently sees (the optional search filter, row
// numbering, a pending delete confirmation) and turns displayed row numbers
// back into store indexes. All state changes go through the store.
package console

import (
	"context"
	"errors"
	"fmt"

	"debt-ledger-go/internal/ledger"
	"debt-ledger-go/internal/models"

	"go.uber.org/zap"
)

var (
	ErrNoSuchRow       = errors.New("no such row")
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
)

// Session is the view state of one console. Rows are numbered from 1.
type Session struct {
	store         *ledger.Store
	filter        string
	pendingDelete *pendingDelete
}

type pendingDelete struct {
	index  int
	record models.UserRecord
}

func NewSession(store *ledger.Store) *Session {
	return &Session{store: store}
}

func (s *Session) Store() *ledger.Store {
	return s.store
}

// SetFilter changes the search term; an empty term shows every record.
func (s *Session) SetFilter(term string) {
	s.filter = term
	zap.L().Debug("Filter changed", zap.String("term", term))
}

func (s *Session) Filter() string {
	return s.filter
}

func (s *Session) Filtered() bool {
	return s.filter != ""
}

// Rows returns the records currently displayed, in display order.
func (s *Session) Rows() []models.UserRecord {
	if !s.Filtered() {
		return s.store.Records()
	}
	return s.store.Filter(s.filter)
}

// Resolve maps a displayed row number to a store index.
//
// Unfiltered rows map by position. Filtered rows are looked up by name, so when
// several records share a name the first one in the store is the one acted on.
func (s *Session) Resolve(row int) (int, error) {
	rows := s.Rows()
	if row < 1 || row > len(rows) {
		return -1, fmt.Errorf("%w: %d", ErrNoSuchRow, row)
	}
	if !s.Filtered() {
		return row - 1, nil
	}

	index := s.store.IndexOfName(rows[row-1].Name)
	if index < 0 {
		return -1, fmt.Errorf("%w: %d", ErrNoSuchRow, row)
	}
	return index, nil
}

// ResolveName returns the store index of the first record called name.
func (s *Session) ResolveName(name string) (int, error) {
	index := s.store.IndexOfName(name)
	if index < 0 {
		return -1, fmt.Errorf("%w: %q", ErrNoSuchRow, name)
	}
	return index, nil
}

func (s *Session) Add(ctx context.Context, name, rawDebt string) (models.UserRecord, error) {
	return s.store.AddRecord(ctx, name, rawDebt)
}

func (s *Session) Edit(ctx context.Context, row int, name, rawDebt string) (models.UserRecord, error) {
	index, err := s.Resolve(row)
	if err != nil {
		return models.UserRecord{}, err
	}
	return s.store.EditRecord(ctx, index, name, rawDebt)
}

func (s *Session) Increase(ctx context.Context, row int) (models.UserRecord, bool, error) {
	index, err := s.Resolve(row)
	if err != nil {
		return models.UserRecord{}, false, err
	}
	return s.store.IncreaseDebt(ctx, index)
}

func (s *Session) Decrease(ctx context.Context, row int) (models.UserRecord, bool, error) {
	index, err := s.Resolve(row)
	if err != nil {
		return models.UserRecord{}, false, err
	}
	return s.store.DecreaseDebt(ctx, index)
}

func (s *Session) Sort(column models.SortColumn) error {
	return s.store.SortBy(column)
}

// RequestDelete starts the two-step delete of the record at index and returns the
// confirmation question. Nothing is removed until ConfirmDelete.
func (s *Session) RequestDelete(index int) (string, error) {
	record, err := s.store.Record(index)
	if err != nil {
		return "", err
	}
	s.pendingDelete = &pendingDelete{index: index, record: record}
	return DeletePrompt(record), nil
}

// ConfirmDelete removes the record chosen by RequestDelete.
func (s *Session) ConfirmDelete(ctx context.Context) (models.UserRecord, error) {
	pending := s.pendingDelete
	if pending == nil {
		return models.UserRecord{}, ErrNoPendingDelete
	}
	s.pendingDelete = nil

	if err := s.store.DeleteRecord(ctx, pending.index); err != nil {
		return models.UserRecord{}, err
	}
	return pending.record, nil
}

// CancelDelete drops a pending delete and reports whether there was one.
func (s *Session) CancelDelete() bool {
	pending := s.pendingDelete != nil
	s.pendingDelete = nil
	return pending
}

func (s *Session) DeletePending() bool {
	return s.pendingDelete != nil
}

// DeletePrompt is the question asked before removing record.
func DeletePrompt(record models.UserRecord) string {
	return fmt.Sprintf("Are you sure you want to delete %s and their debt of %s euros?",
		record.Name, ledger.FormatAmount(record.Debt))
}

// ResolveTarget picks a record either by displayed row (when row > 0) or by name.
func (s *Session) ResolveTarget(row int, name string) (int, error) {
	if row > 0 {
		return s.Resolve(row)
	}
	if name != "" {
		return s.ResolveName(name)
	}
	return -1, fmt.Errorf("%w: give a row number or a user name", ErrNoSuchRow)
}
