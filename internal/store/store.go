// Package store owns the authoritative transaction list and the
// append-only activity log, persisting both through the key-value
// collaborator. All mutations go through here: each one persists
// synchronously, appends exactly one activity entry, and signals
// listeners to re-derive.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dompet/internal/core"
	"dompet/internal/events"
	"dompet/internal/format"
	"dompet/internal/kv"
)

// Persistence keys, kept from the original data set so existing
// payloads keep loading.
const (
	TransactionsKey = "expense_tracker_transactions"
	ActivitiesKey   = "expense_tracker_activities"
	ThemeKey        = "expense_tracker_theme"
)

const (
	confirmDelete   = "Are you sure you want to delete this transaction?"
	confirmClearLog = "Are you sure you want to clear all activity history? This action cannot be undone."
)

var (
	ErrNotFound     = errors.New("transaction not found")
	ErrInvalidTheme = errors.New("invalid theme")
)

// Confirmer approves destructive actions. Declining is a no-op
// cancellation, never an error.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Notifier is pinged after every mutation so the derivation pipeline
// can refresh without polling.
type Notifier interface {
	Notify()
}

// TransactionInput carries the user-supplied fields of a transaction.
// Identity and timestamps are assigned by the Store, never the caller.
type TransactionInput struct {
	Date        core.Date
	Description string
	Kind        core.Kind
	Amount      core.Money
}

type Store struct {
	mu        sync.Mutex
	kv        kv.Store
	formatter *format.Formatter
	publisher *events.Publisher
	notifier  Notifier
	now       func() time.Time

	transactions []core.Transaction
	activities   []core.ActivityEntry
	lastID       int64
}

// New creates a Store over the given persistence backend. The
// publisher may be nil when no broker is configured.
func New(backend kv.Store, formatter *format.Formatter, publisher *events.Publisher) *Store {
	return &Store{
		kv:        backend,
		formatter: formatter,
		publisher: publisher,
		now:       time.Now,
	}
}

// SetNotifier wires the refresh listener. Call before serving.
func (s *Store) SetNotifier(n Notifier) {
	s.notifier = n
}

// Load reads both collections from the persistence backend. Absent or
// unparsable payloads initialize empty collections; absence of data is
// not an error.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := loadSlice[core.Transaction](ctx, s.kv, TransactionsKey)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	activities, err := loadSlice[core.ActivityEntry](ctx, s.kv, ActivitiesKey)
	if err != nil {
		return fmt.Errorf("load activity log: %w", err)
	}

	s.transactions = transactions
	s.activities = activities
	s.lastID = 0
	for _, t := range transactions {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	for _, a := range activities {
		if a.ID > s.lastID {
			s.lastID = a.ID
		}
	}

	slog.InfoContext(ctx, "Store loaded",
		"transactions", len(transactions),
		"activities", len(activities))
	return nil
}

// loadSlice reads and decodes one persisted collection. Corrupt
// payloads degrade to an empty collection rather than failing.
func loadSlice[T any](ctx context.Context, backend kv.Store, key string) ([]T, error) {
	raw, ok, err := backend.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.WarnContext(ctx, "Discarding unparsable persisted data",
			"key", key, "error", err)
		return nil, nil
	}
	return items, nil
}

// Transactions returns a snapshot copy in insertion order.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Activities returns a snapshot copy, newest first.
func (s *Store) Activities() []core.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.ActivityEntry, len(s.activities))
	copy(out, s.activities)
	return out
}

// Add validates the input, assigns a creation-timestamp id and
// CreatedAt, appends, persists, and logs an Added activity.
func (s *Store) Add(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t := core.Transaction{
		ID:          s.nextID(),
		Date:        in.Date,
		Description: in.Description,
		Kind:        in.Kind,
		AmountCents: in.Amount.Cents,
		CreatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if t.AmountCents == 0 {
		slog.WarnContext(ctx, "Transaction stored with zero amount",
			"id", t.ID, "description", t.Description)
	}

	s.transactions = append(s.transactions, t)
	if err := s.persistTransactions(ctx); err != nil {
		return core.Transaction{}, err
	}
	s.logActivity(ctx, core.ActionAdded, s.details(t))
	s.signal()

	return t, nil
}

// Update merges the input over the record with the given id, sets
// UpdatedAt, persists, and logs an Updated activity. Mutations are
// keyed by the immutable id, never by position.
func (s *Store) Update(ctx context.Context, id int64, in TransactionInput) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.Transaction{}, ErrNotFound
	}

	merged := s.transactions[i]
	merged.Date = in.Date
	merged.Description = in.Description
	merged.Kind = in.Kind
	merged.AmountCents = in.Amount.Cents
	merged.UpdatedAt = s.now()
	if err := merged.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.transactions[i] = merged
	if err := s.persistTransactions(ctx); err != nil {
		return core.Transaction{}, err
	}
	s.logActivity(ctx, core.ActionUpdated, s.details(merged))
	s.signal()

	return merged, nil
}

// Remove deletes the record with the given id after confirmation.
// A declined confirmation changes no state and reports removed=false.
func (s *Store) Remove(ctx context.Context, id int64, c Confirmer) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, ErrNotFound
	}
	if !c.Confirm(confirmDelete) {
		slog.InfoContext(ctx, "Delete cancelled", "id", id)
		return false, nil
	}

	deleted := s.transactions[i]
	s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
	if err := s.persistTransactions(ctx); err != nil {
		return false, err
	}
	s.logActivity(ctx, core.ActionDeleted, s.details(deleted))
	s.signal()

	return true, nil
}

// ClearActivityLog empties the log after confirmation and removes its
// persisted representation entirely. Clearing logs no activity of its
// own.
func (s *Store) ClearActivityLog(ctx context.Context, c Confirmer) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !c.Confirm(confirmClearLog) {
		slog.InfoContext(ctx, "Clear activity log cancelled")
		return false, nil
	}

	s.activities = nil
	if err := s.kv.Remove(ctx, ActivitiesKey); err != nil {
		return false, fmt.Errorf("remove activity log: %w", err)
	}
	s.signal()
	return true, nil
}

// Theme returns the persisted theme preference, defaulting to light.
func (s *Store) Theme(ctx context.Context) (string, error) {
	theme, ok, err := s.kv.Get(ctx, ThemeKey)
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	if !ok || (theme != "light" && theme != "dark") {
		return "light", nil
	}
	return theme, nil
}

// SetTheme persists the theme preference.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if theme != "light" && theme != "dark" {
		return ErrInvalidTheme
	}
	if err := s.kv.Set(ctx, ThemeKey, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// nextID derives an id from the current timestamp, bumped to stay
// strictly monotonic when two mutations land in the same millisecond.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) indexOf(id int64) int {
	for i, t := range s.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) details(t core.Transaction) string {
	return fmt.Sprintf("%s: %s - %s", t.Kind, t.Description, s.formatter.Currency(t.Amount()))
}

func (s *Store) persistTransactions(ctx context.Context) error {
	raw, err := json.Marshal(s.transactions)
	if err != nil {
		return fmt.Errorf("marshal transactions: %w", err)
	}
	if err := s.kv.Set(ctx, TransactionsKey, string(raw)); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	return nil
}

// logActivity prepends one entry (newest first), persists the log, and
// publishes the optional broker event. Log persistence failures are
// reported but never roll back the transaction mutation itself.
func (s *Store) logActivity(ctx context.Context, action core.Action, details string) {
	entry := core.ActivityEntry{
		ID:        s.nextID(),
		Timestamp: s.now(),
		Action:    action,
		Details:   details,
	}
	s.activities = append([]core.ActivityEntry{entry}, s.activities...)

	raw, err := json.Marshal(s.activities)
	if err != nil {
		slog.ErrorContext(ctx, "Marshal activity log failed", "error", err)
		return
	}
	if err := s.kv.Set(ctx, ActivitiesKey, string(raw)); err != nil {
		slog.ErrorContext(ctx, "Persist activity log failed", "error", err)
	}

	if err := s.publisher.PublishActivity(ctx, entry); err != nil {
		slog.WarnContext(ctx, "Publish activity event failed",
			"id", entry.ID, "error", err)
	}
}

func (s *Store) signal() {
	if s.notifier != nil {
		s.notifier.Notify()
	}
}
