// Package rowstore is an in-memory array field: an ordered list of row
// records with stable row IDs, an interaction pattern, and change events.
package rowstore

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/pixpilot/arrayrows/internal/actions"
	"github.com/pixpilot/arrayrows/internal/log"
	"github.com/pixpilot/arrayrows/internal/pubsub"
)

var (
	ErrIndexOutOfRange = errors.New("row index out of range")
	ErrNotEditable     = errors.New("array field is not editable")
	ErrMaxItems        = errors.New("array field is full")
)

// Change describes one mutation of the store.
type Change struct {
	Address string
	Index   int
	RowID   string
}

// Row is one record with its stable ID.
type Row struct {
	ID       string
	Value    any
	Disabled bool
}

// Store implements actions.ArrayField and actions.RecordWriter.
type Store struct {
	mu       sync.RWMutex
	address  string
	rows     []Row
	pattern  actions.Pattern
	maxItems int
	broker   *pubsub.Broker[Change]
}

// Option configures a Store.
type Option func(*Store)

// WithPattern sets the interaction pattern (default editable).
func WithPattern(p actions.Pattern) Option {
	return func(s *Store) { s.pattern = p }
}

// WithMaxItems caps the number of rows; 0 means unlimited.
func WithMaxItems(n int) Option {
	return func(s *Store) { s.maxItems = n }
}

// New creates a store at address seeded with values.
func New(address string, values []any, opts ...Option) *Store {
	s := &Store{
		address: address,
		pattern: actions.PatternEditable,
		broker:  pubsub.NewBroker[Change](),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rows = make([]Row, 0, len(values))
	for _, v := range values {
		s.rows = append(s.rows, Row{ID: uuid.NewString(), Value: v})
	}
	return s
}

// Broker exposes change events.
func (s *Store) Broker() *pubsub.Broker[Change] {
	return s.broker
}

// Close shuts down the change broker.
func (s *Store) Close() {
	s.broker.Close()
}

// Address returns the array field's address.
func (s *Store) Address() string {
	return s.address
}

// Len returns the row count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Value returns row i's record, or nil.
func (s *Store) Value(i int) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.rows) {
		return nil
	}
	return s.rows[i].Value
}

// Rows returns a snapshot of all rows.
func (s *Store) Rows() []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Values returns a snapshot of all records.
func (s *Store) Values() []any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]any, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.Value
	}
	return out
}

// Pattern returns the interaction pattern.
func (s *Store) Pattern() actions.Pattern {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pattern
}

// SetPattern changes the interaction pattern.
func (s *Store) SetPattern(p actions.Pattern) {
	s.mu.Lock()
	s.pattern = p
	s.mu.Unlock()
	s.broker.Publish(pubsub.UpdatedEvent, Change{Address: s.address, Index: -1})
}

// SetRowDisabled marks a single row's field disabled.
func (s *Store) SetRowDisabled(i int, disabled bool) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.rows) {
		s.mu.Unlock()
		return fmt.Errorf("disable row %d: %w", i, ErrIndexOutOfRange)
	}
	s.rows[i].Disabled = disabled
	id := s.rows[i].ID
	s.mu.Unlock()
	s.broker.Publish(pubsub.UpdatedEvent, Change{Address: s.address, Index: i, RowID: id})
	return nil
}

// Field returns the handle of row i.
func (s *Store) Field(i int) actions.Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.rows) {
		return nil
	}
	return rowField{
		disabled: s.rows[i].Disabled || s.pattern == actions.PatternDisabled,
		address:  fmt.Sprintf("%s.%d", s.address, i),
	}
}

type rowField struct {
	disabled bool
	address  string
}

func (f rowField) Disabled() bool  { return f.disabled }
func (f rowField) Address() string { return f.address }

// mutate runs fn under the write lock after the shared checks, then publishes.
func (s *Store) mutate(ctx context.Context, op string, event pubsub.EventType, fn func() (int, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.pattern != actions.PatternEditable {
		s.mu.Unlock()
		return fmt.Errorf("%s: %w", op, ErrNotEditable)
	}
	idx, err := fn()
	var id string
	if err == nil && idx >= 0 && idx < len(s.rows) {
		id = s.rows[idx].ID
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Debug(log.CatRows, "row operation", "address", s.address, "op", op, "index", idx)
	s.broker.Publish(event, Change{Address: s.address, Index: idx, RowID: id})
	return nil
}

func (s *Store) inRange(i int) error {
	if i < 0 || i >= len(s.rows) {
		return fmt.Errorf("index %d of %d: %w", i, len(s.rows), ErrIndexOutOfRange)
	}
	return nil
}

func (s *Store) hasRoom() error {
	if s.maxItems > 0 && len(s.rows) >= s.maxItems {
		return fmt.Errorf("%d rows: %w", s.maxItems, ErrMaxItems)
	}
	return nil
}

// MoveUp moves row i one place up. Row 0 wraps to the end.
func (s *Store) MoveUp(ctx context.Context, i int) error {
	return s.mutate(ctx, "move up", pubsub.MovedEvent, func() (int, error) {
		if err := s.inRange(i); err != nil {
			return 0, err
		}
		j := i - 1
		if j < 0 {
			j = len(s.rows) - 1
		}
		s.move(i, j)
		return j, nil
	})
}

// MoveDown moves row i one place down. The last row wraps to the top.
func (s *Store) MoveDown(ctx context.Context, i int) error {
	return s.mutate(ctx, "move down", pubsub.MovedEvent, func() (int, error) {
		if err := s.inRange(i); err != nil {
			return 0, err
		}
		j := i + 1
		if j >= len(s.rows) {
			j = 0
		}
		s.move(i, j)
		return j, nil
	})
}

// move relocates the row at from so it ends up at to.
func (s *Store) move(from, to int) {
	row := s.rows[from]
	s.rows = slices.Delete(s.rows, from, from+1)
	s.rows = slices.Insert(s.rows, to, row)
}

// Remove deletes row i.
func (s *Store) Remove(ctx context.Context, i int) error {
	return s.mutate(ctx, "remove", pubsub.DeletedEvent, func() (int, error) {
		if err := s.inRange(i); err != nil {
			return 0, err
		}
		s.rows = slices.Delete(s.rows, i, i+1)
		return i, nil
	})
}

// Insert places value at index i (0 <= i <= Len).
func (s *Store) Insert(ctx context.Context, i int, value any) error {
	return s.insert(ctx, value, func() int { return i })
}

// Push appends value. The end is read under the same lock as the insert.
func (s *Store) Push(ctx context.Context, value any) error {
	return s.insert(ctx, value, func() int { return len(s.rows) })
}

func (s *Store) insert(ctx context.Context, value any, at func() int) error {
	return s.mutate(ctx, "insert", pubsub.CreatedEvent, func() (int, error) {
		i := at()
		if i < 0 || i > len(s.rows) {
			return 0, fmt.Errorf("index %d of %d: %w", i, len(s.rows), ErrIndexOutOfRange)
		}
		if err := s.hasRoom(); err != nil {
			return 0, err
		}
		s.rows = slices.Insert(s.rows, i, Row{ID: uuid.NewString(), Value: value})
		return i, nil
	})
}

// Unshift prepends value.
func (s *Store) Unshift(ctx context.Context, value any) error {
	return s.Insert(ctx, 0, value)
}

// SetValue sets key inside row i's record. The record must be a map.
func (s *Store) SetValue(ctx context.Context, i int, key string, value any) error {
	return s.mutate(ctx, "set "+key, pubsub.UpdatedEvent, func() (int, error) {
		if err := s.inRange(i); err != nil {
			return 0, err
		}
		rec, ok := s.rows[i].Value.(map[string]any)
		if !ok {
			return 0, fmt.Errorf("row %d is %T, not a record", i, s.rows[i].Value)
		}
		next := maps.Clone(rec)
		if next == nil {
			next = map[string]any{}
		}
		next[key] = value
		s.rows[i].Value = next
		return i, nil
	})
}

var (
	_ actions.ArrayField   = (*Store)(nil)
	_ actions.RecordWriter = (*Store)(nil)
)
