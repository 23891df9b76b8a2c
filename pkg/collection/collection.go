// Package collection implements an ordered collection controller: an
// in-memory ordered sequence of records reconciled against a persisted
// sort_order field in the record store.
//
// The controller applies reorders optimistically. The local sequence moves
// first, then one order write is issued per record whose position changed.
// If any write fails the optimistic state is discarded and the sequence is
// reloaded from the store, so the store always wins.
//
// Records carry a scope (projects use a single flat scope, skills are scoped
// by category) and positions are always scope-relative: after any successful
// reorder, the records of each scope hold a dense 0..N-1 permutation of
// sort orders. Deletes and cross-scope moves may leave gaps in the source
// scope; gaps are tolerated until the next reorder of that scope.
package collection

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ErrNotLoaded is returned by mutating operations before a successful Load.
var ErrNotLoaded = errors.New("collection not loaded")

// Item is a record that can live in an ordered collection. WithOrder returns
// a copy with the given position; implementations are value types, so the
// controller never mutates a caller's record in place.
type Item[T any] interface {
	Key() string
	Scope() string
	Order() int
	WithOrder(n int) T
}

// Backend is the persistence surface the controller drives. List must return
// items grouped by scope and position-ordered within each scope. UpdateOrder
// writes only the position of one item; Insert and Update write full records.
type Backend[T Item[T]] interface {
	List(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) (T, error)
	UpdateOrder(ctx context.Context, key string, order int) error
	Delete(ctx context.Context, key string) error
}

// State tracks where the controller is in its load/reorder cycle.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateReady
	StateReordering
	StateError
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateReordering:
		return "reordering"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Controller owns the ordered sequence for one owner's collection. A single
// mutex serializes every operation, so callers get one serialized section per
// collection instance.
type Controller[T Item[T]] struct {
	mu       sync.Mutex
	backend  Backend[T]
	validate func(T) error
	log      zerolog.Logger

	items []T
	state State
}

// NewController creates a controller over the given backend. validate may be
// nil; when set it runs before Create and Update and a failure keeps the
// backend untouched.
func NewController[T Item[T]](backend Backend[T], validate func(T) error, log zerolog.Logger) *Controller[T] {
	return &Controller[T]{
		backend:  backend,
		validate: validate,
		log:      log,
		state:    StateUnloaded,
	}
}

// Load fetches the collection from the backend, replacing any local state.
// A load failure leaves the controller in StateError; Load can be retried.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reload(ctx)
}

// reload is the shared fetch path for Load and for rollback after a failed
// write. Callers must hold c.mu.
func (c *Controller[T]) reload(ctx context.Context) error {
	c.state = StateLoading
	items, err := c.backend.List(ctx)
	if err != nil {
		c.items = nil
		c.state = StateError
		c.log.Error().Err(err).Msg("collection load failed")
		return fmt.Errorf("load collection: %w", err)
	}
	c.items = items
	c.state = StateReady
	return nil
}

// State returns the controller's current lifecycle state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Items returns a copy of the current sequence for rendering. Mutating the
// returned slice does not affect the controller.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Reorder moves the item at index from to index to. key must match the item
// currently at from; a mismatch means the caller's view is stale and the move
// is dropped as a no-op, as are out-of-range indexes. Moving an item onto its
// own position returns immediately with zero writes.
//
// The local sequence is respliced first, then one order write is issued for
// each item whose scope-relative position changed. All writes are attempted
// even after a failure so the batch settles before the rollback reload runs.
func (c *Controller[T]) Reorder(ctx context.Context, key string, from, to int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return ErrNotLoaded
	}
	if from < 0 || from >= len(c.items) || to < 0 || to >= len(c.items) {
		c.log.Warn().Int("from", from).Int("to", to).Int("len", len(c.items)).
			Msg("reorder with out-of-range index dropped")
		return nil
	}
	if c.items[from].Key() != key {
		c.log.Warn().Str("key", key).Int("from", from).
			Msg("reorder key does not match item at index, dropped")
		return nil
	}
	if from == to {
		return nil
	}

	c.state = StateReordering
	c.items = Splice(c.items, from, to)

	// Renumber scope-relative positions and write the ones that moved.
	var writeErr error
	scopePos := make(map[string]int)
	for i, item := range c.items {
		scope := item.Scope()
		pos := scopePos[scope]
		scopePos[scope] = pos + 1
		if item.Order() == pos {
			continue
		}
		c.items[i] = item.WithOrder(pos)
		if err := c.backend.UpdateOrder(ctx, item.Key(), pos); err != nil && writeErr == nil {
			writeErr = err
		}
	}

	if writeErr != nil {
		c.log.Error().Err(writeErr).Msg("reorder write failed, reloading from store")
		if rerr := c.reload(ctx); rerr != nil {
			return fmt.Errorf("reorder failed and reload failed: %w", errors.Join(writeErr, rerr))
		}
		return fmt.Errorf("persist reorder: %w", writeErr)
	}

	c.state = StateReady
	return nil
}

// Create validates the item, assigns it the next position in its scope and
// inserts it. Validation failures keep the backend untouched. The created
// item (with any backend-assigned fields) is appended to the end of its
// scope's run in the local sequence.
func (c *Controller[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return zero, ErrNotLoaded
	}
	if c.validate != nil {
		if err := c.validate(item); err != nil {
			return zero, err
		}
	}

	item = item.WithOrder(c.scopeCount(item.Scope()))
	created, err := c.backend.Insert(ctx, item)
	if err != nil {
		if rerr := c.reload(ctx); rerr != nil {
			return zero, fmt.Errorf("create failed and reload failed: %w", errors.Join(err, rerr))
		}
		return zero, fmt.Errorf("create item: %w", err)
	}
	c.insertLocal(created)
	return created, nil
}

// Update validates and persists changed fields of an existing item. The
// position is preserved unless the item moved to a different scope, in which
// case it is appended to the end of the target scope and the source scope
// keeps its gap.
func (c *Controller[T]) Update(ctx context.Context, item T) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return zero, ErrNotLoaded
	}
	if c.validate != nil {
		if err := c.validate(item); err != nil {
			return zero, err
		}
	}

	idx := c.indexOf(item.Key())
	if idx < 0 {
		return zero, fmt.Errorf("update item %s: not in collection", item.Key())
	}
	existing := c.items[idx]
	if item.Scope() == existing.Scope() {
		item = item.WithOrder(existing.Order())
	} else {
		item = item.WithOrder(c.scopeCount(item.Scope()))
	}

	updated, err := c.backend.Update(ctx, item)
	if err != nil {
		if rerr := c.reload(ctx); rerr != nil {
			return zero, fmt.Errorf("update failed and reload failed: %w", errors.Join(err, rerr))
		}
		return zero, fmt.Errorf("update item: %w", err)
	}

	if updated.Scope() == existing.Scope() {
		c.items[idx] = updated
	} else {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
		c.insertLocal(updated)
	}
	return updated, nil
}

// Delete removes the item. Remaining items keep their positions; the gap
// closes on the next reorder of the affected scope.
func (c *Controller[T]) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return ErrNotLoaded
	}
	idx := c.indexOf(key)
	if idx < 0 {
		return nil
	}
	if err := c.backend.Delete(ctx, key); err != nil {
		if rerr := c.reload(ctx); rerr != nil {
			return fmt.Errorf("delete failed and reload failed: %w", errors.Join(err, rerr))
		}
		return fmt.Errorf("delete item: %w", err)
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return nil
}

// scopeCount returns how many items currently live in the given scope.
// Callers must hold c.mu.
func (c *Controller[T]) scopeCount(scope string) int {
	n := 0
	for _, item := range c.items {
		if item.Scope() == scope {
			n++
		}
	}
	return n
}

// indexOf returns the index of the item with the given key, or -1.
// Callers must hold c.mu.
func (c *Controller[T]) indexOf(key string) int {
	for i, item := range c.items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

// insertLocal places an item after the last existing item of its scope,
// keeping scope runs contiguous. Callers must hold c.mu.
func (c *Controller[T]) insertLocal(item T) {
	last := -1
	for i, it := range c.items {
		if it.Scope() == item.Scope() {
			last = i
		}
	}
	if last < 0 || last == len(c.items)-1 {
		c.items = append(c.items, item)
		return
	}
	c.items = append(c.items[:last+1], append([]T{item}, c.items[last+1:]...)...)
}

// Splice returns a copy of items with the element at from moved to to,
// shifting the elements in between. Out-of-range indexes return the input
// unchanged.
func Splice[T any](items []T, from, to int) []T {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return items
	}
	out := make([]T, 0, len(items))
	out = append(out, items...)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]T{moved}, out[to:]...)...)
	return out
}
