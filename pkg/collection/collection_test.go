package collection_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savanth/folio/pkg/collection"
)

// card is a minimal collection item: one key, one scope, one position.
type card struct {
	id    string
	group string
	pos   int
}

func (c card) Key() string          { return c.id }
func (c card) Scope() string        { return c.group }
func (c card) Order() int           { return c.pos }
func (c card) WithOrder(n int) card { c.pos = n; return c }

type orderWrite struct {
	key   string
	order int
}

// fakeBackend records every call and keeps a persisted copy of the items.
// UpdateOrder failures can be injected per key; a failed write is recorded
// but not applied, like a store whose statement was rejected.
type fakeBackend struct {
	items       []card
	orderWrites []orderWrite
	inserts     int
	updates     int
	deletes     int
	listCalls   int

	failOrder map[string]error
	listErr   error
	insertErr error
	deleteErr error
}

func (b *fakeBackend) List(ctx context.Context) ([]card, error) {
	b.listCalls++
	if b.listErr != nil {
		return nil, b.listErr
	}
	out := make([]card, len(b.items))
	copy(out, b.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].group != out[j].group {
			return out[i].group < out[j].group
		}
		return out[i].pos < out[j].pos
	})
	return out, nil
}

func (b *fakeBackend) Insert(ctx context.Context, item card) (card, error) {
	b.inserts++
	if b.insertErr != nil {
		return card{}, b.insertErr
	}
	b.items = append(b.items, item)
	return item, nil
}

func (b *fakeBackend) Update(ctx context.Context, item card) (card, error) {
	b.updates++
	for i := range b.items {
		if b.items[i].id == item.id {
			b.items[i] = item
			return item, nil
		}
	}
	return card{}, fmt.Errorf("update %s: not found", item.id)
}

func (b *fakeBackend) UpdateOrder(ctx context.Context, key string, order int) error {
	b.orderWrites = append(b.orderWrites, orderWrite{key: key, order: order})
	if err := b.failOrder[key]; err != nil {
		return err
	}
	for i := range b.items {
		if b.items[i].id == key {
			b.items[i].pos = order
			return nil
		}
	}
	return fmt.Errorf("order %s: not found", key)
}

func (b *fakeBackend) Delete(ctx context.Context, key string) error {
	b.deletes++
	if b.deleteErr != nil {
		return b.deleteErr
	}
	for i := range b.items {
		if b.items[i].id == key {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func newTestController(b *fakeBackend, validate func(card) error) *collection.Controller[card] {
	return collection.NewController[card](b, validate, zerolog.Nop())
}

func deck(ids ...string) []card {
	out := make([]card, len(ids))
	for i, id := range ids {
		out[i] = card{id: id, pos: i}
	}
	return out
}

func keys(items []card) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.id
	}
	return out
}

func TestControllerLoad(t *testing.T) {
	backend := &fakeBackend{items: deck("a", "b", "c")}
	ctrl := newTestController(backend, nil)

	assert.Equal(t, collection.StateUnloaded, ctrl.State())

	err := ctrl.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, collection.StateReady, ctrl.State())
	assert.Equal(t, []string{"a", "b", "c"}, keys(ctrl.Items()))
}

func TestControllerLoadFailure(t *testing.T) {
	backend := &fakeBackend{listErr: errors.New("connection refused")}
	ctrl := newTestController(backend, nil)

	err := ctrl.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, collection.StateError, ctrl.State())

	// A failed load is retryable.
	backend.listErr = nil
	backend.items = deck("a")
	require.NoError(t, ctrl.Load(context.Background()))
	assert.Equal(t, collection.StateReady, ctrl.State())
}

func TestControllerNotLoaded(t *testing.T) {
	backend := &fakeBackend{items: deck("a")}
	ctrl := newTestController(backend, nil)

	err := ctrl.Reorder(context.Background(), "a", 0, 0)
	assert.ErrorIs(t, err, collection.ErrNotLoaded)

	_, err = ctrl.Create(context.Background(), card{id: "x"})
	assert.ErrorIs(t, err, collection.ErrNotLoaded)

	assert.Zero(t, backend.inserts)
	assert.Empty(t, backend.orderWrites)
}

func TestControllerCreateAppends(t *testing.T) {
	backend := &fakeBackend{items: deck("a", "b")}
	ctrl := newTestController(backend, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	created, err := ctrl.Create(context.Background(), card{id: "c"})
	require.NoError(t, err)
	assert.Equal(t, 2, created.pos, "new item goes at the end of its scope")
	assert.Equal(t, []string{"a", "b", "c"}, keys(ctrl.Items()))
	assert.Equal(t, 1, backend.inserts)
}

func TestControllerCreateAppendsPerScope(t *testing.T) {
	backend := &fakeBackend{items: []card{
		{id: "f1", group: "frontend", pos: 0},
		{id: "f2", group: "frontend", pos: 1},
		{id: "b1", group: "backend", pos: 0},
	}}
	ctrl := newTestController(backend, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	created, err := ctrl.Create(context.Background(), card{id: "b2", group: "backend"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.pos, "position counts only items in the same scope")
}

func TestControllerCreateValidationRejected(t *testing.T) {
	backend := &fakeBackend{items: deck("a")}
	ctrl := newTestController(backend, func(c card) error {
		if c.id == "bad" {
			return errors.New("invalid card")
		}
		return nil
	})
	require.NoError(t, ctrl.Load(context.Background()))

	_, err := ctrl.Create(context.Background(), card{id: "bad"})
	require.Error(t, err)
	assert.Zero(t, backend.inserts, "validation failure must not reach the backend")
	assert.Equal(t, []string{"a"}, keys(ctrl.Items()))
}

func TestControllerReorderIdentity(t *testing.T) {
	backend := &fakeBackend{items: deck("a", "b", "c")}
	ctrl := newTestController(backend, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	require.NoError(t, ctrl.Reorder(context.Background(), "b", 1, 1))
	assert.Empty(t, backend.orderWrites, "moving onto own position writes nothing")
	assert.Equal(t, []string{"a", "b", "c"}, keys(ctrl.Items()))
}

func TestControllerReorderGuards(t *testing.T) {
	backend := &fakeBackend{items: deck("a", "b", "c")}
	ctrl := newTestController(backend, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	t.Run("OutOfRange", func(t *testing.T) {
		require.NoError(t, ctrl.Reorder(context.Background(), "a", 0, 7))
		require.NoError(t, ctrl.Reorder(context.Background(), "a", -1, 1))
		assert.Empty(t, backend.orderWrites)
	})

	t.Run("StaleKey", func(t *testing.T) {
		// Caller thinks "c" sits at index 0; their view is stale.
		require.NoError(t, ctrl.Reorder(context.Background(), "c", 0, 2))
		assert.Empty(t, backend.orderWrites)
		assert.Equal(t, []string{"a", "b", "c"}, keys(ctrl.Items()))
	})
}

func TestControllerReorderWritesOnlyChanged(t *testing.T) {
	backend := &fakeBackend{items: deck("a", "b", "c", "d")}
	ctrl := newTestController(backend, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	// [a b c d] -> [a c b d]: only b and c change position.
	require.NoError(t, ctrl.Reorder(context.Background(), "c", 2, 1))

	assert.Equal(t, []string{"a", "c", "b", "d"}, keys(ctrl.Items()))
	assert.ElementsMatch(t, []orderWrite{
		{key: "c", order: 1},
		{key: "b", order: 2},
	}, backend.orderWrites)
}

func TestControllerReorderRotation(t *testing.T) {
	backend := &fakeBackend{items: deck("a", "b", "c")}
	ctrl := newTestController(backend, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	// Head to tail: every position shifts, so all three are written.
	require.NoError(t, ctrl.Reorder(context.Background(), "a", 0, 2))

	assert.Equal(t, []string{"b", "c", "a"}, keys(ctrl.Items()))
	assert.Len(t, backend.orderWrites, 3)
	assert.Equal(t, collection.StateReady, ctrl.State())

	persisted, err := backend.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, keys(persisted), keys(ctrl.Items()))
}

func TestControllerReorderScoped(t *testing.T) {
	backend := &fakeBackend{items: []card{
		{id: "f1", group: "frontend", pos: 0},
		{id: "f2", group: "frontend", pos: 1},
		{id: "f3", group: "frontend", pos: 2},
		{id: "b1", group: "backend", pos: 0},
		{id: "b2", group: "backend", pos: 1},
	}}
	ctrl := newTestController(backend, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	// After load the sequence is backend first (scope sort), then frontend.
	require.Equal(t, []string{"b1", "b2", "f1", "f2", "f3"}, keys(ctrl.Items()))

	// Move f3 to the front of the frontend run. Backend positions must not
	// be touched.
	require.NoError(t, ctrl.Reorder(context.Background(), "f3", 4, 2))

	assert.Equal(t, []string{"b1", "b2", "f3", "f1", "f2"}, keys(ctrl.Items()))
	assert.ElementsMatch(t, []orderWrite{
		{key: "f3", order: 0},
		{key: "f1", order: 1},
		{key: "f2", order: 2},
	}, backend.orderWrites)
}

func TestControllerReorderRollback(t *testing.T) {
	backend := &fakeBackend{
		items:     deck("a", "b", "c", "d", "e"),
		failOrder: map[string]error{"d": errors.New("write rejected")},
	}
	ctrl := newTestController(backend, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	err := ctrl.Reorder(context.Background(), "a", 0, 4)
	require.Error(t, err)
	assert.ErrorContains(t, err, "write rejected")

	// The batch settles before rollback: every changed position was
	// attempted, including the ones after the failure.
	assert.Len(t, backend.orderWrites, 5)

	// After rollback the controller mirrors whatever the store now holds.
	persisted, err := backend.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, keys(persisted), keys(ctrl.Items()))
	assert.Equal(t, collection.StateReady, ctrl.State())
}

func TestControllerReorderRollbackReloadFails(t *testing.T) {
	backend := &fakeBackend{
		items:     deck("a", "b", "c"),
		failOrder: map[string]error{"b": errors.New("write rejected")},
	}
	ctrl := newTestController(backend, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	backend.listErr = errors.New("connection lost")
	err := ctrl.Reorder(context.Background(), "a", 0, 2)
	require.Error(t, err)
	assert.ErrorContains(t, err, "write rejected")
	assert.ErrorContains(t, err, "connection lost")
	assert.Equal(t, collection.StateError, ctrl.State())
}

func TestControllerUpdatePreservesPosition(t *testing.T) {
	backend := &fakeBackend{items: deck("a", "b", "c")}
	ctrl := newTestController(backend, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	updated, err := ctrl.Update(context.Background(), card{id: "b", pos: 99})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.pos, "content edits keep the current position")
	assert.Equal(t, []string{"a", "b", "c"}, keys(ctrl.Items()))
}

func TestControllerUpdateScopeChangeAppends(t *testing.T) {
	backend := &fakeBackend{items: []card{
		{id: "f1", group: "frontend", pos: 0},
		{id: "f2", group: "frontend", pos: 1},
		{id: "b1", group: "backend", pos: 0},
	}}
	ctrl := newTestController(backend, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	// Move f1 into the backend scope: it lands at the end of that scope
	// and the frontend run keeps its gap until the next reorder.
	updated, err := ctrl.Update(context.Background(), card{id: "f1", group: "backend"})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.pos)

	var frontend []string
	for _, item := range ctrl.Items() {
		if item.group == "frontend" {
			frontend = append(frontend, item.id)
			assert.Equal(t, 1, item.pos, "remaining frontend item keeps its old position")
		}
	}
	assert.Equal(t, []string{"f2"}, frontend)
}

func TestControllerDeleteLeavesGap(t *testing.T) {
	backend := &fakeBackend{items: deck("a", "b", "c")}
	ctrl := newTestController(backend, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	require.NoError(t, ctrl.Delete(context.Background(), "b"))

	items := ctrl.Items()
	assert.Equal(t, []string{"a", "c"}, keys(items))
	assert.Equal(t, 2, items[1].pos, "no renumbering on delete")
	assert.Empty(t, backend.orderWrites)

	t.Run("UnknownKeyIsNoOp", func(t *testing.T) {
		require.NoError(t, ctrl.Delete(context.Background(), "zzz"))
		assert.Equal(t, 1, backend.deletes)
	})
}

func TestControllerCreateFailureReloads(t *testing.T) {
	backend := &fakeBackend{items: deck("a"), insertErr: errors.New("disk full")}
	ctrl := newTestController(backend, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	_, err := ctrl.Create(context.Background(), card{id: "b"})
	require.Error(t, err)
	assert.Equal(t, []string{"a"}, keys(ctrl.Items()))
	assert.Equal(t, collection.StateReady, ctrl.State())
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name     string
		in       []string
		from, to int
		want     []string
	}{
		{"HeadToTail", []string{"a", "b", "c"}, 0, 2, []string{"b", "c", "a"}},
		{"TailToHead", []string{"a", "b", "c"}, 2, 0, []string{"c", "a", "b"}},
		{"Adjacent", []string{"a", "b", "c"}, 1, 2, []string{"a", "c", "b"}},
		{"Identity", []string{"a", "b", "c"}, 1, 1, []string{"a", "b", "c"}},
		{"FromOutOfRange", []string{"a", "b"}, 5, 0, []string{"a", "b"}},
		{"ToOutOfRange", []string{"a", "b"}, 0, -1, []string{"a", "b"}},
		{"SingleElement", []string{"a"}, 0, 0, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collection.Splice(tt.in, tt.from, tt.to)
			assert.Equal(t, tt.want, got)
		})
	}
}
