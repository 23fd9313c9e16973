package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"storefront/internal/application/state"
	cartdom "storefront/internal/domain/cart"
	identitydom "storefront/internal/domain/identity"
	productdom "storefront/internal/domain/product"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type memLocal struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemLocal() *memLocal { return &memLocal{data: map[string]string{}} }

func (m *memLocal) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memLocal) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memLocal) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memLocal) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// recordingCarts writes a fixed cart into the slice, like CartUsecase.FetchCart does.
type recordingCarts struct {
	mu    sync.Mutex
	store *state.Store
	uids  []string
	gate  chan struct{}
	err   error
}

func (c *recordingCarts) FetchCart(ctx context.Context, uid string) ([]cartdom.Line, error) {
	if c.gate != nil {
		select {
		case <-c.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c.mu.Lock()
	c.uids = append(c.uids, uid)
	c.mu.Unlock()
	if c.err != nil {
		c.store.Cart.Reject(c.err.Error())
		return nil, c.err
	}
	items := []cartdom.Line{{Product: productdom.Product{ID: "p-" + uid}, Quantity: 1}}
	c.store.Cart.Fulfil(items)
	return items, nil
}

func (c *recordingCarts) calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.uids...)
}

type fixture struct {
	notifier *identitydom.Notifier
	local    *memLocal
	store    *state.Store
	carts    *recordingCarts
	p        *Propagator
}

func newFixture() *fixture {
	f := &fixture{
		notifier: identitydom.NewNotifier(),
		local:    newMemLocal(),
		store:    state.NewStore(),
	}
	f.carts = &recordingCarts{store: f.store}
	f.p = NewPropagator(f.notifier, f.local, f.store, f.carts, nil)
	return f
}

func TestPropagator_SignInMergesFavoritesAndFetchesCart(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.local.Set(context.Background(), identitydom.LocalRecordKey,
		`{"uid":"u1","email":"a@example.com","favorites":["p1","p2"]}`))
	require.NoError(t, f.p.Start(context.Background()))

	f.notifier.Publish(&identitydom.Identity{UID: "u1", Email: "a@example.com", DisplayName: "A"})
	f.p.Stop()

	u := f.store.Auth.User()
	require.NotNil(t, u)
	assert.Equal(t, "A", u.DisplayName)
	assert.Equal(t, []string{"p1", "p2"}, u.Favorites)

	raw, ok, _ := f.local.Get(context.Background(), identitydom.LocalRecordKey)
	require.True(t, ok)
	stored, err := identitydom.DecodeRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, "A", stored.DisplayName)
	assert.Equal(t, []string{"p1", "p2"}, stored.Favorites)

	assert.Equal(t, []string{"u1"}, f.carts.calls())
	assert.Len(t, f.store.Cart.Items(), 1)
}

func TestPropagator_HydratesFromLocalRecord(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.local.Set(context.Background(), identitydom.LocalRecordKey, `{"uid":"u1","favorites":["x"]}`))

	require.NoError(t, f.p.Start(context.Background()))
	defer f.p.Stop()

	u := f.store.Auth.User()
	require.NotNil(t, u)
	assert.Equal(t, []string{"x"}, u.Favorites)
	assert.Empty(t, f.carts.calls(), "hydration does not fetch")
}

func TestPropagator_MalformedRecordFailsSafe(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.local.Set(context.Background(), identitydom.LocalRecordKey, `{"uid": broken`))
	require.NoError(t, f.p.Start(context.Background()))

	assert.Nil(t, f.store.Auth.User())

	f.notifier.Publish(&identitydom.Identity{UID: "u1"})
	f.p.Stop()

	u := f.store.Auth.User()
	require.NotNil(t, u)
	assert.Equal(t, []string{}, u.Favorites)
}

func TestPropagator_SignOutKeepsCart(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.p.Start(context.Background()))

	f.notifier.Publish(&identitydom.Identity{UID: "u1"})
	f.p.wg.Wait()
	require.Len(t, f.store.Cart.Items(), 1)

	f.notifier.Publish(nil)
	f.p.Stop()

	assert.Nil(t, f.store.Auth.User())
	assert.False(t, f.local.has(identitydom.LocalRecordKey))
	assert.Len(t, f.store.Cart.Items(), 1, "cart state left as last fetched")
}

func TestPropagator_StartTwice(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.p.Start(context.Background()))
	defer f.p.Stop()
	assert.ErrorIs(t, f.p.Start(context.Background()), ErrAlreadyStarted)
}

func TestPropagator_ReplaysCurrentIdentityOnStart(t *testing.T) {
	f := newFixture()
	f.notifier.Publish(&identitydom.Identity{UID: "early"})

	require.NoError(t, f.p.Start(context.Background()))
	f.p.Stop()

	require.NotNil(t, f.store.Auth.User())
	assert.Equal(t, "early", f.store.Auth.User().UID)
	assert.Equal(t, []string{"early"}, f.carts.calls())
}

func TestPropagator_StopWaitsForInFlightFetch(t *testing.T) {
	f := newFixture()
	f.carts.gate = make(chan struct{})
	require.NoError(t, f.p.Start(context.Background()))

	f.notifier.Publish(&identitydom.Identity{UID: "u1"})

	done := make(chan struct{})
	go func() {
		f.p.Stop()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Stop returned before the fetch finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(f.carts.gate)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}

	f.notifier.Publish(&identitydom.Identity{UID: "u2"})
	assert.Equal(t, []string{"u1"}, f.carts.calls(), "no delivery after Stop")
}

func TestPropagator_FetchFailureLandsInCartState(t *testing.T) {
	f := newFixture()
	f.carts.err = errors.New("permission denied")
	require.NoError(t, f.p.Start(context.Background()))

	f.notifier.Publish(&identitydom.Identity{UID: "u1"})
	f.p.Stop()

	snap := f.store.Cart.Snapshot()
	assert.Equal(t, state.StatusRejected, snap.Status)
	assert.Equal(t, "permission denied", snap.ErrorMessage())
	require.NotNil(t, f.store.Auth.User(), "identity propagation is not affected")
}

func TestPropagator_RememberSkipsCartFetch(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.p.Start(context.Background()))
	f.notifier.Publish(&identitydom.Identity{UID: "u1"})
	f.p.wg.Wait()

	require.NoError(t, f.p.Remember(context.Background(), &identitydom.Identity{UID: "u1", Favorites: []string{"p3"}}))
	f.p.Stop()

	assert.Equal(t, []string{"u1"}, f.carts.calls())
	raw, _, _ := f.local.Get(context.Background(), identitydom.LocalRecordKey)
	assert.Equal(t, []string{"p3"}, identitydom.CachedFavorites(raw))
	assert.Equal(t, []string{"p3"}, f.store.Auth.User().Favorites)
}
