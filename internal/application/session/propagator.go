// internal/application/session/propagator.go
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront/internal/application/state"
	cartdom "storefront/internal/domain/cart"
	identitydom "storefront/internal/domain/identity"
)

var ErrAlreadyStarted = errors.New("session: propagator already started")

// DefaultFetchTimeout bounds one background cart fetch.
const DefaultFetchTimeout = 15 * time.Second

// CartFetcher is CartUsecase.FetchCart.
type CartFetcher interface {
	FetchCart(ctx context.Context, uid string) ([]cartdom.Line, error)
}

// Propagator is the session propagation unit.
//
// On every identity notification:
//   - non-nil: merge the favorites cached in local storage, write process state,
//     write local storage, then fetch the cart of uid in the background
//   - nil: clear process state and remove the local record (cart state is left as is)
//
// Stop unsubscribes and waits for background fetches.
type Propagator struct {
	source identitydom.Source
	local  identitydom.LocalStore
	store  *state.Store
	carts  CartFetcher
	log    *zap.Logger

	// FetchTimeout overrides DefaultFetchTimeout when > 0.
	FetchTimeout time.Duration

	mu          sync.Mutex
	started     bool
	stopped     bool
	unsubscribe func()
	base        context.Context
	wg          sync.WaitGroup
}

func NewPropagator(
	source identitydom.Source,
	local identitydom.LocalStore,
	store *state.Store,
	carts CartFetcher,
	logger *zap.Logger,
) *Propagator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Propagator{
		source: source,
		local:  local,
		store:  store,
		carts:  carts,
		log:    logger.Named("session"),
	}
}

// Start hydrates state from the local record, then subscribes once.
// ctx is used for the hydration read and (detached from cancellation) as the parent of background fetches.
func (p *Propagator) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	p.started = true
	p.base = context.WithoutCancel(ctx)
	p.mu.Unlock()

	p.hydrate(ctx)

	unsub := p.source.Subscribe(p.handle)

	p.mu.Lock()
	p.unsubscribe = unsub
	p.mu.Unlock()

	p.log.Info("started")
	return nil
}

// Stop is safe to call more than once.
func (p *Propagator) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	unsub := p.unsubscribe
	p.unsubscribe = nil
	p.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	p.wg.Wait()
	p.log.Info("stopped")
}

// Remember stores a changed profile of the current identity (favorites, displayName)
// without a cart fetch.
func (p *Propagator) Remember(ctx context.Context, u *identitydom.Identity) error {
	if u == nil {
		return errors.New("session: nil identity")
	}
	p.store.Auth.SetUser(u)
	return p.writeLocal(ctx, u)
}

func (p *Propagator) hydrate(ctx context.Context) {
	raw, ok, err := p.local.Get(ctx, identitydom.LocalRecordKey)
	if err != nil {
		p.log.Warn("local record read failed", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	u, err := identitydom.DecodeRecord(raw)
	if err != nil {
		p.log.Warn("local record ignored", zap.Error(err))
		return
	}
	p.store.Auth.SetUser(u)
}

func (p *Propagator) handle(u *identitydom.Identity) {
	ctx := p.baseContext()

	if u == nil {
		p.store.Auth.SetUser(nil)
		if err := p.local.Remove(ctx, identitydom.LocalRecordKey); err != nil {
			p.log.Warn("local record remove failed", zap.Error(err))
		}
		return
	}

	merged := u.WithFavorites(p.cachedFavorites(ctx))
	p.store.Auth.SetUser(merged)
	if err := p.writeLocal(ctx, merged); err != nil {
		p.log.Warn("local record write failed", zap.Error(err))
	}

	p.fetchCart(merged.UID)
}

func (p *Propagator) cachedFavorites(ctx context.Context) []string {
	raw, ok, err := p.local.Get(ctx, identitydom.LocalRecordKey)
	if err != nil || !ok {
		return []string{}
	}
	return identitydom.CachedFavorites(raw)
}

func (p *Propagator) writeLocal(ctx context.Context, u *identitydom.Identity) error {
	raw, err := identitydom.EncodeRecord(u)
	if err != nil {
		return err
	}
	return p.local.Set(ctx, identitydom.LocalRecordKey, raw)
}

// fetchCart is fire-and-forget: the outcome lands only in the cart slice.
func (p *Propagator) fetchCart(uid string) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.wg.Add(1)
	base := p.base
	p.mu.Unlock()

	timeout := p.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()
		if _, err := p.carts.FetchCart(ctx, uid); err != nil {
			p.log.Warn("cart fetch failed", zap.Error(err))
		}
	}()
}

func (p *Propagator) baseContext() context.Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.base == nil {
		return context.Background()
	}
	return p.base
}
