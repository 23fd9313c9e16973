package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"storefront/internal/application/state"
	cartdom "storefront/internal/domain/cart"
	identitydom "storefront/internal/domain/identity"
	orderdom "storefront/internal/domain/order"
	productdom "storefront/internal/domain/product"
)

var errBackend = errors.New("backend unavailable")

type fakeProductRepo struct {
	mu       sync.RWMutex
	items    map[string]productdom.Product
	seq      int
	saves    int
	failSave map[string]bool
	failList bool
}

func newFakeProductRepo(items ...productdom.Product) *fakeProductRepo {
	r := &fakeProductRepo{items: map[string]productdom.Product{}, failSave: map[string]bool{}}
	for _, p := range items {
		r.items[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) List(ctx context.Context) ([]productdom.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.failList {
		return nil, errBackend
	}
	out := make([]productdom.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProductRepo) Get(ctx context.Context, id string) (productdom.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) Create(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	r.mu.Lock()
	r.seq++
	p.ID = fmt.Sprintf("new-%d", r.seq)
	r.mu.Unlock()
	return p, r.Save(ctx, p)
}

func (r *fakeProductRepo) Save(ctx context.Context, p productdom.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave[p.ID] {
		return errBackend
	}
	r.saves++
	r.items[p.ID] = p
	return nil
}

func (r *fakeProductRepo) SaveAll(ctx context.Context, items []productdom.Product) error {
	for _, p := range items {
		if err := r.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeProductRepo) stock(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[id].Stock
}

func (r *fakeProductRepo) saveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

type fakeCartRepo struct {
	mu       sync.RWMutex
	carts    map[string][]cartdom.Line
	saves    int
	failSave bool
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string][]cartdom.Line{}}
}

func (r *fakeCartRepo) Get(ctx context.Context, uid string) ([]cartdom.Line, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items, ok := r.carts[uid]
	if !ok {
		return nil, false, nil
	}
	return cartdom.Clone(items), true, nil
}

func (r *fakeCartRepo) Save(ctx context.Context, uid string, lines []cartdom.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return errBackend
	}
	r.saves++
	r.carts[uid] = cartdom.Clone(lines)
	return nil
}

func (r *fakeCartRepo) saved(uid string) ([]cartdom.Line, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items, ok := r.carts[uid]
	return items, ok
}

func (r *fakeCartRepo) saveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]map[string]orderdom.Order
	seq    int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]map[string]orderdom.Order{}}
}

func (r *fakeOrderRepo) List(ctx context.Context, uid string) ([]orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]orderdom.Order, 0)
	for _, o := range r.orders[uid] {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Get(ctx context.Context, uid, id string) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[uid][id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	r.mu.Lock()
	r.seq++
	o.ID = fmt.Sprintf("o-%d", r.seq)
	r.mu.Unlock()
	return o, r.Save(ctx, o)
}

func (r *fakeOrderRepo) Save(ctx context.Context, o orderdom.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.orders[o.UserID] == nil {
		r.orders[o.UserID] = map[string]orderdom.Order{}
	}
	r.orders[o.UserID][o.ID] = o
	return nil
}

// fakeSession stands in for the session propagator: it writes published
// identities to the auth slice, merging the favorites it remembers.
type fakeSession struct {
	mu        sync.Mutex
	store     *state.Store
	favorites []string
	published []*identitydom.Identity
}

func (s *fakeSession) Publish(u *identitydom.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append(s.published, u.Clone())
	if u == nil {
		s.store.Auth.SetUser(nil)
		return
	}
	s.store.Auth.SetUser(u.WithFavorites(s.favorites))
}

func (s *fakeSession) Remember(ctx context.Context, u *identitydom.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites = append([]string{}, u.Favorites...)
	s.store.Auth.SetUser(u)
	return nil
}

type fakeProvider struct {
	mu       sync.Mutex
	users    map[string]*identitydom.Identity // by email
	password map[string]string
	tokens   map[string]string // token -> email
	signOuts []string
	// signOutErr is returned by SignOut when set.
	signOutErr error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		users:    map[string]*identitydom.Identity{},
		password: map[string]string{},
		tokens:   map[string]string{},
	}
}

func (p *fakeProvider) SignIn(ctx context.Context, email, password string) (*identitydom.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.users[email]
	if !ok || p.password[email] != password {
		return nil, errors.New("INVALID_LOGIN_CREDENTIALS")
	}
	return u.Clone(), nil
}

func (p *fakeProvider) SignUp(ctx context.Context, email, password, displayName string) (*identitydom.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.users[email]; ok {
		return nil, errors.New("EMAIL_EXISTS")
	}
	u := &identitydom.Identity{UID: fmt.Sprintf("uid-%d", len(p.users)+1), Email: email, DisplayName: displayName}
	p.users[email] = u
	p.password[email] = password
	return u.Clone(), nil
}

func (p *fakeProvider) SignOut(ctx context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signOuts = append(p.signOuts, uid)
	return p.signOutErr
}

func (p *fakeProvider) UpdateProfile(ctx context.Context, uid, displayName string) (*identitydom.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, u := range p.users {
		if u.UID == uid {
			u.DisplayName = displayName
			return u.Clone(), nil
		}
	}
	return nil, errors.New("USER_NOT_FOUND")
}

func (p *fakeProvider) VerifyIDToken(ctx context.Context, idToken string) (*identitydom.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	email, ok := p.tokens[idToken]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return p.users[email].Clone(), nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *fakeMailer) SendOrderConfirmation(ctx context.Context, to string, o orderdom.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to+":"+o.ID)
	return nil
}

type fakeImages struct{}

func (fakeImages) Upload(ctx context.Context, productID, contentType string, body io.Reader) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	return "https://storage.googleapis.com/test-bucket/products/" + productID, nil
}
