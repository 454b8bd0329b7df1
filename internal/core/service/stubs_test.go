package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type memKV struct {
	mu        sync.Mutex
	data      map[string][]byte
	getErr    error
	setErr    error
	deleteErr error
	sets      int
	deletes   int
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletes++
	delete(m.data, key)
	return nil
}

type stubIdentity struct {
	me        ports.IdentityResponse
	meErr     error
	login     ports.IdentityResponse
	loginErr  error
	signup    ports.IdentityResponse
	signupErr error
	logoutErr error
	detailErr error
	calls     []string
	details   []domain.DeliveryDetails

	// release, when set, blocks Me until it is closed.
	release chan struct{}
	entered chan struct{}
}

func (s *stubIdentity) Me(ctx context.Context) (ports.IdentityResponse, error) {
	s.calls = append(s.calls, "me")
	if s.release != nil {
		close(s.entered)
		<-s.release
	}
	return s.me, s.meErr
}

func (s *stubIdentity) Login(_ context.Context, _ domain.Credentials) (ports.IdentityResponse, error) {
	s.calls = append(s.calls, "login")
	return s.login, s.loginErr
}

func (s *stubIdentity) Signup(_ context.Context, _ domain.Credentials) (ports.IdentityResponse, error) {
	s.calls = append(s.calls, "signup")
	return s.signup, s.signupErr
}

func (s *stubIdentity) Logout(_ context.Context) error {
	s.calls = append(s.calls, "logout")
	return s.logoutErr
}

func (s *stubIdentity) UpdateDetails(_ context.Context, d domain.DeliveryDetails) error {
	s.calls = append(s.calls, "update_details")
	if s.detailErr != nil {
		return s.detailErr
	}
	s.details = append(s.details, d)
	return nil
}

type stubOrders struct {
	placed    domain.PlacedOrder
	placeErr  error
	lines     []domain.OrderLine
	profile   domain.Profile
	list      []domain.Order
	listErr   error
	updateErr error
	updated   map[domain.OrderID]domain.OrderStatus
}

func (s *stubOrders) PlaceOrder(_ context.Context, lines []domain.OrderLine) (domain.PlacedOrder, error) {
	s.lines = lines
	return s.placed, s.placeErr
}

func (s *stubOrders) Profile(_ context.Context) (domain.Profile, error) {
	return s.profile, nil
}

func (s *stubOrders) AdminOrders(_ context.Context) ([]domain.Order, error) {
	return s.list, s.listErr
}

func (s *stubOrders) UpdateOrderStatus(_ context.Context, id domain.OrderID, status domain.OrderStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if s.updated == nil {
		s.updated = map[domain.OrderID]domain.OrderStatus{}
	}
	s.updated[id] = status
	return nil
}

type stubValidator struct{ err error }

func (v stubValidator) Validate(any) error { return v.err }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var nopLog = zerolog.Nop()

func product(id string, price int64) domain.Product {
	return domain.Product{ID: domain.ProductID(id), Name: "Product " + id, Price: domain.NewPrice(decimal.NewFromInt(price))}
}

func authenticated(u domain.User) *SessionStore {
	id := &stubIdentity{login: ports.IdentityResponse{OK: true, User: &u}}
	s := NewSessionStore(id, domain.NewRolePolicy("admin"), nopLog)
	s.Login(context.Background(), domain.Credentials{Username: u.Username, Password: "x"})
	return s
}
