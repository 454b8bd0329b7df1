package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/pkg/validation"
)

// ---- Stubs ----

type stubCart struct {
	items     []domain.LineItem
	addFn     func(p domain.Product, qty int) error
	setFn     func(id domain.ProductID, qty int) error
	removeFn  func(id domain.ProductID) error
	clearFn   func() error
	lastAdded domain.Product
	lastQty   int
}

func (s *stubCart) AddItem(_ context.Context, p domain.Product, qty int) error {
	s.lastAdded, s.lastQty = p, qty
	if s.addFn != nil {
		return s.addFn(p, qty)
	}
	s.items = append(s.items, domain.LineItem{Product: p, Quantity: qty})
	return nil
}

func (s *stubCart) RemoveItem(_ context.Context, id domain.ProductID) error {
	if s.removeFn != nil {
		return s.removeFn(id)
	}
	return nil
}

func (s *stubCart) SetQuantity(_ context.Context, id domain.ProductID, qty int) error {
	s.lastQty = qty
	if s.setFn != nil {
		return s.setFn(id, qty)
	}
	return nil
}

func (s *stubCart) Clear(context.Context) error {
	if s.clearFn != nil {
		return s.clearFn()
	}
	s.items = nil
	return nil
}

func (s *stubCart) Items() []domain.LineItem { return s.items }

func (s *stubCart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (s *stubCart) Count() int {
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

type stubSession struct {
	session   domain.Session
	loginFn   func(domain.Credentials) domain.AuthResult
	signupFn  func(domain.Credentials) domain.AuthResult
	updateErr error
}

func (s *stubSession) CheckSession(context.Context) domain.Session { return s.session }

func (s *stubSession) Login(_ context.Context, c domain.Credentials) domain.AuthResult {
	return s.loginFn(c)
}

func (s *stubSession) Signup(_ context.Context, c domain.Credentials) domain.AuthResult {
	return s.signupFn(c)
}

func (s *stubSession) Logout(context.Context) domain.Session {
	s.session = domain.Session{State: domain.SessionAnonymous}
	return s.session
}

func (s *stubSession) UpdateUser(p domain.UserPatch) (domain.User, error) {
	if s.updateErr != nil {
		return domain.User{}, s.updateErr
	}
	u := p.Apply(*s.session.User)
	s.session.User = &u
	return u, nil
}

func (s *stubSession) Snapshot() domain.Session { return s.session }

type stubCheckout struct {
	saveFn  func(domain.DeliveryDetails) (domain.User, error)
	placeFn func() (domain.PlacedOrder, error)
}

func (s *stubCheckout) SaveDeliveryDetails(_ context.Context, d domain.DeliveryDetails) (domain.User, error) {
	return s.saveFn(d)
}

func (s *stubCheckout) PlaceOrder(context.Context) (domain.PlacedOrder, error) {
	return s.placeFn()
}

type stubOrders struct {
	profileFn func() (domain.Profile, error)
	adminFn   func() ([]domain.Order, domain.OrderStats, error)
	updateFn  func(domain.OrderID, domain.OrderStatus) error
}

func (s *stubOrders) Profile(context.Context) (domain.Profile, error) { return s.profileFn() }

func (s *stubOrders) AdminOrders(context.Context) ([]domain.Order, domain.OrderStats, error) {
	return s.adminFn()
}

func (s *stubOrders) UpdateOrderStatus(_ context.Context, id domain.OrderID, st domain.OrderStatus) error {
	return s.updateFn(id, st)
}

// newContext builds an echo context with the app validator installed.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validation.New()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
