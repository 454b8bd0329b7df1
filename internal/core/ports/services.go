package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
)

type CartStore interface {
	AddItem(ctx context.Context, p domain.Product, quantity int) error
	RemoveItem(ctx context.Context, id domain.ProductID) error
	SetQuantity(ctx context.Context, id domain.ProductID, quantity int) error
	Clear(ctx context.Context) error
	Items() []domain.LineItem
	Total() decimal.Decimal
	Count() int
}

type SessionStore interface {
	CheckSession(ctx context.Context) domain.Session
	Login(ctx context.Context, creds domain.Credentials) domain.AuthResult
	Signup(ctx context.Context, creds domain.Credentials) domain.AuthResult
	Logout(ctx context.Context) domain.Session
	UpdateUser(patch domain.UserPatch) (domain.User, error)
	Snapshot() domain.Session
}

type CheckoutService interface {
	SaveDeliveryDetails(ctx context.Context, details domain.DeliveryDetails) (domain.User, error)
	PlaceOrder(ctx context.Context) (domain.PlacedOrder, error)
}

type OrderService interface {
	Profile(ctx context.Context) (domain.Profile, error)
	AdminOrders(ctx context.Context) ([]domain.Order, domain.OrderStats, error)
	UpdateOrderStatus(ctx context.Context, id domain.OrderID, status domain.OrderStatus) error
}
