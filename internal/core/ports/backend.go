package ports

import (
	"context"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
)

// IdentityResponse is the backend's answer to an identity call. A request
// the backend answered is never an error: OK and Message carry the outcome.
type IdentityResponse struct {
	OK      bool
	Message string
	User    *domain.User
}

// IdentityClient talks to the backend's session endpoints.
type IdentityClient interface {
	// Me returns OK=false when the backend reports no session (401 or
	// success:false). Transport failures are returned as errors.
	Me(ctx context.Context) (IdentityResponse, error)
	Login(ctx context.Context, creds domain.Credentials) (IdentityResponse, error)
	Signup(ctx context.Context, creds domain.Credentials) (IdentityResponse, error)
	Logout(ctx context.Context) error
	UpdateDetails(ctx context.Context, details domain.DeliveryDetails) error
}

// OrderClient talks to the backend's order endpoints. Rejections come back as
// *domain.RemoteError.
type OrderClient interface {
	PlaceOrder(ctx context.Context, lines []domain.OrderLine) (domain.PlacedOrder, error)
	Profile(ctx context.Context) (domain.Profile, error)
	AdminOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id domain.OrderID, status domain.OrderStatus) error
}

// CatalogClient looks up a single product. A missing product is a
// *domain.RemoteError with status 404.
type CatalogClient interface {
	Product(ctx context.Context, id domain.ProductID) (domain.Product, error)
}
