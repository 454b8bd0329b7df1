package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Slganeshkarthik/AgriConnect/internal/api/metrics"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
)

// StructValidator checks struct tags; *validation.Validator satisfies it.
type StructValidator interface {
	Validate(i any) error
}

type CheckoutService struct {
	cart     ports.CartStore
	session  ports.SessionStore
	identity ports.IdentityClient
	orders   ports.OrderClient
	validate StructValidator
	log      zerolog.Logger
}

func NewCheckoutService(
	cart ports.CartStore,
	session ports.SessionStore,
	identity ports.IdentityClient,
	orders ports.OrderClient,
	validate StructValidator,
	log zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{
		cart:     cart,
		session:  session,
		identity: identity,
		orders:   orders,
		validate: validate,
		log:      log.With().Str("component", "checkout").Logger(),
	}
}

// SaveDeliveryDetails validates the address block, stores it on the backend
// and mirrors it into the session user.
func (s *CheckoutService) SaveDeliveryDetails(ctx context.Context, d domain.DeliveryDetails) (domain.User, error) {
	if err := domain.Authorize(domain.RouteAuthenticated, s.session.Snapshot()); err != nil {
		return domain.User{}, fmt.Errorf("save delivery details: %w", err)
	}

	d = domain.DeliveryDetails{
		Name:    strings.TrimSpace(d.Name),
		Address: strings.TrimSpace(d.Address),
		Pincode: strings.TrimSpace(d.Pincode),
		Phone:   strings.TrimSpace(d.Phone),
	}
	if err := s.validate.Validate(d); err != nil {
		return domain.User{}, fmt.Errorf("%w: %s", domain.ErrInvalidDetails, err)
	}

	if err := s.identity.UpdateDetails(ctx, d); err != nil {
		s.remoteFailure("update_user_details", err)
		return domain.User{}, fmt.Errorf("save delivery details: %w", err)
	}
	return s.session.UpdateUser(d.Patch())
}

// PlaceOrder sends the cart to the backend and clears it once the order is
// acknowledged.
func (s *CheckoutService) PlaceOrder(ctx context.Context) (domain.PlacedOrder, error) {
	sess := s.session.Snapshot()
	if err := domain.Authorize(domain.RouteAuthenticated, sess); err != nil {
		return domain.PlacedOrder{}, fmt.Errorf("place order: %w", err)
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return domain.PlacedOrder{}, fmt.Errorf("place order: %w", domain.ErrCartEmpty)
	}
	if !sess.User.HasDeliveryDetails() {
		return domain.PlacedOrder{}, fmt.Errorf("place order: %w", domain.ErrIncompleteDetails)
	}

	total := s.cart.Total()
	placed, err := s.orders.PlaceOrder(ctx, domain.OrderLines(items))
	if err != nil {
		s.remoteFailure("place_order", err)
		return domain.PlacedOrder{}, fmt.Errorf("place order: %w", err)
	}
	placed.Total = total
	metrics.OrdersPlacedTotal.Inc()

	// The order exists on the backend; a local clear failure must not hide it.
	if err := s.cart.Clear(ctx); err != nil {
		s.log.Error().Err(err).Str("order_number", placed.OrderNumber).Msg("order placed but cart not cleared")
	}
	s.log.Info().
		Str("order_number", placed.OrderNumber).
		Str("username", sess.User.Username).
		Str("total", total.String()).
		Int("lines", len(items)).
		Msg("order placed")
	return placed, nil
}

// remoteFailure counts transport failures; backend rejections are not
// failures of the call itself.
func (s *CheckoutService) remoteFailure(op string, err error) {
	var re *domain.RemoteError
	if errors.As(err, &re) {
		s.log.Info().Str("op", op).Int("status", re.Status).Str("message", re.Message).Msg("backend rejected request")
		return
	}
	metrics.RemoteFailuresTotal.WithLabelValues(op).Inc()
	s.log.Warn().Err(err).Str("op", op).Msg("backend call failed")
}
