package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
)

// OrderService serves the profile order history and the admin order desk.
type OrderService struct {
	session ports.SessionStore
	orders  ports.OrderClient
	log     zerolog.Logger
}

func NewOrderService(session ports.SessionStore, orders ports.OrderClient, log zerolog.Logger) *OrderService {
	return &OrderService{session: session, orders: orders, log: log.With().Str("component", "orders").Logger()}
}

func (s *OrderService) Profile(ctx context.Context) (domain.Profile, error) {
	sess := s.session.Snapshot()
	if err := domain.Authorize(domain.RouteAuthenticated, sess); err != nil {
		return domain.Profile{}, fmt.Errorf("profile: %w", err)
	}
	p, err := s.orders.Profile(ctx)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("profile: %w", err)
	}
	p.User = sess.User
	return p, nil
}

// AdminOrders lists every order with the dashboard counters.
func (s *OrderService) AdminOrders(ctx context.Context) ([]domain.Order, domain.OrderStats, error) {
	if err := domain.Authorize(domain.RouteAdmin, s.session.Snapshot()); err != nil {
		return nil, domain.OrderStats{}, fmt.Errorf("admin orders: %w", err)
	}
	orders, err := s.orders.AdminOrders(ctx)
	if err != nil {
		return nil, domain.OrderStats{}, fmt.Errorf("admin orders: %w", err)
	}
	return orders, domain.ComputeOrderStats(orders), nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id domain.OrderID, status domain.OrderStatus) error {
	if err := domain.Authorize(domain.RouteAdmin, s.session.Snapshot()); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if !status.Valid() {
		return fmt.Errorf("update order status: %w: %q", domain.ErrInvalidOrderStatus, status)
	}
	if err := s.orders.UpdateOrderStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	s.log.Info().Str("order_id", string(id)).Str("status", string(status)).Msg("order status updated")
	return nil
}
