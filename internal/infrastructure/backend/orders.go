package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
)

type placeOrderRequest struct {
	Cart []domain.OrderLine `json:"cart"`
}

type updateStatusRequest struct {
	OrderID any                `json:"order_id"`
	Status  domain.OrderStatus `json:"status"`
}

func (c *Client) PlaceOrder(ctx context.Context, lines []domain.OrderLine) (domain.PlacedOrder, error) {
	var env envelope
	status, err := c.do(ctx, "place order", http.MethodPost, "/api/place-order", placeOrderRequest{Cart: lines}, &env)
	if err != nil {
		return domain.PlacedOrder{}, err
	}
	if !env.ok() {
		return domain.PlacedOrder{}, rejection("place order", status, env)
	}
	return domain.PlacedOrder{OrderNumber: env.OrderNumber, Message: env.Message}, nil
}

func (c *Client) Profile(ctx context.Context) (domain.Profile, error) {
	var env envelope
	status, err := c.do(ctx, "profile", http.MethodGet, "/api/profile", nil, &env)
	if err != nil {
		return domain.Profile{}, err
	}
	if !env.ok() {
		return domain.Profile{}, rejection("profile", status, env)
	}
	orders := env.Orders
	if orders == nil {
		orders = []domain.Order{}
	}
	return domain.Profile{
		Orders: orders,
		Stats: domain.OrderStats{
			Total:     env.TotalOrders,
			Pending:   env.Pending,
			Completed: env.Completed,
		},
		TotalSpent: env.TotalSpent,
	}, nil
}

func (c *Client) AdminOrders(ctx context.Context) ([]domain.Order, error) {
	var env envelope
	status, err := c.do(ctx, "admin orders", http.MethodGet, "/api/admin/orders", nil, &env)
	if err != nil {
		return nil, err
	}
	if !env.ok() {
		return nil, rejection("admin orders", status, env)
	}
	if env.Orders == nil {
		return []domain.Order{}, nil
	}
	return env.Orders, nil
}

// UpdateOrderStatus sends numeric ids as JSON numbers, which is what the
// backend's orders table keys on.
func (c *Client) UpdateOrderStatus(ctx context.Context, id domain.OrderID, st domain.OrderStatus) error {
	req := updateStatusRequest{OrderID: string(id), Status: st}
	// Only canonical integers go out as numbers; "007" or "+5" stay strings.
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		req.OrderID = json.Number(id)
	}
	var env envelope
	status, err := c.do(ctx, "update order status", http.MethodPost, "/api/update-order-status", req, &env)
	if err != nil {
		return err
	}
	if !env.ok() {
		return rejection("update order status", status, env)
	}
	return nil
}
