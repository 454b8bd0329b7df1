package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrIncompleteDetails  = errors.New("delivery details are incomplete")
	ErrInvalidDetails     = errors.New("invalid delivery details")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// OrderID is the backend's numeric order key, carried as text.
type OrderID string

func (id *OrderID) UnmarshalJSON(b []byte) error {
	return (*ProductID)(id).UnmarshalJSON(b)
}

// Order is one placed order as listed by the profile and admin endpoints.
// CreatedAt is the backend's timestamp text, shown as-is.
type Order struct {
	ID          OrderID         `json:"id"`
	OrderNumber string          `json:"order_number"`
	Username    string          `json:"username,omitempty"`
	Name        string          `json:"name,omitempty"`
	Address     string          `json:"address,omitempty"`
	Pincode     string          `json:"pincode,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   string          `json:"created_at,omitempty"`
	ItemCount   int             `json:"item_count,omitempty"`
}

// OrderLine is a cart line as sent to the order endpoint. Quantity is sent
// twice because the backend reads "qty" while older clients wrote "quantity".
type OrderLine struct {
	ID       ProductID `json:"id"`
	Name     string    `json:"name"`
	Price    Price     `json:"price"`
	Quantity int       `json:"quantity"`
	Qty      int       `json:"qty"`
}

// OrderLines converts cart items into order lines.
func OrderLines(items []LineItem) []OrderLine {
	lines := make([]OrderLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, OrderLine{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Qty:      it.Quantity,
		})
	}
	return lines
}

// PlacedOrder is the backend's acknowledgement of a successful checkout.
// Total is the cart total at the moment the order was sent.
type PlacedOrder struct {
	OrderNumber string          `json:"order_number"`
	Message     string          `json:"message,omitempty"`
	Total       decimal.Decimal `json:"total"`
}

// Profile is the signed-in user's order history with its counters. TotalSpent
// is summed by the backend over non-cancelled orders.
type Profile struct {
	User       *User           `json:"user,omitempty"`
	Orders     []Order         `json:"orders"`
	Stats      OrderStats      `json:"stats"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// OrderStats are the counters shown above an order list.
type OrderStats struct {
	Total     int `json:"total_orders"`
	Pending   int `json:"pending_orders"`
	Completed int `json:"completed_orders"`
}

// ComputeOrderStats counts orders the way the admin dashboard does: every
// order that is not pending counts as completed.
func ComputeOrderStats(orders []Order) OrderStats {
	st := OrderStats{Total: len(orders)}
	for _, o := range orders {
		if o.Status == OrderPending {
			st.Pending++
		}
	}
	st.Completed = st.Total - st.Pending
	return st
}
