package handler

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Cart ---

type addItemRequest struct {
	Product  domain.Product `json:"product"`
	Quantity *int           `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// cartResponse carries the total as a JSON number so views can do arithmetic
// on it without parsing.
type cartResponse struct {
	Items []domain.LineItem `json:"items"`
	Count int               `json:"count"`
	Total json.Number       `json:"total"`
}

func newCartResponse(items []domain.LineItem, count int, total decimal.Decimal) cartResponse {
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartResponse{Items: items, Count: count, Total: json.Number(total.String())}
}

// --- Session ---

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// --- Checkout ---

type deliveryDetailsRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
}

type placedOrderResponse struct {
	OrderNumber string      `json:"order_number"`
	Message     string      `json:"message,omitempty"`
	Total       json.Number `json:"total"`
}

// --- Orders ---

type profileResponse struct {
	User       *domain.User      `json:"user,omitempty"`
	Orders     []domain.Order    `json:"orders"`
	Stats      domain.OrderStats `json:"stats"`
	TotalSpent json.Number       `json:"total_spent"`
}

type adminOrdersResponse struct {
	Orders []domain.Order    `json:"orders"`
	Stats  domain.OrderStats `json:"stats"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type updateStatusResponse struct {
	ID        domain.OrderID     `json:"id"`
	Status    domain.OrderStatus `json:"status"`
	UpdatedBy string             `json:"updated_by,omitempty"`
}
