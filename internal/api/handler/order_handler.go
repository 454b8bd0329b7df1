package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Slganeshkarthik/AgriConnect/internal/api/middleware"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
)

type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Profile returns the signed-in user's orders and totals.
//
// @Summary      Get the profile
// @Tags         orders
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/profile [get]
func (h *OrderHandler) Profile(c echo.Context) error {
	p, err := h.orders.Profile(c.Request().Context())
	if err != nil {
		return err
	}
	orders := p.Orders
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(http.StatusOK, profileResponse{
		User:       p.User,
		Orders:     orders,
		Stats:      p.Stats,
		TotalSpent: json.Number(p.TotalSpent.String()),
	})
}

// AdminOrders lists every order with dashboard counters.
//
// @Summary      List all orders
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminOrdersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/orders [get]
func (h *OrderHandler) AdminOrders(c echo.Context) error {
	orders, stats, err := h.orders.AdminOrders(c.Request().Context())
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(http.StatusOK, adminOrdersResponse{Orders: orders, Stats: stats})
}

// UpdateStatus moves an order to a new status.
//
// @Summary      Update an order status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Order id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  updateStatusResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	id := domain.OrderID(c.Param("id"))
	if err := h.orders.UpdateOrderStatus(c.Request().Context(), id, domain.OrderStatus(req.Status)); err != nil {
		return err
	}
	resp := updateStatusResponse{ID: id, Status: domain.OrderStatus(req.Status)}
	if u, ok := c.Get(middleware.ContextKeyUser).(*domain.User); ok && u != nil {
		resp.UpdatedBy = u.Username
	}
	return c.JSON(http.StatusOK, resp)
}
