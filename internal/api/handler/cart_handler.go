package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
)

// CartHandler exposes the cart store. Every call answers with the full cart.
type CartHandler struct {
	cart ports.CartStore
}

func NewCartHandler(cart ports.CartStore) *CartHandler {
	return &CartHandler{cart: cart}
}

// Get returns the current cart.
//
// @Summary      Get the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	return h.respond(c, http.StatusOK)
}

// AddItem adds a product to the cart, merging by id. Quantity defaults to 1.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addItemRequest  true  "Product snapshot and quantity"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if err := h.cart.AddItem(c.Request().Context(), req.Product, qty); err != nil {
		return err
	}
	return h.respond(c, http.StatusOK)
}

// SetQuantity overwrites a line's quantity. Zero or less removes the line.
//
// @Summary      Set a line quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Product id"
// @Param        body  body      setQuantityRequest  true  "New quantity"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/cart/items/{id} [put]
func (h *CartHandler) SetQuantity(c echo.Context) error {
	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if err := h.cart.SetQuantity(c.Request().Context(), domain.ProductID(c.Param("id")), *req.Quantity); err != nil {
		return err
	}
	return h.respond(c, http.StatusOK)
}

// RemoveItem drops a line from the cart.
//
// @Summary      Remove a line
// @Tags         cart
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  cartResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	if err := h.cart.RemoveItem(c.Request().Context(), domain.ProductID(c.Param("id"))); err != nil {
		return err
	}
	return h.respond(c, http.StatusOK)
}

// Clear empties the cart.
//
// @Summary      Clear the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.cart.Clear(c.Request().Context()); err != nil {
		return err
	}
	return h.respond(c, http.StatusOK)
}

func (h *CartHandler) respond(c echo.Context, status int) error {
	return c.JSON(status, newCartResponse(h.cart.Items(), h.cart.Count(), h.cart.Total()))
}
