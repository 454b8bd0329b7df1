package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
)

type CheckoutHandler struct {
	checkout ports.CheckoutService
}

func NewCheckoutHandler(checkout ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// SaveDetails stores delivery details on the account and the session user.
//
// @Summary      Save delivery details
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      deliveryDetailsRequest  true  "Delivery details"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/checkout/details [put]
func (h *CheckoutHandler) SaveDetails(c echo.Context) error {
	var req deliveryDetailsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	u, err := h.checkout.SaveDeliveryDetails(c.Request().Context(), domain.DeliveryDetails{
		Name:    req.Name,
		Address: req.Address,
		Pincode: req.Pincode,
		Phone:   req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// PlaceOrder sends the cart to the backend as an order and empties it.
//
// @Summary      Place an order
// @Tags         checkout
// @Produce      json
// @Success      201  {object}  placedOrderResponse
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/checkout/orders [post]
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	placed, err := h.checkout.PlaceOrder(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, placedOrderResponse{
		OrderNumber: placed.OrderNumber,
		Message:     placed.Message,
		Total:       json.Number(placed.Total.String()),
	})
}
