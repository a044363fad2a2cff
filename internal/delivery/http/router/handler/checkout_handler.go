// Package handler contains the HTTP handlers of the API server.
package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CheckoutHandler exposes the order checkout transaction and order lookups.
type CheckoutHandler struct {
	checkoutUsecase usecase.CheckoutUsecase
}

// NewCheckoutHandler creates the checkout handler.
func NewCheckoutHandler(checkoutUsecase usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{checkoutUsecase: checkoutUsecase}
}

// Checkout handles POST /orders/checkout.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	var req usecase.CheckoutInput
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_REQUEST", "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.checkoutUsecase.Checkout(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, order, "Order completed")
}

// GetOrder handles GET /orders/:id.
func (h *CheckoutHandler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid order id")
	}

	order, err := h.checkoutUsecase.GetOrder(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, order, "")
}

// ListCustomerOrders handles GET /customers/:id/orders.
func (h *CheckoutHandler) ListCustomerOrders(c echo.Context) error {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid customer id")
	}

	orders, err := h.checkoutUsecase.ListCustomerOrders(c.Request().Context(), customerID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, orders, "")
}
