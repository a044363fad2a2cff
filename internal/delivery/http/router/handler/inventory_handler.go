package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// InventoryHandler exposes the stock ledger.
type InventoryHandler struct {
	inventoryUsecase usecase.InventoryUsecase
}

// NewInventoryHandler creates the inventory handler.
func NewInventoryHandler(inventoryUsecase usecase.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{inventoryUsecase: inventoryUsecase}
}

type postInventoryRequest struct {
	Direction string `json:"direction" validate:"required,oneof=in out"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes" validate:"max=500"`
}

// Post handles POST /products/:id/inventory.
func (h *InventoryHandler) Post(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid product id")
	}

	var req postInventoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_REQUEST", "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	posted, err := h.inventoryUsecase.Post(c.Request().Context(), usecase.PostInventoryInput{
		ProductID: productID,
		Direction: entity.InventoryDirection(req.Direction),
		Quantity:  req.Quantity,
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, posted, "Inventory posted")
}

// History handles GET /products/:id/inventory.
func (h *InventoryHandler) History(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid product id")
	}

	history, err := h.inventoryUsecase.History(c.Request().Context(), productID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, history, "")
}

// Reconcile handles GET /products/:id/inventory/reconcile.
func (h *InventoryHandler) Reconcile(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid product id")
	}

	result, err := h.inventoryUsecase.Reconcile(c.Request().Context(), productID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, result, "")
}
