package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CustomerHandler exposes customer and loyalty point management.
type CustomerHandler struct {
	customerUsecase usecase.CustomerUsecase
}

// NewCustomerHandler creates the customer handler.
func NewCustomerHandler(customerUsecase usecase.CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{customerUsecase: customerUsecase}
}

// List handles GET /customers.
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.customerUsecase.ListCustomers(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, customers, "")
}

// Get handles GET /customers/:id.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid customer id")
	}

	detail, err := h.customerUsecase.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, detail, "")
}

// Create handles POST /customers.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req usecase.CreateCustomerInput
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_REQUEST", "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.customerUsecase.CreateCustomer(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, customer, "Customer created")
}

// Update handles PUT /customers/:id.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid customer id")
	}

	var req usecase.UpdateCustomerInput
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_REQUEST", "Invalid request format")
	}
	req.ID = id
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.customerUsecase.UpdateCustomer(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, customer, "Customer updated")
}

type grantPointsRequest struct {
	Points int    `json:"points" validate:"required,gt=0"`
	Notes  string `json:"notes" validate:"max=200"`
}

// GrantPoints handles POST /customers/:id/points.
func (h *CustomerHandler) GrantPoints(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid customer id")
	}

	var req grantPointsRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_REQUEST", "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.customerUsecase.GrantPoints(c.Request().Context(), usecase.GrantPointsInput{
		CustomerID: id,
		Points:     req.Points,
		Notes:      req.Notes,
	}); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Points granted")
}

// VerifyBalance handles GET /customers/:id/points/verify.
func (h *CustomerHandler) VerifyBalance(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid customer id")
	}

	consistent, err := h.customerUsecase.VerifyBalance(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]bool{"consistent": consistent}, "")
}
