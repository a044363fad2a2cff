package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TokenHandler issues development tokens. It is only routed when debug mode
// is on; production tokens come from the identity provider.
type TokenHandler struct {
	tokenSvc service.TokenService
}

// NewTokenHandler creates the token handler.
func NewTokenHandler(tokenSvc service.TokenService) *TokenHandler {
	return &TokenHandler{tokenSvc: tokenSvc}
}

type issueTokenRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Roles  []string  `json:"roles" validate:"required,min=1,dive,oneof=admin staff"`
}

// Issue handles POST /auth/token.
func (h *TokenHandler) Issue(c echo.Context) error {
	var req issueTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_REQUEST", "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.tokenSvc.GenerateToken(req.UserID, req.Roles)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]string{"token": token}, "")
}
