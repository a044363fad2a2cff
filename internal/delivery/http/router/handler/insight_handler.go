package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// InsightHandler exposes the read-only analytics heuristics.
type InsightHandler struct {
	insightUsecase usecase.InsightUsecase
}

// NewInsightHandler creates the insight handler.
func NewInsightHandler(insightUsecase usecase.InsightUsecase) *InsightHandler {
	return &InsightHandler{insightUsecase: insightUsecase}
}

// DemandForecasts handles GET /insights/forecast.
func (h *InsightHandler) DemandForecasts(c echo.Context) error {
	forecasts, err := h.insightUsecase.DemandForecasts(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, forecasts, "")
}

// PricingSuggestions handles GET /insights/pricing.
func (h *InsightHandler) PricingSuggestions(c echo.Context) error {
	suggestions, err := h.insightUsecase.PricingSuggestions(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, suggestions, "")
}

// ReorderSuggestions handles GET /insights/reorder.
func (h *InsightHandler) ReorderSuggestions(c echo.Context) error {
	suggestions, err := h.insightUsecase.ReorderSuggestions(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, suggestions, "")
}

// Anomalies handles GET /insights/anomalies.
func (h *InsightHandler) Anomalies(c echo.Context) error {
	anomalies, err := h.insightUsecase.DetectAnomalies(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, anomalies, "")
}
