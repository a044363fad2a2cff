package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ReportHandler exposes the sales, inventory and customer reports.
type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

// NewReportHandler creates the report handler.
func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

// Sales handles GET /reports/sales.
func (h *ReportHandler) Sales(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("days"))

	report, err := h.reportUsecase.SalesReport(c.Request().Context(), days)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, report, "")
}

// Inventory handles GET /reports/inventory.
func (h *ReportHandler) Inventory(c echo.Context) error {
	report, err := h.reportUsecase.InventoryReport(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, report, "")
}

// Customers handles GET /reports/customers.
func (h *ReportHandler) Customers(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	stats, err := h.reportUsecase.CustomerReport(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, stats, "")
}
