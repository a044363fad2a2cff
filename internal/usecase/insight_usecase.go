package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Sales trend labels reported by the demand forecast.
const (
	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendStable  = "stable"
)

// Pricing suggestion reasons.
const (
	PricingReasonHighDemand = "high demand"
	PricingReasonOverstock  = "overstock"
	PricingReasonHold       = "hold"
)

// Reorder priority buckets, most urgent first.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Anomaly types and severities.
const (
	AnomalyRevenueChange = "revenue_change"
	AnomalyZeroStock     = "zero_stock"
	AnomalyDemandSpike   = "demand_spike"

	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// DemandForecast projects a product's sales over the next 7 and 30 days from
// its trailing 30-day daily sales series.
type DemandForecast struct {
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	AvgDailySales float64   `json:"avg_daily_sales"`
	Trend         string    `json:"trend"`
	Forecast7d    float64   `json:"forecast_7d"`
	Forecast30d   float64   `json:"forecast_30d"`
	Confidence    int       `json:"confidence"` // 0 to 100, grows with days of data.
	DataDays      int       `json:"data_days"`
}

// PricingSuggestion recommends a price move based on the turnover rate.
type PricingSuggestion struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	CurrentPrice   float64   `json:"current_price"`
	SuggestedPrice float64   `json:"suggested_price"`
	TurnoverRate   float64   `json:"turnover_rate"`
	Reason         string    `json:"reason"`
}

// ReorderSuggestion recommends a restock quantity and urgency for a product.
type ReorderSuggestion struct {
	ProductID         uuid.UUID `json:"product_id"`
	ProductName       string    `json:"product_name"`
	CurrentStock      int       `json:"current_stock"`
	AvgDailySales     float64   `json:"avg_daily_sales"`
	DaysUntilStockout float64   `json:"days_until_stockout"`
	SafetyStock       int       `json:"safety_stock"`
	OptimalQuantity   int       `json:"optimal_quantity"`
	Priority          string    `json:"priority"`
}

// Anomaly is a reported irregularity in recent sales or stock. Anomalies are
// computed on demand and never persisted.
type Anomaly struct {
	Type        string     `json:"type"`
	Severity    string     `json:"severity"`
	Description string     `json:"description"`
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	Date        time.Time  `json:"date"`
}

// InsightUsecase derives forecasts, pricing and reorder suggestions, and
// anomaly reports from completed orders. All methods are pure reads and may
// serve slightly stale data.
type InsightUsecase interface {
	// DemandForecasts returns a forecast per product with at least 7 distinct
	// days of trailing sales data. Products with less data are omitted.
	DemandForecasts(ctx context.Context) ([]*DemandForecast, error)

	// PricingSuggestions returns a price recommendation per product.
	PricingSuggestions(ctx context.Context) ([]*PricingSuggestion, error)

	// ReorderSuggestions returns restock recommendations sorted by priority,
	// most urgent first, stable within a bucket.
	ReorderSuggestions(ctx context.Context) ([]*ReorderSuggestion, error)

	// DetectAnomalies reports revenue swings, zero-stock products and demand
	// spikes over the trailing week.
	DetectAnomalies(ctx context.Context) ([]*Anomaly, error)
}
