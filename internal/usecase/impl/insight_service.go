package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
)

const (
	insightWindowDays   = 30
	forecastMinDataDays = 7

	highTurnoverThreshold = 2.0
	lowTurnoverThreshold  = 0.5
	overstockThreshold    = 20

	revenueChangeThreshold     = 30.0
	revenueChangeHighThreshold = 50.0
	demandSpikeStockShare      = 0.8
)

type insightService struct {
	logger      *slog.Logger
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	cache       service.InsightCache
}

// NewInsightService creates the insight application service.
func NewInsightService(
	logger *slog.Logger,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	insightCache service.InsightCache,
) usecase.InsightUsecase {
	return &insightService{
		logger:      logger,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		cache:       insightCache,
	}
}

// DemandForecasts projects sales per product from the trailing 30-day series.
// Products with fewer than 7 distinct sales days are omitted, not errors.
func (s *insightService) DemandForecasts(ctx context.Context) ([]*usecase.DemandForecast, error) {
	var cached []*usecase.DemandForecast
	if s.cache.Get(ctx, service.CacheKeyDemandForecasts, &cached) {
		return cached, nil
	}

	products, err := s.productRepo.FindAll(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -insightWindowDays)
	forecasts := make([]*usecase.DemandForecast, 0, len(products))
	for _, product := range products {
		series, err := s.orderRepo.DailySalesSeries(ctx, product.ID, since)
		if err != nil {
			return nil, err
		}
		if len(series) < forecastMinDataDays {
			continue
		}

		quantities := make([]float64, 0, len(series))
		for _, day := range series {
			quantities = append(quantities, day.Quantity)
		}

		avg := mean(quantities)
		trend := seriesTrend(quantities)
		projected := math.Max(0, avg+trend)

		forecasts = append(forecasts, &usecase.DemandForecast{
			ProductID:     product.ID,
			ProductName:   product.Name,
			AvgDailySales: avg,
			Trend:         trendLabel(trend),
			Forecast7d:    projected * 7,
			Forecast30d:   projected * 30,
			Confidence:    min(100, len(series)*10),
			DataDays:      len(series),
		})
	}

	s.cache.Set(ctx, service.CacheKeyDemandForecasts, forecasts)

	return forecasts, nil
}

// PricingSuggestions recommends price moves from the 30-day turnover rate.
func (s *insightService) PricingSuggestions(ctx context.Context) ([]*usecase.PricingSuggestion, error) {
	var cached []*usecase.PricingSuggestion
	if s.cache.Get(ctx, service.CacheKeyPricingSuggestions, &cached) {
		return cached, nil
	}

	products, err := s.productRepo.FindAll(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -insightWindowDays)
	suggestions := make([]*usecase.PricingSuggestion, 0, len(products))
	for _, product := range products {
		sold, err := s.orderRepo.UnitsSoldSince(ctx, product.ID, since)
		if err != nil {
			return nil, err
		}

		turnover := float64(sold) / math.Max(1, float64(product.StockQuantity))
		suggested, reason := suggestPrice(product.Price, turnover, product.StockQuantity)

		suggestions = append(suggestions, &usecase.PricingSuggestion{
			ProductID:      product.ID,
			ProductName:    product.Name,
			CurrentPrice:   product.Price,
			SuggestedPrice: suggested,
			TurnoverRate:   turnover,
			Reason:         reason,
		})
	}

	s.cache.Set(ctx, service.CacheKeyPricingSuggestions, suggestions)

	return suggestions, nil
}

// ReorderSuggestions recommends restock quantities, most urgent first.
func (s *insightService) ReorderSuggestions(ctx context.Context) ([]*usecase.ReorderSuggestion, error) {
	var cached []*usecase.ReorderSuggestion
	if s.cache.Get(ctx, service.CacheKeyReorderSuggestions, &cached) {
		return cached, nil
	}

	products, err := s.productRepo.FindAll(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -insightWindowDays)
	suggestions := make([]*usecase.ReorderSuggestion, 0, len(products))
	for _, product := range products {
		series, err := s.orderRepo.DailySalesSeries(ctx, product.ID, since)
		if err != nil {
			return nil, err
		}

		quantities := make([]float64, 0, len(series))
		for _, day := range series {
			quantities = append(quantities, day.Quantity)
		}
		avgDaily := mean(quantities)

		safetyStock := avgDaily * 7
		optimal := math.Max(0, avgDaily*insightWindowDays+safetyStock-float64(product.StockQuantity))
		daysUntilStockout := float64(product.StockQuantity) / math.Max(0.1, avgDaily)

		suggestions = append(suggestions, &usecase.ReorderSuggestion{
			ProductID:         product.ID,
			ProductName:       product.Name,
			CurrentStock:      product.StockQuantity,
			AvgDailySales:     avgDaily,
			DaysUntilStockout: daysUntilStockout,
			SafetyStock:       int(math.Round(safetyStock)),
			OptimalQuantity:   int(math.Round(optimal)),
			Priority:          reorderPriority(daysUntilStockout),
		})
	}

	// Stable keeps the product listing order within each bucket.
	sort.SliceStable(suggestions, func(i, j int) bool {
		return priorityRank(suggestions[i].Priority) < priorityRank(suggestions[j].Priority)
	})

	s.cache.Set(ctx, service.CacheKeyReorderSuggestions, suggestions)

	return suggestions, nil
}

// DetectAnomalies reports revenue swings week over week, zero-stock products
// and demand spikes. Results are computed fresh on every call and never
// persisted or cached.
func (s *insightService) DetectAnomalies(ctx context.Context) ([]*usecase.Anomaly, error) {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	anomalies := make([]*usecase.Anomaly, 0)

	recent, err := s.orderRepo.RevenueBetween(ctx, weekAgo, now)
	if err != nil {
		return nil, err
	}
	previous, err := s.orderRepo.RevenueBetween(ctx, twoWeeksAgo, weekAgo)
	if err != nil {
		return nil, err
	}

	if previous > 0 {
		change := (recent - previous) / previous * 100
		if math.Abs(change) > revenueChangeThreshold {
			severity := usecase.SeverityMedium
			if math.Abs(change) > revenueChangeHighThreshold {
				severity = usecase.SeverityHigh
			}
			anomalies = append(anomalies, &usecase.Anomaly{
				Type:        usecase.AnomalyRevenueChange,
				Severity:    severity,
				Description: fmt.Sprintf("revenue changed %+.1f%% week over week", change),
				Date:        now,
			})
		}
	}

	products, err := s.productRepo.FindAll(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	for _, product := range products {
		if product.StockQuantity == 0 {
			productID := product.ID
			anomalies = append(anomalies, &usecase.Anomaly{
				Type:        usecase.AnomalyZeroStock,
				Severity:    usecase.SeverityHigh,
				Description: fmt.Sprintf("%s is out of stock", product.Name),
				ProductID:   &productID,
				Date:        now,
			})
		}

		sold, err := s.orderRepo.UnitsSoldSince(ctx, product.ID, weekAgo)
		if err != nil {
			return nil, err
		}
		if float64(sold) > float64(product.StockQuantity)*demandSpikeStockShare {
			productID := product.ID
			anomalies = append(anomalies, &usecase.Anomaly{
				Type:        usecase.AnomalyDemandSpike,
				Severity:    usecase.SeverityMedium,
				Description: fmt.Sprintf("%s sold %d units in 7 days against %d in stock", product.Name, sold, product.StockQuantity),
				ProductID:   &productID,
				Date:        now,
			})
		}
	}

	return anomalies, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// seriesTrend is the mean of the last three points minus the mean of the
// first three, or 0 when the series is too short for both windows.
func seriesTrend(values []float64) float64 {
	if len(values) < 6 {
		return 0
	}

	return mean(values[len(values)-3:]) - mean(values[:3])
}

func trendLabel(trend float64) string {
	switch {
	case trend > 0:
		return usecase.TrendRising
	case trend < 0:
		return usecase.TrendFalling
	default:
		return usecase.TrendStable
	}
}

func suggestPrice(currentPrice, turnover float64, stock int) (suggested float64, reason string) {
	switch {
	case turnover > highTurnoverThreshold:
		return currentPrice * 1.10, usecase.PricingReasonHighDemand
	case turnover < lowTurnoverThreshold && stock > overstockThreshold:
		return currentPrice * 0.90, usecase.PricingReasonOverstock
	default:
		return currentPrice, usecase.PricingReasonHold
	}
}

func reorderPriority(daysUntilStockout float64) string {
	switch {
	case daysUntilStockout < 7:
		return usecase.PriorityUrgent
	case daysUntilStockout < 14:
		return usecase.PriorityHigh
	case daysUntilStockout < 30:
		return usecase.PriorityMedium
	default:
		return usecase.PriorityLow
	}
}

func priorityRank(priority string) int {
	switch priority {
	case usecase.PriorityUrgent:
		return 0
	case usecase.PriorityHigh:
		return 1
	case usecase.PriorityMedium:
		return 2
	default:
		return 3
	}
}
