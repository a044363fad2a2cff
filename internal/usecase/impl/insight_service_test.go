package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInsightService(store *memoryStore, cache service.InsightCache) usecase.InsightUsecase {
	return NewInsightService(
		newDiscardLogger(),
		&fakeProductRepository{store: store},
		&fakeOrderRepository{store: store},
		cache,
	)
}

// seedDailySales creates one completed order per entry, i days back with the
// given quantity.
func seedDailySales(store *memoryStore, customer *entity.Customer, product *entity.Product, quantities map[int]int) {
	for daysBack, quantity := range quantities {
		seedCompletedOrder(store, customer, product, quantity, time.Now().AddDate(0, 0, -daysBack))
	}
}

func TestInsightService_DemandForecasts_FlatSeries(t *testing.T) {
	store := newMemoryStore()
	customer := seedCustomer(store, "Uma", "uma@example.com", 0)
	product := seedProduct(store, "Beans", 100, 50, 0.01)
	seedDailySales(store, customer, product, map[int]int{
		1: 10, 2: 10, 3: 10, 4: 10, 5: 10, 6: 10, 7: 10,
	})
	service := newInsightService(store, noopInsightCache{})

	forecasts, err := service.DemandForecasts(context.Background())
	require.NoError(t, err)
	require.Len(t, forecasts, 1)

	forecast := forecasts[0]
	assert.Equal(t, product.ID, forecast.ProductID)
	assert.InDelta(t, 10.0, forecast.AvgDailySales, 1e-9)
	assert.Equal(t, usecase.TrendStable, forecast.Trend)
	assert.InDelta(t, 70.0, forecast.Forecast7d, 1e-9)
	assert.InDelta(t, 300.0, forecast.Forecast30d, 1e-9)
	assert.Equal(t, 70, forecast.Confidence)
	assert.Equal(t, 7, forecast.DataDays)
}

func TestInsightService_DemandForecasts_RisingTrend(t *testing.T) {
	store := newMemoryStore()
	customer := seedCustomer(store, "Uma", "uma@example.com", 0)
	product := seedProduct(store, "Beans", 100, 50, 0.01)
	seedDailySales(store, customer, product, map[int]int{
		7: 1, 6: 1, 5: 1, 4: 1, 3: 5, 2: 5, 1: 5,
	})
	service := newInsightService(store, noopInsightCache{})

	forecasts, err := service.DemandForecasts(context.Background())
	require.NoError(t, err)
	require.Len(t, forecasts, 1)

	// avg 19/7, trend +4, projected daily 47/7.
	forecast := forecasts[0]
	assert.Equal(t, usecase.TrendRising, forecast.Trend)
	assert.InDelta(t, 19.0/7, forecast.AvgDailySales, 1e-9)
	assert.InDelta(t, 47.0, forecast.Forecast7d, 1e-9)
}

func TestInsightService_DemandForecasts_SkipsSparseSeries(t *testing.T) {
	store := newMemoryStore()
	customer := seedCustomer(store, "Uma", "uma@example.com", 0)
	product := seedProduct(store, "Beans", 100, 50, 0.01)
	seedDailySales(store, customer, product, map[int]int{1: 3, 2: 3, 3: 3})
	service := newInsightService(store, noopInsightCache{})

	forecasts, err := service.DemandForecasts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, forecasts)
}

func TestInsightService_DemandForecasts_ServedFromCache(t *testing.T) {
	store := newMemoryStore()
	customer := seedCustomer(store, "Uma", "uma@example.com", 0)
	product := seedProduct(store, "Beans", 100, 50, 0.01)
	seedDailySales(store, customer, product, map[int]int{
		1: 10, 2: 10, 3: 10, 4: 10, 5: 10, 6: 10, 7: 10,
	})
	service := newInsightService(store, newMapInsightCache())
	ctx := context.Background()

	first, err := service.DemandForecasts(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Wipe the underlying orders; a cached result must still be served.
	store.orders = make(map[uuid.UUID]*entity.Order)

	second, err := service.DemandForecasts(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ProductID, second[0].ProductID)
	assert.InDelta(t, first[0].Forecast30d, second[0].Forecast30d, 1e-9)
}

func TestInsightService_PricingSuggestions(t *testing.T) {
	store := newMemoryStore()
	customer := seedCustomer(store, "Val", "val@example.com", 0)

	hot := seedProduct(store, "Hot Item", 100, 10, 0.01)
	seedDailySales(store, customer, hot, map[int]int{1: 25})

	slow := seedProduct(store, "Slow Item", 200, 30, 0.01)
	seedDailySales(store, customer, slow, map[int]int{1: 10})

	steady := seedProduct(store, "Steady Item", 300, 10, 0.01)
	seedDailySales(store, customer, steady, map[int]int{1: 10})

	service := newInsightService(store, noopInsightCache{})

	suggestions, err := service.PricingSuggestions(context.Background())
	require.NoError(t, err)
	require.Len(t, suggestions, 3)

	byName := make(map[string]*usecase.PricingSuggestion)
	for _, suggestion := range suggestions {
		byName[suggestion.ProductName] = suggestion
	}

	// Turnover 2.5 marks it up 10%.
	assert.InDelta(t, 2.5, byName["Hot Item"].TurnoverRate, 1e-9)
	assert.InDelta(t, 110.0, byName["Hot Item"].SuggestedPrice, 1e-9)
	assert.Equal(t, usecase.PricingReasonHighDemand, byName["Hot Item"].Reason)

	// Turnover 1/3 with deep stock marks it down 10%.
	assert.InDelta(t, 180.0, byName["Slow Item"].SuggestedPrice, 1e-9)
	assert.Equal(t, usecase.PricingReasonOverstock, byName["Slow Item"].Reason)

	// Turnover 1.0 holds.
	assert.InDelta(t, 300.0, byName["Steady Item"].SuggestedPrice, 1e-9)
	assert.Equal(t, usecase.PricingReasonHold, byName["Steady Item"].Reason)
}

func TestInsightService_ReorderSuggestions(t *testing.T) {
	store := newMemoryStore()
	customer := seedCustomer(store, "Wes", "wes@example.com", 0)

	urgent := seedProduct(store, "Nearly Gone", 100, 5, 0.01)
	seedDailySales(store, customer, urgent, map[int]int{
		1: 1, 2: 1, 3: 1, 4: 1, 5: 1, 6: 1, 7: 1, 8: 1, 9: 1, 10: 1,
	})

	relaxed := seedProduct(store, "Deep Stock", 100, 100, 0.01)
	seedDailySales(store, customer, relaxed, map[int]int{
		1: 1, 2: 1, 3: 1, 4: 1, 5: 1, 6: 1, 7: 1, 8: 1, 9: 1, 10: 1,
	})

	service := newInsightService(store, noopInsightCache{})

	suggestions, err := service.ReorderSuggestions(context.Background())
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	// Urgent products come first regardless of listing order.
	first := suggestions[0]
	assert.Equal(t, urgent.ID, first.ProductID)
	assert.Equal(t, usecase.PriorityUrgent, first.Priority)
	assert.InDelta(t, 1.0, first.AvgDailySales, 1e-9)
	assert.InDelta(t, 5.0, first.DaysUntilStockout, 1e-9)
	assert.Equal(t, 7, first.SafetyStock)
	// 30 days of demand plus safety stock, minus what is on hand.
	assert.Equal(t, 32, first.OptimalQuantity)

	second := suggestions[1]
	assert.Equal(t, relaxed.ID, second.ProductID)
	assert.Equal(t, usecase.PriorityLow, second.Priority)
	assert.Equal(t, 0, second.OptimalQuantity)
}

func TestInsightService_DetectAnomalies_RevenueSwing(t *testing.T) {
	store := newMemoryStore()
	customer := seedCustomer(store, "Xan", "xan@example.com", 0)
	bulk := seedProduct(store, "Bulk", 1000, 1000, 0.01)

	// 1000 two weeks back, 2000 this week: +100% week over week.
	seedCompletedOrder(store, customer, bulk, 1, time.Now().AddDate(0, 0, -10))
	seedCompletedOrder(store, customer, bulk, 2, time.Now().AddDate(0, 0, -3))

	service := newInsightService(store, noopInsightCache{})

	anomalies, err := service.DetectAnomalies(context.Background())
	require.NoError(t, err)
	require.Len(t, anomalies, 1)
	assert.Equal(t, usecase.AnomalyRevenueChange, anomalies[0].Type)
	assert.Equal(t, usecase.SeverityHigh, anomalies[0].Severity)
}

func TestInsightService_DetectAnomalies_StockSignals(t *testing.T) {
	store := newMemoryStore()
	customer := seedCustomer(store, "Yui", "yui@example.com", 0)

	empty := seedProduct(store, "Empty Shelf", 100, 0, 0.01)

	spiking := seedProduct(store, "Spiking", 100, 10, 0.01)
	seedCompletedOrder(store, customer, spiking, 9, time.Now().AddDate(0, 0, -2))

	service := newInsightService(store, noopInsightCache{})

	anomalies, err := service.DetectAnomalies(context.Background())
	require.NoError(t, err)

	byType := make(map[string]*usecase.Anomaly)
	for _, anomaly := range anomalies {
		byType[anomaly.Type] = anomaly
	}

	zeroStock := byType[usecase.AnomalyZeroStock]
	require.NotNil(t, zeroStock)
	assert.Equal(t, usecase.SeverityHigh, zeroStock.Severity)
	require.NotNil(t, zeroStock.ProductID)
	assert.Equal(t, empty.ID, *zeroStock.ProductID)

	spike := byType[usecase.AnomalyDemandSpike]
	require.NotNil(t, spike)
	assert.Equal(t, usecase.SeverityMedium, spike.Severity)
	require.NotNil(t, spike.ProductID)
	assert.Equal(t, spiking.ID, *spike.ProductID)
}
