package impl

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"
)

const (
	defaultReportDays = 30

	// lowStockThreshold marks products worth flagging before they run out.
	lowStockThreshold = 10
)

type reportService struct {
	logger      *slog.Logger
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	topProducts int
}

// NewReportService creates the reporting application service.
func NewReportService(
	logger *slog.Logger,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cfg *config.Config,
) usecase.ReportUsecase {
	return &reportService{
		logger:      logger,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		topProducts: cfg.Insight.TopProducts,
	}
}

func (s *reportService) SalesReport(ctx context.Context, days int) (*usecase.SalesReport, error) {
	if days <= 0 {
		days = defaultReportDays
	}
	since := time.Now().AddDate(0, 0, -days)

	daily, err := s.orderRepo.DailyRevenue(ctx, since)
	if err != nil {
		return nil, err
	}

	top, err := s.orderRepo.TopProductSales(ctx, s.topProducts)
	if err != nil {
		return nil, err
	}

	return &usecase.SalesReport{DailyRevenue: daily, TopProducts: top}, nil
}

func (s *reportService) InventoryReport(ctx context.Context) (*usecase.InventoryReport, error) {
	products, err := s.productRepo.FindAll(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -defaultReportDays)
	alerts := make([]*usecase.StockAlert, 0)
	for _, product := range products {
		if product.StockQuantity >= lowStockThreshold {
			continue
		}

		sold, err := s.orderRepo.UnitsSoldSince(ctx, product.ID, since)
		if err != nil {
			return nil, err
		}

		status := usecase.StockStatusLow
		if product.StockQuantity == 0 {
			status = usecase.StockStatusOut
		}

		alerts = append(alerts, &usecase.StockAlert{
			ProductID:     product.ID,
			Name:          product.Name,
			StockQuantity: product.StockQuantity,
			UnitsSold30d:  sold,
			TurnoverRate:  float64(sold) / math.Max(1, float64(product.StockQuantity)),
			Status:        status,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].StockQuantity < alerts[j].StockQuantity
	})

	return &usecase.InventoryReport{
		LowStockThreshold: lowStockThreshold,
		Alerts:            alerts,
	}, nil
}

func (s *reportService) CustomerReport(ctx context.Context, limit int) (*usecase.CustomerReport, error) {
	if limit <= 0 {
		limit = s.topProducts
	}

	stats, err := s.orderRepo.CustomerStats(ctx, limit)
	if err != nil {
		return nil, err
	}

	var repeat int
	for _, row := range stats {
		if row.OrderCount > 1 {
			repeat++
		}
	}
	var repeatRate float64
	if len(stats) > 0 {
		repeatRate = float64(repeat) / float64(len(stats))
	}

	return &usecase.CustomerReport{Customers: stats, RepeatRate: repeatRate}, nil
}
