package services

import (
	"fmt"

	"mboaconnect/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardStats is the admin overview: entity counts plus total sales over
// orders whose payment completed.
type DashboardStats struct {
	Users         int64           `json:"users"`
	Products      int64           `json:"products"`
	Orders        int64           `json:"orders"`
	PendingOrders int64           `json:"pending_orders"`
	PendingQuotes int64           `json:"pending_quotes"`
	Transfers     int64           `json:"transfers"`
	TotalSales    decimal.Decimal `json:"total_sales"`
}

// AdminService computes aggregate statistics for the admin dashboard.
type AdminService struct {
	db *gorm.DB
}

// NewAdminService creates a new AdminService.
func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Overview gathers the dashboard counters in one pass.
func (s *AdminService) Overview() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		name  string
		query *gorm.DB
		dest  *int64
	}{
		{"users", s.db.Model(&models.User{}), &stats.Users},
		{"products", s.db.Model(&models.Product{}), &stats.Products},
		{"orders", s.db.Model(&models.Order{}), &stats.Orders},
		{"pending orders", s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending), &stats.PendingOrders},
		{"pending quotes", s.db.Model(&models.Quote{}).Where("status = ?", models.QuoteStatusPending), &stats.PendingQuotes},
		{"transfers", s.db.Model(&models.Transaction{}), &stats.Transfers},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
	}

	var totalSales decimal.NullDecimal
	err := s.db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&totalSales)
	if err != nil {
		return nil, fmt.Errorf("failed to sum completed sales: %w", err)
	}
	stats.TotalSales = totalSales.Decimal

	return stats, nil
}
