package services_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"mboaconnect/internal/models"
	"mboaconnect/internal/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAdminService(t *testing.T) (*services.AdminService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:adminsvc_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Transaction{},
		&models.Quote{},
	))

	return services.NewAdminService(db), db
}

func TestAdminService_Overview(t *testing.T) {
	service, db := setupAdminService(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.User{
			ID:    uuid.New().String(),
			Email: fmt.Sprintf("user%d@example.com", i),
		}).Error)
	}
	require.NoError(t, db.Create(&models.Product{ID: uuid.New().String(), Name: "Camera"}).Error)

	orders := []models.Order{
		{ID: uuid.New().String(), Status: models.OrderStatusPending, PaymentStatus: models.PaymentStatusPending,
			TotalAmount: decimal.RequireFromString("10.00")},
		{ID: uuid.New().String(), Status: models.OrderStatusProcessing, PaymentStatus: models.PaymentStatusCompleted,
			TotalAmount: decimal.RequireFromString("25.50")},
		{ID: uuid.New().String(), Status: models.OrderStatusDelivered, PaymentStatus: models.PaymentStatusCompleted,
			TotalAmount: decimal.RequireFromString("4.50")},
	}
	for i := range orders {
		require.NoError(t, db.Create(&orders[i]).Error)
	}

	require.NoError(t, db.Create(&models.Quote{ID: uuid.New().String(), Status: models.QuoteStatusPending}).Error)
	require.NoError(t, db.Create(&models.Quote{ID: uuid.New().String(), Status: models.QuoteStatusApproved}).Error)
	require.NoError(t, db.Create(&models.Transaction{
		ID: uuid.New().String(), TransactionRef: "TRF-1-AAAAAAAA", Status: models.TransferStatusPending,
	}).Error)

	stats, err := service.Overview()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Users)
	assert.Equal(t, int64(1), stats.Products)
	assert.Equal(t, int64(3), stats.Orders)
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, int64(1), stats.PendingQuotes)
	assert.Equal(t, int64(1), stats.Transfers)

	// Only completed payments count toward sales.
	assert.Equal(t, "30.00", stats.TotalSales.StringFixed(2))
}

func TestAdminService_Overview_EmptyDatabase(t *testing.T) {
	service, _ := setupAdminService(t)

	stats, err := service.Overview()
	require.NoError(t, err)
	assert.Zero(t, stats.Orders)
	assert.Equal(t, "0.00", stats.TotalSales.StringFixed(2))
}
