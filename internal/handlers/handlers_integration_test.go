package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"mboaconnect/internal/handlers"
	"mboaconnect/internal/middleware"
	"mboaconnect/internal/models"
	"mboaconnect/internal/repositories"
	"mboaconnect/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// testEnv bundles the app and DB handles the tests poke at directly.
type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

// setupApp wires the full API against a fresh in-memory database, without
// RabbitMQ or SMTP.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
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

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	transferRepo := repositories.NewGORMTransactionRepository(db)
	quoteRepo := repositories.NewGORMQuoteRepository(db)

	authService := services.NewAuthService(userRepo, "test_jwt_secret", "test_refresh_secret", 15*time.Minute, 24*time.Hour)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(db, orderRepo, userRepo, nil, nil)
	transferService := services.NewTransferService(transferRepo, nil)
	quoteService := services.NewQuoteService(quoteRepo, nil, "")
	adminService := services.NewAdminService(db)

	app := fiber.New()
	api := app.Group("/api")

	authRequired := middleware.AuthRequired(authService)
	adminRequired := middleware.AdminRequired()
	optionalAuth := middleware.OptionalAuth(authService)

	handlers.NewAuthHandler(authService).RegisterRoutes(api, authRequired)
	handlers.NewUserHandler(userService).RegisterRoutes(api, authRequired, adminRequired)
	handlers.NewProductHandler(productService).RegisterRoutes(api, authRequired, adminRequired)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, authRequired, adminRequired)
	handlers.NewTransferHandler(transferService, userService).RegisterRoutes(api, authRequired, adminRequired)
	handlers.NewQuoteHandler(quoteService).RegisterRoutes(api, optionalAuth, authRequired, adminRequired)
	handlers.NewAdminHandler(adminService).RegisterRoutes(api, authRequired, adminRequired)

	return &testEnv{app: app, db: db}
}

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// doJSON performs a JSON request against the test app and decodes the body.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		// List endpoints return arrays; ignore decode errors for those.
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// registerAndLogin creates a user and returns their access token and ID.
func (e *testEnv) registerAndLogin(t *testing.T, email string, admin bool) (string, string) {
	t.Helper()

	resp, _ := e.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"first_name": "Test",
		"last_name":  "User",
		"email":      email,
		"password":   "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, e.db.First(&user, "email = ?", email).Error)

	if admin {
		require.NoError(t, e.db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("is_admin", true).Error)
	}

	// Log in after any admin promotion so the token carries the right claims.
	resp, body := e.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tokens := body["tokens"].(map[string]interface{})
	return tokens["access_token"].(string), user.ID
}

func (e *testEnv) seedProduct(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New().String(),
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		Category: "security",
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func TestAuthRegisterAndLogin(t *testing.T) {
	env := setupApp(t)

	resp, body := env.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"first_name": "Amina",
		"last_name":  "Ngassa",
		"email":      "amina@example.com",
		"password":   "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, body, "tokens")

	// The password travels in on the wire but never back out.
	registered := body["user"].(map[string]interface{})
	assert.Equal(t, "amina@example.com", registered["email"])
	assert.NotContains(t, registered, "password")

	// The submitted password was actually stored (hashed), not dropped by
	// body decoding.
	var stored models.User
	require.NoError(t, env.db.First(&stored, "email = ?", "amina@example.com").Error)
	assert.NotEmpty(t, stored.Password)
	assert.NotEqual(t, "password123", stored.Password)

	// A missing password is a validation error
	resp, body = env.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"first_name": "No",
		"last_name":  "Password",
		"email":      "nopass@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["message"])

	// Duplicate email is a conflict
	resp, _ = env.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"first_name": "Amina",
		"last_name":  "Ngassa",
		"email":      "amina@example.com",
		"password":   "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Wrong password is rejected
	resp, _ = env.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "amina@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = env.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "amina@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "tokens")
}

func TestAuthRefreshRotation(t *testing.T) {
	env := setupApp(t)
	env.registerAndLogin(t, "amina@example.com", false)

	resp, body := env.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "amina@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	refresh := body["tokens"].(map[string]interface{})["refresh_token"].(string)

	resp, _ = env.doJSON(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refresh_token": refresh,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The old token was rotated out and cannot be replayed.
	resp, _ = env.doJSON(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refresh_token": refresh,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductRoutesAuthorization(t *testing.T) {
	env := setupApp(t)
	userToken, _ := env.registerAndLogin(t, "user@example.com", false)
	adminToken, _ := env.registerAndLogin(t, "admin@example.com", true)

	newProduct := map[string]interface{}{
		"name":     "Security Camera",
		"price":    "125.00",
		"stock":    10,
		"category": "cctv",
	}

	// Anonymous write is unauthorized
	resp, _ := env.doJSON(t, http.MethodPost, "/api/products/", "", newProduct)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Authenticated non-admin write is forbidden
	resp, _ = env.doJSON(t, http.MethodPost, "/api/products/", userToken, newProduct)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin write succeeds
	resp, body := env.doJSON(t, http.MethodPost, "/api/products/", adminToken, newProduct)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Security Camera", body["name"])

	// Anonymous read is public
	resp, _ = env.doJSON(t, http.MethodGet, "/api/products/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOrderFlow(t *testing.T) {
	env := setupApp(t)
	userToken, userID := env.registerAndLogin(t, "buyer@example.com", false)
	product := env.seedProduct(t, "Door Sensor", "15.00", 4)

	// Placing an order requires authentication
	resp, _ := env.doJSON(t, http.MethodPost, "/api/orders/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	orderReq := map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": product.ID, "quantity": 2},
		},
		"shipping_address": "Douala",
		"payment_method":   "mobile_money",
	}
	resp, body := env.doJSON(t, http.MethodPost, "/api/orders/", userToken, orderReq)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "30", body["total_amount"])
	assert.Equal(t, "processing", body["status"])
	assert.Equal(t, "completed", body["payment_status"])
	assert.Equal(t, userID, body["user_id"])
	orderID := body["id"].(string)

	// Overselling is a bad request and leaves stock alone
	orderReq["items"] = []map[string]interface{}{{"product_id": product.ID, "quantity": 10}}
	resp, body = env.doJSON(t, http.MethodPost, "/api/orders/", userToken, orderReq)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "insufficient stock")

	var updated models.Product
	require.NoError(t, env.db.First(&updated, "id = ?", product.ID).Error)
	assert.Equal(t, 2, updated.Stock)

	// The buyer sees their order; a stranger does not
	resp, _ = env.doJSON(t, http.MethodGet, "/api/orders/"+orderID, userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	strangerToken, _ := env.registerAndLogin(t, "stranger@example.com", false)
	resp, _ = env.doJSON(t, http.MethodGet, "/api/orders/"+orderID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Listing every order is admin-only
	resp, _ = env.doJSON(t, http.MethodGet, "/api/orders/", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken, _ := env.registerAndLogin(t, "admin@example.com", true)
	resp, _ = env.doJSON(t, http.MethodGet, "/api/orders/", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Admin ships the order
	resp, body = env.doJSON(t, http.MethodPatch, "/api/orders/"+orderID+"/status", adminToken,
		map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "shipped", body["status"])
}

func TestTransferFlow(t *testing.T) {
	env := setupApp(t)
	userToken, _ := env.registerAndLogin(t, "sender@example.com", false)

	transferReq := map[string]interface{}{
		"sender_name":       "Sender",
		"sender_email":      "sender@example.com",
		"sender_phone":      "+237600000001",
		"receiver_name":     "Receiver",
		"receiver_email":    "receiver@example.com",
		"receiver_phone":    "+237600000002",
		"amount":            "100000",
		"currency_sent":     "XAF",
		"currency_received": "XAF",
	}
	resp, body := env.doJSON(t, http.MethodPost, "/api/transfers/", userToken, transferReq)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])
	ref := body["transaction_ref"].(string)

	resp, body = env.doJSON(t, http.MethodGet, "/api/transfers/"+ref, userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ref, body["transaction_ref"])

	// Status changes are admin-only
	txID := body["id"].(string)
	resp, _ = env.doJSON(t, http.MethodPatch, "/api/transfers/"+txID+"/status", userToken,
		map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken, _ := env.registerAndLogin(t, "admin@example.com", true)
	resp, body = env.doJSON(t, http.MethodPatch, "/api/transfers/"+txID+"/status", adminToken,
		map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", body["status"])
}

func TestQuoteFlow(t *testing.T) {
	env := setupApp(t)

	// Anonymous submission is allowed
	resp, body := env.doJSON(t, http.MethodPost, "/api/quotes/", "", map[string]interface{}{
		"client_name":  "Walk-in Client",
		"client_email": "client@example.com",
		"service_type": "cctv",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "", body["user_id"])
	quoteID := body["id"].(string)

	// An authenticated submission is attributed to the account
	userToken, userID := env.registerAndLogin(t, "amina@example.com", false)
	resp, body = env.doJSON(t, http.MethodPost, "/api/quotes/", userToken, map[string]interface{}{
		"client_name":  "Amina Ngassa",
		"client_email": "amina@example.com",
		"service_type": "home_alarm",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, userID, body["user_id"])

	resp, _ = env.doJSON(t, http.MethodGet, "/api/quotes/my", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Review is admin-only
	adminToken, _ := env.registerAndLogin(t, "admin@example.com", true)
	resp, body = env.doJSON(t, http.MethodPatch, "/api/quotes/"+quoteID, adminToken, map[string]interface{}{
		"status":         "approved",
		"admin_notes":    "Install next week",
		"estimated_cost": "250000",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", body["status"])
}

func TestAdminStats(t *testing.T) {
	env := setupApp(t)
	userToken, _ := env.registerAndLogin(t, "user@example.com", false)
	adminToken, _ := env.registerAndLogin(t, "admin@example.com", true)
	product := env.seedProduct(t, "Camera", "20.00", 5)

	orderReq := map[string]interface{}{
		"items":            []map[string]interface{}{{"product_id": product.ID, "quantity": 1}},
		"shipping_address": "Douala",
		"payment_method":   "mobile_money",
	}
	resp, _ := env.doJSON(t, http.MethodPost, "/api/orders/", userToken, orderReq)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = env.doJSON(t, http.MethodGet, "/api/admin/stats", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := env.doJSON(t, http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["users"])
	assert.Equal(t, float64(1), body["orders"])
	assert.Equal(t, float64(1), body["products"])
}
