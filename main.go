package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mboaconnect/internal/config"
	"mboaconnect/internal/handlers"
	"mboaconnect/internal/mailer"
	"mboaconnect/internal/middleware"
	"mboaconnect/internal/models"
	"mboaconnect/internal/repositories"
	"mboaconnect/internal/services"
	"mboaconnect/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Transaction{},
		&models.Quote{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// --- RabbitMQ ---
	// The app still serves orders if the broker is down; events are skipped.
	var mqClient *rabbitmq.Client
	mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, order events disabled: %v", err)
		mqClient = nil
	} else {
		defer mqClient.Close()
	}

	// --- Mailer ---
	var mailSender mailer.Sender
	if cfg.SMTPHost != "" {
		mailSender = mailer.New(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailFrom,
		})
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	transferRepo := repositories.NewGORMTransactionRepository(db)
	quoteRepo := repositories.NewGORMQuoteRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(db, orderRepo, userRepo, mqClient, mailSender)
	transferService := services.NewTransferService(transferRepo, mailSender)
	quoteService := services.NewQuoteService(quoteRepo, mailSender, cfg.AdminEmail)
	adminService := services.NewAdminService(db)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	transferHandler := handlers.NewTransferHandler(transferService, userService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	contactHandler := handlers.NewContactHandler(mailSender, cfg.AdminEmail)
	adminHandler := handlers.NewAdminHandler(adminService)

	// --- Fiber App ---
	app := fiber.New()

	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
	}))

	authRequired := middleware.AuthRequired(authService)
	adminRequired := middleware.AdminRequired()
	optionalAuth := middleware.OptionalAuth(authService)

	api := app.Group("/api")

	// Credential endpoints get a much tighter rate limit.
	api.Use("/auth", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
	}))

	authHandler.RegisterRoutes(api, authRequired)
	userHandler.RegisterRoutes(api, authRequired, adminRequired)
	productHandler.RegisterRoutes(api, authRequired, adminRequired)
	orderHandler.RegisterRoutes(api, authRequired, adminRequired)
	transferHandler.RegisterRoutes(api, authRequired, adminRequired)
	quoteHandler.RegisterRoutes(api, optionalAuth, authRequired, adminRequired)
	contactHandler.RegisterRoutes(api)
	adminHandler.RegisterRoutes(api, authRequired, adminRequired)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order Event Consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting order event consumer...")
			handler := func(event rabbitmq.OrderEvent) error {
				log.Printf("Order event %s: order=%s user=%s status=%s payment=%s total=%s",
					event.Event, event.OrderID, event.UserID, event.Status,
					event.PaymentStatus, event.TotalAmount)
				return nil
			}
			if consumerErr := mqClient.ConsumeOrderEvents(handler); consumerErr != nil {
				log.Printf("Failed to start order event consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
