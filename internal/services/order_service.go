package services

import (
	"errors"
	"fmt"
	"log"

	"mboaconnect/internal/mailer"
	"mboaconnect/internal/metrics"
	"mboaconnect/internal/models"
	"mboaconnect/internal/repositories"
	"mboaconnect/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Payment methods treated as settled at order creation. There is no gateway
// callback for these; the simulation marks them completed immediately.
var settledPaymentMethods = map[string]bool{
	"mobile_money":     true,
	"cash_on_delivery": true,
}

// CartItem is one client-supplied product/quantity pair.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest carries everything needed to place an order.
type CreateOrderRequest struct {
	Items               []CartItem      `json:"items"`
	ShippingAddress     string          `json:"shipping_address"`
	PaymentMethod       string          `json:"payment_method"`
	IsInternational     bool            `json:"is_international"`
	ShippingFees        decimal.Decimal `json:"shipping_fees"`
	ShippingCountryCode string          `json:"shipping_country_code"`
}

// orderLine is a validated cart line with the product name retained for
// notifications.
type orderLine struct {
	productName string
	item        models.OrderItem
}

// OrderService handles order business logic. Order creation runs on its own
// database transaction; everything else goes through the repositories.
type OrderService struct {
	db        *gorm.DB
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	mqClient  *rabbitmq.Client
	mailer    mailer.Sender
}

// NewOrderService creates a new OrderService. mqClient and mailSender may be
// nil; notifications are then skipped.
func NewOrderService(db *gorm.DB, orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client, mailSender mailer.Sender) *OrderService {
	return &OrderService{
		db:        db,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		mqClient:  mqClient,
		mailer:    mailSender,
	}
}

// CreateOrder validates the cart against inventory, computes the total,
// persists the order with its line items and decrements stock, all in one
// database transaction. Either every row is written or none is. Product
// rows are read inside the transaction with a row lock so that concurrent
// orders on the same product serialize; stock can never go negative.
func (s *OrderService) CreateOrder(userID string, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 || req.ShippingAddress == "" {
		metrics.OrderFailures.WithLabelValues("validation").Inc()
		return nil, NewValidationError("order must contain at least one item and a shipping address")
	}
	if req.IsInternational && req.ShippingCountryCode == "" {
		metrics.OrderFailures.WithLabelValues("validation").Inc()
		return nil, NewValidationError("shipping country code is required for international orders")
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			metrics.OrderFailures.WithLabelValues("validation").Inc()
			return nil, NewValidationError("item quantity must be at least 1 (product %s)", item.ProductID)
		}
	}

	shippingFees := req.ShippingFees.Round(2)

	order := &models.Order{
		ID:                  uuid.New().String(),
		UserID:              userID,
		ShippingAddress:     req.ShippingAddress,
		PaymentMethod:       req.PaymentMethod,
		IsInternational:     req.IsInternational,
		ShippingFees:        shippingFees,
		ShippingCountryCode: req.ShippingCountryCode,
	}

	var lines []orderLine

	err := s.db.Transaction(func(tx *gorm.DB) error {
		totalAmount := decimal.Zero
		lines = lines[:0]

		for _, item := range req.Items {
			var product models.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: id %s", repositories.ErrProductNotFound, item.ProductID)
				}
				return fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
			}

			if product.Stock < item.Quantity {
				return &InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   item.Quantity,
				}
			}

			// Snapshot the unit price; later product price edits must not
			// change this order.
			totalAmount = totalAmount.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			lines = append(lines, orderLine{
				productName: product.Name,
				item: models.OrderItem{
					ID:        uuid.New().String(),
					OrderID:   order.ID,
					ProductID: product.ID,
					Quantity:  item.Quantity,
					Price:     product.Price,
				},
			})

			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return fmt.Errorf("failed to update stock for product %s: %w", product.ID, err)
			}
		}

		if req.IsInternational {
			totalAmount = totalAmount.Add(shippingFees)
		}
		order.TotalAmount = totalAmount.Round(2)

		order.Status = models.OrderStatusPending
		order.PaymentStatus = models.PaymentStatusPending
		if settledPaymentMethods[req.PaymentMethod] {
			order.Status = models.OrderStatusProcessing
			order.PaymentStatus = models.PaymentStatusCompleted
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range lines {
			if err := tx.Create(&lines[i].item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		var stockErr *InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			metrics.OrderFailures.WithLabelValues("insufficient_stock").Inc()
		case errors.Is(err, repositories.ErrProductNotFound):
			metrics.OrderFailures.WithLabelValues("not_found").Inc()
		default:
			metrics.OrderFailures.WithLabelValues("internal").Inc()
		}
		return nil, err
	}

	for i := range lines {
		order.Items = append(order.Items, lines[i].item)
	}

	metrics.OrdersCreated.Inc()

	// The order is committed; notification failures must not affect it.
	go s.notifyOrderCreated(order, lines)

	return order, nil
}

// notifyOrderCreated publishes an order.created event and emails the buyer
// a confirmation. Both are best-effort.
func (s *OrderService) notifyOrderCreated(order *models.Order, lines []orderLine) {
	if s.mqClient != nil {
		event := rabbitmq.OrderEvent{
			Event:         "order.created",
			OrderID:       order.ID,
			UserID:        order.UserID,
			Status:        string(order.Status),
			PaymentStatus: string(order.PaymentStatus),
			TotalAmount:   order.TotalAmount.StringFixed(2),
		}
		if err := s.mqClient.PublishOrderEvent(event); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		}
	}

	if s.mailer == nil {
		return
	}

	user, err := s.userRepo.GetByID(order.UserID)
	if err != nil {
		log.Printf("Warning: cannot send confirmation for order %s, user lookup failed: %v", order.ID, err)
		return
	}

	rows := ""
	for _, line := range lines {
		rows += fmt.Sprintf("<tr><td>%s</td><td>%d</td><td>%s XAF</td></tr>",
			line.productName, line.item.Quantity, line.item.Price.StringFixed(2))
	}
	msg := mailer.Message{
		To:      user.Email,
		Subject: fmt.Sprintf("Your MboaConnect order #%s has been received", order.ID),
		HTML: fmt.Sprintf(
			"<p>Thank you for your order, %s!</p>"+
				"<p>Order <strong>#%s</strong> is now <strong>%s</strong>.</p>"+
				"<table><tr><th>Item</th><th>Qty</th><th>Price</th></tr>%s</table>"+
				"<p>Shipping fees: %s XAF</p><p><strong>Total: %s XAF</strong></p>"+
				"<p>Shipping address: %s</p><p>Payment method: %s</p>",
			user.FirstName, order.ID, order.Status, rows,
			order.ShippingFees.StringFixed(2), order.TotalAmount.StringFixed(2),
			order.ShippingAddress, order.PaymentMethod),
		Text: fmt.Sprintf("Your MboaConnect order #%s has been received. Total: %s XAF.",
			order.ID, order.TotalAmount.StringFixed(2)),
	}
	if err := s.mailer.Send(msg); err != nil {
		metrics.EmailFailures.Inc()
		log.Printf("Warning: failed to send order confirmation for order %s: %v", order.ID, err)
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetMyOrders retrieves the orders belonging to a user.
func (s *OrderService) GetMyOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrderByID retrieves a single order. Only the order's owner or an admin
// may read it.
func (s *OrderService) GetOrderByID(id, requesterID string, isAdmin bool) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID && !isAdmin {
		return nil, ErrForbidden
	}
	return order, nil
}

// UpdateOrderStatus transitions the fulfillment status of an order.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, NewValidationError("invalid order status: %s", status)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	order.Status = status
	if err := s.orderRepo.Save(order); err != nil {
		return nil, fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return order, nil
}

// UpdatePaymentStatus transitions the payment status of an order. A payment
// completing while the order is still pending advances the order to
// processing. The buyer is emailed about the change, best-effort.
func (s *OrderService) UpdatePaymentStatus(id string, paymentStatus models.PaymentStatus) (*models.Order, error) {
	if !paymentStatus.Valid() {
		return nil, NewValidationError("invalid payment status: %s", paymentStatus)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	order.PaymentStatus = paymentStatus
	if paymentStatus == models.PaymentStatusCompleted && order.Status == models.OrderStatusPending {
		order.Status = models.OrderStatusProcessing
	}

	if err := s.orderRepo.Save(order); err != nil {
		return nil, fmt.Errorf("failed to update payment status for order %s: %w", id, err)
	}

	if s.mailer != nil {
		if user, userErr := s.userRepo.GetByID(order.UserID); userErr == nil {
			msg := mailer.Message{
				To:      user.Email,
				Subject: fmt.Sprintf("Payment update for your MboaConnect order #%s", order.ID),
				HTML: fmt.Sprintf(
					"<p>Hello %s,</p><p>The payment status of order <strong>#%s</strong> is now <strong>%s</strong>. Order status: <strong>%s</strong>.</p>",
					user.FirstName, order.ID, order.PaymentStatus, order.Status),
				Text: fmt.Sprintf("Payment for order #%s is now %s.", order.ID, order.PaymentStatus),
			}
			if mailErr := s.mailer.Send(msg); mailErr != nil {
				metrics.EmailFailures.Inc()
				log.Printf("Warning: failed to send payment status email for order %s: %v", order.ID, mailErr)
			}
		} else {
			log.Printf("Warning: cannot send payment status email for order %s: %v", order.ID, userErr)
		}
	}

	return order, nil
}
