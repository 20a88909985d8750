package repositories

import "mboaconnect/internal/models"

// OrderRepository defines the interface for order reads and status
// mutations. Order creation is transactional and handled by the order
// service directly.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	Save(order *models.Order) error
}
