package repositories

import "mboaconnect/internal/models"

// ProductRepository defines the interface for product data access outside
// the order transaction. The order coordinator reads and decrements stock
// on its own transaction handle for row-level locking.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
