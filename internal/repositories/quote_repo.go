package repositories

import "mboaconnect/internal/models"

// QuoteRepository defines the interface for security quote requests.
type QuoteRepository interface {
	Create(quote *models.Quote) error
	GetAll() ([]models.Quote, error)
	GetByID(id string) (*models.Quote, error)
	GetByUser(userID string) ([]models.Quote, error)
	Save(quote *models.Quote) error
}
