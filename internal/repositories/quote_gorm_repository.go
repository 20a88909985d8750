package repositories

import (
	"errors"
	"fmt"

	"mboaconnect/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMQuoteRepository is a GORM implementation of QuoteRepository.
type GORMQuoteRepository struct {
	db *gorm.DB
}

// NewGORMQuoteRepository creates a new instance of GORMQuoteRepository.
func NewGORMQuoteRepository(db *gorm.DB) *GORMQuoteRepository {
	return &GORMQuoteRepository{
		db: db,
	}
}

// Create creates a new quote request.
func (r *GORMQuoteRepository) Create(quote *models.Quote) error {
	if quote.ID == "" {
		quote.ID = uuid.New().String()
	}
	if err := r.db.Create(quote).Error; err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}
	return nil
}

// GetAll retrieves all quote requests, newest first.
func (r *GORMQuoteRepository) GetAll() ([]models.Quote, error) {
	var quotes []models.Quote
	if err := r.db.Order("created_at DESC").Find(&quotes).Error; err != nil {
		return nil, fmt.Errorf("failed to get all quotes: %w", err)
	}
	return quotes, nil
}

// GetByID retrieves a quote request by its ID.
func (r *GORMQuoteRepository) GetByID(id string) (*models.Quote, error) {
	var quote models.Quote
	if err := r.db.First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrQuoteNotFound, id)
		}
		return nil, fmt.Errorf("failed to get quote by ID %s: %w", id, err)
	}
	return &quote, nil
}

// GetByUser retrieves the quote requests submitted by a user, newest first.
func (r *GORMQuoteRepository) GetByUser(userID string) ([]models.Quote, error) {
	var quotes []models.Quote
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&quotes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get quotes for user %s: %w", userID, err)
	}
	return quotes, nil
}

// Save persists field changes on an existing quote request.
func (r *GORMQuoteRepository) Save(quote *models.Quote) error {
	res := r.db.Save(quote)
	if res.Error != nil {
		return fmt.Errorf("failed to save quote: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %s", ErrQuoteNotFound, quote.ID)
	}
	return nil
}
