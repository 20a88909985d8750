package repositories

import "mboaconnect/internal/models"

// TransactionRepository defines the interface for money-transfer records.
type TransactionRepository interface {
	Create(txn *models.Transaction) error
	GetAll() ([]models.Transaction, error)
	GetByID(id string) (*models.Transaction, error)
	GetByRef(ref string) (*models.Transaction, error)
	// GetForParticipant returns transfers in which the given email or phone
	// appears on either side.
	GetForParticipant(email, phone string) ([]models.Transaction, error)
	Save(txn *models.Transaction) error
}
