package repositories

import (
	"errors"
	"fmt"

	"mboaconnect/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTransactionRepository is a GORM implementation of TransactionRepository.
type GORMTransactionRepository struct {
	db *gorm.DB
}

// NewGORMTransactionRepository creates a new instance of GORMTransactionRepository.
func NewGORMTransactionRepository(db *gorm.DB) *GORMTransactionRepository {
	return &GORMTransactionRepository{
		db: db,
	}
}

// Create creates a new transfer record.
func (r *GORMTransactionRepository) Create(txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if err := r.db.Create(txn).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetAll retrieves all transfers, newest first.
func (r *GORMTransactionRepository) GetAll() ([]models.Transaction, error) {
	var txns []models.Transaction
	if err := r.db.Order("created_at DESC").Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("failed to get all transactions: %w", err)
	}
	return txns, nil
}

// GetByID retrieves a transfer by its ID.
func (r *GORMTransactionRepository) GetByID(id string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.First(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrTransactionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get transaction by ID %s: %w", id, err)
	}
	return &txn, nil
}

// GetByRef retrieves a transfer by its public reference number.
func (r *GORMTransactionRepository) GetByRef(ref string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.First(&txn, "transaction_ref = ?", ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ref %s", ErrTransactionNotFound, ref)
		}
		return nil, fmt.Errorf("failed to get transaction by ref %s: %w", ref, err)
	}
	return &txn, nil
}

// GetForParticipant retrieves transfers where the email or phone matches
// the sender or the receiver, newest first. An empty phone must not match
// transfers that simply left the phone blank.
func (r *GORMTransactionRepository) GetForParticipant(email, phone string) ([]models.Transaction, error) {
	var txns []models.Transaction
	query := r.db.Where("sender_email = ? OR receiver_email = ?", email, email)
	if phone != "" {
		query = query.Or("sender_phone = ? OR receiver_phone = ?", phone, phone)
	}
	err := query.Order("created_at DESC").Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for participant: %w", err)
	}
	return txns, nil
}

// Save persists field changes on an existing transfer.
func (r *GORMTransactionRepository) Save(txn *models.Transaction) error {
	res := r.db.Save(txn)
	if res.Error != nil {
		return fmt.Errorf("failed to save transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %s", ErrTransactionNotFound, txn.ID)
	}
	return nil
}
