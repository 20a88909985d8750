package repositories_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"mboaconnect/internal/models"
	"mboaconnect/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

func setupTransactionRepo(t *testing.T) (*repositories.GORMTransactionRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:txrepo_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Transaction{}))

	return repositories.NewGORMTransactionRepository(db), db
}

func seedTransfer(t *testing.T, db *gorm.DB, senderEmail, senderPhone, receiverEmail, receiverPhone string) *models.Transaction {
	t.Helper()
	txn := &models.Transaction{
		ID:             uuid.New().String(),
		SenderEmail:    senderEmail,
		SenderPhone:    senderPhone,
		ReceiverEmail:  receiverEmail,
		ReceiverPhone:  receiverPhone,
		Status:         models.TransferStatusPending,
		TransactionRef: "TRF-1-" + uuid.New().String()[:8],
	}
	require.NoError(t, db.Create(txn).Error)
	return txn
}

func TestGetForParticipant_MatchesEmailOrPhone(t *testing.T) {
	repo, db := setupTransactionRepo(t)

	mine := seedTransfer(t, db, "amina@example.com", "+237600000001", "paul@example.com", "+237600000002")
	byPhone := seedTransfer(t, db, "other@example.com", "", "third@example.com", "+237600000001")
	seedTransfer(t, db, "other@example.com", "", "third@example.com", "")

	txns, err := repo.GetForParticipant("amina@example.com", "+237600000001")
	require.NoError(t, err)
	require.Len(t, txns, 2)

	ids := []string{txns[0].ID, txns[1].ID}
	assert.Contains(t, ids, mine.ID)
	assert.Contains(t, ids, byPhone.ID)
}

func TestGetForParticipant_EmptyPhoneDoesNotMatchBlankPhones(t *testing.T) {
	repo, db := setupTransactionRepo(t)

	// Both sides of this transfer left the phone blank.
	seedTransfer(t, db, "other@example.com", "", "third@example.com", "")
	mine := seedTransfer(t, db, "amina@example.com", "", "paul@example.com", "")

	txns, err := repo.GetForParticipant("amina@example.com", "")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, mine.ID, txns[0].ID)
}
