package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"mboaconnect/internal/mailer"
	"mboaconnect/internal/metrics"
	"mboaconnect/internal/models"
	"mboaconnect/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Exchange rates against the XAF. Unlisted pairs convert at parity.
var exchangeRates = map[string]decimal.Decimal{
	"EUR:XAF": decimal.RequireFromString("655.957"),
	"XAF:EUR": decimal.NewFromInt(1).Div(decimal.RequireFromString("655.957")),
	"USD:XAF": decimal.NewFromInt(600),
	"XAF:USD": decimal.NewFromInt(1).Div(decimal.NewFromInt(600)),
}

var (
	transferFeeRate  = decimal.RequireFromString("0.01")
	transferFeeFixed = decimal.NewFromInt(500)
)

// SendMoneyRequest is a request to initiate a money transfer.
type SendMoneyRequest struct {
	SenderName       string          `json:"sender_name"`
	SenderEmail      string          `json:"sender_email"`
	SenderPhone      string          `json:"sender_phone"`
	ReceiverName     string          `json:"receiver_name"`
	ReceiverEmail    string          `json:"receiver_email"`
	ReceiverPhone    string          `json:"receiver_phone"`
	Amount           decimal.Decimal `json:"amount"`
	CurrencySent     string          `json:"currency_sent"`
	CurrencyReceived string          `json:"currency_received"`
}

// TransferService handles the money transfer simulation.
type TransferService struct {
	repo   repositories.TransactionRepository
	mailer mailer.Sender
}

// NewTransferService creates a new TransferService. mailSender may be nil.
func NewTransferService(repo repositories.TransactionRepository, mailSender mailer.Sender) *TransferService {
	return &TransferService{
		repo:   repo,
		mailer: mailSender,
	}
}

// exchangeRate returns the conversion rate from one currency to another.
func exchangeRate(from, to string) decimal.Decimal {
	if rate, ok := exchangeRates[from+":"+to]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}

// newTransactionRef builds a unique, human-quotable transfer reference.
func newTransactionRef() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("TRF-%d-%s", time.Now().UnixMilli(), suffix)
}

// SendMoney records a new pending transfer. Fees are 1% of the amount plus
// a 500 fixed charge in the sending currency; the receiver gets the net
// amount converted at the current rate.
func (s *TransferService) SendMoney(req SendMoneyRequest) (*models.Transaction, error) {
	if req.SenderName == "" || req.SenderEmail == "" || req.ReceiverName == "" || req.ReceiverPhone == "" {
		return nil, NewValidationError("sender name, sender email, receiver name and receiver phone are required")
	}
	if req.CurrencySent == "" || req.CurrencyReceived == "" {
		return nil, NewValidationError("both currencies are required")
	}
	if !req.Amount.IsPositive() {
		return nil, NewValidationError("transfer amount must be positive")
	}

	fees := req.Amount.Mul(transferFeeRate).Add(transferFeeFixed).Round(2)
	if fees.GreaterThanOrEqual(req.Amount) {
		return nil, NewValidationError("transfer amount must exceed the fees (%s %s)", fees.StringFixed(2), req.CurrencySent)
	}

	rate := exchangeRate(req.CurrencySent, req.CurrencyReceived)
	amountReceived := req.Amount.Sub(fees).Mul(rate).Round(2)

	tx := &models.Transaction{
		ID:               uuid.New().String(),
		SenderName:       req.SenderName,
		SenderEmail:      req.SenderEmail,
		SenderPhone:      req.SenderPhone,
		ReceiverName:     req.ReceiverName,
		ReceiverEmail:    req.ReceiverEmail,
		ReceiverPhone:    req.ReceiverPhone,
		AmountSent:       req.Amount.Round(2),
		CurrencySent:     req.CurrencySent,
		AmountReceived:   amountReceived,
		CurrencyReceived: req.CurrencyReceived,
		ExchangeRate:     rate.Round(4),
		Fees:             fees,
		Status:           models.TransferStatusPending,
		TransactionRef:   newTransactionRef(),
	}

	if err := s.repo.Create(tx); err != nil {
		return nil, fmt.Errorf("failed to record transfer: %w", err)
	}

	metrics.TransfersInitiated.Inc()

	if s.mailer != nil {
		msg := mailer.Message{
			To:      tx.SenderEmail,
			Subject: fmt.Sprintf("Transfer %s initiated", tx.TransactionRef),
			HTML: fmt.Sprintf(
				"<p>Hello %s,</p><p>Your transfer <strong>%s</strong> of %s %s to %s has been initiated.</p>"+
					"<p>Fees: %s %s. The recipient will receive %s %s.</p>",
				tx.SenderName, tx.TransactionRef, tx.AmountSent.StringFixed(2), tx.CurrencySent,
				tx.ReceiverName, tx.Fees.StringFixed(2), tx.CurrencySent,
				tx.AmountReceived.StringFixed(2), tx.CurrencyReceived),
			Text: fmt.Sprintf("Your transfer %s of %s %s has been initiated.",
				tx.TransactionRef, tx.AmountSent.StringFixed(2), tx.CurrencySent),
		}
		if err := s.mailer.Send(msg); err != nil {
			metrics.EmailFailures.Inc()
			log.Printf("Warning: failed to send transfer confirmation %s: %v", tx.TransactionRef, err)
		}
	}

	return tx, nil
}

// GetTransactions returns every transfer for admins, and only the transfers
// the user participates in (by email or phone) otherwise.
func (s *TransferService) GetTransactions(user *models.User) ([]models.Transaction, error) {
	if user.IsAdmin {
		return s.repo.GetAll()
	}
	return s.repo.GetForParticipant(user.Email, user.PhoneNumber)
}

// GetTransactionByRef looks a transfer up by its public reference.
func (s *TransferService) GetTransactionByRef(ref string) (*models.Transaction, error) {
	return s.repo.GetByRef(ref)
}

// UpdateTransactionStatus transitions a transfer and notifies both parties,
// best-effort.
func (s *TransferService) UpdateTransactionStatus(id string, status models.TransferStatus) (*models.Transaction, error) {
	if !status.Valid() {
		return nil, NewValidationError("invalid transfer status: %s", status)
	}

	tx, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	tx.Status = status
	if err := s.repo.Save(tx); err != nil {
		return nil, fmt.Errorf("failed to update transfer %s: %w", tx.TransactionRef, err)
	}

	if s.mailer != nil {
		for _, to := range []string{tx.SenderEmail, tx.ReceiverEmail} {
			if to == "" {
				continue
			}
			msg := mailer.Message{
				To:      to,
				Subject: fmt.Sprintf("Transfer %s is now %s", tx.TransactionRef, tx.Status),
				HTML: fmt.Sprintf("<p>Transfer <strong>%s</strong> of %s %s is now <strong>%s</strong>.</p>",
					tx.TransactionRef, tx.AmountSent.StringFixed(2), tx.CurrencySent, tx.Status),
				Text: fmt.Sprintf("Transfer %s is now %s.", tx.TransactionRef, tx.Status),
			}
			if mailErr := s.mailer.Send(msg); mailErr != nil {
				metrics.EmailFailures.Inc()
				log.Printf("Warning: failed to send transfer status email for %s: %v", tx.TransactionRef, mailErr)
			}
		}
	}

	return tx, nil
}
