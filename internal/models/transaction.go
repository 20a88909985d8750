package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransferStatus is the lifecycle state of a money transfer.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusFailed    TransferStatus = "failed"
	TransferStatusCancelled TransferStatus = "cancelled"
)

// Valid reports whether s is a known transfer status.
func (s TransferStatus) Valid() bool {
	switch s {
	case TransferStatusPending, TransferStatusCompleted, TransferStatusFailed,
		TransferStatusCancelled:
		return true
	}
	return false
}

// Transaction records a simulated money transfer between two parties.
// AmountReceived is derived from AmountSent minus fees, converted at
// ExchangeRate.
type Transaction struct {
	ID             string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SenderName     string          `json:"sender_name" gorm:"type:varchar(100)"`
	SenderEmail    string          `json:"sender_email" gorm:"type:varchar(255)"`
	SenderPhone    string          `json:"sender_phone" gorm:"type:varchar(30)"`
	ReceiverName   string          `json:"receiver_name" gorm:"type:varchar(100)"`
	ReceiverEmail  string          `json:"receiver_email" gorm:"type:varchar(255)"`
	ReceiverPhone  string          `json:"receiver_phone" gorm:"type:varchar(30)"`
	AmountSent     decimal.Decimal `json:"amount_sent" gorm:"type:decimal(10,2)"`
	CurrencySent   string          `json:"currency_sent" gorm:"type:varchar(3)"`
	AmountReceived decimal.Decimal `json:"amount_received" gorm:"type:decimal(10,2)"`
	CurrencyReceived string        `json:"currency_received" gorm:"type:varchar(3)"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate" gorm:"type:decimal(10,4)"`
	Fees           decimal.Decimal `json:"fees" gorm:"type:decimal(10,2)"`
	Status         TransferStatus  `json:"status" gorm:"type:varchar(20);default:pending"`
	TransactionRef string          `json:"transaction_ref" gorm:"uniqueIndex;type:varchar(64)"`
	gorm.Model     `json:"-"`
}
