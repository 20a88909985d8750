package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuoteStatus is the review state of a security-service quote request.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusReviewed  QuoteStatus = "reviewed"
	QuoteStatusApproved  QuoteStatus = "approved"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusCompleted QuoteStatus = "completed"
)

// Valid reports whether s is a known quote status.
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusReviewed, QuoteStatusApproved,
		QuoteStatusRejected, QuoteStatusCompleted:
		return true
	}
	return false
}

// Quote is a request for a security-system service quote. UserID is empty
// when submitted anonymously.
type Quote struct {
	ID            string              `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        string              `json:"user_id" gorm:"index;type:varchar(36)"`
	ClientName    string              `json:"client_name" gorm:"type:varchar(100)"`
	ClientEmail   string              `json:"client_email" gorm:"type:varchar(255)"`
	ClientPhone   string              `json:"client_phone" gorm:"type:varchar(30)"`
	ServiceType   string              `json:"service_type" gorm:"type:varchar(100)"`
	Description   string              `json:"description" gorm:"type:text"`
	PreferredDate *time.Time          `json:"preferred_date"`
	Status        QuoteStatus         `json:"status" gorm:"type:varchar(20);default:pending"`
	AdminNotes    string              `json:"admin_notes" gorm:"type:text"`
	EstimatedCost decimal.NullDecimal `json:"estimated_cost" gorm:"type:decimal(10,2)"`
	gorm.Model    `json:"-"`
}
