package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the catalog. Stock must never go negative;
// the order transaction checks availability before decrementing.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string          `json:"name" gorm:"type:varchar(255)" validate:"required,min=2,max=255"`
	Description string          `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Category    string          `json:"category" gorm:"type:varchar(100)" validate:"required,max=100"`
	ImageURL    string          `json:"image_url" gorm:"type:varchar(512)" validate:"omitempty,url"`
	gorm.Model  `json:"-"`
}
