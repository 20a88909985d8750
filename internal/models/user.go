package models

import "gorm.io/gorm"

// User represents a customer or administrator account.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FirstName    string `json:"first_name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	LastName     string `json:"last_name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email        string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PhoneNumber  string `json:"phone_number" gorm:"type:varchar(30)" validate:"omitempty,max=30"`
	Password     string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Address      string `json:"address" gorm:"type:varchar(255)"`
	City         string `json:"city" gorm:"type:varchar(100)"`
	Country      string `json:"country" gorm:"type:varchar(100)"`
	IsAdmin      bool   `json:"is_admin" gorm:"default:false"`
	RefreshToken string `json:"-" gorm:"type:varchar(512)"` // raw refresh token, cleared on logout
	gorm.Model   `json:"-"`
}
