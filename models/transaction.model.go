package models

import (
	"gorm.io/gorm"
)

// Transaction statuses
const (
	TxnStatusPending   = "PENDING"
	TxnStatusCompleted = "COMPLETED"
	TxnStatusFailed    = "FAILED"
)

// Transactions is a purchase header; one row per checkout, any number of items
type Transactions struct {
	gorm.Model
	UserID      uint    `gorm:"index;not null"`
	Status      string  `gorm:"not null"` // PENDING, COMPLETED, FAILED
	GrossAmount float64 `gorm:"not null"` // sum of base prices
	NetAmount   float64 `gorm:"not null"` // after discount
	DiscountID  *uint   `gorm:"index"`    // discount consumed by this checkout, if any
	IsDeleted   bool    `gorm:"default:false"`
}

// TransactionItem is one purchased course within a transaction
type TransactionItem struct {
	gorm.Model
	TransactionID  uint    `gorm:"index;not null"`
	CourseID       uint    `gorm:"index;not null"`
	BasePrice      float64 `gorm:"not null"`
	DiscountID     *uint   `gorm:"index"` // set when a discount applied to this line
	DiscountAmount float64 `gorm:"default:0"`
	FinalPrice     float64 `gorm:"not null"`
	IsDeleted      bool    `gorm:"default:false"`
}
