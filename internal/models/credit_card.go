package models

import "time"

// CreditCard holds a card's billing-cycle configuration. Purchases made
// after ClosingDay roll over to the next month's bill.
//
// At most one card per user has IsDefault set; the first card a user
// registers becomes the default, and deleting the default promotes the
// oldest remaining card.
type CreditCard struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"index;not null"`
	Name       string `gorm:"size:64;not null"`
	ClosingDay int    `gorm:"not null"` // 1-31
	DueDay     int    `gorm:"not null"` // 1-31
	IsDefault  bool   `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
