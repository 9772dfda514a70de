package models

import "time"

// RecurringTransaction is a fixed monthly charge. Amount is the monthly
// value, not a total. Items paid by credit card reference the card and are
// counted through the card's bill, not directly.
type RecurringTransaction struct {
	ID            uint    `gorm:"primaryKey"`
	UserID        uint    `gorm:"index;not null"`
	Description   string  `gorm:"size:255;not null"`
	Amount        float64 `gorm:"not null"`
	Category      string  `gorm:"size:64;not null"`
	PaymentMethod string  `gorm:"size:32;not null;default:cash_or_debit"`
	CreditCardID  *uint   `gorm:"index"`
	DayOfMonth    int     `gorm:"not null"` // 1-31
	CreatedAt     time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
