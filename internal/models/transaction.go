package models

import "time"

// Payment methods accepted on transactions and recurring items.
const (
	PaymentCashOrDebit = "cash_or_debit"
	PaymentCreditCard  = "credit_card"
)

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is a single income or expense record. Records are immutable
// once created: the API only ever creates, lists and deletes them.
type Transaction struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	Description string    `gorm:"size:255;not null"`
	Amount      float64   `gorm:"not null"` // always positive; Type carries the sign
	Date        time.Time `gorm:"index;not null"`
	Type        string    `gorm:"size:16;index;not null"` // income / expense
	Category    string    `gorm:"size:64;not null"`

	// cash_or_debit by default; credit_card purchases carry the card and
	// the number of installments the amount is split over.
	PaymentMethod string `gorm:"size:32;not null;default:cash_or_debit"`
	CreditCardID  *uint  `gorm:"index"`
	Installments  int    `gorm:"default:0"`

	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
