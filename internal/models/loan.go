package models

import "time"

// Loan is a fixed-installment contract. The number of paid installments is
// never stored; it is derived from ContractDate (the contract month counts
// as installment 1).
type Loan struct {
	ID                uint      `gorm:"primaryKey"`
	UserID            uint      `gorm:"index;not null"`
	InstitutionName   string    `gorm:"size:128;not null"`
	InstallmentAmount float64   `gorm:"not null"`
	TotalInstallments int       `gorm:"not null"`
	ContractDate      time.Time `gorm:"not null"`
	CreatedAt         time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
