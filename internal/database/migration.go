package database

import (
	"fmt"

	"github.com/solangegamboa/solarfin/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.CreditCard{},
		&models.Loan{},
		&models.RecurringTransaction{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
