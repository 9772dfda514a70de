package util

import (
	"fmt"
	"time"
)

// ValidateAmount checks that an amount is positive and below the sanity cap.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %f", amount)
	}
	if amount >= 10000000 {
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateCategory checks a category label (non-empty, reasonable length).
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("category is empty")
	}
	if len(category) > 64 {
		return fmt.Errorf("category too long, max 64 characters")
	}
	return nil
}

// ValidateDayOfMonth checks a closing/due/charge day (1-31).
func ValidateDayOfMonth(day int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("day of month out of range, got %d", day)
	}
	return nil
}

// ValidateInstallments checks an installment count for a credit-card purchase.
func ValidateInstallments(n int) error {
	if n < 1 {
		return fmt.Errorf("installments must be at least 1, got %d", n)
	}
	if n > 120 {
		return fmt.Errorf("installments too many, got %d", n)
	}
	return nil
}
