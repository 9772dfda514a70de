package util

import (
	"testing"
)

func TestValidateAmount_Positive(t *testing.T) {
	testCases := []float64{0.01, 1.0, 100.5, 9999999.99}

	for _, amount := range testCases {
		err := ValidateAmount(amount)
		if err != nil {
			t.Errorf("ValidateAmount(%f) error = %v, want nil", amount, err)
		}
	}
}

func TestValidateAmount_Zero(t *testing.T) {
	err := ValidateAmount(0)

	if err == nil {
		t.Error("ValidateAmount(0) error = nil, want error")
	}
}

func TestValidateAmount_Negative(t *testing.T) {
	testCases := []float64{-0.01, -100, -9999.99}

	for _, amount := range testCases {
		err := ValidateAmount(amount)
		if err == nil {
			t.Errorf("ValidateAmount(%f) error = nil, want error", amount)
		}
	}
}

func TestValidateAmount_TooLarge(t *testing.T) {
	err := ValidateAmount(100000000)

	if err == nil {
		t.Error("ValidateAmount(100000000) error = nil, want error")
	}
}

func TestValidateDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-12-31",
		"2025-06-15",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err != nil {
			t.Errorf("ValidateDate(%q) error = %v, want nil", date, err)
		}
	}
}

func TestValidateDate_InvalidFormat(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err == nil {
			t.Errorf("ValidateDate(%q) error = nil, want error", date)
		}
	}
}

func TestValidateCategory_Valid(t *testing.T) {
	testCases := []string{"Alimentação", "Transporte", "Lazer", "Salário"}

	for _, category := range testCases {
		err := ValidateCategory(category)
		if err != nil {
			t.Errorf("ValidateCategory(%q) error = %v, want nil", category, err)
		}
	}
}

func TestValidateCategory_Empty(t *testing.T) {
	err := ValidateCategory("")

	if err == nil {
		t.Error("ValidateCategory(\"\") error = nil, want error")
	}
}

func TestValidateDayOfMonth_Range(t *testing.T) {
	for _, day := range []int{1, 15, 31} {
		if err := ValidateDayOfMonth(day); err != nil {
			t.Errorf("ValidateDayOfMonth(%d) error = %v, want nil", day, err)
		}
	}
	for _, day := range []int{0, -1, 32, 100} {
		if err := ValidateDayOfMonth(day); err == nil {
			t.Errorf("ValidateDayOfMonth(%d) error = nil, want error", day)
		}
	}
}

func TestValidateInstallments_Range(t *testing.T) {
	for _, n := range []int{1, 3, 12, 120} {
		if err := ValidateInstallments(n); err != nil {
			t.Errorf("ValidateInstallments(%d) error = %v, want nil", n, err)
		}
	}
	for _, n := range []int{0, -1, 121} {
		if err := ValidateInstallments(n); err == nil {
			t.Errorf("ValidateInstallments(%d) error = nil, want error", n)
		}
	}
}
