package finance

import (
	"math"
	"testing"
	"time"

	"github.com/solangegamboa/solarfin/internal/models"
)

func TestForecast_SumsThreeSources(t *testing.T) {
	ref := date(2025, time.June, 1)

	cards := []models.CreditCard{{ID: 1, ClosingDay: 25, DueDay: 10}}
	// 450 in 3 installments, purchased before closing: 150 on June's bill
	purchases := []models.Transaction{cardPurchase(1, 450, date(2025, time.June, 5), 3)}
	// active loan, 200 per installment
	loans := []models.Loan{{
		InstitutionName:   "Banco Azul",
		InstallmentAmount: 200,
		TotalInstallments: 24,
		ContractDate:      date(2025, time.January, 10),
	}}
	// 50 cash recurring
	recurring := []models.RecurringTransaction{{
		Description: "Streaming", Amount: 50, PaymentMethod: models.PaymentCashOrDebit, DayOfMonth: 5,
	}}

	got := Forecast(ref, cards, purchases, loans, recurring)

	if math.Abs(got.CreditCardBillTotal-150) > 1e-9 {
		t.Errorf("card bill total = %f, want 150", got.CreditCardBillTotal)
	}
	if got.LoanInstallmentsTotal != 200 {
		t.Errorf("loan installments total = %f, want 200", got.LoanInstallmentsTotal)
	}
	if got.RecurringExpensesTotal != 50 {
		t.Errorf("recurring expenses total = %f, want 50", got.RecurringExpensesTotal)
	}
	if math.Abs(got.Total-400) > 1e-9 {
		t.Errorf("total = %f, want 400", got.Total)
	}
}

func TestForecast_ExcludesCardBackedRecurring(t *testing.T) {
	cardID := uint(1)
	recurring := []models.RecurringTransaction{
		{Description: "Academia", Amount: 80, PaymentMethod: models.PaymentCashOrDebit},
		// charged on the card: already counted through the bill projection
		{Description: "Assinatura", Amount: 30, PaymentMethod: models.PaymentCreditCard, CreditCardID: &cardID},
	}

	got := Forecast(date(2025, time.June, 1), nil, nil, nil, recurring)
	if got.RecurringExpensesTotal != 80 {
		t.Errorf("recurring expenses total = %f, want 80", got.RecurringExpensesTotal)
	}
	if got.Total != 80 {
		t.Errorf("total = %f, want 80", got.Total)
	}
}

func TestForecast_ExcludesInactiveLoans(t *testing.T) {
	ref := date(2025, time.June, 1)
	loans := []models.Loan{
		// finished: contracted 2 years ago with 12 installments
		{InstallmentAmount: 100, TotalInstallments: 12, ContractDate: date(2023, time.June, 1)},
		// not started: contract in the future
		{InstallmentAmount: 100, TotalInstallments: 12, ContractDate: date(2025, time.December, 1)},
		// corrupt record: zero contract date
		{InstallmentAmount: 100, TotalInstallments: 12},
		// active
		{InstallmentAmount: 100, TotalInstallments: 12, ContractDate: date(2025, time.March, 1)},
	}

	got := Forecast(ref, nil, nil, loans, nil)
	if got.LoanInstallmentsTotal != 100 {
		t.Errorf("loan installments total = %f, want 100", got.LoanInstallmentsTotal)
	}
}

func TestForecast_EmptyInputs(t *testing.T) {
	got := Forecast(date(2025, time.June, 1), nil, nil, nil, nil)
	if got.Total != 0 {
		t.Errorf("total = %f, want 0", got.Total)
	}
}
