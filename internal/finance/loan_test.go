package finance

import (
	"testing"
	"time"

	"github.com/solangegamboa/solarfin/internal/models"
)

func TestLoanProgress_ContractToday(t *testing.T) {
	today := date(2025, time.June, 15)
	loan := models.Loan{ContractDate: today, TotalInstallments: 10, InstallmentAmount: 200}

	got := LoanProgress(loan, today)
	if got.PaidInstallments != 1 {
		t.Errorf("paid installments = %d, want 1", got.PaidInstallments)
	}
	if got.Percent != 10 {
		t.Errorf("percent = %f, want 10", got.Percent)
	}
}

func TestLoanProgress_OneYearAgoCapsPercent(t *testing.T) {
	today := date(2025, time.June, 15)
	loan := models.Loan{ContractDate: date(2024, time.June, 15), TotalInstallments: 10}

	got := LoanProgress(loan, today)
	if got.PaidInstallments != 13 {
		t.Errorf("paid installments = %d, want 13", got.PaidInstallments)
	}
	if got.Percent != 100 {
		t.Errorf("percent = %f, want capped at 100", got.Percent)
	}
}

func TestLoanProgress_FutureContract(t *testing.T) {
	today := date(2025, time.June, 15)
	loan := models.Loan{ContractDate: date(2025, time.September, 1), TotalInstallments: 12}

	got := LoanProgress(loan, today)
	if got.PaidInstallments != 0 {
		t.Errorf("paid installments = %d, want 0", got.PaidInstallments)
	}
	if got.Percent != 0 {
		t.Errorf("percent = %f, want 0", got.Percent)
	}
}

func TestLoanProgress_ZeroContractDate(t *testing.T) {
	got := LoanProgress(models.Loan{TotalInstallments: 12}, date(2025, time.June, 15))
	if got.PaidInstallments != 0 || got.Percent != 0 {
		t.Errorf("progress = %+v, want zero", got)
	}
}

func TestLoanProgress_PartialMonthNotCounted(t *testing.T) {
	// contract on the 20th, today the 10th of the next month: the second
	// month has not completed yet, so only installment 1 is paid
	loan := models.Loan{ContractDate: date(2025, time.May, 20), TotalInstallments: 12}

	got := LoanProgress(loan, date(2025, time.June, 10))
	if got.PaidInstallments != 1 {
		t.Errorf("paid installments = %d, want 1", got.PaidInstallments)
	}
}

func TestLoanFinished(t *testing.T) {
	today := date(2025, time.June, 15)

	active := models.Loan{ContractDate: date(2025, time.January, 15), TotalInstallments: 12}
	if LoanFinished(active, today) {
		t.Error("LoanFinished = true for active loan, want false")
	}

	done := models.Loan{ContractDate: date(2024, time.January, 15), TotalInstallments: 6}
	if !LoanFinished(done, today) {
		t.Error("LoanFinished = false for completed loan, want true")
	}

	// exactly on the last installment: still payable
	last := models.Loan{ContractDate: date(2025, time.January, 15), TotalInstallments: 6}
	if LoanFinished(last, today) {
		t.Error("LoanFinished = true on final installment, want false")
	}
}
