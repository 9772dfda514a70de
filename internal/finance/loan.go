package finance

import (
	"time"

	"github.com/solangegamboa/solarfin/internal/models"
)

// LoanProgressResult is the derived payment state of a loan at a point in
// time. PaidInstallments can exceed TotalInstallments once the contract
// has run its course; Percent is capped at 100.
type LoanProgressResult struct {
	PaidInstallments int     `json:"paid_installments"`
	Percent          float64 `json:"percent"`
}

// LoanProgress derives how many installments of the loan have been paid by
// today. The contract month itself counts as installment 1. A loan with a
// zero contract date yields zero progress so it never contributes to an
// aggregate.
func LoanProgress(loan models.Loan, today time.Time) LoanProgressResult {
	if loan.ContractDate.IsZero() {
		return LoanProgressResult{}
	}

	monthsPassed := wholeMonthsBetween(today, loan.ContractDate)
	paid := 0
	if monthsPassed >= 0 {
		paid = monthsPassed + 1
	}

	percent := 0.0
	if loan.TotalInstallments > 0 {
		percent = float64(paid) / float64(loan.TotalInstallments) * 100
		if percent > 100 {
			percent = 100
		}
	}

	return LoanProgressResult{PaidInstallments: paid, Percent: percent}
}

// LoanFinished reports whether every installment of the loan has already
// been paid; no further payments should be registered against it.
func LoanFinished(loan models.Loan, today time.Time) bool {
	return LoanProgress(loan, today).PaidInstallments > loan.TotalInstallments
}
