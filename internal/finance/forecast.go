package finance

import (
	"time"

	"github.com/solangegamboa/solarfin/internal/models"
)

// ForecastResult breaks a month's committed expenses into their three
// sources. Total is the sum of the parts.
type ForecastResult struct {
	CreditCardBillTotal    float64 `json:"credit_card_bill_total"`
	LoanInstallmentsTotal  float64 `json:"loan_installments_total"`
	RecurringExpensesTotal float64 `json:"recurring_expenses_total"`
	Total                  float64 `json:"total"`
}

// Forecast projects the committed expenses of referenceMonth: the bill of
// every card, the installment of every loan still active that month, and
// the cash recurring charges.
//
// Recurring items paid by credit card are deliberately excluded here:
// once charged they show up as card purchases and are counted through the
// bill projection, and counting them twice would inflate the forecast.
func Forecast(referenceMonth time.Time, cards []models.CreditCard, purchases []models.Transaction, loans []models.Loan, recurring []models.RecurringTransaction) ForecastResult {
	var r ForecastResult

	for _, card := range cards {
		r.CreditCardBillTotal += ProjectBill(purchases, card, referenceMonth).BillTotal
	}

	for _, loan := range loans {
		paid := LoanProgress(loan, referenceMonth).PaidInstallments
		if paid > 0 && paid <= loan.TotalInstallments {
			r.LoanInstallmentsTotal += loan.InstallmentAmount
		}
	}

	for _, item := range recurring {
		if item.PaymentMethod != models.PaymentCreditCard {
			r.RecurringExpensesTotal += item.Amount
		}
	}

	r.Total = r.CreditCardBillTotal + r.LoanInstallmentsTotal + r.RecurringExpensesTotal
	return r
}
