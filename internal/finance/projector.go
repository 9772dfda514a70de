// Package finance holds the pure calculations behind the dashboard: the
// credit-card billing-cycle projector, loan progress and the monthly
// forecast. Nothing here touches the database or mutates its inputs, so
// every function is safe to call repeatedly with whatever records the
// caller has on hand.
package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/solangegamboa/solarfin/internal/models"
)

// BillItem is one installment landing on the reference month's bill.
type BillItem struct {
	Description  string    `json:"description"`
	PurchaseDate time.Time `json:"purchase_date"`
	Installment  string    `json:"installment"` // "2/6"
	Amount       float64   `json:"amount"`
}

// FutureInstallment is an installment billed on a month after the
// reference month.
type FutureInstallment struct {
	Description string    `json:"description"`
	BillMonth   time.Time `json:"bill_month"`
	Installment string    `json:"installment"`
	Amount      float64   `json:"amount"`
}

// BillProjection is the result of projecting a card's purchases onto a
// reference month.
type BillProjection struct {
	CurrentBillItems   []BillItem          `json:"current_bill_items"`
	FutureInstallments []FutureInstallment `json:"future_installments"`
	BillTotal          float64             `json:"bill_total"`
	DueDate            time.Time           `json:"due_date"`
}

// ProjectBill maps the card's installment purchases onto the bill of
// referenceMonth.
//
// A purchase made on or before the card's closing day appears on that
// cycle's bill; later purchases roll to the next cycle. Each of the n
// installments is amount/n (no remainder redistribution) and lands one
// calendar month after the previous one. Installments billed before the
// reference month are dropped.
//
// Purchases that are not credit-card purchases on this card, carry no
// installment count, or have a zero date are skipped rather than
// reported as errors, so one corrupt record cannot take down a bill view.
func ProjectBill(purchases []models.Transaction, card models.CreditCard, referenceMonth time.Time) BillProjection {
	proj := BillProjection{
		CurrentBillItems:   []BillItem{},
		FutureInstallments: []FutureInstallment{},
	}

	for _, p := range purchases {
		if p.PaymentMethod != models.PaymentCreditCard {
			continue
		}
		if p.CreditCardID == nil || *p.CreditCardID != card.ID {
			continue
		}
		if p.Installments < 1 || p.Date.IsZero() {
			continue
		}

		installmentAmount := p.Amount / float64(p.Installments)

		firstBillMonthOffset := 0
		if p.Date.Day() > card.ClosingDay {
			firstBillMonthOffset = 1
		}

		for i := 0; i < p.Installments; i++ {
			billMonth := addMonths(p.Date, firstBillMonthOffset+i)
			label := fmt.Sprintf("%d/%d", i+1, p.Installments)

			switch {
			case sameMonth(billMonth, referenceMonth):
				proj.CurrentBillItems = append(proj.CurrentBillItems, BillItem{
					Description:  p.Description,
					PurchaseDate: p.Date,
					Installment:  label,
					Amount:       installmentAmount,
				})
				proj.BillTotal += installmentAmount
			case afterMonth(billMonth, referenceMonth):
				proj.FutureInstallments = append(proj.FutureInstallments, FutureInstallment{
					Description: p.Description,
					BillMonth:   billMonth,
					Installment: label,
					Amount:      installmentAmount,
				})
			}
		}
	}

	sort.SliceStable(proj.FutureInstallments, func(i, j int) bool {
		return proj.FutureInstallments[i].BillMonth.Before(proj.FutureInstallments[j].BillMonth)
	})

	proj.DueDate = DueDate(card, referenceMonth)
	return proj
}

// DueDate returns the payment due date of the bill that closes in
// referenceMonth. When the due day is numerically on or before the closing
// day, payment falls in the month after closing (a card closing on the
// 25th and due on the 10th is due the following month).
func DueDate(card models.CreditCard, referenceMonth time.Time) time.Time {
	closing := time.Date(referenceMonth.Year(), referenceMonth.Month(), card.ClosingDay,
		0, 0, 0, 0, referenceMonth.Location())
	due := time.Date(closing.Year(), closing.Month(), card.DueDay,
		0, 0, 0, 0, referenceMonth.Location())
	if card.DueDay <= card.ClosingDay {
		due = addMonths(due, 1)
	}
	return due
}
