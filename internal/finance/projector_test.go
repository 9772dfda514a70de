package finance

import (
	"math"
	"testing"
	"time"

	"github.com/solangegamboa/solarfin/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func cardPurchase(cardID uint, amount float64, purchaseDate time.Time, installments int) models.Transaction {
	id := cardID
	return models.Transaction{
		Description:   "purchase",
		Amount:        amount,
		Date:          purchaseDate,
		Type:          models.TypeExpense,
		Category:      "Compras",
		PaymentMethod: models.PaymentCreditCard,
		CreditCardID:  &id,
		Installments:  installments,
	}
}

func TestProjectBill_InstallmentSumEqualsAmount(t *testing.T) {
	card := models.CreditCard{ID: 1, ClosingDay: 25, DueDay: 10}
	purchase := cardPurchase(1, 1000, date(2025, time.January, 10), 7)

	sum := 0.0
	// walk every month the purchase can bill on and add up what lands there
	for offset := 0; offset < 10; offset++ {
		ref := date(2025, time.January, 1).AddDate(0, offset, 0)
		proj := ProjectBill([]models.Transaction{purchase}, card, ref)
		for _, item := range proj.CurrentBillItems {
			sum += item.Amount
		}
	}

	if math.Abs(sum-1000) > 1e-9 {
		t.Errorf("sum of installments = %f, want 1000", sum)
	}
}

func TestProjectBill_PurchaseBeforeClosingBillsSameMonth(t *testing.T) {
	card := models.CreditCard{ID: 1, ClosingDay: 25, DueDay: 10}
	purchase := cardPurchase(1, 90, date(2025, time.March, 25), 3)

	proj := ProjectBill([]models.Transaction{purchase}, card, date(2025, time.March, 1))
	if len(proj.CurrentBillItems) != 1 {
		t.Fatalf("current bill items = %d, want 1", len(proj.CurrentBillItems))
	}
	if got := proj.CurrentBillItems[0].Installment; got != "1/3" {
		t.Errorf("installment label = %q, want \"1/3\"", got)
	}
}

func TestProjectBill_PurchaseAfterClosingRollsToNextMonth(t *testing.T) {
	card := models.CreditCard{ID: 1, ClosingDay: 25, DueDay: 10}
	purchase := cardPurchase(1, 300, date(2025, time.March, 26), 3)

	// nothing on March's bill
	marchProj := ProjectBill([]models.Transaction{purchase}, card, date(2025, time.March, 1))
	if len(marchProj.CurrentBillItems) != 0 {
		t.Errorf("march bill items = %d, want 0", len(marchProj.CurrentBillItems))
	}

	// first installment of 100 lands on April
	aprilProj := ProjectBill([]models.Transaction{purchase}, card, date(2025, time.April, 1))
	if len(aprilProj.CurrentBillItems) != 1 {
		t.Fatalf("april bill items = %d, want 1", len(aprilProj.CurrentBillItems))
	}
	if got := aprilProj.CurrentBillItems[0].Amount; math.Abs(got-100) > 1e-9 {
		t.Errorf("april installment = %f, want 100", got)
	}
	if got := aprilProj.BillTotal; math.Abs(got-100) > 1e-9 {
		t.Errorf("april bill total = %f, want 100", got)
	}
}

func TestProjectBill_FutureInstallmentsSorted(t *testing.T) {
	card := models.CreditCard{ID: 1, ClosingDay: 25, DueDay: 10}
	purchases := []models.Transaction{
		cardPurchase(1, 600, date(2025, time.March, 2), 6),
		cardPurchase(1, 100, date(2025, time.March, 5), 2),
		cardPurchase(1, 1200, date(2025, time.February, 10), 12),
	}

	proj := ProjectBill(purchases, card, date(2025, time.March, 1))
	for i := 1; i < len(proj.FutureInstallments); i++ {
		prev := proj.FutureInstallments[i-1].BillMonth
		cur := proj.FutureInstallments[i].BillMonth
		if cur.Before(prev) {
			t.Fatalf("future installments not sorted: %v before %v", cur, prev)
		}
	}
}

func TestProjectBill_PastInstallmentsDropped(t *testing.T) {
	card := models.CreditCard{ID: 1, ClosingDay: 25, DueDay: 10}
	purchase := cardPurchase(1, 300, date(2025, time.January, 5), 3)

	// installments bill on Jan, Feb, Mar; from March only 3/3 remains
	proj := ProjectBill([]models.Transaction{purchase}, card, date(2025, time.March, 1))
	if len(proj.CurrentBillItems) != 1 {
		t.Fatalf("current bill items = %d, want 1", len(proj.CurrentBillItems))
	}
	if got := proj.CurrentBillItems[0].Installment; got != "3/3" {
		t.Errorf("installment label = %q, want \"3/3\"", got)
	}
	if len(proj.FutureInstallments) != 0 {
		t.Errorf("future installments = %d, want 0", len(proj.FutureInstallments))
	}
}

func TestProjectBill_SkipsMalformedPurchases(t *testing.T) {
	card := models.CreditCard{ID: 1, ClosingDay: 25, DueDay: 10}
	otherCard := uint(2)

	purchases := []models.Transaction{
		// no installment count: malformed, contributes nothing
		cardPurchase(1, 500, date(2025, time.March, 5), 0),
		// zero date: corrupt record, skipped
		cardPurchase(1, 500, time.Time{}, 3),
		// other card
		{
			Amount: 500, Date: date(2025, time.March, 5),
			PaymentMethod: models.PaymentCreditCard, CreditCardID: &otherCard, Installments: 2,
		},
		// cash payment, never on a bill
		{
			Amount: 500, Date: date(2025, time.March, 5),
			PaymentMethod: models.PaymentCashOrDebit,
		},
	}

	proj := ProjectBill(purchases, card, date(2025, time.March, 1))
	if len(proj.CurrentBillItems) != 0 || proj.BillTotal != 0 {
		t.Errorf("bill = %+v, want empty", proj)
	}
}

func TestProjectBill_MonthEndPurchaseClamps(t *testing.T) {
	card := models.CreditCard{ID: 1, ClosingDay: 25, DueDay: 10}
	// Jan 31 purchase, rolls past closing; installment months must clamp
	// to month ends instead of normalizing into the month after.
	purchase := cardPurchase(1, 200, date(2025, time.January, 31), 2)

	febProj := ProjectBill([]models.Transaction{purchase}, card, date(2025, time.February, 1))
	if len(febProj.CurrentBillItems) != 1 {
		t.Fatalf("feb bill items = %d, want 1", len(febProj.CurrentBillItems))
	}
	marProj := ProjectBill([]models.Transaction{purchase}, card, date(2025, time.March, 1))
	if len(marProj.CurrentBillItems) != 1 {
		t.Fatalf("mar bill items = %d, want 1", len(marProj.CurrentBillItems))
	}
}

func TestDueDate_DueDayAfterClosingDay(t *testing.T) {
	card := models.CreditCard{ID: 1, ClosingDay: 5, DueDay: 15}

	due := DueDate(card, date(2025, time.March, 1))
	if due.Month() != time.March || due.Day() != 15 {
		t.Errorf("due date = %v, want March 15", due)
	}
}

func TestDueDate_DueDayBeforeClosingDayRollsOver(t *testing.T) {
	card := models.CreditCard{ID: 1, ClosingDay: 25, DueDay: 10}

	due := DueDate(card, date(2025, time.March, 1))
	if due.Month() != time.April || due.Day() != 10 {
		t.Errorf("due date = %v, want April 10", due)
	}
}

// The worked example: closing day 25, due day 10, purchase of 300 on the
// 26th in 3 installments. The first installment of 100 bills the following
// month, and that bill is due two months after the purchase month's closing.
func TestProjectBill_AfterClosingDayExample(t *testing.T) {
	card := models.CreditCard{ID: 1, ClosingDay: 25, DueDay: 10}
	purchase := cardPurchase(1, 300, date(2025, time.May, 26), 3)

	proj := ProjectBill([]models.Transaction{purchase}, card, date(2025, time.June, 1))
	if len(proj.CurrentBillItems) != 1 {
		t.Fatalf("current bill items = %d, want 1", len(proj.CurrentBillItems))
	}
	if got := proj.CurrentBillItems[0].Amount; math.Abs(got-100) > 1e-9 {
		t.Errorf("installment amount = %f, want 100", got)
	}
	// June's bill closes June 25, due July 10
	if proj.DueDate.Month() != time.July || proj.DueDate.Day() != 10 {
		t.Errorf("due date = %v, want July 10", proj.DueDate)
	}
}

func TestAddMonths_Clamping(t *testing.T) {
	got := addMonths(date(2025, time.January, 31), 1)
	if got.Month() != time.February || got.Day() != 28 {
		t.Errorf("Jan 31 + 1 month = %v, want Feb 28", got)
	}

	got = addMonths(date(2024, time.January, 31), 1) // leap year
	if got.Month() != time.February || got.Day() != 29 {
		t.Errorf("Jan 31 2024 + 1 month = %v, want Feb 29", got)
	}

	got = addMonths(date(2025, time.March, 15), 2)
	if got.Month() != time.May || got.Day() != 15 {
		t.Errorf("Mar 15 + 2 months = %v, want May 15", got)
	}
}
