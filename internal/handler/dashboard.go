package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/solangegamboa/solarfin/internal/charts"
	"github.com/solangegamboa/solarfin/internal/finance"
	"github.com/solangegamboa/solarfin/internal/models"
	"github.com/solangegamboa/solarfin/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler serves the monthly overview: summary figures, the
// expense forecast and the category chart. Everything is recomputed from
// the source records on every request.
type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

func (h *DashboardHandler) loadRecords(c *gin.Context, userID uint) (cards []models.CreditCard, transactions []models.Transaction, loans []models.Loan, recurring []models.RecurringTransaction, ok bool) {
	if err := h.DB.Where("user_id = ?", userID).Find(&cards).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load cards")
		return nil, nil, nil, nil, false
	}
	if err := h.DB.Where("user_id = ?", userID).Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return nil, nil, nil, nil, false
	}
	if err := h.DB.Where("user_id = ?", userID).Find(&loans).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load loans")
		return nil, nil, nil, nil, false
	}
	if err := h.DB.Where("user_id = ?", userID).Find(&recurring).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load recurring charges")
		return nil, nil, nil, nil, false
	}
	return cards, transactions, loans, recurring, true
}

// monthCashFlows splits the month's direct (non-card) transactions into
// income and cash expenses, and buckets cash expenses by category.
func monthCashFlows(transactions []models.Transaction, month time.Time) (income, cashExpenses float64, byCategory map[string]float64) {
	byCategory = make(map[string]float64)
	for i := range transactions {
		t := &transactions[i]
		if t.Date.IsZero() || t.Date.Year() != month.Year() || t.Date.Month() != month.Month() {
			continue
		}
		switch {
		case t.Type == models.TypeIncome:
			income += t.Amount
		case t.PaymentMethod != models.PaymentCreditCard:
			cashExpenses += t.Amount
			category := t.Category
			if category == "" {
				category = "Other"
			}
			byCategory[category] += t.Amount
		}
	}
	return income, cashExpenses, byCategory
}

// cardBillTotal sums the reference month's bill across all cards.
func cardBillTotal(cards []models.CreditCard, transactions []models.Transaction, month time.Time) float64 {
	total := 0.0
	for _, card := range cards {
		total += finance.ProjectBill(transactions, card, month).BillTotal
	}
	return total
}

// GetSummary returns the month's income, expenses (cash plus the card
// bill), balance, category breakdown and most recent transactions.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	month, ok := parseMonth(c)
	if !ok {
		return
	}

	cards, transactions, _, _, ok := h.loadRecords(c, user.ID)
	if !ok {
		return
	}

	income, cashExpenses, byCategory := monthCashFlows(transactions, month)
	billTotal := cardBillTotal(cards, transactions, month)
	expenses := cashExpenses + billTotal
	if billTotal > 0 {
		byCategory["Credit Card"] = billTotal
	}

	type categoryStat struct {
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
	}
	catList := make([]categoryStat, 0, len(byCategory))
	for category, amount := range byCategory {
		catList = append(catList, categoryStat{Category: category, Amount: amount})
	}
	sort.Slice(catList, func(i, j int) bool {
		return catList[i].Amount > catList[j].Amount
	})

	topCategory := ""
	if len(catList) > 0 {
		topCategory = catList[0].Category
	}

	// five most recent transactions of the month
	var recent []models.Transaction
	for i := range transactions {
		t := transactions[i]
		if !t.Date.IsZero() && t.Date.Year() == month.Year() && t.Date.Month() == month.Month() {
			recent = append(recent, t)
		}
	}
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	recentResp := make([]transactionResp, 0, len(recent))
	for i := range recent {
		recentResp = append(recentResp, toTransactionResp(&recent[i]))
	}

	util.Success(c, util.Response{
		"month":                  month.Format("2006-01"),
		"income":                 income,
		"expenses":               expenses,
		"balance":                income - expenses,
		"credit_card_bill_total": billTotal,
		"by_category":            catList,
		"top_category":           topCategory,
		"recent_transactions":    recentResp,
	})
}

// GetForecast returns the committed-expense forecast for the month: card
// bills, loan installments still active that month, and cash recurring
// charges.
func (h *DashboardHandler) GetForecast(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	month, ok := parseMonth(c)
	if !ok {
		return
	}

	cards, transactions, loans, recurring, ok := h.loadRecords(c, user.ID)
	if !ok {
		return
	}

	result := finance.Forecast(month, cards, transactions, loans, recurring)

	util.Success(c, util.Response{
		"month":    month.Format("2006-01"),
		"forecast": result,
	})
}

// GetChart renders the month's expenses by category as a PNG pie chart.
func (h *DashboardHandler) GetChart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	month, ok := parseMonth(c)
	if !ok {
		return
	}

	cards, transactions, _, _, ok := h.loadRecords(c, user.ID)
	if !ok {
		return
	}

	_, _, byCategory := monthCashFlows(transactions, month)
	if billTotal := cardBillTotal(cards, transactions, month); billTotal > 0 {
		byCategory["Credit Card"] = billTotal
	}

	slices := make([]charts.CategorySlice, 0, len(byCategory))
	for category, amount := range byCategory {
		slices = append(slices, charts.CategorySlice{Category: category, Amount: amount})
	}

	png, err := charts.RenderCategoryPie(slices)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to render chart")
		return
	}
	if png == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "no expenses in this month")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
