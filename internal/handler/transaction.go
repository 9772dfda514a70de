package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/solangegamboa/solarfin/internal/models"
	"github.com/solangegamboa/solarfin/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler serves the transaction endpoints. Transactions are
// append/delete only; there is no update.
type TransactionHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewTransactionHandler(db *gorm.DB, pageSize int) *TransactionHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &TransactionHandler{DB: db, PageSize: pageSize}
}

type createTransactionReq struct {
	Description   string  `json:"description" binding:"required,max=255"`
	Amount        float64 `json:"amount" binding:"required"`
	Date          string  `json:"date"`
	Type          string  `json:"type" binding:"required,oneof=income expense"`
	Category      string  `json:"category" binding:"max=64"`
	PaymentMethod string  `json:"payment_method" binding:"omitempty,oneof=cash_or_debit credit_card"`
	CreditCardID  *uint   `json:"credit_card_id"`
	Installments  int     `json:"installments"`
}

type transactionResp struct {
	ID            uint      `json:"id"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
	Type          string    `json:"type"`
	Category      string    `json:"category"`
	PaymentMethod string    `json:"payment_method"`
	CreditCardID  *uint     `json:"credit_card_id,omitempty"`
	Installments  int       `json:"installments,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:            t.ID,
		Description:   t.Description,
		Amount:        t.Amount,
		Date:          t.Date,
		Type:          t.Type,
		Category:      t.Category,
		PaymentMethod: t.PaymentMethod,
		CreditCardID:  t.CreditCardID,
		Installments:  t.Installments,
		CreatedAt:     t.CreatedAt,
	}
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if err := util.ValidateCategory(req.Category); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please choose a category")
		return
	}

	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter a valid amount")
		return
	}

	// defaults to today; never in the future
	occurredAt := time.Now()
	if req.Date != "" {
		t, ok := parseFlexibleDate(req.Date)
		if !ok {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date")
			return
		}
		occurredAt = t
	}
	if occurredAt.Format("2006-01-02") > time.Now().Format("2006-01-02") {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date cannot be in the future")
		return
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentCashOrDebit
	}

	tx := models.Transaction{
		UserID:        user.ID,
		Description:   req.Description,
		Amount:        req.Amount,
		Date:          occurredAt,
		Type:          req.Type,
		Category:      req.Category,
		PaymentMethod: paymentMethod,
	}

	if paymentMethod == models.PaymentCreditCard {
		if req.CreditCardID == nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "credit card purchases need a card")
			return
		}
		if err := util.ValidateInstallments(req.Installments); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "credit card purchases need an installment count")
			return
		}

		// the card must exist and belong to the user
		var card models.CreditCard
		if err := h.DB.Where("id = ? AND user_id = ?", *req.CreditCardID, user.ID).
			First(&card).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "credit card not found")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load card")
			}
			return
		}

		tx.CreditCardID = req.CreditCardID
		tx.Installments = req.Installments
	}

	if err := h.DB.Create(&tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save transaction")
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(&tx),
	})
}

// ListTransactions supports date range, type, category filters, sorting and
// paging, and always returns an income/expense summary of the filtered set.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	pageStr := c.DefaultQuery("page", "1")
	sizeStr := c.DefaultQuery("page_size", strconv.Itoa(h.PageSize))
	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(sizeStr)
	if size <= 0 || size > 100 {
		size = h.PageSize
	}
	offset := (page - 1) * size

	startStr := c.Query("start")
	endStr := c.Query("end")

	var (
		startTime time.Time
		endTime   time.Time
		hasStart  bool
		hasEnd    bool
		err       error
	)

	if startStr != "" {
		startTime, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid start date, expected YYYY-MM-DD")
			return
		}
		hasStart = true
	}
	if endStr != "" {
		endTime, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid end date, expected YYYY-MM-DD")
			return
		}
		// end date is inclusive: < end+1 day
		endTime = endTime.Add(24 * time.Hour)
		hasEnd = true
	}

	// default window: last 30 days
	if !hasStart && !hasEnd {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		startTime = today.AddDate(0, 0, -29)
		endTime = today.AddDate(0, 0, 1)
		hasStart, hasEnd = true, true
	}

	txType := c.Query("type")
	if txType != models.TypeIncome && txType != models.TypeExpense {
		txType = ""
	}

	// multi-select: ?categories=Alimentação,Transporte
	catStr := c.Query("categories")
	var catList []string
	if catStr != "" {
		for _, p := range strings.Split(catStr, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				catList = append(catList, p)
			}
		}
	}

	sortKey := c.DefaultQuery("sort", "date_desc")
	orderBy := "date DESC, id DESC"
	switch sortKey {
	case "date_asc":
		orderBy = "date ASC, id ASC"
	case "amount_desc":
		orderBy = "amount DESC, id DESC"
	case "amount_asc":
		orderBy = "amount ASC, id ASC"
	}

	base := h.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID)
	if hasStart {
		base = base.Where("date >= ?", startTime)
	}
	if hasEnd {
		base = base.Where("date < ?", endTime)
	}
	if txType != "" {
		base = base.Where("type = ?", txType)
	}
	if len(catList) > 0 {
		base = base.Where("category IN ?", catList)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list transactions")
		return
	}

	var transactions []models.Transaction
	if err := base.Session(&gorm.Session{}).
		Order(orderBy).
		Limit(size).
		Offset(offset).
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list transactions")
		return
	}

	items := make([]transactionResp, 0, len(transactions))
	for i := range transactions {
		items = append(items, toTransactionResp(&transactions[i]))
	}

	// summary over the same filters
	var all []models.Transaction
	if err := base.Session(&gorm.Session{}).Find(&all).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to summarize transactions")
		return
	}

	var totalIncome, totalExpense float64

	type categorySummary struct {
		Category string  `json:"category"`
		Income   float64 `json:"income"`
		Expense  float64 `json:"expense"`
	}

	catMap := make(map[string]*categorySummary)
	for i := range all {
		t := &all[i]

		if t.Type == models.TypeIncome {
			totalIncome += t.Amount
		} else {
			totalExpense += t.Amount
		}

		cs, ok := catMap[t.Category]
		if !ok {
			cs = &categorySummary{Category: t.Category}
			catMap[t.Category] = cs
		}
		if t.Type == models.TypeIncome {
			cs.Income += t.Amount
		} else {
			cs.Expense += t.Amount
		}
	}

	catSummaries := make([]categorySummary, 0, len(catMap))
	for _, cs := range catMap {
		catSummaries = append(catSummaries, *cs)
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
		"summary": gin.H{
			"total_income":  totalIncome,
			"total_expense": totalExpense,
			"balance":       totalIncome - totalExpense,
			"by_category":   catSummaries,
		},
	})
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	// only the owner's own records
	if err := h.DB.
		Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Transaction{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete transaction")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
