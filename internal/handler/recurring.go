package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/solangegamboa/solarfin/internal/models"
	"github.com/solangegamboa/solarfin/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RecurringHandler serves fixed monthly charges.
type RecurringHandler struct {
	DB *gorm.DB
}

func NewRecurringHandler(db *gorm.DB) *RecurringHandler {
	return &RecurringHandler{DB: db}
}

type createRecurringReq struct {
	Description   string  `json:"description" binding:"required,max=255"`
	Amount        float64 `json:"amount" binding:"required"`
	Category      string  `json:"category" binding:"max=64"`
	PaymentMethod string  `json:"payment_method" binding:"omitempty,oneof=cash_or_debit credit_card"`
	CreditCardID  *uint   `json:"credit_card_id"`
	DayOfMonth    int     `json:"day_of_month" binding:"required"`
}

type recurringResp struct {
	ID            uint    `json:"id"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	PaymentMethod string  `json:"payment_method"`
	CreditCardID  *uint   `json:"credit_card_id,omitempty"`
	DayOfMonth    int     `json:"day_of_month"`
}

func toRecurringResp(r *models.RecurringTransaction) recurringResp {
	return recurringResp{
		ID:            r.ID,
		Description:   r.Description,
		Amount:        r.Amount,
		Category:      r.Category,
		PaymentMethod: r.PaymentMethod,
		CreditCardID:  r.CreditCardID,
		DayOfMonth:    r.DayOfMonth,
	}
}

func (h *RecurringHandler) CreateRecurring(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createRecurringReq
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
	if err := util.ValidateDayOfMonth(req.DayOfMonth); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "day of month must be between 1 and 31")
		return
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentCashOrDebit
	}

	item := models.RecurringTransaction{
		UserID:        user.ID,
		Description:   req.Description,
		Amount:        req.Amount,
		Category:      req.Category,
		PaymentMethod: paymentMethod,
		DayOfMonth:    req.DayOfMonth,
	}

	if paymentMethod == models.PaymentCreditCard {
		if req.CreditCardID == nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "credit card charges need a card")
			return
		}
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
		item.CreditCardID = req.CreditCardID
	}

	if err := h.DB.Create(&item).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save recurring charge")
		return
	}

	util.Success(c, util.Response{
		"recurring": toRecurringResp(&item),
	})
}

func (h *RecurringHandler) ListRecurring(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var items []models.RecurringTransaction
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("day_of_month ASC, id ASC").
		Find(&items).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list recurring charges")
		return
	}

	resp := make([]recurringResp, 0, len(items))
	for i := range items {
		resp = append(resp, toRecurringResp(&items[i]))
	}

	util.Success(c, util.Response{
		"items": resp,
	})
}

func (h *RecurringHandler) DeleteRecurring(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	if err := h.DB.
		Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.RecurringTransaction{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete recurring charge")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
