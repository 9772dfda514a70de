package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/solangegamboa/solarfin/internal/finance"
	"github.com/solangegamboa/solarfin/internal/models"
	"github.com/solangegamboa/solarfin/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreditCardHandler serves credit-card management and the billing-cycle
// projection endpoint.
type CreditCardHandler struct {
	DB *gorm.DB
}

func NewCreditCardHandler(db *gorm.DB) *CreditCardHandler {
	return &CreditCardHandler{DB: db}
}

type createCardReq struct {
	Name       string `json:"name" binding:"required,min=2,max=64"`
	ClosingDay int    `json:"closing_day" binding:"required"`
	DueDay     int    `json:"due_day" binding:"required"`
}

type cardResp struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	ClosingDay int    `json:"closing_day"`
	DueDay     int    `json:"due_day"`
	IsDefault  bool   `json:"is_default"`
}

func toCardResp(card *models.CreditCard) cardResp {
	return cardResp{
		ID:         card.ID,
		Name:       card.Name,
		ClosingDay: card.ClosingDay,
		DueDay:     card.DueDay,
		IsDefault:  card.IsDefault,
	}
}

func (h *CreditCardHandler) CreateCard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createCardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if err := util.ValidateDayOfMonth(req.ClosingDay); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "closing day must be between 1 and 31")
		return
	}
	if err := util.ValidateDayOfMonth(req.DueDay); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "due day must be between 1 and 31")
		return
	}

	card := models.CreditCard{
		UserID:     user.ID,
		Name:       strings.TrimSpace(req.Name),
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
	}

	// the user's first card becomes the default
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CreditCard{}).
			Where("user_id = ?", user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		card.IsDefault = count == 0
		return tx.Create(&card).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save card")
		return
	}

	util.Success(c, util.Response{
		"card": toCardResp(&card),
	})
}

func (h *CreditCardHandler) ListCards(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var cards []models.CreditCard
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at ASC, id ASC").
		Find(&cards).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list cards")
		return
	}

	items := make([]cardResp, 0, len(cards))
	for i := range cards {
		items = append(items, toCardResp(&cards[i]))
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

// SetDefaultCard moves the default flag to the given card. The clear and
// the set run in one transaction so the "at most one default" invariant
// never shows a transient state with zero or two defaults.
func (h *CreditCardHandler) SetDefaultCard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var card models.CreditCard
		if err := tx.Where("id = ? AND user_id = ?", id, user.ID).
			First(&card).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.CreditCard{}).
			Where("user_id = ?", user.ID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.CreditCard{}).
			Where("id = ?", card.ID).
			Update("is_default", true).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "card not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update default card")
		}
		return
	}

	util.Success(c, util.Response{
		"message": "default card updated",
	})
}

// DeleteCard removes a card. When the default card is deleted the oldest
// remaining card is promoted inside the same transaction, keeping exactly
// one default while the user still has cards.
func (h *CreditCardHandler) DeleteCard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var card models.CreditCard
		if err := tx.Where("id = ? AND user_id = ?", id, user.ID).
			First(&card).Error; err != nil {
			return err
		}

		if err := tx.Delete(&card).Error; err != nil {
			return err
		}

		if !card.IsDefault {
			return nil
		}

		var next models.CreditCard
		err := tx.Where("user_id = ?", user.ID).
			Order("created_at ASC, id ASC").
			First(&next).Error
		if err == gorm.ErrRecordNotFound {
			return nil // no cards left
		}
		if err != nil {
			return err
		}
		return tx.Model(&models.CreditCard{}).
			Where("id = ?", next.ID).
			Update("is_default", true).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "card not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete card")
		}
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}

// GetBill projects the card's bill for ?month=YYYY-MM (default: current
// month): items on that bill, future installments and the due date.
func (h *CreditCardHandler) GetBill(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	referenceMonth, ok := parseMonth(c)
	if !ok {
		return
	}

	var card models.CreditCard
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		First(&card).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "card not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load card")
		}
		return
	}

	var purchases []models.Transaction
	if err := h.DB.Where("user_id = ? AND payment_method = ? AND credit_card_id = ?",
		user.ID, models.PaymentCreditCard, card.ID).
		Find(&purchases).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load purchases")
		return
	}

	proj := finance.ProjectBill(purchases, card, referenceMonth)

	util.Success(c, util.Response{
		"card":                toCardResp(&card),
		"month":               referenceMonth.Format("2006-01"),
		"current_bill_items":  proj.CurrentBillItems,
		"future_installments": proj.FutureInstallments,
		"bill_total":          proj.BillTotal,
		"due_date":            proj.DueDate.Format(time.RFC3339),
	})
}
