package handler

import (
	"fmt"
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

// LoanHandler serves loan tracking. The paid-installment count is always
// derived from the contract date, never stored.
type LoanHandler struct {
	DB *gorm.DB
}

func NewLoanHandler(db *gorm.DB) *LoanHandler {
	return &LoanHandler{DB: db}
}

type createLoanReq struct {
	InstitutionName   string  `json:"institution_name" binding:"required,min=2,max=128"`
	InstallmentAmount float64 `json:"installment_amount" binding:"required"`
	TotalInstallments int     `json:"total_installments" binding:"required"`
	ContractDate      string  `json:"contract_date" binding:"required"`
}

type loanResp struct {
	ID                uint      `json:"id"`
	InstitutionName   string    `json:"institution_name"`
	InstallmentAmount float64   `json:"installment_amount"`
	TotalInstallments int       `json:"total_installments"`
	ContractDate      time.Time `json:"contract_date"`
	PaidInstallments  int       `json:"paid_installments"`
	Percent           float64   `json:"percent"`
	Finished          bool      `json:"finished"`
}

func toLoanResp(loan *models.Loan, today time.Time) loanResp {
	progress := finance.LoanProgress(*loan, today)
	return loanResp{
		ID:                loan.ID,
		InstitutionName:   loan.InstitutionName,
		InstallmentAmount: loan.InstallmentAmount,
		TotalInstallments: loan.TotalInstallments,
		ContractDate:      loan.ContractDate,
		PaidInstallments:  progress.PaidInstallments,
		Percent:           progress.Percent,
		Finished:          finance.LoanFinished(*loan, today),
	}
}

func (h *LoanHandler) CreateLoan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createLoanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if err := util.ValidateAmount(req.InstallmentAmount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter a valid installment amount")
		return
	}
	if req.TotalInstallments < 1 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "total installments must be at least 1")
		return
	}

	contractDate, ok := parseFlexibleDate(req.ContractDate)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid contract date")
		return
	}

	loan := models.Loan{
		UserID:            user.ID,
		InstitutionName:   strings.TrimSpace(req.InstitutionName),
		InstallmentAmount: req.InstallmentAmount,
		TotalInstallments: req.TotalInstallments,
		ContractDate:      contractDate,
	}

	if err := h.DB.Create(&loan).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save loan")
		return
	}

	util.Success(c, util.Response{
		"loan": toLoanResp(&loan, time.Now()),
	})
}

func (h *LoanHandler) ListLoans(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var loans []models.Loan
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("contract_date DESC, id DESC").
		Find(&loans).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list loans")
		return
	}

	today := time.Now()
	items := make([]loanResp, 0, len(loans))
	for i := range loans {
		items = append(items, toLoanResp(&loans[i], today))
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

func (h *LoanHandler) DeleteLoan(c *gin.Context) {
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
		Delete(&models.Loan{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete loan")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}

type registerPaymentReq struct {
	Amount float64 `json:"amount"`
}

// RegisterPayment records the current installment of a loan as an expense
// transaction. A finished loan (every installment already paid) rejects
// further payments.
func (h *LoanHandler) RegisterPayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req registerPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var loan models.Loan
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		First(&loan).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "loan not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load loan")
		}
		return
	}

	today := time.Now()
	progress := finance.LoanProgress(loan, today)

	if progress.PaidInstallments > loan.TotalInstallments {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "loan already fully paid")
		return
	}

	// defaults to the contracted installment amount
	amount := req.Amount
	if amount == 0 {
		amount = loan.InstallmentAmount
	}
	if err := util.ValidateAmount(amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter a valid payment amount")
		return
	}

	payment := models.Transaction{
		UserID: user.ID,
		Description: fmt.Sprintf("Installment %d of %d - loan %s",
			progress.PaidInstallments, loan.TotalInstallments, loan.InstitutionName),
		Amount:        amount,
		Date:          today,
		Type:          models.TypeExpense,
		Category:      "Loans",
		PaymentMethod: models.PaymentCashOrDebit,
	}

	if err := h.DB.Create(&payment).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to register payment")
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(&payment),
		"loan":        toLoanResp(&loan, today),
	})
}
