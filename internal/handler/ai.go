package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/solangegamboa/solarfin/internal/ai"
	"github.com/solangegamboa/solarfin/internal/finance"
	"github.com/solangegamboa/solarfin/internal/models"
	"github.com/solangegamboa/solarfin/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AIHandler serves the two generation-backed features: receipt reading
// and the savings-suggestion panel. Remote failures come back as a
// CodeRemoteErr envelope; there is no retry.
type AIHandler struct {
	DB     *gorm.DB
	Client *ai.Client
}

func NewAIHandler(db *gorm.DB, client *ai.Client) *AIHandler {
	return &AIHandler{DB: db, Client: client}
}

type readReceiptReq struct {
	// Image is base64-encoded; a full data URI is accepted too.
	Image string `json:"image" binding:"required"`
}

// ReadReceipt extracts the total amount from a receipt photo. A model
// that cannot find the total with confidence yields amount=null, which is
// not an error.
func (h *AIHandler) ReadReceipt(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	var req readReceiptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	image := req.Image
	// strip a "data:image/...;base64," prefix if the client sent one
	if idx := strings.Index(image, ";base64,"); idx >= 0 {
		image = image[idx+len(";base64,"):]
	}

	amount, err := h.Client.ReadReceipt(c.Request.Context(), image)
	if err != nil {
		util.Error(c, http.StatusBadGateway, util.CodeRemoteErr, "receipt reading failed, try again")
		return
	}

	util.Success(c, util.Response{
		"amount": amount,
	})
}

// GetSavingsSuggestion aggregates the user's records and asks the model
// for a formatted savings report.
func (h *AIHandler) GetSavingsSuggestion(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	now := time.Now()
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var cards []models.CreditCard
	if err := h.DB.Where("user_id = ?", user.ID).Find(&cards).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load cards")
		return
	}
	var transactions []models.Transaction
	if err := h.DB.Where("user_id = ? AND date >= ?", user.ID, now.AddDate(0, -3, 0)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}
	var loans []models.Loan
	if err := h.DB.Where("user_id = ?", user.ID).Find(&loans).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load loans")
		return
	}
	var recurring []models.RecurringTransaction
	if err := h.DB.Where("user_id = ?", user.ID).Find(&recurring).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load recurring charges")
		return
	}

	input := ai.SuggestionInput{}

	for i := range transactions {
		t := &transactions[i]
		input.Transactions = append(input.Transactions, ai.SuggestionTransaction{
			Description: t.Description,
			Amount:      t.Amount,
			Type:        t.Type,
			Category:    t.Category,
			Date:        t.Date.Format("2006-01-02"),
		})
	}

	for i := range loans {
		loan := &loans[i]
		progress := finance.LoanProgress(*loan, now)
		if progress.PaidInstallments == 0 || progress.PaidInstallments > loan.TotalInstallments {
			continue // not started or already paid off
		}
		input.Loans = append(input.Loans, ai.SuggestionLoan{
			InstitutionName:   loan.InstitutionName,
			InstallmentAmount: loan.InstallmentAmount,
			TotalInstallments: loan.TotalInstallments,
			PaidInstallments:  progress.PaidInstallments,
		})
	}

	for i := range recurring {
		item := &recurring[i]
		if item.PaymentMethod == models.PaymentCreditCard {
			continue // shows up in the card bills below
		}
		input.Recurring = append(input.Recurring, ai.SuggestionRecurring{
			Description: item.Description,
			Amount:      item.Amount,
			Category:    item.Category,
		})
	}

	for _, card := range cards {
		input.CreditCards = append(input.CreditCards, ai.SuggestionCard{
			Name:        card.Name,
			CurrentBill: finance.ProjectBill(transactions, card, month).BillTotal,
		})
	}

	suggestion, err := h.Client.SavingsSuggestion(c.Request.Context(), input)
	if err != nil {
		util.Error(c, http.StatusBadGateway, util.CodeRemoteErr, "suggestion generation failed, try again")
		return
	}

	util.Success(c, util.Response{
		"suggestion": suggestion,
	})
}
