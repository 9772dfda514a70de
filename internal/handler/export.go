package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/solangegamboa/solarfin/internal/models"
	"github.com/solangegamboa/solarfin/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams the user's transactions as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

func (h *ExportHandler) loadTransactions(c *gin.Context, userID uint) ([]models.Transaction, bool) {
	var transactions []models.Transaction
	if err := h.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return nil, false
	}
	return transactions, true
}

func exportFileName(ext string) string {
	return fmt.Sprintf("transactions_%s_%s.%s",
		time.Now().Format("20060102"), uuid.New().String()[:8], ext)
}

func transactionRow(t *models.Transaction) []string {
	installments := ""
	if t.PaymentMethod == models.PaymentCreditCard && t.Installments > 0 {
		installments = strconv.Itoa(t.Installments)
	}
	return []string{
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Category,
		t.Description,
		strconv.FormatFloat(t.Amount, 'f', 2, 64),
		t.PaymentMethod,
		installments,
	}
}

var exportHeader = []string{"Date", "Type", "Category", "Description", "Amount", "Payment Method", "Installments"}

// ExportCSV writes all of the user's transactions as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	transactions, ok := h.loadTransactions(c, user.ID)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName("csv")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so spreadsheet apps detect the encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeader)
	for i := range transactions {
		writer.Write(transactionRow(&transactions[i]))
	}
}

// ExportXLSX writes all of the user's transactions as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	transactions, ok := h.loadTransactions(c, user.ID)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Transactions"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for i := range transactions {
		values := transactionRow(&transactions[i])
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName("xlsx")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write workbook")
		return
	}
}
