package router

import (
	"github.com/solangegamboa/solarfin/internal/ai"
	"github.com/solangegamboa/solarfin/internal/config"
	"github.com/solangegamboa/solarfin/internal/handler"
	"github.com/solangegamboa/solarfin/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// no auth required
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// everything below needs a logged-in user
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db, cfg.Security.BcryptCost))

	transactionHandler := handler.NewTransactionHandler(db, cfg.App.PageSize)
	protected.POST("/transactions", transactionHandler.CreateTransaction)
	protected.GET("/transactions", transactionHandler.ListTransactions)
	protected.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	cardHandler := handler.NewCreditCardHandler(db)
	protected.POST("/cards", cardHandler.CreateCard)
	protected.GET("/cards", cardHandler.ListCards)
	protected.DELETE("/cards/:id", cardHandler.DeleteCard)
	protected.POST("/cards/:id/default", cardHandler.SetDefaultCard)
	protected.GET("/cards/:id/bill", cardHandler.GetBill)

	loanHandler := handler.NewLoanHandler(db)
	protected.POST("/loans", loanHandler.CreateLoan)
	protected.GET("/loans", loanHandler.ListLoans)
	protected.DELETE("/loans/:id", loanHandler.DeleteLoan)
	protected.POST("/loans/:id/payments", loanHandler.RegisterPayment)

	recurringHandler := handler.NewRecurringHandler(db)
	protected.POST("/recurring", recurringHandler.CreateRecurring)
	protected.GET("/recurring", recurringHandler.ListRecurring)
	protected.DELETE("/recurring/:id", recurringHandler.DeleteRecurring)

	dashboardHandler := handler.NewDashboardHandler(db)
	protected.GET("/dashboard/summary", dashboardHandler.GetSummary)
	protected.GET("/dashboard/forecast", dashboardHandler.GetForecast)
	protected.GET("/dashboard/chart", dashboardHandler.GetChart)

	aiHandler := handler.NewAIHandler(db, ai.NewClient(cfg.AI))
	protected.POST("/ai/receipt", aiHandler.ReadReceipt)
	protected.POST("/ai/savings", aiHandler.GetSavingsSuggestion)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	logHandler := handler.NewLogHandler(db)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
