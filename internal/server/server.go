// Package server wires services, handlers and middleware into a gin router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "budgettracker/internal/docs" // swagger docs
	"budgettracker/internal/handlers"
	"budgettracker/internal/middleware"
	"budgettracker/internal/services"
	"budgettracker/internal/validator"
)

// Services holds every service built over one database handle.
type Services struct {
	Accounts     services.AccountServicer
	Categories   services.CategoryServicer
	Transactions services.TransactionServicer
	Settings     services.SettingsServicer
	Performance  services.PerformanceServicer
	Audit        services.AuditServicer
}

// NewServices builds the service graph. defaultStartDay is used until a start
// day is saved.
func NewServices(db *gorm.DB, defaultStartDay int) *Services {
	accounts := services.NewAccountService(db)
	categories := services.NewCategoryService(db)
	settings := services.NewSettingsService(db, defaultStartDay)

	return &Services{
		Accounts:     accounts,
		Categories:   categories,
		Transactions: services.NewTransactionService(db, accounts, categories, settings),
		Settings:     settings,
		Performance:  services.NewPerformanceService(db, settings, categories),
		Audit:        services.NewAuditService(db),
	}
}

// NewRouter returns the API router.
func NewRouter(svc *Services) *gin.Engine {
	accountHandler := handlers.NewAccountHandler(svc.Accounts, svc.Audit)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories, svc.Audit)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Accounts, svc.Audit)
	settingsHandler := handlers.NewSettingsHandler(svc.Settings, svc.Audit)
	performanceHandler := handlers.NewPerformanceHandler(svc.Performance)

	validator.Register()

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	accounts := v1.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)
	accounts.GET("/:id/transactions", transactionHandler.GetAccountTransactions)

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.GET("/:id/analysis", performanceHandler.GetCategoryAnalysis)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.RecordTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	settings := v1.Group("/settings")
	settings.GET("/financial-month-start", settingsHandler.GetFinancialMonthStart)
	settings.PUT("/financial-month-start", settingsHandler.SetFinancialMonthStart)

	v1.GET("/performance", performanceHandler.GetPerformance)
	v1.GET("/performance/chart", performanceHandler.GetPerformanceChart)
	v1.GET("/overview/:month", performanceHandler.GetMonthlyOverview)
	v1.GET("/financial-month", performanceHandler.GetFinancialMonth)

	return router
}
