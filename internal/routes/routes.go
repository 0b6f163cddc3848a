package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "github.com/ksuibraheem/arba-sub002/internal/handlers"
	"github.com/ksuibraheem/arba-sub002/internal/metrics"
	"github.com/ksuibraheem/arba-sub002/internal/repository"
	"github.com/ksuibraheem/arba-sub002/internal/services/invoices"
	"github.com/ksuibraheem/arba-sub002/internal/services/journal"
	"github.com/ksuibraheem/arba-sub002/internal/services/ledger"
	"github.com/ksuibraheem/arba-sub002/internal/services/payments"
	"github.com/ksuibraheem/arba-sub002/internal/services/reports"
)

// BuildServices wires repositories into the service graph.
func BuildServices(db *gorm.DB) (*invoices.Service, *payments.Service, *ledger.Service, *journal.Service, *reports.Service) {
	accountRepo := repository.NewAccountRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	clientRepo := repository.NewClientRepository(db)

	journalService := journal.NewService(journalRepo, accountRepo)
	ledgerService := ledger.NewService(ledgerRepo)
	invoiceService := invoices.NewService(invoiceRepo, journalService)
	paymentService := payments.NewService(paymentRepo, invoiceRepo, clientRepo, ledgerService)
	reportService := reports.NewService(accountRepo, journalRepo)

	return invoiceService, paymentService, ledgerService, journalService, reportService
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	invoiceService, paymentService, ledgerService, journalService, reportService := BuildServices(db)

	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	journalHandler := handler.NewJournalHandler(journalService)
	reportHandler := handler.NewReportHandler(reportService)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	inv := api.Group("/invoices")
	{
		inv.POST("", invoiceHandler.Create)
		inv.GET("", invoiceHandler.List)
		inv.GET("/:id", invoiceHandler.Get)
		inv.POST("/:id/pay", invoiceHandler.MarkAsPaid)
		inv.POST("/:id/cancel", invoiceHandler.Cancel)
		inv.POST("/:id/edit", invoiceHandler.RecordEdit)
		inv.POST("/sweep-overdue", invoiceHandler.SweepOverdue)
	}

	pay := api.Group("/payments")
	{
		pay.POST("", paymentHandler.Record)
		pay.GET("", paymentHandler.List)
		pay.POST("/:id/verify", paymentHandler.Verify)
		pay.POST("/:id/fail", paymentHandler.Fail)
		pay.POST("/:id/refund", paymentHandler.Refund)
		pay.POST("/:id/link-client", paymentHandler.LinkToClient)
	}

	clients := api.Group("/clients")
	{
		clients.POST("", paymentHandler.CreateClient)
		clients.GET("", paymentHandler.SearchClients)
		clients.GET("/:id/summary", paymentHandler.ClientSummary)
	}

	ledgerGroup := api.Group("/ledger")
	{
		ledgerGroup.POST("/entries", ledgerHandler.Add)
		ledgerGroup.GET("/entries", ledgerHandler.List)
		ledgerGroup.GET("/balance", ledgerHandler.Balance)
	}

	jrnl := api.Group("/journal")
	{
		jrnl.POST("/entries", journalHandler.Post)
		jrnl.GET("/entries", journalHandler.List)
		jrnl.GET("/entries/:id", journalHandler.Get)
		jrnl.POST("/entries/:id/reverse", journalHandler.Reverse)
		jrnl.POST("/payroll", journalHandler.Payroll)
		jrnl.POST("/mediation", journalHandler.Mediation)
	}

	rpt := api.Group("/reports")
	{
		rpt.GET("/trial-balance", reportHandler.TrialBalance)
		rpt.GET("/income-statement", reportHandler.IncomeStatement)
	}
}
