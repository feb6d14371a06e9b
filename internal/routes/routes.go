package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sbenmansour/cessiondesk/internal/app/domain/auth"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/cessions"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/clients"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/dashboard"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/documents"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/finance"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/inventory"
	"github.com/sbenmansour/cessiondesk/internal/app/domain/payments"
)

// AppHandlers groups every page handler wired at startup.
type AppHandlers struct {
	Auth      *auth.AuthHandlers
	Dashboard *dashboard.DashboardHandlers
	Clients   *clients.ClientsHandlers
	Cessions  *cessions.CessionsHandlers
	Payments  *payments.PaymentsHandlers
	Documents *documents.DocumentsHandlers
	Inventory *inventory.InventoryHandlers
	Finance   *finance.FinanceHandlers
}

// Setup registers all routes. Route protection is decided by the auth
// gate middleware installed on the router, not here.
func Setup(r *gin.Engine, h *AppHandlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		c.Status(http.StatusNotFound)
		h.Auth.RenderPage(c, "CessionDesk", "", "error", struct {
			Message string
		}{Message: h.Auth.I18n.T("errors.notFound", nil)})
	})

	// Session
	r.GET("/login", h.Auth.ShowLoginPage)
	r.POST("/login", h.Auth.LoginHandler)
	r.GET("/signup", h.Auth.ShowSignupPage)
	r.POST("/signup", h.Auth.SignupHandler)
	r.POST("/logout", h.Auth.LogoutHandler)
	r.POST("/language", h.Auth.SetLanguageHandler)

	r.GET("/", h.Dashboard.ShowDashboard)

	// Clients
	r.GET("/clients", h.Clients.ShowClientsPage)
	r.POST("/clients", h.Clients.CreateClientHandler)
	r.GET("/clients/:id", h.Clients.ShowClientDetail)
	r.POST("/clients/:id", h.Clients.UpdateClientHandler)
	r.POST("/clients/:id/delete", h.Clients.DeleteClientHandler)
	r.POST("/clients/:id/documents", h.Documents.UploadClientDocumentHandler)

	// Lookup lists managed from the clients page
	r.POST("/workplaces", h.Clients.CreateWorkplaceHandler)
	r.POST("/workplaces/:id/delete", h.Clients.DeleteWorkplaceHandler)
	r.POST("/jobs", h.Clients.CreateJobHandler)
	r.POST("/jobs/:id/delete", h.Clients.DeleteJobHandler)

	// Documents
	r.GET("/documents/:id", h.Documents.DownloadDocumentHandler)
	r.POST("/documents/:id/delete", h.Documents.DeleteDocumentHandler)

	// Cessions
	r.GET("/cessions", h.Cessions.ShowCessionsPage)
	r.POST("/cessions", h.Cessions.CreateCessionHandler)
	r.GET("/cessions/:id", h.Cessions.ShowCessionDetail)
	r.POST("/cessions/:id", h.Cessions.UpdateCessionHandler)
	r.POST("/cessions/:id/delete", h.Cessions.DeleteCessionHandler)
	r.GET("/cessions/:id/contract", h.Cessions.PrintContractHandler)
	r.POST("/cessions/:id/documents", h.Documents.UploadCessionDocumentHandler)

	// Payments
	r.GET("/payments", h.Payments.ShowPaymentsPage)
	r.POST("/payments", h.Payments.CreatePaymentHandler)
	r.POST("/payments/:id", h.Payments.UpdatePaymentHandler)
	r.POST("/payments/:id/delete", h.Payments.DeletePaymentHandler)

	// Inventory
	r.GET("/inventory", h.Inventory.ShowInventoryPage)
	r.POST("/inventory/products", h.Inventory.CreateProductHandler)
	r.POST("/inventory/products/:id", h.Inventory.UpdateProductHandler)
	r.POST("/inventory/products/:id/delete", h.Inventory.DeleteProductHandler)
	r.POST("/inventory/categories", h.Inventory.CreateCategoryHandler)
	r.POST("/inventory/categories/:id", h.Inventory.UpdateCategoryHandler)
	r.POST("/inventory/categories/:id/delete", h.Inventory.DeleteCategoryHandler)
	r.POST("/inventory/movements", h.Inventory.RecordMovementHandler)

	// Finance
	r.GET("/finance", h.Finance.ShowFinancePage)
	r.POST("/finance/expenses", h.Finance.CreateExpenseHandler)
	r.POST("/finance/expenses/:id", h.Finance.UpdateExpenseHandler)
	r.POST("/finance/expenses/:id/delete", h.Finance.DeleteExpenseHandler)
	r.POST("/finance/incomes", h.Finance.CreateIncomeHandler)
	r.POST("/finance/incomes/:id", h.Finance.UpdateIncomeHandler)
	r.POST("/finance/incomes/:id/delete", h.Finance.DeleteIncomeHandler)
}
