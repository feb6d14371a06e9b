package cessions

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbenmansour/cessiondesk/internal/app/docgen"
	"github.com/sbenmansour/cessiondesk/internal/app/domain"
	"github.com/sbenmansour/cessiondesk/internal/app/models"
	"github.com/sbenmansour/cessiondesk/internal/app/observability/metrics"
)

type CessionsHandlers struct {
	*domain.BaseHandler
}

func NewCessionsHandlers(base *domain.BaseHandler) *CessionsHandlers {
	return &CessionsHandlers{BaseHandler: base}
}

type listData struct {
	Cessions []models.Cession
	Search   models.CessionSearch
	Clients  []models.Client
}

type detailData struct {
	Cession   *models.Cession
	Payments  []models.Payment
	Documents []models.Document
	StartDate string
	EndDate   string
}

func searchFromQuery(c *gin.Context) models.CessionSearch {
	return models.CessionSearch{
		Name:         c.Query("name"),
		Job:          c.Query("job"),
		ClientNumber: c.Query("clientNumber"),
		ClientCIN:    c.Query("clientCin"),
		Status:       c.Query("status"),
		PhoneNumber:  c.Query("phoneNumber"),
		Workplace:    c.Query("workplace"),
		Address:      c.Query("address"),
		JobID:        c.Query("jobId"),
	}
}

func (h *CessionsHandlers) ShowCessionsPage(c *gin.Context) {
	ctx := c.Request.Context()
	data := listData{Search: searchFromQuery(c)}

	var err error
	if data.Search != (models.CessionSearch{}) {
		data.Cessions, err = h.Backend.SearchCessions(ctx, data.Search)
	} else {
		data.Cessions, err = h.Backend.ListCessions(ctx)
	}
	if err != nil {
		h.HandleError(c, err, "/")
		return
	}

	if clients, err := h.Backend.ListClients(ctx); err == nil {
		data.Clients = clients
	} else {
		h.Logger.Warn("Client list unavailable", zap.Error(err))
	}

	h.RenderPage(c, "CessionDesk - "+h.I18n.T("cessions.title", nil), "Cessions", "cessions", data)
}

func (h *CessionsHandlers) ShowCessionDetail(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	cession, err := h.Backend.GetCession(ctx, id)
	if err != nil {
		h.HandleError(c, err, "/cessions")
		return
	}

	data := detailData{
		Cession:   cession,
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	if data.StartDate != "" && data.EndDate != "" {
		data.Payments, err = h.Backend.GetCessionPaymentsByDateRange(ctx, id, data.StartDate, data.EndDate)
	} else {
		data.Payments, err = h.Backend.GetCessionPayments(ctx, id)
	}
	if err != nil {
		h.Logger.Warn("Cession payments unavailable", zap.String("cession_id", id), zap.Error(err))
	}

	if docs, err := h.Backend.GetCessionDocuments(ctx, id); err == nil {
		data.Documents = docs
	} else {
		h.Logger.Warn("Cession documents unavailable", zap.String("cession_id", id), zap.Error(err))
	}

	h.RenderPage(c, "CessionDesk - "+cession.ItemDescription, "Cessions", "cession_detail", data)
}

func cessionFromForm(c *gin.Context) models.Cession {
	totalAmount, _ := strconv.ParseFloat(c.PostForm("totalAmount"), 64)
	monthlyPayment, _ := strconv.ParseFloat(c.PostForm("monthlyPayment"), 64)

	return models.Cession{
		ClientID:           c.PostForm("clientId"),
		SupplierName:       c.PostForm("supplierName"),
		SupplierTaxID:      c.PostForm("supplierTaxId"),
		ItemDescription:    c.PostForm("itemDescription"),
		TotalAmount:        totalAmount,
		MonthlyPayment:     monthlyPayment,
		StartDate:          c.PostForm("startDate"),
		FirstDeductionDate: c.PostForm("firstDeductionDate"),
		CourtName:          c.PostForm("courtName"),
		BookNumber:         c.PostForm("bookNumber"),
		PageNumber:         c.PostForm("pageNumber"),
	}
}

func (h *CessionsHandlers) CreateCessionHandler(c *gin.Context) {
	_, err := h.Backend.CreateCession(c.Request.Context(), cessionFromForm(c))
	if err != nil {
		h.HandleError(c, err, "/cessions")
		return
	}
	h.Notifier.Success(h.I18n.T("cessions.created", nil))
	c.Redirect(http.StatusSeeOther, "/cessions")
}

func (h *CessionsHandlers) UpdateCessionHandler(c *gin.Context) {
	id := c.Param("id")
	_, err := h.Backend.UpdateCession(c.Request.Context(), id, cessionFromForm(c))
	if err != nil {
		h.HandleError(c, err, "/cessions/"+id)
		return
	}
	h.Notifier.Success(h.I18n.T("cessions.updated", nil))
	c.Redirect(http.StatusSeeOther, "/cessions/"+id)
}

func (h *CessionsHandlers) DeleteCessionHandler(c *gin.Context) {
	if err := h.Backend.DeleteCession(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err, "/cessions")
		return
	}
	h.Notifier.Success(h.I18n.T("cessions.deleted", nil))
	c.Redirect(http.StatusSeeOther, "/cessions")
}

// PrintContractHandler serves the printable contract for one cession.
// The page opens in its own tab and fires the print dialog itself.
func (h *CessionsHandlers) PrintContractHandler(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	cession, err := h.Backend.GetCession(ctx, id)
	if err != nil {
		h.HandleError(c, err, "/cessions")
		return
	}

	var client *models.Client
	if cession.ClientID != "" {
		client, err = h.Backend.GetClient(ctx, cession.ClientID)
		if err != nil {
			h.Logger.Warn("Contract client lookup failed",
				zap.String("cession_id", id),
				zap.String("client_id", cession.ClientID),
				zap.Error(err))
		}
	}

	data := docgen.FromCession(cession, client)
	data.AutoPrint = c.Query("print") != "0"

	html, err := docgen.RenderContract(data)
	if err != nil {
		h.Logger.Error("Contract render failed", zap.String("cession_id", id), zap.Error(err))
		h.HandleError(c, err, "/cessions")
		return
	}

	metrics.Get().DocumentRendersTotal.Add(context.Background(), 1)
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
