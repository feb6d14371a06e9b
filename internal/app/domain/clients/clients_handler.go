package clients

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbenmansour/cessiondesk/internal/app/domain"
	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

type ClientsHandlers struct {
	*domain.BaseHandler
}

func NewClientsHandlers(base *domain.BaseHandler) *ClientsHandlers {
	return &ClientsHandlers{BaseHandler: base}
}

type listData struct {
	Clients    []models.Client
	Search     models.ClientSearch
	Jobs       []models.Job
	Workplaces []models.Workplace
}

type detailData struct {
	Client    *models.Client
	Cessions  []models.Cession
	Documents []models.Document
	DocType   string
}

func searchFromQuery(c *gin.Context) models.ClientSearch {
	return models.ClientSearch{
		Name:         c.Query("name"),
		Job:          c.Query("job"),
		ClientNumber: c.Query("clientNumber"),
		CIN:          c.Query("cin"),
		PhoneNumber:  c.Query("phoneNumber"),
		Workplace:    c.Query("workplace"),
		Address:      c.Query("address"),
		WorkerNumber: c.Query("workerNumber"),
	}
}

func (s listData) hasCriteria() bool {
	empty := models.ClientSearch{}
	return s.Search != empty
}

func (h *ClientsHandlers) ShowClientsPage(c *gin.Context) {
	ctx := c.Request.Context()
	data := listData{Search: searchFromQuery(c)}

	var err error
	if data.hasCriteria() {
		data.Clients, err = h.Backend.SearchClients(ctx, data.Search)
	} else {
		data.Clients, err = h.Backend.ListClients(ctx)
	}
	if err != nil {
		h.HandleError(c, err, "/")
		return
	}

	// Lookup lists feed the add-client form; their absence is not
	// worth failing the page.
	if jobs, err := h.Backend.ListJobs(ctx); err == nil {
		data.Jobs = jobs
	} else {
		h.Logger.Warn("Job list unavailable", zap.Error(err))
	}
	if workplaces, err := h.Backend.ListWorkplaces(ctx); err == nil {
		data.Workplaces = workplaces
	} else {
		h.Logger.Warn("Workplace list unavailable", zap.Error(err))
	}

	h.RenderPage(c, "CessionDesk - "+h.I18n.T("clients.title", nil), "Clients", "clients", data)
}

func (h *ClientsHandlers) ShowClientDetail(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	client, err := h.Backend.GetClient(ctx, id)
	if err != nil {
		h.HandleError(c, err, "/clients")
		return
	}

	data := detailData{Client: client, DocType: c.Query("docType")}
	if cessions, err := h.Backend.GetClientCessions(ctx, id); err == nil {
		data.Cessions = cessions
	} else {
		h.Logger.Warn("Client cessions unavailable", zap.String("client_id", id), zap.Error(err))
	}

	if docs, err := h.Backend.GetClientDocuments(ctx, id); err == nil {
		if data.DocType != "" {
			for _, doc := range docs {
				if doc.DocumentType == data.DocType {
					data.Documents = append(data.Documents, doc)
				}
			}
		} else {
			data.Documents = docs
		}
	} else {
		h.Logger.Warn("Client documents unavailable", zap.String("client_id", id), zap.Error(err))
	}

	h.RenderPage(c, "CessionDesk - "+client.Name, "Clients", "client_detail", data)
}

func clientFromForm(c *gin.Context) models.Client {
	return models.Client{
		Name:          c.PostForm("name"),
		CIN:           c.PostForm("cin"),
		PhoneNumber:   c.PostForm("phoneNumber"),
		Address:       c.PostForm("address"),
		JobID:         c.PostForm("jobId"),
		Workplace:     c.PostForm("workplace"),
		WorkerNumber:  c.PostForm("workerNumber"),
		BankAccount:   c.PostForm("bankAccountNumber"),
		MonthlySalary: c.PostForm("monthlySalary"),
	}
}

func (h *ClientsHandlers) CreateClientHandler(c *gin.Context) {
	_, err := h.Backend.CreateClient(c.Request.Context(), clientFromForm(c))
	if err != nil {
		h.HandleError(c, err, "/clients")
		return
	}
	h.Notifier.Success(h.I18n.T("clients.created", nil))
	c.Redirect(http.StatusSeeOther, "/clients")
}

func (h *ClientsHandlers) UpdateClientHandler(c *gin.Context) {
	id := c.Param("id")
	_, err := h.Backend.UpdateClient(c.Request.Context(), id, clientFromForm(c))
	if err != nil {
		h.HandleError(c, err, "/clients/"+id)
		return
	}
	h.Notifier.Success(h.I18n.T("clients.updated", nil))
	c.Redirect(http.StatusSeeOther, "/clients/"+id)
}

func (h *ClientsHandlers) DeleteClientHandler(c *gin.Context) {
	if err := h.Backend.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err, "/clients")
		return
	}
	h.Notifier.Success(h.I18n.T("clients.deleted", nil))
	c.Redirect(http.StatusSeeOther, "/clients")
}

// The workplace and job lookup lists are maintained from the clients
// page, where their selects live.

func (h *ClientsHandlers) CreateWorkplaceHandler(c *gin.Context) {
	workplace := models.Workplace{Name: c.PostForm("name")}
	if _, err := h.Backend.CreateWorkplace(c.Request.Context(), workplace); err != nil {
		h.HandleError(c, err, "/clients")
		return
	}
	c.Redirect(http.StatusSeeOther, "/clients")
}

func (h *ClientsHandlers) DeleteWorkplaceHandler(c *gin.Context) {
	if err := h.Backend.DeleteWorkplace(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err, "/clients")
		return
	}
	c.Redirect(http.StatusSeeOther, "/clients")
}

func (h *ClientsHandlers) CreateJobHandler(c *gin.Context) {
	job := models.Job{Name: c.PostForm("name")}
	if _, err := h.Backend.CreateJob(c.Request.Context(), job); err != nil {
		h.HandleError(c, err, "/clients")
		return
	}
	c.Redirect(http.StatusSeeOther, "/clients")
}

func (h *ClientsHandlers) DeleteJobHandler(c *gin.Context) {
	if err := h.Backend.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err, "/clients")
		return
	}
	c.Redirect(http.StatusSeeOther, "/clients")
}
