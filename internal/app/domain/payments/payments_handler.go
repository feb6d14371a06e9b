package payments

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sbenmansour/cessiondesk/internal/app/domain"
	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

type PaymentsHandlers struct {
	*domain.BaseHandler
}

func NewPaymentsHandlers(base *domain.BaseHandler) *PaymentsHandlers {
	return &PaymentsHandlers{BaseHandler: base}
}

type pageData struct {
	Payments []models.Payment
}

func (h *PaymentsHandlers) ShowPaymentsPage(c *gin.Context) {
	payments, err := h.Backend.ListPayments(c.Request.Context())
	if err != nil {
		h.HandleError(c, err, "/")
		return
	}
	h.RenderPage(c, "CessionDesk - "+h.I18n.T("payments.title", nil), "Payments", "payments", pageData{Payments: payments})
}

func (h *PaymentsHandlers) CreatePaymentHandler(c *gin.Context) {
	amount, _ := strconv.ParseFloat(c.PostForm("amount"), 64)
	payment := models.Payment{
		CessionID:   c.PostForm("cessionId"),
		Amount:      amount,
		PaymentDate: c.PostForm("paymentDate"),
		Notes:       c.PostForm("notes"),
	}

	back := "/payments"
	if payment.CessionID != "" {
		back = "/cessions/" + payment.CessionID
	}

	if _, err := h.Backend.CreatePayment(c.Request.Context(), payment); err != nil {
		h.HandleError(c, err, back)
		return
	}
	h.Notifier.Success(h.I18n.T("payments.recorded", nil))
	c.Redirect(http.StatusSeeOther, back)
}

func (h *PaymentsHandlers) UpdatePaymentHandler(c *gin.Context) {
	amount, _ := strconv.ParseFloat(c.PostForm("amount"), 64)
	payment := models.Payment{
		CessionID:   c.PostForm("cessionId"),
		Amount:      amount,
		PaymentDate: c.PostForm("paymentDate"),
		Notes:       c.PostForm("notes"),
	}

	back := "/payments"
	if payment.CessionID != "" {
		back = "/cessions/" + payment.CessionID
	}

	if _, err := h.Backend.UpdatePayment(c.Request.Context(), c.Param("id"), payment); err != nil {
		h.HandleError(c, err, back)
		return
	}
	h.Notifier.Success(h.I18n.T("payments.updated", nil))
	c.Redirect(http.StatusSeeOther, back)
}

func (h *PaymentsHandlers) DeletePaymentHandler(c *gin.Context) {
	back := "/payments"
	if cessionID := c.PostForm("cessionId"); cessionID != "" {
		back = "/cessions/" + cessionID
	}

	if err := h.Backend.DeletePayment(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err, back)
		return
	}
	h.Notifier.Success(h.I18n.T("payments.deleted", nil))
	c.Redirect(http.StatusSeeOther, back)
}
