package finance

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbenmansour/cessiondesk/internal/app/domain"
	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

type FinanceHandlers struct {
	*domain.BaseHandler
}

func NewFinanceHandlers(base *domain.BaseHandler) *FinanceHandlers {
	return &FinanceHandlers{BaseHandler: base}
}

type pageData struct {
	Summary        *models.MonthlySummary
	Expenses       []models.Expense
	Incomes        []models.Income
	CategoryTotals []models.CategoryTotal
	SourceTotals   []models.SourceTotal

	// Filter form state
	Year      int
	Month     int
	StartDate string
	EndDate   string
}

// listPageSize bounds the expense and income tables on the finance
// page; older entries stay reachable through the backend's paging.
const listPageSize = 50

func (h *FinanceHandlers) ShowFinancePage(c *gin.Context) {
	ctx := c.Request.Context()

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if y, err := strconv.Atoi(c.Query("year")); err == nil {
		year = y
	}
	if m, err := strconv.Atoi(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		month = m
	}

	data := pageData{
		Year:      year,
		Month:     month,
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	// The tables follow the active filter: an explicit date range, a
	// specific month, or the most recent entries.
	var expErr, incErr error
	switch {
	case data.StartDate != "" && data.EndDate != "":
		var expenses *models.Page[models.Expense]
		if expenses, expErr = h.Backend.GetExpensesByDateRange(ctx, data.StartDate, data.EndDate, 0, listPageSize); expErr == nil {
			data.Expenses = expenses.Content
		}
		var incomes *models.Page[models.Income]
		if incomes, incErr = h.Backend.GetIncomesByDateRange(ctx, data.StartDate, data.EndDate, 0, listPageSize); incErr == nil {
			data.Incomes = incomes.Content
		}
	case c.Query("year") != "" || c.Query("month") != "":
		data.Expenses, expErr = h.Backend.GetExpensesByMonth(ctx, year, month)
		data.Incomes, incErr = h.Backend.GetIncomesByMonth(ctx, year, month)
	default:
		var expenses *models.Page[models.Expense]
		if expenses, expErr = h.Backend.GetAllExpenses(ctx, 0, listPageSize); expErr == nil {
			data.Expenses = expenses.Content
		}
		var incomes *models.Page[models.Income]
		if incomes, incErr = h.Backend.GetAllIncomes(ctx, 0, listPageSize); incErr == nil {
			data.Incomes = incomes.Content
		}
	}
	if expErr != nil {
		h.HandleError(c, expErr, "/")
		return
	}
	if incErr != nil {
		h.Logger.Warn("Income list unavailable", zap.Error(incErr))
	}

	if summary, err := h.Backend.GetMonthlySummary(ctx, year, month); err == nil {
		data.Summary = summary
	} else {
		h.Logger.Warn("Monthly summary unavailable", zap.Error(err))
	}
	if totals, err := h.Backend.GetExpensesByCategory(ctx, year, month); err == nil {
		data.CategoryTotals = totals
	} else {
		h.Logger.Warn("Expense category totals unavailable", zap.Error(err))
	}
	if totals, err := h.Backend.GetIncomesBySource(ctx, year, month); err == nil {
		data.SourceTotals = totals
	} else {
		h.Logger.Warn("Income source totals unavailable", zap.Error(err))
	}

	h.RenderPage(c, "CessionDesk - "+h.I18n.T("finance.title", nil), "Finance", "finance", data)
}

func (h *FinanceHandlers) CreateExpenseHandler(c *gin.Context) {
	amount, _ := strconv.ParseFloat(c.PostForm("amount"), 64)
	expense := models.Expense{
		Amount:      amount,
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
		Date:        c.PostForm("date"),
	}

	if _, err := h.Backend.CreateExpense(c.Request.Context(), expense); err != nil {
		h.HandleError(c, err, "/finance")
		return
	}
	h.Notifier.Success(h.I18n.T("finance.expenseAdded", nil))
	c.Redirect(http.StatusSeeOther, "/finance")
}

func (h *FinanceHandlers) UpdateExpenseHandler(c *gin.Context) {
	amount, _ := strconv.ParseFloat(c.PostForm("amount"), 64)
	expense := models.Expense{
		Amount:      amount,
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
		Date:        c.PostForm("date"),
	}

	if _, err := h.Backend.UpdateExpense(c.Request.Context(), c.Param("id"), expense); err != nil {
		h.HandleError(c, err, "/finance")
		return
	}
	c.Redirect(http.StatusSeeOther, "/finance")
}

func (h *FinanceHandlers) DeleteExpenseHandler(c *gin.Context) {
	if err := h.Backend.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err, "/finance")
		return
	}
	c.Redirect(http.StatusSeeOther, "/finance")
}

func (h *FinanceHandlers) CreateIncomeHandler(c *gin.Context) {
	amount, _ := strconv.ParseFloat(c.PostForm("amount"), 64)
	income := models.Income{
		Amount:      amount,
		Source:      c.PostForm("source"),
		Description: c.PostForm("description"),
		Date:        c.PostForm("date"),
	}

	if _, err := h.Backend.CreateIncome(c.Request.Context(), income); err != nil {
		h.HandleError(c, err, "/finance")
		return
	}
	h.Notifier.Success(h.I18n.T("finance.incomeAdded", nil))
	c.Redirect(http.StatusSeeOther, "/finance")
}

func (h *FinanceHandlers) UpdateIncomeHandler(c *gin.Context) {
	amount, _ := strconv.ParseFloat(c.PostForm("amount"), 64)
	income := models.Income{
		Amount:      amount,
		Source:      c.PostForm("source"),
		Description: c.PostForm("description"),
		Date:        c.PostForm("date"),
	}

	if _, err := h.Backend.UpdateIncome(c.Request.Context(), c.Param("id"), income); err != nil {
		h.HandleError(c, err, "/finance")
		return
	}
	c.Redirect(http.StatusSeeOther, "/finance")
}

func (h *FinanceHandlers) DeleteIncomeHandler(c *gin.Context) {
	if err := h.Backend.DeleteIncome(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err, "/finance")
		return
	}
	c.Redirect(http.StatusSeeOther, "/finance")
}
