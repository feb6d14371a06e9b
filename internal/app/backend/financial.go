package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

// The income endpoints live under both /income and /incomes on the
// backend; the paths below mirror what it actually serves. Every
// financial read is scoped to the signed-in operator via userId.

func (c *Client) financialQuery() url.Values {
	query := url.Values{}
	if user := c.session.User(); user != nil {
		query.Set("userId", user.ID)
	}
	return query
}

func monthQuery(query url.Values, year, month int) url.Values {
	query.Set("year", strconv.Itoa(year))
	query.Set("month", strconv.Itoa(month))
	return query
}

func pagedQuery(query url.Values, page, size int) url.Values {
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	return query
}

func (c *Client) GetExpensesByMonth(ctx context.Context, year, month int) ([]models.Expense, error) {
	var expenses []models.Expense
	err := c.getJSON(ctx, "/api/v1/expenses", monthQuery(c.financialQuery(), year, month), &expenses)
	return expenses, err
}

// GetExpensesByDateRange lists expenses between two dates, both
// formatted yyyy-mm-dd, one page at a time.
func (c *Client) GetExpensesByDateRange(ctx context.Context, startDate, endDate string, page, size int) (*models.Page[models.Expense], error) {
	query := pagedQuery(c.financialQuery(), page, size)
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)

	var result models.Page[models.Expense]
	if err := c.getJSON(ctx, "/api/v1/expenses/range", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetAllExpenses(ctx context.Context, page, size int) (*models.Page[models.Expense], error) {
	var result models.Page[models.Expense]
	if err := c.getJSON(ctx, "/api/v1/expenses/all", pagedQuery(c.financialQuery(), page, size), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetExpensesByCategory returns the per-category expense totals for one
// month.
func (c *Client) GetExpensesByCategory(ctx context.Context, year, month int) ([]models.CategoryTotal, error) {
	var totals []models.CategoryTotal
	err := c.getJSON(ctx, "/api/v1/expenses/categories", monthQuery(c.financialQuery(), year, month), &totals)
	return totals, err
}

func (c *Client) CreateExpense(ctx context.Context, expense models.Expense) (*models.Expense, error) {
	var created models.Expense
	if err := c.postJSON(ctx, "/api/v1/expenses", expense, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateExpense(ctx context.Context, id string, expense models.Expense) (*models.Expense, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var updated models.Expense
	if err := c.putJSON(ctx, "/api/v1/expenses/"+id, expense, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	return c.deleteJSON(ctx, "/api/v1/expenses/"+id, nil)
}

func (c *Client) CreateIncome(ctx context.Context, income models.Income) (*models.Income, error) {
	var created models.Income
	if err := c.postJSON(ctx, "/api/v1/incomes", income, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateIncome(ctx context.Context, id string, income models.Income) (*models.Income, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var updated models.Income
	if err := c.putJSON(ctx, "/api/v1/income/"+id, income, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) GetIncomesByMonth(ctx context.Context, year, month int) ([]models.Income, error) {
	var incomes []models.Income
	err := c.getJSON(ctx, "/api/v1/incomes", monthQuery(c.financialQuery(), year, month), &incomes)
	return incomes, err
}

func (c *Client) GetIncomesByDateRange(ctx context.Context, startDate, endDate string, page, size int) (*models.Page[models.Income], error) {
	query := pagedQuery(c.financialQuery(), page, size)
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)

	var result models.Page[models.Income]
	if err := c.getJSON(ctx, "/api/v1/incomes/range", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetAllIncomes(ctx context.Context, page, size int) (*models.Page[models.Income], error) {
	var result models.Page[models.Income]
	if err := c.getJSON(ctx, "/api/v1/income/all", pagedQuery(c.financialQuery(), page, size), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetIncomesBySource returns the per-source income totals for one
// month.
func (c *Client) GetIncomesBySource(ctx context.Context, year, month int) ([]models.SourceTotal, error) {
	var totals []models.SourceTotal
	err := c.getJSON(ctx, "/api/v1/income/sources", monthQuery(c.financialQuery(), year, month), &totals)
	return totals, err
}

func (c *Client) DeleteIncome(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	return c.deleteJSON(ctx, "/api/v1/income/"+id, nil)
}

// GetMonthlySummary returns the combined income and expense totals for
// one month.
func (c *Client) GetMonthlySummary(ctx context.Context, year, month int) (*models.MonthlySummary, error) {
	var summary models.MonthlySummary
	if err := c.getJSON(ctx, "/api/v1/financial/summary", monthQuery(c.financialQuery(), year, month), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
