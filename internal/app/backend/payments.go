package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

func (c *Client) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := c.getJSONCached(ctx, "/api/v1/payments", nil, &payments); err != nil {
		// Some backend builds answer this endpoint with an object
		// instead of a list; treat that as no payments.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, nil
		}
		return nil, err
	}
	return payments, nil
}

func (c *Client) GetCessionPayments(ctx context.Context, cessionID string) ([]models.Payment, error) {
	if err := validID(cessionID); err != nil {
		return nil, err
	}
	var payments []models.Payment
	err := c.getJSON(ctx, "/api/v1/payments/cession/"+cessionID, nil, &payments)
	return payments, err
}

// GetCessionPaymentsByDateRange lists a cession's payments between two
// dates, both formatted yyyy-mm-dd.
func (c *Client) GetCessionPaymentsByDateRange(ctx context.Context, cessionID, startDate, endDate string) ([]models.Payment, error) {
	if err := validID(cessionID); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)

	var payments []models.Payment
	err := c.getJSON(ctx, "/api/v1/payments/cession/"+cessionID+"/date-range", query, &payments)
	return payments, err
}

func (c *Client) CreatePayment(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	var created models.Payment
	if err := c.postJSON(ctx, "/api/v1/payments", payment, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdatePayment(ctx context.Context, id string, payment models.Payment) (*models.Payment, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var updated models.Payment
	if err := c.putJSON(ctx, "/api/v1/payments/"+id, payment, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeletePayment(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	return c.deleteJSON(ctx, "/api/v1/payments/"+id, nil)
}
