package backend

import (
	"context"
	"net/url"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

func (c *Client) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := c.getJSONCached(ctx, "/api/v1/clients", nil, &clients)
	return clients, err
}

// SearchClients filters clients on the backend; empty criteria are
// left out of the query entirely.
func (c *Client) SearchClients(ctx context.Context, criteria models.ClientSearch) ([]models.Client, error) {
	query := url.Values{}
	setIfPresent(query, "name", criteria.Name)
	setIfPresent(query, "job", criteria.Job)
	setIfPresent(query, "clientNumber", criteria.ClientNumber)
	setIfPresent(query, "cin", criteria.CIN)
	setIfPresent(query, "phoneNumber", criteria.PhoneNumber)
	setIfPresent(query, "workplace", criteria.Workplace)
	setIfPresent(query, "address", criteria.Address)
	setIfPresent(query, "workerNumber", criteria.WorkerNumber)

	var clients []models.Client
	err := c.getJSON(ctx, "/api/v1/clients/search", query, &clients)
	return clients, err
}

func (c *Client) GetClient(ctx context.Context, id string) (*models.Client, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var client models.Client
	if err := c.getJSON(ctx, "/api/v1/clients/"+id, nil, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *Client) CreateClient(ctx context.Context, client models.Client) (*models.Client, error) {
	var created models.Client
	if err := c.postJSON(ctx, "/api/v1/clients", client, &created); err != nil {
		return nil, err
	}
	// Detail pages and cession forms key off the id, so a create
	// response without one is treated as a failure.
	if created.ID == "" {
		return nil, ErrMissingID
	}
	return &created, nil
}

func (c *Client) UpdateClient(ctx context.Context, id string, client models.Client) (*models.Client, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var updated models.Client
	if err := c.putJSON(ctx, "/api/v1/clients/"+id, client, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteClient(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	return c.deleteJSON(ctx, "/api/v1/clients/"+id, nil)
}

func setIfPresent(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}
