package backend

import (
	"context"
	"net/url"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

func (c *Client) ListCessions(ctx context.Context) ([]models.Cession, error) {
	var cessions []models.Cession
	err := c.getJSONCached(ctx, "/api/v1/cessions", nil, &cessions)
	return cessions, err
}

func (c *Client) SearchCessions(ctx context.Context, criteria models.CessionSearch) ([]models.Cession, error) {
	query := url.Values{}
	setIfPresent(query, "name", criteria.Name)
	setIfPresent(query, "job", criteria.Job)
	setIfPresent(query, "clientNumber", criteria.ClientNumber)
	setIfPresent(query, "clientCin", criteria.ClientCIN)
	setIfPresent(query, "status", criteria.Status)
	setIfPresent(query, "phoneNumber", criteria.PhoneNumber)
	setIfPresent(query, "workplace", criteria.Workplace)
	setIfPresent(query, "address", criteria.Address)
	setIfPresent(query, "jobId", criteria.JobID)

	var cessions []models.Cession
	err := c.getJSON(ctx, "/api/v1/cessions/search", query, &cessions)
	return cessions, err
}

func (c *Client) GetCession(ctx context.Context, id string) (*models.Cession, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var cession models.Cession
	if err := c.getJSON(ctx, "/api/v1/cessions/"+id, nil, &cession); err != nil {
		return nil, err
	}
	return &cession, nil
}

// GetClientCessions lists the cessions held by one client.
func (c *Client) GetClientCessions(ctx context.Context, clientID string) ([]models.Cession, error) {
	if err := validID(clientID); err != nil {
		return nil, err
	}
	var cessions []models.Cession
	err := c.getJSON(ctx, "/api/v1/cessions/client/"+clientID, nil, &cessions)
	return cessions, err
}

func (c *Client) CreateCession(ctx context.Context, cession models.Cession) (*models.Cession, error) {
	var created models.Cession
	if err := c.postJSON(ctx, "/api/v1/cessions", cession, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateCession(ctx context.Context, id string, cession models.Cession) (*models.Cession, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var updated models.Cession
	if err := c.putJSON(ctx, "/api/v1/cessions/"+id, cession, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCession(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	return c.deleteJSON(ctx, "/api/v1/cessions/"+id, nil)
}
