package backend

import (
	"context"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

// Workplaces and jobs are slow-moving lookup lists used by the client
// forms, so both are served from the cache.

func (c *Client) ListWorkplaces(ctx context.Context) ([]models.Workplace, error) {
	var workplaces []models.Workplace
	err := c.getJSONCached(ctx, "/api/workplaces", nil, &workplaces)
	return workplaces, err
}

func (c *Client) CreateWorkplace(ctx context.Context, workplace models.Workplace) (*models.Workplace, error) {
	var created models.Workplace
	if err := c.postJSON(ctx, "/api/workplaces", workplace, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteWorkplace(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	return c.deleteJSON(ctx, "/api/workplaces/"+id, nil)
}

func (c *Client) ListJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	err := c.getJSONCached(ctx, "/api/jobs", nil, &jobs)
	return jobs, err
}

func (c *Client) CreateJob(ctx context.Context, job models.Job) (*models.Job, error) {
	var created models.Job
	if err := c.postJSON(ctx, "/api/jobs", job, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	return c.deleteJSON(ctx, "/api/jobs/"+id, nil)
}
