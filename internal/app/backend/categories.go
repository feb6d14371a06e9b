package backend

import (
	"context"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := c.getJSONCached(ctx, "/api/v1/categories", nil, &categories)
	return categories, err
}

func (c *Client) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	var created models.Category
	if err := c.postJSON(ctx, "/api/v1/categories", category, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var category models.Category
	if err := c.getJSON(ctx, "/api/v1/categories/"+id, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, category models.Category) (*models.Category, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var updated models.Category
	if err := c.putJSON(ctx, "/api/v1/categories/"+id, category, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	return c.deleteJSON(ctx, "/api/v1/categories/"+id, nil)
}
