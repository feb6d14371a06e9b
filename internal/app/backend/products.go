package backend

import (
	"context"
	"net/url"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.getJSONCached(ctx, "/api/v1/products", nil, &products)
	return products, err
}

func (c *Client) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	query := url.Values{}
	setIfPresent(query, "query", term)

	var products []models.Product
	err := c.getJSON(ctx, "/api/v1/products/search", query, &products)
	return products, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var product models.Product
	if err := c.getJSON(ctx, "/api/v1/products/"+id, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.postJSON(ctx, "/api/v1/products", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, product models.Product) (*models.Product, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var updated models.Product
	if err := c.putJSON(ctx, "/api/v1/products/"+id, product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	return c.deleteJSON(ctx, "/api/v1/products/"+id, nil)
}
