package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

// RecordStockMovement registers an inbound or outbound movement. The
// endpoint binds form fields rather than a JSON body.
func (c *Client) RecordStockMovement(ctx context.Context, movement models.StockMovement) (*models.StockMovement, error) {
	if err := validID(movement.ProductID); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("productId", movement.ProductID)
	form.Set("quantity", strconv.Itoa(movement.Quantity))
	form.Set("sellingPrice", strconv.FormatFloat(movement.SellingPriceAtSale, 'f', -1, 64))
	if movement.Notes != "" {
		form.Set("notes", movement.Notes)
	}

	var recorded models.StockMovement
	if err := c.postForm(ctx, "/api/v1/stock-movements/record", form, &recorded); err != nil {
		return nil, err
	}
	return &recorded, nil
}

// GetRecentStockMovements lists the latest movements. Some responses
// nest the product instead of sending a flat name, so the flat fields
// are backfilled before the list is returned.
func (c *Client) GetRecentStockMovements(ctx context.Context, movementType string, limit int) ([]models.StockMovement, error) {
	query := url.Values{}
	if movementType != "" {
		query.Set("type", movementType)
	}
	query.Set("limit", strconv.Itoa(limit))

	var movements []models.StockMovement
	if err := c.getJSON(ctx, "/api/v1/stock-movements/recent", query, &movements); err != nil {
		return nil, err
	}

	for i := range movements {
		if movements[i].Product == nil {
			continue
		}
		if movements[i].ProductName == "" {
			movements[i].ProductName = movements[i].Product.Name
		}
		if movements[i].ProductID == "" {
			movements[i].ProductID = movements[i].Product.ID
		}
	}
	return movements, nil
}
