package api

import (
	"context"
	"fmt"
	"net/http"

	"techsklep/mobile/internal/catalog"
	"techsklep/mobile/internal/domain"
)

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.get(ctx, "/api/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListProductSummaries fetches the lightweight catalog rows used by list
// screens.
func (c *Client) ListProductSummaries(ctx context.Context) ([]domain.ProductSummary, error) {
	var products []domain.ProductSummary
	if err := c.get(ctx, "/api/products/dto", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches one product. A 404 comes back as *Error with
// NotFound() true; the caller renders the not-found view.
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := c.get(ctx, fmt.Sprintf("/api/products/%d", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// FilterProducts requests the server-side filtered list for the criteria.
func (c *Client) FilterProducts(ctx context.Context, criteria catalog.FilterCriteria) ([]domain.Product, error) {
	var products []domain.Product
	query := catalog.BuildProductQuery(criteria)
	if err := c.get(ctx, query.Encode(), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Producers requests the distinct producer names available under the
// criteria's category and search constraints.
func (c *Client) Producers(ctx context.Context, criteria catalog.FilterCriteria) ([]string, error) {
	var producers []string
	query := catalog.BuildProducerQuery(criteria)
	if err := c.get(ctx, query.Encode(), &producers); err != nil {
		return nil, err
	}
	return producers, nil
}

// UpdateStockStates reports stock changes for a batch of products.
func (c *Client) UpdateStockStates(ctx context.Context, updates []domain.StockUpdate) error {
	return c.send(ctx, http.MethodPatch, "/api/products/quantity", updates, nil)
}
