package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"techsklep/mobile/internal/domain"
)

// CreateOrder submits the checkout order.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.send(ctx, http.MethodPost, "/api/order", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders fetches every order (staff view).
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/api/order/all", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrdersForUser fetches the order history of one account.
func (c *Client) OrdersForUser(ctx context.Context, email string) ([]domain.Order, error) {
	var orders []domain.Order
	path := "/api/order/user/" + url.PathEscape(email)
	if err := c.get(ctx, path, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderState PATCHes the order state and returns the server's view of
// the order, which callers must treat as the sole source of truth.
func (c *Client) UpdateOrderState(ctx context.Context, id int, state string) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/api/order/update/%d", id)
	if err := c.send(ctx, http.MethodPatch, path, domain.OrderStateUpdate{State: state}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// AddOrderIssue attaches an issue report to the order.
func (c *Client) AddOrderIssue(ctx context.Context, id int, req domain.OrderIssueRequest) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/api/order/%d/add-issue", id)
	if err := c.send(ctx, http.MethodPatch, path, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
