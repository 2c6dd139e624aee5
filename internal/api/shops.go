package api

import (
	"context"
	"net/http"

	"techsklep/mobile/internal/domain"
)

// ListShops fetches the pickup locations offered during delivery selection.
func (c *Client) ListShops(ctx context.Context) ([]domain.Shop, error) {
	var shops []domain.Shop
	if err := c.get(ctx, "/api/shop", &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

// CreatePaymentIntent asks the backend for a payment-sheet secret. Amount is
// in minor currency units.
func (c *Client) CreatePaymentIntent(ctx context.Context, req domain.PaymentIntentRequest) (*domain.PaymentIntentResponse, error) {
	var resp domain.PaymentIntentResponse
	if err := c.send(ctx, http.MethodPost, "/api/payment/create-payment-intent", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
