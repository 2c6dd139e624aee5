package api

import (
	"context"
	"net/http"

	"techsklep/mobile/internal/domain"
)

// Login authenticates and returns the user plus their server-side basket id.
// The session cookie lands in the client's jar as a side effect.
func (c *Client) Login(ctx context.Context, email string, password string) (*domain.LoginResponse, error) {
	var resp domain.LoginResponse
	req := domain.LoginRequest{Email: email, Password: password}
	if err := c.send(ctx, http.MethodPost, "/api/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the server-side session. The backend exposes this as a
// credentialed GET.
func (c *Client) Logout(ctx context.Context) error {
	return c.get(ctx, "/api/logout", nil)
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) error {
	return c.send(ctx, http.MethodPost, "/api/register", req, nil)
}
