package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"techsklep/mobile/internal/domain"
)

// CommentsForProduct fetches the reviews shown on a product page.
func (c *Client) CommentsForProduct(ctx context.Context, productID int) ([]domain.Comment, error) {
	var comments []domain.Comment
	path := fmt.Sprintf("/api/comments/product/%d", productID)
	if err := c.get(ctx, path, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CommentsForUser fetches the reviews one account has written.
func (c *Client) CommentsForUser(ctx context.Context, email string) ([]domain.Comment, error) {
	var comments []domain.Comment
	path := "/api/comments/user/" + url.PathEscape(email)
	if err := c.get(ctx, path, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment posts a new review.
func (c *Client) CreateComment(ctx context.Context, req domain.CommentRequest) (*domain.Comment, error) {
	var comment domain.Comment
	if err := c.send(ctx, http.MethodPost, "/api/comments", req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment edits an existing review in place.
func (c *Client) UpdateComment(ctx context.Context, id int, req domain.CommentRequest) (*domain.Comment, error) {
	var comment domain.Comment
	path := fmt.Sprintf("/api/comments/%d", id)
	if err := c.send(ctx, http.MethodPut, path, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
