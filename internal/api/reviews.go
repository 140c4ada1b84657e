package api

import (
	"context"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"

	"library-borrow-client/internal/models"
)

type reviewListData struct {
	Reviews    []models.Review    `json:"reviews"`
	Pagination *models.Pagination `json:"pagination"`
}

// GetBookReviews pobiera recenzje książki (GET /reviews/book/{bookId})
func (c *Client) GetBookReviews(ctx context.Context, bookID, page, limit int) ([]models.Review, *models.Pagination, error) {
	if bookID <= 0 {
		return nil, nil, pkgerrors.New("ID książki musi być dodatnie")
	}

	var data reviewListData
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/reviews/book/%d", bookID), "", pageQuery(page, limit), nil, &data); err != nil {
		return nil, nil, err
	}
	return data.Reviews, data.Pagination, nil
}

// GetMyReviews pobiera recenzje zalogowanego użytkownika (GET /me/reviews)
func (c *Client) GetMyReviews(ctx context.Context, token string, page, limit int) ([]models.Review, *models.Pagination, error) {
	var data reviewListData
	if err := c.do(ctx, http.MethodGet, "/me/reviews", token, pageQuery(page, limit), nil, &data); err != nil {
		return nil, nil, err
	}
	return data.Reviews, data.Pagination, nil
}

// CreateReview tworzy lub nadpisuje recenzję książki (POST /reviews).
// Backend sam pilnuje, że recenzować można tylko wypożyczone książki.
func (c *Client) CreateReview(ctx context.Context, token string, bookID, star int, comment string) (*models.Review, error) {
	if bookID <= 0 {
		return nil, pkgerrors.New("ID książki musi być dodatnie")
	}
	if star < 1 || star > 5 {
		return nil, pkgerrors.New("ocena musi być w zakresie 1-5")
	}

	body := map[string]interface{}{
		"bookId":  bookID,
		"star":    star,
		"comment": comment,
	}

	var review models.Review
	if err := c.do(ctx, http.MethodPost, "/reviews", token, nil, body, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview usuwa recenzję (DELETE /reviews/{id})
func (c *Client) DeleteReview(ctx context.Context, token string, reviewID int) error {
	if reviewID <= 0 {
		return pkgerrors.New("ID recenzji musi być dodatnie")
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/reviews/%d", reviewID), token, nil, nil, nil)
}
