package api

import (
	"context"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"

	"library-borrow-client/internal/models"
)

// CategoryInput to dane formularza kategorii (panel admina)
type CategoryInput struct {
	Name string `json:"name"`
}

// ListCategories pobiera listę kategorii (GET /categories)
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var data struct {
		Categories []models.Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/categories", "", nil, nil, &data); err != nil {
		return nil, err
	}
	return data.Categories, nil
}

// CreateCategory tworzy kategorię (POST /categories, wymaga roli admina)
func (c *Client) CreateCategory(ctx context.Context, token string, input CategoryInput) (*models.Category, error) {
	if input.Name == "" {
		return nil, pkgerrors.New("nazwa kategorii jest wymagana")
	}

	var category models.Category
	if err := c.do(ctx, http.MethodPost, "/categories", token, nil, input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory aktualizuje kategorię (PUT /categories/{id}, wymaga roli admina)
func (c *Client) UpdateCategory(ctx context.Context, token string, id int, input CategoryInput) (*models.Category, error) {
	if id <= 0 {
		return nil, pkgerrors.New("ID kategorii musi być dodatnie")
	}

	var category models.Category
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), token, nil, input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory usuwa kategorię (DELETE /categories/{id}, wymaga roli admina)
func (c *Client) DeleteCategory(ctx context.Context, token string, id int) error {
	if id <= 0 {
		return pkgerrors.New("ID kategorii musi być dodatnie")
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), token, nil, nil, nil)
}
