package api

import (
	"context"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"

	"library-borrow-client/internal/models"
)

// AuthorInput to dane formularza autora (panel admina)
type AuthorInput struct {
	Name string `json:"name"`
	Bio  string `json:"bio,omitempty"`
}

type authorListData struct {
	Authors    []models.Author    `json:"authors"`
	Pagination *models.Pagination `json:"pagination"`
}

// ListAuthors pobiera listę autorów (GET /authors)
func (c *Client) ListAuthors(ctx context.Context, page, limit int) ([]models.Author, *models.Pagination, error) {
	var data authorListData
	if err := c.do(ctx, http.MethodGet, "/authors", "", pageQuery(page, limit), nil, &data); err != nil {
		return nil, nil, err
	}
	return data.Authors, data.Pagination, nil
}

// GetPopularAuthors pobiera popularnych autorów na stronę główną (GET /authors/popular)
func (c *Client) GetPopularAuthors(ctx context.Context) ([]models.Author, error) {
	var data authorListData
	if err := c.do(ctx, http.MethodGet, "/authors/popular", "", nil, nil, &data); err != nil {
		return nil, err
	}
	return data.Authors, nil
}

// GetAuthor pobiera szczegóły autora (GET /authors/{id})
func (c *Client) GetAuthor(ctx context.Context, id int) (*models.Author, error) {
	if id <= 0 {
		return nil, pkgerrors.New("ID autora musi być dodatnie")
	}

	var author models.Author
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/authors/%d", id), "", nil, nil, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAuthorBooks pobiera książki autora (GET /authors/{id}/books)
func (c *Client) GetAuthorBooks(ctx context.Context, id, page, limit int) ([]models.Book, *models.Pagination, error) {
	if id <= 0 {
		return nil, nil, pkgerrors.New("ID autora musi być dodatnie")
	}

	var data bookListData
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/authors/%d/books", id), "", pageQuery(page, limit), nil, &data); err != nil {
		return nil, nil, err
	}
	return data.Books, data.Pagination, nil
}

// CreateAuthor tworzy autora (POST /authors, wymaga roli admina)
func (c *Client) CreateAuthor(ctx context.Context, token string, input AuthorInput) (*models.Author, error) {
	if input.Name == "" {
		return nil, pkgerrors.New("nazwa autora jest wymagana")
	}

	var author models.Author
	if err := c.do(ctx, http.MethodPost, "/authors", token, nil, input, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// UpdateAuthor aktualizuje autora (PUT /authors/{id}, wymaga roli admina)
func (c *Client) UpdateAuthor(ctx context.Context, token string, id int, input AuthorInput) (*models.Author, error) {
	if id <= 0 {
		return nil, pkgerrors.New("ID autora musi być dodatnie")
	}

	var author models.Author
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/authors/%d", id), token, nil, input, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// DeleteAuthor usuwa autora (DELETE /authors/{id}, wymaga roli admina)
func (c *Client) DeleteAuthor(ctx context.Context, token string, id int) error {
	if id <= 0 {
		return pkgerrors.New("ID autora musi być dodatnie")
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/authors/%d", id), token, nil, nil, nil)
}
