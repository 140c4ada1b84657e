package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"library-borrow-client/internal/models"
)

// BookListParams to parametry wyszukiwania i filtrowania katalogu
type BookListParams struct {
	Search   string
	Category string
	Rating   int
	Page     int
	Limit    int
}

// BookInput to dane formularza tworzenia lub edycji książki (panel admina)
type BookInput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	ISBN          string `json:"isbn"`
	PublishedYear int    `json:"publishedYear"`
	CoverImage    string `json:"coverImage"`
	TotalCopies   int    `json:"totalCopies"`
	AuthorID      int    `json:"authorId"`
	CategoryID    int    `json:"categoryId"`
}

type bookListData struct {
	Books      []models.Book      `json:"books"`
	Pagination *models.Pagination `json:"pagination"`
}

// ListBooks pobiera katalog książek (GET /books) z wyszukiwaniem,
// filtrem kategorii i stronicowaniem
func (c *Client) ListBooks(ctx context.Context, params BookListParams) ([]models.Book, *models.Pagination, error) {
	query := pageQuery(params.Page, params.Limit)
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Category != "" {
		query.Set("category", params.Category)
	}
	if params.Rating > 0 {
		query.Set("rating", strconv.Itoa(params.Rating))
	}

	var data bookListData
	if err := c.do(ctx, http.MethodGet, "/books", "", query, nil, &data); err != nil {
		return nil, nil, err
	}

	return data.Books, data.Pagination, nil
}

// GetBook pobiera szczegóły jednej książki (GET /books/{id})
func (c *Client) GetBook(ctx context.Context, id int) (*models.Book, error) {
	if id <= 0 {
		return nil, pkgerrors.New("ID książki musi być dodatnie")
	}

	var book models.Book
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/books/%d", id), "", nil, nil, &book); err != nil {
		return nil, err
	}

	return &book, nil
}

// GetRecommendations pobiera rekomendacje książek (GET /books/recommend).
// Tryb "rating" zwraca najwyżej oceniane, "popular" najczęściej wypożyczane.
func (c *Client) GetRecommendations(ctx context.Context, mode string, page, limit int) ([]models.Book, *models.Pagination, error) {
	if mode == "" {
		mode = "rating"
	}

	query := pageQuery(page, limit)
	query.Set("mode", mode)

	var data struct {
		Mode       string             `json:"mode"`
		Books      []models.Book      `json:"books"`
		Pagination *models.Pagination `json:"pagination"`
	}
	if err := c.do(ctx, http.MethodGet, "/books/recommend", "", query, nil, &data); err != nil {
		return nil, nil, err
	}

	return data.Books, data.Pagination, nil
}

// ListAdminBooks pobiera katalog dla panelu admina (GET /admin/books)
func (c *Client) ListAdminBooks(ctx context.Context, token string, params BookListParams) ([]models.Book, *models.Pagination, error) {
	query := pageQuery(params.Page, params.Limit)
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Category != "" {
		query.Set("category", params.Category)
	}

	var data bookListData
	if err := c.do(ctx, http.MethodGet, "/admin/books", token, query, nil, &data); err != nil {
		return nil, nil, err
	}

	return data.Books, data.Pagination, nil
}

// CreateBook tworzy nową książkę (POST /books, wymaga roli admina)
func (c *Client) CreateBook(ctx context.Context, token string, input BookInput) (*models.Book, error) {
	if input.Title == "" {
		return nil, pkgerrors.New("tytuł jest wymagany")
	}

	var book models.Book
	if err := c.do(ctx, http.MethodPost, "/books", token, nil, input, &book); err != nil {
		return nil, err
	}

	return &book, nil
}

// UpdateBook aktualizuje książkę (PUT /books/{id}, wymaga roli admina)
func (c *Client) UpdateBook(ctx context.Context, token string, id int, input BookInput) (*models.Book, error) {
	if id <= 0 {
		return nil, pkgerrors.New("ID książki musi być dodatnie")
	}

	var data struct {
		Book models.Book `json:"book"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/books/%d", id), token, nil, input, &data); err != nil {
		return nil, err
	}

	return &data.Book, nil
}

// DeleteBook usuwa książkę (DELETE /books/{id}, wymaga roli admina)
func (c *Client) DeleteBook(ctx context.Context, token string, id int) error {
	if id <= 0 {
		return pkgerrors.New("ID książki musi być dodatnie")
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/books/%d", id), token, nil, nil, nil)
}
