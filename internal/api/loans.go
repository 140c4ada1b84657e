package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	pkgerrors "github.com/pkg/errors"

	"library-borrow-client/internal/models"
)

type loanListData struct {
	Loans      []models.Loan      `json:"loans"`
	Pagination *models.Pagination `json:"pagination"`
}

// BorrowBook wypożycza pojedynczą książkę bezpośrednio ze strony szczegółów
// (POST /loans), z pominięciem koszyka
func (c *Client) BorrowBook(ctx context.Context, token string, bookID, durationDays int) (*models.Loan, error) {
	if bookID <= 0 {
		return nil, pkgerrors.New("ID książki musi być dodatnie")
	}

	body := map[string]int{
		"bookId":   bookID,
		"duration": durationDays,
	}

	var data struct {
		Loan models.Loan `json:"loan"`
	}
	if err := c.do(ctx, http.MethodPost, "/loans", token, nil, body, &data); err != nil {
		return nil, err
	}
	return &data.Loan, nil
}

// ReturnBook zgłasza zwrot książki (PATCH /loans/{id}/return)
func (c *Client) ReturnBook(ctx context.Context, token string, loanID int) (*models.Loan, error) {
	if loanID <= 0 {
		return nil, pkgerrors.New("ID wypożyczenia musi być dodatnie")
	}

	var data struct {
		Loan models.Loan `json:"loan"`
	}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/loans/%d/return", loanID), token, nil, nil, &data); err != nil {
		return nil, err
	}
	return &data.Loan, nil
}

// GetMyLoans pobiera wypożyczenia zalogowanego użytkownika (GET /me/loans).
// Filtr statusu jest opcjonalny i interpretowany przez backend.
func (c *Client) GetMyLoans(ctx context.Context, token, status string, page, limit int) ([]models.Loan, *models.Pagination, error) {
	query := pageQuery(page, limit)
	if status != "" {
		query.Set("status", status)
	}

	var data loanListData
	if err := c.do(ctx, http.MethodGet, "/me/loans", token, query, nil, &data); err != nil {
		return nil, nil, err
	}
	return data.Loans, data.Pagination, nil
}

// LoanListParams to parametry listy wypożyczeń w panelu admina
type LoanListParams struct {
	Search string
	Status string
	Page   int
	Limit  int
}

// ListLoans pobiera wypożyczenia dla panelu admina (GET /admin/loans)
// z wyszukiwaniem po tytule i filtrem statusu
func (c *Client) ListLoans(ctx context.Context, token string, params LoanListParams) ([]models.Loan, *models.Pagination, error) {
	query := pageQuery(params.Page, params.Limit)
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}

	var data loanListData
	if err := c.do(ctx, http.MethodGet, "/admin/loans", token, query, nil, &data); err != nil {
		return nil, nil, err
	}
	return data.Loans, data.Pagination, nil
}

// ListOverdueLoans pobiera przeterminowane wypożyczenia (GET /admin/loans/overdue)
func (c *Client) ListOverdueLoans(ctx context.Context, token string, page, limit int) ([]models.Loan, *models.Pagination, error) {
	var data struct {
		Overdue    []models.Loan      `json:"overdue"`
		Pagination *models.Pagination `json:"pagination"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/loans/overdue", token, pageQuery(page, limit), nil, &data); err != nil {
		return nil, nil, err
	}
	return data.Overdue, data.Pagination, nil
}

// CreateLoanInput to dane ręcznego utworzenia wypożyczenia przez admina
type CreateLoanInput struct {
	UserID int        `json:"userId"`
	BookID int        `json:"bookId"`
	DueAt  *time.Time `json:"dueAt,omitempty"`
}

// CreateLoan tworzy wypożyczenie ręcznie (POST /admin/loans)
func (c *Client) CreateLoan(ctx context.Context, token string, input CreateLoanInput) (*models.Loan, error) {
	if input.UserID <= 0 || input.BookID <= 0 {
		return nil, pkgerrors.New("ID użytkownika i książki są wymagane")
	}

	var data struct {
		Loan models.Loan `json:"loan"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/loans", token, nil, input, &data); err != nil {
		return nil, err
	}
	return &data.Loan, nil
}

// UpdateLoanInput to zmiany wypożyczenia wprowadzane przez admina.
// Pola nil nie są wysyłane — backend zmienia tylko to, co przyszło.
type UpdateLoanInput struct {
	Status     *models.LoanStatus `json:"status,omitempty"`
	DueAt      *time.Time         `json:"dueAt,omitempty"`
	ReturnedAt *time.Time         `json:"returnedAt,omitempty"`
}

// UpdateLoan aktualizuje wypożyczenie (PATCH /admin/loans/{id})
func (c *Client) UpdateLoan(ctx context.Context, token string, loanID int, input UpdateLoanInput) (*models.Loan, error) {
	if loanID <= 0 {
		return nil, pkgerrors.New("ID wypożyczenia musi być dodatnie")
	}

	var data struct {
		Loan models.Loan `json:"loan"`
	}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/admin/loans/%d", loanID), token, nil, input, &data); err != nil {
		return nil, err
	}
	return &data.Loan, nil
}
