package api

import (
	"context"
	"net/http"

	pkgerrors "github.com/pkg/errors"

	"library-borrow-client/internal/models"
)

// AuthResult to odpowiedź backendu na logowanie lub rejestrację:
// token okaziciela plus dane zalogowanego użytkownika
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// RegisterInput to dane formularza rejestracji wysyłane do backendu
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login loguje użytkownika przez backend (POST /auth/login).
// Weryfikacja hasła należy w całości do backendu — klient dostaje tylko
// token i dane użytkownika.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, pkgerrors.New("email i hasło są wymagane")
	}

	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", nil, body, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Register rejestruje nowe konto (POST /auth/register)
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, pkgerrors.New("imię, email i hasło są wymagane")
	}

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", nil, input, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
