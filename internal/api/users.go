package api

import (
	"context"
	"net/http"

	"library-borrow-client/internal/models"
)

// GetProfile pobiera profil zalogowanego użytkownika ze statystykami
// wypożyczeń (GET /me)
func (c *Client) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodGet, "/me", token, nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfileInput to zmiany profilu; pola puste nie są wysyłane
type UpdateProfileInput struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
	Password     string `json:"password,omitempty"`
}

// UpdateProfile aktualizuje profil użytkownika (PATCH /me)
func (c *Client) UpdateProfile(ctx context.Context, token string, input UpdateProfileInput) (*models.User, error) {
	var data struct {
		Profile models.User `json:"profile"`
	}
	if err := c.do(ctx, http.MethodPatch, "/me", token, nil, input, &data); err != nil {
		return nil, err
	}
	return &data.Profile, nil
}

// ListUsers pobiera listę użytkowników dla panelu admina (GET /admin/users)
func (c *Client) ListUsers(ctx context.Context, token, search string, page, limit int) ([]models.User, *models.Pagination, error) {
	query := pageQuery(page, limit)
	if search != "" {
		query.Set("search", search)
	}

	var data struct {
		Users      []models.User      `json:"users"`
		Pagination *models.Pagination `json:"pagination"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/users", token, query, nil, &data); err != nil {
		return nil, nil, err
	}
	return data.Users, data.Pagination, nil
}
