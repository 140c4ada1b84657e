package api

import (
	"context"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"

	"library-borrow-client/internal/models"
)

// GetCart pobiera zawartość koszyka (GET /cart)
func (c *Client) GetCart(ctx context.Context, token string) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart dodaje książkę do koszyka (POST /cart/items)
func (c *Client) AddToCart(ctx context.Context, token string, bookID int) (*models.CartItem, error) {
	if bookID <= 0 {
		return nil, pkgerrors.New("ID książki musi być dodatnie")
	}

	body := map[string]int{"bookId": bookID}

	var data struct {
		Item models.CartItem `json:"item"`
	}
	if err := c.do(ctx, http.MethodPost, "/cart/items", token, nil, body, &data); err != nil {
		return nil, err
	}
	return &data.Item, nil
}

// RemoveFromCart usuwa jedną pozycję z koszyka (DELETE /cart/items/{itemId})
func (c *Client) RemoveFromCart(ctx context.Context, token string, itemID int) error {
	if itemID <= 0 {
		return pkgerrors.New("ID pozycji musi być dodatnie")
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/items/%d", itemID), token, nil, nil, nil)
}

// ClearCart opróżnia cały koszyk (DELETE /cart)
func (c *Client) ClearCart(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/cart", token, nil, nil, nil)
}

// GetCheckout pobiera ładunek checkout: dane kontaktowe użytkownika i pozycje
// koszyka do potwierdzenia (GET /cart/checkout). Samo pobranie niczego nie
// wypożycza.
func (c *Client) GetCheckout(ctx context.Context, token string) (*models.Checkout, error) {
	var checkout models.Checkout
	if err := c.do(ctx, http.MethodGet, "/cart/checkout", token, nil, nil, &checkout); err != nil {
		return nil, err
	}
	return &checkout, nil
}

// ConfirmBorrow potwierdza wypożyczenie wybranych pozycji koszyka jako jedno
// atomowe żądanie (POST /loans/from-cart). Backend tworzy rekordy wypożyczeń
// i sam wylicza autorytatywne terminy zwrotu.
func (c *Client) ConfirmBorrow(ctx context.Context, token string, itemIDs []int, borrowDuration int) (*models.BorrowResult, error) {
	if len(itemIDs) == 0 {
		return nil, pkgerrors.New("lista pozycji nie może być pusta")
	}

	body := map[string]interface{}{
		"itemIds":        itemIDs,
		"borrowDuration": borrowDuration,
	}

	var result models.BorrowResult
	if err := c.do(ctx, http.MethodPost, "/loans/from-cart", token, nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
