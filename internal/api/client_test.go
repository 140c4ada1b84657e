package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := Init(server.URL)
	assert.NoError(t, err)
	return client
}

func TestInitRequiresBaseURL(t *testing.T) {
	_, err := Init("")
	assert.Error(t, err)
}

func TestDoDecodesEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"message": "OK",
			"data": {"cartId": 7, "items": [], "itemCount": 0}
		}`))
	})

	cart, err := client.GetCart(context.Background(), "token-123")
	assert.NoError(t, err)
	assert.Equal(t, 7, cart.CartID)
	assert.Equal(t, 0, cart.ItemCount)
}

func TestDoSurfacesBackendMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success": false, "message": "Book unavailable"}`))
	})

	_, err := client.ConfirmBorrow(context.Background(), "token-123", []int{1}, 3)
	assert.Error(t, err)

	// Komunikat backendu musi być dostępny dosłownie.
	assert.Equal(t, "Book unavailable", MessageFromError(err))

	var apiErr *Error
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestDoFallbackErrorWithoutMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	})

	_, err := client.GetCheckout(context.Background(), "token-123")
	assert.Error(t, err)

	var apiErr *Error
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestMessageFromErrorTransportFailure(t *testing.T) {
	client, err := Init("http://127.0.0.1:0")
	assert.NoError(t, err)

	_, err = client.GetCart(context.Background(), "token-123")
	assert.Error(t, err)

	// Błąd transportowy nie niesie komunikatu backendu.
	assert.Equal(t, "", MessageFromError(err))
}

func TestConfirmBorrowRequiresItems(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.ConfirmBorrow(context.Background(), "token-123", nil, 3)
	assert.Error(t, err)
	assert.False(t, called)
}
