package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
)

// Client jest klientem REST API biblioteki. Backend jest właścicielem
// wszystkich danych — klient tylko wysyła żądania i parsuje odpowiedzi.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var (
	// GlobalClient to globalna instancja klienta API
	GlobalClient *Client
)

// Init inicjalizuje klienta API i ustawia instancję globalną
func Init(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, pkgerrors.New("brak adresu bazowego API (API_BASE_URL)")
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}

	GlobalClient = client
	return client, nil
}

// Error opisuje odpowiedź błędu zwróconą przez backend. Message zawiera
// komunikat backendu dosłownie — warstwa wyżej pokazuje go użytkownikowi.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// MessageFromError zwraca komunikat backendu, jeśli błąd pochodzi z API.
// Dla błędów transportowych (brak sieci itp.) zwraca pusty string — wtedy
// wywołujący pokazuje własny komunikat zastępczy.
func MessageFromError(err error) string {
	var apiErr *Error
	if pkgerrors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// envelope to standardowa koperta odpowiedzi backendu
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do wykonuje żądanie HTTP do backendu i dekoduje kopertę odpowiedzi.
// Gdy out nie jest nil, pole data koperty jest do niego parsowane.
// Token może być pusty dla endpointów publicznych.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out interface{}) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(err, "błąd tworzenia żądania")
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return pkgerrors.Wrap(err, "błąd tworzenia żądania")
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(err, "błąd połączenia z backendem")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(err, "błąd odczytu odpowiedzi")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Spróbuj wyciągnąć komunikat backendu z koperty błędu.
		var env envelope
		if err := json.Unmarshal(respBody, &env); err == nil && env.Message != "" {
			return &Error{StatusCode: resp.StatusCode, Message: env.Message}
		}
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    "backend zwrócił status " + resp.Status,
		}
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return pkgerrors.Wrap(err, "błąd parsowania odpowiedzi")
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return pkgerrors.Wrap(err, "błąd parsowania danych odpowiedzi")
	}

	return nil
}

// pageQuery buduje parametry stronicowania wspólne dla list backendu
func pageQuery(page, limit int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return query
}
