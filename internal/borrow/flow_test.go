package borrow

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"library-borrow-client/internal/api"
	"library-borrow-client/internal/models"
)

// fakeClient odgrywa backend w testach przepływu
type fakeClient struct {
	checkout    *models.Checkout
	checkoutErr error

	confirmResult *models.BorrowResult
	confirmErr    error

	confirmCalls    int
	lastItemIDs     []int
	lastDuration    int
	checkoutFetches int
}

func (f *fakeClient) GetCheckout(ctx context.Context, token string) (*models.Checkout, error) {
	f.checkoutFetches++
	if f.checkoutErr != nil {
		return nil, f.checkoutErr
	}
	return f.checkout, nil
}

func (f *fakeClient) ConfirmBorrow(ctx context.Context, token string, itemIDs []int, borrowDuration int) (*models.BorrowResult, error) {
	f.confirmCalls++
	f.lastItemIDs = itemIDs
	f.lastDuration = borrowDuration
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return f.confirmResult, nil
}

// fakeInvalidator zapisuje unieważnione tagi
type fakeInvalidator struct {
	tags []string
}

func (f *fakeInvalidator) Invalidate(tags ...string) {
	f.tags = append(f.tags, tags...)
}

func testCheckout() *models.Checkout {
	return &models.Checkout{
		User: models.CheckoutUser{Name: "Jan Kowalski", Email: "jan@example.com", Phone: "600100200"},
		Items: []models.CartItem{
			{ID: 11, BookID: 1, Book: models.Book{ID: 1, Title: "Lalka"}},
			{ID: 12, BookID: 2, Book: models.Book{ID: 2, Title: "Potop"}},
		},
		ItemCount: 2,
	}
}

func newTestFlow(client *fakeClient) (*Flow, *fakeInvalidator) {
	inv := &fakeInvalidator{}
	flow := NewFlow(client, inv, "token-123")
	flow.now = func() time.Time {
		return time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	}
	return flow, inv
}

func TestLoadCheckout(t *testing.T) {
	client := &fakeClient{checkout: testCheckout()}
	flow, _ := newTestFlow(client)

	assert.Equal(t, StateIdle, flow.State())

	err := flow.LoadCheckout(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, StateReviewing, flow.State())

	// Domyślnie wszystkie pozycje zaznaczone, czas trwania najkrótszy.
	assert.Equal(t, []int{11, 12}, flow.SelectedItemIDs())
	assert.Equal(t, 3, flow.Duration())
	assert.Equal(t, time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC), flow.BorrowDate())
}

func TestLoadCheckoutFailureStaysIdle(t *testing.T) {
	client := &fakeClient{checkoutErr: &api.Error{StatusCode: http.StatusBadGateway, Message: "backend down"}}
	flow, _ := newTestFlow(client)

	err := flow.LoadCheckout(context.Background())
	assert.Error(t, err)
	assert.Equal(t, StateIdle, flow.State())
	assert.Nil(t, flow.Checkout())
}

func TestSetDurationValidation(t *testing.T) {
	client := &fakeClient{checkout: testCheckout()}
	flow, _ := newTestFlow(client)
	assert.NoError(t, flow.LoadCheckout(context.Background()))

	for _, days := range []int{3, 5, 10} {
		assert.True(t, flow.SetDuration(days))
		assert.Equal(t, days, flow.Duration())
	}

	for _, days := range []int{0, 1, 4, 7, 14, -3} {
		assert.False(t, flow.SetDuration(days))
	}
	// Odrzucona wartość nie zmienia wyboru.
	assert.Equal(t, 10, flow.Duration())
}

func TestReturnDatePrediction(t *testing.T) {
	client := &fakeClient{checkout: testCheckout()}
	flow, _ := newTestFlow(client)
	assert.NoError(t, flow.LoadCheckout(context.Background()))

	flow.SetBorrowDate(time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC))
	flow.SetDuration(5)
	assert.Equal(t, "10 August 2025", flow.ReturnDateLabel())

	// Granica miesiąca.
	flow.SetBorrowDate(time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC))
	flow.SetDuration(3)
	assert.Equal(t, "2 February 2025", flow.ReturnDateLabel())
}

func TestSubmitGuardWithoutAgreements(t *testing.T) {
	client := &fakeClient{checkout: testCheckout()}
	flow, _ := newTestFlow(client)
	assert.NoError(t, flow.LoadCheckout(context.Background()))

	// Dwie pozycje zaznaczone, ale żadne potwierdzenie nie jest odhaczone.
	assert.False(t, flow.CanSubmit())

	err := flow.Submit(context.Background())
	assert.NoError(t, err)

	// Cicha blokada: żadnego żądania do backendu, stan bez zmian.
	assert.Equal(t, 0, client.confirmCalls)
	assert.Equal(t, StateReviewing, flow.State())
}

func TestSubmitGuardWithoutSelection(t *testing.T) {
	client := &fakeClient{checkout: testCheckout()}
	flow, _ := newTestFlow(client)
	assert.NoError(t, flow.LoadCheckout(context.Background()))

	flow.SetAgreements(true, true)
	flow.ToggleItem(11)
	flow.ToggleItem(12)
	assert.Empty(t, flow.SelectedItemIDs())
	assert.False(t, flow.CanSubmit())

	err := flow.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, client.confirmCalls)
}

func TestSubmitSuccess(t *testing.T) {
	client := &fakeClient{
		checkout: testCheckout(),
		confirmResult: &models.BorrowResult{
			Loans: []models.Loan{
				{
					ID:         100,
					Status:     models.LoanStatusBorrowed,
					BorrowedAt: time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC),
					DueAt:      time.Date(2025, 8, 10, 10, 0, 0, 0, time.UTC),
				},
			},
			RemovedFromCart: 1,
		},
	}
	flow, inv := newTestFlow(client)
	assert.NoError(t, flow.LoadCheckout(context.Background()))

	// Jedna pozycja zaznaczona, oba potwierdzenia odhaczone.
	flow.ToggleItem(12)
	flow.SetAgreements(true, true)
	flow.SetDuration(5)
	assert.True(t, flow.CanSubmit())

	err := flow.Submit(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, StateSucceeded, flow.State())
	assert.Equal(t, 1, client.confirmCalls)
	assert.Equal(t, []int{11}, client.lastItemIDs)
	assert.Equal(t, 5, client.lastDuration)

	// Wszystkie zależne widoki oznaczone do odświeżenia.
	assert.ElementsMatch(t, []string{"cart", "my-loans", "my-reviews", "checkout", "profile"}, inv.tags)

	// Autorytatywny termin zwrotu pochodzi z rekordu backendu.
	assert.Equal(t, time.Date(2025, 8, 10, 10, 0, 0, 0, time.UTC), flow.Result().Loans[0].DueAt)
}

func TestSubmitFailureReturnsToReviewing(t *testing.T) {
	client := &fakeClient{
		checkout:   testCheckout(),
		confirmErr: &api.Error{StatusCode: http.StatusConflict, Message: "Book unavailable"},
	}
	flow, inv := newTestFlow(client)
	assert.NoError(t, flow.LoadCheckout(context.Background()))

	flow.ToggleItem(12)
	flow.SetAgreements(true, true)
	flow.SetDuration(10)

	err := flow.Submit(context.Background())
	assert.Error(t, err)

	// Powrót do Reviewing z zachowanym wyborem i czasem trwania.
	assert.Equal(t, StateReviewing, flow.State())
	assert.Equal(t, []int{11}, flow.SelectedItemIDs())
	assert.Equal(t, 10, flow.Duration())

	// Komunikat backendu dosłownie.
	assert.Equal(t, "Book unavailable", flow.LastError())

	// Nic nie zostało unieważnione.
	assert.Empty(t, inv.tags)
}

func TestSubmitFailureFallbackMessage(t *testing.T) {
	client := &fakeClient{
		checkout:   testCheckout(),
		confirmErr: context.DeadlineExceeded, // błąd transportowy bez komunikatu backendu
	}
	flow, _ := newTestFlow(client)
	assert.NoError(t, flow.LoadCheckout(context.Background()))

	flow.SetAgreements(true, true)

	err := flow.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, FallbackSubmitMessage, flow.LastError())
}

func TestResubmitAfterFailure(t *testing.T) {
	client := &fakeClient{
		checkout:   testCheckout(),
		confirmErr: &api.Error{StatusCode: http.StatusConflict, Message: "Book unavailable"},
	}
	flow, _ := newTestFlow(client)
	assert.NoError(t, flow.LoadCheckout(context.Background()))

	flow.SetAgreements(true, true)
	assert.Error(t, flow.Submit(context.Background()))

	// Backend wraca do zdrowia; ponowna wysyłka wymaga jawnej akcji
	// użytkownika i jest nową transakcją.
	client.confirmErr = nil
	client.confirmResult = &models.BorrowResult{}

	assert.NoError(t, flow.Submit(context.Background()))
	assert.Equal(t, StateSucceeded, flow.State())
	assert.Equal(t, 2, client.confirmCalls)
}

func TestToggleUnknownItemIgnored(t *testing.T) {
	client := &fakeClient{checkout: testCheckout()}
	flow, _ := newTestFlow(client)
	assert.NoError(t, flow.LoadCheckout(context.Background()))

	flow.ToggleItem(999)
	assert.Equal(t, []int{11, 12}, flow.SelectedItemIDs())
}
