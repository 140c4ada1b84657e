package borrow

import (
	"context"
	"sort"
	"time"

	"library-borrow-client/internal/api"
	"library-borrow-client/internal/cache"
	"library-borrow-client/internal/datemath"
	"library-borrow-client/internal/models"
)

// State określa stan przepływu wypożyczania w checkout
type State string

const (
	StateIdle       State = "idle"       // Przed załadowaniem ładunku checkout
	StateReviewing  State = "reviewing"  // Użytkownik przegląda i ustawia wybór
	StateSubmitting State = "submitting" // Żądanie potwierdzenia w locie
	StateSucceeded  State = "succeeded"  // Wypożyczenie potwierdzone
)

// AllowedDurations to jedyne dopuszczalne czasy trwania wypożyczenia w dniach
var AllowedDurations = []int{3, 5, 10}

const (
	defaultDuration = 3

	// FallbackSubmitMessage jest pokazywany gdy backend nie zwrócił
	// własnego komunikatu błędu
	FallbackSubmitMessage = "Failed to confirm borrow. Please try again."
)

// Client to część API backendu potrzebna przepływowi
type Client interface {
	GetCheckout(ctx context.Context, token string) (*models.Checkout, error)
	ConfirmBorrow(ctx context.Context, token string, itemIDs []int, borrowDuration int) (*models.BorrowResult, error)
}

// Invalidator unieważnia zapamiętane widoki po potwierdzeniu wypożyczenia
type Invalidator interface {
	Invalidate(tags ...string)
}

// Flow prowadzi wielokrokową transakcję wypożyczenia z koszyka jako jawna
// maszyna stanów: Idle -> Reviewing -> Submitting -> Succeeded, z powrotem
// do Reviewing po błędzie. Jedna instancja na jedną sesję checkout;
// porzucana gdy użytkownik opuszcza stronę.
type Flow struct {
	client Client
	cache  Invalidator
	token  string

	// now jest wstrzykiwane w testach zamiast zegara systemowego
	now func() time.Time

	state        State
	checkout     *models.Checkout
	selected     map[int]bool
	borrowDate   time.Time
	durationDays int
	agreeReturn  bool
	agreePolicy  bool

	result    *models.BorrowResult
	lastError string
}

// NewFlow tworzy przepływ dla jednej sesji checkout
func NewFlow(client Client, invalidator Invalidator, token string) *Flow {
	return &Flow{
		client:       client,
		cache:        invalidator,
		token:        token,
		now:          time.Now,
		state:        StateIdle,
		selected:     make(map[int]bool),
		durationDays: defaultDuration,
	}
}

// State zwraca bieżący stan maszyny
func (f *Flow) State() State {
	return f.state
}

// Checkout zwraca załadowany ładunek checkout lub nil przed załadowaniem
func (f *Flow) Checkout() *models.Checkout {
	return f.checkout
}

// Result zwraca wynik potwierdzenia po osiągnięciu stanu Succeeded
func (f *Flow) Result() *models.BorrowResult {
	return f.result
}

// LastError zwraca komunikat ostatniego nieudanego potwierdzenia
func (f *Flow) LastError() string {
	return f.lastError
}

// LoadCheckout pobiera ładunek checkout i przechodzi do stanu Reviewing.
// Po błędzie stan się nie zmienia — strona pokazuje błąd z możliwością
// ponowienia. Domyślnie wszystkie pozycje są zaznaczone, data wypożyczenia
// to dziś, a czas trwania to najkrótszy dopuszczalny.
func (f *Flow) LoadCheckout(ctx context.Context) error {
	if f.state == StateSubmitting {
		return nil
	}

	checkout, err := f.client.GetCheckout(ctx, f.token)
	if err != nil {
		return err
	}

	f.checkout = checkout
	f.selected = make(map[int]bool, len(checkout.Items))
	for _, item := range checkout.Items {
		f.selected[item.ID] = true
	}
	f.borrowDate = f.now()
	f.durationDays = defaultDuration
	f.agreeReturn = false
	f.agreePolicy = false
	f.result = nil
	f.lastError = ""
	f.state = StateReviewing

	return nil
}

// IsAllowedDuration sprawdza czy czas trwania należy do dopuszczalnego zbioru
func IsAllowedDuration(days int) bool {
	for _, d := range AllowedDurations {
		if d == days {
			return true
		}
	}
	return false
}

// SetDuration ustawia czas trwania wypożyczenia; wartości spoza {3, 5, 10}
// są odrzucane bez zmiany stanu
func (f *Flow) SetDuration(days int) bool {
	if f.state != StateReviewing || !IsAllowedDuration(days) {
		return false
	}
	f.durationDays = days
	return true
}

// Duration zwraca wybrany czas trwania w dniach
func (f *Flow) Duration() int {
	return f.durationDays
}

// SetBorrowDate ustawia datę wypożyczenia (domyślnie dziś)
func (f *Flow) SetBorrowDate(date time.Time) {
	if f.state != StateReviewing {
		return
	}
	f.borrowDate = date
}

// BorrowDate zwraca wybraną datę wypożyczenia
func (f *Flow) BorrowDate() time.Time {
	return f.borrowDate
}

// ToggleItem przełącza zaznaczenie pozycji koszyka
func (f *Flow) ToggleItem(itemID int) {
	if f.state != StateReviewing || f.checkout == nil {
		return
	}
	for _, item := range f.checkout.Items {
		if item.ID == itemID {
			f.selected[itemID] = !f.selected[itemID]
			return
		}
	}
}

// IsSelected sprawdza czy pozycja jest zaznaczona do wypożyczenia
func (f *Flow) IsSelected(itemID int) bool {
	return f.selected[itemID]
}

// SelectedItemIDs zwraca posortowane identyfikatory zaznaczonych pozycji
func (f *Flow) SelectedItemIDs() []int {
	var ids []int
	for id, on := range f.selected {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// SetAgreements ustawia oba potwierdzenia regulaminowe
func (f *Flow) SetAgreements(agreeReturn, agreePolicy bool) {
	if f.state != StateReviewing {
		return
	}
	f.agreeReturn = agreeReturn
	f.agreePolicy = agreePolicy
}

// ReturnDate zwraca przewidywaną datę zwrotu: data wypożyczenia plus czas
// trwania. To wartość wyłącznie poglądowa — autorytatywny termin zwrotu
// wylicza backend i zwraca go w utworzonym rekordzie wypożyczenia.
func (f *Flow) ReturnDate() time.Time {
	return datemath.AddDays(f.borrowDate, f.durationDays)
}

// ReturnDateLabel zwraca przewidywaną datę zwrotu w formacie do wyświetlenia
func (f *Flow) ReturnDateLabel() string {
	return datemath.FormatLongDate(f.ReturnDate())
}

// CanSubmit sprawdza warunki wysłania: oba potwierdzenia zaznaczone
// i co najmniej jedna pozycja wybrana
func (f *Flow) CanSubmit() bool {
	return f.state == StateReviewing &&
		f.agreeReturn && f.agreePolicy &&
		len(f.SelectedItemIDs()) > 0
}

// Submit wysyła potwierdzenie wypożyczenia jako jedno atomowe żądanie.
// Wywołanie bez spełnionych warunków to cicha blokada, nie błąd — nic nie
// jest wysyłane do backendu. Drugie wywołanie w trakcie wysyłki też jest
// ignorowane; to jedyna deduplikacja po stronie klienta.
//
// Po sukcesie wszystkie zależne widoki są unieważniane i muszą zostać
// pobrane ponownie przed kolejnym pokazaniem. Po błędzie przepływ wraca do
// Reviewing z zachowanym wyborem, a komunikat backendu jest pokazywany
// dosłownie.
func (f *Flow) Submit(ctx context.Context) error {
	if f.state == StateSubmitting {
		return nil
	}
	if !f.CanSubmit() {
		return nil
	}

	f.state = StateSubmitting
	f.lastError = ""

	result, err := f.client.ConfirmBorrow(ctx, f.token, f.SelectedItemIDs(), f.durationDays)
	if err != nil {
		// Wybór i czas trwania zostają — użytkownik nie wprowadza ich od nowa.
		f.state = StateReviewing
		f.lastError = api.MessageFromError(err)
		if f.lastError == "" {
			f.lastError = FallbackSubmitMessage
		}
		return err
	}

	f.result = result
	f.state = StateSucceeded
	f.cache.Invalidate(
		cache.TagCart,
		cache.TagMyLoans,
		cache.TagMyReviews,
		cache.TagCheckout,
		cache.TagProfile,
	)

	return nil
}
