package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strconv"
	"sync"

	"library-borrow-client/internal/api"
	"library-borrow-client/internal/borrow"
	"library-borrow-client/internal/cache"
	"library-borrow-client/internal/datemath"
	"library-borrow-client/internal/middleware"
	"library-borrow-client/internal/models"
	"library-borrow-client/internal/session"
)

// CheckoutHandler prowadzi wielokrokowe potwierdzenie wypożyczenia z koszyka.
// Trzyma jeden przepływ na sesję; przepływ żyje od wejścia na stronę checkout
// do potwierdzenia albo porzucenia.
type CheckoutHandler struct {
	checkoutTemplate *template.Template
	successTemplate  *template.Template
	apiClient        *api.Client

	mu    sync.Mutex
	flows map[string]*borrow.Flow
}

// NewCheckoutHandler tworzy nowy handler checkout
func NewCheckoutHandler(apiClient *api.Client) *CheckoutHandler {
	checkoutTmpl, err := template.ParseFiles("internal/templates/checkout.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu checkout.html: %v", err)
	}

	successTmpl, err := template.ParseFiles("internal/templates/checkout_success.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu checkout_success.html: %v", err)
	}

	return &CheckoutHandler{
		checkoutTemplate: checkoutTmpl,
		successTemplate:  successTmpl,
		apiClient:        apiClient,
		flows:            make(map[string]*borrow.Flow),
	}
}

// flowFor zwraca przepływ sesji, tworząc go przy pierwszym wejściu
func (h *CheckoutHandler) flowFor(sess *session.Session) *borrow.Flow {
	h.mu.Lock()
	defer h.mu.Unlock()

	flow, ok := h.flows[sess.ID]
	if !ok {
		flow = borrow.NewFlow(h.apiClient, cache.GetManager(), sess.Token)
		h.flows[sess.ID] = flow
	}
	return flow
}

// dropFlow porzuca przepływ sesji po zakończeniu transakcji
func (h *CheckoutHandler) dropFlow(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.flows, sessionID)
}

// ShowCheckout wyświetla stronę potwierdzenia wypożyczenia (GET /checkout).
// Każde wejście ładuje ładunek checkout od nowa — wybór z poprzedniej wizyty
// nie jest zapamiętywany.
func (h *CheckoutHandler) ShowCheckout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if h.checkoutTemplate == nil {
		http.Error(w, "Szablon checkout nie został załadowany", http.StatusInternalServerError)
		return
	}

	flow := h.flowFor(sess)
	data := NewTemplateData(sess)

	if err := flow.LoadCheckout(r.Context()); err != nil {
		log.Printf("Błąd ładowania checkout: %v", err)
		data["Error"] = "Błąd ładowania checkout. Spróbuj ponownie."
		h.checkoutTemplate.Execute(w, data)
		return
	}

	h.renderCheckout(w, sess, flow, data)
}

// UpdateSelection obsługuje zmiany wyboru na stronie checkout
// (POST /checkout/selection). Formularz niesie zaznaczone pozycje, czas
// trwania i oba potwierdzenia; żądania htmx dostają odświeżony fragment.
func (h *CheckoutHandler) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	flow := h.flowFor(sess)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Nieprawidłowy formularz", http.StatusBadRequest)
		return
	}

	// Zaznaczenie z formularza zastępuje bieżące: przełącz każdą pozycję,
	// której stan się różni
	if checkout := flow.Checkout(); checkout != nil {
		wanted := make(map[int]bool, len(r.Form["items"]))
		for _, raw := range r.Form["items"] {
			if id, err := strconv.Atoi(raw); err == nil {
				wanted[id] = true
			}
		}
		for _, item := range checkout.Items {
			if flow.IsSelected(item.ID) != wanted[item.ID] {
				flow.ToggleItem(item.ID)
			}
		}
	}

	if days, err := strconv.Atoi(r.FormValue("duration")); err == nil {
		flow.SetDuration(days)
	}

	flow.SetAgreements(
		r.FormValue("agree_return") == "on",
		r.FormValue("agree_policy") == "on",
	)

	data := NewTemplateData(sess)
	h.renderCheckout(w, sess, flow, data)
}

// ConfirmCheckout wysyła potwierdzenie wypożyczenia (POST /checkout/confirm).
// Wysłanie bez spełnionych warunków nic nie robi — strona wraca bez zmian.
func (h *CheckoutHandler) ConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	flow := h.flowFor(sess)

	if err := flow.Submit(r.Context()); err != nil {
		log.Printf("Błąd potwierdzania wypożyczenia: %v", err)
		data := NewTemplateData(sess)
		h.renderCheckout(w, sess, flow, data)
		return
	}

	if flow.State() != borrow.StateSucceeded {
		// Cicha blokada — brak zgód albo pustego wyboru nie traktujemy
		// jako błędu
		data := NewTemplateData(sess)
		h.renderCheckout(w, sess, flow, data)
		return
	}

	// Pokaż stronę sukcesu zanim przepływ zostanie porzucony
	if h.successTemplate == nil {
		h.dropFlow(sess.ID)
		http.Redirect(w, r, "/borrowed", http.StatusSeeOther)
		return
	}

	result := flow.Result()
	data := NewTemplateData(sess)
	data["Result"] = result
	data["Loans"] = result.Loans
	if result.Message != "" {
		data["Message"] = result.Message
	}
	if len(result.Loans) > 0 {
		data["ReturnDateLabel"] = datemath.FormatLongDate(result.Loans[0].DueAt)
	} else {
		data["ReturnDateLabel"] = flow.ReturnDateLabel()
	}

	h.dropFlow(sess.ID)

	if err := h.successTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania strony sukcesu: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// renderCheckout renderuje stronę checkout ze stanem przepływu
func (h *CheckoutHandler) renderCheckout(w http.ResponseWriter, sess *session.Session, flow *borrow.Flow, data TemplateData) {
	if h.checkoutTemplate == nil {
		http.Error(w, "Szablon checkout nie został załadowany", http.StatusInternalServerError)
		return
	}

	checkout := flow.Checkout()

	type checkoutItemView struct {
		Item     models.CartItem
		Selected bool
	}
	var items []checkoutItemView
	if checkout != nil {
		for _, item := range checkout.Items {
			items = append(items, checkoutItemView{Item: item, Selected: flow.IsSelected(item.ID)})
		}
	}

	data["Checkout"] = checkout
	data["Items"] = items
	data["SelectedCount"] = len(flow.SelectedItemIDs())
	data["Duration"] = flow.Duration()
	data["Durations"] = borrow.AllowedDurations
	data["ReturnDateLabel"] = flow.ReturnDateLabel()
	data["CanSubmit"] = flow.CanSubmit()
	data["SubmitError"] = flow.LastError()

	if err := h.checkoutTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania checkout: %v", err)
	}
}
