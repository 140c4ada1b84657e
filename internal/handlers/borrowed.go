package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"library-borrow-client/internal/api"
	"library-borrow-client/internal/cache"
	"library-borrow-client/internal/middleware"
	"library-borrow-client/internal/models"
)

// BorrowedHandler obsługuje listę wypożyczeń zalogowanego użytkownika
type BorrowedHandler struct {
	borrowedTemplate *template.Template
	apiClient        *api.Client
}

// NewBorrowedHandler tworzy nowy handler wypożyczeń użytkownika
func NewBorrowedHandler(apiClient *api.Client) *BorrowedHandler {
	borrowedTmpl, err := template.ParseFiles("internal/templates/borrowed.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu borrowed.html: %v", err)
	}

	return &BorrowedHandler{
		borrowedTemplate: borrowedTmpl,
		apiClient:        apiClient,
	}
}

// LoanView to jedno wypożyczenie przygotowane do wyświetlenia
type LoanView struct {
	Loan          models.Loan
	DisplayStatus models.DisplayStatus
	DurationDays  int
}

// ShowBorrowed wyświetla wypożyczenia użytkownika z filtrem statusu
// i wyszukiwaniem po tytule (GET /borrowed)
func (h *BorrowedHandler) ShowBorrowed(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if h.borrowedTemplate == nil {
		http.Error(w, "Szablon wypożyczeń nie został załadowany", http.StatusInternalServerError)
		return
	}

	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = models.FilterAll
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	data := NewTemplateData(sess)

	// Pełna lista jest zapamiętywana; filtr i wyszukiwanie działają lokalnie
	var loans []models.Loan
	if cached, ok := cache.GetManager().Get(cache.TagMyLoans, sess.ID); ok {
		loans = cached.([]models.Loan)
	} else {
		fetched, _, err := h.apiClient.GetMyLoans(r.Context(), sess.Token, "", 1, 100)
		if err != nil {
			log.Printf("Błąd pobierania wypożyczeń: %v", err)
			data["Error"] = "Błąd pobierania wypożyczeń. Spróbuj ponownie."
			h.borrowedTemplate.Execute(w, data)
			return
		}
		loans = fetched
		cache.GetManager().Set(cache.TagMyLoans, sess.ID, loans)
	}

	now := time.Now()
	var views []LoanView
	counts := map[string]int{
		models.FilterAll:               0,
		string(models.DisplayActive):   0,
		string(models.DisplayReturned): 0,
		string(models.DisplayOverdue):  0,
	}

	for _, loan := range loans {
		status := loan.Classify(now)
		counts[models.FilterAll]++
		counts[string(status)]++

		if !loan.MatchesFilter(filter, now) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(loan.BookTitle()), strings.ToLower(search)) {
			continue
		}

		views = append(views, LoanView{
			Loan:          loan,
			DisplayStatus: status,
			DurationDays:  loan.EffectiveDurationDays(),
		})
	}

	data["Loans"] = views
	data["Filter"] = filter
	data["Search"] = search
	data["Counts"] = counts
	data["Filters"] = []string{
		models.FilterAll,
		string(models.DisplayActive),
		string(models.DisplayReturned),
		string(models.DisplayOverdue),
	}

	if err := h.borrowedTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania wypożyczeń: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// ReturnLoan zgłasza zwrot książki (POST /borrowed/{id}/return)
func (h *BorrowedHandler) ReturnLoan(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	loanID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || loanID <= 0 {
		http.Error(w, "Nieprawidłowe ID wypożyczenia", http.StatusBadRequest)
		return
	}

	if _, err := h.apiClient.ReturnBook(r.Context(), sess.Token, loanID); err != nil {
		log.Printf("Błąd zwrotu książki: %v", err)
		msg := api.MessageFromError(err)
		if msg == "" {
			msg = "Błąd zwrotu książki"
		}
		http.Error(w, msg, http.StatusBadGateway)
		return
	}

	// Zwrot zmienia listę wypożyczeń i statystyki profilu
	cache.GetManager().Invalidate(cache.TagMyLoans, cache.TagProfile)

	log.Printf("Zwrócono wypożyczenie %d", loanID)
	http.Redirect(w, r, "/borrowed", http.StatusSeeOther)
}
