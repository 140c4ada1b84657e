package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"library-borrow-client/internal/api"
	"library-borrow-client/internal/middleware"
	"library-borrow-client/internal/models"
)

// StaffHandler obsługuje panel admina: wypożyczenia i użytkowników
type StaffHandler struct {
	dashboardTemplate *template.Template
	loansTemplate     *template.Template
	overdueTemplate   *template.Template
	usersTemplate     *template.Template
	apiClient         *api.Client
}

// NewStaffHandler tworzy nowy handler panelu admina
func NewStaffHandler(apiClient *api.Client) *StaffHandler {
	dashboardTmpl, err := template.ParseFiles("internal/templates/staff/dashboard.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu staff/dashboard.html: %v", err)
	}

	loansTmpl, err := template.ParseFiles("internal/templates/staff/loans.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu staff/loans.html: %v", err)
	}

	overdueTmpl, err := template.ParseFiles("internal/templates/staff/overdue.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu staff/overdue.html: %v", err)
	}

	usersTmpl, err := template.ParseFiles("internal/templates/staff/users.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu staff/users.html: %v", err)
	}

	return &StaffHandler{
		dashboardTemplate: dashboardTmpl,
		loansTemplate:     loansTmpl,
		overdueTemplate:   overdueTmpl,
		usersTemplate:     usersTmpl,
		apiClient:         apiClient,
	}
}

// ShowDashboard wyświetla pulpit panelu admina (GET /admin)
func (h *StaffHandler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if h.dashboardTemplate == nil {
		http.Error(w, "Szablon dashboardu nie został załadowany", http.StatusInternalServerError)
		return
	}

	stats := map[string]interface{}{
		"totalBooks":   0,
		"totalLoans":   0,
		"overdueLoans": 0,
		"totalUsers":   0,
	}

	// Liczby pochodzą z metadanych stronicowania list backendu
	if _, pagination, err := h.apiClient.ListAdminBooks(r.Context(), sess.Token, api.BookListParams{Page: 1, Limit: 1}); err == nil && pagination != nil {
		stats["totalBooks"] = pagination.Total
	} else if err != nil {
		log.Printf("Błąd pobierania liczby książek: %v", err)
	}

	if _, pagination, err := h.apiClient.ListLoans(r.Context(), sess.Token, api.LoanListParams{Page: 1, Limit: 1}); err == nil && pagination != nil {
		stats["totalLoans"] = pagination.Total
	} else if err != nil {
		log.Printf("Błąd pobierania liczby wypożyczeń: %v", err)
	}

	if _, pagination, err := h.apiClient.ListOverdueLoans(r.Context(), sess.Token, 1, 1); err == nil && pagination != nil {
		stats["overdueLoans"] = pagination.Total
	} else if err != nil {
		log.Printf("Błąd pobierania liczby przeterminowanych: %v", err)
	}

	if _, pagination, err := h.apiClient.ListUsers(r.Context(), sess.Token, "", 1, 1); err == nil && pagination != nil {
		stats["totalUsers"] = pagination.Total
	} else if err != nil {
		log.Printf("Błąd pobierania liczby użytkowników: %v", err)
	}

	data := NewTemplateData(sess)
	data["Stats"] = stats

	if err := h.dashboardTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania dashboardu: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// ShowLoans wyświetla wypożyczenia z wyszukiwaniem po tytule i filtrem
// statusu (GET /admin/loans)
func (h *StaffHandler) ShowLoans(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if h.loansTemplate == nil {
		http.Error(w, "Szablon wypożyczeń nie został załadowany", http.StatusInternalServerError)
		return
	}

	params := api.LoanListParams{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
		Page:   1,
		Limit:  20,
	}
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			params.Page = parsed
		}
	}

	loans, pagination, err := h.apiClient.ListLoans(r.Context(), sess.Token, params)
	if err != nil {
		log.Printf("Błąd pobierania wypożyczeń: %v", err)
		http.Error(w, "Błąd pobierania wypożyczeń", http.StatusBadGateway)
		return
	}

	// Ten sam klasyfikator co na liście użytkownika — obie listy pokazują
	// identyczny status dla tego samego rekordu
	now := time.Now()
	var views []LoanView
	for _, loan := range loans {
		views = append(views, LoanView{
			Loan:          loan,
			DisplayStatus: loan.Classify(now),
			DurationDays:  loan.EffectiveDurationDays(),
		})
	}

	data := NewTemplateData(sess)
	data["Loans"] = views
	data["Pagination"] = pagination
	data["Search"] = params.Search
	data["Status"] = params.Status
	data["Statuses"] = []models.LoanStatus{
		models.LoanStatusBorrowed,
		models.LoanStatusReturned,
		models.LoanStatusOverdue,
	}

	if err := h.loansTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania wypożyczeń: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// ShowOverdueLoans wyświetla przeterminowane wypożyczenia (GET /admin/loans/overdue)
func (h *StaffHandler) ShowOverdueLoans(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if h.overdueTemplate == nil {
		http.Error(w, "Szablon nie został załadowany", http.StatusInternalServerError)
		return
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	loans, pagination, err := h.apiClient.ListOverdueLoans(r.Context(), sess.Token, page, 20)
	if err != nil {
		log.Printf("Błąd pobierania przeterminowanych wypożyczeń: %v", err)
		http.Error(w, "Błąd pobierania wypożyczeń", http.StatusBadGateway)
		return
	}

	data := NewTemplateData(sess)
	data["Loans"] = loans
	data["Pagination"] = pagination

	if err := h.overdueTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// CreateLoan tworzy wypożyczenie ręcznie (POST /admin/loans)
func (h *StaffHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	userID, err := strconv.Atoi(r.FormValue("user_id"))
	if err != nil || userID <= 0 {
		http.Error(w, "Nieprawidłowe ID użytkownika", http.StatusBadRequest)
		return
	}
	bookID, err := strconv.Atoi(r.FormValue("book_id"))
	if err != nil || bookID <= 0 {
		http.Error(w, "Nieprawidłowe ID książki", http.StatusBadRequest)
		return
	}

	input := api.CreateLoanInput{
		UserID: userID,
		BookID: bookID,
	}
	if due := r.FormValue("due_at"); due != "" {
		dueAt, err := time.Parse("2006-01-02", due)
		if err != nil {
			http.Error(w, "Nieprawidłowa data zwrotu", http.StatusBadRequest)
			return
		}
		input.DueAt = &dueAt
	}

	loan, err := h.apiClient.CreateLoan(r.Context(), sess.Token, input)
	if err != nil {
		log.Printf("Błąd tworzenia wypożyczenia: %v", err)
		msg := api.MessageFromError(err)
		if msg == "" {
			msg = "Błąd tworzenia wypożyczenia"
		}
		http.Error(w, msg, http.StatusBadGateway)
		return
	}

	log.Printf("Utworzono wypożyczenie %d dla użytkownika %d", loan.ID, userID)
	http.Redirect(w, r, "/admin/loans", http.StatusSeeOther)
}

// UpdateLoan zmienia status lub termin zwrotu wypożyczenia
// (POST /admin/loans/{id})
func (h *StaffHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
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

	// Wysyłane są tylko pola obecne w formularzu
	var input api.UpdateLoanInput
	if status := r.FormValue("status"); status != "" {
		s := models.LoanStatus(status)
		switch s {
		case models.LoanStatusBorrowed, models.LoanStatusReturned, models.LoanStatusOverdue:
			input.Status = &s
		default:
			http.Error(w, "Nieprawidłowy status", http.StatusBadRequest)
			return
		}
	}
	if due := r.FormValue("due_at"); due != "" {
		dueAt, err := time.Parse("2006-01-02", due)
		if err != nil {
			http.Error(w, "Nieprawidłowa data zwrotu", http.StatusBadRequest)
			return
		}
		input.DueAt = &dueAt
	}

	if _, err := h.apiClient.UpdateLoan(r.Context(), sess.Token, loanID, input); err != nil {
		log.Printf("Błąd aktualizacji wypożyczenia: %v", err)
		msg := api.MessageFromError(err)
		if msg == "" {
			msg = "Błąd aktualizacji wypożyczenia"
		}
		http.Error(w, msg, http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/admin/loans", http.StatusSeeOther)
}

// ShowUsers wyświetla listę użytkowników (GET /admin/users)
func (h *StaffHandler) ShowUsers(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if h.usersTemplate == nil {
		http.Error(w, "Szablon użytkowników nie został załadowany", http.StatusInternalServerError)
		return
	}

	search := r.URL.Query().Get("search")
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	users, pagination, err := h.apiClient.ListUsers(r.Context(), sess.Token, search, page, 20)
	if err != nil {
		log.Printf("Błąd pobierania użytkowników: %v", err)
		http.Error(w, "Błąd pobierania użytkowników", http.StatusBadGateway)
		return
	}

	data := NewTemplateData(sess)
	data["Users"] = users
	data["Pagination"] = pagination
	data["Search"] = search

	if err := h.usersTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania użytkowników: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}
