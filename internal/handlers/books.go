package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"library-borrow-client/internal/api"
	"library-borrow-client/internal/borrow"
	"library-borrow-client/internal/cache"
	"library-borrow-client/internal/middleware"
	"library-borrow-client/internal/models"
)

// BooksHandler obsługuje katalog i szczegóły książek
type BooksHandler struct {
	catalogTemplate *template.Template
	detailTemplate  *template.Template
	apiClient       *api.Client
}

// NewBooksHandler tworzy nowy handler dla książek
func NewBooksHandler(apiClient *api.Client) *BooksHandler {
	catalogTmpl, err := template.ParseFiles("internal/templates/catalog.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu catalog.html: %v", err)
	}

	detailTmpl, err := template.ParseFiles("internal/templates/books/detail.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu detail.html: %v", err)
	}

	return &BooksHandler{
		catalogTemplate: catalogTmpl,
		detailTemplate:  detailTmpl,
		apiClient:       apiClient,
	}
}

// ListBooksHandler wyświetla katalog książek (GET /books)
func (h *BooksHandler) ListBooksHandler(w http.ResponseWriter, r *http.Request) {
	if h.catalogTemplate == nil {
		http.Error(w, "Szablon katalogu nie został załadowany", http.StatusInternalServerError)
		return
	}

	// Pobierz parametry wyszukiwania i filtrowania
	params := api.BookListParams{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Page:     1,
		Limit:    12,
	}
	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}
	if rating := r.URL.Query().Get("rating"); rating != "" {
		if v, err := strconv.Atoi(rating); err == nil {
			params.Rating = v
		}
	}

	sess := middleware.GetSessionFromContext(r.Context())
	data := NewTemplateData(sess)

	books, pagination, err := h.apiClient.ListBooks(r.Context(), params)
	if err != nil {
		log.Printf("Błąd pobierania książek: %v", err)
		data["Error"] = "Błąd pobierania książek. Spróbuj ponownie."
		data["Books"] = nil
		h.catalogTemplate.Execute(w, data)
		return
	}

	// Kategorie do filtrów
	categories, err := h.apiClient.ListCategories(r.Context())
	if err != nil {
		log.Printf("Błąd pobierania kategorii: %v", err)
	}

	data["Books"] = books
	data["Pagination"] = pagination
	data["Categories"] = categories
	data["Search"] = params.Search
	data["Category"] = params.Category

	if err := h.catalogTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania katalogu: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// ShowBookHandler wyświetla szczegóły książki z recenzjami (GET /books/{id})
func (h *BooksHandler) ShowBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || bookID <= 0 {
		http.Error(w, "Nieprawidłowe ID książki", http.StatusBadRequest)
		return
	}

	book, err := h.apiClient.GetBook(r.Context(), bookID)
	if err != nil {
		log.Printf("Błąd pobierania książki: %v", err)
		http.Error(w, "Książka nie została znaleziona", http.StatusNotFound)
		return
	}

	reviews, _, err := h.apiClient.GetBookReviews(r.Context(), bookID, 1, 10)
	if err != nil {
		log.Printf("Błąd pobierania recenzji: %v", err)
	}

	// Inne książki tego autora
	var related []models.Book
	if book.Author != nil {
		authorBooks, _, err := h.apiClient.GetAuthorBooks(r.Context(), book.Author.ID, 1, 4)
		if err != nil {
			log.Printf("Błąd pobierania książek autora: %v", err)
		} else {
			for _, b := range authorBooks {
				if b.ID != book.ID {
					related = append(related, b)
				}
			}
		}
	}

	sess := middleware.GetSessionFromContext(r.Context())
	data := NewTemplateData(sess)
	data["Book"] = book
	data["Reviews"] = reviews
	data["Related"] = related
	data["Durations"] = borrow.AllowedDurations

	if h.detailTemplate == nil {
		http.Error(w, "Szablon szczegółów nie został załadowany", http.StatusInternalServerError)
		return
	}

	if err := h.detailTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania szczegółów książki: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// AddToCartHandler dodaje książkę do koszyka (POST /books/{id}/cart)
func (h *BooksHandler) AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	bookID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || bookID <= 0 {
		http.Error(w, "Nieprawidłowe ID książki", http.StatusBadRequest)
		return
	}

	if _, err := h.apiClient.AddToCart(r.Context(), sess.Token, bookID); err != nil {
		log.Printf("Błąd dodawania do koszyka: %v", err)
		msg := api.MessageFromError(err)
		if msg == "" {
			msg = "Błąd dodawania do koszyka"
		}
		http.Error(w, msg, http.StatusBadGateway)
		return
	}

	// Zawartość koszyka jest nieaktualna
	cache.GetManager().Invalidate(cache.TagCart, cache.TagCheckout)

	if r.Header.Get("HX-Request") == "true" {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Dodano do koszyka"))
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// BorrowBookHandler wypożycza książkę bezpośrednio, z pominięciem koszyka
// (POST /books/{id}/borrow)
func (h *BooksHandler) BorrowBookHandler(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	bookID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || bookID <= 0 {
		http.Error(w, "Nieprawidłowe ID książki", http.StatusBadRequest)
		return
	}

	duration, err := strconv.Atoi(r.FormValue("duration"))
	if err != nil || !borrow.IsAllowedDuration(duration) {
		http.Error(w, "Nieprawidłowy czas trwania wypożyczenia", http.StatusBadRequest)
		return
	}

	loan, err := h.apiClient.BorrowBook(r.Context(), sess.Token, bookID, duration)
	if err != nil {
		log.Printf("Błąd wypożyczania książki: %v", err)
		msg := api.MessageFromError(err)
		if msg == "" {
			msg = "Błąd wypożyczania książki"
		}
		http.Error(w, msg, http.StatusBadGateway)
		return
	}

	// Lista wypożyczeń i profil są nieaktualne
	cache.GetManager().Invalidate(cache.TagMyLoans, cache.TagProfile)

	log.Printf("Wypożyczono książkę %d, termin zwrotu: %s", bookID, loan.DueAt.Format("2006-01-02"))
	http.Redirect(w, r, "/borrowed", http.StatusSeeOther)
}
