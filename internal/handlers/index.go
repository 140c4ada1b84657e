package handlers

import (
	"html/template"
	"log"
	"net/http"

	"library-borrow-client/internal/api"
	"library-borrow-client/internal/middleware"
	"library-borrow-client/internal/models"
)

// IndexHandler obsługuje stronę główną
type IndexHandler struct {
	homeTemplate *template.Template
	apiClient    *api.Client
}

// NewIndexHandler tworzy nowy handler strony głównej
func NewIndexHandler(apiClient *api.Client) *IndexHandler {
	homeTmpl, err := template.ParseFiles("internal/templates/home.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu home.html: %v", err)
	}

	return &IndexHandler{
		homeTemplate: homeTmpl,
		apiClient:    apiClient,
	}
}

// ServeHTTP obsługuje żądanie GET /
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.homeTemplate == nil {
		http.Error(w, "Szablon strony głównej nie został załadowany", http.StatusInternalServerError)
		return
	}

	session := middleware.GetSessionFromContext(r.Context())
	data := NewTemplateData(session)

	// Najwyżej oceniane książki na stronę główną
	var popularBooks []models.Book
	books, _, err := h.apiClient.GetRecommendations(r.Context(), "rating", 1, 8)
	if err != nil {
		log.Printf("Błąd pobierania rekomendacji: %v", err)
	} else {
		popularBooks = books
	}

	// Popularni autorzy
	var popularAuthors []models.Author
	authors, err := h.apiClient.GetPopularAuthors(r.Context())
	if err != nil {
		log.Printf("Błąd pobierania popularnych autorów: %v", err)
	} else {
		popularAuthors = authors
	}

	// Kategorie do sekcji odnośników
	var categories []models.Category
	cats, err := h.apiClient.ListCategories(r.Context())
	if err != nil {
		log.Printf("Błąd pobierania kategorii: %v", err)
	} else {
		categories = cats
	}

	data["Books"] = popularBooks
	data["Authors"] = popularAuthors
	data["Categories"] = categories

	if err := h.homeTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania strony głównej: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
		return
	}
}
