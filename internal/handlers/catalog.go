package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"library-borrow-client/internal/api"
	"library-borrow-client/internal/middleware"
)

// CatalogHandler obsługuje zarządzanie katalogiem w panelu admina:
// książki, autorów i kategorie
type CatalogHandler struct {
	listTemplate *template.Template
	formTemplate *template.Template
	apiClient    *api.Client
}

// NewCatalogHandler tworzy nowy handler katalogu
func NewCatalogHandler(apiClient *api.Client) *CatalogHandler {
	funcMap := template.FuncMap{
		"sub": func(a, b int) int {
			return a - b
		},
		"add": func(a, b int) int {
			return a + b
		},
		"mkRange": func(start, end int) []int {
			result := make([]int, end-start+1)
			for i := range result {
				result[i] = start + i
			}
			return result
		},
	}

	listTmpl, err := template.New("catalog_list.html").Funcs(funcMap).ParseFiles("internal/templates/staff/catalog_list.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu catalog_list.html: %v", err)
	}

	formTmpl, err := template.ParseFiles("internal/templates/staff/catalog_form.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu catalog_form.html: %v", err)
	}

	return &CatalogHandler{
		listTemplate: listTmpl,
		formTemplate: formTmpl,
		apiClient:    apiClient,
	}
}

// ListBooks wyświetla katalog w panelu admina (GET /admin/catalog)
func (h *CatalogHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if h.listTemplate == nil {
		http.Error(w, "Szablon nie został załadowany", http.StatusInternalServerError)
		return
	}

	params := api.BookListParams{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Page:     1,
		Limit:    20,
	}
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			params.Page = parsed
		}
	}

	books, pagination, err := h.apiClient.ListAdminBooks(r.Context(), sess.Token, params)
	if err != nil {
		log.Printf("Błąd pobierania książek: %v", err)
		http.Error(w, "Błąd pobierania książek", http.StatusBadGateway)
		return
	}

	data := NewTemplateData(sess)
	data["Books"] = books
	data["Pagination"] = pagination
	data["Search"] = params.Search
	data["Category"] = params.Category

	if err := h.listTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania szablonu: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// ShowBookForm wyświetla formularz dodawania lub edycji książki
// (GET /admin/catalog/new, GET /admin/catalog/{id}/edit)
func (h *CatalogHandler) ShowBookForm(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if h.formTemplate == nil {
		http.Error(w, "Szablon nie został załadowany", http.StatusInternalServerError)
		return
	}

	data := NewTemplateData(sess)

	// Autorzy i kategorie do list rozwijanych formularza
	authors, _, err := h.apiClient.ListAuthors(r.Context(), 1, 100)
	if err != nil {
		log.Printf("Błąd pobierania autorów: %v", err)
	}
	categories, err := h.apiClient.ListCategories(r.Context())
	if err != nil {
		log.Printf("Błąd pobierania kategorii: %v", err)
	}
	data["Authors"] = authors
	data["Categories"] = categories

	if idParam := chi.URLParam(r, "id"); idParam != "" {
		id, err := strconv.Atoi(idParam)
		if err != nil || id <= 0 {
			http.Error(w, "Nieprawidłowe ID książki", http.StatusBadRequest)
			return
		}

		book, err := h.apiClient.GetBook(r.Context(), id)
		if err != nil {
			log.Printf("Błąd pobierania książki: %v", err)
			http.Error(w, "Książka nie została znaleziona", http.StatusNotFound)
			return
		}
		data["Book"] = book
	}

	if err := h.formTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania formularza: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// bookInputFromForm buduje dane książki z formularza
func bookInputFromForm(r *http.Request) api.BookInput {
	input := api.BookInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ISBN:        r.FormValue("isbn"),
		CoverImage:  r.FormValue("cover_image"),
	}
	if year, err := strconv.Atoi(r.FormValue("published_year")); err == nil {
		input.PublishedYear = year
	}
	if copies, err := strconv.Atoi(r.FormValue("total_copies")); err == nil {
		input.TotalCopies = copies
	}
	if authorID, err := strconv.Atoi(r.FormValue("author_id")); err == nil {
		input.AuthorID = authorID
	}
	if categoryID, err := strconv.Atoi(r.FormValue("category_id")); err == nil {
		input.CategoryID = categoryID
	}
	return input
}

// CreateBook dodaje nową książkę (POST /admin/catalog)
func (h *CatalogHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	input := bookInputFromForm(r)
	book, err := h.apiClient.CreateBook(r.Context(), sess.Token, input)
	if err != nil {
		log.Printf("Błąd tworzenia książki: %v", err)
		msg := api.MessageFromError(err)
		if msg == "" {
			msg = "Błąd tworzenia książki"
		}
		http.Error(w, msg, http.StatusBadGateway)
		return
	}

	log.Printf("Utworzono książkę: %s (ID %d)", book.Title, book.ID)
	http.Redirect(w, r, "/admin/catalog", http.StatusSeeOther)
}

// UpdateBook aktualizuje książkę (POST /admin/catalog/{id})
func (h *CatalogHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "Nieprawidłowe ID książki", http.StatusBadRequest)
		return
	}

	input := bookInputFromForm(r)
	if _, err := h.apiClient.UpdateBook(r.Context(), sess.Token, id, input); err != nil {
		log.Printf("Błąd aktualizacji książki: %v", err)
		msg := api.MessageFromError(err)
		if msg == "" {
			msg = "Błąd aktualizacji książki"
		}
		http.Error(w, msg, http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/admin/catalog", http.StatusSeeOther)
}

// DeleteBook usuwa książkę (POST /admin/catalog/{id}/delete)
func (h *CatalogHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "Nieprawidłowe ID książki", http.StatusBadRequest)
		return
	}

	if err := h.apiClient.DeleteBook(r.Context(), sess.Token, id); err != nil {
		log.Printf("Błąd usuwania książki: %v", err)
		http.Error(w, "Błąd usuwania książki", http.StatusBadGateway)
		return
	}

	log.Printf("Usunięto książkę %d", id)

	if r.Header.Get("HX-Request") == "true" {
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/admin/catalog", http.StatusSeeOther)
}

// CreateAuthor dodaje autora (POST /admin/authors)
func (h *CatalogHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	input := api.AuthorInput{
		Name: r.FormValue("name"),
		Bio:  r.FormValue("bio"),
	}

	if _, err := h.apiClient.CreateAuthor(r.Context(), sess.Token, input); err != nil {
		log.Printf("Błąd tworzenia autora: %v", err)
		msg := api.MessageFromError(err)
		if msg == "" {
			msg = "Błąd tworzenia autora"
		}
		http.Error(w, msg, http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/admin/catalog", http.StatusSeeOther)
}

// UpdateAuthor aktualizuje autora (POST /admin/authors/{id})
func (h *CatalogHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "Nieprawidłowe ID autora", http.StatusBadRequest)
		return
	}

	input := api.AuthorInput{
		Name: r.FormValue("name"),
		Bio:  r.FormValue("bio"),
	}

	if _, err := h.apiClient.UpdateAuthor(r.Context(), sess.Token, id, input); err != nil {
		log.Printf("Błąd aktualizacji autora: %v", err)
		http.Error(w, "Błąd aktualizacji autora", http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/admin/catalog", http.StatusSeeOther)
}

// DeleteAuthor usuwa autora (POST /admin/authors/{id}/delete)
func (h *CatalogHandler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "Nieprawidłowe ID autora", http.StatusBadRequest)
		return
	}

	if err := h.apiClient.DeleteAuthor(r.Context(), sess.Token, id); err != nil {
		log.Printf("Błąd usuwania autora: %v", err)
		msg := api.MessageFromError(err)
		if msg == "" {
			msg = "Błąd usuwania autora"
		}
		http.Error(w, msg, http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/admin/catalog", http.StatusSeeOther)
}

// CreateCategory dodaje kategorię (POST /admin/categories)
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	input := api.CategoryInput{Name: r.FormValue("name")}

	if _, err := h.apiClient.CreateCategory(r.Context(), sess.Token, input); err != nil {
		log.Printf("Błąd tworzenia kategorii: %v", err)
		msg := api.MessageFromError(err)
		if msg == "" {
			msg = "Błąd tworzenia kategorii"
		}
		http.Error(w, msg, http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/admin/catalog", http.StatusSeeOther)
}

// UpdateCategory aktualizuje kategorię (POST /admin/categories/{id})
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "Nieprawidłowe ID kategorii", http.StatusBadRequest)
		return
	}

	input := api.CategoryInput{Name: r.FormValue("name")}

	if _, err := h.apiClient.UpdateCategory(r.Context(), sess.Token, id, input); err != nil {
		log.Printf("Błąd aktualizacji kategorii: %v", err)
		http.Error(w, "Błąd aktualizacji kategorii", http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/admin/catalog", http.StatusSeeOther)
}

// DeleteCategory usuwa kategorię (POST /admin/categories/{id}/delete)
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "Nieprawidłowe ID kategorii", http.StatusBadRequest)
		return
	}

	if err := h.apiClient.DeleteCategory(r.Context(), sess.Token, id); err != nil {
		log.Printf("Błąd usuwania kategorii: %v", err)
		msg := api.MessageFromError(err)
		if msg == "" {
			msg = "Błąd usuwania kategorii"
		}
		http.Error(w, msg, http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/admin/catalog", http.StatusSeeOther)
}
