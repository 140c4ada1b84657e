package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"library-borrow-client/internal/api"
	"library-borrow-client/internal/cache"
	"library-borrow-client/internal/middleware"
	"library-borrow-client/internal/models"
)

// ReviewsHandler obsługuje recenzje użytkownika
type ReviewsHandler struct {
	reviewsTemplate *template.Template
	apiClient       *api.Client
}

// NewReviewsHandler tworzy nowy handler recenzji
func NewReviewsHandler(apiClient *api.Client) *ReviewsHandler {
	reviewsTmpl, err := template.ParseFiles("internal/templates/reviews.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu reviews.html: %v", err)
	}

	return &ReviewsHandler{
		reviewsTemplate: reviewsTmpl,
		apiClient:       apiClient,
	}
}

// ShowMyReviews wyświetla recenzje zalogowanego użytkownika (GET /reviews)
func (h *ReviewsHandler) ShowMyReviews(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if h.reviewsTemplate == nil {
		http.Error(w, "Szablon recenzji nie został załadowany", http.StatusInternalServerError)
		return
	}

	data := NewTemplateData(sess)

	var reviews []models.Review
	if cached, ok := cache.GetManager().Get(cache.TagMyReviews, sess.ID); ok {
		reviews = cached.([]models.Review)
	} else {
		fetched, _, err := h.apiClient.GetMyReviews(r.Context(), sess.Token, 1, 50)
		if err != nil {
			log.Printf("Błąd pobierania recenzji: %v", err)
			data["Error"] = "Błąd pobierania recenzji. Spróbuj ponownie."
			h.reviewsTemplate.Execute(w, data)
			return
		}
		reviews = fetched
		cache.GetManager().Set(cache.TagMyReviews, sess.ID, reviews)
	}

	data["Reviews"] = reviews

	if err := h.reviewsTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania recenzji: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// CreateReview tworzy recenzję wypożyczonej książki (POST /reviews)
func (h *ReviewsHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	bookID, err := strconv.Atoi(r.FormValue("book_id"))
	if err != nil || bookID <= 0 {
		http.Error(w, "Nieprawidłowe ID książki", http.StatusBadRequest)
		return
	}

	star, err := strconv.Atoi(r.FormValue("star"))
	if err != nil || star < 1 || star > 5 {
		http.Error(w, "Ocena musi być w zakresie 1-5", http.StatusBadRequest)
		return
	}

	comment := strings.TrimSpace(r.FormValue("comment"))

	if _, err := h.apiClient.CreateReview(r.Context(), sess.Token, bookID, star, comment); err != nil {
		log.Printf("Błąd tworzenia recenzji: %v", err)
		msg := api.MessageFromError(err)
		if msg == "" {
			msg = "Błąd tworzenia recenzji"
		}
		http.Error(w, msg, http.StatusBadGateway)
		return
	}

	cache.GetManager().Invalidate(cache.TagMyReviews)

	redirect := r.FormValue("redirect")
	if redirect == "" {
		redirect = "/reviews"
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// DeleteReview usuwa recenzję użytkownika (POST /reviews/{id}/delete)
func (h *ReviewsHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	reviewID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || reviewID <= 0 {
		http.Error(w, "Nieprawidłowe ID recenzji", http.StatusBadRequest)
		return
	}

	if err := h.apiClient.DeleteReview(r.Context(), sess.Token, reviewID); err != nil {
		log.Printf("Błąd usuwania recenzji: %v", err)
		http.Error(w, "Błąd usuwania recenzji", http.StatusBadGateway)
		return
	}

	cache.GetManager().Invalidate(cache.TagMyReviews)
	http.Redirect(w, r, "/reviews", http.StatusSeeOther)
}
