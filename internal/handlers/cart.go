package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"library-borrow-client/internal/api"
	"library-borrow-client/internal/cache"
	"library-borrow-client/internal/middleware"
	"library-borrow-client/internal/models"
)

// CartHandler obsługuje koszyk wypożyczeń
type CartHandler struct {
	cartTemplate *template.Template
	apiClient    *api.Client
}

// NewCartHandler tworzy nowy handler koszyka
func NewCartHandler(apiClient *api.Client) *CartHandler {
	cartTmpl, err := template.ParseFiles("internal/templates/cart.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu cart.html: %v", err)
	}

	return &CartHandler{
		cartTemplate: cartTmpl,
		apiClient:    apiClient,
	}
}

// ShowCart wyświetla zawartość koszyka (GET /cart)
func (h *CartHandler) ShowCart(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if h.cartTemplate == nil {
		http.Error(w, "Szablon koszyka nie został załadowany", http.StatusInternalServerError)
		return
	}

	data := NewTemplateData(sess)

	// Użyj zapamiętanego widoku, jeśli nie został unieważniony
	var cart *models.Cart
	if cached, ok := cache.GetManager().Get(cache.TagCart, sess.ID); ok {
		cart = cached.(*models.Cart)
	} else {
		fetched, err := h.apiClient.GetCart(r.Context(), sess.Token)
		if err != nil {
			log.Printf("Błąd pobierania koszyka: %v", err)
			data["Error"] = "Błąd pobierania koszyka. Spróbuj ponownie."
			h.cartTemplate.Execute(w, data)
			return
		}
		cart = fetched
		cache.GetManager().Set(cache.TagCart, sess.ID, cart)
	}

	data["Cart"] = cart

	if err := h.cartTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania koszyka: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// RemoveItem usuwa pozycję z koszyka (POST /cart/items/{id}/remove)
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	itemID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || itemID <= 0 {
		http.Error(w, "Nieprawidłowe ID pozycji", http.StatusBadRequest)
		return
	}

	if err := h.apiClient.RemoveFromCart(r.Context(), sess.Token, itemID); err != nil {
		log.Printf("Błąd usuwania pozycji z koszyka: %v", err)
		http.Error(w, "Błąd usuwania pozycji", http.StatusBadGateway)
		return
	}

	cache.GetManager().Invalidate(cache.TagCart, cache.TagCheckout)

	if r.Header.Get("HX-Request") == "true" {
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// ClearCart opróżnia cały koszyk (POST /cart/clear)
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.apiClient.ClearCart(r.Context(), sess.Token); err != nil {
		log.Printf("Błąd opróżniania koszyka: %v", err)
		http.Error(w, "Błąd opróżniania koszyka", http.StatusBadGateway)
		return
	}

	cache.GetManager().Invalidate(cache.TagCart, cache.TagCheckout)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
