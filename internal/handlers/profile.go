package handlers

import (
	"html/template"
	"log"
	"net/http"

	"library-borrow-client/internal/api"
	"library-borrow-client/internal/cache"
	"library-borrow-client/internal/middleware"
	"library-borrow-client/internal/models"
	"library-borrow-client/internal/session"
)

// ProfileHandler obsługuje profil użytkownika
type ProfileHandler struct {
	profileTemplate *template.Template
	apiClient       *api.Client
}

// NewProfileHandler tworzy nowy handler profilu
func NewProfileHandler(apiClient *api.Client) *ProfileHandler {
	profileTmpl, err := template.ParseFiles("internal/templates/profile.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu profile.html: %v", err)
	}

	return &ProfileHandler{
		profileTemplate: profileTmpl,
		apiClient:       apiClient,
	}
}

// ShowProfile wyświetla profil ze statystykami wypożyczeń (GET /profile)
func (h *ProfileHandler) ShowProfile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if h.profileTemplate == nil {
		http.Error(w, "Szablon profilu nie został załadowany", http.StatusInternalServerError)
		return
	}

	data := NewTemplateData(sess)

	var profile *models.Profile
	if cached, ok := cache.GetManager().Get(cache.TagProfile, sess.ID); ok {
		profile = cached.(*models.Profile)
	} else {
		fetched, err := h.apiClient.GetProfile(r.Context(), sess.Token)
		if err != nil {
			log.Printf("Błąd pobierania profilu: %v", err)
			data["Error"] = "Błąd pobierania profilu. Spróbuj ponownie."
			h.profileTemplate.Execute(w, data)
			return
		}
		profile = fetched
		cache.GetManager().Set(cache.TagProfile, sess.ID, profile)
	}

	data["Profile"] = profile

	if err := h.profileTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania profilu: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// UpdateProfile aktualizuje dane profilu (POST /profile)
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	input := api.UpdateProfileInput{
		Name:         r.FormValue("name"),
		Phone:        r.FormValue("phone"),
		ProfilePhoto: r.FormValue("profile_photo"),
		Password:     r.FormValue("password"),
	}

	updated, err := h.apiClient.UpdateProfile(r.Context(), sess.Token, input)
	if err != nil {
		log.Printf("Błąd aktualizacji profilu: %v", err)
		msg := api.MessageFromError(err)
		if msg == "" {
			msg = "Błąd aktualizacji profilu"
		}
		http.Error(w, msg, http.StatusBadGateway)
		return
	}

	// Odśwież dane użytkownika trzymane w sesji
	sess.User = *updated
	if err := session.GetManager().UpdateSession(sess); err != nil {
		log.Printf("Błąd aktualizacji sesji: %v", err)
	}

	cache.GetManager().Invalidate(cache.TagProfile)

	log.Printf("Zaktualizowano profil użytkownika: %s", updated.Email)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
