package handlers

import (
	"html/template"
	"log"
	"net/http"

	"library-borrow-client/internal/api"
	"library-borrow-client/internal/cache"
	"library-borrow-client/internal/middleware"
	"library-borrow-client/internal/session"
)

// AuthHandler obsługuje logowanie i rejestrację
type AuthHandler struct {
	loginTemplate    *template.Template
	registerTemplate *template.Template
	apiClient        *api.Client
}

// NewAuthHandler tworzy nowy handler autoryzacji
func NewAuthHandler(apiClient *api.Client) *AuthHandler {
	loginTmpl, err := template.ParseFiles("internal/templates/auth/login.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu login.html: %v", err)
	}

	registerTmpl, err := template.ParseFiles("internal/templates/auth/register.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu register.html: %v", err)
	}

	return &AuthHandler{
		loginTemplate:    loginTmpl,
		registerTemplate: registerTmpl,
		apiClient:        apiClient,
	}
}

// ShowLoginPage wyświetla stronę logowania (GET /login)
func (h *AuthHandler) ShowLoginPage(w http.ResponseWriter, r *http.Request) {
	if h.loginTemplate == nil {
		http.Error(w, "Szablon logowania nie został załadowany", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Error": nil,
	}

	if err := h.loginTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania strony logowania: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// HandleLogin obsługuje logowanie (POST /login)
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.renderLoginError(w, "Email i hasło są wymagane")
		return
	}

	// Uwierzytelnienie wykonuje backend — klient dostaje token i profil
	result, err := h.apiClient.Login(r.Context(), email, password)
	if err != nil {
		log.Printf("Błąd logowania: %v", err)
		if msg := api.MessageFromError(err); msg != "" {
			h.renderLoginError(w, msg)
		} else {
			h.renderLoginError(w, "Błąd logowania. Spróbuj ponownie.")
		}
		return
	}

	// Utwórz sesję z tokenem backendu
	sess, err := session.GetManager().CreateSession(result.Token, result.User)
	if err != nil {
		log.Printf("Błąd tworzenia sesji: %v", err)
		h.renderLoginError(w, "Błąd logowania")
		return
	}

	session.SetSessionCookie(w, sess.ID)

	log.Printf("Użytkownik zalogowany: %s (%s)", email, result.User.Role)

	// Przekieruj w zależności od roli
	if result.User.IsAdmin() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/books", http.StatusSeeOther)
	}
}

// ShowRegisterPage wyświetla stronę rejestracji (GET /register)
func (h *AuthHandler) ShowRegisterPage(w http.ResponseWriter, r *http.Request) {
	if h.registerTemplate == nil {
		http.Error(w, "Szablon rejestracji nie został załadowany", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Error": nil,
	}

	if err := h.registerTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania strony rejestracji: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// HandleRegister obsługuje rejestrację (POST /register)
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	input := api.RegisterInput{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
		Password: r.FormValue("password"),
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		h.renderRegisterError(w, "Imię, email i hasło są wymagane")
		return
	}

	if input.Password != r.FormValue("confirm_password") {
		h.renderRegisterError(w, "Hasła nie są identyczne")
		return
	}

	result, err := h.apiClient.Register(r.Context(), input)
	if err != nil {
		log.Printf("Błąd rejestracji: %v", err)
		if msg := api.MessageFromError(err); msg != "" {
			h.renderRegisterError(w, msg)
		} else {
			h.renderRegisterError(w, "Błąd rejestracji. Spróbuj ponownie.")
		}
		return
	}

	sess, err := session.GetManager().CreateSession(result.Token, result.User)
	if err != nil {
		log.Printf("Błąd tworzenia sesji po rejestracji: %v", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session.SetSessionCookie(w, sess.ID)

	log.Printf("Zarejestrowano użytkownika: %s", input.Email)
	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

// HandleLogout obsługuje wylogowanie (POST /logout)
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSessionFromContext(r.Context())
	if sess != nil {
		session.GetManager().DeleteSession(sess.ID)
		// Zapamiętane widoki tej sesji są bez właściciela
		cache.GetManager().InvalidateSession(sess.ID)
	}

	session.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, errorMsg string) {
	if h.loginTemplate == nil {
		http.Error(w, errorMsg, http.StatusBadRequest)
		return
	}

	data := map[string]interface{}{
		"Error": errorMsg,
	}

	w.WriteHeader(http.StatusUnauthorized)
	if err := h.loginTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania strony logowania: %v", err)
	}
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, errorMsg string) {
	if h.registerTemplate == nil {
		http.Error(w, errorMsg, http.StatusBadRequest)
		return
	}

	data := map[string]interface{}{
		"Error": errorMsg,
	}

	w.WriteHeader(http.StatusBadRequest)
	if err := h.registerTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania strony rejestracji: %v", err)
	}
}
