package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"library-borrow-client/internal/api"
	"library-borrow-client/internal/cache"
	"library-borrow-client/internal/handlers"
	authmw "library-borrow-client/internal/middleware"
	"library-borrow-client/internal/models"
	"library-borrow-client/internal/session"
)

func main() {
	// Wczytaj zmienne środowiskowe z pliku .env
	if err := godotenv.Load(); err != nil {
		log.Println("Brak pliku .env - używam zmiennych systemowych")
	}

	// Pobierz port z zmiennych środowiskowych lub użyj domyślnego
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Adres backendu biblioteki
	apiBaseURL := os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		apiBaseURL = "http://localhost:3000/api"
	}

	// Inicjalizacja klienta API backendu
	if _, err := api.Init(apiBaseURL); err != nil {
		log.Fatalf("Nie można zainicjalizować klienta API: %v", err)
	}
	log.Printf("Klient API zainicjalizowany: %s", apiBaseURL)

	// Inicjalizacja systemu sesji z trwałym zapisem
	sessionDBPath := os.Getenv("SESSION_DB_PATH")
	if sessionDBPath == "" {
		sessionDBPath = "sessions.db"
	}
	if err := session.Init(sessionDBPath); err != nil {
		log.Fatalf("Nie można zainicjalizować systemu sesji: %v", err)
	}
	defer session.GetManager().Close()
	log.Println("System sesji zainicjalizowany")

	// Inicjalizacja pamięci podręcznej widoków
	cache.Init()

	// Inicjalizacja routera Chi
	r := chi.NewRouter()

	// Middleware do logowania requestów
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Middleware sesji - dodaj sesję do kontekstu każdego żądania
	r.Use(authmw.SessionMiddleware)

	// Serwowanie plików statycznych (CSS, JS)
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Inicjalizacja handlerów
	apiClient := api.GlobalClient
	indexHandler := handlers.NewIndexHandler(apiClient)
	authHandler := handlers.NewAuthHandler(apiClient)
	booksHandler := handlers.NewBooksHandler(apiClient)
	cartHandler := handlers.NewCartHandler(apiClient)
	checkoutHandler := handlers.NewCheckoutHandler(apiClient)
	borrowedHandler := handlers.NewBorrowedHandler(apiClient)
	reviewsHandler := handlers.NewReviewsHandler(apiClient)
	profileHandler := handlers.NewProfileHandler(apiClient)
	staffHandler := handlers.NewStaffHandler(apiClient)
	catalogHandler := handlers.NewCatalogHandler(apiClient)

	// Strona główna - publiczna
	r.Get("/", indexHandler.ServeHTTP)

	// Routy dla autoryzacji
	r.Get("/login", authHandler.ShowLoginPage)
	r.Post("/login", authHandler.HandleLogin)
	r.Get("/register", authHandler.ShowRegisterPage)
	r.Post("/register", authHandler.HandleRegister)
	r.Post("/logout", authHandler.HandleLogout)

	// Grupy routów dla książek - publiczny katalog
	r.Route("/books", func(r chi.Router) {
		r.Get("/", booksHandler.ListBooksHandler)
		r.Get("/{id}", booksHandler.ShowBookHandler)

		// Koszyk i wypożyczanie (wymagają logowania)
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth)
			r.Post("/{id}/cart", booksHandler.AddToCartHandler)
			r.Post("/{id}/borrow", booksHandler.BorrowBookHandler)
		})
	})

	// Koszyk wypożyczeń
	r.Route("/cart", func(r chi.Router) {
		r.Use(authmw.RequireAuth)
		r.Get("/", cartHandler.ShowCart)
		r.Post("/items/{id}/remove", cartHandler.RemoveItem)
		r.Post("/clear", cartHandler.ClearCart)
	})

	// Potwierdzenie wypożyczenia z koszyka
	r.Route("/checkout", func(r chi.Router) {
		r.Use(authmw.RequireAuth)
		r.Get("/", checkoutHandler.ShowCheckout)
		r.Post("/selection", checkoutHandler.UpdateSelection)
		r.Post("/confirm", checkoutHandler.ConfirmCheckout)
	})

	// Panel użytkownika (dla zalogowanych czytelników)
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth)
		r.Get("/borrowed", borrowedHandler.ShowBorrowed)
		r.Post("/borrowed/{id}/return", borrowedHandler.ReturnLoan)
		r.Get("/reviews", reviewsHandler.ShowMyReviews)
		r.Post("/reviews", reviewsHandler.CreateReview)
		r.Post("/reviews/{id}/delete", reviewsHandler.DeleteReview)
		r.Get("/profile", profileHandler.ShowProfile)
		r.Post("/profile", profileHandler.UpdateProfile)
	})

	// Panel admina
	r.Route("/admin", func(r chi.Router) {
		r.Use(authmw.RequireAuth)
		r.Use(authmw.RequireAuthRole(models.RoleAdmin))
		r.Get("/", staffHandler.ShowDashboard)

		// Zarządzanie katalogiem
		r.Get("/catalog", catalogHandler.ListBooks)
		r.Get("/catalog/new", catalogHandler.ShowBookForm)
		r.Post("/catalog", catalogHandler.CreateBook)
		r.Get("/catalog/{id}/edit", catalogHandler.ShowBookForm)
		r.Post("/catalog/{id}", catalogHandler.UpdateBook)
		r.Post("/catalog/{id}/delete", catalogHandler.DeleteBook)
		r.Post("/authors", catalogHandler.CreateAuthor)
		r.Post("/authors/{id}", catalogHandler.UpdateAuthor)
		r.Post("/authors/{id}/delete", catalogHandler.DeleteAuthor)
		r.Post("/categories", catalogHandler.CreateCategory)
		r.Post("/categories/{id}", catalogHandler.UpdateCategory)
		r.Post("/categories/{id}/delete", catalogHandler.DeleteCategory)

		// Zarządzanie wypożyczeniami
		r.Get("/loans", staffHandler.ShowLoans)
		r.Get("/loans/overdue", staffHandler.ShowOverdueLoans)
		r.Post("/loans", staffHandler.CreateLoan)
		r.Post("/loans/{id}", staffHandler.UpdateLoan)

		// Zarządzanie użytkownikami
		r.Get("/users", staffHandler.ShowUsers)
	})

	// Start serwera
	log.Printf("Serwer uruchomiony na porcie %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Nie można uruchomić serwera: %v", err)
	}
}
