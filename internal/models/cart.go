package models

import "time"

// CartItem reprezentuje jedną pozycję w koszyku wypożyczeń
type CartItem struct {
	ID      int       `json:"id"`
	BookID  int       `json:"bookId"`
	AddedAt time.Time `json:"addedAt"`
	Book    Book      `json:"book"`
}

// Cart to zawartość koszyka zwracana przez GET /cart
type Cart struct {
	CartID    int        `json:"cartId"`
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"itemCount"`
}

// CheckoutUser to dane kontaktowe użytkownika w ładunku checkout.
// Backend zwraca numer telefonu pod kluczem "nomorHandphone" — nazwa pola
// jest częścią kontraktu i nie podlega zmianie po stronie klienta.
type CheckoutUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"nomorHandphone"`
}

// Checkout to ładunek checkout: dane użytkownika plus wybrane pozycje koszyka
type Checkout struct {
	User      CheckoutUser `json:"user"`
	Items     []CartItem   `json:"items"`
	ItemCount int          `json:"itemCount"`
}
