package models

import "time"

// UserRole określa rolę użytkownika w systemie
type UserRole string

const (
	RoleUser  UserRole = "USER"  // Czytelnik - może wypożyczać książki
	RoleAdmin UserRole = "ADMIN" // Administrator - pełny dostęp do panelu admina
)

// User reprezentuje użytkownika zwracanego przez backend
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         UserRole  `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	ProfilePhoto string    `json:"profilePhoto,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// IsAdmin sprawdza czy użytkownik jest administratorem
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// LoanStats to statystyki wypożyczeń pokazywane na profilu
type LoanStats struct {
	Borrowed int `json:"borrowed"`
	Late     int `json:"late"`
	Returned int `json:"returned"`
	Total    int `json:"total"`
}

// Profile to odpowiedź GET /me: dane użytkownika plus statystyki
type Profile struct {
	Profile      User      `json:"profile"`
	LoanStats    LoanStats `json:"loanStats"`
	ReviewsCount int       `json:"reviewsCount"`
}
