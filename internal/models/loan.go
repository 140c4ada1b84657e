package models

import (
	"time"

	"library-borrow-client/internal/datemath"
)

// LoanStatus określa autorytatywny status wypożyczenia nadawany przez backend
type LoanStatus string

const (
	LoanStatusBorrowed LoanStatus = "BORROWED" // Aktywne wypożyczenie
	LoanStatusReturned LoanStatus = "RETURNED" // Zwrócone
	LoanStatusOverdue  LoanStatus = "OVERDUE"  // Przeterminowane
)

// DisplayStatus to status wyprowadzany po stronie klienta, wyłącznie do
// wyświetlania. Jest liczony przy każdym renderze i nigdy nie zapisywany.
type DisplayStatus string

const (
	DisplayActive   DisplayStatus = "Active"
	DisplayReturned DisplayStatus = "Returned"
	DisplayOverdue  DisplayStatus = "Overdue"

	// FilterAll to dodatkowy kubełek filtra pasujący do każdego wypożyczenia
	FilterAll = "All"
)

// LoanBorrower to dane wypożyczającego w widokach administracyjnych
type LoanBorrower struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Loan reprezentuje wypożyczenie książki. Backend jest jedynym właścicielem
// statusu i dat — klient niczego tu nie przelicza poza statusem wyświetlanym.
type Loan struct {
	ID           int           `json:"id"`
	UserID       int           `json:"userId,omitempty"`
	BookID       int           `json:"bookId,omitempty"`
	Status       LoanStatus    `json:"status"`
	BorrowedAt   time.Time     `json:"borrowedAt"`
	DueAt        time.Time     `json:"dueAt"`
	ReturnedAt   *time.Time    `json:"returnedAt,omitempty"`
	DurationDays int           `json:"durationDays,omitempty"`
	Book         *Book         `json:"book,omitempty"`
	User         *User         `json:"user,omitempty"`
	Borrower     *LoanBorrower `json:"borrower,omitempty"`
}

// Classify mapuje autorytatywny status na status wyświetlany.
// Status backendu jest źródłem prawdy; porównanie z DueAt służy wyłącznie
// jako zabezpieczenie, gdy backend nie zdążył jeszcze przestawić
// BORROWED na OVERDUE przy odczycie.
func (l *Loan) Classify(now time.Time) DisplayStatus {
	switch l.Status {
	case LoanStatusReturned:
		return DisplayReturned
	case LoanStatusOverdue:
		return DisplayOverdue
	}

	if l.ReturnedAt == nil && now.After(l.DueAt) {
		return DisplayOverdue
	}

	return DisplayActive
}

// IsOverdue sprawdza czy wypożyczenie jest przeterminowane
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.Classify(now) == DisplayOverdue
}

// MatchesFilter sprawdza czy wypożyczenie należy do kubełka filtra.
// Kubełek "All" pasuje zawsze; pozostałe porównują status wyświetlany,
// więc lista użytkownika i panel admina nigdy się nie rozjadą.
func (l *Loan) MatchesFilter(filter string, now time.Time) bool {
	if filter == "" || filter == FilterAll {
		return true
	}
	return string(l.Classify(now)) == filter
}

// EffectiveDurationDays zwraca czas trwania wypożyczenia w dniach.
// Wartość z backendu ma pierwszeństwo; wyprowadzenie z dat jest tylko
// zapasem na starsze rekordy, które pola durationDays nie mają.
func (l *Loan) EffectiveDurationDays() int {
	if l.DurationDays > 0 {
		return l.DurationDays
	}
	return datemath.DaysBetween(l.BorrowedAt, l.DueAt)
}

// BookTitle zwraca tytuł książki lub pusty string
func (l *Loan) BookTitle() string {
	if l.Book == nil {
		return ""
	}
	return l.Book.Title
}

// BorrowResult to odpowiedź na potwierdzenie wypożyczenia z koszyka
type BorrowResult struct {
	Loans           []Loan          `json:"loans"`
	Failed          []BorrowFailure `json:"failed"`
	RemovedFromCart int             `json:"removedFromCart"`
	Message         string          `json:"message"`
}

// BorrowFailure opisuje pozycję, której nie udało się wypożyczyć
type BorrowFailure struct {
	BookID int    `json:"bookId"`
	Reason string `json:"reason"`
}

// Pagination to metadane stronicowania zwracane przez listy backendu
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
