package models

import "time"

// Book reprezentuje książkę w katalogu backendu.
// Pola odpowiadają dokładnie odpowiedzi JSON API — backend jest właścicielem
// tych danych, klient ich nie modyfikuje lokalnie.
type Book struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ISBN            string    `json:"isbn"`
	PublishedYear   int       `json:"publishedYear"`
	CoverImage      string    `json:"coverImage"`
	Rating          float64   `json:"rating"`
	ReviewCount     int       `json:"reviewCount"`
	BorrowCount     int       `json:"borrowCount"`
	TotalCopies     int       `json:"totalCopies"`
	AvailableCopies int       `json:"availableCopies"`
	AuthorID        int       `json:"authorId"`
	CategoryID      int       `json:"categoryId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Author          *Author   `json:"author,omitempty"`
	Category        *Category `json:"category,omitempty"`
}

// IsAvailable sprawdza czy książka jest dostępna do wypożyczenia
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

// AuthorName zwraca nazwę autora lub pusty string gdy backend nie dołączył
// zagnieżdżonego obiektu
func (b *Book) AuthorName() string {
	if b.Author == nil {
		return ""
	}
	return b.Author.Name
}

// CategoryName zwraca nazwę kategorii lub pusty string
func (b *Book) CategoryName() string {
	if b.Category == nil {
		return ""
	}
	return b.Category.Name
}
