package models

import "time"

// Review reprezentuje recenzję książki
type Review struct {
	ID        int       `json:"id"`
	Star      int       `json:"star"`
	Comment   string    `json:"comment"`
	BookID    int       `json:"bookId,omitempty"`
	UserID    int       `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
	Book      *Book     `json:"book,omitempty"`
	User      *User     `json:"user,omitempty"`
}
