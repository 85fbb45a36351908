package models

import "time"

// WordEntry is one vocabulary pair. Both sides are stored trimmed and
// non-empty; malformed input never reaches this type.
type WordEntry struct {
	En string `json:"en"`
	Ko string `json:"ko"`
}

// Wordbook is an ordered word list. The word order determines quiz
// presentation order. Author is display-only provenance ("Admin" or a
// student name) and carries no permission difference.
type Wordbook struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Words     []WordEntry `json:"words"`
	Author    string      `json:"author"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AuthorAdmin marks admin-published wordbooks.
const AuthorAdmin = "Admin"
