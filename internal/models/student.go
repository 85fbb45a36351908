package models

import "time"

// Student represents one roster entry. Login matches the entered name
// against this collection by exact string equality; no credential is
// issued to the student.
type Student struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
