package models

import "time"

// Notification is an admin announcement. The collection is append-only
// from the app's perspective; clients surface the most recently arrived
// message as a banner.
type Notification struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}
