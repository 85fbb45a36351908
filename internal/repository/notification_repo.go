package repository

import (
	"time"

	"vocamaster/internal/database"
	"vocamaster/internal/models"

	"github.com/google/uuid"
)

// NotificationRepository handles announcement database operations.
// Notifications are append-only; nothing in the app deletes them.
type NotificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create appends a new announcement with a server-assigned id
func (r *NotificationRepository) Create(message string) (*models.Notification, error) {
	n := &models.Notification{
		ID:      uuid.New().String(),
		Message: message,
		Date:    time.Now().UTC(),
	}

	query := `
		INSERT INTO notifications (id, message, date)
		VALUES (?, ?, ?)
	`

	if _, err := r.db.Exec(query, n.ID, n.Message, n.Date); err != nil {
		return nil, err
	}

	return n, nil
}

// List returns all announcements in arrival order. Clients surface the
// last element; arrival order, not the date field, decides recency.
func (r *NotificationRepository) List() ([]models.Notification, error) {
	query := `
		SELECT id, message, date
		FROM notifications
		ORDER BY seq
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.Date); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}
