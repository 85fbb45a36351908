package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"vocamaster/internal/models"
	"vocamaster/internal/store"
)

var ErrEmptyMessage = errors.New("message is required")

// NotificationService publishes announcements to the whole roster.
type NotificationService struct {
	store store.Store
	email *EmailService
}

// NewNotificationService creates a new notification service
func NewNotificationService(st store.Store, email *EmailService) *NotificationService {
	return &NotificationService{store: st, email: email}
}

// Broadcast stores an announcement for all students, and mails a copy
// to the configured notify address when email is enabled. A failed mail
// send never fails the broadcast.
func (s *NotificationService) Broadcast(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrEmptyMessage
	}

	s.store.Append(store.KindNotifications, models.Notification{Message: message})

	if s.email != nil && s.email.IsEnabled() {
		if err := s.email.SendAnnouncement(ctx, message); err != nil {
			log.Printf("Failed to send announcement email: %v", err)
		}
	}
	return nil
}

// Notifications lists announcements oldest first.
func (s *NotificationService) Notifications() ([]models.Notification, error) {
	return s.store.Notifications()
}
