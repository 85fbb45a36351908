package service

import (
	"strings"

	"vocamaster/internal/models"
	"vocamaster/internal/store"
)

// RosterService manages the student roster.
type RosterService struct {
	store store.Store
}

// NewRosterService creates a new roster service
func NewRosterService(st store.Store) *RosterService {
	return &RosterService{store: st}
}

// AddStudent registers a student name on the roster.
func (s *RosterService) AddStudent(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	s.store.Append(store.KindStudents, models.Student{Name: name})
	return nil
}

// RemoveStudent deletes a roster entry by id.
func (s *RosterService) RemoveStudent(id string) {
	s.store.Remove(store.KindStudents, id)
}

// Students lists the roster in registration order.
func (s *RosterService) Students() ([]models.Student, error) {
	return s.store.Students()
}
