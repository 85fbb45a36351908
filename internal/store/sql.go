package store

import (
	"log"
	"sync"

	"vocamaster/internal/models"
	"vocamaster/internal/repository"
)

// SQLStore is the production Store over the four repositories. Change
// notification is in-process: after every successful write the affected
// collection is re-read and fanned out to subscribers.
type SQLStore struct {
	students      *repository.StudentRepository
	wordbooks     *repository.WordbookRepository
	notifications *repository.NotificationRepository
	results       *repository.ResultRepository

	mu          sync.Mutex
	nextSubID   int
	subscribers map[Kind]map[int]UpdateFunc
}

// NewSQLStore creates a store over the given repositories
func NewSQLStore(
	students *repository.StudentRepository,
	wordbooks *repository.WordbookRepository,
	notifications *repository.NotificationRepository,
	results *repository.ResultRepository,
) *SQLStore {
	return &SQLStore{
		students:      students,
		wordbooks:     wordbooks,
		notifications: notifications,
		results:       results,
		subscribers:   make(map[Kind]map[int]UpdateFunc),
	}
}

func (s *SQLStore) Students() ([]models.Student, error) {
	return s.students.List()
}

func (s *SQLStore) StudentByName(name string) (*models.Student, error) {
	return s.students.GetByName(name)
}

func (s *SQLStore) Wordbooks() ([]models.Wordbook, error) {
	return s.wordbooks.List()
}

func (s *SQLStore) Wordbook(id string) (*models.Wordbook, error) {
	return s.wordbooks.GetByID(id)
}

func (s *SQLStore) Notifications() ([]models.Notification, error) {
	return s.notifications.List()
}

func (s *SQLStore) Results() ([]models.TestResult, error) {
	return s.results.List()
}

func (s *SQLStore) ResultsByStudent(name string) ([]models.TestResult, error) {
	return s.results.ListByStudent(name)
}

// Append creates one record. Errors are logged only; the caller has
// already moved on.
func (s *SQLStore) Append(kind Kind, record interface{}) {
	var err error

	switch kind {
	case KindStudents:
		student, ok := record.(models.Student)
		if !ok {
			log.Printf("store: append %s: unexpected record type %T", kind, record)
			return
		}
		_, err = s.students.Create(student.Name)
	case KindWordbooks:
		wb, ok := record.(models.Wordbook)
		if !ok {
			log.Printf("store: append %s: unexpected record type %T", kind, record)
			return
		}
		_, err = s.wordbooks.Create(wb.Title, wb.Words, wb.Author)
	case KindNotifications:
		n, ok := record.(models.Notification)
		if !ok {
			log.Printf("store: append %s: unexpected record type %T", kind, record)
			return
		}
		_, err = s.notifications.Create(n.Message)
	case KindTestResults:
		result, ok := record.(models.TestResult)
		if !ok {
			log.Printf("store: append %s: unexpected record type %T", kind, record)
			return
		}
		_, err = s.results.Create(&result)
	default:
		log.Printf("store: append: unknown kind %q", kind)
		return
	}

	if err != nil {
		log.Printf("store: append %s failed: %v", kind, err)
		return
	}

	s.notify(kind)
}

// Remove deletes one record by id. Errors are logged only. Notifications
// and test results are never removed in-app; attempts are rejected here
// so a stray caller cannot break the append-only kinds.
func (s *SQLStore) Remove(kind Kind, id string) {
	var err error

	switch kind {
	case KindStudents:
		err = s.students.Delete(id)
	case KindWordbooks:
		err = s.wordbooks.Delete(id)
	default:
		log.Printf("store: remove: kind %q is append-only", kind)
		return
	}

	if err != nil {
		log.Printf("store: remove %s %s failed: %v", kind, id, err)
		return
	}

	s.notify(kind)
}

// Subscribe registers an update callback and fires it once with the
// current snapshot.
func (s *SQLStore) Subscribe(kind Kind, onUpdate UpdateFunc) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	if s.subscribers[kind] == nil {
		s.subscribers[kind] = make(map[int]UpdateFunc)
	}
	s.subscribers[kind][id] = onUpdate
	s.mu.Unlock()

	if records, err := s.snapshot(kind); err != nil {
		log.Printf("store: initial snapshot of %s failed: %v", kind, err)
	} else {
		onUpdate(records)
	}

	return func() {
		s.mu.Lock()
		delete(s.subscribers[kind], id)
		s.mu.Unlock()
	}
}

func (s *SQLStore) snapshot(kind Kind) (interface{}, error) {
	switch kind {
	case KindStudents:
		return s.students.List()
	case KindWordbooks:
		return s.wordbooks.List()
	case KindNotifications:
		return s.notifications.List()
	case KindTestResults:
		return s.results.List()
	}
	return nil, nil
}

func (s *SQLStore) notify(kind Kind) {
	records, err := s.snapshot(kind)
	if err != nil {
		// Subscribers keep their last-known state
		log.Printf("store: snapshot of %s failed: %v", kind, err)
		return
	}

	s.mu.Lock()
	callbacks := make([]UpdateFunc, 0, len(s.subscribers[kind]))
	for _, cb := range s.subscribers[kind] {
		callbacks = append(callbacks, cb)
	}
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(records)
	}
}
