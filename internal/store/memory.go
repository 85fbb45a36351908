package store

import (
	"log"
	"sync"
	"time"

	"vocamaster/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is a synchronous in-memory Store. It backs tests and lets
// the core quiz and admin flows run without a database.
type MemoryStore struct {
	mu            sync.Mutex
	students      []models.Student
	wordbooks     []models.Wordbook
	notifications []models.Notification
	results       []models.TestResult

	nextSubID   int
	subscribers map[Kind]map[int]UpdateFunc
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subscribers: make(map[Kind]map[int]UpdateFunc),
	}
}

func (s *MemoryStore) Students() ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Student(nil), s.students...), nil
}

func (s *MemoryStore) StudentByName(name string) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, student := range s.students {
		if student.Name == name {
			copied := student
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Wordbooks() ([]models.Wordbook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Wordbook(nil), s.wordbooks...), nil
}

func (s *MemoryStore) Wordbook(id string) (*models.Wordbook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, wb := range s.wordbooks {
		if wb.ID == id {
			copied := wb
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Notifications() ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.notifications...), nil
}

func (s *MemoryStore) Results() ([]models.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TestResult(nil), s.results...), nil
}

func (s *MemoryStore) ResultsByStudent(name string) ([]models.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var results []models.TestResult
	for _, r := range s.results {
		if r.StudentName == name {
			results = append(results, r)
		}
	}
	return results, nil
}

// Append creates one record synchronously and notifies subscribers
// before returning.
func (s *MemoryStore) Append(kind Kind, record interface{}) {
	now := time.Now().UTC()

	s.mu.Lock()
	switch kind {
	case KindStudents:
		student, ok := record.(models.Student)
		if !ok {
			s.mu.Unlock()
			log.Printf("store: append %s: unexpected record type %T", kind, record)
			return
		}
		student.ID = uuid.New().String()
		student.CreatedAt = now
		s.students = append(s.students, student)
	case KindWordbooks:
		wb, ok := record.(models.Wordbook)
		if !ok {
			s.mu.Unlock()
			log.Printf("store: append %s: unexpected record type %T", kind, record)
			return
		}
		wb.ID = uuid.New().String()
		wb.CreatedAt = now
		s.wordbooks = append(s.wordbooks, wb)
	case KindNotifications:
		n, ok := record.(models.Notification)
		if !ok {
			s.mu.Unlock()
			log.Printf("store: append %s: unexpected record type %T", kind, record)
			return
		}
		n.ID = uuid.New().String()
		n.Date = now
		s.notifications = append(s.notifications, n)
	case KindTestResults:
		result, ok := record.(models.TestResult)
		if !ok {
			s.mu.Unlock()
			log.Printf("store: append %s: unexpected record type %T", kind, record)
			return
		}
		result.ID = uuid.New().String()
		if result.Timestamp.IsZero() {
			result.Timestamp = now
		}
		if result.WrongWords == nil {
			result.WrongWords = []models.WordEntry{}
		}
		s.results = append(s.results, result)
	default:
		s.mu.Unlock()
		log.Printf("store: append: unknown kind %q", kind)
		return
	}
	s.mu.Unlock()

	s.notify(kind)
}

// Remove deletes one record by id
func (s *MemoryStore) Remove(kind Kind, id string) {
	s.mu.Lock()
	switch kind {
	case KindStudents:
		for i, student := range s.students {
			if student.ID == id {
				s.students = append(s.students[:i], s.students[i+1:]...)
				break
			}
		}
	case KindWordbooks:
		for i, wb := range s.wordbooks {
			if wb.ID == id {
				s.wordbooks = append(s.wordbooks[:i], s.wordbooks[i+1:]...)
				break
			}
		}
	default:
		s.mu.Unlock()
		log.Printf("store: remove: kind %q is append-only", kind)
		return
	}
	s.mu.Unlock()

	s.notify(kind)
}

// Subscribe registers an update callback and fires it once with the
// current snapshot.
func (s *MemoryStore) Subscribe(kind Kind, onUpdate UpdateFunc) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	if s.subscribers[kind] == nil {
		s.subscribers[kind] = make(map[int]UpdateFunc)
	}
	s.subscribers[kind][id] = onUpdate
	s.mu.Unlock()

	onUpdate(s.snapshot(kind))

	return func() {
		s.mu.Lock()
		delete(s.subscribers[kind], id)
		s.mu.Unlock()
	}
}

func (s *MemoryStore) snapshot(kind Kind) interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case KindStudents:
		return append([]models.Student(nil), s.students...)
	case KindWordbooks:
		return append([]models.Wordbook(nil), s.wordbooks...)
	case KindNotifications:
		return append([]models.Notification(nil), s.notifications...)
	case KindTestResults:
		return append([]models.TestResult(nil), s.results...)
	}
	return nil
}

func (s *MemoryStore) notify(kind Kind) {
	records := s.snapshot(kind)

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
