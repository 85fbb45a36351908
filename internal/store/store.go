// Package store is the persistence boundary for the four record
// collections. Writes are fire-and-forget: failures are logged, never
// retried and never surfaced to the user, and subscribers keep seeing
// the last-known state. Subscriptions fire immediately with the current
// snapshot and again after every change to their collection.
package store

import "vocamaster/internal/models"

// Kind names one of the shared record collections.
type Kind string

const (
	KindStudents      Kind = "students"
	KindWordbooks     Kind = "wordbooks"
	KindNotifications Kind = "notifications"
	KindTestResults   Kind = "test_results"
)

// Kinds lists every collection in a stable order.
var Kinds = []Kind{KindStudents, KindWordbooks, KindNotifications, KindTestResults}

// UpdateFunc receives a full collection snapshot. The concrete type is
// the model slice for the subscribed kind ([]models.Student and so on).
type UpdateFunc func(records interface{})

// Store is the persistence collaborator contract. Append and Remove do
// not report errors to the caller; a failed write only shows up in the
// log.
type Store interface {
	// Reads
	Students() ([]models.Student, error)
	StudentByName(name string) (*models.Student, error)
	Wordbooks() ([]models.Wordbook, error)
	Wordbook(id string) (*models.Wordbook, error)
	Notifications() ([]models.Notification, error)
	Results() ([]models.TestResult, error)
	ResultsByStudent(name string) ([]models.TestResult, error)

	// Append creates one record with a server-assigned id. The record
	// argument is the model value for the kind; any caller-supplied id
	// is ignored.
	Append(kind Kind, record interface{})

	// Remove deletes one record by id.
	Remove(kind Kind, id string)

	// Subscribe registers an update callback for one collection and
	// returns an unsubscribe handle. The callback fires once right away
	// with the current snapshot.
	Subscribe(kind Kind, onUpdate UpdateFunc) (unsubscribe func())
}
