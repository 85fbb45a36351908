package repository

import (
	"database/sql"
	"time"

	"vocamaster/internal/database"
	"vocamaster/internal/models"

	"github.com/google/uuid"
)

// StudentRepository handles roster database operations
type StudentRepository struct {
	db *database.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *database.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create registers a new student with a server-assigned id
func (r *StudentRepository) Create(name string) (*models.Student, error) {
	student := &models.Student{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO students (id, name, created_at)
		VALUES (?, ?, ?)
	`

	if _, err := r.db.Exec(query, student.ID, student.Name, student.CreatedAt); err != nil {
		return nil, err
	}

	return student, nil
}

// List returns all students in arrival order
func (r *StudentRepository) List() ([]models.Student, error) {
	query := `
		SELECT id, name, created_at
		FROM students
		ORDER BY seq
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

// GetByName returns the first student whose name exactly equals name,
// or nil if none is registered
func (r *StudentRepository) GetByName(name string) (*models.Student, error) {
	query := `
		SELECT id, name, created_at
		FROM students
		WHERE name = ?
		ORDER BY seq
		LIMIT 1
	`

	student := &models.Student{}
	err := r.db.QueryRow(query, name).Scan(&student.ID, &student.Name, &student.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return student, nil
}

// Delete removes a student by id. Existing test results are untouched.
func (r *StudentRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM students WHERE id = ?", id)
	return err
}
