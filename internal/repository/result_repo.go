package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"vocamaster/internal/database"
	"vocamaster/internal/models"

	"github.com/google/uuid"
)

// ResultRepository handles test result database operations. Results are
// written once at quiz finalization and never updated or deleted.
type ResultRepository struct {
	db *database.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *database.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create persists a finalized result with a server-assigned id
func (r *ResultRepository) Create(result *models.TestResult) (*models.TestResult, error) {
	stored := *result
	stored.ID = uuid.New().String()
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now().UTC()
	}
	if stored.WrongWords == nil {
		stored.WrongWords = []models.WordEntry{}
	}

	encoded, err := json.Marshal(stored.WrongWords)
	if err != nil {
		return nil, fmt.Errorf("failed to encode wrong words: %w", err)
	}

	query := `
		INSERT INTO test_results (id, student_name, wordbook_title, score, total, wrong_words, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		stored.ID,
		stored.StudentName,
		stored.WordbookTitle,
		stored.Score,
		stored.Total,
		string(encoded),
		stored.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// List returns all results in arrival order
func (r *ResultRepository) List() ([]models.TestResult, error) {
	return r.list(`
		SELECT id, student_name, wordbook_title, score, total, wrong_words, timestamp
		FROM test_results
		ORDER BY seq
	`)
}

// ListByStudent returns one student's results in arrival order
func (r *ResultRepository) ListByStudent(studentName string) ([]models.TestResult, error) {
	return r.list(`
		SELECT id, student_name, wordbook_title, score, total, wrong_words, timestamp
		FROM test_results
		WHERE student_name = ?
		ORDER BY seq
	`, studentName)
}

func (r *ResultRepository) list(query string, args ...interface{}) ([]models.TestResult, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.TestResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	return results, rows.Err()
}

func scanResult(rows *sql.Rows) (*models.TestResult, error) {
	result := &models.TestResult{}
	var encoded string

	err := rows.Scan(
		&result.ID,
		&result.StudentName,
		&result.WordbookTitle,
		&result.Score,
		&result.Total,
		&encoded,
		&result.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(encoded), &result.WrongWords); err != nil {
		return nil, fmt.Errorf("failed to decode wrong words for result %s: %w", result.ID, err)
	}

	return result, nil
}
