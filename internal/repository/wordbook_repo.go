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

// WordbookRepository handles wordbook database operations. The word list
// is stored as a JSON document inside the row so a wordbook stays one
// flat record.
type WordbookRepository struct {
	db *database.DB
}

// NewWordbookRepository creates a new wordbook repository
func NewWordbookRepository(db *database.DB) *WordbookRepository {
	return &WordbookRepository{db: db}
}

// Create publishes a new wordbook with a server-assigned id
func (r *WordbookRepository) Create(title string, words []models.WordEntry, author string) (*models.Wordbook, error) {
	wb := &models.Wordbook{
		ID:        uuid.New().String(),
		Title:     title,
		Words:     words,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}

	encoded, err := json.Marshal(wb.Words)
	if err != nil {
		return nil, fmt.Errorf("failed to encode words: %w", err)
	}

	query := `
		INSERT INTO wordbooks (id, title, words, author, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, wb.ID, wb.Title, string(encoded), wb.Author, wb.CreatedAt); err != nil {
		return nil, err
	}

	return wb, nil
}

// List returns all wordbooks in arrival order
func (r *WordbookRepository) List() ([]models.Wordbook, error) {
	query := `
		SELECT id, title, words, author, created_at
		FROM wordbooks
		ORDER BY seq
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wordbooks []models.Wordbook
	for rows.Next() {
		wb, err := scanWordbook(rows)
		if err != nil {
			return nil, err
		}
		wordbooks = append(wordbooks, *wb)
	}

	return wordbooks, rows.Err()
}

// GetByID returns one wordbook, or nil when it does not exist
func (r *WordbookRepository) GetByID(id string) (*models.Wordbook, error) {
	query := `
		SELECT id, title, words, author, created_at
		FROM wordbooks
		WHERE id = ?
	`

	wb := &models.Wordbook{}
	var encoded string

	err := r.db.QueryRow(query, id).Scan(&wb.ID, &wb.Title, &encoded, &wb.Author, &wb.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(encoded), &wb.Words); err != nil {
		return nil, fmt.Errorf("failed to decode words for wordbook %s: %w", wb.ID, err)
	}

	return wb, nil
}

// Delete removes a wordbook by id. Test results keep their own word
// snapshots and are unaffected.
func (r *WordbookRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM wordbooks WHERE id = ?", id)
	return err
}

func scanWordbook(rows *sql.Rows) (*models.Wordbook, error) {
	wb := &models.Wordbook{}
	var encoded string

	if err := rows.Scan(&wb.ID, &wb.Title, &encoded, &wb.Author, &wb.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(encoded), &wb.Words); err != nil {
		return nil, fmt.Errorf("failed to decode words for wordbook %s: %w", wb.ID, err)
	}

	return wb, nil
}
