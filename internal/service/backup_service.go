package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"vocamaster/internal/database"
	"vocamaster/internal/models"
)

// BackupData represents a complete backup of all collections
type BackupData struct {
	Version       string                `json:"version"`
	ExportedAt    time.Time             `json:"exported_at"`
	Students      []models.Student      `json:"students"`
	Wordbooks     []models.Wordbook     `json:"wordbooks"`
	Notifications []models.Notification `json:"notifications"`
	TestResults   []models.TestResult   `json:"test_results"`
}

// BackupService exports and restores all collections as JSON
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return s.ExportToWriter(file)
}

// ExportToWriter writes a complete backup as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC(),
	}

	if err := s.exportStudents(backup); err != nil {
		return fmt.Errorf("failed to export students: %w", err)
	}
	if err := s.exportWordbooks(backup); err != nil {
		return fmt.Errorf("failed to export wordbooks: %w", err)
	}
	if err := s.exportNotifications(backup); err != nil {
		return fmt.Errorf("failed to export notifications: %w", err)
	}
	if err := s.exportTestResults(backup); err != nil {
		return fmt.Errorf("failed to export test results: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d students, %d wordbooks, %d notifications, %d test results",
		len(backup.Students), len(backup.Wordbooks),
		len(backup.Notifications), len(backup.TestResults))

	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores all collections from a backup stream.
// Records are inserted in backup order so arrival order survives a
// round trip.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	if err := s.importStudents(backup.Students); err != nil {
		return fmt.Errorf("failed to import students: %w", err)
	}
	if err := s.importWordbooks(backup.Wordbooks); err != nil {
		return fmt.Errorf("failed to import wordbooks: %w", err)
	}
	if err := s.importNotifications(backup.Notifications); err != nil {
		return fmt.Errorf("failed to import notifications: %w", err)
	}
	if err := s.importTestResults(backup.TestResults); err != nil {
		return fmt.Errorf("failed to import test results: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportStudents(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, name, created_at FROM students ORDER BY seq")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var st models.Student
		if err := rows.Scan(&st.ID, &st.Name, &st.CreatedAt); err != nil {
			return err
		}
		backup.Students = append(backup.Students, st)
	}
	return rows.Err()
}

func (s *BackupService) exportWordbooks(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, title, words, author, created_at FROM wordbooks ORDER BY seq")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var wb models.Wordbook
		var wordsJSON string
		if err := rows.Scan(&wb.ID, &wb.Title, &wordsJSON, &wb.Author, &wb.CreatedAt); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(wordsJSON), &wb.Words); err != nil {
			return fmt.Errorf("bad words document in wordbook %s: %w", wb.ID, err)
		}
		backup.Wordbooks = append(backup.Wordbooks, wb)
	}
	return rows.Err()
}

func (s *BackupService) exportNotifications(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, message, date FROM notifications ORDER BY seq")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.Date); err != nil {
			return err
		}
		backup.Notifications = append(backup.Notifications, n)
	}
	return rows.Err()
}

func (s *BackupService) exportTestResults(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, student_name, wordbook_title, score, total, wrong_words, timestamp FROM test_results ORDER BY seq")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r models.TestResult
		var wrongJSON string
		if err := rows.Scan(&r.ID, &r.StudentName, &r.WordbookTitle, &r.Score, &r.Total, &wrongJSON, &r.Timestamp); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(wrongJSON), &r.WrongWords); err != nil {
			return fmt.Errorf("bad wrong_words document in result %s: %w", r.ID, err)
		}
		backup.TestResults = append(backup.TestResults, r)
	}
	return rows.Err()
}

func (s *BackupService) importStudents(students []models.Student) error {
	for _, st := range students {
		_, err := s.db.Exec(
			"INSERT INTO students (id, name, created_at) VALUES (?, ?, ?)",
			st.ID, st.Name, st.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("student %s: %w", st.ID, err)
		}
	}
	log.Printf("Imported %d students", len(students))
	return nil
}

func (s *BackupService) importWordbooks(wordbooks []models.Wordbook) error {
	for _, wb := range wordbooks {
		wordsJSON, err := json.Marshal(wb.Words)
		if err != nil {
			return fmt.Errorf("wordbook %s: %w", wb.ID, err)
		}
		_, err = s.db.Exec(
			"INSERT INTO wordbooks (id, title, words, author, created_at) VALUES (?, ?, ?, ?, ?)",
			wb.ID, wb.Title, string(wordsJSON), wb.Author, wb.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("wordbook %s: %w", wb.ID, err)
		}
	}
	log.Printf("Imported %d wordbooks", len(wordbooks))
	return nil
}

func (s *BackupService) importNotifications(notifications []models.Notification) error {
	for _, n := range notifications {
		_, err := s.db.Exec(
			"INSERT INTO notifications (id, message, date) VALUES (?, ?, ?)",
			n.ID, n.Message, n.Date,
		)
		if err != nil {
			return fmt.Errorf("notification %s: %w", n.ID, err)
		}
	}
	log.Printf("Imported %d notifications", len(notifications))
	return nil
}

func (s *BackupService) importTestResults(results []models.TestResult) error {
	for _, r := range results {
		wrongJSON, err := json.Marshal(r.WrongWords)
		if err != nil {
			return fmt.Errorf("result %s: %w", r.ID, err)
		}
		_, err = s.db.Exec(
			"INSERT INTO test_results (id, student_name, wordbook_title, score, total, wrong_words, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)",
			r.ID, r.StudentName, r.WordbookTitle, r.Score, r.Total, string(wrongJSON), r.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("result %s: %w", r.ID, err)
		}
	}
	log.Printf("Imported %d test results", len(results))
	return nil
}
