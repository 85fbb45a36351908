package repository

import (
	"path/filepath"
	"testing"

	"vocamaster/internal/database"
	"vocamaster/internal/models"
)

// newTestDB opens a throwaway SQLite database with migrations applied
func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestStudentRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewStudentRepository(db)

	alice, err := repo.Create("Alice")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if alice.ID == "" {
		t.Error("created student should get an id")
	}
	if _, err := repo.Create("Bob"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	students, err := repo.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(students) != 2 || students[0].Name != "Alice" || students[1].Name != "Bob" {
		t.Errorf("List() = %+v, want Alice then Bob", students)
	}

	found, err := repo.GetByName("Alice")
	if err != nil {
		t.Fatalf("GetByName() error: %v", err)
	}
	if found == nil || found.ID != alice.ID {
		t.Errorf("GetByName(Alice) = %+v", found)
	}

	missing, err := repo.GetByName("Carol")
	if err != nil {
		t.Fatalf("GetByName() error: %v", err)
	}
	if missing != nil {
		t.Errorf("GetByName(Carol) = %+v, want nil", missing)
	}

	if err := repo.Delete(alice.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	students, _ = repo.List()
	if len(students) != 1 || students[0].Name != "Bob" {
		t.Errorf("List() after delete = %+v", students)
	}
}

func TestWordbookRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewWordbookRepository(db)

	words := []models.WordEntry{
		{En: "cat", Ko: "고양이"},
		{En: "dog", Ko: "개"},
	}
	created, err := repo.Create("Set1", words, "Alice")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// The words document survives the JSON column round trip
	loaded, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if loaded == nil {
		t.Fatal("GetByID() returned nil for existing wordbook")
	}
	if loaded.Title != "Set1" || loaded.Author != "Alice" {
		t.Errorf("loaded = %+v", loaded)
	}
	if len(loaded.Words) != 2 || loaded.Words[0] != words[0] || loaded.Words[1] != words[1] {
		t.Errorf("loaded words = %+v, want %+v", loaded.Words, words)
	}

	if err := repo.Delete(created.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	gone, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if gone != nil {
		t.Errorf("GetByID() after delete = %+v, want nil", gone)
	}
}

func TestNotificationRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)

	for _, msg := range []string{"first", "second"} {
		if _, err := repo.Create(msg); err != nil {
			t.Fatalf("Create(%q) error: %v", msg, err)
		}
	}

	notifications, err := repo.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("got %d notifications, want 2", len(notifications))
	}
	if notifications[0].Message != "first" || notifications[1].Message != "second" {
		t.Errorf("List() order = %+v", notifications)
	}
}

func TestResultRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewResultRepository(db)

	stored, err := repo.Create(&models.TestResult{
		StudentName:   "Alice",
		WordbookTitle: "Set1",
		Score:         1,
		Total:         2,
		WrongWords:    []models.WordEntry{{En: "dog", Ko: "개"}},
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if stored.ID == "" || stored.Timestamp.IsZero() {
		t.Errorf("stored result missing id or timestamp: %+v", stored)
	}

	if _, err := repo.Create(&models.TestResult{StudentName: "Bob", WordbookTitle: "Set1", Score: 2, Total: 2}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	mine, err := repo.ListByStudent("Alice")
	if err != nil {
		t.Fatalf("ListByStudent() error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("got %d results for Alice, want 1", len(mine))
	}
	if len(mine[0].WrongWords) != 1 || mine[0].WrongWords[0].En != "dog" {
		t.Errorf("wrong words = %+v", mine[0].WrongWords)
	}

	all, err := repo.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d results total, want 2", len(all))
	}
}
