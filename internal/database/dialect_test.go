package database

import (
	"testing"
)

func TestDialectNames(t *testing.T) {
	tests := []struct {
		name       string
		dialect    Dialect
		driverName string
		subdir     string
	}{
		{"sqlite", NewSQLiteDialect(), "sqlite3", "sqlite"},
		{"postgres", NewPostgresDialect(), "postgres", "postgres"},
		{"mysql", NewMySQLDialect(), "mysql", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driverName {
				t.Errorf("DriverName() = %v, want %v", got, tt.driverName)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.subdir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.subdir)
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM students WHERE id = ?",
			expected: "SELECT * FROM students WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM students WHERE id = ?",
			expected: "SELECT * FROM students WHERE id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO students (id, name) VALUES (?, ?)",
			expected: "INSERT INTO students (id, name) VALUES ($1, $2)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "DELETE FROM wordbooks WHERE id = ?",
			expected: "DELETE FROM wordbooks WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}
