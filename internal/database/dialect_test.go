package database

import (
	"testing"
)

func TestDialectDrivers(t *testing.T) {
	tests := []struct {
		name          string
		dialect       Dialect
		driver        string
		lastInsertID  bool
	}{
		{"sqlite", NewSQLiteDialect(), "sqlite3", true},
		{"postgres", NewPostgresDialect(), "postgres", false},
		{"mysql", NewMySQLDialect(), "mysql", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %v, want %v", got, tt.driver)
			}
			if got := tt.dialect.SupportsLastInsertID(); got != tt.lastInsertID {
				t.Errorf("SupportsLastInsertID() = %v, want %v", got, tt.lastInsertID)
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
			query:    "INSERT INTO students (username, display_name) VALUES (?, ?)",
			expected: "INSERT INTO students (username, display_name) VALUES ($1, $2)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE students SET username = ?, display_name = ? WHERE id = ?",
			expected: "UPDATE students SET username = ?, display_name = ? WHERE id = ?",
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
