package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/config"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	cfg := &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func writeMigration(t *testing.T, dir, name, sql string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sql), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	dir := t.TempDir()
	writeMigration(t, dir, "001_init.sql", `
		CREATE TABLE students (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL
		);
	`)

	if err := db.RunMigrations(dir); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	// Running again must be a no-op, not a duplicate-table error.
	if err := db.RunMigrations(dir); err != nil {
		t.Fatalf("second RunMigrations: %v", err)
	}

	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", "students").Scan(&name)
	if err != nil {
		t.Errorf("students table not created: %v", err)
	}

	var recorded int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&recorded); err != nil {
		t.Fatal(err)
	}
	if recorded != 1 {
		t.Errorf("migrations recorded = %d, want 1", recorded)
	}
}

func TestExecReturningID(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	dir := t.TempDir()
	writeMigration(t, dir, "001_init.sql", `
		CREATE TABLE students (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL
		);
	`)
	if err := db.RunMigrations(dir); err != nil {
		t.Fatal(err)
	}

	id, err := db.ExecReturningID("INSERT INTO students (username) VALUES (?)", "brave-otter")
	if err != nil {
		t.Fatalf("ExecReturningID: %v", err)
	}
	if id != 1 {
		t.Errorf("first insert id = %d, want 1", id)
	}
}

func TestTransactionRollback(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	dir := t.TempDir()
	writeMigration(t, dir, "001_init.sql", `
		CREATE TABLE students (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL
		);
	`)
	if err := db.RunMigrations(dir); err != nil {
		t.Fatal(err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tx.ExecReturningID("INSERT INTO students (username) VALUES (?)", "quiet-fox"); err != nil {
		t.Fatal(err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatal(err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM students").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("rows after rollback = %d, want 0", count)
	}
}
