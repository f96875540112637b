// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Instead, use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/milestone/internal/ctxutil"
	"github.com/example/milestone/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// The pool is pinned to one connection so every query sees the same
// in-memory database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	// Use the authoritative schema from schema.go
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// userCtx returns a context scoped to userID.
func userCtx(userID string) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

// seedHabit inserts a habit for userID and returns its ID.
func seedHabit(t *testing.T, db *sql.DB, id, userID, name, createdAt string) string {
	t.Helper()
	_, err := db.Exec("INSERT INTO habits (id, user_id, name, created_at) VALUES (?, ?, ?, ?)", id, userID, name, createdAt)
	if err != nil {
		t.Fatalf("failed to seed habit: %v", err)
	}
	return id
}

// seedCompletion inserts one completion.
func seedCompletion(t *testing.T, db *sql.DB, id, habitID, date, at string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO habit_completions (id, habit_id, completed_date, completed_time, completed_at) VALUES (?, ?, ?, ?, ?)",
		id, habitID, date, at, date+"T"+at+":00Z",
	)
	if err != nil {
		t.Fatalf("failed to seed completion: %v", err)
	}
}
