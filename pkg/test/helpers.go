package test

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"accounts/internal/adapter/database/sqlite"
)

// findProjectRoot walks up from this file until it sees go.mod.
func findProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	log.Fatal("Could not find project root directory")
	return ""
}

// InitTestDB opens an in-memory sqlite database with migrations applied.
// MaxOpenConns is pinned to 1 so the pool never opens a second connection
// onto a fresh, empty :memory: database.
func InitTestDB() *sqlite.DB {
	db, err := sql.Open("sqlite3", ":memory:")

	if err != nil {
		log.Fatal(err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Fatal(err)
	}

	migrationsPath := filepath.Join(findProjectRoot(), "db", "migrations")
	sqlite.RunMigrations(db, migrationsPath)

	return sqlite.Wrap(db)
}
