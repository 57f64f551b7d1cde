package database

import (
	"database/sql"
	"embed"
	"io/fs"
	"log"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

var DB *sql.DB

// Init opens the SQLite database at the given path and prepares the schema.
// The path may be ":memory:" for tests.
func Init(path string) error {
	var err error

	// Open SQLite database (creates if doesn't exist)
	DB, err = sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_temp_store=MEMORY&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return err
	}

	// Configure connection pool
	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(10)
	DB.SetConnMaxLifetime(time.Hour)

	// Test the connection
	if err = DB.Ping(); err != nil {
		return err
	}

	if err = optimizeDatabase(); err != nil {
		return err
	}

	// Run embedded migrations
	if err = RunMigrations(DB); err != nil {
		return err
	}

	return nil
}

// optimizeDatabase configures SQLite for optimal performance
func optimizeDatabase() error {
	// Enable WAL mode
	_, err := DB.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return err
	}

	// Set synchronous mode to NORMAL for better performance
	_, err = DB.Exec("PRAGMA synchronous=NORMAL")
	if err != nil {
		return err
	}

	// Enable foreign keys, required for task cascade and assignee SET NULL
	_, err = DB.Exec("PRAGMA foreign_keys=ON")
	if err != nil {
		return err
	}

	// Set busy timeout to 30 seconds
	_, err = DB.Exec("PRAGMA busy_timeout=30000")
	if err != nil {
		return err
	}

	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// RunMigrations executes the embedded SQL migration scripts in name order.
func RunMigrations(db *sql.DB) error {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		sqlContent, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return err
		}

		if _, err = db.Exec(string(sqlContent)); err != nil {
			return err
		}

		log.Printf("Executed SQL script: %s", name)
	}

	return nil
}
