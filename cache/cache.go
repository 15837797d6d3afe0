// ABOUTME: Local cache database connection management
// ABOUTME: Opens the SQLite cache with WAL mode and initializes its schema
package cache

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS roster_summaries (
	counterpart_id TEXT PRIMARY KEY,
	display_name TEXT NOT NULL,
	unread_count INTEGER NOT NULL DEFAULT 0,
	last_message_at TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
);
`

// Open opens the local cache database, creating directories and schema as
// needed.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	// Single connection avoids database locked errors
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
