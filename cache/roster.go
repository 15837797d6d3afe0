// ABOUTME: Roster summary cache operations
// ABOUTME: Persists counterpart unread counts and recency between polls
package cache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tablevine/tablevine/models"
)

// Roster caches counterpart summaries so the messages screen can paint
// immediately on startup and survive a failed per-counterpart fetch.
type Roster struct {
	db *sql.DB
}

// NewRoster creates a roster cache over an open cache database.
func NewRoster(db *sql.DB) *Roster {
	return &Roster{db: db}
}

// PutAll replaces the cached roster with the given summaries. Counterparts
// absent from the new roster are dropped; they no longer exist remotely.
func (r *Roster) PutAll(roster []models.Counterpart) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	if _, err := tx.Exec(`DELETE FROM roster_summaries`); err != nil {
		return fmt.Errorf("failed to clear roster cache: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, cp := range roster {
		lastAt := ""
		if !cp.LastMessageAt.IsZero() {
			lastAt = cp.LastMessageAt.UTC().Format(time.RFC3339Nano)
		}
		_, err := tx.Exec(`
			INSERT INTO roster_summaries (counterpart_id, display_name, unread_count, last_message_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, cp.ID.String(), cp.DisplayName, cp.UnreadCount, lastAt, now)
		if err != nil {
			return fmt.Errorf("failed to cache counterpart %s: %w", cp.ID, err)
		}
	}

	return tx.Commit()
}

// Get returns the cached summary for one counterpart.
func (r *Roster) Get(counterpartID uuid.UUID) (models.Counterpart, bool, error) {
	row := r.db.QueryRow(`
		SELECT counterpart_id, display_name, unread_count, last_message_at
		FROM roster_summaries WHERE counterpart_id = ?
	`, counterpartID.String())

	cp, err := scanCounterpart(row.Scan)
	if err == sql.ErrNoRows {
		return models.Counterpart{}, false, nil
	}
	if err != nil {
		return models.Counterpart{}, false, err
	}
	return cp, true, nil
}

// GetAll returns every cached summary, most recent message first.
func (r *Roster) GetAll() ([]models.Counterpart, error) {
	rows, err := r.db.Query(`
		SELECT counterpart_id, display_name, unread_count, last_message_at
		FROM roster_summaries
		ORDER BY last_message_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var roster []models.Counterpart
	for rows.Next() {
		cp, err := scanCounterpart(rows.Scan)
		if err != nil {
			return nil, err
		}
		roster = append(roster, cp)
	}
	return roster, rows.Err()
}

func scanCounterpart(scan func(dest ...any) error) (models.Counterpart, error) {
	var cp models.Counterpart
	var id, lastAt string
	if err := scan(&id, &cp.DisplayName, &cp.UnreadCount, &lastAt); err != nil {
		return models.Counterpart{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return models.Counterpart{}, fmt.Errorf("corrupt counterpart id %q: %w", id, err)
	}
	cp.ID = parsed

	if lastAt != "" {
		t, err := time.Parse(time.RFC3339Nano, lastAt)
		if err != nil {
			return models.Counterpart{}, fmt.Errorf("corrupt timestamp %q: %w", lastAt, err)
		}
		cp.LastMessageAt = t
	}
	return cp, nil
}
