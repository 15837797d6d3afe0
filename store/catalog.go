// ABOUTME: Local experiences catalog persisted in a Badger key-value store
// ABOUTME: Single-key JSON sequence with quota eviction keeping the newest records
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/tablevine/tablevine/models"
)

// experiencesKey is the single key the whole catalog serializes under.
const experiencesKey = "experiences"

// keepOnEvict is how many of the most recent records survive a quota cleanup.
const keepOnEvict = 20

// DefaultQuota bounds the serialized catalog size. Inline images make
// individual records large, so the cap is deliberately generous.
const DefaultQuota = 4 << 20

// ErrCatalogFull is the terminal error after quota eviction and a retry both
// failed. Data is never dropped silently beyond the eviction policy.
var ErrCatalogFull = errors.New("experience catalog is full")

// Catalog is the client-only experiences store. Records live only on this
// machine; the server never sees them.
type Catalog struct {
	db    *badger.DB
	quota int
}

// Open opens (or creates) the catalog at dir. quota <= 0 uses DefaultQuota.
func Open(dir string, quota int) (*Catalog, error) {
	if quota <= 0 {
		quota = DefaultQuota
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog store: %w", err)
	}
	return &Catalog{db: db, quota: quota}, nil
}

// Close closes the underlying store.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Load reads the full catalog. A missing key is an empty catalog.
func (c *Catalog) Load() ([]models.Experience, error) {
	var raw []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(experiencesKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var experiences []models.Experience
	if err := json.Unmarshal(raw, &experiences); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return experiences, nil
}

// Save writes the full catalog, enforcing the byte quota.
func (c *Catalog) Save(experiences []models.Experience) error {
	raw, err := json.Marshal(experiences)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if len(raw) > c.quota {
		return ErrCatalogFull
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(experiencesKey), raw)
	})
	if err != nil {
		if errors.Is(err, badger.ErrTxnTooBig) {
			return ErrCatalogFull
		}
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

// Add appends one experience. When the write would exceed the quota, the
// catalog is trimmed to the most recent records by creation time, the new
// record appended, and the write retried once. A second failure is terminal.
func (c *Catalog) Add(exp models.Experience) error {
	if err := models.Validate(exp); err != nil {
		return err
	}
	if exp.ID == uuid.Nil {
		exp.ID = uuid.New()
	}
	if exp.CreatedAt.IsZero() {
		exp.CreatedAt = time.Now()
	}

	existing, err := c.Load()
	if err != nil {
		return err
	}

	err = c.Save(append(existing, exp))
	if !errors.Is(err, ErrCatalogFull) {
		return err
	}

	trimmed := newestFirst(existing)
	if len(trimmed) > keepOnEvict {
		trimmed = trimmed[:keepOnEvict]
	}
	if err := c.Save(append(trimmed, exp)); err != nil {
		if errors.Is(err, ErrCatalogFull) {
			return ErrCatalogFull
		}
		return err
	}
	return nil
}

// Remove deletes one experience by ID. Removing an unknown ID is a no-op.
func (c *Catalog) Remove(id uuid.UUID) error {
	existing, err := c.Load()
	if err != nil {
		return err
	}

	kept := existing[:0]
	for _, exp := range existing {
		if exp.ID != id {
			kept = append(kept, exp)
		}
	}
	return c.Save(kept)
}

// newestFirst returns a copy sorted by creation time descending.
func newestFirst(experiences []models.Experience) []models.Experience {
	out := make([]models.Experience, len(experiences))
	copy(out, experiences)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
