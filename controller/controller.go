// ABOUTME: Generic list controller for a remote-owned record collection
// ABOUTME: Fetch, filter, sort, paginate, and reconcile mutations against server truth
package controller

import (
	"context"
	"sort"
	"sync"
)

// Record is any entity with a stable unique identifier.
type Record interface {
	RecordID() string
}

// Resource is the remote collection a controller reconciles against.
type Resource[T Record] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id string, patch T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Direction of a sort.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// DefaultPageSize is used when a screen does not pick its own.
const DefaultPageSize = 10

// Controller manages the client-side list pipeline for one resource: it holds
// the last fetched record set and applies conjunctive filters, a stable
// single-field sort, and page slicing on top of it. Mutations go to the
// remote first; local state changes only after the server confirms.
//
// All state transitions happen under one mutex, so a controller is safe to
// drive from UI callbacks and background fetch completions alike.
type Controller[T Record] struct {
	mu       sync.Mutex
	res      Resource[T]
	schema   Schema[T]
	validate func(T) error
	pageSize int

	items     []T
	filters   map[string]string
	sortField string
	sortDir   Direction
	page      int
	loading   bool
	err       error

	// gen detects stale overlapping refreshes: a response carrying an old
	// generation is discarded instead of overwriting fresher state.
	gen uint64
}

// New creates a controller. validate may be nil; when set it runs against
// create drafts before any request is issued.
func New[T Record](res Resource[T], schema Schema[T], pageSize int, validate func(T) error) *Controller[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller[T]{
		res:      res,
		schema:   schema,
		validate: validate,
		pageSize: pageSize,
		filters:  make(map[string]string),
		page:     1,
	}
}

// SetFilter replaces one filter entry and resets to page 1, since the old
// pagination position is meaningless against a different subset. Keys outside
// the schema are ignored; an empty or "all" value removes the constraint.
func (c *Controller[T]) SetFilter(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, known := c.schema[key]; !known {
		return
	}
	if value == "" || value == "all" {
		delete(c.filters, key)
	} else {
		c.filters[key] = value
	}
	c.page = 1
}

// Filter returns the current value for one filter key ("" when unset).
func (c *Controller[T]) Filter(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters[key]
}

// SetSort sorts by field, toggling direction when the field is already the
// sort key. Unknown fields are ignored.
func (c *Controller[T]) SetSort(field string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, known := c.schema[field]; !known {
		return
	}
	if c.sortField == field {
		if c.sortDir == Ascending {
			c.sortDir = Descending
		} else {
			c.sortDir = Ascending
		}
		return
	}
	c.sortField = field
	c.sortDir = Ascending
}

// ClearSort restores fetch order.
func (c *Controller[T]) ClearSort() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortField = ""
	c.sortDir = Ascending
}

// Sort returns the current sort field and direction; ok is false when the
// fetch order is preserved.
func (c *Controller[T]) Sort() (field string, dir Direction, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortField, c.sortDir, c.sortField != ""
}

// SetPage moves to page n, clamped into the valid range.
func (c *Controller[T]) SetPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = clamp(n, 1, c.pageCountLocked())
}

// Page returns the current 1-indexed page.
func (c *Controller[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// PageSize returns the fixed page size.
func (c *Controller[T]) PageSize() int { return c.pageSize }

// Loading reports whether a refresh is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last operation error, or nil.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Items returns a copy of the full fetched record set in server order.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Refresh fetches the collection and replaces items wholesale on success.
// On failure the previous items stay available and the error is captured.
// When refreshes overlap, only the newest one may apply its response.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.loading = true
	c.mu.Unlock()

	items, err := c.res.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A newer refresh superseded this one; its completion owns the state.
		return nil
	}
	c.loading = false
	if err != nil {
		c.err = err
		return err
	}
	c.items = items
	c.err = nil
	c.page = clamp(c.page, 1, c.pageCountLocked())
	return nil
}

// Create validates the draft, posts it, and appends the server's canonical
// record. The client draft is never stored.
func (c *Controller[T]) Create(ctx context.Context, draft T) error {
	if c.validate != nil {
		if err := c.validate(draft); err != nil {
			c.setErr(err)
			return err
		}
	}

	created, err := c.res.Create(ctx, draft)
	if err != nil {
		c.setErr(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, created)
	c.err = nil
	return nil
}

// Update puts a patch and replaces the matching record in place. Its position
// in items does not change; the list is not re-sorted.
func (c *Controller[T]) Update(ctx context.Context, id string, patch T) error {
	updated, err := c.res.Update(ctx, id, patch)
	if err != nil {
		c.setErr(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].RecordID() == id {
			c.items[i] = updated
			break
		}
	}
	c.err = nil
	return nil
}

// Remove deletes a record remotely and drops it from items only after the
// server confirms. A remote error (including 404) leaves items unchanged.
func (c *Controller[T]) Remove(ctx context.Context, id string) error {
	if err := c.res.Delete(ctx, id); err != nil {
		c.setErr(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, item := range c.items {
		if item.RecordID() != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.err = nil
	c.page = clamp(c.page, 1, c.pageCountLocked())
	return nil
}

// VisibleItems applies filters, then the sort, then the page slice. It is a
// pure read: safe to call on every render.
func (c *Controller[T]) VisibleItems() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := c.filteredSortedLocked()
	page := clamp(c.page, 1, pageCount(len(visible), c.pageSize))
	start := (page - 1) * c.pageSize
	end := min(start+c.pageSize, len(visible))
	if start >= len(visible) {
		return nil
	}
	return visible[start:end]
}

// FilteredCount returns the number of records passing the active filters.
func (c *Controller[T]) FilteredCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.filteredSortedLocked())
}

// PageCount returns the number of pages for the filtered set, at least 1.
func (c *Controller[T]) PageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageCountLocked()
}

func (c *Controller[T]) pageCountLocked() int {
	return pageCount(len(c.filteredSortedLocked()), c.pageSize)
}

// filteredSortedLocked builds a fresh slice: conjunctive AND across active
// filters, then a stable sort so equal keys keep their fetch order.
func (c *Controller[T]) filteredSortedLocked() []T {
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if c.matchesLocked(item) {
			out = append(out, item)
		}
	}

	if field, known := c.schema[c.sortField]; known && c.sortField != "" {
		desc := c.sortDir == Descending
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return field.less(out[j], out[i])
			}
			return field.less(out[i], out[j])
		})
	}
	return out
}

func (c *Controller[T]) matchesLocked(item T) bool {
	for key, value := range c.filters {
		field, known := c.schema[key]
		if !known {
			continue
		}
		if !field.matches(item, value) {
			return false
		}
	}
	return true
}

func (c *Controller[T]) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func pageCount(count, pageSize int) int {
	if count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
