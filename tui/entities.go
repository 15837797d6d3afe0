// ABOUTME: Per-entity metadata and type-erased controller access
// ABOUTME: Tab names, filter keys, sort fields, and row/ID helpers
package tui

import (
	"context"

	"github.com/tablevine/tablevine/controller"
	"github.com/tablevine/tablevine/models"
)

// listController is the subset of controller behavior that does not involve
// the record type, so views can drive any tab through one value.
type listController interface {
	SetFilter(key, value string)
	Filter(key string) string
	SetSort(field string)
	ClearSort()
	Sort() (string, controller.Direction, bool)
	SetPage(n int)
	Page() int
	PageCount() int
	FilteredCount() int
	Refresh(ctx context.Context) error
	Remove(ctx context.Context, id string) error
	Loading() bool
	Err() error
}

type entityMeta struct {
	name         string
	filterKey    string   // key the "/" input writes to
	statusKey    string   // key the "f" cycle writes to ("" when none)
	statusValues []string // cycle order, "all" last
	sortFields   []string // bound to keys 1..n
}

var entities = [entityCount]entityMeta{
	EntityPartners: {
		name:         "Partners",
		filterKey:    "query",
		statusKey:    "status",
		statusValues: []string{models.PartnerActive, models.PartnerInactive, "all"},
		sortFields:   []string{"name", "city", "created"},
	},
	EntityTours: {
		name:         "Tours",
		filterKey:    "query",
		statusKey:    "status",
		statusValues: []string{models.StatusScheduled, models.StatusCancelled, "all"},
		sortFields:   []string{"title", "date"},
	},
	EntityEvents: {
		name:         "Events",
		filterKey:    "query",
		statusKey:    "status",
		statusValues: []string{models.StatusScheduled, models.StatusCancelled, "all"},
		sortFields:   []string{"title", "date"},
	},
	EntityReservations: {
		name:         "Reservations",
		filterKey:    "guest",
		statusKey:    "status",
		statusValues: []string{models.ReservationPending, models.ReservationConfirmed, models.ReservationCancelled, "all"},
		sortFields:   []string{"guest", "date"},
	},
	EntityRequests: {
		name:         "Requests",
		filterKey:    "subject",
		statusKey:    "status",
		statusValues: []string{models.RequestPending, models.RequestApproved, models.RequestRejected, "all"},
		sortFields:   []string{"subject", "created"},
	},
	EntityFeedback: {
		name:       "Feedback",
		filterKey:  "query",
		statusKey:  "rating",
		// Ratings cycle like a status: each press narrows to one star value.
		statusValues: []string{"5", "4", "3", "2", "1", "all"},
		sortFields:   []string{"rating", "created"},
	},
}

func (m Model) controllerFor(entity EntityType) listController {
	switch entity {
	case EntityPartners:
		return m.partners
	case EntityTours:
		return m.tours
	case EntityEvents:
		return m.events
	case EntityReservations:
		return m.reservations
	case EntityRequests:
		return m.requests
	case EntityFeedback:
		return m.feedback
	}
	return m.partners
}

func (m Model) current() listController {
	return m.controllerFor(m.entityType)
}

func (m Model) meta() entityMeta {
	return entities[m.entityType]
}

// visibleCount is the number of rows on the current page of the current tab.
func (m Model) visibleCount() int {
	switch m.entityType {
	case EntityPartners:
		return len(m.partners.VisibleItems())
	case EntityTours:
		return len(m.tours.VisibleItems())
	case EntityEvents:
		return len(m.events.VisibleItems())
	case EntityReservations:
		return len(m.reservations.VisibleItems())
	case EntityRequests:
		return len(m.requests.VisibleItems())
	case EntityFeedback:
		return len(m.feedback.VisibleItems())
	}
	return 0
}

// selectedID returns the record ID under the cursor, or "".
func (m Model) selectedID() string {
	row := m.selectedRow
	switch m.entityType {
	case EntityPartners:
		if items := m.partners.VisibleItems(); row < len(items) {
			return items[row].RecordID()
		}
	case EntityTours:
		if items := m.tours.VisibleItems(); row < len(items) {
			return items[row].RecordID()
		}
	case EntityEvents:
		if items := m.events.VisibleItems(); row < len(items) {
			return items[row].RecordID()
		}
	case EntityReservations:
		if items := m.reservations.VisibleItems(); row < len(items) {
			return items[row].RecordID()
		}
	case EntityRequests:
		if items := m.requests.VisibleItems(); row < len(items) {
			return items[row].RecordID()
		}
	case EntityFeedback:
		if items := m.feedback.VisibleItems(); row < len(items) {
			return items[row].RecordID()
		}
	}
	return ""
}

func (m *Model) clampSelection() {
	if count := m.visibleCount(); m.selectedRow >= count {
		m.selectedRow = max(0, count-1)
	}
}

// cycleStatusFilter advances the status-like filter to the next value after
// the current one; unset counts as "all".
func (m Model) cycleStatusFilter() {
	meta := m.meta()
	if meta.statusKey == "" {
		return
	}
	ctrl := m.current()
	current := ctrl.Filter(meta.statusKey)
	if current == "" {
		current = "all"
	}
	next := meta.statusValues[0]
	for i, v := range meta.statusValues {
		if v == current {
			next = meta.statusValues[(i+1)%len(meta.statusValues)]
			break
		}
	}
	ctrl.SetFilter(meta.statusKey, next)
}
