// ABOUTME: Tests for calendar-day message grouping
// ABOUTME: Covers Today/Yesterday labels, older dates, and time zone boundaries
package messaging

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tablevine/tablevine/models"
)

func msgAt(t time.Time) models.Message {
	return models.Message{ID: uuid.New(), Content: "hi", CreatedAt: t}
}

func TestGroupByDayLabels(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 8, 29, 14, 0, 0, 0, loc)

	messages := []models.Message{
		msgAt(time.Date(2026, 8, 20, 9, 0, 0, 0, loc)),
		msgAt(time.Date(2026, 8, 20, 17, 30, 0, 0, loc)),
		msgAt(time.Date(2026, 8, 28, 8, 0, 0, 0, loc)),
		msgAt(time.Date(2026, 8, 29, 10, 0, 0, 0, loc)),
	}

	groups := GroupByDay(messages, now, loc)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}

	if groups[0].Label != "August 20, 2026" {
		t.Errorf("groups[0].Label = %q, want the date", groups[0].Label)
	}
	if len(groups[0].Messages) != 2 {
		t.Errorf("groups[0] has %d messages, want 2", len(groups[0].Messages))
	}
	if groups[1].Label != "Yesterday" {
		t.Errorf("groups[1].Label = %q, want Yesterday", groups[1].Label)
	}
	if groups[2].Label != "Today" {
		t.Errorf("groups[2].Label = %q, want Today", groups[2].Label)
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	if groups := GroupByDay(nil, time.Now(), time.UTC); groups != nil {
		t.Errorf("got %v, want nil for no messages", groups)
	}
}

func TestGroupByDayUsesViewerTimeZone(t *testing.T) {
	// 23:30 UTC on the 28th is already the 29th in UTC+2.
	east := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, east)

	messages := []models.Message{
		msgAt(time.Date(2026, 8, 28, 23, 30, 0, 0, time.UTC)),
	}

	groups := GroupByDay(messages, now, east)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Label != "Today" {
		t.Errorf("Label = %q, want Today in the viewer's zone", groups[0].Label)
	}
}

func TestGroupByDayMidnightBoundary(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 8, 29, 1, 0, 0, 0, loc)

	messages := []models.Message{
		msgAt(time.Date(2026, 8, 28, 23, 59, 0, 0, loc)),
		msgAt(time.Date(2026, 8, 29, 0, 1, 0, 0, loc)),
	}

	groups := GroupByDay(messages, now, loc)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2 across midnight", len(groups))
	}
	if groups[0].Label != "Yesterday" || groups[1].Label != "Today" {
		t.Errorf("labels = %q, %q; want Yesterday, Today", groups[0].Label, groups[1].Label)
	}
}
