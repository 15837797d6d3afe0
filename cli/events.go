// ABOUTME: Event management commands
// ABOUTME: List, add, cancel, and delete partner events
package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tablevine/tablevine/api"
	"github.com/tablevine/tablevine/controller"
	"github.com/tablevine/tablevine/models"
)

func newEventController(client *api.Client) *controller.Controller[models.Event] {
	res := api.NewCollection[models.Event](client, "/events")
	return controller.New(res, controller.EventSchema(), controller.DefaultPageSize, func(e models.Event) error {
		return models.Validate(e)
	})
}

// ListEventsCommand lists events with filter/sort/page flags.
func ListEventsCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	title := fs.String("title", "", "Filter by title")
	venue := fs.String("venue", "", "Filter by venue")
	status := fs.String("status", "", "Filter by status (scheduled, cancelled)")
	date := fs.String("date", "", "Date or range, e.g. 2026-06-01..2026-06-30")
	sortBy := fs.String("sort", "", "Sort by field, e.g. date:desc")
	page := fs.Int("page", 1, "Page number")
	_ = fs.Parse(args)

	ctrl := newEventController(client)
	lf := listFlags{
		filters: map[string]*string{"title": title, "venue": venue, "status": status, "date": date},
		sort:    sortBy,
		page:    page,
	}
	header := fmt.Sprintf("%-38s %-28s %-18s %-12s %-10s", "ID", "TITLE", "VENUE", "DATE", "STATUS")
	return runList(ctrl, lf, header, func(e models.Event) string {
		return fmt.Sprintf("%-38s %-28s %-18s %-12s %-10s", e.ID, e.Title, e.Venue, formatDate(e.StartsAt), e.Status)
	})
}

// AddEventCommand creates an event.
func AddEventCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	partner := fs.String("partner", "", "Partner ID (required)")
	title := fs.String("title", "", "Event title (required)")
	venue := fs.String("venue", "", "Venue")
	starts := fs.String("starts", "", "Start time (RFC3339 or YYYY-MM-DD)")
	capacity := fs.Int("capacity", 0, "Capacity")
	_ = fs.Parse(args)

	partnerID, err := uuid.Parse(*partner)
	if err != nil {
		return fmt.Errorf("invalid partner ID: %w", err)
	}

	draft := models.Event{
		PartnerID: partnerID,
		Title:     *title,
		Venue:     *venue,
		Capacity:  *capacity,
		Status:    models.StatusScheduled,
	}
	if *starts != "" {
		t, err := time.Parse(time.RFC3339, *starts)
		if err != nil {
			t, err = time.Parse("2006-01-02", *starts)
			if err != nil {
				return fmt.Errorf("invalid start time: %w", err)
			}
		}
		draft.StartsAt = t
	}

	ctrl := newEventController(client)
	if err := ctrl.Create(context.Background(), draft); err != nil {
		return err
	}
	items := ctrl.Items()
	fmt.Printf("✓ Created event %s\n", items[len(items)-1].RecordID())
	return nil
}

// DeleteEventCommand removes one event by ID after confirmation.
func DeleteEventCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("event ID is required")
	}
	id := fs.Arg(0)

	if !*yes && !confirm(fmt.Sprintf("Delete event %s?", id)) {
		fmt.Println("Cancelled.")
		return nil
	}

	ctrl := newEventController(client)
	if err := ctrl.Remove(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted event %s\n", id)
	return nil
}
