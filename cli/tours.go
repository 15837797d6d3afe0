// ABOUTME: Tour management commands
// ABOUTME: List, add (with optional image upload), update, and delete tours
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/tablevine/tablevine/api"
	"github.com/tablevine/tablevine/controller"
	"github.com/tablevine/tablevine/models"
)

func newTourController(client *api.Client) *controller.Controller[models.Tour] {
	res := api.NewCollection[models.Tour](client, "/tours")
	return controller.New(res, controller.TourSchema(), controller.DefaultPageSize, func(t models.Tour) error {
		return models.Validate(t)
	})
}

// ListToursCommand lists tours with filter/sort/page flags.
func ListToursCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	query := fs.String("query", "", "Search by title or description")
	status := fs.String("status", "", "Filter by status (scheduled, cancelled)")
	date := fs.String("date", "", "Date or range, e.g. 2026-06-01..2026-06-30")
	sortBy := fs.String("sort", "", "Sort by field, e.g. date or date:desc")
	page := fs.Int("page", 1, "Page number")
	_ = fs.Parse(args)

	ctrl := newTourController(client)
	lf := listFlags{
		filters: map[string]*string{"query": query, "status": status, "date": date},
		sort:    sortBy,
		page:    page,
	}
	header := fmt.Sprintf("%-38s %-30s %-12s %-10s %8s", "ID", "TITLE", "DATE", "STATUS", "PRICE")
	return runList(ctrl, lf, header, func(t models.Tour) string {
		price := fmt.Sprintf("%.2f", float64(t.Price)/100)
		return fmt.Sprintf("%-38s %-30s %-12s %-10s %8s", t.ID, t.Title, formatDate(t.Date), t.Status, price)
	})
}

// AddTourCommand creates a tour, optionally uploading an image as a
// multipart attachment.
func AddTourCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	partner := fs.String("partner", "", "Partner ID (required)")
	title := fs.String("title", "", "Tour title (required)")
	description := fs.String("description", "", "Description")
	price := fs.Int64("price", 0, "Price in cents")
	currency := fs.String("currency", "USD", "Currency code")
	capacity := fs.Int("capacity", 0, "Capacity")
	date := fs.String("date", "", "Tour date (YYYY-MM-DD)")
	imagePath := fs.String("image", "", "Image file to attach")
	_ = fs.Parse(args)

	partnerID, err := uuid.Parse(*partner)
	if err != nil {
		return fmt.Errorf("invalid partner ID: %w", err)
	}

	draft := models.Tour{
		PartnerID:   partnerID,
		Title:       *title,
		Description: *description,
		Price:       *price,
		Currency:    *currency,
		Capacity:    *capacity,
		Status:      models.StatusScheduled,
	}
	if *date != "" {
		t, err := time.Parse("2006-01-02", *date)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
		draft.Date = t
	}
	if err := models.Validate(draft); err != nil {
		return err
	}

	ctx := context.Background()
	if *imagePath != "" {
		image, err := os.ReadFile(*imagePath)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		created, err := client.CreateTourWithImage(ctx, draft, image, filepath.Base(*imagePath))
		if err != nil {
			return err
		}
		fmt.Printf("✓ Created tour %s\n", created.ID)
		return nil
	}

	ctrl := newTourController(client)
	if err := ctrl.Create(ctx, draft); err != nil {
		return err
	}
	items := ctrl.Items()
	fmt.Printf("✓ Created tour %s\n", items[len(items)-1].RecordID())
	return nil
}

// CancelTourCommand marks a tour cancelled.
func CancelTourCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("tour ID is required")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid tour ID: %w", err)
	}

	ctrl := newTourController(client)
	if err := ctrl.Refresh(context.Background()); err != nil {
		return err
	}

	var patch models.Tour
	found := false
	for _, t := range ctrl.Items() {
		if t.ID == id {
			patch = t
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("tour %s not found", id)
	}
	patch.Status = models.StatusCancelled

	if err := ctrl.Update(context.Background(), id.String(), patch); err != nil {
		return err
	}
	fmt.Printf("✓ Cancelled tour %s\n", id)
	return nil
}

// DeleteTourCommand removes one tour by ID after confirmation.
func DeleteTourCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("tour ID is required")
	}
	id := fs.Arg(0)

	if !*yes && !confirm(fmt.Sprintf("Delete tour %s?", id)) {
		fmt.Println("Cancelled.")
		return nil
	}

	ctrl := newTourController(client)
	if err := ctrl.Remove(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted tour %s\n", id)
	return nil
}
