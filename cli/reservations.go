// ABOUTME: Reservation and request commands
// ABOUTME: Listing plus status transitions (confirm/cancel, approve/reject)
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/uuid"

	"github.com/tablevine/tablevine/api"
	"github.com/tablevine/tablevine/controller"
	"github.com/tablevine/tablevine/models"
)

func newReservationController(client *api.Client) *controller.Controller[models.Reservation] {
	res := api.NewCollection[models.Reservation](client, "/reservations")
	return controller.New(res, controller.ReservationSchema(), controller.DefaultPageSize, nil)
}

func newRequestController(client *api.Client) *controller.Controller[models.Request] {
	res := api.NewCollection[models.Request](client, "/requests")
	return controller.New(res, controller.RequestSchema(), controller.DefaultPageSize, nil)
}

// ListReservationsCommand lists reservations with filter/sort/page flags.
func ListReservationsCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	guest := fs.String("guest", "", "Filter by guest name")
	status := fs.String("status", "", "Filter by status (pending, confirmed, cancelled)")
	date := fs.String("date", "", "Date or range, e.g. 2026-06-01..2026-06-30")
	sortBy := fs.String("sort", "", "Sort by field, e.g. date:desc")
	page := fs.Int("page", 1, "Page number")
	_ = fs.Parse(args)

	ctrl := newReservationController(client)
	lf := listFlags{
		filters: map[string]*string{"guest": guest, "status": status, "date": date},
		sort:    sortBy,
		page:    page,
	}
	header := fmt.Sprintf("%-38s %-22s %6s %-12s %-10s", "ID", "GUEST", "PARTY", "DATE", "STATUS")
	return runList(ctrl, lf, header, func(r models.Reservation) string {
		return fmt.Sprintf("%-38s %-22s %6d %-12s %-10s", r.ID, r.GuestName, r.PartySize, formatDate(r.Date), r.Status)
	})
}

// SetReservationStatusCommand transitions one reservation's status.
func SetReservationStatusCommand(client *api.Client, status string, args []string) error {
	fs := flag.NewFlagSet(status, flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("reservation ID is required")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid reservation ID: %w", err)
	}

	ctrl := newReservationController(client)
	if err := ctrl.Refresh(context.Background()); err != nil {
		return err
	}

	for _, r := range ctrl.Items() {
		if r.ID == id {
			r.Status = status
			if err := ctrl.Update(context.Background(), id.String(), r); err != nil {
				return err
			}
			fmt.Printf("✓ Reservation %s is now %s\n", id, status)
			return nil
		}
	}
	return fmt.Errorf("reservation %s not found", id)
}

// ListRequestsCommand lists partner requests with filter/sort/page flags.
func ListRequestsCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	subject := fs.String("subject", "", "Filter by subject")
	status := fs.String("status", "", "Filter by status (pending, approved, rejected)")
	sortBy := fs.String("sort", "", "Sort by field, e.g. created:desc")
	page := fs.Int("page", 1, "Page number")
	_ = fs.Parse(args)

	ctrl := newRequestController(client)
	lf := listFlags{
		filters: map[string]*string{"subject": subject, "status": status},
		sort:    sortBy,
		page:    page,
	}
	header := fmt.Sprintf("%-38s %-34s %-12s %-10s", "ID", "SUBJECT", "CREATED", "STATUS")
	return runList(ctrl, lf, header, func(r models.Request) string {
		return fmt.Sprintf("%-38s %-34s %-12s %-10s", r.ID, r.Subject, formatDate(r.CreatedAt), r.Status)
	})
}

// SetRequestStatusCommand approves or rejects one request.
func SetRequestStatusCommand(client *api.Client, status string, args []string) error {
	fs := flag.NewFlagSet(status, flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("request ID is required")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid request ID: %w", err)
	}

	ctrl := newRequestController(client)
	if err := ctrl.Refresh(context.Background()); err != nil {
		return err
	}

	for _, r := range ctrl.Items() {
		if r.ID == id {
			r.Status = status
			if err := ctrl.Update(context.Background(), id.String(), r); err != nil {
				return err
			}
			fmt.Printf("✓ Request %s is now %s\n", id, status)
			return nil
		}
	}
	return fmt.Errorf("request %s not found", id)
}
