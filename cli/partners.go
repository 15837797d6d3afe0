// ABOUTME: Partner management commands
// ABOUTME: List, add, update, and delete marketplace partners
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

func newPartnerController(client *api.Client) *controller.Controller[models.Partner] {
	res := api.NewCollection[models.Partner](client, "/partners")
	return controller.New(res, controller.PartnerSchema(), controller.DefaultPageSize, func(p models.Partner) error {
		return models.Validate(p)
	})
}

// ListPartnersCommand lists partners with filter/sort/page flags.
func ListPartnersCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	query := fs.String("query", "", "Search by name, email, or city")
	status := fs.String("status", "", "Filter by status (active, inactive)")
	city := fs.String("city", "", "Filter by city")
	sortBy := fs.String("sort", "", "Sort by field, e.g. name or name:desc")
	page := fs.Int("page", 1, "Page number")
	_ = fs.Parse(args)

	ctrl := newPartnerController(client)
	lf := listFlags{
		filters: map[string]*string{"query": query, "status": status, "city": city},
		sort:    sortBy,
		page:    page,
	}
	header := fmt.Sprintf("%-38s %-25s %-15s %-10s", "ID", "NAME", "CITY", "STATUS")
	return runList(ctrl, lf, header, func(p models.Partner) string {
		return fmt.Sprintf("%-38s %-25s %-15s %-10s", p.ID, p.Name, p.City, p.Status)
	})
}

// AddPartnerCommand creates a partner.
func AddPartnerCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "Partner name (required)")
	email := fs.String("email", "", "Contact email")
	phone := fs.String("phone", "", "Contact phone")
	city := fs.String("city", "", "City")
	cuisine := fs.String("cuisine", "", "Cuisine")
	_ = fs.Parse(args)

	ctrl := newPartnerController(client)
	draft := models.Partner{
		Name:    *name,
		Email:   *email,
		Phone:   *phone,
		City:    *city,
		Cuisine: *cuisine,
		Status:  models.PartnerActive,
	}
	if err := ctrl.Create(context.Background(), draft); err != nil {
		return err
	}

	items := ctrl.Items()
	fmt.Printf("✓ Created partner %s\n", items[len(items)-1].RecordID())
	return nil
}

// UpdatePartnerCommand patches one partner by ID.
func UpdatePartnerCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	name := fs.String("name", "", "Partner name")
	email := fs.String("email", "", "Contact email")
	phone := fs.String("phone", "", "Contact phone")
	city := fs.String("city", "", "City")
	cuisine := fs.String("cuisine", "", "Cuisine")
	status := fs.String("status", "", "Status (active, inactive)")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("partner ID is required (flags must come before the ID)")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid partner ID: %w", err)
	}

	patch := models.Partner{
		ID:      id,
		Name:    *name,
		Email:   *email,
		Phone:   *phone,
		City:    *city,
		Cuisine: *cuisine,
		Status:  *status,
	}
	ctrl := newPartnerController(client)
	if err := ctrl.Update(context.Background(), id.String(), patch); err != nil {
		return err
	}

	fmt.Printf("✓ Updated partner %s\n", id)
	return nil
}

// DeletePartnerCommand removes one partner by ID after confirmation.
func DeletePartnerCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("partner ID is required")
	}
	id := fs.Arg(0)

	if !*yes && !confirm(fmt.Sprintf("Delete partner %s?", id)) {
		fmt.Println("Cancelled.")
		return nil
	}

	ctrl := newPartnerController(client)
	if err := ctrl.Remove(context.Background(), id); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted partner %s\n", id)
	return nil
}

// confirm asks a yes/no question on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	_, _ = fmt.Scanln(&answer)
	return answer == "y" || answer == "Y" || answer == "yes"
}
