// ABOUTME: Local experiences catalog commands
// ABOUTME: List, add (with inline image), and remove client-only records
package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/tablevine/tablevine/config"
	"github.com/tablevine/tablevine/models"
	"github.com/tablevine/tablevine/store"
)

func openCatalog(cfg *config.Config) (*store.Catalog, error) {
	return store.Open(config.CatalogDir(), cfg.CatalogQuotaBytes)
}

// ListExperiencesCommand prints the local catalog, newest first.
func ListExperiencesCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	_ = fs.Parse(args)

	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = catalog.Close() }()

	experiences, err := catalog.Load()
	if err != nil {
		return err
	}
	if len(experiences) == 0 {
		fmt.Println("No experiences saved.")
		return nil
	}

	fmt.Printf("%-38s %-28s %-12s %-6s\n", "ID", "TITLE", "DATE", "IMAGE")
	for _, exp := range experiences {
		hasImage := "-"
		if len(exp.Image) > 0 {
			hasImage = "yes"
		}
		fmt.Printf("%-38s %-28s %-12s %-6s\n", exp.ID, exp.Title, formatDate(exp.Date), hasImage)
	}
	return nil
}

// AddExperienceCommand saves one experience locally.
func AddExperienceCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "Experience title (required)")
	notes := fs.String("notes", "", "Notes")
	date := fs.String("date", "", "Date (YYYY-MM-DD)")
	imagePath := fs.String("image", "", "Image file to embed")
	_ = fs.Parse(args)

	exp := models.Experience{Title: *title, Notes: *notes}
	if *date != "" {
		t, err := time.Parse("2006-01-02", *date)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
		exp.Date = t
	}
	if *imagePath != "" {
		image, err := os.ReadFile(*imagePath)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		exp.Image = image
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = catalog.Close() }()

	if err := catalog.Add(exp); err != nil {
		return err
	}
	fmt.Println("✓ Saved experience")
	return nil
}

// RemoveExperienceCommand deletes one experience from the catalog.
func RemoveExperienceCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("experience ID is required")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid experience ID: %w", err)
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = catalog.Close() }()

	if err := catalog.Remove(id); err != nil {
		return err
	}
	fmt.Printf("✓ Removed experience %s\n", id)
	return nil
}
