// ABOUTME: Shared plumbing for list commands
// ABOUTME: Applies filter/sort/page flags to a controller and prints one page
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tablevine/tablevine/controller"
)

// listFlags are the options every list command shares.
type listFlags struct {
	filters map[string]*string
	sort    *string
	page    *int
}

// runList fetches, applies flags, and prints one page of the collection.
func runList[T controller.Record](ctrl *controller.Controller[T], lf listFlags, header string, row func(T) string) error {
	if err := ctrl.Refresh(context.Background()); err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}

	for key, value := range lf.filters {
		if value != nil && *value != "" {
			ctrl.SetFilter(key, *value)
		}
	}
	if lf.sort != nil && *lf.sort != "" {
		field, desc := parseSortFlag(*lf.sort)
		ctrl.SetSort(field)
		if desc {
			ctrl.SetSort(field) // second call flips to descending
		}
	}
	if lf.page != nil && *lf.page > 0 {
		ctrl.SetPage(*lf.page)
	}

	items := ctrl.VisibleItems()
	if len(items) == 0 {
		fmt.Println("No records found.")
		return nil
	}

	fmt.Println(header)
	for _, item := range items {
		fmt.Println(row(item))
	}
	fmt.Printf("\nPage %d of %d (%d records)\n", ctrl.Page(), ctrl.PageCount(), ctrl.FilteredCount())
	return nil
}

// parseSortFlag splits "date:desc" into its field and direction.
func parseSortFlag(value string) (field string, desc bool) {
	field, dir, found := strings.Cut(value, ":")
	if found && strings.EqualFold(strings.TrimSpace(dir), "desc") {
		desc = true
	}
	return strings.TrimSpace(field), desc
}

// formatDate renders a timestamp for table output, blank when unset.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
