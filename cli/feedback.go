// ABOUTME: Feedback moderation commands
// ABOUTME: List and delete guest feedback entries
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/tablevine/tablevine/api"
	"github.com/tablevine/tablevine/controller"
	"github.com/tablevine/tablevine/models"
)

func newFeedbackController(client *api.Client) *controller.Controller[models.Feedback] {
	res := api.NewCollection[models.Feedback](client, "/feedback")
	return controller.New(res, controller.FeedbackSchema(), controller.DefaultPageSize, nil)
}

// ListFeedbackCommand lists feedback with filter/sort/page flags.
func ListFeedbackCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	query := fs.String("query", "", "Search by author or comment")
	rating := fs.String("rating", "", "Filter by rating (1-5)")
	sortBy := fs.String("sort", "", "Sort by field, e.g. created:desc")
	page := fs.Int("page", 1, "Page number")
	_ = fs.Parse(args)

	ctrl := newFeedbackController(client)
	lf := listFlags{
		filters: map[string]*string{"query": query, "rating": rating},
		sort:    sortBy,
		page:    page,
	}
	header := fmt.Sprintf("%-38s %-18s %6s %-12s %s", "ID", "AUTHOR", "RATING", "CREATED", "COMMENT")
	return runList(ctrl, lf, header, func(f models.Feedback) string {
		comment := f.Comment
		if len(comment) > 40 {
			comment = comment[:37] + "..."
		}
		return fmt.Sprintf("%-38s %-18s %6d %-12s %s", f.ID, f.Author, f.Rating, formatDate(f.CreatedAt), comment)
	})
}

// DeleteFeedbackCommand removes one feedback entry after confirmation.
func DeleteFeedbackCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("feedback ID is required")
	}
	id := fs.Arg(0)

	if !*yes && !confirm(fmt.Sprintf("Delete feedback %s?", id)) {
		fmt.Println("Cancelled.")
		return nil
	}

	ctrl := newFeedbackController(client)
	if err := ctrl.Remove(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted feedback %s\n", id)
	return nil
}
