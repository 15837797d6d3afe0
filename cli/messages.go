// ABOUTME: Messaging commands
// ABOUTME: Roster listing, sending, and a polling watcher built on the sync layer
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/tablevine/tablevine/api"
	"github.com/tablevine/tablevine/cache"
	"github.com/tablevine/tablevine/config"
	"github.com/tablevine/tablevine/messaging"
)

// newSync builds the conversation sync layer with the local summary cache.
// The cache is optional: a failure to open it only costs warm starts.
func newSync(client *api.Client) (*messaging.Sync, func()) {
	svc := api.NewMessaging(client)
	selfID := client.Session().UserID()

	db, err := cache.Open(config.CachePath())
	if err != nil {
		return messaging.New(svc, selfID, nil), func() {}
	}
	return messaging.New(svc, selfID, cache.NewRoster(db)), func() { _ = db.Close() }
}

// ListConversationsCommand prints the roster with unread counts.
func ListConversationsCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	_ = fs.Parse(args)

	sync, closeCache := newSync(client)
	defer closeCache()

	if err := sync.LoadRoster(context.Background()); err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	roster := sync.Roster()
	if len(roster) == 0 {
		fmt.Println("No conversations.")
		return nil
	}

	fmt.Printf("%-38s %-25s %7s %s\n", "ID", "NAME", "UNREAD", "LAST MESSAGE")
	for _, cp := range roster {
		last := "-"
		if !cp.LastMessageAt.IsZero() {
			last = cp.LastMessageAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("%-38s %-25s %7d %s\n", cp.ID, cp.DisplayName, cp.UnreadCount, last)
	}
	fmt.Println()
	printUnread(sync)
	return nil
}

// SendMessageCommand sends one message to a counterpart.
func SendMessageCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	to := fs.String("to", "", "Counterpart ID (required)")
	_ = fs.Parse(args)

	counterpartID, err := uuid.Parse(*to)
	if err != nil {
		return fmt.Errorf("invalid counterpart ID: %w", err)
	}
	content := strings.Join(fs.Args(), " ")

	sync, closeCache := newSync(client)
	defer closeCache()

	ctx := context.Background()
	if err := sync.Select(ctx, counterpartID); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
	if err := sync.Send(ctx, content); err != nil {
		return err
	}

	fmt.Println("✓ Sent")
	return nil
}

// WatchMessagesCommand polls the roster and prints unread changes until
// interrupted.
func WatchMessagesCommand(client *api.Client, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	_ = fs.Parse(args)

	sync, closeCache := newSync(client)
	defer closeCache()

	ctx := context.Background()
	if summary, err := api.NewMessaging(client).Unread(ctx); err == nil {
		fmt.Printf("%d unread across %d conversations\n", summary.Total, len(summary.ByCounterpart))
	}
	if err := sync.LoadRoster(ctx); err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	poller := sync.Start(ctx, cfg.RosterInterval(), cfg.MessageInterval())
	defer poller.Stop()

	fmt.Println("Watching for new messages (Ctrl+C to stop)...")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	fmt.Println("\nStopped.")
	return nil
}

func printUnread(sync *messaging.Sync) {
	total := 0
	for _, cp := range sync.Roster() {
		total += cp.UnreadCount
	}
	fmt.Printf("%d conversations, %d unread\n", len(sync.Roster()), total)
}
