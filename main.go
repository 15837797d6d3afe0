// ABOUTME: Entry point for the tablevine partner console
// ABOUTME: Routes to the full-screen console or CLI commands based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/tablevine/tablevine/api"
	"github.com/tablevine/tablevine/cache"
	"github.com/tablevine/tablevine/cli"
	"github.com/tablevine/tablevine/config"
	"github.com/tablevine/tablevine/messaging"
	"github.com/tablevine/tablevine/store"
	"github.com/tablevine/tablevine/tui"
)

const version = "0.2.0"

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show version and exit")
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("tablevine version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "console":
		if err := runConsole(cfg); err != nil {
			log.Fatalf("Console failed: %v", err)
		}

	case "login":
		if err := cli.LoginCommand(cfg, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "logout":
		if err := cli.LogoutCommand(cfg, newClient(cfg), commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "partners":
		runEntity(cfg, commandArgs, map[string]commandFunc{
			"list":   cli.ListPartnersCommand,
			"add":    cli.AddPartnerCommand,
			"update": cli.UpdatePartnerCommand,
			"delete": cli.DeletePartnerCommand,
		})

	case "tours":
		runEntity(cfg, commandArgs, map[string]commandFunc{
			"list":   cli.ListToursCommand,
			"add":    cli.AddTourCommand,
			"cancel": cli.CancelTourCommand,
			"delete": cli.DeleteTourCommand,
		})

	case "events":
		runEntity(cfg, commandArgs, map[string]commandFunc{
			"list":   cli.ListEventsCommand,
			"add":    cli.AddEventCommand,
			"delete": cli.DeleteEventCommand,
		})

	case "reservations":
		runEntity(cfg, commandArgs, map[string]commandFunc{
			"list": cli.ListReservationsCommand,
			"confirm": func(client *api.Client, args []string) error {
				return cli.SetReservationStatusCommand(client, "confirmed", args)
			},
			"cancel": func(client *api.Client, args []string) error {
				return cli.SetReservationStatusCommand(client, "cancelled", args)
			},
		})

	case "requests":
		runEntity(cfg, commandArgs, map[string]commandFunc{
			"list": cli.ListRequestsCommand,
			"approve": func(client *api.Client, args []string) error {
				return cli.SetRequestStatusCommand(client, "approved", args)
			},
			"reject": func(client *api.Client, args []string) error {
				return cli.SetRequestStatusCommand(client, "rejected", args)
			},
		})

	case "feedback":
		runEntity(cfg, commandArgs, map[string]commandFunc{
			"list":   cli.ListFeedbackCommand,
			"delete": cli.DeleteFeedbackCommand,
		})

	case "messages":
		runEntity(cfg, commandArgs, map[string]commandFunc{
			"list": cli.ListConversationsCommand,
			"send": cli.SendMessageCommand,
			"watch": func(client *api.Client, args []string) error {
				return cli.WatchMessagesCommand(client, cfg, args)
			},
		})

	case "experiences":
		if len(commandArgs) == 0 {
			fmt.Println("Error: experiences requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		var err error
		switch commandArgs[0] {
		case "list":
			err = cli.ListExperiencesCommand(cfg, commandArgs[1:])
		case "add":
			err = cli.AddExperienceCommand(cfg, commandArgs[1:])
		case "remove":
			err = cli.RemoveExperienceCommand(cfg, commandArgs[1:])
		default:
			fmt.Printf("Unknown experiences command: %s\n\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "config":
		if len(commandArgs) == 0 {
			fmt.Println("Error: config requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		var err error
		switch commandArgs[0] {
		case "show":
			err = cli.ShowConfigCommand(cfg, commandArgs[1:])
		case "set":
			err = cli.SetConfigCommand(cfg, commandArgs[1:])
		default:
			fmt.Printf("Unknown config command: %s\n\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

type commandFunc func(client *api.Client, args []string) error

func runEntity(cfg *config.Config, args []string, commands map[string]commandFunc) {
	if len(args) == 0 {
		fmt.Println("Error: a subcommand is required")
		printUsage()
		os.Exit(1)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Printf("Unknown subcommand: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}
	if err := cmd(newClient(cfg), args[1:]); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// newClient builds an authenticated client from the persisted session. A 401
// on any request clears the stored token so the next invocation prompts for
// login instead of failing the same way again.
func newClient(cfg *config.Config) *api.Client {
	userID, _ := uuid.Parse(cfg.UserID)
	session := api.NewSession(cfg.Token, userID, func() {
		cfg.Token = ""
		cfg.UserID = ""
		cfg.DisplayName = ""
		if err := config.Save(cfg); err != nil {
			log.Printf("Failed to clear session: %v", err)
		}
	})
	return api.NewClient(cfg.APIURL, session)
}

// runConsole starts the full-screen console. The messaging cache and local
// catalog are both best-effort: a failure to open either leaves its view
// degraded rather than aborting the program.
func runConsole(cfg *config.Config) error {
	client := newClient(cfg)

	var sync *messaging.Sync
	if cfg.Token != "" {
		svc := api.NewMessaging(client)
		if db, err := cache.Open(config.CachePath()); err == nil {
			defer func() { _ = db.Close() }()
			sync = messaging.New(svc, client.Session().UserID(), cache.NewRoster(db))
		} else {
			log.Printf("Cache unavailable: %v", err)
			sync = messaging.New(svc, client.Session().UserID(), nil)
		}
	}

	var catalog *store.Catalog
	if c, err := store.Open(config.CatalogDir(), cfg.CatalogQuotaBytes); err == nil {
		catalog = c
		defer func() { _ = catalog.Close() }()
	} else {
		log.Printf("Catalog unavailable: %v", err)
	}

	p := tea.NewProgram(tui.NewModel(client, cfg, sync, catalog), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func printUsage() {
	fmt.Printf(`tablevine v%s - Restaurant partner console

USAGE:
  tablevine [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit

COMMANDS:
  console                Start the full-screen console
  login                  Sign in and store the session
  logout                 Sign out and clear the session
  partners               Partner management commands
  tours                  Tour management commands
  events                 Event management commands
  reservations           Reservation commands
  requests               Partner request commands
  feedback               Feedback moderation commands
  messages               Messaging commands
  experiences            Local experiences catalog
  config                 Console settings

PARTNER COMMANDS:
  tablevine partners list    List partners
    --query <text>             Search by name, email, or city
    --status <status>          Filter by status (active, inactive)
    --sort <field[:desc]>      Sort by name, city, or created
    --page <n>                 Page number

  tablevine partners add     Add a partner
    --name <name>              Partner name (required)
    --email <email>            Email address
    --phone <phone>            Phone number
    --city <city>              City
    --cuisine <cuisine>        Cuisine

  tablevine partners update [flags] <id>  Update a partner
  tablevine partners delete <id>          Delete a partner

TOUR COMMANDS:
  tablevine tours list       List tours
    --query <text>             Search by title
    --status <status>          Filter by status (scheduled, cancelled)
    --date <range>             Date or range, e.g. 2026-06-01..2026-06-30
    --sort <field[:desc]>      Sort by title or date
    --page <n>                 Page number

  tablevine tours add        Add a tour
    --partner <id>             Partner ID (required)
    --title <title>            Title (required)
    --price <cents>            Price in cents
    --capacity <n>             Capacity
    --date <date>              Date (YYYY-MM-DD)
    --image <path>             Image file to upload

  tablevine tours cancel <id>   Cancel a tour
  tablevine tours delete <id>   Delete a tour

RESERVATION COMMANDS:
  tablevine reservations list          List reservations
  tablevine reservations confirm <id>  Confirm a reservation
  tablevine reservations cancel <id>   Cancel a reservation

REQUEST COMMANDS:
  tablevine requests list          List partner requests
  tablevine requests approve <id>  Approve a request
  tablevine requests reject <id>   Reject a request

MESSAGE COMMANDS:
  tablevine messages list            List conversations with unread counts
  tablevine messages send --to <id> <text>   Send a message
  tablevine messages watch           Poll for new messages until interrupted

EXPERIENCE COMMANDS:
  tablevine experiences list     List the local catalog
  tablevine experiences add      Save an experience
    --title <title>                Title (required)
    --notes <notes>                Notes
    --date <date>                  Date (YYYY-MM-DD)
    --image <path>                 Image file to embed
  tablevine experiences remove <id>  Remove an experience

CONFIG COMMANDS:
  tablevine config show          Show current settings
  tablevine config set           Update settings
    --api-url <url>                API server URL
    --roster-poll <seconds>        Roster poll interval
    --message-poll <seconds>       Message poll interval
    --catalog-quota <bytes>        Experiences catalog quota

EXAMPLES:
  # Sign in
  tablevine login

  # Start the console
  tablevine console

  # List scheduled tours in June, newest first
  tablevine tours list --status scheduled --date 2026-06-01..2026-06-30 --sort date:desc

  # Send a message
  tablevine messages send --to 6f1e... "See you Friday"

`, version)
}
