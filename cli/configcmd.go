// ABOUTME: Admin settings commands
// ABOUTME: Show and update console configuration values
package cli

import (
	"flag"
	"fmt"

	"github.com/tablevine/tablevine/config"
	"github.com/tablevine/tablevine/store"
)

// ShowConfigCommand prints the current settings, masking the credential.
func ShowConfigCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	_ = fs.Parse(args)

	token := "(not signed in)"
	if cfg.Token != "" {
		token = "(set)"
	}

	fmt.Printf("API URL:        %s\n", cfg.APIURL)
	fmt.Printf("Token:          %s\n", token)
	fmt.Printf("User ID:        %s\n", orDash(cfg.UserID))
	fmt.Printf("Device ID:      %s\n", orDash(cfg.DeviceID))
	fmt.Printf("Roster poll:    %ds\n", orDefault(cfg.RosterPollSeconds, 30))
	fmt.Printf("Message poll:   %ds\n", orDefault(cfg.MessagePollSeconds, 5))
	fmt.Printf("Catalog quota:  %d bytes\n", orDefault(cfg.CatalogQuotaBytes, store.DefaultQuota))
	fmt.Printf("Config file:    %s\n", config.Path())
	return nil
}

// SetConfigCommand updates settings from flags and saves the config.
func SetConfigCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("set", flag.ExitOnError)
	apiURL := fs.String("api-url", "", "API server URL")
	rosterPoll := fs.Int("roster-poll", 0, "Roster poll interval in seconds")
	messagePoll := fs.Int("message-poll", 0, "Message poll interval in seconds")
	quota := fs.Int("catalog-quota", 0, "Experiences catalog quota in bytes")
	_ = fs.Parse(args)

	changed := false
	if *apiURL != "" {
		cfg.APIURL = *apiURL
		changed = true
	}
	if *rosterPoll > 0 {
		cfg.RosterPollSeconds = *rosterPoll
		changed = true
	}
	if *messagePoll > 0 {
		cfg.MessagePollSeconds = *messagePoll
		changed = true
	}
	if *quota > 0 {
		cfg.CatalogQuotaBytes = *quota
		changed = true
	}

	if !changed {
		fmt.Println("Nothing to change.")
		return nil
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Println("✓ Configuration saved")
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orDefault(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}
