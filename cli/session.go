// ABOUTME: Login and logout commands
// ABOUTME: Exchanges credentials for a bearer token and persists it in the config
package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/tablevine/tablevine/api"
	"github.com/tablevine/tablevine/config"
)

// LoginCommand prompts for credentials and stores the resulting session.
func LoginCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	server := fs.String("server", cfg.APIURL, "API server URL")
	_ = fs.Parse(args)

	fmt.Print("Email: ")
	var email string
	if _, err := fmt.Scanln(&email); err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(syscall.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println() // New line after hidden input
	password := string(passwordBytes)

	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	result, err := api.Login(context.Background(), *server, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg.APIURL = *server
	cfg.Token = result.Token
	cfg.UserID = result.UserID.String()
	cfg.DisplayName = result.DisplayName
	if cfg.DeviceID == "" {
		cfg.DeviceID = config.GenerateDeviceID()
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Printf("✓ Signed in as %s\n", email)
	return nil
}

// LogoutCommand invalidates the token server-side and clears the local
// session either way.
func LogoutCommand(cfg *config.Config, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	_ = fs.Parse(args)

	if err := client.Logout(context.Background()); err != nil {
		fmt.Printf("Warning: server logout failed: %v\n", err)
	}

	cfg.Token = ""
	cfg.UserID = ""
	cfg.DisplayName = ""
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	fmt.Println("✓ Signed out")
	return nil
}
