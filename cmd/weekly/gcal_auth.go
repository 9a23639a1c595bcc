package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// newGcalAuthCmd authorises read-only Google Calendar access for OAuth
// desktop credentials and stores the token for later runs.
func newGcalAuthCmd() *cobra.Command {
	var tokenPath string

	cmd := &cobra.Command{
		Use:   "gcal-auth [credentials.json]",
		Short: "Authorise Google Calendar access and save a token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			credsPath := "google-credentials.json"
			if len(args) > 0 {
				credsPath = args[0]
			}

			data, err := os.ReadFile(credsPath)
			if err != nil {
				return fmt.Errorf("failed to read credentials file %q: %w", credsPath, err)
			}

			config, err := google.ConfigFromJSON(data, calendar.CalendarReadonlyScope)
			if err != nil {
				return fmt.Errorf("failed to parse credentials (expected an OAuth Desktop App file): %w", err)
			}

			out := cmd.OutOrStdout()
			authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
			fmt.Fprintln(out, "Step 1: open this URL in a browser and sign in:")
			fmt.Fprintln(out)
			fmt.Fprintln(out, authURL)
			fmt.Fprintln(out)
			fmt.Fprint(out, "Step 2: paste the authorization code here and press Enter: ")

			code, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && strings.TrimSpace(code) == "" {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}

			tok, err := config.Exchange(cmd.Context(), strings.TrimSpace(code))
			if err != nil {
				return fmt.Errorf("failed to exchange authorization code: %w", err)
			}

			if err := saveToken(tokenPath, tok); err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "Token saved to %s\n", tokenPath)
			fmt.Fprintln(out, "Set calendar.google.credentials_path and calendar.google.token_path to use it.")
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenPath, "token", "./data/gcal-token.json", "Where to write the OAuth token")
	return cmd
}

func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
