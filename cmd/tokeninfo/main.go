package main

import (
	"context"
	"encoding/json"
	"os"
	"runtime/debug"

	"github.com/pterm/pterm"

	"github.com/rgjamkhedkar/passport-token-google/internal/config"
	"github.com/rgjamkhedkar/passport-token-google/internal/strategy/google"
	"github.com/spf13/cobra"
)

func main() {
	Execute()
}

var (
	accessToken string
	clientID    string
	showRaw     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tokeninfo",
	Short: "Inspect a Google access token",
	Long: `Tokeninfo is a CLI tool that verifies a Google OAuth 2.0 access token
against the token info endpoint and prints the normalized profile.`,
	Run: runInspect,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Place version check in PreRun to ensure flags are parsed first
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&accessToken, "token", "", "Access token to inspect")
	rootCmd.PersistentFlags().StringVar(&clientID, "client-id", "", "OAuth client ID (defaults to TOKEN_GATEWAY_OAUTH_CLIENT_ID)")
	rootCmd.PersistentFlags().BoolVar(&showRaw, "raw", false, "Print the raw claims as JSON")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")
}

// runInspect fetches and renders the profile behind the supplied token
func runInspect(cmd *cobra.Command, args []string) {
	defer func() {
		if r := recover(); r != nil {
			pterm.Error.Printf("\nCaught panic: %v\n", r)
			pterm.Error.Printf("%s\n", debug.Stack())
			os.Exit(2)
		}
	}()

	if accessToken == "" {
		pterm.Error.Println("Access token is required, you must supply it with --token")
		os.Exit(1)
	}

	if clientID == "" {
		clientID = os.Getenv("TOKEN_GATEWAY_OAUTH_CLIENT_ID")
	}
	if clientID == "" {
		pterm.Error.Println("Client ID is required, you must supply it with --client-id or TOKEN_GATEWAY_OAUTH_CLIENT_ID")
		os.Exit(1)
	}

	s, err := google.New(google.Options{ClientID: clientID}, passthroughVerify)
	if err != nil {
		pterm.Error.Printf("Error building strategy: %v\n", err)
		os.Exit(1)
	}

	profile, err := s.UserProfile(cmd.Context(), accessToken)
	if err != nil {
		pterm.Error.Printf("Error fetching token info: %v\n", err)
		os.Exit(1)
	}

	renderProfile(profile)
}

func passthroughVerify(ctx context.Context, accessToken, refreshToken string, profile *google.Profile) (any, any, error) {
	return profile, nil, nil
}

func renderProfile(profile *google.Profile) {
	var email string
	if len(profile.Emails) > 0 {
		email = profile.Emails[0].Value
	}

	data := pterm.TableData{
		{"Field", "Value"},
		{"Provider", profile.Provider},
		{"ID", profile.ID},
		{"Display Name", profile.DisplayName},
		{"Given Name", profile.Name.GivenName},
		{"Family Name", profile.Name.FamilyName},
		{"Email", email},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Printf("Error rendering table: %v\n", err)
	}

	if showRaw {
		raw, err := json.MarshalIndent(profile.JSON, "", "  ")
		if err != nil {
			pterm.Error.Printf("Error rendering raw claims: %v\n", err)
			return
		}
		pterm.Println(string(raw))
	}
}
