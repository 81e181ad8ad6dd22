package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tsijukebox/jukebox/internal/browser"
	"github.com/tsijukebox/jukebox/internal/spotify/auth"
	"github.com/tsijukebox/jukebox/internal/wizard"
)

// loginTimeout bounds how long login waits for the browser redirect.
const loginTimeout = 5 * time.Minute

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Spotify authentication",
	Long:  `Commands for signing the terminal in to Spotify through the exchange backend.`,
}

var authSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure Spotify app credentials",
	Long: `Store the Spotify client ID and secret and the exchange backend in the config file.

Runs an interactive form on a terminal; otherwise pass the values as flags.`,
	RunE: runAuthSetup,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with Spotify",
	Long: `Opens a browser at the authorization URL issued by the exchange backend and
waits for Spotify to redirect back to the local receiver.`,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored Spotify tokens",
	Long:  `Removes the terminal's tokens. Credentials are kept unless --all is given.`,
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE:  runAuthStatus,
}

var authTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a valid access token",
	Long:  `Prints an access token, refreshing it first when it is about to expire.`,
	RunE:  runAuthToken,
}

var (
	setupClientID     string
	setupClientSecret string
	setupExchangeURL  string
	setupAPIKey       string
	logoutAll         bool
	loginNoBrowser    bool
)

func init() {
	authSetupCmd.Flags().StringVar(&setupClientID, "client-id", "", "Spotify client ID")
	authSetupCmd.Flags().StringVar(&setupClientSecret, "client-secret", "", "Spotify client secret")
	authSetupCmd.Flags().StringVar(&setupExchangeURL, "exchange-url", "", "exchange backend URL")
	authSetupCmd.Flags().StringVar(&setupAPIKey, "api-key", "", "exchange backend API key")
	authLoginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "print the URL instead of opening a browser")
	authLogoutCmd.Flags().BoolVar(&logoutAll, "all", false, "also remove stored credentials")

	authCmd.AddCommand(authSetupCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authTokenCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSetup(cmd *cobra.Command, args []string) error {
	sc := cfg.Spotify
	flagsGiven := setupClientID != "" || setupClientSecret != "" || setupExchangeURL != "" || setupAPIKey != ""

	if flagsGiven {
		if setupClientID != "" {
			sc.ClientID = setupClientID
		}
		if setupClientSecret != "" {
			sc.ClientSecret = setupClientSecret
		}
		if setupExchangeURL != "" {
			sc.ExchangeURL = setupExchangeURL
		}
		if setupAPIKey != "" {
			sc.APIKey = setupAPIKey
		}
	} else if err := wizard.Setup(&sc); err != nil {
		if errors.Is(err, wizard.ErrNotInteractive) {
			return fmt.Errorf("%w; pass --client-id, --client-secret and --exchange-url", err)
		}
		return err
	}

	if err := sc.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	path := configPath()
	err := updateConfigFile(path, map[string]interface{}{
		"spotify.client_id":     sc.ClientID,
		"spotify.client_secret": sc.ClientSecret,
		"spotify.exchange_url":  sc.ExchangeURL,
		"spotify.api_key":       sc.APIKey,
	})
	if err != nil {
		return err
	}
	cfg.Spotify = sc

	return printStatus("configured", fmt.Sprintf("Saved Spotify settings to %s\nNext: run 'jukebox auth login'", path),
		map[string]interface{}{"path": path})
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), loginTimeout)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	receiver, err := auth.NewRedirectReceiver(cfg.Spotify.CallbackPort)
	if err != nil {
		return fmt.Errorf("failed to start redirect receiver: %w", err)
	}
	receiver.Start()
	defer func() { _ = receiver.Shutdown(context.Background()) }()
	if cfg.Spotify.Origin != receiver.Origin() {
		logger.Warn("spotify.origin does not point at the redirect receiver",
			"origin", cfg.Spotify.Origin, "receiver", receiver.Origin())
	}

	authURL, err := a.session.AuthURL(ctx)
	if err != nil {
		return err
	}

	if loginNoBrowser || browser.Open(authURL.URL) != nil {
		fmt.Printf("Open this URL in your browser:\n\n%s\n\n", authURL.URL)
	} else {
		fmt.Println("Opening browser for Spotify authentication...")
	}
	fmt.Println(subtleStyle.Render("Waiting for the redirect to " + a.session.RedirectURI()))

	result, err := receiver.Wait(ctx)
	if err != nil {
		return fmt.Errorf("authentication timed out: %w", err)
	}
	if result.Error != "" {
		return fmt.Errorf("authentication failed: %s", result.Error)
	}
	if authURL.State != "" && result.State != authURL.State {
		return errors.New("state mismatch: the redirect did not come from this login")
	}

	tokens, err := a.session.ExchangeCode(ctx, result.Code)
	if err != nil {
		return err
	}

	user := a.session.ValidateToken(ctx)
	if user == nil {
		return printStatus("authenticated", "Authentication successful. Tokens stored.",
			map[string]interface{}{"expires_at": tokens.ExpiresAt})
	}

	return printStatus("authenticated",
		fmt.Sprintf("Signed in as %s (%s)", titleStyle.Render(displayName(user.DisplayName, user.ID)), user.Product),
		map[string]interface{}{"user": user, "expires_at": tokens.ExpiresAt})
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if logoutAll {
		if err := a.store.Delete(ctx); err != nil {
			return err
		}
		return printStatus("logged_out", "Removed stored tokens and credentials.", nil)
	}

	if !a.session.IsAuthenticated() {
		return printStatus("not_authenticated", "Not authenticated with Spotify.", nil)
	}
	// Clearing notifies the store, which keeps the credentials only.
	a.session.ClearTokens()
	return printStatus("logged_out", "Logged out of Spotify.", nil)
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	creds := a.session.Credentials()
	if !a.session.IsAuthenticated() {
		if JSONOutput() {
			return printJSON(map[string]interface{}{
				"authenticated":   false,
				"has_credentials": creds.Complete(),
				"store":           storeLocation(a.store),
			})
		}
		fmt.Println("Not authenticated with Spotify.")
		fmt.Println(subtleStyle.Render("Session store: " + storeLocation(a.store)))
		if !creds.Complete() {
			fmt.Println("Run 'jukebox auth setup' and then 'jukebox auth login'.")
		} else {
			fmt.Println("Run 'jukebox auth login' to authenticate.")
		}
		return nil
	}

	// ValidateToken refreshes an expired token before asking for the profile.
	user := a.session.ValidateToken(ctx)
	tokens, _ := a.session.Tokens()

	if JSONOutput() {
		out := map[string]interface{}{
			"authenticated": user != nil,
			"expired":       a.session.IsTokenExpired(),
			"expires_at":    tokens.ExpiresAt,
		}
		if user != nil {
			out["user"] = user
		}
		return printJSON(out)
	}

	if user == nil {
		fmt.Println(warningStyle.Render("Stored tokens were rejected."))
		fmt.Println("Run 'jukebox auth login' to re-authenticate.")
		return nil
	}

	fmt.Printf("Authenticated as: %s\n", titleStyle.Render(displayName(user.DisplayName, user.ID)))
	if user.Email != "" {
		fmt.Printf("Email:            %s\n", user.Email)
	}
	fmt.Printf("Account type:     %s\n", user.Product)
	if !user.IsPremium() {
		fmt.Println(warningStyle.Render("Playback control requires Spotify Premium."))
	}
	fmt.Printf("Token expires:    %s (%s)\n", humanize.Time(tokens.ExpiresAt), tokens.ExpiresAt.Format(time.RFC3339))
	return nil
}

func runAuthToken(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	tok, err := a.session.TokenSource(ctx).Token()
	if err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]interface{}{
			"access_token": tok.AccessToken,
			"token_type":   tok.TokenType,
			"expires_at":   tok.Expiry,
		})
	}
	fmt.Println(tok.AccessToken)
	return nil
}

// storeLocation describes where the session is persisted.
func storeLocation(st auth.Store) string {
	fs, ok := st.(*auth.FileStore)
	if !ok {
		return fmt.Sprintf("sqlite (terminal %s)", cfg.Store.TerminalID)
	}
	if !fs.Exists() {
		return fs.Path() + " (not created yet)"
	}
	return fs.Path()
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
