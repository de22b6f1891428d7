// Command healthtrack is a terminal client for the HealthTrack backend:
// personal documents, medications, symptoms, readings, and an assistant
// query endpoint, with a built-in sandbox backend for offline use.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healthtrack/healthtrack/internal/config"
	"github.com/healthtrack/healthtrack/internal/platform/loader"
	"github.com/healthtrack/healthtrack/internal/platform/rest"
	"github.com/healthtrack/healthtrack/internal/platform/sandbox"
	"github.com/healthtrack/healthtrack/internal/platform/token"
)

const version = "0.1.0"

// expiryLeeway controls how close to expiry a stored token triggers the
// re-login hint.
const expiryLeeway = time.Minute

// app bundles the pieces every command needs.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	api    *rest.Client
	tokens token.Store
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(lvl)
	}

	tokens := token.NewFileStore(cfg.TokenFile)
	api := rest.New(cfg.APIBaseURL, tokens,
		rest.WithTimeout(cfg.HTTPTimeout),
		rest.WithLogger(logger),
	)

	return &app{cfg: cfg, log: logger, api: api, tokens: tokens}, nil
}

// warnIfExpiring prints a re-login hint when the stored token is about to
// expire. The request still goes out; the backend stays the authority.
func (a *app) warnIfExpiring(ctx context.Context) {
	tok, err := a.tokens.Token(ctx)
	if err != nil {
		return
	}
	if token.ExpiresSoon(tok, expiryLeeway) {
		fmt.Fprintln(os.Stderr, "Your session is about to expire. Run `healthtrack login` to refresh it.")
	}
}

// load applies the configured fallback policy: sample data on empty or
// failed fetches unless SAMPLE_FALLBACK is off.
func load[T any](ctx context.Context, a *app, fetch func(context.Context) ([]T, error), sample []T) (loader.Result[T], error) {
	if !a.cfg.SampleFallback {
		return loader.LoadStrict(ctx, fetch)
	}
	return loader.Load(ctx, a.log, fetch, sample)
}

// disclose tells the user when the listing below is sample data rather than
// their records, and why.
func disclose[T any](res loader.Result[T], resource string) {
	switch res.Kind {
	case loader.KindEmptyFallback:
		fmt.Printf("No %s yet; showing sample data.\n\n", resource)
	case loader.KindErrorFallback:
		fmt.Printf("Could not reach the backend (%v); showing sample data.\n\n", res.Err)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:           "healthtrack",
		Short:         "Personal health record client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		documentsCmd(),
		medicationsCmd(),
		symptomsCmd(),
		readingsCmd(),
		notificationsCmd(),
		askCmd(),
		profileCmd(),
		dashboardCmd(),
		sandboxCmd(),
		versionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain and store an access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			username, _ := cmd.Flags().GetString("username")

			var out struct {
				AccessToken string `json:"access_token"`
			}
			body := map[string]string{"username": username}
			if err := a.api.Post(cmd.Context(), "/auth/login", body, &out); err != nil {
				return fmt.Errorf("login: %w", err)
			}
			if out.AccessToken == "" {
				return fmt.Errorf("login: backend returned no token")
			}
			if err := a.tokens.Save(cmd.Context(), out.AccessToken); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			fmt.Println("Logged in.")
			return nil
		},
	}
	cmd.Flags().String("username", "demo", "Account username")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.tokens.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear token: %w", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func sandboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run the built-in fixture backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			secret, _ := cmd.Flags().GetString("secret")
			srv := sandbox.New(secret, a.log)
			return srv.Start(":" + a.cfg.SandboxPort)
		},
	}
	cmd.Flags().String("secret", "sandbox-dev-secret", "HS256 secret for minted tokens")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("healthtrack", version)
		},
	}
}
