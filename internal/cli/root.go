package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"site-admin/internal/config"
	"site-admin/internal/tui"
)

var (
	flagAPIURL   string
	flagToken    string
	flagLogLevel string
	flagEnvFile  string
)

var rootCmd = &cobra.Command{
	Use:   "siteadmin",
	Short: "Siteadmin - manage your site's content from the terminal",
	Long: `Siteadmin is an admin console for the site's content API.

It lists, searches, filters, creates, edits and deletes posts, categories,
tags, FAQs, team members, testimonials, clients, contacts, services,
projects, hero sections and users, either through an interactive TUI or
through scriptable commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnvFile(flagEnvFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", flagEnvFile, err)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		displayWelcome(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Content API base URL (overrides api_url)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Bearer token for the API (overrides api_token)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Environment file loaded before reading config")
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func displayWelcome(cmd *cobra.Command) {
	cfg, err := loadConfig()
	if err != nil {
		cfg = config.GetDefaultConfig()
	}
	styles := stylesFor(cfg.ThemeName)

	title := styles.Title.Render(`
		------------------------------------------------------

		              S I T E   A D M I N

		------------------------------------------------------
	`)
	subtitle := styles.Subtitle.Render("Your site's content, one keystroke away")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, subtitle)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "API: %s\n", cfg.APIURL)
	fmt.Fprintln(out, "Run 'siteadmin tui' to open the console or 'siteadmin --help' for commands.")
	fmt.Fprintln(out)
}

// checkAndRunSetup opens the theme picker when no theme has been chosen yet.
func checkAndRunSetup(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.ThemeName != "" {
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Welcome to Siteadmin! Let's set up your theme.")
	fmt.Fprintln(out)

	p := tea.NewProgram(tui.NewSetupModel(), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run setup: %w", err)
	}

	setup := final.(tui.SetupModel)
	if err := setup.Err(); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	if name, ok := setup.Confirmed(); ok {
		fmt.Fprintf(out, "✓ Theme configured: '%s'\n\n", name)
	}
	return nil
}
