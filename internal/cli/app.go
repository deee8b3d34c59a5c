package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"site-admin/internal/api"
	"site-admin/internal/config"
	"site-admin/internal/logging"
	"site-admin/internal/repository/sqlite"
	"site-admin/internal/service"
	"site-admin/internal/theme"
)

// swapped out by tests
var loadConfig = config.LoadConfig

// app is what a command needs to talk to the content API.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	styles *theme.Styles
	svc    *service.Service
	out    io.Writer
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	return newAppWith(cmd, cfg, logger)
}

func newAppWith(cmd *cobra.Command, cfg *config.Config, logger *log.Logger) (*app, error) {
	client, err := api.NewClient(api.Config{
		BaseURL:           cfg.APIURL,
		Token:             cfg.APIToken,
		Timeout:           cfg.RequestTimeout(),
		RequestsPerSecond: cfg.RequestsPerSecond,
		CacheTTL:          cfg.CacheTTL(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		styles: stylesFor(cfg.ThemeName),
		svc:    service.New(client, cfg.BulkConcurrency, logger),
		out:    cmd.OutOrStdout(),
	}, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}
	if flagToken != "" {
		cfg.APIToken = flagToken
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
}

// openState opens the local database holding search history and saved views.
func (a *app) openState() (*sqlite.DB, error) {
	db, err := sqlite.NewDB(sqlite.Config{Path: a.cfg.DBPath})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func (a *app) success(format string, args ...any) {
	fmt.Fprintln(a.out, a.styles.Success.Render("✓ "+fmt.Sprintf(format, args...)))
}

func (a *app) failure(format string, args ...any) {
	fmt.Fprintln(a.out, a.styles.Error.Render("✗ "+fmt.Sprintf(format, args...)))
}

func (a *app) info(format string, args ...any) {
	fmt.Fprintln(a.out, a.styles.Info.Render(fmt.Sprintf(format, args...)))
}

func stylesFor(themeName string) *theme.Styles {
	return theme.StylesFor(themeName)
}
