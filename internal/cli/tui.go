package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"site-admin/internal/catalog"
	"site-admin/internal/logging"
	"site-admin/internal/repository/sqlite"
	"site-admin/internal/theme"
	"site-admin/internal/tui"
)

var (
	// tui command flags
	tuiPageSize  int
	tuiExportDir string
)

var tuiCmd = &cobra.Command{
	Use:   "tui [resource]",
	Short: "Launch interactive TUI",
	Long: `Launch the interactive console for browsing and editing site content.

The TUI provides:
  - Paginated table with server side search, facets and sorting
  - Search that fires 300ms after you stop typing, with history
  - Forms with inline validation for create and edit
  - Multi-row selection and itemized bulk delete
  - Saved views bound to number keys

Keyboard shortcuts:
  Table:
    ↑/k ↓/j     Move
    Enter       Show details
    / s S       Search, sort field, sort direction
    [ ] { }     Previous, next, first, last page
    f F         Filter panel, clear filters
    space       Toggle row, ctrl+a select page, x clear
    n e d       New, edit, delete (selection or row)
    tab         Switch resource
    V w 1-9     View picker, save view, apply view
    r           Reload

  Global:
    q       Quit
    ?       Toggle help

Examples:
  siteadmin tui
  siteadmin tui faqs
  siteadmin tui posts --page-size 25`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkAndRunSetup(cmd)
	},
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().IntVar(&tuiPageSize, "page-size", 0, "Rows per page (default from page_size)")
	tuiCmd.Flags().StringVar(&tuiExportDir, "export-dir", ".", "Directory for exports started from the TUI")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	resource := catalog.Posts
	if len(args) == 1 {
		if resource, err = catalog.Lookup(args[0]); err != nil {
			return err
		}
	}

	// the TUI owns the terminal, so logs go to a file
	logger, closer, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	a, err := newAppWith(cmd, cfg, logger)
	if err != nil {
		return err
	}

	db, err := a.openState()
	if err != nil {
		return err
	}
	defer db.Close()

	themeObj := theme.Resolve(cfg.ThemeName)

	pageSize := cfg.PageSize
	if tuiPageSize > 0 {
		pageSize = min(tuiPageSize, cfg.MaxPageSize)
	}

	model := tui.NewModel(tui.Options{
		Context:   cmd.Context(),
		Source:    a.svc,
		History:   sqlite.NewSearchHistoryRepository(db),
		Views:     sqlite.NewViewRepository(db),
		Resource:  resource,
		PageSize:  pageSize,
		Debounce:  cfg.SearchDebounce(),
		ExportDir: tuiExportDir,
		Theme:     themeObj,
		Logger:    logger,
	})

	logger.Info("starting tui", "resource", resource.Name, "api", cfg.APIURL)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
