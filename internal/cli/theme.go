package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"site-admin/internal/config"
	"site-admin/internal/theme"
	"site-admin/internal/tui"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage application theme",
	Long: `Manage application theme settings.

Run without arguments to launch the interactive theme selector TUI.
Use subcommands for direct theme management.

Examples:
  siteadmin theme              # Launch interactive TUI
  siteadmin theme set dracula  # Set theme directly
  siteadmin theme list         # List available themes
  siteadmin theme show         # Show current theme`,
	RunE: runThemeTUI,
}

var themeSetCmd = &cobra.Command{
	Use:   "set [theme-name]",
	Short: "Set application theme",
	Long: `Set the application theme.

Available themes:
  - default
  - dark
  - light
  - dracula
  - nord
  - gruvbox

Examples:
  siteadmin theme set dracula
  siteadmin theme set nord`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeSet,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	Long:  `List all available themes.`,
	RunE:  runThemeList,
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current theme",
	Long:  `Display the currently selected theme, its color palette and how content states look.`,
	RunE:  runThemeShow,
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeSetCmd)
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeShowCmd)
}

// launches theme selector
func runThemeTUI(cmd *cobra.Command, args []string) error {
	p := tea.NewProgram(tui.NewSetupModel(), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run theme TUI: %w", err)
	}

	setup := final.(tui.SetupModel)
	if err := setup.Err(); err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}
	if name, ok := setup.Confirmed(); ok {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintf(out, "✓ Theme set to '%s'\n", name)
		fmt.Fprintln(out)
	}

	return nil
}

// sets the theme directly
func runThemeSet(cmd *cobra.Command, args []string) error {
	themeName := args[0]

	if !theme.Exists(themeName) {
		return fmt.Errorf("theme '%s' not found. Run 'siteadmin theme list' to see available themes", themeName)
	}

	if err := config.UpdateTheme(themeName); err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Theme set to '%s'\n", themeName)
	return nil
}

func currentThemeName() string {
	cfg, err := loadConfig()
	if err != nil || cfg.ThemeName == "" {
		return "default"
	}
	return cfg.ThemeName
}

// lists all available themes
func runThemeList(cmd *cobra.Command, args []string) error {
	themeName := currentThemeName()
	styles := stylesFor(themeName)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Header.Render(" Available Themes "))
	fmt.Fprintln(out)

	for _, name := range theme.Names() {
		prefix := "  "
		if name == themeName {
			prefix = "▶ "
			name = styles.Success.Render(name + " (current)")
		}
		fmt.Fprintf(out, "%s%s\n", prefix, name)
	}

	fmt.Fprintln(out)
	return nil
}

// displays current theme details
func runThemeShow(cmd *cobra.Command, args []string) error {
	themeName := currentThemeName()
	themeObj, err := theme.Lookup(themeName)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}

	styles := theme.NewStyles(themeObj)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Header.Render(fmt.Sprintf(" Current Theme: %s ", themeName)))
	fmt.Fprintln(out)

	fmt.Fprintln(out, styles.Info.Render("Color Palette:"))
	fmt.Fprintln(out)

	colors := []struct {
		name  string
		color string
	}{
		{"Primary", themeObj.Primary},
		{"Success", themeObj.Success},
		{"Error", themeObj.Error},
		{"Warning", themeObj.Warning},
		{"Info", themeObj.Info},
		{"Text", themeObj.TextPrimary},
		{"Border", themeObj.BorderColor},
		{"Marked", themeObj.Marked},
	}

	for _, c := range colors {
		sample := lipgloss.NewStyle().
			Background(lipgloss.Color(c.color)).
			Foreground(lipgloss.Color(c.color)).
			Render("  ████  ")
		fmt.Fprintf(out, "  %-12s %s %s\n", c.name+":", sample, c.color)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Info.Render("Content States:"))
	fmt.Fprintln(out)
	fmt.Fprint(out, " ")
	for _, st := range theme.States {
		fmt.Fprintf(out, " %s ", styles.StateStyle(st).Render(string(st)))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out)
	return nil
}
