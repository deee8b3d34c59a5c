package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"site-admin/internal/config"
	"site-admin/internal/display"
	"site-admin/internal/domain"
	"site-admin/internal/theme"
)

// SetupModel is the first-run theme picker.
type SetupModel struct {
	themes        []string
	selectedIndex int
	currentTheme  *theme.Theme
	save          func(name string) error
	err           error
	width         int
	height        int
	quitting      bool
	confirmed     bool
}

func NewSetupModel() SetupModel {
	themes := theme.Names()
	currentTheme := theme.Resolve(themes[0])

	return SetupModel{
		themes:       themes,
		currentTheme: currentTheme,
		save:         config.UpdateTheme,
		width:        100,
		height:       30,
	}
}

// Confirmed reports whether a theme was chosen and which one.
func (m SetupModel) Confirmed() (string, bool) {
	return m.themes[m.selectedIndex], m.confirmed
}

// Err is the error from saving the chosen theme, if any.
func (m SetupModel) Err() error {
	return m.err
}

func (m SetupModel) Init() tea.Cmd {
	return nil
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"))):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.selectedIndex > 0 {
				m.selectedIndex--
				m.currentTheme = theme.Resolve(m.themes[m.selectedIndex])
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.selectedIndex < len(m.themes)-1 {
				m.selectedIndex++
				m.currentTheme = theme.Resolve(m.themes[m.selectedIndex])
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			m.err = m.save(m.themes[m.selectedIndex])
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	if m.quitting {
		if m.confirmed {
			return ""
		}
		return "Setup cancelled.\n"
	}

	if m.width < 60 || m.height < 10 {
		return "Terminal too small. Please resize and try again.\n"
	}

	styles := theme.NewStyles(m.currentTheme)

	leftWidth := max(m.width/3, 30)
	rightWidth := max(m.width-leftWidth-4, 30)

	panel := lipgloss.NewStyle().
		Height(m.height - 4).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.currentTheme.BorderColor)).
		Padding(1)

	left := panel.Width(leftWidth).Render(m.renderThemeList(leftWidth))
	right := panel.Width(rightWidth).Render(m.renderPreview(styles, rightWidth))
	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	header := styles.TUITitle.Render("Site Admin Setup")
	subtitle := styles.TUISubtitle.Render("Select a theme to get started")
	help := styles.TUIHelp.Render("↑/k: up • ↓/j: down • enter: confirm • q: quit")

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", header, subtitle, main, help)
}

func (m SetupModel) renderThemeList(width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.currentTheme.Primary)).
		Render("Available Themes"))
	b.WriteString("\n\n")

	for i, name := range m.themes {
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.currentTheme.TextSecondary)).
			Width(width - 4)
		prefix := "  "
		if i == m.selectedIndex {
			prefix = "▶ "
			style = lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.currentTheme.SelectedFg)).
				Background(lipgloss.Color(m.currentTheme.SelectedBg)).
				Bold(true).
				Width(width - 4)
		}
		b.WriteString(style.Render(prefix + name))
		b.WriteString("\n")
	}

	return b.String()
}

func samplePosts(now time.Time) []domain.Post {
	return []domain.Post{
		{
			ID:        "p1",
			Title:     "Launching our new design system",
			Category:  "Engineering",
			Tags:      []string{"design", "frontend"},
			Published: true,
			Featured:  true,
			Timestamps: domain.Timestamps{
				CreatedAt: now.Add(-72 * time.Hour),
				UpdatedAt: now.Add(-2 * time.Hour),
			},
		},
		{
			ID:       "p2",
			Title:    "Quarterly client roundup",
			Category: "News",
			Tags:     []string{"clients"},
			Timestamps: domain.Timestamps{
				CreatedAt: now.Add(-24 * time.Hour),
				UpdatedAt: now.Add(-24 * time.Hour),
			},
		},
		{
			ID:        "p3",
			Title:     "How we ship static sites",
			Category:  "Engineering",
			Tags:      []string{"devops"},
			Published: true,
			Timestamps: domain.Timestamps{
				CreatedAt: now.Add(-240 * time.Hour),
				UpdatedAt: now.Add(-200 * time.Hour),
			},
		},
	}
}

func (m SetupModel) renderPreview(styles *theme.Styles, width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.currentTheme.Primary)).
		Render("Preview"))
	b.WriteString("\n\n")

	sep := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.currentTheme.Separator)).
		Render(strings.Repeat("─", max(width-4, 1)))

	for i, p := range samplePosts(time.Now()) {
		if i > 0 {
			b.WriteString(sep)
			b.WriteString("\n")
		}
		b.WriteString(m.renderPostPreview(styles, p))
	}

	b.WriteString("\n")
	b.WriteString(styles.Notification(false).Render("Post updated"))
	b.WriteString("  ")
	b.WriteString(styles.Notification(true).Render("Deleted 1 of 2 posts"))
	b.WriteString("\n")
	return b.String()
}

func (m SetupModel) renderPostPreview(styles *theme.Styles, p domain.Post) string {
	var b strings.Builder

	title := fmt.Sprintf("%s %s", display.PublishedIcon(p.Published), p.Title)
	if p.Featured {
		title += " " + styles.FeaturedText.Render(display.FeaturedIcon(true))
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.currentTheme.TextPrimary)).
		Bold(true).
		Render(title))
	b.WriteString("\n")

	b.WriteString("  ")
	b.WriteString(styles.PublishStyle(p.Published).Render(display.StatusLabel(p.Published)))
	b.WriteString(" | ")
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.currentTheme.Info)).
		Render("📁 " + p.Category))
	if len(p.Tags) > 0 {
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.currentTheme.TextMuted)).
			Render("🏷  " + display.JoinList(p.Tags)))
	}
	b.WriteString("\n")
	b.WriteString(styles.Stats.Render("  updated " + domain.RelativeTime(time.Since(p.UpdatedAt))))
	b.WriteString("\n\n")

	return b.String()
}
