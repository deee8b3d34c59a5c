package theme

import (
	"site-admin/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

type Styles struct {
	// cli
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Separator lipgloss.Style

	// tui
	TUITitle        lipgloss.Style
	TUISubtitle     lipgloss.Style
	TUIHelp         lipgloss.Style
	Tab             lipgloss.Style
	ActiveTab       lipgloss.Style
	DetailContainer lipgloss.Style
	DetailLabel     lipgloss.Style
	DetailValue     lipgloss.Style
	Dialog          lipgloss.Style
	SearchBox       lipgloss.Style
	SearchFocused   lipgloss.Style
	FacetActive     lipgloss.Style
	FacetInactive   lipgloss.Style
	FormLabel       lipgloss.Style
	FormFocused     lipgloss.Style
	FormError       lipgloss.Style
	FormHint        lipgloss.Style
	Marked          lipgloss.Style
	Skeleton        lipgloss.Style
	Stats           lipgloss.Style
	NotifySuccess   lipgloss.Style
	NotifyError     lipgloss.Style

	// content status
	PublishedText lipgloss.Style
	DraftText     lipgloss.Style
	FeaturedText  lipgloss.Style
	ArchivedText  lipgloss.Style
}

// creates all styles based on the given theme
func NewStyles(t *Theme) *Styles {
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderColor))

	return &Styles{
		// cli
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Secondary)).
			PaddingTop(1).
			PaddingBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.SubtitleText)).
			Italic(true),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.HeaderFg)).
			Background(lipgloss.Color(t.HeaderBg)).
			PaddingLeft(1).
			PaddingRight(1),

		Cell: lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1),

		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Separator)),

		// tui
		TUITitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.TextPrimary)).
			Background(lipgloss.Color(t.HeaderBg)).
			Padding(0, 1),

		TUISubtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextSecondary)),

		TUIHelp: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.HelpText)),

		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextMuted)).
			Padding(0, 1),

		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.SelectedFg)).
			Background(lipgloss.Color(t.SelectedBg)).
			Padding(0, 1),

		DetailContainer: box.Padding(1, 2),

		DetailLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),

		DetailValue: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextPrimary)),

		Dialog: box.
			BorderForeground(lipgloss.Color(t.Warning)).
			Padding(1, 3),

		SearchBox: box.
			BorderForeground(lipgloss.Color(t.Separator)).
			Padding(0, 1),

		SearchFocused: box.Padding(0, 1),

		FacetActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.SelectedFg)).
			Background(lipgloss.Color(t.Primary)).
			Padding(0, 1),

		FacetInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextSecondary)).
			Padding(0, 1),

		FormLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextSecondary)).
			Width(18),

		FormFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true).
			Width(18),

		FormError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)),

		FormHint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextMuted)).
			Italic(true),

		Marked: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Marked)).
			Bold(true),

		Skeleton: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Skeleton)).
			Faint(true),

		Stats: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextSecondary)),

		NotifySuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BgPrimary)).
			Background(lipgloss.Color(t.Success)).
			Padding(0, 1),

		NotifyError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextPrimary)).
			Background(lipgloss.Color(t.Error)).
			Padding(0, 1),

		// content status
		PublishedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Published)),

		DraftText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Draft)),

		FeaturedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Featured)).
			Bold(true),

		ArchivedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Archived)),
	}
}

// State is a content lifecycle state with its own color.
type State string

const (
	StatePublished State = "published"
	StateDraft     State = "draft"
	StateFeatured  State = "featured"
	StateArchived  State = "archived"
)

var States = []State{StatePublished, StateDraft, StateFeatured, StateArchived}

func (s *Styles) StateStyle(st State) lipgloss.Style {
	switch st {
	case StatePublished:
		return s.PublishedText
	case StateDraft:
		return s.DraftText
	case StateFeatured:
		return s.FeaturedText
	case StateArchived:
		return s.ArchivedText
	default:
		return s.DetailValue
	}
}

func (s *Styles) PublishStyle(published bool) lipgloss.Style {
	if published {
		return s.PublishedText
	}
	return s.DraftText
}

func (s *Styles) ContactStyle(status domain.ContactStatus) lipgloss.Style {
	switch status {
	case domain.ContactNew:
		return s.FeaturedText
	case domain.ContactReplied:
		return s.PublishedText
	case domain.ContactArchived:
		return s.ArchivedText
	default:
		return s.DetailValue
	}
}

// Notification picks the banner style for a transient message.
func (s *Styles) Notification(isError bool) lipgloss.Style {
	if isError {
		return s.NotifyError
	}
	return s.NotifySuccess
}
