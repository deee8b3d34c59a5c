package display

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"site-admin/internal/domain"
)

var iconGlyphs = map[domain.Icon]string{
	domain.IconCode:      "</>",
	domain.IconDesign:    "✎",
	domain.IconMarketing: "📣",
	domain.IconAnalytics: "📊",
	domain.IconCloud:     "☁",
	domain.IconMobile:    "📱",
	domain.IconSecurity:  "🔒",
	domain.IconSupport:   "🛟",
	domain.IconGitHub:    "gh",
	domain.IconLinkedIn:  "in",
	domain.IconTwitter:   "𝕏",
	domain.IconInstagram: "ig",
	domain.IconFacebook:  "fb",
	domain.IconYouTube:   "▶",
	domain.IconWebsite:   "🌐",
	domain.IconFallback:  "•",
}

// IconGlyph never fails: unknown icons render as the fallback glyph.
func IconGlyph(icon domain.Icon) string {
	if g, ok := iconGlyphs[domain.ParseIcon(string(icon))]; ok {
		return g
	}
	return iconGlyphs[domain.IconFallback]
}

func IconLabel(icon domain.Icon) string {
	icon = domain.ParseIcon(string(icon))
	return fmt.Sprintf("%s %s", IconGlyph(icon), icon)
}

func PublishedIcon(published bool) string {
	if published {
		return "●"
	}
	return "○"
}

func FeaturedIcon(featured bool) string {
	if featured {
		return "★"
	}
	return ""
}

func StatusLabel(published bool) string {
	if published {
		return "Published"
	}
	return "Draft"
}

func YesNo(b bool) string {
	return domain.FormatBool(b)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

func FormatDateTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func FormatRating(n int) string {
	if n <= 0 {
		return "-"
	}
	n = min(n, 5)
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// Truncate shortens s to at most width runes, ending with an ellipsis.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}

func JoinList(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
