package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"site-admin/internal/domain"
)

func TestIconGlyphFallsBack(t *testing.T) {
	assert.Equal(t, "☁", IconGlyph(domain.IconCloud))
	assert.Equal(t, "•", IconGlyph(domain.Icon("FaRocket")))
	assert.Equal(t, "𝕏", IconGlyph(domain.Icon("X")))
	assert.Equal(t, "• generic", IconLabel(domain.Icon("")))
}

func TestEveryIconHasGlyph(t *testing.T) {
	for _, name := range domain.IconNames() {
		_, ok := iconGlyphs[domain.Icon(name)]
		assert.True(t, ok, "missing glyph for %s", name)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 8, "this is…"},
		{"multi\nline  text", 20, "multi line text"},
		{"héllo wörld", 5, "héll…"},
		{"abc", 1, "…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width), "Truncate(%q, %d)", tt.in, tt.width)
	}
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "-", FormatRating(0))
	assert.Equal(t, "★★★☆☆", FormatRating(3))
	assert.Equal(t, "★★★★★", FormatRating(9))
}
