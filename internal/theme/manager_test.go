package theme

import (
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryKeepsRegistrationOrder(t *testing.T) {
	assert.Equal(t, []string{"default", "dark", "light", "dracula", "nord", "gruvbox"}, Names())

	names := Names()
	names[0] = "changed"
	assert.Equal(t, "default", Names()[0])
}

func TestLookupUnknownTheme(t *testing.T) {
	_, err := Lookup("solarized")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrThemeNotFound))
	assert.False(t, Exists("solarized"))
	assert.True(t, Exists("nord"))
}

func TestResolveFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "nord", Resolve("nord").Name)
	assert.Equal(t, FallbackName, Resolve("").Name)
	assert.Equal(t, FallbackName, Resolve("solarized").Name)

	empty := NewRegistry(NordTheme())
	assert.Equal(t, "default", empty.Resolve("missing").Name)
}

func TestStylesForCarriesContentStateColors(t *testing.T) {
	dracula := DraculaTheme()
	s := StylesFor("dracula")

	want := map[State]string{
		StatePublished: dracula.Published,
		StateDraft:     dracula.Draft,
		StateFeatured:  dracula.Featured,
		StateArchived:  dracula.Archived,
	}
	for _, st := range States {
		assert.Equal(t, lipgloss.Color(want[st]), s.StateStyle(st).GetForeground(), string(st))
	}

	fallback := StylesFor("solarized")
	assert.Equal(t, lipgloss.Color(DefaultTheme().Published), fallback.StateStyle(StatePublished).GetForeground())
}
