package theme

import (
	"errors"
	"fmt"
)

var ErrThemeNotFound = errors.New("theme not found")

// FallbackName is used when a configured theme is empty or unknown.
const FallbackName = "default"

// Registry resolves configured theme names to palettes and render styles.
type Registry struct {
	themes map[string]*Theme
	order  []string
}

func NewRegistry(themes ...*Theme) *Registry {
	r := &Registry{themes: make(map[string]*Theme, len(themes))}
	for _, t := range themes {
		if _, dup := r.themes[t.Name]; !dup {
			r.order = append(r.order, t.Name)
		}
		r.themes[t.Name] = t
	}
	return r
}

func (r *Registry) Lookup(name string) (*Theme, error) {
	t, ok := r.themes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	return t, nil
}

// Names lists themes in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Exists(name string) bool {
	_, ok := r.themes[name]
	return ok
}

// Resolve never fails: unknown names get the fallback palette.
func (r *Registry) Resolve(name string) *Theme {
	if t, ok := r.themes[name]; ok {
		return t
	}
	if t, ok := r.themes[FallbackName]; ok {
		return t
	}
	return DefaultTheme()
}

// Styles builds render styles, content-state colors included, for name.
func (r *Registry) Styles(name string) *Styles {
	return NewStyles(r.Resolve(name))
}

var builtin = NewRegistry(DefaultTheme(), DarkTheme(), LightTheme(), DraculaTheme(), NordTheme(), GruvboxTheme())

func Lookup(name string) (*Theme, error) { return builtin.Lookup(name) }

func Names() []string { return builtin.Names() }

func Exists(name string) bool { return builtin.Exists(name) }

func Resolve(name string) *Theme { return builtin.Resolve(name) }

func StylesFor(name string) *Styles { return builtin.Styles(name) }
