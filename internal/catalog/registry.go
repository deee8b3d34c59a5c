package catalog

import (
	"fmt"
	"strings"

	"site-admin/internal/fuzzy"
)

var registry = []*Resource{
	Posts,
	Categories,
	Tags,
	FAQs,
	Team,
	Testimonials,
	Clients,
	Contacts,
	Services,
	Projects,
	Hero,
	Users,
}

// All returns every resource in menu order.
func All() []*Resource {
	out := make([]*Resource, len(registry))
	copy(out, registry)
	return out
}

func Names() []string {
	names := make([]string, len(registry))
	for i, r := range registry {
		names[i] = r.Name
	}
	return names
}

// Lookup resolves a resource by name, singular, plural or alias, ignoring case.
func Lookup(name string) (*Resource, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, r := range registry {
		if needle == r.Name || needle == strings.ToLower(r.Singular) || needle == strings.ToLower(r.Plural) {
			return r, nil
		}
		for _, a := range r.Aliases {
			if needle == a {
				return r, nil
			}
		}
	}
	if s := fuzzy.Suggest(needle, Names(), 1); len(s) > 0 {
		return nil, fmt.Errorf("unknown resource %q, did you mean %q?", name, s[0].Text)
	}
	return nil, fmt.Errorf("unknown resource %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Index returns the position of r in menu order, or -1.
func Index(r *Resource) int {
	for i, x := range registry {
		if x == r {
			return i
		}
	}
	return -1
}
