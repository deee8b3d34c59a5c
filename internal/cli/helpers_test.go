package cli

import (
	"strings"
	"testing"

	"site-admin/internal/catalog"
	"site-admin/internal/domain"
)

func TestParseAssignments(t *testing.T) {
	values, err := parseAssignments(catalog.Tags.Schema, []string{"name=Go Lang", "slug=go-lang=x"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if values["name"] != "Go Lang" {
		t.Errorf("expected name 'Go Lang', got %q", values["name"])
	}
	if values["slug"] != "go-lang=x" {
		t.Errorf("expected value after the first '=', got %q", values["slug"])
	}
}

func TestParseAssignments_Errors(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
	}{
		{"missing equals", []string{"name"}},
		{"unknown field", []string{"colour=red"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseAssignments(catalog.Tags.Schema, tt.pairs); err == nil {
				t.Errorf("expected error for %v", tt.pairs)
			}
		})
	}
}

func TestMaskSecret(t *testing.T) {
	tests := map[string]string{
		"abc":              "****",
		"supersecret-1234": "****1234",
	}
	for in, want := range tests {
		if got := maskSecret(in); got != want {
			t.Errorf("maskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderBar(t *testing.T) {
	if got := renderBar(3, 5, "#"); got != "[###··]" {
		t.Errorf("expected [###··], got %s", got)
	}
	if got := renderBar(9, 4, "#"); got != "[####]" {
		t.Errorf("expected overflow clamped, got %s", got)
	}
	if got := renderBar(-2, 3, "#"); got != "[···]" {
		t.Errorf("expected negative clamped, got %s", got)
	}
}

func TestTopCategories(t *testing.T) {
	rows := []domain.Entity{
		domain.Category{ID: "1", Name: "Design", PostCount: 2},
		domain.Category{ID: "2", Name: "Engineering", PostCount: 7},
		domain.Category{ID: "3", Name: "Culture", PostCount: 2},
	}

	top := topCategories(rows, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(top))
	}
	if top[0].Name != "Engineering" {
		t.Errorf("expected Engineering first, got %s", top[0].Name)
	}
	if top[1].Name != "Culture" {
		t.Errorf("expected ties broken by name, got %s", top[1].Name)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("expected 8 characters, got %s", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("expected short ids unchanged, got %s", got)
	}
}

func TestBuildListState_ViewThenFlags(t *testing.T) {
	published := false
	view := domain.NewSavedView(catalog.Posts.Name, "Drafts")
	view.Filter.Published = &published
	view.Filter.Query = "launch"

	s, err := buildListState(catalog.Posts, listRequest{limit: 10, search: "hiring", view: view, page: 3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.Filter.Published == nil || *s.Filter.Published {
		t.Errorf("expected published=false from the view")
	}
	if s.Filter.Query != "hiring" {
		t.Errorf("expected flag search to win, got %q", s.Filter.Query)
	}
	if s.PageIndex != 2 {
		t.Errorf("expected page index 2, got %d", s.PageIndex)
	}
	if !strings.Contains(s.PageLabel(), "Page 3") {
		t.Errorf("unexpected page label %s", s.PageLabel())
	}
}
