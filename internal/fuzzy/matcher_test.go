package fuzzy

import (
	"testing"
)

func TestScoreExact(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
	}{
		{"lowercase", "backend", "backend"},
		{"mixed case", "Backend", "backend"},
		{"with spaces", "backend api", "backend api"},
		{"padded", "  go ", "go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.pattern, tt.text); got != 100 {
				t.Errorf("Score(%q, %q) = %d, want 100", tt.pattern, tt.text, got)
			}
		})
	}
}

func TestScoreRanges(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		text     string
		minScore int
		maxScore int
	}{
		{"prefix", "back", "backend", 85, 99},
		{"inner substring", "end", "backend", 70, 84},
		{"after boundary", "api", "rest-api", 85, 99},
		{"tight subsequence", "bkend", "backend", 45, 69},
		{"scattered subsequence", "bd", "backend-dashboard", 0, 44},
		{"no match", "xyz", "backend", 0, 0},
		{"pattern longer than text", "backends", "back", 0, 0},
		{"empty pattern", "", "backend", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.pattern, tt.text)
			if got < tt.minScore || got > tt.maxScore {
				t.Errorf("Score(%q, %q) = %d, want %d..%d", tt.pattern, tt.text, got, tt.minScore, tt.maxScore)
			}
		})
	}
}

func TestSubstringBeatsSubsequence(t *testing.T) {
	sub := Score("design", "web design")
	seq := Score("dsgn", "design")
	if sub <= seq {
		t.Errorf("substring score %d should beat subsequence score %d", sub, seq)
	}
}

func TestMatchTextRequiresEveryTerm(t *testing.T) {
	text := "Scaling Go services, kubernetes terraform"

	if _, ok := MatchText("go kube", text, DefaultThreshold); !ok {
		t.Error("expected every term to match")
	}
	if _, ok := MatchText("go rust", text, DefaultThreshold); ok {
		t.Error("rust does not appear and must not match")
	}
	if score, ok := MatchText("   ", text, DefaultThreshold); !ok || score != 100 {
		t.Errorf("blank query should match everything, got %d %v", score, ok)
	}
	if _, ok := MatchText("terafrm", text, DefaultThreshold); !ok {
		t.Error("typo within a word should still match")
	}
}

func TestFilterKeepsOrder(t *testing.T) {
	items := []string{"Go tips", "Rust notes", "More Go", "Gopher art"}
	got := Filter("go", items, func(s string) string { return s }, DefaultThreshold)

	want := []string{"Go tips", "More Go", "Gopher art"}
	if len(got) != len(want) {
		t.Fatalf("Filter() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Filter()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if all := Filter("", items, func(s string) string { return s }, DefaultThreshold); len(all) != len(items) {
		t.Errorf("empty query should keep all items, got %d", len(all))
	}
}

func TestSuggest(t *testing.T) {
	got := Suggest("post", []string{"users", "posts", "projects", "post"}, 2)
	if len(got) != 2 {
		t.Fatalf("Suggest() returned %d results, want 2", len(got))
	}
	if got[0].Text != "post" || got[1].Text != "posts" {
		t.Errorf("Suggest() = %v, want post then posts", got)
	}
}
