package catalog_test

import (
	"testing"

	"github.com/wortquiz/progression/internal/catalog"
)

var resolverKeys = []string{
	"A1_animals",
	"A1_colors",
	"A1_family",
	"A2_weather",
	"B1_work_jobs",
}

// TestResolveExact tests exact and case-insensitive key matching
func TestResolveExact(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"A1_colors", "A1_colors"},
		{"a1_colors", "A1_colors"},
		{"A1_COLORS", "A1_colors"},
		{"b1_work_jobs", "B1_work_jobs"},
	}

	for _, tt := range tests {
		got, ok := catalog.Resolve(tt.raw, resolverKeys, "A1")
		if !ok {
			t.Errorf("Resolve(%q) not found, want %q", tt.raw, tt.want)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

// TestResolveSuffix tests bare topic names resolving via level-prefixed keys
func TestResolveSuffix(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"colors", "A1_colors"},
		{"Colors", "A1_colors"},
		{"weather", "A2_weather"},
		{"work_jobs", "B1_work_jobs"},
		{"family", "A1_family"},
	}

	for _, tt := range tests {
		got, ok := catalog.Resolve(tt.raw, resolverKeys, "A1")
		if !ok {
			t.Errorf("Resolve(%q) not found, want %q", tt.raw, tt.want)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

// TestResolveSuffixOrder verifies the first suffix match in key order wins
func TestResolveSuffixOrder(t *testing.T) {
	keys := []string{"A1_colors", "A2_colors"}
	got, ok := catalog.Resolve("colors", keys, "A1")
	if !ok || got != "A1_colors" {
		t.Errorf("Resolve(colors) = %q, %v, want A1_colors", got, ok)
	}
}

// TestResolveNotFound tests the unresolvable cases
func TestResolveNotFound(t *testing.T) {
	for _, raw := range []string{"", "   ", "plumbing", "colours"} {
		if got, ok := catalog.Resolve(raw, resolverKeys, "A1"); ok {
			t.Errorf("Resolve(%q) = %q, want not found", raw, got)
		}
	}
}

// TestResolveTrimsWhitespace tests surrounding whitespace is ignored
func TestResolveTrimsWhitespace(t *testing.T) {
	got, ok := catalog.Resolve("  colors  ", resolverKeys, "A1")
	if !ok || got != "A1_colors" {
		t.Errorf("Resolve with whitespace = %q, %v, want A1_colors", got, ok)
	}
}
