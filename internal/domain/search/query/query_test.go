package query

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		normalized string
		terms      []string
		tooShort   bool
	}{
		{"empty", "", "", []string{}, true},
		{"whitespace only", "   \t\n ", "", []string{}, true},
		{"single char", " a ", "a", []string{"a"}, true},
		{"two chars", "Go", "go", []string{"go"}, false},
		{"mixed case and runs", "  Cache \t  Systems ", "cache \t  systems", []string{"cache", "systems"}, false},
		{"duplicates kept", "cache cache", "cache cache", []string{"cache", "cache"}, false},
		{"multibyte single rune", "ж", "ж", []string{"ж"}, true},
		{"multibyte two runes", "жж", "жж", []string{"жж"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := Parse(tc.raw)
			if q.Raw() != tc.raw {
				t.Errorf("Raw() = %q", q.Raw())
			}
			if q.Normalized() != tc.normalized {
				t.Errorf("Normalized() = %q, want %q", q.Normalized(), tc.normalized)
			}
			if len(q.Terms()) != len(tc.terms) || (len(tc.terms) > 0 && !reflect.DeepEqual(q.Terms(), tc.terms)) {
				t.Errorf("Terms() = %q, want %q", q.Terms(), tc.terms)
			}
			if q.TooShort() != tc.tooShort {
				t.Errorf("TooShort() = %v, want %v", q.TooShort(), tc.tooShort)
			}
		})
	}
}

func TestHighlightTerms_DropsSingleRuneTerms(t *testing.T) {
	q := Parse("a Cache b systems cache")
	want := []string{"cache", "systems", "cache"}
	if got := q.HighlightTerms(); !reflect.DeepEqual(got, want) {
		t.Errorf("HighlightTerms() = %q, want %q", got, want)
	}
}
