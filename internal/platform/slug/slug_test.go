package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Morning Sits":     "morning-sits",
		"  Évening / 2  ":  "evening-2",
		"":                 "default",
		"---":              "default",
		"already-a-slug":   "already-a-slug",
		"Work_Breaks 2026": "work-breaks-2026",
		"Café Zazen":       "cafe-zazen",
		"禅":                "default",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeCapsLength(t *testing.T) {
	t.Parallel()
	got := Make(strings.Repeat("a", 31) + " b" + strings.Repeat("c", 10))
	if len(got) > MaxLen || strings.HasSuffix(got, "-") {
		t.Fatalf("unexpected slug %q", got)
	}
	if got != strings.Repeat("a", 31) {
		t.Fatalf("expected trailing dash trimmed, got %q", got)
	}
}
