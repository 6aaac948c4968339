package transcript

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalize_StripsBracketedAnnotations(t *testing.T) {
	n := NewNormalizer(nil)

	cases := map[string]string{
		"Kevin[Dev]":          "Kevin",
		"Kevin (Backend)":     "Kevin",
		"Kevin [a[b]c]":       "Kevin",
		"Kevin   Jeong":       "Kevin Jeong",
		"  Jamie  ":           "Jamie",
		"Lee(PM) [guest]":     "Lee",
		"[host] Kim (mobile)": "Kim",
	}
	for raw, want := range cases {
		if got := n.Normalize(raw); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalize_UnmatchedOpenerKept(t *testing.T) {
	n := NewNormalizer(nil)
	if got := n.Normalize("Kevin [Dev"); got != "Kevin [Dev" {
		t.Fatalf("unmatched opener should stay intact, got %q", got)
	}
}

func TestNormalize_AliasLookupIsCaseSensitive(t *testing.T) {
	n := NewNormalizer(map[string]string{"kevin": "Kevin Jeong"})

	if got := n.Normalize("kevin"); got != "Kevin Jeong" {
		t.Fatalf("expected alias resolution, got %q", got)
	}
	if got := n.Normalize("Kevin"); got != "Kevin" {
		t.Fatalf("alias lookup must be case-sensitive, got %q", got)
	}
}

func TestNormalize_AliasAfterCleaning(t *testing.T) {
	n := NewNormalizer(map[string]string{"Kevin": "Kevin Jeong"})
	if got := n.Normalize("Kevin[Dev]"); got != "Kevin Jeong" {
		t.Fatalf("alias must apply to the cleaned label, got %q", got)
	}
}

func TestNormalize_EmptyFallsBackToUnknown(t *testing.T) {
	n := NewNormalizer(nil)
	for _, raw := range []string{"", "   ", "[Dev]", "(muted)"} {
		if got := n.Normalize(raw); got != UnknownSpeaker {
			t.Errorf("Normalize(%q) = %q, want %q", raw, got, UnknownSpeaker)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer(map[string]string{"kev": "Kevin Jeong"})
	inputs := []string{"Kevin[Dev]", "kev", "Kevin   Jeong", "", "Lee (PM)"}
	for _, raw := range inputs {
		once := n.Normalize(raw)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", raw, once, twice)
		}
	}
}

func TestLoadAliases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.json")
	if err := os.WriteFile(path, []byte(`{"kev": "Kevin Jeong"}`), 0o644); err != nil {
		t.Fatalf("write alias file: %v", err)
	}

	aliases, err := LoadAliases(path)
	if err != nil {
		t.Fatalf("LoadAliases failed: %v", err)
	}
	if aliases["kev"] != "Kevin Jeong" {
		t.Fatalf("unexpected aliases: %v", aliases)
	}
}

func TestLoadAliases_MissingFile(t *testing.T) {
	aliases, err := LoadAliases(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(aliases) != 0 {
		t.Fatalf("expected empty table, got %v", aliases)
	}
}

func TestLoadAliases_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
		t.Fatalf("write alias file: %v", err)
	}
	if _, err := LoadAliases(path); err == nil {
		t.Fatal("expected error for malformed alias file")
	}
}
