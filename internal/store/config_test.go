package store

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Missing(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Theme != ThemeSystem {
		t.Fatalf("default theme: got %q", cfg.Theme)
	}
	if cfg.TutorialCompleted {
		t.Fatalf("tutorial should start uncompleted")
	}
}

func TestLoadConfig_CorruptTreatedAsMissing(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Theme != ThemeSystem {
		t.Fatalf("corrupt config should fall back to defaults, got %+v", cfg)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := &Config{ServerURL: "http://example.test:8080", Theme: ThemeDark, TutorialCompleted: true}
	if err := SaveConfig(dir, in); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	out, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *out != *in {
		t.Fatalf("round trip mismatch: got %+v want %+v", out, in)
	}
}

func TestResolvedServerURL_Precedence(t *testing.T) {
	cfg := &Config{}
	if got := cfg.ResolvedServerURL(); got != DefaultServerURL {
		t.Fatalf("default: got %q", got)
	}
	cfg.ServerURL = "http://stored:8080"
	if got := cfg.ResolvedServerURL(); got != "http://stored:8080" {
		t.Fatalf("stored: got %q", got)
	}
	t.Setenv("TYLER_SERVER_URL", "http://env:8080")
	if got := cfg.ResolvedServerURL(); got != "http://env:8080" {
		t.Fatalf("env override: got %q", got)
	}
}

func TestParseTheme(t *testing.T) {
	for in, want := range map[string]Theme{
		"light":  ThemeLight,
		"DARK":   ThemeDark,
		"system": ThemeSystem,
		"":       ThemeSystem,
	} {
		got, ok := ParseTheme(in)
		if !ok || got != want {
			t.Fatalf("ParseTheme(%q) = %v,%v", in, got, ok)
		}
	}
	if _, ok := ParseTheme("sunset"); ok {
		t.Fatalf("unknown theme should not parse")
	}
}

func TestCookies_RoundTripAndExpiry(t *testing.T) {
	dir := t.TempDir()
	in := []*http.Cookie{
		{Name: "session", Value: "abc", Path: "/", HttpOnly: true},
		{Name: "stale", Value: "x", Expires: time.Now().Add(-time.Hour)},
	}
	if err := SaveCookies(dir, in); err != nil {
		t.Fatalf("SaveCookies: %v", err)
	}
	out := LoadCookies(dir)
	if len(out) != 1 {
		t.Fatalf("expected expired cookie dropped, got %d cookies", len(out))
	}
	if out[0].Name != "session" || out[0].Value != "abc" || !out[0].HttpOnly {
		t.Fatalf("unexpected cookie: %+v", out[0])
	}

	if err := ClearCookies(dir); err != nil {
		t.Fatalf("ClearCookies: %v", err)
	}
	if got := LoadCookies(dir); len(got) != 0 {
		t.Fatalf("cookies survived clear: %v", got)
	}
	// Clearing twice is fine.
	if err := ClearCookies(dir); err != nil {
		t.Fatalf("second ClearCookies: %v", err)
	}
}
