package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Theme is the user's appearance preference; "system" defers to terminal
// background detection.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	case ThemeSystem, "":
		return ThemeSystem, true
	}
	return ThemeSystem, false
}

// Config is the client-local state that outlives a session. The server owns
// all task/profile data; only the theme preference and the tutorial flag live
// here.
type Config struct {
	ServerURL         string `json:"serverUrl,omitempty"`
	Theme             Theme  `json:"theme,omitempty"`
	TutorialCompleted bool   `json:"tutorialCompleted,omitempty"`
}

const DefaultServerURL = "http://localhost:8080"

// Dir resolves the state directory.
//
// Priority:
// 1) TYLER_DIR (test/advanced override; keeps unit tests out of ~/.tyler)
// 2) ~/.tyler
//
// A local .env is loaded best-effort first so TYLER_DIR/TYLER_SERVER_URL can
// be set per project without exporting them.
func Dir() (string, error) {
	_ = godotenv.Load()
	if v := strings.TrimSpace(os.Getenv("TYLER_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tyler"), nil
}

func configPath(dir string) string {
	return filepath.Join(dir, "config.json")
}

// LoadConfig reads config.json from dir. Missing or corrupted files yield a
// default config rather than an error; this state is best-effort by design.
func LoadConfig(dir string) (*Config, error) {
	b, err := os.ReadFile(configPath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return defaultConfig(), nil
	}
	if cfg.Theme == "" {
		cfg.Theme = ThemeSystem
	}
	return &cfg, nil
}

func defaultConfig() *Config {
	return &Config{Theme: ThemeSystem}
}

// ResolvedServerURL applies the TYLER_SERVER_URL override, then the stored
// value, then the default.
func (c *Config) ResolvedServerURL() string {
	if v := strings.TrimSpace(os.Getenv("TYLER_SERVER_URL")); v != "" {
		return v
	}
	if strings.TrimSpace(c.ServerURL) != "" {
		return c.ServerURL
	}
	return DefaultServerURL
}

func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.json.*.tmp", configPath(dir), b, 0o600)
}

// atomicWriteFile writes via a unique temp file + rename so concurrent CLI
// and TUI processes cannot corrupt each other's writes.
func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
