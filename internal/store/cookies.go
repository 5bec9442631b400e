package store

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// A browser keeps the session cookie for free; a CLI has to persist it so
// `tyler login` and later `tyler tasks list` share one session. Only the
// cookies for the configured server origin are stored.

const cookiesFileName = "cookies.json"

type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HTTPOnly bool      `json:"httpOnly,omitempty"`
}

// LoadCookies reads the persisted session cookies. Missing or corrupted
// files yield an empty set.
func LoadCookies(dir string) []*http.Cookie {
	b, err := os.ReadFile(filepath.Join(dir, cookiesFileName))
	if err != nil {
		return nil
	}
	var stored []storedCookie
	if err := json.Unmarshal(b, &stored); err != nil {
		return nil
	}
	now := time.Now()
	var out []*http.Cookie
	for _, c := range stored {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		out = append(out, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		})
	}
	return out
}

func SaveCookies(dir string, cookies []*http.Cookie) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
		})
	}
	b, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	// Session material: owner-only.
	return atomicWriteFile(dir, "cookies.json.*.tmp", filepath.Join(dir, cookiesFileName), b, 0o600)
}

// ClearCookies drops the persisted session (logout).
func ClearCookies(dir string) error {
	err := os.Remove(filepath.Join(dir, cookiesFileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
