package tui

import (
	"os"
	"strconv"
	"strings"

	"tyler-cli/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The board must remain readable on both light and dark terminal backgrounds,
// so colors are lipgloss.AdaptiveColor pairs and "faint" styling is only
// applied on dark backgrounds (faint text on light terminals often becomes
// illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	colorSelectedBg     lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedBorder lipgloss.TerminalColor = ac("232", "255")
	colorCardBorder     lipgloss.TerminalColor = ac("250", "243")

	colorAccent lipgloss.TerminalColor = ac("27", "62") // blue

	// Day-off columns get the purple treatment the board is known for.
	colorDayOffFg     lipgloss.TerminalColor = ac("91", "135")
	colorDayOffBorder lipgloss.TerminalColor = ac("141", "97")

	colorDoneFg lipgloss.TerminalColor = ac("28", "40") // green

	colorToastInfoFg    lipgloss.TerminalColor = ac("27", "75")
	colorToastSuccessFg lipgloss.TerminalColor = ac("28", "40")
	colorToastWarningFg lipgloss.TerminalColor = ac("130", "214")
	colorToastErrorFg   lipgloss.TerminalColor = ac("124", "203")

	colorBannerErrorFg lipgloss.TerminalColor = ac("124", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

// applyColorProfilePreference follows the terminal's capabilities but honors
// NO_COLOR. termenv.EnvColorProfile also respects CLICOLOR, which is useful
// for CLI output but can accidentally disable colors in a TUI.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures lipgloss's background detection from the
// stored preference.
//
// Priority:
// 1) explicit light/dark from config
// 2) COLORFGBG heuristic ("fg;bg", last segment is bg)
// 3) lipgloss's own probing
func applyThemePreference(theme store.Theme) {
	switch theme {
	case store.ThemeLight:
		lipgloss.SetHasDarkBackground(false)
		return
	case store.ThemeDark:
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		bgStr := strings.TrimSpace(parts[len(parts)-1])
		if bg, err := strconv.Atoi(bgStr); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
