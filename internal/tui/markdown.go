package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Cache renderers by style + wrap width. WithAutoStyle probes the
	// terminal and can block, so the style is derived from the already
	// resolved background instead.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func markdownStyle() string {
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// renderMarkdown renders a task description for the detail panel. On any
// renderer failure the raw text is returned untouched.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
