package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdown renders tutor replies for the terminal. glamour.TermRenderer is
// not safe for concurrent use; the bubbletea loop is the only caller.
type markdown struct {
	renderer *glamour.TermRenderer
	dark     bool
	width    int
}

func (md *markdown) configure(dark bool, width int) {
	if md.renderer != nil && md.dark == dark && md.width == width {
		return
	}
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		md.renderer = nil
		return
	}
	md.renderer, md.dark, md.width = r, dark, width
}

// render falls back to the raw text if glamour is unavailable or fails.
func (md *markdown) render(content string) string {
	if md.renderer == nil {
		return content
	}
	out, err := md.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
