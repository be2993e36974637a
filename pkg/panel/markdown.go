package panel

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders message markdown with Charm's Glamour. The "notty"
// style keeps the output plain; styling is applied later at draw time.
type GlamourRenderer struct {
	renderer *glamour.TermRenderer
}

// NewGlamourRenderer creates a renderer wrapping at the given width.
func NewGlamourRenderer(width int) (*GlamourRenderer, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &GlamourRenderer{renderer: renderer}, nil
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Render converts markdown to plain display text.
func (g *GlamourRenderer) Render(text string) (string, error) {
	rendered, err := g.renderer.Render(text)
	if err != nil {
		return "", err
	}
	clean := ansiRegex.ReplaceAllString(rendered, "")
	lines := strings.Split(strings.TrimRight(clean, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n"), nil
}
