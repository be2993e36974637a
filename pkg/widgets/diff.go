package widgets

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DiffLineType classifies one line of a backend-computed diff.
type DiffLineType string

const (
	DiffAdded     DiffLineType = "added"
	DiffDeleted   DiffLineType = "deleted"
	DiffUnchanged DiffLineType = "unchanged"
)

// DiffLine is one line of the unified diff the backend computed for an edit.
// OldLine/NewLine are 1-based; zero means the line has no number on that side
// (added lines have no old number, deleted lines no new number).
type DiffLine struct {
	Type    DiffLineType
	Content string
	OldLine int
	NewLine int
}

// DiffResult is the precomputed diff payload fetched for one edit-file
// message: the classified lines plus the filename annotated with "+N -M"
// stats for the widget header.
type DiffResult struct {
	Lines             []DiffLine
	FilenameWithStats string
}

// UnifiedContent joins the diff lines into the plain text shown in the
// editor.
func (r DiffResult) UnifiedContent() string {
	parts := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		parts[i] = l.Content
	}
	return strings.Join(parts, "\n")
}

// gutterWidth returns the digit-column width for the dual line-number gutter:
// the maximum digit count across every old and new line number.
func (r DiffResult) gutterWidth() int {
	w := 1
	for _, l := range r.Lines {
		if d := digits(l.OldLine); d > w {
			w = d
		}
		if d := digits(l.NewLine); d > w {
			w = d
		}
	}
	return w
}

// GutterFor builds the dual-column gutter text for a zero-based rendered
// line: old number | new number, each right-aligned, blank on the side that
// does not apply to the line's type.
func (r DiffResult) GutterFor(line int) string {
	w := r.gutterWidth()
	if line < 0 || line >= len(r.Lines) {
		return fmt.Sprintf("%s %s", strings.Repeat(" ", w), strings.Repeat(" ", w))
	}
	l := r.Lines[line]

	old := ""
	if l.Type != DiffAdded && l.OldLine > 0 {
		old = fmt.Sprintf("%d", l.OldLine)
	}
	new_ := ""
	if l.Type != DiffDeleted && l.NewLine > 0 {
		new_ = fmt.Sprintf("%d", l.NewLine)
	}
	return fmt.Sprintf("%s %s", padLeft(old, w), padLeft(new_, w))
}

// MarkerFor returns the full-line highlight class for a rendered line.
func (r DiffResult) MarkerFor(line int) MarkerClass {
	if line < 0 || line >= len(r.Lines) {
		return MarkerUnchanged
	}
	switch r.Lines[line].Type {
	case DiffAdded:
		return MarkerAdded
	case DiffDeleted:
		return MarkerDeleted
	default:
		return MarkerUnchanged
	}
}

func digits(n int) int {
	if n <= 0 {
		return 0
	}
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}

func padLeft(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
