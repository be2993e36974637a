package widgets

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/tidelight/aipane/pkg/logger"
)

// MarkerClass classifies a full-line highlight in the editor.
type MarkerClass int

const (
	MarkerNone MarkerClass = iota
	MarkerAdded
	MarkerDeleted
	MarkerUnchanged
)

var (
	addedLineStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#1e3a1e"))
	deletedLineStyle = lipgloss.NewStyle().Background(lipgloss.Color("#3a1e1e"))
	gutterStyle      = lipgloss.NewStyle().Faint(true)
)

// EditorBuffer is the embedded code editor component a widget owns: content
// get/set, a read-only toggle, a syntax mode, full-line highlight markers and
// a custom gutter text provider.
//
// Readiness is explicit: consumers that need the editor (for example to apply
// a diff overlay) register OnReady callbacks instead of polling.
type EditorBuffer struct {
	content  string
	language string
	readOnly bool
	markers  map[int]MarkerClass
	gutter   func(line int) string
	ready    bool
	onReady  []func()
}

// NewEditorBuffer creates an editor buffer with the given initial content and
// syntax language. It starts not-ready; the owner calls MarkReady once the
// buffer is attached to a rendering surface.
func NewEditorBuffer(content, language string) *EditorBuffer {
	return &EditorBuffer{
		content:  content,
		language: language,
		markers:  make(map[int]MarkerClass),
	}
}

// MarkReady flags the editor as attached and runs any queued callbacks.
func (e *EditorBuffer) MarkReady() {
	if e.ready {
		return
	}
	e.ready = true
	for _, f := range e.onReady {
		f()
	}
	e.onReady = nil
}

// Ready reports whether the editor is attached and usable.
func (e *EditorBuffer) Ready() bool { return e.ready }

// OnReady runs f immediately if the editor is ready, otherwise queues it.
func (e *EditorBuffer) OnReady(f func()) {
	if e.ready {
		f()
		return
	}
	e.onReady = append(e.onReady, f)
}

// SetContent replaces the buffer content.
func (e *EditorBuffer) SetContent(content string) { e.content = content }

// Content returns the current buffer content.
func (e *EditorBuffer) Content() string { return e.content }

// SetLanguage sets the syntax mode used for highlighting.
func (e *EditorBuffer) SetLanguage(language string) { e.language = language }

// Language returns the syntax mode.
func (e *EditorBuffer) Language() string { return e.language }

// SetReadOnly toggles editability.
func (e *EditorBuffer) SetReadOnly(ro bool) { e.readOnly = ro }

// ReadOnly reports whether the buffer rejects edits.
func (e *EditorBuffer) ReadOnly() bool { return e.readOnly }

// SetLineMarker applies a full-line highlight class to a zero-based line.
func (e *EditorBuffer) SetLineMarker(line int, class MarkerClass) {
	e.markers[line] = class
}

// Marker returns the highlight class for a line.
func (e *EditorBuffer) Marker(line int) MarkerClass { return e.markers[line] }

// ClearMarkers removes all full-line highlights.
func (e *EditorBuffer) ClearMarkers() { e.markers = make(map[int]MarkerClass) }

// SetGutterProvider installs a custom gutter text source. A nil provider
// restores the default (no gutter).
func (e *EditorBuffer) SetGutterProvider(f func(line int) string) { e.gutter = f }

// GutterText returns the gutter column for a zero-based line.
func (e *EditorBuffer) GutterText(line int) string {
	if e.gutter == nil {
		return ""
	}
	return e.gutter(line)
}

// Lines returns the content split into lines.
func (e *EditorBuffer) Lines() []string {
	if e.content == "" {
		return []string{""}
	}
	return strings.Split(e.content, "\n")
}

// LineCount returns the number of lines in the buffer.
func (e *EditorBuffer) LineCount() int { return len(e.Lines()) }

// Render produces the styled editor lines: gutter, syntax highlighting and
// full-line markers.
func (e *EditorBuffer) Render(width int) []string {
	lines := e.highlightedLines()

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if g := e.GutterText(i); g != "" {
			line = gutterStyle.Render(g) + " " + line
		}
		switch e.markers[i] {
		case MarkerAdded:
			line = addedLineStyle.Render(line)
		case MarkerDeleted:
			line = deletedLineStyle.Render(line)
		}
		out = append(out, line)
	}
	return out
}

// highlightedLines tokenizes the content with chroma. On any failure it falls
// back to the plain text.
func (e *EditorBuffer) highlightedLines() []string {
	plain := e.Lines()
	if e.language == "" {
		return plain
	}

	lexer := lexers.Get(e.language)
	if lexer == nil {
		return plain
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, e.content)
	if err != nil {
		logger.Debug("tokenize failed for language %s: %v", e.language, err)
		return plain
	}

	var sb strings.Builder
	if err := formatter.Format(&sb, style, iterator); err != nil {
		logger.Debug("highlight failed for language %s: %v", e.language, err)
		return plain
	}

	highlighted := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(highlighted) != len(plain) {
		// Highlighting changed the line structure; plain text is safer.
		return plain
	}
	return highlighted
}
