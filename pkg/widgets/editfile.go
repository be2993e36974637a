package widgets

import "strings"

// EditFileHandler receives the user's decision on a proposed file edit.
type EditFileHandler interface {
	OnAccept(messageID, content string)
	OnCancel(messageID string)
}

// EditFileWidget presents a proposed file edit: streamed content in an editor
// buffer, then — once the stream completes uncancelled — the backend's
// precomputed diff as unified text with full-line highlights and a dual
// old|new line-number gutter.
type EditFileWidget struct {
	messageID     string
	requestID     string
	explanation   string
	filename      string
	headerStats   string
	editor        *EditorBuffer
	cancelled     bool
	buttonsHidden bool
	resolved      bool
	diffApplied   bool
	handler       EditFileHandler
}

// NewEditFileWidget creates an edit-file widget. A cancelled widget (restored
// from history, or built from CANCELLED:-prefixed content) is read-only with
// no controls and never receives diff highlighting.
func NewEditFileWidget(messageID, filename, content, explanation, requestID string, editable bool, handler EditFileHandler, cancelled bool) *EditFileWidget {
	w := &EditFileWidget{
		messageID:   messageID,
		requestID:   requestID,
		explanation: explanation,
		filename:    filename,
		editor:      NewEditorBuffer(content, LanguageFromFilename(filename)),
		cancelled:   cancelled,
		handler:     handler,
	}
	if !editable || cancelled {
		w.buttonsHidden = true
		w.resolved = true
		w.editor.SetReadOnly(true)
	}
	w.editor.MarkReady()
	return w
}

func (w *EditFileWidget) MessageID() string     { return w.messageID }
func (w *EditFileWidget) RequestID() string     { return w.requestID }
func (w *EditFileWidget) Resolved() bool        { return w.resolved }
func (w *EditFileWidget) ButtonsHidden() bool   { return w.buttonsHidden }
func (w *EditFileWidget) Editor() *EditorBuffer { return w.editor }

// Filename returns the target file name.
func (w *EditFileWidget) Filename() string { return w.filename }

// Cancelled reports whether the edit was cancelled mid-stream.
func (w *EditFileWidget) Cancelled() bool { return w.cancelled }

// DiffApplied reports whether the diff overlay has been painted.
func (w *EditFileWidget) DiffApplied() bool { return w.diffApplied }

// Content returns the editor content.
func (w *EditFileWidget) Content() string { return w.editor.Content() }

// SetContent replaces the editor content and re-tokenizes, discarding any
// diff overlay.
func (w *EditFileWidget) SetContent(content string) {
	w.editor.SetContent(content)
	w.editor.ClearMarkers()
	w.editor.SetGutterProvider(nil)
	w.diffApplied = false
}

// AppendStreamingContent replaces the display with the accumulated stream so
// far. No diff recompute happens during streaming.
func (w *EditFileWidget) AppendStreamingContent(content string) {
	w.editor.SetContent(content)
}

// MarkCancelled freezes the widget with its current partial content. The
// content is a first-class final result, not an error state.
func (w *EditFileWidget) MarkCancelled() {
	w.cancelled = true
	w.HideButtons()
}

// ApplyDiffHighlighting repaints the editor with the backend-supplied unified
// diff: one full-line marker per line and a synthetic dual-column gutter.
// Deferred until the editor reports ready.
func (w *EditFileWidget) ApplyDiffHighlighting(result DiffResult) {
	w.editor.OnReady(func() {
		w.editor.ClearMarkers()
		w.editor.SetContent(result.UnifiedContent())
		for i := range result.Lines {
			w.editor.SetLineMarker(i, result.MarkerFor(i))
		}
		w.editor.SetGutterProvider(result.GutterFor)
		if result.FilenameWithStats != "" {
			w.setHeaderStats(result.FilenameWithStats)
		}
		w.diffApplied = true
	})
}

// setHeaderStats splits a "name +N -M" annotated filename into the clean name
// and the stats shown on the right of the header.
func (w *EditFileWidget) setHeaderStats(annotated string) {
	name, stats, found := strings.Cut(annotated, " +")
	if !found {
		w.filename = strings.TrimSpace(annotated)
		return
	}
	w.filename = strings.TrimSpace(name)
	w.headerStats = "+" + strings.TrimSpace(stats)
}

// HeaderStats returns the "+N -M" annotation, if any.
func (w *EditFileWidget) HeaderStats() string { return w.headerStats }

// Accept resolves the widget and hands the (possibly user-edited) content to
// the executor. Only the first activation reaches the handler.
func (w *EditFileWidget) Accept() {
	if w.buttonsHidden {
		return
	}
	w.resolve()
	w.handler.OnAccept(w.messageID, w.Content())
}

// Cancel resolves the widget and notifies the canceller.
func (w *EditFileWidget) Cancel() {
	if w.buttonsHidden {
		return
	}
	w.resolve()
	w.handler.OnCancel(w.messageID)
}

// HideButtons permanently removes the action controls and freezes the editor.
func (w *EditFileWidget) HideButtons() {
	w.buttonsHidden = true
	w.editor.SetReadOnly(true)
}

func (w *EditFileWidget) resolve() {
	w.resolved = true
	w.HideButtons()
}

// Render produces the widget's styled lines.
func (w *EditFileWidget) Render(width int) []string {
	header := headerStyle.Render(w.filename)
	if w.headerStats != "" {
		header += " " + statsStyle.Render(w.headerStats)
	}
	lines := []string{header}
	if w.explanation != "" {
		lines = append(lines, explanationStyle.Render(w.explanation))
	}
	lines = append(lines, w.editor.Render(width)...)
	if !w.buttonsHidden {
		lines = append(lines, buttonRow("Accept", "Cancel"))
	}
	return lines
}
