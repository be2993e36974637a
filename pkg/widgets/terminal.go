package widgets

// TerminalHandler receives the user's decision on a terminal command widget.
type TerminalHandler interface {
	OnRunCommand(messageID, command string)
	OnCancelCommand(messageID string)
}

// TerminalWidget presents a proposed shell command with run/cancel controls.
type TerminalWidget struct {
	messageID     string
	requestID     string
	explanation   string
	editor        *EditorBuffer
	buttonsHidden bool
	resolved      bool
	handler       TerminalHandler
}

// NewTerminalWidget creates a terminal command widget.
func NewTerminalWidget(messageID, command, explanation, requestID string, editable bool, handler TerminalHandler) *TerminalWidget {
	w := &TerminalWidget{
		messageID:   messageID,
		requestID:   requestID,
		explanation: explanation,
		editor:      NewEditorBuffer(command, "bash"),
		handler:     handler,
	}
	if !editable {
		w.buttonsHidden = true
		w.resolved = true
		w.editor.SetReadOnly(true)
	}
	w.editor.MarkReady()
	return w
}

func (w *TerminalWidget) MessageID() string     { return w.messageID }
func (w *TerminalWidget) RequestID() string     { return w.requestID }
func (w *TerminalWidget) Resolved() bool        { return w.resolved }
func (w *TerminalWidget) ButtonsHidden() bool   { return w.buttonsHidden }
func (w *TerminalWidget) Editor() *EditorBuffer { return w.editor }

// Command returns the current command text.
func (w *TerminalWidget) Command() string { return w.editor.Content() }

// SetCommand replaces the command text.
func (w *TerminalWidget) SetCommand(command string) { w.editor.SetContent(command) }

// Run resolves the widget and hands the command to the executor. Only the
// first activation reaches the handler.
func (w *TerminalWidget) Run() {
	if w.buttonsHidden {
		return
	}
	w.resolve()
	w.handler.OnRunCommand(w.messageID, w.Command())
}

// Cancel resolves the widget and notifies the canceller.
func (w *TerminalWidget) Cancel() {
	if w.buttonsHidden {
		return
	}
	w.resolve()
	w.handler.OnCancelCommand(w.messageID)
}

// HideButtons permanently removes the action controls and freezes the editor.
func (w *TerminalWidget) HideButtons() {
	w.buttonsHidden = true
	w.editor.SetReadOnly(true)
}

func (w *TerminalWidget) resolve() {
	w.resolved = true
	w.HideButtons()
}

// Render produces the widget's styled lines.
func (w *TerminalWidget) Render(width int) []string {
	lines := []string{headerStyle.Render("Terminal command")}
	if w.explanation != "" {
		lines = append(lines, explanationStyle.Render(w.explanation))
	}
	for i, l := range w.editor.Render(width) {
		prompt := "  "
		if i == 0 {
			prompt = promptStyle.Render("$") + " "
		}
		lines = append(lines, prompt+l)
	}
	if !w.buttonsHidden {
		lines = append(lines, buttonRow("Run", "Cancel"))
	}
	return lines
}
