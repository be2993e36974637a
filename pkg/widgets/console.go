package widgets

// ConsoleHandler receives the user's decision on a console command widget.
type ConsoleHandler interface {
	OnRun(messageID, command string)
	OnCancel(messageID string)
}

// ConsoleWidget presents a proposed console command with run/cancel controls.
// The command text stays editable until the widget resolves.
type ConsoleWidget struct {
	messageID     string
	requestID     string
	explanation   string
	editor        *EditorBuffer
	buttonsHidden bool
	resolved      bool
	handler       ConsoleHandler
}

// NewConsoleWidget creates a console command widget. When editable is false
// (history restore of an already-resolved command) the controls are created
// hidden and never shown.
func NewConsoleWidget(messageID, command, explanation, requestID string, editable bool, handler ConsoleHandler) *ConsoleWidget {
	w := &ConsoleWidget{
		messageID:   messageID,
		requestID:   requestID,
		explanation: explanation,
		editor:      NewEditorBuffer(command, "r"),
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

func (w *ConsoleWidget) MessageID() string     { return w.messageID }
func (w *ConsoleWidget) RequestID() string     { return w.requestID }
func (w *ConsoleWidget) Resolved() bool        { return w.resolved }
func (w *ConsoleWidget) ButtonsHidden() bool   { return w.buttonsHidden }
func (w *ConsoleWidget) Editor() *EditorBuffer { return w.editor }

// Command returns the current (possibly user-edited) command text.
func (w *ConsoleWidget) Command() string { return w.editor.Content() }

// SetCommand replaces the command text.
func (w *ConsoleWidget) SetCommand(command string) { w.editor.SetContent(command) }

// Run resolves the widget and hands the command to the executor. Safe to call
// repeatedly; only the first activation reaches the handler.
func (w *ConsoleWidget) Run() {
	if w.buttonsHidden {
		return
	}
	w.resolve()
	w.handler.OnRun(w.messageID, w.Command())
}

// Cancel resolves the widget and notifies the canceller. Idempotent like Run.
func (w *ConsoleWidget) Cancel() {
	if w.buttonsHidden {
		return
	}
	w.resolve()
	w.handler.OnCancel(w.messageID)
}

// HideButtons permanently removes the action controls and freezes the editor.
func (w *ConsoleWidget) HideButtons() {
	w.buttonsHidden = true
	w.editor.SetReadOnly(true)
}

func (w *ConsoleWidget) resolve() {
	w.resolved = true
	w.HideButtons()
}

// Render produces the widget's styled lines.
func (w *ConsoleWidget) Render(width int) []string {
	lines := []string{headerStyle.Render("Console command")}
	if w.explanation != "" {
		lines = append(lines, explanationStyle.Render(w.explanation))
	}
	for i, l := range w.editor.Render(width) {
		prompt := "  "
		if i == 0 {
			prompt = promptStyle.Render(">") + " "
		}
		lines = append(lines, prompt+l)
	}
	if !w.buttonsHidden {
		lines = append(lines, buttonRow("Run", "Cancel"))
	}
	return lines
}
