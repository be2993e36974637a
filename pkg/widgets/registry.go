package widgets

// WidgetType names a widget family for operations that address widgets by
// kind (hide_widget_buttons).
type WidgetType string

const (
	TypeConsole  WidgetType = "console"
	TypeTerminal WidgetType = "terminal"
	TypeEditFile WidgetType = "edit_file"
)

// Registry maps message ids to their live widget instances and enforces
// at-most-one widget per message id.
type Registry struct {
	consoles  map[string]*ConsoleWidget
	terminals map[string]*TerminalWidget
	editFiles map[string]*EditFileWidget
}

// NewRegistry creates an empty widget registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Clear()
	return r
}

// Clear drops every tracked widget.
func (r *Registry) Clear() {
	r.consoles = make(map[string]*ConsoleWidget)
	r.terminals = make(map[string]*TerminalWidget)
	r.editFiles = make(map[string]*EditFileWidget)
}

// Has reports whether any widget claims the message id.
func (r *Registry) Has(messageID string) bool {
	if _, ok := r.consoles[messageID]; ok {
		return true
	}
	if _, ok := r.terminals[messageID]; ok {
		return true
	}
	_, ok := r.editFiles[messageID]
	return ok
}

// HasCommandWidget reports whether a console or terminal widget claims the
// id. Text deltas for such ids are dropped: a function-call response does not
// also get a text bubble.
func (r *Registry) HasCommandWidget(messageID string) bool {
	if _, ok := r.consoles[messageID]; ok {
		return true
	}
	_, ok := r.terminals[messageID]
	return ok
}

// AddConsole registers a console widget. Returns false if the id already has
// a widget (duplicate delivery); the existing widget wins.
func (r *Registry) AddConsole(w *ConsoleWidget) bool {
	if r.Has(w.MessageID()) {
		return false
	}
	r.consoles[w.MessageID()] = w
	return true
}

// AddTerminal registers a terminal widget.
func (r *Registry) AddTerminal(w *TerminalWidget) bool {
	if r.Has(w.MessageID()) {
		return false
	}
	r.terminals[w.MessageID()] = w
	return true
}

// AddEditFile registers an edit-file widget.
func (r *Registry) AddEditFile(w *EditFileWidget) bool {
	if r.Has(w.MessageID()) {
		return false
	}
	r.editFiles[w.MessageID()] = w
	return true
}

// Console returns the console widget for an id.
func (r *Registry) Console(messageID string) (*ConsoleWidget, bool) {
	w, ok := r.consoles[messageID]
	return w, ok
}

// Terminal returns the terminal widget for an id.
func (r *Registry) Terminal(messageID string) (*TerminalWidget, bool) {
	w, ok := r.terminals[messageID]
	return w, ok
}

// EditFile returns the edit-file widget for an id.
func (r *Registry) EditFile(messageID string) (*EditFileWidget, bool) {
	w, ok := r.editFiles[messageID]
	return w, ok
}

// Lookup returns whichever widget claims the id.
func (r *Registry) Lookup(messageID string) (Widget, bool) {
	if w, ok := r.consoles[messageID]; ok {
		return w, true
	}
	if w, ok := r.terminals[messageID]; ok {
		return w, true
	}
	if w, ok := r.editFiles[messageID]; ok {
		return w, true
	}
	return nil, false
}

// HideButtons hides the controls of the widget of the given type. Returns
// false for an unknown widget type; a missing widget is a silent no-op.
func (r *Registry) HideButtons(messageID string, widgetType WidgetType) bool {
	switch widgetType {
	case TypeConsole:
		if w, ok := r.consoles[messageID]; ok {
			w.HideButtons()
		}
	case TypeTerminal:
		if w, ok := r.terminals[messageID]; ok {
			w.HideButtons()
		}
	case TypeEditFile:
		if w, ok := r.editFiles[messageID]; ok {
			w.HideButtons()
		}
	default:
		return false
	}
	return true
}
