package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/tidelight/aipane/pkg/panel"
	"github.com/tidelight/aipane/pkg/widgets"
)

// PanelView renders the conversation surface: message nodes in order, the
// transient activity indicator, an input line and a status bar.
type PanelView struct {
	*tview.Flex

	app      *tview.Application
	panel    *panel.Panel
	messages *tview.TextView
	thinking *tview.TextView
	input    *tview.InputField
	status   *tview.TextView
	scroll   *ViewScrollManager

	width int

	onSendMessage func(content string)
}

// NewPanelView creates the view. The scroll manager must be wired into the
// panel's collaborators by the caller.
func NewPanelView(app *tview.Application, p *panel.Panel) *PanelView {
	pv := &PanelView{
		Flex:  tview.NewFlex().SetDirection(tview.FlexRow),
		app:   app,
		panel: p,
		width: 80,
	}

	pv.messages = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetScrollable(true)
	pv.messages.SetBackgroundColor(ColorBackground)

	pv.thinking = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	pv.thinking.SetBackgroundColor(ColorBackground)
	pv.thinking.SetTextColor(ColorThinkingText)

	pv.input = tview.NewInputField().
		SetLabel("> ").
		SetFieldBackgroundColor(ColorBackground).
		SetLabelColor(ColorPrompt)
	pv.input.SetBackgroundColor(ColorBackground)
	pv.input.SetInputCapture(pv.handleInputKey)

	pv.status = tview.NewTextView().SetDynamicColors(true)
	pv.status.SetBackgroundColor(ColorBackground)
	pv.status.SetTextColor(ColorStatusText)

	pv.scroll = NewViewScrollManager(pv.messages)

	pv.AddItem(pv.messages, 0, 1, false)
	pv.AddItem(pv.thinking, 1, 0, false)
	pv.AddItem(pv.input, 1, 0, true)
	pv.AddItem(pv.status, 1, 0, false)

	return pv
}

// ScrollManager returns the view's scroll manager for panel wiring.
func (pv *PanelView) ScrollManager() *ViewScrollManager { return pv.scroll }

// SetSendHandler registers the callback for submitted input.
func (pv *PanelView) SetSendHandler(f func(content string)) { pv.onSendMessage = f }

// SetWidth updates the wrap width used for widget rendering.
func (pv *PanelView) SetWidth(width int) {
	if width > 0 {
		pv.width = width
	}
}

func (pv *PanelView) handleInputKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEnter:
		text := pv.input.GetText()
		if text != "" {
			pv.input.SetText("")
			if pv.onSendMessage != nil {
				pv.onSendMessage(text)
			}
			return nil
		}
	case tcell.KeyCtrlR:
		pv.resolvePendingWidget(true)
		return nil
	case tcell.KeyCtrlX:
		pv.resolvePendingWidget(false)
		return nil
	case tcell.KeyPgUp, tcell.KeyPgDn, tcell.KeyUp, tcell.KeyDown:
		pv.scroll.NoteUserScroll()
		pv.app.SetFocus(pv.messages)
		return event
	}
	return event
}

// resolvePendingWidget activates the newest widget still waiting for a
// decision.
func (pv *PanelView) resolvePendingWidget(accept bool) {
	nodes := pv.panel.Surface().Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.Kind != panel.NodeWidget {
			continue
		}
		w, ok := pv.panel.Registry().Lookup(n.MessageID)
		if !ok || w.ButtonsHidden() {
			continue
		}
		switch w := w.(type) {
		case *widgets.ConsoleWidget:
			if accept {
				w.Run()
			} else {
				w.Cancel()
			}
		case *widgets.TerminalWidget:
			if accept {
				w.Run()
			} else {
				w.Cancel()
			}
		case *widgets.EditFileWidget:
			if accept {
				w.Accept()
			} else {
				w.Cancel()
			}
		}
		pv.Redraw()
		return
	}
}

// Redraw repaints the whole surface. Called on the UI goroutine after every
// admitted event; the node list is small enough that full repaints beat
// incremental bookkeeping.
func (pv *PanelView) Redraw() {
	pv.messages.Clear()
	out := tview.ANSIWriter(pv.messages)

	for _, n := range pv.panel.Surface().Nodes() {
		switch n.Kind {
		case panel.NodeUser:
			fmt.Fprintf(out, "\nyou: %s\n", n.Raw)
		case panel.NodeAssistant:
			text := n.Markup
			if n.Cancelled {
				text += "\n(cancelled)"
			}
			fmt.Fprintf(out, "\n%s\n", text)
		case panel.NodeFunctionCall:
			fmt.Fprintf(out, "\n* %s\n", n.Raw)
		case panel.NodeRevert:
			fmt.Fprintln(out, "\n-- revert to here --")
		case panel.NodeWidget:
			if n.Widget != nil {
				fmt.Fprintf(out, "\n%s\n", strings.Join(n.Widget.Render(pv.width), "\n"))
			}
		}
	}

	pv.thinking.SetText(pv.panel.Thinking())
	pv.updateStatus()
	pv.scroll.SmartScrollToBottom()
}

func (pv *PanelView) updateStatus() {
	conv := pv.panel.ActiveConversation()
	state := "ready"
	if pv.panel.Recreating() {
		state = "rebuilding"
	} else if pv.panel.Thinking() != "" {
		state = "thinking"
	}
	pv.status.SetText(fmt.Sprintf(" conversation %d | %s | ^R accept  ^X cancel", conv, state))
}
