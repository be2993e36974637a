package panel

import (
	"fmt"
	"strings"

	"github.com/tidelight/aipane/pkg/events"
	"github.com/tidelight/aipane/pkg/widgets"
)

// process is the sequencing buffer's handler: it receives events exactly once,
// in per-conversation order, and applies them to the surface.
func (p *Panel) process(ev events.Event, seq int) error {
	p.currentSeq = seq
	switch e := ev.(type) {
	case events.StreamDelta:
		return p.handleStream(e)
	case events.Operation:
		return p.handleOperation(e)
	default:
		return fmt.Errorf("unknown event type %T", ev)
	}
}

func (p *Panel) handleStream(e events.StreamDelta) error {
	p.hideThinking()

	if e.Kind == events.KindEditFile {
		if err := p.appendEditContent(e); err != nil {
			return err
		}
	} else {
		p.appendTextContent(e)
	}

	if !p.recreating {
		p.deps.Scroll.SmartScrollToBottom()
	}
	return nil
}

// appendTextContent routes a text delta into its assistant message container,
// creating the container on the first delta.
func (p *Panel) appendTextContent(e events.StreamDelta) {
	// A function-call response renders as a widget; any text stream that
	// shares its id is redundant narration and is dropped.
	if p.registry.HasCommandWidget(e.MessageID) {
		p.log.WithField("message_id", e.MessageID).Debug("dropping text delta for command widget id")
		return
	}
	if p.isSilent(e.MessageID) {
		return
	}

	if !p.text.Has(e.MessageID) {
		// Tracking state first, container second: a later delta must
		// never find a container without an open buffer.
		p.text.Init(e.MessageID)
		p.activeSurface().Insert(&Node{
			Seq:       p.currentSeq,
			MessageID: e.MessageID,
			Kind:      NodeAssistant,
		})
	}

	full := p.text.Append(e.MessageID, e.Delta)
	node, ok := p.activeSurface().ByID(e.MessageID)
	if !ok {
		p.log.WithField("message_id", e.MessageID).Warn("stream delta has no container node")
		return
	}
	node.Raw = full
	node.Markup = p.renderMarkdown(full)

	if e.Complete {
		node.Complete = true
		node.Cancelled = e.Cancelled
		if !e.Cancelled {
			p.text.Remove(e.MessageID)
			p.scheduleNameCheck()
		}
		p.deps.Scroll.SetActivelyStreaming(p.streamingActive())
	}
}

// appendEditContent routes an edit-file delta into its widget, auto-creating
// the widget from the delta's filename when the stream starts before the
// creation operation arrives.
func (p *Panel) appendEditContent(e events.StreamDelta) error {
	w, ok := p.registry.EditFile(e.MessageID)
	if !ok {
		if e.Filename == "" {
			return fmt.Errorf("%w: message %s", events.ErrMissingFilename, e.MessageID)
		}
		w = p.createEditFileWidget(e.MessageID, e.Filename, "", "", e.RequestID, true, false)
	}

	if !p.edits.Has(e.MessageID) {
		p.edits.Init(e.MessageID)
		p.deps.Scroll.SetActivelyStreaming(true)
	}
	full := p.edits.Append(e.MessageID, e.Delta)

	if !e.Complete {
		w.AppendStreamingContent(full)
		return nil
	}

	w.SetContent(widgets.CleanCodeBlock(full))
	if e.Cancelled {
		w.MarkCancelled()
	} else {
		p.edits.Remove(e.MessageID)
		p.applyDiff(w)
	}
	p.deps.Scroll.SetActivelyStreaming(p.streamingActive())
	return nil
}

// applyDiff fetches the backend-computed diff and paints it onto the widget.
// A failed fetch degrades to the plain editor view.
func (p *Panel) applyDiff(w *widgets.EditFileWidget) {
	if p.deps.Diff == nil {
		return
	}
	result, err := p.deps.Diff.DiffForMessage(w.MessageID())
	if err != nil {
		p.log.WithError(err).WithField("message_id", w.MessageID()).
			Warn("diff fetch failed, showing content without highlighting")
		return
	}
	w.ApplyDiffHighlighting(result)
}

func (p *Panel) handleOperation(e events.Operation) error {
	if e.Type != events.OpHideWidgetButtons {
		p.hideThinking()
	}

	switch e.Type {
	case events.OpCreateConsoleCommand:
		p.createConsoleWidget(e)
	case events.OpCreateTerminalCommand:
		p.createTerminalWidget(e)
	case events.OpCreateEditFileCommand:
		return p.createEditFileFromOperation(e)
	case events.OpCreateUserMessage:
		p.createUserMessage(e)
	case events.OpCreateAssistantMessage:
		p.createAssistantMessage(e)
	case events.OpClearConversation:
		p.clearTrackingState()
		p.activeSurface().Clear()
	case events.OpRevertButton:
		p.activeSurface().Insert(&Node{
			Seq:       p.currentSeq,
			MessageID: e.MessageID,
			Kind:      NodeRevert,
		})
	case events.OpHideWidgetButtons:
		widgetType := widgets.WidgetType(e.Content)
		if !p.registry.HideButtons(e.MessageID, widgetType) {
			p.log.WithFields(map[string]interface{}{
				"message_id":  e.MessageID,
				"widget_type": e.Content,
			}).Warn("hide_widget_buttons for unknown widget type")
		}
	case events.OpCreateFunctionCallMessage:
		p.createFunctionCallMessage(e)
	case events.OpStartBackgroundRecreation:
		p.startBackgroundRecreation()
	case events.OpFinishBackgroundRecreation:
		p.finishBackgroundRecreation()
	default:
		p.log.WithField("type", string(e.Type)).Warn("ignoring unknown operation")
	}
	return nil
}

func (p *Panel) createConsoleWidget(e events.Operation) {
	if p.registry.Has(e.MessageID) {
		return
	}
	w := widgets.NewConsoleWidget(e.MessageID, e.Command, e.Explanation, e.RequestID, true,
		consoleBridge{panel: p, requestID: e.RequestID})
	p.registry.AddConsole(w)
	p.insertWidgetNode(e.MessageID, w)
}

func (p *Panel) createTerminalWidget(e events.Operation) {
	if p.registry.Has(e.MessageID) {
		return
	}
	w := widgets.NewTerminalWidget(e.MessageID, e.Command, e.Explanation, e.RequestID, true,
		terminalBridge{panel: p, requestID: e.RequestID})
	p.registry.AddTerminal(w)
	p.insertWidgetNode(e.MessageID, w)
}

// createEditFileFromOperation builds an edit-file widget from a complete
// operation (history restoration or non-streamed edits). Content carrying the
// cancellation prefix restores as a frozen cancelled widget.
func (p *Panel) createEditFileFromOperation(e events.Operation) error {
	if p.registry.Has(e.MessageID) {
		return nil
	}
	if e.Filename == "" {
		return fmt.Errorf("%w: message %s", events.ErrMissingFilename, e.MessageID)
	}

	content := e.Content
	cancelled := strings.HasPrefix(content, events.CancelledContentPrefix)
	if cancelled {
		content = strings.TrimSpace(strings.TrimPrefix(content, events.CancelledContentPrefix))
	}
	content = widgets.CleanCodeBlock(content)

	p.createEditFileWidget(e.MessageID, e.Filename, content, e.Explanation, e.RequestID, !cancelled, cancelled)
	return nil
}

// createEditFileWidget builds, registers and places an edit-file widget. Also
// used for auto-creation when a stream starts before its creation operation.
func (p *Panel) createEditFileWidget(messageID, filename, content, explanation, requestID string, editable, cancelled bool) *widgets.EditFileWidget {
	w := widgets.NewEditFileWidget(messageID, filename, content, explanation, requestID, editable,
		editFileBridge{panel: p, requestID: requestID}, cancelled)
	p.registry.AddEditFile(w)
	p.insertWidgetNode(messageID, w)
	return w
}

func (p *Panel) createUserMessage(e events.Operation) {
	if _, exists := p.activeSurface().ByID(e.MessageID); exists {
		return
	}
	p.activeSurface().Insert(&Node{
		Seq:       p.currentSeq,
		MessageID: e.MessageID,
		Kind:      NodeUser,
		Raw:       e.Content,
		Markup:    e.Content,
		Complete:  true,
	})
	if !p.recreating {
		p.deps.Scroll.ForceScrollToBottom()
	}
}

func (p *Panel) createAssistantMessage(e events.Operation) {
	if _, exists := p.activeSurface().ByID(e.MessageID); exists {
		return
	}
	p.activeSurface().Insert(&Node{
		Seq:       p.currentSeq,
		MessageID: e.MessageID,
		Kind:      NodeAssistant,
		Raw:       e.Content,
		Markup:    p.renderMarkdown(e.Content),
		Complete:  true,
	})
	if !p.recreating {
		p.deps.Scroll.SmartScrollToBottom()
	}
}

func (p *Panel) createFunctionCallMessage(e events.Operation) {
	if _, exists := p.activeSurface().ByID(e.MessageID); exists {
		return
	}
	p.activeSurface().Insert(&Node{
		Seq:       p.currentSeq,
		MessageID: e.MessageID,
		Kind:      NodeFunctionCall,
		Raw:       e.Content,
		Markup:    e.Content,
		Complete:  true,
	})
	if !p.recreating {
		p.deps.Scroll.SmartScrollToBottom()
	}
}

// insertWidgetNode places a widget on the surface at the current sequence.
func (p *Panel) insertWidgetNode(messageID string, w renderable) {
	p.activeSurface().Insert(&Node{
		Seq:       p.currentSeq,
		MessageID: messageID,
		Kind:      NodeWidget,
		Widget:    w,
	})
	if !p.recreating {
		p.deps.Scroll.SmartScrollToBottom()
	}
}

// Widget handlers bridge user decisions to the injected executor and
// canceller, carrying the request id the widget was created under.

type consoleBridge struct {
	panel     *Panel
	requestID string
}

func (b consoleBridge) OnRun(messageID, command string) {
	b.panel.deps.Executor.RunConsole(messageID, b.requestID, command)
}

func (b consoleBridge) OnCancel(messageID string) {
	b.panel.deps.Canceller.Cancel(messageID, b.requestID)
}

type terminalBridge struct {
	panel     *Panel
	requestID string
}

func (b terminalBridge) OnRunCommand(messageID, command string) {
	b.panel.deps.Executor.RunTerminal(messageID, b.requestID, command)
}

func (b terminalBridge) OnCancelCommand(messageID string) {
	b.panel.deps.Canceller.Cancel(messageID, b.requestID)
}

type editFileBridge struct {
	panel     *Panel
	requestID string
}

func (b editFileBridge) OnAccept(messageID, content string) {
	b.panel.deps.Executor.AcceptEdit(messageID, b.requestID, content)
}

func (b editFileBridge) OnCancel(messageID string) {
	b.panel.deps.Canceller.Cancel(messageID, b.requestID)
}
