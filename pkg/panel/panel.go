package panel

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tidelight/aipane/pkg/config"
	"github.com/tidelight/aipane/pkg/events"
	"github.com/tidelight/aipane/pkg/logger"
	"github.com/tidelight/aipane/pkg/sequence"
	"github.com/tidelight/aipane/pkg/widgets"
)

// animationResumeDelay is how long scroll animations stay suppressed after a
// conversation switch, long enough for the restored history to settle.
const animationResumeDelay = 500 * time.Millisecond

// Panel reassembles a streamed conversation into an ordered render surface.
// It owns the sequencing buffer, the streaming accumulators, the widget
// registry and the surfaces; collaborators (executor, diff provider, scroll
// policy) are injected through Deps.
//
// Panel is not safe for concurrent use. All mutation happens on the caller's
// event-processing goroutine; deferred work hands results back through the
// Scheduler rather than touching the panel from another goroutine.
type Panel struct {
	deps Deps
	log  *logrus.Entry

	seq      *sequence.Buffer
	registry *widgets.Registry
	text     *accumulator
	edits    *accumulator

	live       *Surface
	background *Surface
	recreating bool

	// currentSeq is the sequence of the event being processed; nodes it
	// creates inherit it as their position key.
	currentSeq int

	thinking string

	silentPrefixes []string
	nameCheckDelay time.Duration
}

// New creates a Panel with the given collaborators. Pipeline tunables come
// from the loaded configuration.
func New(deps Deps) *Panel {
	cfg := config.Get()
	p := &Panel{
		deps:           deps.withDefaults(),
		log:            logger.WithComponent("panel"),
		registry:       widgets.NewRegistry(),
		text:           newAccumulator(),
		edits:          newAccumulator(),
		live:           NewSurface(),
		silentPrefixes: cfg.Panel.SilentPrefixes,
		nameCheckDelay: cfg.Panel.NameCheckDelay,
	}
	p.seq = sequence.New(p.process)
	return p
}

// Admit feeds one transport event into the pipeline. Out-of-order events are
// buffered and replayed automatically; the error reports a failure processing
// this event if it was eligible now.
func (p *Panel) Admit(ev events.Event) error {
	return p.seq.Admit(ev)
}

// SwitchToConversation makes a conversation current. Buffered events of the
// outgoing conversation are dropped; the incoming one resumes at its
// remembered cursor. Scroll animations are suppressed briefly so history
// restoration does not animate.
func (p *Panel) SwitchToConversation(conversationID int) {
	if p.seq.Active() == conversationID {
		return
	}
	p.seq.SwitchTo(conversationID)
	p.deps.Scroll.DisableAnimations()
	p.deps.Scheduler.AfterFunc(animationResumeDelay, p.deps.Scroll.EnableAnimations)
}

// ActiveConversation returns the current conversation id, -1 before the first
// switch.
func (p *Panel) ActiveConversation() int { return p.seq.Active() }

// ClearMessages wipes the visible surface and all streaming state. Sequencing
// cursors survive: the conversation's event numbering has not restarted, only
// the display is gone.
func (p *Panel) ClearMessages() {
	p.clearTrackingState()
	p.live.Clear()
	if p.recreating && p.background != nil {
		p.background.Clear()
	}
	p.seq.DropPending(p.seq.Active())
}

// ClearMessagesNoRestore is ClearMessages for the paths that will not restore
// history afterwards, so no scroll position is worth keeping.
func (p *Panel) ClearMessagesNoRestore() {
	p.ClearMessages()
}

// clearTrackingState resets accumulators, widgets and the thinking indicator.
func (p *Panel) clearTrackingState() {
	p.text.Clear()
	p.edits.Clear()
	p.registry.Clear()
	p.thinking = ""
	p.deps.Scroll.SetActivelyStreaming(false)
}

// Surface returns the visible conversation surface. During background
// reconstruction this is still the old content; the rebuilt surface replaces
// it atomically on finish.
func (p *Panel) Surface() *Surface { return p.live }

// Registry exposes the live widgets for view-layer interaction.
func (p *Panel) Registry() *widgets.Registry { return p.registry }

// Recreating reports whether a background reconstruction is in progress.
func (p *Panel) Recreating() bool { return p.recreating }

// activeSurface is where newly created nodes land: the background surface
// while reconstructing, the live one otherwise.
func (p *Panel) activeSurface() *Surface {
	if p.recreating && p.background != nil {
		return p.background
	}
	return p.live
}

// AddUserMessage appends a user message synchronously, outside the event
// stream. Used when the user submits locally and the echo should not wait for
// the backend round trip. Returns the generated message id.
func (p *Panel) AddUserMessage(content string) string {
	id := "user-" + uuid.NewString()
	p.activeSurface().Append(&Node{
		Seq:       p.currentSeq,
		MessageID: id,
		Kind:      NodeUser,
		Raw:       content,
		Markup:    content,
		Complete:  true,
	})
	if !p.recreating {
		p.deps.Scroll.ForceScrollToBottom()
	}
	return id
}

// AddCompleteAssistantMessage appends a finished assistant message
// synchronously, bypassing accumulation. Used for history restoration.
func (p *Panel) AddCompleteAssistantMessage(messageID, content string) {
	if _, exists := p.activeSurface().ByID(messageID); exists {
		return
	}
	p.activeSurface().Append(&Node{
		Seq:       p.currentSeq,
		MessageID: messageID,
		Kind:      NodeAssistant,
		Raw:       content,
		Markup:    p.renderMarkdown(content),
		Complete:  true,
	})
}

// PreservePartialContentOnCancel finalizes whatever partial content a
// cancelled request produced, for either stream flavor, and returns it. The
// partial text becomes a first-class completed message.
func (p *Panel) PreservePartialContentOnCancel(messageID string) string {
	if partial, ok := p.edits.Content(messageID); ok {
		if w, found := p.registry.EditFile(messageID); found {
			w.SetContent(widgets.CleanCodeBlock(partial))
			w.MarkCancelled()
		}
		p.edits.Remove(messageID)
		p.deps.Scroll.SetActivelyStreaming(p.streamingActive())
		return partial
	}
	partial, ok := p.text.Content(messageID)
	if !ok {
		return ""
	}
	if node, found := p.activeSurface().ByID(messageID); found {
		node.Complete = true
		node.Cancelled = true
	}
	p.text.Remove(messageID)
	p.deps.Scroll.SetActivelyStreaming(p.streamingActive())
	return partial
}

// ShowThinking displays the transient activity indicator. It lives outside
// the node order and vanishes as soon as real content arrives.
func (p *Panel) ShowThinking(text string) {
	if text == "" {
		text = "Thinking..."
	}
	p.thinking = text
}

// UpdateThinking replaces the indicator text if it is showing.
func (p *Panel) UpdateThinking(text string) {
	if p.thinking == "" {
		return
	}
	p.thinking = text
}

// Thinking returns the indicator text, empty when hidden.
func (p *Panel) Thinking() string { return p.thinking }

func (p *Panel) hideThinking() {
	p.thinking = ""
}

// streamingActive reports whether any stream still has an open buffer.
func (p *Panel) streamingActive() bool {
	return p.text.Open() > 0 || p.edits.Open() > 0
}

// renderMarkdown renders text to markup, degrading to the raw text when the
// renderer fails.
func (p *Panel) renderMarkdown(text string) string {
	markup, err := p.deps.Markdown.Render(text)
	if err != nil {
		p.log.WithError(err).Warn("markdown render failed, using raw text")
		return text
	}
	return markup
}

// scheduleNameCheck pokes the naming collaborator after the configured delay.
func (p *Panel) scheduleNameCheck() {
	if p.deps.Names == nil {
		return
	}
	conv := p.seq.Active()
	p.deps.Scheduler.AfterFunc(p.nameCheckDelay, func() {
		p.deps.Names.CheckShouldName(conv)
	})
}

// isSilent reports whether a message id belongs to a background task whose
// output is never rendered.
func (p *Panel) isSilent(messageID string) bool {
	for _, prefix := range p.silentPrefixes {
		if strings.HasPrefix(messageID, prefix) {
			return true
		}
	}
	return false
}
