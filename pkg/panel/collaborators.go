package panel

import (
	"time"

	"github.com/tidelight/aipane/pkg/widgets"
)

// Executor runs accepted widget actions. Implementations live outside the
// pipeline (session backend bridge); calls are keyed by message and request
// id so the backend can correlate them.
type Executor interface {
	RunConsole(messageID, requestID, command string)
	RunTerminal(messageID, requestID, command string)
	AcceptEdit(messageID, requestID, content string)
}

// Canceller is notified when the user declines a widget action.
type Canceller interface {
	Cancel(messageID, requestID string)
}

// MarkdownRenderer converts message text to display markup. Incremental
// markup concatenation is not generally valid (partial tags), so the pipeline
// re-renders the full accumulated text on every delta.
type MarkdownRenderer interface {
	Render(text string) (string, error)
}

// DiffProvider fetches the backend-precomputed diff for an edit-file message.
// Diffing is deliberately not done client-side.
type DiffProvider interface {
	DiffForMessage(messageID string) (widgets.DiffResult, error)
}

// NameChecker is poked after a stream completes so the surrounding chrome can
// decide whether to auto-name the conversation.
type NameChecker interface {
	CheckShouldName(conversationID int)
}

// ScrollManager decides when the surrounding view auto-scrolls. The pipeline
// only reports; the policy lives with the view.
type ScrollManager interface {
	SmartScrollToBottom()
	ForceScrollToBottom()
	DisableAnimations()
	EnableAnimations()
	SetActivelyStreaming(streaming bool)
	Offset() int
}

// Scheduler defers a callback. Deferred work (name checks, scroll animation
// re-enable) runs as an independent later invocation, never as a blocking
// wait inside the processing path.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// Deps carries the pipeline's collaborators. Zero-value fields get no-op
// defaults, so tests and headless replay can construct a Panel from an empty
// Deps.
type Deps struct {
	Executor  Executor
	Canceller Canceller
	Markdown  MarkdownRenderer
	Diff      DiffProvider
	Names     NameChecker
	Scroll    ScrollManager
	Scheduler Scheduler
}

type nopExecutor struct{}

func (nopExecutor) RunConsole(messageID, requestID, command string)  {}
func (nopExecutor) RunTerminal(messageID, requestID, command string) {}
func (nopExecutor) AcceptEdit(messageID, requestID, content string)  {}

type nopCanceller struct{}

func (nopCanceller) Cancel(messageID, requestID string) {}

// NopScrollManager ignores every scroll notification. Used headless.
type NopScrollManager struct{}

func (NopScrollManager) SmartScrollToBottom()      {}
func (NopScrollManager) ForceScrollToBottom()      {}
func (NopScrollManager) DisableAnimations()        {}
func (NopScrollManager) EnableAnimations()         {}
func (NopScrollManager) SetActivelyStreaming(bool) {}
func (NopScrollManager) Offset() int               { return 0 }

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// PlainRenderer passes text through unrendered. Fallback when no markdown
// renderer is supplied.
type PlainRenderer struct{}

func (PlainRenderer) Render(text string) (string, error) { return text, nil }

func (d Deps) withDefaults() Deps {
	if d.Executor == nil {
		d.Executor = nopExecutor{}
	}
	if d.Canceller == nil {
		d.Canceller = nopCanceller{}
	}
	if d.Markdown == nil {
		d.Markdown = PlainRenderer{}
	}
	if d.Scroll == nil {
		d.Scroll = NopScrollManager{}
	}
	if d.Scheduler == nil {
		d.Scheduler = timerScheduler{}
	}
	// Diff and Names stay nil-able: absent collaborators disable the
	// feature rather than fake it.
	return d
}
