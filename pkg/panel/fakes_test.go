package panel_test

import (
	"errors"
	"time"

	"github.com/tidelight/aipane/pkg/events"
	"github.com/tidelight/aipane/pkg/widgets"
)

// fakeScroll records every scroll notification.
type fakeScroll struct {
	smart     int
	forced    int
	streaming []bool
}

func (f *fakeScroll) SmartScrollToBottom()        { f.smart++ }
func (f *fakeScroll) ForceScrollToBottom()        { f.forced++ }
func (f *fakeScroll) DisableAnimations()          {}
func (f *fakeScroll) EnableAnimations()           {}
func (f *fakeScroll) SetActivelyStreaming(s bool) { f.streaming = append(f.streaming, s) }
func (f *fakeScroll) Offset() int                 { return 0 }

func (f *fakeScroll) lastStreaming() bool {
	if len(f.streaming) == 0 {
		return false
	}
	return f.streaming[len(f.streaming)-1]
}

// fakeScheduler captures deferred work for manual execution.
type fakeScheduler struct {
	delays []time.Duration
	funcs  []func()
}

func (f *fakeScheduler) AfterFunc(d time.Duration, fn func()) {
	f.delays = append(f.delays, d)
	f.funcs = append(f.funcs, fn)
}

func (f *fakeScheduler) runAll() {
	pending := f.funcs
	f.funcs = nil
	f.delays = nil
	for _, fn := range pending {
		fn()
	}
}

type executedCall struct {
	kind      string
	messageID string
	requestID string
	payload   string
}

// fakeExecutor records accepted widget actions.
type fakeExecutor struct {
	calls []executedCall
}

func (f *fakeExecutor) RunConsole(messageID, requestID, command string) {
	f.calls = append(f.calls, executedCall{"console", messageID, requestID, command})
}

func (f *fakeExecutor) RunTerminal(messageID, requestID, command string) {
	f.calls = append(f.calls, executedCall{"terminal", messageID, requestID, command})
}

func (f *fakeExecutor) AcceptEdit(messageID, requestID, content string) {
	f.calls = append(f.calls, executedCall{"edit", messageID, requestID, content})
}

// fakeCanceller records declined widget actions.
type fakeCanceller struct {
	calls []executedCall
}

func (f *fakeCanceller) Cancel(messageID, requestID string) {
	f.calls = append(f.calls, executedCall{kind: "cancel", messageID: messageID, requestID: requestID})
}

// fakeDiff serves a canned diff, or fails.
type fakeDiff struct {
	result   widgets.DiffResult
	fail     bool
	requests []string
}

func (f *fakeDiff) DiffForMessage(messageID string) (widgets.DiffResult, error) {
	f.requests = append(f.requests, messageID)
	if f.fail {
		return widgets.DiffResult{}, errors.New("diff unavailable")
	}
	return f.result, nil
}

// fakeNames records naming checks.
type fakeNames struct {
	checked []int
}

func (f *fakeNames) CheckShouldName(conversationID int) {
	f.checked = append(f.checked, conversationID)
}

// Event construction helpers.

func textDelta(conv, seq int, id, text string) events.StreamDelta {
	return events.StreamDelta{
		ConversationID: conv,
		Seq:            seq,
		MessageID:      id,
		Delta:          text,
		Kind:           events.KindText,
	}
}

func textFinal(conv, seq int, id, text string) events.StreamDelta {
	d := textDelta(conv, seq, id, text)
	d.Complete = true
	return d
}

func editDelta(conv, seq int, id, filename, text string) events.StreamDelta {
	return events.StreamDelta{
		ConversationID: conv,
		Seq:            seq,
		MessageID:      id,
		Delta:          text,
		Kind:           events.KindEditFile,
		Filename:       filename,
		RequestID:      "req-1",
	}
}

func editFinal(conv, seq int, id, filename, text string) events.StreamDelta {
	d := editDelta(conv, seq, id, filename, text)
	d.Complete = true
	return d
}

func op(conv, seq int, opType events.OpType, id string) events.Operation {
	return events.Operation{
		ConversationID: conv,
		Seq:            seq,
		Type:           opType,
		MessageID:      id,
		RequestID:      "req-1",
	}
}
