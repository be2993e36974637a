package sequence

import (
	"github.com/tidelight/aipane/pkg/events"
	"github.com/tidelight/aipane/pkg/logger"
)

// Handler processes an event that has become eligible. seq is the sequence
// number the event was admitted under; render-producing code uses it to
// position whatever the event creates.
type Handler func(ev events.Event, seq int) error

// cursor tracks in-order delivery for a single conversation.
type cursor struct {
	expected int
	pending  map[int]events.Event
}

func newCursor() *cursor {
	return &cursor{expected: 1, pending: make(map[int]events.Event)}
}

// Buffer reassembles a per-conversation total order from an out-of-order,
// at-least-once event stream. Events at the expected sequence are processed
// immediately, early events are held until the gap fills, and anything behind
// the cursor is discarded as a duplicate or stale retransmission.
//
// Buffer is not safe for concurrent use; the pipeline mutates it from a
// single event-processing goroutine.
type Buffer struct {
	handler Handler
	active  int
	cursors map[int]*cursor
}

// New creates a Buffer that hands eligible events to handler.
func New(handler Handler) *Buffer {
	return &Buffer{
		handler: handler,
		active:  -1,
		cursors: make(map[int]*cursor),
	}
}

// Admit accepts an event from the transport and decides whether to process,
// hold, or discard it. Handler errors from the admitted event are returned;
// errors from draining previously buffered events are logged and do not stop
// the drain.
func (b *Buffer) Admit(ev events.Event) error {
	c := b.cursor(ev.Conversation())
	seq := ev.Sequence()

	// clear_conversation bypasses sequence gating entirely: the backend is
	// rebuilding the conversation from scratch, so everything at or behind
	// the clear is obsolete.
	if op, ok := ev.(events.Operation); ok && op.Type == events.OpClearConversation {
		err := b.handler(ev, seq)
		for s := range c.pending {
			if s <= seq {
				delete(c.pending, s)
			}
		}
		c.expected = seq + 1
		b.drain(c)
		return err
	}

	switch {
	case seq == c.expected:
		err := b.handler(ev, seq)
		c.expected++
		b.drain(c)
		return err
	case seq > c.expected:
		c.pending[seq] = ev
		return nil
	default:
		// Stale retransmission or duplicate. Not an error under
		// at-least-once delivery.
		logger.Debug("discarding stale event: conversation=%d seq=%d expected=%d",
			ev.Conversation(), seq, c.expected)
		return nil
	}
}

// drain processes buffered events that have become contiguous with the
// cursor.
func (b *Buffer) drain(c *cursor) {
	for {
		ev, ok := c.pending[c.expected]
		if !ok {
			return
		}
		delete(c.pending, c.expected)
		if err := b.handler(ev, c.expected); err != nil {
			logger.Error("error processing buffered event seq=%d: %v", c.expected, err)
		}
		c.expected++
	}
}

// SwitchTo changes the active conversation. The outgoing conversation keeps
// its cursor position for later resumption, but buffered events are dropped:
// they belong to a session that is being left and are not replayed later.
func (b *Buffer) SwitchTo(conversationID int) {
	if c, ok := b.cursors[b.active]; ok {
		c.pending = make(map[int]events.Event)
	}
	b.active = conversationID
	b.cursor(conversationID)
}

// DropPending discards the buffered events of a conversation without moving
// its cursor. Used when the surrounding view wipes the display: whatever was
// waiting for a gap to fill no longer has a surface to land on.
func (b *Buffer) DropPending(conversationID int) {
	b.cursor(conversationID).pending = make(map[int]events.Event)
}

// Active returns the id of the active conversation, or -1 if none has been
// selected yet.
func (b *Buffer) Active() int { return b.active }

// Expected returns the next eligible sequence number for a conversation.
func (b *Buffer) Expected(conversationID int) int {
	return b.cursor(conversationID).expected
}

// PendingCount reports how many early events are buffered for a conversation.
func (b *Buffer) PendingCount(conversationID int) int {
	return len(b.cursor(conversationID).pending)
}

func (b *Buffer) cursor(conversationID int) *cursor {
	c, ok := b.cursors[conversationID]
	if !ok {
		c = newCursor()
		b.cursors[conversationID] = c
	}
	return c
}
